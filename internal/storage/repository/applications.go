package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/magabrotheeeer/job-tracker/internal/lib/apperr"
	"github.com/magabrotheeeer/job-tracker/internal/models"
)

// CreateApplication вставляет новый отклик и возвращает его ID.
// Владелец берётся из app.UserID и после вставки не меняется.
func (s *Storage) CreateApplication(ctx context.Context, app models.Application) (int64, error) {
	const op = "storage.CreateApplication"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO applications (user_id, company, position, status, job_link,
			      applied_date, notes)
			  VALUES ($1, $2, $3, $4, $5, $6, $7)
			  RETURNING id`
	var newID int64
	err := s.DB.QueryRowContext(ctx, query,
		app.UserID, app.Company, app.Position, app.Status, app.JobLink,
		app.AppliedDate, app.Notes).Scan(&newID)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return newID, nil
}

// ReadApplication возвращает отклик по его ID вместе с владельцем.
// Разделение 404/403 делает сервисный слой: здесь отсутствующая строка —
// это apperr.ErrNotFound, сравнение владельца выполняется выше.
func (s *Storage) ReadApplication(ctx context.Context, id int64) (*models.Application, error) {
	const op = "storage.ReadApplication"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, user_id, company, position, status, job_link, applied_date,
			      notes, created_at, updated_at
			  FROM applications WHERE id = $1`
	row := s.DB.QueryRowContext(ctx, query, id)

	var result models.Application
	if err := row.Scan(&result.ID, &result.UserID, &result.Company, &result.Position,
		&result.Status, &result.JobLink, &result.AppliedDate, &result.Notes,
		&result.CreatedAt, &result.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, apperr.ErrNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &result, nil
}

// UpdateApplication обновляет поля отклика по его ID и возвращает
// количество изменённых строк. Владельца (user_id) не трогает.
func (s *Storage) UpdateApplication(ctx context.Context, app models.Application, id int64) (int64, error) {
	const op = "storage.UpdateApplication"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE applications
			  SET company = $1, position = $2, status = $3, job_link = $4,
			      applied_date = $5, notes = $6, updated_at = NOW()
			  WHERE id = $7`
	result, err := s.DB.ExecContext(ctx, query,
		app.Company, app.Position, app.Status, app.JobLink,
		app.AppliedDate, app.Notes, id)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return rowsAffected, nil
}

// RemoveApplication удаляет отклик по ID и возвращает количество удалённых строк.
// Дочерние interviews и documents удаляются каскадом на уровне схемы.
func (s *Storage) RemoveApplication(ctx context.Context, id int64) (int64, error) {
	const op = "storage.RemoveApplication"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `DELETE FROM applications WHERE id = $1`
	result, err := s.DB.ExecContext(ctx, query, id)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return rowsAffected, nil
}

// ListApplicationsByOwner возвращает отклики пользователя с пагинацией.
// Фильтр по владельцу выполняется в запросе, а не над общей выборкой.
func (s *Storage) ListApplicationsByOwner(ctx context.Context, ownerID int64, limit, offset int) ([]*models.Application, error) {
	const op = "storage.ListApplicationsByOwner"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, user_id, company, position, status, job_link, applied_date,
			      notes, created_at, updated_at
			  FROM applications
			  WHERE user_id = $1
			  ORDER BY applied_date DESC, id DESC
			  LIMIT $2 OFFSET $3`
	rows, err := s.DB.QueryContext(ctx, query, ownerID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.Application
	for rows.Next() {
		var item models.Application
		if err := rows.Scan(&item.ID, &item.UserID, &item.Company, &item.Position,
			&item.Status, &item.JobLink, &item.AppliedDate, &item.Notes,
			&item.CreatedAt, &item.UpdatedAt); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, &item)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// CountApplicationsByStatus считает отклики пользователя по статусам
// для диаграммы на дашборде.
func (s *Storage) CountApplicationsByStatus(ctx context.Context, ownerID int64) ([]*models.StatusCount, error) {
	const op = "storage.CountApplicationsByStatus"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT status, COUNT(*)
			  FROM applications
			  WHERE user_id = $1
			  GROUP BY status`
	rows, err := s.DB.QueryContext(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.StatusCount
	for rows.Next() {
		var item models.StatusCount
		if err := rows.Scan(&item.Status, &item.Count); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, &item)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}
