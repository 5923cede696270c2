package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/magabrotheeeer/job-tracker/internal/lib/apperr"
	"github.com/magabrotheeeer/job-tracker/internal/models"
)

// CreateInterview вставляет новое собеседование и возвращает его ID.
// Принадлежность родительского отклика вызывающему проверяет сервисный слой.
func (s *Storage) CreateInterview(ctx context.Context, iv models.Interview) (int64, error) {
	const op = "storage.CreateInterview"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO interviews (application_id, scheduled_at, kind, location, notes)
			  VALUES ($1, $2, $3, $4, $5)
			  RETURNING id`
	var newID int64
	err := s.DB.QueryRowContext(ctx, query,
		iv.ApplicationID, iv.ScheduledAt, iv.Kind, iv.Location, iv.Notes).Scan(&newID)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return newID, nil
}

// ReadInterview возвращает собеседование по ID вместе с владельцем,
// определённым через родительский отклик.
func (s *Storage) ReadInterview(ctx context.Context, id int64) (*models.Interview, error) {
	const op = "storage.ReadInterview"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT i.id, i.application_id, i.scheduled_at, i.kind, i.location,
			      i.notes, i.reminder_sent, a.user_id
			  FROM interviews i
			  JOIN applications a ON a.id = i.application_id
			  WHERE i.id = $1`
	row := s.DB.QueryRowContext(ctx, query, id)

	var result models.Interview
	if err := row.Scan(&result.ID, &result.ApplicationID, &result.ScheduledAt,
		&result.Kind, &result.Location, &result.Notes, &result.ReminderSent,
		&result.OwnerID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, apperr.ErrNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &result, nil
}

// UpdateInterview обновляет собеседование по ID и возвращает количество
// изменённых строк. Привязку к отклику не меняет.
func (s *Storage) UpdateInterview(ctx context.Context, iv models.Interview, id int64) (int64, error) {
	const op = "storage.UpdateInterview"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE interviews
			  SET scheduled_at = $1, kind = $2, location = $3, notes = $4
			  WHERE id = $5`
	result, err := s.DB.ExecContext(ctx, query,
		iv.ScheduledAt, iv.Kind, iv.Location, iv.Notes, id)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return rowsAffected, nil
}

// RemoveInterview удаляет собеседование по ID.
func (s *Storage) RemoveInterview(ctx context.Context, id int64) (int64, error) {
	const op = "storage.RemoveInterview"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `DELETE FROM interviews WHERE id = $1`
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

// ListInterviewsByApplication возвращает собеседования отклика, если отклик
// принадлежит указанному пользователю. Фильтр по владельцу — в самом запросе.
func (s *Storage) ListInterviewsByApplication(ctx context.Context, applicationID, ownerID int64) ([]*models.Interview, error) {
	const op = "storage.ListInterviewsByApplication"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT i.id, i.application_id, i.scheduled_at, i.kind, i.location,
			      i.notes, i.reminder_sent, a.user_id
			  FROM interviews i
			  JOIN applications a ON a.id = i.application_id
			  WHERE i.application_id = $1 AND a.user_id = $2
			  ORDER BY i.scheduled_at`
	rows, err := s.DB.QueryContext(ctx, query, applicationID, ownerID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.Interview
	for rows.Next() {
		var item models.Interview
		if err := rows.Scan(&item.ID, &item.ApplicationID, &item.ScheduledAt,
			&item.Kind, &item.Location, &item.Notes, &item.ReminderSent,
			&item.OwnerID); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, &item)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// FindInterviewsDueSoon находит собеседования, назначенные в ближайшие сутки,
// по которым ещё не отправлено напоминание. Email и имя берутся JOIN-ом
// через отклик и пользователя.
func (s *Storage) FindInterviewsDueSoon(ctx context.Context) ([]*models.ReminderInfo, error) {
	const op = "storage.FindInterviewsDueSoon"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT u.email, u.full_name, a.company, a.position, i.id, i.scheduled_at
			  FROM interviews i
			  JOIN applications a ON a.id = i.application_id
			  JOIN users u ON u.id = a.user_id
			  WHERE i.reminder_sent = false
			    AND i.scheduled_at > NOW()
			    AND i.scheduled_at <= NOW() + INTERVAL '24 hours'`
	rows, err := s.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.ReminderInfo
	for rows.Next() {
		var item models.ReminderInfo
		if err := rows.Scan(&item.Email, &item.FullName, &item.Company,
			&item.Position, &item.InterviewID, &item.ScheduledAt); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, &item)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// MarkReminderSent помечает собеседование как обработанное отправителем напоминаний.
func (s *Storage) MarkReminderSent(ctx context.Context, id int64) error {
	const op = "storage.MarkReminderSent"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE interviews SET reminder_sent = true WHERE id = $1`
	if _, err := s.DB.ExecContext(ctx, query, id); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}
