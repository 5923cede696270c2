package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/magabrotheeeer/job-tracker/internal/lib/apperr"
	"github.com/magabrotheeeer/job-tracker/internal/models"
)

// CreateDocument вставляет метаданные загруженного документа и возвращает его ID.
func (s *Storage) CreateDocument(ctx context.Context, doc models.Document) (int64, error) {
	const op = "storage.CreateDocument"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO documents (application_id, stored_name, original_name,
			      content_type, size_bytes)
			  VALUES ($1, $2, $3, $4, $5)
			  RETURNING id`
	var newID int64
	err := s.DB.QueryRowContext(ctx, query,
		doc.ApplicationID, doc.StoredName, doc.OriginalName,
		doc.ContentType, doc.SizeBytes).Scan(&newID)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return newID, nil
}

// ReadDocument возвращает метаданные документа по ID вместе с владельцем,
// определённым через родительский отклик.
func (s *Storage) ReadDocument(ctx context.Context, id int64) (*models.Document, error) {
	const op = "storage.ReadDocument"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT d.id, d.application_id, d.stored_name, d.original_name,
			      d.content_type, d.size_bytes, d.uploaded_at, a.user_id
			  FROM documents d
			  JOIN applications a ON a.id = d.application_id
			  WHERE d.id = $1`
	row := s.DB.QueryRowContext(ctx, query, id)

	var result models.Document
	if err := row.Scan(&result.ID, &result.ApplicationID, &result.StoredName,
		&result.OriginalName, &result.ContentType, &result.SizeBytes,
		&result.UploadedAt, &result.OwnerID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, apperr.ErrNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &result, nil
}

// RemoveDocument удаляет метаданные документа по ID.
func (s *Storage) RemoveDocument(ctx context.Context, id int64) (int64, error) {
	const op = "storage.RemoveDocument"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `DELETE FROM documents WHERE id = $1`
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

// ListDocumentsByApplication возвращает документы отклика, если отклик
// принадлежит указанному пользователю.
func (s *Storage) ListDocumentsByApplication(ctx context.Context, applicationID, ownerID int64) ([]*models.Document, error) {
	const op = "storage.ListDocumentsByApplication"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT d.id, d.application_id, d.stored_name, d.original_name,
			      d.content_type, d.size_bytes, d.uploaded_at, a.user_id
			  FROM documents d
			  JOIN applications a ON a.id = d.application_id
			  WHERE d.application_id = $1 AND a.user_id = $2
			  ORDER BY d.uploaded_at DESC`
	rows, err := s.DB.QueryContext(ctx, query, applicationID, ownerID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.Document
	for rows.Next() {
		var item models.Document
		if err := rows.Scan(&item.ID, &item.ApplicationID, &item.StoredName,
			&item.OriginalName, &item.ContentType, &item.SizeBytes,
			&item.UploadedAt, &item.OwnerID); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, &item)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}
