// Package services содержит бизнес-логику работы с документами откликов:
// метаданные в PostgreSQL, содержимое на диске.
package services

import (
	"context"
	"io"
	"log/slog"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/magabrotheeeer/job-tracker/internal/lib/apperr"
	"github.com/magabrotheeeer/job-tracker/internal/models"
)

// DocumentRepository определяет методы для работы с метаданными документов.
type DocumentRepository interface {
	CreateDocument(ctx context.Context, doc models.Document) (int64, error)
	ReadDocument(ctx context.Context, id int64) (*models.Document, error)
	RemoveDocument(ctx context.Context, id int64) (int64, error)
	ListDocumentsByApplication(ctx context.Context, applicationID, ownerID int64) ([]*models.Document, error)
}

// ApplicationReader дает доступ к родительскому отклику для проверки владельца.
type ApplicationReader interface {
	ReadApplication(ctx context.Context, id int64) (*models.Application, error)
}

// FileStore описывает хранилище содержимого документов.
type FileStore interface {
	Save(ownerID, applicationID int64, storedName string, r io.Reader) (int64, error)
	Open(ownerID, applicationID int64, storedName string) (io.ReadCloser, error)
	Remove(ownerID, applicationID int64, storedName string) error
}

// DocumentService реализует бизнес-логику работы с документами.
type DocumentService struct {
	repo  DocumentRepository
	apps  ApplicationReader
	files FileStore
	log   *slog.Logger
}

// NewDocumentService создает новый экземпляр DocumentService.
func NewDocumentService(repo DocumentRepository, apps ApplicationReader, files FileStore, log *slog.Logger) *DocumentService {
	return &DocumentService{
		repo:  repo,
		apps:  apps,
		files: files,
		log:   log,
	}
}

// Upload сохраняет содержимое документа на диск и метаданные в хранилище.
// Документ привязывается к отклику вызывающего пользователя; имя файла на
// диске генерируется, оригинальное имя хранится только как метаданные.
func (s *DocumentService) Upload(ctx context.Context, applicationID, callerID int64,
	originalName, contentType string, r io.Reader) (int64, error) {
	parent, err := s.apps.ReadApplication(ctx, applicationID)
	if err != nil {
		return 0, err
	}
	if parent.UserID != callerID {
		return 0, apperr.ErrForbidden
	}

	storedName := uuid.NewString() + filepath.Ext(originalName)
	size, err := s.files.Save(callerID, applicationID, storedName, r)
	if err != nil {
		return 0, err
	}

	doc := models.Document{
		ApplicationID: applicationID,
		StoredName:    storedName,
		OriginalName:  originalName,
		ContentType:   contentType,
		SizeBytes:     size,
	}
	id, err := s.repo.CreateDocument(ctx, doc)
	if err != nil {
		// Метаданные не записались, файл на диске больше никому не нужен.
		if rmErr := s.files.Remove(callerID, applicationID, storedName); rmErr != nil {
			s.log.Warn("failed to remove orphan file",
				slog.String("stored_name", storedName), slog.Any("err", rmErr))
		}
		return 0, err
	}
	s.log.Info("uploaded new document",
		slog.Int64("id", id),
		slog.Int64("application_id", applicationID),
		slog.Int64("size_bytes", size))
	return id, nil
}

// Download возвращает метаданные документа и поток его содержимого.
// Закрыть поток должен вызывающий.
func (s *DocumentService) Download(ctx context.Context, id, callerID int64) (*models.Document, io.ReadCloser, error) {
	doc, err := s.repo.ReadDocument(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	if doc.OwnerID != callerID {
		return nil, nil, apperr.ErrForbidden
	}
	content, err := s.files.Open(doc.OwnerID, doc.ApplicationID, doc.StoredName)
	if err != nil {
		return nil, nil, err
	}
	return doc, content, nil
}

// Remove удаляет метаданные документа и его файл на диске.
func (s *DocumentService) Remove(ctx context.Context, id, callerID int64) (int64, error) {
	doc, err := s.repo.ReadDocument(ctx, id)
	if err != nil {
		return 0, err
	}
	if doc.OwnerID != callerID {
		return 0, apperr.ErrForbidden
	}

	count, err := s.repo.RemoveDocument(ctx, id)
	if err != nil {
		return 0, err
	}
	if err := s.files.Remove(doc.OwnerID, doc.ApplicationID, doc.StoredName); err != nil {
		s.log.Warn("failed to remove document file",
			slog.String("stored_name", doc.StoredName), slog.Any("err", err))
	}
	return count, nil
}

// List возвращает документы одного отклика вызывающего пользователя.
func (s *DocumentService) List(ctx context.Context, applicationID, callerID int64) ([]*models.Document, error) {
	parent, err := s.apps.ReadApplication(ctx, applicationID)
	if err != nil {
		return nil, err
	}
	if parent.UserID != callerID {
		return nil, apperr.ErrForbidden
	}
	return s.repo.ListDocumentsByApplication(ctx, applicationID, callerID)
}
