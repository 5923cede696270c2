// Package services содержит бизнес-логику работы с собеседованиями.
// Право доступа к собеседованию всегда определяется владельцем
// родительского отклика.
package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/magabrotheeeer/job-tracker/internal/lib/apperr"
	"github.com/magabrotheeeer/job-tracker/internal/models"
)

// InterviewRepository определяет методы для работы с собеседованиями в хранилище.
type InterviewRepository interface {
	CreateInterview(ctx context.Context, itv models.Interview) (int64, error)
	ReadInterview(ctx context.Context, id int64) (*models.Interview, error)
	UpdateInterview(ctx context.Context, itv models.Interview, id int64) (int64, error)
	RemoveInterview(ctx context.Context, id int64) (int64, error)
	ListInterviewsByApplication(ctx context.Context, applicationID, ownerID int64) ([]*models.Interview, error)
}

// ApplicationReader дает доступ к родительскому отклику для проверки владельца.
type ApplicationReader interface {
	ReadApplication(ctx context.Context, id int64) (*models.Application, error)
}

// InterviewService реализует бизнес-логику работы с собеседованиями.
type InterviewService struct {
	repo InterviewRepository
	apps ApplicationReader
	log  *slog.Logger
}

// NewInterviewService создает новый экземпляр InterviewService.
func NewInterviewService(repo InterviewRepository, apps ApplicationReader, log *slog.Logger) *InterviewService {
	return &InterviewService{
		repo: repo,
		apps: apps,
		log:  log,
	}
}

// Create создает собеседование под откликом вызывающего пользователя.
// Если родительский отклик не существует — apperr.ErrNotFound, если
// принадлежит другому пользователю — apperr.ErrForbidden.
func (s *InterviewService) Create(ctx context.Context, applicationID, callerID int64, req models.DummyInterview) (int64, error) {
	parent, err := s.apps.ReadApplication(ctx, applicationID)
	if err != nil {
		return 0, err
	}
	if parent.UserID != callerID {
		return 0, apperr.ErrForbidden
	}

	scheduledAt, err := time.Parse(time.RFC3339, req.ScheduledAt)
	if err != nil {
		return 0, fmt.Errorf("invalid scheduled time: %w", err)
	}

	itv := models.Interview{
		ApplicationID: applicationID,
		Kind:          req.Kind,
		ScheduledAt:   scheduledAt,
		Location:      req.Location,
		Notes:         req.Notes,
	}

	id, err := s.repo.CreateInterview(ctx, itv)
	if err != nil {
		return 0, err
	}
	s.log.Info("created new interview",
		slog.Int64("id", id),
		slog.Int64("application_id", applicationID))
	return id, nil
}

// Read возвращает собеседование по ID, сверяя владельца родительского отклика.
func (s *InterviewService) Read(ctx context.Context, id, callerID int64) (*models.Interview, error) {
	itv, err := s.repo.ReadInterview(ctx, id)
	if err != nil {
		return nil, err
	}
	if itv.OwnerID != callerID {
		return nil, apperr.ErrForbidden
	}
	return itv, nil
}

// Update обновляет собеседование. Родительский отклик при этом не меняется.
func (s *InterviewService) Update(ctx context.Context, req models.DummyInterview, id, callerID int64) (int64, error) {
	existing, err := s.repo.ReadInterview(ctx, id)
	if err != nil {
		return 0, err
	}
	if existing.OwnerID != callerID {
		return 0, apperr.ErrForbidden
	}

	scheduledAt, err := time.Parse(time.RFC3339, req.ScheduledAt)
	if err != nil {
		return 0, fmt.Errorf("invalid scheduled time: %w", err)
	}

	itv := models.Interview{
		Kind:        req.Kind,
		ScheduledAt: scheduledAt,
		Location:    req.Location,
		Notes:       req.Notes,
	}
	return s.repo.UpdateInterview(ctx, itv, id)
}

// Remove удаляет собеседование по ID.
func (s *InterviewService) Remove(ctx context.Context, id, callerID int64) (int64, error) {
	existing, err := s.repo.ReadInterview(ctx, id)
	if err != nil {
		return 0, err
	}
	if existing.OwnerID != callerID {
		return 0, apperr.ErrForbidden
	}
	return s.repo.RemoveInterview(ctx, id)
}

// List возвращает собеседования одного отклика вызывающего пользователя.
// Если отклик чужой, список окажется пустым только после явной проверки
// родителя, поэтому сначала читаем родительский отклик.
func (s *InterviewService) List(ctx context.Context, applicationID, callerID int64) ([]*models.Interview, error) {
	parent, err := s.apps.ReadApplication(ctx, applicationID)
	if err != nil {
		return nil, err
	}
	if parent.UserID != callerID {
		return nil, apperr.ErrForbidden
	}
	return s.repo.ListInterviewsByApplication(ctx, applicationID, callerID)
}
