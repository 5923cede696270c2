// Package services содержит бизнес-логику работы с откликами на вакансии,
// включая проверку владельца и кеширование чтений.
package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/magabrotheeeer/job-tracker/internal/lib/apperr"
	"github.com/magabrotheeeer/job-tracker/internal/models"
)

// ApplicationRepository определяет методы для работы с откликами в хранилище.
type ApplicationRepository interface {
	// CreateApplication добавляет новый отклик и возвращает его ID.
	CreateApplication(ctx context.Context, app models.Application) (int64, error)
	// ReadApplication возвращает отклик по ID вместе с владельцем.
	ReadApplication(ctx context.Context, id int64) (*models.Application, error)
	// UpdateApplication обновляет поля отклика по ID.
	UpdateApplication(ctx context.Context, app models.Application, id int64) (int64, error)
	// RemoveApplication удаляет отклик по ID.
	RemoveApplication(ctx context.Context, id int64) (int64, error)
	// ListApplicationsByOwner возвращает отклики пользователя с пагинацией.
	ListApplicationsByOwner(ctx context.Context, ownerID int64, limit, offset int) ([]*models.Application, error)
	// CountApplicationsByStatus считает отклики пользователя по статусам.
	CountApplicationsByStatus(ctx context.Context, ownerID int64) ([]*models.StatusCount, error)
}

// Cache описывает методы для кэширования данных.
type Cache interface {
	Get(key string, result any) (bool, error)
	Set(key string, value any, expiration time.Duration) error
	Invalidate(key string) error
}

// FileStore описывает удаление файлов отклика при каскадном удалении.
type FileStore interface {
	RemoveApplicationDir(ownerID, applicationID int64) error
}

// ApplicationService реализует бизнес-логику работы с откликами.
type ApplicationService struct {
	repo  ApplicationRepository
	cache Cache
	files FileStore
	log   *slog.Logger
}

// NewApplicationService создает новый экземпляр ApplicationService.
func NewApplicationService(repo ApplicationRepository, cache Cache, files FileStore, log *slog.Logger) *ApplicationService {
	return &ApplicationService{
		repo:  repo,
		cache: cache,
		files: files,
		log:   log,
	}
}

// Create создает новый отклик. Владельцем записывается вызывающий
// пользователь; далее владелец не меняется ни одной операцией.
func (s *ApplicationService) Create(ctx context.Context, ownerID int64, req models.DummyApplication) (int64, error) {
	appliedDate, err := time.Parse("02-01-2006", req.AppliedDate)
	if err != nil {
		return 0, fmt.Errorf("invalid applied date: %w", err)
	}

	status := req.Status
	if status == "" {
		status = models.StatusApplied
	}

	app := models.Application{
		UserID:      ownerID,
		Company:     req.Company,
		Position:    req.Position,
		Status:      status,
		JobLink:     req.JobLink,
		AppliedDate: appliedDate,
		Notes:       req.Notes,
	}

	id, err := s.repo.CreateApplication(ctx, app)
	if err != nil {
		return 0, err
	}
	s.log.Info("created new application", slog.Int64("id", id))
	return id, nil
}

// Read возвращает отклик по ID, используя кеш или репозиторий.
//
// Несуществующий ID — apperr.ErrNotFound, чужой отклик — apperr.ErrForbidden;
// это разные исходы и наружу они отображаются по-разному (404 и 403).
// Проверка владельца выполняется и для значения из кеша.
func (s *ApplicationService) Read(ctx context.Context, id, callerID int64) (*models.Application, error) {
	cacheKey := fmt.Sprintf("application:%d", id)
	var result *models.Application
	found, err := s.cache.Get(cacheKey, &result)
	if err != nil {
		s.log.Warn("failed to read from cache", slog.String("key", cacheKey), slog.Any("err", err))
		found = false
	}
	if !found {
		result, err = s.repo.ReadApplication(ctx, id)
		if err != nil {
			return nil, err
		}
		if err := s.cache.Set(cacheKey, result, time.Hour); err != nil {
			s.log.Warn("failed to add to cache", slog.String("key", cacheKey), slog.Any("err", err))
		}
	}

	if result.UserID != callerID {
		return nil, apperr.ErrForbidden
	}
	return result, nil
}

// Update обновляет отклик и инвалидирует кеш. Сначала запись читается по
// голому ID, чтобы сохранить различие «не найдено» / «чужое».
func (s *ApplicationService) Update(ctx context.Context, req models.DummyApplication, id, callerID int64) (int64, error) {
	existing, err := s.repo.ReadApplication(ctx, id)
	if err != nil {
		return 0, err
	}
	if existing.UserID != callerID {
		return 0, apperr.ErrForbidden
	}

	appliedDate, err := time.Parse("02-01-2006", req.AppliedDate)
	if err != nil {
		return 0, fmt.Errorf("invalid applied date: %w", err)
	}

	status := req.Status
	if status == "" {
		status = existing.Status
	}

	app := models.Application{
		Company:     req.Company,
		Position:    req.Position,
		Status:      status,
		JobLink:     req.JobLink,
		AppliedDate: appliedDate,
		Notes:       req.Notes,
	}

	count, err := s.repo.UpdateApplication(ctx, app, id)
	if err != nil {
		return 0, err
	}

	cacheKey := fmt.Sprintf("application:%d", id)
	if err := s.cache.Invalidate(cacheKey); err != nil {
		s.log.Warn("failed to invalidate cache", slog.String("key", cacheKey), slog.Any("err", err))
	}
	return count, nil
}

// Remove удаляет отклик, его файлы на диске и запись в кеше.
func (s *ApplicationService) Remove(ctx context.Context, id, callerID int64) (int64, error) {
	existing, err := s.repo.ReadApplication(ctx, id)
	if err != nil {
		return 0, err
	}
	if existing.UserID != callerID {
		return 0, apperr.ErrForbidden
	}

	count, err := s.repo.RemoveApplication(ctx, id)
	if err != nil {
		return 0, err
	}

	if err := s.files.RemoveApplicationDir(callerID, id); err != nil {
		s.log.Warn("failed to remove application files", slog.Int64("id", id), slog.Any("err", err))
	}

	cacheKey := fmt.Sprintf("application:%d", id)
	if err := s.cache.Invalidate(cacheKey); err != nil {
		s.log.Warn("failed to invalidate cache", slog.String("key", cacheKey), slog.Any("err", err))
	}
	return count, nil
}

// List возвращает отклики вызывающего пользователя с пагинацией.
// Фильтр по владельцу уходит в SQL, общая выборка никогда не строится.
func (s *ApplicationService) List(ctx context.Context, callerID int64, limit, offset int) ([]*models.Application, error) {
	return s.repo.ListApplicationsByOwner(ctx, callerID, limit, offset)
}

// CountByStatus возвращает распределение откликов вызывающего по статусам.
func (s *ApplicationService) CountByStatus(ctx context.Context, callerID int64) ([]*models.StatusCount, error) {
	return s.repo.CountApplicationsByStatus(ctx, callerID)
}
