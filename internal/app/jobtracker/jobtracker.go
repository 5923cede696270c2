// Package jobtracker собирает основное HTTP-приложение: хранилище,
// миграции, кеш, файловое хранилище, сервисы и маршруты.
package jobtracker

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi"

	"github.com/magabrotheeeer/job-tracker/internal/cache"
	"github.com/magabrotheeeer/job-tracker/internal/config"
	"github.com/magabrotheeeer/job-tracker/internal/lib/jwt"
	"github.com/magabrotheeeer/job-tracker/internal/migrations"
	applicationservice "github.com/magabrotheeeer/job-tracker/internal/services/application"
	authservice "github.com/magabrotheeeer/job-tracker/internal/services/auth"
	documentservice "github.com/magabrotheeeer/job-tracker/internal/services/document"
	interviewservice "github.com/magabrotheeeer/job-tracker/internal/services/interview"
	"github.com/magabrotheeeer/job-tracker/internal/storage/filestore"
	"github.com/magabrotheeeer/job-tracker/internal/storage/repository"
)

type App struct {
	server *http.Server
	logger *slog.Logger
	db     *repository.Storage
	cache  *cache.Cache
}

func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	db, err := repository.New(cfg.StorageConnectionString)
	if err != nil {
		return nil, err
	}
	if err = migrations.Run(db.DB, "./migrations"); err != nil {
		return nil, err
	}

	cacheRedis, err := cache.InitServer(ctx, cfg.RedisConnection)
	if err != nil {
		return nil, err
	}

	files, err := filestore.New(cfg.UploadDir)
	if err != nil {
		return nil, err
	}

	jwtMaker := jwt.NewMaker(cfg.JWTSecretKey, cfg.TokenTTL)
	authService := authservice.NewAuthService(db, jwtMaker)
	applicationService := applicationservice.NewApplicationService(db, cacheRedis, files, logger)
	interviewService := interviewservice.NewInterviewService(db, db, logger)
	documentService := documentservice.NewDocumentService(db, db, files, logger)

	router := chi.NewRouter()
	RegisterRoutes(router, logger, authService,
		applicationService, interviewService, documentService)

	srv := &http.Server{
		Addr:         cfg.AddressHTTP,
		Handler:      router,
		ReadTimeout:  cfg.TimeoutHTTP,
		WriteTimeout: cfg.TimeoutHTTP,
		IdleTimeout:  cfg.IdleTimeout,
	}

	return &App{
		server: srv,
		logger: logger,
		db:     db,
		cache:  cacheRedis,
	}, nil
}

func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("HTTP server starting on", slog.String("address", a.server.Addr))
		err := a.server.ListenAndServe()
		if errors.Is(err, http.ErrServerClosed) {
			errCh <- nil
		} else {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		timeoutCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		a.logger.Info("shutting down HTTP server gracefully")
		err := a.server.Shutdown(timeoutCtx)
		_ = a.db.DB.Close()
		return err
	}
}
