// Package jobtracker предоставляет маршруты для основного приложения.
package jobtracker

import (
	"log/slog"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"

	applicationcreate "github.com/magabrotheeeer/job-tracker/internal/http/handlers/application/create"
	applicationlist "github.com/magabrotheeeer/job-tracker/internal/http/handlers/application/list"
	applicationread "github.com/magabrotheeeer/job-tracker/internal/http/handlers/application/read"
	applicationremove "github.com/magabrotheeeer/job-tracker/internal/http/handlers/application/remove"
	applicationstats "github.com/magabrotheeeer/job-tracker/internal/http/handlers/application/stats"
	applicationupdate "github.com/magabrotheeeer/job-tracker/internal/http/handlers/application/update"
	"github.com/magabrotheeeer/job-tracker/internal/http/handlers/auth/login"
	"github.com/magabrotheeeer/job-tracker/internal/http/handlers/auth/me"
	"github.com/magabrotheeeer/job-tracker/internal/http/handlers/auth/register"
	documentdownload "github.com/magabrotheeeer/job-tracker/internal/http/handlers/document/download"
	documentlist "github.com/magabrotheeeer/job-tracker/internal/http/handlers/document/list"
	documentremove "github.com/magabrotheeeer/job-tracker/internal/http/handlers/document/remove"
	documentupload "github.com/magabrotheeeer/job-tracker/internal/http/handlers/document/upload"
	"github.com/magabrotheeeer/job-tracker/internal/http/handlers/health"
	interviewcreate "github.com/magabrotheeeer/job-tracker/internal/http/handlers/interview/create"
	interviewlist "github.com/magabrotheeeer/job-tracker/internal/http/handlers/interview/list"
	interviewread "github.com/magabrotheeeer/job-tracker/internal/http/handlers/interview/read"
	interviewremove "github.com/magabrotheeeer/job-tracker/internal/http/handlers/interview/remove"
	interviewupdate "github.com/magabrotheeeer/job-tracker/internal/http/handlers/interview/update"
	"github.com/magabrotheeeer/job-tracker/internal/http/middlewarectx"
	applicationservice "github.com/magabrotheeeer/job-tracker/internal/services/application"
	authservice "github.com/magabrotheeeer/job-tracker/internal/services/auth"
	documentservice "github.com/magabrotheeeer/job-tracker/internal/services/document"
	interviewservice "github.com/magabrotheeeer/job-tracker/internal/services/interview"
)

// RegisterRoutes регистрирует все маршруты приложения.
//
// Установление личности глобально и никого не отсекает; доступ к
// защищённым группам закрывает RequireAuth.
func RegisterRoutes(r chi.Router, logger *slog.Logger,
	authService *authservice.AuthService,
	applicationService *applicationservice.ApplicationService,
	interviewService *interviewservice.InterviewService,
	documentService *documentservice.DocumentService,
) {
	// Глобальные middleware
	r.Use(
		middleware.RequestID,
		middleware.Logger,
		middleware.Recoverer,
		middleware.URLFormat,
	)
	r.Use(middlewarectx.IdentityMiddleware(authService, logger))

	r.Route("/api/v1", func(r chi.Router) {
		// Открытые конечные точки
		r.Post("/auth/register", register.New(logger, authService).ServeHTTP)
		r.Post("/auth/login", login.New(logger, authService).ServeHTTP)

		// Группа защищённых маршрутов
		r.Group(func(r chi.Router) {
			r.Use(middlewarectx.RequireAuth(logger))
			r.Use(middlewarectx.RateLimitMiddleware(logger))

			r.Get("/auth/me", me.New(logger, authService).ServeHTTP)

			r.Post("/applications", applicationcreate.New(logger, applicationService).ServeHTTP)
			r.Get("/applications/list", applicationlist.New(logger, applicationService).ServeHTTP)
			r.Get("/applications/stats", applicationstats.New(logger, applicationService).ServeHTTP)
			r.Get("/applications/{id}", applicationread.New(logger, applicationService).ServeHTTP)
			r.Put("/applications/{id}", applicationupdate.New(logger, applicationService).ServeHTTP)
			r.Delete("/applications/{id}", applicationremove.New(logger, applicationService).ServeHTTP)

			r.Post("/interviews", interviewcreate.New(logger, interviewService).ServeHTTP)
			r.Get("/interviews/list", interviewlist.New(logger, interviewService).ServeHTTP)
			r.Get("/interviews/{id}", interviewread.New(logger, interviewService).ServeHTTP)
			r.Put("/interviews/{id}", interviewupdate.New(logger, interviewService).ServeHTTP)
			r.Delete("/interviews/{id}", interviewremove.New(logger, interviewService).ServeHTTP)

			r.Post("/documents", documentupload.New(logger, documentService).ServeHTTP)
			r.Get("/documents/list", documentlist.New(logger, documentService).ServeHTTP)
			r.Get("/documents/{id}", documentdownload.New(logger, documentService).ServeHTTP)
			r.Delete("/documents/{id}", documentremove.New(logger, documentService).ServeHTTP)
		})
	})

	r.Get("/health", health.New(logger).ServeHTTP)
	r.Handle("/metrics", promhttp.Handler())
	// Swagger docs endpoint
	r.Get("/docs/*", httpSwagger.WrapHandler)
}
