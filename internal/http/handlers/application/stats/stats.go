// Package stats реализует HTTP-обработчик сводки откликов по статусам.
// Данные используются дашбордом для построения диаграммы.
package stats

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/job-tracker/internal/http/middlewarectx"
	"github.com/magabrotheeeer/job-tracker/internal/http/response"
	"github.com/magabrotheeeer/job-tracker/internal/lib/sl"
	"github.com/magabrotheeeer/job-tracker/internal/models"
)

// Service описывает интерфейс бизнес-логики подсчёта откликов по статусам.
type Service interface {
	CountByStatus(ctx context.Context, callerID int64) ([]*models.StatusCount, error)
}

type Handler struct {
	log     *slog.Logger
	service Service
}

func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.application.stats"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	identity, ok := middlewarectx.IdentityFromContext(r.Context())
	if !ok {
		log.Error("identity not found in context")
		render.Status(r, http.StatusUnauthorized)
		render.JSON(w, r, response.Error("authentication required"))
		return
	}

	res, err := h.service.CountByStatus(r.Context(), identity.UserID)
	if err != nil {
		log.Error("failed to count applications by status", sl.Err(err))
		status, resp := response.Translate(err)
		render.Status(r, status)
		render.JSON(w, r, resp)
		return
	}

	log.Info("success to count applications by status")
	render.JSON(w, r, response.OKWithData(map[string]any{
		"statuses": res,
	}))
}
