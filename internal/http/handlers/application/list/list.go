// Package list реализует HTTP-обработчик получения списка откликов
// текущего пользователя с пагинацией.
package list

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/job-tracker/internal/http/middlewarectx"
	"github.com/magabrotheeeer/job-tracker/internal/http/response"
	"github.com/magabrotheeeer/job-tracker/internal/lib/sl"
	"github.com/magabrotheeeer/job-tracker/internal/models"
)

const (
	defaultLimit = 20
	maxLimit     = 100
)

// Service описывает интерфейс бизнес-логики получения списка откликов.
type Service interface {
	List(ctx context.Context, callerID int64, limit, offset int) ([]*models.Application, error)
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
	const op = "handlers.application.list"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	limit := defaultLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 {
			limit = parsed
		}
	}
	if limit > maxLimit {
		limit = maxLimit
	}

	offset := 0
	if raw := r.URL.Query().Get("offset"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed >= 0 {
			offset = parsed
		}
	}

	identity, ok := middlewarectx.IdentityFromContext(r.Context())
	if !ok {
		log.Error("identity not found in context")
		render.Status(r, http.StatusUnauthorized)
		render.JSON(w, r, response.Error("authentication required"))
		return
	}

	res, err := h.service.List(r.Context(), identity.UserID, limit, offset)
	if err != nil {
		log.Error("failed to list applications", sl.Err(err))
		status, resp := response.Translate(err)
		render.Status(r, status)
		render.JSON(w, r, resp)
		return
	}

	log.Info("success to list applications", slog.Int("count", len(res)))
	render.JSON(w, r, response.OKWithData(map[string]any{
		"applications": res,
		"count":        len(res),
	}))
}
