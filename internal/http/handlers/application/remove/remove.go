// Package remove реализует HTTP-обработчик удаления отклика вместе с
// собеседованиями и документами под ним.
package remove

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/job-tracker/internal/http/middlewarectx"
	"github.com/magabrotheeeer/job-tracker/internal/http/response"
	"github.com/magabrotheeeer/job-tracker/internal/lib/sl"
)

// Service описывает интерфейс бизнес-логики удаления отклика.
type Service interface {
	Remove(ctx context.Context, id, callerID int64) (int64, error)
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
	const op = "handlers.application.remove"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		log.Error("failed to decode id from url", sl.Err(err))
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.Error("failed to decode id from url"))
		return
	}

	identity, ok := middlewarectx.IdentityFromContext(r.Context())
	if !ok {
		log.Error("identity not found in context")
		render.Status(r, http.StatusUnauthorized)
		render.JSON(w, r, response.Error("authentication required"))
		return
	}

	count, err := h.service.Remove(r.Context(), id, identity.UserID)
	if err != nil {
		log.Error("failed to remove application", sl.Err(err))
		status, resp := response.Translate(err)
		render.Status(r, status)
		render.JSON(w, r, resp)
		return
	}

	log.Info("success to remove application", slog.Int64("id", id))
	render.JSON(w, r, response.OKWithData(map[string]any{
		"deleted": count,
	}))
}
