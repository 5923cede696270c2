// Package read реализует HTTP-обработчик получения отклика по ID.
//
// Несуществующий отклик отдаёт 404, чужой — 403; эти исходы намеренно
// различимы для клиента.
package read

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
	"github.com/magabrotheeeer/job-tracker/internal/models"
)

// Service описывает интерфейс бизнес-логики чтения отклика.
type Service interface {
	Read(ctx context.Context, id, callerID int64) (*models.Application, error)
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
	const op = "handlers.application.read"

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

	res, err := h.service.Read(r.Context(), id, identity.UserID)
	if err != nil {
		log.Error("failed to read application", sl.Err(err))
		status, resp := response.Translate(err)
		render.Status(r, status)
		render.JSON(w, r, resp)
		return
	}

	log.Info("success to read application", slog.Int64("id", id))
	render.JSON(w, r, response.OKWithData(map[string]any{
		"application": res,
	}))
}
