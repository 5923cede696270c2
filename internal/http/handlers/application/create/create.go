// Package create реализует HTTP-обработчик создания отклика на вакансию.
// Владелец нового отклика — всегда текущий пользователь, из тела запроса
// он не принимается.
package create

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"

	"github.com/magabrotheeeer/job-tracker/internal/http/middlewarectx"
	"github.com/magabrotheeeer/job-tracker/internal/http/response"
	"github.com/magabrotheeeer/job-tracker/internal/lib/sl"
	"github.com/magabrotheeeer/job-tracker/internal/models"
)

// Service описывает интерфейс бизнес-логики создания отклика.
type Service interface {
	Create(ctx context.Context, ownerID int64, req models.DummyApplication) (int64, error)
}

type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		validate: validator.New(),
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.application.create"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req models.DummyApplication
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("failed to decode request body", sl.Err(err))
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}

	if err := h.validate.Struct(req); err != nil {
		log.Error("validation failed", sl.Err(err))
		render.Status(r, http.StatusUnprocessableEntity)
		render.JSON(w, r, response.ValidationError(err.(validator.ValidationErrors)))
		return
	}

	identity, ok := middlewarectx.IdentityFromContext(r.Context())
	if !ok {
		log.Error("identity not found in context")
		render.Status(r, http.StatusUnauthorized)
		render.JSON(w, r, response.Error("authentication required"))
		return
	}

	id, err := h.service.Create(r.Context(), identity.UserID, req)
	if err != nil {
		log.Error("failed to create application", sl.Err(err))
		status, resp := response.Translate(err)
		render.Status(r, status)
		render.JSON(w, r, resp)
		return
	}

	log.Info("success to create application", slog.Int64("id", id))
	render.Status(r, http.StatusCreated)
	render.JSON(w, r, response.OKWithData(map[string]any{
		"id": id,
	}))
}
