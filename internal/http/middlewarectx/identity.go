// Package middlewarectx содержит HTTP middleware для установления и проверки
// личности пользователя по JWT токену.
//
// IdentityMiddleware только извлекает личность из заголовка Authorization и
// кладет её в контекст, никогда не прерывая цепочку: анонимный запрос
// проходит дальше без личности. Решение «пускать или нет» принимает
// отдельный RequireAuth на защищённых маршрутах: без личности это 401,
// а подлинный токен исчезнувшего пользователя — 403.
package middlewarectx

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/job-tracker/internal/http/response"
	"github.com/magabrotheeeer/job-tracker/internal/lib/apperr"
	"github.com/magabrotheeeer/job-tracker/internal/models"
)

// Key тип для ключей контекста HTTP-запроса.
type Key string

// Identity — ключ для личности пользователя в контексте.
const Identity Key = "identity"

// authFailure — ключ для причины, по которой личность не установилась.
const authFailure Key = "auth_failure"

// Authenticator описывает интерфейс сервиса для проверки JWT токена.
type Authenticator interface {
	Authenticate(ctx context.Context, tokenStr string) (*models.AuthIdentity, error)
}

// IdentityFromContext возвращает личность пользователя из контекста запроса.
func IdentityFromContext(ctx context.Context) (*models.AuthIdentity, bool) {
	identity, ok := ctx.Value(Identity).(*models.AuthIdentity)
	return identity, ok && identity != nil
}

// IdentityMiddleware возвращает HTTP middleware, который извлекает JWT из
// заголовка Authorization и кладет личность пользователя в контекст.
//
// Любой сбой токена — отсутствие, мусор, просрочка, исчезнувший
// пользователь — даёт один исход: запрос идёт дальше анонимным. Причина
// сбоя сохраняется в контексте, чтобы RequireAuth мог её различить.
func IdentityMiddleware(auth Authenticator, log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			const op = "middlewarectx.IdentityMiddleware"

			authHeader := r.Header.Get("Authorization")
			if !strings.HasPrefix(authHeader, "Bearer ") {
				next.ServeHTTP(w, r)
				return
			}
			tokenStr := strings.TrimPrefix(authHeader, "Bearer ")

			identity, err := auth.Authenticate(r.Context(), tokenStr)
			if err != nil {
				log.With(
					slog.String("op", op),
					slog.String("request_id", middleware.GetReqID(r.Context())),
				).Info("request carries unusable token, proceeding as anonymous")
				ctx := context.WithValue(r.Context(), authFailure, err)
				next.ServeHTTP(w, r.WithContext(ctx))
				return
			}

			ctx := context.WithValue(r.Context(), Identity, identity)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireAuth возвращает HTTP middleware, который пускает дальше только
// запросы с установленной личностью. Анонимный запрос и запрос с негодным
// токеном получают 401; подлинный непросроченный токен пользователя,
// которого больше нет, — 403.
func RequireAuth(log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			const op = "middlewarectx.RequireAuth"

			if _, ok := IdentityFromContext(r.Context()); !ok {
				log.With(
					slog.String("op", op),
					slog.String("request_id", middleware.GetReqID(r.Context())),
				).Error("missing or invalid authorization")
				if err, ok := r.Context().Value(authFailure).(error); ok &&
					errors.Is(err, apperr.ErrForbidden) {
					status, resp := response.Translate(err)
					render.Status(r, status)
					render.JSON(w, r, resp)
					return
				}
				render.Status(r, http.StatusUnauthorized)
				render.JSON(w, r, response.Error("authentication required"))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
