package me

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/magabrotheeeer/job-tracker/internal/http/middlewarectx"
	"github.com/magabrotheeeer/job-tracker/internal/lib/apperr"
	"github.com/magabrotheeeer/job-tracker/internal/models"
)

// MockService реализует интерфейс me.Service
type MockService struct {
	mock.Mock
}

func (m *MockService) ResolveUser(ctx context.Context, userID int64) (*models.User, error) {
	args := m.Called(ctx, userID)
	user, _ := args.Get(0).(*models.User)
	return user, args.Error(1)
}

func TestMeHandler(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))

	identity := &models.AuthIdentity{
		UserID:   7,
		Email:    "alice@example.com",
		FullName: "Alice",
		Role:     models.RoleUser,
	}
	alice := &models.User{
		ID:       7,
		Email:    "alice@example.com",
		FullName: "Alice",
		Role:     models.RoleUser,
	}

	tests := []struct {
		name           string
		identity       *models.AuthIdentity
		setupMock      func(*MockService)
		expectedStatus int
		expectedBody   string
	}{
		{
			// Роль в сводке пользователя — голое имя, без префикса ROLE_.
			name:     "успешное чтение профиля",
			identity: identity,
			setupMock: func(m *MockService) {
				m.On("ResolveUser", mock.Anything, int64(7)).Return(alice, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"role":"USER"`,
		},
		{
			// Пользователь удалён после выпуска токена: отказ в доступе.
			name:     "удалённый пользователь получает 403",
			identity: identity,
			setupMock: func(m *MockService) {
				m.On("ResolveUser", mock.Anything, int64(7)).Return(nil, apperr.ErrForbidden)
			},
			expectedStatus: http.StatusForbidden,
			expectedBody:   `access denied`,
		},
		{
			name:           "без личности в контексте",
			identity:       nil,
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusUnauthorized,
			expectedBody:   `authentication required`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockService)
			tt.setupMock(mockService)

			handler := New(logger, mockService)

			req := httptest.NewRequest(http.MethodGet, "/auth/me", nil)
			if tt.identity != nil {
				ctx := context.WithValue(req.Context(), middlewarectx.Identity, tt.identity)
				req = req.WithContext(ctx)
			}
			w := httptest.NewRecorder()

			handler.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.True(t, strings.Contains(w.Body.String(), tt.expectedBody),
				"response body should contain %s, got %s", tt.expectedBody, w.Body.String())

			mockService.AssertExpectations(t)
		})
	}
}
