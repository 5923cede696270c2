package read

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/go-chi/chi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/magabrotheeeer/job-tracker/internal/http/middlewarectx"
	"github.com/magabrotheeeer/job-tracker/internal/lib/apperr"
	"github.com/magabrotheeeer/job-tracker/internal/models"
)

// MockService реализует интерфейс read.Service
type MockService struct {
	mock.Mock
}

func (m *MockService) Read(ctx context.Context, id, callerID int64) (*models.Application, error) {
	args := m.Called(ctx, id, callerID)
	if res := args.Get(0); res != nil {
		return res.(*models.Application), args.Error(1)
	}
	return nil, args.Error(1)
}

func TestReadHandler(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
	alice := &models.AuthIdentity{UserID: 1, Email: "alice@example.com"}

	tests := []struct {
		name           string
		urlID          string
		identity       *models.AuthIdentity
		setupMock      func(*MockService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name:     "успешное чтение отклика",
			urlID:    "42",
			identity: alice,
			setupMock: func(m *MockService) {
				app := &models.Application{
					ID:       42,
					UserID:   1,
					Company:  "Acme",
					Position: "Go Developer",
					Status:   models.StatusApplied,
				}
				m.On("Read", mock.Anything, int64(42), int64(1)).Return(app, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"company":"Acme"`,
		},
		{
			name:           "некорректный id в URL",
			urlID:          "abc",
			identity:       alice,
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `failed to decode id from url`,
		},
		{
			name:           "запрос без личности",
			urlID:          "42",
			identity:       nil,
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusUnauthorized,
			expectedBody:   `authentication required`,
		},
		{
			name:     "несуществующий отклик",
			urlID:    "42",
			identity: alice,
			setupMock: func(m *MockService) {
				m.On("Read", mock.Anything, int64(42), int64(1)).Return(nil, apperr.ErrNotFound)
			},
			expectedStatus: http.StatusNotFound,
			expectedBody:   `resource not found`,
		},
		{
			name:     "чужой отклик",
			urlID:    "42",
			identity: alice,
			setupMock: func(m *MockService) {
				m.On("Read", mock.Anything, int64(42), int64(1)).Return(nil, apperr.ErrForbidden)
			},
			expectedStatus: http.StatusForbidden,
			expectedBody:   `access denied`,
		},
		{
			name:     "внутренняя ошибка не раскрывает деталей",
			urlID:    "42",
			identity: alice,
			setupMock: func(m *MockService) {
				m.On("Read", mock.Anything, int64(42), int64(1)).Return(nil, errors.New("db error"))
			},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   `internal service error`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockService)
			tt.setupMock(mockService)

			handler := New(logger, mockService)

			req := httptest.NewRequest(http.MethodGet, "/applications/"+tt.urlID, nil)
			rctx := chi.NewRouteContext()
			rctx.URLParams.Add("id", tt.urlID)
			ctx := context.WithValue(req.Context(), chi.RouteCtxKey, rctx)
			if tt.identity != nil {
				ctx = context.WithValue(ctx, middlewarectx.Identity, tt.identity)
			}
			req = req.WithContext(ctx)

			w := httptest.NewRecorder()

			handler.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.True(t, strings.Contains(w.Body.String(), tt.expectedBody),
				"response body should contain %s, got %s", tt.expectedBody, w.Body.String())

			mockService.AssertExpectations(t)
		})
	}
}
