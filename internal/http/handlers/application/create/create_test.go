package create

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
	"github.com/magabrotheeeer/job-tracker/internal/models"
)

// MockService реализует интерфейс create.Service
type MockService struct {
	mock.Mock
}

func (m *MockService) Create(ctx context.Context, ownerID int64, req models.DummyApplication) (int64, error) {
	args := m.Called(ctx, ownerID, req)
	return args.Get(0).(int64), args.Error(1)
}

func TestCreateHandler(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
	alice := &models.AuthIdentity{UserID: 1, Email: "alice@example.com"}

	tests := []struct {
		name           string
		body           string
		identity       *models.AuthIdentity
		setupMock      func(*MockService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name:     "успешное создание отклика",
			body:     `{"company":"Acme","position":"Go Developer","applied_date":"15-08-2026"}`,
			identity: alice,
			setupMock: func(m *MockService) {
				m.On("Create", mock.Anything, int64(1), mock.MatchedBy(func(req models.DummyApplication) bool {
					return req.Company == "Acme" && req.AppliedDate == "15-08-2026"
				})).Return(int64(42), nil)
			},
			expectedStatus: http.StatusCreated,
			expectedBody:   `"id":42`,
		},
		{
			name:           "нет обязательных полей",
			body:           `{"company":"Acme"}`,
			identity:       alice,
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusUnprocessableEntity,
			expectedBody:   `field Position is a required field`,
		},
		{
			name:           "недопустимый статус",
			body:           `{"company":"Acme","position":"Go Developer","status":"GHOSTED","applied_date":"15-08-2026"}`,
			identity:       alice,
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusUnprocessableEntity,
			expectedBody:   `field Status has unsupported value`,
		},
		{
			name:           "запрос без личности",
			body:           `{"company":"Acme","position":"Go Developer","applied_date":"15-08-2026"}`,
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

			req := httptest.NewRequest(http.MethodPost, "/applications", strings.NewReader(tt.body))
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
