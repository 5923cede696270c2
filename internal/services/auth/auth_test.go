package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/job-tracker/internal/lib/apperr"
	"github.com/magabrotheeeer/job-tracker/internal/lib/jwt"
	"github.com/magabrotheeeer/job-tracker/internal/lib/password"
	"github.com/magabrotheeeer/job-tracker/internal/models"
)

type UsersMock struct{ mock.Mock }

func (m *UsersMock) CreateUser(ctx context.Context, user models.User) (int64, error) {
	args := m.Called(ctx, user)
	return args.Get(0).(int64), args.Error(1)
}

func (m *UsersMock) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *UsersMock) GetUserByID(ctx context.Context, id int64) (*models.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *UsersMock) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	args := m.Called(ctx, email)
	return args.Bool(0), args.Error(1)
}

func newMaker() jwt.Maker {
	return jwt.NewMaker("test_secret_key_1234567890", 15*time.Minute)
}

func TestAuthService_Register(t *testing.T) {
	tests := []struct {
		name       string
		setupMocks func(u *UsersMock)
		wantErr    error
	}{
		{
			name: "success register",
			setupMocks: func(u *UsersMock) {
				u.On("ExistsByEmail", mock.Anything, "alice@example.com").Return(false, nil).Once()
				u.On("CreateUser", mock.Anything, mock.MatchedBy(func(user models.User) bool {
					return user.Email == "alice@example.com" &&
						user.Role == models.RoleUser &&
						user.PasswordHash != "" &&
						user.PasswordHash != "secret-password"
				})).Return(int64(7), nil).Once()
			},
		},
		{
			name: "email already taken",
			setupMocks: func(u *UsersMock) {
				u.On("ExistsByEmail", mock.Anything, "alice@example.com").Return(true, nil).Once()
			},
			wantErr: apperr.ErrEmailTaken,
		},
		{
			name: "storage failure",
			setupMocks: func(u *UsersMock) {
				u.On("ExistsByEmail", mock.Anything, "alice@example.com").Return(false, errors.New("db error")).Once()
			},
			wantErr: errors.New("db error"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			users := new(UsersMock)
			tt.setupMocks(users)
			service := NewAuthService(users, newMaker())

			token, identity, err := service.Register(context.Background(), "Alice", "alice@example.com", "secret-password")

			if tt.wantErr != nil {
				require.Error(t, err)
				if errors.Is(tt.wantErr, apperr.ErrEmailTaken) {
					assert.ErrorIs(t, err, apperr.ErrEmailTaken)
				}
				assert.Empty(t, token)
				assert.Nil(t, identity)
			} else {
				require.NoError(t, err)
				assert.NotEmpty(t, token)
				require.NotNil(t, identity)
				assert.Equal(t, int64(7), identity.UserID)
				assert.Equal(t, models.RoleUser, identity.Role)
			}
			users.AssertExpectations(t)
		})
	}
}

func TestAuthService_Login(t *testing.T) {
	hashed, err := password.GetHash("correct-password")
	require.NoError(t, err)

	alice := &models.User{
		ID:           7,
		Email:        "alice@example.com",
		FullName:     "Alice",
		PasswordHash: hashed,
		Role:         models.RoleUser,
	}

	tests := []struct {
		name        string
		rawPassword string
		setupMocks  func(u *UsersMock)
		wantErr     error
	}{
		{
			name:        "success login",
			rawPassword: "correct-password",
			setupMocks: func(u *UsersMock) {
				u.On("GetUserByEmail", mock.Anything, "alice@example.com").Return(alice, nil).Once()
			},
		},
		{
			name:        "unknown email",
			rawPassword: "correct-password",
			setupMocks: func(u *UsersMock) {
				u.On("GetUserByEmail", mock.Anything, "alice@example.com").Return(nil, apperr.ErrNotFound).Once()
			},
			wantErr: apperr.ErrInvalidCredentials,
		},
		{
			name:        "wrong password",
			rawPassword: "wrong-password",
			setupMocks: func(u *UsersMock) {
				u.On("GetUserByEmail", mock.Anything, "alice@example.com").Return(alice, nil).Once()
			},
			wantErr: apperr.ErrInvalidCredentials,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			users := new(UsersMock)
			tt.setupMocks(users)
			service := NewAuthService(users, newMaker())

			token, identity, err := service.Login(context.Background(), "alice@example.com", tt.rawPassword)

			if tt.wantErr != nil {
				require.Error(t, err)
				assert.ErrorIs(t, err, tt.wantErr)
				// «Не найдено» наружу не просачивается.
				assert.NotErrorIs(t, err, apperr.ErrNotFound)
				assert.Empty(t, token)
				assert.Nil(t, identity)
			} else {
				require.NoError(t, err)
				assert.NotEmpty(t, token)
				require.NotNil(t, identity)
				assert.Equal(t, alice.ID, identity.UserID)
			}
			users.AssertExpectations(t)
		})
	}
}

func TestAuthService_Authenticate(t *testing.T) {
	maker := newMaker()
	alice := &models.User{
		ID:       7,
		Email:    "alice@example.com",
		FullName: "Alice",
		Role:     models.RoleUser,
	}

	validToken, err := maker.GenerateToken(alice.Email)
	require.NoError(t, err)

	expiredMaker := jwt.NewMaker("test_secret_key_1234567890", -time.Minute)
	expiredToken, err := expiredMaker.GenerateToken(alice.Email)
	require.NoError(t, err)

	tests := []struct {
		name       string
		token      string
		setupMocks func(u *UsersMock)
		wantErr    error
	}{
		{
			name:  "success authenticate",
			token: validToken,
			setupMocks: func(u *UsersMock) {
				u.On("GetUserByEmail", mock.Anything, alice.Email).Return(alice, nil).Once()
			},
		},
		{
			name:       "garbage token",
			token:      "invalid.token.here",
			setupMocks: func(_ *UsersMock) {},
			wantErr:    apperr.ErrUnauthenticated,
		},
		{
			// Токен подлинный и непросроченный, но принципала больше нет:
			// это отказ в доступе, а не сбой аутентификации.
			name:  "user vanished after token issue",
			token: validToken,
			setupMocks: func(u *UsersMock) {
				u.On("GetUserByEmail", mock.Anything, alice.Email).Return(nil, apperr.ErrNotFound).Once()
			},
			wantErr: apperr.ErrForbidden,
		},
		{
			// Просрочка выясняется до обращения к хранилищу.
			name:       "expired token",
			token:      expiredToken,
			setupMocks: func(_ *UsersMock) {},
			wantErr:    apperr.ErrUnauthenticated,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			users := new(UsersMock)
			tt.setupMocks(users)
			service := NewAuthService(users, maker)

			identity, err := service.Authenticate(context.Background(), tt.token)

			if tt.wantErr != nil {
				require.Error(t, err)
				assert.ErrorIs(t, err, tt.wantErr)
				if errors.Is(tt.wantErr, apperr.ErrForbidden) {
					// Исчезнувший принципал не маскируется под сбой токена.
					assert.NotErrorIs(t, err, apperr.ErrUnauthenticated)
				}
				assert.Nil(t, identity)
			} else {
				require.NoError(t, err)
				require.NotNil(t, identity)
				assert.Equal(t, alice.ID, identity.UserID)
				assert.Equal(t, alice.Email, identity.Email)
			}
			users.AssertExpectations(t)
		})
	}
}

func TestAuthService_ResolveUser(t *testing.T) {
	alice := &models.User{ID: 7, Email: "alice@example.com"}

	tests := []struct {
		name       string
		setupMocks func(u *UsersMock)
		wantErr    error
	}{
		{
			name: "success resolve",
			setupMocks: func(u *UsersMock) {
				u.On("GetUserByID", mock.Anything, int64(7)).Return(alice, nil).Once()
			},
		},
		{
			name: "deleted user maps to forbidden",
			setupMocks: func(u *UsersMock) {
				u.On("GetUserByID", mock.Anything, int64(7)).Return(nil, apperr.ErrNotFound).Once()
			},
			wantErr: apperr.ErrForbidden,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			users := new(UsersMock)
			tt.setupMocks(users)
			service := NewAuthService(users, newMaker())

			user, err := service.ResolveUser(context.Background(), 7)

			if tt.wantErr != nil {
				require.Error(t, err)
				assert.ErrorIs(t, err, tt.wantErr)
				assert.NotErrorIs(t, err, apperr.ErrNotFound)
				assert.Nil(t, user)
			} else {
				require.NoError(t, err)
				assert.Equal(t, alice, user)
			}
			users.AssertExpectations(t)
		})
	}
}
