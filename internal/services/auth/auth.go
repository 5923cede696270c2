// Package services содержит логику бизнес-уровня для регистрации,
// входа и проверки личности по токену.
package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/magabrotheeeer/job-tracker/internal/lib/apperr"
	"github.com/magabrotheeeer/job-tracker/internal/lib/jwt"
	"github.com/magabrotheeeer/job-tracker/internal/lib/password"
	"github.com/magabrotheeeer/job-tracker/internal/models"
)

// UserRepository описывает контракт для работы с пользователями в базе данных.
type UserRepository interface {
	// CreateUser сохраняет нового пользователя и возвращает его ID.
	CreateUser(ctx context.Context, user models.User) (int64, error)

	// GetUserByEmail возвращает пользователя по email
	// или apperr.ErrNotFound, если такого нет.
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)

	// GetUserByID возвращает пользователя по ID
	// или apperr.ErrNotFound, если такого нет.
	GetUserByID(ctx context.Context, id int64) (*models.User, error)

	// ExistsByEmail проверяет, занят ли email.
	ExistsByEmail(ctx context.Context, email string) (bool, error)
}

// AuthService отвечает за регистрацию, вход и разбор токена в личность запроса.
type AuthService struct {
	users    UserRepository
	jwtMaker jwt.Maker
}

// NewAuthService создает новый экземпляр AuthService.
func NewAuthService(users UserRepository, jwtMaker jwt.Maker) *AuthService {
	return &AuthService{
		users:    users,
		jwtMaker: jwtMaker,
	}
}

// Register создает нового пользователя с хэшированием пароля и ролью USER
// по умолчанию. Регистрация сразу аутентифицирует: вместе с данными
// пользователя возвращается выпущенный токен, отдельный вход не нужен.
func (s *AuthService) Register(ctx context.Context, fullName, email, rawPassword string) (string, *models.AuthIdentity, error) {
	const op = "services.auth.Register"

	exists, err := s.users.ExistsByEmail(ctx, email)
	if err != nil {
		return "", nil, fmt.Errorf("%s: %w", op, err)
	}
	if exists {
		return "", nil, fmt.Errorf("%s: %w", op, apperr.ErrEmailTaken)
	}

	hashed, err := password.GetHash(rawPassword)
	if err != nil {
		return "", nil, fmt.Errorf("%s: %w", op, err)
	}

	user := models.User{
		Email:        email,
		FullName:     fullName,
		PasswordHash: hashed,
		Role:         models.RoleUser,
	}
	newID, err := s.users.CreateUser(ctx, user)
	if err != nil {
		return "", nil, fmt.Errorf("%s: %w", op, err)
	}
	user.ID = newID

	token, err := s.jwtMaker.GenerateToken(user.Email)
	if err != nil {
		return "", nil, fmt.Errorf("%s: %w", op, err)
	}
	return token, models.IdentityFromUser(&user), nil
}

// Login проверяет пароль пользователя и выпускает токен.
//
// Неизвестный email и неверный пароль сворачиваются в одну и ту же
// apperr.ErrInvalidCredentials, чтобы ответ не выдавал, какой из
// факторов не сошёлся.
func (s *AuthService) Login(ctx context.Context, email, rawPassword string) (string, *models.AuthIdentity, error) {
	const op = "services.auth.Login"

	user, err := s.users.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			return "", nil, fmt.Errorf("%s: %w", op, apperr.ErrInvalidCredentials)
		}
		return "", nil, fmt.Errorf("%s: %w", op, err)
	}
	if err := password.CompareHash(user.PasswordHash, rawPassword); err != nil {
		return "", nil, fmt.Errorf("%s: %w", op, apperr.ErrInvalidCredentials)
	}

	token, err := s.jwtMaker.GenerateToken(user.Email)
	if err != nil {
		return "", nil, fmt.Errorf("%s: %w", op, err)
	}
	return token, models.IdentityFromUser(user), nil
}

// Authenticate разбирает bearer-токен в личность запроса.
//
// Последовательность: извлечь subject с проверкой подписи, проверить срок
// действия, загрузить пользователя. Испорченный и истёкший токены
// схлопываются в apperr.ErrUnauthenticated. Подлинный непросроченный токен
// исчезнувшего пользователя — другой случай: аутентификация состоялась, но
// принципала больше нет, и это apperr.ErrForbidden, а не 401.
func (s *AuthService) Authenticate(ctx context.Context, tokenStr string) (*models.AuthIdentity, error) {
	const op = "services.auth.Authenticate"

	email, err := s.jwtMaker.ExtractEmail(tokenStr)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, apperr.ErrUnauthenticated)
	}
	if !s.jwtMaker.IsValid(tokenStr, email) {
		return nil, fmt.Errorf("%s: %w", op, apperr.ErrUnauthenticated)
	}

	user, err := s.users.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			return nil, fmt.Errorf("%s: %w", op, apperr.ErrForbidden)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return models.IdentityFromUser(user), nil
}

// ResolveUser заново читает полную запись пользователя по ID из личности
// запроса. Аутентифицированный, но уже удалённый пользователь — это отказ
// в доступе (apperr.ErrForbidden), а не «не найдено»: вызывающий не должен
// отличать удаление аккаунта от обычного запрета.
func (s *AuthService) ResolveUser(ctx context.Context, userID int64) (*models.User, error) {
	const op = "services.auth.ResolveUser"

	user, err := s.users.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			return nil, fmt.Errorf("%s: %w", op, apperr.ErrForbidden)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return user, nil
}
