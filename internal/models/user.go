// Package models содержит доменные модели приложения: пользователей,
// отклики на вакансии, собеседования и документы. Структуры используются
// в бизнес-логике и при работе с хранилищем.
package models

import (
	"strings"
	"time"
)

// Роли пользователей. В базе хранится голое имя роли.
const (
	RoleUser  = "USER"
	RoleAdmin = "ADMIN"
)

// PlainRole срезает префикс ROLE_, если роль пришла во внутреннем
// представлении полномочий. В ответах клиенту роль всегда голая.
func PlainRole(role string) string {
	return strings.TrimPrefix(role, "ROLE_")
}

// User представляет зарегистрированного пользователя системы.
type User struct {
	ID           int64     // Уникальный идентификатор пользователя
	Email        string    // Электронная почта, используется как логин
	FullName     string    // Полное имя
	PasswordHash string    // Хэш пароля, исходный пароль никогда не хранится
	Role         string    // Роль пользователя, USER или ADMIN
	CreatedAt    time.Time // Дата создания, неизменяема
	UpdatedAt    time.Time // Дата последнего обновления
}

// AuthIdentity — аутентифицированная личность текущего запроса.
// Простая структура-носитель данных, получаемая одной чистой функцией
// отображения из User; прикрепляется к контексту запроса после
// успешной проверки токена.
type AuthIdentity struct {
	UserID   int64
	Email    string
	FullName string
	Role     string
}

// IdentityFromUser отображает запись пользователя в AuthIdentity.
func IdentityFromUser(u *User) *AuthIdentity {
	return &AuthIdentity{
		UserID:   u.ID,
		Email:    u.Email,
		FullName: u.FullName,
		Role:     u.Role,
	}
}
