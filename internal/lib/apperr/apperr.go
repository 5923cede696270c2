// Package apperr определяет доменные ошибки приложения.
//
// Все ошибки бизнес-уровня поднимаются в точке обнаружения и переводятся
// в HTTP-ответ в одном месте (internal/http/response), поэтому сервисы
// и репозитории оборачивают именно эти sentinel-ошибки.
package apperr

import "errors"

var (
	// ErrNotFound — запись с указанным идентификатором не существует.
	ErrNotFound = errors.New("not found")

	// ErrForbidden — запись существует, но принадлежит другому пользователю,
	// либо аутентифицированный пользователь больше не существует в хранилище.
	ErrForbidden = errors.New("forbidden")

	// ErrUnauthenticated — запрос к защищенной конечной точке без валидного токена.
	ErrUnauthenticated = errors.New("unauthenticated")

	// ErrInvalidCredentials — неверный email или пароль. Сообщение намеренно
	// одинаковое для обоих случаев.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrEmailTaken — email уже зарегистрирован.
	ErrEmailTaken = errors.New("email already exists")

	// ErrInvalidToken — токен не разобран или подпись не сошлась.
	// За границей HTTP сворачивается в ErrUnauthenticated.
	ErrInvalidToken = errors.New("invalid token")
)
