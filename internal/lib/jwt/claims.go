// Package jwt реализует выпуск и проверку JWT токенов сессии.
//
// Maker определяет интерфейс для создания и разбора токенов, где subject —
// email пользователя. MakerImpl — конкретная реализация на секретном ключе
// и сроке жизни токена.
package jwt

import (
	"time"
)

// Maker описывает интерфейс для выпуска и проверки JWT токенов.
type Maker interface {
	// GenerateToken выпускает подписанный токен с subject = email.
	GenerateToken(email string) (string, error)
	// ExtractEmail разбирает токен, проверяет подпись и возвращает subject.
	ExtractEmail(tokenStr string) (string, error)
	// IsValid сообщает, совпадает ли subject токена с ожидаемым email
	// и не истек ли срок действия. Для просроченного токена возвращает
	// false без ошибки.
	IsValid(tokenStr, expectedEmail string) bool
}

// MakerImpl реализует интерфейс Maker с использованием секретного ключа
// и времени жизни токена (TTL). Ключ подписи формируется один раз при
// создании и переиспользуется для всех операций.
type MakerImpl struct {
	signingKey []byte        // Ключ подписи, производный от секретной строки
	tokenTTL   time.Duration // Время жизни токена
}

// NewMaker создаёт новый экземпляр MakerImpl на основе секретной строки и TTL.
func NewMaker(secretKey string, ttl time.Duration) *MakerImpl {
	return &MakerImpl{
		signingKey: []byte(secretKey),
		tokenTTL:   ttl,
	}
}
