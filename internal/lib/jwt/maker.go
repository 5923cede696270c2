// Методы GenerateToken, ExtractEmail и IsValid реализуют выпуск и валидацию
// токена с registered claims (Subject, IssuedAt, ExpiresAt), подписанного HS256.
package jwt

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/magabrotheeeer/job-tracker/internal/lib/apperr"
)

// GenerateToken создает JWT токен с subject = email, подписывая его секретным ключом.
//
// IssuedAt = текущее время, ExpiresAt = текущее время + tokenTTL.
func (j *MakerImpl) GenerateToken(email string) (string, error) {
	const op = "jwt.GenerateToken"
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   email,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(j.tokenTTL)),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(j.signingKey)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return signed, nil
}

// ExtractEmail разбирает токен, проверяет подпись и возвращает subject.
//
// Для некорректной структуры или несовпадающей подписи возвращает
// apperr.ErrInvalidToken. Срок действия здесь не проверяется: просроченный,
// но корректно подписанный токен всё ещё отдаёт subject, решение о
// валидности принимает IsValid.
func (j *MakerImpl) ExtractEmail(tokenStr string) (string, error) {
	const op = "jwt.ExtractEmail"
	claims := &jwt.RegisteredClaims{}
	_, err := jwt.ParseWithClaims(tokenStr, claims, func(_ *jwt.Token) (any, error) {
		return j.signingKey, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithoutClaimsValidation())
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, apperr.ErrInvalidToken)
	}
	if claims.Subject == "" {
		return "", fmt.Errorf("%s: %w", op, apperr.ErrInvalidToken)
	}
	return claims.Subject, nil
}

// IsValid возвращает true, только если subject токена равен expectedEmail
// и текущее время строго раньше ExpiresAt. Просроченный, но корректно
// подписанный токен — это false, а не ошибка.
func (j *MakerImpl) IsValid(tokenStr, expectedEmail string) bool {
	claims := &jwt.RegisteredClaims{}
	_, err := jwt.ParseWithClaims(tokenStr, claims, func(_ *jwt.Token) (any, error) {
		return j.signingKey, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithoutClaimsValidation())
	if err != nil {
		return false
	}
	if claims.Subject != expectedEmail {
		return false
	}
	if claims.ExpiresAt == nil {
		return false
	}
	return time.Now().Before(claims.ExpiresAt.Time)
}
