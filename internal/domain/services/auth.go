// Package services содержит доменные типы и ошибки аутентификации.
package services

import (
	"errors"
	"time"

	"notemark/internal/domain/entities"
)

// Ошибки домена аутентификации.
var (
	ErrInvalidCredentials    = errors.New("invalid email or password")
	ErrEmailAlreadyExists    = errors.New("user already exists with this email")
	ErrInvalidToken          = errors.New("invalid or expired token")
	ErrTokenGenerationFailed = errors.New("failed to generate authentication token")
)

// MinPasswordLength - минимальная длина пароля.
const MinPasswordLength = 6

// Session представляет результат успешной регистрации или входа:
// пользователь без хэша пароля и bearer токен.
type Session struct {
	User      *entities.User
	Token     string
	ExpiresAt time.Time
}
