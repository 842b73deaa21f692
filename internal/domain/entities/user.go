// Package entities определяет доменные сущности сервиса заметок.
package entities

import (
	"errors"
	"time"
)

// Определяем ошибки домена пользователя как константы.
var (
	ErrEmptyUserID      = errors.New("user ID cannot be empty")
	ErrInvalidEmail     = errors.New("invalid email format")
	ErrEmptyName        = errors.New("name cannot be empty")
	ErrPasswordTooShort = errors.New("password must be at least 6 characters")
	ErrUserNotFound     = errors.New("user not found")
)

// User представляет основную сущность домена пользователя.
// PasswordHash никогда не попадает в ответы API.
type User struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"-"`
}
