// Package dto содержит структуры запросов HTTP API.
package dto

// RegisterRequest запрос на регистрацию нового пользователя.
type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginRequest запрос на вход пользователя.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}
