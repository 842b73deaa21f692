// Package respond формирует единый конверт ответов HTTP API.
package respond

import (
	"fmt"

	"github.com/gofiber/fiber/v3"
)

// Envelope единый формат ответа API. Поля message, count, token и data
// опциональны и сериализуются только при наличии значения.
type Envelope struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Count   *int   `json:"count,omitempty"`
	Token   string `json:"token,omitempty"`
	Data    any    `json:"data,omitempty"`
}

// JSON отправляет конверт с указанным статусом.
func JSON(ctx fiber.Ctx, status int, env Envelope) error {
	if err := ctx.Status(status).JSON(env); err != nil {
		return fmt.Errorf("error sending response: %w", err)
	}
	return nil
}

// Data отправляет успешный ответ с данными.
func Data(ctx fiber.Ctx, status int, message string, data any) error {
	return JSON(ctx, status, Envelope{Success: true, Message: message, Data: data})
}

// List отправляет успешный ответ со списком и его размером.
func List(ctx fiber.Ctx, count int, data any) error {
	return JSON(ctx, fiber.StatusOK, Envelope{Success: true, Count: &count, Data: data})
}

// Token отправляет успешный ответ с токеном и данными пользователя.
func Token(ctx fiber.Ctx, status int, message, token string, data any) error {
	return JSON(ctx, status, Envelope{Success: true, Message: message, Token: token, Data: data})
}

// Error отправляет ответ об ошибке с сообщением.
func Error(ctx fiber.Ctx, status int, message string) error {
	return JSON(ctx, status, Envelope{Success: false, Message: message})
}
