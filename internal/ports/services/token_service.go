// Package services определяет интерфейсы прикладных сервисов.
package services

import (
	"context"
	"time"
)

// TokenService определяет операции выпуска и проверки bearer токенов.
type TokenService interface {
	// Issue выпускает подписанный токен с идентификатором пользователя
	// и абсолютным временем истечения.
	Issue(ctx context.Context, userID string) (string, time.Time, error)

	// Verify проверяет подпись и срок действия токена и возвращает ID
	// пользователя. Любой дефект токена (подделка, истечение, мусор)
	// сводится к одной и той же ошибке.
	Verify(ctx context.Context, token string) (string, error)
}
