package api

import (
	"context"

	"notemark/internal/domain/entities"
)

// UserUseCase определяет сценарии работы с профилем пользователя.
type UserUseCase interface {
	GetProfile(ctx context.Context, userID string) (*entities.User, error)
}
