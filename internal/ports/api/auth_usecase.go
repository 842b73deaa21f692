// Package api определяет интерфейсы сценариев использования.
package api

import (
	"context"

	"notemark/internal/domain/services"
)

// AuthUseCase определяет сценарии регистрации и входа.
type AuthUseCase interface {
	Register(ctx context.Context, name, email, password string) (*services.Session, error)

	Login(ctx context.Context, email, password string) (*services.Session, error)
}
