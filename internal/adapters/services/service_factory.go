package services

import (
	"time"

	svc "notemark/internal/ports/services"
)

// ServiceFactory создает все необходимые сервисы аутентификации.
type ServiceFactory struct {
	passwordService svc.PasswordService
	tokenService    svc.TokenService
}

// NewServiceFactory создает новую фабрику сервисов.
func NewServiceFactory(jwtSecretKey string, tokenTTL time.Duration, bcryptCost int) *ServiceFactory {
	return &ServiceFactory{
		passwordService: NewBcrypt(bcryptCost),
		tokenService:    NewJWT(jwtSecretKey, tokenTTL),
	}
}

// PasswordService возвращает сервис для работы с паролями.
func (f *ServiceFactory) PasswordService() svc.PasswordService {
	return f.passwordService
}

// TokenService возвращает сервис для работы с токенами.
func (f *ServiceFactory) TokenService() svc.TokenService {
	return f.tokenService
}
