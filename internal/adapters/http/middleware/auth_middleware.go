package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"notemark/internal/adapters/http/respond"
	"notemark/internal/ports/api"
	"notemark/internal/ports/services"
	"notemark/pkg/logger"
)

// Константы для логирования.
const (
	LogAuthMiddleware = "auth middleware"

	ErrorNoAuthHeader       = "no authorization header provided"
	ErrorInvalidTokenFormat = "invalid token format"
	ErrorInvalidToken       = "token verification failed"
	ErrorUnknownUser        = "token subject does not resolve to a user"

	// MsgNotAuthorized единственное сообщение, которое видит клиент при любом
	// отказе в доступе. Причина отказа остается только в логах.
	MsgNotAuthorized = "Not authorized to access this route"

	bearerPrefix = "Bearer "
)

// NewAuthMiddleware создает промежуточное ПО аутентификации: извлекает
// bearer-токен, проверяет его и разрешает субъект в существующего
// пользователя. Любой сбой дает одинаковый ответ 401.
func NewAuthMiddleware(tokenSvc services.TokenService, userUseCase api.UserUseCase) fiber.Handler {
	return func(ctx fiber.Ctx) error {
		requestCtx := RequestContext(ctx)
		log := logger.Log(requestCtx).With(zap.String("middleware", "auth"))
		log.Debug(requestCtx, LogAuthMiddleware)

		authHeader := ctx.Get("Authorization")
		if authHeader == "" {
			log.Debug(requestCtx, ErrorNoAuthHeader)
			return respond.Error(ctx, fiber.StatusUnauthorized, MsgNotAuthorized)
		}

		if !strings.HasPrefix(authHeader, bearerPrefix) {
			log.Debug(requestCtx, ErrorInvalidTokenFormat)
			return respond.Error(ctx, fiber.StatusUnauthorized, MsgNotAuthorized)
		}

		token := strings.TrimPrefix(authHeader, bearerPrefix)

		userID, err := tokenSvc.Verify(requestCtx, token)
		if err != nil {
			log.Debug(requestCtx, ErrorInvalidToken, zap.Error(err))
			return respond.Error(ctx, fiber.StatusUnauthorized, MsgNotAuthorized)
		}

		user, err := userUseCase.GetProfile(requestCtx, userID)
		if err != nil {
			log.Debug(requestCtx, ErrorUnknownUser, zap.Error(err))
			return respond.Error(ctx, fiber.StatusUnauthorized, MsgNotAuthorized)
		}

		ctx.Locals(UserIDKey, user.ID)

		return ctx.Next()
	}
}
