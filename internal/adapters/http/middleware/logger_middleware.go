// Package middleware содержит промежуточное ПО для HTTP обработчиков.
package middleware

import (
	"context"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"notemark/pkg/logger"
)

// Ключи значений запроса в fiber.Ctx.Locals.
const (
	UserContextKey = "userContext"
	UserIDKey      = "userID"
)

// RequestContext возвращает контекст запроса с идентификатором запроса,
// подготовленный логирующим middleware.
func RequestContext(ctx fiber.Ctx) context.Context {
	if requestCtx, ok := ctx.Locals(UserContextKey).(context.Context); ok {
		return requestCtx
	}
	return ctx.Context()
}

// NewLoggerMiddleware создает промежуточное ПО для логирования HTTP запросов.
// Каждому запросу присваивается идентификатор, попадающий во все записи лога.
func NewLoggerMiddleware() fiber.Handler {
	return func(ctx fiber.Ctx) error {
		requestCtx := logger.NewRequestIDContext(ctx.Context(), logger.GenerateRequestID())
		ctx.Locals(UserContextKey, requestCtx)

		start := time.Now()
		path := ctx.Path()
		method := ctx.Method()

		log := logger.Log(requestCtx).With(
			zap.String("path", path),
			zap.String("method", method),
			zap.String("ip", ctx.IP()),
		)

		log.Info(requestCtx, "Request started")

		err := ctx.Next()

		latency := time.Since(start)
		status := ctx.Response().StatusCode()

		logFields := []zap.Field{
			zap.Int("status", status),
			zap.Duration("latency", latency),
		}

		if err != nil {
			log.Error(requestCtx, "Request failed", append(logFields, zap.Error(err))...)
			return fmt.Errorf("request processing error: %w", err)
		}

		log.Info(requestCtx, "Request completed", logFields...)
		return nil
	}
}
