// Package auth содержит HTTP обработчики регистрации и входа.
package auth

import (
	"errors"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"notemark/internal/adapters/http/dto"
	"notemark/internal/adapters/http/middleware"
	"notemark/internal/adapters/http/respond"
	"notemark/internal/domain/entities"
	domain "notemark/internal/domain/services"
	"notemark/internal/ports/api"
	"notemark/pkg/logger"
)

// Константы для логирования.
const (
	LogHandlerRegister   = "auth handler: register"
	LogHandlerLogin      = "auth handler: login"
	LogHandlerGetProfile = "auth handler: get profile"

	ErrorInvalidRequest       = "invalid request"
	ErrorFailedToServeRequest = "failed to serve request"
)

// Сообщения, видимые клиенту.
const (
	MsgRegistered       = "User registered successfully"
	MsgLoggedIn         = "Login successful"
	MsgMissingFields    = "Please provide name, email, and password"
	MsgMissingCreds     = "Please provide email and password"
	MsgInvalidEmail     = "Please provide a valid email"
	MsgPasswordTooShort = "Password must be at least 6 characters"
	MsgEmailRegistered  = "Email already registered"
	MsgInvalidCreds     = "Invalid email or password"
	MsgUserNotFound     = "User not found"
	MsgSomethingWrong   = "Something went wrong"
)

// Handler содержит HTTP обработчики авторизации.
type Handler struct {
	authUseCase api.AuthUseCase
	userUseCase api.UserUseCase
}

// NewHandler создает новый экземпляр обработчика авторизации.
func NewHandler(authUseCase api.AuthUseCase, userUseCase api.UserUseCase) *Handler {
	return &Handler{
		authUseCase: authUseCase,
		userUseCase: userUseCase,
	}
}

// Register обрабатывает запрос на регистрацию нового пользователя.
func (h *Handler) Register(ctx fiber.Ctx) error {
	requestCtx := middleware.RequestContext(ctx)
	log := logger.Log(requestCtx)
	log.Info(requestCtx, LogHandlerRegister)

	var req dto.RegisterRequest
	if err := ctx.Bind().Body(&req); err != nil {
		log.Error(requestCtx, ErrorInvalidRequest, zap.Error(err))
		return respond.Error(ctx, fiber.StatusBadRequest, ErrorInvalidRequest)
	}

	if req.Name == "" || req.Email == "" || req.Password == "" {
		return respond.Error(ctx, fiber.StatusBadRequest, MsgMissingFields)
	}

	session, err := h.authUseCase.Register(requestCtx, req.Name, req.Email, req.Password)
	if err != nil {
		log.Error(requestCtx, ErrorFailedToServeRequest, zap.Error(err))
		return respond.Error(ctx, registerErrorStatus(err), registerErrorMessage(err))
	}

	return respond.Token(ctx, fiber.StatusCreated, MsgRegistered, session.Token, session.User)
}

// Login обрабатывает запрос на вход пользователя. Любая ошибка учетных
// данных дает одинаковый ответ 401.
func (h *Handler) Login(ctx fiber.Ctx) error {
	requestCtx := middleware.RequestContext(ctx)
	log := logger.Log(requestCtx)
	log.Info(requestCtx, LogHandlerLogin)

	var req dto.LoginRequest
	if err := ctx.Bind().Body(&req); err != nil {
		log.Error(requestCtx, ErrorInvalidRequest, zap.Error(err))
		return respond.Error(ctx, fiber.StatusBadRequest, ErrorInvalidRequest)
	}

	if req.Email == "" || req.Password == "" {
		return respond.Error(ctx, fiber.StatusBadRequest, MsgMissingCreds)
	}

	session, err := h.authUseCase.Login(requestCtx, req.Email, req.Password)
	if err != nil {
		log.Error(requestCtx, ErrorFailedToServeRequest, zap.Error(err))
		if errors.Is(err, domain.ErrInvalidCredentials) {
			return respond.Error(ctx, fiber.StatusUnauthorized, MsgInvalidCreds)
		}
		return respond.Error(ctx, fiber.StatusInternalServerError, MsgSomethingWrong)
	}

	return respond.Token(ctx, fiber.StatusOK, MsgLoggedIn, session.Token, session.User)
}

// GetProfile возвращает профиль аутентифицированного пользователя.
func (h *Handler) GetProfile(ctx fiber.Ctx) error {
	requestCtx := middleware.RequestContext(ctx)
	log := logger.Log(requestCtx)
	log.Info(requestCtx, LogHandlerGetProfile)

	userID, _ := ctx.Locals(middleware.UserIDKey).(string)

	user, err := h.userUseCase.GetProfile(requestCtx, userID)
	if err != nil {
		log.Error(requestCtx, ErrorFailedToServeRequest, zap.Error(err))
		if errors.Is(err, entities.ErrUserNotFound) {
			return respond.Error(ctx, fiber.StatusNotFound, MsgUserNotFound)
		}
		return respond.Error(ctx, fiber.StatusInternalServerError, MsgSomethingWrong)
	}

	return respond.Data(ctx, fiber.StatusOK, "", user)
}

// registerErrorStatus сопоставляет ошибку регистрации с HTTP-статусом.
func registerErrorStatus(err error) int {
	switch {
	case errors.Is(err, entities.ErrEmptyName),
		errors.Is(err, entities.ErrInvalidEmail),
		errors.Is(err, entities.ErrPasswordTooShort),
		errors.Is(err, domain.ErrEmailAlreadyExists):
		return fiber.StatusBadRequest
	default:
		return fiber.StatusInternalServerError
	}
}

// registerErrorMessage сопоставляет ошибку регистрации с сообщением клиенту.
func registerErrorMessage(err error) string {
	switch {
	case errors.Is(err, entities.ErrEmptyName):
		return MsgMissingFields
	case errors.Is(err, entities.ErrInvalidEmail):
		return MsgInvalidEmail
	case errors.Is(err, entities.ErrPasswordTooShort):
		return MsgPasswordTooShort
	case errors.Is(err, domain.ErrEmailAlreadyExists):
		return MsgEmailRegistered
	default:
		return MsgSomethingWrong
	}
}
