// Package app реализует прикладные сценарии сервиса заметок.
package app

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"go.uber.org/zap"

	"notemark/internal/domain/entities"
	domain "notemark/internal/domain/services"
	"notemark/internal/ports/api"
	"notemark/internal/ports/repositories"
	svc "notemark/internal/ports/services"
	"notemark/pkg/logger"
)

const (
	methodRegister = "Register"
	methodLogin    = "Login"

	msgStartRegistration  = "starting user registration"
	msgInvalidEmailFormat = "invalid email format"
	msgEmptyName          = "empty name provided"
	msgPasswordTooShort   = "password shorter than minimum length"
	msgEmailExists        = "user with this email already exists"
	msgUserRegistered     = "user registered successfully"
	msgTokenIssued        = "authentication token issued"
	msgLoginAttempt       = "login attempt"
	msgLoginNonExistent   = "login attempt with non-existent email"
	msgInvalidPassword    = "invalid password provided"
	msgUserLoggedIn       = "user logged in successfully"

	msgErrCheckExistingUser = "failed to check existing user"
	msgErrHashPassword      = "failed to hash password"
	msgErrCreateUser        = "failed to create user"
	msgErrIssueToken        = "failed to issue token"
	msgErrFindingUser       = "error finding user by email"
	msgErrVerifyingPassword = "error verifying password"

	errCtxValidatingName     = "validating name"
	errCtxValidatingEmail    = "validating email"
	errCtxValidatingPassword = "validating password"
	errCtxCheckingUser       = "checking existing user"
	errCtxEmailRegistered    = "email already registered"
	errCtxHashingPassword    = "hashing password"
	errCtxCreatingUser       = "creating user"
	errCtxIssuingToken       = "issuing token"
	errCtxInvalidCredentials = "invalid credentials"
	errCtxFindingUser        = "finding user"
	errCtxVerifyingPassword  = "verifying password"
)

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

// AuthUseCaseImpl реализует интерфейс AuthUseCase.
type AuthUseCaseImpl struct {
	userRepo    repositories.UserRepository
	passwordSvc svc.PasswordService
	tokenSvc    svc.TokenService
}

// NewAuthUseCase создает новый экземпляр сервиса аутентификации.
func NewAuthUseCase(
	userRepo repositories.UserRepository,
	passwordSvc svc.PasswordService,
	tokenSvc svc.TokenService,
) api.AuthUseCase {
	return &AuthUseCaseImpl{
		userRepo:    userRepo,
		passwordSvc: passwordSvc,
		tokenSvc:    tokenSvc,
	}
}

// Register создает нового пользователя и выпускает для него токен.
func (a *AuthUseCaseImpl) Register(ctx context.Context, name, email, password string) (*domain.Session, error) {
	email = normalizeEmail(email)

	log := logger.Log(ctx).With(zap.String("method", methodRegister), zap.String("email", email))
	log.Debug(ctx, msgStartRegistration)

	if strings.TrimSpace(name) == "" {
		log.Debug(ctx, msgEmptyName)
		return nil, fmt.Errorf("%s: %w", errCtxValidatingName, entities.ErrEmptyName)
	}
	if !emailRegex.MatchString(email) {
		log.Debug(ctx, msgInvalidEmailFormat)
		return nil, fmt.Errorf("%s: %w", errCtxValidatingEmail, entities.ErrInvalidEmail)
	}
	if len(password) < domain.MinPasswordLength {
		log.Debug(ctx, msgPasswordTooShort)
		return nil, fmt.Errorf("%s: %w", errCtxValidatingPassword, entities.ErrPasswordTooShort)
	}

	existingUser, err := a.userRepo.FindByEmail(ctx, email)
	if err != nil && !errors.Is(err, entities.ErrUserNotFound) {
		log.Error(ctx, msgErrCheckExistingUser, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxCheckingUser, err)
	}
	if existingUser != nil {
		log.Debug(ctx, msgEmailExists)
		return nil, fmt.Errorf("%s: %w", errCtxEmailRegistered, domain.ErrEmailAlreadyExists)
	}

	hashedPassword, err := a.passwordSvc.Hash(ctx, password)
	if err != nil {
		log.Error(ctx, msgErrHashPassword, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxHashingPassword, err)
	}

	newUser := &entities.User{
		Name:         name,
		Email:        email,
		PasswordHash: hashedPassword,
	}

	createdUser, err := a.userRepo.Create(ctx, newUser)
	if err != nil {
		log.Error(ctx, msgErrCreateUser, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxCreatingUser, err)
	}

	log.Info(ctx, msgUserRegistered, zap.String("userID", createdUser.ID))

	session, err := a.newSession(ctx, createdUser)
	if err != nil {
		log.Error(ctx, msgErrIssueToken, zap.Error(err), zap.String("userID", createdUser.ID))
		return nil, fmt.Errorf("%s: %w", errCtxIssuingToken, err)
	}

	log.Info(ctx, msgTokenIssued, zap.String("userID", createdUser.ID))
	return session, nil
}

// Login аутентифицирует пользователя по email и паролю. Несуществующий email
// и неверный пароль дают одну и ту же ошибку.
func (a *AuthUseCaseImpl) Login(ctx context.Context, email, password string) (*domain.Session, error) {
	email = normalizeEmail(email)

	log := logger.Log(ctx).With(zap.String("method", methodLogin), zap.String("email", email))
	log.Debug(ctx, msgLoginAttempt)

	user, err := a.userRepo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, entities.ErrUserNotFound) {
			log.Debug(ctx, msgLoginNonExistent)
			return nil, fmt.Errorf("%s: %w", errCtxInvalidCredentials, domain.ErrInvalidCredentials)
		}
		log.Error(ctx, msgErrFindingUser, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxFindingUser, err)
	}

	valid, err := a.passwordSvc.Verify(ctx, password, user.PasswordHash)
	if err != nil {
		log.Error(ctx, msgErrVerifyingPassword, zap.Error(err), zap.String("userID", user.ID))
		return nil, fmt.Errorf("%s: %w", errCtxVerifyingPassword, err)
	}
	if !valid {
		log.Debug(ctx, msgInvalidPassword, zap.String("userID", user.ID))
		return nil, fmt.Errorf("%s: %w", errCtxInvalidCredentials, domain.ErrInvalidCredentials)
	}

	log.Info(ctx, msgUserLoggedIn, zap.String("userID", user.ID))

	session, err := a.newSession(ctx, user)
	if err != nil {
		log.Error(ctx, msgErrIssueToken, zap.Error(err), zap.String("userID", user.ID))
		return nil, fmt.Errorf("%s: %w", errCtxIssuingToken, err)
	}

	return session, nil
}

// newSession выпускает токен и собирает сессию без хэша пароля.
func (a *AuthUseCaseImpl) newSession(ctx context.Context, user *entities.User) (*domain.Session, error) {
	token, expiresAt, err := a.tokenSvc.Issue(ctx, user.ID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", errCtxIssuingToken, domain.ErrTokenGenerationFailed)
	}

	sanitized := *user
	sanitized.PasswordHash = ""

	return &domain.Session{
		User:      &sanitized,
		Token:     token,
		ExpiresAt: expiresAt,
	}, nil
}

// normalizeEmail приводит email к нижнему регистру для регистронезависимого
// сравнения и уникальности.
func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
