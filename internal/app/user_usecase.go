package app

import (
	"context"
	"encoding/json"
	"fmt"

	"go.uber.org/zap"

	"notemark/internal/domain/entities"
	"notemark/internal/ports/api"
	portscache "notemark/internal/ports/cache"
	"notemark/internal/ports/repositories"
	"notemark/pkg/logger"
)

const (
	methodGetProfile = "GetProfile"

	msgRequestingProfile   = "requesting user profile"
	msgEmptyUserIDProvided = "empty user ID provided"
	msgProfileFromCache    = "user profile served from cache"
	msgProfileRetrieved    = "user profile successfully retrieved"

	msgErrFindingUserByID = "failed to find user by ID"
	msgErrCacheRead       = "failed to read profile from cache"
	msgErrCacheWrite      = "failed to store profile in cache"

	errCtxValidatingUserID = "validating user ID"
	errCtxFetchingProfile  = "fetching user profile"

	userCacheKeyPrefix = "user:"
)

// UserUseCaseImpl реализует интерфейс UserUseCase с кэшем на чтение.
type UserUseCaseImpl struct {
	userRepo repositories.UserRepository
	cache    portscache.Cache
}

// NewUserUseCase создает новый экземпляр сервиса пользователя.
// cache может быть nil - тогда каждый запрос идет в хранилище.
func NewUserUseCase(userRepo repositories.UserRepository, cache portscache.Cache) api.UserUseCase {
	return &UserUseCaseImpl{
		userRepo: userRepo,
		cache:    cache,
	}
}

// GetProfile получает профиль пользователя по ID. Хэш пароля в результат
// не попадает. Ошибки кэша не фатальны - запрос уходит в хранилище.
func (u *UserUseCaseImpl) GetProfile(ctx context.Context, userID string) (*entities.User, error) {
	log := logger.Log(ctx).With(zap.String("method", methodGetProfile), zap.String("userID", userID))
	log.Debug(ctx, msgRequestingProfile)

	if userID == "" {
		log.Debug(ctx, msgEmptyUserIDProvided)
		return nil, fmt.Errorf("%s: %w", errCtxValidatingUserID, entities.ErrEmptyUserID)
	}

	if cached := u.fromCache(ctx, userID); cached != nil {
		log.Debug(ctx, msgProfileFromCache)
		return cached, nil
	}

	user, err := u.userRepo.FindByID(ctx, userID)
	if err != nil {
		log.Error(ctx, msgErrFindingUserByID, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxFetchingProfile, err)
	}

	sanitized := *user
	sanitized.PasswordHash = ""

	u.toCache(ctx, &sanitized)

	log.Info(ctx, msgProfileRetrieved)
	return &sanitized, nil
}

func (u *UserUseCaseImpl) fromCache(ctx context.Context, userID string) *entities.User {
	if u.cache == nil {
		return nil
	}

	value, err := u.cache.Get(ctx, userCacheKeyPrefix+userID)
	if err != nil {
		logger.Log(ctx).Warn(ctx, msgErrCacheRead, zap.Error(err))
		return nil
	}
	if value == "" {
		return nil
	}

	var user entities.User
	if err := json.Unmarshal([]byte(value), &user); err != nil {
		logger.Log(ctx).Warn(ctx, msgErrCacheRead, zap.Error(err))
		return nil
	}
	return &user
}

func (u *UserUseCaseImpl) toCache(ctx context.Context, user *entities.User) {
	if u.cache == nil {
		return
	}

	payload, err := json.Marshal(user)
	if err != nil {
		logger.Log(ctx).Warn(ctx, msgErrCacheWrite, zap.Error(err))
		return
	}
	if err := u.cache.Set(ctx, userCacheKeyPrefix+user.ID, string(payload), 0); err != nil {
		logger.Log(ctx).Warn(ctx, msgErrCacheWrite, zap.Error(err))
	}
}
