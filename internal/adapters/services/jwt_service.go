// Package services содержит реализации прикладных сервисов.
package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"

	domain "notemark/internal/domain/services"
	svc "notemark/internal/ports/services"
	"notemark/pkg/logger"
)

// Константы для работы с JWT.
const (
	methodIssue  = "Issue"
	methodVerify = "Verify"

	msgIssuingToken   = "issuing token"
	msgVerifyingToken = "verifying token"
	msgTokenIssued    = "token issued successfully"
	msgTokenVerified  = "token verified successfully"
	msgTokenRejected  = "token rejected"

	//nolint:gosec
	errSigningToken   = "error signing token"
	errCtxIssuing     = "issuing token"
	errCtxVerifying   = "verifying token"
	errEmptySecretKey = "empty secret key"
)

// ErrInvalidAlgorithm представляет статическую ошибку неверного алгоритма подписи.
var ErrInvalidAlgorithm = errors.New("invalid signing algorithm")

// Claims используется для адаптации между доменной моделью и библиотекой JWT.
type Claims struct {
	UserID string `json:"user_id"`
	jwt.RegisteredClaims
}

// ServiceJWT реализует интерфейс TokenService.
type ServiceJWT struct {
	secretKey []byte
	tokenTTL  time.Duration
}

// NewJWT создает новый экземпляр сервиса JWT.
func NewJWT(secretKey string, tokenTTL time.Duration) svc.TokenService {
	return &ServiceJWT{
		secretKey: []byte(secretKey),
		tokenTTL:  tokenTTL,
	}
}

// Issue выпускает подписанный токен с идентификатором пользователя.
func (s *ServiceJWT) Issue(ctx context.Context, userID string) (string, time.Time, error) {
	log := logger.Log(ctx).With(
		zap.String("method", methodIssue),
		zap.String("userID", userID),
	)
	log.Debug(ctx, msgIssuingToken)

	if len(s.secretKey) == 0 {
		log.Error(ctx, errEmptySecretKey)
		return "", time.Time{}, fmt.Errorf("%s: %w: %s", errCtxIssuing, domain.ErrTokenGenerationFailed, errEmptySecretKey)
	}

	now := time.Now()
	expiresAt := now.Add(s.tokenTTL)

	claims := Claims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	tokenString, err := token.SignedString(s.secretKey)
	if err != nil {
		log.Error(ctx, errSigningToken, zap.Error(err))
		return "", time.Time{}, fmt.Errorf("%s: %w: %w", errCtxIssuing, domain.ErrTokenGenerationFailed, err)
	}

	log.Debug(ctx, msgTokenIssued, zap.Time("expiresAt", expiresAt))
	return tokenString, expiresAt, nil
}

// Verify проверяет JWT токен и возвращает ID пользователя. Подделка,
// истечение срока и мусор на входе намеренно неразличимы для вызывающего.
func (s *ServiceJWT) Verify(ctx context.Context, tokenString string) (string, error) {
	log := logger.Log(ctx).With(zap.String("method", methodVerify))
	log.Debug(ctx, msgVerifyingToken)

	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("%w: %v", ErrInvalidAlgorithm, token.Header["alg"])
		}
		return s.secretKey, nil
	})

	if err != nil {
		log.Debug(ctx, msgTokenRejected, zap.Error(err))
		return "", fmt.Errorf("%s: %w", errCtxVerifying, domain.ErrInvalidToken)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		log.Debug(ctx, msgTokenRejected)
		return "", fmt.Errorf("%s: %w", errCtxVerifying, domain.ErrInvalidToken)
	}

	if claims.UserID == "" {
		log.Debug(ctx, "user_id claim is empty")
		return "", fmt.Errorf("%s: %w", errCtxVerifying, domain.ErrInvalidToken)
	}

	log.Debug(ctx, msgTokenVerified, zap.String("userID", claims.UserID))
	return claims.UserID, nil
}
