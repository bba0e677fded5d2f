package service

import (
	"errors"
	"fmt"
	"time"

	"study-track/internal/config"
	"study-track/internal/dto"
	"study-track/internal/logger"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
)

var ErrInvalidJWTToken = errors.New("invalid jwt token")

const (
	tokenTypeAccess  = "access"
	tokenTypeRefresh = "refresh"
)

// TokenService issues and validates the JWTs that identify users on the API
// and get forwarded to the remote badge evaluator.
type TokenService interface {
	CreateAccessToken(userID string) (string, error)
	CreateRefreshToken(userID string) (string, error)
	ValidateToken(tokenString string) (*dto.AuthClaims, error)
}

type tokenServiceImpl struct {
	authCfg config.AuthConfig
}

// NewTokenService creates a new TokenService.
func NewTokenService(authCfg config.AuthConfig) TokenService {
	return &tokenServiceImpl{authCfg: authCfg}
}

func (s *tokenServiceImpl) CreateAccessToken(userID string) (string, error) {
	return s.create(userID, s.authCfg.AccessTokenTTL, tokenTypeAccess)
}

func (s *tokenServiceImpl) CreateRefreshToken(userID string) (string, error) {
	return s.create(userID, s.authCfg.RefreshTokenTTL, tokenTypeRefresh)
}

func (s *tokenServiceImpl) create(userID string, ttl time.Duration, tokenType string) (string, error) {
	claims := dto.AuthClaims{
		UserID:    userID,
		TokenType: tokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			NotBefore: jwt.NewNumericDate(time.Now()),
			Subject:   userID,
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.authCfg.JWTSecret))
}

func (s *tokenServiceImpl) ValidateToken(tokenString string) (*dto.AuthClaims, error) {
	appLogger := logger.Get()
	token, err := jwt.ParseWithClaims(tokenString, &dto.AuthClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.authCfg.JWTSecret), nil
	})

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			appLogger.Warn("JWT token expired", zap.Error(err))
		} else {
			appLogger.Warn("JWT validation failed", zap.Error(err))
		}
		return nil, fmt.Errorf("%w: %v", ErrInvalidJWTToken, err)
	}

	if claims, ok := token.Claims.(*dto.AuthClaims); ok && token.Valid {
		return claims, nil
	}
	return nil, ErrInvalidJWTToken
}
