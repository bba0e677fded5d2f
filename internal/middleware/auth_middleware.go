package middleware

import (
	"fmt"
	"strings"
	"study-track/internal/logger"
	"study-track/internal/service"

	"go.uber.org/zap"

	"github.com/gofiber/fiber/v2"
)

const (
	AuthorizationHeader = "Authorization"
	BearerSchema        = "Bearer "
	UserIDKey           = "userID"    // Key for storing UserID in fiber.Ctx locals
	AuthTokenKey        = "authToken" // Raw bearer token, forwarded to the remote evaluator
)

// Protected is a middleware function that protects routes by requiring a valid JWT.
// It validates the token using the provided TokenService and sets the userID and
// the raw token in the context.
func Protected(tokenService service.TokenService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get(AuthorizationHeader)
		if authHeader == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(ErrorResponse{
				Code:    "MISSING_AUTH_HEADER",
				Message: "Authorization header is missing",
				Status:  fiber.StatusUnauthorized,
			})
		}

		if !strings.HasPrefix(authHeader, BearerSchema) {
			return c.Status(fiber.StatusUnauthorized).JSON(ErrorResponse{
				Code:    "INVALID_AUTH_SCHEME",
				Message: "Authorization scheme is not Bearer",
				Status:  fiber.StatusUnauthorized,
			})
		}

		tokenString := strings.TrimPrefix(authHeader, BearerSchema)
		if tokenString == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(ErrorResponse{
				Code:    "EMPTY_TOKEN",
				Message: "Token is empty",
				Status:  fiber.StatusUnauthorized,
			})
		}

		claims, err := tokenService.ValidateToken(tokenString)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(ErrorResponse{
				Code:    "INVALID_TOKEN",
				Message: err.Error(),
				Status:  fiber.StatusUnauthorized,
			})
		}

		if claims.TokenType != "access" {
			return c.Status(fiber.StatusForbidden).JSON(ErrorResponse{
				Code:    "INVALID_TOKEN_TYPE",
				Message: fmt.Sprintf("Invalid token type: expected access, got %s", claims.TokenType),
				Status:  fiber.StatusForbidden,
			})
		}

		c.Locals(UserIDKey, claims.UserID)
		c.Locals(AuthTokenKey, tokenString)

		return c.Next()
	}
}

// OptionalAuth is a middleware function that optionally authenticates a user.
// If a valid access token is provided, it sets the userID in the context.
// Otherwise, it proceeds without setting the userID, allowing for anonymous access.
func OptionalAuth(tokenService service.TokenService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get(AuthorizationHeader)

		if authHeader == "" {
			return c.Next()
		}

		if !strings.HasPrefix(authHeader, BearerSchema) {
			logger.Get().Debug("OptionalAuth: Authorization scheme is not Bearer, proceeding as anonymous.", zap.String("header", authHeader))
			return c.Next()
		}

		tokenString := strings.TrimPrefix(authHeader, BearerSchema)
		if tokenString == "" {
			return c.Next()
		}

		claims, err := tokenService.ValidateToken(tokenString)
		if err != nil {
			logger.Get().Debug("OptionalAuth: JWT validation failed, proceeding as anonymous.", zap.Error(err))
			return c.Next()
		}

		if claims.TokenType != "access" {
			logger.Get().Debug("OptionalAuth: Invalid token type, proceeding as anonymous.", zap.String("tokenType", claims.TokenType))
			return c.Next()
		}

		c.Locals(UserIDKey, claims.UserID)
		c.Locals(AuthTokenKey, tokenString)

		return c.Next()
	}
}
