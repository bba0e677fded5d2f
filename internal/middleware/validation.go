package middleware

import (
	"study-track/internal/domain"
	"study-track/internal/validation"

	"github.com/gofiber/fiber/v2"
)

// ValidationMiddleware provides request validation middleware
type ValidationMiddleware struct {
	validator *validation.Validator
}

// NewValidationMiddleware creates a new validation middleware instance
func NewValidationMiddleware() *ValidationMiddleware {
	return &ValidationMiddleware{
		validator: validation.NewValidator(),
	}
}

// ValidateLeaderboardParams validates leaderboard range query parameters
func (vm *ValidationMiddleware) ValidateLeaderboardParams() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := 1
		if startStr := c.Query("start"); startStr != "" {
			parsed, err := parsePositiveInt(startStr, 1000000)
			if err != nil {
				return domain.ValidationErrors{
					domain.NewInvalidFormatError("start", startStr),
				}
			}
			start = parsed
		}

		end := start + 9 // default page of 10
		if endStr := c.Query("end"); endStr != "" {
			parsed, err := parsePositiveInt(endStr, 1000000)
			if err != nil {
				return domain.ValidationErrors{
					domain.NewInvalidFormatError("end", endStr),
				}
			}
			end = parsed
		}

		if errors := vm.validator.ValidateLeaderboardRange(start, end); len(errors) > 0 {
			return errors // This will be handled by ErrorHandler middleware
		}

		// Store validated values in context for handlers to use
		c.Locals("validated_start", start)
		c.Locals("validated_end", end)
		return c.Next()
	}
}

// parsePositiveInt parses a positive integer parameter with an upper bound
func parsePositiveInt(s string, max int) (int, error) {
	n := 0
	for _, char := range s {
		if char < '0' || char > '9' {
			return 0, domain.NewValidationError("value must be a number")
		}
		n = n*10 + int(char-'0')
		if n > max { // Early termination for efficiency
			return 0, domain.NewValidationError("value exceeds maximum")
		}
	}
	if n == 0 {
		return 0, domain.NewValidationError("value must be greater than 0")
	}
	return n, nil
}
