package validation

import (
	"regexp"
	"strings"
	"study-track/internal/domain"
)

// Validator provides request validation functionality
type Validator struct{}

// NewValidator creates a new validator instance
func NewValidator() *Validator {
	return &Validator{}
}

// ValidateRecordActivityRequest validates the record activity request
func (v *Validator) ValidateRecordActivityRequest(activityType string) domain.ValidationErrors {
	var errors domain.ValidationErrors

	if strings.TrimSpace(activityType) == "" {
		errors = append(errors, domain.NewMissingFieldError("activity_type"))
	} else if !isValidActivityTypeFormat(activityType) {
		errors = append(errors, domain.NewInvalidFormatError("activity_type", activityType))
	}

	return errors
}

// ValidateAwardPointsRequest validates the award points request
func (v *Validator) ValidateAwardPointsRequest(points int, reason string) domain.ValidationErrors {
	var errors domain.ValidationErrors

	if points == 0 {
		errors = append(errors, domain.NewOutOfRangeError("points", points, 1, 10000))
	} else if points > 10000 || points < -10000 {
		errors = append(errors, domain.NewOutOfRangeError("points", points, -10000, 10000))
	}

	if strings.TrimSpace(reason) == "" {
		errors = append(errors, domain.NewMissingFieldError("reason"))
	} else if len(reason) > 200 {
		errors = append(errors, domain.NewOutOfRangeError("reason", len(reason), 1, 200))
	}

	return errors
}

// ValidateLeaderboardRange validates leaderboard range parameters
func (v *Validator) ValidateLeaderboardRange(start, end int) domain.ValidationErrors {
	var errors domain.ValidationErrors

	if start < 1 {
		errors = append(errors, domain.NewOutOfRangeError("start", start, 1, 1000000))
	}
	if end < start {
		errors = append(errors, domain.NewOutOfRangeError("end", end, start, start+99))
		return errors
	}
	if end-start+1 > 100 {
		errors = append(errors, domain.NewOutOfRangeError("end", end, start, start+99))
	}

	return errors
}

// ValidateUserID validates a user identifier path or query parameter
func (v *Validator) ValidateUserID(userID string) domain.ValidationErrors {
	var errors domain.ValidationErrors

	if strings.TrimSpace(userID) == "" {
		errors = append(errors, domain.NewMissingFieldError("user_id"))
	} else if !isValidULID(userID) {
		errors = append(errors, domain.NewInvalidFormatError("user_id", userID))
	}

	return errors
}

// Helper functions for validation

// isValidULID checks if the string is a valid ULID format
func isValidULID(s string) bool {
	// ULID is 26 characters long, base32 encoded
	if len(s) != 26 {
		return false
	}
	// Check if all characters are valid base32 (Crockford's Base32)
	validULID := regexp.MustCompile(`^[0-9A-HJKMNP-TV-Z]{26}$`)
	return validULID.MatchString(s)
}

// isValidActivityTypeFormat checks if the activity type format is valid
func isValidActivityTypeFormat(s string) bool {
	// Allow lowercase alphanumeric and underscores, 1-50 characters
	if len(s) == 0 || len(s) > 50 {
		return false
	}
	validType := regexp.MustCompile(`^[a-z0-9_]+$`)
	return validType.MatchString(s)
}
