package models

import (
	"time"
)

// UserStreak is the persisted streak state for one (user, family) pair.
// (USER_ID, STREAK_FAMILY) carries a unique constraint.
type UserStreak struct {
	ID               string    `db:"ID"` // ULID
	UserID           string    `db:"USER_ID"`
	StreakFamily     string    `db:"STREAK_FAMILY"`      // "login" or "study"
	CurrentStreak    int       `db:"CURRENT_STREAK"`     // Anchored consecutive-day count
	LongestStreak    int       `db:"LONGEST_STREAK"`     // Invariant: >= CURRENT_STREAK
	LastActivityDate time.Time `db:"LAST_ACTIVITY_DATE"` // UTC day of the most recent qualifying activity
	CreatedAt        time.Time `db:"CREATED_AT"`
	UpdatedAt        time.Time `db:"UPDATED_AT"`
}
