package models

import (
	"time"
)

// ActivityEvent is one row of the append-only activity log.
type ActivityEvent struct {
	ID           string    `db:"ID"`            // ULID
	UserID       string    `db:"USER_ID"`       // Foreign key to users table
	ActivityType string    `db:"ACTIVITY_TYPE"` // One of the known activity type strings
	Metadata     JSONMap   `db:"METADATA"`      // Activity-specific payload as JSON
	CreatedAt    time.Time `db:"CREATED_AT"`    // When the activity happened
}

// ActivityTypeCount is a projection row for per-type activity counts.
type ActivityTypeCount struct {
	ActivityType string `db:"ACTIVITY_TYPE"`
	Total        int    `db:"TOTAL"`
}
