package models

import (
	"database/sql"
	"time"
)

// User represents a user in the system.
type User struct {
	ID          string       `db:"ID"`           // ULID
	Username    string       `db:"USERNAME"`     // Display name, unique
	Email       string       `db:"EMAIL"`        // User's email address
	TotalPoints int          `db:"TOTAL_POINTS"` // Cached sum of the points ledger
	CreatedAt   time.Time    `db:"CREATED_AT"`   // Timestamp of user creation
	UpdatedAt   time.Time    `db:"UPDATED_AT"`   // Timestamp of last update
	DeletedAt   sql.NullTime `db:"DELETED_AT"`   // Timestamp of soft deletion, if applicable
}
