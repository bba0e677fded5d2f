package models

import (
	"database/sql"
	"time"
)

// Badge is one catalog entry; the NAME column carries a unique constraint.
type Badge struct {
	ID          string         `db:"ID"`          // ULID
	Name        string         `db:"NAME"`        // Unique badge name used by the rule set
	Description sql.NullString `db:"DESCRIPTION"` // Human-readable earn criterion
	ImageURL    sql.NullString `db:"IMAGE_URL"`   // Badge artwork
	Category    sql.NullString `db:"CATEGORY"`    // Grouping for the badge page
	CreatedAt   time.Time      `db:"CREATED_AT"`
	UpdatedAt   time.Time      `db:"UPDATED_AT"`
}

// UserBadge links a user to a badge with earn state and progress.
// (USER_ID, BADGE_ID) carries a unique constraint; awards are idempotent.
type UserBadge struct {
	ID                string       `db:"ID"` // ULID
	UserID            string       `db:"USER_ID"`
	BadgeID           string       `db:"BADGE_ID"`
	IsEarned          bool         `db:"IS_EARNED"`          // One-way: never flips back to false
	Progress          int          `db:"PROGRESS"`           // 0-100, 100 iff earned
	EarnedAt          sql.NullTime `db:"EARNED_AT"`          // Set on first award, never overwritten
	NotificationShown bool         `db:"NOTIFICATION_SHOWN"` // Whether the earn toast was displayed
	CreatedAt         time.Time    `db:"CREATED_AT"`
	UpdatedAt         time.Time    `db:"UPDATED_AT"`
}

// UserBadgeRow joins a catalog badge with the user's per-badge state. LEFT
// JOIN means the user columns are NULL for badges the user has no row for.
type UserBadgeRow struct {
	BadgeID     string         `db:"BADGE_ID"`
	Name        string         `db:"NAME"`
	Description sql.NullString `db:"DESCRIPTION"`
	ImageURL    sql.NullString `db:"IMAGE_URL"`
	Category    sql.NullString `db:"CATEGORY"`
	IsEarned    sql.NullBool   `db:"IS_EARNED"`
	Progress    sql.NullInt64  `db:"PROGRESS"`
	EarnedAt    sql.NullTime   `db:"EARNED_AT"`
}
