package models

import (
	"time"
)

// PointsTransaction is one row of the append-only points ledger.
type PointsTransaction struct {
	ID        string    `db:"ID"` // ULID
	UserID    string    `db:"USER_ID"`
	Points    int       `db:"POINTS"` // Signed; negatives are adjustments
	Reason    string    `db:"REASON"` // What the points were awarded for
	Metadata  JSONMap   `db:"METADATA"`
	CreatedAt time.Time `db:"CREATED_AT"`
}
