package domain

import (
	"math"
	"time"
)

// PointsTransaction is one entry in the append-only points ledger. The
// authoritative total is the sum over a user's transactions; users.total_points
// is a cache the ledger keeps in sync on every insert.
type PointsTransaction struct {
	ID        string
	UserID    string
	Points    int
	Reason    string
	Metadata  Metadata
	CreatedAt time.Time
}

// Validate rejects malformed transactions at the ingestion boundary.
func (t *PointsTransaction) Validate() error {
	if t.UserID == "" {
		return NewInvalidInputError("user ID is required")
	}
	if t.Points == 0 {
		return NewInvalidInputError("points must be non-zero")
	}
	if t.Reason == "" {
		return NewInvalidInputError("reason is required")
	}
	return nil
}

// AssignmentPoints converts an assignment score (0-100) into points, scaled
// by difficulty: easy x0.8, medium x1, hard x1.5, expert x2.
func AssignmentPoints(score int, difficulty string) int {
	switch difficulty {
	case "easy":
		return int(math.Round(float64(score) * 0.8))
	case "hard":
		return int(math.Round(float64(score) * 1.5))
	case "expert":
		return score * 2
	default:
		return score
	}
}
