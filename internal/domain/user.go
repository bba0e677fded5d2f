package domain

import "time"

// User is the engine's view of a user: identity plus the cached points total
// the leaderboard ranks over.
type User struct {
	ID          string
	Username    string
	Email       string
	TotalPoints int
	CreatedAt   time.Time
	UpdatedAt   time.Time
	DeletedAt   *time.Time
}
