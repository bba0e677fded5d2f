package domain

import (
	"time"
)

// BadgeDefinition is static catalog data, created by operators and read-only
// to the engine.
type BadgeDefinition struct {
	ID          string
	Name        string
	Description string
	ImageURL    string
	Category    string
}

// UserBadge is the persisted per-user badge state. At most one row exists per
// (user, badge) pair; IsEarned is a one-way transition and Progress never
// decreases once earned.
type UserBadge struct {
	ID                string
	UserID            string
	BadgeID           string
	IsEarned          bool
	Progress          int
	EarnedAt          *time.Time
	NotificationShown bool
}

// UserBadgeView is a UserBadge joined with its catalog definition, as
// returned by the badge read surface.
type UserBadgeView struct {
	Badge    BadgeDefinition
	IsEarned bool
	Progress int
	EarnedAt *time.Time
}

// AwardResult reports one award attempt back to the caller. Awarded is true
// only when this evaluation newly earned the badge; an already-earned badge
// reports false so callers can tell "new" from "already had it".
type AwardResult struct {
	BadgeName string
	Awarded   bool
}

// AwardedBadge is the minimal identity of a newly earned badge, as announced
// to callers and by the remote evaluator.
type AwardedBadge struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}
