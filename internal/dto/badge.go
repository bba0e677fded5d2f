package dto

import "time"

// BadgeResponse is one catalog badge with the requesting user's state.
type BadgeResponse struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Description string     `json:"description,omitempty"`
	ImageURL    string     `json:"image_url,omitempty"`
	Category    string     `json:"category,omitempty"`
	IsEarned    bool       `json:"is_earned"`
	Progress    int        `json:"progress"`
	EarnedAt    *time.Time `json:"earned_at,omitempty"`
}

// BadgeListResponse is the badge page payload.
type BadgeListResponse struct {
	Badges      []BadgeResponse `json:"badges"`
	EarnedCount int             `json:"earned_count"`
	TotalCount  int             `json:"total_count"`
}
