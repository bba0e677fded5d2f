package dto

import "time"

// RecordActivityRequest is the body of POST /api/activities.
type RecordActivityRequest struct {
	ActivityType string                 `json:"activity_type"`
	Metadata     map[string]interface{} `json:"metadata,omitempty"`
}

// ActivityResponse is one recorded activity event.
type ActivityResponse struct {
	ID           string                 `json:"id"`
	ActivityType string                 `json:"activity_type"`
	Metadata     map[string]interface{} `json:"metadata,omitempty"`
	CreatedAt    time.Time              `json:"created_at"`
}

// ActivityListResponse is a page of a user's activity history.
type ActivityListResponse struct {
	Activities []ActivityResponse `json:"activities"`
	Total      int                `json:"total"`
	Limit      int                `json:"limit"`
	Offset     int                `json:"offset"`
}

// ActivityStatsResponse summarizes a user's lifetime activity.
type ActivityStatsResponse struct {
	TotalActivities int            `json:"total_activities"`
	CountsByType    map[string]int `json:"counts_by_type"`
}
