package dto

// CheckBadgesRequest is the body of POST /api/activities/check. It triggers
// badge evaluation without recording a new activity event.
type CheckBadgesRequest struct {
	ActivityType string                 `json:"activity_type"`
	Metadata     map[string]interface{} `json:"metadata,omitempty"`
}

// AwardedBadgeResponse identifies a badge earned during an evaluation run.
type AwardedBadgeResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// BadgeCheckResult is the per-badge outcome of an evaluation run.
type BadgeCheckResult struct {
	BadgeName string `json:"badge_name"`
	Earned    bool   `json:"earned"`
}

// EvaluationResponse is the result of a full badge evaluation. Source is
// "remote" or "local" depending on which path produced it.
type EvaluationResponse struct {
	Success    bool                   `json:"success"`
	Source     string                 `json:"source"`
	BadgeCount int                    `json:"badge_count"`
	NewBadges  []AwardedBadgeResponse `json:"new_badges"`
	Results    []BadgeCheckResult     `json:"results"`
}
