package dto

// StreakResponse is the state of one streak family for a user.
type StreakResponse struct {
	Family        string `json:"family"`
	Current       int    `json:"current"`
	Longest       int    `json:"longest"`
	Level         string `json:"level"`
	NextMilestone int    `json:"next_milestone"`
}

// UserStreaksResponse is the payload of GET /api/users/me/streak.
type UserStreaksResponse struct {
	Login StreakResponse `json:"login"`
	Study StreakResponse `json:"study"`
}
