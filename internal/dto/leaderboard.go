package dto

// LeaderboardEntryResponse is one ranked row of the leaderboard.
// Synthetic marks filler entries generated when there are not enough real
// ranked users to cover the requested range.
type LeaderboardEntryResponse struct {
	UserID    string `json:"user_id,omitempty"`
	Username  string `json:"username"`
	Points    int    `json:"points"`
	Rank      int    `json:"rank"`
	Synthetic bool   `json:"synthetic,omitempty"`
}

// LeaderboardResponse is the payload of GET /api/leaderboard.
// Degraded means the backing store was unreachable or empty and the whole
// page is fabricated.
type LeaderboardResponse struct {
	Start    int                        `json:"start"`
	End      int                        `json:"end"`
	Entries  []LeaderboardEntryResponse `json:"entries"`
	Degraded bool                       `json:"degraded,omitempty"`
}
