package dto

import "time"

// AwardPointsRequest is the body of POST /api/points.
type AwardPointsRequest struct {
	Points   int                    `json:"points"`
	Reason   string                 `json:"reason"`
	Metadata map[string]interface{} `json:"metadata,omitempty"`
}

// PointsResponse reports the user's total and rank after an award.
type PointsResponse struct {
	TotalPoints int `json:"total_points"`
	Rank        int `json:"rank"`
}

// PointsTransactionResponse is one ledger entry.
type PointsTransactionResponse struct {
	ID        string                 `json:"id"`
	Points    int                    `json:"points"`
	Reason    string                 `json:"reason"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
	CreatedAt time.Time              `json:"created_at"`
}
