package domain

import (
	"context"
)

// EvaluationSource tags which path produced an evaluation result.
type EvaluationSource string

const (
	SourceRemote EvaluationSource = "remote"
	SourceLocal  EvaluationSource = "local"
)

// Evaluation is the outcome of one checkAll pass, regardless of path.
type Evaluation struct {
	Source    EvaluationSource
	NewBadges []AwardedBadge
	Results   []AwardResult
}

// RemoteEvaluator is the port to the external authoritative badge evaluator.
// Implementations must honor the context deadline; the orchestrator bounds
// every call with a timeout and falls back to local evaluation on any error.
type RemoteEvaluator interface {
	// CheckAll asks the remote service to evaluate all badges for the user.
	// authToken may be empty; when set it is forwarded as the caller's
	// identity.
	CheckAll(ctx context.Context, userID string, activityType ActivityType, metadata Metadata, authToken string) (*Evaluation, error)
}
