package evaluator

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"study-track/internal/domain"
	"study-track/internal/logger"

	"go.uber.org/zap"
)

// remoteEvaluator implements domain.RemoteEvaluator against the badge
// evaluation HTTP service.
type remoteEvaluator struct {
	baseURL string
	client  *http.Client
}

// NewRemoteEvaluator creates a new remote evaluator. The timeout bounds the
// whole request; callers additionally pass a context with their own deadline.
func NewRemoteEvaluator(baseURL string, timeout time.Duration) domain.RemoteEvaluator {
	return &remoteEvaluator{
		baseURL: baseURL,
		client:  &http.Client{Timeout: timeout},
	}
}

type checkAllRequest struct {
	UserID       string          `json:"user_id"`
	ActivityType string          `json:"activity_type"`
	Metadata     domain.Metadata `json:"metadata,omitempty"`
}

type checkAllResponse struct {
	Success   bool                  `json:"success"`
	NewBadges []domain.AwardedBadge `json:"new_badges"`
	Results   []remoteResult        `json:"results"`
}

type remoteResult struct {
	BadgeName string `json:"badge_name"`
	Earned    bool   `json:"earned"`
}

// CheckAll asks the remote service to evaluate every badge for the user.
// 401 and 403 come back as unauthorized errors so the caller can fall back
// without retrying; other failures are remote evaluator errors.
func (e *remoteEvaluator) CheckAll(ctx context.Context, userID string, activityType domain.ActivityType, metadata domain.Metadata, authToken string) (*domain.Evaluation, error) {
	l := logger.Get()

	payload, err := json.Marshal(checkAllRequest{
		UserID:       userID,
		ActivityType: string(activityType),
		Metadata:     metadata,
	})
	if err != nil {
		return nil, domain.NewRemoteEvaluatorError(fmt.Errorf("failed to encode request: %w", err))
	}

	url := e.baseURL + "/api/v1/badges/check-all"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return nil, domain.NewRemoteEvaluatorError(fmt.Errorf("failed to build request: %w", err))
	}
	req.Header.Set("Content-Type", "application/json")
	if authToken != "" {
		req.Header.Set("Authorization", "Bearer "+authToken)
	}

	resp, err := e.client.Do(req)
	if err != nil {
		l.Warn("Remote badge evaluation request failed",
			zap.String("user_id", userID),
			zap.Error(err))
		return nil, domain.NewRemoteEvaluatorError(err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return nil, domain.NewUnauthorizedError(fmt.Sprintf("remote evaluator rejected credentials (status %d)", resp.StatusCode))
	case resp.StatusCode != http.StatusOK:
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		l.Warn("Remote badge evaluation returned non-OK status",
			zap.Int("status", resp.StatusCode),
			zap.ByteString("body", body))
		return nil, domain.NewRemoteEvaluatorError(fmt.Errorf("unexpected status %d", resp.StatusCode))
	}

	var decoded checkAllResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, domain.NewRemoteEvaluatorError(fmt.Errorf("failed to decode response: %w", err))
	}
	if !decoded.Success {
		return nil, domain.NewRemoteEvaluatorError(fmt.Errorf("remote evaluation reported failure"))
	}

	results := make([]domain.AwardResult, 0, len(decoded.Results))
	for _, r := range decoded.Results {
		results = append(results, domain.AwardResult{BadgeName: r.BadgeName, Awarded: r.Earned})
	}

	return &domain.Evaluation{
		Source:    domain.SourceRemote,
		NewBadges: decoded.NewBadges,
		Results:   results,
	}, nil
}
