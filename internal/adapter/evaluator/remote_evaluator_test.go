package evaluator

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"study-track/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRemoteEvaluator_CheckAll_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/v1/badges/check-all", r.URL.Path)
		assert.Equal(t, "Bearer token-123", r.Header.Get("Authorization"))

		var req checkAllRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "user1", req.UserID)
		assert.Equal(t, "quiz_completed", req.ActivityType)

		json.NewEncoder(w).Encode(checkAllResponse{
			Success:   true,
			NewBadges: []domain.AwardedBadge{{ID: "b1", Name: "First Step"}},
			Results: []remoteResult{
				{BadgeName: "First Step", Earned: true},
				{BadgeName: "Daily Learner", Earned: false},
			},
		})
	}))
	defer server.Close()

	ev := NewRemoteEvaluator(server.URL, time.Second)
	result, err := ev.CheckAll(context.Background(), "user1", domain.ActivityQuizCompleted, domain.Metadata{"quiz_id": "q1"}, "token-123")

	require.NoError(t, err)
	assert.Equal(t, domain.SourceRemote, result.Source)
	require.Len(t, result.NewBadges, 1)
	assert.Equal(t, "First Step", result.NewBadges[0].Name)
	require.Len(t, result.Results, 2)
	assert.True(t, result.Results[0].Awarded)
	assert.False(t, result.Results[1].Awarded)
}

func TestRemoteEvaluator_CheckAll_Unauthorized(t *testing.T) {
	for _, status := range []int{http.StatusUnauthorized, http.StatusForbidden} {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(status)
		}))

		ev := NewRemoteEvaluator(server.URL, time.Second)
		result, err := ev.CheckAll(context.Background(), "user1", domain.ActivityLogin, nil, "expired")

		assert.Nil(t, result)
		var domainErr *domain.DomainError
		require.True(t, errors.As(err, &domainErr), "status %d", status)
		assert.Equal(t, domain.ErrUnauthorized, domainErr.Code, "status %d", status)

		server.Close()
	}
}

func TestRemoteEvaluator_CheckAll_ServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	ev := NewRemoteEvaluator(server.URL, time.Second)
	result, err := ev.CheckAll(context.Background(), "user1", domain.ActivityLogin, nil, "token")

	assert.Nil(t, result)
	var domainErr *domain.DomainError
	require.True(t, errors.As(err, &domainErr))
	assert.Equal(t, domain.ErrRemoteEvaluator, domainErr.Code)
}

func TestRemoteEvaluator_CheckAll_Timeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	defer server.Close()

	ev := NewRemoteEvaluator(server.URL, time.Second)
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	result, err := ev.CheckAll(ctx, "user1", domain.ActivityLogin, nil, "token")

	assert.Nil(t, result)
	var domainErr *domain.DomainError
	require.True(t, errors.As(err, &domainErr))
	assert.Equal(t, domain.ErrRemoteEvaluator, domainErr.Code)
}

func TestRemoteEvaluator_CheckAll_ReportedFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(checkAllResponse{Success: false})
	}))
	defer server.Close()

	ev := NewRemoteEvaluator(server.URL, time.Second)
	result, err := ev.CheckAll(context.Background(), "user1", domain.ActivityLogin, nil, "token")

	assert.Nil(t, result)
	assert.Error(t, err)
}
