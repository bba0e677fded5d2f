package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"study-track/internal/domain"
	"study-track/internal/repository/models"
	"study-track/internal/util"

	"github.com/jmoiron/sqlx"
)

// sqlxActivityRepository implements domain.ActivityRepository using sqlx.
type sqlxActivityRepository struct {
	db *sqlx.DB
}

// NewSQLXActivityRepository creates a new instance of sqlxActivityRepository.
func NewSQLXActivityRepository(db *sqlx.DB) domain.ActivityRepository {
	return &sqlxActivityRepository{db: db}
}

func toDomainActivityEvent(m *models.ActivityEvent) *domain.ActivityEvent {
	if m == nil {
		return nil
	}
	return &domain.ActivityEvent{
		ID:        m.ID,
		UserID:    m.UserID,
		Type:      domain.ActivityType(m.ActivityType),
		Metadata:  domain.Metadata(m.Metadata),
		Timestamp: m.CreatedAt,
	}
}

func fromDomainActivityEvent(e *domain.ActivityEvent) *models.ActivityEvent {
	if e == nil {
		return nil
	}
	return &models.ActivityEvent{
		ID:           e.ID,
		UserID:       e.UserID,
		ActivityType: string(e.Type),
		Metadata:     models.JSONMap(e.Metadata),
		CreatedAt:    e.Timestamp,
	}
}

// CreateActivity appends one event to the activity log.
func (r *sqlxActivityRepository) CreateActivity(ctx context.Context, event *domain.ActivityEvent) error {
	executor := GetExecutor(ctx, r.db)

	m := fromDomainActivityEvent(event)
	if m.ID == "" {
		m.ID = util.NewULID()
	}
	if m.CreatedAt.IsZero() {
		m.CreatedAt = time.Now()
	}

	metadataVal, err := m.Metadata.Value()
	if err != nil {
		return fmt.Errorf("failed to serialize activity metadata: %w", err)
	}

	query := `INSERT INTO activity_events (ID, USER_ID, ACTIVITY_TYPE, METADATA, CREATED_AT)
	          VALUES (:1, :2, :3, :4, :5)`

	if _, err := executor.ExecContext(ctx, query, m.ID, m.UserID, m.ActivityType, metadataVal, m.CreatedAt); err != nil {
		return fmt.Errorf("failed to create activity event: %w", err)
	}
	return nil
}

// GetActivitiesByUser returns the user's events, newest first.
func (r *sqlxActivityRepository) GetActivitiesByUser(ctx context.Context, userID string, limit, offset int) ([]*domain.ActivityEvent, error) {
	executor := GetExecutor(ctx, r.db)

	query := `SELECT ID, USER_ID, ACTIVITY_TYPE, METADATA, CREATED_AT
	          FROM activity_events
	          WHERE USER_ID = :1
	          ORDER BY CREATED_AT DESC, ID DESC
	          OFFSET :2 ROWS FETCH NEXT :3 ROWS ONLY`

	var rows []models.ActivityEvent
	if err := executor.SelectContext(ctx, &rows, query, userID, offset, limit); err != nil {
		return nil, fmt.Errorf("failed to get activities for user %s: %w", userID, err)
	}

	events := make([]*domain.ActivityEvent, 0, len(rows))
	for i := range rows {
		events = append(events, toDomainActivityEvent(&rows[i]))
	}
	return events, nil
}

// CountByUser returns the user's total event count.
func (r *sqlxActivityRepository) CountByUser(ctx context.Context, userID string) (int, error) {
	executor := GetExecutor(ctx, r.db)

	var total int
	query := `SELECT COUNT(*) FROM activity_events WHERE USER_ID = :1`
	if err := executor.GetContext(ctx, &total, query, userID); err != nil {
		return 0, fmt.Errorf("failed to count activities for user %s: %w", userID, err)
	}
	return total, nil
}

// CountByType returns lifetime per-type counts for the user. Types the user
// never performed are absent from the map.
func (r *sqlxActivityRepository) CountByType(ctx context.Context, userID string) (map[domain.ActivityType]int, error) {
	executor := GetExecutor(ctx, r.db)

	query := `SELECT ACTIVITY_TYPE, COUNT(*) AS TOTAL
	          FROM activity_events
	          WHERE USER_ID = :1
	          GROUP BY ACTIVITY_TYPE`

	var rows []models.ActivityTypeCount
	if err := executor.SelectContext(ctx, &rows, query, userID); err != nil {
		return nil, fmt.Errorf("failed to count activities by type for user %s: %w", userID, err)
	}

	counts := make(map[domain.ActivityType]int, len(rows))
	for _, row := range rows {
		counts[domain.ActivityType(row.ActivityType)] = row.Total
	}
	return counts, nil
}

// GetActivityTimestamps returns the timestamps of the user's events
// restricted to the given activity types, oldest first.
func (r *sqlxActivityRepository) GetActivityTimestamps(ctx context.Context, userID string, types []domain.ActivityType) ([]time.Time, error) {
	if len(types) == 0 {
		return nil, nil
	}
	executor := GetExecutor(ctx, r.db)

	args := make([]interface{}, 0, len(types)+1)
	args = append(args, userID)
	placeholders := make([]string, 0, len(types))
	for i, t := range types {
		placeholders = append(placeholders, fmt.Sprintf(":%d", i+2))
		args = append(args, string(t))
	}

	query := fmt.Sprintf(`SELECT CREATED_AT FROM activity_events
	          WHERE USER_ID = :1 AND ACTIVITY_TYPE IN (%s)
	          ORDER BY CREATED_AT ASC`, strings.Join(placeholders, ", "))

	var timestamps []time.Time
	if err := executor.SelectContext(ctx, &timestamps, query, args...); err != nil {
		return nil, fmt.Errorf("failed to get activity timestamps for user %s: %w", userID, err)
	}
	return timestamps, nil
}
