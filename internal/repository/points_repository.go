package repository

import (
	"context"
	"fmt"
	"time"

	"study-track/internal/domain"
	"study-track/internal/repository/models"
	"study-track/internal/util"

	"github.com/jmoiron/sqlx"
)

// sqlxPointsRepository implements domain.PointsRepository using sqlx.
type sqlxPointsRepository struct {
	db *sqlx.DB
}

// NewSQLXPointsRepository creates a new instance of sqlxPointsRepository.
func NewSQLXPointsRepository(db *sqlx.DB) domain.PointsRepository {
	return &sqlxPointsRepository{db: db}
}

func toDomainPointsTransaction(m *models.PointsTransaction) *domain.PointsTransaction {
	if m == nil {
		return nil
	}
	return &domain.PointsTransaction{
		ID:        m.ID,
		UserID:    m.UserID,
		Points:    m.Points,
		Reason:    m.Reason,
		Metadata:  domain.Metadata(m.Metadata),
		CreatedAt: m.CreatedAt,
	}
}

// CreateTransaction appends one entry to the points ledger.
func (r *sqlxPointsRepository) CreateTransaction(ctx context.Context, tx *domain.PointsTransaction) error {
	executor := GetExecutor(ctx, r.db)

	if tx.ID == "" {
		tx.ID = util.NewULID()
	}
	if tx.CreatedAt.IsZero() {
		tx.CreatedAt = time.Now()
	}

	metadataVal, err := models.JSONMap(tx.Metadata).Value()
	if err != nil {
		return fmt.Errorf("failed to serialize points metadata: %w", err)
	}

	query := `INSERT INTO points_transactions (ID, USER_ID, POINTS, REASON, METADATA, CREATED_AT)
	          VALUES (:1, :2, :3, :4, :5, :6)`

	if _, err := executor.ExecContext(ctx, query, tx.ID, tx.UserID, tx.Points, tx.Reason, metadataVal, tx.CreatedAt); err != nil {
		return fmt.Errorf("failed to create points transaction: %w", err)
	}
	return nil
}

// GetTransactionsByUser returns the user's ledger entries, newest first.
func (r *sqlxPointsRepository) GetTransactionsByUser(ctx context.Context, userID string, limit, offset int) ([]*domain.PointsTransaction, error) {
	executor := GetExecutor(ctx, r.db)

	query := `SELECT ID, USER_ID, POINTS, REASON, METADATA, CREATED_AT
	          FROM points_transactions
	          WHERE USER_ID = :1
	          ORDER BY CREATED_AT DESC, ID DESC
	          OFFSET :2 ROWS FETCH NEXT :3 ROWS ONLY`

	var rows []models.PointsTransaction
	if err := executor.SelectContext(ctx, &rows, query, userID, offset, limit); err != nil {
		return nil, fmt.Errorf("failed to get points transactions for user %s: %w", userID, err)
	}

	txs := make([]*domain.PointsTransaction, 0, len(rows))
	for i := range rows {
		txs = append(txs, toDomainPointsTransaction(&rows[i]))
	}
	return txs, nil
}

// SumPointsByUser computes the authoritative total from the ledger.
func (r *sqlxPointsRepository) SumPointsByUser(ctx context.Context, userID string) (int, error) {
	executor := GetExecutor(ctx, r.db)

	var total int
	query := `SELECT COALESCE(SUM(POINTS), 0) FROM points_transactions WHERE USER_ID = :1`
	if err := executor.GetContext(ctx, &total, query, userID); err != nil {
		return 0, fmt.Errorf("failed to sum points for user %s: %w", userID, err)
	}
	return total, nil
}
