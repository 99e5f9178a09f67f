package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/acadflow/ethics-review/internal/application/port"
	"github.com/acadflow/ethics-review/internal/domain/entity"
)

// ReviewRepository implements port.ReviewRepository
type ReviewRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewReviewRepository creates a new review repository
func NewReviewRepository(db *sql.DB, logger *zap.Logger) port.ReviewRepository {
	return &ReviewRepository{
		db:     db,
		logger: logger,
	}
}

// Create appends one audit record for a transition
func (r *ReviewRepository) Create(ctx context.Context, record *entity.ReviewRecord) error {
	query := `
		INSERT INTO application_reviews (
			application_id, reviewer_id, committee_id, step, action, status, comment, created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`

	record.CreatedAt = time.Now()
	result, err := getExecutor(ctx, r.db).ExecContext(ctx, query,
		record.ApplicationID,
		record.ReviewerID,
		record.CommitteeID,
		record.Step,
		record.Action,
		record.Status,
		record.Comment,
		record.CreatedAt,
	)
	if err != nil {
		r.logger.Error("Failed to create review record",
			zap.Int64("application_id", record.ApplicationID),
			zap.Error(err))
		return fmt.Errorf("failed to create review record: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert id: %w", err)
	}
	record.ID = id
	return nil
}

// GetByApplicationID returns all review records for an application, oldest first
func (r *ReviewRepository) GetByApplicationID(ctx context.Context, applicationID int64) ([]*entity.ReviewRecord, error) {
	query := `
		SELECT id, application_id, reviewer_id, committee_id, step, action, status, comment, created_at
		FROM application_reviews
		WHERE application_id = ?
		ORDER BY id
	`

	rows, err := getExecutor(ctx, r.db).QueryContext(ctx, query, applicationID)
	if err != nil {
		r.logger.Error("Failed to list review records",
			zap.Int64("application_id", applicationID),
			zap.Error(err))
		return nil, fmt.Errorf("failed to list review records: %w", err)
	}
	defer rows.Close()

	var records []*entity.ReviewRecord
	for rows.Next() {
		var record entity.ReviewRecord
		var committeeID sql.NullInt64
		if err := rows.Scan(
			&record.ID,
			&record.ApplicationID,
			&record.ReviewerID,
			&committeeID,
			&record.Step,
			&record.Action,
			&record.Status,
			&record.Comment,
			&record.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan review record: %w", err)
		}
		if committeeID.Valid {
			record.CommitteeID = &committeeID.Int64
		}
		records = append(records, &record)
	}
	return records, rows.Err()
}

// Verify interface compliance
var _ port.ReviewRepository = (*ReviewRepository)(nil)
