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

// ProcessRepository implements port.ProcessRepository
type ProcessRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewProcessRepository creates a new process repository
func NewProcessRepository(db *sql.DB, logger *zap.Logger) port.ProcessRepository {
	return &ProcessRepository{
		db:     db,
		logger: logger,
	}
}

// Create inserts the process state for a newly submitted application
func (r *ProcessRepository) Create(ctx context.Context, process *entity.ProcessState) error {
	query := `
		INSERT INTO application_processes (application_id, current_step, created_at, updated_at)
		VALUES (?, ?, ?, ?)
	`

	now := time.Now()
	process.CreatedAt = now
	process.UpdatedAt = now

	result, err := getExecutor(ctx, r.db).ExecContext(ctx, query,
		process.ApplicationID,
		process.CurrentStep,
		process.CreatedAt,
		process.UpdatedAt,
	)
	if err != nil {
		r.logger.Error("Failed to create process state",
			zap.Int64("application_id", process.ApplicationID),
			zap.Error(err))
		return fmt.Errorf("failed to create process state: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert id: %w", err)
	}
	process.ID = id
	return nil
}

// GetByApplicationID retrieves the process state for an application.
// Returns nil when no row exists.
func (r *ProcessRepository) GetByApplicationID(ctx context.Context, applicationID int64) (*entity.ProcessState, error) {
	query := `
		SELECT id, application_id, current_step, created_at, updated_at
		FROM application_processes
		WHERE application_id = ?
	`

	var process entity.ProcessState
	err := getExecutor(ctx, r.db).QueryRowContext(ctx, query, applicationID).Scan(
		&process.ID,
		&process.ApplicationID,
		&process.CurrentStep,
		&process.CreatedAt,
		&process.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.logger.Error("Failed to get process state",
			zap.Int64("application_id", applicationID),
			zap.Error(err))
		return nil, fmt.Errorf("failed to get process state: %w", err)
	}

	return &process, nil
}

// AdvanceStep moves the process to a new step, guarded on the step the
// transition was computed from. Zero affected rows means a concurrent
// transition won.
func (r *ProcessRepository) AdvanceStep(ctx context.Context, applicationID int64, from, to string) (int64, error) {
	query := `
		UPDATE application_processes
		SET current_step = ?, updated_at = ?
		WHERE application_id = ? AND current_step = ?
	`

	result, err := getExecutor(ctx, r.db).ExecContext(ctx, query, to, time.Now(), applicationID, from)
	if err != nil {
		r.logger.Error("Failed to advance process step",
			zap.Int64("application_id", applicationID),
			zap.String("from", from),
			zap.String("to", to),
			zap.Error(err))
		return 0, fmt.Errorf("failed to advance process step: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get affected rows: %w", err)
	}
	return rows, nil
}

// Verify interface compliance
var _ port.ProcessRepository = (*ProcessRepository)(nil)
