package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/acadflow/ethics-review/internal/application/port"
	"github.com/acadflow/ethics-review/internal/domain/entity"
)

// WorkflowRepository implements port.WorkflowRepository.
// Step sequences are stored as a JSON array in the steps column.
type WorkflowRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewWorkflowRepository creates a new workflow repository
func NewWorkflowRepository(db *sql.DB, logger *zap.Logger) port.WorkflowRepository {
	return &WorkflowRepository{
		db:     db,
		logger: logger,
	}
}

// Create inserts a new workflow definition
func (r *WorkflowRepository) Create(ctx context.Context, def *entity.WorkflowDefinition) error {
	steps, err := json.Marshal(def.Steps)
	if err != nil {
		return fmt.Errorf("failed to marshal steps: %w", err)
	}

	query := `
		INSERT INTO workflow_definitions (steps, status, created_at, updated_at)
		VALUES (?, ?, ?, ?)
	`

	now := time.Now()
	def.CreatedAt = now
	def.UpdatedAt = now

	result, err := getExecutor(ctx, r.db).ExecContext(ctx, query,
		string(steps), def.Status, def.CreatedAt, def.UpdatedAt)
	if err != nil {
		r.logger.Error("Failed to create workflow definition", zap.Error(err))
		return fmt.Errorf("failed to create workflow definition: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert id: %w", err)
	}
	def.ID = id
	return nil
}

// GetByID retrieves a definition. Returns nil when no row exists.
func (r *WorkflowRepository) GetByID(ctx context.Context, id int64) (*entity.WorkflowDefinition, error) {
	query := `
		SELECT id, steps, status, created_at, updated_at
		FROM workflow_definitions
		WHERE id = ?
	`
	return r.queryOne(ctx, query, id)
}

// GetCurrent retrieves the active definition. Returns nil when none is current.
func (r *WorkflowRepository) GetCurrent(ctx context.Context) (*entity.WorkflowDefinition, error) {
	query := `
		SELECT id, steps, status, created_at, updated_at
		FROM workflow_definitions
		WHERE status = ?
	`
	return r.queryOne(ctx, query, entity.WorkflowStatusCurrent)
}

// Update rewrites the step sequence of a definition
func (r *WorkflowRepository) Update(ctx context.Context, def *entity.WorkflowDefinition) error {
	steps, err := json.Marshal(def.Steps)
	if err != nil {
		return fmt.Errorf("failed to marshal steps: %w", err)
	}

	query := `
		UPDATE workflow_definitions
		SET steps = ?, updated_at = ?
		WHERE id = ?
	`

	def.UpdatedAt = time.Now()
	_, err = getExecutor(ctx, r.db).ExecContext(ctx, query, string(steps), def.UpdatedAt, def.ID)
	if err != nil {
		r.logger.Error("Failed to update workflow definition", zap.Int64("id", def.ID), zap.Error(err))
		return fmt.Errorf("failed to update workflow definition: %w", err)
	}
	return nil
}

// Delete removes a definition and reports the number of rows removed
func (r *WorkflowRepository) Delete(ctx context.Context, id int64) (int64, error) {
	result, err := getExecutor(ctx, r.db).ExecContext(ctx,
		"DELETE FROM workflow_definitions WHERE id = ?", id)
	if err != nil {
		r.logger.Error("Failed to delete workflow definition", zap.Int64("id", id), zap.Error(err))
		return 0, fmt.Errorf("failed to delete workflow definition: %w", err)
	}
	return result.RowsAffected()
}

// List returns all definitions ordered by id ascending
func (r *WorkflowRepository) List(ctx context.Context) ([]*entity.WorkflowDefinition, error) {
	query := `
		SELECT id, steps, status, created_at, updated_at
		FROM workflow_definitions
		ORDER BY id
	`

	rows, err := getExecutor(ctx, r.db).QueryContext(ctx, query)
	if err != nil {
		r.logger.Error("Failed to list workflow definitions", zap.Error(err))
		return nil, fmt.Errorf("failed to list workflow definitions: %w", err)
	}
	defer rows.Close()

	var defs []*entity.WorkflowDefinition
	for rows.Next() {
		def, err := scanDefinition(rows.Scan)
		if err != nil {
			return nil, err
		}
		defs = append(defs, def)
	}
	return defs, rows.Err()
}

// DeactivateAll marks every definition as not in use
func (r *WorkflowRepository) DeactivateAll(ctx context.Context) error {
	_, err := getExecutor(ctx, r.db).ExecContext(ctx,
		"UPDATE workflow_definitions SET status = ?, updated_at = ?",
		entity.WorkflowStatusNotInUse, time.Now())
	if err != nil {
		r.logger.Error("Failed to deactivate workflow definitions", zap.Error(err))
		return fmt.Errorf("failed to deactivate workflow definitions: %w", err)
	}
	return nil
}

// Activate marks one definition as current and reports the rows changed
func (r *WorkflowRepository) Activate(ctx context.Context, id int64) (int64, error) {
	result, err := getExecutor(ctx, r.db).ExecContext(ctx,
		"UPDATE workflow_definitions SET status = ?, updated_at = ? WHERE id = ?",
		entity.WorkflowStatusCurrent, time.Now(), id)
	if err != nil {
		r.logger.Error("Failed to activate workflow definition", zap.Int64("id", id), zap.Error(err))
		return 0, fmt.Errorf("failed to activate workflow definition: %w", err)
	}
	return result.RowsAffected()
}

func (r *WorkflowRepository) queryOne(ctx context.Context, query string, args ...interface{}) (*entity.WorkflowDefinition, error) {
	row := getExecutor(ctx, r.db).QueryRowContext(ctx, query, args...)
	def, err := scanDefinition(row.Scan)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.logger.Error("Failed to get workflow definition", zap.Error(err))
		return nil, fmt.Errorf("failed to get workflow definition: %w", err)
	}
	return def, nil
}

func scanDefinition(scan func(dest ...interface{}) error) (*entity.WorkflowDefinition, error) {
	var def entity.WorkflowDefinition
	var steps string

	if err := scan(&def.ID, &steps, &def.Status, &def.CreatedAt, &def.UpdatedAt); err != nil {
		return nil, err
	}
	if err := json.Unmarshal([]byte(steps), &def.Steps); err != nil {
		return nil, fmt.Errorf("failed to unmarshal steps: %w", err)
	}
	return &def, nil
}

// Verify interface compliance
var _ port.WorkflowRepository = (*WorkflowRepository)(nil)
