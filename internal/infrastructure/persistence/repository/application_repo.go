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

// ApplicationRepository implements port.ApplicationRepository
type ApplicationRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewApplicationRepository creates a new application repository
func NewApplicationRepository(db *sql.DB, logger *zap.Logger) port.ApplicationRepository {
	return &ApplicationRepository{
		db:     db,
		logger: logger,
	}
}

// Create inserts a new application
func (r *ApplicationRepository) Create(ctx context.Context, app *entity.Application) error {
	query := `
		INSERT INTO applications (
			title, description, researcher_id, faculty_id, committee_id,
			status, is_archived, submitted_at, created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	now := time.Now()
	app.CreatedAt = now
	app.UpdatedAt = now
	if app.SubmittedAt.IsZero() {
		app.SubmittedAt = now
	}

	result, err := getExecutor(ctx, r.db).ExecContext(ctx, query,
		app.Title,
		app.Description,
		app.ResearcherID,
		app.FacultyID,
		app.CommitteeID,
		app.Status,
		app.IsArchived,
		app.SubmittedAt,
		app.CreatedAt,
		app.UpdatedAt,
	)
	if err != nil {
		r.logger.Error("Failed to create application",
			zap.Int64("researcher_id", app.ResearcherID),
			zap.Error(err))
		return fmt.Errorf("failed to create application: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert id: %w", err)
	}
	app.ID = id
	return nil
}

// GetByID retrieves an application. Returns nil when no row exists.
func (r *ApplicationRepository) GetByID(ctx context.Context, id int64) (*entity.Application, error) {
	query := `
		SELECT id, title, description, researcher_id, faculty_id, committee_id,
			status, is_archived, submitted_at, created_at, updated_at
		FROM applications
		WHERE id = ?
	`

	var app entity.Application
	var committeeID sql.NullInt64

	err := getExecutor(ctx, r.db).QueryRowContext(ctx, query, id).Scan(
		&app.ID,
		&app.Title,
		&app.Description,
		&app.ResearcherID,
		&app.FacultyID,
		&committeeID,
		&app.Status,
		&app.IsArchived,
		&app.SubmittedAt,
		&app.CreatedAt,
		&app.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.logger.Error("Failed to get application", zap.Int64("id", id), zap.Error(err))
		return nil, fmt.Errorf("failed to get application: %w", err)
	}

	if committeeID.Valid {
		app.CommitteeID = &committeeID.Int64
	}
	return &app, nil
}

// Update rewrites the researcher-editable fields
func (r *ApplicationRepository) Update(ctx context.Context, app *entity.Application) error {
	query := `
		UPDATE applications
		SET title = ?, description = ?, updated_at = ?
		WHERE id = ?
	`

	app.UpdatedAt = time.Now()
	_, err := getExecutor(ctx, r.db).ExecContext(ctx, query,
		app.Title, app.Description, app.UpdatedAt, app.ID)
	if err != nil {
		r.logger.Error("Failed to update application", zap.Int64("id", app.ID), zap.Error(err))
		return fmt.Errorf("failed to update application: %w", err)
	}
	return nil
}

// UpdateStatus sets the review status and archive flag
func (r *ApplicationRepository) UpdateStatus(ctx context.Context, id int64, status string, archived bool) error {
	query := `
		UPDATE applications
		SET status = ?, is_archived = ?, updated_at = ?
		WHERE id = ?
	`

	_, err := getExecutor(ctx, r.db).ExecContext(ctx, query, status, archived, time.Now(), id)
	if err != nil {
		r.logger.Error("Failed to update application status",
			zap.Int64("id", id),
			zap.String("status", status),
			zap.Error(err))
		return fmt.Errorf("failed to update application status: %w", err)
	}
	return nil
}

const summarySelect = `
	SELECT a.id, a.title, a.status, a.is_archived,
		u.name, f.name, COALESCE(p.current_step, ''), a.submitted_at
	FROM applications a
	JOIN users u ON u.id = a.researcher_id
	JOIN faculties f ON f.id = a.faculty_id
	LEFT JOIN application_processes p ON p.application_id = a.id
`

// List returns all applications joined with display names and current step
func (r *ApplicationRepository) List(ctx context.Context) ([]*entity.ApplicationSummary, error) {
	return r.querySummaries(ctx, summarySelect+" ORDER BY a.id")
}

// ListArchived returns applications that reached a terminal status
func (r *ApplicationRepository) ListArchived(ctx context.Context) ([]*entity.ApplicationSummary, error) {
	return r.querySummaries(ctx, summarySelect+" WHERE a.is_archived = 1 ORDER BY a.id")
}

// ListPendingBefore returns unarchived pending applications submitted before the cutoff
func (r *ApplicationRepository) ListPendingBefore(ctx context.Context, cutoff time.Time) ([]*entity.ApplicationSummary, error) {
	query := summarySelect + `
		WHERE a.is_archived = 0 AND a.status = 'Pending' AND a.submitted_at < ?
		ORDER BY a.id
	`
	return r.querySummaries(ctx, query, cutoff)
}

func (r *ApplicationRepository) querySummaries(ctx context.Context, query string, args ...interface{}) ([]*entity.ApplicationSummary, error) {
	rows, err := getExecutor(ctx, r.db).QueryContext(ctx, query, args...)
	if err != nil {
		r.logger.Error("Failed to list applications", zap.Error(err))
		return nil, fmt.Errorf("failed to list applications: %w", err)
	}
	defer rows.Close()

	var summaries []*entity.ApplicationSummary
	for rows.Next() {
		var summary entity.ApplicationSummary
		if err := rows.Scan(
			&summary.ID,
			&summary.Title,
			&summary.Status,
			&summary.IsArchived,
			&summary.ResearcherName,
			&summary.FacultyName,
			&summary.CurrentStep,
			&summary.SubmittedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan application summary: %w", err)
		}
		summaries = append(summaries, &summary)
	}
	return summaries, rows.Err()
}

// Verify interface compliance
var _ port.ApplicationRepository = (*ApplicationRepository)(nil)
