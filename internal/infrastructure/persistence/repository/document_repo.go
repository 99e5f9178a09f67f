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

// DocumentRepository implements port.DocumentRepository
type DocumentRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewDocumentRepository creates a new document repository
func NewDocumentRepository(db *sql.DB, logger *zap.Logger) port.DocumentRepository {
	return &DocumentRepository{
		db:     db,
		logger: logger,
	}
}

// Create inserts a document reference
func (r *DocumentRepository) Create(ctx context.Context, doc *entity.Document) error {
	query := `
		INSERT INTO application_documents (application_id, file_name, stored_name, url, created_at)
		VALUES (?, ?, ?, ?, ?)
	`

	doc.CreatedAt = time.Now()
	result, err := getExecutor(ctx, r.db).ExecContext(ctx, query,
		doc.ApplicationID,
		doc.FileName,
		doc.StoredName,
		doc.URL,
		doc.CreatedAt,
	)
	if err != nil {
		r.logger.Error("Failed to create document reference",
			zap.Int64("application_id", doc.ApplicationID),
			zap.Error(err))
		return fmt.Errorf("failed to create document reference: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert id: %w", err)
	}
	doc.ID = id
	return nil
}

// ListByApplicationID returns all document references for an application
func (r *DocumentRepository) ListByApplicationID(ctx context.Context, applicationID int64) ([]*entity.Document, error) {
	query := `
		SELECT id, application_id, file_name, stored_name, url, created_at
		FROM application_documents
		WHERE application_id = ?
		ORDER BY id
	`

	rows, err := getExecutor(ctx, r.db).QueryContext(ctx, query, applicationID)
	if err != nil {
		r.logger.Error("Failed to list document references",
			zap.Int64("application_id", applicationID),
			zap.Error(err))
		return nil, fmt.Errorf("failed to list document references: %w", err)
	}
	defer rows.Close()

	var docs []*entity.Document
	for rows.Next() {
		var doc entity.Document
		if err := rows.Scan(
			&doc.ID,
			&doc.ApplicationID,
			&doc.FileName,
			&doc.StoredName,
			&doc.URL,
			&doc.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan document reference: %w", err)
		}
		docs = append(docs, &doc)
	}
	return docs, rows.Err()
}

// Verify interface compliance
var _ port.DocumentRepository = (*DocumentRepository)(nil)
