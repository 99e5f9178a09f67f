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

// NotificationRepository implements port.NotificationRepository
type NotificationRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewNotificationRepository creates a new notification repository
func NewNotificationRepository(db *sql.DB, logger *zap.Logger) port.NotificationRepository {
	return &NotificationRepository{
		db:     db,
		logger: logger,
	}
}

// Create inserts a new notification
func (r *NotificationRepository) Create(ctx context.Context, notification *entity.Notification) error {
	query := `
		INSERT INTO notifications (user_id, application_id, message, is_read, created_at)
		VALUES (?, ?, ?, 0, ?)
	`

	notification.CreatedAt = time.Now()
	result, err := getExecutor(ctx, r.db).ExecContext(ctx, query,
		notification.UserID,
		notification.ApplicationID,
		notification.Message,
		notification.CreatedAt,
	)
	if err != nil {
		r.logger.Error("Failed to create notification",
			zap.Int64("user_id", notification.UserID),
			zap.Error(err))
		return fmt.Errorf("failed to create notification: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert id: %w", err)
	}
	notification.ID = id
	return nil
}

// GetByID retrieves a notification. Returns nil when no row exists.
func (r *NotificationRepository) GetByID(ctx context.Context, id int64) (*entity.Notification, error) {
	query := `
		SELECT id, user_id, application_id, message, is_read, created_at
		FROM notifications
		WHERE id = ?
	`

	var notification entity.Notification
	err := getExecutor(ctx, r.db).QueryRowContext(ctx, query, id).Scan(
		&notification.ID,
		&notification.UserID,
		&notification.ApplicationID,
		&notification.Message,
		&notification.IsRead,
		&notification.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.logger.Error("Failed to get notification", zap.Int64("id", id), zap.Error(err))
		return nil, fmt.Errorf("failed to get notification: %w", err)
	}
	return &notification, nil
}

// ListByUser returns a user's notifications, newest first
func (r *NotificationRepository) ListByUser(ctx context.Context, userID int64) ([]*entity.Notification, error) {
	query := `
		SELECT id, user_id, application_id, message, is_read, created_at
		FROM notifications
		WHERE user_id = ?
		ORDER BY id DESC
	`

	rows, err := getExecutor(ctx, r.db).QueryContext(ctx, query, userID)
	if err != nil {
		r.logger.Error("Failed to list notifications", zap.Int64("user_id", userID), zap.Error(err))
		return nil, fmt.Errorf("failed to list notifications: %w", err)
	}
	defer rows.Close()

	var notifications []*entity.Notification
	for rows.Next() {
		var notification entity.Notification
		if err := rows.Scan(
			&notification.ID,
			&notification.UserID,
			&notification.ApplicationID,
			&notification.Message,
			&notification.IsRead,
			&notification.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan notification: %w", err)
		}
		notifications = append(notifications, &notification)
	}
	return notifications, rows.Err()
}

// MarkRead flips the read flag
func (r *NotificationRepository) MarkRead(ctx context.Context, id int64) error {
	_, err := getExecutor(ctx, r.db).ExecContext(ctx,
		"UPDATE notifications SET is_read = 1 WHERE id = ?", id)
	if err != nil {
		r.logger.Error("Failed to mark notification read", zap.Int64("id", id), zap.Error(err))
		return fmt.Errorf("failed to mark notification read: %w", err)
	}
	return nil
}

// Verify interface compliance
var _ port.NotificationRepository = (*NotificationRepository)(nil)
