package service

import (
	"context"
	"fmt"

	"github.com/acadflow/ethics-review/internal/application/port"
	"github.com/acadflow/ethics-review/internal/domain/entity"
)

// NotificationService exposes a user's notifications
type NotificationService interface {
	ListForUser(ctx context.Context, userID int64) ([]*entity.Notification, error)

	// MarkRead flips the read flag. Only the recipient may do so.
	MarkRead(ctx context.Context, id, userID int64) error
}

type notificationServiceImpl struct {
	notificationRepo port.NotificationRepository
	logger           Logger
}

// NewNotificationService creates a new NotificationService
func NewNotificationService(notificationRepo port.NotificationRepository, logger Logger) NotificationService {
	return &notificationServiceImpl{
		notificationRepo: notificationRepo,
		logger:           logger,
	}
}

func (s *notificationServiceImpl) ListForUser(ctx context.Context, userID int64) ([]*entity.Notification, error) {
	return s.notificationRepo.ListByUser(ctx, userID)
}

func (s *notificationServiceImpl) MarkRead(ctx context.Context, id, userID int64) error {
	notification, err := s.notificationRepo.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("load notification: %w", err)
	}
	if notification == nil {
		return ErrNotFound
	}
	if notification.UserID != userID {
		return ErrForbidden
	}
	return s.notificationRepo.MarkRead(ctx, id)
}
