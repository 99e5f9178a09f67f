package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/acadflow/ethics-review/internal/application/port"
	"github.com/acadflow/ethics-review/internal/domain/entity"
	"github.com/acadflow/ethics-review/internal/domain/workflow"
)

// ReminderService periodically scans for applications stuck in review and
// notifies the reviewers of the step they are waiting on. The scan only
// reads application rows; it never touches process state.
type ReminderService interface {
	Start() error
	Stop()

	// RunOnce executes a single scan; exposed for the scheduler and tests
	RunOnce(ctx context.Context) error
}

type reminderServiceImpl struct {
	applicationRepo  port.ApplicationRepository
	userRepo         port.UserRepository
	notificationRepo port.NotificationRepository
	logger           Logger

	pendingAfter time.Duration
	schedule     string
	cron         *cron.Cron

	// reminded tracks application/step pairs already reminded in this
	// process lifetime, so an hourly scan does not repeat itself
	mu       sync.Mutex
	reminded map[string]bool
}

// NewReminderService creates a new ReminderService
func NewReminderService(
	applicationRepo port.ApplicationRepository,
	userRepo port.UserRepository,
	notificationRepo port.NotificationRepository,
	pendingAfter time.Duration,
	schedule string,
	logger Logger,
) ReminderService {
	return &reminderServiceImpl{
		applicationRepo:  applicationRepo,
		userRepo:         userRepo,
		notificationRepo: notificationRepo,
		pendingAfter:     pendingAfter,
		schedule:         schedule,
		logger:           logger,
		reminded:         make(map[string]bool),
	}
}

func (s *reminderServiceImpl) Start() error {
	s.cron = cron.New()
	_, err := s.cron.AddFunc(s.schedule, func() {
		if err := s.RunOnce(context.Background()); err != nil {
			s.logger.Error("Reminder scan failed", "error", err)
		}
	})
	if err != nil {
		return fmt.Errorf("schedule reminder scan: %w", err)
	}
	s.cron.Start()
	s.logger.Info("Reminder scan scheduled", "schedule", s.schedule, "pending_after", s.pendingAfter.String())
	return nil
}

func (s *reminderServiceImpl) Stop() {
	if s.cron != nil {
		s.cron.Stop()
	}
}

func (s *reminderServiceImpl) RunOnce(ctx context.Context) error {
	cutoff := time.Now().Add(-s.pendingAfter)
	apps, err := s.applicationRepo.ListPendingBefore(ctx, cutoff)
	if err != nil {
		return fmt.Errorf("list pending applications: %w", err)
	}

	for _, app := range apps {
		key := fmt.Sprintf("%d/%s", app.ID, app.CurrentStep)
		s.mu.Lock()
		seen := s.reminded[key]
		s.mu.Unlock()
		if seen {
			continue
		}

		if err := s.remind(ctx, app); err != nil {
			s.logger.Error("Failed to send reminder", "application_id", app.ID, "error", err)
			continue
		}

		s.mu.Lock()
		s.reminded[key] = true
		s.mu.Unlock()
	}

	return nil
}

func (s *reminderServiceImpl) remind(ctx context.Context, app *entity.ApplicationSummary) error {
	step, err := workflow.ResolveStep(app.CurrentStep)
	if err != nil || step == workflow.StepDone {
		return nil
	}

	// The reviewer role bound to the step gets the reminder.
	role, err := workflow.ResolveRole(step.String())
	if err != nil {
		return nil
	}

	reviewers, err := s.userRepo.ListByRole(ctx, role.String())
	if err != nil {
		return fmt.Errorf("list reviewers: %w", err)
	}

	message := fmt.Sprintf("Application %q has been awaiting %s review for more than %s",
		app.Title, step.String(), s.pendingAfter.String())

	for _, reviewer := range reviewers {
		notification := &entity.Notification{
			UserID:        reviewer.ID,
			ApplicationID: app.ID,
			Message:       message,
		}
		if err := s.notificationRepo.Create(ctx, notification); err != nil {
			return fmt.Errorf("create reminder notification: %w", err)
		}
	}

	s.logger.Info("Reminder sent",
		"application_id", app.ID,
		"step", step.String(),
		"reviewers", len(reviewers))
	return nil
}
