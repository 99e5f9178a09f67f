package service

import (
	"context"
	"fmt"
	"time"

	"github.com/acadflow/ethics-review/internal/application/port"
	"github.com/acadflow/ethics-review/internal/domain/entity"
	"github.com/acadflow/ethics-review/internal/domain/workflow"
)

// TransitionRequest carries one reviewer action against an application
type TransitionRequest struct {
	ApplicationID int64
	ActorID       int64
	ActorRole     string
	Action        string
	Comment       string
}

// TransitionResult is the state after a successful transition
type TransitionResult struct {
	Process   *entity.ProcessState
	NewStatus string
}

// TransitionService applies reviewer actions to application processes.
// Every call authorizes the actor against the current step, computes the
// transition, and applies all side effects in one transaction.
type TransitionService interface {
	Act(ctx context.Context, req TransitionRequest) (*TransitionResult, error)
}

type transitionServiceImpl struct {
	processRepo      port.ProcessRepository
	applicationRepo  port.ApplicationRepository
	workflowRepo     port.WorkflowRepository
	reviewRepo       port.ReviewRepository
	notificationRepo port.NotificationRepository
	userRepo         port.UserRepository
	txManager        port.TransactionManager
	logger           Logger
}

// NewTransitionService creates a new TransitionService
func NewTransitionService(
	processRepo port.ProcessRepository,
	applicationRepo port.ApplicationRepository,
	workflowRepo port.WorkflowRepository,
	reviewRepo port.ReviewRepository,
	notificationRepo port.NotificationRepository,
	userRepo port.UserRepository,
	txManager port.TransactionManager,
	logger Logger,
) TransitionService {
	return &transitionServiceImpl{
		processRepo:      processRepo,
		applicationRepo:  applicationRepo,
		workflowRepo:     workflowRepo,
		reviewRepo:       reviewRepo,
		notificationRepo: notificationRepo,
		userRepo:         userRepo,
		txManager:        txManager,
		logger:           logger,
	}
}

// Act validates, authorizes and executes one reviewer action. Validation and
// authorization failures short-circuit before any state is touched; once the
// transaction opens, every side effect commits together or not at all.
func (s *transitionServiceImpl) Act(ctx context.Context, req TransitionRequest) (*TransitionResult, error) {
	action, err := workflow.ParseAction(req.Action)
	if err != nil {
		return nil, err
	}

	role, err := workflow.ResolveRole(req.ActorRole)
	if err != nil {
		return nil, err
	}

	process, err := s.processRepo.GetByApplicationID(ctx, req.ApplicationID)
	if err != nil {
		return nil, fmt.Errorf("load process: %w", err)
	}
	if process == nil {
		return nil, ErrProcessNotFound
	}

	def, err := s.workflowRepo.GetCurrent(ctx)
	if err != nil {
		return nil, fmt.Errorf("load current workflow: %w", err)
	}
	if def == nil {
		return nil, ErrNoActiveWorkflow
	}

	seq, err := workflow.NewSequence(def.Steps)
	if err != nil {
		return nil, fmt.Errorf("current workflow %d has invalid steps: %w", def.ID, err)
	}

	current, err := workflow.ResolveStep(process.CurrentStep)
	if err != nil {
		return nil, fmt.Errorf("process %d has invalid step %q: %w", process.ID, process.CurrentStep, err)
	}

	if err := workflow.CanAct(role, current); err != nil {
		return nil, err
	}

	outcome, err := workflow.Apply(seq, current, action)
	if err != nil {
		return nil, err
	}

	app, err := s.applicationRepo.GetByID(ctx, req.ApplicationID)
	if err != nil {
		return nil, fmt.Errorf("load application: %w", err)
	}
	if app == nil {
		return nil, ErrProcessNotFound
	}

	// Committee reference on the audit record comes from the acting user,
	// when that user belongs to a committee.
	var committeeID *int64
	if actor, err := s.userRepo.GetByID(ctx, req.ActorID); err == nil && actor != nil {
		committeeID = actor.CommitteeID
	}

	err = s.txManager.WithTransaction(ctx, func(txCtx context.Context) error {
		rows, err := s.processRepo.AdvanceStep(txCtx, req.ApplicationID, current.String(), outcome.NextStep.String())
		if err != nil {
			return fmt.Errorf("advance step: %w", err)
		}
		if rows == 0 {
			return ErrStaleProcess
		}

		if err := s.applicationRepo.UpdateStatus(txCtx, app.ID, outcome.Status.Label(), outcome.Archive); err != nil {
			return fmt.Errorf("update application status: %w", err)
		}

		record := &entity.ReviewRecord{
			ApplicationID: app.ID,
			ReviewerID:    req.ActorID,
			CommitteeID:   committeeID,
			Step:          current.String(),
			Action:        action.String(),
			Status:        outcome.Status.Label(),
			Comment:       req.Comment,
		}
		if err := s.reviewRepo.Create(txCtx, record); err != nil {
			return fmt.Errorf("create review record: %w", err)
		}

		if outcome.NotifyResearcher {
			notification := &entity.Notification{
				UserID:        app.ResearcherID,
				ApplicationID: app.ID,
				Message:       revisionMessage(app.Title, req.Comment),
			}
			if err := s.notificationRepo.Create(txCtx, notification); err != nil {
				return fmt.Errorf("create notification: %w", err)
			}
		}

		return nil
	})

	if err != nil {
		s.logger.Error("Transition failed",
			"application_id", req.ApplicationID,
			"action", action.String(),
			"step", current.String(),
			"error", err)
		return nil, err
	}

	process.CurrentStep = outcome.NextStep.String()
	process.UpdatedAt = time.Now()

	s.logger.Info("Transition applied",
		"application_id", req.ApplicationID,
		"action", action.String(),
		"from_step", current.String(),
		"to_step", outcome.NextStep.String(),
		"status", outcome.Status.Label())

	return &TransitionResult{
		Process:   process,
		NewStatus: outcome.Status.Label(),
	}, nil
}

func revisionMessage(title, comment string) string {
	if comment == "" {
		return fmt.Sprintf("Revision requested for application %q", title)
	}
	return fmt.Sprintf("Revision requested for application %q: %s", title, comment)
}
