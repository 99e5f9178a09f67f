package service

import (
	"context"
	"fmt"

	"github.com/acadflow/ethics-review/internal/application/port"
	"github.com/acadflow/ethics-review/internal/domain/entity"
	"github.com/acadflow/ethics-review/internal/domain/workflow"
)

// WorkflowService manages workflow definitions and the single-current invariant
type WorkflowService interface {
	Create(ctx context.Context, steps []string) (*entity.WorkflowDefinition, error)

	// Update changes the step sequence of a definition. When another
	// definition already carries the exact same sequence, that definition is
	// returned unmodified instead of an error: the sequence already exists,
	// so the caller gets the canonical record.
	Update(ctx context.Context, id int64, steps []string) (*entity.WorkflowDefinition, error)

	Delete(ctx context.Context, id int64) (*entity.WorkflowDefinition, error)

	// SetCurrent atomically deactivates every definition and activates the
	// given one. A missing id rolls the whole operation back.
	SetCurrent(ctx context.Context, id int64) (*entity.WorkflowDefinition, error)

	List(ctx context.Context) ([]*entity.WorkflowDefinition, error)
}

type workflowServiceImpl struct {
	workflowRepo port.WorkflowRepository
	txManager    port.TransactionManager
	logger       Logger
}

// NewWorkflowService creates a new WorkflowService
func NewWorkflowService(workflowRepo port.WorkflowRepository, txManager port.TransactionManager, logger Logger) WorkflowService {
	return &workflowServiceImpl{
		workflowRepo: workflowRepo,
		txManager:    txManager,
		logger:       logger,
	}
}

// Create validates the step sequence and rejects exact duplicates
func (s *workflowServiceImpl) Create(ctx context.Context, steps []string) (*entity.WorkflowDefinition, error) {
	seq, err := workflow.NewSequence(steps)
	if err != nil {
		return nil, err
	}

	existing, err := s.findBySequence(ctx, seq)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, fmt.Errorf("%w: definition %d has steps %s", ErrDuplicateWorkflow, existing.ID, seq)
	}

	def := &entity.WorkflowDefinition{
		Steps:  seq.Strings(),
		Status: entity.WorkflowStatusNotInUse,
	}
	if err := s.workflowRepo.Create(ctx, def); err != nil {
		return nil, fmt.Errorf("create workflow: %w", err)
	}

	s.logger.Info("Workflow definition created", "id", def.ID, "steps", seq.String())
	return def, nil
}

func (s *workflowServiceImpl) Update(ctx context.Context, id int64, steps []string) (*entity.WorkflowDefinition, error) {
	seq, err := workflow.NewSequence(steps)
	if err != nil {
		return nil, err
	}

	def, err := s.workflowRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("load workflow: %w", err)
	}
	if def == nil {
		return nil, ErrNotFound
	}

	existing, err := s.findBySequence(ctx, seq)
	if err != nil {
		return nil, err
	}
	if existing != nil && existing.ID != id {
		s.logger.Info("Workflow update resolved to existing definition",
			"requested_id", id, "existing_id", existing.ID)
		return existing, nil
	}

	def.Steps = seq.Strings()
	if err := s.workflowRepo.Update(ctx, def); err != nil {
		return nil, fmt.Errorf("update workflow: %w", err)
	}

	s.logger.Info("Workflow definition updated", "id", def.ID, "steps", seq.String())
	return def, nil
}

// Delete removes a definition. The current definition cannot be deleted:
// in-flight processes reference its steps.
func (s *workflowServiceImpl) Delete(ctx context.Context, id int64) (*entity.WorkflowDefinition, error) {
	def, err := s.workflowRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("load workflow: %w", err)
	}
	if def == nil {
		return nil, ErrNotFound
	}
	if def.IsCurrent() {
		return nil, ErrWorkflowInUse
	}

	rows, err := s.workflowRepo.Delete(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("delete workflow: %w", err)
	}
	if rows == 0 {
		return nil, ErrNotFound
	}

	s.logger.Info("Workflow definition deleted", "id", id)
	return def, nil
}

func (s *workflowServiceImpl) SetCurrent(ctx context.Context, id int64) (*entity.WorkflowDefinition, error) {
	err := s.txManager.WithTransaction(ctx, func(txCtx context.Context) error {
		if err := s.workflowRepo.DeactivateAll(txCtx); err != nil {
			return fmt.Errorf("deactivate workflows: %w", err)
		}
		rows, err := s.workflowRepo.Activate(txCtx, id)
		if err != nil {
			return fmt.Errorf("activate workflow: %w", err)
		}
		if rows == 0 {
			return ErrNotFound
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	def, err := s.workflowRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("load workflow: %w", err)
	}

	s.logger.Info("Workflow definition set current", "id", id)
	return def, nil
}

func (s *workflowServiceImpl) List(ctx context.Context) ([]*entity.WorkflowDefinition, error) {
	return s.workflowRepo.List(ctx)
}

// findBySequence returns the definition carrying this exact sequence, if any
func (s *workflowServiceImpl) findBySequence(ctx context.Context, seq workflow.Sequence) (*entity.WorkflowDefinition, error) {
	defs, err := s.workflowRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list workflows: %w", err)
	}
	for _, def := range defs {
		other, err := workflow.NewSequence(def.Steps)
		if err != nil {
			continue
		}
		if seq.Equal(other) {
			return def, nil
		}
	}
	return nil, nil
}
