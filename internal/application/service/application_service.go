package service

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/acadflow/ethics-review/internal/application/port"
	"github.com/acadflow/ethics-review/internal/domain/entity"
	"github.com/acadflow/ethics-review/internal/domain/workflow"
)

// DocumentInput is a supporting document reference supplied on submission
type DocumentInput struct {
	FileName string
	URL      string
}

// SubmitRequest carries a new ethics application
type SubmitRequest struct {
	ResearcherID int64
	Title        string
	Description  string
	FacultyID    int64
	CommitteeID  *int64
	Documents    []DocumentInput
}

// ApplicationService covers submission, researcher edits and the read-only
// query surface consumed by dashboards
type ApplicationService interface {
	Submit(ctx context.Context, req SubmitRequest) (*entity.Application, error)

	// UpdateDraft lets the owning researcher edit title and description while
	// the application is still pending with no review recorded.
	UpdateDraft(ctx context.Context, id, researcherID int64, title, description string) (*entity.Application, error)

	Get(ctx context.Context, id int64) (*entity.Application, error)
	List(ctx context.Context) ([]*entity.ApplicationSummary, error)
	ListArchived(ctx context.Context) ([]*entity.ApplicationSummary, error)
	GetReviews(ctx context.Context, applicationID int64) ([]*entity.ReviewRecord, error)
	GetDocuments(ctx context.Context, applicationID int64) ([]*entity.Document, error)
}

type applicationServiceImpl struct {
	applicationRepo port.ApplicationRepository
	processRepo     port.ProcessRepository
	workflowRepo    port.WorkflowRepository
	reviewRepo      port.ReviewRepository
	documentRepo    port.DocumentRepository
	txManager       port.TransactionManager
	logger          Logger
}

// NewApplicationService creates a new ApplicationService
func NewApplicationService(
	applicationRepo port.ApplicationRepository,
	processRepo port.ProcessRepository,
	workflowRepo port.WorkflowRepository,
	reviewRepo port.ReviewRepository,
	documentRepo port.DocumentRepository,
	txManager port.TransactionManager,
	logger Logger,
) ApplicationService {
	return &applicationServiceImpl{
		applicationRepo: applicationRepo,
		processRepo:     processRepo,
		workflowRepo:    workflowRepo,
		reviewRepo:      reviewRepo,
		documentRepo:    documentRepo,
		txManager:       txManager,
		logger:          logger,
	}
}

// Submit creates the application, seeds its process state to the first step
// of the current workflow and stores document references, in one transaction.
func (s *applicationServiceImpl) Submit(ctx context.Context, req SubmitRequest) (*entity.Application, error) {
	if strings.TrimSpace(req.Title) == "" {
		return nil, fmt.Errorf("title is required")
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

	app := &entity.Application{
		Title:        strings.TrimSpace(req.Title),
		Description:  req.Description,
		ResearcherID: req.ResearcherID,
		FacultyID:    req.FacultyID,
		CommitteeID:  req.CommitteeID,
		Status:       workflow.StatusPending.Label(),
		SubmittedAt:  time.Now(),
	}

	err = s.txManager.WithTransaction(ctx, func(txCtx context.Context) error {
		if err := s.applicationRepo.Create(txCtx, app); err != nil {
			return fmt.Errorf("create application: %w", err)
		}

		process := &entity.ProcessState{
			ApplicationID: app.ID,
			CurrentStep:   seq.First().String(),
		}
		if err := s.processRepo.Create(txCtx, process); err != nil {
			return fmt.Errorf("create process state: %w", err)
		}

		for _, doc := range req.Documents {
			record := &entity.Document{
				ApplicationID: app.ID,
				FileName:      doc.FileName,
				StoredName:    storedName(doc.FileName),
				URL:           doc.URL,
			}
			if err := s.documentRepo.Create(txCtx, record); err != nil {
				return fmt.Errorf("create document reference: %w", err)
			}
		}

		return nil
	})

	if err != nil {
		s.logger.Error("Failed to submit application", "error", err, "researcher_id", req.ResearcherID)
		return nil, err
	}

	s.logger.Info("Application submitted",
		"id", app.ID,
		"researcher_id", req.ResearcherID,
		"first_step", seq.First().String())
	return app, nil
}

func (s *applicationServiceImpl) UpdateDraft(ctx context.Context, id, researcherID int64, title, description string) (*entity.Application, error) {
	app, err := s.applicationRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("load application: %w", err)
	}
	if app == nil {
		return nil, ErrNotFound
	}
	if app.ResearcherID != researcherID {
		return nil, ErrForbidden
	}

	status, ok := workflow.ParseStatusLabel(app.Status)
	if !ok || status != workflow.StatusPending {
		return nil, ErrNotEditable
	}

	reviews, err := s.reviewRepo.GetByApplicationID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("load reviews: %w", err)
	}
	if len(reviews) > 0 {
		return nil, ErrNotEditable
	}

	if strings.TrimSpace(title) != "" {
		app.Title = strings.TrimSpace(title)
	}
	app.Description = description
	if err := s.applicationRepo.Update(ctx, app); err != nil {
		return nil, fmt.Errorf("update application: %w", err)
	}

	s.logger.Info("Application draft updated", "id", id)
	return app, nil
}

func (s *applicationServiceImpl) Get(ctx context.Context, id int64) (*entity.Application, error) {
	app, err := s.applicationRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if app == nil {
		return nil, ErrNotFound
	}
	return app, nil
}

func (s *applicationServiceImpl) List(ctx context.Context) ([]*entity.ApplicationSummary, error) {
	return s.applicationRepo.List(ctx)
}

func (s *applicationServiceImpl) ListArchived(ctx context.Context) ([]*entity.ApplicationSummary, error) {
	return s.applicationRepo.ListArchived(ctx)
}

func (s *applicationServiceImpl) GetReviews(ctx context.Context, applicationID int64) ([]*entity.ReviewRecord, error) {
	return s.reviewRepo.GetByApplicationID(ctx, applicationID)
}

func (s *applicationServiceImpl) GetDocuments(ctx context.Context, applicationID int64) ([]*entity.Document, error) {
	return s.documentRepo.ListByApplicationID(ctx, applicationID)
}

// storedName builds a collision-free storage name keeping the original extension
func storedName(fileName string) string {
	return uuid.NewString() + strings.ToLower(filepath.Ext(fileName))
}
