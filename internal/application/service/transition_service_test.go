package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/acadflow/ethics-review/internal/domain/entity"
	"github.com/acadflow/ethics-review/internal/domain/workflow"
)

func newTransitionService(
	processRepo *mockProcessRepo,
	applicationRepo *mockApplicationRepo,
	workflowRepo *mockWorkflowRepo,
	reviewRepo *mockReviewRepo,
	notificationRepo *mockNotificationRepo,
	userRepo *mockUserRepo,
) TransitionService {
	return NewTransitionService(
		processRepo, applicationRepo, workflowRepo, reviewRepo,
		notificationRepo, userRepo, &mockTxManager{}, &mockLogger{},
	)
}

func TestTransitionService_Act_Approve(t *testing.T) {
	tests := []struct {
		name        string
		currentStep string
		actorRole   string
		wantStep    string
		wantStatus  string
		wantArchive bool
	}{
		{
			name:        "faculty approval advances to committee",
			currentStep: "faculty",
			actorRole:   "faculty",
			wantStep:    "committee",
			wantStatus:  "Pending",
		},
		{
			name:        "committee approval advances to rector",
			currentStep: "committee",
			actorRole:   "committee",
			wantStep:    "rector",
			wantStatus:  "Pending",
		},
		{
			name:        "final approval completes and archives",
			currentStep: "rector",
			actorRole:   "rector",
			wantStep:    "done",
			wantStatus:  "Approved",
			wantArchive: true,
		},
		{
			name:        "admin can approve any step",
			currentStep: "committee",
			actorRole:   "admin",
			wantStep:    "rector",
			wantStatus:  "Pending",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var gotArchive bool
			var gotStatus string

			processRepo := &mockProcessRepo{
				getByApplicationIDFunc: func(ctx context.Context, id int64) (*entity.ProcessState, error) {
					return &entity.ProcessState{ID: 1, ApplicationID: id, CurrentStep: tt.currentStep}, nil
				},
			}
			applicationRepo := &mockApplicationRepo{
				updateStatusFunc: func(ctx context.Context, id int64, status string, archived bool) error {
					gotStatus = status
					gotArchive = archived
					return nil
				},
			}

			service := newTransitionService(processRepo, applicationRepo,
				&mockWorkflowRepo{}, &mockReviewRepo{}, &mockNotificationRepo{}, &mockUserRepo{})

			result, err := service.Act(context.Background(), TransitionRequest{
				ApplicationID: 10,
				ActorID:       3,
				ActorRole:     tt.actorRole,
				Action:        "approve",
			})
			if err != nil {
				t.Fatalf("Act() error = %v", err)
			}

			if result.Process.CurrentStep != tt.wantStep {
				t.Errorf("Act() step = %v, want %v", result.Process.CurrentStep, tt.wantStep)
			}
			if result.NewStatus != tt.wantStatus {
				t.Errorf("Act() newStatus = %v, want %v", result.NewStatus, tt.wantStatus)
			}
			if gotStatus != tt.wantStatus {
				t.Errorf("Act() stored status = %v, want %v", gotStatus, tt.wantStatus)
			}
			if gotArchive != tt.wantArchive {
				t.Errorf("Act() archived = %v, want %v", gotArchive, tt.wantArchive)
			}
		})
	}
}

func TestTransitionService_Act_RejectReturnsToFirstStep(t *testing.T) {
	processRepo := &mockProcessRepo{
		getByApplicationIDFunc: func(ctx context.Context, id int64) (*entity.ProcessState, error) {
			return &entity.ProcessState{ID: 1, ApplicationID: id, CurrentStep: "committee"}, nil
		},
	}

	var gotArchive bool
	applicationRepo := &mockApplicationRepo{
		updateStatusFunc: func(ctx context.Context, id int64, status string, archived bool) error {
			gotArchive = archived
			return nil
		},
	}

	service := newTransitionService(processRepo, applicationRepo,
		&mockWorkflowRepo{}, &mockReviewRepo{}, &mockNotificationRepo{}, &mockUserRepo{})

	result, err := service.Act(context.Background(), TransitionRequest{
		ApplicationID: 10,
		ActorID:       3,
		ActorRole:     "committee",
		Action:        "reject",
	})
	if err != nil {
		t.Fatalf("Act() error = %v", err)
	}

	if result.Process.CurrentStep != "faculty" {
		t.Errorf("Act() step = %v, want faculty", result.Process.CurrentStep)
	}
	if result.NewStatus != "Rejected" {
		t.Errorf("Act() newStatus = %v, want Rejected", result.NewStatus)
	}
	if !gotArchive {
		t.Errorf("Act() should archive on rejection")
	}
}

func TestTransitionService_Act_RevisionNotifiesResearcher(t *testing.T) {
	processRepo := &mockProcessRepo{
		getByApplicationIDFunc: func(ctx context.Context, id int64) (*entity.ProcessState, error) {
			return &entity.ProcessState{ID: 1, ApplicationID: id, CurrentStep: "committee"}, nil
		},
	}
	applicationRepo := &mockApplicationRepo{
		getByIDFunc: func(ctx context.Context, id int64) (*entity.Application, error) {
			return &entity.Application{ID: id, Title: "Gene Study", ResearcherID: 42}, nil
		},
	}

	var notification *entity.Notification
	notificationRepo := &mockNotificationRepo{
		createFunc: func(ctx context.Context, n *entity.Notification) error {
			notification = n
			return nil
		},
	}

	service := newTransitionService(processRepo, applicationRepo,
		&mockWorkflowRepo{}, &mockReviewRepo{}, notificationRepo, &mockUserRepo{})

	result, err := service.Act(context.Background(), TransitionRequest{
		ApplicationID: 10,
		ActorID:       3,
		ActorRole:     "committee",
		Action:        "revision",
		Comment:       "Section 3 lacks consent forms",
	})
	if err != nil {
		t.Fatalf("Act() error = %v", err)
	}

	if result.Process.CurrentStep != "faculty" {
		t.Errorf("Act() step = %v, want faculty", result.Process.CurrentStep)
	}
	if result.NewStatus != "Revision Requested" {
		t.Errorf("Act() newStatus = %v, want Revision Requested", result.NewStatus)
	}
	if notification == nil {
		t.Fatal("Act() should create a notification for the researcher")
	}
	if notification.UserID != 42 {
		t.Errorf("notification.UserID = %v, want 42", notification.UserID)
	}
	if !strings.Contains(notification.Message, "Gene Study") ||
		!strings.Contains(notification.Message, "Section 3 lacks consent forms") {
		t.Errorf("notification message missing context: %q", notification.Message)
	}
}

func TestTransitionService_Act_RecordsReview(t *testing.T) {
	committeeID := int64(5)
	userRepo := &mockUserRepo{
		getByIDFunc: func(ctx context.Context, id int64) (*entity.User, error) {
			return &entity.User{ID: id, Role: "committee", CommitteeID: &committeeID}, nil
		},
	}
	processRepo := &mockProcessRepo{
		getByApplicationIDFunc: func(ctx context.Context, id int64) (*entity.ProcessState, error) {
			return &entity.ProcessState{ID: 1, ApplicationID: id, CurrentStep: "committee"}, nil
		},
	}

	var record *entity.ReviewRecord
	reviewRepo := &mockReviewRepo{
		createFunc: func(ctx context.Context, r *entity.ReviewRecord) error {
			record = r
			return nil
		},
	}

	service := newTransitionService(processRepo, &mockApplicationRepo{},
		&mockWorkflowRepo{}, reviewRepo, &mockNotificationRepo{}, userRepo)

	_, err := service.Act(context.Background(), TransitionRequest{
		ApplicationID: 10,
		ActorID:       3,
		ActorRole:     "committee",
		Action:        "approve",
		Comment:       "Looks fine",
	})
	if err != nil {
		t.Fatalf("Act() error = %v", err)
	}

	if record == nil {
		t.Fatal("Act() should create a review record")
	}
	if record.Step != "committee" || record.Action != "approve" {
		t.Errorf("record step/action = %v/%v, want committee/approve", record.Step, record.Action)
	}
	if record.CommitteeID == nil || *record.CommitteeID != committeeID {
		t.Errorf("record.CommitteeID = %v, want %v", record.CommitteeID, committeeID)
	}
	if record.Comment != "Looks fine" {
		t.Errorf("record.Comment = %q, want %q", record.Comment, "Looks fine")
	}
}

func TestTransitionService_Act_Errors(t *testing.T) {
	tests := []struct {
		name      string
		req       TransitionRequest
		processFn func(ctx context.Context, id int64) (*entity.ProcessState, error)
		currentFn func(ctx context.Context) (*entity.WorkflowDefinition, error)
		wantErr   error
	}{
		{
			name:    "invalid action",
			req:     TransitionRequest{ApplicationID: 1, ActorRole: "faculty", Action: "escalate"},
			wantErr: workflow.ErrInvalidAction,
		},
		{
			name:    "invalid role",
			req:     TransitionRequest{ApplicationID: 1, ActorRole: "janitor", Action: "approve"},
			wantErr: workflow.ErrInvalidRole,
		},
		{
			name: "process not found",
			req:  TransitionRequest{ApplicationID: 1, ActorRole: "faculty", Action: "approve"},
			processFn: func(ctx context.Context, id int64) (*entity.ProcessState, error) {
				return nil, nil
			},
			wantErr: ErrProcessNotFound,
		},
		{
			name: "no active workflow",
			req:  TransitionRequest{ApplicationID: 1, ActorRole: "faculty", Action: "approve"},
			currentFn: func(ctx context.Context) (*entity.WorkflowDefinition, error) {
				return nil, nil
			},
			wantErr: ErrNoActiveWorkflow,
		},
		{
			name: "approve on completed process",
			req:  TransitionRequest{ApplicationID: 1, ActorRole: "admin", Action: "approve"},
			processFn: func(ctx context.Context, id int64) (*entity.ProcessState, error) {
				return &entity.ProcessState{ID: 1, ApplicationID: id, CurrentStep: "done"}, nil
			},
			wantErr: workflow.ErrInvalidTransition,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			processRepo := &mockProcessRepo{getByApplicationIDFunc: tt.processFn}
			workflowRepo := &mockWorkflowRepo{getCurrentFunc: tt.currentFn}

			service := newTransitionService(processRepo, &mockApplicationRepo{},
				workflowRepo, &mockReviewRepo{}, &mockNotificationRepo{}, &mockUserRepo{})

			_, err := service.Act(context.Background(), tt.req)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Act() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestTransitionService_Act_WrongRoleForStep(t *testing.T) {
	processRepo := &mockProcessRepo{
		getByApplicationIDFunc: func(ctx context.Context, id int64) (*entity.ProcessState, error) {
			return &entity.ProcessState{ID: 1, ApplicationID: id, CurrentStep: "rector"}, nil
		},
	}

	service := newTransitionService(processRepo, &mockApplicationRepo{},
		&mockWorkflowRepo{}, &mockReviewRepo{}, &mockNotificationRepo{}, &mockUserRepo{})

	_, err := service.Act(context.Background(), TransitionRequest{
		ApplicationID: 1,
		ActorRole:     "faculty",
		Action:        "approve",
	})

	var forbidden *workflow.ForbiddenError
	if !errors.As(err, &forbidden) {
		t.Fatalf("Act() error = %v, want ForbiddenError", err)
	}
	if forbidden.Role != workflow.RoleFaculty || forbidden.Step != workflow.StepRector {
		t.Errorf("ForbiddenError = %v/%v, want faculty/rector", forbidden.Role, forbidden.Step)
	}
}

func TestTransitionService_Act_StaleProcess(t *testing.T) {
	processRepo := &mockProcessRepo{
		advanceStepFunc: func(ctx context.Context, applicationID int64, from, to string) (int64, error) {
			return 0, nil // another transition won the race
		},
	}

	service := newTransitionService(processRepo, &mockApplicationRepo{},
		&mockWorkflowRepo{}, &mockReviewRepo{}, &mockNotificationRepo{}, &mockUserRepo{})

	_, err := service.Act(context.Background(), TransitionRequest{
		ApplicationID: 1,
		ActorRole:     "faculty",
		Action:        "approve",
	})
	if !errors.Is(err, ErrStaleProcess) {
		t.Errorf("Act() error = %v, want ErrStaleProcess", err)
	}
}

func TestTransitionService_Act_ReviewFailureAbortsTransaction(t *testing.T) {
	reviewErr := errors.New("disk full")
	reviewRepo := &mockReviewRepo{
		createFunc: func(ctx context.Context, r *entity.ReviewRecord) error {
			return reviewErr
		},
	}

	notified := false
	notificationRepo := &mockNotificationRepo{
		createFunc: func(ctx context.Context, n *entity.Notification) error {
			notified = true
			return nil
		},
	}

	service := newTransitionService(&mockProcessRepo{}, &mockApplicationRepo{},
		&mockWorkflowRepo{}, reviewRepo, notificationRepo, &mockUserRepo{})

	_, err := service.Act(context.Background(), TransitionRequest{
		ApplicationID: 1,
		ActorRole:     "faculty",
		Action:        "revision",
	})
	if !errors.Is(err, reviewErr) {
		t.Errorf("Act() error = %v, want %v", err, reviewErr)
	}
	if notified {
		t.Error("notification must not be created after an earlier write fails")
	}
}
