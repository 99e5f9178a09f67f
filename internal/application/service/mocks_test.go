package service

import (
	"context"
	"time"

	"github.com/acadflow/ethics-review/internal/domain/entity"
)

// Mock repositories

type mockProcessRepo struct {
	createFunc             func(ctx context.Context, process *entity.ProcessState) error
	getByApplicationIDFunc func(ctx context.Context, applicationID int64) (*entity.ProcessState, error)
	advanceStepFunc        func(ctx context.Context, applicationID int64, from, to string) (int64, error)
}

func (m *mockProcessRepo) Create(ctx context.Context, process *entity.ProcessState) error {
	if m.createFunc != nil {
		return m.createFunc(ctx, process)
	}
	process.ID = 1
	return nil
}

func (m *mockProcessRepo) GetByApplicationID(ctx context.Context, applicationID int64) (*entity.ProcessState, error) {
	if m.getByApplicationIDFunc != nil {
		return m.getByApplicationIDFunc(ctx, applicationID)
	}
	return &entity.ProcessState{ID: 1, ApplicationID: applicationID, CurrentStep: "faculty"}, nil
}

func (m *mockProcessRepo) AdvanceStep(ctx context.Context, applicationID int64, from, to string) (int64, error) {
	if m.advanceStepFunc != nil {
		return m.advanceStepFunc(ctx, applicationID, from, to)
	}
	return 1, nil
}

type mockApplicationRepo struct {
	createFunc            func(ctx context.Context, app *entity.Application) error
	getByIDFunc           func(ctx context.Context, id int64) (*entity.Application, error)
	updateFunc            func(ctx context.Context, app *entity.Application) error
	updateStatusFunc      func(ctx context.Context, id int64, status string, archived bool) error
	listFunc              func(ctx context.Context) ([]*entity.ApplicationSummary, error)
	listArchivedFunc      func(ctx context.Context) ([]*entity.ApplicationSummary, error)
	listPendingBeforeFunc func(ctx context.Context, cutoff time.Time) ([]*entity.ApplicationSummary, error)
}

func (m *mockApplicationRepo) Create(ctx context.Context, app *entity.Application) error {
	if m.createFunc != nil {
		return m.createFunc(ctx, app)
	}
	app.ID = 1
	return nil
}

func (m *mockApplicationRepo) GetByID(ctx context.Context, id int64) (*entity.Application, error) {
	if m.getByIDFunc != nil {
		return m.getByIDFunc(ctx, id)
	}
	return &entity.Application{ID: id, Title: "Study", ResearcherID: 7, Status: "Pending"}, nil
}

func (m *mockApplicationRepo) Update(ctx context.Context, app *entity.Application) error {
	if m.updateFunc != nil {
		return m.updateFunc(ctx, app)
	}
	return nil
}

func (m *mockApplicationRepo) UpdateStatus(ctx context.Context, id int64, status string, archived bool) error {
	if m.updateStatusFunc != nil {
		return m.updateStatusFunc(ctx, id, status, archived)
	}
	return nil
}

func (m *mockApplicationRepo) List(ctx context.Context) ([]*entity.ApplicationSummary, error) {
	if m.listFunc != nil {
		return m.listFunc(ctx)
	}
	return []*entity.ApplicationSummary{}, nil
}

func (m *mockApplicationRepo) ListArchived(ctx context.Context) ([]*entity.ApplicationSummary, error) {
	if m.listArchivedFunc != nil {
		return m.listArchivedFunc(ctx)
	}
	return []*entity.ApplicationSummary{}, nil
}

func (m *mockApplicationRepo) ListPendingBefore(ctx context.Context, cutoff time.Time) ([]*entity.ApplicationSummary, error) {
	if m.listPendingBeforeFunc != nil {
		return m.listPendingBeforeFunc(ctx, cutoff)
	}
	return []*entity.ApplicationSummary{}, nil
}

type mockWorkflowRepo struct {
	createFunc        func(ctx context.Context, def *entity.WorkflowDefinition) error
	getByIDFunc       func(ctx context.Context, id int64) (*entity.WorkflowDefinition, error)
	getCurrentFunc    func(ctx context.Context) (*entity.WorkflowDefinition, error)
	updateFunc        func(ctx context.Context, def *entity.WorkflowDefinition) error
	deleteFunc        func(ctx context.Context, id int64) (int64, error)
	listFunc          func(ctx context.Context) ([]*entity.WorkflowDefinition, error)
	deactivateAllFunc func(ctx context.Context) error
	activateFunc      func(ctx context.Context, id int64) (int64, error)
}

func (m *mockWorkflowRepo) Create(ctx context.Context, def *entity.WorkflowDefinition) error {
	if m.createFunc != nil {
		return m.createFunc(ctx, def)
	}
	def.ID = 1
	return nil
}

func (m *mockWorkflowRepo) GetByID(ctx context.Context, id int64) (*entity.WorkflowDefinition, error) {
	if m.getByIDFunc != nil {
		return m.getByIDFunc(ctx, id)
	}
	return &entity.WorkflowDefinition{
		ID:     id,
		Steps:  []string{"faculty", "committee", "rector"},
		Status: entity.WorkflowStatusNotInUse,
	}, nil
}

func (m *mockWorkflowRepo) GetCurrent(ctx context.Context) (*entity.WorkflowDefinition, error) {
	if m.getCurrentFunc != nil {
		return m.getCurrentFunc(ctx)
	}
	return &entity.WorkflowDefinition{
		ID:     1,
		Steps:  []string{"faculty", "committee", "rector"},
		Status: entity.WorkflowStatusCurrent,
	}, nil
}

func (m *mockWorkflowRepo) Update(ctx context.Context, def *entity.WorkflowDefinition) error {
	if m.updateFunc != nil {
		return m.updateFunc(ctx, def)
	}
	return nil
}

func (m *mockWorkflowRepo) Delete(ctx context.Context, id int64) (int64, error) {
	if m.deleteFunc != nil {
		return m.deleteFunc(ctx, id)
	}
	return 1, nil
}

func (m *mockWorkflowRepo) List(ctx context.Context) ([]*entity.WorkflowDefinition, error) {
	if m.listFunc != nil {
		return m.listFunc(ctx)
	}
	return []*entity.WorkflowDefinition{}, nil
}

func (m *mockWorkflowRepo) DeactivateAll(ctx context.Context) error {
	if m.deactivateAllFunc != nil {
		return m.deactivateAllFunc(ctx)
	}
	return nil
}

func (m *mockWorkflowRepo) Activate(ctx context.Context, id int64) (int64, error) {
	if m.activateFunc != nil {
		return m.activateFunc(ctx, id)
	}
	return 1, nil
}

type mockReviewRepo struct {
	createFunc             func(ctx context.Context, record *entity.ReviewRecord) error
	getByApplicationIDFunc func(ctx context.Context, applicationID int64) ([]*entity.ReviewRecord, error)
}

func (m *mockReviewRepo) Create(ctx context.Context, record *entity.ReviewRecord) error {
	if m.createFunc != nil {
		return m.createFunc(ctx, record)
	}
	record.ID = 1
	return nil
}

func (m *mockReviewRepo) GetByApplicationID(ctx context.Context, applicationID int64) ([]*entity.ReviewRecord, error) {
	if m.getByApplicationIDFunc != nil {
		return m.getByApplicationIDFunc(ctx, applicationID)
	}
	return []*entity.ReviewRecord{}, nil
}

type mockNotificationRepo struct {
	createFunc     func(ctx context.Context, notification *entity.Notification) error
	getByIDFunc    func(ctx context.Context, id int64) (*entity.Notification, error)
	listByUserFunc func(ctx context.Context, userID int64) ([]*entity.Notification, error)
	markReadFunc   func(ctx context.Context, id int64) error
}

func (m *mockNotificationRepo) Create(ctx context.Context, notification *entity.Notification) error {
	if m.createFunc != nil {
		return m.createFunc(ctx, notification)
	}
	notification.ID = 1
	return nil
}

func (m *mockNotificationRepo) GetByID(ctx context.Context, id int64) (*entity.Notification, error) {
	if m.getByIDFunc != nil {
		return m.getByIDFunc(ctx, id)
	}
	return &entity.Notification{ID: id, UserID: 7}, nil
}

func (m *mockNotificationRepo) ListByUser(ctx context.Context, userID int64) ([]*entity.Notification, error) {
	if m.listByUserFunc != nil {
		return m.listByUserFunc(ctx, userID)
	}
	return []*entity.Notification{}, nil
}

func (m *mockNotificationRepo) MarkRead(ctx context.Context, id int64) error {
	if m.markReadFunc != nil {
		return m.markReadFunc(ctx, id)
	}
	return nil
}

type mockUserRepo struct {
	createFunc     func(ctx context.Context, user *entity.User) error
	getByIDFunc    func(ctx context.Context, id int64) (*entity.User, error)
	getByEmailFunc func(ctx context.Context, email string) (*entity.User, error)
	listByRoleFunc func(ctx context.Context, role string) ([]*entity.User, error)
	countFunc      func(ctx context.Context) (int64, error)
}

func (m *mockUserRepo) Create(ctx context.Context, user *entity.User) error {
	if m.createFunc != nil {
		return m.createFunc(ctx, user)
	}
	user.ID = 1
	return nil
}

func (m *mockUserRepo) GetByID(ctx context.Context, id int64) (*entity.User, error) {
	if m.getByIDFunc != nil {
		return m.getByIDFunc(ctx, id)
	}
	return &entity.User{ID: id, Name: "Reviewer", Email: "reviewer@example.edu", Role: "faculty"}, nil
}

func (m *mockUserRepo) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	if m.getByEmailFunc != nil {
		return m.getByEmailFunc(ctx, email)
	}
	return nil, nil
}

func (m *mockUserRepo) ListByRole(ctx context.Context, role string) ([]*entity.User, error) {
	if m.listByRoleFunc != nil {
		return m.listByRoleFunc(ctx, role)
	}
	return []*entity.User{}, nil
}

func (m *mockUserRepo) Count(ctx context.Context) (int64, error) {
	if m.countFunc != nil {
		return m.countFunc(ctx)
	}
	return 0, nil
}

type mockDocumentRepo struct {
	createFunc              func(ctx context.Context, doc *entity.Document) error
	listByApplicationIDFunc func(ctx context.Context, applicationID int64) ([]*entity.Document, error)
}

func (m *mockDocumentRepo) Create(ctx context.Context, doc *entity.Document) error {
	if m.createFunc != nil {
		return m.createFunc(ctx, doc)
	}
	doc.ID = 1
	return nil
}

func (m *mockDocumentRepo) ListByApplicationID(ctx context.Context, applicationID int64) ([]*entity.Document, error) {
	if m.listByApplicationIDFunc != nil {
		return m.listByApplicationIDFunc(ctx, applicationID)
	}
	return []*entity.Document{}, nil
}

type mockTxManager struct {
	withTransactionFunc func(ctx context.Context, fn func(ctx context.Context) error) error
}

func (m *mockTxManager) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	if m.withTransactionFunc != nil {
		return m.withTransactionFunc(ctx, fn)
	}
	return fn(ctx)
}

type mockLogger struct{}

func (m *mockLogger) Info(msg string, keysAndValues ...interface{})  {}
func (m *mockLogger) Error(msg string, keysAndValues ...interface{}) {}
