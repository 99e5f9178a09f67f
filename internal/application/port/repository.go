package port

import (
	"context"
	"time"

	"github.com/acadflow/ethics-review/internal/domain/entity"
)

// ApplicationRepository defines persistence operations for Application
type ApplicationRepository interface {
	Create(ctx context.Context, app *entity.Application) error
	GetByID(ctx context.Context, id int64) (*entity.Application, error)
	Update(ctx context.Context, app *entity.Application) error
	UpdateStatus(ctx context.Context, id int64, status string, archived bool) error
	List(ctx context.Context) ([]*entity.ApplicationSummary, error)
	ListArchived(ctx context.Context) ([]*entity.ApplicationSummary, error)

	// ListPendingBefore returns unarchived pending applications submitted
	// before the cutoff. Used by the reminder scan; read-only.
	ListPendingBefore(ctx context.Context, cutoff time.Time) ([]*entity.ApplicationSummary, error)
}

// ProcessRepository defines persistence operations for ProcessState
type ProcessRepository interface {
	Create(ctx context.Context, process *entity.ProcessState) error
	GetByApplicationID(ctx context.Context, applicationID int64) (*entity.ProcessState, error)

	// AdvanceStep moves the process from one step to another. The update is
	// guarded on the expected current step and returns the number of rows
	// changed, so a concurrent transition loses instead of silently
	// overwriting.
	AdvanceStep(ctx context.Context, applicationID int64, from, to string) (int64, error)
}

// WorkflowRepository defines persistence operations for WorkflowDefinition
type WorkflowRepository interface {
	Create(ctx context.Context, def *entity.WorkflowDefinition) error
	GetByID(ctx context.Context, id int64) (*entity.WorkflowDefinition, error)
	GetCurrent(ctx context.Context) (*entity.WorkflowDefinition, error)
	Update(ctx context.Context, def *entity.WorkflowDefinition) error
	Delete(ctx context.Context, id int64) (int64, error)
	List(ctx context.Context) ([]*entity.WorkflowDefinition, error)
	DeactivateAll(ctx context.Context) error
	Activate(ctx context.Context, id int64) (int64, error)
}

// ReviewRepository defines persistence operations for ReviewRecord.
// Records are append-only; there is no update or delete.
type ReviewRepository interface {
	Create(ctx context.Context, record *entity.ReviewRecord) error
	GetByApplicationID(ctx context.Context, applicationID int64) ([]*entity.ReviewRecord, error)
}

// NotificationRepository defines persistence operations for Notification
type NotificationRepository interface {
	Create(ctx context.Context, notification *entity.Notification) error
	GetByID(ctx context.Context, id int64) (*entity.Notification, error)
	ListByUser(ctx context.Context, userID int64) ([]*entity.Notification, error)
	MarkRead(ctx context.Context, id int64) error
}

// UserRepository defines persistence operations for User
type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	GetByID(ctx context.Context, id int64) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	ListByRole(ctx context.Context, role string) ([]*entity.User, error)
	Count(ctx context.Context) (int64, error)
}

// DocumentRepository defines persistence operations for Document references
type DocumentRepository interface {
	Create(ctx context.Context, doc *entity.Document) error
	ListByApplicationID(ctx context.Context, applicationID int64) ([]*entity.Document, error)
}

// TransactionManager handles database transactions
type TransactionManager interface {
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}
