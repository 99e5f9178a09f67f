package service

import "errors"

var (
	// ErrNotFound is returned when a requested record does not exist
	ErrNotFound = errors.New("not found")

	// ErrProcessNotFound is returned when no process state exists for an application
	ErrProcessNotFound = errors.New("process not found")

	// ErrNoActiveWorkflow is returned when no workflow definition is current
	ErrNoActiveWorkflow = errors.New("no active workflow definition")

	// ErrDuplicateWorkflow is returned when a definition with the same step
	// sequence already exists
	ErrDuplicateWorkflow = errors.New("duplicate workflow sequence")

	// ErrWorkflowInUse is returned when deleting the current workflow definition
	ErrWorkflowInUse = errors.New("workflow definition is in use")

	// ErrStaleProcess is returned when a concurrent transition already moved
	// the process off the step this transition was computed from
	ErrStaleProcess = errors.New("process state changed concurrently")

	// ErrForbidden is returned when a caller acts on a record they do not own
	ErrForbidden = errors.New("forbidden")

	// ErrNotEditable is returned when an application can no longer be edited
	// by its researcher
	ErrNotEditable = errors.New("application is no longer editable")

	// ErrEmailTaken is returned when registering an email that already exists
	ErrEmailTaken = errors.New("email already registered")

	// ErrInvalidCredentials is returned on a failed login
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// Logger interface for minimal logging dependency
type Logger interface {
	Info(msg string, keysAndValues ...interface{})
	Error(msg string, keysAndValues ...interface{})
}
