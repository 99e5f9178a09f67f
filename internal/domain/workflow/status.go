package workflow

// Status represents an application's review status
type Status string

const (
	StatusPending           Status = "PENDING"
	StatusRevisionRequested Status = "REVISION_REQUESTED"
	StatusApproved          Status = "APPROVED"
	StatusRejected          Status = "REJECTED"
)

// statusLabels maps statuses to the display labels persisted by the legacy system.
// They are the storage and wire representation; the engine only works with Status values.
var statusLabels = map[Status]string{
	StatusPending:           "Pending",
	StatusRevisionRequested: "Revision Requested",
	StatusApproved:          "Approved",
	StatusRejected:          "Rejected",
}

var labelStatuses = func() map[string]Status {
	m := make(map[string]Status, len(statusLabels))
	for status, label := range statusLabels {
		m[label] = status
	}
	return m
}()

var terminalStatuses = map[Status]bool{
	StatusApproved: true,
	StatusRejected: true,
}

// ParseStatusLabel converts a persisted display label back into a Status
func ParseStatusLabel(label string) (Status, bool) {
	status, ok := labelStatuses[label]
	return status, ok
}

// Label returns the display label persisted for this status
func (s Status) Label() string {
	if label, ok := statusLabels[s]; ok {
		return label
	}
	return string(s)
}

// IsTerminal returns true if the status ends the review (application gets archived)
func (s Status) IsTerminal() bool {
	return terminalStatuses[s]
}

// String returns the string representation of the status
func (s Status) String() string {
	return string(s)
}
