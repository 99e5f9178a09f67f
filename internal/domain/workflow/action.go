package workflow

import "strings"

// Action represents a reviewer decision on the current step
type Action string

const (
	ActionApprove  Action = "approve"
	ActionReject   Action = "reject"
	ActionRevision Action = "revision"
)

// actionAliases maps legacy action spellings onto canonical actions
var actionAliases = map[string]Action{
	"approve":      ActionApprove,
	"reject":       ActionReject,
	"rejected":     ActionReject,
	"revision":     ActionRevision,
	"modification": ActionRevision,
}

// ParseAction normalizes a raw action string, accepting legacy aliases.
// Returns ErrInvalidAction for anything unrecognized.
func ParseAction(raw string) (Action, error) {
	if action, ok := actionAliases[strings.ToLower(strings.TrimSpace(raw))]; ok {
		return action, nil
	}
	return "", ErrInvalidAction
}

// String returns the string representation of the action
func (a Action) String() string {
	return string(a)
}
