package router

import "github.com/paylinkhq/router-core/internal/domain/valueobjects"

// CallConnectorActionKind is the tag of a CallConnectorAction (spec §4.3).
type CallConnectorActionKind string

const (
	// ActionTrigger builds and sends the acquirer request normally.
	ActionTrigger CallConnectorActionKind = "trigger"
	// ActionStatusUpdate skips the outbound call and applies Status
	// directly, used after a redirect return (spec §6, scenario 6).
	ActionStatusUpdate CallConnectorActionKind = "status_update"
	// ActionAvoid is a no-op: neither call the acquirer nor change status.
	ActionAvoid CallConnectorActionKind = "avoid"
)

// CallConnectorAction governs pre-execution behaviour for one operation
// call (spec §4.3).
type CallConnectorAction struct {
	Kind   CallConnectorActionKind
	Status valueobjects.AttemptStatus // only meaningful when Kind == ActionStatusUpdate
}

// Trigger builds and sends the acquirer request.
func Trigger() CallConnectorAction {
	return CallConnectorAction{Kind: ActionTrigger}
}

// StatusUpdate skips the outbound call and applies status directly.
func StatusUpdate(status valueobjects.AttemptStatus) CallConnectorAction {
	return CallConnectorAction{Kind: ActionStatusUpdate, Status: status}
}

// Avoid performs neither a call nor a status change.
func Avoid() CallConnectorAction {
	return CallConnectorAction{Kind: ActionAvoid}
}
