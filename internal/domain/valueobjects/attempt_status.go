package valueobjects

import (
	"fmt"
	"strings"
)

// AttemptStatus represents the lifecycle status of a PaymentAttempt.
type AttemptStatus string

const (
	AttemptStatusStarted              AttemptStatus = "started"
	AttemptStatusAuthenticationPending AttemptStatus = "authentication_pending"
	AttemptStatusAuthorized           AttemptStatus = "authorized"
	AttemptStatusCharged              AttemptStatus = "charged"
	AttemptStatusVoided               AttemptStatus = "voided"
	AttemptStatusFailure              AttemptStatus = "failure"
	AttemptStatusPending              AttemptStatus = "pending"
)

// NewAttemptStatus parses and validates a raw status string.
func NewAttemptStatus(status string) (AttemptStatus, error) {
	normalized := AttemptStatus(strings.ToLower(strings.TrimSpace(status)))
	if !normalized.IsValid() {
		return "", fmt.Errorf("invalid attempt status: %s", status)
	}
	return normalized, nil
}

// IsValid reports whether the status is one of the defined enum members.
func (s AttemptStatus) IsValid() bool {
	switch s {
	case AttemptStatusStarted, AttemptStatusAuthenticationPending, AttemptStatusAuthorized,
		AttemptStatusCharged, AttemptStatusVoided, AttemptStatusFailure, AttemptStatusPending:
		return true
	default:
		return false
	}
}

// IsAbsorbing reports whether the status is terminal: §4.4 says Charged,
// Voided and Failure are absorbing and admit no further transition.
func (s AttemptStatus) IsAbsorbing() bool {
	return s == AttemptStatusCharged || s == AttemptStatusVoided || s == AttemptStatusFailure
}

func (s AttemptStatus) String() string {
	return string(s)
}

// attemptTransitions enumerates the partial order required by the
// "FSM monotonicity" testable property in §8: no edge leaves an absorbing
// state, and every edge below is one the core itself performs (projections
// from connector responses are validated against this table by
// entities.PaymentAttempt.ApplyProjection).
var attemptTransitions = map[AttemptStatus][]AttemptStatus{
	AttemptStatusStarted:               {AttemptStatusAuthenticationPending, AttemptStatusAuthorized, AttemptStatusCharged, AttemptStatusFailure, AttemptStatusPending},
	AttemptStatusAuthenticationPending: {AttemptStatusAuthorized, AttemptStatusCharged, AttemptStatusFailure, AttemptStatusPending},
	AttemptStatusPending:               {AttemptStatusAuthorized, AttemptStatusCharged, AttemptStatusVoided, AttemptStatusFailure, AttemptStatusPending},
	AttemptStatusAuthorized:            {AttemptStatusCharged, AttemptStatusVoided, AttemptStatusFailure, AttemptStatusPending},
	AttemptStatusCharged:               {},
	AttemptStatusVoided:                {},
	AttemptStatusFailure:               {},
}

// CanTransitionTo reports whether moving from s to next is permitted by the
// partial order. Absorbing states never admit a transition, including to
// themselves — a caller that already observed Charged must not re-apply it.
func (s AttemptStatus) CanTransitionTo(next AttemptStatus) bool {
	if s.IsAbsorbing() {
		return false
	}
	for _, candidate := range attemptTransitions[s] {
		if candidate == next {
			return true
		}
	}
	return false
}
