package delivery

import (
	"fmt"

	"delivery-service/internal/pkg/errs"
)

// Status represents the lifecycle state of a delivery.
//
// State transitions:
//
//	pending ──> packaged ──> delivering ──> delivered
//	   │           │
//	   └───────────┴──> cancelled
//
// Status values are persisted and published as their lowercase names.
type Status string

const (
	// Pending is the initial status of a newly created delivery.
	Pending Status = "pending"

	// Packaged means the order is packed and the delivery process may start.
	Packaged Status = "packaged"

	// Delivering means a courier is on the way. Cancellation is no longer possible.
	Delivering Status = "delivering"

	// Delivered is the successful final state.
	Delivered Status = "delivered"

	// Cancelled is the aborted final state.
	Cancelled Status = "cancelled"
)

// Trigger identifies the origin of a status change request.
type Trigger int

const (
	TriggerUnknown Trigger = iota

	// TriggerExternal is an explicit status update from another service or the HTTP API.
	// It may skip forward over intermediate states.
	TriggerExternal

	// TriggerProcess is the timed delivery process. It advances exactly one step.
	TriggerProcess
)

func (t Trigger) String() string {
	switch t {
	case TriggerExternal:
		return "external"
	case TriggerProcess:
		return "process"
	default:
		return "unknown"
	}
}

// getForwardRanks orders the forward path. Cancelled has no rank.
func getForwardRanks() map[Status]int {
	return map[Status]int{
		Pending:    0,
		Packaged:   1,
		Delivering: 2,
		Delivered:  3,
	}
}

// ParseStatus converts a wire or database value into a Status.
func ParseStatus(value string) (Status, error) {
	s := Status(value)
	if err := s.Validate(); err != nil {
		return "", err
	}
	return s, nil
}

// Validate checks that s is one of the five lifecycle states.
func (s Status) Validate() error {
	if _, ok := getForwardRanks()[s]; ok || s == Cancelled {
		return nil
	}
	return errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%q is not a valid status", string(s)))
}

func (s Status) String() string {
	return string(s)
}

// IsTerminal reports whether no further transitions leave s.
func (s Status) IsTerminal() bool {
	return s == Delivered || s == Cancelled
}

// IsInProgress reports whether the delivery process owns the record.
func (s Status) IsInProgress() bool {
	return s == Packaged || s == Delivering
}

// Next returns the following state on the forward path.
// The second result is false for terminal states.
func (s Status) Next() (Status, bool) {
	switch s {
	case Pending:
		return Packaged, true
	case Packaged:
		return Delivering, true
	case Delivering:
		return Delivered, true
	default:
		return "", false
	}
}

// TransitionTo returns the status reached by moving from s to target on behalf of trigger.
//
// Rules:
//   - target equal to s is a no-op and returns s, even for terminal states
//   - terminal states reject every other target
//   - cancelled is not reachable here; use Cancel
//   - TriggerExternal may move any number of steps forward
//   - TriggerProcess may move exactly one step forward
//   - moving backward is never allowed
//
// Rejections are *errs.InvalidTransitionError. Unknown statuses and triggers
// are *errs.ValueIsInvalidError.
func (s Status) TransitionTo(target Status, trigger Trigger) (Status, error) {
	if err := s.Validate(); err != nil {
		return "", err
	}
	if err := target.Validate(); err != nil {
		return "", err
	}
	if trigger != TriggerExternal && trigger != TriggerProcess {
		return "", errs.NewValueIsInvalidErrorWithCause("trigger", fmt.Errorf("%d is not a valid trigger", trigger))
	}

	if s == target {
		return s, nil
	}
	if s.IsTerminal() || target == Cancelled {
		return "", errs.NewInvalidTransitionError(s.String(), target.String())
	}

	ranks := getForwardRanks()
	from, to := ranks[s], ranks[target]
	if to <= from {
		return "", errs.NewInvalidTransitionError(s.String(), target.String())
	}
	if trigger == TriggerProcess && to != from+1 {
		return "", errs.NewInvalidTransitionError(s.String(), target.String())
	}

	return target, nil
}

// Cancel returns Cancelled when cancellation is allowed from s.
// A cancelled status cancels again without error so repeated requests can be acknowledged.
func (s Status) Cancel() (Status, error) {
	switch s {
	case Pending, Packaged, Cancelled:
		return Cancelled, nil
	default:
		if err := s.Validate(); err != nil {
			return "", err
		}
		return "", errs.NewInvalidTransitionError(s.String(), Cancelled.String())
	}
}
