package models

// RequestStatus is the lifecycle state of a cleaning request.
type RequestStatus string

const (
	StatusPending        RequestStatus = "pending"
	StatusInProgress     RequestStatus = "in_progress"
	StatusReadyForPickup RequestStatus = "ready_for_pickup"
	StatusPickedUp       RequestStatus = "picked_up"
	StatusCompleted      RequestStatus = "completed"
	StatusCancelled      RequestStatus = "cancelled"
)

func (s RequestStatus) String() string {
	return string(s)
}

func (s RequestStatus) IsValid() bool {
	switch s {
	case StatusPending, StatusInProgress, StatusReadyForPickup,
		StatusPickedUp, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

func (s RequestStatus) IsTerminal() bool {
	return s == StatusCompleted || s == StatusCancelled
}

// forwardTransitions is the strict progression table. Cancellation is handled
// separately: it is reachable from any non-terminal state.
var forwardTransitions = map[RequestStatus]RequestStatus{
	StatusPending:        StatusInProgress,
	StatusInProgress:     StatusReadyForPickup,
	StatusReadyForPickup: StatusPickedUp,
	StatusPickedUp:       StatusCompleted,
}

// CanTransition reports whether moving from s to target is allowed under the
// strict flow. Staff tooling historically allowed any state to be selected from
// any other, so callers only consult this table when strict flow is enabled.
func (s RequestStatus) CanTransition(target RequestStatus) bool {
	if !target.IsValid() || s == target {
		return false
	}

	if target == StatusCancelled {
		return !s.IsTerminal()
	}

	return forwardTransitions[s] == target
}

// AllStatuses returns the statuses in lifecycle order.
func AllStatuses() []RequestStatus {
	return []RequestStatus{
		StatusPending,
		StatusInProgress,
		StatusReadyForPickup,
		StatusPickedUp,
		StatusCompleted,
		StatusCancelled,
	}
}
