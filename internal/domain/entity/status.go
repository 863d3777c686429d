package entity

// Status is the lifecycle state of a booking
type Status string

const (
	StatusPending    Status = "pending"
	StatusConfirmed  Status = "confirmed"
	StatusInspecting Status = "inspecting"
	StatusInspected  Status = "inspected"
	StatusInProgress Status = "in-progress"
	StatusFinished   Status = "finished"
	StatusCompleted  Status = "completed"
	StatusCancelled  Status = "cancelled"
)

func (s Status) String() string {
	return string(s)
}

// IsValid reports whether s is a known status
func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusInspecting, StatusInspected,
		StatusInProgress, StatusFinished, StatusCompleted, StatusCancelled:
		return true
	default:
		return false
	}
}

// IsScheduled reports whether a booking with this status lives in the
// scheduled collection. Pending bookings are the only unscheduled ones;
// cancelled bookings live in the archive.
func (s Status) IsScheduled() bool {
	switch s {
	case StatusConfirmed, StatusInspecting, StatusInspected,
		StatusInProgress, StatusFinished, StatusCompleted:
		return true
	default:
		return false
	}
}

// IsTerminal reports whether no further transition is allowed from s
func (s Status) IsTerminal() bool {
	return s == StatusCompleted || s == StatusCancelled
}

// forwardOrder positions each status on the forward path. Statuses off the
// path (completed, cancelled) are not ordered.
var forwardOrder = map[Status]int{
	StatusPending:    0,
	StatusConfirmed:  1,
	StatusInspecting: 2,
	StatusInspected:  3,
	StatusInProgress: 4,
	StatusFinished:   5,
}

// transitions is the single source of truth for the state machine: the
// strict forward path, completed as a terminal synonym from every scheduled
// state, and cancelled reachable only from pending.
var transitions = map[Status][]Status{
	StatusPending:    {StatusConfirmed, StatusCancelled},
	StatusConfirmed:  {StatusInspecting, StatusCompleted},
	StatusInspecting: {StatusInspected, StatusCompleted},
	StatusInspected:  {StatusInProgress, StatusCompleted},
	StatusInProgress: {StatusFinished, StatusCompleted},
	StatusFinished:   {StatusCompleted},
	StatusCompleted:  {},
	StatusCancelled:  {},
}

// CanTransition reports whether a booking may move from current to target.
// When allowSkip is set, forward jumps over intermediate scheduled states are
// admitted as explicit shortcut edges (e.g. confirmed straight to finished).
func CanTransition(current, target Status, allowSkip bool) bool {
	if !current.IsValid() || !target.IsValid() {
		return false
	}
	for _, next := range transitions[current] {
		if next == target {
			return true
		}
	}
	if allowSkip && current.IsScheduled() {
		from, okFrom := forwardOrder[current]
		to, okTo := forwardOrder[target]
		return okFrom && okTo && to > from
	}
	return false
}

// AllowedFrom returns the transition targets reachable from current under
// the strict table, for user-facing rejection messages.
func AllowedFrom(current Status) []Status {
	next := transitions[current]
	out := make([]Status, len(next))
	copy(out, next)
	return out
}
