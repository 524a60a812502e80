package appointment

import "github.com/BruksfildServices01/barbershop-manager/internal/httperr"

// ===============================
// Appointment Status
// ===============================

type Status string

const (
	StatusScheduled Status = "scheduled"
	StatusCancelled Status = "cancelled"
	StatusCompleted Status = "completed"
)

// Only scheduled appointments move; cancelled and completed are final.
var transitions = map[Status][]Status{
	StatusScheduled: {StatusCancelled, StatusCompleted},
}

// Occupies reports whether an appointment in this status holds its time range.
func (s Status) Occupies() bool {
	return s != StatusCancelled
}

func (s Status) Final() bool {
	return len(transitions[s]) == 0
}

// CanTransition answers invalid_state unless from -> to is allowed.
func CanTransition(from, to Status) error {
	for _, next := range transitions[from] {
		if next == to {
			return nil
		}
	}
	return httperr.ErrBusiness("invalid_state")
}

func CanCancel(current Status) error {
	return CanTransition(current, StatusCancelled)
}

func CanComplete(current Status) error {
	return CanTransition(current, StatusCompleted)
}

func InitialStatus() Status {
	return StatusScheduled
}
