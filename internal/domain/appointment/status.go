package appointment

import "github.com/AgendaPlusApp/agenda-plus/internal/httperr"

// ===============================
// Appointment Status
// ===============================

type Status string

const (
	StatusScheduled Status = "scheduled"
	StatusCancelled Status = "cancelled"
	StatusCompleted Status = "completed"
)

// BlockingStatuses are the statuses whose intervals exclude new
// bookings. Cancelled appointments free their slot.
var BlockingStatuses = []string{
	string(StatusScheduled),
	string(StatusCompleted),
}

// ===============================
// Transitions
// ===============================

func CanCancel(current Status) error {
	if current != StatusScheduled {
		return httperr.ErrBusiness("invalid_state")
	}
	return nil
}

func CanComplete(current Status) error {
	if current != StatusScheduled {
		return httperr.ErrBusiness("invalid_state")
	}
	return nil
}

func InitialStatus() Status {
	return StatusScheduled
}
