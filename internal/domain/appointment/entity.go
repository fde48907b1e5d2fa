package appointment

import (
	"time"

	"github.com/AgendaPlusApp/agenda-plus/internal/models"
)

// ===============================
// Domain Actions
// ===============================

// Status transitions are plain field updates. They never widen the
// conflict surface, so no interval re-validation happens here.

func Cancel(ap *models.Appointment, now time.Time) error {
	if err := CanCancel(Status(ap.Status)); err != nil {
		return err
	}

	ap.Status = string(StatusCancelled)
	ap.CancelledAt = &now
	return nil
}

func Complete(ap *models.Appointment, now time.Time) error {
	if err := CanComplete(Status(ap.Status)); err != nil {
		return err
	}

	ap.Status = string(StatusCompleted)
	ap.CompletedAt = &now
	return nil
}

// Overlaps is the interval test used everywhere a conflict decision
// is made: [s1,e1) and [s2,e2) overlap iff s1 < e2 && s2 < e1.
func Overlaps(s1, e1, s2, e2 time.Time) bool {
	return s1.Before(e2) && s2.Before(e1)
}
