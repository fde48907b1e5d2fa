package appointment

import (
	"context"
	"fmt"
	"time"

	domain "github.com/AgendaPlusApp/agenda-plus/internal/domain/appointment"
	"github.com/AgendaPlusApp/agenda-plus/internal/httperr"
	"github.com/AgendaPlusApp/agenda-plus/internal/schedule"
)

type GetAvailability struct {
	repo domain.Repository
}

func NewGetAvailability(repo domain.Repository) *GetAvailability {
	return &GetAvailability{repo: repo}
}

// Execute produces the bookable slots for one date: the schedule
// grid from the generator, minus anything overlapping an existing
// blocking appointment. Slot lists are a snapshot; the booking writer
// re-checks on commit.
func (uc *GetAvailability) Execute(
	ctx context.Context,
	in domain.AvailabilityInput,
) ([]domain.TimeSlot, error) {

	service, err := uc.repo.GetService(ctx, in.TenantID, in.ServiceID)
	if err != nil {
		return nil, httperr.ErrBusiness("service_not_found")
	}

	pro, err := uc.repo.GetProfessional(ctx, in.TenantID, in.ProfessionalID)
	if err != nil {
		return nil, httperr.ErrBusiness("professional_not_found")
	}

	if !pro.OffersService(service.ID) {
		return nil, httperr.ErrBusiness("service_not_offered")
	}

	starts := schedule.GenerateSlots(in.Date, pro.Schedule, pro.Exceptions, service.DurationMin)
	if len(starts) == 0 {
		return []domain.TimeSlot{}, nil
	}

	loc := in.Date.Location()
	dayStart := schedule.ToCalendarDay(in.Date, loc)
	dayEnd := dayStart.AddDate(0, 0, 1)

	booked, err := uc.repo.ListBlockingAppointments(
		ctx,
		in.TenantID,
		in.ProfessionalID,
		dayStart,
		dayEnd,
	)
	if err != nil {
		return nil, err
	}

	duration := time.Duration(service.DurationMin) * time.Minute

	slots := make([]domain.TimeSlot, 0, len(starts))
	for _, hm := range starts {
		slotStart := atClock(dayStart, hm)
		slotEnd := slotStart.Add(duration)

		conflict := false
		for _, ap := range booked {
			if domain.Overlaps(slotStart, slotEnd, ap.StartTime, ap.EndTime) {
				conflict = true
				break
			}
		}

		if !conflict {
			slots = append(slots, domain.TimeSlot{
				Start: hm,
				End:   slotEnd.Format("15:04"),
			})
		}
	}

	return slots, nil
}

// atClock places an "HH:MM" wall-clock time on the given day.
func atClock(day time.Time, hm string) time.Time {
	var h, m int
	fmt.Sscanf(hm, "%d:%d", &h, &m)
	return time.Date(day.Year(), day.Month(), day.Day(), h, m, 0, 0, day.Location())
}
