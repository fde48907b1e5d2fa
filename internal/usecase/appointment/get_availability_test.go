package appointment

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	domain "github.com/AgendaPlusApp/agenda-plus/internal/domain/appointment"
	"github.com/AgendaPlusApp/agenda-plus/internal/httperr"
	"github.com/AgendaPlusApp/agenda-plus/internal/models"
	"github.com/AgendaPlusApp/agenda-plus/internal/schedule"
)

func availabilityInput(date time.Time) domain.AvailabilityInput {
	return domain.AvailabilityInput{
		TenantID:       tenantID,
		ProfessionalID: 1,
		ServiceID:      1,
		Date:           date,
	}
}

func TestGetAvailabilityFullDay(t *testing.T) {
	uc := NewGetAvailability(seededRepo())

	day, _ := time.Parse("2006-01-02", testDate)
	slots, err := uc.Execute(context.Background(), availabilityInput(day))
	require.NoError(t, err)

	// 60-minute service over 09:00-13:00 and 15:00-18:00 on the
	// half-hour grid.
	var starts []string
	for _, s := range slots {
		starts = append(starts, s.Start)
	}
	require.Equal(t, []string{
		"09:00", "09:30", "10:00", "10:30", "11:00", "11:30", "12:00",
		"15:00", "15:30", "16:00", "16:30", "17:00",
	}, starts)

	require.Equal(t, "10:00", slots[0].End)
}

func TestGetAvailabilityExcludesBooked(t *testing.T) {
	repo := seededRepo()
	createUC := NewCreateAppointment(repo, nil)
	uc := NewGetAvailability(repo)
	ctx := context.Background()

	_, err := createUC.Execute(ctx, createInput("10:00"))
	require.NoError(t, err)

	day, _ := time.Parse("2006-01-02", testDate)
	slots, err := uc.Execute(ctx, availabilityInput(day))
	require.NoError(t, err)

	for _, s := range slots {
		require.NotEqual(t, "10:00", s.Start)
		// 09:30 + 60min overlaps the booked 10:00-11:00.
		require.NotEqual(t, "09:30", s.Start)
		require.NotEqual(t, "10:30", s.Start)
	}
	require.Contains(t, startsOf(slots), "09:00")
	require.Contains(t, startsOf(slots), "11:00")
}

func TestGetAvailabilityCancelledFreesSlot(t *testing.T) {
	repo := seededRepo()
	createUC := NewCreateAppointment(repo, nil)
	cancelUC := NewCancelAppointment(repo, nil)
	uc := NewGetAvailability(repo)
	ctx := context.Background()

	ap, err := createUC.Execute(ctx, createInput("10:00"))
	require.NoError(t, err)

	_, err = cancelUC.Execute(ctx, tenantID, 1, ap.ID)
	require.NoError(t, err)

	day, _ := time.Parse("2006-01-02", testDate)
	slots, err := uc.Execute(ctx, availabilityInput(day))
	require.NoError(t, err)
	require.Contains(t, startsOf(slots), "10:00")
}

func TestGetAvailabilityClosedDay(t *testing.T) {
	uc := NewGetAvailability(seededRepo())

	// The Sunday before the test Monday: disabled, so no slots — but
	// not an error.
	day, _ := time.Parse("2006-01-02", testDate)
	slots, err := uc.Execute(context.Background(), availabilityInput(day.AddDate(0, 0, -1)))
	require.NoError(t, err)
	require.Empty(t, slots)
}

func TestGetAvailabilityServiceNotOffered(t *testing.T) {
	repo := seededRepo()
	uc := NewGetAvailability(repo)

	var ws schedule.WeeklySchedule
	ws[time.Monday] = schedule.DaySchedule{
		Enabled: true,
		Ranges:  []schedule.TimeRange{{Start: "09:00", End: "18:00"}},
	}
	repo.PutProfessional(models.Professional{
		ID:         1,
		TenantID:   tenantID,
		Name:       "Ze",
		Schedule:   ws,
		ServiceIDs: []uint{2},
	})

	day, _ := time.Parse("2006-01-02", testDate)
	_, err := uc.Execute(context.Background(), availabilityInput(day))
	require.True(t, httperr.IsBusiness(err, "service_not_offered"))
}

func TestGetAvailabilityUnknownService(t *testing.T) {
	uc := NewGetAvailability(seededRepo())

	day, _ := time.Parse("2006-01-02", testDate)
	in := availabilityInput(day)
	in.ServiceID = 99

	_, err := uc.Execute(context.Background(), in)
	require.True(t, httperr.IsBusiness(err, "service_not_found"))
}

func startsOf(slots []domain.TimeSlot) []string {
	out := make([]string, 0, len(slots))
	for _, s := range slots {
		out = append(out, s.Start)
	}
	return out
}
