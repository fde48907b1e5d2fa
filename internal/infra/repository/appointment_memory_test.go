package repository

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	domain "github.com/AgendaPlusApp/agenda-plus/internal/domain/appointment"
	"github.com/AgendaPlusApp/agenda-plus/internal/httperr"
	"github.com/AgendaPlusApp/agenda-plus/internal/models"
)

func newAppointment(tenantID string, professionalID uint, start, end time.Time) *models.Appointment {
	return &models.Appointment{
		TenantID:       tenantID,
		ProfessionalID: professionalID,
		ServiceID:      1,
		Title:          "Corte",
		ClientName:     "Joao",
		ClientPhone:    "11999990000",
		StartTime:      start,
		EndTime:        end,
		Status:         string(domain.StatusScheduled),
	}
}

func TestCreateAppointmentRejectsOverlap(t *testing.T) {
	repo := NewAppointmentMemoryRepository()
	ctx := context.Background()

	base := time.Date(2025, 6, 2, 9, 0, 0, 0, time.UTC)

	require.NoError(t, repo.CreateAppointment(ctx,
		newAppointment("t-ze", 1, base, base.Add(time.Hour))))

	// Partial overlap.
	err := repo.CreateAppointment(ctx,
		newAppointment("t-ze", 1, base.Add(30*time.Minute), base.Add(90*time.Minute)))
	require.Error(t, err)
	require.True(t, httperr.IsBusiness(err, "slot_conflict"))

	// Same interval, another professional: fine.
	require.NoError(t, repo.CreateAppointment(ctx,
		newAppointment("t-ze", 2, base, base.Add(time.Hour))))

	// Same interval, another tenant: fine.
	require.NoError(t, repo.CreateAppointment(ctx,
		newAppointment("t-other", 1, base, base.Add(time.Hour))))

	// Back-to-back is not an overlap.
	require.NoError(t, repo.CreateAppointment(ctx,
		newAppointment("t-ze", 1, base.Add(time.Hour), base.Add(2*time.Hour))))
}

func TestCreateAppointmentCancelledDoesNotBlock(t *testing.T) {
	repo := NewAppointmentMemoryRepository()
	ctx := context.Background()

	base := time.Date(2025, 6, 2, 9, 0, 0, 0, time.UTC)

	first := newAppointment("t-ze", 1, base, base.Add(time.Hour))
	require.NoError(t, repo.CreateAppointment(ctx, first))

	first.Status = string(domain.StatusCancelled)
	require.NoError(t, repo.UpdateAppointment(ctx, first))

	require.NoError(t, repo.CreateAppointment(ctx,
		newAppointment("t-ze", 1, base, base.Add(time.Hour))))
}

func TestCreateAppointmentCompletedStillBlocks(t *testing.T) {
	repo := NewAppointmentMemoryRepository()
	ctx := context.Background()

	base := time.Date(2025, 6, 2, 9, 0, 0, 0, time.UTC)

	first := newAppointment("t-ze", 1, base, base.Add(time.Hour))
	require.NoError(t, repo.CreateAppointment(ctx, first))

	first.Status = string(domain.StatusCompleted)
	require.NoError(t, repo.UpdateAppointment(ctx, first))

	err := repo.CreateAppointment(ctx,
		newAppointment("t-ze", 1, base, base.Add(time.Hour)))
	require.True(t, httperr.IsBusiness(err, "slot_conflict"))
}

func TestCreateAppointmentConcurrentSameSlot(t *testing.T) {
	repo := NewAppointmentMemoryRepository()
	ctx := context.Background()

	base := time.Date(2025, 6, 2, 9, 0, 0, 0, time.UTC)

	const writers = 32
	var wg sync.WaitGroup
	errs := make([]error, writers)

	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			errs[i] = repo.CreateAppointment(ctx,
				newAppointment("t-ze", 1, base, base.Add(time.Hour)))
		}(i)
	}
	wg.Wait()

	succeeded := 0
	for _, err := range errs {
		if err == nil {
			succeeded++
			continue
		}
		require.True(t, httperr.IsBusiness(err, "slot_conflict"))
	}
	require.Equal(t, 1, succeeded)

	stored, err := repo.ListBlockingAppointments(ctx, "t-ze", 1, base, base.Add(time.Hour))
	require.NoError(t, err)
	require.Len(t, stored, 1)
}

func TestListAppointmentsRange(t *testing.T) {
	repo := NewAppointmentMemoryRepository()
	ctx := context.Background()

	day := time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)

	require.NoError(t, repo.CreateAppointment(ctx,
		newAppointment("t-ze", 1, day.Add(15*time.Hour), day.Add(16*time.Hour))))
	require.NoError(t, repo.CreateAppointment(ctx,
		newAppointment("t-ze", 1, day.Add(9*time.Hour), day.Add(10*time.Hour))))
	require.NoError(t, repo.CreateAppointment(ctx,
		newAppointment("t-ze", 1, day.AddDate(0, 0, 1).Add(9*time.Hour), day.AddDate(0, 0, 1).Add(10*time.Hour))))

	got, err := repo.ListAppointments(ctx, "t-ze", day, day.AddDate(0, 0, 1))
	require.NoError(t, err)
	require.Len(t, got, 2)
	// Sorted by start time.
	require.True(t, got[0].StartTime.Before(got[1].StartTime))
}
