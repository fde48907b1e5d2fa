package appointment

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	domain "github.com/AgendaPlusApp/agenda-plus/internal/domain/appointment"
	"github.com/AgendaPlusApp/agenda-plus/internal/httperr"
)

func TestCancelAppointment(t *testing.T) {
	repo := seededRepo()
	createUC := NewCreateAppointment(repo, nil)
	cancelUC := NewCancelAppointment(repo, nil)
	ctx := context.Background()

	ap, err := createUC.Execute(ctx, createInput("10:00"))
	require.NoError(t, err)

	cancelled, err := cancelUC.Execute(ctx, tenantID, 1, ap.ID)
	require.NoError(t, err)
	require.Equal(t, string(domain.StatusCancelled), cancelled.Status)
	require.NotNil(t, cancelled.CancelledAt)

	// Already cancelled: refused.
	_, err = cancelUC.Execute(ctx, tenantID, 1, ap.ID)
	require.True(t, httperr.IsBusiness(err, "invalid_state"))
}

func TestCompleteAppointment(t *testing.T) {
	repo := seededRepo()
	createUC := NewCreateAppointment(repo, nil)
	completeUC := NewCompleteAppointment(repo, nil)
	cancelUC := NewCancelAppointment(repo, nil)
	ctx := context.Background()

	ap, err := createUC.Execute(ctx, createInput("10:00"))
	require.NoError(t, err)

	done, err := completeUC.Execute(ctx, tenantID, 1, ap.ID)
	require.NoError(t, err)
	require.Equal(t, string(domain.StatusCompleted), done.Status)
	require.NotNil(t, done.CompletedAt)

	// Completed appointments cannot be cancelled.
	_, err = cancelUC.Execute(ctx, tenantID, 1, ap.ID)
	require.True(t, httperr.IsBusiness(err, "invalid_state"))
}

func TestStatusChangeWrongTenant(t *testing.T) {
	repo := seededRepo()
	createUC := NewCreateAppointment(repo, nil)
	cancelUC := NewCancelAppointment(repo, nil)
	ctx := context.Background()

	ap, err := createUC.Execute(ctx, createInput("10:00"))
	require.NoError(t, err)

	// Another tenant's id never reaches this appointment.
	_, err = cancelUC.Execute(ctx, "t-other", 1, ap.ID)
	require.Error(t, err)
}
