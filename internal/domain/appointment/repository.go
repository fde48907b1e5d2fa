package appointment

import (
	"context"
	"time"

	"github.com/AgendaPlusApp/agenda-plus/internal/models"
)

// Repository is the storage contract for the booking flow. Every
// method is scoped by a tenant id taken from verified context, never
// from a client payload.
type Repository interface {
	// -------- Tenant --------
	GetTenantByID(
		ctx context.Context,
		id string,
	) (*models.Tenant, error)

	// -------- Catalog --------
	GetService(
		ctx context.Context,
		tenantID string,
		serviceID uint,
	) (*models.Service, error)

	// -------- Professional --------
	GetProfessional(
		ctx context.Context,
		tenantID string,
		professionalID uint,
	) (*models.Professional, error)

	// -------- Client --------
	GetOrCreateClient(
		ctx context.Context,
		tenantID string,
		name string,
		phone string,
		email string,
	) (*models.Client, error)

	// -------- Appointment --------

	// CreateAppointment is the atomic check-and-insert: it must fail
	// with the slot_conflict business error when any appointment in a
	// blocking status overlaps the interval for the same tenant and
	// professional, and two concurrent calls for overlapping
	// intervals must never both succeed.
	CreateAppointment(
		ctx context.Context,
		ap *models.Appointment,
	) error

	GetAppointment(
		ctx context.Context,
		tenantID string,
		appointmentID uint,
	) (*models.Appointment, error)

	UpdateAppointment(
		ctx context.Context,
		ap *models.Appointment,
	) error

	ListAppointments(
		ctx context.Context,
		tenantID string,
		start time.Time,
		end time.Time,
	) ([]models.Appointment, error)

	// -------- Availability --------
	ListBlockingAppointments(
		ctx context.Context,
		tenantID string,
		professionalID uint,
		start time.Time,
		end time.Time,
	) ([]models.Appointment, error)
}
