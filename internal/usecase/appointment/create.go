package appointment

import (
	"context"
	"time"

	"github.com/AgendaPlusApp/agenda-plus/internal/audit"
	domain "github.com/AgendaPlusApp/agenda-plus/internal/domain/appointment"
	"github.com/AgendaPlusApp/agenda-plus/internal/httperr"
	"github.com/AgendaPlusApp/agenda-plus/internal/models"
	"github.com/AgendaPlusApp/agenda-plus/internal/schedule"
	"github.com/AgendaPlusApp/agenda-plus/internal/timezone"
)

// ======================================================
// INPUT
// ======================================================

type CreateAppointmentInput struct {
	// From verified context, never from the request body.
	TenantID string

	ProfessionalID uint
	ServiceID      uint

	ClientName  string
	ClientPhone string
	ClientEmail string

	Date  string // YYYY-MM-DD
	Time  string // HH:MM
	Notes string

	// Staff manual entry may book inside the minimum-advance window;
	// the public flow may not.
	SkipMinAdvance bool
}

// ======================================================
// USE CASE
// ======================================================

type CreateAppointment struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewCreateAppointment(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *CreateAppointment {
	return &CreateAppointment{
		repo:  repo,
		audit: audit,
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *CreateAppointment) Execute(
	ctx context.Context,
	in CreateAppointmentInput,
) (*models.Appointment, error) {

	tn, err := uc.repo.GetTenantByID(ctx, in.TenantID)
	if err != nil {
		return nil, err
	}

	// Date and time are interpreted in the tenant's zone.
	start, err := time.ParseInLocation(
		"2006-01-02 15:04",
		in.Date+" "+in.Time,
		timezone.Location(tn.Timezone),
	)
	if err != nil {
		return nil, httperr.ErrBusiness("invalid_date_or_time")
	}

	if !in.SkipMinAdvance {
		minAdvance := tn.MinAdvanceMinutes
		if minAdvance <= 0 {
			minAdvance = 120
		}
		now := timezone.NowIn(tn.Timezone)
		if start.Before(now.Add(time.Duration(minAdvance) * time.Minute)) {
			return nil, httperr.ErrBusiness("too_soon")
		}
	}

	service, err := uc.repo.GetService(ctx, in.TenantID, in.ServiceID)
	if err != nil {
		return nil, httperr.ErrBusiness("service_not_found")
	}

	end := start.Add(time.Duration(service.DurationMin) * time.Minute)

	pro, err := uc.repo.GetProfessional(ctx, in.TenantID, in.ProfessionalID)
	if err != nil {
		return nil, httperr.ErrBusiness("professional_not_found")
	}

	if !pro.OffersService(service.ID) {
		return nil, httperr.ErrBusiness("service_not_offered")
	}

	if !schedule.CoversInterval(pro.Schedule, pro.Exceptions, start, end) {
		return nil, httperr.ErrBusiness("outside_schedule")
	}

	client, err := uc.repo.GetOrCreateClient(
		ctx,
		in.TenantID,
		in.ClientName,
		in.ClientPhone,
		in.ClientEmail,
	)
	if err != nil {
		return nil, err
	}

	ap := &models.Appointment{
		TenantID:       in.TenantID,
		ProfessionalID: in.ProfessionalID,
		ServiceID:      service.ID,
		Title:          service.Name,
		ClientID:       &client.ID,
		ClientName:     in.ClientName,
		ClientPhone:    in.ClientPhone,
		StartTime:      start,
		EndTime:        end,
		Status:         string(domain.InitialStatus()),
		Notes:          in.Notes,
	}

	// The repository does the conflict check and insert atomically;
	// a stale slot surfaces here as slot_conflict and the caller
	// re-queries availability.
	if err := uc.repo.CreateAppointment(ctx, ap); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		TenantID: in.TenantID,
		Action:   "appointment_created",
		Entity:   "appointment",
		EntityID: &ap.ID,
	})

	return ap, nil
}
