package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	domain "github.com/AgendaPlusApp/agenda-plus/internal/domain/appointment"
	"github.com/AgendaPlusApp/agenda-plus/internal/httperr"
	"github.com/AgendaPlusApp/agenda-plus/internal/models"
)

// AppointmentMemoryRepository is the injectable in-memory
// implementation of the booking store, selected by configuration when
// no backing database is wanted. Same contract as the gorm
// repository, no ambient globals; suitable for tests and demo runs.
type AppointmentMemoryRepository struct {
	mu sync.Mutex

	tenants       map[string]models.Tenant
	services      map[uint]models.Service
	professionals map[uint]models.Professional
	clients       []models.Client
	appointments  []models.Appointment

	nextID uint
}

func NewAppointmentMemoryRepository() *AppointmentMemoryRepository {
	return &AppointmentMemoryRepository{
		tenants:       make(map[string]models.Tenant),
		services:      make(map[uint]models.Service),
		professionals: make(map[uint]models.Professional),
		nextID:        1,
	}
}

// --------------------------------------------------
// Seeding
// --------------------------------------------------

func (r *AppointmentMemoryRepository) PutTenant(t models.Tenant) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.tenants[t.ID] = t
}

func (r *AppointmentMemoryRepository) PutService(s models.Service) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.services[s.ID] = s
}

func (r *AppointmentMemoryRepository) PutProfessional(p models.Professional) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.professionals[p.ID] = p
}

// --------------------------------------------------
// Lookups
// --------------------------------------------------

func (r *AppointmentMemoryRepository) GetTenantByID(
	_ context.Context,
	id string,
) (*models.Tenant, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	t, ok := r.tenants[id]
	if !ok {
		return nil, httperr.ErrBusiness("tenant_not_found")
	}
	out := t
	return &out, nil
}

func (r *AppointmentMemoryRepository) GetService(
	_ context.Context,
	tenantID string,
	serviceID uint,
) (*models.Service, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, ok := r.services[serviceID]
	if !ok || s.TenantID != tenantID {
		return nil, httperr.ErrBusiness("service_not_found")
	}
	out := s
	return &out, nil
}

func (r *AppointmentMemoryRepository) GetProfessional(
	_ context.Context,
	tenantID string,
	professionalID uint,
) (*models.Professional, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.professionals[professionalID]
	if !ok || p.TenantID != tenantID {
		return nil, httperr.ErrBusiness("professional_not_found")
	}
	out := p
	return &out, nil
}

func (r *AppointmentMemoryRepository) GetOrCreateClient(
	_ context.Context,
	tenantID string,
	name string,
	phone string,
	email string,
) (*models.Client, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.clients {
		if r.clients[i].TenantID == tenantID && r.clients[i].Phone == phone {
			out := r.clients[i]
			return &out, nil
		}
	}

	client := models.Client{
		ID:       r.allocID(),
		TenantID: tenantID,
		Name:     name,
		Phone:    phone,
		Email:    email,
	}
	r.clients = append(r.clients, client)

	out := client
	return &out, nil
}

// --------------------------------------------------
// Appointment
// --------------------------------------------------

func (r *AppointmentMemoryRepository) CreateAppointment(
	_ context.Context,
	ap *models.Appointment,
) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	// Check and insert under one lock: concurrent overlapping
	// bookings resolve to exactly one success.
	for _, existing := range r.appointments {
		if existing.TenantID != ap.TenantID || existing.ProfessionalID != ap.ProfessionalID {
			continue
		}
		if !isBlocking(existing.Status) {
			continue
		}
		if domain.Overlaps(ap.StartTime, ap.EndTime, existing.StartTime, existing.EndTime) {
			return httperr.ErrBusiness("slot_conflict")
		}
	}

	ap.ID = r.allocID()
	ap.CreatedAt = time.Now()
	ap.UpdatedAt = ap.CreatedAt
	r.appointments = append(r.appointments, *ap)
	return nil
}

func (r *AppointmentMemoryRepository) GetAppointment(
	_ context.Context,
	tenantID string,
	appointmentID uint,
) (*models.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.appointments {
		if r.appointments[i].ID == appointmentID && r.appointments[i].TenantID == tenantID {
			out := r.appointments[i]
			return &out, nil
		}
	}
	return nil, httperr.ErrBusiness("appointment_not_found")
}

func (r *AppointmentMemoryRepository) UpdateAppointment(
	_ context.Context,
	ap *models.Appointment,
) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.appointments {
		if r.appointments[i].ID == ap.ID && r.appointments[i].TenantID == ap.TenantID {
			ap.UpdatedAt = time.Now()
			r.appointments[i] = *ap
			return nil
		}
	}
	return httperr.ErrBusiness("appointment_not_found")
}

func (r *AppointmentMemoryRepository) ListAppointments(
	_ context.Context,
	tenantID string,
	start time.Time,
	end time.Time,
) ([]models.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []models.Appointment
	for _, ap := range r.appointments {
		if ap.TenantID != tenantID {
			continue
		}
		if ap.StartTime.Before(start) || !ap.StartTime.Before(end) {
			continue
		}
		out = append(out, ap)
	}

	sort.Slice(out, func(i, j int) bool { return out[i].StartTime.Before(out[j].StartTime) })
	return out, nil
}

func (r *AppointmentMemoryRepository) ListBlockingAppointments(
	_ context.Context,
	tenantID string,
	professionalID uint,
	start time.Time,
	end time.Time,
) ([]models.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []models.Appointment
	for _, ap := range r.appointments {
		if ap.TenantID != tenantID || ap.ProfessionalID != professionalID {
			continue
		}
		if !isBlocking(ap.Status) {
			continue
		}
		if domain.Overlaps(start, end, ap.StartTime, ap.EndTime) {
			out = append(out, ap)
		}
	}

	sort.Slice(out, func(i, j int) bool { return out[i].StartTime.Before(out[j].StartTime) })
	return out, nil
}

// --------------------------------------------------
// Helpers
// --------------------------------------------------

func (r *AppointmentMemoryRepository) allocID() uint {
	id := r.nextID
	r.nextID++
	return id
}

func isBlocking(status string) bool {
	for _, s := range domain.BlockingStatuses {
		if status == s {
			return true
		}
	}
	return false
}

// Ensure interface compliance.
var _ domain.Repository = (*AppointmentMemoryRepository)(nil)
