package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	infraRepo "github.com/AgendaPlusApp/agenda-plus/internal/infra/repository"
	"github.com/AgendaPlusApp/agenda-plus/internal/middleware"
	"github.com/AgendaPlusApp/agenda-plus/internal/models"
	"github.com/AgendaPlusApp/agenda-plus/internal/schedule"
	"github.com/AgendaPlusApp/agenda-plus/internal/tenant"
	ucAppointment "github.com/AgendaPlusApp/agenda-plus/internal/usecase/appointment"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// 2030-06-03 is a Monday.
const bookingDate = "2030-06-03"

func newBookingRouter(t *testing.T) *gin.Engine {
	t.Helper()

	repo := infraRepo.NewAppointmentMemoryRepository()
	repo.PutTenant(models.Tenant{
		ID:        "t-ze",
		Subdomain: "barbearia-do-ze",
		Status:    models.TenantStatusActive,
		Timezone:  "UTC",
	})
	repo.PutService(models.Service{
		ID:          1,
		TenantID:    "t-ze",
		Name:        "Corte",
		DurationMin: 60,
		Active:      true,
	})

	var ws schedule.WeeklySchedule
	ws[time.Monday] = schedule.DaySchedule{
		Enabled: true,
		Ranges:  []schedule.TimeRange{{Start: "09:00", End: "13:00"}},
	}
	repo.PutProfessional(models.Professional{
		ID:       1,
		TenantID: "t-ze",
		Name:     "Ze",
		Schedule: ws,
	})

	dir := tenant.NewMemoryDirectory()
	dir.Put(models.Tenant{ID: "t-ze", Subdomain: "barbearia-do-ze", Status: models.TenantStatusActive, Timezone: "UTC"})
	resolver := tenant.NewResolver(dir, "agendaplus.app", "localhost")

	handler := NewBookingHandler(
		ucAppointment.NewGetAvailability(repo),
		ucAppointment.NewCreateAppointment(repo, nil),
	)

	r := gin.New()
	api := r.Group("/api")
	api.Use(middleware.TenantMiddleware(resolver))
	api.GET("/availability", handler.Availability)
	api.POST("/appointments", handler.Create)
	return r
}

func bookingRequest(t *testing.T, r *gin.Engine, method, path string, payload any) *httptest.ResponseRecorder {
	t.Helper()

	var body *bytes.Buffer
	if payload != nil {
		raw, err := json.Marshal(payload)
		require.NoError(t, err)
		body = bytes.NewBuffer(raw)
	} else {
		body = bytes.NewBuffer(nil)
	}

	req := httptest.NewRequest(method, path, body)
	req.Host = "barbearia-do-ze.agendaplus.app"
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func bookingPayload(clock string) gin.H {
	return gin.H{
		"professional_id": 1,
		"service_id":      1,
		"client_name":     "Joao",
		"client_phone":    "11999990000",
		"date":            bookingDate,
		"time":            clock,
	}
}

func TestAvailabilityEndpoint(t *testing.T) {
	r := newBookingRouter(t)

	w := bookingRequest(t, r, http.MethodGet,
		"/api/availability?date="+bookingDate+"&professional_id=1&service_id=1", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Date  string `json:"date"`
		Slots []struct {
			Start string `json:"start"`
			End   string `json:"end"`
		} `json:"slots"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Equal(t, bookingDate, body.Date)
	require.Len(t, body.Slots, 7) // 09:00 .. 12:00 on the half-hour grid
	require.Equal(t, "09:00", body.Slots[0].Start)
	require.Equal(t, "10:00", body.Slots[0].End)
}

func TestAvailabilityEndpointMissingParams(t *testing.T) {
	r := newBookingRouter(t)

	w := bookingRequest(t, r, http.MethodGet, "/api/availability?date="+bookingDate, nil)
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCreateBookingEndpoint(t *testing.T) {
	r := newBookingRouter(t)

	w := bookingRequest(t, r, http.MethodPost, "/api/appointments", bookingPayload("10:00"))
	require.Equal(t, http.StatusCreated, w.Code)

	var ap models.Appointment
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &ap))
	require.Equal(t, "t-ze", ap.TenantID)
	require.Equal(t, "scheduled", ap.Status)
}

func TestCreateBookingConflictIs409(t *testing.T) {
	r := newBookingRouter(t)

	w := bookingRequest(t, r, http.MethodPost, "/api/appointments", bookingPayload("10:00"))
	require.Equal(t, http.StatusCreated, w.Code)

	w = bookingRequest(t, r, http.MethodPost, "/api/appointments", bookingPayload("10:00"))
	require.Equal(t, http.StatusConflict, w.Code)

	var body struct {
		Code string `json:"error_code"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Equal(t, "slot_conflict", body.Code)
}

func TestCreateBookingOutsideSchedule(t *testing.T) {
	r := newBookingRouter(t)

	w := bookingRequest(t, r, http.MethodPost, "/api/appointments", bookingPayload("20:00"))
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCreateBookingIgnoresClientTenantClaims(t *testing.T) {
	r := newBookingRouter(t)

	// A tenant_id in the payload is not part of the contract and must
	// not override the host-resolved tenant.
	payload := bookingPayload("11:00")
	payload["tenant_id"] = "t-somebody-else"

	w := bookingRequest(t, r, http.MethodPost, "/api/appointments", payload)
	require.Equal(t, http.StatusCreated, w.Code)

	var ap models.Appointment
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &ap))
	require.Equal(t, "t-ze", ap.TenantID)
}
