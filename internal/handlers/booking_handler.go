package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	domain "github.com/AgendaPlusApp/agenda-plus/internal/domain/appointment"
	"github.com/AgendaPlusApp/agenda-plus/internal/httperr"
	"github.com/AgendaPlusApp/agenda-plus/internal/middleware"
	"github.com/AgendaPlusApp/agenda-plus/internal/timezone"
	ucAppointment "github.com/AgendaPlusApp/agenda-plus/internal/usecase/appointment"
)

// Public booking flow: availability read plus appointment creation,
// both tenant-resolved from the host and neither requiring a token.

type BookingHandler struct {
	availabilityUC *ucAppointment.GetAvailability
	createUC       *ucAppointment.CreateAppointment
}

func NewBookingHandler(
	availabilityUC *ucAppointment.GetAvailability,
	createUC *ucAppointment.CreateAppointment,
) *BookingHandler {
	return &BookingHandler{
		availabilityUC: availabilityUC,
		createUC:       createUC,
	}
}

// --------- Requests ---------

type PublicCreateAppointmentRequest struct {
	ProfessionalID uint   `json:"professional_id" binding:"required"`
	ServiceID      uint   `json:"service_id" binding:"required"`
	ClientName     string `json:"client_name" binding:"required"`
	ClientPhone    string `json:"client_phone" binding:"required"`
	ClientEmail    string `json:"client_email"`
	Date           string `json:"date" binding:"required"` // YYYY-MM-DD
	Time           string `json:"time" binding:"required"` // HH:MM
	Notes          string `json:"notes"`
}

// --------- Handlers ---------

func (h *BookingHandler) Availability(c *gin.Context) {
	tn := middleware.CurrentTenant(c)

	dateStr := c.Query("date")
	proIDStr := c.Query("professional_id")
	serviceIDStr := c.Query("service_id")

	if dateStr == "" || proIDStr == "" || serviceIDStr == "" {
		httperr.BadRequest(c, "missing_params", "date, professional_id and service_id are required.")
		return
	}

	proID, err := strconv.ParseUint(proIDStr, 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_professional_id", "Invalid professional.")
		return
	}
	serviceID, err := strconv.ParseUint(serviceIDStr, 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_service_id", "Invalid service.")
		return
	}

	date, err := time.ParseInLocation(
		"2006-01-02",
		dateStr,
		timezone.Location(tn.Timezone),
	)
	if err != nil {
		httperr.BadRequest(c, "invalid_date", "Invalid date.")
		return
	}

	slots, err := h.availabilityUC.Execute(
		c.Request.Context(),
		domain.AvailabilityInput{
			TenantID:       tn.ID,
			ProfessionalID: uint(proID),
			ServiceID:      uint(serviceID),
			Date:           date,
		},
	)
	if err != nil {
		if httperr.IsBusiness(err, "service_not_found") {
			httperr.BadRequest(c, "service_not_found", "Invalid service.")
			return
		}
		if httperr.IsBusiness(err, "professional_not_found") {
			httperr.BadRequest(c, "professional_not_found", "Invalid professional.")
			return
		}
		if httperr.IsBusiness(err, "service_not_offered") {
			httperr.BadRequest(c, "service_not_offered", "Professional does not offer this service.")
			return
		}
		httperr.Internal(c, "availability_failed", "Could not compute availability.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"date":  dateStr,
		"slots": slots,
	})
}

func (h *BookingHandler) Create(c *gin.Context) {
	tenantID := middleware.CurrentTenantID(c)

	var req PublicCreateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid booking payload.")
		return
	}

	ap, err := h.createUC.Execute(
		c.Request.Context(),
		ucAppointment.CreateAppointmentInput{
			TenantID:       tenantID,
			ProfessionalID: req.ProfessionalID,
			ServiceID:      req.ServiceID,
			ClientName:     req.ClientName,
			ClientPhone:    req.ClientPhone,
			ClientEmail:    req.ClientEmail,
			Date:           req.Date,
			Time:           req.Time,
			Notes:          req.Notes,
		},
	)
	if err != nil {
		mapCreateErrors(c, err)
		return
	}

	c.JSON(http.StatusCreated, ap)
}

// mapCreateErrors translates booking-writer business errors into the
// stable HTTP error codes the clients key on.
func mapCreateErrors(c *gin.Context, err error) {
	switch {
	case httperr.IsBusiness(err, "slot_conflict"):
		// Expected under concurrent booking: the slot list went stale
		// between generation and submission. The client re-queries
		// availability and picks again.
		httperr.Conflict(c, "slot_conflict", "Slot is no longer available, please pick another time.")
	case httperr.IsBusiness(err, "outside_schedule"):
		httperr.BadRequest(c, "outside_schedule", "Time is outside the professional's schedule.")
	case httperr.IsBusiness(err, "too_soon"):
		httperr.BadRequest(c, "too_soon", "Time is too close or in the past.")
	case httperr.IsBusiness(err, "invalid_date_or_time"):
		httperr.BadRequest(c, "invalid_date_or_time", "Invalid date or time.")
	case httperr.IsBusiness(err, "service_not_found"):
		httperr.BadRequest(c, "service_not_found", "Invalid service.")
	case httperr.IsBusiness(err, "professional_not_found"):
		httperr.BadRequest(c, "professional_not_found", "Invalid professional.")
	case httperr.IsBusiness(err, "service_not_offered"):
		httperr.BadRequest(c, "service_not_offered", "Professional does not offer this service.")
	default:
		httperr.Internal(c, "infrastructure_error", "Could not create appointment.")
	}
}
