package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/AgendaPlusApp/agenda-plus/internal/httperr"
	"github.com/AgendaPlusApp/agenda-plus/internal/middleware"
	"github.com/AgendaPlusApp/agenda-plus/internal/timezone"
	ucAppointment "github.com/AgendaPlusApp/agenda-plus/internal/usecase/appointment"
)

// ======================================================
// HANDLER
// ======================================================

type AppointmentHandler struct {
	listUC     *ucAppointment.ListAppointmentsByDate
	cancelUC   *ucAppointment.CancelAppointment
	completeUC *ucAppointment.CompleteAppointment
}

func NewAppointmentHandler(
	listUC *ucAppointment.ListAppointmentsByDate,
	cancelUC *ucAppointment.CancelAppointment,
	completeUC *ucAppointment.CompleteAppointment,
) *AppointmentHandler {
	return &AppointmentHandler{
		listUC:     listUC,
		cancelUC:   cancelUC,
		completeUC: completeUC,
	}
}

// --------- Requests ---------

// Status is the only mutable field after creation.
type UpdateAppointmentStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=completed cancelled"`
}

// ======================================================
// LIST
// ======================================================

func (h *AppointmentHandler) List(c *gin.Context) {
	tn := middleware.CurrentTenant(c)

	dateStr := c.DefaultQuery("date", timezone.NowIn(tn.Timezone).Format("2006-01-02"))

	date, err := time.ParseInLocation(
		"2006-01-02",
		dateStr,
		timezone.Location(tn.Timezone),
	)
	if err != nil {
		httperr.BadRequest(c, "invalid_date", "Invalid date.")
		return
	}

	appointments, err := h.listUC.Execute(c.Request.Context(), tn.ID, date)
	if err != nil {
		httperr.Internal(c, "failed_to_list_appointments", "Could not list appointments.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"date":         dateStr,
		"appointments": appointments,
	})
}

// ======================================================
// UPDATE STATUS
// ======================================================

func (h *AppointmentHandler) UpdateStatus(c *gin.Context) {
	tenantID := middleware.CurrentTenantID(c)
	userID := middleware.CurrentUserID(c)

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_appointment_id", "Invalid appointment id.")
		return
	}

	var req UpdateAppointmentStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Status must be completed or cancelled.")
		return
	}

	var (
		result any
		ucErr  error
	)

	switch req.Status {
	case "cancelled":
		result, ucErr = h.cancelUC.Execute(c.Request.Context(), tenantID, userID, uint(id))
	case "completed":
		result, ucErr = h.completeUC.Execute(c.Request.Context(), tenantID, userID, uint(id))
	}

	if ucErr != nil {
		switch {
		case httperr.IsBusiness(ucErr, "appointment_not_found"):
			httperr.NotFound(c, "appointment_not_found", "No such appointment.")
		case httperr.IsBusiness(ucErr, "invalid_state"):
			httperr.BadRequest(c, "invalid_state", "Appointment is not in a transitionable state.")
		default:
			httperr.Internal(c, "infrastructure_error", "Could not update appointment.")
		}
		return
	}

	c.JSON(http.StatusOK, result)
}
