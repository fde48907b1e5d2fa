package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/AgendaPlusApp/agenda-plus/internal/audit"
	"github.com/AgendaPlusApp/agenda-plus/internal/httperr"
	"github.com/AgendaPlusApp/agenda-plus/internal/httpresp"
	"github.com/AgendaPlusApp/agenda-plus/internal/middleware"
	"github.com/AgendaPlusApp/agenda-plus/internal/models"
	"github.com/AgendaPlusApp/agenda-plus/internal/schedule"
)

type ProfessionalHandler struct {
	db    *gorm.DB
	audit *audit.Dispatcher
}

func NewProfessionalHandler(db *gorm.DB, auditor *audit.Dispatcher) *ProfessionalHandler {
	return &ProfessionalHandler{db: db, audit: auditor}
}

// --------- Requests ---------

type CreateProfessionalRequest struct {
	Name      string `json:"name" binding:"required"`
	Specialty string `json:"specialty"`

	Schedule   schedule.WeeklySchedule `json:"schedule"`
	Exceptions []schedule.Exception    `json:"exceptions"`
	ServiceIDs []uint                  `json:"service_ids"`
}

// UpdateProfessionalRequest replaces the schedule and exceptions
// wholesale, matching how the booking UI edits them.
type UpdateProfessionalRequest struct {
	Name      *string `json:"name,omitempty"`
	Specialty *string `json:"specialty,omitempty"`

	Schedule   schedule.WeeklySchedule `json:"schedule"`
	Exceptions []schedule.Exception    `json:"exceptions"`
	ServiceIDs []uint                  `json:"service_ids"`
}

// --------- Handlers ---------

func (h *ProfessionalHandler) List(c *gin.Context) {
	tenantID := middleware.CurrentTenantID(c)

	var pros []models.Professional
	if err := h.db.
		Where("tenant_id = ?", tenantID).
		Order("id ASC").
		Find(&pros).Error; err != nil {

		httperr.Internal(c, "failed_to_list_professionals", "Could not list professionals.")
		return
	}

	httpresp.List(c, pros)
}

func (h *ProfessionalHandler) Create(c *gin.Context) {
	tenantID := middleware.CurrentTenantID(c)
	userID := middleware.CurrentUserID(c)

	var req CreateProfessionalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	if err := req.Schedule.Validate(); err != nil {
		httperr.BadRequest(c, "invalid_schedule_data", err.Error())
		return
	}
	if err := schedule.ValidateExceptions(req.Exceptions); err != nil {
		httperr.BadRequest(c, "invalid_schedule_data", err.Error())
		return
	}

	pro := models.Professional{
		TenantID:   tenantID,
		Name:       req.Name,
		Specialty:  req.Specialty,
		Schedule:   req.Schedule,
		Exceptions: req.Exceptions,
		ServiceIDs: req.ServiceIDs,
	}

	if err := h.db.Create(&pro).Error; err != nil {
		httperr.Internal(c, "failed_to_create_professional", "Could not create professional.")
		return
	}

	h.audit.Dispatch(audit.Event{
		TenantID: tenantID,
		UserID:   &userID,
		Action:   "professional_created",
		Entity:   "professional",
		EntityID: &pro.ID,
	})

	c.JSON(http.StatusCreated, pro)
}

func (h *ProfessionalHandler) Update(c *gin.Context) {
	tenantID := middleware.CurrentTenantID(c)
	userID := middleware.CurrentUserID(c)

	id := c.Param("id")

	var pro models.Professional
	if err := h.db.
		Where("id = ? AND tenant_id = ?", id, tenantID).
		First(&pro).Error; err != nil {

		if err == gorm.ErrRecordNotFound {
			httperr.NotFound(c, "professional_not_found", "No such professional.")
			return
		}
		httperr.Internal(c, "failed_to_get_professional", "Could not load professional.")
		return
	}

	var req UpdateProfessionalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	// Invalid schedules are rejected here and never persisted.
	if err := req.Schedule.Validate(); err != nil {
		httperr.BadRequest(c, "invalid_schedule_data", err.Error())
		return
	}
	if err := schedule.ValidateExceptions(req.Exceptions); err != nil {
		httperr.BadRequest(c, "invalid_schedule_data", err.Error())
		return
	}

	if req.Name != nil {
		pro.Name = *req.Name
	}
	if req.Specialty != nil {
		pro.Specialty = *req.Specialty
	}
	pro.Schedule = req.Schedule
	pro.Exceptions = req.Exceptions
	pro.ServiceIDs = req.ServiceIDs

	if err := h.db.Save(&pro).Error; err != nil {
		httperr.Internal(c, "failed_to_update_professional", "Could not update professional.")
		return
	}

	h.audit.Dispatch(audit.Event{
		TenantID: tenantID,
		UserID:   &userID,
		Action:   "professional_schedule_updated",
		Entity:   "professional",
		EntityID: &pro.ID,
	})

	c.JSON(http.StatusOK, pro)
}
