package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/AgendaPlusApp/agenda-plus/internal/audit"
	"github.com/AgendaPlusApp/agenda-plus/internal/httperr"
	"github.com/AgendaPlusApp/agenda-plus/internal/models"
	"github.com/AgendaPlusApp/agenda-plus/internal/timezone"
	"github.com/AgendaPlusApp/agenda-plus/internal/validators"
)

// Platform-operator provisioning surface. Gated to the tenant-less
// super-identity in routes.

type TenantHandler struct {
	db    *gorm.DB
	audit *audit.Dispatcher
}

func NewTenantHandler(db *gorm.DB, auditor *audit.Dispatcher) *TenantHandler {
	return &TenantHandler{db: db, audit: auditor}
}

// --------- Requests ---------

type ProvisionTenantRequest struct {
	Name      string `json:"name" binding:"required"`
	Subdomain string `json:"subdomain" binding:"required"`
	Plan      string `json:"plan"`
	Timezone  string `json:"timezone"`

	AdminName     string `json:"admin_name" binding:"required"`
	AdminPhone    string `json:"admin_phone" binding:"required"`
	AdminPassword string `json:"admin_password" binding:"required,min=6"`
}

type UpdateTenantStatusRequest struct {
	Subdomain string `json:"subdomain" binding:"required"`
	Status    string `json:"status" binding:"required,oneof=active maintenance"`
}

// --------- Handlers ---------

func (h *TenantHandler) Provision(c *gin.Context) {
	var req ProvisionTenantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	sub := strings.ToLower(strings.TrimSpace(req.Subdomain))

	if !validators.IsSubdomainValid(sub) || validators.IsSubdomainReserved(sub) {
		httperr.BadRequest(c, "invalid_subdomain", "Subdomain is not a usable DNS label.")
		return
	}

	if req.Timezone != "" && !timezone.IsValid(req.Timezone) {
		httperr.BadRequest(c, "invalid_timezone", "Unknown IANA timezone.")
		return
	}

	var count int64
	h.db.Model(&models.Tenant{}).Where("subdomain = ?", sub).Count(&count)
	if count > 0 {
		httperr.BadRequest(c, "subdomain_already_exists", "Subdomain is taken.")
		return
	}

	tn := models.Tenant{
		ID:        uuid.NewString(),
		Subdomain: sub,
		Name:      req.Name,
		Status:    models.TenantStatusActive,
		Plan:      req.Plan,
		Timezone:  req.Timezone,
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.AdminPassword), bcrypt.DefaultCost)
	if err != nil {
		httperr.Internal(c, "failed_to_hash_password", "Could not hash password.")
		return
	}

	admin := models.User{
		TenantID:     &tn.ID,
		Name:         req.AdminName,
		Phone:        strings.TrimSpace(req.AdminPhone),
		PasswordHash: string(hashed),
		Role:         models.RoleAdmin,
	}

	err = h.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&tn).Error; err != nil {
			return err
		}
		return tx.Create(&admin).Error
	})
	if err != nil {
		httperr.Internal(c, "failed_to_provision_tenant", "Could not provision tenant.")
		return
	}

	h.audit.Dispatch(audit.Event{
		TenantID: tn.ID,
		Action:   "tenant_provisioned",
		Entity:   "tenant",
	})

	c.JSON(http.StatusCreated, gin.H{
		"tenant": tn,
		"admin": gin.H{
			"id":    admin.ID,
			"name":  admin.Name,
			"phone": admin.Phone,
			"role":  admin.Role,
		},
	})
}

// UpdateStatus flips a tenant between active and maintenance. Tenants
// are never hard-deleted; historical bookings keep referencing them.
func (h *TenantHandler) UpdateStatus(c *gin.Context) {
	var req UpdateTenantStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	sub := strings.ToLower(strings.TrimSpace(req.Subdomain))

	var tn models.Tenant
	if err := h.db.Where("subdomain = ?", sub).First(&tn).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			httperr.NotFound(c, "tenant_not_found", "No such tenant.")
			return
		}
		httperr.Internal(c, "infrastructure_error", "Tenant lookup failed.")
		return
	}

	tn.Status = req.Status
	if err := h.db.Save(&tn).Error; err != nil {
		httperr.Internal(c, "failed_to_update_tenant", "Could not update tenant.")
		return
	}

	h.audit.Dispatch(audit.Event{
		TenantID: tn.ID,
		Action:   "tenant_status_changed",
		Entity:   "tenant",
		Metadata: gin.H{"status": tn.Status},
	})

	c.JSON(http.StatusOK, tn)
}
