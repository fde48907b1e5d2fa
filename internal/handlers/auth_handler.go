package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/AgendaPlusApp/agenda-plus/internal/config"
	"github.com/AgendaPlusApp/agenda-plus/internal/middleware"
	"github.com/AgendaPlusApp/agenda-plus/internal/models"
)

type AuthHandler struct {
	db     *gorm.DB
	config *config.Config
}

func NewAuthHandler(db *gorm.DB, cfg *config.Config) *AuthHandler {
	return &AuthHandler{db: db, config: cfg}
}

// --------- Requests ---------

type LoginRequest struct {
	Phone    string `json:"phone" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// --------- Handlers ---------

// Login exchanges (phone, password) for a signed token, scoped to the
// host-resolved tenant. Wrong password and unknown phone produce the
// same generic failure.
func (h *AuthHandler) Login(c *gin.Context) {
	tenantID := middleware.CurrentTenantID(c)

	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	phone := strings.TrimSpace(req.Phone)

	var user models.User
	err := h.db.
		Where("phone = ? AND tenant_id = ?", phone, tenantID).
		First(&user).Error

	if err == gorm.ErrRecordNotFound {
		// The platform super-identity is tenant-less and may log in
		// from any host.
		err = h.db.
			Where("phone = ? AND tenant_id IS NULL AND role = ?", phone, models.RolePlatform).
			First(&user).Error
	}

	if err != nil {
		if err == gorm.ErrRecordNotFound {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid_credentials"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "infrastructure_error"})
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid_credentials"})
		return
	}

	token, err := h.generateToken(&user)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_generate_token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"user": gin.H{
			"id":        user.ID,
			"name":      user.Name,
			"phone":     user.Phone,
			"role":      user.Role,
			"tenant_id": user.TenantID,
		},
		"token": token,
	})
}

// --------- JWT ---------

func (h *AuthHandler) generateToken(user *models.User) (string, error) {
	tenantID := ""
	if user.TenantID != nil {
		tenantID = *user.TenantID
	}

	claims := jwt.MapClaims{
		"sub":      user.ID,
		"tenantId": tenantID,
		"role":     user.Role,
		"exp":      time.Now().Add(24 * time.Hour).Unix(),
		"iat":      time.Now().Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(h.config.JWTSecret))
}
