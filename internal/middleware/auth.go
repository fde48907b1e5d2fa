package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/AgendaPlusApp/agenda-plus/internal/audit"
	"github.com/AgendaPlusApp/agenda-plus/internal/config"
	"github.com/AgendaPlusApp/agenda-plus/internal/httperr"
	"github.com/AgendaPlusApp/agenda-plus/internal/models"
)

const (
	ContextUserID   = "userID"
	ContextUserRole = "userRole"
)

// AuthMiddleware verifies the bearer token and enforces that its
// tenant claim agrees with the host-resolved tenant. The data layer
// only ever sees the tenant derived here, never one from a request
// body. Must run after TenantMiddleware.
func AuthMiddleware(cfg *config.Config, auditor *audit.Dispatcher) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			httperr.Unauthorized(c, "access_denied", "Missing authorization header.")
			c.Abort()
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			httperr.Unauthorized(c, "access_denied", "Invalid authorization header.")
			c.Abort()
			return
		}

		token, err := jwt.Parse(parts[1], func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrTokenMalformed
			}
			return []byte(cfg.JWTSecret), nil
		})
		if err != nil || !token.Valid {
			httperr.Forbidden(c, "session_invalid", "Invalid or expired session.")
			c.Abort()
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			httperr.Forbidden(c, "session_invalid", "Invalid token claims.")
			c.Abort()
			return
		}

		userID, ok1 := claims["sub"].(float64)
		role, ok2 := claims["role"].(string)
		if !ok1 || !ok2 {
			httperr.Forbidden(c, "session_invalid", "Invalid token payload.")
			c.Abort()
			return
		}
		tokenTenantID, _ := claims["tenantId"].(string)

		// The platform super-identity is tenant-less and may act on
		// any host. Everyone else's token must match the host tenant;
		// a disagreement is never auto-corrected by trusting either
		// side.
		if role != models.RolePlatform {
			resolvedID := CurrentTenantID(c)
			if tokenTenantID != resolvedID {
				uid := uint(userID)
				if auditor != nil {
					auditor.Dispatch(audit.Event{
						TenantID: resolvedID,
						UserID:   &uid,
						Action:   "tenant_mismatch",
						Entity:   "security",
						Metadata: gin.H{"token_tenant": tokenTenantID},
					})
				}
				httperr.Forbidden(c, "tenant_mismatch", "Token does not belong to this tenant.")
				c.Abort()
				return
			}
		}

		c.Set(ContextUserID, uint(userID))
		c.Set(ContextUserRole, role)

		c.Next()
	}
}

// RequireRole gates a route to the listed roles. The platform
// super-identity always passes.
func RequireRole(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		role := c.MustGet(ContextUserRole).(string)
		if role == models.RolePlatform {
			c.Next()
			return
		}
		for _, r := range roles {
			if role == r {
				c.Next()
				return
			}
		}
		httperr.Forbidden(c, "insufficient_role", "Not allowed for this role.")
		c.Abort()
	}
}

func CurrentUserID(c *gin.Context) uint {
	return c.MustGet(ContextUserID).(uint)
}

func CurrentUserRole(c *gin.Context) string {
	return c.MustGet(ContextUserRole).(string)
}
