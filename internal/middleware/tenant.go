package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/AgendaPlusApp/agenda-plus/internal/httperr"
	"github.com/AgendaPlusApp/agenda-plus/internal/models"
	"github.com/AgendaPlusApp/agenda-plus/internal/tenant"
)

const (
	ContextTenant   = "tenant"
	ContextTenantID = "tenantID"
)

// TenantMiddleware resolves the owning tenant from the Host header
// before any tenant-scoped data is touched. Runs on every /api route,
// public or not.
func TenantMiddleware(resolver *tenant.Resolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		t, err := resolver.Resolve(c.Request.Context(), c.Request.Host)
		if err != nil {
			if errors.Is(err, tenant.ErrNotFound) {
				httperr.NotFound(c, "tenant_not_found", "No tenant for this host.")
			} else {
				httperr.Internal(c, "infrastructure_error", "Tenant directory unavailable.")
			}
			c.Abort()
			return
		}

		if t.Status == models.TenantStatusMaintenance {
			httperr.Write(c, http.StatusServiceUnavailable, "tenant_maintenance", "Tenant is under maintenance.")
			c.Abort()
			return
		}

		c.Set(ContextTenant, t)
		c.Set(ContextTenantID, t.ID)

		c.Next()
	}
}

func CurrentTenant(c *gin.Context) *models.Tenant {
	return c.MustGet(ContextTenant).(*models.Tenant)
}

func CurrentTenantID(c *gin.Context) string {
	return c.MustGet(ContextTenantID).(string)
}
