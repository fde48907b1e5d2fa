package models

import "time"

const (
	TenantStatusActive      = "active"
	TenantStatusMaintenance = "maintenance"
)

// MasterSubdomain is the reserved subdomain of the platform's own
// landing tenant. Bare-domain and unrecognized hosts fall back to it.
const MasterSubdomain = "master"

// Tenant is the unit of data isolation. Never hard-deleted: historical
// appointments keep referencing it, so operators only flip Status.
type Tenant struct {
	ID        string `gorm:"primaryKey;size:36" json:"id"`
	Subdomain string `gorm:"size:63;uniqueIndex;not null" json:"subdomain"`
	Name      string `gorm:"size:100;not null" json:"name"`

	Status string `gorm:"size:20;default:'active'" json:"status"`
	Plan   string `gorm:"size:50;default:'basic'" json:"plan"`

	FeatureFlags map[string]bool `gorm:"serializer:json" json:"feature_flags"`

	Timezone          string `gorm:"size:50" json:"timezone"`
	MinAdvanceMinutes int    `gorm:"default:120" json:"min_advance_minutes"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
