package models

import "time"

const (
	RoleAdmin        = "admin"
	RoleProfessional = "professional"
	RoleClient       = "client"

	// RolePlatform is the tenant-less super-identity; it can act on
	// any tenant and is the only role allowed to provision tenants.
	RolePlatform = "platform"
)

type User struct {
	ID uint `gorm:"primaryKey" json:"id"`

	// Nil for the platform super-identity.
	TenantID *string `gorm:"size:36;index;uniqueIndex:idx_users_tenant_phone" json:"tenant_id"`

	Name         string `gorm:"size:100;not null" json:"name"`
	Phone        string `gorm:"size:20;not null;uniqueIndex:idx_users_tenant_phone" json:"phone"`
	PasswordHash string `gorm:"size:255;not null" json:"-"`
	Role         string `gorm:"size:20;default:'client'" json:"role"`

	ProfessionalID *uint `json:"professional_id"`
	ClientID       *uint `json:"client_id"`

	NotificationPrefs map[string]bool `gorm:"serializer:json" json:"notification_prefs"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
