package models

import "time"

type Appointment struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	TenantID string `gorm:"size:36;index;not null" json:"tenant_id"`

	ProfessionalID uint `gorm:"index" json:"professional_id"`
	ServiceID      uint `json:"service_id"`

	Title string `gorm:"size:100" json:"title"`

	ClientID    *uint  `json:"client_id"`
	ClientName  string `gorm:"size:100" json:"client_name"`
	ClientPhone string `gorm:"size:20" json:"client_phone"`

	StartTime time.Time `json:"start_time"`
	EndTime   time.Time `json:"end_time"`

	Status string `gorm:"size:20;default:'scheduled'" json:"status"`

	Notes       string     `gorm:"size:255" json:"notes"`
	CancelledAt *time.Time `json:"cancelled_at"`
	CompletedAt *time.Time `json:"completed_at"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
