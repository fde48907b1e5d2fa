package models

import (
	"time"

	"github.com/AgendaPlusApp/agenda-plus/internal/schedule"
)

// Professional is a schedulable staff member. The weekly schedule and
// its exceptions live on the row as JSON and are read and written
// atomically with it.
type Professional struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	TenantID string `gorm:"size:36;index;not null" json:"tenant_id"`

	Name      string `gorm:"size:100;not null" json:"name"`
	Specialty string `gorm:"size:100" json:"specialty"`

	Schedule   schedule.WeeklySchedule `gorm:"serializer:json" json:"schedule"`
	Exceptions []schedule.Exception    `gorm:"serializer:json" json:"exceptions"`

	ServiceIDs []uint `gorm:"serializer:json" json:"service_ids"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// OffersService reports whether the professional performs the given
// service. An empty list means no restriction: every service of the
// tenant is offered.
func (p *Professional) OffersService(serviceID uint) bool {
	if len(p.ServiceIDs) == 0 {
		return true
	}
	for _, id := range p.ServiceIDs {
		if id == serviceID {
			return true
		}
	}
	return false
}
