package models

import "time"

// Sale is a point-of-sale record only. Charging the customer is
// outside this system.
type Sale struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	TenantID string `gorm:"size:36;index;not null" json:"tenant_id"`

	UserID uint `json:"user_id"`

	Items []SaleItem `gorm:"constraint:OnDelete:CASCADE" json:"items"`
	Total float64    `json:"total"`

	CreatedAt time.Time `json:"created_at"`
}

type SaleItem struct {
	ID     uint `gorm:"primaryKey" json:"id"`
	SaleID uint `gorm:"index" json:"sale_id"`

	ProductID uint    `json:"product_id"`
	Quantity  int     `json:"quantity"`
	UnitPrice float64 `json:"unit_price"`
}
