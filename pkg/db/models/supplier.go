package models

import (
	"time"

	"github.com/google/uuid"
)

// Supplier is a vendor reachable through RFQ routing.
type Supplier struct {
	ID          uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	CompanyName string    `gorm:"column:company_name;not null"`
	Email       string    `gorm:"column:email;not null"`
	IsActive    bool      `gorm:"column:is_active;not null;default:true"`
	CreatedAt   time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time `gorm:"column:updated_at;autoUpdateTime"`
}
