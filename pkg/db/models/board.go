package models

import (
	"time"

	"github.com/google/uuid"
)

// Board groups a designer's items for one project. The sourcing category is
// the classifier fallback for items without their own product category.
type Board struct {
	ID               uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	OwnerUserID      uuid.UUID `gorm:"column:owner_user_id;type:uuid;not null"`
	Name             string    `gorm:"column:name;not null"`
	SourcingCategory *string   `gorm:"column:sourcing_category"`
	DeliveryCity     *string   `gorm:"column:delivery_city"`
	DeliveryCountry  *string   `gorm:"column:delivery_country"`
	CreatedAt        time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt        time.Time `gorm:"column:updated_at;autoUpdateTime"`
}
