package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/svaldeco/atelierq-backend/pkg/enums"
)

// RfqRoute tracks one supplier's participation in an item's request for
// quote. An RFQ is active while any route sits in queued, sent, viewed, or
// bid_submitted.
type RfqRoute struct {
	ID         uuid.UUID            `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	ItemID     uuid.UUID            `gorm:"column:item_id;type:uuid;not null;index"`
	SupplierID uuid.UUID            `gorm:"column:supplier_id;type:uuid;not null"`
	Status     enums.RfqRouteStatus `gorm:"column:status;type:rfq_route_status;not null;default:queued"`
	BoardID    *uuid.UUID           `gorm:"column:board_id;type:uuid"`
	CreatedAt  time.Time            `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt  time.Time            `gorm:"column:updated_at;autoUpdateTime"`
}
