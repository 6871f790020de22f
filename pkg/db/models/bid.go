package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/svaldeco/atelierq-backend/pkg/enums"
)

// Bid is a supplier quote submitted against a specific item revision. When
// the item's specification revision moves past RevisionAtSubmit the bid is
// flagged stale and the supplier must re-submit.
type Bid struct {
	ID               uuid.UUID       `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	ItemID           uuid.UUID       `gorm:"column:item_id;type:uuid;not null;index"`
	SupplierID       uuid.UUID       `gorm:"column:supplier_id;type:uuid;not null"`
	AmountCents      int64           `gorm:"column:amount_cents;not null"`
	Currency         string          `gorm:"column:currency;not null;default:USD"`
	RevisionAtSubmit *int            `gorm:"column:revision_at_submit"`
	Status           enums.BidStatus `gorm:"column:status;type:bid_status;not null;default:submitted"`
	SubmittedAt      time.Time       `gorm:"column:submitted_at;autoCreateTime"`
	UpdatedAt        time.Time       `gorm:"column:updated_at;autoUpdateTime"`
}
