package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	dbtypes "github.com/svaldeco/atelierq-backend/pkg/db/types"
	"github.com/svaldeco/atelierq-backend/pkg/enums"
)

// MetadataKeyRfqRevision is the metadata entry holding the current RFQ
// specification revision. Defaults to 1 for items that never incremented.
const MetadataKeyRfqRevision = "rfq_revision_current"

// Item is a physical thing a designer describes on a board: furniture, a
// fixture, or a material destined for a request-for-quote workflow. Derived
// columns (normalized dimensions, cbm, timeline) are owned by the item
// intelligence pipeline and never written directly by callers.
type Item struct {
	ID           uuid.UUID           `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	BoardID      uuid.UUID           `gorm:"column:board_id;type:uuid;not null"`
	OwnerUserID  uuid.UUID           `gorm:"column:owner_user_id;type:uuid;not null"`
	Title        string              `gorm:"column:title;not null"`
	Description  *string             `gorm:"column:description"`
	ItemType     enums.ItemType      `gorm:"column:item_type;type:item_type;not null"`
	Status       enums.ItemStatus    `gorm:"column:status;type:item_status;not null;default:active"`
	SourcingType *enums.SourcingType `gorm:"column:sourcing_type;type:sourcing_type"`

	ProductCategory *string `gorm:"column:product_category"`
	Quantity        int     `gorm:"column:quantity;not null;default:1"`

	// Dimension intelligence. Original values keep what the designer typed,
	// normalized values are centimeters. cbm is non-null iff all three
	// normalized axes are non-null.
	DimensionWidthOriginal  *float64             `gorm:"column:dimension_width_original;type:numeric(12,4)"`
	DimensionDepthOriginal  *float64             `gorm:"column:dimension_depth_original;type:numeric(12,4)"`
	DimensionHeightOriginal *float64             `gorm:"column:dimension_height_original;type:numeric(12,4)"`
	DimensionUnitsOriginal  *enums.DimensionUnit `gorm:"column:dimension_units_original;type:dimension_unit"`
	DimensionWidthCM        *float64             `gorm:"column:dimension_width_cm;type:numeric(12,4)"`
	DimensionDepthCM        *float64             `gorm:"column:dimension_depth_cm;type:numeric(12,4)"`
	DimensionHeightCM       *float64             `gorm:"column:dimension_height_cm;type:numeric(12,4)"`
	CBM                     *float64             `gorm:"column:cbm;type:numeric(14,6)"`

	TimelineType      *enums.TimelineType `gorm:"column:timeline_type;type:timeline_type"`
	TimelineStructure *TimelineStructure  `gorm:"column:timeline_structure;type:jsonb"`

	FinishNotes     *string         `gorm:"column:finish_notes"`
	InternalNotes   *string         `gorm:"column:internal_notes"`
	DeliveryAddress *string         `gorm:"column:delivery_address"`
	Tags            pq.StringArray  `gorm:"column:tags;type:text[];not null;default:ARRAY[]::text[]"`
	Metadata        dbtypes.JSONMap `gorm:"column:metadata;type:jsonb;not null;default:'{}'"`

	// Version is a change-audit sequence, not an optimistic lock token.
	Version   int       `gorm:"column:version;not null;default:1"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

// RfqRevision reads the current specification revision, defaulting to 1.
func (i *Item) RfqRevision() int {
	if i.Metadata == nil {
		return 1
	}
	if rev, ok := i.Metadata.Int(MetadataKeyRfqRevision); ok && rev > 0 {
		return rev
	}
	return 1
}

// SetRfqRevision stores the revision counter in the metadata document.
func (i *Item) SetRfqRevision(rev int) {
	if i.Metadata == nil {
		i.Metadata = dbtypes.JSONMap{}
	}
	i.Metadata[MetadataKeyRfqRevision] = rev
}
