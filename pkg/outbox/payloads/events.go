package payloads

import (
	"github.com/google/uuid"

	"github.com/svaldeco/atelierq-backend/pkg/enums"
)

// ItemCreatedEvent announces a new item on a board.
type ItemCreatedEvent struct {
	ItemID   uuid.UUID      `json:"item_id"`
	BoardID  uuid.UUID      `json:"board_id"`
	Title    string         `json:"title"`
	ItemType enums.ItemType `json:"item_type"`
}

// AxisChange describes one dimension axis before and after normalization.
type AxisChange struct {
	Axis     string   `json:"axis"`
	Original *float64 `json:"original"`
	CM       *float64 `json:"cm"`
}

// ItemDimensionChangedEvent reports which axes moved in a committed update.
type ItemDimensionChangedEvent struct {
	ItemID uuid.UUID    `json:"item_id"`
	Axes   []AxisChange `json:"axes"`
}

// ItemUnitNormalizedEvent reports the unit in effect after an update that
// defaulted, replaced, or re-applied the dimension unit.
type ItemUnitNormalizedEvent struct {
	ItemID       uuid.UUID            `json:"item_id"`
	Unit         *enums.DimensionUnit `json:"unit"`
	PreviousUnit *enums.DimensionUnit `json:"previous_unit"`
	Defaulted    bool                 `json:"defaulted"`
}

// ItemCBMRecalculatedEvent carries the new volume, nil when incomplete.
type ItemCBMRecalculatedEvent struct {
	ItemID      uuid.UUID `json:"item_id"`
	CBM         *float64  `json:"cbm"`
	PreviousCBM *float64  `json:"previous_cbm"`
}

// ItemSourcingTypeEvent serves both the set and changed variants.
type ItemSourcingTypeEvent struct {
	ItemID       uuid.UUID           `json:"item_id"`
	SourcingType *enums.SourcingType `json:"sourcing_type"`
	Previous     *enums.SourcingType `json:"previous,omitempty"`
}

// ItemTimelineTypeDerivedEvent reports the classified timeline family.
type ItemTimelineTypeDerivedEvent struct {
	ItemID             uuid.UUID          `json:"item_id"`
	TimelineType       enums.TimelineType `json:"timeline_type"`
	AssignedByCategory string             `json:"assigned_by_category"`
	StepCount          int                `json:"step_count"`
}

// ItemFieldChangedEvent lists the non-intelligence columns that changed.
type ItemFieldChangedEvent struct {
	ItemID uuid.UUID `json:"item_id"`
	Fields []string  `json:"fields"`
}

// ItemRevisionIncrementedEvent reports a specification revision bump.
type ItemRevisionIncrementedEvent struct {
	ItemID      uuid.UUID `json:"item_id"`
	Revision    int       `json:"revision"`
	OldRevision int       `json:"old_revision"`
}

// ItemBidsMarkedStaleEvent lists bids invalidated by a revision bump.
type ItemBidsMarkedStaleEvent struct {
	ItemID   uuid.UUID   `json:"item_id"`
	Revision int         `json:"revision"`
	BidIDs   []uuid.UUID `json:"bid_ids"`
}

// ItemDeliveryRecalcRequestedEvent asks the delivery collaborator to redo
// its cost estimate after dimensions, quantity, or address moved.
type ItemDeliveryRecalcRequestedEvent struct {
	ItemID  uuid.UUID `json:"item_id"`
	BoardID uuid.UUID `json:"board_id"`
	Reason  []string  `json:"reason"`
}
