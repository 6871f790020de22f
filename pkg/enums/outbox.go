package enums

import "fmt"

// OutboxAggregateType maps to the aggregate_type enum in Postgres.
type OutboxAggregateType string

const (
	AggregateItem         OutboxAggregateType = "item"
	AggregateBoard        OutboxAggregateType = "board"
	AggregateRfqRoute     OutboxAggregateType = "rfq_route"
	AggregateBid          OutboxAggregateType = "bid"
	AggregateNotification OutboxAggregateType = "notification"
)

var validAggregateTypes = []OutboxAggregateType{
	AggregateItem,
	AggregateBoard,
	AggregateRfqRoute,
	AggregateBid,
	AggregateNotification,
}

// IsValid reports whether the value matches the canonical aggregate_type enum.
func (a OutboxAggregateType) IsValid() bool {
	for _, candidate := range validAggregateTypes {
		if candidate == a {
			return true
		}
	}
	return false
}

// ParseOutboxAggregateType converts raw input into OutboxAggregateType.
func ParseOutboxAggregateType(value string) (OutboxAggregateType, error) {
	for _, candidate := range validAggregateTypes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid aggregate type %q", value)
}

// OutboxEventType maps to the event_type enum in Postgres.
type OutboxEventType string

const (
	EventItemCreated                   OutboxEventType = "item_created"
	EventItemDimensionChanged          OutboxEventType = "item_dimension_changed"
	EventItemUnitNormalized            OutboxEventType = "item_unit_normalized"
	EventItemCBMRecalculated           OutboxEventType = "item_cbm_recalculated"
	EventItemSourcingTypeSet           OutboxEventType = "item_sourcing_type_set"
	EventItemSourcingTypeChanged       OutboxEventType = "item_sourcing_type_changed"
	EventItemTimelineTypeDerived       OutboxEventType = "item_timeline_type_derived"
	EventItemTimelineStructureAssigned OutboxEventType = "item_timeline_structure_assigned"
	EventItemFieldChanged              OutboxEventType = "item_field_changed"
	EventItemRevisionIncremented       OutboxEventType = "item_revision_incremented"
	EventItemBidsMarkedStale           OutboxEventType = "item_bids_marked_stale"
	EventItemDeliveryRecalcRequested   OutboxEventType = "item_delivery_recalc_requested"
)

var validOutboxEventTypes = []OutboxEventType{
	EventItemCreated,
	EventItemDimensionChanged,
	EventItemUnitNormalized,
	EventItemCBMRecalculated,
	EventItemSourcingTypeSet,
	EventItemSourcingTypeChanged,
	EventItemTimelineTypeDerived,
	EventItemTimelineStructureAssigned,
	EventItemFieldChanged,
	EventItemRevisionIncremented,
	EventItemBidsMarkedStale,
	EventItemDeliveryRecalcRequested,
}

// IsValid reports whether the value matches the canonical event_type enum.
func (e OutboxEventType) IsValid() bool {
	for _, candidate := range validOutboxEventTypes {
		if candidate == e {
			return true
		}
	}
	return false
}

// ParseOutboxEventType converts raw input into OutboxEventType.
func ParseOutboxEventType(value string) (OutboxEventType, error) {
	for _, candidate := range validOutboxEventTypes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid event type %q", value)
}
