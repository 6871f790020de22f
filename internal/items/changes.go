package items

import (
	"strconv"
	"strings"

	"github.com/svaldeco/atelierq-backend/pkg/db/models"
	"github.com/svaldeco/atelierq-backend/pkg/enums"
)

// Storage column names used for audit rows and change classification. The
// audit trail records changes against columns, not wire field names, so a
// single dimension edit produces separate original and cm rows.
const (
	ColumnTitle                   = "title"
	ColumnDescription             = "description"
	ColumnItemType                = "item_type"
	ColumnStatus                  = "status"
	ColumnSourcingType            = "sourcing_type"
	ColumnProductCategory         = "product_category"
	ColumnQuantity                = "quantity"
	ColumnDimensionWidthOriginal  = "dimension_width_original"
	ColumnDimensionDepthOriginal  = "dimension_depth_original"
	ColumnDimensionHeightOriginal = "dimension_height_original"
	ColumnDimensionUnitsOriginal  = "dimension_units_original"
	ColumnDimensionWidthCM        = "dimension_width_cm"
	ColumnDimensionDepthCM        = "dimension_depth_cm"
	ColumnDimensionHeightCM       = "dimension_height_cm"
	ColumnCBM                     = "cbm"
	ColumnTimelineType            = "timeline_type"
	ColumnTimelineStructure       = "timeline_structure"
	ColumnFinishNotes             = "finish_notes"
	ColumnInternalNotes           = "internal_notes"
	ColumnDeliveryAddress         = "delivery_address"
	ColumnTags                    = "tags"
)

var intelligenceColumns = map[string]struct{}{
	ColumnSourcingType:            {},
	ColumnDimensionWidthOriginal:  {},
	ColumnDimensionDepthOriginal:  {},
	ColumnDimensionHeightOriginal: {},
	ColumnDimensionUnitsOriginal:  {},
	ColumnDimensionWidthCM:        {},
	ColumnDimensionDepthCM:        {},
	ColumnDimensionHeightCM:       {},
	ColumnCBM:                     {},
	ColumnTimelineType:            {},
	ColumnTimelineStructure:       {},
}

func isIntelligenceColumn(column string) bool {
	_, ok := intelligenceColumns[column]
	return ok
}

// fieldChange is one recorded column delta, stringified for the audit row.
type fieldChange struct {
	Column string
	Old    *string
	New    *string
}

// changeSet accumulates column deltas in application order. Recording a
// no-difference delta is a no-op so callers can record unconditionally.
type changeSet struct {
	changes []fieldChange
}

func (c *changeSet) record(column string, old, new *string) {
	if equalStrPtr(old, new) {
		return
	}
	c.changes = append(c.changes, fieldChange{Column: column, Old: old, New: new})
}

func (c *changeSet) columns() []string {
	columns := make([]string, len(c.changes))
	for i, change := range c.changes {
		columns[i] = change.Column
	}
	return columns
}

func (c *changeSet) contains(column string) bool {
	for _, change := range c.changes {
		if change.Column == column {
			return true
		}
	}
	return false
}

func (c *changeSet) empty() bool {
	return len(c.changes) == 0
}

// auditRecords materializes one append-only row per recorded delta.
func (c *changeSet) auditRecords(item *models.Item, editor Editor) []models.ItemEditRecord {
	records := make([]models.ItemEditRecord, len(c.changes))
	for i, change := range c.changes {
		records[i] = models.ItemEditRecord{
			ItemID:       item.ID,
			FieldName:    change.Column,
			OldValue:     change.Old,
			NewValue:     change.New,
			EditorUserID: editor.UserID,
			EditorRole:   editor.Role,
		}
	}
	return records
}

func equalStrPtr(a, b *string) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

func strPtr(value string) *string {
	return &value
}

func floatStr(value *float64) *string {
	if value == nil {
		return nil
	}
	return strPtr(strconv.FormatFloat(*value, 'f', -1, 64))
}

func intStr(value int) *string {
	return strPtr(strconv.Itoa(value))
}

func sourcingTypeStr(value *enums.SourcingType) *string {
	if value == nil {
		return nil
	}
	return strPtr(value.String())
}

func unitStr(value *enums.DimensionUnit) *string {
	if value == nil {
		return nil
	}
	return strPtr(value.String())
}

func timelineTypeStr(value *enums.TimelineType) *string {
	if value == nil {
		return nil
	}
	return strPtr(value.String())
}

func tagsStr(tags []string) *string {
	if len(tags) == 0 {
		return nil
	}
	return strPtr(strings.Join(tags, ","))
}
