package items

import (
	"github.com/lib/pq"

	"github.com/svaldeco/atelierq-backend/pkg/db/models"
)

// applyDescriptive writes every non-dimension field from the patch onto the
// item, recording one delta per column that actually moved.
func applyDescriptive(item *models.Item, patch *UpdatePatch, changes *changeSet) {
	if title, ok := patch.Title.ValueOK(); ok {
		changes.record(ColumnTitle, strPtr(item.Title), strPtr(title))
		item.Title = title
	}
	if !patch.Description.IsUnset() {
		next := clearablePtr(patch.Description)
		changes.record(ColumnDescription, item.Description, next)
		item.Description = next
	}
	if itemType, ok := patch.ItemType.ValueOK(); ok {
		changes.record(ColumnItemType, strPtr(item.ItemType.String()), strPtr(itemType.String()))
		item.ItemType = itemType
	}
	if status, ok := patch.Status.ValueOK(); ok {
		changes.record(ColumnStatus, strPtr(item.Status.String()), strPtr(status.String()))
		item.Status = status
	}
	if !patch.SourcingType.IsUnset() {
		next := item.SourcingType
		if sourcing, ok := patch.SourcingType.ValueOK(); ok {
			next = &sourcing
		} else {
			next = nil
		}
		changes.record(ColumnSourcingType, sourcingTypeStr(item.SourcingType), sourcingTypeStr(next))
		item.SourcingType = next
	}
	if !patch.ProductCategory.IsUnset() {
		next := clearablePtr(patch.ProductCategory)
		changes.record(ColumnProductCategory, item.ProductCategory, next)
		item.ProductCategory = next
	}
	if quantity, ok := patch.Quantity.ValueOK(); ok {
		changes.record(ColumnQuantity, intStr(item.Quantity), intStr(quantity))
		item.Quantity = quantity
	}
	if !patch.FinishNotes.IsUnset() {
		next := clearablePtr(patch.FinishNotes)
		changes.record(ColumnFinishNotes, item.FinishNotes, next)
		item.FinishNotes = next
	}
	if !patch.InternalNotes.IsUnset() {
		next := clearablePtr(patch.InternalNotes)
		changes.record(ColumnInternalNotes, item.InternalNotes, next)
		item.InternalNotes = next
	}
	if !patch.DeliveryAddress.IsUnset() {
		next := clearablePtr(patch.DeliveryAddress)
		changes.record(ColumnDeliveryAddress, item.DeliveryAddress, next)
		item.DeliveryAddress = next
	}
	if !patch.Tags.IsUnset() {
		var next []string
		if tags, ok := patch.Tags.ValueOK(); ok {
			next = tags
		}
		changes.record(ColumnTags, tagsStr(item.Tags), tagsStr(next))
		item.Tags = pq.StringArray(next)
	}
}

// applyDimensions writes the normalized axes, the effective unit, and the
// recomputed cbm onto the item. cbm is derived after the axes land so the
// completeness invariant holds within this single pass.
func applyDimensions(item *models.Item, norm *NormalizeResult, changes *changeSet) {
	changes.record(ColumnDimensionWidthOriginal, floatStr(item.DimensionWidthOriginal), floatStr(norm.Width.Original))
	changes.record(ColumnDimensionDepthOriginal, floatStr(item.DimensionDepthOriginal), floatStr(norm.Depth.Original))
	changes.record(ColumnDimensionHeightOriginal, floatStr(item.DimensionHeightOriginal), floatStr(norm.Height.Original))
	item.DimensionWidthOriginal = norm.Width.Original
	item.DimensionDepthOriginal = norm.Depth.Original
	item.DimensionHeightOriginal = norm.Height.Original

	if norm.Unit != nil {
		changes.record(ColumnDimensionUnitsOriginal, unitStr(item.DimensionUnitsOriginal), unitStr(norm.Unit))
		item.DimensionUnitsOriginal = norm.Unit
	}

	changes.record(ColumnDimensionWidthCM, floatStr(item.DimensionWidthCM), floatStr(norm.Width.CM))
	changes.record(ColumnDimensionDepthCM, floatStr(item.DimensionDepthCM), floatStr(norm.Depth.CM))
	changes.record(ColumnDimensionHeightCM, floatStr(item.DimensionHeightCM), floatStr(norm.Height.CM))
	item.DimensionWidthCM = norm.Width.CM
	item.DimensionDepthCM = norm.Depth.CM
	item.DimensionHeightCM = norm.Height.CM

	next := CBM(item.DimensionWidthCM, item.DimensionDepthCM, item.DimensionHeightCM)
	changes.record(ColumnCBM, floatStr(item.CBM), floatStr(next))
	item.CBM = next
}

func clearablePtr(field Field[string]) *string {
	if value, ok := field.ValueOK(); ok {
		return strPtr(value)
	}
	return nil
}
