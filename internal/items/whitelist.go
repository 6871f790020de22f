package items

import "github.com/svaldeco/atelierq-backend/pkg/enums"

// Wire names of the updatable fields. Anything outside this set is rejected
// before any other processing happens.
const (
	FieldTitle           = "title"
	FieldDescription     = "description"
	FieldItemType        = "item_type"
	FieldStatus          = "status"
	FieldSourcingType    = "sourcing_type"
	FieldProductCategory = "product_category"
	FieldQuantity        = "quantity"
	FieldDimensionWidth  = "dimension_width"
	FieldDimensionDepth  = "dimension_depth"
	FieldDimensionHeight = "dimension_height"
	FieldDimensionUnits  = "dimension_units_original"
	FieldFinishNotes     = "finish_notes"
	FieldInternalNotes   = "internal_notes"
	FieldDeliveryAddress = "delivery_address"
	FieldTags            = "tags"
)

type fieldKind int

const (
	kindString fieldKind = iota
	kindEnum
	kindNumber
	kindInt
	kindStringList
)

// FieldRule describes how a single whitelisted field is sanitized.
type FieldRule struct {
	Kind      fieldKind
	MaxLength int // 0 means unbounded
	Allowed   []string
	Clearable bool
}

// Whitelist is the immutable field→rule table handed to the validator at
// construction time.
type Whitelist map[string]FieldRule

// DefaultWhitelist returns the canonical update whitelist.
func DefaultWhitelist() Whitelist {
	return Whitelist{
		FieldTitle:           {Kind: kindString, MaxLength: 500},
		FieldDescription:     {Kind: kindString, Clearable: true},
		FieldItemType:        {Kind: kindEnum, Allowed: enums.ItemTypeValues()},
		FieldStatus:          {Kind: kindEnum, Allowed: enums.ItemStatusValues()},
		FieldSourcingType:    {Kind: kindEnum, Allowed: enums.SourcingTypeValues(), Clearable: true},
		FieldProductCategory: {Kind: kindString, MaxLength: 255, Clearable: true},
		FieldQuantity:        {Kind: kindInt},
		FieldDimensionWidth:  {Kind: kindNumber, Clearable: true},
		FieldDimensionDepth:  {Kind: kindNumber, Clearable: true},
		FieldDimensionHeight: {Kind: kindNumber, Clearable: true},
		FieldDimensionUnits:  {Kind: kindEnum, Allowed: enums.DimensionUnitValues()},
		FieldFinishNotes:     {Kind: kindString, MaxLength: 5000, Clearable: true},
		FieldInternalNotes:   {Kind: kindString, MaxLength: 5000, Clearable: true},
		FieldDeliveryAddress: {Kind: kindString, MaxLength: 500, Clearable: true},
		FieldTags:            {Kind: kindStringList, Clearable: true},
	}
}
