package enums

import "fmt"

// ItemStatus represents the lifecycle state of a board item.
type ItemStatus string

const (
	ItemStatusDraft    ItemStatus = "draft"
	ItemStatusActive   ItemStatus = "active"
	ItemStatusArchived ItemStatus = "archived"
)

var validItemStatuses = []ItemStatus{
	ItemStatusDraft,
	ItemStatusActive,
	ItemStatusArchived,
}

// String implements fmt.Stringer.
func (s ItemStatus) String() string {
	return string(s)
}

// IsValid reports whether the value is a known ItemStatus.
func (s ItemStatus) IsValid() bool {
	for _, candidate := range validItemStatuses {
		if candidate == s {
			return true
		}
	}
	return false
}

// ParseItemStatus converts raw input into an ItemStatus.
func ParseItemStatus(value string) (ItemStatus, error) {
	for _, candidate := range validItemStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid item status %q", value)
}

// ItemStatusValues lists the accepted wire values.
func ItemStatusValues() []string {
	values := make([]string, len(validItemStatuses))
	for i, candidate := range validItemStatuses {
		values[i] = string(candidate)
	}
	return values
}

// ItemType classifies what kind of physical thing an item describes.
type ItemType string

const (
	ItemTypeFurniture ItemType = "furniture"
	ItemTypeFixture   ItemType = "fixture"
	ItemTypeMaterial  ItemType = "material"
	ItemTypeAccessory ItemType = "accessory"
)

var validItemTypes = []ItemType{
	ItemTypeFurniture,
	ItemTypeFixture,
	ItemTypeMaterial,
	ItemTypeAccessory,
}

// String implements fmt.Stringer.
func (t ItemType) String() string {
	return string(t)
}

// IsValid reports whether the value is a known ItemType.
func (t ItemType) IsValid() bool {
	for _, candidate := range validItemTypes {
		if candidate == t {
			return true
		}
	}
	return false
}

// ParseItemType converts raw input into an ItemType.
func ParseItemType(value string) (ItemType, error) {
	for _, candidate := range validItemTypes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid item type %q", value)
}

// ItemTypeValues lists the accepted wire values.
func ItemTypeValues() []string {
	values := make([]string, len(validItemTypes))
	for i, candidate := range validItemTypes {
		values[i] = string(candidate)
	}
	return values
}

// SourcingType captures how an item is expected to be produced or acquired.
type SourcingType string

const (
	SourcingTypeCustomMade     SourcingType = "custom_made"
	SourcingTypeSourced        SourcingType = "sourced"
	SourcingTypeClientSupplied SourcingType = "client_supplied"
)

var validSourcingTypes = []SourcingType{
	SourcingTypeCustomMade,
	SourcingTypeSourced,
	SourcingTypeClientSupplied,
}

// String implements fmt.Stringer.
func (s SourcingType) String() string {
	return string(s)
}

// IsValid reports whether the value is a known SourcingType.
func (s SourcingType) IsValid() bool {
	for _, candidate := range validSourcingTypes {
		if candidate == s {
			return true
		}
	}
	return false
}

// ParseSourcingType converts raw input into a SourcingType.
func ParseSourcingType(value string) (SourcingType, error) {
	for _, candidate := range validSourcingTypes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid sourcing type %q", value)
}

// SourcingTypeValues lists the accepted wire values.
func SourcingTypeValues() []string {
	values := make([]string, len(validSourcingTypes))
	for i, candidate := range validSourcingTypes {
		values[i] = string(candidate)
	}
	return values
}

// DimensionUnit is the unit a designer entered dimensions in.
type DimensionUnit string

const (
	DimensionUnitMillimeter DimensionUnit = "mm"
	DimensionUnitCentimeter DimensionUnit = "cm"
	DimensionUnitMeter      DimensionUnit = "m"
	DimensionUnitInch       DimensionUnit = "in"
)

var validDimensionUnits = []DimensionUnit{
	DimensionUnitMillimeter,
	DimensionUnitCentimeter,
	DimensionUnitMeter,
	DimensionUnitInch,
}

// String implements fmt.Stringer.
func (u DimensionUnit) String() string {
	return string(u)
}

// IsValid reports whether the value is a known DimensionUnit.
func (u DimensionUnit) IsValid() bool {
	for _, candidate := range validDimensionUnits {
		if candidate == u {
			return true
		}
	}
	return false
}

// ParseDimensionUnit converts raw input into a DimensionUnit.
func ParseDimensionUnit(value string) (DimensionUnit, error) {
	for _, candidate := range validDimensionUnits {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid dimension unit %q", value)
}

// DimensionUnitValues lists the accepted wire values.
func DimensionUnitValues() []string {
	values := make([]string, len(validDimensionUnits))
	for i, candidate := range validDimensionUnits {
		values[i] = string(candidate)
	}
	return values
}
