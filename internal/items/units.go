package items

import "github.com/svaldeco/atelierq-backend/pkg/enums"

// ToCM converts a dimension value into centimeters. No rounding is applied
// here; only the stored CBM value is rounded.
func ToCM(value float64, unit enums.DimensionUnit) float64 {
	switch unit {
	case enums.DimensionUnitMillimeter:
		return value / 10
	case enums.DimensionUnitMeter:
		return value * 100
	case enums.DimensionUnitInch:
		return value * 2.54
	default:
		return value
	}
}
