package items

import "github.com/shopspring/decimal"

// CBM computes the cubic-meter volume from centimeter axes, rounded to six
// decimals. It returns nil unless all three axes are present, which keeps
// the stored cbm column in lockstep with dimension completeness.
func CBM(widthCM, depthCM, heightCM *float64) *float64 {
	if widthCM == nil || depthCM == nil || heightCM == nil {
		return nil
	}
	volume := decimal.NewFromFloat(*widthCM).
		Mul(decimal.NewFromFloat(*depthCM)).
		Mul(decimal.NewFromFloat(*heightCM)).
		Div(decimal.NewFromInt(1_000_000)).
		Round(6)
	value, _ := volume.Float64()
	return &value
}
