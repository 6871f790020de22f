package items

import (
	"math"
	"testing"

	"github.com/svaldeco/atelierq-backend/pkg/enums"
)

func TestToCM(t *testing.T) {
	cases := []struct {
		name  string
		value float64
		unit  enums.DimensionUnit
		want  float64
	}{
		{"millimeters", 100, enums.DimensionUnitMillimeter, 10},
		{"centimetersIdentity", 42.5, enums.DimensionUnitCentimeter, 42.5},
		{"meters", 1.2, enums.DimensionUnitMeter, 120},
		{"inches", 10, enums.DimensionUnitInch, 25.4},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := ToCM(tc.value, tc.unit); math.Abs(got-tc.want) > 1e-9 {
				t.Fatalf("ToCM(%v, %s) = %v, want %v", tc.value, tc.unit, got, tc.want)
			}
		})
	}
}
