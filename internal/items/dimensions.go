package items

import (
	"fmt"
	"strings"

	"github.com/svaldeco/atelierq-backend/pkg/db/models"
	"github.com/svaldeco/atelierq-backend/pkg/enums"
	"github.com/svaldeco/atelierq-backend/pkg/errors"
)

// Range-check stages reported in DimensionOutOfRange details.
const (
	StagePreConversion  = "pre_conversion"
	StagePostConversion = "post_conversion"
)

const (
	AxisWidth  = "width"
	AxisDepth  = "depth"
	AxisHeight = "height"
)

// AxisResult is the normalized outcome for a single axis.
type AxisResult struct {
	Original *float64
	CM       *float64
	Changed  bool
}

// NormalizeResult carries the full outcome of a dimension pass plus the
// event flags the orchestrator consumes. Nothing here is persisted; the
// caller applies it.
type NormalizeResult struct {
	Width  AxisResult
	Depth  AxisResult
	Height AxisResult

	Unit          *enums.DimensionUnit
	UnitChanged   bool
	UnitDefaulted bool

	// DimensionChanged means at least one axis value or clear took effect.
	// UnitNormalized means the unit was defaulted, replaced, or an axis
	// value changed under it, which warrants a unit_normalized event.
	DimensionChanged bool
	UnitNormalized   bool
}

type rangeViolation struct {
	Axis  string
	Value float64
	Stage string
}

// Normalizer converts and range-checks dimension input against stored state.
type Normalizer struct {
	maxDimensionCM float64
}

func NewNormalizer(maxDimensionCM float64) *Normalizer {
	return &Normalizer{maxDimensionCM: maxDimensionCM}
}

// Normalize resolves the effective unit, converts every touched axis to
// centimeters, and re-normalizes untouched axes when the unit itself
// changed so original/cm pairs stay consistent. All range violations are
// collected before anything is reported.
func (n *Normalizer) Normalize(item *models.Item, patch *UpdatePatch) (*NormalizeResult, error) {
	anyAxisValue := patch.DimensionWidth.IsSet() || patch.DimensionDepth.IsSet() || patch.DimensionHeight.IsSet()

	unit, unitChanged, unitDefaulted := n.resolveUnit(item, patch, anyAxisValue)

	result := &NormalizeResult{Unit: unit, UnitChanged: unitChanged, UnitDefaulted: unitDefaulted}

	var violations []rangeViolation
	var valueChanged bool
	for _, axis := range []struct {
		name     string
		field    Field[float64]
		original *float64
		cm       *float64
		out      *AxisResult
	}{
		{AxisWidth, patch.DimensionWidth, item.DimensionWidthOriginal, item.DimensionWidthCM, &result.Width},
		{AxisDepth, patch.DimensionDepth, item.DimensionDepthOriginal, item.DimensionDepthCM, &result.Depth},
		{AxisHeight, patch.DimensionHeight, item.DimensionHeightOriginal, item.DimensionHeightCM, &result.Height},
	} {
		outcome := n.normalizeAxis(axis.name, axis.field, axis.original, axis.cm, unit, unitChanged, &violations)
		*axis.out = outcome
		if outcome.Changed {
			result.DimensionChanged = true
			if outcome.Original != nil {
				valueChanged = true
			}
		}
	}
	if len(violations) > 0 {
		return nil, rangeError(violations)
	}

	result.UnitNormalized = unitDefaulted || unitChanged || valueChanged
	return result, nil
}

// resolveUnit picks the unit for this pass: an explicitly supplied unit wins,
// then the unit already on file, then cm when axis values arrived without one.
func (n *Normalizer) resolveUnit(item *models.Item, patch *UpdatePatch, anyAxisValue bool) (*enums.DimensionUnit, bool, bool) {
	if unit, ok := patch.DimensionUnits.ValueOK(); ok {
		changed := item.DimensionUnitsOriginal == nil || *item.DimensionUnitsOriginal != unit
		return &unit, changed, false
	}
	if item.DimensionUnitsOriginal != nil {
		stored := *item.DimensionUnitsOriginal
		return &stored, false, false
	}
	if anyAxisValue {
		defaulted := enums.DimensionUnitCentimeter
		return &defaulted, true, true
	}
	return nil, false, false
}

func (n *Normalizer) normalizeAxis(name string, field Field[float64], storedOriginal, storedCM *float64, unit *enums.DimensionUnit, unitChanged bool, violations *[]rangeViolation) AxisResult {
	switch field.State() {
	case FieldClear:
		return AxisResult{Changed: storedOriginal != nil || storedCM != nil}
	case FieldSet:
		value := field.Value()
		if value <= 0 || value > n.maxDimensionCM {
			*violations = append(*violations, rangeViolation{Axis: name, Value: value, Stage: StagePreConversion})
			return AxisResult{}
		}
		cm := ToCM(value, *unit)
		if cm <= 0 || cm > n.maxDimensionCM {
			*violations = append(*violations, rangeViolation{Axis: name, Value: cm, Stage: StagePostConversion})
			return AxisResult{}
		}
		changed := storedOriginal == nil || *storedOriginal != value || storedCM == nil || *storedCM != cm
		return AxisResult{Original: &value, CM: &cm, Changed: changed}
	default:
		// Axis untouched. A unit change still re-normalizes its cm value
		// from the stored original so the pair never drifts apart.
		if storedOriginal == nil {
			return AxisResult{CM: storedCM, Changed: false}
		}
		original := *storedOriginal
		if unitChanged && unit != nil {
			cm := ToCM(original, *unit)
			if cm <= 0 || cm > n.maxDimensionCM {
				*violations = append(*violations, rangeViolation{Axis: name, Value: cm, Stage: StagePostConversion})
				return AxisResult{}
			}
			changed := storedCM == nil || *storedCM != cm
			return AxisResult{Original: &original, CM: &cm, Changed: changed}
		}
		return AxisResult{Original: &original, CM: storedCM, Changed: false}
	}
}

func rangeError(violations []rangeViolation) error {
	parts := make([]string, len(violations))
	details := make([]map[string]any, len(violations))
	for i, v := range violations {
		parts[i] = fmt.Sprintf("%s=%g (%s)", v.Axis, v.Value, v.Stage)
		details[i] = map[string]any{"axis": v.Axis, "value": v.Value, "stage": v.Stage}
	}
	return errors.Newf(errors.CodeOutOfRange, "dimension out of range: %s", strings.Join(parts, ", ")).
		WithDetails(map[string]any{"axes": details})
}
