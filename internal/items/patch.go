package items

import (
	"encoding/json"
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/svaldeco/atelierq-backend/pkg/enums"
	"github.com/svaldeco/atelierq-backend/pkg/errors"
)

// UpdatePatch is the typed form of an item update payload. Every member is a
// tri-state field so downstream stages can tell an omitted field from an
// explicit clear.
type UpdatePatch struct {
	Title           Field[string]
	Description     Field[string]
	ItemType        Field[enums.ItemType]
	Status          Field[enums.ItemStatus]
	SourcingType    Field[enums.SourcingType]
	ProductCategory Field[string]
	Quantity        Field[int]
	DimensionWidth  Field[float64]
	DimensionDepth  Field[float64]
	DimensionHeight Field[float64]
	DimensionUnits  Field[enums.DimensionUnit]
	FinishNotes     Field[string]
	InternalNotes   Field[string]
	DeliveryAddress Field[string]
	Tags            Field[[]string]
}

// IsEmpty reports whether the payload carried no whitelisted fields at all.
func (p *UpdatePatch) IsEmpty() bool {
	return p.Title.IsUnset() &&
		p.Description.IsUnset() &&
		p.ItemType.IsUnset() &&
		p.Status.IsUnset() &&
		p.SourcingType.IsUnset() &&
		p.ProductCategory.IsUnset() &&
		p.Quantity.IsUnset() &&
		p.DimensionWidth.IsUnset() &&
		p.DimensionDepth.IsUnset() &&
		p.DimensionHeight.IsUnset() &&
		p.DimensionUnits.IsUnset() &&
		p.FinishNotes.IsUnset() &&
		p.InternalNotes.IsUnset() &&
		p.DeliveryAddress.IsUnset() &&
		p.Tags.IsUnset()
}

// TouchesDimensions reports whether any dimension axis or the unit field was
// present in the payload.
func (p *UpdatePatch) TouchesDimensions() bool {
	return !p.DimensionWidth.IsUnset() ||
		!p.DimensionDepth.IsUnset() ||
		!p.DimensionHeight.IsUnset() ||
		!p.DimensionUnits.IsUnset()
}

// Validator sanitizes raw update payloads against an immutable whitelist.
type Validator struct {
	rules Whitelist
}

func NewValidator(rules Whitelist) *Validator {
	return &Validator{rules: rules}
}

// ParsePatch rejects the whole payload when it contains any non-whitelisted
// key, then coerces the remaining fields into a typed patch. Unknown-field
// rejection runs first so callers never partially process a bad payload.
func (v *Validator) ParsePatch(payload map[string]any) (*UpdatePatch, error) {
	var unknown []string
	for key := range payload {
		if _, ok := v.rules[key]; !ok {
			unknown = append(unknown, key)
		}
	}
	if len(unknown) > 0 {
		sort.Strings(unknown)
		return nil, errors.Newf(errors.CodeUnknownField, "unknown fields: %s", strings.Join(unknown, ", ")).
			WithDetails(map[string]any{"unknown_fields": unknown})
	}

	patch := &UpdatePatch{}
	for name, raw := range payload {
		if err := v.assign(patch, name, raw); err != nil {
			return nil, err
		}
	}
	return patch, nil
}

func (v *Validator) assign(patch *UpdatePatch, name string, raw any) error {
	rule := v.rules[name]
	switch name {
	case FieldTitle:
		field, err := v.stringField(name, rule, raw)
		if err != nil {
			return err
		}
		if field.IsClear() {
			return errors.New(errors.CodeValidation, "title cannot be empty").
				WithDetails(map[string]any{"field": FieldTitle})
		}
		patch.Title = field
	case FieldDescription:
		field, err := v.stringField(name, rule, raw)
		if err != nil {
			return err
		}
		patch.Description = field
	case FieldItemType:
		value, clear, err := v.enumField(name, rule, raw)
		if err != nil {
			return err
		}
		if clear {
			return invalidEnum(name, rule.Allowed)
		}
		patch.ItemType = SetField(enums.ItemType(value))
	case FieldStatus:
		value, clear, err := v.enumField(name, rule, raw)
		if err != nil {
			return err
		}
		if clear {
			return invalidEnum(name, rule.Allowed)
		}
		patch.Status = SetField(enums.ItemStatus(value))
	case FieldSourcingType:
		value, clear, err := v.enumField(name, rule, raw)
		if err != nil {
			return err
		}
		if clear {
			patch.SourcingType = ClearField[enums.SourcingType]()
		} else {
			patch.SourcingType = SetField(enums.SourcingType(value))
		}
	case FieldProductCategory:
		field, err := v.stringField(name, rule, raw)
		if err != nil {
			return err
		}
		patch.ProductCategory = field
	case FieldQuantity:
		field, err := v.intField(name, raw)
		if err != nil {
			return err
		}
		patch.Quantity = field
	case FieldDimensionWidth:
		field, err := v.numberField(name, raw)
		if err != nil {
			return err
		}
		patch.DimensionWidth = field
	case FieldDimensionDepth:
		field, err := v.numberField(name, raw)
		if err != nil {
			return err
		}
		patch.DimensionDepth = field
	case FieldDimensionHeight:
		field, err := v.numberField(name, raw)
		if err != nil {
			return err
		}
		patch.DimensionHeight = field
	case FieldDimensionUnits:
		value, clear, err := v.enumField(name, rule, raw)
		if err != nil {
			return err
		}
		if clear {
			return invalidEnum(name, rule.Allowed)
		}
		patch.DimensionUnits = SetField(enums.DimensionUnit(value))
	case FieldFinishNotes:
		field, err := v.stringField(name, rule, raw)
		if err != nil {
			return err
		}
		patch.FinishNotes = field
	case FieldInternalNotes:
		field, err := v.stringField(name, rule, raw)
		if err != nil {
			return err
		}
		patch.InternalNotes = field
	case FieldDeliveryAddress:
		field, err := v.stringField(name, rule, raw)
		if err != nil {
			return err
		}
		patch.DeliveryAddress = field
	case FieldTags:
		field, err := v.tagsField(name, raw)
		if err != nil {
			return err
		}
		patch.Tags = field
	}
	return nil
}

func (v *Validator) stringField(name string, rule FieldRule, raw any) (Field[string], error) {
	if raw == nil {
		return ClearField[string](), nil
	}
	value, ok := raw.(string)
	if !ok {
		return Field[string]{}, errors.Newf(errors.CodeValidation, "field %s must be a string", name).
			WithDetails(map[string]any{"field": name})
	}
	value = strings.TrimSpace(value)
	if value == "" {
		return ClearField[string](), nil
	}
	if rule.MaxLength > 0 && len(value) > rule.MaxLength {
		return Field[string]{}, errors.Newf(errors.CodeMaxLength, "field %s exceeds %d characters", name, rule.MaxLength).
			WithDetails(map[string]any{"field": name, "limit": rule.MaxLength})
	}
	return SetField(value), nil
}

func (v *Validator) enumField(name string, rule FieldRule, raw any) (string, bool, error) {
	if raw == nil {
		return "", true, nil
	}
	value, ok := raw.(string)
	if !ok {
		return "", false, invalidEnum(name, rule.Allowed)
	}
	value = strings.ToLower(strings.TrimSpace(value))
	if value == "" {
		return "", true, nil
	}
	for _, allowed := range rule.Allowed {
		if value == allowed {
			return value, false, nil
		}
	}
	return "", false, invalidEnum(name, rule.Allowed)
}

// numberField accepts JSON numbers and numeric strings. Clients have been
// observed sending dimensions as strings, so both forms are valid input.
func (v *Validator) numberField(name string, raw any) (Field[float64], error) {
	if raw == nil {
		return ClearField[float64](), nil
	}
	switch value := raw.(type) {
	case float64:
		return SetField(value), nil
	case int:
		return SetField(float64(value)), nil
	case int64:
		return SetField(float64(value)), nil
	case json.Number:
		parsed, err := value.Float64()
		if err != nil {
			return Field[float64]{}, notNumeric(name)
		}
		return SetField(parsed), nil
	case string:
		trimmed := strings.TrimSpace(value)
		if trimmed == "" {
			return ClearField[float64](), nil
		}
		parsed, err := strconv.ParseFloat(trimmed, 64)
		if err != nil {
			return Field[float64]{}, notNumeric(name)
		}
		return SetField(parsed), nil
	default:
		return Field[float64]{}, notNumeric(name)
	}
}

func (v *Validator) intField(name string, raw any) (Field[int], error) {
	field, err := v.numberField(name, raw)
	if err != nil {
		return Field[int]{}, err
	}
	if field.IsClear() {
		return Field[int]{}, errors.Newf(errors.CodeValidation, "field %s cannot be empty", name).
			WithDetails(map[string]any{"field": name})
	}
	value := field.Value()
	if value != math.Trunc(value) || value < 1 {
		return Field[int]{}, errors.Newf(errors.CodeValidation, "field %s must be a positive integer", name).
			WithDetails(map[string]any{"field": name})
	}
	return SetField(int(value)), nil
}

func (v *Validator) tagsField(name string, raw any) (Field[[]string], error) {
	if raw == nil {
		return ClearField[[]string](), nil
	}
	list, ok := raw.([]any)
	if !ok {
		return Field[[]string]{}, errors.Newf(errors.CodeValidation, "field %s must be a list of strings", name).
			WithDetails(map[string]any{"field": name})
	}
	if len(list) == 0 {
		return ClearField[[]string](), nil
	}
	tags := make([]string, 0, len(list))
	for _, entry := range list {
		tag, ok := entry.(string)
		if !ok {
			return Field[[]string]{}, errors.Newf(errors.CodeValidation, "field %s must be a list of strings", name).
				WithDetails(map[string]any{"field": name})
		}
		tag = strings.TrimSpace(tag)
		if tag == "" {
			continue
		}
		tags = append(tags, tag)
	}
	if len(tags) == 0 {
		return ClearField[[]string](), nil
	}
	return SetField(tags), nil
}

func invalidEnum(name string, allowed []string) error {
	return errors.Newf(errors.CodeInvalidEnum, "field %s must be one of: %s", name, strings.Join(allowed, ", ")).
		WithDetails(map[string]any{"field": name, "allowed": allowed})
}

func notNumeric(name string) error {
	return errors.Newf(errors.CodeValidation, "field %s must be numeric", name).
		WithDetails(map[string]any{"field": name})
}
