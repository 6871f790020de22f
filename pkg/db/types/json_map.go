package dbtypes

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// JSONMap stores a free-form string-keyed document in a jsonb column.
type JSONMap map[string]any

func (m *JSONMap) Scan(src any) error {
	if src == nil {
		*m = JSONMap{}
		return nil
	}

	switch v := src.(type) {
	case []byte:
		return m.parseFromBytes(v)
	case string:
		return m.parseFromBytes([]byte(v))
	default:
		return fmt.Errorf("JSONMap: unsupported Scan type %T", src)
	}
}

func (m JSONMap) Value() (driver.Value, error) {
	if m == nil {
		return "{}", nil
	}
	raw, err := json.Marshal(map[string]any(m))
	if err != nil {
		return nil, fmt.Errorf("JSONMap: marshal: %w", err)
	}
	return string(raw), nil
}

func (m *JSONMap) parseFromBytes(raw []byte) error {
	if len(raw) == 0 {
		*m = JSONMap{}
		return nil
	}
	var out map[string]any
	if err := json.Unmarshal(raw, &out); err != nil {
		return fmt.Errorf("JSONMap: unmarshal: %w", err)
	}
	if out == nil {
		out = map[string]any{}
	}
	*m = JSONMap(out)
	return nil
}

// Int reads an integer-ish value stored under key. JSON numbers decode as
// float64, so both shapes are accepted.
func (m JSONMap) Int(key string) (int, bool) {
	raw, ok := m[key]
	if !ok {
		return 0, false
	}
	switch v := raw.(type) {
	case int:
		return v, true
	case int64:
		return int(v), true
	case float64:
		return int(v), true
	case json.Number:
		parsed, err := v.Int64()
		if err != nil {
			return 0, false
		}
		return int(parsed), true
	default:
		return 0, false
	}
}
