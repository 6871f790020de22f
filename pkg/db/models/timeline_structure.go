package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/svaldeco/atelierq-backend/pkg/enums"
)

// TimelineStep is one production or sourcing milestone inside a timeline.
type TimelineStep struct {
	StepKey       string                   `json:"step_key"`
	Label         string                   `json:"label"`
	Order         int                      `json:"order"`
	Status        enums.TimelineStepStatus `json:"status"`
	EstimatedDays int                      `json:"estimated_days"`
	ActualDays    *int                     `json:"actual_days,omitempty"`
	IsLocked      bool                     `json:"is_locked"`
	LockedReason  string                   `json:"locked_reason,omitempty"`
}

// TimelineStructure is the ordered step plan assigned to an item once its
// category first classifies. Stored as a jsonb column; production tracking
// mutates step status through a separate flow.
type TimelineStructure struct {
	TimelineType       enums.TimelineType `json:"timeline_type"`
	AssignedAt         time.Time          `json:"assigned_at"`
	AssignedByCategory string             `json:"assigned_by_category"`
	TotalEstimatedDays int                `json:"total_estimated_days"`
	Steps              []TimelineStep     `json:"steps"`
}

func (s *TimelineStructure) Scan(src any) error {
	if src == nil {
		return nil
	}
	var raw []byte
	switch v := src.(type) {
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return fmt.Errorf("TimelineStructure: unsupported Scan type %T", src)
	}
	if len(raw) == 0 {
		return nil
	}
	return json.Unmarshal(raw, s)
}

func (s TimelineStructure) Value() (driver.Value, error) {
	raw, err := json.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("TimelineStructure: marshal: %w", err)
	}
	return string(raw), nil
}
