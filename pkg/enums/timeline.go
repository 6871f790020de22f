package enums

import "fmt"

// TimelineType identifies which production timeline family an item follows.
type TimelineType string

const (
	TimelineTypeSixStepFurniture TimelineType = "6step_furniture"
	TimelineTypeFourStepSourcing TimelineType = "4step_sourcing"
	TimelineTypeNone             TimelineType = "none"
)

var validTimelineTypes = []TimelineType{
	TimelineTypeSixStepFurniture,
	TimelineTypeFourStepSourcing,
	TimelineTypeNone,
}

// String implements fmt.Stringer.
func (t TimelineType) String() string {
	return string(t)
}

// IsValid reports whether the value is a known TimelineType.
func (t TimelineType) IsValid() bool {
	for _, candidate := range validTimelineTypes {
		if candidate == t {
			return true
		}
	}
	return false
}

// ParseTimelineType converts raw input into a TimelineType.
func ParseTimelineType(value string) (TimelineType, error) {
	for _, candidate := range validTimelineTypes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid timeline type %q", value)
}

// TimelineStepStatus tracks progress of a single production step.
type TimelineStepStatus string

const (
	TimelineStepStatusPending    TimelineStepStatus = "pending"
	TimelineStepStatusInProgress TimelineStepStatus = "in_progress"
	TimelineStepStatusCompleted  TimelineStepStatus = "completed"
)

var validTimelineStepStatuses = []TimelineStepStatus{
	TimelineStepStatusPending,
	TimelineStepStatusInProgress,
	TimelineStepStatusCompleted,
}

// String implements fmt.Stringer.
func (s TimelineStepStatus) String() string {
	return string(s)
}

// IsValid reports whether the value is a known TimelineStepStatus.
func (s TimelineStepStatus) IsValid() bool {
	for _, candidate := range validTimelineStepStatuses {
		if candidate == s {
			return true
		}
	}
	return false
}

// ParseTimelineStepStatus converts raw input into a TimelineStepStatus.
func ParseTimelineStepStatus(value string) (TimelineStepStatus, error) {
	for _, candidate := range validTimelineStepStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid timeline step status %q", value)
}
