package items

import (
	"fmt"
	"strings"
	"time"

	"github.com/svaldeco/atelierq-backend/pkg/db/models"
	"github.com/svaldeco/atelierq-backend/pkg/enums"
)

// Keyword lists for category classification. Order matters: the furniture
// list is checked before the sourcing list so a category matching both
// resolves to the furniture timeline.
var (
	sampleKitMarkers = []string{
		"sample kit",
		"material sample",
	}

	furnitureKeywords = []string{
		"indoor furniture",
		"outdoor furniture",
		"sofa",
		"armchair",
		"lounge chair",
		"dining chair",
		"dining table",
		"outdoor dining",
		"coffee table",
		"side table",
		"console",
		"credenza",
		"sideboard",
		"bed frame",
		"headboard",
		"ottoman",
		"banquette",
		"daybed",
		"bookcase",
		"shelving",
		"desk",
		"barstool",
		"bench",
		"cabinet",
		"casegood",
		"upholster",
	}

	sourcingKeywords = []string{
		"lighting",
		"flooring",
		"stone",
		"carpet",
		"rug",
		"drapery",
		"accessor",
		"hardware",
		"metalwork",
		"tile",
		"wallcovering",
		"textile",
		"mirror",
		"artwork",
	}
)

// ClassifyTimeline maps a product category to a timeline family. The
// board-level sourcing category acts as a fallback when the item carries no
// category of its own.
func ClassifyTimeline(productCategory, sourcingCategoryFallback string) enums.TimelineType {
	category := strings.TrimSpace(productCategory)
	if category == "" {
		category = strings.TrimSpace(sourcingCategoryFallback)
	}
	if category == "" {
		return enums.TimelineTypeNone
	}
	lowered := strings.ToLower(category)
	for _, marker := range sampleKitMarkers {
		if strings.Contains(lowered, marker) {
			return enums.TimelineTypeNone
		}
	}
	for _, keyword := range furnitureKeywords {
		if strings.Contains(lowered, keyword) {
			return enums.TimelineTypeSixStepFurniture
		}
	}
	for _, keyword := range sourcingKeywords {
		if strings.Contains(lowered, keyword) {
			return enums.TimelineTypeFourStepSourcing
		}
	}
	// Anything non-furniture is assumed externally sourced.
	return enums.TimelineTypeFourStepSourcing
}

type timelineStepSpec struct {
	key   string
	label string
	days  int
}

var furnitureSteps = []timelineStepSpec{
	{"prototype", "Prototype", 7},
	{"frame_structure", "Frame/Structure", 10},
	{"surface_treatment", "Surface Treatment", 5},
	{"upholstery_fabrication", "Upholstery/Fabrication", 8},
	{"final_qc", "Final QC", 2},
	{"packing_delivery", "Packing & Delivery", 3},
}

var sourcingSteps = []timelineStepSpec{
	{"sourcing", "Sourcing", 14},
	{"production_procurement", "Production/Procurement", 21},
	{"quality_check", "Quality Check", 3},
	{"packing_delivery", "Packing & Delivery", 5},
}

// GenerateTimeline builds the ordered, sequentially locked step plan for a
// timeline type. Only the first step starts unlocked; the caller must never
// invoke this for an item that already has a structure.
func GenerateTimeline(timelineType enums.TimelineType, assignedByCategory string, now time.Time) models.TimelineStructure {
	structure := models.TimelineStructure{
		TimelineType:       timelineType,
		AssignedAt:         now.UTC(),
		AssignedByCategory: assignedByCategory,
	}

	var specs []timelineStepSpec
	switch timelineType {
	case enums.TimelineTypeSixStepFurniture:
		specs = furnitureSteps
	case enums.TimelineTypeFourStepSourcing:
		specs = sourcingSteps
	default:
		structure.Steps = []models.TimelineStep{}
		return structure
	}

	structure.Steps = make([]models.TimelineStep, len(specs))
	for i, spec := range specs {
		step := models.TimelineStep{
			StepKey:       spec.key,
			Label:         spec.label,
			Order:         i + 1,
			Status:        enums.TimelineStepStatusPending,
			EstimatedDays: spec.days,
			IsLocked:      i > 0,
		}
		if i > 0 {
			step.LockedReason = fmt.Sprintf("waiting on %s", specs[i-1].label)
		}
		structure.TotalEstimatedDays += spec.days
		structure.Steps[i] = step
	}
	return structure
}
