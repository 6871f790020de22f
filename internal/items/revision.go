package items

import (
	"github.com/google/uuid"

	"github.com/svaldeco/atelierq-backend/pkg/db/models"
	"github.com/svaldeco/atelierq-backend/pkg/enums"
)

// Columns whose change invalidates outstanding bids. Anything else (title,
// notes, finishes) leaves bids valid even under an active RFQ.
var specRelevantColumns = map[string]struct{}{
	ColumnQuantity:                {},
	ColumnDimensionWidthOriginal:  {},
	ColumnDimensionDepthOriginal:  {},
	ColumnDimensionHeightOriginal: {},
	ColumnDimensionUnitsOriginal:  {},
	ColumnDimensionWidthCM:        {},
	ColumnDimensionDepthCM:        {},
	ColumnDimensionHeightCM:       {},
}

// RevisionDecision is the outcome of a revision pass: whether the counter
// moves, which bids go stale, and which suppliers must hear about it.
type RevisionDecision struct {
	Increment   bool
	NewRevision int
	StaleBidIDs []uuid.UUID
	SupplierIDs []uuid.UUID
}

// EvaluateRevision decides whether a committed change bumps the item's RFQ
// revision. The counter moves only when an active route exists and a
// specification-relevant column changed. Suppliers are deduplicated so the
// fan-out notifies each one once.
func EvaluateRevision(item *models.Item, changedColumns []string, routes []models.RfqRoute, bids []models.Bid) RevisionDecision {
	current := item.RfqRevision()
	decision := RevisionDecision{NewRevision: current}

	active := false
	for _, route := range routes {
		if route.Status.IsActive() {
			active = true
			break
		}
	}
	if !active || !touchesSpec(changedColumns) {
		return decision
	}

	decision.Increment = true
	decision.NewRevision = current + 1

	for _, bid := range bids {
		if bid.Status != enums.BidStatusSubmitted {
			continue
		}
		if bid.RevisionAtSubmit == nil || *bid.RevisionAtSubmit < decision.NewRevision {
			decision.StaleBidIDs = append(decision.StaleBidIDs, bid.ID)
		}
	}

	seen := make(map[uuid.UUID]struct{}, len(routes))
	for _, route := range routes {
		if !route.Status.IsActive() {
			continue
		}
		if _, dup := seen[route.SupplierID]; dup {
			continue
		}
		seen[route.SupplierID] = struct{}{}
		decision.SupplierIDs = append(decision.SupplierIDs, route.SupplierID)
	}
	return decision
}

func touchesSpec(changedColumns []string) bool {
	for _, column := range changedColumns {
		if _, ok := specRelevantColumns[column]; ok {
			return true
		}
	}
	return false
}
