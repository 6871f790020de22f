package delivery

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/svaldeco/atelierq-backend/pkg/db/models"
)

// Freight rate per cubic meter in cents, by destination country. The
// fallback covers destinations without a negotiated lane.
var ratePerCBMCents = map[string]int64{
	"US": 45000,
	"GB": 52000,
	"AE": 38000,
	"SG": 41000,
}

const defaultRatePerCBMCents int64 = 60000
const minimumChargeCents int64 = 15000

// Estimator prices item freight from normalized volume. It is a rough
// planning figure, not a quote.
type Estimator struct{}

func NewEstimator() *Estimator {
	return &Estimator{}
}

// Estimate returns the estimated delivery cost in cents, or false when the
// item has no computed volume yet.
func (e *Estimator) Estimate(item *models.Item, board *models.Board) (int64, bool) {
	if item == nil || item.CBM == nil {
		return 0, false
	}

	rate := defaultRatePerCBMCents
	if board != nil && board.DeliveryCountry != nil {
		country := strings.ToUpper(strings.TrimSpace(*board.DeliveryCountry))
		if lane, ok := ratePerCBMCents[country]; ok {
			rate = lane
		}
	}

	quantity := item.Quantity
	if quantity < 1 {
		quantity = 1
	}

	cents := decimal.NewFromFloat(*item.CBM).
		Mul(decimal.NewFromInt(rate)).
		Mul(decimal.NewFromInt(int64(quantity))).
		Round(0).
		IntPart()
	if cents < minimumChargeCents {
		cents = minimumChargeCents
	}
	return cents, true
}
