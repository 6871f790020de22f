package delivery

import (
	"testing"

	"github.com/svaldeco/atelierq-backend/pkg/db/models"
)

func floatPtr(v float64) *float64 { return &v }
func strPtr(v string) *string     { return &v }

func TestEstimateRequiresVolume(t *testing.T) {
	e := NewEstimator()

	if _, ok := e.Estimate(&models.Item{Quantity: 1}, nil); ok {
		t.Fatalf("item without cbm should not price")
	}
	if _, ok := e.Estimate(nil, nil); ok {
		t.Fatalf("nil item should not price")
	}
}

func TestEstimateUsesNegotiatedLane(t *testing.T) {
	e := NewEstimator()
	item := &models.Item{CBM: floatPtr(2.0), Quantity: 1}
	board := &models.Board{DeliveryCountry: strPtr("us")}

	cents, ok := e.Estimate(item, board)
	if !ok {
		t.Fatalf("expected estimate")
	}
	// 2 cbm * 45000 cents/cbm
	if cents != 90000 {
		t.Fatalf("expected 90000, got %d", cents)
	}
}

func TestEstimateFallsBackToDefaultRate(t *testing.T) {
	e := NewEstimator()
	item := &models.Item{CBM: floatPtr(1.0), Quantity: 1}
	board := &models.Board{DeliveryCountry: strPtr("NZ")}

	cents, ok := e.Estimate(item, board)
	if !ok {
		t.Fatalf("expected estimate")
	}
	if cents != 60000 {
		t.Fatalf("expected default lane 60000, got %d", cents)
	}

	cents, ok = e.Estimate(item, nil)
	if !ok || cents != 60000 {
		t.Fatalf("boardless estimate should use default rate, got %d", cents)
	}
}

func TestEstimateScalesWithQuantity(t *testing.T) {
	e := NewEstimator()
	item := &models.Item{CBM: floatPtr(0.5), Quantity: 4}
	board := &models.Board{DeliveryCountry: strPtr("GB")}

	cents, ok := e.Estimate(item, board)
	if !ok {
		t.Fatalf("expected estimate")
	}
	// 0.5 cbm * 52000 * 4
	if cents != 104000 {
		t.Fatalf("expected 104000, got %d", cents)
	}
}

func TestEstimateAppliesMinimumCharge(t *testing.T) {
	e := NewEstimator()
	item := &models.Item{CBM: floatPtr(0.01), Quantity: 1}
	board := &models.Board{DeliveryCountry: strPtr("AE")}

	cents, ok := e.Estimate(item, board)
	if !ok {
		t.Fatalf("expected estimate")
	}
	if cents != minimumChargeCents {
		t.Fatalf("expected minimum charge %d, got %d", minimumChargeCents, cents)
	}
}

func TestEstimateTreatsZeroQuantityAsOne(t *testing.T) {
	e := NewEstimator()
	item := &models.Item{CBM: floatPtr(1.0), Quantity: 0}
	board := &models.Board{DeliveryCountry: strPtr("SG")}

	cents, ok := e.Estimate(item, board)
	if !ok {
		t.Fatalf("expected estimate")
	}
	if cents != 41000 {
		t.Fatalf("expected 41000, got %d", cents)
	}
}
