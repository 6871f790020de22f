package migrate_test

import (
	"strings"
	"testing"

	"github.com/svaldeco/atelierq-backend/pkg/migrate"
)

func TestRfqRoutesMigrationContainsConstraints(t *testing.T) {
	content := readMigration(t, "*_create_rfq_routes.sql")

	checks := []string{
		"CREATE TABLE IF NOT EXISTS rfq_routes",
		"FOREIGN KEY (item_id) REFERENCES items(id) ON DELETE CASCADE",
		"status      rfq_route_status NOT NULL DEFAULT 'queued'",
		"WHERE status IN ('queued', 'sent', 'viewed', 'bid_submitted')",
		"DROP TABLE IF EXISTS rfq_routes",
	}

	for _, sub := range checks {
		if !strings.Contains(content, sub) {
			t.Errorf("missing expected statement %q", sub)
		}
	}
}

func TestBidsMigrationContainsConstraints(t *testing.T) {
	content := readMigration(t, "*_create_bids.sql")

	checks := []string{
		"CREATE TABLE IF NOT EXISTS bids",
		"revision_at_submit integer",
		"CHECK (amount_cents > 0)",
		"DROP TABLE IF EXISTS bids",
	}

	for _, sub := range checks {
		if !strings.Contains(content, sub) {
			t.Errorf("missing expected statement %q", sub)
		}
	}
}

func TestMigrationsDirValidates(t *testing.T) {
	if err := migrate.ValidateDir("migrations"); err != nil {
		t.Fatalf("ValidateDir: %v", err)
	}
}
