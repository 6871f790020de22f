package migrate_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func readMigration(t *testing.T, pattern string) string {
	t.Helper()
	matches, err := filepath.Glob(filepath.Join("migrations", pattern))
	if err != nil {
		t.Fatalf("glob migrations: %v", err)
	}
	if len(matches) == 0 {
		t.Fatalf("no migration matching %q found", pattern)
	}

	data, err := os.ReadFile(matches[0])
	if err != nil {
		t.Fatalf("read migration file: %v", err)
	}
	return string(data)
}

func TestItemsMigrationContainsConstraints(t *testing.T) {
	content := readMigration(t, "*_create_items.sql")

	checks := []string{
		"CREATE TABLE IF NOT EXISTS items",
		"FOREIGN KEY (board_id) REFERENCES boards(id) ON DELETE CASCADE",
		"FOREIGN KEY (owner_user_id) REFERENCES users(id) ON DELETE CASCADE",
		"CHECK (quantity >= 1)",
		"CHECK (version >= 1)",
		"cbm",
		"dimension_units_original",
		"timeline_structure",
		"DROP TABLE IF EXISTS items",
	}

	for _, sub := range checks {
		if !strings.Contains(content, sub) {
			t.Errorf("missing expected statement %q", sub)
		}
	}
}

func TestEnumsMigrationCoversPipelineTypes(t *testing.T) {
	content := readMigration(t, "*_create_enums.sql")

	checks := []string{
		"CREATE TYPE item_type AS ENUM",
		"CREATE TYPE dimension_unit AS ENUM ('mm', 'cm', 'm', 'in')",
		"CREATE TYPE timeline_type AS ENUM ('6step_furniture', '4step_sourcing', 'none')",
		"CREATE TYPE editor_role AS ENUM ('admin', 'user')",
		"CREATE TYPE rfq_route_status AS ENUM",
		"CREATE TYPE bid_status AS ENUM ('submitted', 'withdrawn', 'stale')",
		"'item_revision_incremented'",
		"'item_bids_marked_stale'",
	}

	for _, sub := range checks {
		if !strings.Contains(content, sub) {
			t.Errorf("missing expected statement %q", sub)
		}
	}
}
