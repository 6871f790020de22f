package dbtypes

import "testing"

func TestJSONMapScanValueRoundTrip(t *testing.T) {
	var m JSONMap
	if err := m.Scan([]byte(`{"rfq_revision_current": 3, "note": "x"}`)); err != nil {
		t.Fatalf("scan failed: %v", err)
	}

	rev, ok := m.Int("rfq_revision_current")
	if !ok || rev != 3 {
		t.Fatalf("expected revision 3, got %d (ok=%v)", rev, ok)
	}

	value, err := m.Value()
	if err != nil {
		t.Fatalf("value failed: %v", err)
	}
	if value == nil {
		t.Fatal("expected non-nil driver value")
	}
}

func TestJSONMapScanNil(t *testing.T) {
	var m JSONMap
	if err := m.Scan(nil); err != nil {
		t.Fatalf("scan nil failed: %v", err)
	}
	if m == nil {
		t.Fatal("expected empty map, got nil")
	}
	if _, ok := m.Int("missing"); ok {
		t.Fatal("missing key should not resolve")
	}
}

func TestJSONMapValueEmpty(t *testing.T) {
	var m JSONMap
	value, err := m.Value()
	if err != nil {
		t.Fatalf("value failed: %v", err)
	}
	if value != "{}" {
		t.Fatalf("expected empty object literal, got %v", value)
	}
}
