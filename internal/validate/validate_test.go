package validate

import "testing"

// TestRequired rejects empty and whitespace values.
func TestRequired(t *testing.T) {
	if err := Required("subject", "Math"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := Required("subject", ""); err == nil {
		t.Fatalf("expected error for empty value")
	}
	if err := Required("subject", "   "); err == nil {
		t.Fatalf("expected error for whitespace value")
	}
}
