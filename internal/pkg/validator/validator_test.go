package validator

import (
	"testing"
)

func TestIsValidDate(t *testing.T) {
	valid := []string{"2026-03-14", "2026-01-01", "2024-02-29"}
	invalid := []string{"2026-3-14", "14-03-2026", "2026-03-14T09:00:00Z", "2025-02-29", ""}
	for _, date := range valid {
		if _, ok := IsValidDate(date); !ok {
			t.Errorf("IsValidDate(%q) = false, want true", date)
		}
	}
	for _, date := range invalid {
		if _, ok := IsValidDate(date); ok {
			t.Errorf("IsValidDate(%q) = true, want false", date)
		}
	}
}

func TestIsInSlice(t *testing.T) {
	kinds := []string{"week", "month"}
	if !IsInSlice("week", kinds) {
		t.Error("IsInSlice(week) = false, want true")
	}
	if IsInSlice("fortnight", kinds) {
		t.Error("IsInSlice(fortnight) = true, want false")
	}
}

func TestValidationErrorsToMap(t *testing.T) {
	errs := ValidationErrors{
		{Field: "kind", Message: "kind must be one of: week, month"},
		{Field: "offset", Message: "offset must not be negative"},
	}

	m := errs.ToMap()

	if len(m) != 2 {
		t.Fatalf("ToMap() has %d entries, want 2", len(m))
	}
	if m["kind"] != "kind must be one of: week, month" {
		t.Errorf("unexpected kind message: %q", m["kind"])
	}
	if errs.Error() == "" {
		t.Error("Error() should not be empty")
	}
}
