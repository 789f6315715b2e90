package model

import (
	"testing"
	"time"
)

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2026-08-24")
	if err != nil {
		t.Fatalf("ParseDate failed: %v", err)
	}
	want := time.Date(2026, 8, 24, 0, 0, 0, 0, time.UTC)
	if d == nil || !d.Equal(want) {
		t.Errorf("ParseDate(\"2026-08-24\") = %v, want %v", d, want)
	}
	if d.Location() != time.UTC {
		t.Errorf("parsed date should be UTC, got %v", d.Location())
	}
}

func TestParseDateEmpty(t *testing.T) {
	for _, raw := range []string{"", "   "} {
		d, err := ParseDate(raw)
		if err != nil {
			t.Errorf("ParseDate(%q) should not fail: %v", raw, err)
		}
		if d != nil {
			t.Errorf("ParseDate(%q) should yield nil, got %v", raw, d)
		}
	}
}

func TestParseDateInvalid(t *testing.T) {
	for _, raw := range []string{"24-08-2026", "2026/08/24", "tomorrow", "2026-13-01"} {
		if _, err := ParseDate(raw); err == nil {
			t.Errorf("ParseDate(%q) should have failed", raw)
		}
	}
}

func TestFormatDate(t *testing.T) {
	if got := FormatDate(nil); got != "" {
		t.Errorf("FormatDate(nil) = %q, want empty", got)
	}
	d := time.Date(2026, 8, 24, 0, 0, 0, 0, time.UTC)
	if got := FormatDate(&d); got != "2026-08-24" {
		t.Errorf("FormatDate = %q, want 2026-08-24", got)
	}
}
