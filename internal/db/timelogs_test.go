package db

import (
	"testing"
	"time"
)

func TestNormalizeLogDate(t *testing.T) {
	in := time.Date(2026, 8, 24, 17, 45, 30, 999, time.UTC)
	got := NormalizeLogDate(in)
	want := time.Date(2026, 8, 24, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("NormalizeLogDate(%v) = %v, want %v", in, got, want)
	}
}

func TestNormalizeLogDateConvertsZone(t *testing.T) {
	// 23:30 in UTC+2 is 21:30 UTC, still the 24th.
	zone := time.FixedZone("CEST", 2*60*60)
	in := time.Date(2026, 8, 24, 23, 30, 0, 0, zone)
	got := NormalizeLogDate(in)
	want := time.Date(2026, 8, 24, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("NormalizeLogDate(%v) = %v, want %v", in, got, want)
	}
	if got.Location() != time.UTC {
		t.Errorf("normalized date should be in UTC, got %v", got.Location())
	}
}
