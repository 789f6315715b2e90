package server

import (
	"testing"
	"time"
)

func TestFlashStoreTakeDrains(t *testing.T) {
	fs := newFlashStore()
	fs.add("tok", Flash{Category: "success", Message: "saved"})
	fs.add("tok", Flash{Category: "info", Message: "again"})

	flashes := fs.take("tok")
	if len(flashes) != 2 {
		t.Fatalf("expected 2 flashes, got %d", len(flashes))
	}
	if flashes[0].Message != "saved" || flashes[1].Message != "again" {
		t.Errorf("flashes out of order: %v", flashes)
	}

	if got := fs.take("tok"); got != nil {
		t.Errorf("second take should be empty, got %v", got)
	}
}

func TestFlashStoreEvictsAbandonedBuckets(t *testing.T) {
	fs := newFlashStore()
	fs.pending["stale"] = flashBucket{
		flashes: []Flash{{Category: "info", Message: "never delivered"}},
		created: time.Now().Add(-2 * flashTTL),
	}

	// Any add prunes expired buckets.
	fs.add("fresh", Flash{Category: "success", Message: "kept"})

	if _, ok := fs.pending["stale"]; ok {
		t.Error("abandoned bucket should be evicted after its TTL")
	}
	if got := fs.take("fresh"); len(got) != 1 || got[0].Message != "kept" {
		t.Errorf("live bucket should survive pruning, got %v", got)
	}
}
