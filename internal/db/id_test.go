package db

import (
	"errors"
	"testing"
)

func TestParseID(t *testing.T) {
	const hex = "64f1c0ffee0ddba11ad0beef"

	id, err := ParseID(hex)
	if err != nil {
		t.Fatalf("ParseID(%q) failed: %v", hex, err)
	}
	if id.Hex() != hex {
		t.Errorf("round trip mismatch: got %q, want %q", id.Hex(), hex)
	}
}

func TestParseIDRejectsMalformedInput(t *testing.T) {
	cases := []string{
		"",
		"not-an-id",
		"64f1c0ffee0ddba11ad0bee",    // 23 chars
		"64f1c0ffee0ddba11ad0beef0",  // 25 chars
		"zzzzzzzzzzzzzzzzzzzzzzzz",   // not hex
		"64f1c0ffee0ddba11ad0bee ",   // trailing space
	}

	for _, raw := range cases {
		_, err := ParseID(raw)
		if err == nil {
			t.Errorf("ParseID(%q) should have failed", raw)
			continue
		}
		if !errors.Is(err, ErrInvalidID) {
			t.Errorf("ParseID(%q) error should wrap ErrInvalidID, got %v", raw, err)
		}
	}
}
