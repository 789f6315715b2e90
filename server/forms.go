package server

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/fennwick/projectpilot/internal/model"
)

// parseDateField converts a YYYY-MM-DD form value to a UTC date. An empty
// value means "not provided" and yields nil without error.
func parseDateField(raw string) (*time.Time, error) {
	return model.ParseDate(raw)
}

// parseFloatField converts an optional numeric form value. An empty value
// yields nil without error.
func parseFloatField(raw string) (*float64, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid number %q", raw)
	}
	return &f, nil
}

// parseMinutesField converts a required positive integer form value.
func parseMinutesField(raw string) (int, error) {
	raw = strings.TrimSpace(raw)
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid duration %q (expected whole minutes)", raw)
	}
	return n, nil
}
