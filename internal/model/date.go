package model

import (
	"fmt"
	"strings"
	"time"
)

// ParseDate converts a YYYY-MM-DD string to a UTC calendar date. An empty
// value means "not provided" and yields nil without error.
func ParseDate(raw string) (*time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	t, err := time.ParseInLocation(DateFormat, raw, time.UTC)
	if err != nil {
		return nil, fmt.Errorf("invalid date %q (expected YYYY-MM-DD)", raw)
	}
	return &t, nil
}

// FormatDate renders an optional calendar date, empty when absent.
func FormatDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(DateFormat)
}
