package model

import "testing"

func TestFormatMinutes(t *testing.T) {
	cases := []struct {
		total int
		want  string
	}{
		{0, "0m"},
		{-10, "0m"},
		{45, "45m"},
		{60, "1h"},
		{90, "1h 30m"},
		{135, "2h 15m"},
		{180, "3h"},
	}
	for _, tc := range cases {
		if got := FormatMinutes(tc.total); got != tc.want {
			t.Errorf("FormatMinutes(%d) = %q, want %q", tc.total, got, tc.want)
		}
	}
}
