package server

import "testing"

func TestParseFloatField(t *testing.T) {
	f, err := parseFloatField(" 2.5 ")
	if err != nil {
		t.Fatalf("parseFloatField failed: %v", err)
	}
	if f == nil || *f != 2.5 {
		t.Errorf("parseFloatField(\" 2.5 \") = %v, want 2.5", f)
	}

	f, err = parseFloatField("")
	if err != nil || f != nil {
		t.Errorf("empty value should yield nil without error, got %v, %v", f, err)
	}

	if _, err := parseFloatField("two"); err == nil {
		t.Error("parseFloatField(\"two\") should have failed")
	}
}

func TestParseMinutesField(t *testing.T) {
	n, err := parseMinutesField(" 90 ")
	if err != nil {
		t.Fatalf("parseMinutesField failed: %v", err)
	}
	if n != 90 {
		t.Errorf("parseMinutesField(\" 90 \") = %d, want 90", n)
	}

	for _, raw := range []string{"", "1.5", "ninety"} {
		if _, err := parseMinutesField(raw); err == nil {
			t.Errorf("parseMinutesField(%q) should have failed", raw)
		}
	}
}

func TestParseDateField(t *testing.T) {
	d, err := parseDateField("2026-08-24")
	if err != nil || d == nil {
		t.Fatalf("parseDateField failed: %v (d=%v)", err, d)
	}
	if d.Format("2006-01-02") != "2026-08-24" {
		t.Errorf("parseDateField round trip = %q", d.Format("2006-01-02"))
	}

	if _, err := parseDateField("08/24/2026"); err == nil {
		t.Error("parseDateField(\"08/24/2026\") should have failed")
	}
	d, err = parseDateField("")
	if err != nil || d != nil {
		t.Errorf("empty value should yield nil without error, got %v, %v", d, err)
	}
}
