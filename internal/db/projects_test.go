package db

import (
	"testing"
	"time"

	"github.com/fennwick/projectpilot/internal/model"
)

func date(y int, m time.Month, d int) *time.Time {
	t := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return &t
}

func strPtr(s string) *string { return &s }

func TestNewProjectValidate(t *testing.T) {
	valid := NewProject{Name: "Launch", Status: model.ProjectPlanning}
	if err := valid.validate(); err != nil {
		t.Errorf("valid project rejected: %v", err)
	}

	cases := []struct {
		name string
		np   NewProject
	}{
		{"empty name", NewProject{Name: ""}},
		{"whitespace name", NewProject{Name: "   "}},
		{"unknown status", NewProject{Name: "x", Status: "Cancelled"}},
		{"end before start", NewProject{
			Name:      "x",
			StartDate: date(2026, 9, 10),
			EndDate:   date(2026, 9, 1),
		}},
	}
	for _, tc := range cases {
		err := tc.np.validate()
		if err == nil {
			t.Errorf("%s: expected ValidationError, got nil", tc.name)
			continue
		}
		if !IsValidation(err) {
			t.Errorf("%s: expected ValidationError, got %v", tc.name, err)
		}
	}
}

func TestNewProjectValidateAllowsEqualDates(t *testing.T) {
	np := NewProject{Name: "x", StartDate: date(2026, 9, 1), EndDate: date(2026, 9, 1)}
	if err := np.validate(); err != nil {
		t.Errorf("same-day start and end rejected: %v", err)
	}
}

func TestProjectUpdateSetDoc(t *testing.T) {
	now := time.Date(2026, 8, 25, 12, 0, 0, 0, time.UTC)

	u := ProjectUpdate{
		Name:         strPtr("  Renamed  "),
		Status:       strPtr(model.ProjectActive),
		SetStartDate: true,
		StartDate:    date(2026, 9, 1),
		SetEndDate:   true,
		EndDate:      date(2026, 9, 30),
	}
	set, err := u.setDoc(now)
	if err != nil {
		t.Fatalf("setDoc failed: %v", err)
	}

	if set["name"] != "Renamed" {
		t.Errorf("name should be trimmed, got %q", set["name"])
	}
	if set["updated_at"] != now {
		t.Errorf("updated_at should always be refreshed")
	}
	if _, ok := set["description"]; ok {
		t.Errorf("description was not part of the update but appeared in $set")
	}
}

func TestProjectUpdateSetDocRefreshesUpdatedAt(t *testing.T) {
	u := ProjectUpdate{Status: strPtr(model.ProjectActive)}

	first, err := u.setDoc(time.Date(2026, 8, 25, 12, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("setDoc failed: %v", err)
	}
	second, err := u.setDoc(time.Date(2026, 8, 25, 12, 0, 1, 0, time.UTC))
	if err != nil {
		t.Fatalf("setDoc failed: %v", err)
	}

	// Writing the same values later still produces a different $set
	// document, so an existing document always counts as modified.
	if first["status"] != second["status"] {
		t.Errorf("status should be identical across calls")
	}
	if first["updated_at"] == second["updated_at"] {
		t.Errorf("updated_at should track the update time, got %v twice", first["updated_at"])
	}
}

func TestProjectUpdateSetDocClearsDates(t *testing.T) {
	u := ProjectUpdate{SetStartDate: true, SetEndDate: true}
	set, err := u.setDoc(time.Now())
	if err != nil {
		t.Fatalf("setDoc failed: %v", err)
	}
	if v, ok := set["start_date"]; !ok || v != (*time.Time)(nil) {
		t.Errorf("clearing start_date should set it to nil, got %v (present=%v)", v, ok)
	}
}

func TestProjectUpdateSetDocValidation(t *testing.T) {
	cases := []struct {
		name string
		u    ProjectUpdate
	}{
		{"empty name", ProjectUpdate{Name: strPtr("  ")}},
		{"unknown status", ProjectUpdate{Status: strPtr("Paused")}},
		{"end before start", ProjectUpdate{
			SetStartDate: true, StartDate: date(2026, 9, 10),
			SetEndDate: true, EndDate: date(2026, 9, 1),
		}},
	}
	for _, tc := range cases {
		if _, err := tc.u.setDoc(time.Now()); !IsValidation(err) {
			t.Errorf("%s: expected ValidationError, got %v", tc.name, err)
		}
	}
}
