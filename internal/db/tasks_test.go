package db

import (
	"testing"
	"time"

	"github.com/fennwick/projectpilot/internal/model"
)

func floatPtr(f float64) *float64 { return &f }

func TestNewTaskValidate(t *testing.T) {
	valid := NewTask{Name: "Wire auth", Status: model.TaskInProgress, Priority: model.PriorityHigh}
	if err := valid.validate(); err != nil {
		t.Errorf("valid task rejected: %v", err)
	}

	cases := []struct {
		name string
		nt   NewTask
	}{
		{"empty name", NewTask{Name: "  "}},
		{"unknown status", NewTask{Name: "x", Status: "Started"}},
		{"unknown priority", NewTask{Name: "x", Priority: "Critical"}},
		{"negative hours", NewTask{Name: "x", EstimatedHours: floatPtr(-1)}},
	}
	for _, tc := range cases {
		if err := tc.nt.validate(); !IsValidation(err) {
			t.Errorf("%s: expected ValidationError, got %v", tc.name, err)
		}
	}
}

func TestTaskUpdateSetDoc(t *testing.T) {
	now := time.Date(2026, 8, 25, 12, 0, 0, 0, time.UTC)

	u := TaskUpdate{
		Name:              strPtr("Wire auth"),
		Status:            strPtr(model.TaskDone),
		Priority:          strPtr(model.PriorityLow),
		SetDueDate:        true,
		DueDate:           date(2026, 9, 15),
		SetEstimatedHours: true,
		EstimatedHours:    floatPtr(2.5),
	}
	set, err := u.setDoc(now)
	if err != nil {
		t.Fatalf("setDoc failed: %v", err)
	}

	if set["updated_at"] != now {
		t.Errorf("updated_at should always be refreshed")
	}
	if _, ok := set["total_logged_minutes"]; ok {
		t.Errorf("task updates must never write total_logged_minutes")
	}
	if set["status"] != model.TaskDone {
		t.Errorf("status not applied, got %v", set["status"])
	}
}

func TestTaskUpdateSetDocClearsNullableFields(t *testing.T) {
	u := TaskUpdate{SetDueDate: true, SetEstimatedHours: true}
	set, err := u.setDoc(time.Now())
	if err != nil {
		t.Fatalf("setDoc failed: %v", err)
	}
	if v, ok := set["due_date"]; !ok || v != (*time.Time)(nil) {
		t.Errorf("clearing due_date should set it to nil, got %v (present=%v)", v, ok)
	}
	if v, ok := set["estimated_hours"]; !ok || v != (*float64)(nil) {
		t.Errorf("clearing estimated_hours should set it to nil, got %v (present=%v)", v, ok)
	}
}

func TestTaskUpdateSetDocValidation(t *testing.T) {
	cases := []struct {
		name string
		u    TaskUpdate
	}{
		{"empty name", TaskUpdate{Name: strPtr(" ")}},
		{"unknown status", TaskUpdate{Status: strPtr("Paused")}},
		{"unknown priority", TaskUpdate{Priority: strPtr("Sev1")}},
		{"negative hours", TaskUpdate{SetEstimatedHours: true, EstimatedHours: floatPtr(-0.5)}},
	}
	for _, tc := range cases {
		if _, err := tc.u.setDoc(time.Now()); !IsValidation(err) {
			t.Errorf("%s: expected ValidationError, got %v", tc.name, err)
		}
	}
}
