package model

import (
	"testing"
	"time"
)

func TestValidTaskLabels(t *testing.T) {
	for _, s := range TaskStatuses {
		if !ValidTaskStatus(s) {
			t.Errorf("known status %q rejected", s)
		}
	}
	if ValidTaskStatus("Started") || ValidTaskStatus("") {
		t.Error("unknown statuses should be rejected")
	}

	for _, p := range TaskPriorities {
		if !ValidTaskPriority(p) {
			t.Errorf("known priority %q rejected", p)
		}
	}
	if ValidTaskPriority("Critical") || ValidTaskPriority("") {
		t.Error("unknown priorities should be rejected")
	}
}

func TestIsOverdue(t *testing.T) {
	past := time.Now().UTC().AddDate(0, 0, -2)
	future := time.Now().UTC().AddDate(0, 0, 2)

	cases := []struct {
		name string
		task Task
		want bool
	}{
		{"no due date", Task{Status: TaskToDo}, false},
		{"due in the past", Task{Status: TaskToDo, DueDate: &past}, true},
		{"due in the future", Task{Status: TaskToDo, DueDate: &future}, false},
		{"done is never overdue", Task{Status: TaskDone, DueDate: &past}, false},
	}
	for _, tc := range cases {
		if got := tc.task.IsOverdue(); got != tc.want {
			t.Errorf("%s: IsOverdue() = %v, want %v", tc.name, got, tc.want)
		}
	}
}
