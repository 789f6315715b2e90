package db

// Behavioral tests against a real MongoDB. They are skipped unless
// PILOT_TEST_MONGO_URI points at a reachable server, e.g.
//
//	PILOT_TEST_MONGO_URI=mongodb://localhost:27017 go test ./internal/db/
//
// Each test gets a throwaway database that is dropped on cleanup.

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/fennwick/projectpilot/internal/model"
)

func newTestDB(t *testing.T) *DB {
	t.Helper()

	uri := os.Getenv("PILOT_TEST_MONGO_URI")
	if uri == "" {
		t.Skip("PILOT_TEST_MONGO_URI not set, skipping MongoDB tests")
	}

	name := fmt.Sprintf("pilot_test_%d", time.Now().UnixNano())
	database := New(uri, name)

	ctx := context.Background()
	if err := database.Connect(ctx); err != nil {
		t.Fatalf("failed to connect to test MongoDB: %v", err)
	}

	t.Cleanup(func() {
		h, err := database.Handle(ctx)
		if err == nil {
			_ = h.Drop(ctx)
		}
		_ = database.Close(ctx)
	})
	return database
}

func TestProjectLifecycle(t *testing.T) {
	database := newTestDB(t)
	ctx := context.Background()

	id, err := database.AddProject(ctx, NewProject{
		Name:        "  Website Relaunch  ",
		Description: "New marketing site",
		StartDate:   date(2026, 9, 1),
	})
	if err != nil {
		t.Fatalf("AddProject failed: %v", err)
	}

	p, err := database.Project(ctx, id)
	if err != nil {
		t.Fatalf("Project failed: %v", err)
	}
	if p == nil {
		t.Fatal("project not found after insert")
	}
	if p.Name != "Website Relaunch" {
		t.Errorf("name should be trimmed on insert, got %q", p.Name)
	}
	if p.Status != model.ProjectPlanning {
		t.Errorf("empty status should default to %q, got %q", model.ProjectPlanning, p.Status)
	}
	if !p.CreatedAt.Equal(p.UpdatedAt) {
		t.Errorf("created_at and updated_at should match on insert: %v vs %v", p.CreatedAt, p.UpdatedAt)
	}

	changed, err := database.UpdateProject(ctx, id, ProjectUpdate{Status: strPtr(model.ProjectActive)})
	if err != nil {
		t.Fatalf("UpdateProject failed: %v", err)
	}
	if !changed {
		t.Error("status change should report modified")
	}

	// Same value again: updated_at is refreshed on every update, so an
	// existing document reports modified either way.
	changed, err = database.UpdateProject(ctx, id, ProjectUpdate{Status: strPtr(model.ProjectActive)})
	if err != nil {
		t.Fatalf("second UpdateProject failed: %v", err)
	}
	if !changed {
		t.Error("update of an existing document should report modified")
	}

	projects, err := database.Projects(ctx, "")
	if err != nil {
		t.Fatalf("Projects failed: %v", err)
	}
	if len(projects) != 1 {
		t.Fatalf("expected 1 project, got %d", len(projects))
	}

	deleted, err := database.DeleteProject(ctx, id)
	if err != nil {
		t.Fatalf("DeleteProject failed: %v", err)
	}
	if !deleted {
		t.Error("first delete should report true")
	}
	deleted, err = database.DeleteProject(ctx, id)
	if err != nil {
		t.Fatalf("repeat DeleteProject failed: %v", err)
	}
	if deleted {
		t.Error("repeat delete should report false")
	}

	// Modified is only ever false for a missing document.
	changed, err = database.UpdateProject(ctx, id, ProjectUpdate{Status: strPtr(model.ProjectOnHold)})
	if err != nil {
		t.Fatalf("UpdateProject after delete failed: %v", err)
	}
	if changed {
		t.Error("update of a deleted document should report not modified")
	}
}

func TestAddProjectValidationLeavesNoTrace(t *testing.T) {
	database := newTestDB(t)
	ctx := context.Background()

	if _, err := database.AddProject(ctx, NewProject{Name: "   "}); !IsValidation(err) {
		t.Errorf("blank name: expected ValidationError, got %v", err)
	}
	if _, err := database.AddProject(ctx, NewProject{
		Name:      "x",
		StartDate: date(2026, 9, 10),
		EndDate:   date(2026, 9, 1),
	}); !IsValidation(err) {
		t.Errorf("end before start: expected ValidationError, got %v", err)
	}

	projects, err := database.Projects(ctx, "")
	if err != nil {
		t.Fatalf("Projects failed: %v", err)
	}
	if len(projects) != 0 {
		t.Errorf("rejected inserts must not create documents, found %d", len(projects))
	}
}

func TestTimeLogAggregate(t *testing.T) {
	database := newTestDB(t)
	ctx := context.Background()

	projectID, err := database.AddProject(ctx, NewProject{Name: "Aggregates"})
	if err != nil {
		t.Fatalf("AddProject failed: %v", err)
	}
	taskID, err := database.AddTask(ctx, NewTask{ProjectID: projectID, Name: "Sum me"})
	if err != nil {
		t.Fatalf("AddTask failed: %v", err)
	}

	task, err := database.Task(ctx, taskID)
	if err != nil || task == nil {
		t.Fatalf("Task fetch failed: %v (task=%v)", err, task)
	}
	if task.TotalLoggedMinutes != 0 {
		t.Errorf("new task should start with 0 logged minutes, got %d", task.TotalLoggedMinutes)
	}

	for _, minutes := range []int{90, 30, 30} {
		if _, err := database.AddTimeLog(ctx, NewTimeLog{TaskID: taskID, DurationMinutes: minutes}); err != nil {
			t.Fatalf("AddTimeLog(%d) failed: %v", minutes, err)
		}
	}

	task, err = database.Task(ctx, taskID)
	if err != nil || task == nil {
		t.Fatalf("Task refetch failed: %v (task=%v)", err, task)
	}
	if task.TotalLoggedMinutes != 150 {
		t.Errorf("denormalized total = %d, want 150", task.TotalLoggedMinutes)
	}

	total, err := database.TotalForTask(ctx, taskID)
	if err != nil {
		t.Fatalf("TotalForTask failed: %v", err)
	}
	if total != 150 {
		t.Errorf("recomputed total = %d, want 150", total)
	}
	if total != task.TotalLoggedMinutes {
		t.Errorf("aggregate drift: stored %d, recomputed %d", task.TotalLoggedMinutes, total)
	}
}

func TestAddTimeLogRejections(t *testing.T) {
	database := newTestDB(t)
	ctx := context.Background()

	projectID, err := database.AddProject(ctx, NewProject{Name: "Rejections"})
	if err != nil {
		t.Fatalf("AddProject failed: %v", err)
	}
	taskID, err := database.AddTask(ctx, NewTask{ProjectID: projectID, Name: "t"})
	if err != nil {
		t.Fatalf("AddTask failed: %v", err)
	}

	for _, minutes := range []int{0, -15} {
		if _, err := database.AddTimeLog(ctx, NewTimeLog{TaskID: taskID, DurationMinutes: minutes}); !IsValidation(err) {
			t.Errorf("duration %d: expected ValidationError, got %v", minutes, err)
		}
	}

	// Valid duration, nonexistent parent.
	missing, _ := ParseID("64f1c0ffee0ddba11ad0beef")
	if _, err := database.AddTimeLog(ctx, NewTimeLog{TaskID: missing, DurationMinutes: 30}); !IsValidation(err) {
		t.Errorf("missing parent: expected ValidationError, got %v", err)
	}

	logs, err := database.TimeLogsForTask(ctx, taskID, "")
	if err != nil {
		t.Fatalf("TimeLogsForTask failed: %v", err)
	}
	if len(logs) != 0 {
		t.Errorf("rejected logs must not be stored, found %d", len(logs))
	}
}

func TestCascadeDeletes(t *testing.T) {
	database := newTestDB(t)
	ctx := context.Background()

	projectID, err := database.AddProject(ctx, NewProject{Name: "Cascade"})
	if err != nil {
		t.Fatalf("AddProject failed: %v", err)
	}

	var taskIDs []string
	for _, name := range []string{"first", "second"} {
		id, err := database.AddTask(ctx, NewTask{ProjectID: projectID, Name: name})
		if err != nil {
			t.Fatalf("AddTask(%s) failed: %v", name, err)
		}
		taskIDs = append(taskIDs, id.Hex())
		for i := 0; i < 2; i++ {
			if _, err := database.AddTimeLog(ctx, NewTimeLog{TaskID: id, DurationMinutes: 25}); err != nil {
				t.Fatalf("AddTimeLog failed: %v", err)
			}
		}
	}

	// Deleting one task must clear only its own logs.
	firstID, _ := ParseID(taskIDs[0])
	deleted, err := database.DeleteTask(ctx, firstID)
	if err != nil {
		t.Fatalf("DeleteTask failed: %v", err)
	}
	if !deleted {
		t.Error("task delete should report true")
	}
	logs, err := database.TimeLogsForTask(ctx, firstID, "")
	if err != nil {
		t.Fatalf("TimeLogsForTask failed: %v", err)
	}
	if len(logs) != 0 {
		t.Errorf("deleted task still has %d logs", len(logs))
	}

	secondID, _ := ParseID(taskIDs[1])
	logs, err = database.TimeLogsForTask(ctx, secondID, "")
	if err != nil {
		t.Fatalf("TimeLogsForTask failed: %v", err)
	}
	if len(logs) != 2 {
		t.Errorf("sibling task should keep its 2 logs, found %d", len(logs))
	}

	// Deleting the project clears the remaining task and its logs.
	deleted, err = database.DeleteProject(ctx, projectID)
	if err != nil {
		t.Fatalf("DeleteProject failed: %v", err)
	}
	if !deleted {
		t.Error("project delete should report true")
	}

	tasks, err := database.TasksForProject(ctx, projectID, "")
	if err != nil {
		t.Fatalf("TasksForProject failed: %v", err)
	}
	if len(tasks) != 0 {
		t.Errorf("deleted project still has %d tasks", len(tasks))
	}
	logs, err = database.TimeLogsForTask(ctx, secondID, "")
	if err != nil {
		t.Fatalf("TimeLogsForTask failed: %v", err)
	}
	if len(logs) != 0 {
		t.Errorf("cascade left %d orphaned logs", len(logs))
	}
}

func TestTimeLogsSortNewestFirst(t *testing.T) {
	database := newTestDB(t)
	ctx := context.Background()

	projectID, err := database.AddProject(ctx, NewProject{Name: "Sorting"})
	if err != nil {
		t.Fatalf("AddProject failed: %v", err)
	}
	taskID, err := database.AddTask(ctx, NewTask{ProjectID: projectID, Name: "t"})
	if err != nil {
		t.Fatalf("AddTask failed: %v", err)
	}

	for _, day := range []int{20, 24, 22} {
		d := time.Date(2026, 8, day, 0, 0, 0, 0, time.UTC)
		if _, err := database.AddTimeLog(ctx, NewTimeLog{TaskID: taskID, DurationMinutes: 10, LogDate: &d}); err != nil {
			t.Fatalf("AddTimeLog failed: %v", err)
		}
	}

	logs, err := database.TimeLogsForTask(ctx, taskID, "")
	if err != nil {
		t.Fatalf("TimeLogsForTask failed: %v", err)
	}
	if len(logs) != 3 {
		t.Fatalf("expected 3 logs, got %d", len(logs))
	}
	for i := 1; i < len(logs); i++ {
		if logs[i].LogDate.After(logs[i-1].LogDate) {
			t.Errorf("logs out of order at %d: %v after %v", i, logs[i].LogDate, logs[i-1].LogDate)
		}
	}
}
