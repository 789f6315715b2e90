package db

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/fennwick/projectpilot/internal/logger"
	"github.com/fennwick/projectpilot/internal/model"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// NewTask carries the caller-supplied fields for task creation. The parent
// project id must be a valid ObjectID; its existence is not checked.
type NewTask struct {
	ProjectID      primitive.ObjectID
	Name           string
	Description    string
	Status         string // defaults to "To Do" when empty
	Priority       string // defaults to Medium when empty
	DueDate        *time.Time
	EstimatedHours *float64
}

func (t NewTask) validate() error {
	if strings.TrimSpace(t.Name) == "" {
		return invalid("name", "must not be empty")
	}
	if t.Status != "" && !model.ValidTaskStatus(t.Status) {
		return invalid("status", fmt.Sprintf("unknown status %q", t.Status))
	}
	if t.Priority != "" && !model.ValidTaskPriority(t.Priority) {
		return invalid("priority", fmt.Sprintf("unknown priority %q", t.Priority))
	}
	if t.EstimatedHours != nil && *t.EstimatedHours < 0 {
		return invalid("estimated_hours", "must not be negative")
	}
	return nil
}

// AddTask inserts a new task under the given project and returns its id.
// The logged-time aggregate starts at zero.
func (db *DB) AddTask(ctx context.Context, nt NewTask) (primitive.ObjectID, error) {
	if err := nt.validate(); err != nil {
		return primitive.NilObjectID, err
	}

	coll, err := db.tasks(ctx)
	if err != nil {
		return primitive.NilObjectID, err
	}

	status := nt.Status
	if status == "" {
		status = model.TaskToDo
	}
	priority := nt.Priority
	if priority == "" {
		priority = model.PriorityMedium
	}

	now := time.Now().UTC()
	doc := model.Task{
		ProjectID:          nt.ProjectID,
		Name:               strings.TrimSpace(nt.Name),
		Description:        nt.Description,
		Status:             status,
		Priority:           priority,
		DueDate:            nt.DueDate,
		EstimatedHours:     nt.EstimatedHours,
		TotalLoggedMinutes: 0,
		CreatedAt:          now,
		UpdatedAt:          now,
	}

	res, err := coll.InsertOne(ctx, doc)
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("failed to insert task: %w", err)
	}
	return res.InsertedID.(primitive.ObjectID), nil
}

// taskSortFields whitelists the fields TasksForProject may sort on.
var taskSortFields = map[string]bool{
	"name":       true,
	"status":     true,
	"priority":   true,
	"due_date":   true,
	"created_at": true,
}

// TasksForProject returns the tasks under a project sorted ascending by
// sortBy (priority when empty or unrecognized; labels sort alphabetically).
func (db *DB) TasksForProject(ctx context.Context, projectID primitive.ObjectID, sortBy string) ([]model.Task, error) {
	coll, err := db.tasks(ctx)
	if err != nil {
		return nil, err
	}

	if !taskSortFields[sortBy] {
		sortBy = "priority"
	}

	cur, err := coll.Find(ctx,
		bson.M{"project_id": projectID},
		options.Find().SetSort(bson.D{{Key: sortBy, Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	defer cur.Close(ctx)

	var tasks []model.Task
	if err := cur.All(ctx, &tasks); err != nil {
		return nil, fmt.Errorf("failed to decode tasks: %w", err)
	}
	return tasks, nil
}

// Task returns a single task, or nil if no such document exists.
func (db *DB) Task(ctx context.Context, id primitive.ObjectID) (*model.Task, error) {
	coll, err := db.tasks(ctx)
	if err != nil {
		return nil, err
	}

	var t model.Task
	err = coll.FindOne(ctx, bson.M{"_id": id}).Decode(&t)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch task: %w", err)
	}
	return &t, nil
}

// TaskUpdate describes a partial update. The nullable fields (due date,
// estimated hours) use Set* flags so they can be cleared explicitly.
// total_logged_minutes cannot be written through here; it belongs to the
// time-log store.
type TaskUpdate struct {
	Name        *string
	Description *string
	Status      *string
	Priority    *string
	SetDueDate  bool
	DueDate     *time.Time
	SetEstimatedHours bool
	EstimatedHours    *float64
}

// setDoc builds the $set document. updated_at is always refreshed.
func (u TaskUpdate) setDoc(now time.Time) (bson.M, error) {
	set := bson.M{}

	if u.Name != nil {
		name := strings.TrimSpace(*u.Name)
		if name == "" {
			return nil, invalid("name", "must not be empty")
		}
		set["name"] = name
	}
	if u.Description != nil {
		set["description"] = *u.Description
	}
	if u.Status != nil {
		if !model.ValidTaskStatus(*u.Status) {
			return nil, invalid("status", fmt.Sprintf("unknown status %q", *u.Status))
		}
		set["status"] = *u.Status
	}
	if u.Priority != nil {
		if !model.ValidTaskPriority(*u.Priority) {
			return nil, invalid("priority", fmt.Sprintf("unknown priority %q", *u.Priority))
		}
		set["priority"] = *u.Priority
	}
	if u.SetDueDate {
		set["due_date"] = u.DueDate
	}
	if u.SetEstimatedHours {
		if u.EstimatedHours != nil && *u.EstimatedHours < 0 {
			return nil, invalid("estimated_hours", "must not be negative")
		}
		set["estimated_hours"] = u.EstimatedHours
	}

	set["updated_at"] = now
	return set, nil
}

// UpdateTask applies the given partial update and reports whether the
// document was modified. updated_at is refreshed on every update, so an
// existing document always reports true; false means no such document.
func (db *DB) UpdateTask(ctx context.Context, id primitive.ObjectID, u TaskUpdate) (bool, error) {
	set, err := u.setDoc(time.Now().UTC())
	if err != nil {
		return false, err
	}

	coll, err := db.tasks(ctx)
	if err != nil {
		return false, err
	}

	res, err := coll.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": set})
	if err != nil {
		return false, fmt.Errorf("failed to update task: %w", err)
	}
	return res.ModifiedCount > 0, nil
}

// DeleteTask removes a task and all of its time logs, logs first. Returns
// whether the task document was removed.
func (db *DB) DeleteTask(ctx context.Context, id primitive.ObjectID) (bool, error) {
	h, err := db.Handle(ctx)
	if err != nil {
		return false, err
	}

	logRes, err := h.Collection(collTimeLogs).DeleteMany(ctx, bson.M{"task_id": id})
	if err != nil {
		return false, fmt.Errorf("failed to delete time logs for task: %w", err)
	}
	if logRes.DeletedCount > 0 {
		logger.Info("task cascade cleaned",
			logger.F("task_id", id.Hex()),
			logger.F("time_logs", logRes.DeletedCount))
	}

	res, err := h.Collection(collTasks).DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return false, fmt.Errorf("failed to delete task: %w", err)
	}
	return res.DeletedCount > 0, nil
}
