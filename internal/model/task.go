package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Task statuses
const (
	TaskToDo       = "To Do"
	TaskInProgress = "In Progress"
	TaskBlocked    = "Blocked"
	TaskReview     = "Review"
	TaskDone       = "Done"
)

// Task priorities
const (
	PriorityLow    = "Low"
	PriorityMedium = "Medium"
	PriorityHigh   = "High"
	PriorityUrgent = "Urgent"
)

// TaskStatuses lists the allowed task status labels in display order.
var TaskStatuses = []string{TaskToDo, TaskInProgress, TaskBlocked, TaskReview, TaskDone}

// TaskPriorities lists the allowed task priority labels in display order.
var TaskPriorities = []string{PriorityLow, PriorityMedium, PriorityHigh, PriorityUrgent}

// Task is a unit of work inside a project. TotalLoggedMinutes is a
// denormalized sum over the task's time logs, maintained on log creation;
// it is never written through a task update.
type Task struct {
	ID                 primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	ProjectID          primitive.ObjectID `bson:"project_id" json:"project_id"`
	Name               string             `bson:"name" json:"name"`
	Description        string             `bson:"description" json:"description"`
	Status             string             `bson:"status" json:"status"`
	Priority           string             `bson:"priority" json:"priority"`
	DueDate            *time.Time         `bson:"due_date" json:"due_date,omitempty"`
	EstimatedHours     *float64           `bson:"estimated_hours" json:"estimated_hours,omitempty"`
	TotalLoggedMinutes int                `bson:"total_logged_minutes" json:"total_logged_minutes"`
	CreatedAt          time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt          time.Time          `bson:"updated_at" json:"updated_at"`
}

// ValidTaskStatus reports whether s is one of the known task statuses.
func ValidTaskStatus(s string) bool {
	for _, v := range TaskStatuses {
		if s == v {
			return true
		}
	}
	return false
}

// ValidTaskPriority reports whether s is one of the known task priorities.
func ValidTaskPriority(s string) bool {
	for _, v := range TaskPriorities {
		if s == v {
			return true
		}
	}
	return false
}

// IsOverdue returns true if the task has a due date in the past and is not done.
func (t Task) IsOverdue() bool {
	if t.DueDate == nil || t.Status == TaskDone {
		return false
	}
	now := time.Now().UTC()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	return t.DueDate.Before(today)
}
