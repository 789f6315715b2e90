package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// DateFormat is the calendar-date layout used on every transport boundary
// (forms, query strings, CLI flags). Dates carry no time-of-day semantics.
const DateFormat = "2006-01-02"

// Project statuses
const (
	ProjectPlanning  = "Planning"
	ProjectActive    = "Active"
	ProjectOnHold    = "On Hold"
	ProjectCompleted = "Completed"
	ProjectArchived  = "Archived"
)

// ProjectStatuses lists the allowed project status labels in display order.
var ProjectStatuses = []string{
	ProjectPlanning,
	ProjectActive,
	ProjectOnHold,
	ProjectCompleted,
	ProjectArchived,
}

// Project is a top-level container of tasks.
type Project struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name        string             `bson:"name" json:"name"`
	Description string             `bson:"description" json:"description"`
	Status      string             `bson:"status" json:"status"`
	StartDate   *time.Time         `bson:"start_date" json:"start_date,omitempty"`
	EndDate     *time.Time         `bson:"end_date" json:"end_date,omitempty"`
	CreatedAt   time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt   time.Time          `bson:"updated_at" json:"updated_at"`
}

// ValidProjectStatus reports whether s is one of the known project statuses.
func ValidProjectStatus(s string) bool {
	for _, v := range ProjectStatuses {
		if s == v {
			return true
		}
	}
	return false
}
