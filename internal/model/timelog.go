package model

import (
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// TimeLog is an append-only record of minutes worked on a task. Logs are
// never updated; they are created, listed, and removed only by cascade
// when their parent task or project is deleted.
type TimeLog struct {
	ID              primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	TaskID          primitive.ObjectID `bson:"task_id" json:"task_id"`
	LogDate         time.Time          `bson:"log_date" json:"log_date"`
	DurationMinutes int                `bson:"duration_minutes" json:"duration_minutes"`
	Notes           string             `bson:"notes" json:"notes"`
	CreatedAt       time.Time          `bson:"created_at" json:"created_at"`
}

// FormatMinutes renders a minute total as "2h 15m" (or "45m", "3h").
func FormatMinutes(total int) string {
	if total <= 0 {
		return "0m"
	}
	hours := total / 60
	minutes := total % 60
	switch {
	case hours == 0:
		return fmt.Sprintf("%dm", minutes)
	case minutes == 0:
		return fmt.Sprintf("%dh", hours)
	default:
		return fmt.Sprintf("%dh %dm", hours, minutes)
	}
}
