package db

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/fennwick/projectpilot/internal/logger"
	"github.com/fennwick/projectpilot/internal/model"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// NewTimeLog carries the caller-supplied fields for time-log creation.
// A nil LogDate means today (UTC).
type NewTimeLog struct {
	TaskID          primitive.ObjectID
	DurationMinutes int
	LogDate         *time.Time
	Notes           string
}

// NormalizeLogDate strips the time-of-day from t, pinning it to midnight
// UTC so log dates group and sort consistently.
func NormalizeLogDate(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// AddTimeLog appends a time log to a task and increments the task's
// logged-time aggregate. The parent task must exist when the log is
// created; if it disappears between that check and the increment, the log
// remains and the drift is detectable via TotalForTask.
func (db *DB) AddTimeLog(ctx context.Context, nl NewTimeLog) (primitive.ObjectID, error) {
	if nl.DurationMinutes <= 0 {
		return primitive.NilObjectID, invalid("duration_minutes", "must be a positive number of minutes")
	}

	h, err := db.Handle(ctx)
	if err != nil {
		return primitive.NilObjectID, err
	}

	// Hard-fail rather than create an orphaned log.
	err = h.Collection(collTasks).FindOne(ctx,
		bson.M{"_id": nl.TaskID},
		options.FindOne().SetProjection(bson.M{"_id": 1})).Err()
	if errors.Is(err, mongo.ErrNoDocuments) {
		return primitive.NilObjectID, invalid("task_id", "parent task does not exist")
	}
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("failed to check parent task: %w", err)
	}

	logDate := time.Now().UTC()
	if nl.LogDate != nil {
		logDate = *nl.LogDate
	}
	logDate = NormalizeLogDate(logDate)

	doc := model.TimeLog{
		TaskID:          nl.TaskID,
		LogDate:         logDate,
		DurationMinutes: nl.DurationMinutes,
		Notes:           nl.Notes,
		CreatedAt:       time.Now().UTC(),
	}

	res, err := h.Collection(collTimeLogs).InsertOne(ctx, doc)
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("failed to insert time log: %w", err)
	}
	id := res.InsertedID.(primitive.ObjectID)

	incRes, err := h.Collection(collTasks).UpdateOne(ctx,
		bson.M{"_id": nl.TaskID},
		bson.M{"$inc": bson.M{"total_logged_minutes": nl.DurationMinutes}})
	if err != nil {
		return id, fmt.Errorf("time log %s created but task total not incremented: %w", id.Hex(), err)
	}
	if incRes.MatchedCount == 0 {
		// Task deleted since the existence check above. The log stays;
		// TotalForTask is the reconciliation path.
		logger.Warn("parent task missing during total increment",
			logger.F("task_id", nl.TaskID.Hex()),
			logger.F("time_log_id", id.Hex()))
	}

	return id, nil
}

// timeLogSortFields whitelists the fields TimeLogsForTask may sort on.
var timeLogSortFields = map[string]bool{
	"log_date":         true,
	"duration_minutes": true,
	"created_at":       true,
}

// TimeLogsForTask returns the time logs of a task sorted descending by
// sortBy (log_date when empty or unrecognized), newest first.
func (db *DB) TimeLogsForTask(ctx context.Context, taskID primitive.ObjectID, sortBy string) ([]model.TimeLog, error) {
	coll, err := db.timeLogs(ctx)
	if err != nil {
		return nil, err
	}

	if !timeLogSortFields[sortBy] {
		sortBy = "log_date"
	}

	cur, err := coll.Find(ctx,
		bson.M{"task_id": taskID},
		options.Find().SetSort(bson.D{{Key: sortBy, Value: -1}}))
	if err != nil {
		return nil, fmt.Errorf("failed to list time logs: %w", err)
	}
	defer cur.Close(ctx)

	var logs []model.TimeLog
	if err := cur.All(ctx, &logs); err != nil {
		return nil, fmt.Errorf("failed to decode time logs: %w", err)
	}
	return logs, nil
}

// TotalForTask recomputes a task's logged minutes by summing its time
// logs, independently of the denormalized total_logged_minutes field.
// Comparing the two detects drift left by the increment window.
func (db *DB) TotalForTask(ctx context.Context, taskID primitive.ObjectID) (int, error) {
	coll, err := db.timeLogs(ctx)
	if err != nil {
		return 0, err
	}

	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"task_id": taskID}}},
		{{Key: "$group", Value: bson.M{
			"_id":           "$task_id",
			"total_minutes": bson.M{"$sum": "$duration_minutes"},
		}}},
	}

	cur, err := coll.Aggregate(ctx, pipeline)
	if err != nil {
		return 0, fmt.Errorf("failed to aggregate time logs: %w", err)
	}
	defer cur.Close(ctx)

	var out []struct {
		TotalMinutes int `bson:"total_minutes"`
	}
	if err := cur.All(ctx, &out); err != nil {
		return 0, fmt.Errorf("failed to decode aggregation: %w", err)
	}
	if len(out) == 0 {
		return 0, nil
	}
	return out[0].TotalMinutes, nil
}
