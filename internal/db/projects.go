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

// NewProject carries the caller-supplied fields for project creation.
type NewProject struct {
	Name        string
	Description string
	Status      string // defaults to Planning when empty
	StartDate   *time.Time
	EndDate     *time.Time
}

func (p NewProject) validate() error {
	if strings.TrimSpace(p.Name) == "" {
		return invalid("name", "must not be empty")
	}
	if p.Status != "" && !model.ValidProjectStatus(p.Status) {
		return invalid("status", fmt.Sprintf("unknown status %q", p.Status))
	}
	if p.StartDate != nil && p.EndDate != nil && p.EndDate.Before(*p.StartDate) {
		return invalid("end_date", "must not be earlier than start_date")
	}
	return nil
}

// AddProject inserts a new project and returns its id.
func (db *DB) AddProject(ctx context.Context, np NewProject) (primitive.ObjectID, error) {
	if err := np.validate(); err != nil {
		return primitive.NilObjectID, err
	}

	coll, err := db.projects(ctx)
	if err != nil {
		return primitive.NilObjectID, err
	}

	status := np.Status
	if status == "" {
		status = model.ProjectPlanning
	}

	now := time.Now().UTC()
	doc := model.Project{
		Name:        strings.TrimSpace(np.Name),
		Description: np.Description,
		Status:      status,
		StartDate:   np.StartDate,
		EndDate:     np.EndDate,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	res, err := coll.InsertOne(ctx, doc)
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("failed to insert project: %w", err)
	}
	return res.InsertedID.(primitive.ObjectID), nil
}

// projectSortFields whitelists the fields Projects may sort on.
var projectSortFields = map[string]bool{
	"name":       true,
	"status":     true,
	"start_date": true,
	"end_date":   true,
	"created_at": true,
}

// Projects returns all projects sorted ascending by sortBy (name when
// empty or unrecognized).
func (db *DB) Projects(ctx context.Context, sortBy string) ([]model.Project, error) {
	coll, err := db.projects(ctx)
	if err != nil {
		return nil, err
	}

	if !projectSortFields[sortBy] {
		sortBy = "name"
	}

	cur, err := coll.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: sortBy, Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}
	defer cur.Close(ctx)

	var projects []model.Project
	if err := cur.All(ctx, &projects); err != nil {
		return nil, fmt.Errorf("failed to decode projects: %w", err)
	}
	return projects, nil
}

// Project returns a single project, or nil if no such document exists.
func (db *DB) Project(ctx context.Context, id primitive.ObjectID) (*model.Project, error) {
	coll, err := db.projects(ctx)
	if err != nil {
		return nil, err
	}

	var p model.Project
	err = coll.FindOne(ctx, bson.M{"_id": id}).Decode(&p)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch project: %w", err)
	}
	return &p, nil
}

// ProjectUpdate describes a partial update. Nil pointer fields are left
// untouched; the date fields use Set* flags so a date can be cleared
// explicitly (Set true, value nil).
type ProjectUpdate struct {
	Name        *string
	Description *string
	Status      *string
	SetStartDate bool
	StartDate    *time.Time
	SetEndDate   bool
	EndDate      *time.Time
}

// setDoc builds the $set document. updated_at is always refreshed.
func (u ProjectUpdate) setDoc(now time.Time) (bson.M, error) {
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
		if !model.ValidProjectStatus(*u.Status) {
			return nil, invalid("status", fmt.Sprintf("unknown status %q", *u.Status))
		}
		set["status"] = *u.Status
	}
	if u.SetStartDate {
		set["start_date"] = u.StartDate
	}
	if u.SetEndDate {
		set["end_date"] = u.EndDate
	}
	if u.SetStartDate && u.SetEndDate && u.StartDate != nil && u.EndDate != nil &&
		u.EndDate.Before(*u.StartDate) {
		return nil, invalid("end_date", "must not be earlier than start_date")
	}

	set["updated_at"] = now
	return set, nil
}

// UpdateProject applies the given partial update and reports whether the
// document was modified. updated_at is refreshed on every update, so an
// existing document always reports true; false means no such document.
func (db *DB) UpdateProject(ctx context.Context, id primitive.ObjectID, u ProjectUpdate) (bool, error) {
	set, err := u.setDoc(time.Now().UTC())
	if err != nil {
		return false, err
	}

	coll, err := db.projects(ctx)
	if err != nil {
		return false, err
	}

	res, err := coll.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": set})
	if err != nil {
		return false, fmt.Errorf("failed to update project: %w", err)
	}
	return res.ModifiedCount > 0, nil
}

// DeleteProject removes a project together with all of its tasks and their
// time logs. Writes run leaf-first (logs, tasks, then the project) so a
// failure partway through leaves at worst pre-cleaned children, never a
// deleted project with live dependents. Returns whether the project
// document itself was removed.
func (db *DB) DeleteProject(ctx context.Context, id primitive.ObjectID) (bool, error) {
	h, err := db.Handle(ctx)
	if err != nil {
		return false, err
	}

	cur, err := h.Collection(collTasks).Find(ctx,
		bson.M{"project_id": id},
		options.Find().SetProjection(bson.M{"_id": 1}))
	if err != nil {
		return false, fmt.Errorf("failed to find tasks for project: %w", err)
	}

	var refs []struct {
		ID primitive.ObjectID `bson:"_id"`
	}
	if err := cur.All(ctx, &refs); err != nil {
		return false, fmt.Errorf("failed to collect task ids: %w", err)
	}

	if len(refs) > 0 {
		taskIDs := make([]primitive.ObjectID, len(refs))
		for i, r := range refs {
			taskIDs[i] = r.ID
		}

		logRes, err := h.Collection(collTimeLogs).DeleteMany(ctx, bson.M{"task_id": bson.M{"$in": taskIDs}})
		if err != nil {
			return false, fmt.Errorf("failed to delete time logs for project: %w", err)
		}
		taskRes, err := h.Collection(collTasks).DeleteMany(ctx, bson.M{"project_id": id})
		if err != nil {
			return false, fmt.Errorf("failed to delete tasks for project: %w", err)
		}
		logger.Info("project cascade cleaned",
			logger.F("project_id", id.Hex()),
			logger.F("tasks", taskRes.DeletedCount),
			logger.F("time_logs", logRes.DeletedCount))
	}

	res, err := h.Collection(collProjects).DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return false, fmt.Errorf("failed to delete project: %w", err)
	}
	return res.DeletedCount > 0, nil
}
