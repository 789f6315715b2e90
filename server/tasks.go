package server

import (
	"fmt"

	"github.com/fennwick/projectpilot/internal/db"
	"github.com/fennwick/projectpilot/internal/logger"
	"github.com/labstack/echo/v4"
)

// handleTaskAdd creates a task under a project from the add form.
func (s *Server) handleTaskAdd(c echo.Context) error {
	ctx := c.Request().Context()
	rawProjectID := c.Param("projectID")

	projectID, err := db.ParseID(rawProjectID)
	if err != nil {
		s.flash(c, "error", fmt.Sprintf("Invalid project ID format: %s", rawProjectID))
		return redirectIndex(c, "", "")
	}

	name := c.FormValue("name")

	due, err := parseDateField(c.FormValue("due_date"))
	if err != nil {
		s.flash(c, "error", err.Error())
		return redirectIndex(c, rawProjectID, "")
	}
	hours, err := parseFloatField(c.FormValue("estimated_hours"))
	if err != nil {
		s.flash(c, "error", err.Error())
		return redirectIndex(c, rawProjectID, "")
	}

	_, err = s.db.AddTask(ctx, db.NewTask{
		ProjectID:      projectID,
		Name:           name,
		Description:    c.FormValue("description"),
		Status:         c.FormValue("status"),
		Priority:       c.FormValue("priority"),
		DueDate:        due,
		EstimatedHours: hours,
	})
	if err != nil {
		if db.IsValidation(err) {
			s.flash(c, "error", err.Error())
		} else {
			logger.Error("failed to add task", logger.F("project_id", rawProjectID), logger.F("error", err))
			s.flash(c, "error", fmt.Sprintf("Database error adding task %q.", name))
		}
		return redirectIndex(c, rawProjectID, "")
	}

	s.flash(c, "success", fmt.Sprintf("Task %q added.", name))
	return redirectIndex(c, rawProjectID, "")
}

// handleTaskEdit updates a task from the edit form. Like the project edit
// form, every field is submitted, so every updatable field is set.
func (s *Server) handleTaskEdit(c echo.Context) error {
	ctx := c.Request().Context()
	rawID := c.Param("id")
	rawProjectID := c.FormValue("project_id")

	id, err := db.ParseID(rawID)
	if err != nil {
		s.flash(c, "error", fmt.Sprintf("Invalid task ID format: %s", rawID))
		return redirectIndex(c, rawProjectID, "")
	}

	due, err := parseDateField(c.FormValue("due_date"))
	if err != nil {
		s.flash(c, "error", err.Error())
		return redirectIndex(c, rawProjectID, "")
	}
	hours, err := parseFloatField(c.FormValue("estimated_hours"))
	if err != nil {
		s.flash(c, "error", err.Error())
		return redirectIndex(c, rawProjectID, "")
	}

	name := c.FormValue("name")
	description := c.FormValue("description")
	status := c.FormValue("status")
	priority := c.FormValue("priority")

	modified, err := s.db.UpdateTask(ctx, id, db.TaskUpdate{
		Name:              &name,
		Description:       &description,
		Status:            &status,
		Priority:          &priority,
		SetDueDate:        true,
		DueDate:           due,
		SetEstimatedHours: true,
		EstimatedHours:    hours,
	})
	if err != nil {
		if db.IsValidation(err) {
			s.flash(c, "error", err.Error())
		} else {
			logger.Error("failed to update task", logger.F("task_id", rawID), logger.F("error", err))
			s.flash(c, "error", fmt.Sprintf("Database error updating task %q.", name))
		}
		return redirectIndex(c, rawProjectID, "")
	}

	if modified {
		s.flash(c, "success", fmt.Sprintf("Task %q updated.", name))
	} else {
		s.flash(c, "info", "No changes detected for the task.")
	}
	return redirectIndex(c, rawProjectID, "")
}

// handleTaskDelete deletes a task and its time logs.
func (s *Server) handleTaskDelete(c echo.Context) error {
	ctx := c.Request().Context()
	rawID := c.Param("id")
	rawProjectID := c.FormValue("project_id")

	id, err := db.ParseID(rawID)
	if err != nil {
		s.flash(c, "error", fmt.Sprintf("Invalid task ID format: %s", rawID))
		return redirectIndex(c, rawProjectID, "")
	}

	name := "ID " + rawID
	if task, err := s.db.Task(ctx, id); err == nil && task != nil {
		name = task.Name
	}

	deleted, err := s.db.DeleteTask(ctx, id)
	if err != nil {
		logger.Error("failed to delete task", logger.F("task_id", rawID), logger.F("error", err))
		s.flash(c, "error", fmt.Sprintf("Database error deleting task %q.", name))
		return redirectIndex(c, rawProjectID, "")
	}

	if deleted {
		s.flash(c, "success", fmt.Sprintf("Task %q and its time logs deleted.", name))
	} else {
		s.flash(c, "warning", fmt.Sprintf("Task %q could not be deleted (maybe it was already removed?).", name))
	}
	return redirectIndex(c, rawProjectID, "")
}

// handleLogTime appends a time log to a task.
func (s *Server) handleLogTime(c echo.Context) error {
	ctx := c.Request().Context()
	rawID := c.Param("id")
	rawProjectID := c.FormValue("project_id")

	id, err := db.ParseID(rawID)
	if err != nil {
		s.flash(c, "error", fmt.Sprintf("Invalid task ID format: %s", rawID))
		return redirectIndex(c, rawProjectID, "")
	}

	minutes, err := parseMinutesField(c.FormValue("duration_minutes"))
	if err != nil {
		s.flash(c, "error", err.Error())
		return redirectIndex(c, rawProjectID, rawID)
	}
	logDate, err := parseDateField(c.FormValue("log_date"))
	if err != nil {
		s.flash(c, "error", err.Error())
		return redirectIndex(c, rawProjectID, rawID)
	}

	_, err = s.db.AddTimeLog(ctx, db.NewTimeLog{
		TaskID:          id,
		DurationMinutes: minutes,
		LogDate:         logDate,
		Notes:           c.FormValue("notes"),
	})
	if err != nil {
		if db.IsValidation(err) {
			s.flash(c, "error", err.Error())
		} else {
			logger.Error("failed to add time log", logger.F("task_id", rawID), logger.F("error", err))
			s.flash(c, "error", "Database error logging time.")
		}
		return redirectIndex(c, rawProjectID, rawID)
	}

	s.flash(c, "success", fmt.Sprintf("Logged %d minutes.", minutes))
	return redirectIndex(c, rawProjectID, rawID)
}
