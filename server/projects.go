package server

import (
	"fmt"
	"net/http"
	"net/url"

	"github.com/fennwick/projectpilot/internal/db"
	"github.com/fennwick/projectpilot/internal/logger"
	"github.com/fennwick/projectpilot/internal/model"
	"github.com/labstack/echo/v4"
)

const pageTitle = "Project Pilot"

// indexData is everything the index template needs.
type indexData struct {
	Title           string
	Flashes         []Flash
	Projects        []model.Project
	SelectedProject *model.Project
	Tasks           []model.Task
	SelectedTask    *model.Task
	TimeLogs        []model.TimeLog
	ProjectStatuses []string
	TaskStatuses    []string
	TaskPriorities  []string
	TaskSort        string
	ConnError       bool
}

// redirectIndex sends the browser back to the main page, optionally
// keeping a project (and task) selected.
func redirectIndex(c echo.Context, projectID, taskID string) error {
	target := "/"
	if projectID != "" {
		q := url.Values{"project_id": {projectID}}
		if taskID != "" {
			q.Set("task_id", taskID)
		}
		target = "/?" + q.Encode()
	}
	return c.Redirect(http.StatusSeeOther, target)
}

// handleIndex renders the main page: all projects, plus the tasks of the
// selected project and the time logs of the selected task.
func (s *Server) handleIndex(c echo.Context) error {
	ctx := c.Request().Context()
	data := indexData{
		Title:           pageTitle,
		ProjectStatuses: model.ProjectStatuses,
		TaskStatuses:    model.TaskStatuses,
		TaskPriorities:  model.TaskPriorities,
		TaskSort:        c.QueryParam("sort"),
	}

	projects, err := s.db.Projects(ctx, "name")
	if err != nil {
		logger.Error("failed to load projects", logger.F("error", err))
		s.flash(c, "error", "Database connection error fetching projects. Please retry later.")
		data.Flashes = s.takeFlashes(c)
		data.ConnError = true
		return c.Render(http.StatusOK, "index.html", data)
	}
	data.Projects = projects

	if rawID := c.QueryParam("project_id"); rawID != "" {
		projectID, err := db.ParseID(rawID)
		if err != nil {
			s.flash(c, "error", fmt.Sprintf("Invalid project ID format: %s", rawID))
		} else if project, err := s.db.Project(ctx, projectID); err != nil {
			logger.Error("failed to load project", logger.F("project_id", rawID), logger.F("error", err))
			s.flash(c, "error", "Error loading the selected project.")
		} else if project == nil {
			s.flash(c, "warning", fmt.Sprintf("Project with ID %s not found.", rawID))
		} else {
			data.SelectedProject = project
			tasks, err := s.db.TasksForProject(ctx, projectID, data.TaskSort)
			if err != nil {
				logger.Error("failed to load tasks", logger.F("project_id", rawID), logger.F("error", err))
				s.flash(c, "error", "Error loading tasks for the selected project.")
			} else {
				data.Tasks = tasks
			}
		}
	}

	if rawID := c.QueryParam("task_id"); rawID != "" && data.SelectedProject != nil {
		if taskID, err := db.ParseID(rawID); err != nil {
			s.flash(c, "error", fmt.Sprintf("Invalid task ID format: %s", rawID))
		} else if task, err := s.db.Task(ctx, taskID); err == nil && task != nil {
			data.SelectedTask = task
			if logs, err := s.db.TimeLogsForTask(ctx, taskID, ""); err == nil {
				data.TimeLogs = logs
			}
		}
	}

	data.Flashes = s.takeFlashes(c)
	return c.Render(http.StatusOK, "index.html", data)
}

// handleProjectAdd creates a project from the add form.
func (s *Server) handleProjectAdd(c echo.Context) error {
	ctx := c.Request().Context()
	name := c.FormValue("name")

	start, err := parseDateField(c.FormValue("start_date"))
	if err != nil {
		s.flash(c, "error", err.Error())
		return redirectIndex(c, "", "")
	}
	end, err := parseDateField(c.FormValue("end_date"))
	if err != nil {
		s.flash(c, "error", err.Error())
		return redirectIndex(c, "", "")
	}

	id, err := s.db.AddProject(ctx, db.NewProject{
		Name:        name,
		Description: c.FormValue("description"),
		Status:      c.FormValue("status"),
		StartDate:   start,
		EndDate:     end,
	})
	if err != nil {
		if db.IsValidation(err) {
			s.flash(c, "error", err.Error())
		} else {
			logger.Error("failed to add project", logger.F("error", err))
			s.flash(c, "error", fmt.Sprintf("Database error adding project %q.", name))
		}
		return redirectIndex(c, "", "")
	}

	s.flash(c, "success", fmt.Sprintf("Project %q added.", name))
	return redirectIndex(c, id.Hex(), "")
}

// handleProjectEdit updates a project from the edit form. The form always
// submits every field, so all of them are set, dates included (an empty
// date clears the stored one).
func (s *Server) handleProjectEdit(c echo.Context) error {
	ctx := c.Request().Context()
	rawID := c.Param("id")

	id, err := db.ParseID(rawID)
	if err != nil {
		s.flash(c, "error", fmt.Sprintf("Invalid project ID format: %s", rawID))
		return redirectIndex(c, "", "")
	}

	start, err := parseDateField(c.FormValue("start_date"))
	if err != nil {
		s.flash(c, "error", err.Error())
		return redirectIndex(c, rawID, "")
	}
	end, err := parseDateField(c.FormValue("end_date"))
	if err != nil {
		s.flash(c, "error", err.Error())
		return redirectIndex(c, rawID, "")
	}

	name := c.FormValue("name")
	description := c.FormValue("description")
	status := c.FormValue("status")

	modified, err := s.db.UpdateProject(ctx, id, db.ProjectUpdate{
		Name:         &name,
		Description:  &description,
		Status:       &status,
		SetStartDate: true,
		StartDate:    start,
		SetEndDate:   true,
		EndDate:      end,
	})
	if err != nil {
		if db.IsValidation(err) {
			s.flash(c, "error", err.Error())
		} else {
			logger.Error("failed to update project", logger.F("project_id", rawID), logger.F("error", err))
			s.flash(c, "error", fmt.Sprintf("Database error updating project %q.", name))
		}
		return redirectIndex(c, rawID, "")
	}

	if modified {
		s.flash(c, "success", fmt.Sprintf("Project %q updated.", name))
	} else {
		s.flash(c, "info", "No changes detected for the project.")
	}
	return redirectIndex(c, rawID, "")
}

// handleProjectDelete deletes a project with its tasks and time logs.
func (s *Server) handleProjectDelete(c echo.Context) error {
	ctx := c.Request().Context()
	rawID := c.Param("id")

	id, err := db.ParseID(rawID)
	if err != nil {
		s.flash(c, "error", fmt.Sprintf("Invalid project ID format: %s", rawID))
		return redirectIndex(c, "", "")
	}

	// Grab the name for the flash message before the document goes away.
	name := "ID " + rawID
	if project, err := s.db.Project(ctx, id); err == nil && project != nil {
		name = project.Name
	}

	deleted, err := s.db.DeleteProject(ctx, id)
	if err != nil {
		logger.Error("failed to delete project", logger.F("project_id", rawID), logger.F("error", err))
		s.flash(c, "error", fmt.Sprintf("Database error deleting project %q.", name))
		return redirectIndex(c, "", "")
	}

	if deleted {
		s.flash(c, "success", fmt.Sprintf("Project %q and its tasks/logs deleted.", name))
	} else {
		s.flash(c, "warning", fmt.Sprintf("Project %q could not be deleted (maybe it was already removed?).", name))
	}
	return redirectIndex(c, "", "")
}
