package server

import (
	"net/http"

	"github.com/fennwick/projectpilot/internal/db"
	"github.com/fennwick/projectpilot/internal/logger"
	"github.com/fennwick/projectpilot/internal/model"
	"github.com/labstack/echo/v4"
)

// handleProjectTasksAPI returns the tasks of a project as JSON.
func (s *Server) handleProjectTasksAPI(c echo.Context) error {
	projectID, err := db.ParseID(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid project ID format"})
	}

	tasks, err := s.db.TasksForProject(c.Request().Context(), projectID, c.QueryParam("sort"))
	if err != nil {
		logger.Error("API: failed to list tasks", logger.F("project_id", c.Param("id")), logger.F("error", err))
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Database error"})
	}
	if tasks == nil {
		tasks = []model.Task{}
	}
	return c.JSON(http.StatusOK, tasks)
}

// handleTaskLogsAPI returns the time logs of a task plus the recomputed
// minute total (the reconciliation path, independent of the task's stored
// aggregate).
func (s *Server) handleTaskLogsAPI(c echo.Context) error {
	taskID, err := db.ParseID(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid task ID format"})
	}

	ctx := c.Request().Context()
	logs, err := s.db.TimeLogsForTask(ctx, taskID, c.QueryParam("sort"))
	if err != nil {
		logger.Error("API: failed to list time logs", logger.F("task_id", c.Param("id")), logger.F("error", err))
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Database error"})
	}
	total, err := s.db.TotalForTask(ctx, taskID)
	if err != nil {
		logger.Error("API: failed to total time logs", logger.F("task_id", c.Param("id")), logger.F("error", err))
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Database error"})
	}
	if logs == nil {
		logs = []model.TimeLog{}
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"logs":          logs,
		"total_minutes": total,
	})
}
