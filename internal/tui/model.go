package tui

import (
	"context"

	"github.com/fennwick/projectpilot/internal/db"
	"github.com/fennwick/projectpilot/internal/logger"
	"github.com/fennwick/projectpilot/internal/model"
)

// Pane represents which pane is focused
type Pane int

const (
	PaneProjects Pane = iota
	PaneTasks
	PaneLogs
)

// Mode represents the current UI mode
type Mode int

const (
	ModeNormal Mode = iota
	ModeAddProject
	ModeEditProject
	ModeAddTask
	ModeEditTask
	ModeLogTime
	ModeConfirmDelete
	ModeHelp
)

// Model is the main TUI model: a three-pane browser over projects, the
// selected project's tasks, and the selected task's time logs, with modal
// forms for the write operations. Store calls run synchronously from the
// update loop, like the dialogs they replace.
type Model struct {
	db *db.DB

	projects []model.Project
	tasks    []model.Task
	logs     []model.TimeLog

	// UI state
	width      int
	height     int
	pane       Pane
	mode       Mode
	projCursor int
	taskCursor int
	logCursor  int
	taskSort   string

	form    form
	confirm confirmTarget

	message string
	loadErr error
}

// confirmTarget remembers what a pending delete confirmation applies to.
type confirmTarget struct {
	kind string // "project" or "task"
	id   string // hex id
	name string
}

// NewModel creates a new TUI model
func NewModel(database *db.DB) Model {
	logger.Info("Initializing TUI model")

	m := Model{
		db:       database,
		pane:     PaneProjects,
		mode:     ModeNormal,
		taskSort: "priority",
	}
	m.loadProjects()
	return m
}

func (m *Model) selectedProject() *model.Project {
	if m.projCursor < 0 || m.projCursor >= len(m.projects) {
		return nil
	}
	return &m.projects[m.projCursor]
}

func (m *Model) selectedTask() *model.Task {
	if m.taskCursor < 0 || m.taskCursor >= len(m.tasks) {
		return nil
	}
	return &m.tasks[m.taskCursor]
}

// loadProjects refreshes the project pane and everything below it.
func (m *Model) loadProjects() {
	ctx := context.Background()

	projects, err := m.db.Projects(ctx, "name")
	if err != nil {
		logger.Error("TUI: failed to load projects", logger.F("error", err))
		m.loadErr = err
		m.projects = nil
		m.tasks = nil
		m.logs = nil
		return
	}
	m.loadErr = nil
	m.projects = projects

	if m.projCursor >= len(m.projects) {
		m.projCursor = len(m.projects) - 1
	}
	if m.projCursor < 0 {
		m.projCursor = 0
	}
	m.loadTasks()
}

// loadTasks refreshes the task pane for the selected project.
func (m *Model) loadTasks() {
	project := m.selectedProject()
	if project == nil {
		m.tasks = nil
		m.logs = nil
		return
	}

	tasks, err := m.db.TasksForProject(context.Background(), project.ID, m.taskSort)
	if err != nil {
		logger.Error("TUI: failed to load tasks", logger.F("error", err))
		m.loadErr = err
		m.tasks = nil
		m.logs = nil
		return
	}
	m.tasks = tasks

	if m.taskCursor >= len(m.tasks) {
		m.taskCursor = len(m.tasks) - 1
	}
	if m.taskCursor < 0 {
		m.taskCursor = 0
	}
	m.loadLogs()
}

// loadLogs refreshes the time-log pane for the selected task.
func (m *Model) loadLogs() {
	task := m.selectedTask()
	if task == nil {
		m.logs = nil
		return
	}

	logs, err := m.db.TimeLogsForTask(context.Background(), task.ID, "")
	if err != nil {
		logger.Error("TUI: failed to load time logs", logger.F("error", err))
		m.loadErr = err
		m.logs = nil
		return
	}
	m.logs = logs

	if m.logCursor >= len(m.logs) {
		m.logCursor = len(m.logs) - 1
	}
	if m.logCursor < 0 {
		m.logCursor = 0
	}
}
