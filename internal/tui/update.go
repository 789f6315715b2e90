package tui

import (
	"context"
	"fmt"
	"strconv"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/fennwick/projectpilot/internal/db"
	"github.com/fennwick/projectpilot/internal/model"
)

// taskSortCycle is the order the s key walks through.
var taskSortCycle = []string{"priority", "status", "due_date", "name"}

// Update handles messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch m.mode {
		case ModeNormal:
			return m.updateNormal(msg)
		case ModeConfirmDelete:
			return m.updateConfirm(msg)
		case ModeHelp:
			m.mode = ModeNormal
			return m, nil
		default:
			return m.updateForm(msg)
		}
	}

	return m, nil
}

func (m Model) updateNormal(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.message = ""

	switch {
	case key.Matches(msg, keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, keys.Help):
		m.mode = ModeHelp

	case key.Matches(msg, keys.Tab), key.Matches(msg, keys.Right), key.Matches(msg, keys.Enter):
		switch m.pane {
		case PaneProjects:
			if len(m.tasks) > 0 || m.selectedProject() != nil {
				m.pane = PaneTasks
			}
		case PaneTasks:
			if m.selectedTask() != nil {
				m.pane = PaneLogs
			}
		default:
			if key.Matches(msg, keys.Tab) {
				m.pane = PaneProjects
			}
		}

	case key.Matches(msg, keys.Left):
		switch m.pane {
		case PaneLogs:
			m.pane = PaneTasks
		case PaneTasks:
			m.pane = PaneProjects
		}

	case key.Matches(msg, keys.Up):
		m.moveCursor(-1)

	case key.Matches(msg, keys.Down):
		m.moveCursor(1)

	case key.Matches(msg, keys.Add):
		switch m.pane {
		case PaneProjects:
			m.form = projectForm("Add Project", "", nil)
			m.mode = ModeAddProject
		case PaneTasks:
			if project := m.selectedProject(); project != nil {
				m.form = taskForm("Add Task — "+project.Name, "", nil)
				m.mode = ModeAddTask
			}
		case PaneLogs:
			if task := m.selectedTask(); task != nil {
				m.form = logTimeForm(task.ID.Hex())
				m.mode = ModeLogTime
			}
		}

	case key.Matches(msg, keys.Edit):
		switch m.pane {
		case PaneProjects:
			if project := m.selectedProject(); project != nil {
				m.form = projectForm("Edit Project", project.ID.Hex(), project)
				m.mode = ModeEditProject
			}
		case PaneTasks:
			if task := m.selectedTask(); task != nil {
				m.form = taskForm("Edit Task", task.ID.Hex(), task)
				m.mode = ModeEditTask
			}
		}

	case key.Matches(msg, keys.LogTime):
		if task := m.selectedTask(); task != nil {
			m.form = logTimeForm(task.ID.Hex())
			m.mode = ModeLogTime
		}

	case key.Matches(msg, keys.Delete):
		switch m.pane {
		case PaneProjects:
			if project := m.selectedProject(); project != nil {
				m.confirm = confirmTarget{kind: "project", id: project.ID.Hex(), name: project.Name}
				m.mode = ModeConfirmDelete
			}
		case PaneTasks:
			if task := m.selectedTask(); task != nil {
				m.confirm = confirmTarget{kind: "task", id: task.ID.Hex(), name: task.Name}
				m.mode = ModeConfirmDelete
			}
		}

	case key.Matches(msg, keys.Sort):
		for i, s := range taskSortCycle {
			if s == m.taskSort {
				m.taskSort = taskSortCycle[(i+1)%len(taskSortCycle)]
				break
			}
		}
		m.taskCursor = 0
		m.loadTasks()
		m.message = "Tasks sorted by " + m.taskSort

	case key.Matches(msg, keys.Refresh):
		m.loadProjects()
		m.message = "Refreshed"
	}

	return m, nil
}

func (m *Model) moveCursor(delta int) {
	switch m.pane {
	case PaneProjects:
		next := m.projCursor + delta
		if next >= 0 && next < len(m.projects) {
			m.projCursor = next
			m.taskCursor = 0
			m.logCursor = 0
			m.loadTasks()
		}
	case PaneTasks:
		next := m.taskCursor + delta
		if next >= 0 && next < len(m.tasks) {
			m.taskCursor = next
			m.logCursor = 0
			m.loadLogs()
		}
	case PaneLogs:
		next := m.logCursor + delta
		if next >= 0 && next < len(m.logs) {
			m.logCursor = next
		}
	}
}

func (m Model) updateConfirm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "Y":
		m.performDelete()
	case "n", "N", "esc":
		m.message = "Delete cancelled"
	default:
		return m, nil
	}
	m.mode = ModeNormal
	return m, nil
}

func (m *Model) performDelete() {
	ctx := context.Background()

	id, err := db.ParseID(m.confirm.id)
	if err != nil {
		m.message = "Error: " + err.Error()
		return
	}

	switch m.confirm.kind {
	case "project":
		deleted, err := m.db.DeleteProject(ctx, id)
		if err != nil {
			m.message = "Error: " + err.Error()
			return
		}
		if deleted {
			m.message = fmt.Sprintf("Project %q and its tasks/logs deleted", m.confirm.name)
		} else {
			m.message = fmt.Sprintf("Project %q was already removed", m.confirm.name)
		}
		m.projCursor = 0
		m.taskCursor = 0
		m.loadProjects()

	case "task":
		deleted, err := m.db.DeleteTask(ctx, id)
		if err != nil {
			m.message = "Error: " + err.Error()
			return
		}
		if deleted {
			m.message = fmt.Sprintf("Task %q and its time logs deleted", m.confirm.name)
		} else {
			m.message = fmt.Sprintf("Task %q was already removed", m.confirm.name)
		}
		m.taskCursor = 0
		m.loadTasks()
	}
}

func (m Model) updateForm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Escape):
		m.mode = ModeNormal
		m.message = "Cancelled"
		return m, nil

	case key.Matches(msg, keys.FormNext):
		m.form.focusNext()
		return m, nil

	case key.Matches(msg, keys.FormPrev):
		m.form.focusPrev()
		return m, nil

	case key.Matches(msg, keys.Enter):
		if m.form.focus < len(m.form.inputs)-1 {
			m.form.focusNext()
			return m, nil
		}
		m.submitForm()
		return m, nil
	}

	cmd := m.form.update(msg)
	return m, cmd
}

// submitForm runs the store operation behind the open form. On failure the
// form stays open with the error in the status line.
func (m *Model) submitForm() {
	switch m.mode {
	case ModeAddProject, ModeEditProject:
		m.submitProjectForm()
	case ModeAddTask, ModeEditTask:
		m.submitTaskForm()
	case ModeLogTime:
		m.submitLogForm()
	}
}

func (m *Model) submitProjectForm() {
	ctx := context.Background()

	start, err := model.ParseDate(m.form.value(3))
	if err != nil {
		m.message = "Error: " + err.Error()
		return
	}
	end, err := model.ParseDate(m.form.value(4))
	if err != nil {
		m.message = "Error: " + err.Error()
		return
	}

	name := m.form.value(0)
	description := m.form.value(1)
	status := m.form.value(2)

	if m.mode == ModeAddProject {
		_, err = m.db.AddProject(ctx, db.NewProject{
			Name:        name,
			Description: description,
			Status:      status,
			StartDate:   start,
			EndDate:     end,
		})
		if err != nil {
			m.message = "Error: " + err.Error()
			return
		}
		m.message = fmt.Sprintf("Project %q added", name)
	} else {
		id, err := db.ParseID(m.form.targetID)
		if err != nil {
			m.message = "Error: " + err.Error()
			return
		}
		if status == "" {
			status = model.ProjectPlanning
		}
		modified, err := m.db.UpdateProject(ctx, id, db.ProjectUpdate{
			Name:         &name,
			Description:  &description,
			Status:       &status,
			SetStartDate: true,
			StartDate:    start,
			SetEndDate:   true,
			EndDate:      end,
		})
		if err != nil {
			m.message = "Error: " + err.Error()
			return
		}
		if modified {
			m.message = fmt.Sprintf("Project %q updated", name)
		} else {
			m.message = "No changes detected"
		}
	}

	m.mode = ModeNormal
	m.loadProjects()
}

func (m *Model) submitTaskForm() {
	ctx := context.Background()

	due, err := model.ParseDate(m.form.value(4))
	if err != nil {
		m.message = "Error: " + err.Error()
		return
	}

	var hours *float64
	if raw := m.form.value(5); raw != "" {
		f, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			m.message = fmt.Sprintf("Error: invalid number %q", raw)
			return
		}
		hours = &f
	}

	name := m.form.value(0)
	description := m.form.value(1)
	status := m.form.value(2)
	priority := m.form.value(3)

	if m.mode == ModeAddTask {
		project := m.selectedProject()
		if project == nil {
			m.message = "Error: no project selected"
			m.mode = ModeNormal
			return
		}
		_, err = m.db.AddTask(ctx, db.NewTask{
			ProjectID:      project.ID,
			Name:           name,
			Description:    description,
			Status:         status,
			Priority:       priority,
			DueDate:        due,
			EstimatedHours: hours,
		})
		if err != nil {
			m.message = "Error: " + err.Error()
			return
		}
		m.message = fmt.Sprintf("Task %q added", name)
	} else {
		id, err := db.ParseID(m.form.targetID)
		if err != nil {
			m.message = "Error: " + err.Error()
			return
		}
		if status == "" {
			status = model.TaskToDo
		}
		if priority == "" {
			priority = model.PriorityMedium
		}
		modified, err := m.db.UpdateTask(ctx, id, db.TaskUpdate{
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
			m.message = "Error: " + err.Error()
			return
		}
		if modified {
			m.message = fmt.Sprintf("Task %q updated", name)
		} else {
			m.message = "No changes detected"
		}
	}

	m.mode = ModeNormal
	m.loadTasks()
}

func (m *Model) submitLogForm() {
	ctx := context.Background()

	minutes, err := strconv.Atoi(m.form.value(0))
	if err != nil {
		m.message = fmt.Sprintf("Error: invalid minutes %q", m.form.value(0))
		return
	}
	logDate, err := model.ParseDate(m.form.value(1))
	if err != nil {
		m.message = "Error: " + err.Error()
		return
	}
	taskID, err := db.ParseID(m.form.targetID)
	if err != nil {
		m.message = "Error: " + err.Error()
		return
	}

	_, err = m.db.AddTimeLog(ctx, db.NewTimeLog{
		TaskID:          taskID,
		DurationMinutes: minutes,
		LogDate:         logDate,
		Notes:           m.form.value(2),
	})
	if err != nil {
		m.message = "Error: " + err.Error()
		return
	}

	m.message = fmt.Sprintf("Logged %s", model.FormatMinutes(minutes))
	m.mode = ModeNormal
	m.loadTasks()
}
