package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/fennwick/projectpilot/internal/model"
)

// View renders the UI
func (m Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	var b strings.Builder
	b.WriteString(HeaderStyle.Render("Project Pilot"))
	b.WriteString("\n")

	switch m.mode {
	case ModeHelp:
		b.WriteString(m.viewHelp())
	case ModeConfirmDelete:
		b.WriteString(m.viewConfirm())
	case ModeNormal:
		b.WriteString(m.viewPanes())
	default:
		b.WriteString(m.viewForm())
	}

	b.WriteString("\n")
	b.WriteString(m.viewStatusBar())
	return b.String()
}

func (m Model) viewPanes() string {
	if m.loadErr != nil {
		return ModalStyle.Render(
			OverdueStyle.Render("Database unreachable") +
				"\n\nCheck that MongoDB is running, then press r to retry.")
	}

	projects := m.viewProjectsPane()
	tasks := m.viewTasksPane()
	logs := m.viewLogsPane()

	return lipgloss.JoinHorizontal(lipgloss.Top, projects, tasks, logs)
}

func paneFrame(active bool) lipgloss.Style {
	if active {
		return ActivePaneStyle
	}
	return PaneStyle
}

func (m Model) viewProjectsPane() string {
	var lines []string
	lines = append(lines, PaneTitleStyle.Render("Projects"))

	if len(m.projects) == 0 {
		lines = append(lines, HelpStyle.Render("(none — press a)"))
	}
	for i, p := range m.projects {
		label := fmt.Sprintf("%s [%s]", truncate(p.Name, 20), p.Status)
		if i == m.projCursor {
			lines = append(lines, ItemSelectedStyle.Render("> "+label))
		} else {
			lines = append(lines, ItemStyle.Render("  "+label))
		}
	}

	return paneFrame(m.pane == PaneProjects).Width(30).Render(strings.Join(lines, "\n"))
}

func (m Model) viewTasksPane() string {
	var lines []string
	title := "Tasks"
	if project := m.selectedProject(); project != nil {
		title = "Tasks — " + truncate(project.Name, 18)
	}
	lines = append(lines, PaneTitleStyle.Render(title)+HelpStyle.Render("  (sort: "+m.taskSort+")"))

	if len(m.tasks) == 0 {
		lines = append(lines, HelpStyle.Render("(no tasks)"))
	}
	for i, t := range m.tasks {
		badge := priorityStyle(t.Priority).Render(t.Priority)
		name := truncate(t.Name, 24)
		if t.IsOverdue() {
			name = OverdueStyle.Render(name)
		}
		label := fmt.Sprintf("%s %s [%s] %s",
			badge, name, t.Status, model.FormatMinutes(t.TotalLoggedMinutes))
		if t.Status == model.TaskDone {
			label = DoneStyle.Render(fmt.Sprintf("%s [%s]", truncate(t.Name, 24), t.Status))
		}
		if i == m.taskCursor {
			lines = append(lines, ItemSelectedStyle.Render("> "+label))
		} else {
			lines = append(lines, ItemStyle.Render("  "+label))
		}
	}

	return paneFrame(m.pane == PaneTasks).Width(48).Render(strings.Join(lines, "\n"))
}

func (m Model) viewLogsPane() string {
	var lines []string
	title := "Time Logs"
	if task := m.selectedTask(); task != nil {
		title = fmt.Sprintf("Time Logs — %s", model.FormatMinutes(task.TotalLoggedMinutes))
	}
	lines = append(lines, PaneTitleStyle.Render(title))

	if len(m.logs) == 0 {
		lines = append(lines, HelpStyle.Render("(no time logged)"))
	}
	for i, l := range m.logs {
		label := fmt.Sprintf("%s  %s  %s",
			l.LogDate.Format(model.DateFormat),
			model.FormatMinutes(l.DurationMinutes),
			truncate(l.Notes, 16))
		if i == m.logCursor {
			lines = append(lines, ItemSelectedStyle.Render("> "+label))
		} else {
			lines = append(lines, ItemStyle.Render("  "+label))
		}
	}

	return paneFrame(m.pane == PaneLogs).Width(40).Render(strings.Join(lines, "\n"))
}

func (m Model) viewForm() string {
	var lines []string
	lines = append(lines, PaneTitleStyle.Render(m.form.title), "")

	for i, input := range m.form.inputs {
		marker := "  "
		if i == m.form.focus {
			marker = "> "
		}
		lines = append(lines, fmt.Sprintf("%s%-16s %s", marker, m.form.labels[i], input.View()))
	}

	lines = append(lines, "", HelpStyle.Render("enter next/submit · tab cycle · esc cancel"))
	return ModalStyle.Render(strings.Join(lines, "\n"))
}

func (m Model) viewConfirm() string {
	prompt := fmt.Sprintf("Delete %s %q", m.confirm.kind, m.confirm.name)
	switch m.confirm.kind {
	case "project":
		prompt += " and ALL of its tasks and time logs?"
	case "task":
		prompt += " and ALL of its time logs?"
	}
	return ModalStyle.Render(
		OverdueStyle.Render(prompt) + "\n\n" + HelpStyle.Render("y confirm · n cancel"))
}

func (m Model) viewHelp() string {
	help := []string{
		PaneTitleStyle.Render("Keys"),
		"",
		"↑/k ↓/j     move",
		"tab ←/h →/l  switch pane",
		"a            add (project/task/log, by pane)",
		"e            edit selected project/task",
		"d            delete selected project/task",
		"t            log time on selected task",
		"s            cycle task sort",
		"r            refresh from database",
		"q            quit",
	}
	return ModalStyle.Render(strings.Join(help, "\n"))
}

func (m Model) viewStatusBar() string {
	text := m.message
	if text == "" {
		text = "a add · e edit · d delete · t log time · s sort · ? help · q quit"
		return StatusBarStyle.Width(m.width).Render(HelpStyle.Render(text))
	}
	if strings.HasPrefix(text, "Error:") {
		return StatusBarStyle.Width(m.width).Render(OverdueStyle.Render(text))
	}
	return StatusBarStyle.Width(m.width).Render(MessageStyle.Render(text))
}
