package tui

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/fennwick/projectpilot/internal/model"
)

// formField describes one labeled input in a modal form.
type formField struct {
	label       string
	placeholder string
	value       string
}

// form is a modal stack of labeled text inputs with one focused at a time.
type form struct {
	title    string
	labels   []string
	inputs   []textinput.Model
	focus    int
	targetID string // hex id of the document being edited; empty for adds
}

func newForm(title, targetID string, fields []formField) form {
	f := form{
		title:    title,
		targetID: targetID,
		labels:   make([]string, len(fields)),
		inputs:   make([]textinput.Model, len(fields)),
	}
	for i, field := range fields {
		ti := textinput.New()
		ti.Placeholder = field.placeholder
		ti.SetValue(field.value)
		ti.CharLimit = 256
		ti.Width = 40
		if i == 0 {
			ti.Focus()
		}
		f.labels[i] = field.label
		f.inputs[i] = ti
	}
	return f
}

// value returns the trimmed content of input i.
func (f *form) value(i int) string {
	return strings.TrimSpace(f.inputs[i].Value())
}

func (f *form) focusNext() {
	f.inputs[f.focus].Blur()
	f.focus = (f.focus + 1) % len(f.inputs)
	f.inputs[f.focus].Focus()
}

func (f *form) focusPrev() {
	f.inputs[f.focus].Blur()
	f.focus = (f.focus + len(f.inputs) - 1) % len(f.inputs)
	f.inputs[f.focus].Focus()
}

// update forwards a message to the focused input.
func (f *form) update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	f.inputs[f.focus], cmd = f.inputs[f.focus].Update(msg)
	return cmd
}

// Form constructors. Edit forms are pre-filled from the current document.

func projectForm(title, targetID string, p *model.Project) form {
	fields := []formField{
		{label: "Name", placeholder: "Project name"},
		{label: "Description"},
		{label: "Status", placeholder: strings.Join(model.ProjectStatuses, " | ")},
		{label: "Start date", placeholder: "YYYY-MM-DD"},
		{label: "End date", placeholder: "YYYY-MM-DD"},
	}
	if p != nil {
		fields[0].value = p.Name
		fields[1].value = p.Description
		fields[2].value = p.Status
		fields[3].value = model.FormatDate(p.StartDate)
		fields[4].value = model.FormatDate(p.EndDate)
	}
	return newForm(title, targetID, fields)
}

func taskForm(title, targetID string, t *model.Task) form {
	fields := []formField{
		{label: "Name", placeholder: "Task name"},
		{label: "Description"},
		{label: "Status", placeholder: strings.Join(model.TaskStatuses, " | ")},
		{label: "Priority", placeholder: strings.Join(model.TaskPriorities, " | ")},
		{label: "Due date", placeholder: "YYYY-MM-DD"},
		{label: "Estimated hours", placeholder: "e.g. 4.5"},
	}
	if t != nil {
		fields[0].value = t.Name
		fields[1].value = t.Description
		fields[2].value = t.Status
		fields[3].value = t.Priority
		fields[4].value = model.FormatDate(t.DueDate)
		if t.EstimatedHours != nil {
			fields[5].value = strconv.FormatFloat(*t.EstimatedHours, 'f', -1, 64)
		}
	}
	return newForm(title, targetID, fields)
}

func logTimeForm(taskID string) form {
	return newForm("Log Time", taskID, []formField{
		{label: "Minutes", placeholder: "e.g. 90"},
		{label: "Date", placeholder: "YYYY-MM-DD (blank = today)"},
		{label: "Notes"},
	})
}
