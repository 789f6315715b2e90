package tui

import tea "github.com/charmbracelet/bubbletea"

// Init implements tea.Model. Data is loaded synchronously in NewModel,
// so there is no startup command.
func (m Model) Init() tea.Cmd {
	return nil
}
