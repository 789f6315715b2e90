package tui

import "github.com/charmbracelet/lipgloss"

// Color palette
var (
	// Priority colors
	UrgentColor = lipgloss.Color("#FF6B6B")
	HighColor   = lipgloss.Color("#FFB347")
	MediumColor = lipgloss.Color("#FFE66D")
	LowColor    = lipgloss.Color("#4ECDC4")

	// UI colors
	Primary   = lipgloss.Color("#4ECDC4")
	Surface   = lipgloss.Color("#16213e")
	TextMuted = lipgloss.Color("#888888")
	Border    = lipgloss.Color("#333333")
	Danger    = lipgloss.Color("#FF6B6B")
	Success   = lipgloss.Color("#95E1A3")
)

// Styles
var (
	HeaderStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(Primary).
			Padding(0, 1)

	PaneStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.NormalBorder()).
			BorderForeground(Border).
			Padding(0, 1)

	ActivePaneStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.NormalBorder()).
			BorderForeground(Primary).
			Padding(0, 1)

	PaneTitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(Primary)

	ItemStyle = lipgloss.NewStyle().
			Padding(0, 1)

	ItemSelectedStyle = lipgloss.NewStyle().
				Padding(0, 1).
				Background(Surface).
				Bold(true)

	DoneStyle = lipgloss.NewStyle().
			Foreground(TextMuted).
			Strikethrough(true).
			Padding(0, 1)

	OverdueStyle = lipgloss.NewStyle().
			Foreground(Danger).
			Bold(true)

	StatusBarStyle = lipgloss.NewStyle().
			Foreground(TextMuted).
			Padding(0, 1).
			BorderStyle(lipgloss.NormalBorder()).
			BorderTop(true).
			BorderForeground(Border)

	ModalStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Primary).
			Padding(1, 2)

	MessageStyle = lipgloss.NewStyle().
			Foreground(Success)

	HelpStyle = lipgloss.NewStyle().
			Foreground(TextMuted)
)

// priorityStyle returns the render style for a priority label.
func priorityStyle(priority string) lipgloss.Style {
	switch priority {
	case "Urgent":
		return lipgloss.NewStyle().Foreground(UrgentColor).Bold(true)
	case "High":
		return lipgloss.NewStyle().Foreground(HighColor).Bold(true)
	case "Medium":
		return lipgloss.NewStyle().Foreground(MediumColor)
	default:
		return lipgloss.NewStyle().Foreground(LowColor)
	}
}
