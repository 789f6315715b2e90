package tui

import (
	"testing"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

func TestFormNavigationBindings(t *testing.T) {
	tab := tea.KeyMsg{Type: tea.KeyTab}
	shiftTab := tea.KeyMsg{Type: tea.KeyShiftTab}
	down := tea.KeyMsg{Type: tea.KeyDown}
	up := tea.KeyMsg{Type: tea.KeyUp}

	if !key.Matches(tab, keys.FormNext) || !key.Matches(down, keys.FormNext) {
		t.Error("tab and down should advance the form focus")
	}
	if !key.Matches(shiftTab, keys.FormPrev) || !key.Matches(up, keys.FormPrev) {
		t.Error("shift+tab and up should move the form focus back")
	}

	// Letters must reach the text inputs, not the navigation bindings.
	j := tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'j'}}
	k := tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'k'}}
	if key.Matches(j, keys.FormNext) || key.Matches(k, keys.FormPrev) {
		t.Error("plain letters must not be captured by form navigation")
	}
}
