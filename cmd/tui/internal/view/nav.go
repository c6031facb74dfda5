package view

import (
	tea "github.com/charmbracelet/bubbletea"
)

// BackMsg tells the menu driver to leave the current view and show the
// main menu again.
type BackMsg struct{}

// Back is the tea.Cmd every view returns on Esc.
func Back() tea.Msg {
	return BackMsg{}
}
