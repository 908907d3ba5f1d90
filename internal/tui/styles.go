package tui

import "github.com/charmbracelet/lipgloss"

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205"))
	sectionStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39")).MarginTop(1)

	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	runningStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("33"))
	failureStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)
	pendingStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
)

func statusIcon(s actionStatus) string {
	switch s {
	case actionSuccess:
		return successStyle.Render("✓")
	case actionRunning:
		return runningStyle.Render("⏳")
	case actionFailed:
		return failureStyle.Render("✗")
	default:
		return pendingStyle.Render("…")
	}
}
