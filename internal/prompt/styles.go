package prompt

import "github.com/charmbracelet/lipgloss"

var (
	promptStyle = lipgloss.NewStyle().Bold(true)
	answerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
	cursorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("6")).Bold(true)
	dimStyle    = lipgloss.NewStyle().Faint(true)
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))

	pendingMark = lipgloss.NewStyle().Foreground(lipgloss.Color("3")).Render("?")
	doneMark    = lipgloss.NewStyle().Foreground(lipgloss.Color("2")).Render("✔")
)

const maskedAnswer = "********"
