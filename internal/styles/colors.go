package styles

import "github.com/charmbracelet/lipgloss"

// Monokai Pro color palette
const (
	Foreground = "#FCFCFA"

	Red    = "#FF6188" // Errors, fatal diagnostics
	Orange = "#FC9867" // Diagnostics
	Yellow = "#FFD866" // Keys
	Green  = "#A9DC76" // Success
	Cyan   = "#78DCE8" // Paths

	Comment = "#727072" // Dim text, help
)

// Common styles
var (
	SuccessStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(Green))
	ErrorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color(Red))
	WarningStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(Orange))
	DimStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color(Comment))
	KeyStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color(Yellow)).Bold(true)
	PathStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color(Cyan))
	ValueStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color(Foreground))
)
