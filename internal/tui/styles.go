package tui

import "github.com/charmbracelet/lipgloss"

var (
	colorAccent  = lipgloss.Color("#007BFF")
	colorDanger  = lipgloss.Color("#FF6347")
	colorSuccess = lipgloss.Color("#32CD32")
	colorDim     = lipgloss.Color("#888888")
	colorText    = lipgloss.Color("#FFFFFF")
)

var (
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorAccent).
			MarginBottom(1)

	ButtonStyle = lipgloss.NewStyle().
			Foreground(colorText).
			Background(colorAccent).
			Padding(0, 1)

	LabelStyle = lipgloss.NewStyle().
			Foreground(colorDim)

	FocusedLabelStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(colorAccent)

	SelectedStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorText)

	ItemStyle = lipgloss.NewStyle()

	CompletedStyle = lipgloss.NewStyle().
			Strikethrough(true).
			Foreground(colorDim)

	ErrorStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorDanger)

	SuccessStyle = lipgloss.NewStyle().
			Foreground(colorSuccess)

	HelpStyle = lipgloss.NewStyle().
			Foreground(colorDim).
			MarginTop(1)
)
