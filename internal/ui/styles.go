package ui

import "github.com/charmbracelet/lipgloss"

// Colors used in the application.
var (
	colorPrimary   = lipgloss.Color("62")  // Purple
	colorSecondary = lipgloss.Color("241") // Gray
	colorMuted     = lipgloss.Color("240") // Darker gray
	colorHighlight = lipgloss.Color("212") // Pink
	colorSuccess   = lipgloss.Color("78")  // Green
	colorWarn      = lipgloss.Color("214") // Orange
	colorDanger    = lipgloss.Color("203") // Red
)

// SelectedItem style for the currently highlighted paper.
var SelectedItem = lipgloss.NewStyle().
	Bold(true).
	Foreground(lipgloss.Color("255")).
	Background(colorPrimary).
	Padding(0, 1)

// NormalItem style for unselected, unread papers.
var NormalItem = lipgloss.NewStyle().
	Foreground(lipgloss.Color("255")).
	Padding(0, 1)

// ReadItem style for papers already opened.
var ReadItem = lipgloss.NewStyle().
	Foreground(colorSecondary).
	Padding(0, 1)

// Header style for the top bar.
var Header = lipgloss.NewStyle().
	Bold(true).
	Foreground(lipgloss.Color("255")).
	Background(lipgloss.Color("236")).
	Padding(0, 1)

// StatusBar style for the bottom status bar.
var StatusBar = lipgloss.NewStyle().
	Foreground(lipgloss.Color("255")).
	Background(lipgloss.Color("236")).
	Padding(0, 1)

// ErrorStyle for transient error lines above the status bar.
var ErrorStyle = lipgloss.NewStyle().
	Foreground(lipgloss.Color("255")).
	Background(colorDanger).
	Padding(0, 1)

// HelpStyle for hint text and empty states.
var HelpStyle = lipgloss.NewStyle().
	Foreground(colorMuted).
	Padding(0, 1)

// SectionTitle for dashboard and detail section headers.
var SectionTitle = lipgloss.NewStyle().
	Bold(true).
	Foreground(colorHighlight).
	MarginTop(1).
	Padding(0, 1)

// FilterLabel for the filter bar field names.
var FilterLabel = lipgloss.NewStyle().
	Foreground(colorSecondary)

// Bar style for dashboard distribution bars.
var Bar = lipgloss.NewStyle().
	Foreground(colorPrimary)

// Score badge styles by severity bucket.
var (
	ScoreNone = lipgloss.NewStyle().
			Foreground(colorMuted)

	ScoreLow = lipgloss.NewStyle().
			Foreground(colorSecondary)

	ScoreMedium = lipgloss.NewStyle().
			Foreground(colorWarn).
			Bold(true)

	ScoreHigh = lipgloss.NewStyle().
			Foreground(colorSuccess).
			Bold(true)
)

// Job status styles for the actions view.
var (
	JobIdle      = lipgloss.NewStyle().Foreground(colorMuted)
	JobRunning   = lipgloss.NewStyle().Foreground(colorHighlight).Bold(true)
	JobCompleted = lipgloss.NewStyle().Foreground(colorSuccess)
	JobFailed    = lipgloss.NewStyle().Foreground(colorDanger).Bold(true)
)
