package tui

import (
	"github.com/charmbracelet/lipgloss"
)

// ANSI 256 color palette
var (
	colorCleanGreen = lipgloss.Color("71")
	colorDirtyAmber = lipgloss.Color("179")
	colorCyan       = lipgloss.Color("73")
	colorDim        = lipgloss.Color("242")
	colorBarEmpty   = lipgloss.Color("238")
)

// Braille spinner frames
var spinnerFrames = []string{"⣾", "⣽", "⣻", "⢿", "⡿", "⣟", "⣯", "⣷"}

var (
	styleLabel   = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	styleDim     = lipgloss.NewStyle().Foreground(colorDim)
	styleCount   = lipgloss.NewStyle().Foreground(colorCleanGreen)
	styleAmber   = lipgloss.NewStyle().Foreground(colorDirtyAmber)
	styleSpinner = lipgloss.NewStyle().Foreground(colorCyan)
)
