// Package tuistyles holds the lipgloss palette shared by the TUI and its
// components.
package tuistyles

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/campworks/cycleplan/internal/domain"
)

var (
	ColorPrimary = lipgloss.Color("#7C3AED")
	ColorAccent  = lipgloss.Color("#F59E0B")
	ColorSuccess = lipgloss.Color("#10B981")
	ColorDanger  = lipgloss.Color("#EF4444")
	ColorInfo    = lipgloss.Color("#3B82F6")
	ColorMuted   = lipgloss.Color("#6B7280")
	ColorBorder  = lipgloss.Color("#4B5563")
)

var (
	AppStyle = lipgloss.NewStyle().Padding(1, 2)

	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorPrimary)

	SubtitleStyle = lipgloss.NewStyle().
			Foreground(ColorMuted)

	BorderStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorBorder).
			Padding(0, 1)

	FieldLabelStyle = lipgloss.NewStyle().
			Foreground(ColorMuted)

	FieldValueStyle = lipgloss.NewStyle().
			Bold(true)

	FocusedValueStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(ColorAccent).
				Underline(true)

	MetricLabelStyle = lipgloss.NewStyle().
				Foreground(ColorMuted)

	MetricValueStyle = lipgloss.NewStyle().
				Bold(true)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(ColorDanger).
			Bold(true)

	WarningStyle = lipgloss.NewStyle().
			Foreground(ColorAccent)
)

// PhaseStyle colors a month cell by its phase.
func PhaseStyle(p domain.Phase) lipgloss.Style {
	base := lipgloss.NewStyle().Padding(0, 1)
	switch p {
	case domain.PhaseOpenEnrollment:
		return base.Foreground(ColorSuccess)
	case domain.PhaseControlStart:
		return base.Foreground(ColorAccent).Bold(true)
	case domain.PhaseContingency:
		return base.Foreground(ColorDanger)
	default:
		return base.Foreground(ColorMuted)
	}
}
