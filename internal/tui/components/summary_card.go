package components

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/campworks/cycleplan/internal/tui/tuistyles"
)

// SummaryCard displays a single metric with a label
type SummaryCard struct {
	Label string
	Value string
	Width int
}

// NewSummaryCard creates a new summary card
func NewSummaryCard(label, value string) *SummaryCard {
	return &SummaryCard{Label: label, Value: value, Width: 20}
}

// Render returns the bordered card
func (c *SummaryCard) Render() string {
	content := tuistyles.MetricLabelStyle.Render(c.Label) + "\n" + tuistyles.MetricValueStyle.Render(c.Value)
	return tuistyles.BorderStyle.Width(c.Width).Render(content)
}

// CardRow lays cards out side by side.
func CardRow(cards ...*SummaryCard) string {
	rendered := make([]string, 0, len(cards))
	for _, c := range cards {
		rendered = append(rendered, c.Render())
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, rendered...)
}
