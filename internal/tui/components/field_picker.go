package components

import (
	"fmt"

	"github.com/campworks/cycleplan/internal/tui/tuistyles"
)

// FieldPicker displays one editable plan field.
type FieldPicker struct {
	Label     string
	Value     string
	IsFocused bool
}

// NewFieldPicker creates a new field picker
func NewFieldPicker(label, value string) *FieldPicker {
	return &FieldPicker{Label: label, Value: value}
}

// SetFocused sets the focus state
func (p *FieldPicker) SetFocused(focused bool) *FieldPicker {
	p.IsFocused = focused
	return p
}

// Render returns the label and value on two lines. The focused value is
// wrapped in arrows.
func (p *FieldPicker) Render() string {
	value := tuistyles.FieldValueStyle.Render(p.Value)
	if p.IsFocused {
		value = tuistyles.FocusedValueStyle.Render(fmt.Sprintf("‹ %s ›", p.Value))
	}
	return tuistyles.FieldLabelStyle.Render(p.Label) + "\n" + value
}
