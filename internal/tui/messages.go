package tui

import (
	"github.com/campworks/cycleplan/internal/domain"
)

// ErrorMsg displays an error to the user
type ErrorMsg struct {
	Err error
}

// ConfigLoadedMsg signals the plan file has been loaded
type ConfigLoadedMsg struct {
	Config *domain.Configuration
}
