package tui

import (
	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/campworks/cycleplan/internal/calculation"
	"github.com/campworks/cycleplan/internal/config"
	"github.com/campworks/cycleplan/internal/domain"
	"github.com/campworks/cycleplan/internal/wizard"
)

// Field identifies the plan field under edit.
type Field int

const (
	FieldStart Field = iota
	FieldEnd
	FieldControl
	FieldTolerance
	fieldCount
)

func (f Field) String() string {
	switch f {
	case FieldStart:
		return "Start"
	case FieldEnd:
		return "End"
	case FieldControl:
		return "Control"
	case FieldTolerance:
		return "Tolerance"
	default:
		return "Unknown"
	}
}

// Model represents the entire application state
type Model struct {
	// Terminal dimensions
	width  int
	height int

	configPath string
	config     *domain.Configuration
	plans      []domain.PaymentPlan
	planIndex  int

	step         wizard.PlanStep
	focused      Field
	currentMonth domain.Month

	// Derived on every edit
	summary    domain.CycleSummary
	projection *domain.EnrollmentProjection
	warning    error

	keys keyMap
	help help.Model

	loading bool
	err     error
}

// NewModel creates a model that loads its plans from configPath. An empty
// path starts from a default March to January plan.
func NewModel(configPath string) Model {
	m := Model{
		configPath: configPath,
		keys:       defaultKeyMap(),
		help:       help.New(),
		width:      80,
		height:     24,
		loading:    configPath != "",
	}
	return m.withPlans([]domain.PaymentPlan{defaultPlan()})
}

// NewModelWithPlans creates a model over plans already in memory.
func NewModelWithPlans(plans ...domain.PaymentPlan) Model {
	m := NewModel("")
	if len(plans) == 0 {
		return m
	}
	return m.withPlans(plans)
}

func defaultPlan() domain.PaymentPlan {
	return domain.PaymentPlan{
		Name:  "New plan",
		Kind:  domain.PlanKindPrimary,
		Cycle: wizard.NewPlanStep(3, 1, 7).Cycle(),
	}
}

// Init initializes the model (required by tea.Model interface)
func (m Model) Init() tea.Cmd {
	if m.configPath == "" {
		return nil
	}
	return loadConfigCmd(m.configPath)
}

// loadConfigCmd returns a command that loads the plan file
func loadConfigCmd(path string) tea.Cmd {
	return func() tea.Msg {
		cfg, err := config.NewInputParser().LoadFromFile(path)
		if err != nil {
			return ErrorMsg{Err: err}
		}
		return ConfigLoadedMsg{Config: cfg}
	}
}

func (m Model) withPlans(plans []domain.PaymentPlan) Model {
	m.plans = plans
	m.planIndex = 0
	return m.selectPlan()
}

func (m Model) selectPlan() Model {
	m.step = wizard.PlanStepFrom(m.plans[m.planIndex].Cycle)
	return m.recalculate()
}

// recalculate refreshes the derived summary from the edited step. An
// invalid window is reported as a warning and the timeline still renders.
func (m Model) recalculate() Model {
	summary, err := wizard.Preview(m.step)
	if err != nil {
		m.summary = domain.CycleSummary{}
		m.projection = nil
		m.warning = err
		return m
	}
	m.summary = summary
	m.warning = calculation.ValidatePlanWindow(m.step.Cycle())

	m.projection = nil
	if m.currentMonth != 0 && m.warning == nil {
		plan := m.plans[m.planIndex]
		plan.Cycle = m.step.Cycle()
		projection, err := wizard.Commit(wizard.NewEnrollmentStep(plan, m.currentMonth))
		if err != nil {
			m.warning = err
		} else {
			m.projection = &projection
		}
	}
	return m
}

// Plan returns the selected plan with the edited cycle applied.
func (m Model) Plan() domain.PaymentPlan {
	plan := *m.plans[m.planIndex].DeepCopy()
	plan.Cycle = m.step.Cycle()
	return plan
}

// Summary returns the summary of the edited cycle.
func (m Model) Summary() domain.CycleSummary {
	return m.summary
}
