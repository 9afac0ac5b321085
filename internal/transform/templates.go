package transform

import (
	"fmt"
	"sort"
	"strings"

	"github.com/campworks/cycleplan/internal/domain"
	"github.com/shopspring/decimal"
)

// TemplateRegistry manages built-in plan templates
type TemplateRegistry struct {
	templates map[string]Template
}

// Template represents a named collection of transforms
type Template struct {
	Name        string
	Description string
	Transforms  []PlanTransform
}

// NewTemplateRegistry creates an empty template registry
func NewTemplateRegistry() *TemplateRegistry {
	return &TemplateRegistry{
		templates: make(map[string]Template),
	}
}

// Register adds a template to the registry
func (tr *TemplateRegistry) Register(t Template) {
	tr.templates[strings.ToLower(t.Name)] = t
}

// Get retrieves a template by name (case-insensitive)
func (tr *TemplateRegistry) Get(name string) (Template, bool) {
	t, ok := tr.templates[strings.ToLower(name)]
	return t, ok
}

// List returns all registered template names, sorted
func (tr *TemplateRegistry) List() []string {
	names := make([]string, 0, len(tr.templates))
	for name := range tr.templates {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// CreateBuiltInTemplates creates a template registry with common plan variations
func CreateBuiltInTemplates() *TemplateRegistry {
	registry := NewTemplateRegistry()

	// Control checkpoint
	registry.Register(Template{
		Name:        "early_control",
		Description: "Hold the control checkpoint one month earlier",
		Transforms:  []PlanTransform{&ShiftControl{Months: -1}},
	})
	registry.Register(Template{
		Name:        "late_control",
		Description: "Hold the control checkpoint one month later",
		Transforms:  []PlanTransform{&ShiftControl{Months: 1}},
	})
	registry.Register(Template{
		Name:        "strict_control",
		Description: "Migrate on the first missed installment",
		Transforms:  []PlanTransform{&SetTolerance{Months: 0}},
	})
	registry.Register(Template{
		Name:        "lenient_control",
		Description: "Tolerate two missed installments at control",
		Transforms:  []PlanTransform{&SetTolerance{Months: 2}},
	})

	// Cycle window
	registry.Register(Template{
		Name:        "short_cycle",
		Description: "Open the cycle one month later (one installment fewer)",
		Transforms:  []PlanTransform{&ShiftStart{Months: 1}},
	})
	registry.Register(Template{
		Name:        "long_cycle",
		Description: "Open the cycle one month earlier (one installment more)",
		Transforms:  []PlanTransform{&ShiftStart{Months: -1}},
	})

	// Pricing
	registry.Register(Template{
		Name:        "plus_10pct",
		Description: "Raise the total by 10%",
		Transforms:  []PlanTransform{&ScaleTotal{Percent: decimal.NewFromInt(10)}},
	})
	registry.Register(Template{
		Name:        "minus_5pct",
		Description: "Lower the total by 5%",
		Transforms:  []PlanTransform{&ScaleTotal{Percent: decimal.NewFromInt(-5)}},
	})

	// Combinations
	registry.Register(Template{
		Name:        "early_bird",
		Description: "Open one month earlier and hold control one month earlier",
		Transforms: []PlanTransform{
			&ShiftStart{Months: -1},
			&ShiftControl{Months: -1},
		},
	})

	return registry
}

// ApplyTemplate applies a template to a base plan
func ApplyTemplate(base *domain.PaymentPlan, template Template) (*domain.PaymentPlan, error) {
	if len(template.Transforms) == 0 {
		return base.DeepCopy(), nil
	}
	return ApplyTransforms(base, template.Transforms)
}

// ParseTemplateList parses a comma-separated list of template names
func ParseTemplateList(templateList string) []string {
	if templateList == "" {
		return nil
	}

	parts := strings.Split(templateList, ",")
	templates := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			templates = append(templates, trimmed)
		}
	}
	return templates
}

// GetTemplateHelp returns formatted help text for all templates
func GetTemplateHelp(registry *TemplateRegistry) string {
	if len(registry.templates) == 0 {
		return "No templates registered"
	}

	var sb strings.Builder
	sb.WriteString("Available Templates:\n\n")

	categories := map[string][]Template{}
	order := []string{"Control Checkpoint", "Cycle Window", "Pricing", "Combinations"}

	for _, name := range registry.List() {
		template := registry.templates[name]
		switch {
		case strings.HasSuffix(name, "_control"):
			categories["Control Checkpoint"] = append(categories["Control Checkpoint"], template)
		case strings.HasSuffix(name, "_cycle"):
			categories["Cycle Window"] = append(categories["Cycle Window"], template)
		case strings.HasSuffix(name, "pct"):
			categories["Pricing"] = append(categories["Pricing"], template)
		default:
			categories["Combinations"] = append(categories["Combinations"], template)
		}
	}

	for _, category := range order {
		templates := categories[category]
		if len(templates) == 0 {
			continue
		}

		sb.WriteString(fmt.Sprintf("%s:\n", category))
		for _, t := range templates {
			sb.WriteString(fmt.Sprintf("  %-20s %s\n", t.Name, t.Description))
		}
		sb.WriteString("\n")
	}

	sb.WriteString("Usage:\n")
	sb.WriteString("  cycleplan compare plans.yaml --with early_control,plus_10pct\n")
	sb.WriteString("  cycleplan compare plans.yaml --transform shift_start:months=1\n")

	return sb.String()
}
