package compare

import (
	"context"
	"fmt"

	"github.com/campworks/cycleplan/internal/calculation"
	"github.com/campworks/cycleplan/internal/domain"
	ierr "github.com/campworks/cycleplan/internal/errors"
	"github.com/campworks/cycleplan/internal/transform"
)

// CompareEngine orchestrates plan comparison
type CompareEngine struct {
	CalcEngine        *calculation.Engine
	MetricsCalculator *MetricsCalculator
	TemplateRegistry  *transform.TemplateRegistry
	TransformRegistry *transform.TransformRegistry
}

// NewCompareEngine creates a new comparison engine
func NewCompareEngine(calcEngine *calculation.Engine) *CompareEngine {
	if calcEngine == nil {
		calcEngine = calculation.NewEngine()
	}
	return &CompareEngine{
		CalcEngine:        calcEngine,
		MetricsCalculator: NewMetricsCalculator(),
		TemplateRegistry:  transform.CreateBuiltInTemplates(),
		TransformRegistry: transform.NewTransformRegistry(),
	}
}

// CompareOptions configures comparison behavior
type CompareOptions struct {
	BasePlanName string       // Plan to compare against; empty means the primary plan
	Templates    []string     // Template names, each producing one alternative
	Transforms   []string     // Transform specs ("name:k=v"), each producing one alternative
	CurrentMonth domain.Month // Optional month used for arrears metrics
}

// Compare evaluates the base plan against what-if variations of itself.
func (ce *CompareEngine) Compare(
	ctx context.Context,
	config *domain.Configuration,
	options CompareOptions,
) (*ComparisonSet, error) {

	basePlan, err := findBase(config, options.BasePlanName)
	if err != nil {
		return nil, err
	}

	baseResult, err := ce.metrics(config, basePlan, options.CurrentMonth)
	if err != nil {
		return nil, fmt.Errorf("failed to calculate base plan: %w", err)
	}

	alternatives := []ComparisonResult{}

	for _, templateName := range options.Templates {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		template, ok := ce.TemplateRegistry.Get(templateName)
		if !ok {
			return nil, ierr.NewErrorf("template %s not found", templateName).
				WithHint("run 'cycleplan transforms' to list templates").
				Mark(ierr.ErrNotFound)
		}

		modified, err := transform.ApplyTemplate(basePlan, template)
		if err != nil {
			return nil, fmt.Errorf("failed to apply template %s: %w", templateName, err)
		}
		modified.Name = basePlan.Name + "_" + templateName

		alt, err := ce.alternative(config, modified, template.Description, baseResult, options.CurrentMonth)
		if err != nil {
			return nil, fmt.Errorf("failed to calculate plan %s: %w", templateName, err)
		}
		alternatives = append(alternatives, alt)
	}

	for _, spec := range options.Transforms {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		t, err := ce.TransformRegistry.ParseTransformSpec(spec)
		if err != nil {
			return nil, fmt.Errorf("invalid transform %q: %w", spec, err)
		}

		modified, err := transform.ApplyTransforms(basePlan, []transform.PlanTransform{t})
		if err != nil {
			return nil, err
		}
		modified.Name = basePlan.Name + "_" + t.Name()

		alt, err := ce.alternative(config, modified, t.Description(), baseResult, options.CurrentMonth)
		if err != nil {
			return nil, fmt.Errorf("failed to calculate plan %s: %w", spec, err)
		}
		alternatives = append(alternatives, alt)
	}

	return ce.newSet(config, basePlan.Name, baseResult, alternatives, options.CurrentMonth), nil
}

// ComparePlans compares plans defined in the plan file, typically Plan A
// against Plan B.
func (ce *CompareEngine) ComparePlans(
	ctx context.Context,
	config *domain.Configuration,
	basePlanName string,
	alternativePlanNames []string,
	currentMonth domain.Month,
) (*ComparisonSet, error) {

	basePlan, err := findBase(config, basePlanName)
	if err != nil {
		return nil, err
	}
	if len(alternativePlanNames) == 0 {
		for _, p := range config.Plans {
			if p.Name != basePlan.Name {
				alternativePlanNames = append(alternativePlanNames, p.Name)
			}
		}
	}

	baseResult, err := ce.metrics(config, basePlan, currentMonth)
	if err != nil {
		return nil, fmt.Errorf("failed to calculate base plan: %w", err)
	}

	alternatives := []ComparisonResult{}
	for _, altName := range alternativePlanNames {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		plan, ok := config.PlanByName(altName)
		if !ok {
			return nil, ierr.NewErrorf("alternative plan %s not found", altName).Mark(ierr.ErrNotFound)
		}

		alt, err := ce.alternative(config, plan, string(plan.Kind)+" plan", baseResult, currentMonth)
		if err != nil {
			return nil, fmt.Errorf("failed to calculate plan %s: %w", altName, err)
		}
		alternatives = append(alternatives, alt)
	}

	return ce.newSet(config, basePlan.Name, baseResult, alternatives, currentMonth), nil
}

func (ce *CompareEngine) metrics(config *domain.Configuration, plan *domain.PaymentPlan, currentMonth domain.Month) (ComparisonResult, error) {
	timeline, err := ce.CalcEngine.PlanTimeline(plan, config.Campaign.CycleYear, calculation.TimelineOptions{CurrentMonth: currentMonth})
	if err != nil {
		return ComparisonResult{}, err
	}
	result := ce.MetricsCalculator.CalculateMetrics(timeline)
	result.Description = string(plan.Kind) + " plan"
	return result, nil
}

func (ce *CompareEngine) alternative(config *domain.Configuration, plan *domain.PaymentPlan, description string, base ComparisonResult, currentMonth domain.Month) (ComparisonResult, error) {
	result, err := ce.metrics(config, plan, currentMonth)
	if err != nil {
		return ComparisonResult{}, err
	}
	result.Description = description
	return ce.MetricsCalculator.CalculateComparison(result, base), nil
}

func (ce *CompareEngine) newSet(config *domain.Configuration, baseName string, base ComparisonResult, alternatives []ComparisonResult, currentMonth domain.Month) *ComparisonSet {
	compSet := &ComparisonSet{
		BasePlanName:       baseName,
		BaseResult:         &base,
		AlternativeResults: alternatives,
		Currency:           config.Campaign.Currency,
		CurrentMonth:       currentMonth,
	}
	compSet.Recommendations = GenerateRecommendations(compSet)
	return compSet
}

func findBase(config *domain.Configuration, name string) (*domain.PaymentPlan, error) {
	if config == nil {
		return nil, ierr.NewError("configuration is required").Mark(ierr.ErrValidation)
	}
	if name == "" {
		plan, ok := config.Primary()
		if !ok {
			return nil, ierr.NewError("no primary plan to compare against").Mark(ierr.ErrNotFound)
		}
		return plan, nil
	}
	plan, ok := config.PlanByName(name)
	if !ok {
		return nil, ierr.NewErrorf("base plan %s not found in configuration", name).Mark(ierr.ErrNotFound)
	}
	return plan, nil
}
