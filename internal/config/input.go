package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/campworks/cycleplan/internal/calculation"
	"github.com/campworks/cycleplan/internal/domain"
	ierr "github.com/campworks/cycleplan/internal/errors"
	"github.com/go-playground/validator/v10"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// InputParser handles parsing of plan files
type InputParser struct {
	validate *validator.Validate
}

// NewInputParser creates a new input parser
func NewInputParser() *InputParser {
	return &InputParser{validate: validator.New()}
}

// LoadFromFile loads a plan file from disk
func (ip *InputParser) LoadFromFile(filename string) (*domain.Configuration, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}
	return ip.Parse(data)
}

// Parse decodes and validates plan file content
func (ip *InputParser) Parse(data []byte) (*domain.Configuration, error) {
	var config domain.Configuration
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, ierr.WithError(err).
			WithHint("the plan file must be valid YAML").
			Mark(ierr.ErrValidation)
	}

	if err := ip.ValidateConfiguration(&config); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return &config, nil
}

// ValidateConfiguration validates field ranges and the rules that span plans
// and enrollments.
func (ip *InputParser) ValidateConfiguration(config *domain.Configuration) error {
	if config == nil {
		return ierr.NewError("configuration is required").Mark(ierr.ErrValidation)
	}
	if err := ip.validateStruct(config); err != nil {
		return err
	}

	for i := range config.Plans {
		if err := ip.validatePlan(&config.Plans[i]); err != nil {
			return fmt.Errorf("plan %d (%s) validation failed: %w", i, config.Plans[i].Name, err)
		}
	}
	if err := ip.validatePlanSet(config); err != nil {
		return err
	}

	for i, enrollment := range config.Enrollments {
		if err := ip.validateEnrollment(config, enrollment); err != nil {
			return fmt.Errorf("enrollment %d (%s) validation failed: %w", i, enrollment.Participant, err)
		}
	}
	return nil
}

func (ip *InputParser) validateStruct(config *domain.Configuration) error {
	err := ip.validate.Struct(config)
	if err == nil {
		return nil
	}

	var validateErrs validator.ValidationErrors
	if ierr.As(err, &validateErrs) {
		fields := lo.Map(validateErrs, func(fe validator.FieldError, _ int) string {
			return fmt.Sprintf("%s failed %q", fe.Namespace(), fe.Tag())
		})
		return ierr.WithError(err).
			WithHintf("invalid fields: %s", strings.Join(fields, "; ")).
			Mark(ierr.ErrValidation)
	}
	return ierr.WithError(err).Mark(ierr.ErrValidation)
}

// validatePlan checks a single plan
func (ip *InputParser) validatePlan(plan *domain.PaymentPlan) error {
	if err := calculation.ValidatePlanWindow(plan.Cycle); err != nil {
		return err
	}
	if !plan.TotalAmount.GreaterThan(decimal.Zero) {
		return ierr.NewErrorf("total amount %s must be positive", plan.TotalAmount.String()).
			Mark(ierr.ErrValidation)
	}
	if plan.FixedInstallmentAmount != nil && !plan.FixedInstallmentAmount.GreaterThan(decimal.Zero) {
		return ierr.NewErrorf("fixed installment amount %s must be positive", plan.FixedInstallmentAmount.String()).
			Mark(ierr.ErrValidation)
	}
	return nil
}

// validatePlanSet checks the rules between plans
func (ip *InputParser) validatePlanSet(config *domain.Configuration) error {
	names := lo.Map(config.Plans, func(p domain.PaymentPlan, _ int) string { return p.Name })
	if dups := lo.FindDuplicates(names); len(dups) > 0 {
		return ierr.NewErrorf("duplicate plan names: %s", strings.Join(dups, ", ")).
			Mark(ierr.ErrConfiguration)
	}

	primaries := lo.CountBy(config.Plans, func(p domain.PaymentPlan) bool { return p.Kind == domain.PlanKindPrimary })
	if primaries != 1 {
		return ierr.NewErrorf("exactly one primary plan is required, found %d", primaries).
			Mark(ierr.ErrConfiguration)
	}
	contingencies := lo.CountBy(config.Plans, func(p domain.PaymentPlan) bool { return p.Kind == domain.PlanKindContingency })
	if contingencies > 1 {
		return ierr.NewErrorf("at most one contingency plan is allowed, found %d", contingencies).
			Mark(ierr.ErrConfiguration)
	}

	primary, _ := config.Primary()
	contingency, _ := config.Contingency()
	return calculation.ValidatePlanPair(primary, contingency)
}

// validateEnrollment checks an enrollment against the plan it references
func (ip *InputParser) validateEnrollment(config *domain.Configuration, enrollment domain.Enrollment) error {
	plan, ok := config.PlanByName(enrollment.Plan)
	if !ok {
		return ierr.NewErrorf("plan %q does not exist", enrollment.Plan).
			WithHintf("known plans: %s", strings.Join(lo.Map(config.Plans, func(p domain.PaymentPlan, _ int) string { return p.Name }), ", ")).
			Mark(ierr.ErrNotFound)
	}

	total, err := calculation.CountInstallments(plan.Cycle.StartMonth, plan.Cycle.EndMonth)
	if err != nil {
		return err
	}
	if enrollment.PaidInstallments > total {
		return ierr.NewErrorf("%d paid installments exceed the %d installments of %s",
			enrollment.PaidInstallments, total, plan.Name).
			Mark(ierr.ErrValidation)
	}
	return nil
}
