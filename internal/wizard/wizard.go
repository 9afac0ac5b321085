package wizard

import (
	"strings"

	"github.com/campworks/cycleplan/internal/calculation"
	"github.com/campworks/cycleplan/internal/domain"
	ierr "github.com/campworks/cycleplan/internal/errors"
	"github.com/shopspring/decimal"
)

// Preview returns the cycle summary shown next to the plan step while the
// administrator edits it.
func Preview(step PlanStep) (domain.CycleSummary, error) {
	return calculation.Summarize(step.Cycle())
}

// BuildPlan validates the authoring steps together and assembles the plan.
func BuildPlan(name string, kind domain.PlanKind, plan PlanStep, amount AmountStep) (*domain.PaymentPlan, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ierr.NewError("plan name is required").Mark(ierr.ErrValidation)
	}
	if kind != domain.PlanKindPrimary && kind != domain.PlanKindContingency {
		return nil, ierr.NewErrorf("unknown plan kind %q", kind).
			WithHint("kind is primary or contingency").
			Mark(ierr.ErrValidation)
	}

	cycle := plan.Cycle()
	if err := calculation.ValidatePlanWindow(cycle); err != nil {
		return nil, err
	}

	if !amount.Total().GreaterThan(decimal.Zero) {
		return nil, ierr.NewErrorf("total amount %s must be positive", amount.Total().String()).
			Mark(ierr.ErrValidation)
	}

	result := &domain.PaymentPlan{
		Name:        name,
		Kind:        kind,
		Cycle:       cycle,
		TotalAmount: amount.Total(),
	}
	if fixed, ok := amount.Fixed(); ok {
		if !fixed.GreaterThan(decimal.Zero) {
			return nil, ierr.NewErrorf("fixed installment amount %s must be positive", fixed.String()).
				Mark(ierr.ErrValidation)
		}
		result.FixedInstallmentAmount = &fixed
	}
	return result, nil
}

// Commit returns what the participant owes when enrolling in the chosen plan
// during the step's current month.
func Commit(step EnrollmentStep) (domain.EnrollmentProjection, error) {
	plan := step.Plan()
	return calculation.ProjectEnrollment(plan.Cycle, step.CurrentMonth(), plan.TotalAmount)
}

// Enroll builds the enrollment record of a participant who commits to the step's plan.
func Enroll(step EnrollmentStep, participant string) (domain.Enrollment, error) {
	participant = strings.TrimSpace(participant)
	if participant == "" {
		return domain.Enrollment{}, ierr.NewError("participant name is required").Mark(ierr.ErrValidation)
	}
	if _, err := Commit(step); err != nil {
		return domain.Enrollment{}, err
	}
	return domain.Enrollment{
		Participant:   participant,
		Plan:          step.Plan().Name,
		EnrolledMonth: step.CurrentMonth(),
	}, nil
}
