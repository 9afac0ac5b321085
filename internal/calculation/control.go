package calculation

import (
	"github.com/campworks/cycleplan/internal/domain"
	ierr "github.com/campworks/cycleplan/internal/errors"
)

// EvaluateControl checks an enrollment on the primary plan at the control
// month. A shortfall up to the plan's tolerance keeps the participant on the
// primary plan; a larger shortfall migrates them to the contingency plan.
func EvaluateControl(primary, contingency *domain.PaymentPlan, enrollment domain.Enrollment) (domain.ControlOutcome, error) {
	if primary == nil {
		return domain.ControlOutcome{}, ierr.NewError("primary plan is required").Mark(ierr.ErrValidation)
	}
	if enrollment.PaidInstallments < 0 {
		return domain.ControlOutcome{}, ierr.NewErrorf("%s: paid installments cannot be negative", enrollment.Participant).
			Mark(ierr.ErrValidation)
	}

	summary, err := Summarize(primary.Cycle)
	if err != nil {
		return domain.ControlOutcome{}, err
	}

	required := summary.MinimumInstallmentsAtControl
	shortfall := required - enrollment.PaidInstallments
	if shortfall < 0 {
		shortfall = 0
	}

	outcome := domain.ControlOutcome{
		Participant:       enrollment.Participant,
		RequiredAtControl: required,
		Paid:              enrollment.PaidInstallments,
		Shortfall:         shortfall,
		ResultingPlan:     primary.Name,
	}

	switch {
	case shortfall == 0:
		outcome.Status = domain.ControlOnTrack
	case shortfall <= primary.Cycle.ToleranceMonths:
		outcome.Status = domain.ControlWithinTolerance
	default:
		if contingency == nil {
			return domain.ControlOutcome{}, ierr.NewErrorf("%s must migrate but no contingency plan is defined", enrollment.Participant).
				WithHint("add a plan with kind: contingency").
				Mark(ierr.ErrConfiguration)
		}
		outcome.Status = domain.ControlMigrated
		outcome.ResultingPlan = contingency.Name
	}
	return outcome, nil
}
