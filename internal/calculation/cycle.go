package calculation

import (
	"github.com/campworks/cycleplan/internal/domain"
	ierr "github.com/campworks/cycleplan/internal/errors"
	"github.com/shopspring/decimal"
)

// CycleOffset returns the position of month counted from start, so that
// start is 0 and the month before start is 11.
func CycleOffset(month, start domain.Month) int {
	if month >= start {
		return int(month - start)
	}
	return domain.MonthsPerYear - int(start) + int(month)
}

// BuildCycleMonths walks from start to end inclusive, wrapping December to
// January. The result holds between 1 and 12 months; phases are left
// unclassified because no control month is known here.
func BuildCycleMonths(start, end domain.Month) ([]domain.CycleMonth, error) {
	if err := validateMonths(start, end); err != nil {
		return nil, err
	}

	months := make([]domain.CycleMonth, 0, domain.MonthsPerYear)
	m := start
	for i := 0; i < domain.MonthsPerYear; i++ {
		months = append(months, domain.CycleMonth{
			MonthNumber:         m,
			SequenceIndex:       i,
			CrossesYearBoundary: m < start,
		})
		if m == end {
			break
		}
		m = m.Next()
	}
	return months, nil
}

// BuildCycle returns the cycle months of plan with each month classified
// against the plan's control month.
func BuildCycle(plan domain.CyclePlan) ([]domain.CycleMonth, error) {
	if err := ValidateCyclePlan(plan); err != nil {
		return nil, err
	}
	months, err := BuildCycleMonths(plan.StartMonth, plan.EndMonth)
	if err != nil {
		return nil, err
	}
	for i := range months {
		months[i].Phase = classify(months[i].MonthNumber, plan.StartMonth, plan.ControlMonth)
	}
	return months, nil
}

// CountInstallments returns the number of months spanned by the cycle, which
// is also the fixed installment count of a strict plan.
func CountInstallments(start, end domain.Month) (int, error) {
	if err := validateMonths(start, end); err != nil {
		return 0, err
	}
	if end >= start {
		return int(end-start) + 1, nil
	}
	return (domain.MonthsPerYear - int(start) + 1) + int(end), nil
}

// ClassifyMonth determines the phase of month by its cycle-relative offset
// compared with the control month's offset.
func ClassifyMonth(month, start, control domain.Month) (domain.Phase, error) {
	if err := validateMonths(month, start, control); err != nil {
		return domain.PhaseUnclassified, err
	}
	return classify(month, start, control), nil
}

func classify(month, start, control domain.Month) domain.Phase {
	offset := CycleOffset(month, start)
	controlOffset := CycleOffset(control, start)
	switch {
	case offset == controlOffset:
		return domain.PhaseControlStart
	case offset < controlOffset:
		return domain.PhaseOpenEnrollment
	default:
		return domain.PhaseContingency
	}
}

// LastEnrollmentMonth returns the month immediately preceding control in
// cycle order. A January control yields December.
func LastEnrollmentMonth(control domain.Month) (domain.Month, error) {
	if err := control.Validate(); err != nil {
		return 0, err
	}
	return control.Prev(), nil
}

// Summarize derives the cycle summary of plan.
func Summarize(plan domain.CyclePlan) (domain.CycleSummary, error) {
	months, err := BuildCycle(plan)
	if err != nil {
		return domain.CycleSummary{}, err
	}
	total, err := CountInstallments(plan.StartMonth, plan.EndMonth)
	if err != nil {
		return domain.CycleSummary{}, err
	}
	if total == 0 {
		return domain.CycleSummary{}, zeroLengthCycle(plan)
	}

	minAtControl := CycleOffset(plan.ControlMonth, plan.StartMonth)
	if minAtControl > total {
		minAtControl = total
	}

	return domain.CycleSummary{
		Months:                       months,
		TotalInstallments:            total,
		LastEnrollmentMonth:          plan.ControlMonth.Prev(),
		MinimumInstallmentsAtControl: minAtControl,
	}, nil
}

// InCycle reports whether month falls inside the plan's active window.
func InCycle(plan domain.CyclePlan, month domain.Month) bool {
	total, err := CountInstallments(plan.StartMonth, plan.EndMonth)
	if err != nil || month.Validate() != nil {
		return false
	}
	return CycleOffset(month, plan.StartMonth) < total
}

// ProjectEnrollment computes what a participant joining in currentMonth owes.
// A current month outside the cycle window is the gap before the cycle
// opens, so the participant starts on time.
func ProjectEnrollment(plan domain.CyclePlan, currentMonth domain.Month, totalAmount decimal.Decimal) (domain.EnrollmentProjection, error) {
	if err := ValidateCyclePlan(plan); err != nil {
		return domain.EnrollmentProjection{}, err
	}
	if err := currentMonth.Validate(); err != nil {
		return domain.EnrollmentProjection{}, err
	}
	if totalAmount.IsNegative() {
		return domain.EnrollmentProjection{}, ierr.NewErrorf("total amount %s is negative", totalAmount.String()).
			Mark(ierr.ErrValidation)
	}

	total, err := CountInstallments(plan.StartMonth, plan.EndMonth)
	if err != nil {
		return domain.EnrollmentProjection{}, err
	}
	if total == 0 {
		return domain.EnrollmentProjection{}, zeroLengthCycle(plan)
	}

	effective := plan.StartMonth
	arrears := 0
	if offset := CycleOffset(currentMonth, plan.StartMonth); offset > 0 && offset < total {
		effective = currentMonth
		arrears = offset
	}

	remaining := total - arrears
	if remaining < 0 {
		remaining = 0
	}

	return domain.EnrollmentProjection{
		EffectiveStartMonth:    effective,
		ArrearsCount:           arrears,
		RemainingCount:         remaining,
		EstimatedMonthlyAmount: totalAmount.Div(decimal.NewFromInt(int64(total))),
	}, nil
}

// ValidateCyclePlan checks the ranges of every field of plan.
func ValidateCyclePlan(plan domain.CyclePlan) error {
	if err := validateMonths(plan.StartMonth, plan.EndMonth, plan.ControlMonth); err != nil {
		return err
	}
	if plan.ToleranceMonths < 0 {
		return ierr.NewErrorf("tolerance of %d months is negative", plan.ToleranceMonths).
			Mark(ierr.ErrValidation)
	}
	if plan.DueDay < 1 || plan.DueDay > 31 {
		return ierr.NewErrorf("due day %d is out of range", plan.DueDay).
			WithHint("due day must be between 1 and 31").
			Mark(ierr.ErrValidation)
	}
	return nil
}

func validateMonths(months ...domain.Month) error {
	for _, m := range months {
		if err := m.Validate(); err != nil {
			return err
		}
	}
	return nil
}

func zeroLengthCycle(plan domain.CyclePlan) error {
	return ierr.NewErrorf("cycle %s..%s has no installments", plan.StartMonth, plan.EndMonth).
		WithHint("check the start and end months of the plan").
		Mark(ierr.ErrConfiguration)
}

// ValidatePlanWindow checks the rules between the fields of plan: the control
// month lies inside the cycle and the tolerance is shorter than the cycle.
func ValidatePlanWindow(plan domain.CyclePlan) error {
	if err := ValidateCyclePlan(plan); err != nil {
		return err
	}
	total, err := CountInstallments(plan.StartMonth, plan.EndMonth)
	if err != nil {
		return err
	}
	if !InCycle(plan, plan.ControlMonth) {
		return ierr.NewErrorf("control month %s is outside the cycle %s..%s",
			plan.ControlMonth, plan.StartMonth, plan.EndMonth).
			WithHint("pick a control month between the start and end months").
			Mark(ierr.ErrConfiguration)
	}
	if plan.ToleranceMonths >= total {
		return ierr.NewErrorf("tolerance of %d months must be shorter than the %d month cycle",
			plan.ToleranceMonths, total).
			Mark(ierr.ErrConfiguration)
	}
	return nil
}
