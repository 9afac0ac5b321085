package transform

import (
	"fmt"

	"github.com/campworks/cycleplan/internal/domain"
)

// ShiftStart moves the first month of the cycle, which lengthens or
// shortens the plan. End and control months stay put.
type ShiftStart struct {
	Months int // Positive opens later, negative opens earlier
}

func (t *ShiftStart) Name() string {
	return "shift_start"
}

func (t *ShiftStart) Description() string {
	return fmt.Sprintf("Shift the start month by %+d months", t.Months)
}

func (t *ShiftStart) Validate(base *domain.PaymentPlan) error {
	if err := requireBase(t.Name(), base); err != nil {
		return err
	}
	if t.Months <= -domain.MonthsPerYear || t.Months >= domain.MonthsPerYear {
		return NewTransformError(t.Name(), "validate", fmt.Sprintf("months must be within ±11, got %d", t.Months), nil)
	}
	return nil
}

func (t *ShiftStart) Apply(base *domain.PaymentPlan) (*domain.PaymentPlan, error) {
	modified := base.DeepCopy()
	modified.Cycle.StartMonth = base.Cycle.StartMonth.Add(t.Months)
	return checkResult(t.Name(), modified)
}

// ShiftCycle moves start, end and control months together, keeping the
// cycle length.
type ShiftCycle struct {
	Months int
}

func (t *ShiftCycle) Name() string {
	return "shift_cycle"
}

func (t *ShiftCycle) Description() string {
	return fmt.Sprintf("Shift the whole cycle by %+d months", t.Months)
}

func (t *ShiftCycle) Validate(base *domain.PaymentPlan) error {
	return requireBase(t.Name(), base)
}

func (t *ShiftCycle) Apply(base *domain.PaymentPlan) (*domain.PaymentPlan, error) {
	modified := base.DeepCopy()
	modified.Cycle.StartMonth = base.Cycle.StartMonth.Add(t.Months)
	modified.Cycle.EndMonth = base.Cycle.EndMonth.Add(t.Months)
	modified.Cycle.ControlMonth = base.Cycle.ControlMonth.Add(t.Months)
	return checkResult(t.Name(), modified)
}

// SetEnd sets the last month of the cycle.
type SetEnd struct {
	Month domain.Month
}

func (t *SetEnd) Name() string {
	return "set_end"
}

func (t *SetEnd) Description() string {
	return fmt.Sprintf("End the cycle in %s", t.Month)
}

func (t *SetEnd) Validate(base *domain.PaymentPlan) error {
	if err := requireBase(t.Name(), base); err != nil {
		return err
	}
	if err := t.Month.Validate(); err != nil {
		return NewTransformError(t.Name(), "validate", "invalid end month", err)
	}
	return nil
}

func (t *SetEnd) Apply(base *domain.PaymentPlan) (*domain.PaymentPlan, error) {
	modified := base.DeepCopy()
	modified.Cycle.EndMonth = t.Month
	return checkResult(t.Name(), modified)
}

// SetControl sets the control month to an absolute month.
type SetControl struct {
	Month domain.Month
}

func (t *SetControl) Name() string {
	return "set_control"
}

func (t *SetControl) Description() string {
	return fmt.Sprintf("Hold the control checkpoint in %s", t.Month)
}

func (t *SetControl) Validate(base *domain.PaymentPlan) error {
	if err := requireBase(t.Name(), base); err != nil {
		return err
	}
	if err := t.Month.Validate(); err != nil {
		return NewTransformError(t.Name(), "validate", "invalid control month", err)
	}
	return nil
}

func (t *SetControl) Apply(base *domain.PaymentPlan) (*domain.PaymentPlan, error) {
	modified := base.DeepCopy()
	modified.Cycle.ControlMonth = t.Month
	return checkResult(t.Name(), modified)
}

// ShiftControl moves the control month relative to its current position.
type ShiftControl struct {
	Months int
}

func (t *ShiftControl) Name() string {
	return "shift_control"
}

func (t *ShiftControl) Description() string {
	return fmt.Sprintf("Move the control checkpoint by %+d months", t.Months)
}

func (t *ShiftControl) Validate(base *domain.PaymentPlan) error {
	if err := requireBase(t.Name(), base); err != nil {
		return err
	}
	if t.Months == 0 {
		return NewTransformError(t.Name(), "validate", "months cannot be zero", nil)
	}
	return nil
}

func (t *ShiftControl) Apply(base *domain.PaymentPlan) (*domain.PaymentPlan, error) {
	modified := base.DeepCopy()
	modified.Cycle.ControlMonth = base.Cycle.ControlMonth.Add(t.Months)
	return checkResult(t.Name(), modified)
}

// SetTolerance sets how many installments a participant may be short at the
// control checkpoint before migrating to the contingency plan.
type SetTolerance struct {
	Months int
}

func (t *SetTolerance) Name() string {
	return "set_tolerance"
}

func (t *SetTolerance) Description() string {
	return fmt.Sprintf("Tolerate %d missed installments at control", t.Months)
}

func (t *SetTolerance) Validate(base *domain.PaymentPlan) error {
	if err := requireBase(t.Name(), base); err != nil {
		return err
	}
	if t.Months < 0 {
		return NewTransformError(t.Name(), "validate", fmt.Sprintf("months must be non-negative, got %d", t.Months), nil)
	}
	return nil
}

func (t *SetTolerance) Apply(base *domain.PaymentPlan) (*domain.PaymentPlan, error) {
	modified := base.DeepCopy()
	modified.Cycle.ToleranceMonths = t.Months
	return checkResult(t.Name(), modified)
}
