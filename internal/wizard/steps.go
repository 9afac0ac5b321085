// Package wizard models the plan-authoring and enrollment wizards as
// immutable step records. Each step holds only the fields it collects;
// the With methods return modified copies and never mutate the receiver.
package wizard

import (
	"github.com/campworks/cycleplan/internal/domain"
	"github.com/shopspring/decimal"
)

// PlanStep is the month configuration step of the plan-authoring wizard.
type PlanStep struct {
	start     domain.Month
	end       domain.Month
	control   domain.Month
	tolerance int
	dueDay    int
}

// NewPlanStep creates a plan step with no tolerance and payments due on the 10th.
func NewPlanStep(start, end, control domain.Month) PlanStep {
	return PlanStep{start: start, end: end, control: control, dueDay: 10}
}

// PlanStepFrom captures the month configuration of an existing plan.
func PlanStepFrom(c domain.CyclePlan) PlanStep {
	return PlanStep{
		start:     c.StartMonth,
		end:       c.EndMonth,
		control:   c.ControlMonth,
		tolerance: c.ToleranceMonths,
		dueDay:    c.DueDay,
	}
}

func (s PlanStep) Start() domain.Month   { return s.start }
func (s PlanStep) End() domain.Month     { return s.end }
func (s PlanStep) Control() domain.Month { return s.control }
func (s PlanStep) Tolerance() int        { return s.tolerance }
func (s PlanStep) DueDay() int           { return s.dueDay }

func (s PlanStep) WithStart(m domain.Month) PlanStep {
	s.start = m
	return s
}

func (s PlanStep) WithEnd(m domain.Month) PlanStep {
	s.end = m
	return s
}

func (s PlanStep) WithControl(m domain.Month) PlanStep {
	s.control = m
	return s
}

func (s PlanStep) WithTolerance(months int) PlanStep {
	s.tolerance = months
	return s
}

func (s PlanStep) WithDueDay(day int) PlanStep {
	s.dueDay = day
	return s
}

// Cycle converts the step into the calculator's input.
func (s PlanStep) Cycle() domain.CyclePlan {
	return domain.CyclePlan{
		StartMonth:      s.start,
		EndMonth:        s.end,
		ControlMonth:    s.control,
		ToleranceMonths: s.tolerance,
		DueDay:          s.dueDay,
	}
}

// AmountStep is the pricing step of the plan-authoring wizard.
type AmountStep struct {
	total decimal.Decimal
	fixed *decimal.Decimal
}

// NewAmountStep creates an amount step without a fixed installment amount.
func NewAmountStep(total decimal.Decimal) AmountStep {
	return AmountStep{total: total}
}

func (s AmountStep) Total() decimal.Decimal { return s.total }

// Fixed returns the fixed installment amount, if one was entered.
func (s AmountStep) Fixed() (decimal.Decimal, bool) {
	if s.fixed == nil {
		return decimal.Zero, false
	}
	return *s.fixed, true
}

func (s AmountStep) WithFixed(amount decimal.Decimal) AmountStep {
	s.fixed = &amount
	return s
}

func (s AmountStep) WithoutFixed() AmountStep {
	s.fixed = nil
	return s
}

// EnrollmentStep is the commitment step of the enrollment wizard: the chosen
// plan and the month the participant signs up in.
type EnrollmentStep struct {
	plan         domain.PaymentPlan
	currentMonth domain.Month
}

// NewEnrollmentStep copies plan so later edits to it do not leak into the step.
func NewEnrollmentStep(plan domain.PaymentPlan, currentMonth domain.Month) EnrollmentStep {
	return EnrollmentStep{plan: *plan.DeepCopy(), currentMonth: currentMonth}
}

func (s EnrollmentStep) Plan() domain.PaymentPlan    { return *s.plan.DeepCopy() }
func (s EnrollmentStep) CurrentMonth() domain.Month { return s.currentMonth }

func (s EnrollmentStep) WithCurrentMonth(m domain.Month) EnrollmentStep {
	s.currentMonth = m
	return s
}
