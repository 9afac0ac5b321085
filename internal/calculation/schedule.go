package calculation

import (
	"time"

	"github.com/campworks/cycleplan/internal/domain"
	ierr "github.com/campworks/cycleplan/internal/errors"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
)

// DueDate returns day of the given month, clamped to the month's last day.
func DueDate(year int, month domain.Month, day int) time.Time {
	lastDay := time.Date(year, time.Month(month)+1, 0, 0, 0, 0, 0, time.UTC).Day()
	if day > lastDay {
		day = lastDay
	}
	if day < 1 {
		day = 1
	}
	return time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
}

// BuildSchedule materializes one installment per cycle month. The first
// cycle month falls in cycleYear; months after the year wrap fall in the
// following year. When currentMonth is non-zero, the installments a
// participant joining in that month missed are flagged as arrears.
//
// Without a fixed installment amount the total is split evenly at two
// decimal places and the last installment absorbs the rounding remainder.
func BuildSchedule(plan *domain.PaymentPlan, cycleYear int, currentMonth domain.Month) ([]domain.Installment, error) {
	if plan == nil {
		return nil, ierr.NewError("plan is required").Mark(ierr.ErrValidation)
	}
	if plan.TotalAmount.IsNegative() {
		return nil, ierr.NewErrorf("plan %s: total amount is negative", plan.Name).Mark(ierr.ErrValidation)
	}

	months, err := BuildCycle(plan.Cycle)
	if err != nil {
		return nil, err
	}
	n := len(months)
	if n == 0 {
		return nil, zeroLengthCycle(plan.Cycle)
	}

	arrears := 0
	if currentMonth != 0 {
		projection, err := ProjectEnrollment(plan.Cycle, currentMonth, plan.TotalAmount)
		if err != nil {
			return nil, err
		}
		arrears = projection.ArrearsCount
	}

	amounts := splitAmount(plan, n)

	schedule := make([]domain.Installment, 0, n)
	for i, cm := range months {
		year := cycleYear
		if cm.CrossesYearBoundary {
			year++
		}
		schedule = append(schedule, domain.Installment{
			Number:    i + 1,
			Month:     cm.MonthNumber,
			Year:      year,
			DueDate:   DueDate(year, cm.MonthNumber, plan.Cycle.DueDay),
			Amount:    amounts[i],
			InArrears: i < arrears,
		})
	}
	return schedule, nil
}

func splitAmount(plan *domain.PaymentPlan, n int) []decimal.Decimal {
	amounts := make([]decimal.Decimal, n)
	if plan.FixedInstallmentAmount != nil {
		for i := range amounts {
			amounts[i] = *plan.FixedInstallmentAmount
		}
		return amounts
	}

	base := plan.TotalAmount.DivRound(decimal.NewFromInt(int64(n)), 2)
	for i := 0; i < n-1; i++ {
		amounts[i] = base
	}
	amounts[n-1] = plan.TotalAmount.Sub(base.Mul(decimal.NewFromInt(int64(n - 1))))
	return amounts
}

// ScheduleTotal sums the installment amounts.
func ScheduleTotal(schedule []domain.Installment) decimal.Decimal {
	return lo.Reduce(schedule, func(acc decimal.Decimal, inst domain.Installment, _ int) decimal.Decimal {
		return acc.Add(inst.Amount)
	}, decimal.Zero)
}

// ReconcileFixedAmount compares the fixed installment amount, multiplied by
// the installment count, against the plan total. It returns nil when the
// plan has no fixed amount. Neither value is ever adjusted.
func ReconcileFixedAmount(plan *domain.PaymentPlan) (*domain.FixedAmountCheck, error) {
	if plan == nil || plan.FixedInstallmentAmount == nil {
		return nil, nil
	}
	total, err := CountInstallments(plan.Cycle.StartMonth, plan.Cycle.EndMonth)
	if err != nil {
		return nil, err
	}

	scheduled := plan.FixedInstallmentAmount.Mul(decimal.NewFromInt(int64(total)))
	discrepancy := scheduled.Sub(plan.TotalAmount)
	return &domain.FixedAmountCheck{
		FixedAmount:    *plan.FixedInstallmentAmount,
		ScheduledTotal: scheduled,
		TotalAmount:    plan.TotalAmount,
		Discrepancy:    discrepancy,
		Consistent:     discrepancy.IsZero(),
	}, nil
}
