package transform

import (
	"fmt"

	"github.com/campworks/cycleplan/internal/domain"
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// ScaleTotal changes the plan total by a percentage. A fixed installment
// amount, when present, is scaled by the same factor.
type ScaleTotal struct {
	Percent decimal.Decimal // 10 raises the total by 10%, -5 lowers it by 5%
}

func (t *ScaleTotal) Name() string {
	return "scale_total"
}

func (t *ScaleTotal) Description() string {
	return fmt.Sprintf("Scale the total by %s%%", t.Percent.String())
}

func (t *ScaleTotal) Validate(base *domain.PaymentPlan) error {
	if err := requireBase(t.Name(), base); err != nil {
		return err
	}
	if t.Percent.LessThanOrEqual(hundred.Neg()) {
		return NewTransformError(t.Name(), "validate", fmt.Sprintf("percent must be above -100, got %s", t.Percent.String()), nil)
	}
	return nil
}

func (t *ScaleTotal) Apply(base *domain.PaymentPlan) (*domain.PaymentPlan, error) {
	factor := decimal.NewFromInt(1).Add(t.Percent.Div(hundred))

	modified := base.DeepCopy()
	modified.TotalAmount = base.TotalAmount.Mul(factor).Round(2)
	if base.FixedInstallmentAmount != nil {
		scaled := base.FixedInstallmentAmount.Mul(factor).Round(2)
		modified.FixedInstallmentAmount = &scaled
	}
	return modified, nil
}

// SetTotal sets the plan total to an absolute amount.
type SetTotal struct {
	Amount decimal.Decimal
}

func (t *SetTotal) Name() string {
	return "set_total"
}

func (t *SetTotal) Description() string {
	return fmt.Sprintf("Set the total to %s", t.Amount.StringFixed(2))
}

func (t *SetTotal) Validate(base *domain.PaymentPlan) error {
	if err := requireBase(t.Name(), base); err != nil {
		return err
	}
	if !t.Amount.IsPositive() {
		return NewTransformError(t.Name(), "validate", fmt.Sprintf("amount must be positive, got %s", t.Amount.String()), nil)
	}
	return nil
}

func (t *SetTotal) Apply(base *domain.PaymentPlan) (*domain.PaymentPlan, error) {
	modified := base.DeepCopy()
	modified.TotalAmount = t.Amount
	return modified, nil
}

// SetFixedAmount sets or, with a zero amount, clears the fixed installment amount.
type SetFixedAmount struct {
	Amount decimal.Decimal
}

func (t *SetFixedAmount) Name() string {
	return "set_fixed_amount"
}

func (t *SetFixedAmount) Description() string {
	if t.Amount.IsZero() {
		return "Split the total evenly instead of a fixed installment"
	}
	return fmt.Sprintf("Charge a fixed installment of %s", t.Amount.StringFixed(2))
}

func (t *SetFixedAmount) Validate(base *domain.PaymentPlan) error {
	if err := requireBase(t.Name(), base); err != nil {
		return err
	}
	if t.Amount.IsNegative() {
		return NewTransformError(t.Name(), "validate", fmt.Sprintf("amount cannot be negative, got %s", t.Amount.String()), nil)
	}
	return nil
}

func (t *SetFixedAmount) Apply(base *domain.PaymentPlan) (*domain.PaymentPlan, error) {
	modified := base.DeepCopy()
	if t.Amount.IsZero() {
		modified.FixedInstallmentAmount = nil
		return modified, nil
	}
	amount := t.Amount
	modified.FixedInstallmentAmount = &amount
	return modified, nil
}
