package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// PlanKind distinguishes the primary plan ("Plan A") from the contingency plan ("Plan B").
type PlanKind string

const (
	PlanKindPrimary     PlanKind = "primary"
	PlanKindContingency PlanKind = "contingency"
)

// PaymentPlan is an installment plan definition as authored by administrators.
type PaymentPlan struct {
	Name                   string           `yaml:"name" json:"name" validate:"required"`
	Kind                   PlanKind         `yaml:"kind" json:"kind" validate:"required,oneof=primary contingency"`
	Cycle                  CyclePlan        `yaml:",inline" json:"cycle"`
	TotalAmount            decimal.Decimal  `yaml:"total_amount" json:"totalAmount"`
	FixedInstallmentAmount *decimal.Decimal `yaml:"fixed_installment_amount,omitempty" json:"fixedInstallmentAmount,omitempty"`
}

// DeepCopy returns a copy that shares no pointers with p.
func (p *PaymentPlan) DeepCopy() *PaymentPlan {
	if p == nil {
		return nil
	}
	cp := *p
	if p.FixedInstallmentAmount != nil {
		fixed := *p.FixedInstallmentAmount
		cp.FixedInstallmentAmount = &fixed
	}
	return &cp
}

// Enrollment is a participant's commitment to a plan.
type Enrollment struct {
	Participant      string `yaml:"participant" json:"participant" validate:"required"`
	Plan             string `yaml:"plan" json:"plan" validate:"required"`
	EnrolledMonth    Month  `yaml:"enrolled_month" json:"enrolledMonth" validate:"required,min=1,max=12"`
	PaidInstallments int    `yaml:"paid_installments" json:"paidInstallments" validate:"min=0,max=12"`
}

// Installment is one due payment of a materialized schedule.
type Installment struct {
	Number    int             `json:"number"`
	Month     Month           `json:"month"`
	Year      int             `json:"year"`
	DueDate   time.Time       `json:"dueDate"`
	Amount    decimal.Decimal `json:"amount"`
	InArrears bool            `json:"inArrears"`
}

// ControlStatus is the result of checking a participant at the control month.
type ControlStatus string

const (
	ControlOnTrack         ControlStatus = "on_track"
	ControlWithinTolerance ControlStatus = "within_tolerance"
	ControlMigrated        ControlStatus = "migrated_to_contingency"
)

// ControlOutcome records a control checkpoint evaluation for one enrollment.
type ControlOutcome struct {
	Participant       string        `json:"participant"`
	RequiredAtControl int           `json:"requiredAtControl"`
	Paid              int           `json:"paid"`
	Shortfall         int           `json:"shortfall"`
	Status            ControlStatus `json:"status"`
	ResultingPlan     string        `json:"resultingPlan"`
}

// FixedAmountCheck compares a fixed installment amount against the plan total.
type FixedAmountCheck struct {
	FixedAmount    decimal.Decimal `json:"fixedAmount"`
	ScheduledTotal decimal.Decimal `json:"scheduledTotal"`
	TotalAmount    decimal.Decimal `json:"totalAmount"`
	Discrepancy    decimal.Decimal `json:"discrepancy"`
	Consistent     bool            `json:"consistent"`
}

// Campaign identifies the season the plans belong to.
type Campaign struct {
	Name      string `yaml:"name" json:"name" validate:"required"`
	Currency  string `yaml:"currency" json:"currency"`
	CycleYear int    `yaml:"cycle_year" json:"cycleYear" validate:"required,min=2000,max=2100"`
}

// Configuration is the content of a plan file.
type Configuration struct {
	Campaign    Campaign      `yaml:"campaign" json:"campaign"`
	Plans       []PaymentPlan `yaml:"plans" json:"plans" validate:"required,min=1,dive"`
	Enrollments []Enrollment  `yaml:"enrollments,omitempty" json:"enrollments,omitempty" validate:"dive"`
}

// PlanByName returns the plan with the given name.
func (c *Configuration) PlanByName(name string) (*PaymentPlan, bool) {
	for i := range c.Plans {
		if c.Plans[i].Name == name {
			return &c.Plans[i], true
		}
	}
	return nil, false
}

// Primary returns the first primary plan.
func (c *Configuration) Primary() (*PaymentPlan, bool) {
	return c.firstOfKind(PlanKindPrimary)
}

// Contingency returns the first contingency plan.
func (c *Configuration) Contingency() (*PaymentPlan, bool) {
	return c.firstOfKind(PlanKindContingency)
}

func (c *Configuration) firstOfKind(kind PlanKind) (*PaymentPlan, bool) {
	for i := range c.Plans {
		if c.Plans[i].Kind == kind {
			return &c.Plans[i], true
		}
	}
	return nil, false
}

// PlanTimeline bundles everything the timeline formatters render for one plan.
type PlanTimeline struct {
	Plan            PaymentPlan           `json:"plan"`
	Summary         CycleSummary          `json:"summary"`
	MonthlyEstimate decimal.Decimal       `json:"monthlyEstimate"`
	Schedule        []Installment         `json:"schedule,omitempty"`
	FixedAmount     *FixedAmountCheck     `json:"fixedAmount,omitempty"`
	Projection      *EnrollmentProjection `json:"projection,omitempty"`
}

// TimelineReport is the input of the output formatters.
type TimelineReport struct {
	Campaign     Campaign       `json:"campaign"`
	CurrentMonth Month          `json:"currentMonth,omitempty"`
	Plans        []PlanTimeline `json:"plans"`
}
