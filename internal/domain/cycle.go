package domain

import (
	"github.com/shopspring/decimal"
)

// Phase classifies a month by its position relative to the control month.
type Phase string

const (
	PhaseUnclassified   Phase = ""
	PhaseOpenEnrollment Phase = "open_enrollment"
	PhaseControlStart   Phase = "control_start"
	PhaseContingency    Phase = "contingency"
)

// Label returns a short display label for the phase.
func (p Phase) Label() string {
	switch p {
	case PhaseOpenEnrollment:
		return "Open enrollment"
	case PhaseControlStart:
		return "Control"
	case PhaseContingency:
		return "Contingency"
	default:
		return "-"
	}
}

// CyclePlan is the month configuration of a payment plan.
// EndMonth < StartMonth means the cycle wraps into the next calendar year.
type CyclePlan struct {
	StartMonth      Month `yaml:"start_month" json:"startMonth" validate:"required,min=1,max=12"`
	EndMonth        Month `yaml:"end_month" json:"endMonth" validate:"required,min=1,max=12"`
	ControlMonth    Month `yaml:"control_month" json:"controlMonth" validate:"required,min=1,max=12"`
	ToleranceMonths int   `yaml:"tolerance_months" json:"toleranceMonths" validate:"min=0,max=11"`
	DueDay          int   `yaml:"due_day" json:"dueDay" validate:"required,min=1,max=31"`
}

// CycleMonth is one entry of the materialized cycle.
type CycleMonth struct {
	MonthNumber         Month `json:"monthNumber"`
	SequenceIndex       int   `json:"sequenceIndex"`
	CrossesYearBoundary bool  `json:"crossesYearBoundary"`
	Phase               Phase `json:"phase,omitempty"`
}

// CycleSummary aggregates the derived facts of a cycle.
type CycleSummary struct {
	Months                       []CycleMonth `json:"months"`
	TotalInstallments            int          `json:"totalInstallments"`
	LastEnrollmentMonth          Month        `json:"lastEnrollmentMonth"`
	MinimumInstallmentsAtControl int          `json:"minimumInstallmentsAtControl"`
}

// EnrollmentProjection describes what a participant joining in a given month owes.
type EnrollmentProjection struct {
	EffectiveStartMonth    Month           `json:"effectiveStartMonth"`
	ArrearsCount           int             `json:"arrearsCount"`
	RemainingCount         int             `json:"remainingCount"`
	EstimatedMonthlyAmount decimal.Decimal `json:"estimatedMonthlyAmount"`
}
