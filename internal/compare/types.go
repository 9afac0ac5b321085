package compare

import (
	"fmt"

	"github.com/campworks/cycleplan/internal/domain"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
)

// ComparisonResult represents a single plan with its calculated metrics
type ComparisonResult struct {
	PlanName    string `json:"planName"`
	Description string `json:"description"`

	// Plan shape
	StartMonth      domain.Month `json:"startMonth"`
	EndMonth        domain.Month `json:"endMonth"`
	ControlMonth    domain.Month `json:"controlMonth"`
	ToleranceMonths int          `json:"toleranceMonths"`

	// Key Metrics
	TotalInstallments   int             `json:"totalInstallments"`
	TotalAmount         decimal.Decimal `json:"totalAmount"`
	MonthlyEstimate     decimal.Decimal `json:"monthlyEstimate"`
	MinimumAtControl    int             `json:"minimumAtControl"`
	LastEnrollmentMonth domain.Month    `json:"lastEnrollmentMonth"`
	ArrearsCount        int             `json:"arrearsCount"`   // only meaningful with a current month
	RemainingCount      int             `json:"remainingCount"` // only meaningful with a current month
	FixedAmountGap      decimal.Decimal `json:"fixedAmountGap"` // fixed amount x installments - total

	// Comparison to Base
	InstallmentsDiff  int             `json:"installmentsDiff"`
	TotalDiffFromBase decimal.Decimal `json:"totalDiffFromBase"`
	TotalPctFromBase  decimal.Decimal `json:"totalPctFromBase"`
	MonthlyDiff       decimal.Decimal `json:"monthlyDiff"`
	ControlShift      int             `json:"controlShift"` // change of the control month's cycle offset
}

// ComparisonSet represents a collection of plan comparisons
type ComparisonSet struct {
	BasePlanName       string             `json:"basePlanName"`
	BaseResult         *ComparisonResult  `json:"baseResult"`
	AlternativeResults []ComparisonResult `json:"alternativeResults"`
	Recommendations    []string           `json:"recommendations"`
	ConfigPath         string             `json:"configPath"`
	Currency           string             `json:"currency"`
	CurrentMonth       domain.Month       `json:"currentMonth,omitempty"`
}

// MetricsCalculator extracts key metrics from plan timelines
type MetricsCalculator struct{}

// NewMetricsCalculator creates a new metrics calculator
func NewMetricsCalculator() *MetricsCalculator {
	return &MetricsCalculator{}
}

// CalculateMetrics computes all comparison metrics for a plan timeline
func (mc *MetricsCalculator) CalculateMetrics(timeline domain.PlanTimeline) ComparisonResult {
	cycle := timeline.Plan.Cycle
	result := ComparisonResult{
		PlanName:            timeline.Plan.Name,
		StartMonth:          cycle.StartMonth,
		EndMonth:            cycle.EndMonth,
		ControlMonth:        cycle.ControlMonth,
		ToleranceMonths:     cycle.ToleranceMonths,
		TotalInstallments:   timeline.Summary.TotalInstallments,
		TotalAmount:         timeline.Plan.TotalAmount,
		MonthlyEstimate:     timeline.MonthlyEstimate,
		MinimumAtControl:    timeline.Summary.MinimumInstallmentsAtControl,
		LastEnrollmentMonth: timeline.Summary.LastEnrollmentMonth,
		RemainingCount:      timeline.Summary.TotalInstallments,
	}

	if timeline.Projection != nil {
		result.ArrearsCount = timeline.Projection.ArrearsCount
		result.RemainingCount = timeline.Projection.RemainingCount
	}
	if timeline.FixedAmount != nil {
		result.FixedAmountGap = timeline.FixedAmount.Discrepancy
		result.MonthlyEstimate = timeline.FixedAmount.FixedAmount
	}

	return result
}

// CalculateComparison computes comparison metrics between a plan and a base
func (mc *MetricsCalculator) CalculateComparison(plan, base ComparisonResult) ComparisonResult {
	plan.InstallmentsDiff = plan.TotalInstallments - base.TotalInstallments
	plan.TotalDiffFromBase = plan.TotalAmount.Sub(base.TotalAmount)

	if !base.TotalAmount.IsZero() {
		plan.TotalPctFromBase = plan.TotalDiffFromBase.
			Div(base.TotalAmount).
			Mul(decimal.NewFromInt(100))
	}

	plan.MonthlyDiff = plan.MonthlyEstimate.Sub(base.MonthlyEstimate)
	plan.ControlShift = plan.MinimumAtControl - base.MinimumAtControl

	return plan
}

// all returns the base result followed by the alternatives
func (cs *ComparisonSet) all() []ComparisonResult {
	results := make([]ComparisonResult, 0, len(cs.AlternativeResults)+1)
	if cs.BaseResult != nil {
		results = append(results, *cs.BaseResult)
	}
	return append(results, cs.AlternativeResults...)
}

// GenerateRecommendations creates recommendations based on comparison results
func GenerateRecommendations(compSet *ComparisonSet) []string {
	recommendations := []string{}

	if len(compSet.AlternativeResults) == 0 || compSet.BaseResult == nil {
		return recommendations
	}
	base := *compSet.BaseResult
	results := compSet.all()

	lowestMonthly := lo.MinBy(results, func(a, b ComparisonResult) bool {
		return a.MonthlyEstimate.LessThan(b.MonthlyEstimate)
	})
	if lowestMonthly.PlanName != base.PlanName {
		recommendations = append(recommendations,
			"Lowest Installment: "+lowestMonthly.PlanName+" charges "+compSet.Currency+
				base.MonthlyEstimate.Sub(lowestMonthly.MonthlyEstimate).StringFixed(2)+" less per month than "+base.PlanName)
	}

	lowestTotal := lo.MinBy(results, func(a, b ComparisonResult) bool {
		return a.TotalAmount.LessThan(b.TotalAmount)
	})
	if lowestTotal.PlanName != base.PlanName {
		recommendations = append(recommendations,
			"Lowest Total: "+lowestTotal.PlanName+" saves "+compSet.Currency+
				base.TotalAmount.Sub(lowestTotal.TotalAmount).StringFixed(2)+" over the cycle")
	}

	mostLenient := lo.MaxBy(results, func(a, b ComparisonResult) bool {
		return a.ToleranceMonths-a.MinimumAtControl > b.ToleranceMonths-b.MinimumAtControl
	})
	if mostLenient.PlanName != base.PlanName {
		recommendations = append(recommendations,
			fmt.Sprintf("Easiest Control: %s requires %d installments by %s with %d months of tolerance",
				mostLenient.PlanName, mostLenient.MinimumAtControl, mostLenient.ControlMonth, mostLenient.ToleranceMonths))
	}

	if compSet.CurrentMonth != 0 {
		fewestArrears := lo.MinBy(results, func(a, b ComparisonResult) bool {
			return a.ArrearsCount < b.ArrearsCount
		})
		if fewestArrears.ArrearsCount < base.ArrearsCount {
			recommendations = append(recommendations,
				fmt.Sprintf("Late Joiners: enrolling in %s during %s leaves %d installments in arrears instead of %d",
					fewestArrears.PlanName, compSet.CurrentMonth, fewestArrears.ArrearsCount, base.ArrearsCount))
		}
	}

	for _, r := range results {
		if !r.FixedAmountGap.IsZero() {
			recommendations = append(recommendations,
				"Check Pricing: "+r.PlanName+"'s fixed installment misses the total by "+compSet.Currency+r.FixedAmountGap.StringFixed(2))
		}
	}

	return recommendations
}
