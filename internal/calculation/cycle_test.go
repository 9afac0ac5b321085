package calculation

import (
	"testing"

	"github.com/campworks/cycleplan/internal/domain"
	ierr "github.com/campworks/cycleplan/internal/errors"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func allMonths() []domain.Month {
	months := make([]domain.Month, 0, domain.MonthsPerYear)
	for m := domain.Month(1); m <= domain.MonthsPerYear; m++ {
		months = append(months, m)
	}
	return months
}

func cyclePlan(start, end, control domain.Month) domain.CyclePlan {
	return domain.CyclePlan{StartMonth: start, EndMonth: end, ControlMonth: control, DueDay: 10}
}

func TestBuildCycleMonths_LengthBound(t *testing.T) {
	for _, s := range allMonths() {
		for _, e := range allMonths() {
			months, err := BuildCycleMonths(s, e)
			require.NoError(t, err)
			assert.GreaterOrEqual(t, len(months), 1, "start %d end %d", s, e)
			assert.LessOrEqual(t, len(months), 12, "start %d end %d", s, e)
			assert.Equal(t, s, months[0].MonthNumber)
			assert.Equal(t, e, months[len(months)-1].MonthNumber)
		}
	}
}

func TestCountInstallments_MatchesCycleLength(t *testing.T) {
	for _, s := range allMonths() {
		for _, e := range allMonths() {
			months, err := BuildCycleMonths(s, e)
			require.NoError(t, err)
			count, err := CountInstallments(s, e)
			require.NoError(t, err)
			assert.Equal(t, len(months), count, "start %d end %d", s, e)
		}
	}
}

func TestCountInstallments(t *testing.T) {
	tests := []struct {
		name     string
		start    domain.Month
		end      domain.Month
		expected int
	}{
		{"year wrap march to january", 3, 1, 11},
		{"april to september", 4, 9, 6},
		{"full calendar year", 1, 12, 12},
		{"december to november", 12, 11, 12},
		{"december to january", 12, 1, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			count, err := CountInstallments(tt.start, tt.end)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, count)
		})
	}

	for _, m := range allMonths() {
		count, err := CountInstallments(m, m)
		require.NoError(t, err)
		assert.Equal(t, 1, count, "single month cycle %d", m)
	}
}

func TestCountInstallments_InvalidMonth(t *testing.T) {
	_, err := CountInstallments(0, 5)
	require.Error(t, err)
	assert.True(t, ierr.IsValidation(err))

	_, err = CountInstallments(3, 13)
	require.Error(t, err)
	assert.True(t, ierr.IsValidation(err))
}

func TestBuildCycleMonths_YearBoundary(t *testing.T) {
	months, err := BuildCycleMonths(3, 1)
	require.NoError(t, err)
	require.Len(t, months, 11)

	for i, cm := range months {
		assert.Equal(t, i, cm.SequenceIndex)
		assert.Equal(t, domain.PhaseUnclassified, cm.Phase)
	}
	assert.False(t, months[9].CrossesYearBoundary, "December is still in the first year")
	assert.Equal(t, domain.Month(1), months[10].MonthNumber)
	assert.True(t, months[10].CrossesYearBoundary, "January follows the wrap")
}

func TestBuildCycleMonths_SingleMonth(t *testing.T) {
	months, err := BuildCycleMonths(8, 8)
	require.NoError(t, err)
	require.Len(t, months, 1)
	assert.Equal(t, domain.Month(8), months[0].MonthNumber)
	assert.False(t, months[0].CrossesYearBoundary)
}

func TestClassifyMonth(t *testing.T) {
	tests := []struct {
		name     string
		month    domain.Month
		start    domain.Month
		control  domain.Month
		expected domain.Phase
	}{
		{"before control", 5, 3, 7, domain.PhaseOpenEnrollment},
		{"control month", 7, 3, 7, domain.PhaseControlStart},
		{"after control", 9, 3, 7, domain.PhaseContingency},
		{"wrapped month after control", 1, 3, 7, domain.PhaseContingency},
		{"december before january control", 12, 9, 1, domain.PhaseOpenEnrollment},
		{"january control across wrap", 1, 9, 1, domain.PhaseControlStart},
		{"start month is control", 3, 3, 3, domain.PhaseControlStart},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			phase, err := ClassifyMonth(tt.month, tt.start, tt.control)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, phase)
		})
	}

	_, err := ClassifyMonth(14, 3, 7)
	assert.True(t, ierr.IsValidation(err))
}

func TestBuildCycle_PhaseMonotonicity(t *testing.T) {
	rank := map[domain.Phase]int{
		domain.PhaseOpenEnrollment: 0,
		domain.PhaseControlStart:   1,
		domain.PhaseContingency:    2,
	}

	for _, s := range allMonths() {
		for _, e := range allMonths() {
			months, err := BuildCycleMonths(s, e)
			require.NoError(t, err)
			for _, control := range months {
				cycle, err := BuildCycle(cyclePlan(s, e, control.MonthNumber))
				require.NoError(t, err)

				controls := 0
				for i, cm := range cycle {
					if cm.Phase == domain.PhaseControlStart {
						controls++
					}
					if i > 0 {
						assert.LessOrEqual(t, rank[cycle[i-1].Phase], rank[cm.Phase],
							"start %d end %d control %d", s, e, control.MonthNumber)
					}
				}
				assert.Equal(t, 1, controls, "start %d end %d control %d", s, e, control.MonthNumber)
			}
		}
	}
}

func TestLastEnrollmentMonth(t *testing.T) {
	m, err := LastEnrollmentMonth(7)
	require.NoError(t, err)
	assert.Equal(t, domain.Month(6), m)

	m, err = LastEnrollmentMonth(1)
	require.NoError(t, err)
	assert.Equal(t, domain.Month(12), m)

	_, err = LastEnrollmentMonth(0)
	assert.True(t, ierr.IsValidation(err))
}

func TestSummarize_WorkedExample(t *testing.T) {
	plan := cyclePlan(3, 1, 7)

	summary, err := Summarize(plan)
	require.NoError(t, err)
	assert.Equal(t, 11, summary.TotalInstallments)
	assert.Len(t, summary.Months, 11)
	assert.Equal(t, domain.Month(6), summary.LastEnrollmentMonth)
	assert.Equal(t, 4, summary.MinimumInstallmentsAtControl)
}

func TestSummarize_InvalidPlan(t *testing.T) {
	plan := cyclePlan(3, 1, 7)
	plan.DueDay = 0
	_, err := Summarize(plan)
	require.Error(t, err)
	assert.True(t, ierr.IsValidation(err))

	plan = cyclePlan(3, 1, 7)
	plan.ToleranceMonths = -1
	_, err = Summarize(plan)
	assert.True(t, ierr.IsValidation(err))
}

func TestInCycle(t *testing.T) {
	plan := cyclePlan(4, 9, 6)
	assert.True(t, InCycle(plan, 4))
	assert.True(t, InCycle(plan, 9))
	assert.False(t, InCycle(plan, 10))
	assert.False(t, InCycle(plan, 3))
	assert.False(t, InCycle(plan, 0))
}

func TestProjectEnrollment(t *testing.T) {
	plan := cyclePlan(4, 1, 7)
	total := decimal.NewFromInt(100000)

	t.Run("on time", func(t *testing.T) {
		p, err := ProjectEnrollment(plan, 4, total)
		require.NoError(t, err)
		assert.Equal(t, domain.Month(4), p.EffectiveStartMonth)
		assert.Equal(t, 0, p.ArrearsCount)
		assert.Equal(t, 10, p.RemainingCount)
	})

	t.Run("late arrival", func(t *testing.T) {
		p, err := ProjectEnrollment(plan, 6, total)
		require.NoError(t, err)
		assert.Equal(t, domain.Month(6), p.EffectiveStartMonth)
		assert.Equal(t, 2, p.ArrearsCount)
		assert.Equal(t, 8, p.RemainingCount)
	})

	t.Run("after the wrap", func(t *testing.T) {
		p, err := ProjectEnrollment(plan, 1, total)
		require.NoError(t, err)
		assert.Equal(t, domain.Month(1), p.EffectiveStartMonth)
		assert.Equal(t, 9, p.ArrearsCount)
		assert.Equal(t, 1, p.RemainingCount)
	})

	t.Run("before the cycle opens", func(t *testing.T) {
		p, err := ProjectEnrollment(plan, 2, total)
		require.NoError(t, err)
		assert.Equal(t, domain.Month(4), p.EffectiveStartMonth)
		assert.Equal(t, 0, p.ArrearsCount)
		assert.Equal(t, 10, p.RemainingCount)
	})
}

func TestProjectEnrollment_WorkedExample(t *testing.T) {
	plan := cyclePlan(3, 1, 7)
	total := decimal.NewFromInt(120000)

	p, err := ProjectEnrollment(plan, 7, total)
	require.NoError(t, err)
	assert.Equal(t, 4, p.ArrearsCount)
	assert.Equal(t, 7, p.RemainingCount)
	assert.Equal(t, "10909.09", p.EstimatedMonthlyAmount.StringFixed(2))
}

func TestProjectEnrollment_Errors(t *testing.T) {
	plan := cyclePlan(3, 1, 7)

	_, err := ProjectEnrollment(plan, 13, decimal.NewFromInt(100))
	assert.True(t, ierr.IsValidation(err))

	_, err = ProjectEnrollment(plan, 5, decimal.NewFromInt(-1))
	assert.True(t, ierr.IsValidation(err))

	bad := cyclePlan(0, 1, 7)
	_, err = ProjectEnrollment(bad, 5, decimal.NewFromInt(100))
	assert.True(t, ierr.IsValidation(err))
}

func TestCycleOffset(t *testing.T) {
	assert.Equal(t, 0, CycleOffset(3, 3))
	assert.Equal(t, 4, CycleOffset(7, 3))
	assert.Equal(t, 10, CycleOffset(1, 3))
	assert.Equal(t, 11, CycleOffset(2, 3))
}

func TestValidatePlanWindow(t *testing.T) {
	assert.NoError(t, ValidatePlanWindow(cyclePlan(3, 1, 7)))
	assert.NoError(t, ValidatePlanWindow(cyclePlan(11, 2, 1)))

	err := ValidatePlanWindow(cyclePlan(4, 9, 11))
	require.Error(t, err)
	assert.True(t, ierr.IsConfiguration(err))

	plan := cyclePlan(4, 9, 6)
	plan.ToleranceMonths = 6
	err = ValidatePlanWindow(plan)
	require.Error(t, err)
	assert.True(t, ierr.IsConfiguration(err))

	plan.ToleranceMonths = 5
	assert.NoError(t, ValidatePlanWindow(plan))

	err = ValidatePlanWindow(cyclePlan(4, 0, 6))
	assert.True(t, ierr.IsValidation(err))
}
