package calculation

import (
	"context"
	"strings"
	"testing"

	"github.com/campworks/cycleplan/internal/domain"
	ierr "github.com/campworks/cycleplan/internal/errors"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewEngine(t *testing.T) {
	engine := NewEngine()

	assert.NotNil(t, engine, "Should create engine")
	assert.NotNil(t, engine.Logger, "Should initialize logger")
	assert.False(t, engine.Debug)
}

func TestEngine_SetLogger(t *testing.T) {
	engine := NewEngine()

	customLogger := &TestLogger{}
	engine.SetLogger(customLogger)
	assert.Equal(t, customLogger, engine.Logger, "Should set custom logger")

	engine.SetLogger(nil)
	assert.IsType(t, NopLogger{}, engine.Logger, "Should be no-op logger")
}

func testConfiguration() *domain.Configuration {
	return &domain.Configuration{
		Campaign: domain.Campaign{Name: "Summer Camp", Currency: "ARS", CycleYear: 2025},
		Plans:    []domain.PaymentPlan{*primaryPlan(), *contingencyPlan()},
		Enrollments: []domain.Enrollment{
			{Participant: "Ana", Plan: "Plan A", EnrolledMonth: 3, PaidInstallments: 4},
			{Participant: "Bruno", Plan: "Plan A", EnrolledMonth: 3, PaidInstallments: 3},
			{Participant: "Carla", Plan: "Plan A", EnrolledMonth: 5, PaidInstallments: 1},
			{Participant: "Dario", Plan: "Plan B", EnrolledMonth: 7, PaidInstallments: 0},
		},
	}
}

func TestEngine_BuildTimeline(t *testing.T) {
	engine := NewEngine()

	report, err := engine.BuildTimeline(context.Background(), testConfiguration(), TimelineOptions{
		CurrentMonth:    7,
		IncludeSchedule: true,
	})
	require.NoError(t, err)
	require.Len(t, report.Plans, 2)
	assert.Equal(t, "Summer Camp", report.Campaign.Name)
	assert.Equal(t, domain.Month(7), report.CurrentMonth)

	planA := report.Plans[0]
	assert.Equal(t, 11, planA.Summary.TotalInstallments)
	assert.Equal(t, "10909.09", planA.MonthlyEstimate.StringFixed(2))
	require.NotNil(t, planA.Projection)
	assert.Equal(t, 4, planA.Projection.ArrearsCount)
	assert.Len(t, planA.Schedule, 11)
	assert.Nil(t, planA.FixedAmount)

	planB := report.Plans[1]
	assert.Equal(t, 7, planB.Summary.TotalInstallments)
	require.NotNil(t, planB.Projection)
	assert.Equal(t, 0, planB.Projection.ArrearsCount)
}

func TestEngine_BuildTimeline_WithoutProjection(t *testing.T) {
	report, err := NewEngine().BuildTimeline(context.Background(), testConfiguration(), TimelineOptions{})
	require.NoError(t, err)
	for _, p := range report.Plans {
		assert.Nil(t, p.Projection)
		assert.Empty(t, p.Schedule)
	}
}

func TestEngine_BuildTimeline_PlanFilter(t *testing.T) {
	engine := NewEngine()

	report, err := engine.BuildTimeline(context.Background(), testConfiguration(), TimelineOptions{PlanNames: []string{"Plan B"}})
	require.NoError(t, err)
	require.Len(t, report.Plans, 1)
	assert.Equal(t, "Plan B", report.Plans[0].Plan.Name)

	_, err = engine.BuildTimeline(context.Background(), testConfiguration(), TimelineOptions{PlanNames: []string{"Plan Z"}})
	require.Error(t, err)
	assert.True(t, ierr.IsNotFound(err))
}

func TestEngine_BuildTimeline_FixedAmountWarning(t *testing.T) {
	cfg := testConfiguration()
	cfg.Plans[0].FixedInstallmentAmount = decimalPtr(decimal.NewFromInt(11000))

	logger := &TestLogger{}
	engine := NewEngine()
	engine.SetLogger(logger)

	report, err := engine.BuildTimeline(context.Background(), cfg, TimelineOptions{})
	require.NoError(t, err)
	require.NotNil(t, report.Plans[0].FixedAmount)
	assert.False(t, report.Plans[0].FixedAmount.Consistent)
	assert.True(t, logger.has("WARN:"), "Should warn about the discrepancy")
}

func TestEngine_BuildTimeline_Errors(t *testing.T) {
	engine := NewEngine()

	_, err := engine.BuildTimeline(context.Background(), nil, TimelineOptions{})
	assert.True(t, ierr.IsValidation(err))

	cfg := testConfiguration()
	cfg.Plans[1].Cycle.ControlMonth = 0
	_, err = engine.BuildTimeline(context.Background(), cfg, TimelineOptions{})
	require.Error(t, err)
	assert.True(t, ierr.IsValidation(err))
	assert.Contains(t, err.Error(), "Plan B")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = engine.BuildTimeline(ctx, testConfiguration(), TimelineOptions{})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestEngine_EvaluateControls(t *testing.T) {
	logger := &TestLogger{}
	engine := NewEngine()
	engine.SetLogger(logger)

	outcomes, err := engine.EvaluateControls(context.Background(), testConfiguration())
	require.NoError(t, err)
	require.Len(t, outcomes, 3, "Plan B enrollments are skipped")

	assert.Equal(t, domain.ControlOnTrack, outcomes[0].Status)
	assert.Equal(t, domain.ControlWithinTolerance, outcomes[1].Status)
	assert.Equal(t, domain.ControlMigrated, outcomes[2].Status)
	assert.Equal(t, "Plan B", outcomes[2].ResultingPlan)
	assert.True(t, logger.has("INFO:"))
}

func TestEngine_EvaluateControls_UnknownPlan(t *testing.T) {
	cfg := testConfiguration()
	cfg.Enrollments = append(cfg.Enrollments, domain.Enrollment{Participant: "Eva", Plan: "Plan C", EnrolledMonth: 3})

	_, err := NewEngine().EvaluateControls(context.Background(), cfg)
	require.Error(t, err)
	assert.True(t, ierr.IsNotFound(err))
}

func TestEngine_EvaluateControls_NoContingency(t *testing.T) {
	cfg := testConfiguration()
	cfg.Plans = cfg.Plans[:1]
	cfg.Enrollments = cfg.Enrollments[2:3]

	_, err := NewEngine().EvaluateControls(context.Background(), cfg)
	require.Error(t, err)
	assert.True(t, ierr.IsConfiguration(err))
}

// TestLogger is a simple logger for testing
type TestLogger struct {
	messages []string
}

func (tl *TestLogger) Debugf(format string, args ...interface{}) {
	tl.messages = append(tl.messages, "DEBUG: "+format)
}

func (tl *TestLogger) Infof(format string, args ...interface{}) {
	tl.messages = append(tl.messages, "INFO: "+format)
}

func (tl *TestLogger) Warnf(format string, args ...interface{}) {
	tl.messages = append(tl.messages, "WARN: "+format)
}

func (tl *TestLogger) Errorf(format string, args ...interface{}) {
	tl.messages = append(tl.messages, "ERROR: "+format)
}

func (tl *TestLogger) has(prefix string) bool {
	for _, m := range tl.messages {
		if strings.HasPrefix(m, prefix) {
			return true
		}
	}
	return false
}
