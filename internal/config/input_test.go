package config

import (
	"testing"

	"github.com/campworks/cycleplan/internal/domain"
	ierr "github.com/campworks/cycleplan/internal/errors"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() *domain.Configuration {
	return &domain.Configuration{
		Campaign: domain.Campaign{Name: "Summer Camp", CycleYear: 2025},
		Plans: []domain.PaymentPlan{
			{
				Name:        "Plan A",
				Kind:        domain.PlanKindPrimary,
				Cycle:       domain.CyclePlan{StartMonth: 3, EndMonth: 1, ControlMonth: 7, ToleranceMonths: 1, DueDay: 10},
				TotalAmount: decimal.NewFromInt(120000),
			},
			{
				Name:        "Plan B",
				Kind:        domain.PlanKindContingency,
				Cycle:       domain.CyclePlan{StartMonth: 7, EndMonth: 1, ControlMonth: 7, DueDay: 10},
				TotalAmount: decimal.NewFromInt(140000),
			},
		},
		Enrollments: []domain.Enrollment{
			{Participant: "Ana", Plan: "Plan A", EnrolledMonth: 3, PaidInstallments: 4},
		},
	}
}

func TestLoadFromFile_Valid(t *testing.T) {
	config, err := NewInputParser().LoadFromFile("testdata/valid.yaml")
	require.NoError(t, err)

	assert.Equal(t, "Summer Camp 2025", config.Campaign.Name)
	assert.Equal(t, 2025, config.Campaign.CycleYear)
	require.Len(t, config.Plans, 2)

	planA := config.Plans[0]
	assert.Equal(t, domain.PlanKindPrimary, planA.Kind)
	assert.Equal(t, domain.Month(3), planA.Cycle.StartMonth)
	assert.Equal(t, domain.Month(1), planA.Cycle.EndMonth)
	assert.Equal(t, domain.Month(7), planA.Cycle.ControlMonth)
	assert.Equal(t, 1, planA.Cycle.ToleranceMonths)
	assert.True(t, planA.TotalAmount.Equal(decimal.NewFromInt(120000)))
	assert.Nil(t, planA.FixedInstallmentAmount)

	planB := config.Plans[1]
	require.NotNil(t, planB.FixedInstallmentAmount)
	assert.True(t, planB.FixedInstallmentAmount.Equal(decimal.NewFromInt(20000)))

	assert.Len(t, config.Enrollments, 4)
}

func TestLoadFromFile_Errors(t *testing.T) {
	parser := NewInputParser()

	_, err := parser.LoadFromFile("testdata/missing.yaml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read file")

	_, err = parser.LoadFromFile("testdata/control_outside_cycle.yaml")
	require.Error(t, err)
	assert.True(t, ierr.IsConfiguration(err))
	assert.Contains(t, err.Error(), "outside the cycle")
}

func TestParse_InvalidYAML(t *testing.T) {
	_, err := NewInputParser().Parse([]byte("plans: [::"))
	require.Error(t, err)
	assert.True(t, ierr.IsValidation(err))
}

func TestParse_StructValidation(t *testing.T) {
	data := []byte(`
campaign:
  name: Camp
  cycle_year: 2025
plans:
  - name: Plan A
    kind: primary
    start_month: 13
    end_month: 1
    control_month: 7
    due_day: 10
    total_amount: 1000
`)
	_, err := NewInputParser().Parse(data)
	require.Error(t, err)
	assert.True(t, ierr.IsValidation(err))
	assert.Contains(t, ierr.HintOf(err), "StartMonth")
}

func TestValidateConfiguration(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *domain.Configuration)
		kind    func(error) bool
		message string
	}{
		{
			name:    "nothing wrong",
			mutate:  func(c *domain.Configuration) {},
			kind:    nil,
			message: "",
		},
		{
			name:    "no plans",
			mutate:  func(c *domain.Configuration) { c.Plans = nil; c.Enrollments = nil },
			kind:    ierr.IsValidation,
			message: "",
		},
		{
			name:    "missing campaign year",
			mutate:  func(c *domain.Configuration) { c.Campaign.CycleYear = 0 },
			kind:    ierr.IsValidation,
			message: "",
		},
		{
			name:    "unknown plan kind",
			mutate:  func(c *domain.Configuration) { c.Plans[1].Kind = "backup" },
			kind:    ierr.IsValidation,
			message: "",
		},
		{
			name:    "non-positive total",
			mutate:  func(c *domain.Configuration) { c.Plans[0].TotalAmount = decimal.Zero },
			kind:    ierr.IsValidation,
			message: "must be positive",
		},
		{
			name: "non-positive fixed amount",
			mutate: func(c *domain.Configuration) {
				zero := decimal.Zero
				c.Plans[0].FixedInstallmentAmount = &zero
			},
			kind:    ierr.IsValidation,
			message: "fixed installment amount",
		},
		{
			name:    "control outside cycle",
			mutate:  func(c *domain.Configuration) { c.Plans[0].Cycle.ControlMonth = 2 },
			kind:    ierr.IsConfiguration,
			message: "outside the cycle",
		},
		{
			name:    "tolerance as long as cycle",
			mutate:  func(c *domain.Configuration) { c.Plans[1].Cycle.ToleranceMonths = 7 },
			kind:    ierr.IsConfiguration,
			message: "tolerance",
		},
		{
			name:    "duplicate names",
			mutate:  func(c *domain.Configuration) { c.Plans[1].Name = "Plan A" },
			kind:    ierr.IsConfiguration,
			message: "duplicate plan names",
		},
		{
			name:    "two primaries",
			mutate:  func(c *domain.Configuration) { c.Plans[1].Kind = domain.PlanKindPrimary },
			kind:    ierr.IsConfiguration,
			message: "exactly one primary plan",
		},
		{
			name:    "contingency not more expensive",
			mutate:  func(c *domain.Configuration) { c.Plans[1].TotalAmount = decimal.NewFromInt(100000) },
			kind:    ierr.IsConfiguration,
			message: "must exceed",
		},
		{
			name:    "enrollment on unknown plan",
			mutate:  func(c *domain.Configuration) { c.Enrollments[0].Plan = "Plan C" },
			kind:    ierr.IsNotFound,
			message: "does not exist",
		},
		{
			name:    "more paid than installments",
			mutate:  func(c *domain.Configuration) { c.Enrollments[0].Plan = "Plan B"; c.Enrollments[0].PaidInstallments = 8 },
			kind:    ierr.IsValidation,
			message: "exceed",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := validConfig()
			tt.mutate(config)

			err := NewInputParser().ValidateConfiguration(config)
			if tt.kind == nil {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.True(t, tt.kind(err), "unexpected error kind: %v", err)
			if tt.message != "" {
				assert.Contains(t, err.Error(), tt.message)
			}
		})
	}
}

func TestValidateConfiguration_Nil(t *testing.T) {
	err := NewInputParser().ValidateConfiguration(nil)
	assert.True(t, ierr.IsValidation(err))
}
