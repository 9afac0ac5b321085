package calculation

import (
	"context"
	"fmt"

	"github.com/campworks/cycleplan/internal/domain"
	ierr "github.com/campworks/cycleplan/internal/errors"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
)

// Engine orchestrates the cycle calculations over a whole plan file.
// The calculations themselves are the pure functions of this package.
type Engine struct {
	Logger Logger
	Debug  bool // Enable debug output for detailed calculations
}

// NewEngine creates a new engine with a no-op logger
func NewEngine() *Engine {
	return &Engine{Logger: NopLogger{}}
}

// SetLogger sets the engine logger; nil restores the no-op logger.
func (e *Engine) SetLogger(l Logger) {
	if l == nil {
		e.Logger = NopLogger{}
		return
	}
	e.Logger = l
}

// TimelineOptions configures BuildTimeline.
type TimelineOptions struct {
	CurrentMonth    domain.Month // zero means no enrollment projection
	IncludeSchedule bool
	PlanNames       []string // empty means every plan
}

// BuildTimeline computes the timeline of every selected plan in cfg.
func (e *Engine) BuildTimeline(ctx context.Context, cfg *domain.Configuration, opts TimelineOptions) (*domain.TimelineReport, error) {
	if cfg == nil {
		return nil, ierr.NewError("configuration is required").Mark(ierr.ErrValidation)
	}

	plans := cfg.Plans
	if len(opts.PlanNames) > 0 {
		for _, name := range opts.PlanNames {
			if _, ok := cfg.PlanByName(name); !ok {
				return nil, ierr.NewErrorf("plan %q not found", name).Mark(ierr.ErrNotFound)
			}
		}
		plans = lo.Filter(cfg.Plans, func(p domain.PaymentPlan, _ int) bool {
			return lo.Contains(opts.PlanNames, p.Name)
		})
	}

	report := &domain.TimelineReport{
		Campaign:     cfg.Campaign,
		CurrentMonth: opts.CurrentMonth,
		Plans:        make([]domain.PlanTimeline, 0, len(plans)),
	}

	for i := range plans {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		timeline, err := e.PlanTimeline(&plans[i], cfg.Campaign.CycleYear, opts)
		if err != nil {
			return nil, fmt.Errorf("plan %s: %w", plans[i].Name, err)
		}
		report.Plans = append(report.Plans, timeline)
	}

	return report, nil
}

// PlanTimeline computes the summary, monthly estimate and optional schedule
// and enrollment projection of a single plan.
func (e *Engine) PlanTimeline(plan *domain.PaymentPlan, cycleYear int, opts TimelineOptions) (domain.PlanTimeline, error) {
	summary, err := Summarize(plan.Cycle)
	if err != nil {
		return domain.PlanTimeline{}, err
	}
	e.Logger.Debugf("plan %s: %d installments, control %s, last enrollment %s",
		plan.Name, summary.TotalInstallments, plan.Cycle.ControlMonth, summary.LastEnrollmentMonth)

	timeline := domain.PlanTimeline{
		Plan:            *plan.DeepCopy(),
		Summary:         summary,
		MonthlyEstimate: plan.TotalAmount.Div(decimal.NewFromInt(int64(summary.TotalInstallments))),
	}

	check, err := ReconcileFixedAmount(plan)
	if err != nil {
		return domain.PlanTimeline{}, err
	}
	if check != nil && !check.Consistent {
		e.Logger.Warnf("plan %s: fixed installment %s x %d = %s differs from total %s by %s",
			plan.Name, check.FixedAmount.StringFixed(2), summary.TotalInstallments,
			check.ScheduledTotal.StringFixed(2), check.TotalAmount.StringFixed(2), check.Discrepancy.StringFixed(2))
	}
	timeline.FixedAmount = check

	if opts.CurrentMonth != 0 {
		projection, err := ProjectEnrollment(plan.Cycle, opts.CurrentMonth, plan.TotalAmount)
		if err != nil {
			return domain.PlanTimeline{}, err
		}
		e.Logger.Debugf("plan %s: joining in %s starts %s with %d in arrears",
			plan.Name, opts.CurrentMonth, projection.EffectiveStartMonth, projection.ArrearsCount)
		timeline.Projection = &projection
	}

	if opts.IncludeSchedule {
		schedule, err := BuildSchedule(plan, cycleYear, opts.CurrentMonth)
		if err != nil {
			return domain.PlanTimeline{}, err
		}
		timeline.Schedule = schedule
	}

	return timeline, nil
}

// EvaluateControls runs the control checkpoint for every enrollment on a
// primary plan. Enrollments already on a contingency plan are skipped.
func (e *Engine) EvaluateControls(ctx context.Context, cfg *domain.Configuration) ([]domain.ControlOutcome, error) {
	if cfg == nil {
		return nil, ierr.NewError("configuration is required").Mark(ierr.ErrValidation)
	}
	contingency, _ := cfg.Contingency()

	outcomes := make([]domain.ControlOutcome, 0, len(cfg.Enrollments))
	for _, enrollment := range cfg.Enrollments {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		plan, ok := cfg.PlanByName(enrollment.Plan)
		if !ok {
			return nil, ierr.NewErrorf("enrollment of %s references unknown plan %q", enrollment.Participant, enrollment.Plan).
				Mark(ierr.ErrNotFound)
		}
		if plan.Kind != domain.PlanKindPrimary {
			e.Logger.Infof("%s is already on %s; skipping control", enrollment.Participant, plan.Name)
			continue
		}

		outcome, err := EvaluateControl(plan, contingency, enrollment)
		if err != nil {
			return nil, fmt.Errorf("control for %s: %w", enrollment.Participant, err)
		}
		if outcome.Status == domain.ControlMigrated {
			e.Logger.Infof("%s migrates to %s (paid %d of %d)", outcome.Participant, outcome.ResultingPlan, outcome.Paid, outcome.RequiredAtControl)
		}
		outcomes = append(outcomes, outcome)
	}
	return outcomes, nil
}

// ValidatePlanPair checks that the contingency plan costs more than the primary plan.
func ValidatePlanPair(primary, contingency *domain.PaymentPlan) error {
	if primary == nil || contingency == nil {
		return nil
	}
	if !contingency.TotalAmount.GreaterThan(primary.TotalAmount) {
		return ierr.NewErrorf("contingency plan %s total %s must exceed primary plan %s total %s",
			contingency.Name, contingency.TotalAmount.StringFixed(2), primary.Name, primary.TotalAmount.StringFixed(2)).
			Mark(ierr.ErrConfiguration)
	}
	return nil
}
