package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	ierr "github.com/campworks/cycleplan/internal/errors"
	"github.com/campworks/cycleplan/internal/output"
	"github.com/campworks/cycleplan/internal/wizard"
)

func newProjectCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "project [plan-file]",
		Short: "Show what a participant joining in a given month owes on each plan",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := a.loadPlans(args[0])
			if err != nil {
				return err
			}
			month, err := a.currentMonth(cmd)
			if err != nil {
				return err
			}
			if month == 0 {
				return ierr.NewError("a joining month is required").
					WithHint("pass --month or set current_month in the settings").
					Mark(ierr.ErrValidation)
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintf(w, "Joining in %s\n\n", month)
			fmt.Fprintln(w, "PLAN\tSTARTS\tIN ARREARS\tREMAINING\tMONTHLY")
			for _, plan := range cfg.Plans {
				projection, err := wizard.Commit(wizard.NewEnrollmentStep(plan, month))
				if err != nil {
					return fmt.Errorf("plan %s: %w", plan.Name, err)
				}
				a.log.Debugf("plan %s: %+v", plan.Name, projection)
				fmt.Fprintf(w, "%s\t%s\t%d\t%d\t%s\n",
					plan.Name, projection.EffectiveStartMonth, projection.ArrearsCount, projection.RemainingCount,
					output.FormatCurrency(projection.EstimatedMonthlyAmount, cfg.Campaign.Currency))
			}
			return w.Flush()
		},
	}
	cmd.Flags().StringP("month", "m", "", "Joining month (name, number or \"now\")")
	return cmd
}

