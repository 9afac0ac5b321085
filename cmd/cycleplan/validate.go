package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/campworks/cycleplan/internal/calculation"
)

func newValidateCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "validate [plan-file]",
		Short: "Validate a plan file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := a.loadPlans(args[0])
			if err != nil {
				return err
			}

			for i := range cfg.Plans {
				check, err := calculation.ReconcileFixedAmount(&cfg.Plans[i])
				if err != nil {
					return err
				}
				if check != nil && !check.Consistent {
					fmt.Fprintf(cmd.OutOrStdout(), "Warning: plan %s fixed installments add up to %s, not %s\n",
						cfg.Plans[i].Name, check.ScheduledTotal.StringFixed(2), check.TotalAmount.StringFixed(2))
				}
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Plan file %s is valid (%d plans, %d enrollments)\n", args[0], len(cfg.Plans), len(cfg.Enrollments))
			return nil
		},
	}
}
