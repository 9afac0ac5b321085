package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func newControlCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "control [plan-file]",
		Short: "Evaluate every Plan A enrollment at the control checkpoint",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := a.loadPlans(args[0])
			if err != nil {
				return err
			}
			outcomes, err := a.engine.EvaluateControls(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			if len(outcomes) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No primary plan enrollments to evaluate")
				return nil
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "PARTICIPANT\tREQUIRED\tPAID\tSHORTFALL\tSTATUS\tPLAN")
			for _, o := range outcomes {
				fmt.Fprintf(w, "%s\t%d\t%d\t%d\t%s\t%s\n",
					o.Participant, o.RequiredAtControl, o.Paid, o.Shortfall, o.Status, o.ResultingPlan)
			}
			return w.Flush()
		},
	}
}
