package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/campworks/cycleplan/internal/calculation"
	ierr "github.com/campworks/cycleplan/internal/errors"
	"github.com/campworks/cycleplan/internal/output"
)

func newCalculateCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "calculate [plan-file]",
		Short: "Render the cycle timeline of every plan",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runTimeline(cmd, args[0], false)
		},
	}
	addTimelineFlags(cmd)
	return cmd
}

func newScheduleCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "schedule [plan-file]",
		Short: "Render the cycle timeline with dated installments",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runTimeline(cmd, args[0], true)
		},
	}
	addTimelineFlags(cmd)
	return cmd
}

func addTimelineFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("format", "f", "", "Output format (console, csv, json, html); default from settings")
	cmd.Flags().StringSliceP("plan", "p", nil, "Only these plans (repeatable)")
	cmd.Flags().StringP("month", "m", "", "Current month (name, number or \"now\") for arrears")
	cmd.Flags().StringP("output", "o", "", "Write to a timestamped file with this extension instead of stdout")
}

func (a *app) runTimeline(cmd *cobra.Command, path string, withSchedule bool) error {
	cfg, err := a.loadPlans(path)
	if err != nil {
		return err
	}
	month, err := a.currentMonth(cmd)
	if err != nil {
		return err
	}
	plans, _ := cmd.Flags().GetStringSlice("plan")

	report, err := a.engine.BuildTimeline(cmd.Context(), cfg, calculation.TimelineOptions{
		CurrentMonth:    month,
		IncludeSchedule: withSchedule,
		PlanNames:       plans,
	})
	if err != nil {
		return err
	}

	format, _ := cmd.Flags().GetString("format")
	if format == "" {
		format = a.settings.Format
	}
	f := output.GetFormatterByName(format)
	if f == nil {
		return ierr.NewErrorf("unsupported format %s", format).
			WithHintf("use one of %v", output.AvailableFormatterNames()).
			Mark(ierr.ErrValidation)
	}

	if ext, _ := cmd.Flags().GetString("output"); ext != "" {
		filename, err := output.WriteFormatted(f, report, ext)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Report written to %s\n", filename)
		return nil
	}

	data, err := f.Format(report)
	if err != nil {
		return err
	}
	_, err = cmd.OutOrStdout().Write(data)
	return err
}
