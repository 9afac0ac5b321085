package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/campworks/cycleplan/internal/compare"
	ierr "github.com/campworks/cycleplan/internal/errors"
	"github.com/campworks/cycleplan/internal/transform"
)

func newCompareCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "compare [plan-file]",
		Short: "Compare Plan A against Plan B or against what-if variations",
		Long: `Compare the base plan (the primary plan unless --base is given) against
the other plans in the file, or against templates (--with) and transforms
(--transform) applied to the base plan.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := a.loadPlans(args[0])
			if err != nil {
				return err
			}
			month, err := a.currentMonth(cmd)
			if err != nil {
				return err
			}

			base, _ := cmd.Flags().GetString("base")
			templates, _ := cmd.Flags().GetString("with")
			transforms, _ := cmd.Flags().GetStringArray("transform")
			plans, _ := cmd.Flags().GetStringSlice("plans")

			engine := compare.NewCompareEngine(a.engine)
			var compSet *compare.ComparisonSet
			if templates != "" || len(transforms) > 0 {
				compSet, err = engine.Compare(cmd.Context(), cfg, compare.CompareOptions{
					BasePlanName: base,
					Templates:    transform.ParseTemplateList(templates),
					Transforms:   transforms,
					CurrentMonth: month,
				})
			} else {
				compSet, err = engine.ComparePlans(cmd.Context(), cfg, base, plans, month)
			}
			if err != nil {
				return err
			}
			compSet.ConfigPath = args[0]

			format, _ := cmd.Flags().GetString("format")
			var out string
			switch strings.ToLower(format) {
			case "table", "console":
				out = (&compare.TableFormatter{}).Format(compSet)
			case "compact":
				out = (&compare.TableFormatter{}).FormatCompact(compSet) + "\n"
			case "csv":
				out, err = (&compare.CSVFormatter{}).Format(compSet)
			case "json":
				out, err = (&compare.JSONFormatter{Pretty: true}).Format(compSet)
			default:
				return ierr.NewErrorf("unsupported compare format %s", format).
					WithHint("use table, compact, csv or json").
					Mark(ierr.ErrValidation)
			}
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), out)
			return nil
		},
	}

	cmd.Flags().String("base", "", "Base plan name (default: the primary plan)")
	cmd.Flags().String("with", "", "Comma-separated templates to apply to the base plan")
	cmd.Flags().StringArray("transform", nil, "Transform spec name:key=value,... (repeatable)")
	cmd.Flags().StringSlice("plans", nil, "Plans to compare against the base (default: all others)")
	cmd.Flags().StringP("format", "f", "table", "Output format (table, compact, csv, json)")
	cmd.Flags().StringP("month", "m", "", "Joining month for arrears metrics")
	return cmd
}
