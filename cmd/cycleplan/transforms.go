package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/campworks/cycleplan/internal/transform"
)

var transformParams = map[string]string{
	"shift_start":      "months=N",
	"shift_cycle":      "months=N",
	"set_end":          "month=M",
	"set_control":      "month=M",
	"shift_control":    "months=N",
	"set_tolerance":    "months=N",
	"scale_total":      "percent=P",
	"set_total":        "amount=A",
	"set_fixed_amount": "amount=A (0 clears)",
}

func newTransformsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "transforms",
		Short: "List comparison templates and transforms",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return nil
		},
		Run: func(cmd *cobra.Command, args []string) {
			var sb strings.Builder
			sb.WriteString(transform.GetTemplateHelp(transform.CreateBuiltInTemplates()))
			sb.WriteString("\nTransforms:\n")
			for _, name := range transform.NewTransformRegistry().List() {
				sb.WriteString(fmt.Sprintf("  %-20s %s\n", name, transformParams[name]))
			}
			fmt.Fprint(cmd.OutOrStdout(), sb.String())
		},
	}
}
