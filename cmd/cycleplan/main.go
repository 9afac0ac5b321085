package main

import (
	"fmt"
	"os"
	"runtime/debug"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/campworks/cycleplan/internal/calculation"
	"github.com/campworks/cycleplan/internal/config"
	"github.com/campworks/cycleplan/internal/domain"
	ierr "github.com/campworks/cycleplan/internal/errors"
	"github.com/campworks/cycleplan/internal/logger"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// app carries what every subcommand resolves before running.
type app struct {
	settings *config.Settings
	log      *logger.Logger
	engine   *calculation.Engine
}

func newRootCmd() *cobra.Command {
	a := &app{}

	rootCmd := &cobra.Command{
		Use:           "cycleplan",
		Short:         "Payment plan cycle calculator",
		Long:          "Cycle, schedule and control checkpoint calculations for two-tier (Plan A / Plan B) installment plans",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.log != nil {
				a.log.Sync()
			}
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.Bool("debug", false, "Enable debug output for detailed calculations")
	flags.String("settings", "", "Settings file (default: ./cycleplan.yaml or $HOME/.cycleplan/cycleplan.yaml)")
	flags.String("env-file", "", "Env file with CYCLEPLAN_* variables (default: ./.env if present)")

	rootCmd.AddCommand(
		newCalculateCmd(a),
		newProjectCmd(a),
		newScheduleCmd(a),
		newControlCmd(a),
		newCompareCmd(a),
		newValidateCmd(a),
		newTransformsCmd(),
		newVersionCmd(),
	)
	return rootCmd
}

func (a *app) setup(cmd *cobra.Command) error {
	settingsFile, _ := cmd.Flags().GetString("settings")
	envFile, _ := cmd.Flags().GetString("env-file")
	settings, err := config.LoadSettings(config.SettingsOptions{ConfigFile: settingsFile, EnvFile: envFile})
	if err != nil {
		return err
	}

	level := settings.LogLevel
	if debugMode, _ := cmd.Flags().GetBool("debug"); debugMode {
		level = "debug"
	}
	log, err := logger.NewWithWriter(level, cmd.ErrOrStderr())
	if err != nil {
		return err
	}

	a.settings = settings
	a.log = log
	a.engine = calculation.NewEngine()
	a.engine.SetLogger(log)
	a.engine.Debug = level == "debug"
	log.Debugf("settings: format=%s currency=%q current_month=%d", settings.Format, settings.Currency, settings.CurrentMonth)
	return nil
}

// loadPlans parses and validates the plan file. The settings currency is
// used when the file names none.
func (a *app) loadPlans(path string) (*domain.Configuration, error) {
	cfg, err := config.NewInputParser().LoadFromFile(path)
	if err != nil {
		return nil, err
	}
	if cfg.Campaign.Currency == "" {
		cfg.Campaign.Currency = a.settings.Currency
	}
	a.log.Debugf("loaded %d plans and %d enrollments from %s", len(cfg.Plans), len(cfg.Enrollments), path)
	return cfg, nil
}

// currentMonth resolves --month: a month name or number, "now" for the
// current calendar month, or empty for the settings value.
func (a *app) currentMonth(cmd *cobra.Command) (domain.Month, error) {
	value, _ := cmd.Flags().GetString("month")
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "":
		return a.settings.Month(), nil
	case "now":
		return domain.Month(time.Now().Month()), nil
	}
	return domain.ParseMonth(value)
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return nil
		},
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "cycleplan %s (commit %s, built %s)\n", version, commit, date)
			if info := buildInfo(); info != "" {
				fmt.Fprintln(cmd.OutOrStdout(), info)
			}
		},
	}
}

func buildInfo() string {
	if bi, ok := debug.ReadBuildInfo(); ok && bi != nil {
		return bi.Main.Path + " " + bi.GoVersion
	}
	return ""
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		if hint := ierr.HintOf(err); hint != "" {
			fmt.Fprintln(os.Stderr, "Hint:", hint)
		}
		os.Exit(1)
	}
}
