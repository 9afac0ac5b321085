package config

import (
	"errors"
	"strings"

	"github.com/campworks/cycleplan/internal/domain"
	ierr "github.com/campworks/cycleplan/internal/errors"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment variable read into Settings.
const EnvPrefix = "CYCLEPLAN"

// Settings are the application settings of the CLI, as opposed to the plan
// file. Values come from defaults, an optional cycleplan.yaml, a .env file
// and CYCLEPLAN_* environment variables, in increasing priority.
type Settings struct {
	LogLevel     string `mapstructure:"log_level" validate:"oneof=debug info warn error"`
	Format       string `mapstructure:"format" validate:"oneof=console csv json html"`
	Currency     string `mapstructure:"currency"`
	CurrentMonth int    `mapstructure:"current_month" validate:"min=0,max=12"`
}

// SettingsOptions selects the files LoadSettings reads.
type SettingsOptions struct {
	ConfigFile string // explicit settings file; empty searches . and $HOME/.cycleplan
	EnvFile    string // explicit .env file; empty loads ./.env if present
}

// DefaultSettings returns the settings used when nothing is configured
func DefaultSettings() Settings {
	return Settings{
		LogLevel: "warn",
		Format:   "console",
		Currency: "$",
	}
}

// LoadSettings resolves the application settings.
func LoadSettings(opts SettingsOptions) (*Settings, error) {
	if opts.EnvFile != "" {
		if err := godotenv.Load(opts.EnvFile); err != nil {
			return nil, ierr.WithError(err).
				WithHintf("could not read env file %s", opts.EnvFile).
				Mark(ierr.ErrConfiguration)
		}
	} else {
		// godotenv.Load will not override existing env variables.
		_ = godotenv.Load()
	}

	v := viper.New()
	defaults := DefaultSettings()
	v.SetDefault("log_level", defaults.LogLevel)
	v.SetDefault("format", defaults.Format)
	v.SetDefault("currency", defaults.Currency)
	v.SetDefault("current_month", defaults.CurrentMonth)

	if opts.ConfigFile != "" {
		v.SetConfigFile(opts.ConfigFile)
	} else {
		v.SetConfigName("cycleplan")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.cycleplan")
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if opts.ConfigFile != "" || !errors.As(err, &notFound) {
			return nil, ierr.WithError(err).
				WithHint("check the settings file").
				Mark(ierr.ErrConfiguration)
		}
	}

	var settings Settings
	if err := v.Unmarshal(&settings); err != nil {
		return nil, ierr.WithError(err).Mark(ierr.ErrConfiguration)
	}
	settings.LogLevel = strings.ToLower(settings.LogLevel)
	settings.Format = strings.ToLower(settings.Format)

	if err := settings.Validate(); err != nil {
		return nil, err
	}
	return &settings, nil
}

// Validate checks the settings ranges
func (s Settings) Validate() error {
	if err := validator.New().Struct(s); err != nil {
		return ierr.WithError(err).
			WithHint("log_level is one of debug, info, warn, error; format is one of console, csv, json, html; current_month is 0 to 12").
			Mark(ierr.ErrConfiguration)
	}
	return nil
}

// Month returns the configured current month, or zero when unset.
func (s Settings) Month() domain.Month {
	return domain.Month(s.CurrentMonth)
}
