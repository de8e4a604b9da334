package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"time"

	"getdate/internal/clock"
	"getdate/internal/timeparse"
	"getdate/internal/version"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog/log"
	"gopkg.in/yaml.v3"
)

// CurrentConfigVersion is the schema version written by this build
const CurrentConfigVersion = 1

// Output formats understood by parser.format
const (
	FormatRFC3339 = "rfc3339"
	FormatUnix    = "unix"
	FormatRFC1123 = "rfc1123"
	FormatCtime   = "ctime"
	FormatISO     = "iso"
)

// Comparison engines understood by compare.engines
var Engines = []string{"when", "naturaldate", "dateparse"}

// Config represents the application configuration
type Config struct {
	Version int `yaml:"version"`
	// Version constraint on the getdate build, e.g. ">= 0.2"
	Requires string        `yaml:"requires,omitempty" validate:"omitempty,constraint"`
	Parser   ParserConfig  `yaml:"parser"`
	History  HistoryConfig `yaml:"history"`
	Compare  CompareConfig `yaml:"compare"`
}

// ParserConfig controls how expressions are resolved and printed
type ParserConfig struct {
	// IANA zone name or "Local" (default: Local)
	Timezone string `yaml:"timezone" validate:"omitempty,zone"`
	// Output format (default: rfc3339)
	Format string `yaml:"format" validate:"omitempty,oneof=rfc3339 unix rfc1123 ctime iso"`
}

// HistoryConfig contains the parse history database configuration (optional)
type HistoryConfig struct {
	Enabled bool `yaml:"enabled"`
	// SQLite file (default: ~/.getdate/history.db)
	Path string `yaml:"path"`
	// How long entries are kept, e.g. "30d", "2w", "720h"
	Retention string `yaml:"retention" validate:"omitempty,duration"`
}

// CompareConfig lists the engines `getdate compare` runs next to the parser
type CompareConfig struct {
	Engines []string `yaml:"engines" validate:"dive,oneof=when naturaldate dateparse"`
}

// Default returns the configuration used when no config file exists
func Default() *Config {
	return &Config{
		Version: CurrentConfigVersion,
		Parser: ParserConfig{
			Timezone: "Local",
			Format:   FormatRFC3339,
		},
		History: HistoryConfig{
			Enabled:   true,
			Path:      filepath.Join(getConfigDir(), "history.db"),
			Retention: "30d",
		},
		Compare: CompareConfig{
			Engines: append([]string(nil), Engines...),
		},
	}
}

// Load loads configuration from the config file. A missing file is not
// an error; the defaults are returned instead.
func Load() (*Config, error) {
	configPath, err := GetConfigPath()
	if err != nil {
		return nil, fmt.Errorf("failed to get config path: %w", err)
	}

	log.Debug().Str("path", configPath).Msg("Loading configuration")

	data, err := os.ReadFile(configPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			log.Debug().Str("path", configPath).Msg("No config file, using defaults")
			return Default(), nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	return Parse(data)
}

// Parse decodes, defaults and validates config file content
func Parse(data []byte) (*Config, error) {
	config := Default()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if config.Parser.Timezone == "" {
		config.Parser.Timezone = "Local"
	}
	if config.Parser.Format == "" {
		config.Parser.Format = FormatRFC3339
	}
	if config.History.Path == "" {
		config.History.Path = filepath.Join(getConfigDir(), "history.db")
	}
	config.History.Path = expandHome(config.History.Path)
	if config.History.Retention == "" {
		config.History.Retention = "30d"
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	log.Debug().Msg("Configuration loaded successfully")
	return config, nil
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("yaml"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	mustRegister(v, "zone", func(fl validator.FieldLevel) bool {
		_, err := clock.Load(fl.Field().String())
		return err == nil
	})
	mustRegister(v, "duration", func(fl validator.FieldLevel) bool {
		return timeparse.Validate(fl.Field().String()) == nil
	})
	mustRegister(v, "constraint", func(fl validator.FieldLevel) bool {
		return version.ValidConstraint(fl.Field().String())
	})
	return v
}

func mustRegister(v *validator.Validate, tag string, fn validator.Func) {
	if err := v.RegisterValidation(tag, fn); err != nil {
		panic(fmt.Sprintf("register %s validation: %v", tag, err))
	}
}

// Validate validates the configuration
func (c *Config) Validate() error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}
	msgs := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		msgs = append(msgs, fieldMessage(fe))
	}
	return errors.New(strings.Join(msgs, "; "))
}

// fieldMessage turns a validation failure into "parser.format must be one of ..."
func fieldMessage(fe validator.FieldError) string {
	field := strings.TrimPrefix(fe.Namespace(), "Config.")
	value := fmt.Sprint(fe.Value())
	switch fe.Tag() {
	case "oneof":
		return fmt.Sprintf("%s must be one of [%s], got %q", field, fe.Param(), value)
	case "zone":
		return fmt.Sprintf("%s is not a known timezone: %q", field, value)
	case "duration":
		return fmt.Sprintf("%s is not a positive duration: %q", field, value)
	case "constraint":
		return fmt.Sprintf("%s is not a valid version constraint: %q", field, value)
	}
	return fmt.Sprintf("%s failed %s validation", field, fe.Tag())
}

// CheckRequires reports an error when the running build does not satisfy
// the config's requires constraint
func (c *Config) CheckRequires(running string) error {
	v, err := version.Parse(running)
	if err != nil {
		log.Debug().Str("version", running).Msg("Skipping requires check for unparsable build version")
		return nil
	}
	ok, err := v.Satisfies(c.Requires)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("config requires getdate %s, this is %s", c.Requires, v)
	}
	return nil
}

// RetentionDuration returns history.retention as a duration
func (c *Config) RetentionDuration() (time.Duration, error) {
	d, err := timeparse.ParseDuration(c.History.Retention)
	if err != nil {
		return 0, fmt.Errorf("invalid history.retention %q: %w", c.History.Retention, err)
	}
	return d, nil
}

// Location resolves parser.timezone
func (c *Config) Location() (*time.Location, error) {
	return clock.Load(c.Parser.Timezone)
}

// HasEngine checks if an engine is enabled for comparison
func (c *Config) HasEngine(name string) bool {
	for _, e := range c.Compare.Engines {
		if e == name {
			return true
		}
	}
	return false
}

// getConfigDir returns the configuration directory path
func getConfigDir() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to get user home directory")
	}
	return filepath.Join(homeDir, ".getdate")
}

// GetConfigPath returns the full path to the config file
func GetConfigPath() (string, error) {
	if envPath := os.Getenv("GETDATE_CONFIG"); envPath != "" {
		return envPath, nil
	}

	return filepath.Join(getConfigDir(), "config.yaml"), nil
}

// EnsureConfigDir ensures the config directory exists
func EnsureConfigDir() error {
	configDir := getConfigDir()
	if err := os.MkdirAll(configDir, 0750); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	return nil
}

func expandHome(path string) string {
	if path == "~" {
		return filepath.Dir(getConfigDir())
	}
	if rest, ok := strings.CutPrefix(path, "~/"); ok {
		return filepath.Join(filepath.Dir(getConfigDir()), rest)
	}
	return path
}
