package config

import (
	"fmt"

	"github.com/spf13/afero"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"go.uber.org/zap/zapcore"
)

// Report formats understood by the report writer
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatYAML = "yaml"
)

const (
	keyDatasetPath  = "dataset.path"
	keyReportFormat = "report.format"
	keyReportOutput = "report.output"
	keyLogLevel     = "log.level"
	keyLogDev       = "log.development"
	keyFailOnErrors = "run.fail_on_errors"
	envPrefix       = "DATASETAUDIT"
	defaultLogLevel = "info"
	defaultFormat   = FormatText
)

// Configuration provides type-safe access to application settings
type Configuration struct {
	viper *viper.Viper
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetDefault(keyDatasetPath, "")
	v.SetDefault(keyReportFormat, defaultFormat)
	v.SetDefault(keyReportOutput, "")
	v.SetDefault(keyLogLevel, defaultLogLevel)
	v.SetDefault(keyLogDev, false)
	v.SetDefault(keyFailOnErrors, false)
	return v
}

// NewConfiguration creates a new Configuration instance with default settings
func NewConfiguration() *Configuration {
	return &Configuration{viper: newViper()}
}

// NewConfigurationFromFile creates a Configuration instance from a config file
func NewConfigurationFromFile(configFile string) (*Configuration, error) {
	v := newViper()
	v.SetConfigFile(configFile)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", configFile, err)
	}

	return &Configuration{viper: v}, nil
}

// NewConfigurationFromEnv creates a Configuration instance that reads from environment variables
func NewConfigurationFromEnv() (*Configuration, error) {
	v := newViper()

	v.SetEnvPrefix(envPrefix)
	v.AutomaticEnv()

	bindings := map[string]string{
		keyDatasetPath:  "DATASET_PATH",
		keyReportFormat: "REPORT_FORMAT",
		keyReportOutput: "REPORT_OUTPUT",
		keyLogLevel:     "LOG_LEVEL",
	}
	for key, env := range bindings {
		if err := v.BindEnv(key, env); err != nil {
			return nil, fmt.Errorf("failed to bind %s to %s: %w", key, env, err)
		}
	}

	return &Configuration{viper: v}, nil
}

// BindFlags lets command line flags override file and environment settings.
// Only flags the user actually set take precedence.
func (c *Configuration) BindFlags(flags *pflag.FlagSet) error {
	bindings := map[string]string{
		keyDatasetPath:  "path",
		keyReportFormat: "format",
		keyReportOutput: "output",
		keyLogLevel:     "log-level",
		keyLogDev:       "debug",
		keyFailOnErrors: "fail-on-errors",
	}
	for key, name := range bindings {
		flag := flags.Lookup(name)
		if flag == nil {
			continue
		}
		if err := c.viper.BindPFlag(key, flag); err != nil {
			return fmt.Errorf("failed to bind flag %s: %w", name, err)
		}
	}
	return nil
}

// Set overrides a single setting
func (c *Configuration) Set(key string, value interface{}) {
	c.viper.Set(key, value)
}

// GetDatasetPath returns the directory holding the recording file triples
func (c *Configuration) GetDatasetPath() string {
	return c.viper.GetString(keyDatasetPath)
}

// GetReportFormat returns the report format (text, json or yaml)
func (c *Configuration) GetReportFormat() string {
	return c.viper.GetString(keyReportFormat)
}

// GetReportOutput returns the report file path, empty for standard output
func (c *Configuration) GetReportOutput() string {
	return c.viper.GetString(keyReportOutput)
}

// GetLogLevel returns the configured log level name
func (c *Configuration) GetLogLevel() string {
	return c.viper.GetString(keyLogLevel)
}

// GetDevelopmentLogging reports whether human readable development logs are enabled
func (c *Configuration) GetDevelopmentLogging() bool {
	return c.viper.GetBool(keyLogDev)
}

// GetFailOnErrors reports whether a run with error records should exit non-zero
func (c *Configuration) GetFailOnErrors() bool {
	return c.viper.GetBool(keyFailOnErrors)
}

// Validate checks the settings a run depends on
func (c *Configuration) Validate(fs afero.Fs) error {
	path := c.GetDatasetPath()
	if path == "" {
		return fmt.Errorf("dataset path is required")
	}
	isDir, err := afero.IsDir(fs, path)
	if err != nil || !isDir {
		return fmt.Errorf("dataset path %s is not a directory", path)
	}

	switch c.GetReportFormat() {
	case FormatText, FormatJSON, FormatYAML:
	default:
		return fmt.Errorf("unknown report format %q", c.GetReportFormat())
	}

	if _, err := zapcore.ParseLevel(c.GetLogLevel()); err != nil {
		return fmt.Errorf("invalid log level: %w", err)
	}
	return nil
}
