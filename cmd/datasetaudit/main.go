package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/afero"
	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"datasetaudit/internal/app"
	"datasetaudit/internal/config"
	"datasetaudit/internal/logger"
	"datasetaudit/internal/report"
)

const version = "1.0.0"

// Exit codes
const (
	exitOK          = 0
	exitFailure     = 1
	exitErrorsFound = 2
)

// errHelp signals that usage or version information was printed
var errHelp = errors.New("help requested")

// main is the application entry point
func main() {
	os.Exit(run(os.Args[1:], afero.NewOsFs(), os.Stdout, os.Stderr))
}

// run parses args, audits the dataset and returns the process exit code
func run(args []string, fs afero.Fs, stdout, stderr io.Writer) int {
	// Parse command line flags and load configuration
	cfg, err := loadConfiguration(args, stdout)
	if errors.Is(err, errHelp) {
		return exitOK
	}
	if err != nil {
		// No configured level yet, fall back to the default logger
		bootLog := logger.NewLogger()
		bootLog.Error("Failed to load configuration",
			zap.Error(err),
			zap.String("component", "main"))
		_ = bootLog.Sync()
		fmt.Fprintf(stderr, "Configuration error: %v\n", err)
		return exitFailure
	}

	// Create structured logger for main
	log, err := logger.New(cfg.GetLogLevel(), cfg.GetDevelopmentLogging())
	if err != nil {
		fmt.Fprintf(stderr, "Logger error: %v\n", err)
		return exitFailure
	}
	defer log.Sync()

	// Set up signal handling for graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Run the main application logic
	errorsFound, err := runApplication(ctx, cfg, fs, stdout, log)
	if err != nil {
		fmt.Fprintf(stderr, "Application error: %v\n", err)
		return exitFailure
	}
	if errorsFound && cfg.GetFailOnErrors() {
		return exitErrorsFound
	}
	return exitOK
}

// runApplication contains the core application logic that can be tested
func runApplication(ctx context.Context, cfg *config.Configuration, fs afero.Fs, stdout io.Writer, log *zap.Logger) (bool, error) {
	// Log application startup
	log.Info("dataset audit starting",
		zap.String("component", "main"),
		zap.String("version", version))

	// Validate before touching the report destination
	if err := cfg.Validate(fs); err != nil {
		log.Error("Invalid configuration",
			zap.Error(err),
			zap.String("component", "main"))
		return false, fmt.Errorf("invalid configuration: %w", err)
	}

	// Open the report destination
	out := stdout
	if path := cfg.GetReportOutput(); path != "" {
		file, err := fs.Create(path)
		if err != nil {
			return false, fmt.Errorf("failed to create report file: %w", err)
		}
		defer file.Close()
		out = file
	}

	output, err := report.NewOutput(cfg.GetReportFormat(), out, log)
	if err != nil {
		return false, err
	}

	// Create application instance
	application, err := app.NewApplication(cfg, fs, output, log)
	if err != nil {
		log.Error("Failed to create application",
			zap.Error(err),
			zap.String("component", "main"))
		return false, fmt.Errorf("failed to create application: %w", err)
	}

	// Run the audit
	summary, err := application.Run(ctx)
	if err != nil {
		log.Error("Application runtime error",
			zap.Error(err),
			zap.String("component", "main"))
		return summary.Errors > 0, fmt.Errorf("application runtime error: %w", err)
	}
	return summary.Errors > 0, nil
}

// loadConfiguration builds the configuration from a config file or the
// environment, with command line flags taking precedence
func loadConfiguration(args []string, stdout io.Writer) (*config.Configuration, error) {
	flags := pflag.NewFlagSet("datasetaudit", pflag.ContinueOnError)
	flags.SetOutput(stdout)
	flags.Usage = func() { printHelp(stdout, flags) }

	configPath := flags.String("config", "", "Path to a YAML config file (default $CONFIG_PATH)")
	flags.String("path", "", "Dataset directory holding the recording file triples")
	flags.String("format", config.FormatText, "Report format: text, json or yaml")
	flags.String("output", "", "Write the report to this file instead of standard output")
	flags.String("log-level", "info", "Log level: debug, info, warn or error")
	flags.Bool("debug", false, "Human readable development logs")
	flags.Bool("fail-on-errors", false, "Exit with status 2 when any error record is found")
	helpFlag := flags.BoolP("help", "h", false, "Show help message")
	versionFlag := flags.Bool("version", false, "Show version information")

	if err := flags.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return nil, errHelp
		}
		return nil, err
	}
	if *helpFlag {
		printHelp(stdout, flags)
		return nil, errHelp
	}
	if *versionFlag {
		printVersion(stdout)
		return nil, errHelp
	}

	if *configPath == "" {
		*configPath = os.Getenv("CONFIG_PATH")
	}

	var cfg *config.Configuration
	var err error
	if *configPath != "" {
		cfg, err = config.NewConfigurationFromFile(*configPath)
	} else {
		cfg, err = config.NewConfigurationFromEnv()
	}
	if err != nil {
		return nil, err
	}

	if err := cfg.BindFlags(flags); err != nil {
		return nil, err
	}
	return cfg, nil
}

// printHelp displays command line usage information
func printHelp(w io.Writer, flags *pflag.FlagSet) {
	fmt.Fprintln(w, "datasetaudit - Recording dataset consistency auditor")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "USAGE:")
	fmt.Fprintln(w, "    datasetaudit --path DIR [OPTIONS]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "OPTIONS:")
	fmt.Fprint(w, flags.FlagUsages())
	fmt.Fprintln(w)
	fmt.Fprintln(w, "CONFIGURATION:")
	fmt.Fprintln(w, "    Settings are read from --config (or $CONFIG_PATH), otherwise from")
	fmt.Fprintln(w, "    DATASET_PATH, REPORT_FORMAT, REPORT_OUTPUT and LOG_LEVEL.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "EXAMPLES:")
	fmt.Fprintln(w, "    datasetaudit --path ./dataset")
	fmt.Fprintln(w, "    datasetaudit --path ./dataset --format json --output report.jsonl")
	fmt.Fprintln(w, "    datasetaudit --path ./dataset --fail-on-errors")
}

// printVersion displays version information
func printVersion(w io.Writer) {
	fmt.Fprintln(w, "datasetaudit")
	fmt.Fprintf(w, "Version: %s\n", version)
}
