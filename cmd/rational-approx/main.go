package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/iwvelando/rational-approx/internal/config"
	"github.com/iwvelando/rational-approx/internal/conversion"
	"github.com/iwvelando/rational-approx/internal/survey"
	"github.com/iwvelando/rational-approx/pkg/constants"
	"github.com/iwvelando/rational-approx/pkg/output"
	"github.com/iwvelando/rational-approx/pkg/validation"
	"github.com/spf13/pflag"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	configLocation   string
	outputFormatFlag string
	logLevel         string

	adhocValue     float64
	adhocName      string
	adhocPrecision float64
	adhocWidth     int

	surveySamples int
	surveySeed    int64
)

func init() {
	pflag.StringVarP(&configLocation, "config", "c", constants.DefaultConfigFile, "path to configuration file")
	pflag.StringVarP(&outputFormatFlag, "output-format", "o", "", "type of output override: pretty, csv")
	pflag.StringVarP(&logLevel, "log-level", "l", "", "log level override (debug, info, warn, error)")

	pflag.Float64Var(&adhocValue, "value", 0, "convert a single value without a configuration file")
	pflag.StringVar(&adhocName, "name", "", "display name for the single value")
	pflag.Float64VarP(&adhocPrecision, "precision", "p", constants.DefaultTargetPrecision, "tolerance for the single value")
	pflag.IntVarP(&adhocWidth, "width", "w", constants.DefaultWidth, "integer width for the single value (16, 32, or 64)")

	pflag.IntVar(&surveySamples, "survey", 0, "run a convergence survey over this many random samples")
	pflag.Int64Var(&surveySeed, "seed", 0, "random seed for the survey")
}

// initializeLogger creates a zap logger based on configuration and CLI override
func initializeLogger(loggingConfig config.LoggingConfig, logLevelOverride string) (*zap.Logger, error) {
	// Determine log level (CLI override takes precedence)
	level := loggingConfig.Level
	if logLevelOverride != "" {
		level = logLevelOverride
	}
	if level == "" {
		level = "info"
	}

	var zapLevel zapcore.Level
	switch level {
	case "debug":
		zapLevel = zapcore.DebugLevel
	case "info":
		zapLevel = zapcore.InfoLevel
	case "warn", "warning":
		zapLevel = zapcore.WarnLevel
	case "error":
		zapLevel = zapcore.ErrorLevel
	default:
		return nil, fmt.Errorf("invalid log level: %s", level)
	}

	format := loggingConfig.Format
	if format == "" {
		format = "console"
	}

	var zapConfig zap.Config
	switch format {
	case "console":
		zapConfig = zap.NewDevelopmentConfig()
		zapConfig.Level = zap.NewAtomicLevelAt(zapLevel)
	case "json":
		zapConfig = zap.NewProductionConfig()
		zapConfig.Level = zap.NewAtomicLevelAt(zapLevel)
	default:
		return nil, fmt.Errorf("invalid log format: %s", format)
	}

	// Configure output file if specified
	if loggingConfig.OutputFile != "" {
		if dir := filepath.Dir(loggingConfig.OutputFile); dir != "." {
			if err := os.MkdirAll(dir, 0755); err != nil {
				return nil, fmt.Errorf("failed to create log directory %s: %v", dir, err)
			}
		}

		if file, err := os.OpenFile(loggingConfig.OutputFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644); err != nil {
			return nil, fmt.Errorf("failed to open log file %s: %v", loggingConfig.OutputFile, err)
		} else {
			_ = file.Close()
		}

		zapConfig.OutputPaths = []string{loggingConfig.OutputFile}
		zapConfig.ErrorOutputPaths = []string{loggingConfig.OutputFile}
	}

	return zapConfig.Build()
}

func main() {
	pflag.Parse()

	surveyMode := surveySamples > 0
	adhocMode := pflag.CommandLine.Changed("value")

	// The survey and ad-hoc modes run without a configuration file.
	var conf *config.Configuration
	if surveyMode || adhocMode {
		conf = &config.Configuration{}
		conf.ApplyDefaults()
	} else {
		loaded, err := config.LoadConfiguration(configLocation)
		if err != nil {
			fmt.Printf("{\"op\": \"main\", \"level\": \"fatal\", \"msg\": \"failed to load configuration at %s\", \"error\": \"%v\"}\n", configLocation, err)
			os.Exit(1)
		}
		conf = loaded
		conf.ApplyDefaults()
	}

	logger, err := initializeLogger(conf.Logging, logLevel)
	if err != nil {
		fmt.Printf("{\"op\": \"main\", \"level\": \"fatal\", \"msg\": \"failed to initialize logger\", \"error\": \"%v\"}\n", err)
		os.Exit(1)
	}
	defer func() {
		_ = logger.Sync()
	}()

	if surveyMode {
		runSurvey(logger)
		return
	}

	// Determine output format (CLI override takes precedence over config)
	outputFormat := conf.Output.Format
	if outputFormatFlag != "" {
		outputFormat = outputFormatFlag
	}
	if outputFormat == "" {
		outputFormat = constants.OutputFormatPretty
	}

	if err := validation.ValidateOutputFormat(outputFormat); err != nil {
		logger.Fatal(err.Error(),
			zap.String("op", "main"),
		)
	}

	var results []conversion.Conversion
	if adhocMode {
		target := config.Target{
			Name:      adhocName,
			Value:     adhocValue,
			Precision: adhocPrecision,
			Width:     adhocWidth,
		}
		if target.Name == "" {
			target.Name = "value"
		}

		result, err := conversion.Convert(logger, target)
		if err != nil {
			logger.Fatal("failed to convert value",
				zap.String("op", "main"),
				zap.Error(err),
			)
		}
		results = []conversion.Conversion{result}
	} else {
		// Validate configuration and display any warnings
		for _, warning := range conf.ValidateConfiguration() {
			logger.Warn("Configuration warning: "+warning,
				zap.String("op", "main"),
			)
		}

		results, err = conversion.GetConversions(logger, conf)
		if err != nil {
			logger.Fatal("failed to compute conversions",
				zap.String("op", "main"),
				zap.Error(err),
			)
		}
	}

	switch outputFormat {
	case constants.OutputFormatPretty:
		output.PrettyFormat(results)
	case constants.OutputFormatCSV:
		output.CsvFormat(results)
	}
}

func runSurvey(logger *zap.Logger) {
	runner, err := survey.NewRunner(logger, survey.Options{
		Samples:   surveySamples,
		Precision: adhocPrecision,
		Width:     adhocWidth,
		Seed:      surveySeed,
	})
	if err != nil {
		logger.Fatal("failed to configure survey",
			zap.String("op", "main"),
			zap.Error(err),
		)
	}

	report, err := runner.Run()
	if err != nil {
		logger.Fatal("survey failed",
			zap.String("op", "main"),
			zap.Error(err),
		)
	}

	report.PrintSummary(os.Stdout)
	fmt.Println()
	if err := report.PrintHistogram(os.Stdout); err != nil {
		logger.Fatal("failed to render histogram",
			zap.String("op", "main"),
			zap.Error(err),
		)
	}
}
