package main

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/iwvelando/dcf-valuation/internal/config"
	"github.com/iwvelando/dcf-valuation/internal/logging"
	"github.com/iwvelando/dcf-valuation/internal/valuation"
	"github.com/iwvelando/dcf-valuation/pkg/constants"
	"github.com/iwvelando/dcf-valuation/pkg/output"
	"github.com/iwvelando/dcf-valuation/pkg/validation"
	"go.uber.org/zap"
)

func main() {
	// Process command line flags first to get config location
	configLocation := flag.String("config", constants.DefaultConfigFile, "path to configuration file")
	outputFormatFlag := flag.String("output-format", "", "type of output override: pretty, csv, json")
	logLevel := flag.String("log-level", "", "log level override (debug, info, warn, error)")
	showInputs := flag.Bool("show-inputs", false, "print the canonical inputs as YAML before the result")
	flag.Parse()

	// Load the config file to get logging configuration
	conf, err := config.LoadConfiguration(*configLocation)
	if err != nil {
		fmt.Printf("{\"op\": \"main\", \"level\": \"fatal\", \"msg\": \"failed to load configuration at %s\", \"error\": \"%v\"}\n", *configLocation, err)
		os.Exit(1)
	}

	logger, err := logging.New(conf.Logging, *logLevel)
	if err != nil {
		fmt.Printf("{\"op\": \"main\", \"level\": \"fatal\", \"msg\": \"failed to initialize logger\", \"error\": \"%v\"}\n", err)
		os.Exit(1)
	}
	defer func() {
		_ = logger.Sync()
	}()

	// Determine output format (CLI override takes precedence over config)
	outputFormat := conf.Output.Format
	if *outputFormatFlag != "" {
		outputFormat = *outputFormatFlag
	}
	if outputFormat == "" {
		outputFormat = constants.OutputFormatPretty
	}

	err = validation.ValidateOutputFormat(outputFormat)
	if err != nil {
		logger.Fatal(err.Error(),
			zap.String("op", "main"),
		)
	}

	// Validate configuration and display any warnings
	warnings := conf.ValidateConfiguration()
	for _, warning := range warnings {
		logger.Warn("Configuration warning: "+warning,
			zap.String("op", "main"),
		)
	}

	raw := conf.Assumptions.ToRawInput()
	if *showInputs {
		if err := output.YAMLFormat(os.Stdout, raw); err != nil {
			logger.Fatal("failed to print inputs",
				zap.String("op", "main"),
				zap.Error(err),
			)
		}
		fmt.Println("---")
	}

	result, err := valuation.NewEngine(logger).Calculate(raw)
	if err != nil {
		var verr *valuation.ValidationError
		var derr *valuation.ModelDivergenceError
		switch {
		case errors.As(err, &verr):
			logger.Fatal("invalid assumption",
				zap.String("op", "main"),
				zap.String("field", verr.Field),
				zap.String("reason", verr.Reason),
			)
		case errors.As(err, &derr):
			logger.Fatal("terminal value is undefined; lower the terminal growth rate below the WACC",
				zap.String("op", "main"),
				zap.Float64("wacc", derr.WACC),
				zap.Float64("terminalGrowthRate", derr.TerminalGrowthRate),
			)
		default:
			logger.Fatal("failed to compute valuation",
				zap.String("op", "main"),
				zap.Error(err),
			)
		}
	}

	if !result.Finite() {
		logger.Fatal("valuation overflowed the range of representable numbers; check the magnitude of the inputs",
			zap.String("op", "main"),
		)
	}

	for _, w := range result.Warnings {
		logger.Warn(w.Message,
			zap.String("op", "main"),
			zap.String("code", w.Code),
		)
	}

	if err := output.Render(os.Stdout, outputFormat, conf.Company.Label(), result); err != nil {
		logger.Fatal("failed to render result",
			zap.String("op", "main"),
			zap.Error(err),
		)
	}
}
