package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/iwvelando/investment-form/internal/config"
	"github.com/iwvelando/investment-form/internal/logging"
	"github.com/iwvelando/investment-form/internal/server"
	"github.com/iwvelando/investment-form/internal/submission"
	"github.com/iwvelando/investment-form/pkg/constants"
	"github.com/iwvelando/investment-form/pkg/validation"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	configLocation := flag.String("config", constants.DefaultConfigFile, "path to configuration file")
	outputFormatFlag := flag.String("output-format", "", "type of output override: pretty, csv, yaml")
	logLevel := flag.String("log-level", "", "log level override (debug, info, warn, error)")
	seedFile := flag.String("seed", "", "resolve the form seeded from this YAML or JSON file and print it")
	sample := flag.Bool("sample", false, "resolve the built-in sample form and print it")
	flag.Parse()

	conf, err := loadConfiguration(*configLocation)
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

	if *seedFile != "" || *sample {
		outputFormat := conf.Output.Format
		if *outputFormatFlag != "" {
			outputFormat = *outputFormatFlag
		}
		if err := validation.ValidateOutputFormat(outputFormat); err != nil {
			logger.Fatal(err.Error(), zap.String("op", "main"))
		}

		raw, err := loadSeed(*seedFile, *sample)
		if err != nil {
			logger.Fatal("failed to load seed",
				zap.String("op", "main"),
				zap.String("seed", *seedFile),
				zap.Error(err),
			)
		}
		form, warnings, err := resolveForm(raw, time.Now())
		if err != nil {
			logger.Fatal("failed to resolve form",
				zap.String("op", "main"),
				zap.Error(err),
			)
		}
		for _, warning := range warnings {
			logger.Warn("seed value skipped",
				zap.String("op", "main"),
				zap.Error(warning),
			)
		}
		if err := printForm(os.Stdout, form, outputFormat); err != nil {
			logger.Fatal("failed to print form",
				zap.String("op", "main"),
				zap.Error(err),
			)
		}
		return
	}

	serve(logger, conf)
}

// loadConfiguration falls back to defaults when the default config file is
// absent. An explicitly named file must exist.
func loadConfiguration(path string) (*config.Configuration, error) {
	if path == constants.DefaultConfigFile {
		if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
			return config.Defaults()
		}
	}
	return config.LoadConfiguration(path)
}

func serve(logger *zap.Logger, conf *config.Configuration) {
	client := submission.NewClient(conf.Valuation.URL, conf.Valuation.TimeoutDuration(), logger)
	srv := server.New(server.Options{
		Logger:      logger,
		Valuator:    client,
		MaxBodySize: conf.Server.MaxBodyBytes(),
		IdleTimeout: conf.Server.IdleTimeout(),
		Version:     version,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if idle := conf.Server.IdleTimeout(); idle > 0 {
		go srv.ExpireSessions(ctx, idle/2)
	}

	httpServer := &http.Server{
		Addr:              conf.Server.Address,
		Handler:           srv,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("serving investment form",
			zap.String("op", "main"),
			zap.String("address", conf.Server.Address),
			zap.String("valuationURL", conf.Valuation.URL),
			zap.String("version", version),
		)
		errCh <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("server failed",
				zap.String("op", "main"),
				zap.Error(err),
			)
		}
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			logger.Error("graceful shutdown failed",
				zap.String("op", "main"),
				zap.Error(err),
			)
		}
		logger.Info("server stopped", zap.String("op", "main"))
	}
}
