package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/koussay97/space-travel-TSP/internal/adapters/catalog"
	"github.com/koussay97/space-travel-TSP/internal/adapters/metrics"
	"github.com/koussay97/space-travel-TSP/internal/application/logging"
	"github.com/koussay97/space-travel-TSP/internal/application/mediator"
	"github.com/koussay97/space-travel-TSP/internal/application/scenario"
	"github.com/koussay97/space-travel-TSP/internal/domain/navigation"
	"github.com/koussay97/space-travel-TSP/internal/domain/routing"
	"github.com/koussay97/space-travel-TSP/internal/infrastructure/config"
)

// app is the per-invocation wiring shared by every subcommand
type app struct {
	cfg       *config.Config
	catalog   *catalog.Catalog
	mediator  mediator.Mediator
	logger    logging.Logger
	formatter *ReportFormatter
	out       io.Writer
}

// newApp loads configuration, applies global flag overrides and wires the
// catalog, logger, metrics and scenario handlers
func newApp(cmd *cobra.Command) (*app, error) {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return nil, err
	}

	flags := cmd.Flags()
	if flags.Changed("workers") {
		cfg.Search.Workers = workers
	}
	if flags.Changed("max-bodies") {
		cfg.Search.MaxBodies = maxBodies
	}
	if catalogPath != "" {
		cfg.Catalog.Path = catalogPath
	}
	if verbose {
		cfg.Logging.Level = "debug"
	}
	if err := config.ValidateConfig(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	logOut := cmd.ErrOrStderr()
	if cfg.Logging.Output == "stdout" {
		logOut = cmd.OutOrStdout()
	}
	logger, err := logging.NewStdLogger(logOut, cfg.Logging.Level, cfg.Logging.Format)
	if err != nil {
		return nil, err
	}

	cat := catalog.Builtin()
	if cfg.Catalog.Path != "" {
		cat, err = catalog.LoadFile(cfg.Catalog.Path)
		if err != nil {
			return nil, err
		}
	}

	m := mediator.NewMediator()
	if cfg.Metrics.Enabled {
		collector, err := enableMetrics(cfg.Metrics.Namespace)
		if err != nil {
			return nil, err
		}
		m.Use(metrics.PrometheusMiddleware(collector))
	}

	calculator := navigation.NewKinematicCalculator()
	optimizer := routing.NewTourOptimizer(calculator, routing.Options{
		MaxBodies: cfg.Search.MaxBodies,
		Workers:   cfg.Search.Workers,
	})
	if err := scenario.RegisterHandlers(m, cat, calculator, optimizer); err != nil {
		return nil, fmt.Errorf("failed to register handlers: %w", err)
	}

	logger.Log("DEBUG", "[CLI] Configuration loaded", map[string]interface{}{
		"workers":    cfg.Search.Workers,
		"max_bodies": cfg.Search.MaxBodies,
		"catalog":    cfg.Catalog.Path,
		"metrics":    cfg.Metrics.Enabled,
	})

	return &app{
		cfg:       cfg,
		catalog:   cat,
		mediator:  m,
		logger:    logger,
		formatter: NewReportFormatter(cfg.Report.UseEmojis),
		out:       cmd.OutOrStdout(),
	}, nil
}

func enableMetrics(namespace string) (*metrics.CommandMetricsCollector, error) {
	metrics.InitRegistry()

	planner := metrics.NewPlannerMetricsCollector(namespace)
	if err := planner.Register(); err != nil {
		return nil, fmt.Errorf("failed to register planner metrics: %w", err)
	}
	metrics.SetGlobalPlannerCollector(planner)

	commands := metrics.NewCommandMetricsCollector(namespace)
	if err := commands.Register(); err != nil {
		return nil, fmt.Errorf("failed to register command metrics: %w", err)
	}
	return commands, nil
}

// context attaches the configured logger to the command context
func (a *app) context(cmd *cobra.Command) context.Context {
	return logging.WithLogger(cmd.Context(), a.logger)
}

// close dumps metrics to the configured textfile, then disables collection.
// A failed dump is logged; the command result stands.
func (a *app) close() {
	if !metrics.IsEnabled() {
		return
	}
	defer metrics.ResetRegistry()

	path := a.cfg.Metrics.TextfilePath
	if path == "" {
		return
	}
	if err := metrics.WriteTextfile(path); err != nil {
		a.logger.Log("ERROR", fmt.Sprintf("[CLI] Failed to write metrics: %v", err), map[string]interface{}{
			"path": path,
		})
		return
	}
	a.logger.Log("INFO", "[CLI] Metrics written", map[string]interface{}{
		"path": path,
	})
}

func (a *app) print(text string) {
	fmt.Fprint(a.out, text)
}
