package cmd

import (
	"fmt"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/gridwatt/gridplan/config"
	"github.com/gridwatt/gridplan/core/allocator"
	coremetrics "github.com/gridwatt/gridplan/core/metrics"
	"github.com/gridwatt/gridplan/core/model"
	"github.com/gridwatt/gridplan/core/phases"
	"github.com/gridwatt/gridplan/core/planner"
	"github.com/gridwatt/gridplan/core/priority"
	"github.com/gridwatt/gridplan/core/resolver"
	"github.com/gridwatt/gridplan/infra/logger"
	_ "github.com/gridwatt/gridplan/infra/metrics" // sink registration
	"github.com/gridwatt/gridplan/internal/eventbus"
	"github.com/gridwatt/gridplan/pkg/ingest"
)

var (
	cfgPath       string
	buildingsPath string
	linesPath     string
)

var rootCmd = &cobra.Command{
	Use:   "gridplan",
	Short: "Electrical grid connection planner",
	Long: `gridplan plans how to connect buildings to an existing electrical
distribution network, minimizing cost while prioritizing critical
facilities under optional budget and time caps.`,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgPath, "config", "c", "config.yaml", "configuration file")
	rootCmd.PersistentFlags().StringVar(&buildingsPath, "buildings", "buildings.json", "building source records (.csv or .json)")
	rootCmd.PersistentFlags().StringVar(&linesPath, "lines", "lines.json", "infrastructure source records (.json)")
}

// Execute runs the CLI.
func Execute() error { return rootCmd.Execute() }

// setup loads configuration and wires the planner with its registries.
func setup() (*config.Config, *planner.Planner, *model.BuildingRegistry, *model.InfraRegistry, error) {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return nil, nil, nil, nil, fmt.Errorf("load config: %w", err)
	}
	if level, err := zerolog.ParseLevel(cfg.Logging.Level); err == nil {
		zerolog.SetGlobalLevel(level)
	}

	sink, err := coremetrics.NewPlanSink(cfg.Metrics.Sinks)
	if err != nil {
		return nil, nil, nil, nil, fmt.Errorf("metrics sinks: %w", err)
	}

	res := resolver.New(resolver.Config{
		MinConnectionCost: cfg.Costs.MinConnectionCost,
		FallbackDistance:  cfg.Costs.FallbackDistance,
		LaborRate:         cfg.Costs.LaborRate,
		Workers:           cfg.Planner.Workers,
	}, logger.New("resolver"))
	alloc := allocator.New(allocator.Config{
		Budget:  cfg.Planner.Budget,
		MaxTime: cfg.Planner.MaxTime,
	}, logger.New("allocator"))
	parts := phases.New(phases.Config{Weights: cfg.Phases.Weights}, logger.New("phases"))

	pl, err := planner.New(res, priority.NewEngine(), alloc, parts, sink, eventbus.New(), logger.New("planner"))
	if err != nil {
		return nil, nil, nil, nil, err
	}

	buildingRecs, err := ingest.LoadBuildings(buildingsPath)
	if err != nil {
		return nil, nil, nil, nil, fmt.Errorf("load buildings: %w", err)
	}
	buildings, err := ingest.MapBuildings(buildingRecs)
	if err != nil {
		return nil, nil, nil, nil, err
	}
	lineRecs, err := ingest.LoadLines(linesPath)
	if err != nil {
		return nil, nil, nil, nil, fmt.Errorf("load lines: %w", err)
	}
	infra, err := ingest.MapLines(lineRecs, cfg.Costs.Table)
	if err != nil {
		return nil, nil, nil, nil, err
	}

	return cfg, pl, buildings, infra, nil
}
