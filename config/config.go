package config

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/gridwatt/gridplan/core/metrics"
)

// Config is the full planner configuration.
type Config struct {
	Costs   CostsConfig    `json:"costs"`
	Planner PlannerConfig  `json:"planner"`
	Phases  PhasesConfig   `json:"phases"`
	Metrics metrics.Config `json:"metrics"`
	Logging LoggingConfig  `json:"logging"`
}

// Load reads the configuration from a YAML or JSON file, applies
// GRIDPLAN_ environment overrides, fills defaults and validates.
func Load(path string) (*Config, error) {
	k := koanf.New(".")
	ext := strings.ToLower(filepath.Ext(path))
	var parser koanf.Parser
	switch ext {
	case ".yaml", ".yml":
		parser = yaml.Parser()
	case ".json":
		parser = json.Parser()
	default:
		return nil, fmt.Errorf("unsupported config format: %s", ext)
	}
	if err := k.Load(file.Provider(path), parser); err != nil {
		return nil, err
	}
	// Optional environment overrides. The callback only strips the
	// prefix and lowercases; the provider splits the remaining key on
	// its __ delimiter to build the nesting.
	if err := k.Load(env.Provider("GRIDPLAN_", "__", func(s string) string {
		return strings.TrimPrefix(strings.ToLower(s), "gridplan_")
	}), nil); err != nil {
		return nil, err
	}
	var cfg Config
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "json"}); err != nil {
		return nil, err
	}
	cfg.Costs.SetDefaults()
	cfg.Phases.SetDefaults()
	cfg.Logging.SetDefaults()
	if err := cfg.Costs.Validate(); err != nil {
		return nil, err
	}
	if err := cfg.Planner.Validate(); err != nil {
		return nil, err
	}
	if err := cfg.Phases.Validate(); err != nil {
		return nil, err
	}
	if err := cfg.Logging.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}
