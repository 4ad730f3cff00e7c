package config

import (
	"fmt"

	"github.com/gridwatt/gridplan/core/model"
)

// CostsConfig defines the per-line-type cost table and distance
// handling.
type CostsConfig struct {
	// Table maps canonical line types to per-meter figures. Missing
	// entries fall back to the built-in defaults.
	Table map[string]model.LineSpec `json:"table"`
	// LaborRate folds installation labor into candidate costs; zero
	// disables it.
	LaborRate float64 `json:"labor_rate"`
	// MinConnectionCost floors every resolved connection cost.
	MinConnectionCost float64 `json:"min_connection_cost"`
	// FallbackDistance substitutes for pairs with missing geometry.
	FallbackDistance float64 `json:"fallback_distance"`
}

// SetDefaults applies the built-in table and standard distances.
func (c *CostsConfig) SetDefaults() {
	if c.Table == nil {
		c.Table = make(map[string]model.LineSpec)
	}
	for typ, spec := range model.DefaultLineSpecs {
		if _, ok := c.Table[typ]; !ok {
			c.Table[typ] = spec
		}
	}
	if c.MinConnectionCost == 0 {
		c.MinConnectionCost = 50
	}
	if c.FallbackDistance == 0 {
		c.FallbackDistance = 50
	}
}

// Validate checks the table and distance figures.
func (c CostsConfig) Validate() error {
	for typ, spec := range c.Table {
		if spec.CostPerMeter <= 0 {
			return fmt.Errorf("costs.table.%s: cost_per_meter must be positive", typ)
		}
		if spec.TimePerMeter < 0 {
			return fmt.Errorf("costs.table.%s: time_per_meter must not be negative", typ)
		}
	}
	if c.LaborRate < 0 {
		return fmt.Errorf("costs.labor_rate must not be negative")
	}
	if c.MinConnectionCost <= 0 {
		return fmt.Errorf("costs.min_connection_cost must be positive")
	}
	if c.FallbackDistance <= 0 {
		return fmt.Errorf("costs.fallback_distance must be positive")
	}
	return nil
}
