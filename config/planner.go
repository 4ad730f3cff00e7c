package config

import (
	"fmt"

	"github.com/gridwatt/gridplan/core/phases"
)

// PlannerConfig holds the optional global caps and resolver
// parallelism. Zero disables a cap.
type PlannerConfig struct {
	Budget  float64 `json:"budget"`
	MaxTime float64 `json:"max_time"`
	// Workers bounds the resolver worker pool; values below 2 keep
	// resolution sequential.
	Workers int `json:"workers"`
}

// Validate checks the caps.
func (c PlannerConfig) Validate() error {
	if c.Budget < 0 {
		return fmt.Errorf("planner.budget must not be negative")
	}
	if c.MaxTime < 0 {
		return fmt.Errorf("planner.max_time must not be negative")
	}
	if c.Workers < 0 {
		return fmt.Errorf("planner.workers must not be negative")
	}
	return nil
}

// PhasesConfig holds the construction phase weights. Weights[i] is the
// share of the non-critical pool's total cost allotted to phase i+1.
type PhasesConfig struct {
	Weights []float64 `json:"weights"`
}

// SetDefaults applies the standard 40/20/20/20 split.
func (c *PhasesConfig) SetDefaults() {
	if len(c.Weights) == 0 {
		c.Weights = append([]float64(nil), phases.DefaultWeights...)
	}
}

// Validate checks that each weight is a usable share and the split does
// not exceed the pool total.
func (c PhasesConfig) Validate() error {
	var sum float64
	for i, w := range c.Weights {
		if w <= 0 || w > 1 {
			return fmt.Errorf("phases.weights[%d] must be in (0, 1]", i)
		}
		sum += w
	}
	if sum > 1+1e-9 {
		return fmt.Errorf("phases.weights sum to %.3f, must not exceed 1", sum)
	}
	return nil
}
