// Package resolver assigns every building its cheapest candidate
// infrastructure line and the resulting connection cost and time.
//
// This is a flat nearest-candidate selection over planar distances, not
// network routing: each building gets the single line minimizing
// distance times per-meter cost.
package resolver

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sync"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/gridwatt/gridplan/core/logger"
	"github.com/gridwatt/gridplan/core/model"
)

// ErrNoInfrastructure is reported for every building when the
// infrastructure set is empty.
var ErrNoInfrastructure = errors.New("no infrastructure lines available")

// Distance handling constants. Raw distances under ClampThreshold are
// degenerate geometry artifacts and are clamped to ClampedDistance before
// costing, so coincident geometries cannot produce near-zero costs.
const (
	ClampThreshold  = 1.0
	ClampedDistance = 10.0
)

// Config controls cost resolution.
type Config struct {
	// MinConnectionCost is the floor applied to every resolved cost.
	MinConnectionCost float64 `json:"min_connection_cost"`
	// FallbackDistance substitutes for a pair when either geometry is
	// missing.
	FallbackDistance float64 `json:"fallback_distance"`
	// LaborRate folds installation labor into candidate costs as
	// distance * time_per_meter * rate. Zero disables it.
	LaborRate float64 `json:"labor_rate"`
	// Workers bounds the resolution worker pool. Values below 2 keep the
	// pass sequential.
	Workers int `json:"workers"`
}

// DefaultConfig returns the standard resolution settings.
func DefaultConfig() Config {
	return Config{MinConnectionCost: 50, FallbackDistance: 50}
}

// Failure records one building that could not be resolved. One
// building's failure never blocks the others.
type Failure struct {
	BuildingID string
	Err        error
}

// DistanceStats summarizes the winning distances of a resolution pass.
type DistanceStats struct {
	Samples int
	Min     float64
	Max     float64
	Mean    float64
	// Clamped counts building/line pairs whose raw distance fell under
	// ClampThreshold.
	Clamped int
}

// Result is the outcome of a resolution pass.
type Result struct {
	Resolved  int
	Failures  []Failure
	Distances DistanceStats
}

// Resolver computes connection costs for buildings.
type Resolver struct {
	cfg Config
	log logger.Logger
}

// New creates a resolver. A nil logger falls back to a no-op one.
func New(cfg Config, log logger.Logger) *Resolver {
	if cfg.MinConnectionCost <= 0 {
		cfg.MinConnectionCost = DefaultConfig().MinConnectionCost
	}
	if cfg.FallbackDistance <= 0 {
		cfg.FallbackDistance = DefaultConfig().FallbackDistance
	}
	if log == nil {
		log = logger.Nop{}
	}
	return &Resolver{cfg: cfg, log: log}
}

// Resolve computes, for every building, the cheapest candidate line and
// writes connection cost, time and via onto the building. Buildings that
// cannot be resolved are reported individually in the result and left
// untouched.
func (r *Resolver) Resolve(ctx context.Context, buildings *model.BuildingRegistry, infra *model.InfraRegistry) (Result, error) {
	var res Result
	pool := buildings.All()
	lines := infra.All()

	if len(lines) == 0 {
		for _, b := range pool {
			res.Failures = append(res.Failures, Failure{
				BuildingID: b.ID,
				Err:        fmt.Errorf("building %s: %w", b.ID, ErrNoInfrastructure),
			})
		}
		r.log.Warnf("resolution skipped: %s", ErrNoInfrastructure)
		return res, nil
	}

	distances := make([]float64, 0, len(pool))
	var clamped int

	if r.cfg.Workers > 1 {
		var err error
		distances, clamped, err = r.resolveParallel(ctx, pool, lines)
		if err != nil {
			return res, err
		}
	} else {
		for _, b := range pool {
			if err := ctx.Err(); err != nil {
				return res, err
			}
			d, c := r.resolveOne(b, lines)
			distances = append(distances, d)
			clamped += c
		}
	}

	res.Resolved = len(pool)
	res.Distances = distanceStats(distances, clamped)
	r.log.Infof("resolved %d buildings against %d lines (mean distance %.2f)",
		res.Resolved, len(lines), res.Distances.Mean)
	return res, nil
}

// resolveOne scans all lines for the cheapest candidate and writes the
// result onto the building. It returns the winning distance and how many
// pairs were clamped.
func (r *Resolver) resolveOne(b *model.Building, lines []*model.InfrastructureLine) (float64, int) {
	bestCost := math.Inf(1)
	var bestTime, bestDist float64
	var bestID string
	var clamped int

	for _, line := range lines {
		var distance float64
		if b.Geometry == nil || line.Geometry == nil {
			distance = r.cfg.FallbackDistance
		} else {
			distance = line.Geometry.Distance(*b.Geometry)
			if distance < ClampThreshold {
				distance = ClampedDistance
				clamped++
			}
		}
		cost := distance * (line.CostPerMeter + line.TimePerMeter*r.cfg.LaborRate)
		// Strict comparison: ties resolve to the first-encountered line
		// in registry order.
		if cost < bestCost {
			bestCost = cost
			bestTime = distance * line.TimePerMeter
			bestDist = distance
			bestID = line.ID
		}
	}

	b.ConnectionCost = math.Max(bestCost, r.cfg.MinConnectionCost)
	b.ConnectionTime = bestTime
	b.ConnectedVia = bestID
	return bestDist, clamped
}

// resolveParallel fans buildings out over a bounded worker pool. Each
// worker writes only its own building's fields; line geometry is read
// immutably. The join barrier guarantees allocation never starts on a
// half-resolved set.
func (r *Resolver) resolveParallel(ctx context.Context, pool []*model.Building, lines []*model.InfrastructureLine) ([]float64, int, error) {
	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		clamped int
	)
	distances := make([]float64, len(pool))
	jobs := make(chan int)

	workers := r.cfg.Workers
	if workers > len(pool) {
		workers = len(pool)
	}
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				d, c := r.resolveOne(pool[i], lines)
				mu.Lock()
				distances[i] = d
				clamped += c
				mu.Unlock()
			}
		}()
	}

	var err error
feed:
	for i := range pool {
		select {
		case jobs <- i:
		case <-ctx.Done():
			err = ctx.Err()
			break feed
		}
	}
	close(jobs)
	wg.Wait()
	if err != nil {
		return nil, 0, err
	}
	return distances, clamped, nil
}

func distanceStats(distances []float64, clamped int) DistanceStats {
	s := DistanceStats{Samples: len(distances), Clamped: clamped}
	if len(distances) == 0 {
		return s
	}
	s.Min = floats.Min(distances)
	s.Max = floats.Max(distances)
	s.Mean = stat.Mean(distances, nil)
	return s
}
