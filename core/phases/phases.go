// Package phases splits the costed building set into sequential
// construction phases instead of applying a hard global cap.
//
// Phase 0 is reserved, unconditional, for critical facilities: a
// hospital is never deferred regardless of its cost. The remaining pool
// is walked in priority order through weighted cost buckets.
package phases

import (
	"sort"

	"github.com/gridwatt/gridplan/core/logger"
	"github.com/gridwatt/gridplan/core/model"
	"github.com/gridwatt/gridplan/core/priority"
)

// DefaultWeights splits the non-critical pool's total cost over phases
// 1..4. The weights sum to 1.0.
var DefaultWeights = []float64{0.4, 0.2, 0.2, 0.2}

// Config controls partitioning. Weights[i] is the share of the pool's
// total cost allotted to phase i+1.
type Config struct {
	Weights []float64 `json:"weights"`
}

// Assignment is the outcome of a partitioning pass. Phases always holds
// one entry per phase index, starting at 0, even when a phase received
// no buildings. Unassigned lists buildings left over after the last
// phase; they are reported, not dropped.
type Assignment struct {
	Phases     []model.Phase
	Unassigned []string
}

// Partitioner assigns buildings to construction phases.
type Partitioner struct {
	weights []float64
	log     logger.Logger
}

// New creates a partitioner. Empty weights fall back to DefaultWeights
// and a nil logger to a no-op one.
func New(cfg Config, log logger.Logger) *Partitioner {
	weights := cfg.Weights
	if len(weights) == 0 {
		weights = DefaultWeights
	}
	if log == nil {
		log = logger.Nop{}
	}
	return &Partitioner{weights: weights, log: log}
}

// Partition assigns every resolved building to a phase, or reports it
// unassigned. Assigned buildings are marked connected and registered
// with their chosen line, so the pass must run under a single logical
// writer, like the allocator.
func (p *Partitioner) Partition(buildings *model.BuildingRegistry, infra *model.InfraRegistry) Assignment {
	out := Assignment{Phases: make([]model.Phase, len(p.weights)+1)}
	for i := range out.Phases {
		out.Phases[i].Index = i
	}

	var critical, pool []*model.Building
	for _, b := range buildings.All() {
		if !b.Resolved() {
			continue
		}
		if priority.IsCritical(b.Type) {
			critical = append(critical, b)
		} else {
			pool = append(pool, b)
		}
	}

	// Life-safety facilities connect first, no budget check.
	for _, b := range critical {
		p.accept(b, infra, &out.Phases[0])
	}
	if len(critical) == 0 {
		p.log.Warnf("no critical facility found; phase 0 is empty")
	}

	sort.SliceStable(pool, func(i, j int) bool {
		return pool[i].PriorityScore > pool[j].PriorityScore
	})

	// The pool total is fixed before the walk; unspent phase budget is
	// not carried forward.
	var totalCost float64
	for _, b := range pool {
		totalCost += b.ConnectionCost
	}

	for i, weight := range p.weights {
		phase := &out.Phases[i+1]
		limit := totalCost * weight
		var running float64
		for len(pool) > 0 {
			head := pool[0]
			if running+head.ConnectionCost > limit {
				// The head and everything after it roll to the next
				// phase.
				break
			}
			running += head.ConnectionCost
			p.accept(head, infra, phase)
			pool = pool[1:]
		}
		p.log.Debugw("phase filled", map[string]any{
			"phase":     phase.Index,
			"limit":     limit,
			"buildings": len(phase.Members),
		})
	}

	for _, b := range pool {
		out.Unassigned = append(out.Unassigned, b.ID)
	}
	if len(out.Unassigned) > 0 {
		p.log.Warnf("%d buildings did not fit any phase", len(out.Unassigned))
	}
	return out
}

func (p *Partitioner) accept(b *model.Building, infra *model.InfraRegistry, phase *model.Phase) {
	if line, ok := infra.Get(b.ConnectedVia); ok {
		line.AddBuilding(b.ID)
	} else {
		p.log.Errorf("building %s references unknown line %s", b.ID, b.ConnectedVia)
	}
	b.Connected = true
	phase.Members = append(phase.Members, b.ID)
	phase.TotalCost += b.ConnectionCost
	phase.TotalHouses += b.HouseCount
}
