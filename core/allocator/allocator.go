// Package allocator selects which buildings to connect under optional
// global budget and time caps.
//
// Candidates are ranked by composite score (priority x efficiency) and
// scanned once. An over-cap candidate is skipped, never terminates the
// scan: an expensive high-priority building must not block cheaper ones
// later in the ranking. This single deterministic pass is a greedy
// heuristic, not an exact knapsack solver.
package allocator

import (
	"sort"

	"github.com/gridwatt/gridplan/core/logger"
	"github.com/gridwatt/gridplan/core/model"
)

// Config holds the optional global caps. Zero disables a cap.
type Config struct {
	Budget  float64 `json:"budget"`
	MaxTime float64 `json:"max_time"`
}

// Result is the outcome of an allocation pass.
type Result struct {
	// Records lists accepted buildings in acceptance order.
	Records []model.ConnectionRecord

	TotalCost          float64
	TotalTime          float64
	BuildingsConnected int
	HousesConnected    int

	// Skipped lists candidates passed over because accepting them would
	// have pushed a cumulative total past its cap.
	Skipped []string
}

// GreedyAllocator implements the ranked skip-and-continue selection.
type GreedyAllocator struct {
	cfg Config
	log logger.Logger
}

// New creates an allocator. A nil logger falls back to a no-op one.
func New(cfg Config, log logger.Logger) *GreedyAllocator {
	if log == nil {
		log = logger.Nop{}
	}
	return &GreedyAllocator{cfg: cfg, log: log}
}

// Rank returns the resolved buildings ordered by descending composite
// score. The sort is stable: equal scores keep registry order.
func Rank(buildings *model.BuildingRegistry) []*model.Building {
	eligible := make([]*model.Building, 0, buildings.Len())
	for _, b := range buildings.All() {
		if b.Resolved() {
			eligible = append(eligible, b)
		}
	}
	sort.SliceStable(eligible, func(i, j int) bool {
		return eligible[i].CompositeScore() > eligible[j].CompositeScore()
	})
	return eligible
}

// Allocate runs the selection pass. It mutates accepted buildings
// (Connected) and their chosen lines (membership, Shared) and must run
// under a single logical writer.
func (a *GreedyAllocator) Allocate(buildings *model.BuildingRegistry, infra *model.InfraRegistry) Result {
	var res Result
	var cumulativeCost, cumulativeTime float64

	for _, b := range Rank(buildings) {
		newCost := cumulativeCost + b.ConnectionCost
		newTime := cumulativeTime + b.ConnectionTime

		if a.cfg.Budget > 0 && newCost > a.cfg.Budget {
			res.Skipped = append(res.Skipped, b.ID)
			a.log.Debugw("candidate over budget, skipping", map[string]any{
				"building_id": b.ID,
				"cost":        b.ConnectionCost,
				"cumulative":  cumulativeCost,
			})
			continue
		}
		if a.cfg.MaxTime > 0 && newTime > a.cfg.MaxTime {
			res.Skipped = append(res.Skipped, b.ID)
			continue
		}

		line, ok := infra.Get(b.ConnectedVia)
		if !ok {
			// Resolver only assigns ids from the registry; treat a miss
			// as a skipped candidate rather than failing the pass.
			a.log.Errorf("building %s references unknown line %s", b.ID, b.ConnectedVia)
			res.Skipped = append(res.Skipped, b.ID)
			continue
		}

		b.Connected = true
		line.AddBuilding(b.ID)
		cumulativeCost = newCost
		cumulativeTime = newTime
		res.BuildingsConnected++
		res.HousesConnected += b.HouseCount
		res.Records = append(res.Records, model.ConnectionRecord{
			BuildingID:         b.ID,
			BuildingType:       b.Type,
			HouseCount:         b.HouseCount,
			InfrastructureID:   line.ID,
			InfrastructureType: line.Type,
			Cost:               b.ConnectionCost,
			Time:               b.ConnectionTime,
			PriorityScore:      b.PriorityScore,
			Efficiency:         b.Efficiency(),
			Rank:               res.BuildingsConnected,
		})
	}

	res.TotalCost = cumulativeCost
	res.TotalTime = cumulativeTime
	a.log.Infof("connected %d buildings (%d houses), total cost %.2f, total time %.2f",
		res.BuildingsConnected, res.HousesConnected, res.TotalCost, res.TotalTime)
	return res
}
