// Package stats rolls up connection plans by grouping key. Every
// function is pure: output depends only on the input collection.
package stats

import "github.com/gridwatt/gridplan/core/model"

// Group aggregates the records sharing one grouping key.
type Group struct {
	Count     int     `json:"count"`
	Houses    int     `json:"houses"`
	Cost      float64 `json:"cost"`
	TotalTime float64 `json:"total_time"`
}

// GroupBy reduces records into groups keyed by an arbitrary key
// function.
func GroupBy[K comparable](records []model.ConnectionRecord, key func(model.ConnectionRecord) K) map[K]Group {
	out := make(map[K]Group)
	for _, rec := range records {
		g := out[key(rec)]
		g.Count++
		g.Houses += rec.HouseCount
		g.Cost += rec.Cost
		g.TotalTime += rec.Time
		out[key(rec)] = g
	}
	return out
}

// ByBuildingType groups records by building category label.
func ByBuildingType(records []model.ConnectionRecord) map[string]Group {
	return GroupBy(records, func(r model.ConnectionRecord) string { return r.BuildingType })
}

// ByInfraType groups records by the chosen line's type.
func ByInfraType(records []model.ConnectionRecord) map[string]Group {
	return GroupBy(records, func(r model.ConnectionRecord) string { return r.InfrastructureType })
}

// ByPhase reduces a phase assignment into per-phase groups, resolving
// member ids through the building registry.
func ByPhase(assignment []model.Phase, buildings *model.BuildingRegistry) map[int]Group {
	out := make(map[int]Group, len(assignment))
	for _, phase := range assignment {
		g := Group{Cost: phase.TotalCost, Houses: phase.TotalHouses, Count: len(phase.Members)}
		for _, id := range phase.Members {
			if b, ok := buildings.Get(id); ok {
				g.TotalTime += b.ConnectionTime
			}
		}
		out[phase.Index] = g
	}
	return out
}

// Summary holds plan-wide totals and derived ratios.
type Summary struct {
	BuildingsConnected    int     `json:"total_buildings_connected"`
	HousesConnected       int     `json:"total_houses_connected"`
	TotalCost             float64 `json:"total_cost"`
	TotalTime             float64 `json:"total_time"`
	AvgCostPerBuilding    float64 `json:"avg_cost_per_building"`
	AvgCostPerHouse       float64 `json:"avg_cost_per_house"`
	HousesPerThousandCost float64 `json:"efficiency_houses_per_1000"`
}

// Summarize computes plan-wide totals and ratios from the accepted
// records.
func Summarize(records []model.ConnectionRecord) Summary {
	var s Summary
	for _, rec := range records {
		s.BuildingsConnected++
		s.HousesConnected += rec.HouseCount
		s.TotalCost += rec.Cost
		s.TotalTime += rec.Time
	}
	if s.BuildingsConnected > 0 {
		s.AvgCostPerBuilding = s.TotalCost / float64(s.BuildingsConnected)
	}
	if s.HousesConnected > 0 {
		s.AvgCostPerHouse = s.TotalCost / float64(s.HousesConnected)
	}
	if s.TotalCost > 0 {
		s.HousesPerThousandCost = float64(s.HousesConnected) / (s.TotalCost / 1000)
	}
	return s
}
