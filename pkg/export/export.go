// Package export writes plan results as CSV and JSON. All serialization
// stays outside the core; these writers only read finished results.
package export

import (
	"encoding/csv"
	"encoding/json"
	"io"
	"strconv"

	"github.com/gridwatt/gridplan/core/model"
	"github.com/gridwatt/gridplan/core/phases"
	"github.com/gridwatt/gridplan/core/stats"
)

// WritePlanJSON writes the connection records to w in JSON format.
func WritePlanJSON(w io.Writer, records []model.ConnectionRecord) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(records)
}

// WritePlanCSV writes the connection records to w in CSV format.
func WritePlanCSV(w io.Writer, records []model.ConnectionRecord) error {
	cw := csv.NewWriter(w)
	header := []string{
		"building_id", "building_type", "house_count",
		"infrastructure_id", "infrastructure_type",
		"cost", "time", "priority_score", "efficiency", "rank", "cost_per_house",
	}
	if err := cw.Write(header); err != nil {
		return err
	}
	for _, r := range records {
		houses := r.HouseCount
		if houses < 1 {
			houses = 1
		}
		rec := []string{
			r.BuildingID,
			r.BuildingType,
			strconv.Itoa(r.HouseCount),
			r.InfrastructureID,
			r.InfrastructureType,
			formatFloat(r.Cost),
			formatFloat(r.Time),
			formatFloat(r.PriorityScore),
			formatFloat(r.Efficiency),
			strconv.Itoa(r.Rank),
			formatFloat(r.Cost / float64(houses)),
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteSummaryJSON writes the plan-wide statistics to w.
func WriteSummaryJSON(w io.Writer, summary stats.Summary) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(summary)
}

// phasePlan is the serialized shape of a phase assignment.
type phasePlan struct {
	Phases     []model.Phase `json:"phases"`
	Unassigned []string      `json:"unassigned"`
}

// WritePhasesJSON writes the phase assignment to w in JSON format.
func WritePhasesJSON(w io.Writer, assignment phases.Assignment) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(phasePlan{Phases: assignment.Phases, Unassigned: assignment.Unassigned})
}

// WritePhasesCSV writes one row per building with its phase index.
// Unassigned buildings get an empty phase column.
func WritePhasesCSV(w io.Writer, assignment phases.Assignment) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"building_id", "phase"}); err != nil {
		return err
	}
	for _, phase := range assignment.Phases {
		for _, id := range phase.Members {
			if err := cw.Write([]string{id, strconv.Itoa(phase.Index)}); err != nil {
				return err
			}
		}
	}
	for _, id := range assignment.Unassigned {
		if err := cw.Write([]string{id, ""}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteConnectionLinesCSV writes, for each accepted building, the
// straight connection segment to the nearest point of its chosen line.
// Rows without complete geometry are skipped.
func WriteConnectionLinesCSV(w io.Writer, records []model.ConnectionRecord, buildings *model.BuildingRegistry, infra *model.InfraRegistry) error {
	cw := csv.NewWriter(w)
	header := []string{
		"building_id", "infrastructure_id",
		"building_x", "building_y", "line_x", "line_y",
		"distance", "shared",
	}
	if err := cw.Write(header); err != nil {
		return err
	}
	for _, r := range records {
		b, ok := buildings.Get(r.BuildingID)
		if !ok || b.Geometry == nil {
			continue
		}
		line, ok := infra.Get(r.InfrastructureID)
		if !ok || line.Geometry == nil {
			continue
		}
		nearest, dist := line.Geometry.Nearest(*b.Geometry)
		rec := []string{
			r.BuildingID,
			r.InfrastructureID,
			formatFloat(b.Geometry.X),
			formatFloat(b.Geometry.Y),
			formatFloat(nearest.X),
			formatFloat(nearest.Y),
			formatFloat(dist),
			strconv.FormatBool(line.Shared),
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
