// Package ingest loads building and infrastructure source records from
// CSV or JSON and maps them into registries. Mapping is one explicit
// typed step validated at load time; the core never normalizes inputs.
//
// Geometry is read as planar coordinates. The caller guarantees one
// consistent projected unit system; shapefile loading and reprojection
// are outside this tool.
package ingest

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/gridwatt/gridplan/core/geo"
	"github.com/gridwatt/gridplan/core/model"
)

// BuildingRecord is one building source record.
type BuildingRecord struct {
	ID         string     `json:"id"`
	Type       string     `json:"type"`
	HouseCount int        `json:"house_count"`
	Point      *geo.Point `json:"point,omitempty"`
}

// LineRecord is one infrastructure source record.
type LineRecord struct {
	ID     string      `json:"id"`
	Type   string      `json:"type"`
	Points []geo.Point `json:"points,omitempty"`
}

type buildingFile struct {
	Buildings []BuildingRecord `json:"buildings"`
}

type lineFile struct {
	Lines []LineRecord `json:"lines"`
}

// ReadBuildingsJSON decodes building records from JSON.
func ReadBuildingsJSON(r io.Reader) ([]BuildingRecord, error) {
	var f buildingFile
	if err := json.NewDecoder(r).Decode(&f); err != nil {
		return nil, fmt.Errorf("decode buildings: %w", err)
	}
	return f.Buildings, nil
}

// ReadLinesJSON decodes infrastructure records from JSON.
func ReadLinesJSON(r io.Reader) ([]LineRecord, error) {
	var f lineFile
	if err := json.NewDecoder(r).Decode(&f); err != nil {
		return nil, fmt.Errorf("decode lines: %w", err)
	}
	return f.Lines, nil
}

// ReadBuildingsCSV decodes building records from CSV with the header
// id,type,house_count,x,y. Empty coordinates leave the geometry unset.
func ReadBuildingsCSV(r io.Reader) ([]BuildingRecord, error) {
	cr := csv.NewReader(r)
	rows, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read buildings csv: %w", err)
	}
	if len(rows) == 0 {
		return nil, nil
	}
	cols := make(map[string]int, len(rows[0]))
	for i, name := range rows[0] {
		cols[strings.ToLower(strings.TrimSpace(name))] = i
	}
	for _, required := range []string{"id", "type", "house_count"} {
		if _, ok := cols[required]; !ok {
			return nil, fmt.Errorf("buildings csv: missing column %s", required)
		}
	}

	out := make([]BuildingRecord, 0, len(rows)-1)
	for n, row := range rows[1:] {
		rec := BuildingRecord{
			ID:   strings.TrimSpace(row[cols["id"]]),
			Type: strings.TrimSpace(row[cols["type"]]),
		}
		count, err := strconv.Atoi(strings.TrimSpace(row[cols["house_count"]]))
		if err != nil {
			return nil, fmt.Errorf("buildings csv row %d: house_count: %w", n+2, err)
		}
		rec.HouseCount = count
		if xi, ok := cols["x"]; ok {
			if pt, err := parsePoint(row[xi], row[cols["y"]]); err != nil {
				return nil, fmt.Errorf("buildings csv row %d: %w", n+2, err)
			} else if pt != nil {
				rec.Point = pt
			}
		}
		out = append(out, rec)
	}
	return out, nil
}

func parsePoint(xs, ys string) (*geo.Point, error) {
	xs, ys = strings.TrimSpace(xs), strings.TrimSpace(ys)
	if xs == "" && ys == "" {
		return nil, nil
	}
	x, err := strconv.ParseFloat(xs, 64)
	if err != nil {
		return nil, fmt.Errorf("x: %w", err)
	}
	y, err := strconv.ParseFloat(ys, 64)
	if err != nil {
		return nil, fmt.Errorf("y: %w", err)
	}
	pt := geo.Pt(x, y)
	return &pt, nil
}

// MapBuildings turns source records into a registry, applying source
// defaults (unlabeled buildings are residential with one house) and
// validating each entry.
func MapBuildings(records []BuildingRecord) (*model.BuildingRegistry, error) {
	reg := model.NewBuildingRegistry()
	for _, rec := range records {
		b := &model.Building{
			ID:         rec.ID,
			Type:       rec.Type,
			HouseCount: rec.HouseCount,
			Geometry:   rec.Point,
		}
		if b.Type == "" {
			b.Type = "habitation"
		}
		if b.HouseCount == 0 {
			b.HouseCount = 1
		}
		if err := b.Validate(); err != nil {
			return nil, err
		}
		reg.Put(b.ID, b)
	}
	return reg, nil
}

// MapLines turns source records into a registry, assigning per-meter
// figures from the cost table and deriving lengths from geometry.
func MapLines(records []LineRecord, table map[string]model.LineSpec) (*model.InfraRegistry, error) {
	reg := model.NewInfraRegistry()
	for _, rec := range records {
		if rec.ID == "" {
			return nil, fmt.Errorf("infrastructure record without id")
		}
		var geom *geo.Polyline
		if len(rec.Points) > 0 {
			geom = &geo.Polyline{Points: rec.Points}
		}
		reg.Put(rec.ID, model.NewInfrastructureLine(rec.ID, rec.Type, geom, table))
	}
	return reg, nil
}

// LoadBuildings reads a building file, choosing the codec from the
// extension (.csv, .json).
func LoadBuildings(path string) ([]BuildingRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return ReadBuildingsCSV(f)
	case ".json":
		return ReadBuildingsJSON(f)
	default:
		return nil, fmt.Errorf("unsupported buildings format: %s", path)
	}
}

// LoadLines reads an infrastructure file (.json).
func LoadLines(path string) ([]LineRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	if strings.ToLower(filepath.Ext(path)) != ".json" {
		return nil, fmt.Errorf("unsupported infrastructure format: %s", path)
	}
	return ReadLinesJSON(f)
}
