package model

import (
	"strings"

	"github.com/gridwatt/gridplan/core/geo"
)

// LineSpec holds per-meter installation figures for a line type.
type LineSpec struct {
	CostPerMeter float64 `json:"cost_per_meter"`
	TimePerMeter float64 `json:"time_per_meter"`
}

// Canonical line type names used as keys of the cost table.
const (
	LineAerial      = "aerial"
	LineSemiAerial  = "semi-aerial"
	LineUnderground = "underground"
)

// DefaultLineSpecs is the built-in cost/time table, in currency and time
// units per meter.
var DefaultLineSpecs = map[string]LineSpec{
	LineAerial:      {CostPerMeter: 500, TimePerMeter: 2},
	LineSemiAerial:  {CostPerMeter: 750, TimePerMeter: 4},
	LineUnderground: {CostPerMeter: 900, TimePerMeter: 5},
}

// NormalizeLineType maps a raw line type label to a canonical name.
// Matching is case-insensitive and tolerates the French source labels.
// Unrecognized labels fall back to aerial.
func NormalizeLineType(label string) string {
	l := strings.ToLower(strings.TrimSpace(label))
	switch {
	case strings.Contains(l, "semi"):
		return LineSemiAerial
	case strings.Contains(l, "fourreau"), strings.Contains(l, "souterrain"),
		strings.Contains(l, "underground"):
		return LineUnderground
	default:
		return LineAerial
	}
}

// InfrastructureLine represents an existing electrical distribution line
// buildings can be connected to.
type InfrastructureLine struct {
	ID       string
	Type     string // canonical line type
	Geometry *geo.Polyline
	Length   float64

	CostPerMeter float64
	TimePerMeter float64

	// ConnectedBuildings keeps accepted building ids in acceptance order.
	ConnectedBuildings []string
	Shared             bool
}

// NewInfrastructureLine builds a line with per-meter figures taken from
// the given cost table, falling back to the default table entry for the
// normalized type. Length is derived from the geometry when present.
func NewInfrastructureLine(id, typeLabel string, geom *geo.Polyline, table map[string]LineSpec) *InfrastructureLine {
	typ := NormalizeLineType(typeLabel)
	spec, ok := table[typ]
	if !ok {
		spec = DefaultLineSpecs[typ]
	}
	l := &InfrastructureLine{
		ID:           id,
		Type:         typ,
		Geometry:     geom,
		CostPerMeter: spec.CostPerMeter,
		TimePerMeter: spec.TimePerMeter,
	}
	if geom != nil {
		l.Length = geom.Length()
	}
	return l
}

// TotalCost returns the full installation cost of the line itself.
func (l *InfrastructureLine) TotalCost() float64 {
	return l.Length * l.CostPerMeter
}

// TotalTime returns the full installation time of the line itself.
func (l *InfrastructureLine) TotalTime() float64 {
	return l.Length * l.TimePerMeter
}

// CostPerBuilding returns the line cost divided between connected
// buildings, or the full cost when none are connected yet.
func (l *InfrastructureLine) CostPerBuilding() float64 {
	if n := len(l.ConnectedBuildings); n > 0 {
		return l.TotalCost() / float64(n)
	}
	return l.TotalCost()
}

// AddBuilding registers a building against the line. Duplicate ids are
// ignored. Shared becomes true once a second distinct building joins and
// stays true afterwards.
func (l *InfrastructureLine) AddBuilding(buildingID string) {
	for _, id := range l.ConnectedBuildings {
		if id == buildingID {
			return
		}
	}
	l.ConnectedBuildings = append(l.ConnectedBuildings, buildingID)
	if len(l.ConnectedBuildings) > 1 {
		l.Shared = true
	}
}
