package model

import (
	"fmt"

	"github.com/gridwatt/gridplan/core/geo"
)

// Building represents a structure that needs to be connected to the grid.
// Geometry is optional; the resolver falls back to a fixed distance when
// it is missing.
type Building struct {
	ID         string
	Type       string // raw category label from the source data
	HouseCount int
	Geometry   *geo.Point

	// PriorityScore is set by the priority engine.
	PriorityScore float64

	// ConnectionCost, ConnectionTime and ConnectedVia are set once by the
	// resolver and never re-routed afterwards.
	ConnectionCost float64
	ConnectionTime float64
	ConnectedVia   string

	// Connected flips to true only when an allocation pass accepts the
	// building.
	Connected bool
}

// Validate checks that the building record is sound.
func (b Building) Validate() error {
	if b.ID == "" {
		return fmt.Errorf("building id is required")
	}
	if b.HouseCount <= 0 {
		return fmt.Errorf("building %s: house count must be positive", b.ID)
	}
	return nil
}

// Resolved reports whether the resolver assigned a candidate line.
func (b Building) Resolved() bool {
	return b.ConnectedVia != ""
}

// Efficiency returns houses connectable per unit of connection cost.
// Zero when the cost is zero or unset.
func (b Building) Efficiency() float64 {
	if b.ConnectionCost > 0 {
		return float64(b.HouseCount) / b.ConnectionCost
	}
	return 0
}

// CompositeScore is the allocator's ranking key.
func (b Building) CompositeScore() float64 {
	return b.PriorityScore * b.Efficiency()
}
