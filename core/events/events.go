// Package events defines the notifications a planning pass publishes on
// the internal event bus. Subscribers (metrics collectors, progress
// reporting) receive them without coupling to the planner.
package events

import "github.com/gridwatt/gridplan/core/model"

// PlanStarted is published when a pass begins.
type PlanStarted struct {
	PlanID    string
	Buildings int
	Lines     int
}

// ConnectionAccepted is published for every building accepted by the
// greedy allocator, in acceptance order.
type ConnectionAccepted struct {
	PlanID string
	Record model.ConnectionRecord
}

// PlanCompleted is published when an allocation pass finishes.
type PlanCompleted struct {
	PlanID             string
	BuildingsConnected int
	HousesConnected    int
	TotalCost          float64
	TotalTime          float64
}

// PhasesAssigned is published when a partitioning pass finishes.
type PhasesAssigned struct {
	PlanID     string
	Phases     []model.Phase
	Unassigned []string
}
