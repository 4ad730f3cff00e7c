// Package planner orchestrates a full planning pass: score priorities,
// resolve connection costs, then either greedily allocate under the
// configured caps or partition into construction phases.
//
// Registries handed to a pass are exclusively owned by it until the
// pass returns; allocation and partitioning mutate building and line
// state and run under a single logical writer.
package planner

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/gridwatt/gridplan/core/allocator"
	"github.com/gridwatt/gridplan/core/events"
	"github.com/gridwatt/gridplan/core/logger"
	"github.com/gridwatt/gridplan/core/metrics"
	"github.com/gridwatt/gridplan/core/model"
	"github.com/gridwatt/gridplan/core/phases"
	"github.com/gridwatt/gridplan/core/priority"
	"github.com/gridwatt/gridplan/core/resolver"
	"github.com/gridwatt/gridplan/core/stats"
	"github.com/gridwatt/gridplan/internal/eventbus"
)

// Planner ties the resolver, priority engine and the two plan consumers
// together.
type Planner struct {
	resolver    *resolver.Resolver
	engine      *priority.Engine
	allocator   *allocator.GreedyAllocator
	partitioner *phases.Partitioner
	sink        metrics.PlanSink
	bus         eventbus.EventBus
	log         logger.Logger
}

// PlanResult is the outcome of a greedy allocation pass.
type PlanResult struct {
	PlanID     string
	Resolution resolver.Result
	Allocation allocator.Result
	Summary    stats.Summary
}

// PhasePlanResult is the outcome of a partitioning pass.
type PhasePlanResult struct {
	PlanID     string
	Resolution resolver.Result
	Assignment phases.Assignment
	PerPhase   map[int]stats.Group
}

// New creates a planner. Resolver, engine, allocator and partitioner
// are required; sink, bus and logger may be nil.
func New(res *resolver.Resolver, engine *priority.Engine, alloc *allocator.GreedyAllocator, parts *phases.Partitioner, sink metrics.PlanSink, bus eventbus.EventBus, log logger.Logger) (*Planner, error) {
	if res == nil || engine == nil || alloc == nil || parts == nil {
		return nil, fmt.Errorf("planner: nil component provided to New")
	}
	if sink == nil {
		sink = metrics.NopSink{}
	}
	if log == nil {
		log = logger.Nop{}
	}
	return &Planner{
		resolver:    res,
		engine:      engine,
		allocator:   alloc,
		partitioner: parts,
		sink:        sink,
		bus:         bus,
		log:         log,
	}, nil
}

// Plan runs score -> resolve -> allocate and returns the ordered
// connection records along with resolution and summary statistics.
func (p *Planner) Plan(ctx context.Context, buildings *model.BuildingRegistry, infra *model.InfraRegistry) (*PlanResult, error) {
	planID, res, err := p.prepare(ctx, buildings, infra)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	alloc := p.allocator.Allocate(buildings, infra)
	p.publishRecords(planID, alloc.Records)

	summary := stats.Summarize(alloc.Records)
	p.recordPlan(planID, alloc, summary)
	p.publish(events.PlanCompleted{
		PlanID:             planID,
		BuildingsConnected: alloc.BuildingsConnected,
		HousesConnected:    alloc.HousesConnected,
		TotalCost:          alloc.TotalCost,
		TotalTime:          alloc.TotalTime,
	})

	return &PlanResult{PlanID: planID, Resolution: res, Allocation: alloc, Summary: summary}, nil
}

// PlanPhases runs score -> resolve -> partition and returns the phase
// assignment with per-phase statistics.
func (p *Planner) PlanPhases(ctx context.Context, buildings *model.BuildingRegistry, infra *model.InfraRegistry) (*PhasePlanResult, error) {
	planID, res, err := p.prepare(ctx, buildings, infra)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	assignment := p.partitioner.Partition(buildings, infra)
	p.publish(events.PhasesAssigned{
		PlanID:     planID,
		Phases:     assignment.Phases,
		Unassigned: assignment.Unassigned,
	})
	if pr, ok := p.sink.(metrics.PhaseRecorder); ok {
		if err := pr.RecordPhases(planID, assignment.Phases); err != nil {
			p.log.Errorf("metrics error: %v", err)
		}
	}

	return &PhasePlanResult{
		PlanID:     planID,
		Resolution: res,
		Assignment: assignment,
		PerPhase:   stats.ByPhase(assignment.Phases, buildings),
	}, nil
}

// prepare scores priorities and resolves connection costs, shared by
// both pass kinds.
func (p *Planner) prepare(ctx context.Context, buildings *model.BuildingRegistry, infra *model.InfraRegistry) (string, resolver.Result, error) {
	planID := uuid.NewString()
	p.log.Infof("plan %s: %d buildings, %d lines", planID, buildings.Len(), infra.Len())
	p.publish(events.PlanStarted{PlanID: planID, Buildings: buildings.Len(), Lines: infra.Len()})

	p.engine.ScoreAll(buildings)
	res, err := p.resolver.Resolve(ctx, buildings, infra)
	if err != nil {
		return planID, res, err
	}
	for _, f := range res.Failures {
		p.log.Warnf("plan %s: %v", planID, f.Err)
	}
	return planID, res, nil
}

func (p *Planner) publishRecords(planID string, records []model.ConnectionRecord) {
	for _, rec := range records {
		p.publish(events.ConnectionAccepted{PlanID: planID, Record: rec})
	}
}

func (p *Planner) recordPlan(planID string, alloc allocator.Result, summary stats.Summary) {
	if err := p.sink.RecordConnections(planID, alloc.Records); err != nil {
		p.log.Errorf("metrics error: %v", err)
	}
	if err := p.sink.RecordPlanSummary(metrics.PlanSummary{
		PlanID:             planID,
		BuildingsConnected: summary.BuildingsConnected,
		HousesConnected:    summary.HousesConnected,
		TotalCost:          summary.TotalCost,
		TotalTime:          summary.TotalTime,
		Time:               time.Now(),
	}); err != nil {
		p.log.Errorf("metrics error: %v", err)
	}
}

func (p *Planner) publish(e eventbus.Event) {
	if p.bus != nil {
		p.bus.Publish(e)
	}
}
