package metrics

import (
	"time"

	"github.com/gridwatt/gridplan/core/model"
)

// PlanSummary captures plan-wide totals for a finished pass.
type PlanSummary struct {
	PlanID             string
	BuildingsConnected int
	HousesConnected    int
	TotalCost          float64
	TotalTime          float64
	Time               time.Time
}

// PlanSink records connection plans for observability purposes.
type PlanSink interface {
	RecordConnections(planID string, records []model.ConnectionRecord) error
	RecordPlanSummary(summary PlanSummary) error
}

// PhaseRecorder is optionally implemented by sinks that also persist
// phase assignments.
type PhaseRecorder interface {
	RecordPhases(planID string, phases []model.Phase) error
}

// NopSink discards everything.
type NopSink struct{}

func (NopSink) RecordConnections(string, []model.ConnectionRecord) error { return nil }
func (NopSink) RecordPlanSummary(PlanSummary) error                      { return nil }
func (NopSink) RecordPhases(string, []model.Phase) error                 { return nil }
