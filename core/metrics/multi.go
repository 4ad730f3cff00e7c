package metrics

import (
	"errors"

	"github.com/gridwatt/gridplan/core/model"
)

// MultiSink fans every record out to several sinks. Errors are joined so
// one failing sink does not hide another's.
type MultiSink struct {
	sinks []PlanSink
}

// NewMultiSink combines the given sinks.
func NewMultiSink(sinks ...PlanSink) *MultiSink {
	return &MultiSink{sinks: sinks}
}

func (m *MultiSink) RecordConnections(planID string, records []model.ConnectionRecord) error {
	var errs []error
	for _, s := range m.sinks {
		if err := s.RecordConnections(planID, records); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (m *MultiSink) RecordPlanSummary(summary PlanSummary) error {
	var errs []error
	for _, s := range m.sinks {
		if err := s.RecordPlanSummary(summary); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// RecordPhases forwards phase assignments to the sinks that support
// them.
func (m *MultiSink) RecordPhases(planID string, phases []model.Phase) error {
	var errs []error
	for _, s := range m.sinks {
		if pr, ok := s.(PhaseRecorder); ok {
			if err := pr.RecordPhases(planID, phases); err != nil {
				errs = append(errs, err)
			}
		}
	}
	return errors.Join(errs...)
}
