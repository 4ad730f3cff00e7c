package metrics

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/gridwatt/gridplan/core/factory"
	"github.com/gridwatt/gridplan/core/model"
)

type stubSink struct {
	connections int
	summaries   int
	phases      int
	err         error
}

func (s *stubSink) RecordConnections(string, []model.ConnectionRecord) error {
	s.connections++
	return s.err
}

func (s *stubSink) RecordPlanSummary(PlanSummary) error {
	s.summaries++
	return s.err
}

func (s *stubSink) RecordPhases(string, []model.Phase) error {
	s.phases++
	return s.err
}

// noPhases deliberately lacks RecordPhases.
type noPhases struct{ stub stubSink }

func (s *noPhases) RecordConnections(id string, r []model.ConnectionRecord) error {
	return s.stub.RecordConnections(id, r)
}
func (s *noPhases) RecordPlanSummary(sum PlanSummary) error { return s.stub.RecordPlanSummary(sum) }

func TestNewPlanSink_EmptyConfigIsNop(t *testing.T) {
	s, err := NewPlanSink(nil)
	require.NoError(t, err)
	require.IsType(t, NopSink{}, s)
}

func TestNewPlanSink_SingleAndMulti(t *testing.T) {
	require.NoError(t, RegisterPlanSink("stub", func(map[string]any) (PlanSink, error) {
		return &stubSink{}, nil
	}))

	single, err := NewPlanSink([]factory.ModuleConfig{{Type: "stub"}})
	require.NoError(t, err)
	require.IsType(t, &stubSink{}, single)

	multi, err := NewPlanSink([]factory.ModuleConfig{{Type: "stub"}, {Type: "stub"}})
	require.NoError(t, err)
	require.IsType(t, &MultiSink{}, multi)
}

func TestNewPlanSink_UnknownType(t *testing.T) {
	_, err := NewPlanSink([]factory.ModuleConfig{{Type: "does-not-exist"}})
	require.Error(t, err)
}

func TestMultiSink_FansOut(t *testing.T) {
	a, b := &stubSink{}, &stubSink{}
	m := NewMultiSink(a, b)

	require.NoError(t, m.RecordConnections("p1", nil))
	require.NoError(t, m.RecordPlanSummary(PlanSummary{PlanID: "p1"}))
	require.NoError(t, m.RecordPhases("p1", nil))

	for _, s := range []*stubSink{a, b} {
		require.Equal(t, 1, s.connections)
		require.Equal(t, 1, s.summaries)
		require.Equal(t, 1, s.phases)
	}
}

func TestMultiSink_JoinsErrors(t *testing.T) {
	boom := errors.New("boom")
	a, b := &stubSink{err: boom}, &stubSink{}
	m := NewMultiSink(a, b)

	err := m.RecordConnections("p1", nil)
	require.ErrorIs(t, err, boom)
	// The healthy sink still received the call.
	require.Equal(t, 1, b.connections)
}

func TestMultiSink_SkipsNonPhaseRecorders(t *testing.T) {
	plain := &noPhases{}
	rec := &stubSink{}
	m := NewMultiSink(plain, rec)

	require.NoError(t, m.RecordPhases("p1", []model.Phase{{Index: 0}}))
	require.Equal(t, 1, rec.phases)
	require.Zero(t, plain.stub.phases)
}
