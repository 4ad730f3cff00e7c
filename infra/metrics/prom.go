package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	coremetrics "github.com/gridwatt/gridplan/core/metrics"
	"github.com/gridwatt/gridplan/core/model"
)

// PromSink records plan results in Prometheus metrics.
type PromSink struct {
	connections *prometheus.CounterVec
	cost        *prometheus.HistogramVec
	totalCost   prometheus.Gauge
	totalTime   prometheus.Gauge
	houses      prometheus.Gauge
	phaseCost   *prometheus.GaugeVec
}

// NewPromSink registers plan metrics on the default Prometheus
// registerer. Exposing them over HTTP is the caller's concern, see
// StartPromServer.
func NewPromSink() (coremetrics.PlanSink, error) {
	return NewPromSinkWithRegistry(prometheus.DefaultRegisterer)
}

// NewPromSinkWithRegistry registers metrics on the provided registerer.
// A nil registerer defaults to the global Prometheus registerer.
func NewPromSinkWithRegistry(reg prometheus.Registerer) (coremetrics.PlanSink, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	connections := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "gridplan_connections_total",
		Help: "Total number of accepted building connections",
	}, []string{"building_type", "infrastructure_type"})
	cost := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "gridplan_connection_cost",
		Help:    "Connection cost of accepted buildings",
		Buckets: prometheus.ExponentialBuckets(50, 2, 12),
	}, []string{"building_type"})
	totalCost := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "gridplan_plan_total_cost",
		Help: "Cumulative cost of the last completed plan",
	})
	totalTime := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "gridplan_plan_total_time",
		Help: "Cumulative installation time of the last completed plan",
	})
	houses := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "gridplan_plan_houses_connected",
		Help: "Houses connected by the last completed plan",
	})
	phaseCost := prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "gridplan_phase_total_cost",
		Help: "Total cost assigned to each construction phase",
	}, []string{"phase"})

	s := &PromSink{
		connections: connections,
		cost:        cost,
		totalCost:   totalCost,
		totalTime:   totalTime,
		houses:      houses,
		phaseCost:   phaseCost,
	}
	collectors := []prometheus.Collector{connections, cost, totalCost, totalTime, houses, phaseCost}
	for i, c := range collectors {
		if err := reg.Register(c); err != nil {
			are, ok := err.(prometheus.AlreadyRegisteredError)
			if !ok {
				return nil, err
			}
			switch i {
			case 0:
				s.connections = are.ExistingCollector.(*prometheus.CounterVec)
			case 1:
				s.cost = are.ExistingCollector.(*prometheus.HistogramVec)
			case 2:
				s.totalCost = are.ExistingCollector.(prometheus.Gauge)
			case 3:
				s.totalTime = are.ExistingCollector.(prometheus.Gauge)
			case 4:
				s.houses = are.ExistingCollector.(prometheus.Gauge)
			case 5:
				s.phaseCost = are.ExistingCollector.(*prometheus.GaugeVec)
			}
		}
	}
	return s, nil
}

// RecordConnections increments the counter and observes the cost of
// every accepted record.
func (s *PromSink) RecordConnections(_ string, records []model.ConnectionRecord) error {
	for _, r := range records {
		s.connections.WithLabelValues(r.BuildingType, r.InfrastructureType).Inc()
		s.cost.WithLabelValues(r.BuildingType).Observe(r.Cost)
	}
	return nil
}

// RecordPlanSummary sets the plan-wide gauges.
func (s *PromSink) RecordPlanSummary(sum coremetrics.PlanSummary) error {
	s.totalCost.Set(sum.TotalCost)
	s.totalTime.Set(sum.TotalTime)
	s.houses.Set(float64(sum.HousesConnected))
	return nil
}

// RecordPhases sets per-phase cost gauges.
func (s *PromSink) RecordPhases(_ string, phases []model.Phase) error {
	for _, p := range phases {
		s.phaseCost.WithLabelValues(phaseLabel(p.Index)).Set(p.TotalCost)
	}
	return nil
}
