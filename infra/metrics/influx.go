package metrics

import (
	"context"
	"math"
	"net/http"
	"strconv"
	"strings"
	"time"

	influxdb2 "github.com/influxdata/influxdb-client-go/v2"
	"github.com/influxdata/influxdb-client-go/v2/api"
	"github.com/influxdata/influxdb-client-go/v2/api/write"

	"github.com/gridwatt/gridplan/core/logger"
	coremetrics "github.com/gridwatt/gridplan/core/metrics"
	"github.com/gridwatt/gridplan/core/model"
	infralogger "github.com/gridwatt/gridplan/infra/logger"
)

// InfluxSink writes plan events to an InfluxDB instance using the
// official client.
type InfluxSink struct {
	client   influxdb2.Client
	writeAPI api.WriteAPIBlocking
	log      logger.Logger
}

// NewInfluxSink creates a new sink configured for the given InfluxDB
// endpoint.
func NewInfluxSink(url, token, org, bucket string) *InfluxSink {
	base := strings.TrimSuffix(url, "/api/v2/write")
	client := influxdb2.NewClientWithOptions(base, token,
		influxdb2.DefaultOptions().SetHTTPClient(&http.Client{Timeout: 5 * time.Second}))
	return &InfluxSink{
		client:   client,
		writeAPI: client.WriteAPIBlocking(org, bucket),
		log:      infralogger.New("influx-sink"),
	}
}

// NewInfluxSinkWithFallback pings the InfluxDB instance and returns a
// NopSink if the health check fails.
func NewInfluxSinkWithFallback(url, token, org, bucket string) coremetrics.PlanSink {
	sink := NewInfluxSink(url, token, org, bucket)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	health, err := sink.client.Health(ctx)
	if err != nil || health.Status != "pass" {
		if err != nil {
			sink.log.Errorf("influx health check error: %v", err)
		} else {
			sink.log.Errorf("influx health status: %s", health.Status)
		}
		sink.client.Close()
		return coremetrics.NopSink{}
	}
	return sink
}

// RecordConnections writes accepted records as line protocol events.
func (s *InfluxSink) RecordConnections(planID string, records []model.ConnectionRecord) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	now := time.Now()
	for _, r := range records {
		p := write.NewPointWithMeasurement("connection_event").
			AddTag("plan_id", planID).
			AddTag("building_id", r.BuildingID).
			AddTag("building_type", r.BuildingType).
			AddTag("infrastructure_id", r.InfrastructureID).
			AddTag("infrastructure_type", r.InfrastructureType).
			AddField("cost", round3(r.Cost)).
			AddField("time", round3(r.Time)).
			AddField("priority_score", round3(r.PriorityScore)).
			AddField("rank", r.Rank).
			SetTime(now)
		if err := s.writeAPI.WritePoint(ctx, p); err != nil {
			return err
		}
	}
	return nil
}

// RecordPlanSummary writes the plan-wide totals.
func (s *InfluxSink) RecordPlanSummary(sum coremetrics.PlanSummary) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	p := write.NewPointWithMeasurement("plan_summary").
		AddTag("plan_id", sum.PlanID).
		AddField("buildings_connected", sum.BuildingsConnected).
		AddField("houses_connected", sum.HousesConnected).
		AddField("total_cost", round3(sum.TotalCost)).
		AddField("total_time", round3(sum.TotalTime)).
		SetTime(sum.Time)
	return s.writeAPI.WritePoint(ctx, p)
}

// RecordPhases writes one summary point per construction phase.
func (s *InfluxSink) RecordPhases(planID string, phases []model.Phase) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	now := time.Now()
	for _, ph := range phases {
		p := write.NewPointWithMeasurement("phase_summary").
			AddTag("plan_id", planID).
			AddTag("phase", phaseLabel(ph.Index)).
			AddField("buildings", len(ph.Members)).
			AddField("houses", ph.TotalHouses).
			AddField("total_cost", round3(ph.TotalCost)).
			SetTime(now)
		if err := s.writeAPI.WritePoint(ctx, p); err != nil {
			return err
		}
	}
	return nil
}

// Close releases the underlying client.
func (s *InfluxSink) Close() {
	s.client.Close()
}

func phaseLabel(index int) string {
	return strconv.Itoa(index)
}

func round3(v float64) float64 {
	return math.Round(v*1000) / 1000
}
