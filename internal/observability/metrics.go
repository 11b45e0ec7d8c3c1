// Package observability bundles the Prometheus metrics recorded by the
// shells: one counter for every container operation and one gauge per
// structure size.
package observability

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"

	"github.com/mesh-intelligence/trainyard/pkg/types"
)

// Result labels for trainyard_operations_total.
const (
	ResultOK           = "ok"
	ResultNotFound     = "not_found"
	ResultOverCapacity = "over_capacity"
	ResultEmpty        = "empty"
	ResultAtEnd        = "at_end"
	ResultAtStart      = "at_start"
	ResultDuplicate    = "duplicate"
	ResultInvalid      = "invalid"
	ResultError        = "error"
)

// Collector holds the registered metrics. A nil *Collector is valid and
// records nothing.
type Collector struct {
	gatherer prometheus.Gatherer

	Operations *prometheus.CounterVec

	FleetTrains     prometheus.Gauge
	FleetCargoItems prometheus.Gauge
	RouteStations   prometheus.Gauge
	PlaylistTracks  prometheus.Gauge
}

// NewCollector registers the metrics against reg, defaulting to the global
// registry when nil.
func NewCollector(reg prometheus.Registerer) (*Collector, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	gatherer := prometheus.DefaultGatherer
	if g, ok := reg.(prometheus.Gatherer); ok {
		gatherer = g
	}

	ops, err := registerCounterVec(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "trainyard_operations_total",
		Help: "Container operations, labeled by structure, operation and result.",
	}, []string{"structure", "operation", "result"}), "trainyard_operations_total")
	if err != nil {
		return nil, err
	}

	gauges := map[string]*prometheus.Gauge{}
	c := &Collector{gatherer: gatherer, Operations: ops}
	gauges["trainyard_fleet_trains"] = &c.FleetTrains
	gauges["trainyard_fleet_cargo_items"] = &c.FleetCargoItems
	gauges["trainyard_route_stations"] = &c.RouteStations
	gauges["trainyard_playlist_tracks"] = &c.PlaylistTracks
	help := map[string]string{
		"trainyard_fleet_trains":      "Current number of trains on the roster.",
		"trainyard_fleet_cargo_items": "Current number of cargo items across all manifests.",
		"trainyard_route_stations":    "Current number of stations on the route loop.",
		"trainyard_playlist_tracks":   "Current number of tracks in the playlist.",
	}
	for name, dst := range gauges {
		g, err := registerGauge(reg, prometheus.NewGauge(prometheus.GaugeOpts{Name: name, Help: help[name]}), name)
		if err != nil {
			return nil, err
		}
		*dst = g
	}
	return c, nil
}

// Observe counts one operation and classifies err into a result label.
func (c *Collector) Observe(structure, operation string, err error) {
	if c == nil || c.Operations == nil {
		return
	}
	c.Operations.WithLabelValues(structure, operation, Classify(err)).Inc()
}

// SetFleet drives the fleet gauges.
func (c *Collector) SetFleet(trains, cargoItems int) {
	if c == nil {
		return
	}
	c.FleetTrains.Set(float64(trains))
	c.FleetCargoItems.Set(float64(cargoItems))
}

// SetRoute drives the route gauge.
func (c *Collector) SetRoute(stations int) {
	if c == nil {
		return
	}
	c.RouteStations.Set(float64(stations))
}

// SetPlaylist drives the playlist gauge.
func (c *Collector) SetPlaylist(tracks int) {
	if c == nil {
		return
	}
	c.PlaylistTracks.Set(float64(tracks))
}

// Snapshot gathers every trainyard_ series as sorted "name{labels} value"
// lines.
func (c *Collector) Snapshot() ([]string, error) {
	if c == nil {
		return nil, nil
	}
	families, err := c.gatherer.Gather()
	if err != nil {
		return nil, fmt.Errorf("gather metrics: %w", err)
	}
	var lines []string
	for _, mf := range families {
		if !strings.HasPrefix(mf.GetName(), "trainyard_") {
			continue
		}
		for _, m := range mf.GetMetric() {
			lines = append(lines, formatSample(mf.GetName(), m))
		}
	}
	sort.Strings(lines)
	return lines, nil
}

// Classify maps a container error to its result label.
func Classify(err error) string {
	var ce *types.CapacityError
	switch {
	case err == nil:
		return ResultOK
	case errors.As(err, &ce), errors.Is(err, types.ErrOverCapacity):
		return ResultOverCapacity
	case errors.Is(err, types.ErrNotFound):
		return ResultNotFound
	case errors.Is(err, types.ErrEmpty):
		return ResultEmpty
	case errors.Is(err, types.ErrAtEnd):
		return ResultAtEnd
	case errors.Is(err, types.ErrAtStart):
		return ResultAtStart
	case errors.Is(err, types.ErrDuplicateID):
		return ResultDuplicate
	case types.IsInvalid(err):
		return ResultInvalid
	default:
		return ResultError
	}
}

func formatSample(name string, m *dto.Metric) string {
	var labels []string
	for _, lp := range m.GetLabel() {
		labels = append(labels, fmt.Sprintf("%s=%q", lp.GetName(), lp.GetValue()))
	}
	var value float64
	switch {
	case m.GetCounter() != nil:
		value = m.GetCounter().GetValue()
	case m.GetGauge() != nil:
		value = m.GetGauge().GetValue()
	}
	if len(labels) == 0 {
		return fmt.Sprintf("%s %g", name, value)
	}
	return fmt.Sprintf("%s{%s} %g", name, strings.Join(labels, ","), value)
}

func registerCounterVec(reg prometheus.Registerer, vec *prometheus.CounterVec, name string) (*prometheus.CounterVec, error) {
	if err := reg.Register(vec); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(*prometheus.CounterVec); ok {
				return existing, nil
			}
			return nil, fmt.Errorf("collector %s already registered with incompatible type", name)
		}
		return nil, err
	}
	return vec, nil
}

func registerGauge(reg prometheus.Registerer, gauge prometheus.Gauge, name string) (prometheus.Gauge, error) {
	if err := reg.Register(gauge); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(prometheus.Gauge); ok {
				return existing, nil
			}
			return nil, fmt.Errorf("collector %s already registered with incompatible type", name)
		}
		return nil, err
	}
	return gauge, nil
}
