package observability

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/iku50/dict"
)

const (
	metricNodes       = "dict.nodes"
	metricCapacity    = "dict.capacity"
	metricHeight      = "dict.height"
	metricBlackHeight = "dict.black_height"

	attrDict = "dict"
)

// StatsSource is anything that reports dictionary shape, usually a
// *dict.Dict. Collection runs on the meter's goroutine, so a dictionary
// shared with writers needs a source that takes the caller's lock.
type StatsSource interface {
	Stats() dict.Stats
}

// StatsFunc adapts a function to StatsSource.
type StatsFunc func() dict.Stats

// Stats calls f.
func (f StatsFunc) Stats() dict.Stats {
	return f()
}

// DictMetrics holds the observable gauges of one dictionary.
type DictMetrics struct {
	nodes       metric.Int64ObservableGauge
	capacity    metric.Int64ObservableGauge
	height      metric.Int64ObservableGauge
	blackHeight metric.Int64ObservableGauge

	src   StatsSource
	attrs metric.MeasurementOption
}

// RegisterDictMetrics creates gauges for src tagged with dict=name. The
// returned registration stops the reporting when unregistered.
func RegisterDictMetrics(mt metric.Meter, name string, src StatsSource) (metric.Registration, error) {
	nodes, err := mt.Int64ObservableGauge(metricNodes,
		metric.WithDescription("Number of nodes attached to the dictionary"),
		metric.WithUnit("{node}"),
	)
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", metricNodes, err)
	}

	capacity, err := mt.Int64ObservableGauge(metricCapacity,
		metric.WithDescription("Configured node limit, 0 when unbounded"),
		metric.WithUnit("{node}"),
	)
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", metricCapacity, err)
	}

	height, err := mt.Int64ObservableGauge(metricHeight,
		metric.WithDescription("Longest root to leaf path"),
		metric.WithUnit("{node}"),
	)
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", metricHeight, err)
	}

	blackHeight, err := mt.Int64ObservableGauge(metricBlackHeight,
		metric.WithDescription("Black nodes on every root to leaf path"),
		metric.WithUnit("{node}"),
	)
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", metricBlackHeight, err)
	}

	dm := &DictMetrics{
		nodes:       nodes,
		capacity:    capacity,
		height:      height,
		blackHeight: blackHeight,
		src:         src,
		attrs:       metric.WithAttributes(attribute.String(attrDict, name)),
	}

	reg, err := mt.RegisterCallback(dm.observe, nodes, capacity, height, blackHeight)
	if err != nil {
		return nil, fmt.Errorf("register dict metrics callback: %w", err)
	}

	return reg, nil
}

func (dm *DictMetrics) observe(_ context.Context, obs metric.Observer) error {
	st := dm.src.Stats()

	obs.ObserveInt64(dm.nodes, int64(st.Count), dm.attrs)
	obs.ObserveInt64(dm.capacity, int64(st.Capacity), dm.attrs)
	obs.ObserveInt64(dm.height, int64(st.Height), dm.attrs)
	obs.ObserveInt64(dm.blackHeight, int64(st.BlackHeight), dm.attrs)

	return nil
}
