// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package metrics instruments the flat-file storage layer with Prometheus collectors.

Collectors live in a private [prometheus.Registry] owned by each [Metrics]
instance, so tests and multiple stores never collide on the default registry.

Every method is nil-safe: a store built without metrics simply records nothing.
*/
package metrics

import (
	"sort"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Skip reasons reported by the record decoder.
const (
	ReasonTooFewFields = "too_few_fields"
	ReasonMalformed    = "malformed"
)

// Metrics holds the storage collectors and the registry they are bound to.
type Metrics struct {
	registry *prometheus.Registry

	// Records dropped while decoding a file
	LinesSkipped *prometheus.CounterVec

	// Records read or written per operation
	Records *prometheus.CounterVec

	// Wall-clock duration of each store operation
	OperationDuration *prometheus.HistogramVec
}

// New creates a [Metrics] instance with all collectors registered.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),

		LinesSkipped: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "bookrec_flatfile_lines_skipped_total",
			Help: "Total number of persisted lines discarded while decoding",
		}, []string{"entity", "reason"}),

		Records: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "bookrec_flatfile_records_total",
			Help: "Total number of records read or written",
		}, []string{"entity", "operation"}),

		OperationDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "bookrec_flatfile_operation_duration_seconds",
			Help:    "Flat-file store operation duration in seconds",
			Buckets: prometheus.DefBuckets,
		}, []string{"entity", "operation"}),
	}

	m.registry.MustRegister(m.LinesSkipped, m.Records, m.OperationDuration)
	return m
}

// Registry exposes the underlying registry for custom gatherers.
func (m *Metrics) Registry() *prometheus.Registry {
	if m == nil {
		return nil
	}
	return m.registry
}

// LineSkipped counts one discarded line.
func (m *Metrics) LineSkipped(entity, reason string) {
	if m == nil {
		return
	}
	m.LinesSkipped.WithLabelValues(entity, reason).Inc()
}

// RecordsProcessed adds n to the records counter of an operation.
func (m *Metrics) RecordsProcessed(entity, operation string, n int) {
	if m == nil || n <= 0 {
		return
	}
	m.Records.WithLabelValues(entity, operation).Add(float64(n))
}

// ObserveOperation records the time elapsed since start.
//
// Typical use:
//
//	defer m.ObserveOperation("Book", "load", time.Now())
func (m *Metrics) ObserveOperation(entity, operation string, start time.Time) {
	if m == nil {
		return
	}
	m.OperationDuration.WithLabelValues(entity, operation).Observe(time.Since(start).Seconds())
}

// Snapshot gathers every counter into a flat map keyed by
// `name{label="value",...}`. Histograms contribute their sample count under
// the `_count` suffix.
func (m *Metrics) Snapshot() (map[string]float64, error) {
	if m == nil {
		return map[string]float64{}, nil
	}

	families, err := m.registry.Gather()
	if err != nil {
		return nil, err
	}

	out := make(map[string]float64)
	for _, family := range families {
		for _, metric := range family.GetMetric() {
			pairs := make([]string, 0, len(metric.GetLabel()))
			for _, label := range metric.GetLabel() {
				pairs = append(pairs, label.GetName()+`="`+label.GetValue()+`"`)
			}
			labels := "{" + strings.Join(pairs, ",") + "}"

			switch {
			case metric.GetCounter() != nil:
				out[family.GetName()+labels] = metric.GetCounter().GetValue()
			case metric.GetHistogram() != nil:
				out[family.GetName()+"_count"+labels] = float64(metric.GetHistogram().GetSampleCount())
			}
		}
	}
	return out, nil
}

// SortedKeys returns the snapshot keys in lexical order for stable display.
func SortedKeys(snapshot map[string]float64) []string {
	keys := make([]string, 0, len(snapshot))
	for k := range snapshot {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
