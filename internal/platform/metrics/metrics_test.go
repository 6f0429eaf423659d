// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package metrics_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/bookrec/internal/platform/metrics"
)

/*
TestMetrics_Snapshot verifies counters and histogram counts are gathered.
*/
func TestMetrics_Snapshot(t *testing.T) {
	m := metrics.New()

	m.LineSkipped("Review", metrics.ReasonTooFewFields)
	m.LineSkipped("Review", metrics.ReasonTooFewFields)
	m.RecordsProcessed("Book", "load", 3)
	m.RecordsProcessed("Book", "load", 0)
	m.ObserveOperation("Book", "load", time.Now())

	snap, err := m.Snapshot()
	require.NoError(t, err)

	assert.Equal(t, 2.0, snap[`bookrec_flatfile_lines_skipped_total{entity="Review",reason="too_few_fields"}`])
	assert.Equal(t, 3.0, snap[`bookrec_flatfile_records_total{entity="Book",operation="load"}`])
	assert.Equal(t, 1.0, snap[`bookrec_flatfile_operation_duration_seconds_count{entity="Book",operation="load"}`])
	assert.Len(t, metrics.SortedKeys(snap), 3)
}

/*
TestMetrics_NilSafe verifies a nil instance records nothing and never panics.
*/
func TestMetrics_NilSafe(t *testing.T) {
	var m *metrics.Metrics

	assert.NotPanics(t, func() {
		m.LineSkipped("Book", metrics.ReasonMalformed)
		m.RecordsProcessed("Book", "save", 1)
		m.ObserveOperation("Book", "save", time.Now())
	})

	snap, err := m.Snapshot()
	require.NoError(t, err)
	assert.Empty(t, snap)
	assert.Nil(t, m.Registry())
}

/*
TestMetrics_Isolation verifies two instances do not share state.
*/
func TestMetrics_Isolation(t *testing.T) {
	a, b := metrics.New(), metrics.New()
	a.RecordsProcessed("User", "append", 1)

	snap, err := b.Snapshot()
	require.NoError(t, err)
	assert.Empty(t, snap)
}
