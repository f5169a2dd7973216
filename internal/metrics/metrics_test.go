// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func counterValue(t *testing.T, c prometheus.Counter) float64 {
	t.Helper()
	var metric dto.Metric
	require.NoError(t, c.Write(&metric))
	return metric.GetCounter().GetValue()
}

func TestMetrics_Counters(t *testing.T) {
	m := New(prometheus.NewRegistry())

	m.ObserveParse(true, 0.01)
	m.ObserveParse(false, 0.02)
	m.ObserveParse(true, 0.01)
	m.ObserveClassifier("gender", "ok", 0.2)
	m.IncTitleMutation("add")

	assert.Equal(t, 2.0, counterValue(t, m.ContactsParsed.WithLabelValues("true")))
	assert.Equal(t, 1.0, counterValue(t, m.ContactsParsed.WithLabelValues("false")))
	assert.Equal(t, 1.0, counterValue(t, m.ClassifierRequests.WithLabelValues("gender", "ok")))
	assert.Equal(t, 1.0, counterValue(t, m.TitleMutations.WithLabelValues("add")))
}

func TestMetrics_NilIsNoop(t *testing.T) {
	var m *Metrics

	assert.NotPanics(t, func() {
		m.ObserveParse(true, 1)
		m.ObserveClassifier("gender", "error", 1)
		m.IncTitleMutation("delete")
		m.ObserveEndpointLatency("/parse", 1)
	})
}

func TestNew_SeparateRegistries(t *testing.T) {
	assert.NotPanics(t, func() {
		New(prometheus.NewRegistry())
		New(prometheus.NewRegistry())
	})
}
