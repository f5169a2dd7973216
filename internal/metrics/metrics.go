// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package metrics defines the Prometheus collectors of the parsing pipeline.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics groups the pipeline collectors. A nil *Metrics is valid and
// records nothing.
type Metrics struct {
	ContactsParsed     *prometheus.CounterVec
	ParseDuration      prometheus.Histogram
	ClassifierRequests *prometheus.CounterVec
	ClassifierLatency  *prometheus.HistogramVec
	TitleMutations     *prometheus.CounterVec
	EndpointLatency    *prometheus.HistogramVec
}

// New registers the collectors with reg. Pass prometheus.DefaultRegisterer
// in production and a fresh registry in tests.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		ContactsParsed: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "contact_splitter_contacts_parsed_total",
			Help: "Parsed contacts by review outcome",
		}, []string{"needs_review"}),
		ParseDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "contact_splitter_parse_duration_seconds",
			Help:    "Duration of a complete parse including enrichment",
			Buckets: prometheus.DefBuckets,
		}),
		ClassifierRequests: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "contact_splitter_classifier_requests_total",
			Help: "Classifier calls by operation and outcome",
		}, []string{"operation", "outcome"}),
		ClassifierLatency: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "contact_splitter_classifier_latency_seconds",
			Help:    "Latency of classifier calls including retries",
			Buckets: prometheus.DefBuckets,
		}, []string{"operation"}),
		TitleMutations: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "contact_splitter_title_mutations_total",
			Help: "Title dictionary mutations by kind",
		}, []string{"kind"}),
		EndpointLatency: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "contact_splitter_endpoint_latency_seconds",
			Help:    "Latency of HTTP endpoints in seconds",
			Buckets: prometheus.DefBuckets,
		}, []string{"endpoint"}),
	}
}

func (m *Metrics) ObserveParse(needsReview bool, seconds float64) {
	if m == nil {
		return
	}
	label := "false"
	if needsReview {
		label = "true"
	}
	m.ContactsParsed.WithLabelValues(label).Inc()
	m.ParseDuration.Observe(seconds)
}

func (m *Metrics) ObserveClassifier(operation, outcome string, seconds float64) {
	if m == nil {
		return
	}
	m.ClassifierRequests.WithLabelValues(operation, outcome).Inc()
	m.ClassifierLatency.WithLabelValues(operation).Observe(seconds)
}

func (m *Metrics) IncTitleMutation(kind string) {
	if m == nil {
		return
	}
	m.TitleMutations.WithLabelValues(kind).Inc()
}

func (m *Metrics) ObserveEndpointLatency(endpoint string, seconds float64) {
	if m == nil {
		return
	}
	m.EndpointLatency.WithLabelValues(endpoint).Observe(seconds)
}
