// Vitrine - Streaming Storefront Catalog Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/vitrine

// Package metrics exposes Prometheus instrumentation for the HTTP API,
// the catalog store, persistence writes, the recommendation client, and
// WebSocket broadcasting.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// API Metrics
	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "vitrine_api_request_duration_seconds",
			Help:    "Duration of API requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "endpoint", "status_code"},
	)

	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "vitrine_api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "endpoint", "status_code"},
	)

	APIActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "vitrine_api_active_requests",
			Help: "Current number of in-flight API requests",
		},
	)

	// Catalog Metrics
	CatalogContentItems = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "vitrine_catalog_content_items",
			Help: "Current number of content items in the catalog",
		},
	)

	CatalogProfiles = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "vitrine_catalog_profiles",
			Help: "Current number of user profiles",
		},
	)

	// Persistence Metrics
	PersistenceSaves = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "vitrine_persistence_saves_total",
			Help: "Total number of collection save operations",
		},
		[]string{"collection", "result"}, // collection: "content" | "profiles"
	)

	// Recommendation Metrics
	RecommendationRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "vitrine_recommendation_requests_total",
			Help: "Total number of recommendation requests",
		},
		[]string{"result"}, // "success" | "failure" | "stale"
	)

	RecommendationDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "vitrine_recommendation_duration_seconds",
			Help:    "Duration of recommendation round trips in seconds",
			Buckets: prometheus.DefBuckets,
		},
	)

	// WebSocket Metrics
	WebSocketConnections = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "vitrine_websocket_connections",
			Help: "Current number of connected WebSocket clients",
		},
	)

	WebSocketMessagesSent = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "vitrine_websocket_messages_sent_total",
			Help: "Total number of WebSocket messages broadcast to clients",
		},
	)
)

// RecordAPIRequest records one completed API request.
func RecordAPIRequest(method, endpoint, statusCode string, duration time.Duration) {
	APIRequestDuration.WithLabelValues(method, endpoint, statusCode).Observe(duration.Seconds())
	APIRequestsTotal.WithLabelValues(method, endpoint, statusCode).Inc()
}

// TrackActiveRequest adjusts the in-flight request gauge.
func TrackActiveRequest(inc bool) {
	if inc {
		APIActiveRequests.Inc()
	} else {
		APIActiveRequests.Dec()
	}
}

// UpdateCatalogGauges refreshes the catalog size gauges after a mutation.
func UpdateCatalogGauges(contentItems, profiles int) {
	CatalogContentItems.Set(float64(contentItems))
	CatalogProfiles.Set(float64(profiles))
}

// RecordSave records a persistence write for one collection.
func RecordSave(collection string, err error) {
	result := "success"
	if err != nil {
		result = "failure"
	}
	PersistenceSaves.WithLabelValues(collection, result).Inc()
}

// RecordRecommendation records one recommendation round trip.
func RecordRecommendation(result string, duration time.Duration) {
	RecommendationRequests.WithLabelValues(result).Inc()
	RecommendationDuration.Observe(duration.Seconds())
}
