// Vitrine - Streaming Storefront Catalog Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/vitrine

package metrics

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestRecordAPIRequest(t *testing.T) {
	before := testutil.ToFloat64(APIRequestsTotal.WithLabelValues("GET", "/api/v1/catalog", "200"))

	RecordAPIRequest("GET", "/api/v1/catalog", "200", 12*time.Millisecond)

	after := testutil.ToFloat64(APIRequestsTotal.WithLabelValues("GET", "/api/v1/catalog", "200"))
	if after != before+1 {
		t.Errorf("counter = %v, want %v", after, before+1)
	}
}

func TestTrackActiveRequest(t *testing.T) {
	base := testutil.ToFloat64(APIActiveRequests)

	TrackActiveRequest(true)
	if got := testutil.ToFloat64(APIActiveRequests); got != base+1 {
		t.Errorf("gauge after inc = %v, want %v", got, base+1)
	}

	TrackActiveRequest(false)
	if got := testutil.ToFloat64(APIActiveRequests); got != base {
		t.Errorf("gauge after dec = %v, want %v", got, base)
	}
}

func TestUpdateCatalogGauges(t *testing.T) {
	UpdateCatalogGauges(7, 4)

	if got := testutil.ToFloat64(CatalogContentItems); got != 7 {
		t.Errorf("content gauge = %v, want 7", got)
	}
	if got := testutil.ToFloat64(CatalogProfiles); got != 4 {
		t.Errorf("profiles gauge = %v, want 4", got)
	}
}

func TestRecordSave(t *testing.T) {
	okBefore := testutil.ToFloat64(PersistenceSaves.WithLabelValues("content", "success"))
	failBefore := testutil.ToFloat64(PersistenceSaves.WithLabelValues("profiles", "failure"))

	RecordSave("content", nil)
	RecordSave("profiles", errors.New("disk full"))

	if got := testutil.ToFloat64(PersistenceSaves.WithLabelValues("content", "success")); got != okBefore+1 {
		t.Errorf("success counter = %v, want %v", got, okBefore+1)
	}
	if got := testutil.ToFloat64(PersistenceSaves.WithLabelValues("profiles", "failure")); got != failBefore+1 {
		t.Errorf("failure counter = %v, want %v", got, failBefore+1)
	}
}

func TestRecordRecommendation(t *testing.T) {
	before := testutil.ToFloat64(RecommendationRequests.WithLabelValues("failure"))

	RecordRecommendation("failure", 40*time.Millisecond)

	if got := testutil.ToFloat64(RecommendationRequests.WithLabelValues("failure")); got != before+1 {
		t.Errorf("counter = %v, want %v", got, before+1)
	}
}
