// Marquee - Movie Recommendations and Trending Discovery
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestRecordAPIRequest(t *testing.T) {
	before := testutil.ToFloat64(APIRequestsTotal.WithLabelValues("GET", "/api/v1/titles", "200"))

	RecordAPIRequest("GET", "/api/v1/titles", 200, 15*time.Millisecond)

	after := testutil.ToFloat64(APIRequestsTotal.WithLabelValues("GET", "/api/v1/titles", "200"))
	if after-before != 1 {
		t.Errorf("expected counter to increase by 1, got %v", after-before)
	}
}

func TestTrackActiveRequest(t *testing.T) {
	before := testutil.ToFloat64(APIActiveRequests)

	TrackActiveRequest(true)
	if got := testutil.ToFloat64(APIActiveRequests); got != before+1 {
		t.Errorf("after inc: got %v, want %v", got, before+1)
	}

	TrackActiveRequest(false)
	if got := testutil.ToFloat64(APIActiveRequests); got != before {
		t.Errorf("after dec: got %v, want %v", got, before)
	}
}

func TestRecordCatalogLoad(t *testing.T) {
	RecordCatalogLoad("json", 4803, 120*time.Millisecond)

	if got := testutil.ToFloat64(CatalogItems); got != 4803 {
		t.Errorf("CatalogItems = %v, want 4803", got)
	}
}

func TestRecordRecommendation(t *testing.T) {
	okBefore := testutil.ToFloat64(RecommendationsTotal.WithLabelValues("success"))
	missBefore := testutil.ToFloat64(RecommendationsTotal.WithLabelValues("not_found"))

	RecordRecommendation(true, time.Millisecond)
	RecordRecommendation(false, time.Millisecond)
	RecordRecommendation(true, time.Millisecond)

	if got := testutil.ToFloat64(RecommendationsTotal.WithLabelValues("success")) - okBefore; got != 2 {
		t.Errorf("success delta = %v, want 2", got)
	}
	if got := testutil.ToFloat64(RecommendationsTotal.WithLabelValues("not_found")) - missBefore; got != 1 {
		t.Errorf("not_found delta = %v, want 1", got)
	}
}

func TestRecordTMDBMetrics(t *testing.T) {
	attemptsBefore := testutil.ToFloat64(TMDBRequestsTotal.WithLabelValues("movie", "transient"))
	retriesBefore := testutil.ToFloat64(TMDBRetries.WithLabelValues("movie"))
	fallbacksBefore := testutil.ToFloat64(TMDBFallbacks.WithLabelValues("poster"))

	RecordTMDBAttempt("movie", "transient", 30*time.Millisecond)
	RecordTMDBRetry("movie")
	RecordTMDBFallback("poster")

	if got := testutil.ToFloat64(TMDBRequestsTotal.WithLabelValues("movie", "transient")) - attemptsBefore; got != 1 {
		t.Errorf("attempts delta = %v, want 1", got)
	}
	if got := testutil.ToFloat64(TMDBRetries.WithLabelValues("movie")) - retriesBefore; got != 1 {
		t.Errorf("retries delta = %v, want 1", got)
	}
	if got := testutil.ToFloat64(TMDBFallbacks.WithLabelValues("poster")) - fallbacksBefore; got != 1 {
		t.Errorf("fallbacks delta = %v, want 1", got)
	}
}

func TestSetAppInfo(t *testing.T) {
	SetAppInfo("1.0.0", "go1.25")
	if got := testutil.ToFloat64(AppInfo.WithLabelValues("1.0.0", "go1.25")); got != 1 {
		t.Errorf("AppInfo = %v, want 1", got)
	}

	UpdateUptime(time.Now().Add(-time.Minute))
	if got := testutil.ToFloat64(AppUptime); got < 59 {
		t.Errorf("AppUptime = %v, want >= 59", got)
	}
}
