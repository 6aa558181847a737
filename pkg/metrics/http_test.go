package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestObserveRequestCountsByLabels(t *testing.T) {
	t.Parallel()

	reg := prometheus.NewRegistry()
	m := NewHTTPMetrics(reg)

	m.ObserveRequest("GET", "/api/v1/cart", 200, 20*time.Millisecond)
	m.ObserveRequest("GET", "/api/v1/cart", 200, 10*time.Millisecond)
	m.ObserveRequest("POST", "/api/v1/cart/items", 409, 5*time.Millisecond)

	got := testutil.ToFloat64(m.requests.WithLabelValues("GET", "/api/v1/cart", "200"))
	if got != 2 {
		t.Fatalf("expected 2 GET cart requests, got %v", got)
	}
	got = testutil.ToFloat64(m.requests.WithLabelValues("POST", "/api/v1/cart/items", "409"))
	if got != 1 {
		t.Fatalf("expected 1 conflict request, got %v", got)
	}
}

func TestObserveRequestNormalizesEmptyRoute(t *testing.T) {
	t.Parallel()

	reg := prometheus.NewRegistry()
	m := NewHTTPMetrics(reg)

	m.ObserveRequest("GET", "", 404, time.Millisecond)
	got := testutil.ToFloat64(m.requests.WithLabelValues("GET", "unmatched", "404"))
	if got != 1 {
		t.Fatalf("expected unmatched route label, got %v", got)
	}
}

func TestInFlightGauge(t *testing.T) {
	t.Parallel()

	reg := prometheus.NewRegistry()
	m := NewHTTPMetrics(reg)

	m.IncInFlight()
	m.IncInFlight()
	m.DecInFlight()

	if got := testutil.ToFloat64(m.inflight); got != 1 {
		t.Fatalf("expected 1 in-flight request, got %v", got)
	}
}

func TestNilRegistererIsSafe(t *testing.T) {
	t.Parallel()

	m := NewHTTPMetrics(nil)
	m.ObserveRequest("GET", "/", 200, time.Millisecond)
	m.IncInFlight()
	m.DecInFlight()

	var zero *HTTPMetrics
	zero.ObserveRequest("GET", "/", 200, time.Millisecond)
}
