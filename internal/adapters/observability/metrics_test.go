package observability_test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"

	"hotel_allocation/internal/adapters/observability"
)

func scrape(t *testing.T, h http.Handler) string {
	t.Helper()
	req := httptest.NewRequest("GET", "/metrics", nil)
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	if rr.Code != http.StatusOK {
		t.Fatalf("metrics status: %d", rr.Code)
	}
	body, _ := io.ReadAll(rr.Body)
	return string(body)
}

func TestMetricsRegistryAndHandler(t *testing.T) {
	reg := observability.InitRegistry()

	// record one sample so counters are non-zero
	observability.ObserveHTTP("/test", "GET", 200, 12*time.Millisecond)
	observability.ObserveSolve("feasible", 40*time.Millisecond, 1000)
	observability.ObserveHardScore(0)

	out := scrape(t, observability.MetricsHandler(reg))
	for _, name := range []string{
		"hotelalloc_http_requests_total",
		"hotelalloc_solves_total",
		"hotelalloc_solve_duration_seconds",
		"hotelalloc_solve_iterations",
		"hotelalloc_solve_hard_score",
	} {
		if !strings.Contains(out, name) {
			t.Fatalf("expected %s in output", name)
		}
	}
}

func TestObserveSolve_ErrorsSkipHistograms(t *testing.T) {
	before := testCount(t, "error")
	observability.ObserveSolve("error", time.Second, 0)
	if got := testCount(t, "error"); got != before+1 {
		t.Fatalf("expected error counter to grow by one, got %v -> %v", before, got)
	}
}

func testCount(t *testing.T, outcome string) float64 {
	t.Helper()
	return testutil.ToFloat64(observability.Solves.WithLabelValues(outcome))
}
