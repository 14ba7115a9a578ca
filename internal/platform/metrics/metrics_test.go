package metrics

import (
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestRecordCountsStatuses(t *testing.T) {
	c := New()
	c.Record(http.StatusOK, 10*time.Millisecond)
	c.Record(http.StatusTooManyRequests, 5*time.Millisecond)
	c.Record(http.StatusInternalServerError, 15*time.Millisecond)

	snap := c.Snapshot()
	if snap["requestsTotal"] != uint64(3) {
		t.Fatalf("expected 3 requests, got %v", snap["requestsTotal"])
	}
	if snap["errorsTotal"] != uint64(1) {
		t.Fatalf("expected 1 error, got %v", snap["errorsTotal"])
	}
	if snap["rateLimitedTotal"] != uint64(1) {
		t.Fatalf("expected 1 rate limited, got %v", snap["rateLimitedTotal"])
	}
	if got := testutil.ToFloat64(c.requests.WithLabelValues("200")); got != 1 {
		t.Fatalf("expected one 200, got %v", got)
	}
}

func TestObserveCalculationAndJob(t *testing.T) {
	c := New()
	c.ObserveCalculation("evaluate", nil)
	c.ObserveCalculation("evaluate", errors.New("bad"))
	c.ObserveJob("gratuity_accrual", "completed", time.Second)

	if got := testutil.ToFloat64(c.calculations.WithLabelValues("evaluate", resultError)); got != 1 {
		t.Fatalf("expected one failed calculation, got %v", got)
	}
	if got := testutil.ToFloat64(c.jobRuns.WithLabelValues("gratuity_accrual", "completed")); got != 1 {
		t.Fatalf("expected one job run, got %v", got)
	}
}

func TestHandlerExposesMetrics(t *testing.T) {
	c := New()
	c.ObserveCalculation("store", nil)

	rec := httptest.NewRecorder()
	c.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	body, _ := io.ReadAll(rec.Body)
	if !strings.Contains(string(body), "hrms_gratuity_calculations_total") {
		t.Fatalf("expected calculation counter in output")
	}
}
