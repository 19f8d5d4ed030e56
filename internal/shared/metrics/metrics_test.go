package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
)

func TestRenderExposesCountersAndHistogram(t *testing.T) {
	IncAssistantStarted()
	IncAssistantCompleted()
	IncAssistantFailed()
	ObserveAssistantDurationMs(120)

	out := Render()
	for _, want := range []string{
		"# TYPE assistant_requests_started_total counter",
		"# TYPE assistant_requests_completed_total counter",
		"# TYPE assistant_requests_failed_total counter",
		"# TYPE assistant_request_duration_ms histogram",
		"assistant_request_duration_ms_bucket{le=\"+Inf\"}",
		"assistant_request_duration_ms_sum",
		"assistant_request_duration_ms_count",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("missing %q in rendered output:\n%s", want, out)
		}
	}
}

func TestHistogramBucketsAreCumulative(t *testing.T) {
	h := newHistogram([]float64{10, 100, 1000})
	h.Observe(5)
	h.Observe(50)
	h.Observe(500)
	h.Observe(5000)

	snap := h.Snapshot()
	if snap.count != 4 {
		t.Fatalf("expected count 4, got %d", snap.count)
	}
	if snap.sum != 5555 {
		t.Fatalf("expected sum 5555, got %v", snap.sum)
	}
	// Raw per-bucket counts; cumulation happens at render time.
	for i, want := range []uint64{1, 1, 1} {
		if snap.counts[i] != want {
			t.Fatalf("bucket %d: expected %d, got %d", i, want, snap.counts[i])
		}
	}
}

func TestObserveClampsNegativeDurations(t *testing.T) {
	before := assistantDuration.Snapshot()
	ObserveAssistantDurationMs(-50)
	after := assistantDuration.Snapshot()

	if after.count != before.count+1 {
		t.Fatalf("expected one more observation")
	}
	if after.sum != before.sum {
		t.Fatalf("negative duration should be clamped to zero, sum went %v -> %v", before.sum, after.sum)
	}
}

func TestHandlerServesPrometheusText(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/metrics", Handler())

	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	if ct := resp.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/plain") {
		t.Fatalf("unexpected content type %q", ct)
	}
	if !strings.Contains(resp.Body.String(), "assistant_requests_started_total") {
		t.Fatalf("unexpected body %s", resp.Body.String())
	}
}

func TestFormatFloat(t *testing.T) {
	if got := formatFloat(100); got != "100" {
		t.Fatalf("expected 100, got %q", got)
	}
	if got := formatFloat(2.5); got != "2.5" {
		t.Fatalf("expected 2.5, got %q", got)
	}
}
