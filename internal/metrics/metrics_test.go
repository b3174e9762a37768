package metrics

import (
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestObserveDraw(t *testing.T) {
	m := New()

	m.ObserveDraw(OutcomeOK, 3)
	m.ObserveDraw(OutcomeOK, 1)
	m.ObserveDraw(OutcomeInfeasible, 100)

	if got := testutil.ToFloat64(m.Draws.WithLabelValues(OutcomeOK)); got != 2 {
		t.Errorf("ok draws = %v, want 2", got)
	}
	if got := testutil.ToFloat64(m.Draws.WithLabelValues(OutcomeInfeasible)); got != 1 {
		t.Errorf("infeasible draws = %v, want 1", got)
	}
	if got := testutil.CollectAndCount(m.DrawAttempts); got != 1 {
		t.Errorf("attempt histogram series = %d, want 1", got)
	}
}

func TestNilMetricsIsNoop(t *testing.T) {
	var m *Metrics
	m.ObserveDraw(OutcomeOK, 1)
	m.ObserveDecodeFailure()
}

func TestHandler(t *testing.T) {
	m := New()
	m.ObserveDecodeFailure()

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))

	body, _ := io.ReadAll(rec.Body)
	if !strings.Contains(string(body), "santa_share_decode_failures_total 1") {
		t.Errorf("metrics output missing decode failure counter:\n%s", body)
	}
}
