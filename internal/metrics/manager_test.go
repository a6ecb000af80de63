package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/andreasknopke/MyWorkout/internal/engine"
	"github.com/andreasknopke/MyWorkout/internal/models"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

var _ engine.Recorder = (*Manager)(nil)

// TestRecorder verifies each recorder call lands on its collector.
func TestRecorder(t *testing.T) {
	m, _ := NewTestManager()

	m.SessionGenerated(models.PhaseAccumulation, "", 10*time.Millisecond)
	m.SessionGenerated(models.PhaseDeload, "phase", 10*time.Millisecond)
	m.SessionGenerated(models.PhaseIntensification, "readiness", 10*time.Millisecond)
	m.GenerationFailed("no_eligible_exercises")
	m.FeedbackRecorded(4)

	tests := []struct {
		name string
		got  float64
		want float64
	}{
		{"accumulation", testutil.ToFloat64(m.CounterSessions.WithLabelValues("ACCUMULATION")), 1},
		{"deload phase", testutil.ToFloat64(m.CounterDeloads.WithLabelValues("phase")), 1},
		{"deload readiness", testutil.ToFloat64(m.CounterDeloads.WithLabelValues("readiness")), 1},
		{"errors", testutil.ToFloat64(m.CounterGenerationErrs.WithLabelValues("no_eligible_exercises")), 1},
		{"feedback", testutil.ToFloat64(m.CounterFeedback), 4},
	}
	for _, tt := range tests {
		if tt.got != tt.want {
			t.Errorf("%s = %v, want %v", tt.name, tt.got, tt.want)
		}
	}
}

// TestHandler verifies the exposition endpoint lists registered metrics.
func TestHandler(t *testing.T) {
	m, _ := NewTestManager()
	m.FeedbackRecorded(1)

	w := httptest.NewRecorder()
	m.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	if !strings.Contains(w.Body.String(), "myworkout_test_feedback_records_total 1") {
		t.Errorf("body missing feedback counter:\n%s", w.Body.String())
	}
}
