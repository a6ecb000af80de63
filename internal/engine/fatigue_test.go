package engine

import (
	"math"
	"testing"
	"time"

	"github.com/andreasknopke/MyWorkout/internal/models"
)

func fb(rpe float64, d models.Difficulty, at time.Time) models.FeedbackRecord {
	return models.FeedbackRecord{AvgRPE: rpe, Difficulty: d, CreatedAt: at}
}

func approx(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

// TestSummarizeEmpty verifies the no-history defaults and their 0.5 fatigue score.
func TestSummarizeEmpty(t *testing.T) {
	s := Summarize(nil)
	if s.AvgRPE != 7 || s.HardRatio != 0 || s.HardStreak != 0 || s.LastDifficulty != "" {
		t.Errorf("summary = %+v, want defaults", s)
	}
	if s.FatigueScore != 0.5 {
		t.Errorf("fatigue score = %v, want 0.5", s.FatigueScore)
	}
	if s.Deload {
		t.Error("deload = true, want false")
	}
}

// TestSummarize verifies averages, ratios, streaks and deload triggers.
func TestSummarize(t *testing.T) {
	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	ago := func(m int) time.Time { return now.Add(-time.Duration(m) * time.Minute) }

	tests := []struct {
		name       string
		records    []models.FeedbackRecord
		wantAvg    float64
		wantRatio  float64
		wantStreak int
		wantLast   models.Difficulty
		wantScore  float64
		wantDeload bool
	}{
		{
			name: "easy week",
			records: []models.FeedbackRecord{
				fb(6, models.DifficultyTooEasy, ago(0)),
				fb(7, models.DifficultyJustRight, ago(1)),
			},
			wantAvg: 6.5, wantRatio: 0, wantStreak: 0, wantLast: models.DifficultyTooEasy,
			wantScore: 0, wantDeload: false,
		},
		{
			name: "streak of three",
			records: []models.FeedbackRecord{
				fb(7, models.DifficultyTooHard, ago(0)),
				fb(8.5, models.DifficultyJustRight, ago(1)),
				fb(6, models.DifficultyTooHard, ago(2)),
				fb(6, models.DifficultyJustRight, ago(3)),
				fb(6, models.DifficultyJustRight, ago(4)),
				fb(6, models.DifficultyJustRight, ago(5)),
			},
			wantAvg: 6.583333333333333, wantRatio: 0.5, wantStreak: 3, wantLast: models.DifficultyTooHard,
			wantScore: 1.08, wantDeload: true,
		},
		{
			name: "high score",
			records: []models.FeedbackRecord{
				fb(7, models.DifficultyJustRight, ago(0)),
				fb(9, models.DifficultyJustRight, ago(1)),
				fb(9, models.DifficultyJustRight, ago(2)),
			},
			wantAvg: 8.333333333333334, wantRatio: 2.0 / 3.0, wantStreak: 0, wantLast: models.DifficultyJustRight,
			wantScore: 3.17, wantDeload: true,
		},
		{
			name: "unsorted input",
			records: []models.FeedbackRecord{
				fb(6, models.DifficultyJustRight, ago(10)),
				fb(9, models.DifficultyTooHard, ago(0)),
			},
			wantAvg: 7.5, wantRatio: 0.5, wantStreak: 1, wantLast: models.DifficultyTooHard,
			wantScore: 2, wantDeload: false,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := Summarize(tt.records)
			if !approx(s.AvgRPE, tt.wantAvg) {
				t.Errorf("avg rpe = %v, want %v", s.AvgRPE, tt.wantAvg)
			}
			if !approx(s.HardRatio, tt.wantRatio) {
				t.Errorf("hard ratio = %v, want %v", s.HardRatio, tt.wantRatio)
			}
			if s.HardStreak != tt.wantStreak {
				t.Errorf("hard streak = %d, want %d", s.HardStreak, tt.wantStreak)
			}
			if s.LastDifficulty != tt.wantLast {
				t.Errorf("last difficulty = %q, want %q", s.LastDifficulty, tt.wantLast)
			}
			if s.FatigueScore != tt.wantScore {
				t.Errorf("fatigue score = %v, want %v", s.FatigueScore, tt.wantScore)
			}
			if s.Deload != tt.wantDeload {
				t.Errorf("deload = %v, want %v", s.Deload, tt.wantDeload)
			}
		})
	}
}

// TestSummarizeDeterministic verifies repeated calls on the same window agree and
// do not reorder the caller's slice.
func TestSummarizeDeterministic(t *testing.T) {
	now := time.Now()
	records := []models.FeedbackRecord{
		fb(6, models.DifficultyJustRight, now.Add(-time.Hour)),
		fb(9, models.DifficultyTooHard, now),
	}
	a, b := Summarize(records), Summarize(records)
	if a != b {
		t.Errorf("summaries differ: %+v vs %+v", a, b)
	}
	if records[0].AvgRPE != 6 {
		t.Error("input slice was reordered")
	}
}

// TestFatigueScore verifies the formula and two-decimal rounding.
func TestFatigueScore(t *testing.T) {
	tests := []struct {
		avg, ratio, want float64
	}{
		{7, 0, 0.5},
		{5, 0, 0},
		{6.5, 1, 2},
		{8.123, 0.1, 1.82},
	}
	for _, tt := range tests {
		if got := FatigueScore(tt.avg, tt.ratio); got != tt.want {
			t.Errorf("FatigueScore(%v, %v) = %v, want %v", tt.avg, tt.ratio, got, tt.want)
		}
	}
}
