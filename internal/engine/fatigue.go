package engine

import (
	"math"
	"slices"

	"github.com/andreasknopke/MyWorkout/internal/models"
)

// DefaultFeedbackWindow is the number of recent feedback records the fatigue
// estimator looks at.
const DefaultFeedbackWindow = 18

const (
	defaultAvgRPE    = 7.0
	fatigueRPEBase   = 6.5
	deloadFatigue    = 2.4
	deloadHardStreak = 3
	hardRatioWeight  = 2.0
)

// FatigueSummary is the readiness signal derived from recent feedback.
type FatigueSummary struct {
	Window         int               `json:"window"`
	AvgRPE         float64           `json:"avg_rpe"`
	HardRatio      float64           `json:"hard_ratio"`
	HardStreak     int               `json:"hard_streak"`
	LastDifficulty models.Difficulty `json:"last_difficulty,omitempty"`
	FatigueScore   float64           `json:"fatigue_score"`
	Deload         bool              `json:"deload"`
}

// Summarize computes the fatigue summary of a feedback window. Records are
// ordered most-recent-first before the streak is counted; records sharing a
// timestamp keep their input order.
func Summarize(records []models.FeedbackRecord) FatigueSummary {
	if len(records) == 0 {
		return withScore(FatigueSummary{AvgRPE: defaultAvgRPE})
	}

	recent := slices.Clone(records)
	slices.SortStableFunc(recent, func(a, b models.FeedbackRecord) int {
		return b.CreatedAt.Compare(a.CreatedAt)
	})

	var sum float64
	var hard int
	for _, r := range recent {
		sum += r.AvgRPE
		if r.IsHard() {
			hard++
		}
	}

	streak := 0
	for _, r := range recent {
		if !r.IsHard() {
			break
		}
		streak++
	}

	n := float64(len(recent))
	return withScore(FatigueSummary{
		Window:         len(recent),
		AvgRPE:         sum / n,
		HardRatio:      float64(hard) / n,
		HardStreak:     streak,
		LastDifficulty: recent[0].Difficulty,
	})
}

func withScore(s FatigueSummary) FatigueSummary {
	s.FatigueScore = FatigueScore(s.AvgRPE, s.HardRatio)
	s.Deload = s.FatigueScore >= deloadFatigue || s.HardStreak >= deloadHardStreak
	return s
}

// FatigueScore is max(0, avgRPE-6.5) + 2*hardRatio rounded to two decimals.
func FatigueScore(avgRPE, hardRatio float64) float64 {
	return round2(math.Max(0, avgRPE-fatigueRPEBase) + hardRatio*hardRatioWeight)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
