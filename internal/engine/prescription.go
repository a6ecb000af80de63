package engine

import "github.com/andreasknopke/MyWorkout/internal/models"

const deloadTargetRPE = 6.0

// Prescription is the per-session volume and intensity target.
type Prescription struct {
	Sets         int     `json:"sets"`
	RepsMin      int     `json:"reps_min"`
	RepsMax      int     `json:"reps_max"`
	RestSec      int     `json:"rest_sec"`
	TargetRPE    float64 `json:"target_rpe"`
	LoadModifier float64 `json:"load_modifier"`
}

// BasePrescription returns the goal's rep range, sets, rest and target RPE
// before any phase adjustment. deload forces the target RPE to 6.
func BasePrescription(goal models.Goal, deload bool) Prescription {
	rx := Prescription{Sets: 3, RepsMin: 6, RepsMax: 12, RestSec: 75, TargetRPE: 8}
	switch goal {
	case models.GoalStrength:
		rx = Prescription{Sets: 4, RepsMin: 4, RepsMax: 8, RestSec: 120, TargetRPE: 8.2}
	case models.GoalEndurance:
		rx = Prescription{Sets: 3, RepsMin: 12, RepsMax: 20, RestSec: 75, TargetRPE: 7.2}
	}
	if deload {
		rx.TargetRPE = deloadTargetRPE
	}
	rx.LoadModifier = 1
	return rx
}

// AdjustForPhase applies the phase's volume and intensity changes to a base
// prescription. Reps and rest use integer floor arithmetic.
func AdjustForPhase(phase models.Phase, rx Prescription) Prescription {
	switch phase {
	case models.PhaseDeload:
		rx.Sets = max(2, rx.Sets-1)
		rx.RepsMin = max(4, rx.RepsMin*9/10)
		rx.RepsMax = max(6, rx.RepsMax*9/10)
		rx.TargetRPE = max(deloadTargetRPE, rx.TargetRPE-1.2)
		rx.RestSec = rx.RestSec * 9 / 10
	case models.PhaseIntensification:
		base := rx.RepsMin
		rx.RepsMin = max(3, base-1)
		rx.RepsMax = max(base+1, rx.RepsMax-2)
		rx.TargetRPE = min(9, rx.TargetRPE+0.3)
		rx.RestSec = rx.RestSec * 12 / 10
	}
	rx.TargetRPE = round2(rx.TargetRPE)
	return rx
}

// LoadModifier scales working load from the last difficulty rating.
func LoadModifier(last models.Difficulty, deload bool) float64 {
	switch {
	case deload:
		return 0.6
	case last == models.DifficultyTooEasy:
		return 1.05
	case last == models.DifficultyTooHard:
		return 0.9
	}
	return 1
}

// Prescribe computes the session prescription for a goal and phase given the
// fatigue summary. Deload from either readiness or phase lowers the target
// RPE and load.
func Prescribe(goal models.Goal, phase models.Phase, summary FatigueSummary) Prescription {
	deload := summary.Deload || phase == models.PhaseDeload
	rx := AdjustForPhase(phase, BasePrescription(goal, deload))
	rx.LoadModifier = LoadModifier(summary.LastDifficulty, deload)
	return rx
}
