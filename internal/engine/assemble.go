package engine

import (
	"github.com/andreasknopke/MyWorkout/internal/models"
	"github.com/google/uuid"
)

// Plan is everything the assembler needs besides the exercise list.
type Plan struct {
	ProfileID   uuid.UUID
	Goal        models.Goal
	DurationMin int
	Period      Period
	Summary     FatigueSummary
	Rx          Prescription
}

// Assemble combines the selected exercises with the prescription. Each item's
// rep range is clamped to the exercise's own bounds; a readiness deload drops
// one set per item, never below two.
func Assemble(plan Plan, exercises []models.Exercise) *models.WorkoutSession {
	sets := plan.Rx.Sets
	if plan.Summary.Deload {
		sets = max(2, sets-1)
	}
	sets = max(2, sets)

	items := make([]models.SessionItem, len(exercises))
	for i, ex := range exercises {
		repsMin := max(plan.Rx.RepsMin, ex.MinReps)
		repsMax := max(repsMin, min(plan.Rx.RepsMax, ex.MaxReps))
		items[i] = models.SessionItem{
			Position:     i + 1,
			ExerciseID:   ex.ID,
			Exercise:     &exercises[i],
			Sets:         sets,
			RepsMin:      repsMin,
			RepsMax:      repsMax,
			RestSec:      plan.Rx.RestSec,
			LoadModifier: plan.Rx.LoadModifier,
		}
	}

	return &models.WorkoutSession{
		ID:           uuid.New(),
		ProfileID:    plan.ProfileID,
		Goal:         plan.Goal,
		DurationMin:  plan.DurationMin,
		BlockWeek:    plan.Period.Week,
		Phase:        plan.Period.Phase,
		FatigueScore: plan.Summary.FatigueScore,
		Deload:       plan.Summary.Deload || plan.Period.Phase == models.PhaseDeload,
		TargetRPE:    plan.Rx.TargetRPE,
		Items:        items,
	}
}
