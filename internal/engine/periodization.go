package engine

import "github.com/andreasknopke/MyWorkout/internal/models"

const (
	minCycleWeeks     = 4
	maxCycleWeeks     = 12
	accumulationShare = 0.6
)

// Period is the position within the current training block.
type Period struct {
	Week       int          `json:"week"`
	CycleWeeks int          `json:"cycle_weeks"`
	Phase      models.Phase `json:"phase"`
}

// PeriodFor derives the block week and phase from how many sessions the
// profile has already completed. Cadence drives the cycle, not the calendar.
func PeriodFor(sessionCount, daysPerWeek, cycleWeeks int) Period {
	perWeek := max(1, daysPerWeek)
	cycle := min(maxCycleWeeks, max(minCycleWeeks, cycleWeeks))
	week := (sessionCount/perWeek)%cycle + 1
	return Period{Week: week, CycleWeeks: cycle, Phase: PhaseForWeek(week, cycle)}
}

// PhaseForWeek maps a 1-based block week onto its phase.
func PhaseForWeek(week, cycleWeeks int) models.Phase {
	if week >= cycleWeeks {
		return models.PhaseDeload
	}
	if float64(week)/float64(cycleWeeks) <= accumulationShare {
		return models.PhaseAccumulation
	}
	return models.PhaseIntensification
}
