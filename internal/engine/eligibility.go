package engine

import (
	"fmt"

	"github.com/andreasknopke/MyWorkout/internal/models"
)

// Eligible returns the catalog entries usable by the profile, in catalog order.
// Bodyweight is always treated as owned. An exercise is excluded when its id
// or slug appears in the profile's exclusion list.
func Eligible(catalog []models.Exercise, p *models.Profile) ([]models.Exercise, error) {
	owned := make(map[models.Equipment]bool, len(p.Equipment)+1)
	for _, e := range p.Equipment {
		owned[e] = true
	}
	owned[models.EquipmentBodyweight] = true

	limits := make(map[models.Limitation]bool, len(p.Limitations))
	for _, l := range p.Limitations {
		limits[l] = true
	}

	excluded := make(map[string]bool, len(p.ExcludedExercises))
	for _, x := range p.ExcludedExercises {
		excluded[x] = true
	}

	var out []models.Exercise
	for _, ex := range catalog {
		if !equipmentAvailable(ex, owned) || !safeFor(ex, limits) {
			continue
		}
		if excluded[ex.ID.String()] || excluded[ex.Slug] {
			continue
		}
		out = append(out, ex)
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("filtering %d exercises for profile %s: %w", len(catalog), p.ID, models.ErrNoEligibleExercises)
	}
	return out, nil
}

func equipmentAvailable(ex models.Exercise, owned map[models.Equipment]bool) bool {
	if len(ex.Equipment) == 0 {
		return true
	}
	for _, e := range ex.Equipment {
		if owned[e] {
			return true
		}
	}
	return false
}

func safeFor(ex models.Exercise, limits map[models.Limitation]bool) bool {
	if len(limits) == 0 {
		return true
	}
	for _, c := range ex.Contraindications {
		if limits[c] {
			return false
		}
	}
	return true
}
