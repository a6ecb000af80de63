package engine

import (
	"math/rand/v2"

	"github.com/andreasknopke/MyWorkout/internal/models"
	"github.com/google/uuid"
)

// Shuffler is the selector's only source of randomness. *rand.Rand satisfies it.
type Shuffler interface {
	Shuffle(n int, swap func(i, j int))
}

// NewShuffler returns a PCG-backed source. A nil seed draws one at random.
func NewShuffler(seed *uint64) Shuffler {
	if seed == nil {
		return rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return rand.New(rand.NewPCG(*seed, *seed))
}

type quota struct {
	movement models.MovementPattern
	count    int
}

// skeletonQuotas is the prioritized per-pattern sampling plan.
var skeletonQuotas = []quota{
	{models.MovementLegs, 2},
	{models.MovementPush, 1},
	{models.MovementPull, 1},
	{models.MovementCore, 1},
	{models.MovementConditioning, 1},
}

// TargetCount maps a session duration in minutes to the number of exercises.
func TargetCount(durationMin int) int {
	switch {
	case durationMin <= 25:
		return 4
	case durationMin <= 40:
		return 5
	case durationMin <= 55:
		return 6
	}
	return 7
}

// Skeleton samples the per-pattern quotas without replacement and truncates
// the result to count.
func Skeleton(eligible []models.Exercise, count int, rng Shuffler) []models.Exercise {
	var picked []models.Exercise
	for _, q := range skeletonQuotas {
		var group []models.Exercise
		for _, ex := range eligible {
			if ex.Movement == q.movement {
				group = append(group, ex)
			}
		}
		picked = append(picked, sample(group, q.count, rng)...)
	}
	picked = uniqueByID(picked)
	if len(picked) > count {
		picked = picked[:count]
	}
	return picked
}

// Refine applies progression paths to a skeleton, then tops it up with random
// eligible exercises not yet selected and truncates it to exactly count (or
// the eligible pool size, if smaller).
func Refine(skeleton, eligible []models.Exercise, count int, latestByPath map[string]models.Difficulty, rng Shuffler) []models.Exercise {
	selected := ResolveProgressions(skeleton, eligible, latestByPath)

	if short := count - len(selected); short > 0 {
		taken := make(map[uuid.UUID]bool, len(selected))
		for _, ex := range selected {
			taken[ex.ID] = true
		}
		var rest []models.Exercise
		for _, ex := range eligible {
			if !taken[ex.ID] {
				rest = append(rest, ex)
			}
		}
		selected = append(selected, sample(rest, short, rng)...)
	}

	selected = uniqueByID(selected)
	if len(selected) > count {
		selected = selected[:count]
	}
	return selected
}

// Select builds the full exercise list for a session in one pass.
func Select(eligible []models.Exercise, count int, latestByPath map[string]models.Difficulty, rng Shuffler) []models.Exercise {
	return Refine(Skeleton(eligible, count, rng), eligible, count, latestByPath, rng)
}

// ProgressionPaths lists the distinct paths of the given exercises in order.
func ProgressionPaths(exercises []models.Exercise) []string {
	seen := make(map[string]bool)
	var paths []string
	for _, ex := range exercises {
		if ex.ProgressionPath == "" || seen[ex.ProgressionPath] {
			continue
		}
		seen[ex.ProgressionPath] = true
		paths = append(paths, ex.ProgressionPath)
	}
	return paths
}

func sample(pool []models.Exercise, n int, rng Shuffler) []models.Exercise {
	if n <= 0 || len(pool) == 0 {
		return nil
	}
	shuffled := make([]models.Exercise, len(pool))
	copy(shuffled, pool)
	rng.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})
	return shuffled[:min(n, len(shuffled))]
}

func uniqueByID(list []models.Exercise) []models.Exercise {
	seen := make(map[uuid.UUID]bool, len(list))
	out := list[:0:0]
	for _, ex := range list {
		if seen[ex.ID] {
			continue
		}
		seen[ex.ID] = true
		out = append(out, ex)
	}
	return out
}
