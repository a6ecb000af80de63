package engine

import (
	"cmp"
	"slices"

	"github.com/andreasknopke/MyWorkout/internal/models"
	"github.com/google/uuid"
)

// DefaultPathFeedbackLimit bounds the feedback fetched for progression lookups.
const DefaultPathFeedbackLimit = 60

// PathIndex maps exercise ids to their progression path for every catalog
// entry that is on one.
func PathIndex(catalog []models.Exercise) map[uuid.UUID]string {
	idx := make(map[uuid.UUID]string)
	for _, ex := range catalog {
		if ex.ProgressionPath != "" {
			idx[ex.ID] = ex.ProgressionPath
		}
	}
	return idx
}

// LatestDifficultyByPath reduces feedback to the most recent difficulty per
// progression path. Records are ordered by CreatedAt descending first; among
// equal timestamps the one appearing earlier in the input wins.
func LatestDifficultyByPath(records []models.FeedbackRecord, pathOf map[uuid.UUID]string) map[string]models.Difficulty {
	ordered := slices.Clone(records)
	slices.SortStableFunc(ordered, func(a, b models.FeedbackRecord) int {
		return b.CreatedAt.Compare(a.CreatedAt)
	})

	latest := make(map[string]models.Difficulty)
	for _, r := range ordered {
		path, ok := pathOf[r.ExerciseID]
		if !ok || r.Difficulty == "" {
			continue
		}
		if _, seen := latest[path]; seen {
			continue
		}
		latest[path] = r.Difficulty
	}
	return latest
}

// ResolveProgressions moves each selected exercise one step along its
// progression path according to the latest feedback for that path. The result
// never contains the same exercise twice: when a resolved variant is already
// part of the output the original exercise is kept, and dropped if that is
// present too.
func ResolveProgressions(selected, eligible []models.Exercise, latestByPath map[string]models.Difficulty) []models.Exercise {
	siblings := make(map[string][]models.Exercise)
	for _, ex := range eligible {
		if ex.OnPath() {
			siblings[ex.ProgressionPath] = append(siblings[ex.ProgressionPath], ex)
		}
	}
	for path, list := range siblings {
		slices.SortStableFunc(list, func(a, b models.Exercise) int {
			return cmp.Compare(*a.ProgressionStep, *b.ProgressionStep)
		})
		siblings[path] = list
	}

	seen := make(map[uuid.UUID]bool, len(selected))
	out := make([]models.Exercise, 0, len(selected))
	for _, ex := range selected {
		next := progress(ex, siblings[ex.ProgressionPath], latestByPath[ex.ProgressionPath])
		switch {
		case !seen[next.ID]:
			out = append(out, next)
			seen[next.ID] = true
		case !seen[ex.ID]:
			out = append(out, ex)
			seen[ex.ID] = true
		}
	}
	return out
}

func progress(ex models.Exercise, siblings []models.Exercise, d models.Difficulty) models.Exercise {
	if !ex.OnPath() || len(siblings) == 0 {
		return ex
	}

	var delta int
	switch d {
	case models.DifficultyTooEasy:
		delta = 1
	case models.DifficultyTooHard:
		delta = -1
	default:
		return ex
	}

	target := *ex.ProgressionStep + delta
	for _, s := range siblings {
		if *s.ProgressionStep == target {
			return s
		}
	}

	cur := slices.IndexFunc(siblings, func(s models.Exercise) bool { return s.ID == ex.ID })
	if cur < 0 {
		return ex
	}
	return siblings[min(len(siblings)-1, max(0, cur+delta))]
}
