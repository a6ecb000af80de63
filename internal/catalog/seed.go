package catalog

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/andreasknopke/MyWorkout/internal/models"
	"github.com/google/uuid"
)

// Seeder is a store that can take the catalog. storage.DB and
// localstore.Store both satisfy it.
type Seeder interface {
	UpsertExercises(ctx context.Context, exercises []models.Exercise) (int64, error)
	SeedProfile(ctx context.Context, id uuid.UUID, in models.NewProfile) (bool, error)
}

// SeedResult counts what a seed run wrote.
type SeedResult struct {
	Exercises       int64
	ProfilesCreated int
	ProfilesKept    int
}

// Seed upserts every exercise and creates seed profiles that do not exist yet.
// Existing profiles are never overwritten.
func Seed(ctx context.Context, s Seeder, f *File, log *slog.Logger) (SeedResult, error) {
	var res SeedResult

	n, err := s.UpsertExercises(ctx, f.Exercises())
	if err != nil {
		return res, fmt.Errorf("seeding exercises: %w", err)
	}
	res.Exercises = n

	for _, p := range f.Profiles {
		created, err := s.SeedProfile(ctx, p.ID, p.NewProfile())
		if err != nil {
			return res, fmt.Errorf("seeding profile %s: %w", p.Name, err)
		}
		if created {
			res.ProfilesCreated++
			log.Info("seed profile created", "id", p.ID, "name", p.Name)
		} else {
			res.ProfilesKept++
		}
	}
	return res, nil
}
