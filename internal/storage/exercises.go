package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/andreasknopke/MyWorkout/internal/models"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const exerciseColumns = `e.id, e.slug, e.name, e.description, e.movement, e.primary_muscle,
	e.equipment, e.contraindications, COALESCE(e.progression_path, ''), e.progression_step,
	e.min_reps, e.max_reps, e.strain_score, e.science_note, e.video_url`

func scanExercise(row scanner, extra ...any) (*models.Exercise, error) {
	var (
		ex                models.Exercise
		equipment         []string
		contraindications []string
	)
	dest := append([]any{&ex.ID, &ex.Slug, &ex.Name, &ex.Description, &ex.Movement, &ex.PrimaryMuscle,
		&equipment, &contraindications, &ex.ProgressionPath, &ex.ProgressionStep,
		&ex.MinReps, &ex.MaxReps, &ex.StrainScore, &ex.ScienceNote, &ex.VideoURL}, extra...)
	if err := row.Scan(dest...); err != nil {
		return nil, err
	}
	ex.Equipment = models.ParseEquipment(equipment)
	ex.Contraindications = models.ParseLimitations(contraindications)
	return &ex, nil
}

// ListExercises returns the full catalog ordered by movement and name.
func (db *DB) ListExercises(ctx context.Context) ([]models.Exercise, error) {
	rows, err := db.Pool.Query(ctx,
		`SELECT `+exerciseColumns+` FROM exercises e ORDER BY e.movement, e.name`)
	if err != nil {
		return nil, fmt.Errorf("querying exercises: %w", err)
	}
	defer rows.Close()

	var result []models.Exercise
	for rows.Next() {
		ex, err := scanExercise(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning exercise: %w", err)
		}
		result = append(result, *ex)
	}
	return result, rows.Err()
}

// UpsertExercises inserts or updates catalog entries by slug. Existing ids are
// kept so that sessions and feedback stay attached, and a stored video link
// survives an entry without one. Returns the number of rows written.
func (db *DB) UpsertExercises(ctx context.Context, exercises []models.Exercise) (int64, error) {
	if len(exercises) == 0 {
		return 0, nil
	}

	var total int64
	for _, ex := range exercises {
		var path *string
		if ex.ProgressionPath != "" {
			path = &ex.ProgressionPath
		}
		tag, err := db.Pool.Exec(ctx,
			`INSERT INTO exercises (id, slug, name, description, movement, primary_muscle,
			 equipment, contraindications, progression_path, progression_step,
			 min_reps, max_reps, strain_score, science_note, video_url)
			 VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15)
			 ON CONFLICT (slug) DO UPDATE SET
				name = EXCLUDED.name, description = EXCLUDED.description,
				movement = EXCLUDED.movement, primary_muscle = EXCLUDED.primary_muscle,
				equipment = EXCLUDED.equipment, contraindications = EXCLUDED.contraindications,
				progression_path = EXCLUDED.progression_path, progression_step = EXCLUDED.progression_step,
				min_reps = EXCLUDED.min_reps, max_reps = EXCLUDED.max_reps,
				strain_score = EXCLUDED.strain_score, science_note = EXCLUDED.science_note,
				video_url = CASE WHEN EXCLUDED.video_url = '' THEN exercises.video_url ELSE EXCLUDED.video_url END`,
			ex.ID, ex.Slug, ex.Name, ex.Description, ex.Movement, ex.PrimaryMuscle,
			models.EquipmentStrings(ex.Equipment), models.LimitationStrings(ex.Contraindications),
			path, ex.ProgressionStep, ex.MinReps, ex.MaxReps, ex.StrainScore, ex.ScienceNote, ex.VideoURL)
		if err != nil {
			return total, fmt.Errorf("upserting exercise %s: %w", ex.Slug, err)
		}
		total += tag.RowsAffected()
	}
	return total, nil
}

// GetExercise returns one catalog entry, or models.ErrExerciseNotFound.
func (db *DB) GetExercise(ctx context.Context, id uuid.UUID) (*models.Exercise, error) {
	ex, err := scanExercise(db.Pool.QueryRow(ctx,
		`SELECT `+exerciseColumns+` FROM exercises e WHERE e.id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("exercise %s: %w", id, models.ErrExerciseNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("querying exercise: %w", err)
	}
	return ex, nil
}

// SetExerciseVideo replaces an exercise's video link. An empty link clears it.
func (db *DB) SetExerciseVideo(ctx context.Context, id uuid.UUID, upd models.VideoUpdate) (*models.Exercise, error) {
	if err := upd.Validate(); err != nil {
		return nil, err
	}
	tag, err := db.Pool.Exec(ctx,
		`UPDATE exercises SET video_url = $2 WHERE id = $1`, id, upd.VideoURL)
	if err != nil {
		return nil, fmt.Errorf("updating exercise video: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return nil, fmt.Errorf("exercise %s: %w", id, models.ErrExerciseNotFound)
	}
	return db.GetExercise(ctx, id)
}
