package localstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/andreasknopke/MyWorkout/internal/models"
	"github.com/google/uuid"
)

const exerciseColumns = `e.id, e.slug, e.name, e.description, e.movement, e.primary_muscle,
	e.equipment, e.contraindications, e.progression_path, e.progression_step,
	e.min_reps, e.max_reps, e.strain_score, e.science_note, e.video_url`

func scanExercise(row scanner, extra ...any) (*models.Exercise, error) {
	var (
		ex   models.Exercise
		step sql.NullInt64
	)
	dest := append([]any{&ex.ID, &ex.Slug, &ex.Name, &ex.Description, &ex.Movement, &ex.PrimaryMuscle,
		jsonList[models.Equipment]{&ex.Equipment},
		jsonList[models.Limitation]{&ex.Contraindications},
		&ex.ProgressionPath, &step,
		&ex.MinReps, &ex.MaxReps, &ex.StrainScore, &ex.ScienceNote, &ex.VideoURL}, extra...)
	if err := row.Scan(dest...); err != nil {
		return nil, err
	}
	if step.Valid {
		n := int(step.Int64)
		ex.ProgressionStep = &n
	}
	return &ex, nil
}

// ListExercises returns the full catalog ordered by movement and name.
func (s *Store) ListExercises(ctx context.Context) ([]models.Exercise, error) {
	rows, err := s.db.QueryContext(ctx,
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

// UpsertExercises inserts or updates catalog entries by slug in one
// transaction. Existing ids are kept. Returns the number of rows written.
func (s *Store) UpsertExercises(ctx context.Context, exercises []models.Exercise) (int64, error) {
	var total int64
	err := s.inTx(ctx, func(tx *sql.Tx) error {
		stmt, err := tx.PrepareContext(ctx,
			`INSERT INTO exercises (id, slug, name, description, movement, primary_muscle,
			 equipment, contraindications, progression_path, progression_step,
			 min_reps, max_reps, strain_score, science_note, video_url)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
			 ON CONFLICT (slug) DO UPDATE SET
				name = excluded.name, description = excluded.description,
				movement = excluded.movement, primary_muscle = excluded.primary_muscle,
				equipment = excluded.equipment, contraindications = excluded.contraindications,
				progression_path = excluded.progression_path, progression_step = excluded.progression_step,
				min_reps = excluded.min_reps, max_reps = excluded.max_reps,
				strain_score = excluded.strain_score, science_note = excluded.science_note,
				video_url = CASE WHEN excluded.video_url = '' THEN exercises.video_url ELSE excluded.video_url END`)
		if err != nil {
			return fmt.Errorf("preparing exercise upsert: %w", err)
		}
		defer stmt.Close()

		for _, ex := range exercises {
			var step any
			if ex.ProgressionStep != nil {
				step = *ex.ProgressionStep
			}
			res, err := stmt.ExecContext(ctx, ex.ID, ex.Slug, ex.Name, ex.Description, ex.Movement,
				ex.PrimaryMuscle, encodeList(ex.Equipment), encodeList(ex.Contraindications),
				ex.ProgressionPath, step, ex.MinReps, ex.MaxReps, ex.StrainScore, ex.ScienceNote, ex.VideoURL)
			if err != nil {
				return fmt.Errorf("upserting exercise %s: %w", ex.Slug, err)
			}
			n, _ := res.RowsAffected()
			total += n
		}
		return nil
	})
	return total, err
}

// GetExercise returns one catalog entry, or models.ErrExerciseNotFound.
func (s *Store) GetExercise(ctx context.Context, id uuid.UUID) (*models.Exercise, error) {
	ex, err := scanExercise(s.db.QueryRowContext(ctx,
		`SELECT `+exerciseColumns+` FROM exercises e WHERE e.id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("exercise %s: %w", id, models.ErrExerciseNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("querying exercise: %w", err)
	}
	return ex, nil
}

// SetExerciseVideo replaces an exercise's video link. An empty link clears it.
func (s *Store) SetExerciseVideo(ctx context.Context, id uuid.UUID, upd models.VideoUpdate) (*models.Exercise, error) {
	if err := upd.Validate(); err != nil {
		return nil, err
	}
	res, err := s.db.ExecContext(ctx,
		`UPDATE exercises SET video_url = ? WHERE id = ?`, upd.VideoURL, id)
	if err != nil {
		return nil, fmt.Errorf("updating exercise video: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return nil, fmt.Errorf("exercise %s: %w", id, models.ErrExerciseNotFound)
	}
	return s.GetExercise(ctx, id)
}
