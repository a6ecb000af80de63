package localstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/andreasknopke/MyWorkout/internal/models"
	"github.com/google/uuid"
)

const profileColumns = `id, name, age, gender, goal, duration_min, training_days_per_week,
	cycle_length_weeks, equipment, limitations, excluded_exercises, created_at`

func scanProfile(row scanner) (*models.Profile, error) {
	var (
		p       models.Profile
		age     sql.NullInt64
		created int64
	)
	err := row.Scan(&p.ID, &p.Name, &age, &p.Gender, &p.Goal, &p.DurationMin,
		&p.TrainingDaysPerWeek, &p.CycleLengthWeeks,
		jsonList[models.Equipment]{&p.Equipment},
		jsonList[models.Limitation]{&p.Limitations},
		jsonList[string]{&p.ExcludedExercises},
		&created)
	if err != nil {
		return nil, err
	}
	if age.Valid {
		a := int(age.Int64)
		p.Age = &a
	}
	p.CreatedAt = fromUnixNano(created)
	return &p, nil
}

// GetProfile returns a profile by ID, or models.ErrProfileNotFound.
func (s *Store) GetProfile(ctx context.Context, id uuid.UUID) (*models.Profile, error) {
	p, err := scanProfile(s.db.QueryRowContext(ctx,
		`SELECT `+profileColumns+` FROM profiles WHERE id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("profile %s: %w", id, models.ErrProfileNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("querying profile: %w", err)
	}
	return p, nil
}

// ListProfiles returns all profiles, oldest first.
func (s *Store) ListProfiles(ctx context.Context) ([]models.Profile, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+profileColumns+` FROM profiles ORDER BY created_at ASC, rowid ASC`)
	if err != nil {
		return nil, fmt.Errorf("querying profiles: %w", err)
	}
	defer rows.Close()

	var result []models.Profile
	for rows.Next() {
		p, err := scanProfile(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning profile: %w", err)
		}
		result = append(result, *p)
	}
	return result, rows.Err()
}

// CreateProfile validates and inserts a new profile.
func (s *Store) CreateProfile(ctx context.Context, in models.NewProfile) (*models.Profile, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	id := uuid.New()
	if err := s.insertProfile(ctx, id, in); err != nil {
		return nil, err
	}
	return s.GetProfile(ctx, id)
}

func (s *Store) insertProfile(ctx context.Context, id uuid.UUID, in models.NewProfile) error {
	var age any
	if in.Age != nil {
		age = *in.Age
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO profiles (id, name, age, gender, goal, duration_min, training_days_per_week,
		 cycle_length_weeks, equipment, limitations, excluded_exercises, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		id, in.Name, age, in.Gender, in.Goal, in.DurationMin, in.TrainingDaysPerWeek,
		in.CycleLengthWeeks, encodeList(in.Equipment), encodeList(in.Limitations),
		encodeList(in.ExcludedExercises), unixNano(time.Now()))
	if err != nil {
		return fmt.Errorf("inserting profile: %w", err)
	}
	return nil
}

// EnsureDefaultProfile creates the default profile if it is missing. A
// non-empty goal is written to the existing profile.
func (s *Store) EnsureDefaultProfile(ctx context.Context, goal models.Goal) (*models.Profile, error) {
	p, err := s.GetProfile(ctx, models.DefaultProfileID)
	switch {
	case errors.Is(err, models.ErrProfileNotFound):
		if err := s.insertProfile(ctx, models.DefaultProfileID, models.DefaultProfile(goal)); err != nil {
			return nil, fmt.Errorf("ensuring default profile: %w", err)
		}
		return s.GetProfile(ctx, models.DefaultProfileID)
	case err != nil:
		return nil, err
	}

	if goal != "" && p.Goal != goal {
		if _, err := s.db.ExecContext(ctx,
			`UPDATE profiles SET goal = ? WHERE id = ?`, goal, p.ID); err != nil {
			return nil, fmt.Errorf("updating default profile goal: %w", err)
		}
		p.Goal = goal
	}
	return p, nil
}

// SeedProfile inserts a profile with a fixed id unless one already exists.
// Reports whether a row was written.
func (s *Store) SeedProfile(ctx context.Context, id uuid.UUID, in models.NewProfile) (bool, error) {
	if err := in.Validate(); err != nil {
		return false, err
	}
	_, err := s.GetProfile(ctx, id)
	switch {
	case err == nil:
		return false, nil
	case !errors.Is(err, models.ErrProfileNotFound):
		return false, err
	}
	if err := s.insertProfile(ctx, id, in); err != nil {
		return false, fmt.Errorf("seeding profile %s: %w", in.Name, err)
	}
	return true, nil
}

// UpdateProfile applies a partial update and returns the stored profile.
func (s *Store) UpdateProfile(ctx context.Context, id uuid.UUID, upd models.ProfileUpdate) (*models.Profile, error) {
	if err := upd.Validate(); err != nil {
		return nil, err
	}

	var out *models.Profile
	err := s.inTx(ctx, func(tx *sql.Tx) error {
		p, err := scanProfile(tx.QueryRowContext(ctx,
			`SELECT `+profileColumns+` FROM profiles WHERE id = ?`, id))
		if errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("profile %s: %w", id, models.ErrProfileNotFound)
		}
		if err != nil {
			return fmt.Errorf("querying profile: %w", err)
		}

		upd.Apply(p)
		var age any
		if p.Age != nil {
			age = *p.Age
		}
		_, err = tx.ExecContext(ctx,
			`UPDATE profiles SET name = ?, age = ?, gender = ?, goal = ?, duration_min = ?,
			 training_days_per_week = ?, cycle_length_weeks = ?, equipment = ?,
			 limitations = ?, excluded_exercises = ?
			 WHERE id = ?`,
			p.Name, age, p.Gender, p.Goal, p.DurationMin, p.TrainingDaysPerWeek,
			p.CycleLengthWeeks, encodeList(p.Equipment), encodeList(p.Limitations),
			encodeList(p.ExcludedExercises), id)
		if err != nil {
			return fmt.Errorf("updating profile: %w", err)
		}
		out = p
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}
