package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/andreasknopke/MyWorkout/internal/models"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const profileColumns = `id, name, age, COALESCE(gender, ''), goal, duration_min,
	training_days_per_week, cycle_length_weeks, equipment, limitations,
	excluded_exercises, created_at`

func scanProfile(row scanner) (*models.Profile, error) {
	var (
		p           models.Profile
		equipment   []string
		limitations []string
	)
	err := row.Scan(&p.ID, &p.Name, &p.Age, &p.Gender, &p.Goal, &p.DurationMin,
		&p.TrainingDaysPerWeek, &p.CycleLengthWeeks, &equipment, &limitations,
		&p.ExcludedExercises, &p.CreatedAt)
	if err != nil {
		return nil, err
	}
	p.Equipment = models.ParseEquipment(equipment)
	p.Limitations = models.ParseLimitations(limitations)
	return &p, nil
}

// GetProfile returns a profile by ID, or models.ErrProfileNotFound.
func (db *DB) GetProfile(ctx context.Context, id uuid.UUID) (*models.Profile, error) {
	p, err := scanProfile(db.Pool.QueryRow(ctx,
		`SELECT `+profileColumns+` FROM profiles WHERE id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("profile %s: %w", id, models.ErrProfileNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("querying profile: %w", err)
	}
	return p, nil
}

// ListProfiles returns all profiles, oldest first.
func (db *DB) ListProfiles(ctx context.Context) ([]models.Profile, error) {
	rows, err := db.Pool.Query(ctx,
		`SELECT `+profileColumns+` FROM profiles ORDER BY created_at ASC`)
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
func (db *DB) CreateProfile(ctx context.Context, in models.NewProfile) (*models.Profile, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	return db.insertProfile(ctx, uuid.New(), in)
}

func (db *DB) insertProfile(ctx context.Context, id uuid.UUID, in models.NewProfile) (*models.Profile, error) {
	p, err := scanProfile(db.Pool.QueryRow(ctx,
		`INSERT INTO profiles (id, name, age, gender, goal, duration_min,
		 training_days_per_week, cycle_length_weeks, equipment, limitations, excluded_exercises)
		 VALUES ($1, $2, $3, NULLIF($4, ''), $5, $6, $7, $8, $9, $10, $11)
		 RETURNING `+profileColumns,
		id, in.Name, in.Age, in.Gender, in.Goal, in.DurationMin,
		in.TrainingDaysPerWeek, in.CycleLengthWeeks,
		models.EquipmentStrings(in.Equipment), models.LimitationStrings(in.Limitations),
		in.ExcludedExercises))
	if err != nil {
		return nil, fmt.Errorf("inserting profile: %w", err)
	}
	return p, nil
}

// EnsureDefaultProfile creates the default profile if it is missing. A
// non-empty goal is written to the existing profile.
func (db *DB) EnsureDefaultProfile(ctx context.Context, goal models.Goal) (*models.Profile, error) {
	def := models.DefaultProfile(goal)
	p, err := scanProfile(db.Pool.QueryRow(ctx,
		`INSERT INTO profiles (id, name, goal, duration_min, training_days_per_week, cycle_length_weeks, equipment)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 ON CONFLICT (id) DO UPDATE
			SET goal = CASE WHEN $8::boolean THEN EXCLUDED.goal ELSE profiles.goal END
		 RETURNING `+profileColumns,
		models.DefaultProfileID, def.Name, def.Goal, def.DurationMin,
		def.TrainingDaysPerWeek, def.CycleLengthWeeks, models.EquipmentStrings(def.Equipment),
		goal != ""))
	if err != nil {
		return nil, fmt.Errorf("ensuring default profile: %w", err)
	}
	return p, nil
}

// SeedProfile inserts a profile with a fixed id unless one already exists.
// Reports whether a row was written.
func (db *DB) SeedProfile(ctx context.Context, id uuid.UUID, in models.NewProfile) (bool, error) {
	if err := in.Validate(); err != nil {
		return false, err
	}
	tag, err := db.Pool.Exec(ctx,
		`INSERT INTO profiles (id, name, age, gender, goal, duration_min,
		 training_days_per_week, cycle_length_weeks, equipment, limitations, excluded_exercises)
		 VALUES ($1, $2, $3, NULLIF($4, ''), $5, $6, $7, $8, $9, $10, $11)
		 ON CONFLICT (id) DO NOTHING`,
		id, in.Name, in.Age, in.Gender, in.Goal, in.DurationMin,
		in.TrainingDaysPerWeek, in.CycleLengthWeeks,
		models.EquipmentStrings(in.Equipment), models.LimitationStrings(in.Limitations),
		in.ExcludedExercises)
	if err != nil {
		return false, fmt.Errorf("seeding profile %s: %w", in.Name, err)
	}
	return tag.RowsAffected() == 1, nil
}

// UpdateProfile applies a partial update and returns the stored profile.
func (db *DB) UpdateProfile(ctx context.Context, id uuid.UUID, upd models.ProfileUpdate) (*models.Profile, error) {
	if err := upd.Validate(); err != nil {
		return nil, err
	}

	var out *models.Profile
	err := db.inTx(ctx, func(tx pgx.Tx) error {
		p, err := scanProfile(tx.QueryRow(ctx,
			`SELECT `+profileColumns+` FROM profiles WHERE id = $1 FOR UPDATE`, id))
		if errors.Is(err, pgx.ErrNoRows) {
			return fmt.Errorf("profile %s: %w", id, models.ErrProfileNotFound)
		}
		if err != nil {
			return fmt.Errorf("querying profile: %w", err)
		}

		upd.Apply(p)
		out, err = scanProfile(tx.QueryRow(ctx,
			`UPDATE profiles SET name = $2, age = $3, gender = NULLIF($4, ''), goal = $5,
			 duration_min = $6, training_days_per_week = $7, cycle_length_weeks = $8,
			 equipment = $9, limitations = $10, excluded_exercises = $11
			 WHERE id = $1
			 RETURNING `+profileColumns,
			id, p.Name, p.Age, p.Gender, p.Goal, p.DurationMin,
			p.TrainingDaysPerWeek, p.CycleLengthWeeks,
			models.EquipmentStrings(p.Equipment), models.LimitationStrings(p.Limitations),
			p.ExcludedExercises))
		if err != nil {
			return fmt.Errorf("updating profile: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}
