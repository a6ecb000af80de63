package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/andreasknopke/MyWorkout/internal/models"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// CountSessions returns how many sessions a profile has generated.
func (db *DB) CountSessions(ctx context.Context, profileID uuid.UUID) (int, error) {
	var n int
	err := db.Pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM workout_sessions WHERE profile_id = $1`, profileID).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("counting sessions: %w", err)
	}
	return n, nil
}

// CreateSession inserts a session and its items in one transaction.
func (db *DB) CreateSession(ctx context.Context, s *models.WorkoutSession) (*models.WorkoutSession, error) {
	err := db.inTx(ctx, func(tx pgx.Tx) error {
		_, err := tx.Exec(ctx,
			`INSERT INTO workout_sessions (id, profile_id, goal, duration_min, block_week, phase,
			 fatigue_score, deload, target_rpe, created_at)
			 VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)`,
			s.ID, s.ProfileID, s.Goal, s.DurationMin, s.BlockWeek, s.Phase,
			s.FatigueScore, s.Deload, s.TargetRPE, s.CreatedAt)
		if err != nil {
			return fmt.Errorf("inserting session: %w", err)
		}
		if len(s.Items) == 0 {
			return nil
		}

		query := `INSERT INTO session_items (session_id, position, exercise_id, sets, reps_min, reps_max, rest_sec, load_modifier) VALUES `
		args := make([]any, 0, len(s.Items)*8)
		valueStrings := make([]string, 0, len(s.Items))
		for i, it := range s.Items {
			base := i * 8
			valueStrings = append(valueStrings, fmt.Sprintf(
				"($%d,$%d,$%d,$%d,$%d,$%d,$%d,$%d)",
				base+1, base+2, base+3, base+4, base+5, base+6, base+7, base+8,
			))
			args = append(args, s.ID, it.Position, it.ExerciseID, it.Sets, it.RepsMin, it.RepsMax, it.RestSec, it.LoadModifier)
		}
		if _, err := tx.Exec(ctx, query+strings.Join(valueStrings, ","), args...); err != nil {
			return fmt.Errorf("inserting session items: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s, nil
}

// GetSession returns a session with its items, their exercises and all
// attached feedback, or models.ErrSessionNotFound.
func (db *DB) GetSession(ctx context.Context, id uuid.UUID) (*models.WorkoutSession, error) {
	return getSession(ctx, db.Pool, id)
}

type querier interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

func getSession(ctx context.Context, q querier, id uuid.UUID) (*models.WorkoutSession, error) {
	var s models.WorkoutSession
	err := q.QueryRow(ctx,
		`SELECT id, profile_id, goal, duration_min, block_week, phase, fatigue_score, deload, target_rpe, created_at
		 FROM workout_sessions WHERE id = $1`, id).
		Scan(&s.ID, &s.ProfileID, &s.Goal, &s.DurationMin, &s.BlockWeek, &s.Phase,
			&s.FatigueScore, &s.Deload, &s.TargetRPE, &s.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("session %s: %w", id, models.ErrSessionNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("querying session: %w", err)
	}

	itemRows, err := q.Query(ctx,
		`SELECT `+exerciseColumns+`, i.position, i.sets, i.reps_min, i.reps_max, i.rest_sec, i.load_modifier
		 FROM session_items i
		 JOIN exercises e ON e.id = i.exercise_id
		 WHERE i.session_id = $1
		 ORDER BY i.position ASC`, id)
	if err != nil {
		return nil, fmt.Errorf("querying session items: %w", err)
	}
	defer itemRows.Close()

	for itemRows.Next() {
		var it models.SessionItem
		ex, err := scanExercise(itemRows, &it.Position, &it.Sets, &it.RepsMin, &it.RepsMax, &it.RestSec, &it.LoadModifier)
		if err != nil {
			return nil, fmt.Errorf("scanning session item: %w", err)
		}
		it.ExerciseID = ex.ID
		it.Exercise = ex
		s.Items = append(s.Items, it)
	}
	if err := itemRows.Err(); err != nil {
		return nil, err
	}

	fbRows, err := q.Query(ctx,
		`SELECT `+feedbackColumns+` FROM workout_feedback f
		 WHERE f.session_id = $1
		 ORDER BY f.created_at ASC, f.seq ASC`, id)
	if err != nil {
		return nil, fmt.Errorf("querying session feedback: %w", err)
	}
	defer fbRows.Close()

	s.Feedback, err = scanFeedbackRows(fbRows)
	if err != nil {
		return nil, err
	}
	return &s, nil
}
