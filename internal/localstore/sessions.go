package localstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/andreasknopke/MyWorkout/internal/models"
	"github.com/google/uuid"
)

// CountSessions returns how many sessions a profile has generated.
func (s *Store) CountSessions(ctx context.Context, profileID uuid.UUID) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM workout_sessions WHERE profile_id = ?`, profileID).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("counting sessions: %w", err)
	}
	return n, nil
}

// CreateSession inserts a session and its items in one transaction.
func (s *Store) CreateSession(ctx context.Context, sess *models.WorkoutSession) (*models.WorkoutSession, error) {
	err := s.inTx(ctx, func(tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO workout_sessions (id, profile_id, goal, duration_min, block_week, phase,
			 fatigue_score, deload, target_rpe, created_at)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			sess.ID, sess.ProfileID, sess.Goal, sess.DurationMin, sess.BlockWeek, sess.Phase,
			sess.FatigueScore, sess.Deload, sess.TargetRPE, unixNano(sess.CreatedAt))
		if err != nil {
			return fmt.Errorf("inserting session: %w", err)
		}

		for _, it := range sess.Items {
			_, err := tx.ExecContext(ctx,
				`INSERT INTO session_items (session_id, position, exercise_id, sets, reps_min, reps_max, rest_sec, load_modifier)
				 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
				sess.ID, it.Position, it.ExerciseID, it.Sets, it.RepsMin, it.RepsMax, it.RestSec, it.LoadModifier)
			if err != nil {
				return fmt.Errorf("inserting session item %d: %w", it.Position, err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return sess, nil
}

// GetSession returns a session with its items, their exercises and all
// attached feedback, or models.ErrSessionNotFound.
func (s *Store) GetSession(ctx context.Context, id uuid.UUID) (*models.WorkoutSession, error) {
	return getSession(ctx, s.db, id)
}

func getSession(ctx context.Context, q querier, id uuid.UUID) (*models.WorkoutSession, error) {
	var (
		sess    models.WorkoutSession
		created int64
	)
	err := q.QueryRowContext(ctx,
		`SELECT id, profile_id, goal, duration_min, block_week, phase, fatigue_score, deload, target_rpe, created_at
		 FROM workout_sessions WHERE id = ?`, id).
		Scan(&sess.ID, &sess.ProfileID, &sess.Goal, &sess.DurationMin, &sess.BlockWeek, &sess.Phase,
			&sess.FatigueScore, &sess.Deload, &sess.TargetRPE, &created)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("session %s: %w", id, models.ErrSessionNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("querying session: %w", err)
	}
	sess.CreatedAt = fromUnixNano(created)

	itemRows, err := q.QueryContext(ctx,
		`SELECT `+exerciseColumns+`, i.position, i.sets, i.reps_min, i.reps_max, i.rest_sec, i.load_modifier
		 FROM session_items i
		 JOIN exercises e ON e.id = i.exercise_id
		 WHERE i.session_id = ?
		 ORDER BY i.position ASC`, id)
	if err != nil {
		return nil, fmt.Errorf("querying session items: %w", err)
	}
	for itemRows.Next() {
		var it models.SessionItem
		ex, err := scanExercise(itemRows, &it.Position, &it.Sets, &it.RepsMin, &it.RepsMax, &it.RestSec, &it.LoadModifier)
		if err != nil {
			itemRows.Close()
			return nil, fmt.Errorf("scanning session item: %w", err)
		}
		it.ExerciseID = ex.ID
		it.Exercise = ex
		sess.Items = append(sess.Items, it)
	}
	itemRows.Close()
	if err := itemRows.Err(); err != nil {
		return nil, err
	}

	fbRows, err := q.QueryContext(ctx,
		`SELECT `+feedbackColumns+` FROM workout_feedback f
		 WHERE f.session_id = ?
		 ORDER BY f.created_at ASC, f.seq ASC`, id)
	if err != nil {
		return nil, fmt.Errorf("querying session feedback: %w", err)
	}
	defer fbRows.Close()

	sess.Feedback, err = scanFeedbackRows(fbRows)
	if err != nil {
		return nil, err
	}
	return &sess, nil
}
