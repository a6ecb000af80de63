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

const feedbackColumns = `f.id, f.session_id, f.exercise_id, f.avg_rpe, f.completed_sets,
	f.completed_reps, f.difficulty, f.notes, f.created_at`

func scanFeedbackRows(rows pgx.Rows) ([]models.FeedbackRecord, error) {
	var result []models.FeedbackRecord
	for rows.Next() {
		var r models.FeedbackRecord
		if err := rows.Scan(&r.ID, &r.SessionID, &r.ExerciseID, &r.AvgRPE, &r.CompletedSets,
			&r.CompletedReps, &r.Difficulty, &r.Notes, &r.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning feedback: %w", err)
		}
		result = append(result, r)
	}
	return result, rows.Err()
}

// RecentFeedback returns a profile's latest feedback records, most recent first.
func (db *DB) RecentFeedback(ctx context.Context, profileID uuid.UUID, limit int) ([]models.FeedbackRecord, error) {
	rows, err := db.Pool.Query(ctx,
		`SELECT `+feedbackColumns+` FROM workout_feedback f
		 JOIN workout_sessions s ON s.id = f.session_id
		 WHERE s.profile_id = $1
		 ORDER BY f.created_at DESC, f.seq DESC
		 LIMIT $2`, profileID, limit)
	if err != nil {
		return nil, fmt.Errorf("querying recent feedback: %w", err)
	}
	defer rows.Close()
	return scanFeedbackRows(rows)
}

// RecentFeedbackByPaths returns a profile's latest feedback on exercises that
// belong to any of the given progression paths, most recent first.
func (db *DB) RecentFeedbackByPaths(ctx context.Context, profileID uuid.UUID, paths []string, limit int) ([]models.FeedbackRecord, error) {
	if len(paths) == 0 {
		return nil, nil
	}
	rows, err := db.Pool.Query(ctx,
		`SELECT `+feedbackColumns+` FROM workout_feedback f
		 JOIN workout_sessions s ON s.id = f.session_id
		 JOIN exercises e ON e.id = f.exercise_id
		 WHERE s.profile_id = $1 AND e.progression_path = ANY($2)
		 ORDER BY f.created_at DESC, f.seq DESC
		 LIMIT $3`, profileID, paths, limit)
	if err != nil {
		return nil, fmt.Errorf("querying path feedback: %w", err)
	}
	defer rows.Close()
	return scanFeedbackRows(rows)
}

// AppendFeedback stores feedback for an existing session and returns the
// session with all feedback attached. Nothing is written when the session is
// unknown.
func (db *DB) AppendFeedback(ctx context.Context, sessionID uuid.UUID, records []models.FeedbackRecord) (*models.WorkoutSession, error) {
	var sess *models.WorkoutSession
	err := db.inTx(ctx, func(tx pgx.Tx) error {
		var exists bool
		err := tx.QueryRow(ctx,
			`SELECT true FROM workout_sessions WHERE id = $1 FOR SHARE`, sessionID).Scan(&exists)
		if errors.Is(err, pgx.ErrNoRows) {
			return fmt.Errorf("session %s: %w", sessionID, models.ErrSessionNotFound)
		}
		if err != nil {
			return fmt.Errorf("checking session: %w", err)
		}
		if err := checkItems(ctx, tx, sessionID, records); err != nil {
			return err
		}

		if len(records) > 0 {
			query := `INSERT INTO workout_feedback (id, session_id, exercise_id, avg_rpe, completed_sets, completed_reps, difficulty, notes, created_at) VALUES `
			args := make([]any, 0, len(records)*9)
			valueStrings := make([]string, 0, len(records))
			for i, r := range records {
				base := i * 9
				valueStrings = append(valueStrings, fmt.Sprintf(
					"($%d,$%d,$%d,$%d,$%d,$%d,$%d,$%d,$%d)",
					base+1, base+2, base+3, base+4, base+5, base+6, base+7, base+8, base+9,
				))
				args = append(args, r.ID, sessionID, r.ExerciseID, r.AvgRPE, r.CompletedSets,
					r.CompletedReps, r.Difficulty, r.Notes, r.CreatedAt)
			}
			if _, err := tx.Exec(ctx, query+strings.Join(valueStrings, ","), args...); err != nil {
				return fmt.Errorf("inserting feedback: %w", err)
			}
		}

		sess, err = getSession(ctx, tx, sessionID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return sess, nil
}

func checkItems(ctx context.Context, tx pgx.Tx, sessionID uuid.UUID, records []models.FeedbackRecord) error {
	rows, err := tx.Query(ctx,
		`SELECT exercise_id FROM session_items WHERE session_id = $1`, sessionID)
	if err != nil {
		return fmt.Errorf("querying session items: %w", err)
	}
	defer rows.Close()

	items := make(map[uuid.UUID]bool)
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return fmt.Errorf("scanning session item: %w", err)
		}
		items[id] = true
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("iterating session items: %w", err)
	}
	return models.CheckSessionExercises(items, records)
}
