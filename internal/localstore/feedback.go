package localstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/andreasknopke/MyWorkout/internal/models"
	"github.com/google/uuid"
)

const feedbackColumns = `f.id, f.session_id, f.exercise_id, f.avg_rpe, f.completed_sets,
	f.completed_reps, f.difficulty, f.notes, f.created_at`

func scanFeedbackRows(rows *sql.Rows) ([]models.FeedbackRecord, error) {
	var result []models.FeedbackRecord
	for rows.Next() {
		var (
			r       models.FeedbackRecord
			created int64
		)
		if err := rows.Scan(&r.ID, &r.SessionID, &r.ExerciseID, &r.AvgRPE, &r.CompletedSets,
			&r.CompletedReps, &r.Difficulty, &r.Notes, &created); err != nil {
			return nil, fmt.Errorf("scanning feedback: %w", err)
		}
		r.CreatedAt = fromUnixNano(created)
		result = append(result, r)
	}
	return result, rows.Err()
}

// RecentFeedback returns a profile's latest feedback records, most recent first.
func (s *Store) RecentFeedback(ctx context.Context, profileID uuid.UUID, limit int) ([]models.FeedbackRecord, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+feedbackColumns+` FROM workout_feedback f
		 JOIN workout_sessions s ON s.id = f.session_id
		 WHERE s.profile_id = ?
		 ORDER BY f.created_at DESC, f.seq DESC
		 LIMIT ?`, profileID, limit)
	if err != nil {
		return nil, fmt.Errorf("querying recent feedback: %w", err)
	}
	defer rows.Close()
	return scanFeedbackRows(rows)
}

// RecentFeedbackByPaths returns a profile's latest feedback on exercises that
// belong to any of the given progression paths, most recent first.
func (s *Store) RecentFeedbackByPaths(ctx context.Context, profileID uuid.UUID, paths []string, limit int) ([]models.FeedbackRecord, error) {
	if len(paths) == 0 {
		return nil, nil
	}
	args := make([]any, 0, len(paths)+2)
	args = append(args, profileID)
	for _, p := range paths {
		args = append(args, p)
	}
	args = append(args, limit)

	placeholders := strings.TrimSuffix(strings.Repeat("?,", len(paths)), ",")
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+feedbackColumns+` FROM workout_feedback f
		 JOIN workout_sessions s ON s.id = f.session_id
		 JOIN exercises e ON e.id = f.exercise_id
		 WHERE s.profile_id = ? AND e.progression_path IN (`+placeholders+`)
		 ORDER BY f.created_at DESC, f.seq DESC
		 LIMIT ?`, args...)
	if err != nil {
		return nil, fmt.Errorf("querying path feedback: %w", err)
	}
	defer rows.Close()
	return scanFeedbackRows(rows)
}

// AppendFeedback stores feedback for an existing session and returns the
// session with all feedback attached. Nothing is written when the session is
// unknown.
func (s *Store) AppendFeedback(ctx context.Context, sessionID uuid.UUID, records []models.FeedbackRecord) (*models.WorkoutSession, error) {
	var sess *models.WorkoutSession
	err := s.inTx(ctx, func(tx *sql.Tx) error {
		var one int
		err := tx.QueryRowContext(ctx,
			`SELECT 1 FROM workout_sessions WHERE id = ?`, sessionID).Scan(&one)
		if errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("session %s: %w", sessionID, models.ErrSessionNotFound)
		}
		if err != nil {
			return fmt.Errorf("checking session: %w", err)
		}
		if err := checkItems(ctx, tx, sessionID, records); err != nil {
			return err
		}

		for _, r := range records {
			_, err := tx.ExecContext(ctx,
				`INSERT INTO workout_feedback (id, session_id, exercise_id, avg_rpe, completed_sets,
				 completed_reps, difficulty, notes, created_at)
				 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
				r.ID, sessionID, r.ExerciseID, r.AvgRPE, r.CompletedSets,
				r.CompletedReps, r.Difficulty, r.Notes, unixNano(r.CreatedAt))
			if err != nil {
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

func checkItems(ctx context.Context, tx *sql.Tx, sessionID uuid.UUID, records []models.FeedbackRecord) error {
	rows, err := tx.QueryContext(ctx,
		`SELECT exercise_id FROM session_items WHERE session_id = ?`, sessionID)
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
		return err
	}
	return models.CheckSessionExercises(items, records)
}
