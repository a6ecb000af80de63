package models

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// WorkoutSession is a generated session. Only feedback is attached after creation.
type WorkoutSession struct {
	ID           uuid.UUID        `json:"id"`
	ProfileID    uuid.UUID        `json:"profile_id"`
	Goal         Goal             `json:"goal"`
	DurationMin  int              `json:"duration_min"`
	BlockWeek    int              `json:"block_week"`
	Phase        Phase            `json:"phase"`
	FatigueScore float64          `json:"fatigue_score"`
	Deload       bool             `json:"deload"`
	TargetRPE    float64          `json:"target_rpe"`
	Items        []SessionItem    `json:"items"`
	Feedback     []FeedbackRecord `json:"feedback,omitempty"`
	CreatedAt    time.Time        `json:"created_at"`
}

// SessionItem is one prescribed exercise within a session.
type SessionItem struct {
	Position     int       `json:"position"`
	ExerciseID   uuid.UUID `json:"exercise_id"`
	Exercise     *Exercise `json:"exercise,omitempty"`
	Sets         int       `json:"sets"`
	RepsMin      int       `json:"reps_min"`
	RepsMax      int       `json:"reps_max"`
	RestSec      int       `json:"rest_sec"`
	LoadModifier float64   `json:"load_modifier"`
}

// FeedbackRecord is post-workout feedback for one exercise. Append-only.
type FeedbackRecord struct {
	ID            uuid.UUID  `json:"id"`
	SessionID     uuid.UUID  `json:"session_id"`
	ExerciseID    uuid.UUID  `json:"exercise_id"`
	AvgRPE        float64    `json:"avg_rpe"`
	CompletedSets int        `json:"completed_sets"`
	CompletedReps int        `json:"completed_reps"`
	Difficulty    Difficulty `json:"difficulty"`
	Notes         string     `json:"notes,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
}

// IsHard reports whether the record counts towards accumulated fatigue.
func (f FeedbackRecord) IsHard() bool {
	return f.AvgRPE >= 8.5 || f.Difficulty == DifficultyTooHard
}

// FeedbackInput is one submitted feedback entry before it is stored.
type FeedbackInput struct {
	ExerciseID    uuid.UUID  `json:"exercise_id" validate:"required"`
	AvgRPE        float64    `json:"avg_rpe" validate:"gte=1,lte=10"`
	CompletedSets int        `json:"completed_sets" validate:"gte=1,lte=10"`
	CompletedReps int        `json:"completed_reps" validate:"gte=1,lte=200"`
	Difficulty    Difficulty `json:"difficulty" validate:"required,oneof=TOO_EASY JUST_RIGHT TOO_HARD"`
	Notes         string     `json:"notes,omitempty" validate:"max=400"`
}

// FeedbackSubmission groups the feedback for one session.
type FeedbackSubmission struct {
	SessionID uuid.UUID       `json:"session_id" validate:"required"`
	Feedback  []FeedbackInput `json:"feedback" validate:"required,min=1,dive"`
}

// Validate rejects out-of-range values. Errors match ErrInvalidFeedback.
func (s *FeedbackSubmission) Validate() error {
	return validateStruct(s, ErrInvalidFeedback)
}

// Records converts the submission into records stamped with ids and createdAt.
// Entries share the timestamp; their order is kept by the store.
func (s *FeedbackSubmission) Records(createdAt time.Time) []FeedbackRecord {
	out := make([]FeedbackRecord, len(s.Feedback))
	for i, in := range s.Feedback {
		out[i] = FeedbackRecord{
			ID:            uuid.New(),
			SessionID:     s.SessionID,
			ExerciseID:    in.ExerciseID,
			AvgRPE:        in.AvgRPE,
			CompletedSets: in.CompletedSets,
			CompletedReps: in.CompletedReps,
			Difficulty:    in.Difficulty,
			Notes:         in.Notes,
			CreatedAt:     createdAt,
		}
	}
	return out
}

// CheckSessionExercises rejects records naming an exercise that is not one of
// the session's items. Errors match ErrInvalidFeedback.
func CheckSessionExercises(items map[uuid.UUID]bool, records []FeedbackRecord) error {
	var fields []FieldError
	for i, r := range records {
		if !items[r.ExerciseID] {
			fields = append(fields, FieldError{
				Field: fmt.Sprintf("feedback[%d].exercise_id", i),
				Rule:  "in_session",
			})
		}
	}
	if len(fields) == 0 {
		return nil
	}
	return &ValidationError{Kind: ErrInvalidFeedback, Fields: fields}
}
