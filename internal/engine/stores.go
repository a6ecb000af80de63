package engine

import (
	"context"
	"time"

	"github.com/andreasknopke/MyWorkout/internal/models"
	"github.com/google/uuid"
)

// ProfileStore reads training profiles. GetProfile returns models.ErrProfileNotFound
// for unknown ids.
type ProfileStore interface {
	GetProfile(ctx context.Context, id uuid.UUID) (*models.Profile, error)
}

// CatalogStore lists the full exercise catalog with equipment and
// contraindication tags populated.
type CatalogStore interface {
	ListExercises(ctx context.Context) ([]models.Exercise, error)
}

// FeedbackStore reads and appends post-workout feedback. Reads are ordered
// most-recent-first. AppendFeedback returns models.ErrSessionNotFound when the
// session does not exist and stores nothing in that case.
type FeedbackStore interface {
	RecentFeedback(ctx context.Context, profileID uuid.UUID, limit int) ([]models.FeedbackRecord, error)
	RecentFeedbackByPaths(ctx context.Context, profileID uuid.UUID, paths []string, limit int) ([]models.FeedbackRecord, error)
	AppendFeedback(ctx context.Context, sessionID uuid.UUID, records []models.FeedbackRecord) (*models.WorkoutSession, error)
}

// SessionStore counts and persists generated sessions. CreateSession writes
// the session and all of its items or nothing.
type SessionStore interface {
	CountSessions(ctx context.Context, profileID uuid.UUID) (int, error)
	CreateSession(ctx context.Context, s *models.WorkoutSession) (*models.WorkoutSession, error)
}

// Recorder receives generation outcomes. internal/metrics implements it.
type Recorder interface {
	SessionGenerated(phase models.Phase, deloadTrigger string, elapsed time.Duration)
	GenerationFailed(kind string)
	FeedbackRecorded(n int)
}

type nopRecorder struct{}

func (nopRecorder) SessionGenerated(models.Phase, string, time.Duration) {}
func (nopRecorder) GenerationFailed(string)                              {}
func (nopRecorder) FeedbackRecorded(int)                                 {}
