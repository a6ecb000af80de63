package mcp

import (
	"context"

	"github.com/andreasknopke/MyWorkout/internal/engine"
	"github.com/andreasknopke/MyWorkout/internal/models"
	"github.com/google/uuid"
)

// DataSource is what the MCP tools need from the workout engine. Local serves
// it in-process; HTTPClient forwards to a running myworkout server.
type DataSource interface {
	Generate(ctx context.Context, req models.GenerateRequest) (*models.WorkoutSession, error)
	RecordFeedback(ctx context.Context, sub models.FeedbackSubmission) (*models.WorkoutSession, error)
	Readiness(ctx context.Context, profileID uuid.UUID) (*engine.Readiness, error)
	Profile(ctx context.Context, id uuid.UUID) (*models.Profile, error)
	Exercises(ctx context.Context) ([]models.Exercise, error)
	Session(ctx context.Context, id uuid.UUID) (*models.WorkoutSession, error)
}

// SessionReader loads a stored session with items and feedback.
type SessionReader interface {
	GetSession(ctx context.Context, id uuid.UUID) (*models.WorkoutSession, error)
}

// Local runs the engine in-process over a local store.
type Local struct {
	*engine.Engine
	Sessions SessionReader
}

// Compile-time check: Local satisfies DataSource.
var _ DataSource = Local{}

// Session returns a stored session.
func (l Local) Session(ctx context.Context, id uuid.UUID) (*models.WorkoutSession, error) {
	return l.Sessions.GetSession(ctx, id)
}
