package engine

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/andreasknopke/MyWorkout/internal/models"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// DefaultDurationMin is the session length used when neither the request nor
// the profile sets one.
const DefaultDurationMin = 40

// Options tunes the engine. Zero values fall back to the package defaults.
type Options struct {
	FeedbackWindow     int
	PathFeedbackLimit  int
	DefaultDurationMin int
}

func (o Options) withDefaults() Options {
	if o.FeedbackWindow <= 0 {
		o.FeedbackWindow = DefaultFeedbackWindow
	}
	if o.PathFeedbackLimit <= 0 {
		o.PathFeedbackLimit = DefaultPathFeedbackLimit
	}
	if o.DefaultDurationMin <= 0 {
		o.DefaultDurationMin = DefaultDurationMin
	}
	return o
}

// Deps are the collaborators an Engine reads from and writes to.
type Deps struct {
	Profiles ProfileStore
	Catalog  CatalogStore
	Feedback FeedbackStore
	Sessions SessionStore
	Recorder Recorder
	Logger   *slog.Logger
}

// Engine turns a profile, the exercise catalog and feedback history into the
// next workout session. It keeps no state between calls, so concurrent calls
// are independent; callers that need one generation per profile at a time
// must serialize them.
type Engine struct {
	profiles ProfileStore
	catalog  CatalogStore
	feedback FeedbackStore
	sessions SessionStore
	rec      Recorder
	log      *slog.Logger
	opts     Options
	now      func() time.Time
}

// New creates an Engine.
func New(deps Deps, opts Options) *Engine {
	rec := deps.Recorder
	if rec == nil {
		rec = nopRecorder{}
	}
	log := deps.Logger
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return &Engine{
		profiles: deps.Profiles,
		catalog:  deps.Catalog,
		feedback: deps.Feedback,
		sessions: deps.Sessions,
		rec:      rec,
		log:      log,
		opts:     opts.withDefaults(),
		now:      time.Now,
	}
}

// snapshot is the immutable input of one generation call.
type snapshot struct {
	profile  *models.Profile
	catalog  []models.Exercise
	recent   []models.FeedbackRecord
	sessions int
}

// load fetches profile, catalog, recent feedback and session count concurrently.
func (e *Engine) load(ctx context.Context, profileID uuid.UUID) (*snapshot, error) {
	var snap snapshot
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		p, err := e.profiles.GetProfile(gctx, profileID)
		if err != nil {
			return fmt.Errorf("loading profile: %w", err)
		}
		snap.profile = p
		return nil
	})
	g.Go(func() error {
		list, err := e.catalog.ListExercises(gctx)
		if err != nil {
			return fmt.Errorf("loading catalog: %w", err)
		}
		snap.catalog = list
		return nil
	})
	g.Go(func() error {
		recs, err := e.feedback.RecentFeedback(gctx, profileID, e.opts.FeedbackWindow)
		if err != nil {
			return fmt.Errorf("loading recent feedback: %w", err)
		}
		snap.recent = recs
		return nil
	})
	g.Go(func() error {
		n, err := e.sessions.CountSessions(gctx, profileID)
		if err != nil {
			return fmt.Errorf("counting sessions: %w", err)
		}
		snap.sessions = n
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &snap, nil
}

// Generate builds, persists and returns the next session for the requested
// profile. The profile must already exist.
func (e *Engine) Generate(ctx context.Context, req models.GenerateRequest) (*models.WorkoutSession, error) {
	start := e.now()
	if err := req.Validate(); err != nil {
		e.rec.GenerationFailed("invalid_request")
		return nil, err
	}

	sess, err := e.generate(ctx, req)
	if err != nil {
		e.rec.GenerationFailed(failureKind(err))
		return nil, err
	}

	trigger := ""
	switch {
	case sess.Phase == models.PhaseDeload:
		trigger = "phase"
	case sess.Deload:
		trigger = "readiness"
	}
	e.rec.SessionGenerated(sess.Phase, trigger, e.now().Sub(start))
	e.log.Info("session generated",
		"session_id", sess.ID,
		"profile_id", sess.ProfileID,
		"phase", sess.Phase,
		"week", sess.BlockWeek,
		"deload", sess.Deload,
		"items", len(sess.Items),
	)
	return sess, nil
}

func (e *Engine) generate(ctx context.Context, req models.GenerateRequest) (*models.WorkoutSession, error) {
	snap, err := e.load(ctx, req.ProfileID)
	if err != nil {
		return nil, err
	}

	profile := applyOverrides(*snap.profile, req)
	eligible, err := Eligible(snap.catalog, &profile)
	if err != nil {
		return nil, err
	}

	summary := Summarize(snap.recent)
	period := PeriodFor(snap.sessions, profile.TrainingDaysPerWeek, profile.CycleLengthWeeks)

	duration := req.DurationMin
	if duration == 0 {
		duration = profile.DurationMin
	}
	if duration == 0 {
		duration = e.opts.DefaultDurationMin
	}
	count := TargetCount(duration)

	rng := NewShuffler(req.Seed)
	skeleton := Skeleton(eligible, count, rng)

	latest := map[string]models.Difficulty{}
	if paths := ProgressionPaths(skeleton); len(paths) > 0 {
		recs, err := e.feedback.RecentFeedbackByPaths(ctx, profile.ID, paths, e.opts.PathFeedbackLimit)
		if err != nil {
			return nil, fmt.Errorf("loading path feedback: %w", err)
		}
		latest = LatestDifficultyByPath(recs, PathIndex(snap.catalog))
	}
	selection := Refine(skeleton, eligible, count, latest, rng)

	sess := Assemble(Plan{
		ProfileID:   profile.ID,
		Goal:        profile.Goal,
		DurationMin: duration,
		Period:      period,
		Summary:     summary,
		Rx:          Prescribe(profile.Goal, period.Phase, summary),
	}, selection)
	sess.CreatedAt = e.now().UTC()

	created, err := e.sessions.CreateSession(ctx, sess)
	if err != nil {
		return nil, fmt.Errorf("creating session: %w", err)
	}
	return created, nil
}

// applyOverrides returns a copy of p with the request's goal, equipment and
// limitations substituted for this generation only.
func applyOverrides(p models.Profile, req models.GenerateRequest) models.Profile {
	if req.Goal != "" {
		p.Goal = req.Goal
	}
	if req.Equipment != nil {
		p.Equipment = models.NormalizeEquipment(req.Equipment)
	}
	if req.Limitations != nil {
		p.Limitations = req.Limitations
	}
	return p
}

func failureKind(err error) string {
	switch {
	case errors.Is(err, models.ErrProfileNotFound):
		return "profile_not_found"
	case errors.Is(err, models.ErrNoEligibleExercises):
		return "no_eligible_exercises"
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return "canceled"
	}
	return "store"
}

// Readiness is a profile's current fatigue and block position.
type Readiness struct {
	ProfileID    uuid.UUID      `json:"profile_id"`
	SessionCount int            `json:"session_count"`
	Period       Period         `json:"period"`
	Summary      FatigueSummary `json:"summary"`
	Deload       bool           `json:"deload"`
	TargetRPE    float64        `json:"target_rpe"`
}

// Readiness reports the fatigue summary and period without generating anything.
func (e *Engine) Readiness(ctx context.Context, profileID uuid.UUID) (*Readiness, error) {
	if profileID == uuid.Nil {
		profileID = models.DefaultProfileID
	}
	var (
		profile *models.Profile
		recent  []models.FeedbackRecord
		count   int
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		p, err := e.profiles.GetProfile(gctx, profileID)
		if err != nil {
			return fmt.Errorf("loading profile: %w", err)
		}
		profile = p
		return nil
	})
	g.Go(func() error {
		recs, err := e.feedback.RecentFeedback(gctx, profileID, e.opts.FeedbackWindow)
		if err != nil {
			return fmt.Errorf("loading recent feedback: %w", err)
		}
		recent = recs
		return nil
	})
	g.Go(func() error {
		n, err := e.sessions.CountSessions(gctx, profileID)
		if err != nil {
			return fmt.Errorf("counting sessions: %w", err)
		}
		count = n
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	summary := Summarize(recent)
	period := PeriodFor(count, profile.TrainingDaysPerWeek, profile.CycleLengthWeeks)
	return &Readiness{
		ProfileID:    profileID,
		SessionCount: count,
		Period:       period,
		Summary:      summary,
		Deload:       summary.Deload || period.Phase == models.PhaseDeload,
		TargetRPE:    Prescribe(profile.Goal, period.Phase, summary).TargetRPE,
	}, nil
}

// RecordFeedback validates and appends feedback for a session and returns the
// session with all of its feedback attached. Invalid input never reaches the
// store.
func (e *Engine) RecordFeedback(ctx context.Context, sub models.FeedbackSubmission) (*models.WorkoutSession, error) {
	if err := sub.Validate(); err != nil {
		return nil, err
	}
	sess, err := e.feedback.AppendFeedback(ctx, sub.SessionID, sub.Records(e.now().UTC()))
	if err != nil {
		return nil, fmt.Errorf("appending feedback: %w", err)
	}
	e.rec.FeedbackRecorded(len(sub.Feedback))
	e.log.Info("feedback recorded", "session_id", sub.SessionID, "records", len(sub.Feedback))
	return sess, nil
}

// Exercises returns the full catalog.
func (e *Engine) Exercises(ctx context.Context) ([]models.Exercise, error) {
	list, err := e.catalog.ListExercises(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing exercises: %w", err)
	}
	return list, nil
}

// Profile returns a profile by id, or the default profile for uuid.Nil.
func (e *Engine) Profile(ctx context.Context, id uuid.UUID) (*models.Profile, error) {
	if id == uuid.Nil {
		id = models.DefaultProfileID
	}
	p, err := e.profiles.GetProfile(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("loading profile: %w", err)
	}
	return p, nil
}
