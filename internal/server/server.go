package server

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/andreasknopke/MyWorkout/internal/engine"
	"github.com/andreasknopke/MyWorkout/internal/metrics"
	"github.com/andreasknopke/MyWorkout/internal/models"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// Store is the persistence the HTTP layer needs beyond the engine.
type Store interface {
	ListProfiles(ctx context.Context) ([]models.Profile, error)
	CreateProfile(ctx context.Context, in models.NewProfile) (*models.Profile, error)
	UpdateProfile(ctx context.Context, id uuid.UUID, upd models.ProfileUpdate) (*models.Profile, error)
	EnsureDefaultProfile(ctx context.Context, goal models.Goal) (*models.Profile, error)
	GetSession(ctx context.Context, id uuid.UUID) (*models.WorkoutSession, error)
	SetExerciseVideo(ctx context.Context, id uuid.UUID, upd models.VideoUpdate) (*models.Exercise, error)
}

// Server holds dependencies for HTTP handlers.
type Server struct {
	engine  *engine.Engine
	store   Store
	metrics *metrics.Manager
	log     *slog.Logger
	apiKey  string
	whois   WhoIsClient
	router  chi.Router
	now     func() time.Time

	catalogChanged func()
}

// New creates a new Server with all routes configured. m may be nil.
func New(eng *engine.Engine, store Store, m *metrics.Manager, apiKey string, log *slog.Logger) *Server {
	s := &Server{
		engine:  eng,
		store:   store,
		metrics: m,
		log:     log,
		apiKey:  apiKey,
		router:  chi.NewRouter(),
		now:     time.Now,
	}
	s.routes()
	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// OnCatalogChange registers fn to run after a catalog entry is edited, so a
// cache in front of the catalog can drop its copy.
func (s *Server) OnCatalogChange(fn func()) {
	s.catalogChanged = fn
}

// SetTailscale resolves caller identities through the tailnet instead of the
// local dev identity.
func (s *Server) SetTailscale(c WhoIsClient) {
	s.whois = c
}

func (s *Server) routes() {
	s.router.Use(RequestLogging(s.log))
	s.router.Use(CORS)
	if s.metrics != nil {
		s.router.Use(CountRequests(s.metrics))
		s.router.Method(http.MethodGet, "/metrics", s.metrics.Handler())
	}

	s.router.Route("/api/v1", func(r chi.Router) {
		r.Use(s.identity)
		r.Get("/me", s.handleMe)

		r.Get("/exercises", s.handleListExercises)
		r.Get("/profiles", s.handleListProfiles)
		r.Get("/profiles/{id}", s.handleGetProfile)
		r.Get("/profiles/{id}/readiness", s.handleReadiness)
		r.Get("/profiles/{id}/schedule", s.handleSchedule)
		r.Get("/workouts/{id}", s.handleGetWorkout)

		// Writes (API key required)
		r.Group(func(r chi.Router) {
			r.Use(APIKeyAuth(s.apiKey))
			r.Post("/profiles", s.handleCreateProfile)
			r.Patch("/profiles/{id}", s.handleUpdateProfile)
			r.Patch("/exercises/{id}", s.handleSetExerciseVideo)
			r.Post("/workouts/generate", s.handleGenerate)
			r.Post("/workouts/feedback", s.handleFeedback)
		})
	})
}

// identity picks the tailnet identity middleware once SetTailscale was called.
func (s *Server) identity(next http.Handler) http.Handler {
	dev := DevIdentity(next)
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s.whois == nil {
			dev.ServeHTTP(w, r)
			return
		}
		TailscaleIdentity(s.whois, s.log)(next).ServeHTTP(w, r)
	})
}
