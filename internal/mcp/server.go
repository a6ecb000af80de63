package mcp

import (
	"context"
	"log/slog"
	"time"

	"github.com/andreasknopke/MyWorkout/internal/models"
	"github.com/google/uuid"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

type contextKey int

const profileIDKey contextKey = iota

// ProfileIDFromContext returns the profile injected by the transport layer,
// or the default profile.
func ProfileIDFromContext(ctx context.Context) uuid.UUID {
	if id, ok := ctx.Value(profileIDKey).(uuid.UUID); ok && id != uuid.Nil {
		return id
	}
	return models.DefaultProfileID
}

// WithProfileID returns a context whose tools act on the given profile unless
// a call names another.
func WithProfileID(ctx context.Context, id uuid.UUID) context.Context {
	return context.WithValue(ctx, profileIDKey, id)
}

// New creates an MCP server with all tools and resources registered.
func New(ds DataSource, version string, log *slog.Logger) *server.MCPServer {
	s := server.NewMCPServer("MyWorkout", version,
		server.WithToolCapabilities(false),
		server.WithResourceCapabilities(false, false),
		server.WithInstructions("MyWorkout home training coach. Generate adaptive workouts, record how they went, "+
			"and check readiness and the weekly plan. Sessions get lighter automatically when recent feedback shows fatigue."),
	)

	h := newHandlers(ds, log)

	s.AddTools(
		server.ServerTool{Tool: toolGenerateWorkout, Handler: h.generateWorkout},
		server.ServerTool{Tool: toolRecordFeedback, Handler: h.recordFeedback},
		server.ServerTool{Tool: toolGetWorkout, Handler: h.getWorkout},
		server.ServerTool{Tool: toolGetReadiness, Handler: h.getReadiness},
		server.ServerTool{Tool: toolGetWeeklySchedule, Handler: h.getWeeklySchedule},
		server.ServerTool{Tool: toolListExercises, Handler: h.listExercises},
	)

	s.AddResources(
		server.ServerResource{Resource: resExerciseCatalog, Handler: h.exerciseCatalog},
		server.ServerResource{Resource: resProfile, Handler: h.profile},
		server.ServerResource{Resource: resReadiness, Handler: h.readiness},
	)

	return s
}

// handlers holds dependencies for MCP tool/resource handlers.
type handlers struct {
	ds  DataSource
	log *slog.Logger
	now func() time.Time
}

func newHandlers(ds DataSource, log *slog.Logger) *handlers {
	return &handlers{ds: ds, log: log, now: time.Now}
}

var resExerciseCatalog = mcp.NewResource(
	"myworkout://exercise_catalog",
	"Exercise Catalog",
	mcp.WithResourceDescription("All exercises with equipment, contraindications and progression paths"),
	mcp.WithMIMEType("application/json"),
)

var resProfile = mcp.NewResource(
	"myworkout://profile",
	"Training Profile",
	mcp.WithResourceDescription("The active training profile: goal, schedule, equipment and limitations"),
	mcp.WithMIMEType("application/json"),
)

var resReadiness = mcp.NewResource(
	"myworkout://readiness",
	"Readiness",
	mcp.WithResourceDescription("Current fatigue summary, block week and phase of the active profile"),
	mcp.WithMIMEType("application/json"),
)
