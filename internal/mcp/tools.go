package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/andreasknopke/MyWorkout/internal/models"
	"github.com/andreasknopke/MyWorkout/internal/schedule"
	"github.com/google/uuid"
	"github.com/mark3labs/mcp-go/mcp"
)

// profileArg resolves the optional profile_id argument, falling back to the
// profile carried by the context.
func profileArg(ctx context.Context, req mcp.CallToolRequest) (uuid.UUID, error) {
	raw := req.GetString("profile_id", "")
	if raw == "" {
		return ProfileIDFromContext(ctx), nil
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, errors.New("profile_id must be a UUID")
	}
	return id, nil
}

func jsonResult(v any) *mcp.CallToolResult {
	result, err := mcp.NewToolResultJSON(v)
	if err != nil {
		return mcp.NewToolResultError("serialization failed")
	}
	return result
}

// --- Tool definitions ---

var toolGenerateWorkout = mcp.NewTool("generate_workout",
	mcp.WithDescription("Generate and store a new workout session for a profile. Exercises respect the profile's equipment "+
		"and limitations, move along progression paths based on past feedback, and load is reduced when fatigue is high."),
	mcp.WithString("profile_id", mcp.Description("Profile UUID (default: the active profile)")),
	mcp.WithNumber("duration_min", mcp.Description("Session length in minutes, 15-120 (default: profile setting)")),
	mcp.WithString("goal", mcp.Description("Override the goal for this session only"),
		mcp.Enum(string(models.GoalHypertrophy), string(models.GoalStrength), string(models.GoalEndurance))),
	mcp.WithArray("equipment", mcp.Description("Override available equipment for this session only, e.g. [\"BODYWEIGHT\", \"DUMBBELL\"]"),
		mcp.Items(map[string]any{"type": "string"})),
	mcp.WithArray("limitations", mcp.Description("Override limitations for this session only, e.g. [\"KNEE_PAIN\"]"),
		mcp.Items(map[string]any{"type": "string"})),
	mcp.WithNumber("seed", mcp.Description("Random seed for a reproducible selection")),
)

var toolRecordFeedback = mcp.NewTool("record_feedback",
	mcp.WithDescription("Record how each exercise of a session went. Feedback drives fatigue detection and progression."),
	mcp.WithString("session_id", mcp.Required(), mcp.Description("Session UUID returned by generate_workout")),
	mcp.WithArray("feedback", mcp.Required(),
		mcp.Description("One entry per exercise: exercise_id, avg_rpe (1-10), completed_sets, completed_reps, "+
			"difficulty (TOO_EASY, JUST_RIGHT, TOO_HARD) and optional notes"),
		mcp.Items(map[string]any{
			"type": "object",
			"properties": map[string]any{
				"exercise_id":    map[string]any{"type": "string"},
				"avg_rpe":        map[string]any{"type": "number"},
				"completed_sets": map[string]any{"type": "integer"},
				"completed_reps": map[string]any{"type": "integer"},
				"difficulty":     map[string]any{"type": "string", "enum": []string{"TOO_EASY", "JUST_RIGHT", "TOO_HARD"}},
				"notes":          map[string]any{"type": "string"},
			},
			"required": []string{"exercise_id", "avg_rpe", "completed_sets", "completed_reps", "difficulty"},
		})),
)

var toolGetWorkout = mcp.NewTool("get_workout",
	mcp.WithDescription("Get a stored session with its exercises, prescriptions and recorded feedback."),
	mcp.WithString("session_id", mcp.Required(), mcp.Description("Session UUID")),
)

var toolGetReadiness = mcp.NewTool("get_readiness",
	mcp.WithDescription("Get the fatigue summary, block week, phase and target RPE without generating a session."),
	mcp.WithString("profile_id", mcp.Description("Profile UUID (default: the active profile)")),
)

var toolGetWeeklySchedule = mcp.NewTool("get_weekly_schedule",
	mcp.WithDescription("Get the weekly training plan: which weekdays are training days and each day's focus."),
	mcp.WithString("profile_id", mcp.Description("Profile UUID (default: the active profile)")),
	mcp.WithNumber("weekday", mcp.Description("Day to mark as today, 0 = Sunday ... 6 = Saturday (default: today)")),
)

var toolListExercises = mcp.NewTool("list_exercises",
	mcp.WithDescription("List catalog exercises, optionally filtered by movement pattern or progression path."),
	mcp.WithString("movement", mcp.Description("Movement pattern filter"),
		mcp.Enum(string(models.MovementPush), string(models.MovementPull), string(models.MovementLegs),
			string(models.MovementCore), string(models.MovementConditioning), string(models.MovementStretching))),
	mcp.WithString("path", mcp.Description("Progression path filter, e.g. pushup")),
)

// --- Tool handlers ---

func (h *handlers) generateWorkout(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := profileArg(ctx, req)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	gen := models.GenerateRequest{
		ProfileID:   id,
		DurationMin: req.GetInt("duration_min", 0),
		Goal:        models.Goal(strings.ToUpper(req.GetString("goal", ""))),
	}
	if v := req.GetStringSlice("equipment", nil); v != nil {
		gen.Equipment = models.ParseEquipment(v)
	}
	if v := req.GetStringSlice("limitations", nil); v != nil {
		gen.Limitations = models.ParseLimitations(v)
	}
	if seed := req.GetInt("seed", -1); seed >= 0 {
		s := uint64(seed)
		gen.Seed = &s
	}

	sess, err := h.ds.Generate(ctx, gen)
	if err != nil {
		h.log.Error("mcp generate_workout", "error", err)
		return mcp.NewToolResultError("generation failed: " + err.Error()), nil
	}
	return jsonResult(sess), nil
}

func (h *handlers) recordFeedback(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if _, err := req.RequireString("session_id"); err != nil {
		return mcp.NewToolResultError("session_id parameter is required"), nil
	}

	raw, err := json.Marshal(req.GetArguments())
	if err != nil {
		return mcp.NewToolResultError("invalid arguments"), nil
	}
	var sub models.FeedbackSubmission
	if err := json.Unmarshal(raw, &sub); err != nil {
		return mcp.NewToolResultError("invalid feedback: " + err.Error()), nil
	}

	sess, err := h.ds.RecordFeedback(ctx, sub)
	if err != nil {
		h.log.Error("mcp record_feedback", "error", err)
		return mcp.NewToolResultError("recording feedback failed: " + err.Error()), nil
	}
	return jsonResult(sess), nil
}

func (h *handlers) getWorkout(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	raw, err := req.RequireString("session_id")
	if err != nil {
		return mcp.NewToolResultError("session_id parameter is required"), nil
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return mcp.NewToolResultError("session_id must be a UUID"), nil
	}

	sess, err := h.ds.Session(ctx, id)
	if err != nil {
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}
	return jsonResult(sess), nil
}

func (h *handlers) getReadiness(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := profileArg(ctx, req)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	r, err := h.ds.Readiness(ctx, id)
	if err != nil {
		h.log.Error("mcp get_readiness", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}
	return jsonResult(r), nil
}

func (h *handlers) getWeeklySchedule(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := profileArg(ctx, req)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	today := h.now().Weekday()
	if wd := req.GetInt("weekday", -1); wd >= 0 {
		if wd > 6 {
			return mcp.NewToolResultError("weekday must be 0-6"), nil
		}
		today = time.Weekday(wd)
	}

	p, err := h.ds.Profile(ctx, id)
	if err != nil {
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}
	return jsonResult(schedule.For(p.ID, p.TrainingDaysPerWeek, today)), nil
}

func (h *handlers) listExercises(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	list, err := h.ds.Exercises(ctx)
	if err != nil {
		h.log.Error("mcp list_exercises", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}

	movement := models.MovementPattern(strings.ToUpper(req.GetString("movement", "")))
	path := req.GetString("path", "")
	out := make([]models.Exercise, 0, len(list))
	for _, ex := range list {
		if movement != "" && ex.Movement != movement {
			continue
		}
		if path != "" && ex.ProgressionPath != path {
			continue
		}
		out = append(out, ex)
	}
	return jsonResult(out), nil
}
