package server

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/andreasknopke/MyWorkout/internal/engine"
	"github.com/andreasknopke/MyWorkout/internal/localstore"
	"github.com/andreasknopke/MyWorkout/internal/metrics"
	"github.com/andreasknopke/MyWorkout/internal/models"
	"github.com/andreasknopke/MyWorkout/internal/schedule"
	"github.com/google/uuid"
)

const testKey = "secret"

func intp(n int) *int { return &n }

func newTestServer(t *testing.T) (*Server, *localstore.Store) {
	t.Helper()
	store, err := localstore.Open(t.TempDir())
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	catalog := []models.Exercise{
		{ID: uuid.New(), Slug: "pushup", Name: "Push-up", Movement: models.MovementPush, ProgressionPath: "pushup", ProgressionStep: intp(1), MinReps: 5, MaxReps: 20},
		{ID: uuid.New(), Slug: "row", Name: "Band Row", Movement: models.MovementPull, Equipment: []models.Equipment{models.EquipmentResistanceBand}, MinReps: 8, MaxReps: 20},
		{ID: uuid.New(), Slug: "squat", Name: "Squat", Movement: models.MovementLegs, MinReps: 8, MaxReps: 25},
		{ID: uuid.New(), Slug: "lunge", Name: "Lunge", Movement: models.MovementLegs, Contraindications: []models.Limitation{models.LimitationKneePain}, MinReps: 8, MaxReps: 20},
		{ID: uuid.New(), Slug: "plank", Name: "Plank", Movement: models.MovementCore, MinReps: 20, MaxReps: 60},
		{ID: uuid.New(), Slug: "jacks", Name: "Jumping Jack", Movement: models.MovementConditioning, MinReps: 20, MaxReps: 50},
	}
	if _, err := store.UpsertExercises(context.Background(), catalog); err != nil {
		t.Fatalf("UpsertExercises: %v", err)
	}

	m, _ := metrics.NewTestManager()
	log := slog.New(slog.DiscardHandler)
	eng := engine.New(engine.Deps{
		Profiles: store, Catalog: store, Feedback: store, Sessions: store,
		Recorder: m, Logger: log,
	}, engine.Options{})
	s := New(eng, store, m, testKey, log)
	s.now = func() time.Time { return time.Date(2026, 10, 14, 9, 0, 0, 0, time.UTC) } // Wednesday
	return s, store
}

func do(t *testing.T, s *Server, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encoding body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	if method != http.MethodGet {
		req.Header.Set("X-API-Key", testKey)
	}
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, req)
	return rec
}

func decodeBody[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	if err := json.NewDecoder(rec.Body).Decode(&v); err != nil {
		t.Fatalf("decode error: %v", err)
	}
	return v
}

// TestHandleMeDefault verifies /api/v1/me returns the dev identity when no
// tailnet client is configured.
func TestHandleMeDefault(t *testing.T) {
	s, _ := newTestServer(t)
	rec := do(t, s, http.MethodGet, "/api/v1/me", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	info := decodeBody[UserInfo](t, rec)
	if info.Login != "local" {
		t.Errorf("login = %q, want %q", info.Login, "local")
	}
}

// TestGenerateDefaultProfile verifies a generate call without a profile id
// bootstraps the default profile and persists the session.
func TestGenerateDefaultProfile(t *testing.T) {
	s, _ := newTestServer(t)
	seed := uint64(3)

	rec := do(t, s, http.MethodPost, "/api/v1/workouts/generate", models.GenerateRequest{DurationMin: 25, Seed: &seed})
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201: %s", rec.Code, rec.Body)
	}
	sess := decodeBody[models.WorkoutSession](t, rec)
	if sess.ProfileID != models.DefaultProfileID {
		t.Errorf("profile = %s, want default", sess.ProfileID)
	}
	if len(sess.Items) != 4 {
		t.Errorf("items = %d, want 4", len(sess.Items))
	}

	rec = do(t, s, http.MethodGet, "/api/v1/workouts/"+sess.ID.String(), nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("get status = %d, want 200", rec.Code)
	}
	got := decodeBody[models.WorkoutSession](t, rec)
	if len(got.Items) != 4 || got.Items[0].Exercise == nil {
		t.Errorf("stored items = %+v", got.Items)
	}
}

// TestGenerateOverridesNotSaved verifies request equipment and limitations
// shape one session without changing the stored profile.
func TestGenerateOverridesNotSaved(t *testing.T) {
	s, _ := newTestServer(t)
	req := models.GenerateRequest{
		Equipment:   []models.Equipment{models.EquipmentResistanceBand},
		Limitations: []models.Limitation{models.LimitationKneePain},
	}
	rec := do(t, s, http.MethodPost, "/api/v1/workouts/generate", req)
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201: %s", rec.Code, rec.Body)
	}

	rec = do(t, s, http.MethodGet, "/api/v1/profiles/"+models.DefaultProfileID.String(), nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("profile status = %d", rec.Code)
	}
	p := decodeBody[models.Profile](t, rec)
	if len(p.Equipment) != 1 || p.Equipment[0] != models.EquipmentBodyweight {
		t.Errorf("equipment = %v, want [BODYWEIGHT]", p.Equipment)
	}
	if len(p.Limitations) != 0 {
		t.Errorf("limitations = %v, want none", p.Limitations)
	}
}

// TestGenerateErrors verifies domain errors map to status codes.
func TestGenerateErrors(t *testing.T) {
	s, store := newTestServer(t)
	ctx := context.Background()
	p, err := store.CreateProfile(ctx, models.NewProfile{
		Name:              "Kneepain",
		ExcludedExercises: []string{"pushup", "squat", "plank", "jacks"},
		Limitations:       []models.Limitation{models.LimitationKneePain},
	})
	if err != nil {
		t.Fatalf("CreateProfile: %v", err)
	}

	tests := []struct {
		name string
		req  models.GenerateRequest
		want int
	}{
		{"unknown profile", models.GenerateRequest{ProfileID: uuid.New()}, http.StatusNotFound},
		{"no eligible", models.GenerateRequest{ProfileID: p.ID}, http.StatusUnprocessableEntity},
		{"duration too short", models.GenerateRequest{DurationMin: 5}, http.StatusBadRequest},
		{"bad goal", models.GenerateRequest{Goal: "POWER"}, http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(t, s, http.MethodPost, "/api/v1/workouts/generate", tt.req)
			if rec.Code != tt.want {
				t.Errorf("status = %d, want %d: %s", rec.Code, tt.want, rec.Body)
			}
		})
	}
}

// TestFeedbackFlow verifies feedback validation, unknown sessions and a
// successful submission shifting readiness into deload.
func TestFeedbackFlow(t *testing.T) {
	s, _ := newTestServer(t)
	rec := do(t, s, http.MethodPost, "/api/v1/workouts/generate", models.GenerateRequest{})
	if rec.Code != http.StatusCreated {
		t.Fatalf("generate status = %d: %s", rec.Code, rec.Body)
	}
	sess := decodeBody[models.WorkoutSession](t, rec)

	bad := models.FeedbackSubmission{SessionID: sess.ID, Feedback: []models.FeedbackInput{{
		ExerciseID: sess.Items[0].ExerciseID, AvgRPE: 11, CompletedSets: 3, CompletedReps: 10,
		Difficulty: models.DifficultyTooHard,
	}}}
	rec = do(t, s, http.MethodPost, "/api/v1/workouts/feedback", bad)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("invalid status = %d, want 400", rec.Code)
	}
	body := decodeBody[errorResponse](t, rec)
	if len(body.Fields) != 1 || body.Fields[0].Field != "feedback[0].avg_rpe" {
		t.Errorf("fields = %+v, want feedback[0].avg_rpe", body.Fields)
	}

	foreign := models.FeedbackSubmission{SessionID: sess.ID, Feedback: []models.FeedbackInput{{
		ExerciseID: uuid.New(), AvgRPE: 7, CompletedSets: 3, CompletedReps: 10,
		Difficulty: models.DifficultyJustRight,
	}}}
	rec = do(t, s, http.MethodPost, "/api/v1/workouts/feedback", foreign)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("foreign exercise status = %d, want 400: %s", rec.Code, rec.Body)
	}
	body = decodeBody[errorResponse](t, rec)
	if len(body.Fields) != 1 || body.Fields[0].Field != "feedback[0].exercise_id" {
		t.Errorf("fields = %+v, want feedback[0].exercise_id", body.Fields)
	}

	unknown := models.FeedbackSubmission{SessionID: uuid.New(), Feedback: []models.FeedbackInput{{
		ExerciseID: sess.Items[0].ExerciseID, AvgRPE: 7, CompletedSets: 3, CompletedReps: 10,
		Difficulty: models.DifficultyJustRight,
	}}}
	rec = do(t, s, http.MethodPost, "/api/v1/workouts/feedback", unknown)
	if rec.Code != http.StatusNotFound {
		t.Errorf("unknown session status = %d, want 404", rec.Code)
	}

	var fb []models.FeedbackInput
	for _, it := range sess.Items {
		fb = append(fb, models.FeedbackInput{
			ExerciseID: it.ExerciseID, AvgRPE: 9, CompletedSets: 3, CompletedReps: 12,
			Difficulty: models.DifficultyTooHard,
		})
	}
	rec = do(t, s, http.MethodPost, "/api/v1/workouts/feedback", models.FeedbackSubmission{SessionID: sess.ID, Feedback: fb})
	if rec.Code != http.StatusOK {
		t.Fatalf("feedback status = %d: %s", rec.Code, rec.Body)
	}
	updated := decodeBody[models.WorkoutSession](t, rec)
	if len(updated.Feedback) != len(fb) {
		t.Errorf("feedback = %d, want %d", len(updated.Feedback), len(fb))
	}

	rec = do(t, s, http.MethodGet, "/api/v1/profiles/"+models.DefaultProfileID.String()+"/readiness", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("readiness status = %d", rec.Code)
	}
	rd := decodeBody[engine.Readiness](t, rec)
	if !rd.Deload || rd.SessionCount != 1 {
		t.Errorf("readiness = %+v, want deload after one session", rd)
	}
}

// TestProfiles verifies list, create, update and get.
func TestProfiles(t *testing.T) {
	s, _ := newTestServer(t)

	rec := do(t, s, http.MethodGet, "/api/v1/profiles", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("list status = %d", rec.Code)
	}
	if list := decodeBody[[]models.Profile](t, rec); len(list) != 1 || list[0].ID != models.DefaultProfileID {
		t.Errorf("profiles = %+v, want only the default", list)
	}

	rec = do(t, s, http.MethodPost, "/api/v1/profiles", models.NewProfile{Name: "X"})
	if rec.Code != http.StatusBadRequest {
		t.Errorf("short name status = %d, want 400", rec.Code)
	}

	rec = do(t, s, http.MethodPost, "/api/v1/profiles", models.NewProfile{Name: "Partner", TrainingDaysPerWeek: 2})
	if rec.Code != http.StatusCreated {
		t.Fatalf("create status = %d: %s", rec.Code, rec.Body)
	}
	created := decodeBody[models.Profile](t, rec)

	rec = do(t, s, http.MethodPatch, "/api/v1/profiles/"+created.ID.String(), models.ProfileUpdate{CycleLengthWeeks: intp(8)})
	if rec.Code != http.StatusOK {
		t.Fatalf("update status = %d: %s", rec.Code, rec.Body)
	}

	rec = do(t, s, http.MethodGet, "/api/v1/profiles/"+created.ID.String(), nil)
	got := decodeBody[models.Profile](t, rec)
	if got.CycleLengthWeeks != 8 || got.TrainingDaysPerWeek != 2 {
		t.Errorf("profile = %+v, want cycle 8 and 2 days", got)
	}

	rec = do(t, s, http.MethodGet, "/api/v1/profiles/not-a-uuid", nil)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("bad id status = %d, want 400", rec.Code)
	}
}

// TestSchedule verifies the weekly plan uses the profile's training days.
func TestSchedule(t *testing.T) {
	s, store := newTestServer(t)
	if _, err := store.EnsureDefaultProfile(context.Background(), ""); err != nil {
		t.Fatalf("EnsureDefaultProfile: %v", err)
	}

	rec := do(t, s, http.MethodGet, "/api/v1/profiles/"+models.DefaultProfileID.String()+"/schedule", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	got := decodeBody[schedule.Plan](t, rec)
	if !got.IsTrainingDay || got.TodayFocus != "Pull" {
		t.Errorf("today = %v %q, want training day Pull", got.IsTrainingDay, got.TodayFocus)
	}
	if len(got.Days) != 7 {
		t.Errorf("days = %d, want 7", len(got.Days))
	}

	rec = do(t, s, http.MethodGet, "/api/v1/profiles/"+models.DefaultProfileID.String()+"/schedule?today=0", nil)
	got = decodeBody[schedule.Plan](t, rec)
	if got.IsTrainingDay {
		t.Error("Sunday should be a rest day for three sessions a week")
	}

	rec = do(t, s, http.MethodGet, "/api/v1/profiles/"+models.DefaultProfileID.String()+"/schedule?today=9", nil)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("bad today status = %d, want 400", rec.Code)
	}
}

// TestExercises verifies listing and updating a video link.
func TestExercises(t *testing.T) {
	s, _ := newTestServer(t)
	changed := 0
	s.OnCatalogChange(func() { changed++ })

	rec := do(t, s, http.MethodGet, "/api/v1/exercises", nil)
	list := decodeBody[[]models.Exercise](t, rec)
	if len(list) != 6 {
		t.Fatalf("exercises = %d, want 6", len(list))
	}

	path := fmt.Sprintf("/api/v1/exercises/%s", list[0].ID)
	rec = do(t, s, http.MethodPatch, path, models.VideoUpdate{VideoURL: "https://example.com/v"})
	if rec.Code != http.StatusOK {
		t.Fatalf("update status = %d: %s", rec.Code, rec.Body)
	}
	if ex := decodeBody[models.Exercise](t, rec); ex.VideoURL != "https://example.com/v" {
		t.Errorf("video = %q", ex.VideoURL)
	}
	if changed != 1 {
		t.Errorf("catalog change hook ran %d times, want 1", changed)
	}

	rec = do(t, s, http.MethodPatch, "/api/v1/exercises/"+uuid.NewString(), models.VideoUpdate{})
	if rec.Code != http.StatusNotFound {
		t.Errorf("unknown exercise status = %d, want 404", rec.Code)
	}
	if changed != 1 {
		t.Errorf("hook ran after a failed update")
	}
}

// TestWriteRoutesNeedKey verifies write routes reject missing and wrong keys.
func TestWriteRoutesNeedKey(t *testing.T) {
	s, _ := newTestServer(t)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/workouts/generate", strings.NewReader("{}"))
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("missing key status = %d, want 401", rec.Code)
	}

	req = httptest.NewRequest(http.MethodPost, "/api/v1/workouts/generate", strings.NewReader("{}"))
	req.Header.Set("X-API-Key", "wrong")
	rec = httptest.NewRecorder()
	s.ServeHTTP(rec, req)
	if rec.Code != http.StatusForbidden {
		t.Errorf("wrong key status = %d, want 403", rec.Code)
	}
}

// TestMetricsRoute verifies /metrics exposes generation counters.
func TestMetricsRoute(t *testing.T) {
	s, _ := newTestServer(t)
	do(t, s, http.MethodPost, "/api/v1/workouts/generate", models.GenerateRequest{})

	rec := do(t, s, http.MethodGet, "/metrics", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "myworkout_test_sessions_generated_total") {
		t.Error("metrics missing sessions counter")
	}
}
