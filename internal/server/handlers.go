package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/andreasknopke/MyWorkout/internal/models"
	"github.com/andreasknopke/MyWorkout/internal/schedule"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

const maxBodyBytes = 1 << 20

func (s *Server) handleMe(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, userInfoFromContext(r))
}

func (s *Server) handleListExercises(w http.ResponseWriter, r *http.Request) {
	list, err := s.engine.Exercises(r.Context())
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

func (s *Server) handleSetExerciseVideo(w http.ResponseWriter, r *http.Request) {
	id, ok := s.pathID(w, r, "exercise")
	if !ok {
		return
	}
	var upd models.VideoUpdate
	if !s.decode(w, r, &upd) {
		return
	}
	ex, err := s.store.SetExerciseVideo(r.Context(), id, upd)
	if err != nil {
		s.writeError(w, err)
		return
	}
	if s.catalogChanged != nil {
		s.catalogChanged()
	}
	writeJSON(w, http.StatusOK, ex)
}

func (s *Server) handleListProfiles(w http.ResponseWriter, r *http.Request) {
	if _, err := s.store.EnsureDefaultProfile(r.Context(), ""); err != nil {
		s.writeError(w, err)
		return
	}
	list, err := s.store.ListProfiles(r.Context())
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

func (s *Server) handleGetProfile(w http.ResponseWriter, r *http.Request) {
	id, ok := s.pathID(w, r, "profile")
	if !ok {
		return
	}
	p, err := s.engine.Profile(r.Context(), id)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (s *Server) handleCreateProfile(w http.ResponseWriter, r *http.Request) {
	var in models.NewProfile
	if !s.decode(w, r, &in) {
		return
	}
	p, err := s.store.CreateProfile(r.Context(), in)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.log.Info("profile created", "profile_id", p.ID, "by", userInfoFromContext(r).Login)
	writeJSON(w, http.StatusCreated, p)
}

func (s *Server) handleUpdateProfile(w http.ResponseWriter, r *http.Request) {
	id, ok := s.pathID(w, r, "profile")
	if !ok {
		return
	}
	var upd models.ProfileUpdate
	if !s.decode(w, r, &upd) {
		return
	}
	p, err := s.store.UpdateProfile(r.Context(), id, upd)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (s *Server) handleReadiness(w http.ResponseWriter, r *http.Request) {
	id, ok := s.pathID(w, r, "profile")
	if !ok {
		return
	}
	rd, err := s.engine.Readiness(r.Context(), id)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rd)
}

func (s *Server) handleSchedule(w http.ResponseWriter, r *http.Request) {
	id, ok := s.pathID(w, r, "profile")
	if !ok {
		return
	}

	today := s.now().Weekday()
	if v := r.URL.Query().Get("today"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 || n > 6 {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "today must be a weekday number 0-6"})
			return
		}
		today = time.Weekday(n)
	}

	p, err := s.engine.Profile(r.Context(), id)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, schedule.For(p.ID, p.TrainingDaysPerWeek, today))
}

// handleGenerate creates a session. Goal, equipment and limitations in the body
// override the profile for this session only and are not saved; use
// PATCH /api/v1/profiles/{id} to change them permanently.
func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	var req models.GenerateRequest
	if !s.decode(w, r, &req) {
		return
	}
	if req.ProfileID == uuid.Nil || req.ProfileID == models.DefaultProfileID {
		if _, err := s.store.EnsureDefaultProfile(r.Context(), ""); err != nil {
			s.writeError(w, err)
			return
		}
	}

	sess, err := s.engine.Generate(r.Context(), req)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, sess)
}

func (s *Server) handleFeedback(w http.ResponseWriter, r *http.Request) {
	var sub models.FeedbackSubmission
	if !s.decode(w, r, &sub) {
		return
	}
	sess, err := s.engine.RecordFeedback(r.Context(), sub)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, sess)
}

func (s *Server) handleGetWorkout(w http.ResponseWriter, r *http.Request) {
	id, ok := s.pathID(w, r, "workout")
	if !ok {
		return
	}
	sess, err := s.store.GetSession(r.Context(), id)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, sess)
}

func (s *Server) pathID(w http.ResponseWriter, r *http.Request, what string) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid " + what + " ID"})
		return uuid.Nil, false
	}
	return id, true
}

func (s *Server) decode(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(v); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON: " + err.Error()})
		return false
	}
	return true
}

// errorResponse is the body of every failed request.
type errorResponse struct {
	Error  string              `json:"error"`
	Fields []models.FieldError `json:"fields,omitempty"`
}

// statusFor maps domain errors to HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, models.ErrProfileNotFound),
		errors.Is(err, models.ErrSessionNotFound),
		errors.Is(err, models.ErrExerciseNotFound):
		return http.StatusNotFound
	case errors.Is(err, models.ErrNoEligibleExercises):
		return http.StatusUnprocessableEntity
	case errors.Is(err, models.ErrInvalidFeedback),
		errors.Is(err, models.ErrInvalidProfile),
		errors.Is(err, models.ErrInvalidRequest):
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

func (s *Server) writeError(w http.ResponseWriter, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		s.log.Error("request failed", "error", err)
	}
	body := errorResponse{Error: err.Error()}
	var verr *models.ValidationError
	if errors.As(err, &verr) {
		body.Fields = verr.Fields
	}
	writeJSON(w, status, body)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
