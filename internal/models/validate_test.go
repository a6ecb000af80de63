package models

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
)

var testTime = time.Date(2026, 10, 14, 18, 0, 0, 0, time.UTC)

func validFeedback() FeedbackSubmission {
	return FeedbackSubmission{
		SessionID: uuid.New(),
		Feedback: []FeedbackInput{{
			ExerciseID: uuid.New(), AvgRPE: 7, CompletedSets: 3, CompletedReps: 30, Difficulty: DifficultyJustRight,
		}},
	}
}

// TestFeedbackValidation checks each rejected field is reported by its JSON path.
func TestFeedbackValidation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*FeedbackSubmission)
		field  string
	}{
		{"rpe too high", func(s *FeedbackSubmission) { s.Feedback[0].AvgRPE = 10.5 }, "feedback[0].avg_rpe"},
		{"rpe too low", func(s *FeedbackSubmission) { s.Feedback[0].AvgRPE = 0.5 }, "feedback[0].avg_rpe"},
		{"no sets", func(s *FeedbackSubmission) { s.Feedback[0].CompletedSets = 0 }, "feedback[0].completed_sets"},
		{"too many reps", func(s *FeedbackSubmission) { s.Feedback[0].CompletedReps = 201 }, "feedback[0].completed_reps"},
		{"bad difficulty", func(s *FeedbackSubmission) { s.Feedback[0].Difficulty = "MEH" }, "feedback[0].difficulty"},
		{"missing exercise", func(s *FeedbackSubmission) { s.Feedback[0].ExerciseID = uuid.Nil }, "feedback[0].exercise_id"},
		{"long notes", func(s *FeedbackSubmission) { s.Feedback[0].Notes = strings.Repeat("x", 401) }, "feedback[0].notes"},
		{"missing session", func(s *FeedbackSubmission) { s.SessionID = uuid.Nil }, "session_id"},
		{"empty feedback", func(s *FeedbackSubmission) { s.Feedback = nil }, "feedback"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sub := validFeedback()
			tt.mutate(&sub)

			err := sub.Validate()
			if !errors.Is(err, ErrInvalidFeedback) {
				t.Fatalf("err = %v, want ErrInvalidFeedback", err)
			}
			var verr *ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("err is %T, want *ValidationError", err)
			}
			if len(verr.Fields) == 0 || verr.Fields[0].Field != tt.field {
				t.Errorf("fields = %+v, want %s", verr.Fields, tt.field)
			}
		})
	}

	ok := validFeedback()
	if err := ok.Validate(); err != nil {
		t.Errorf("valid submission rejected: %v", err)
	}
}

// TestRecordsShareTimestamp verifies conversion keeps order and stamps ids.
func TestRecordsShareTimestamp(t *testing.T) {
	sub := validFeedback()
	sub.Feedback = append(sub.Feedback, FeedbackInput{
		ExerciseID: uuid.New(), AvgRPE: 9, CompletedSets: 2, CompletedReps: 10, Difficulty: DifficultyTooHard,
	})

	recs := sub.Records(testTime)
	if len(recs) != 2 {
		t.Fatalf("records = %d, want 2", len(recs))
	}
	if recs[0].ID == recs[1].ID || recs[0].ID == uuid.Nil {
		t.Error("records need distinct ids")
	}
	if !recs[1].IsHard() || recs[0].IsHard() {
		t.Error("hard flag mismatch")
	}
	for _, r := range recs {
		if !r.CreatedAt.Equal(testTime) || r.SessionID != sub.SessionID {
			t.Errorf("record = %+v", r)
		}
	}
}

// TestNewProfileDefaults verifies omitted fields get defaults and empty
// equipment becomes bodyweight.
func TestNewProfileDefaults(t *testing.T) {
	p := NewProfile{Name: "Sam"}
	if err := p.Validate(); err != nil {
		t.Fatal(err)
	}
	if p.Goal != GoalHypertrophy || p.DurationMin != 40 || p.TrainingDaysPerWeek != 3 || p.CycleLengthWeeks != 6 {
		t.Errorf("defaults = %+v", p)
	}
	if len(p.Equipment) != 1 || p.Equipment[0] != EquipmentBodyweight {
		t.Errorf("equipment = %v, want [BODYWEIGHT]", p.Equipment)
	}
	if p.Limitations == nil || p.ExcludedExercises == nil {
		t.Error("tag lists should be empty, not nil")
	}
}

// TestNewProfileRejects checks out-of-range profile input.
func TestNewProfileRejects(t *testing.T) {
	tests := []struct {
		name string
		in   NewProfile
	}{
		{"short name", NewProfile{Name: "S"}},
		{"days", NewProfile{Name: "Sam", TrainingDaysPerWeek: 8}},
		{"cycle", NewProfile{Name: "Sam", CycleLengthWeeks: 3}},
		{"duration", NewProfile{Name: "Sam", DurationMin: 10}},
		{"equipment", NewProfile{Name: "Sam", Equipment: []Equipment{"SOFA"}}},
		{"limitation", NewProfile{Name: "Sam", Limitations: []Limitation{"TIRED"}}},
		{"gender", NewProfile{Name: "Sam", Gender: "x"}},
	}
	for _, tt := range tests {
		if err := tt.in.Validate(); !errors.Is(err, ErrInvalidProfile) {
			t.Errorf("%s: err = %v, want ErrInvalidProfile", tt.name, err)
		}
	}
}

// TestProfileUpdateApply verifies only set fields change.
func TestProfileUpdateApply(t *testing.T) {
	p := Profile{Name: "Sam", Goal: GoalHypertrophy, TrainingDaysPerWeek: 3, Equipment: []Equipment{EquipmentDumbbell}}
	goal := GoalStrength
	days := 4
	upd := ProfileUpdate{Goal: &goal, TrainingDaysPerWeek: &days, Equipment: []Equipment{}}
	if err := upd.Validate(); err != nil {
		t.Fatal(err)
	}
	upd.Apply(&p)

	if p.Name != "Sam" || p.Goal != GoalStrength || p.TrainingDaysPerWeek != 4 {
		t.Errorf("profile = %+v", p)
	}
	if len(p.Equipment) != 1 || p.Equipment[0] != EquipmentBodyweight {
		t.Errorf("equipment = %v, want [BODYWEIGHT]", p.Equipment)
	}

	long := 200
	if err := (&ProfileUpdate{DurationMin: &long}).Validate(); !errors.Is(err, ErrInvalidProfile) {
		t.Errorf("err = %v, want ErrInvalidProfile", err)
	}
}

// TestGenerateRequestDefaults verifies the default profile fill-in and ranges.
func TestGenerateRequestDefaults(t *testing.T) {
	req := GenerateRequest{}
	if err := req.Validate(); err != nil {
		t.Fatal(err)
	}
	if req.ProfileID != DefaultProfileID {
		t.Errorf("profile = %s, want default", req.ProfileID)
	}

	for _, d := range []int{14, 121} {
		r := GenerateRequest{DurationMin: d}
		if err := r.Validate(); !errors.Is(err, ErrInvalidRequest) {
			t.Errorf("duration %d: err = %v, want ErrInvalidRequest", d, err)
		}
	}
	r := GenerateRequest{Goal: "CARDIO"}
	if err := r.Validate(); !errors.Is(err, ErrInvalidRequest) {
		t.Errorf("goal: err = %v, want ErrInvalidRequest", err)
	}
}

// TestVideoUpdate accepts links and blanks and rejects other text.
func TestVideoUpdate(t *testing.T) {
	for _, tt := range []struct {
		url string
		ok  bool
	}{
		{"https://example.com/clip", true},
		{"", true},
		{"not a url", false},
	} {
		err := (&VideoUpdate{VideoURL: tt.url}).Validate()
		if (err == nil) != tt.ok {
			t.Errorf("%q: err = %v", tt.url, err)
		}
	}
}

// TestCheckSessionExercises verifies records outside the session are reported
// by index.
func TestCheckSessionExercises(t *testing.T) {
	in, out := uuid.New(), uuid.New()
	items := map[uuid.UUID]bool{in: true}

	if err := CheckSessionExercises(items, []FeedbackRecord{{ExerciseID: in}}); err != nil {
		t.Fatalf("err = %v, want nil", err)
	}

	err := CheckSessionExercises(items, []FeedbackRecord{{ExerciseID: in}, {ExerciseID: out}})
	if !errors.Is(err, ErrInvalidFeedback) {
		t.Fatalf("err = %v, want ErrInvalidFeedback", err)
	}
	var verr *ValidationError
	if !errors.As(err, &verr) || len(verr.Fields) != 1 || verr.Fields[0].Field != "feedback[1].exercise_id" {
		t.Errorf("fields = %+v, want feedback[1].exercise_id", verr)
	}
}
