package models

import (
	"time"

	"github.com/google/uuid"
)

// DefaultProfileID is the profile used when a request names none.
var DefaultProfileID = uuid.MustParse("00000000-0000-0000-0000-000000000001")

// Profile is a training profile. The engine only reads it.
type Profile struct {
	ID                  uuid.UUID    `json:"id"`
	Name                string       `json:"name"`
	Age                 *int         `json:"age,omitempty"`
	Gender              string       `json:"gender,omitempty"`
	Goal                Goal         `json:"goal"`
	DurationMin         int          `json:"duration_min"`
	TrainingDaysPerWeek int          `json:"training_days_per_week"`
	CycleLengthWeeks    int          `json:"cycle_length_weeks"`
	Equipment           []Equipment  `json:"equipment"`
	Limitations         []Limitation `json:"limitations"`
	ExcludedExercises   []string     `json:"excluded_exercises"`
	CreatedAt           time.Time    `json:"created_at"`
}

// NewProfile is the input for creating a profile.
type NewProfile struct {
	Name                string       `json:"name" validate:"required,min=2,max=50"`
	Age                 *int         `json:"age,omitempty" validate:"omitempty,min=10,max=120"`
	Gender              string       `json:"gender,omitempty" validate:"omitempty,oneof=MALE FEMALE OTHER"`
	Goal                Goal         `json:"goal" validate:"omitempty,oneof=HYPERTROPHY STRENGTH ENDURANCE"`
	DurationMin         int          `json:"duration_min" validate:"omitempty,min=15,max=120"`
	TrainingDaysPerWeek int          `json:"training_days_per_week" validate:"omitempty,min=1,max=7"`
	CycleLengthWeeks    int          `json:"cycle_length_weeks" validate:"omitempty,min=4,max=12"`
	Equipment           []Equipment  `json:"equipment" validate:"dive,oneof=BODYWEIGHT DUMBBELL BARBELL KETTLEBELL PULLUP_BAR ROWING_MACHINE RESISTANCE_BAND BENCH CHAIR CABLE_MACHINE MED_BALL"`
	Limitations         []Limitation `json:"limitations" validate:"dive,oneof=SHOULDER_PAIN KNEE_PAIN LOWER_BACK_PAIN WRIST_PAIN LOW_IMPACT_ONLY"`
	ExcludedExercises   []string     `json:"excluded_exercises" validate:"dive,required"`
}

// Validate checks the input and fills defaults for omitted fields.
func (p *NewProfile) Validate() error {
	if err := validateStruct(p, ErrInvalidProfile); err != nil {
		return err
	}
	if p.Goal == "" {
		p.Goal = GoalHypertrophy
	}
	if p.DurationMin == 0 {
		p.DurationMin = 40
	}
	if p.TrainingDaysPerWeek == 0 {
		p.TrainingDaysPerWeek = 3
	}
	if p.CycleLengthWeeks == 0 {
		p.CycleLengthWeeks = 6
	}
	p.Equipment = NormalizeEquipment(p.Equipment)
	if p.Limitations == nil {
		p.Limitations = []Limitation{}
	}
	if p.ExcludedExercises == nil {
		p.ExcludedExercises = []string{}
	}
	return nil
}

// NormalizeEquipment replaces an empty equipment list with bodyweight only.
func NormalizeEquipment(tags []Equipment) []Equipment {
	if len(tags) == 0 {
		return []Equipment{EquipmentBodyweight}
	}
	return tags
}

// DefaultProfile returns the profile created when none exists yet.
func DefaultProfile(goal Goal) NewProfile {
	if goal == "" {
		goal = GoalHypertrophy
	}
	return NewProfile{
		Name:                "Family",
		Goal:                goal,
		DurationMin:         40,
		TrainingDaysPerWeek: 3,
		CycleLengthWeeks:    6,
		Equipment:           []Equipment{EquipmentBodyweight},
		Limitations:         []Limitation{},
		ExcludedExercises:   []string{},
	}
}

// ProfileUpdate is a partial profile change. Nil fields are left unchanged; an
// empty equipment list resets to bodyweight only.
type ProfileUpdate struct {
	Name                *string      `json:"name,omitempty" validate:"omitempty,min=2,max=50"`
	Age                 *int         `json:"age,omitempty" validate:"omitempty,min=10,max=120"`
	Gender              *string      `json:"gender,omitempty" validate:"omitempty,oneof=MALE FEMALE OTHER"`
	Goal                *Goal        `json:"goal,omitempty" validate:"omitempty,oneof=HYPERTROPHY STRENGTH ENDURANCE"`
	DurationMin         *int         `json:"duration_min,omitempty" validate:"omitempty,min=15,max=120"`
	TrainingDaysPerWeek *int         `json:"training_days_per_week,omitempty" validate:"omitempty,min=1,max=7"`
	CycleLengthWeeks    *int         `json:"cycle_length_weeks,omitempty" validate:"omitempty,min=4,max=12"`
	Equipment           []Equipment  `json:"equipment,omitempty" validate:"omitempty,dive,oneof=BODYWEIGHT DUMBBELL BARBELL KETTLEBELL PULLUP_BAR ROWING_MACHINE RESISTANCE_BAND BENCH CHAIR CABLE_MACHINE MED_BALL"`
	Limitations         []Limitation `json:"limitations,omitempty" validate:"omitempty,dive,oneof=SHOULDER_PAIN KNEE_PAIN LOWER_BACK_PAIN WRIST_PAIN LOW_IMPACT_ONLY"`
	ExcludedExercises   []string     `json:"excluded_exercises,omitempty" validate:"omitempty,dive,required"`
}

// Validate checks the set fields.
func (u *ProfileUpdate) Validate() error {
	return validateStruct(u, ErrInvalidProfile)
}

// Apply writes the set fields onto p.
func (u *ProfileUpdate) Apply(p *Profile) {
	if u.Name != nil {
		p.Name = *u.Name
	}
	if u.Age != nil {
		p.Age = u.Age
	}
	if u.Gender != nil {
		p.Gender = *u.Gender
	}
	if u.Goal != nil {
		p.Goal = *u.Goal
	}
	if u.DurationMin != nil {
		p.DurationMin = *u.DurationMin
	}
	if u.TrainingDaysPerWeek != nil {
		p.TrainingDaysPerWeek = *u.TrainingDaysPerWeek
	}
	if u.CycleLengthWeeks != nil {
		p.CycleLengthWeeks = *u.CycleLengthWeeks
	}
	if u.Equipment != nil {
		p.Equipment = NormalizeEquipment(u.Equipment)
	}
	if u.Limitations != nil {
		p.Limitations = u.Limitations
	}
	if u.ExcludedExercises != nil {
		p.ExcludedExercises = u.ExcludedExercises
	}
}
