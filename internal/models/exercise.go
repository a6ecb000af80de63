package models

import "github.com/google/uuid"

// Exercise is a catalog entry. Immutable within a generation run.
type Exercise struct {
	ID                uuid.UUID       `json:"id"`
	Slug              string          `json:"slug"`
	Name              string          `json:"name"`
	Description       string          `json:"description,omitempty"`
	Movement          MovementPattern `json:"movement"`
	PrimaryMuscle     string          `json:"primary_muscle,omitempty"`
	Equipment         []Equipment     `json:"equipment"`
	Contraindications []Limitation    `json:"contraindications"`
	ProgressionPath   string          `json:"progression_path,omitempty"`
	ProgressionStep   *int            `json:"progression_step,omitempty"`
	MinReps           int             `json:"min_reps"`
	MaxReps           int             `json:"max_reps"`
	StrainScore       int             `json:"strain_score"`
	ScienceNote       string          `json:"science_note,omitempty"`
	VideoURL          string          `json:"video_url,omitempty"`
}

// OnPath reports whether the exercise belongs to an ordered progression path.
func (e *Exercise) OnPath() bool {
	return e.ProgressionPath != "" && e.ProgressionStep != nil
}

// VideoUpdate sets or clears an exercise's video link.
type VideoUpdate struct {
	VideoURL string `json:"video_url" validate:"omitempty,url,max=500"`
}

// Validate checks the link.
func (v *VideoUpdate) Validate() error {
	return validateStruct(v, ErrInvalidRequest)
}
