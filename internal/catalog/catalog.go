// Package catalog parses and validates the YAML exercise catalog and the seed
// profiles that ship with it.
package catalog

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/andreasknopke/MyWorkout/internal/models"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"gopkg.in/yaml.v3"
)

// idNamespace derives stable exercise ids from slugs.
var idNamespace = uuid.MustParse("6f1c1f3e-9a47-4c5e-8a57-2f0d7f1b6c10")

// ExerciseID returns the id assigned to the exercise with the given slug.
func ExerciseID(slug string) uuid.UUID {
	return uuid.NewSHA1(idNamespace, []byte(slug))
}

// Entry is one exercise as written in the catalog file.
type Entry struct {
	Slug              string                 `yaml:"slug" validate:"required,max=80"`
	Name              string                 `yaml:"name" validate:"required,max=120"`
	Description       string                 `yaml:"description"`
	Movement          models.MovementPattern `yaml:"movement" validate:"required,oneof=PUSH PULL LEGS CORE CONDITIONING STRETCHING"`
	PrimaryMuscle     string                 `yaml:"primary_muscle"`
	Equipment         []models.Equipment     `yaml:"equipment" validate:"dive,oneof=BODYWEIGHT DUMBBELL BARBELL KETTLEBELL PULLUP_BAR ROWING_MACHINE RESISTANCE_BAND BENCH CHAIR CABLE_MACHINE MED_BALL"`
	Contraindications []models.Limitation    `yaml:"contraindications" validate:"dive,oneof=SHOULDER_PAIN KNEE_PAIN LOWER_BACK_PAIN WRIST_PAIN LOW_IMPACT_ONLY"`
	Path              string                 `yaml:"path"`
	Step              *int                   `yaml:"step"`
	MinReps           int                    `yaml:"min_reps" validate:"min=1"`
	MaxReps           int                    `yaml:"max_reps" validate:"gtefield=MinReps"`
	Strain            int                    `yaml:"strain" validate:"omitempty,min=1,max=5"`
	ScienceNote       string                 `yaml:"science_note"`
	VideoURL          string                 `yaml:"video_url" validate:"omitempty,url"`
}

// Profile is a seed profile with a fixed id.
type Profile struct {
	ID                  uuid.UUID           `yaml:"id" validate:"required"`
	Name                string              `yaml:"name"`
	Age                 *int                `yaml:"age"`
	Gender              string              `yaml:"gender"`
	Goal                models.Goal         `yaml:"goal"`
	DurationMin         int                 `yaml:"duration_min"`
	TrainingDaysPerWeek int                 `yaml:"training_days_per_week"`
	CycleLengthWeeks    int                 `yaml:"cycle_length_weeks"`
	Equipment           []models.Equipment  `yaml:"equipment"`
	Limitations         []models.Limitation `yaml:"limitations"`
	ExcludedExercises   []string            `yaml:"excluded_exercises"`
}

// NewProfile converts the seed entry into store input. Field validation
// happens in NewProfile.Validate.
func (p Profile) NewProfile() models.NewProfile {
	return models.NewProfile{
		Name:                p.Name,
		Age:                 p.Age,
		Gender:              p.Gender,
		Goal:                p.Goal,
		DurationMin:         p.DurationMin,
		TrainingDaysPerWeek: p.TrainingDaysPerWeek,
		CycleLengthWeeks:    p.CycleLengthWeeks,
		Equipment:           p.Equipment,
		Limitations:         p.Limitations,
		ExcludedExercises:   p.ExcludedExercises,
	}
}

// File is the parsed catalog.
type File struct {
	Profiles []Profile `yaml:"profiles" validate:"dive"`
	Entries  []Entry   `yaml:"exercises" validate:"required,min=1,dive"`
}

// Parse decodes and validates a catalog document.
func Parse(data []byte) (*File, error) {
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parsing catalog: %w", err)
	}
	if err := f.validate(); err != nil {
		return nil, fmt.Errorf("validating catalog: %w", err)
	}
	return &f, nil
}

func (f *File) validate() error {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		return strings.SplitN(fld.Tag.Get("yaml"), ",", 2)[0]
	})
	if err := v.Struct(f); err != nil {
		return err
	}

	var errs []error
	slugs := make(map[string]bool, len(f.Entries))
	steps := make(map[string]string)
	for _, e := range f.Entries {
		if slugs[e.Slug] {
			errs = append(errs, fmt.Errorf("duplicate slug %q", e.Slug))
		}
		slugs[e.Slug] = true

		switch {
		case e.Path == "" && e.Step == nil:
			continue
		case e.Path == "" || e.Step == nil:
			errs = append(errs, fmt.Errorf("%s: path and step must be set together", e.Slug))
			continue
		case *e.Step < 1:
			errs = append(errs, fmt.Errorf("%s: step must be at least 1", e.Slug))
		}
		key := fmt.Sprintf("%s/%d", e.Path, *e.Step)
		if other, ok := steps[key]; ok {
			errs = append(errs, fmt.Errorf("%s and %s share step %s", other, e.Slug, key))
		}
		steps[key] = e.Slug
	}

	ids := make(map[uuid.UUID]bool, len(f.Profiles))
	for _, p := range f.Profiles {
		if ids[p.ID] {
			errs = append(errs, fmt.Errorf("duplicate profile id %s", p.ID))
		}
		ids[p.ID] = true
	}
	return errors.Join(errs...)
}

// Exercises converts the entries into catalog exercises with slug-derived ids.
func (f *File) Exercises() []models.Exercise {
	out := make([]models.Exercise, 0, len(f.Entries))
	for _, e := range f.Entries {
		strain := e.Strain
		if strain == 0 {
			strain = 2
		}
		ex := models.Exercise{
			ID:                ExerciseID(e.Slug),
			Slug:              e.Slug,
			Name:              e.Name,
			Description:       strings.TrimSpace(e.Description),
			Movement:          e.Movement,
			PrimaryMuscle:     e.PrimaryMuscle,
			Equipment:         e.Equipment,
			Contraindications: e.Contraindications,
			ProgressionPath:   e.Path,
			MinReps:           e.MinReps,
			MaxReps:           e.MaxReps,
			StrainScore:       strain,
			ScienceNote:       e.ScienceNote,
			VideoURL:          e.VideoURL,
		}
		if ex.Equipment == nil {
			ex.Equipment = []models.Equipment{}
		}
		if ex.Contraindications == nil {
			ex.Contraindications = []models.Limitation{}
		}
		if e.Step != nil {
			step := *e.Step
			ex.ProgressionStep = &step
		}
		out = append(out, ex)
	}
	return out
}
