package models

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

var (
	validateOnce sync.Once
	validate     *validator.Validate
)

func validatorInstance() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})
	})
	return validate
}

// validateStruct runs struct-tag validation and converts failures into a
// *ValidationError of the given kind.
func validateStruct(v any, kind error) error {
	err := validatorInstance().Struct(v)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("validating input: %w", err)
	}
	out := &ValidationError{Kind: kind}
	for _, fe := range verrs {
		out.Fields = append(out.Fields, FieldError{
			Field: fieldPath(fe.Namespace()),
			Rule:  fe.Tag(),
			Param: fe.Param(),
		})
	}
	return out
}

// fieldPath strips the root struct name from a validator namespace.
func fieldPath(ns string) string {
	if i := strings.IndexByte(ns, '.'); i >= 0 {
		return ns[i+1:]
	}
	return ns
}

// GenerateRequest is the input for generating a session.
type GenerateRequest struct {
	ProfileID   uuid.UUID    `json:"profile_id"`
	DurationMin int          `json:"duration_min" validate:"omitempty,min=15,max=120"`
	Goal        Goal         `json:"goal,omitempty" validate:"omitempty,oneof=HYPERTROPHY STRENGTH ENDURANCE"`
	Equipment   []Equipment  `json:"equipment,omitempty" validate:"omitempty,dive,oneof=BODYWEIGHT DUMBBELL BARBELL KETTLEBELL PULLUP_BAR ROWING_MACHINE RESISTANCE_BAND BENCH CHAIR CABLE_MACHINE MED_BALL"`
	Limitations []Limitation `json:"limitations,omitempty" validate:"omitempty,dive,oneof=SHOULDER_PAIN KNEE_PAIN LOWER_BACK_PAIN WRIST_PAIN LOW_IMPACT_ONLY"`
	Seed        *uint64      `json:"seed,omitempty"`
}

// Validate rejects out-of-range values and fills in the default profile.
func (r *GenerateRequest) Validate() error {
	if err := validateStruct(r, ErrInvalidRequest); err != nil {
		return err
	}
	if r.ProfileID == uuid.Nil {
		r.ProfileID = DefaultProfileID
	}
	return nil
}
