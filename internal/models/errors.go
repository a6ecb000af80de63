package models

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrProfileNotFound     = errors.New("profile not found")
	ErrSessionNotFound     = errors.New("workout session not found")
	ErrExerciseNotFound    = errors.New("exercise not found")
	ErrNoEligibleExercises = errors.New("no eligible exercises for profile")
	ErrInvalidFeedback     = errors.New("invalid feedback")
	ErrInvalidProfile      = errors.New("invalid profile")
	ErrInvalidRequest      = errors.New("invalid request")
)

// FieldError describes one rejected input field.
type FieldError struct {
	Field string `json:"field"`
	Rule  string `json:"rule"`
	Param string `json:"param,omitempty"`
}

func (f FieldError) String() string {
	if f.Param != "" {
		return fmt.Sprintf("%s failed %s=%s", f.Field, f.Rule, f.Param)
	}
	return fmt.Sprintf("%s failed %s", f.Field, f.Rule)
}

// ValidationError is returned for rejected input. errors.Is matches its Kind.
type ValidationError struct {
	Kind   error
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	parts := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		parts[i] = f.String()
	}
	return fmt.Sprintf("%v: %s", e.Kind, strings.Join(parts, "; "))
}

func (e *ValidationError) Unwrap() error { return e.Kind }
