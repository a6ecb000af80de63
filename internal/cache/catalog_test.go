package cache

import (
	"context"
	"errors"
	"testing"

	"github.com/andreasknopke/MyWorkout/internal/models"
	"github.com/google/uuid"
)

type countingStore struct {
	calls int
	list  []models.Exercise
	err   error
}

func (s *countingStore) ListExercises(context.Context) ([]models.Exercise, error) {
	s.calls++
	return s.list, s.err
}

func sample() []models.Exercise {
	step := 2
	return []models.Exercise{
		{ID: uuid.New(), Slug: "squat", Name: "Squat", Movement: models.MovementLegs, MinReps: 6, MaxReps: 20},
		{ID: uuid.New(), Slug: "pushup", Name: "Push-up", Movement: models.MovementPush,
			Equipment: []models.Equipment{models.EquipmentBodyweight}, ProgressionPath: "pushup",
			ProgressionStep: &step, MinReps: 5, MaxReps: 15},
	}
}

// TestCatalogCachesWithinTTL verifies the wrapped store is read once.
func TestCatalogCachesWithinTTL(t *testing.T) {
	store := &countingStore{list: sample()}
	c := NewCatalog(store, 60, nil)

	for i := 0; i < 3; i++ {
		list, err := c.ListExercises(context.Background())
		if err != nil {
			t.Fatalf("ListExercises: %v", err)
		}
		if len(list) != 2 {
			t.Fatalf("len = %d, want 2", len(list))
		}
		if list[1].ProgressionStep == nil || *list[1].ProgressionStep != 2 {
			t.Errorf("step = %v, want 2", list[1].ProgressionStep)
		}
	}
	if store.calls != 1 {
		t.Errorf("calls = %d, want 1", store.calls)
	}

	c.Invalidate()
	if _, err := c.ListExercises(context.Background()); err != nil {
		t.Fatalf("ListExercises: %v", err)
	}
	if store.calls != 2 {
		t.Errorf("calls after invalidate = %d, want 2", store.calls)
	}
}

// TestCatalogDisabled verifies a zero TTL passes every call through.
func TestCatalogDisabled(t *testing.T) {
	store := &countingStore{list: sample()}
	c := NewCatalog(store, 0, nil)
	c.ListExercises(context.Background())
	c.ListExercises(context.Background())
	if store.calls != 2 {
		t.Errorf("calls = %d, want 2", store.calls)
	}
}

// TestCatalogErrorNotCached verifies store errors are returned and not cached.
func TestCatalogErrorNotCached(t *testing.T) {
	boom := errors.New("boom")
	store := &countingStore{err: boom}
	c := NewCatalog(store, 60, nil)

	if _, err := c.ListExercises(context.Background()); !errors.Is(err, boom) {
		t.Fatalf("err = %v, want boom", err)
	}
	store.err = nil
	store.list = sample()
	list, err := c.ListExercises(context.Background())
	if err != nil || len(list) != 2 {
		t.Errorf("ListExercises = %d, %v; want 2, nil", len(list), err)
	}
}
