package catalog

import (
	"strings"
	"testing"

	myworkout "github.com/andreasknopke/MyWorkout"
	"github.com/andreasknopke/MyWorkout/internal/models"
)

// TestEmbeddedCatalog verifies the shipped catalog parses and covers every
// movement pattern.
func TestEmbeddedCatalog(t *testing.T) {
	f, err := Parse(myworkout.CatalogYAML)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	movements := map[models.MovementPattern]int{}
	paths := map[string][]int{}
	for _, ex := range f.Exercises() {
		movements[ex.Movement]++
		if ex.OnPath() {
			paths[ex.ProgressionPath] = append(paths[ex.ProgressionPath], *ex.ProgressionStep)
		}
		if ex.MinReps > ex.MaxReps {
			t.Errorf("%s: min_reps %d > max_reps %d", ex.Slug, ex.MinReps, ex.MaxReps)
		}
		if ex.ID != ExerciseID(ex.Slug) {
			t.Errorf("%s: id not derived from slug", ex.Slug)
		}
	}
	for _, m := range []models.MovementPattern{
		models.MovementPush, models.MovementPull, models.MovementLegs,
		models.MovementCore, models.MovementConditioning,
	} {
		if movements[m] < 2 {
			t.Errorf("movement %s has %d exercises, want at least 2", m, movements[m])
		}
	}
	for path, steps := range paths {
		if len(steps) < 2 {
			t.Errorf("path %s has %d steps, want at least 2", path, len(steps))
		}
	}

	if len(f.Profiles) != 2 {
		t.Fatalf("profiles = %d, want 2", len(f.Profiles))
	}
	if f.Profiles[0].ID != models.DefaultProfileID {
		t.Errorf("first profile id = %s, want default", f.Profiles[0].ID)
	}
	for _, p := range f.Profiles {
		in := p.NewProfile()
		if err := in.Validate(); err != nil {
			t.Errorf("profile %s: %v", p.Name, err)
		}
	}
}

// TestEmbeddedCatalogBodyweightOnly verifies a bodyweight-only profile still
// gets exercises for every skeleton movement.
func TestEmbeddedCatalogBodyweightOnly(t *testing.T) {
	f, err := Parse(myworkout.CatalogYAML)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	covered := map[models.MovementPattern]bool{}
	for _, ex := range f.Exercises() {
		for _, e := range ex.Equipment {
			if e == models.EquipmentBodyweight {
				covered[ex.Movement] = true
			}
		}
	}
	for _, m := range []models.MovementPattern{models.MovementPush, models.MovementLegs, models.MovementCore, models.MovementConditioning} {
		if !covered[m] {
			t.Errorf("no bodyweight exercise for %s", m)
		}
	}
}

// TestParseRejects verifies structural catalog errors are reported.
func TestParseRejects(t *testing.T) {
	tests := []struct {
		name string
		yaml string
		want string
	}{
		{
			name: "empty",
			yaml: "exercises: []\n",
			want: "File.exercises",
		},
		{
			name: "unknown movement",
			yaml: "exercises:\n  - {slug: a, name: A, movement: JUMP, min_reps: 1, max_reps: 2}\n",
			want: "exercises[0].movement",
		},
		{
			name: "unknown equipment",
			yaml: "exercises:\n  - {slug: a, name: A, movement: PUSH, equipment: [SOFA], min_reps: 1, max_reps: 2}\n",
			want: "exercises[0].equipment[0]",
		},
		{
			name: "reps inverted",
			yaml: "exercises:\n  - {slug: a, name: A, movement: PUSH, min_reps: 9, max_reps: 2}\n",
			want: "exercises[0].max_reps",
		},
		{
			name: "duplicate slug",
			yaml: "exercises:\n  - {slug: a, name: A, movement: PUSH, min_reps: 1, max_reps: 2}\n  - {slug: a, name: B, movement: PULL, min_reps: 1, max_reps: 2}\n",
			want: "duplicate slug",
		},
		{
			name: "path without step",
			yaml: "exercises:\n  - {slug: a, name: A, movement: PUSH, path: p, min_reps: 1, max_reps: 2}\n",
			want: "path and step",
		},
		{
			name: "shared step",
			yaml: "exercises:\n  - {slug: a, name: A, movement: PUSH, path: p, step: 1, min_reps: 1, max_reps: 2}\n  - {slug: b, name: B, movement: PUSH, path: p, step: 1, min_reps: 1, max_reps: 2}\n",
			want: "share step",
		},
		{
			name: "bad yaml",
			yaml: "exercises: [",
			want: "parsing catalog",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.yaml))
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error = %q, want it to mention %q", err, tt.want)
			}
		})
	}
}

// TestExercisesDefaults verifies strain and empty tag lists are filled in.
func TestExercisesDefaults(t *testing.T) {
	f, err := Parse([]byte("exercises:\n  - {slug: a, name: A, movement: CORE, min_reps: 1, max_reps: 2}\n"))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	ex := f.Exercises()[0]
	if ex.StrainScore != 2 {
		t.Errorf("strain = %d, want 2", ex.StrainScore)
	}
	if ex.Equipment == nil || ex.Contraindications == nil {
		t.Error("tag lists should be empty, not nil")
	}
	if ex.OnPath() {
		t.Error("exercise without path reported on path")
	}
}
