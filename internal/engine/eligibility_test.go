package engine

import (
	"errors"
	"testing"

	"github.com/andreasknopke/MyWorkout/internal/models"
)

func slugs(list []models.Exercise) map[string]bool {
	out := make(map[string]bool, len(list))
	for _, ex := range list {
		out[ex.Slug] = true
	}
	return out
}

// TestEligibleEquipment verifies equipment ownership rules, with bodyweight always owned.
func TestEligibleEquipment(t *testing.T) {
	catalog := []models.Exercise{
		exercise("barbell-squat", models.MovementLegs, models.EquipmentBarbell),
		exercise("goblet-squat", models.MovementLegs, models.EquipmentDumbbell, models.EquipmentKettlebell),
		exercise("squat", models.MovementLegs),
		exercise("explicit-bodyweight", models.MovementLegs, models.EquipmentBodyweight),
	}
	p := testProfile()
	p.Equipment = []models.Equipment{models.EquipmentDumbbell}

	got, err := Eligible(catalog, p)
	if err != nil {
		t.Fatalf("Eligible: %v", err)
	}
	s := slugs(got)
	if s["barbell-squat"] {
		t.Error("barbell-squat eligible without a barbell")
	}
	for _, want := range []string{"goblet-squat", "squat", "explicit-bodyweight"} {
		if !s[want] {
			t.Errorf("%s not eligible", want)
		}
	}
}

// TestEligibleLimitations verifies contraindicated exercises are removed.
func TestEligibleLimitations(t *testing.T) {
	jump := exercise("box-jump", models.MovementConditioning)
	jump.Contraindications = []models.Limitation{models.LimitationKneePain, models.LimitationLowImpactOnly}
	press := exercise("overhead-press", models.MovementPush)
	press.Contraindications = []models.Limitation{models.LimitationShoulderPain}
	catalog := []models.Exercise{jump, press, exercise("plank", models.MovementCore)}

	tests := []struct {
		name        string
		limitations []models.Limitation
		want        []string
	}{
		{"no limitations", nil, []string{"box-jump", "overhead-press", "plank"}},
		{"knee pain", []models.Limitation{models.LimitationKneePain}, []string{"overhead-press", "plank"}},
		{"shoulder and low impact", []models.Limitation{models.LimitationShoulderPain, models.LimitationLowImpactOnly}, []string{"plank"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := testProfile()
			p.Limitations = tt.limitations
			got, err := Eligible(catalog, p)
			if err != nil {
				t.Fatalf("Eligible: %v", err)
			}
			if len(got) != len(tt.want) {
				t.Fatalf("eligible = %d, want %d", len(got), len(tt.want))
			}
			s := slugs(got)
			for _, w := range tt.want {
				if !s[w] {
					t.Errorf("%s not eligible", w)
				}
			}
		})
	}
}

// TestEligibleExclusions verifies exclusion by slug and by id.
func TestEligibleExclusions(t *testing.T) {
	catalog := testCatalog()
	p := testProfile()
	p.ExcludedExercises = []string{"burpee", catalog[0].ID.String()}

	got, err := Eligible(catalog, p)
	if err != nil {
		t.Fatalf("Eligible: %v", err)
	}
	s := slugs(got)
	if s["burpee"] {
		t.Error("burpee excluded by slug is still eligible")
	}
	if s[catalog[0].Slug] {
		t.Errorf("%s excluded by id is still eligible", catalog[0].Slug)
	}
}

// TestEligibleEmpty verifies an empty result reports ErrNoEligibleExercises.
func TestEligibleEmpty(t *testing.T) {
	catalog := []models.Exercise{exercise("barbell-row", models.MovementPull, models.EquipmentBarbell)}
	p := testProfile()
	p.Equipment = []models.Equipment{models.EquipmentBodyweight, models.EquipmentDumbbell}

	_, err := Eligible(catalog, p)
	if !errors.Is(err, models.ErrNoEligibleExercises) {
		t.Errorf("err = %v, want ErrNoEligibleExercises", err)
	}
}
