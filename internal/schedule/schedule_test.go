package schedule

import (
	"testing"
	"time"

	"github.com/google/uuid"
)

// TestTrainingDaysCount verifies each count yields that many distinct days.
func TestTrainingDaysCount(t *testing.T) {
	for n := 1; n <= 7; n++ {
		days := TrainingDays(n)
		if len(days) != n {
			t.Errorf("TrainingDays(%d) = %v, want %d days", n, days, n)
		}
		seen := map[time.Weekday]bool{}
		for _, d := range days {
			if seen[d] {
				t.Errorf("TrainingDays(%d) repeats %s", n, d)
			}
			seen[d] = true
		}
	}
}

// TestTrainingDaysClamped verifies out-of-range counts are clamped.
func TestTrainingDaysClamped(t *testing.T) {
	if got := TrainingDays(0); len(got) != 1 || got[0] != time.Wednesday {
		t.Errorf("TrainingDays(0) = %v, want [Wednesday]", got)
	}
	if got := TrainingDays(12); len(got) != 7 {
		t.Errorf("TrainingDays(12) = %v, want 7 days", got)
	}
}

// TestFocusFor verifies the focus rotation for common plans.
func TestFocusFor(t *testing.T) {
	tests := []struct {
		days  int
		today time.Weekday
		want  string
	}{
		{1, time.Wednesday, "Full Body"},
		{1, time.Monday, ""},
		{2, time.Monday, "Upper Body"},
		{2, time.Thursday, "Lower Body"},
		{3, time.Monday, "Push"},
		{3, time.Wednesday, "Pull"},
		{3, time.Friday, "Legs"},
		{3, time.Sunday, ""},
		{4, time.Friday, "Pull"},
		{5, time.Saturday, "Conditioning"},
		{6, time.Friday, "Lower Body"},
		{7, time.Sunday, "Push"},
		{7, time.Saturday, "Recovery"},
	}
	for _, tt := range tests {
		if got := FocusFor(tt.days, tt.today); got != tt.want {
			t.Errorf("FocusFor(%d, %s) = %q, want %q", tt.days, tt.today, got, tt.want)
		}
		if got := IsTrainingDay(tt.days, tt.today); got != (tt.want != "") {
			t.Errorf("IsTrainingDay(%d, %s) = %v", tt.days, tt.today, got)
		}
	}
}

// TestWeekly verifies the weekly layout, labels and today marker.
func TestWeekly(t *testing.T) {
	week := Weekly(3, time.Wednesday)
	if len(week) != 7 {
		t.Fatalf("len = %d, want 7", len(week))
	}
	if week[0].Label != "Sun" || week[6].Label != "Sat" {
		t.Errorf("labels = %s..%s, want Sun..Sat", week[0].Label, week[6].Label)
	}

	training := 0
	for _, d := range week {
		if d.IsTrainingDay {
			training++
			if d.Focus == "" {
				t.Errorf("%s: training day without focus", d.Label)
			}
		} else if d.Focus != "" {
			t.Errorf("%s: rest day with focus %q", d.Label, d.Focus)
		}
		if d.IsToday != (d.Weekday == time.Wednesday) {
			t.Errorf("%s: IsToday = %v", d.Label, d.IsToday)
		}
	}
	if training != 3 {
		t.Errorf("training days = %d, want 3", training)
	}
	if week[3].Focus != "Pull" {
		t.Errorf("Wednesday focus = %q, want Pull", week[3].Focus)
	}
}

func TestForRestDay(t *testing.T) {
	id := uuid.MustParse("00000000-0000-0000-0000-000000000001")
	plan := For(id, 2, time.Sunday)
	if plan.ProfileID != id {
		t.Errorf("profile = %s, want %s", plan.ProfileID, id)
	}
	if plan.IsTrainingDay || plan.TodayFocus != "" {
		t.Errorf("Sunday = %v %q, want rest day", plan.IsTrainingDay, plan.TodayFocus)
	}
	if len(plan.Days) != 7 {
		t.Errorf("days = %d, want 7", len(plan.Days))
	}
}
