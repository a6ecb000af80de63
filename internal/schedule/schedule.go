// Package schedule lays out which weekdays are training days for a given
// number of sessions per week and which focus each training day gets.
package schedule

import (
	"time"

	"github.com/google/uuid"
)

// trainingDays maps sessions per week to weekdays (Sunday = 0).
var trainingDays = map[int][]time.Weekday{
	1: {time.Wednesday},
	2: {time.Monday, time.Thursday},
	3: {time.Monday, time.Wednesday, time.Friday},
	4: {time.Monday, time.Tuesday, time.Thursday, time.Friday},
	5: {time.Monday, time.Tuesday, time.Wednesday, time.Friday, time.Saturday},
	6: {time.Monday, time.Tuesday, time.Wednesday, time.Thursday, time.Friday, time.Saturday},
	7: {time.Sunday, time.Monday, time.Tuesday, time.Wednesday, time.Thursday, time.Friday, time.Saturday},
}

var focusRotation = map[int][]string{
	1: {"Full Body"},
	2: {"Upper Body", "Lower Body"},
	3: {"Push", "Pull", "Legs"},
	4: {"Upper Body", "Lower Body", "Push", "Pull"},
	5: {"Push", "Pull", "Legs", "Upper Body", "Conditioning"},
	6: {"Push", "Pull", "Legs", "Upper Body", "Lower Body", "Conditioning"},
	7: {"Push", "Pull", "Legs", "Upper Body", "Lower Body", "Conditioning", "Recovery"},
}

var dayLabels = [7]string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"}

// Day is one weekday of the plan.
type Day struct {
	Weekday       time.Weekday `json:"weekday"`
	Label         string       `json:"label"`
	IsTrainingDay bool         `json:"is_training_day"`
	Focus         string       `json:"focus,omitempty"`
	IsToday       bool         `json:"is_today"`
}

func clampDays(days int) int {
	return min(7, max(1, days))
}

// TrainingDays returns the weekdays trained for the given sessions per week,
// clamped to 1..7.
func TrainingDays(days int) []time.Weekday {
	return trainingDays[clampDays(days)]
}

// focusIndex returns the position of today in the training days, or -1.
func focusIndex(days int, today time.Weekday) int {
	for i, d := range TrainingDays(days) {
		if d == today {
			return i
		}
	}
	return -1
}

// Weekly returns the seven days Sunday through Saturday.
func Weekly(days int, today time.Weekday) []Day {
	focuses := focusRotation[clampDays(days)]
	week := make([]Day, 0, 7)
	for wd := time.Sunday; wd <= time.Saturday; wd++ {
		d := Day{Weekday: wd, Label: dayLabels[wd], IsToday: wd == today}
		if i := focusIndex(days, wd); i >= 0 {
			d.IsTrainingDay = true
			d.Focus = focuses[i%len(focuses)]
		}
		week = append(week, d)
	}
	return week
}

// IsTrainingDay reports whether today is a training day.
func IsTrainingDay(days int, today time.Weekday) bool {
	return focusIndex(days, today) >= 0
}

// FocusFor returns today's focus, or "" on a rest day.
func FocusFor(days int, today time.Weekday) string {
	i := focusIndex(days, today)
	if i < 0 {
		return ""
	}
	focuses := focusRotation[clampDays(days)]
	return focuses[i%len(focuses)]
}

// Plan is a profile's week with today's status.
type Plan struct {
	ProfileID     uuid.UUID `json:"profile_id"`
	Days          []Day     `json:"days"`
	IsTrainingDay bool      `json:"is_training_day"`
	TodayFocus    string    `json:"today_focus,omitempty"`
}

// For builds the plan for a profile training the given days per week.
func For(profileID uuid.UUID, days int, today time.Weekday) Plan {
	return Plan{
		ProfileID:     profileID,
		Days:          Weekly(days, today),
		IsTrainingDay: IsTrainingDay(days, today),
		TodayFocus:    FocusFor(days, today),
	}
}
