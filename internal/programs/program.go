package programs

import (
	"fmt"
	"sort"
	"time"
)

type Difficulty string

const (
	DifficultyBeginner     Difficulty = "beginner"
	DifficultyIntermediate Difficulty = "intermediate"
	DifficultyAdvanced     Difficulty = "advanced"
)

func (d Difficulty) Valid() bool {
	switch d {
	case DifficultyBeginner, DifficultyIntermediate, DifficultyAdvanced:
		return true
	}
	return false
}

const dayKeyLayout = "2006-01-02"

// DayKey is an ISO calendar date (YYYY-MM-DD) used as schedule map key.
type DayKey string

func NewDayKey(t time.Time) DayKey {
	return DayKey(t.Format(dayKeyLayout))
}

func (k DayKey) Time() (time.Time, error) {
	t, err := time.Parse(dayKeyLayout, string(k))
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid day key [%s]: %w", k, err)
	}
	return t, nil
}

// ExerciseConfig is a denormalized snapshot of the catalog fields taken at
// selection time. The catalog can change independently without retroactively
// altering an already scheduled program.
type ExerciseConfig struct {
	ExerciseID string `json:"exerciseId"`
	Name       string `json:"name"`
	BodyPart   string `json:"bodyPart"`
	Sets       int    `json:"sets"`
	Reps       int    `json:"reps"`
	Rest       int    `json:"rest"` // seconds
}

const (
	DefaultSets = 3
	DefaultReps = 10
	DefaultRest = 60
)

type ScheduledDay struct {
	Name      string           `json:"name"`
	Exercises []ExerciseConfig `json:"exercises"`
}

// Schedule maps calendar dates to their scheduled days. A date with no
// entry means "not scheduled".
type Schedule map[DayKey]ScheduledDay

// SortedDays returns the scheduled day keys in calendar order.
func (s Schedule) SortedDays() []DayKey {
	days := make([]DayKey, 0, len(s))
	for day := range s {
		days = append(days, day)
	}
	sort.Slice(days, func(i, j int) bool { return days[i] < days[j] })
	return days
}

// DurationWeeks derives the program duration from the span of scheduled
// dates: ceil((lastDate-firstDate)/7 days) + 1. Zero for an empty schedule.
func (s Schedule) DurationWeeks() int {
	days := s.SortedDays()
	if len(days) == 0 {
		return 0
	}

	first, err := days[0].Time()
	if err != nil {
		return 0
	}
	last, err := days[len(days)-1].Time()
	if err != nil {
		return 0
	}

	spanDays := int(last.Sub(first) / (24 * time.Hour))
	weeks := spanDays / 7
	if spanDays%7 != 0 {
		weeks++
	}
	return weeks + 1
}

type Program struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Description string     `json:"description"`
	Difficulty  Difficulty `json:"difficulty"`
	IsAdmin     bool       `json:"isAdmin"`
	Schedule    Schedule   `json:"scheduleDates"`
	Duration    int        `json:"duration"` // weeks, derived from the schedule
	CreatedAt   time.Time  `json:"createdAt"`
}

// ActiveProgram is the single program currently being followed.
type ActiveProgram struct {
	Program
	StartDate   time.Time `json:"startDate"`
	CurrentWeek int       `json:"currentWeek"`
}

type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationErrors carries all violations at once, not just the first one.
type ValidationErrors []ValidationError

func (ve ValidationErrors) Error() string {
	if len(ve) == 0 {
		return "no validation errors"
	}
	msg := "validation failed:"
	for _, e := range ve {
		msg += fmt.Sprintf(" [%s: %s]", e.Field, e.Message)
	}
	return msg
}
