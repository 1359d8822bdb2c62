package programs

import (
	"strconv"
	"time"
)

// Draft is a program being assembled or edited. The day-editing operations
// mutate only the draft, nothing is persisted until Save.
type Draft struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Description string     `json:"description"`
	Difficulty  Difficulty `json:"difficulty"`
	IsAdmin     bool       `json:"isAdmin"`
	Schedule    Schedule   `json:"scheduleDates"`
}

type SelectDateStatus int

const (
	// DateSelected - the date had no entry, an empty day was created
	DateSelected SelectDateStatus = iota
	// DateAlreadySelected - no data change, the caller should open the day editor
	DateAlreadySelected
	// DateRejected - past dates cannot be scheduled
	DateRejected
)

// SelectDate creates an empty scheduled day for the given date. Dates
// strictly before today (midnight-normalized) are rejected without any
// state change.
func (d *Draft) SelectDate(day DayKey, today time.Time) SelectDateStatus {
	dayTime, err := day.Time()
	if err != nil {
		return DateRejected
	}

	todayMidnight := time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, today.Location())
	if dayTime.Before(todayMidnight) {
		return DateRejected
	}

	if d.Schedule == nil {
		d.Schedule = make(Schedule)
	}
	if _, ok := d.Schedule[day]; ok {
		return DateAlreadySelected
	}

	d.Schedule[day] = ScheduledDay{Exercises: []ExerciseConfig{}}
	return DateSelected
}

// DeselectDate removes the scheduled day entirely, discarding its exercises.
func (d *Draft) DeselectDate(day DayKey) {
	delete(d.Schedule, day)
}

// ToggleExercise removes the exercise config when one with the same
// exercise id is already present for that day, otherwise appends it with
// default sets/reps/rest. A removed exercise re-added by a second toggle
// goes to the end of the list.
func (d *Draft) ToggleExercise(day DayKey, cfg ExerciseConfig) {
	scheduledDay, ok := d.Schedule[day]
	if !ok {
		return
	}

	for i, existing := range scheduledDay.Exercises {
		if existing.ExerciseID == cfg.ExerciseID {
			scheduledDay.Exercises = append(scheduledDay.Exercises[:i], scheduledDay.Exercises[i+1:]...)
			d.Schedule[day] = scheduledDay
			return
		}
	}

	if cfg.Sets == 0 {
		cfg.Sets = DefaultSets
	}
	if cfg.Reps == 0 {
		cfg.Reps = DefaultReps
	}
	if cfg.Rest == 0 {
		cfg.Rest = DefaultRest
	}

	scheduledDay.Exercises = append(scheduledDay.Exercises, cfg)
	d.Schedule[day] = scheduledDay
}

// UpdateExerciseField sets one of sets/reps/rest to the parsed integer
// value. A value that does not parse leaves the config unchanged and is
// reported through the return value, it never fails hard.
func (d *Draft) UpdateExerciseField(day DayKey, exerciseID, field, value string) bool {
	scheduledDay, ok := d.Schedule[day]
	if !ok {
		return false
	}

	parsed, err := strconv.Atoi(value)
	if err != nil {
		return false
	}

	for i, cfg := range scheduledDay.Exercises {
		if cfg.ExerciseID != exerciseID {
			continue
		}
		switch field {
		case "sets":
			scheduledDay.Exercises[i].Sets = parsed
		case "reps":
			scheduledDay.Exercises[i].Reps = parsed
		case "rest":
			scheduledDay.Exercises[i].Rest = parsed
		default:
			return false
		}
		d.Schedule[day] = scheduledDay
		return true
	}

	return false
}

// RemoveExercise removes one exercise config from a day, no-op when absent.
func (d *Draft) RemoveExercise(day DayKey, exerciseID string) {
	scheduledDay, ok := d.Schedule[day]
	if !ok {
		return
	}

	for i, cfg := range scheduledDay.Exercises {
		if cfg.ExerciseID == exerciseID {
			scheduledDay.Exercises = append(scheduledDay.Exercises[:i], scheduledDay.Exercises[i+1:]...)
			d.Schedule[day] = scheduledDay
			return
		}
	}
}

// Validate runs all checks independently and reports every violation.
func Validate(d Draft) ValidationErrors {
	var errs ValidationErrors

	name := d.Name
	if len(name) == 0 {
		errs = append(errs, ValidationError{Field: "name", Message: "program name is required"})
	} else if len(name) < 3 {
		errs = append(errs, ValidationError{Field: "name", Message: "name must be at least 3 characters"})
	}

	if len(d.Schedule) == 0 {
		errs = append(errs, ValidationError{Field: "dates", Message: "select at least one training day"})
	}

	return errs
}
