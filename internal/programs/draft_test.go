package programs_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/strenvy/strenvy/internal/programs"
)

func TestDraft_SelectDate(t *testing.T) {
	today := time.Date(2025, 6, 15, 14, 30, 0, 0, time.UTC)
	draft := programs.Draft{Name: "My Program"}

	assert.Equal(t, programs.DateRejected, draft.SelectDate("2025-06-14", today))
	assert.Empty(t, draft.Schedule)

	// today itself is schedulable, regardless of the time of day
	assert.Equal(t, programs.DateSelected, draft.SelectDate("2025-06-15", today))
	assert.Equal(t, programs.DateSelected, draft.SelectDate("2025-06-20", today))
	assert.Len(t, draft.Schedule, 2)

	// reselecting keeps the day and its contents
	draft.ToggleExercise("2025-06-20", programs.ExerciseConfig{ExerciseID: "0001", Name: "3/4 sit-up"})
	assert.Equal(t, programs.DateAlreadySelected, draft.SelectDate("2025-06-20", today))
	assert.Len(t, draft.Schedule["2025-06-20"].Exercises, 1)

	assert.Equal(t, programs.DateRejected, draft.SelectDate("not-a-date", today))
}

func TestDraft_DeselectDate_DiscardsExercises(t *testing.T) {
	today := time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC)
	draft := programs.Draft{}
	require.Equal(t, programs.DateSelected, draft.SelectDate("2025-06-20", today))
	draft.ToggleExercise("2025-06-20", programs.ExerciseConfig{ExerciseID: "0001"})

	draft.DeselectDate("2025-06-20")
	_, ok := draft.Schedule["2025-06-20"]
	assert.False(t, ok)
}

func TestDraft_ToggleExercise(t *testing.T) {
	today := time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC)
	draft := programs.Draft{}
	require.Equal(t, programs.DateSelected, draft.SelectDate("2025-06-20", today))

	draft.ToggleExercise("2025-06-20", programs.ExerciseConfig{ExerciseID: "0001", Name: "3/4 sit-up"})
	require.Len(t, draft.Schedule["2025-06-20"].Exercises, 1)

	added := draft.Schedule["2025-06-20"].Exercises[0]
	assert.Equal(t, programs.DefaultSets, added.Sets)
	assert.Equal(t, programs.DefaultReps, added.Reps)
	assert.Equal(t, programs.DefaultRest, added.Rest)

	// toggling the same exercise again removes it
	draft.ToggleExercise("2025-06-20", programs.ExerciseConfig{ExerciseID: "0001", Name: "3/4 sit-up"})
	assert.Empty(t, draft.Schedule["2025-06-20"].Exercises)

	// a re-added exercise goes to the end of the list
	draft.ToggleExercise("2025-06-20", programs.ExerciseConfig{ExerciseID: "0001"})
	draft.ToggleExercise("2025-06-20", programs.ExerciseConfig{ExerciseID: "0002"})
	draft.ToggleExercise("2025-06-20", programs.ExerciseConfig{ExerciseID: "0001"})
	draft.ToggleExercise("2025-06-20", programs.ExerciseConfig{ExerciseID: "0001"})

	exercises := draft.Schedule["2025-06-20"].Exercises
	require.Len(t, exercises, 2)
	assert.Equal(t, "0002", exercises[0].ExerciseID)
	assert.Equal(t, "0001", exercises[1].ExerciseID)

	// unknown day is a no-op
	draft.ToggleExercise("2025-07-01", programs.ExerciseConfig{ExerciseID: "0003"})
	_, ok := draft.Schedule["2025-07-01"]
	assert.False(t, ok)
}

func TestDraft_UpdateExerciseField(t *testing.T) {
	today := time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC)
	draft := programs.Draft{}
	require.Equal(t, programs.DateSelected, draft.SelectDate("2025-06-20", today))
	draft.ToggleExercise("2025-06-20", programs.ExerciseConfig{ExerciseID: "0001"})

	assert.True(t, draft.UpdateExerciseField("2025-06-20", "0001", "sets", "5"))
	assert.True(t, draft.UpdateExerciseField("2025-06-20", "0001", "reps", "12"))
	assert.True(t, draft.UpdateExerciseField("2025-06-20", "0001", "rest", "90"))

	cfg := draft.Schedule["2025-06-20"].Exercises[0]
	assert.Equal(t, 5, cfg.Sets)
	assert.Equal(t, 12, cfg.Reps)
	assert.Equal(t, 90, cfg.Rest)

	// garbage input leaves the config untouched
	assert.False(t, draft.UpdateExerciseField("2025-06-20", "0001", "sets", "many"))
	assert.Equal(t, 5, draft.Schedule["2025-06-20"].Exercises[0].Sets)

	assert.False(t, draft.UpdateExerciseField("2025-06-20", "0001", "weight", "100"))
	assert.False(t, draft.UpdateExerciseField("2025-06-20", "0099", "sets", "5"))
	assert.False(t, draft.UpdateExerciseField("2025-07-01", "0001", "sets", "5"))
}

func TestDraft_RemoveExercise(t *testing.T) {
	today := time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC)
	draft := programs.Draft{}
	require.Equal(t, programs.DateSelected, draft.SelectDate("2025-06-20", today))
	draft.ToggleExercise("2025-06-20", programs.ExerciseConfig{ExerciseID: "0001"})
	draft.ToggleExercise("2025-06-20", programs.ExerciseConfig{ExerciseID: "0002"})

	draft.RemoveExercise("2025-06-20", "0001")
	exercises := draft.Schedule["2025-06-20"].Exercises
	require.Len(t, exercises, 1)
	assert.Equal(t, "0002", exercises[0].ExerciseID)

	// removing a missing exercise or day is a no-op
	draft.RemoveExercise("2025-06-20", "0001")
	draft.RemoveExercise("2025-07-01", "0002")
	assert.Len(t, draft.Schedule["2025-06-20"].Exercises, 1)
}

func TestValidate(t *testing.T) {
	schedule := programs.Schedule{"2025-06-20": {}}

	assert.Empty(t, programs.Validate(programs.Draft{Name: "Push Pull Legs", Schedule: schedule}))

	errs := programs.Validate(programs.Draft{Name: "ab", Schedule: schedule})
	require.Len(t, errs, 1)
	assert.Equal(t, "name", errs[0].Field)
	assert.Equal(t, "name must be at least 3 characters", errs[0].Message)

	// all violations are reported at once
	errs = programs.Validate(programs.Draft{})
	require.Len(t, errs, 2)
	assert.Equal(t, "name", errs[0].Field)
	assert.Equal(t, "program name is required", errs[0].Message)
	assert.Equal(t, "dates", errs[1].Field)
	assert.Contains(t, errs.Error(), "name")
	assert.Contains(t, errs.Error(), "dates")
}

func TestSchedule_DurationWeeks(t *testing.T) {
	testCases := []struct {
		name     string
		days     []programs.DayKey
		expected int
	}{
		{name: "empty", days: nil, expected: 0},
		{name: "single day", days: []programs.DayKey{"2025-06-20"}, expected: 1},
		{name: "same week", days: []programs.DayKey{"2025-06-16", "2025-06-20"}, expected: 2},
		{name: "exactly one week apart", days: []programs.DayKey{"2025-06-16", "2025-06-23"}, expected: 2},
		{name: "eight days apart", days: []programs.DayKey{"2025-06-16", "2025-06-24"}, expected: 3},
		{name: "four week program", days: []programs.DayKey{"2025-06-16", "2025-06-18", "2025-07-07"}, expected: 4},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			schedule := make(programs.Schedule)
			for _, day := range tc.days {
				schedule[day] = programs.ScheduledDay{}
			}
			assert.Equal(t, tc.expected, schedule.DurationWeeks())
		})
	}
}
