package progress

import "time"

// SetEntry is one performed set. Zero weight or reps simply contribute
// nothing to the volume totals.
type SetEntry struct {
	Weight float64 `json:"weight"`
	Reps   int     `json:"reps"`
}

// LoggedExercise snapshots the catalog fields at logging time, so later
// catalog changes never rewrite history.
type LoggedExercise struct {
	ExerciseID string     `json:"exerciseId"`
	Name       string     `json:"name"`
	Target     string     `json:"target"`
	Sets       []SetEntry `json:"sets"`
}

// WorkoutLogEntry is one completed workout in the append-only history.
// CompletedAt is set once at logging time and survives updates unless the
// correction explicitly carries a new one.
type WorkoutLogEntry struct {
	ID          string           `json:"id"`
	Name        string           `json:"name"`
	Exercises   []LoggedExercise `json:"exercises"`
	CompletedAt time.Time        `json:"completedAt"`
}

// Volume is the entry's weight*reps total across all sets.
func (e WorkoutLogEntry) Volume() float64 {
	var volume float64
	for _, exercise := range e.Exercises {
		for _, set := range exercise.Sets {
			volume += set.Weight * float64(set.Reps)
		}
	}
	return volume
}

// Stats is a pure projection of the workout history. It is recomputed from
// the full log after every mutation and never stored.
type Stats struct {
	TotalWorkouts  int     `json:"totalWorkouts"`
	TotalExercises int     `json:"totalExercises"`
	TotalVolume    float64 `json:"totalVolume"`
	Streak         int     `json:"streak"`
}

// WeekBucket counts the workouts completed within one 7-day window.
type WeekBucket struct {
	Label     string    `json:"label"`
	WeekStart time.Time `json:"weekStart"`
	Workouts  int       `json:"workouts"`
}
