package workouts

import (
	"time"

	"github.com/strenvy/strenvy/internal/programs"
)

// Workout is a reusable workout template: a named exercise list that can
// be logged repeatedly without scheduling it on a program calendar.
type Workout struct {
	ID        string                    `json:"id"`
	Name      string                    `json:"name"`
	Exercises []programs.ExerciseConfig `json:"exercises"`
	CreatedAt time.Time                 `json:"createdAt"`
}
