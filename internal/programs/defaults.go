package programs

import "time"

// DefaultAdminPrograms is the built-in curated program set, scheduled
// relative to the given time: each program starts on the next Monday and
// repeats its weekday pattern for the planned number of weeks.
func DefaultAdminPrograms(now time.Time) []Program {
	start := nextMonday(now)

	fullBodyA := ScheduledDay{Name: "Full Body A", Exercises: []ExerciseConfig{
		{ExerciseID: "0001", Name: "3/4 sit-up", BodyPart: "waist", Sets: 3, Reps: 15, Rest: 60},
		{ExerciseID: "0002", Name: "45° side bend", BodyPart: "waist", Sets: 3, Reps: 12, Rest: 60},
		{ExerciseID: "0003", Name: "air bike", BodyPart: "waist", Sets: 3, Reps: 20, Rest: 45},
	}}
	fullBodyB := ScheduledDay{Name: "Full Body B", Exercises: []ExerciseConfig{
		{ExerciseID: "0004", Name: "all fours squad stretch", BodyPart: "upper legs", Sets: 3, Reps: 15, Rest: 60},
		{ExerciseID: "0005", Name: "alternate heel touchers", BodyPart: "waist", Sets: 3, Reps: 20, Rest: 45},
		{ExerciseID: "0006", Name: "alternate lateral pulldown", BodyPart: "back", Sets: 3, Reps: 12, Rest: 90},
	}}
	fullBodyC := ScheduledDay{Name: "Full Body C", Exercises: []ExerciseConfig{
		{ExerciseID: "0007", Name: "ankle circles", BodyPart: "lower legs", Sets: 3, Reps: 15, Rest: 30},
		{ExerciseID: "0008", Name: "archer pull up", BodyPart: "back", Sets: 3, Reps: 8, Rest: 120},
		{ExerciseID: "0009", Name: "archer push up", BodyPart: "chest", Sets: 3, Reps: 10, Rest: 90},
	}}

	pushDay := ScheduledDay{Name: "Push Day", Exercises: []ExerciseConfig{
		{ExerciseID: "0009", Name: "archer push up", BodyPart: "chest", Sets: 4, Reps: 10, Rest: 90},
		{ExerciseID: "0010", Name: "arm slingers hanging bent knee legs", BodyPart: "waist", Sets: 3, Reps: 12, Rest: 60},
	}}
	pullDay := ScheduledDay{Name: "Pull Day", Exercises: []ExerciseConfig{
		{ExerciseID: "0008", Name: "archer pull up", BodyPart: "back", Sets: 4, Reps: 8, Rest: 120},
		{ExerciseID: "0006", Name: "alternate lateral pulldown", BodyPart: "back", Sets: 3, Reps: 12, Rest: 90},
	}}
	legsDay := ScheduledDay{Name: "Legs Day", Exercises: []ExerciseConfig{
		{ExerciseID: "0004", Name: "all fours squad stretch", BodyPart: "upper legs", Sets: 3, Reps: 15, Rest: 60},
		{ExerciseID: "0001", Name: "3/4 sit-up", BodyPart: "waist", Sets: 4, Reps: 15, Rest: 60},
	}}

	upperA := ScheduledDay{Name: "Upper Body A", Exercises: []ExerciseConfig{
		{ExerciseID: "0009", Name: "archer push up", BodyPart: "chest", Sets: 4, Reps: 10, Rest: 90},
		{ExerciseID: "0008", Name: "archer pull up", BodyPart: "back", Sets: 4, Reps: 8, Rest: 120},
		{ExerciseID: "0006", Name: "alternate lateral pulldown", BodyPart: "back", Sets: 3, Reps: 12, Rest: 90},
	}}
	lowerA := ScheduledDay{Name: "Lower Body A", Exercises: []ExerciseConfig{
		{ExerciseID: "0004", Name: "all fours squad stretch", BodyPart: "upper legs", Sets: 3, Reps: 15, Rest: 60},
		{ExerciseID: "0001", Name: "3/4 sit-up", BodyPart: "waist", Sets: 4, Reps: 20, Rest: 45},
		{ExerciseID: "0002", Name: "45° side bend", BodyPart: "waist", Sets: 3, Reps: 15, Rest: 60},
	}}
	upperB := ScheduledDay{Name: "Upper Body B", Exercises: []ExerciseConfig{
		{ExerciseID: "0009", Name: "archer push up", BodyPart: "chest", Sets: 4, Reps: 12, Rest: 90},
		{ExerciseID: "0008", Name: "archer pull up", BodyPart: "back", Sets: 4, Reps: 10, Rest: 120},
	}}
	lowerB := ScheduledDay{Name: "Lower Body B", Exercises: []ExerciseConfig{
		{ExerciseID: "0003", Name: "air bike", BodyPart: "waist", Sets: 4, Reps: 25, Rest: 45},
		{ExerciseID: "0005", Name: "alternate heel touchers", BodyPart: "waist", Sets: 3, Reps: 20, Rest: 45},
	}}

	coreBlast := ScheduledDay{Name: "Core Blast", Exercises: []ExerciseConfig{
		{ExerciseID: "0001", Name: "3/4 sit-up", BodyPart: "waist", Sets: 4, Reps: 25, Rest: 45},
		{ExerciseID: "0002", Name: "45° side bend", BodyPart: "waist", Sets: 4, Reps: 20, Rest: 45},
		{ExerciseID: "0003", Name: "air bike", BodyPart: "waist", Sets: 4, Reps: 30, Rest: 30},
		{ExerciseID: "0005", Name: "alternate heel touchers", BodyPart: "waist", Sets: 4, Reps: 25, Rest: 45},
	}}
	abRipper := ScheduledDay{Name: "Ab Ripper", Exercises: []ExerciseConfig{
		{ExerciseID: "0003", Name: "air bike", BodyPart: "waist", Sets: 5, Reps: 30, Rest: 30},
		{ExerciseID: "0001", Name: "3/4 sit-up", BodyPart: "waist", Sets: 4, Reps: 30, Rest: 45},
	}}
	coreFinisher := ScheduledDay{Name: "Core Finisher", Exercises: []ExerciseConfig{
		{ExerciseID: "0002", Name: "45° side bend", BodyPart: "waist", Sets: 5, Reps: 25, Rest: 45},
		{ExerciseID: "0005", Name: "alternate heel touchers", BodyPart: "waist", Sets: 5, Reps: 30, Rest: 30},
		{ExerciseID: "0001", Name: "3/4 sit-up", BodyPart: "waist", Sets: 4, Reps: 25, Rest: 45},
	}}

	defaults := []Program{
		{
			ID:          "admin-1",
			Name:        "Beginner Full Body",
			Description: "Perfect for beginners. 3 days per week, focusing on full body compound movements.",
			Difficulty:  DifficultyBeginner,
			IsAdmin:     true,
			Schedule: weeklySchedule(start, 4, map[time.Weekday]ScheduledDay{
				time.Monday:    fullBodyA,
				time.Wednesday: fullBodyB,
				time.Friday:    fullBodyC,
			}),
			CreatedAt: now,
		},
		{
			ID:          "admin-2",
			Name:        "Push Pull Legs",
			Description: "Classic PPL split for intermediate lifters. 6 days per week for maximum gains.",
			Difficulty:  DifficultyIntermediate,
			IsAdmin:     true,
			Schedule: weeklySchedule(start, 8, map[time.Weekday]ScheduledDay{
				time.Monday:    pushDay,
				time.Tuesday:   pullDay,
				time.Wednesday: legsDay,
				time.Thursday:  pushDay,
				time.Friday:    pullDay,
				time.Saturday:  legsDay,
			}),
			CreatedAt: now,
		},
		{
			ID:          "admin-3",
			Name:        "Upper Lower Split",
			Description: "Balanced upper/lower body training. Great for building strength and muscle.",
			Difficulty:  DifficultyIntermediate,
			IsAdmin:     true,
			Schedule: weeklySchedule(start, 6, map[time.Weekday]ScheduledDay{
				time.Monday:   upperA,
				time.Tuesday:  lowerA,
				time.Thursday: upperB,
				time.Friday:   lowerB,
			}),
			CreatedAt: now,
		},
		{
			ID:          "admin-4",
			Name:        "Core Crusher",
			Description: "Intensive ab and core workout. 3 days per week for a rock-solid midsection.",
			Difficulty:  DifficultyAdvanced,
			IsAdmin:     true,
			Schedule: weeklySchedule(start, 4, map[time.Weekday]ScheduledDay{
				time.Monday:    coreBlast,
				time.Wednesday: abRipper,
				time.Friday:    coreFinisher,
			}),
			CreatedAt: now,
		},
	}

	for i := range defaults {
		defaults[i].Duration = defaults[i].Schedule.DurationWeeks()
	}

	return defaults
}

// weeklySchedule expands a weekday pattern into concrete date keys over
// the given number of weeks.
func weeklySchedule(start time.Time, weeks int, pattern map[time.Weekday]ScheduledDay) Schedule {
	schedule := make(Schedule)
	for i := 0; i < weeks*7; i++ {
		date := start.AddDate(0, 0, i)
		day, ok := pattern[date.Weekday()]
		if !ok {
			continue
		}

		exercises := make([]ExerciseConfig, len(day.Exercises))
		copy(exercises, day.Exercises)
		schedule[NewDayKey(date)] = ScheduledDay{
			Name:      day.Name,
			Exercises: exercises,
		}
	}
	return schedule
}

func nextMonday(now time.Time) time.Time {
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	offset := (int(time.Monday) - int(today.Weekday()) + 7) % 7
	if offset == 0 {
		offset = 7
	}
	return today.AddDate(0, 0, offset)
}
