package progress

import (
	"fmt"
	"sort"
	"time"
)

// DefaultWeekCount is the number of buckets the weekly chart shows.
const DefaultWeekCount = 8

// MuscleCatchAll buckets logged exercises without a target muscle.
const MuscleCatchAll = "other"

// ComputeStats derives the summary statistics from the full history.
//
// The streak walks backwards from today one calendar day at a time and
// stops at the first day without a workout. No workout today means streak
// zero, and several workouts on the same day count once for that day.
func ComputeStats(history []WorkoutLogEntry, now time.Time) Stats {
	stats := Stats{
		TotalWorkouts: len(history),
	}

	workoutDays := make(map[string]struct{})
	for _, entry := range history {
		stats.TotalExercises += len(entry.Exercises)
		stats.TotalVolume += entry.Volume()
		workoutDays[entry.CompletedAt.Format("2006-01-02")] = struct{}{}
	}

	day := midnight(now)
	for {
		if _, ok := workoutDays[day.Format("2006-01-02")]; !ok {
			break
		}
		stats.Streak++
		day = day.AddDate(0, 0, -1)
	}

	return stats
}

// WeeklyBuckets splits the trailing weekCount*7 days into contiguous 7-day
// windows ending today and counts entries per window. Bucket labels run
// Week 1 (oldest) to Week N (current).
func WeeklyBuckets(history []WorkoutLogEntry, weekCount int, now time.Time) []WeekBucket {
	if weekCount <= 0 {
		weekCount = DefaultWeekCount
	}

	// the exclusive end of the last window is tomorrow's midnight, so the
	// current week always includes today
	end := midnight(now).AddDate(0, 0, 1)

	buckets := make([]WeekBucket, weekCount)
	for i := range buckets {
		weekStart := end.AddDate(0, 0, -7*(weekCount-i))
		buckets[i] = WeekBucket{
			Label:     fmt.Sprintf("Week %d", i+1),
			WeekStart: weekStart,
		}
	}

	for _, entry := range history {
		for i := range buckets {
			weekStart := buckets[i].WeekStart
			if !entry.CompletedAt.Before(weekStart) && entry.CompletedAt.Before(weekStart.AddDate(0, 0, 7)) {
				buckets[i].Workouts++
				break
			}
		}
	}

	return buckets
}

// MuscleDistribution counts how often each target muscle appears across
// all logged exercises. Exercises without a target land in the catch-all
// bucket. The result is sorted by count descending, name ascending.
func MuscleDistribution(history []WorkoutLogEntry) []MuscleCount {
	counts := make(map[string]int)
	for _, entry := range history {
		for _, exercise := range entry.Exercises {
			target := exercise.Target
			if target == "" {
				target = MuscleCatchAll
			}
			counts[target]++
		}
	}

	distribution := make([]MuscleCount, 0, len(counts))
	for muscle, count := range counts {
		distribution = append(distribution, MuscleCount{Muscle: muscle, Count: count})
	}
	sort.Slice(distribution, func(i, j int) bool {
		if distribution[i].Count != distribution[j].Count {
			return distribution[i].Count > distribution[j].Count
		}
		return distribution[i].Muscle < distribution[j].Muscle
	})

	return distribution
}

type MuscleCount struct {
	Muscle string `json:"muscle"`
	Count  int    `json:"count"`
}

func midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
