package progress

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"github.com/strenvy/strenvy/internal/storage"
	"github.com/strenvy/strenvy/internal/telemetry/tracing"
)

type snapshotStore interface {
	Load(ctx context.Context, key string, dest interface{}) error
	Save(ctx context.Context, key string, value interface{}) error
}

// LogPatch is a partial correction of an existing entry. Nil fields are
// left untouched.
type LogPatch struct {
	Name        *string           `json:"name"`
	Exercises   *[]LoggedExercise `json:"exercises"`
	CompletedAt *time.Time        `json:"completedAt"`
}

// Service owns the workout history log and keeps its stored snapshot in
// sync on every mutation.
type Service struct {
	store snapshotStore
	mutex sync.Mutex

	history []WorkoutLogEntry

	// injectable clock for tests
	NowFunc func() time.Time
}

func NewService(ctx context.Context, store snapshotStore) *Service {
	s := &Service{
		store:   store,
		NowFunc: time.Now,
	}

	if err := store.Load(ctx, storage.KeyProgress, &s.history); err != nil && !errors.Is(err, storage.ErrNoSnapshot) {
		log.Errorf("load workout history: %s", err)
	}

	return s
}

// History returns a copy of the full log, in insertion order.
func (s *Service) History() []WorkoutLogEntry {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	history := make([]WorkoutLogEntry, len(s.history))
	copy(history, s.history)
	return history
}

// Stats recomputes the summary statistics from the full log.
func (s *Service) Stats() Stats {
	return ComputeStats(s.History(), s.NowFunc())
}

// Weekly buckets the log into trailing 7-day windows.
func (s *Service) Weekly(weekCount int) []WeekBucket {
	return WeeklyBuckets(s.History(), weekCount, s.NowFunc())
}

// Muscles returns the target-muscle frequency distribution of the log.
func (s *Service) Muscles() []MuscleCount {
	return MuscleDistribution(s.History())
}

// LogWorkout appends a new entry. The identifier and completion timestamp
// are always assigned here, whatever the client sent.
func (s *Service) LogWorkout(ctx context.Context, entry WorkoutLogEntry) (_ *WorkoutLogEntry, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "progress.logWorkout")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	s.mutex.Lock()
	defer s.mutex.Unlock()

	entry.ID = uuid.NewString()
	entry.CompletedAt = s.NowFunc()
	s.history = append(s.history, entry)

	if err := s.store.Save(ctx, storage.KeyProgress, s.history); err != nil {
		return nil, err
	}

	log.Debugf("workout logged: [%s] %s", entry.ID, entry.Name)
	return &entry, nil
}

// UpdateLog merges the patch into the matching entry. CompletedAt is
// preserved unless the patch explicitly carries one. A missing id is a
// no-op, reported through the returned flag.
func (s *Service) UpdateLog(ctx context.Context, entryID string, patch LogPatch) (_ *WorkoutLogEntry, found bool, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "progress.updateLog")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	s.mutex.Lock()
	defer s.mutex.Unlock()

	for i := range s.history {
		if s.history[i].ID != entryID {
			continue
		}

		if patch.Name != nil {
			s.history[i].Name = *patch.Name
		}
		if patch.Exercises != nil {
			s.history[i].Exercises = *patch.Exercises
		}
		if patch.CompletedAt != nil {
			s.history[i].CompletedAt = *patch.CompletedAt
		}

		if err := s.store.Save(ctx, storage.KeyProgress, s.history); err != nil {
			return nil, true, err
		}

		updated := s.history[i]
		return &updated, true, nil
	}

	log.Debugf("update workout log %s: not found", entryID)
	return nil, false, nil
}

// DeleteLog removes the matching entry, no-op when absent.
func (s *Service) DeleteLog(ctx context.Context, entryID string) (found bool, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "progress.deleteLog")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	s.mutex.Lock()
	defer s.mutex.Unlock()

	for i := range s.history {
		if s.history[i].ID != entryID {
			continue
		}
		s.history = append(s.history[:i], s.history[i+1:]...)
		if err := s.store.Save(ctx, storage.KeyProgress, s.history); err != nil {
			return true, err
		}
		return true, nil
	}

	log.Debugf("delete workout log %s: not found", entryID)
	return false, nil
}
