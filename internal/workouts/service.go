package workouts

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

var ErrWorkoutNotFound = errors.New("workout not found")

// Service owns the workout template collection.
type Service struct {
	store snapshotStore
	mutex sync.Mutex

	workouts []Workout

	// injectable clock for tests
	NowFunc func() time.Time
}

func NewService(ctx context.Context, store snapshotStore) *Service {
	s := &Service{
		store:   store,
		NowFunc: time.Now,
	}

	if err := store.Load(ctx, storage.KeyWorkouts, &s.workouts); err != nil && !errors.Is(err, storage.ErrNoSnapshot) {
		log.Errorf("load workouts: %s", err)
	}

	return s
}

// Workouts returns a copy of all templates.
func (s *Service) Workouts() []Workout {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	workouts := make([]Workout, len(s.workouts))
	copy(workouts, s.workouts)
	return workouts
}

// Create stores a new template with a fresh id.
func (s *Service) Create(ctx context.Context, workout Workout) (_ *Workout, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "workouts.create")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	s.mutex.Lock()
	defer s.mutex.Unlock()

	workout.ID = uuid.NewString()
	workout.CreatedAt = s.NowFunc()
	s.workouts = append(s.workouts, workout)

	if err := s.store.Save(ctx, storage.KeyWorkouts, s.workouts); err != nil {
		return nil, err
	}

	log.Debugf("workout template created: [%s] %s", workout.ID, workout.Name)
	return &workout, nil
}

// Update replaces name and exercises of an existing template, keeping its
// creation timestamp.
func (s *Service) Update(ctx context.Context, workout Workout) (_ *Workout, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "workouts.update")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	s.mutex.Lock()
	defer s.mutex.Unlock()

	for i, existing := range s.workouts {
		if existing.ID != workout.ID {
			continue
		}

		updated := existing
		updated.Name = workout.Name
		updated.Exercises = workout.Exercises
		s.workouts[i] = updated

		if err := s.store.Save(ctx, storage.KeyWorkouts, s.workouts); err != nil {
			return nil, err
		}
		return &updated, nil
	}

	return nil, ErrWorkoutNotFound
}

// Delete removes a template, no-op when absent.
func (s *Service) Delete(ctx context.Context, workoutID string) (found bool, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "workouts.delete")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	s.mutex.Lock()
	defer s.mutex.Unlock()

	for i, workout := range s.workouts {
		if workout.ID != workoutID {
			continue
		}
		s.workouts = append(s.workouts[:i], s.workouts[i+1:]...)
		if err := s.store.Save(ctx, storage.KeyWorkouts, s.workouts); err != nil {
			return true, err
		}
		return true, nil
	}

	log.Debugf("delete workout %s: not found", workoutID)
	return false, nil
}
