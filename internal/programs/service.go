package programs

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

//go:generate mockgen -source=$GOFILE -destination=service_mocks_test.go -package=programs_test

type snapshotStore interface {
	Load(ctx context.Context, key string, dest interface{}) error
	Save(ctx context.Context, key string, value interface{}) error
	Delete(ctx context.Context, key string) error
}

var ErrProgramNotFound = errors.New("program not found")

// Service owns the two program collections (curated admin programs and
// user-authored ones) and the active-program singleton, and keeps their
// stored snapshots in sync on every mutation.
type Service struct {
	store snapshotStore
	mutex sync.Mutex

	adminPrograms []Program
	userPrograms  []Program
	active        *ActiveProgram

	// injectable clock for tests
	NowFunc func() time.Time
}

func NewService(ctx context.Context, store snapshotStore) *Service {
	s := &Service{
		store:   store,
		NowFunc: time.Now,
	}

	// stored admin programs that are absent, corrupt OR empty all fall back
	// to the built-in curated set: an empty stored list is indistinguishable
	// from data loss, and losing the curated set is the worse outcome
	if err := store.Load(ctx, storage.KeyAdminPrograms, &s.adminPrograms); err != nil && !errors.Is(err, storage.ErrNoSnapshot) {
		log.Errorf("load admin programs: %s", err)
	}
	if len(s.adminPrograms) == 0 {
		s.adminPrograms = DefaultAdminPrograms(s.NowFunc())
	}

	if err := store.Load(ctx, storage.KeyUserPrograms, &s.userPrograms); err != nil && !errors.Is(err, storage.ErrNoSnapshot) {
		log.Errorf("load user programs: %s", err)
	}

	var active ActiveProgram
	if err := store.Load(ctx, storage.KeyActiveProgram, &active); err == nil {
		s.active = &active
	} else if !errors.Is(err, storage.ErrNoSnapshot) {
		log.Errorf("load active program: %s", err)
	}

	return s
}

// Programs returns copies of both collections.
func (s *Service) Programs() (adminPrograms, userPrograms []Program) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	adminPrograms = make([]Program, len(s.adminPrograms))
	copy(adminPrograms, s.adminPrograms)
	userPrograms = make([]Program, len(s.userPrograms))
	copy(userPrograms, s.userPrograms)
	return adminPrograms, userPrograms
}

// Active returns the active program, nil when none is set.
func (s *Service) Active() *ActiveProgram {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if s.active == nil {
		return nil
	}
	active := *s.active
	return &active
}

// Save validates the draft and commits it: a draft without an id becomes a
// new program, a draft with an id merges into the existing record. Editing
// never changes IsAdmin or CreatedAt. Nothing is persisted when validation
// fails.
func (s *Service) Save(ctx context.Context, draft Draft) (_ *Program, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "programs.save")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	if validationErrs := Validate(draft); len(validationErrs) > 0 {
		return nil, validationErrs
	}
	if !draft.Difficulty.Valid() {
		draft.Difficulty = DifficultyBeginner
	}

	s.mutex.Lock()
	defer s.mutex.Unlock()

	if draft.ID == "" {
		program := Program{
			ID:          newProgramID(draft.IsAdmin),
			Name:        draft.Name,
			Description: draft.Description,
			Difficulty:  draft.Difficulty,
			IsAdmin:     draft.IsAdmin,
			Schedule:    draft.Schedule,
			Duration:    draft.Schedule.DurationWeeks(),
			CreatedAt:   s.NowFunc(),
		}

		if program.IsAdmin {
			s.adminPrograms = append(s.adminPrograms, program)
		} else {
			s.userPrograms = append(s.userPrograms, program)
		}
		if err := s.persistPrograms(ctx, program.IsAdmin); err != nil {
			return nil, err
		}
		return &program, nil
	}

	owning := &s.userPrograms
	if draft.IsAdmin {
		owning = &s.adminPrograms
	}
	for i, existing := range *owning {
		if existing.ID != draft.ID {
			continue
		}

		updated := existing
		updated.Name = draft.Name
		updated.Description = draft.Description
		updated.Difficulty = draft.Difficulty
		updated.Schedule = draft.Schedule
		updated.Duration = draft.Schedule.DurationWeeks()
		(*owning)[i] = updated

		if err := s.persistPrograms(ctx, updated.IsAdmin); err != nil {
			return nil, err
		}
		return &updated, nil
	}

	return nil, ErrProgramNotFound
}

// Activate looks the program up across both collections and snapshots it
// as the active program, starting at week 1. A missing id is a no-op, the
// returned flag tells the two cases apart.
func (s *Service) Activate(ctx context.Context, programID string) (_ *ActiveProgram, found bool, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "programs.activate")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	s.mutex.Lock()
	defer s.mutex.Unlock()

	program, ok := s.findLocked(programID)
	if !ok {
		log.Debugf("activate program %s: not found", programID)
		return nil, false, nil
	}

	s.active = &ActiveProgram{
		Program:     *program,
		StartDate:   s.NowFunc(),
		CurrentWeek: 1,
	}
	if err := s.store.Save(ctx, storage.KeyActiveProgram, s.active); err != nil {
		return nil, true, err
	}

	active := *s.active
	return &active, true, nil
}

// Delete removes the program from its owning collection. Deleting the
// program the active snapshot was derived from clears the singleton too.
func (s *Service) Delete(ctx context.Context, programID string) (found bool, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "programs.delete")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	s.mutex.Lock()
	defer s.mutex.Unlock()

	var isAdminProgram bool
	if found = removeByID(&s.userPrograms, programID); !found {
		if found = removeByID(&s.adminPrograms, programID); found {
			isAdminProgram = true
		}
	}
	if !found {
		log.Debugf("delete program %s: not found", programID)
		return false, nil
	}

	if err := s.persistPrograms(ctx, isAdminProgram); err != nil {
		return true, err
	}

	if s.active != nil && s.active.ID == programID {
		s.active = nil
		if err := s.store.Delete(ctx, storage.KeyActiveProgram); err != nil {
			return true, err
		}
	}

	return true, nil
}

// ResetAdminPrograms restores the built-in curated set.
func (s *Service) ResetAdminPrograms(ctx context.Context) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	s.adminPrograms = DefaultAdminPrograms(s.NowFunc())
	return s.persistPrograms(ctx, true)
}

// Find looks a program up by id across both collections.
func (s *Service) Find(programID string) (*Program, bool) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	program, ok := s.findLocked(programID)
	if !ok {
		return nil, false
	}
	found := *program
	return &found, true
}

func (s *Service) findLocked(programID string) (*Program, bool) {
	for i := range s.adminPrograms {
		if s.adminPrograms[i].ID == programID {
			return &s.adminPrograms[i], true
		}
	}
	for i := range s.userPrograms {
		if s.userPrograms[i].ID == programID {
			return &s.userPrograms[i], true
		}
	}
	return nil, false
}

func (s *Service) persistPrograms(ctx context.Context, isAdmin bool) error {
	if isAdmin {
		return s.store.Save(ctx, storage.KeyAdminPrograms, s.adminPrograms)
	}
	return s.store.Save(ctx, storage.KeyUserPrograms, s.userPrograms)
}

func removeByID(programs *[]Program, programID string) bool {
	for i, p := range *programs {
		if p.ID == programID {
			*programs = append((*programs)[:i], (*programs)[i+1:]...)
			return true
		}
	}
	return false
}

func newProgramID(isAdmin bool) string {
	if isAdmin {
		return "admin-" + uuid.NewString()
	}
	return uuid.NewString()
}
