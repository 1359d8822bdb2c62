package storage

import (
	"context"
	"errors"
)

// Logical snapshot keys. Each key holds a full JSON snapshot of its
// entity collection, there is no incremental format.
const (
	KeyAdminPrograms = "strenvy_admin_programs"
	KeyUserPrograms  = "strenvy_programs"
	KeyActiveProgram = "strenvy_active_program"
	KeyProgress      = "strenvy_progress"
	KeyWorkouts      = "strenvy_workouts"
	KeyUser          = "strenvy_user"
)

// ErrNoSnapshot is returned by Load when there is no stored snapshot for
// the given key, or when the stored content cannot be decoded. Callers
// fall back to their defaults in both cases.
var ErrNoSnapshot = errors.New("no stored snapshot")

type Store interface {
	Load(ctx context.Context, key string, dest interface{}) error
	Save(ctx context.Context, key string, value interface{}) error
	Delete(ctx context.Context, key string) error
}
