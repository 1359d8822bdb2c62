package workouts_test

import (
	"context"
	"testing"
	"time"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/strenvy/strenvy/internal/programs"
	"github.com/strenvy/strenvy/internal/storage"
	"github.com/strenvy/strenvy/internal/workouts"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func newTestService(t *testing.T) (*workouts.Service, *storage.MemStore) {
	t.Helper()
	store := storage.NewMemStore()
	service := workouts.NewService(context.Background(), store)
	service.NowFunc = func() time.Time {
		return time.Date(2025, 6, 15, 10, 0, 0, 0, time.UTC)
	}
	return service, store
}

func pushTemplate() workouts.Workout {
	return workouts.Workout{
		Name: "Quick Push",
		Exercises: []programs.ExerciseConfig{
			{ExerciseID: "0009", Name: "archer push up", BodyPart: "chest", Sets: 4, Reps: 10, Rest: 90},
		},
	}
}

func TestService_Create(t *testing.T) {
	ctx := context.Background()
	service, store := newTestService(t)

	assert.Empty(t, service.Workouts())

	created, err := service.Create(ctx, pushTemplate())
	require.NoError(t, err)
	require.NotNil(t, created)

	assert.NotEmpty(t, created.ID)
	assert.Equal(t, service.NowFunc(), created.CreatedAt)
	assert.True(t, store.Contains(storage.KeyWorkouts))

	all := service.Workouts()
	require.Len(t, all, 1)
	assert.Equal(t, created.ID, all[0].ID)
}

func TestService_Create_Many(t *testing.T) {
	ctx := context.Background()
	service, store := newTestService(t)

	const total = 25
	seenIDs := make(map[string]bool, total)
	for i := 0; i < total; i++ {
		created, err := service.Create(ctx, workouts.Workout{
			Name: gofakeit.Name(),
			Exercises: []programs.ExerciseConfig{
				{
					ExerciseID: gofakeit.DigitN(4),
					Name:       gofakeit.HipsterWord(),
					BodyPart:   "back",
					Sets:       gofakeit.Number(1, 6),
					Reps:       gofakeit.Number(1, 20),
					Rest:       gofakeit.Number(30, 180),
				},
			},
		})
		require.NoError(t, err)
		assert.False(t, seenIDs[created.ID], "workout ids must be unique")
		seenIDs[created.ID] = true
	}

	assert.Len(t, service.Workouts(), total)
	assert.True(t, store.Contains(storage.KeyWorkouts))
}

func TestService_LoadsStoredWorkouts(t *testing.T) {
	ctx := context.Background()
	store := storage.NewMemStore()
	require.NoError(t, store.Save(ctx, storage.KeyWorkouts, []workouts.Workout{{ID: "w1", Name: "Stored"}}))

	service := workouts.NewService(ctx, store)
	all := service.Workouts()
	require.Len(t, all, 1)
	assert.Equal(t, "Stored", all[0].Name)
}

func TestService_Update(t *testing.T) {
	ctx := context.Background()
	service, _ := newTestService(t)

	created, err := service.Create(ctx, pushTemplate())
	require.NoError(t, err)

	updated, err := service.Update(ctx, workouts.Workout{
		ID:   created.ID,
		Name: "Quick Push v2",
		Exercises: []programs.ExerciseConfig{
			{ExerciseID: "0008", Name: "archer pull up", BodyPart: "back", Sets: 4, Reps: 8, Rest: 120},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, "Quick Push v2", updated.Name)
	assert.Equal(t, created.CreatedAt, updated.CreatedAt)
	require.Len(t, updated.Exercises, 1)
	assert.Equal(t, "0008", updated.Exercises[0].ExerciseID)

	_, err = service.Update(ctx, workouts.Workout{ID: "no-such-workout", Name: "Ghost"})
	assert.ErrorIs(t, err, workouts.ErrWorkoutNotFound)
}

func TestService_Delete(t *testing.T) {
	ctx := context.Background()
	service, _ := newTestService(t)

	created, err := service.Create(ctx, pushTemplate())
	require.NoError(t, err)

	found, err := service.Delete(ctx, created.ID)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Empty(t, service.Workouts())

	found, err = service.Delete(ctx, created.ID)
	require.NoError(t, err)
	assert.False(t, found)
}
