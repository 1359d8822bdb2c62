package programs_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/strenvy/strenvy/internal/programs"
	"github.com/strenvy/strenvy/internal/storage"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func newTestService(t *testing.T) (*programs.Service, *storage.MemStore) {
	t.Helper()
	store := storage.NewMemStore()
	service := programs.NewService(context.Background(), store)
	service.NowFunc = func() time.Time {
		return time.Date(2025, 6, 15, 10, 0, 0, 0, time.UTC)
	}
	return service, store
}

func validDraft(name string) programs.Draft {
	return programs.Draft{
		Name:       name,
		Difficulty: programs.DifficultyIntermediate,
		Schedule: programs.Schedule{
			"2025-06-16": {Name: "Day One", Exercises: []programs.ExerciseConfig{
				{ExerciseID: "0001", Name: "3/4 sit-up", BodyPart: "waist", Sets: 3, Reps: 15, Rest: 60},
			}},
			"2025-06-24": {Name: "Day Two", Exercises: []programs.ExerciseConfig{
				{ExerciseID: "0008", Name: "archer pull up", BodyPart: "back", Sets: 4, Reps: 8, Rest: 120},
			}},
		},
	}
}

func TestService_New_EmptyStore_SeedsDefaults(t *testing.T) {
	service, _ := newTestService(t)

	adminPrograms, userPrograms := service.Programs()
	require.Len(t, adminPrograms, 4)
	assert.Empty(t, userPrograms)
	assert.Nil(t, service.Active())

	for _, p := range adminPrograms {
		assert.True(t, p.IsAdmin)
		assert.NotEmpty(t, p.Schedule)
		assert.Equal(t, p.Schedule.DurationWeeks(), p.Duration)
	}
}

func TestService_New_EmptyAdminSnapshot_SeedsDefaults(t *testing.T) {
	ctx := context.Background()
	store := storage.NewMemStore()
	// a stored empty list is treated the same as no list at all
	require.NoError(t, store.Save(ctx, storage.KeyAdminPrograms, []programs.Program{}))

	service := programs.NewService(ctx, store)
	adminPrograms, _ := service.Programs()
	assert.Len(t, adminPrograms, 4)
}

func TestService_New_LoadsStoredSnapshots(t *testing.T) {
	ctx := context.Background()
	store := storage.NewMemStore()
	stored := programs.Program{ID: "p1", Name: "Stored Program", Schedule: programs.Schedule{"2025-06-16": {}}}
	require.NoError(t, store.Save(ctx, storage.KeyUserPrograms, []programs.Program{stored}))
	require.NoError(t, store.Save(ctx, storage.KeyActiveProgram, programs.ActiveProgram{
		Program:     stored,
		StartDate:   time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC),
		CurrentWeek: 2,
	}))

	service := programs.NewService(ctx, store)

	_, userPrograms := service.Programs()
	require.Len(t, userPrograms, 1)
	assert.Equal(t, "Stored Program", userPrograms[0].Name)

	active := service.Active()
	require.NotNil(t, active)
	assert.Equal(t, "p1", active.ID)
	assert.Equal(t, 2, active.CurrentWeek)
}

func TestService_Save_NewProgram(t *testing.T) {
	ctx := context.Background()
	service, store := newTestService(t)

	program, err := service.Save(ctx, validDraft("My Split"))
	require.NoError(t, err)
	require.NotNil(t, program)

	assert.NotEmpty(t, program.ID)
	assert.False(t, program.IsAdmin)
	// 2025-06-16 .. 2025-06-24 spans 8 days => 2 weeks + 1
	assert.Equal(t, 3, program.Duration)
	assert.Equal(t, service.NowFunc(), program.CreatedAt)
	assert.True(t, store.Contains(storage.KeyUserPrograms))

	_, userPrograms := service.Programs()
	require.Len(t, userPrograms, 1)
	assert.Equal(t, program.ID, userPrograms[0].ID)
}

func TestService_Save_InvalidDraft_NothingPersisted(t *testing.T) {
	ctx := context.Background()
	service, store := newTestService(t)

	_, err := service.Save(ctx, programs.Draft{Name: "ab"})

	var validationErrs programs.ValidationErrors
	require.ErrorAs(t, err, &validationErrs)
	assert.Len(t, validationErrs, 2)
	assert.False(t, store.Contains(storage.KeyUserPrograms))
}

func TestService_Save_Edit(t *testing.T) {
	ctx := context.Background()
	service, _ := newTestService(t)

	created, err := service.Save(ctx, validDraft("My Split"))
	require.NoError(t, err)

	service.NowFunc = func() time.Time {
		return time.Date(2025, 7, 1, 10, 0, 0, 0, time.UTC)
	}

	edit := validDraft("My Split v2")
	edit.ID = created.ID
	edit.Schedule = programs.Schedule{"2025-07-07": {Name: "Only Day"}}

	updated, err := service.Save(ctx, edit)
	require.NoError(t, err)

	assert.Equal(t, created.ID, updated.ID)
	assert.Equal(t, "My Split v2", updated.Name)
	assert.Equal(t, 1, updated.Duration)
	// editing never moves the creation timestamp
	assert.Equal(t, created.CreatedAt, updated.CreatedAt)

	_, userPrograms := service.Programs()
	require.Len(t, userPrograms, 1)
	assert.Equal(t, "My Split v2", userPrograms[0].Name)
}

func TestService_Save_Edit_UnknownID(t *testing.T) {
	service, _ := newTestService(t)

	edit := validDraft("Ghost")
	edit.ID = "no-such-program"
	_, err := service.Save(context.Background(), edit)
	assert.ErrorIs(t, err, programs.ErrProgramNotFound)
}

func TestService_Activate(t *testing.T) {
	ctx := context.Background()
	service, store := newTestService(t)

	created, err := service.Save(ctx, validDraft("My Split"))
	require.NoError(t, err)

	active, found, err := service.Activate(ctx, created.ID)
	require.NoError(t, err)
	require.True(t, found)
	require.NotNil(t, active)
	assert.Equal(t, created.ID, active.ID)
	assert.Equal(t, 1, active.CurrentWeek)
	assert.Equal(t, service.NowFunc(), active.StartDate)
	assert.True(t, store.Contains(storage.KeyActiveProgram))

	// activating another program replaces the previous one
	adminPrograms, _ := service.Programs()
	replaced, found, err := service.Activate(ctx, adminPrograms[0].ID)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, adminPrograms[0].ID, replaced.ID)
	assert.Equal(t, adminPrograms[0].ID, service.Active().ID)
}

func TestService_Activate_UnknownID(t *testing.T) {
	service, store := newTestService(t)

	active, found, err := service.Activate(context.Background(), "no-such-program")
	require.NoError(t, err)
	assert.False(t, found)
	assert.Nil(t, active)
	assert.False(t, store.Contains(storage.KeyActiveProgram))
}

func TestService_Delete(t *testing.T) {
	ctx := context.Background()
	service, _ := newTestService(t)

	created, err := service.Save(ctx, validDraft("My Split"))
	require.NoError(t, err)

	found, err := service.Delete(ctx, created.ID)
	require.NoError(t, err)
	assert.True(t, found)

	_, userPrograms := service.Programs()
	assert.Empty(t, userPrograms)

	found, err = service.Delete(ctx, created.ID)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestService_Delete_ActiveProgram_ClearsSingleton(t *testing.T) {
	ctx := context.Background()
	service, store := newTestService(t)

	created, err := service.Save(ctx, validDraft("My Split"))
	require.NoError(t, err)
	_, _, err = service.Activate(ctx, created.ID)
	require.NoError(t, err)
	require.NotNil(t, service.Active())

	found, err := service.Delete(ctx, created.ID)
	require.NoError(t, err)
	require.True(t, found)

	assert.Nil(t, service.Active())
	assert.False(t, store.Contains(storage.KeyActiveProgram))
}

func TestService_Delete_OtherProgram_KeepsActive(t *testing.T) {
	ctx := context.Background()
	service, _ := newTestService(t)

	first, err := service.Save(ctx, validDraft("First"))
	require.NoError(t, err)
	second, err := service.Save(ctx, validDraft("Second"))
	require.NoError(t, err)

	_, _, err = service.Activate(ctx, first.ID)
	require.NoError(t, err)

	found, err := service.Delete(ctx, second.ID)
	require.NoError(t, err)
	require.True(t, found)
	require.NotNil(t, service.Active())
	assert.Equal(t, first.ID, service.Active().ID)
}

func TestService_ResetAdminPrograms(t *testing.T) {
	ctx := context.Background()
	service, _ := newTestService(t)

	adminDraft := validDraft("Extra Admin Program")
	adminDraft.IsAdmin = true
	_, err := service.Save(ctx, adminDraft)
	require.NoError(t, err)

	adminPrograms, _ := service.Programs()
	require.Len(t, adminPrograms, 5)

	require.NoError(t, service.ResetAdminPrograms(ctx))
	adminPrograms, _ = service.Programs()
	assert.Len(t, adminPrograms, 4)
}

func TestService_Save_StoreFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	storeMock := NewMocksnapshotStore(ctrl)
	storeMock.EXPECT().
		Load(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(storage.ErrNoSnapshot).
		Times(3)

	ctx := context.Background()
	service := programs.NewService(ctx, storeMock)

	diskFull := errors.New("disk full")
	storeMock.EXPECT().
		Save(gomock.Any(), storage.KeyUserPrograms, gomock.Any()).
		Return(diskFull)

	_, err := service.Save(ctx, validDraft("My Split"))
	assert.ErrorIs(t, err, diskFull)
}
