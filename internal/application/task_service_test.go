package application

import (
	"context"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/agrosphere-api/internal/domain/entity"
	"github.com/oksasatya/agrosphere-api/internal/infrastructure/memory"
	"github.com/oksasatya/agrosphere-api/pkg/helpers"
)

type recordingNotifier struct {
	mu    sync.Mutex
	rooms []string
}

func (n *recordingNotifier) Notify(room string) int {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.rooms = append(n.rooms, room)
	return 0
}

func (n *recordingNotifier) Rooms() []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]string(nil), n.rooms...)
}

func newTaskService() (*TaskService, *recordingNotifier) {
	n := &recordingNotifier{}
	return NewTaskService(memory.NewTaskRepository(), n, helpers.NewNopLogger()), n
}

func strPtr(s string) *string { return &s }

func TestCreateTaskDefaultsAndNotifies(t *testing.T) {
	svc, n := newTaskService()
	ctx := context.Background()

	task, err := svc.Create(ctx, "a@x.com", CreateTaskInput{Title: "Water crops"})
	require.NoError(t, err)
	assert.False(t, task.ID.IsZero())
	assert.Equal(t, entity.DefaultTaskCategory, task.Category)
	assert.Equal(t, "a@x.com", task.UserID)
	assert.False(t, task.CreatedAt.IsZero())
	assert.Equal(t, []string{"a@x.com"}, n.Rooms())

	tasks, err := svc.List(ctx, "a@x.com", "a@x.com")
	require.NoError(t, err)
	require.Len(t, tasks, 1)
	assert.Equal(t, task.ID, tasks[0].ID)
	assert.Equal(t, "Water crops", tasks[0].Title)
}

func TestCreateTaskTitleBoundary(t *testing.T) {
	svc, n := newTaskService()
	ctx := context.Background()

	_, err := svc.Create(ctx, "a@x.com", CreateTaskInput{Title: strings.Repeat("t", 50)})
	require.NoError(t, err)

	_, err = svc.Create(ctx, "a@x.com", CreateTaskInput{Title: strings.Repeat("t", 51)})
	assert.ErrorIs(t, err, ErrInvalidTitle)

	_, err = svc.Create(ctx, "a@x.com", CreateTaskInput{Title: ""})
	assert.ErrorIs(t, err, ErrInvalidTitle)

	_, err = svc.Create(ctx, "a@x.com", CreateTaskInput{Title: "   "})
	require.NoError(t, err)

	tasks, err := svc.List(ctx, "a@x.com", "a@x.com")
	require.NoError(t, err)
	assert.Len(t, tasks, 2)
	assert.Len(t, n.Rooms(), 2)
}

func TestCreateTaskCountsCharactersNotBytes(t *testing.T) {
	svc, _ := newTaskService()
	_, err := svc.Create(context.Background(), "a@x.com", CreateTaskInput{Title: strings.Repeat("é", 50)})
	assert.NoError(t, err)
}

func TestCreateTaskDescriptionBoundary(t *testing.T) {
	svc, _ := newTaskService()
	ctx := context.Background()

	_, err := svc.Create(ctx, "a@x.com", CreateTaskInput{Title: "ok", Description: strings.Repeat("d", 200)})
	require.NoError(t, err)

	_, err = svc.Create(ctx, "a@x.com", CreateTaskInput{Title: "ok", Description: strings.Repeat("d", 201)})
	assert.ErrorIs(t, err, ErrInvalidDescription)
}

func TestListOtherOwnerIsForbidden(t *testing.T) {
	svc, _ := newTaskService()
	_, err := svc.List(context.Background(), "b@x.com", "a@x.com")
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestListIsIdempotentAndNeverNil(t *testing.T) {
	svc, _ := newTaskService()
	ctx := context.Background()

	empty, err := svc.List(ctx, "a@x.com", "a@x.com")
	require.NoError(t, err)
	assert.NotNil(t, empty)
	assert.Empty(t, empty)

	_, err = svc.Create(ctx, "a@x.com", CreateTaskInput{Title: "one"})
	require.NoError(t, err)
	first, err := svc.List(ctx, "a@x.com", "a@x.com")
	require.NoError(t, err)
	second, err := svc.List(ctx, "a@x.com", "a@x.com")
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestUpdateAndDeleteAreOwnerScoped(t *testing.T) {
	svc, n := newTaskService()
	ctx := context.Background()

	task, err := svc.Create(ctx, "a@x.com", CreateTaskInput{Title: "mine"})
	require.NoError(t, err)
	id := task.ID.Hex()

	_, err = svc.Update(ctx, id, "b@x.com", UpdateTaskInput{Title: strPtr("stolen")})
	assert.ErrorIs(t, err, ErrTaskNotFound)
	assert.ErrorIs(t, svc.Delete(ctx, id, "b@x.com"), ErrTaskNotFound)

	tasks, err := svc.List(ctx, "a@x.com", "a@x.com")
	require.NoError(t, err)
	require.Len(t, tasks, 1)
	assert.Equal(t, "mine", tasks[0].Title)
	assert.Equal(t, []string{"a@x.com"}, n.Rooms())
}

func TestUpdateDropsInvalidFields(t *testing.T) {
	svc, n := newTaskService()
	ctx := context.Background()

	task, err := svc.Create(ctx, "a@x.com", CreateTaskInput{Title: "plant", Description: "beans"})
	require.NoError(t, err)

	applied, err := svc.Update(ctx, task.ID.Hex(), "a@x.com", UpdateTaskInput{
		Title:       strPtr(strings.Repeat("x", 51)),
		Description: strPtr(strings.Repeat("y", 201)),
		Category:    strPtr("Done"),
	})
	require.NoError(t, err)
	assert.Nil(t, applied.Title)
	assert.Nil(t, applied.Description)
	require.NotNil(t, applied.Category)
	assert.Equal(t, "Done", *applied.Category)

	tasks, err := svc.List(ctx, "a@x.com", "a@x.com")
	require.NoError(t, err)
	assert.Equal(t, "plant", tasks[0].Title)
	assert.Equal(t, "beans", tasks[0].Description)
	assert.Equal(t, "Done", tasks[0].Category)
	assert.Equal(t, []string{"a@x.com", "a@x.com"}, n.Rooms())
}

func TestUpdateWithNoApplicableFieldsStillChecksExistence(t *testing.T) {
	svc, _ := newTaskService()
	ctx := context.Background()

	task, err := svc.Create(ctx, "a@x.com", CreateTaskInput{Title: "plant"})
	require.NoError(t, err)

	applied, err := svc.Update(ctx, task.ID.Hex(), "a@x.com", UpdateTaskInput{Title: strPtr("")})
	require.NoError(t, err)
	assert.True(t, applied.Empty())

	_, err = svc.Update(ctx, "64b7f0c2a1b2c3d4e5f60718", "a@x.com", UpdateTaskInput{})
	assert.ErrorIs(t, err, ErrTaskNotFound)
}

func TestInvalidIDFailsBeforeStorage(t *testing.T) {
	svc, n := newTaskService()
	ctx := context.Background()

	_, err := svc.Update(ctx, "not-an-id", "a@x.com", UpdateTaskInput{Title: strPtr("x")})
	assert.ErrorIs(t, err, ErrInvalidID)
	assert.ErrorIs(t, svc.Delete(ctx, "xyz", "a@x.com"), ErrInvalidID)
	assert.Empty(t, n.Rooms())
}

func TestDeleteThenDeleteAgainIsNotFound(t *testing.T) {
	svc, n := newTaskService()
	ctx := context.Background()

	task, err := svc.Create(ctx, "a@x.com", CreateTaskInput{Title: "plant"})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, task.ID.Hex(), "a@x.com"))
	assert.ErrorIs(t, svc.Delete(ctx, task.ID.Hex(), "a@x.com"), ErrTaskNotFound)
	assert.Len(t, n.Rooms(), 2)
}
