package tracker

import (
	"testing"

	"github.com/stretchr/testify/require"

	"ultima-todo-api/internal/database"
	"ultima-todo-api/internal/models"
	"ultima-todo-api/internal/store"
	"ultima-todo-api/internal/testutil"
)

func setupTasks(t *testing.T) (models.Task, models.Task) {
	t.Helper()
	db, err := testutil.NewInMemoryDB()
	require.NoError(t, err)
	database.DB = db

	a := models.Task{Title: "A", Status: models.StatusToDo, UserID: "u-1"}
	b := models.Task{Title: "B", Status: models.StatusToDo, UserID: "u-1"}
	require.NoError(t, store.CreateTask(&a))
	require.NoError(t, store.CreateTask(&b))
	return a, b
}

func TestToggle_AccruesExactSeconds(t *testing.T) {
	a, b := setupTasks(t)
	tr := New(nil)

	state := tr.Toggle("u-1", a.ID)
	require.True(t, state.Running)
	require.Equal(t, a.ID, state.TaskID)

	for i := 0; i < 5; i++ {
		tr.Tick()
	}
	state = tr.Toggle("u-1", a.ID) // pause
	require.False(t, state.Running)

	// Ticks after pausing accrue nothing
	tr.Tick()
	tr.Tick()

	gotA, err := store.GetTask("u-1", a.ID)
	require.NoError(t, err)
	require.Equal(t, 5, gotA.TimeTracked)

	gotB, err := store.GetTask("u-1", b.ID)
	require.NoError(t, err)
	require.Equal(t, 0, gotB.TimeTracked)
}

func TestToggle_SingleTimerInvariant(t *testing.T) {
	a, b := setupTasks(t)
	tr := New(nil)

	tr.Toggle("u-1", a.ID)
	tr.Tick()
	tr.Tick()

	// Starting B stops A implicitly; exactly one timer stays active
	state := tr.Toggle("u-1", b.ID)
	require.True(t, state.Running)
	require.Equal(t, b.ID, state.TaskID)

	tr.Tick()
	tr.Tick()
	tr.Tick()

	gotA, err := store.GetTask("u-1", a.ID)
	require.NoError(t, err)
	require.Equal(t, 2, gotA.TimeTracked)

	gotB, err := store.GetTask("u-1", b.ID)
	require.NoError(t, err)
	require.Equal(t, 3, gotB.TimeTracked)
}

func TestToggle_PauseFreezesTime(t *testing.T) {
	a, _ := setupTasks(t)
	tr := New(nil)

	tr.Toggle("u-1", a.ID)
	tr.Tick()
	tr.Toggle("u-1", a.ID)

	state := tr.State()
	require.False(t, state.Running)
	require.Zero(t, state.TaskID)

	got, err := store.GetTask("u-1", a.ID)
	require.NoError(t, err)
	require.Equal(t, 1, got.TimeTracked)
}

func TestPomodoro_CountdownAndBreakNotification(t *testing.T) {
	a, _ := setupTasks(t)

	notifications := 0
	tr := New(func(userID, event string, payload map[string]any) {
		require.Equal(t, "u-1", userID)
		require.Equal(t, "pomodoro_break", event)
		notifications++
	})

	state := tr.SetPomodoro("u-1", true)
	require.True(t, state.Pomodoro)
	require.False(t, state.Running)
	require.Equal(t, PomodoroSeconds, state.Remaining)

	// Task id is ignored while pomodoro is engaged
	state = tr.Toggle("u-1", a.ID)
	require.True(t, state.Running)
	require.Zero(t, state.TaskID)

	for i := 0; i < PomodoroSeconds; i++ {
		tr.Tick()
	}

	state = tr.State()
	require.Equal(t, 1, notifications)
	require.False(t, state.Running, "countdown pauses after completing")
	require.Equal(t, PomodoroSeconds, state.Remaining, "countdown re-arms to full length")

	// Further ticks while paused change nothing and fire nothing
	tr.Tick()
	require.Equal(t, 1, notifications)

	// No task accrued time during the pomodoro session
	got, err := store.GetTask("u-1", a.ID)
	require.NoError(t, err)
	require.Equal(t, 0, got.TimeTracked)
}

func TestPomodoro_PauseResume(t *testing.T) {
	_, _ = setupTasks(t)
	tr := New(nil)

	tr.SetPomodoro("u-1", true)
	tr.Toggle("u-1", 0) // start
	tr.Tick()
	tr.Tick()

	state := tr.Toggle("u-1", 0) // pause
	require.False(t, state.Running)
	require.Equal(t, PomodoroSeconds-2, state.Remaining)

	state = tr.Toggle("u-1", 0) // resume
	require.True(t, state.Running)

	// Leaving pomodoro mode re-arms and stops everything
	state = tr.SetPomodoro("u-1", false)
	require.False(t, state.Pomodoro)
	require.False(t, state.Running)
}
