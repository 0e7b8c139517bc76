package handlers

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"

	"ultima-todo-api/internal/models"
	"ultima-todo-api/internal/store"
)

func TestCreateTask_Defaults(t *testing.T) {
	setupHandlerDB(t)
	r := apiRouter()
	token := testToken(t, "u-1", "alice")

	w := doJSON(t, r, http.MethodPost, "/api/tasks", map[string]any{
		"title": "Write report",
	}, token)
	require.Equal(t, http.StatusCreated, w.Code)

	var created models.Task
	decodeBody(t, w, &created)
	require.NotZero(t, created.ID)
	require.Equal(t, models.StatusToDo, created.Status)
	require.Equal(t, models.PriorityMedium, created.Priority)
	require.NotEmpty(t, created.DueDate, "due date defaults to now")
	require.Equal(t, 0, created.Progress)
}

func TestCreateTask_RejectsUnknownStatus(t *testing.T) {
	setupHandlerDB(t)
	r := apiRouter()
	token := testToken(t, "u-1", "alice")

	w := doJSON(t, r, http.MethodPost, "/api/tasks", map[string]any{
		"title":  "Bad",
		"status": "Done",
	}, token)
	require.Equal(t, http.StatusBadRequest, w.Code)

	tasks, err := store.ListTasks("u-1")
	require.NoError(t, err)
	require.Empty(t, tasks, "no task is created on validation failure")
}

func TestCreateTask_RejectsUnknownPriorityAndRecurrence(t *testing.T) {
	setupHandlerDB(t)
	r := apiRouter()
	token := testToken(t, "u-1", "alice")

	w := doJSON(t, r, http.MethodPost, "/api/tasks", map[string]any{
		"title":    "Bad",
		"priority": "Critical",
	}, token)
	require.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(t, r, http.MethodPost, "/api/tasks", map[string]any{
		"title":      "Bad",
		"recurrence": "Yearly",
	}, token)
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCreateTask_RejectsSliderOutOfRange(t *testing.T) {
	setupHandlerDB(t)
	r := apiRouter()
	token := testToken(t, "u-1", "alice")

	w := doJSON(t, r, http.MethodPost, "/api/tasks", map[string]any{
		"title":      "Bad",
		"importance": 11,
	}, token)
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetTasks_OnlyOwnTasks(t *testing.T) {
	setupHandlerDB(t)
	r := apiRouter()

	mine := models.Task{Title: "mine", UserID: "u-1"}
	theirs := models.Task{Title: "theirs", UserID: "u-2"}
	require.NoError(t, store.CreateTask(&mine))
	require.NoError(t, store.CreateTask(&theirs))

	w := doJSON(t, r, http.MethodGet, "/api/tasks", nil, testToken(t, "u-1", "alice"))
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Tasks []models.Task `json:"tasks"`
		Count int           `json:"count"`
	}
	decodeBody(t, w, &resp)
	require.Equal(t, 1, resp.Count)
	require.Equal(t, "mine", resp.Tasks[0].Title)
}

func TestToggleTaskStatus_RoundTrip(t *testing.T) {
	setupHandlerDB(t)
	r := apiRouter()
	token := testToken(t, "u-1", "alice")

	task := models.Task{Title: "t", Status: models.StatusInProgress, UserID: "u-1"}
	require.NoError(t, store.CreateTask(&task))
	path := fmt.Sprintf("/api/tasks/%d/toggle", task.ID)

	w := doJSON(t, r, http.MethodPost, path, nil, token)
	require.Equal(t, http.StatusOK, w.Code)
	var toggled models.Task
	decodeBody(t, w, &toggled)
	require.Equal(t, models.StatusComplete, toggled.Status)

	w = doJSON(t, r, http.MethodPost, path, nil, token)
	require.Equal(t, http.StatusOK, w.Code)
	decodeBody(t, w, &toggled)
	require.Equal(t, models.StatusToDo, toggled.Status)
}

func TestUpdateTaskStatus_ClosedEnum(t *testing.T) {
	setupHandlerDB(t)
	r := apiRouter()
	token := testToken(t, "u-1", "alice")

	task := models.Task{Title: "t", Status: models.StatusToDo, UserID: "u-1"}
	require.NoError(t, store.CreateTask(&task))
	path := fmt.Sprintf("/api/tasks/%d/status", task.ID)

	w := doJSON(t, r, http.MethodPatch, path, map[string]any{"status": "In Review"}, token)
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, r, http.MethodPatch, path, map[string]any{"status": "Archived"}, token)
	require.Equal(t, http.StatusBadRequest, w.Code)

	got, err := store.GetTask("u-1", task.ID)
	require.NoError(t, err)
	require.Equal(t, models.StatusInReview, got.Status, "rejected status leaves the task untouched")
}

func TestUpdateTask_PartialFields(t *testing.T) {
	setupHandlerDB(t)
	r := apiRouter()
	token := testToken(t, "u-1", "alice")

	task := models.Task{Title: "before", Priority: models.PriorityLow, Description: "keep me", UserID: "u-1"}
	require.NoError(t, store.CreateTask(&task))

	w := doJSON(t, r, http.MethodPut, fmt.Sprintf("/api/tasks/%d", task.ID), map[string]any{
		"title":    "after",
		"priority": "Urgent",
	}, token)
	require.Equal(t, http.StatusOK, w.Code)

	var updated models.Task
	decodeBody(t, w, &updated)
	require.Equal(t, "after", updated.Title)
	require.Equal(t, models.PriorityUrgent, updated.Priority)
	require.Equal(t, "keep me", updated.Description)
}

func TestDeleteTask_NotFoundForOtherUser(t *testing.T) {
	setupHandlerDB(t)
	r := apiRouter()

	task := models.Task{Title: "t", UserID: "u-1"}
	require.NoError(t, store.CreateTask(&task))

	w := doJSON(t, r, http.MethodDelete, fmt.Sprintf("/api/tasks/%d", task.ID), nil, testToken(t, "u-2", "bob"))
	require.Equal(t, http.StatusNotFound, w.Code)

	w = doJSON(t, r, http.MethodDelete, fmt.Sprintf("/api/tasks/%d", task.ID), nil, testToken(t, "u-1", "alice"))
	require.Equal(t, http.StatusOK, w.Code)

	_, err := store.GetTask("u-1", task.ID)
	require.ErrorIs(t, err, store.ErrNotFound)
}

func TestGetStats_CountsByStatus(t *testing.T) {
	setupHandlerDB(t)
	r := apiRouter()

	for _, task := range []models.Task{
		{Title: "a", Status: models.StatusToDo, TimeTracked: 60, UserID: "u-1"},
		{Title: "b", Status: models.StatusToDo, TimeTracked: 30, UserID: "u-1"},
		{Title: "c", Status: models.StatusComplete, UserID: "u-1"},
		{Title: "d", Status: models.StatusToDo, UserID: "u-2"},
	} {
		task := task
		require.NoError(t, store.CreateTask(&task))
	}

	w := doJSON(t, r, http.MethodGet, "/api/stats", nil, testToken(t, "u-1", "alice"))
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Statuses       map[string]int64 `json:"statuses"`
		Total          int64            `json:"total"`
		TrackedSeconds int64            `json:"tracked_seconds"`
	}
	decodeBody(t, w, &resp)
	require.Equal(t, int64(2), resp.Statuses["To Do"])
	require.Equal(t, int64(1), resp.Statuses["Complete"])
	require.Equal(t, int64(0), resp.Statuses["In Progress"])
	require.Equal(t, int64(3), resp.Total)
	require.Equal(t, int64(90), resp.TrackedSeconds)
}
