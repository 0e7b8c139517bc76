package handlers

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"

	"ultima-todo-api/internal/models"
	"ultima-todo-api/internal/store"
)

func TestSubtaskEndpoints_Lifecycle(t *testing.T) {
	setupHandlerDB(t)
	r := apiRouter()
	token := testToken(t, "u-1", "alice")

	task := models.Task{Title: "parent", UserID: "u-1"}
	require.NoError(t, store.CreateTask(&task))
	base := fmt.Sprintf("/api/tasks/%d/subtasks", task.ID)

	w := doJSON(t, r, http.MethodPost, base, map[string]any{"title": "outline"}, token)
	require.Equal(t, http.StatusOK, w.Code)
	w = doJSON(t, r, http.MethodPost, base, map[string]any{"title": "draft"}, token)
	require.Equal(t, http.StatusOK, w.Code)

	var updated models.Task
	decodeBody(t, w, &updated)
	require.Len(t, updated.Subtasks, 2)
	require.Equal(t, 0, updated.Progress)

	subtaskID := updated.Subtasks[0].ID
	w = doJSON(t, r, http.MethodPost, fmt.Sprintf("%s/%d/toggle", base, subtaskID), nil, token)
	require.Equal(t, http.StatusOK, w.Code)
	decodeBody(t, w, &updated)
	require.True(t, updated.Subtasks[0].Completed)
	require.Equal(t, 50, updated.Progress)

	w = doJSON(t, r, http.MethodPatch, fmt.Sprintf("%s/%d", base, subtaskID), map[string]any{"title": "outline v2"}, token)
	require.Equal(t, http.StatusOK, w.Code)
	decodeBody(t, w, &updated)
	require.Equal(t, "outline v2", updated.Subtasks[0].Title)

	w = doJSON(t, r, http.MethodDelete, fmt.Sprintf("%s/%d", base, subtaskID), nil, token)
	require.Equal(t, http.StatusOK, w.Code)
	decodeBody(t, w, &updated)
	require.Len(t, updated.Subtasks, 1)
	require.Equal(t, 0, updated.Progress)
}

func TestToggleSubtask_UnknownIDIs404(t *testing.T) {
	setupHandlerDB(t)
	r := apiRouter()
	token := testToken(t, "u-1", "alice")

	task := models.Task{Title: "parent", UserID: "u-1"}
	require.NoError(t, store.CreateTask(&task))

	w := doJSON(t, r, http.MethodPost, fmt.Sprintf("/api/tasks/%d/subtasks/999/toggle", task.ID), nil, token)
	require.Equal(t, http.StatusNotFound, w.Code)
}
