package store

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"ultima-todo-api/internal/database"
	"ultima-todo-api/internal/models"
)

// ErrNotFound is returned when a row does not exist or is not visible to
// the requesting user.
var ErrNotFound = errors.New("not found")

func wrapNotFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}

// ListTasks returns all tasks owned by the user, ordered by id ascending.
func ListTasks(userID string) ([]models.Task, error) {
	var tasks []models.Task
	err := database.GetDB().
		Where("user_id = ?", userID).
		Order("id asc").
		Find(&tasks).Error
	return tasks, err
}

// GetTask returns a single task owned by the user.
func GetTask(userID string, id uint) (models.Task, error) {
	var task models.Task
	err := database.GetDB().
		Where("id = ? AND user_id = ?", id, userID).
		First(&task).Error
	return task, wrapNotFound(err)
}

// CreateTask inserts a task and fills in the generated id.
func CreateTask(task *models.Task) error {
	return database.GetDB().Create(task).Error
}

// SaveTask persists all columns of an already-loaded task.
func SaveTask(task *models.Task) error {
	return database.GetDB().Save(task).Error
}

// UpdateTaskFields applies a partial column update to a task owned by the
// user and returns the refreshed row.
func UpdateTaskFields(userID string, id uint, fields map[string]any) (models.Task, error) {
	task, err := GetTask(userID, id)
	if err != nil {
		return models.Task{}, err
	}
	if err := database.GetDB().Model(&task).Updates(fields).Error; err != nil {
		return models.Task{}, err
	}
	return GetTask(userID, id)
}

// DeleteTask removes a task owned by the user. Subtasks live inside the
// task row, so they go with it.
func DeleteTask(userID string, id uint) error {
	task, err := GetTask(userID, id)
	if err != nil {
		return err
	}
	return database.GetDB().Delete(&task).Error
}

// ToggleTaskStatus flips a task between Complete and To Do: any non-Complete
// status becomes Complete, Complete becomes To Do. The intermediate statuses
// are reachable only through an explicit status update.
func ToggleTaskStatus(userID string, id uint) (models.Task, error) {
	task, err := GetTask(userID, id)
	if err != nil {
		return models.Task{}, err
	}
	newStatus := models.StatusComplete
	if task.Status == models.StatusComplete {
		newStatus = models.StatusToDo
	}
	if err := database.GetDB().Model(&task).Update("status", newStatus).Error; err != nil {
		return models.Task{}, err
	}
	task.Status = newStatus
	return task, nil
}

// IncrementTimeTracked adds one tracked second to a task. Called once per
// wall-clock second while the task's timer is active.
func IncrementTimeTracked(id uint) error {
	return database.GetDB().
		Model(&models.Task{}).
		Where("id = ?", id).
		UpdateColumn("time_tracked", gorm.Expr("time_tracked + 1")).Error
}

// ListRecurring returns every task with a recurrence rule, any owner.
func ListRecurring() ([]models.Task, error) {
	var tasks []models.Task
	err := database.GetDB().
		Where("recurrence <> ''").
		Order("id asc").
		Find(&tasks).Error
	return tasks, err
}

// SetDueDate overwrites a task's due date.
func SetDueDate(id uint, dueDate string) error {
	return database.GetDB().
		Model(&models.Task{}).
		Where("id = ?", id).
		Update("due_date", dueDate).Error
}

// replaceSubtasks persists a new subtask list for a task, copy-on-write:
// the stored slice is replaced wholesale, never mutated in place.
func replaceSubtasks(task *models.Task, subtasks models.Subtasks) error {
	if err := database.GetDB().Model(task).Update("subtasks", subtasks).Error; err != nil {
		return err
	}
	task.Subtasks = subtasks
	return nil
}

// nextSubtaskID picks a timestamp-based id that does not collide with any
// id already on the list (two additions can land in the same millisecond).
func nextSubtaskID(existing models.Subtasks, candidate int64) int64 {
	for {
		collision := false
		for _, sub := range existing {
			if sub.ID == candidate {
				collision = true
				break
			}
		}
		if !collision {
			return candidate
		}
		candidate++
	}
}

// AddSubtask appends a new incomplete subtask to a task.
func AddSubtask(userID string, taskID uint, title string) (models.Task, error) {
	task, err := GetTask(userID, taskID)
	if err != nil {
		return models.Task{}, err
	}
	updated := append(append(models.Subtasks(nil), task.Subtasks...), models.Subtask{
		ID:        nextSubtaskID(task.Subtasks, time.Now().UnixMilli()),
		Title:     title,
		Completed: false,
	})
	if err := replaceSubtasks(&task, updated); err != nil {
		return models.Task{}, err
	}
	return task, nil
}

// AppendSubtasks adds a batch of subtasks (e.g. AI-generated ones) to a
// task, re-minting any id that collides with an existing one.
func AppendSubtasks(userID string, taskID uint, subtasks []models.Subtask) (models.Task, error) {
	task, err := GetTask(userID, taskID)
	if err != nil {
		return models.Task{}, err
	}
	updated := append(models.Subtasks(nil), task.Subtasks...)
	for _, sub := range subtasks {
		sub.ID = nextSubtaskID(updated, sub.ID)
		updated = append(updated, sub)
	}
	if err := replaceSubtasks(&task, updated); err != nil {
		return models.Task{}, err
	}
	return task, nil
}

// ToggleSubtask flips the completed flag of one subtask.
func ToggleSubtask(userID string, taskID uint, subtaskID int64) (models.Task, error) {
	task, err := GetTask(userID, taskID)
	if err != nil {
		return models.Task{}, err
	}
	found := false
	updated := make(models.Subtasks, 0, len(task.Subtasks))
	for _, sub := range task.Subtasks {
		if sub.ID == subtaskID {
			sub.Completed = !sub.Completed
			found = true
		}
		updated = append(updated, sub)
	}
	if !found {
		return models.Task{}, ErrNotFound
	}
	if err := replaceSubtasks(&task, updated); err != nil {
		return models.Task{}, err
	}
	return task, nil
}

// EditSubtask renames one subtask.
func EditSubtask(userID string, taskID uint, subtaskID int64, title string) (models.Task, error) {
	task, err := GetTask(userID, taskID)
	if err != nil {
		return models.Task{}, err
	}
	found := false
	updated := make(models.Subtasks, 0, len(task.Subtasks))
	for _, sub := range task.Subtasks {
		if sub.ID == subtaskID {
			sub.Title = title
			found = true
		}
		updated = append(updated, sub)
	}
	if !found {
		return models.Task{}, ErrNotFound
	}
	if err := replaceSubtasks(&task, updated); err != nil {
		return models.Task{}, err
	}
	return task, nil
}

// DeleteSubtask removes one subtask from a task.
func DeleteSubtask(userID string, taskID uint, subtaskID int64) (models.Task, error) {
	task, err := GetTask(userID, taskID)
	if err != nil {
		return models.Task{}, err
	}
	found := false
	updated := make(models.Subtasks, 0, len(task.Subtasks))
	for _, sub := range task.Subtasks {
		if sub.ID == subtaskID {
			found = true
			continue
		}
		updated = append(updated, sub)
	}
	if !found {
		return models.Task{}, ErrNotFound
	}
	if err := replaceSubtasks(&task, updated); err != nil {
		return models.Task{}, err
	}
	return task, nil
}
