package models

import (
	"math"
	"time"
)

// TaskStatus represents the status of a task
type TaskStatus string

const (
	StatusToDo       TaskStatus = "To Do"
	StatusInProgress TaskStatus = "In Progress"
	StatusInReview   TaskStatus = "In Review"
	StatusComplete   TaskStatus = "Complete"
)

// Valid reports whether s is one of the four known statuses.
// Unrecognized values are rejected at the API boundary instead of being
// stored as free text.
func (s TaskStatus) Valid() bool {
	switch s {
	case StatusToDo, StatusInProgress, StatusInReview, StatusComplete:
		return true
	}
	return false
}

// TaskPriority represents the priority of a task
type TaskPriority string

const (
	PriorityLow    TaskPriority = "Low"
	PriorityMedium TaskPriority = "Medium"
	PriorityHigh   TaskPriority = "High"
	PriorityUrgent TaskPriority = "Urgent"
)

func (p TaskPriority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh, PriorityUrgent:
		return true
	}
	return false
}

// Recurrence is a rule causing a task's due date to auto-advance once
// overdue. The empty string means no recurrence.
type Recurrence string

const (
	RecurrenceNone    Recurrence = ""
	RecurrenceDaily   Recurrence = "Daily"
	RecurrenceWeekly  Recurrence = "Weekly"
	RecurrenceMonthly Recurrence = "Monthly"
)

func (r Recurrence) Valid() bool {
	switch r {
	case RecurrenceNone, RecurrenceDaily, RecurrenceWeekly, RecurrenceMonthly:
		return true
	}
	return false
}

// Subtask is a child checklist item of a task. It lives inside the parent
// task row and is deleted with it.
type Subtask struct {
	ID        int64  `json:"id"`
	Title     string `json:"title"`
	Completed bool   `json:"completed"`
}

// Subtasks is an ordered list of subtasks, stored as a JSON column.
type Subtasks []Subtask

// Progress returns the completion ratio as a rounded percentage.
// An empty list is 0, not a division by zero.
func (s Subtasks) Progress() int {
	if len(s) == 0 {
		return 0
	}
	completed := 0
	for _, sub := range s {
		if sub.Completed {
			completed++
		}
	}
	return int(math.Round(float64(completed) * 100 / float64(len(s))))
}

// StringList is a JSON-encoded list of free-text labels.
type StringList []string

// IDList is a JSON-encoded list of task ids (declared dependencies only;
// no blocking semantics are enforced).
type IDList []uint

// Task represents a unit of trackable work
type Task struct {
	ID           uint         `json:"id" gorm:"primaryKey"`
	Title        string       `json:"title" gorm:"not null"`
	Status       TaskStatus   `json:"status" gorm:"not null;default:'To Do'"`
	Priority     TaskPriority `json:"priority" gorm:"default:'Medium'"`
	DueDate      string       `json:"due_date" gorm:"column:due_date"`
	Description  string       `json:"description"`
	Assignees    StringList   `json:"assignees" gorm:"serializer:json"`
	Tags         StringList   `json:"tags" gorm:"serializer:json"`
	Dependencies IDList       `json:"dependencies" gorm:"serializer:json"`
	Subtasks     Subtasks     `json:"subtasks" gorm:"serializer:json"`
	TimeTracked  int          `json:"time_tracked" gorm:"column:time_tracked;default:0"`
	Project      string       `json:"project"`
	Recurrence   Recurrence   `json:"recurrence"`
	Importance   int          `json:"importance" gorm:"default:0"`
	Urgency      int          `json:"urgency" gorm:"default:0"`
	UserID       string       `json:"-" gorm:"column:user_id;index"`
	TeamID       *uint        `json:"team_id,omitempty" gorm:"column:team_id"`
	CreatedAt    time.Time    `json:"created_at"`
	UpdatedAt    time.Time    `json:"-"`

	// Progress is derived from Subtasks on the way out of the API; it is
	// recomputed on every read and never stored.
	Progress int `json:"progress" gorm:"-"`
}

// TableName specifies the table name for Task Model
func (Task) TableName() string {
	return "tasks"
}

// RecomputeProgress refreshes the derived completion percentage from the
// current subtask list.
func (t *Task) RecomputeProgress() {
	t.Progress = t.Subtasks.Progress()
}

// ParseDueDate parses a stored due date. Dates arrive either as full
// RFC3339 timestamps or as bare ISO dates.
func ParseDueDate(dateStr string) (time.Time, bool) {
	if dateStr == "" {
		return time.Time{}, false
	}
	layouts := []string{
		time.RFC3339,
		"2006-01-02",
	}
	for _, layout := range layouts {
		if t, err := time.Parse(layout, dateStr); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
