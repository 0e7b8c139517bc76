package models

import "time"

// TaskSnapshot captures a task definition inside a template: every field
// except the id and the running timer. Snapshots are immutable once stored.
type TaskSnapshot struct {
	Title        string       `json:"title"`
	Status       TaskStatus   `json:"status"`
	Priority     TaskPriority `json:"priority"`
	DueDate      string       `json:"due_date"`
	Description  string       `json:"description"`
	Assignees    StringList   `json:"assignees"`
	Tags         StringList   `json:"tags"`
	Dependencies IDList       `json:"dependencies"`
	Subtasks     Subtasks     `json:"subtasks"`
	Project      string       `json:"project"`
	Recurrence   Recurrence   `json:"recurrence"`
	Importance   int          `json:"importance"`
	Urgency      int          `json:"urgency"`
}

// TaskSnapshots is an ordered list of snapshots, stored as a JSON column.
type TaskSnapshots []TaskSnapshot

// Template is an immutable named set of task definitions usable to
// bulk-create new tasks.
type Template struct {
	ID        uint          `json:"id" gorm:"primaryKey"`
	Name      string        `json:"name" gorm:"not null"`
	Tasks     TaskSnapshots `json:"tasks" gorm:"serializer:json"`
	UserID    string        `json:"-" gorm:"column:user_id;index"`
	CreatedAt time.Time     `json:"created_at"`
}

// TableName specifies the table name for Template Model
func (Template) TableName() string {
	return "templates"
}

// Snapshot copies a task's definition into a template entry, dropping the
// id and the accumulated timer.
func Snapshot(t Task) TaskSnapshot {
	return TaskSnapshot{
		Title:        t.Title,
		Status:       t.Status,
		Priority:     t.Priority,
		DueDate:      t.DueDate,
		Description:  t.Description,
		Assignees:    append(StringList(nil), t.Assignees...),
		Tags:         append(StringList(nil), t.Tags...),
		Dependencies: append(IDList(nil), t.Dependencies...),
		Subtasks:     append(Subtasks(nil), t.Subtasks...),
		Project:      t.Project,
		Recurrence:   t.Recurrence,
		Importance:   t.Importance,
		Urgency:      t.Urgency,
	}
}

// NewTask clones the snapshot into a fresh task for the given owner. The id
// is left zero for the store to assign, and the timer starts from zero.
func (s TaskSnapshot) NewTask(userID string) Task {
	return Task{
		Title:        s.Title,
		Status:       s.Status,
		Priority:     s.Priority,
		DueDate:      s.DueDate,
		Description:  s.Description,
		Assignees:    append(StringList(nil), s.Assignees...),
		Tags:         append(StringList(nil), s.Tags...),
		Dependencies: append(IDList(nil), s.Dependencies...),
		Subtasks:     append(Subtasks(nil), s.Subtasks...),
		TimeTracked:  0,
		Project:      s.Project,
		Recurrence:   s.Recurrence,
		Importance:   s.Importance,
		Urgency:      s.Urgency,
		UserID:       userID,
	}
}
