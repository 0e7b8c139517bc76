package models

import "time"

// Project groups tasks by name. Tasks reference a project by its name, not
// by a foreign key; deleting a project leaves those tasks dangling on
// purpose.
type Project struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	Name        string    `json:"name" gorm:"not null"`
	Color       string    `json:"color"`
	Description string    `json:"description"`
	UserID      string    `json:"-" gorm:"column:user_id;index"`
	CreatedAt   time.Time `json:"created_at"`
}

// TableName specifies the table name for Project Model
func (Project) TableName() string {
	return "projects"
}
