package models

import "time"

// Team is a shared workspace. Tasks carry an optional weak reference to a
// team; deleting a team does not cascade to tasks.
type Team struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Name      string    `json:"name" gorm:"not null"`
	OwnerID   string    `json:"owner_id" gorm:"column:owner_id;index"`
	CreatedAt time.Time `json:"created_at"`
}

// TableName specifies the table name for Team Model
func (Team) TableName() string {
	return "teams"
}

// TeamMember links a user to a team.
type TeamMember struct {
	ID     uint   `json:"id" gorm:"primaryKey"`
	TeamID uint   `json:"team_id" gorm:"column:team_id;index"`
	UserID string `json:"user_id" gorm:"column:user_id;index"`
	Role   string `json:"role" gorm:"default:'member'"`
}

// TableName specifies the table name for TeamMember Model
func (TeamMember) TableName() string {
	return "team_members"
}

// Invitation is a pending email invite to a team, redeemable once by token.
type Invitation struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	TeamID    uint      `json:"team_id" gorm:"column:team_id;index"`
	Email     string    `json:"email" gorm:"not null"`
	Token     string    `json:"token" gorm:"uniqueIndex;not null"`
	Accepted  bool      `json:"accepted" gorm:"default:false"`
	CreatedAt time.Time `json:"created_at"`
}

// TableName specifies the table name for Invitation Model
func (Invitation) TableName() string {
	return "invitations"
}
