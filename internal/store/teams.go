package store

import (
	"ultima-todo-api/internal/database"
	"ultima-todo-api/internal/models"
)

// CreateTeam inserts a team and enrolls the owner as its first member.
func CreateTeam(team *models.Team) error {
	db := database.GetDB()
	if err := db.Create(team).Error; err != nil {
		return err
	}
	return db.Create(&models.TeamMember{
		TeamID: team.ID,
		UserID: team.OwnerID,
		Role:   "owner",
	}).Error
}

// ListTeamsForUser returns every team the user is a member of.
func ListTeamsForUser(userID string) ([]models.Team, error) {
	var teams []models.Team
	err := database.GetDB().
		Joins("JOIN team_members ON team_members.team_id = teams.id").
		Where("team_members.user_id = ?", userID).
		Order("teams.id asc").
		Find(&teams).Error
	return teams, err
}

// IsTeamMember reports whether the user belongs to the team.
func IsTeamMember(teamID uint, userID string) (bool, error) {
	var count int64
	err := database.GetDB().
		Model(&models.TeamMember{}).
		Where("team_id = ? AND user_id = ?", teamID, userID).
		Count(&count).Error
	return count > 0, err
}

// CreateInvitation inserts a pending team invitation.
func CreateInvitation(invitation *models.Invitation) error {
	return database.GetDB().Create(invitation).Error
}

// GetInvitationByToken looks up an invitation by its redeem token.
func GetInvitationByToken(token string) (models.Invitation, error) {
	var invitation models.Invitation
	err := database.GetDB().Where("token = ?", token).First(&invitation).Error
	return invitation, wrapNotFound(err)
}

// AcceptInvitation marks the invitation redeemed and enrolls the user in
// the team.
func AcceptInvitation(invitation *models.Invitation, userID string) error {
	db := database.GetDB()
	if err := db.Model(invitation).Update("accepted", true).Error; err != nil {
		return err
	}
	return db.Create(&models.TeamMember{
		TeamID: invitation.TeamID,
		UserID: userID,
		Role:   "member",
	}).Error
}
