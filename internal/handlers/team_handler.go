package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"ultima-todo-api/internal/models"
	"ultima-todo-api/internal/realtime"
	"ultima-todo-api/internal/store"
)

// CreateTeamRequest represents the request payload for creating a team
type CreateTeamRequest struct {
	Name string `json:"name" binding:"required"`
}

// InviteMemberRequest represents an email invitation to a team
type InviteMemberRequest struct {
	Email string `json:"email" binding:"required,email"`
}

// GetTeams handles GET /api/teams
func GetTeams(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	teams, err := store.ListTeamsForUser(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch teams"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"teams": teams,
		"count": len(teams),
	})
}

// CreateTeam handles POST /api/teams
func CreateTeam(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req CreateTeamRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	team := models.Team{Name: req.Name, OwnerID: userID}
	if err := store.CreateTeam(&team); err != nil {
		log.Error().Err(err).Msg("failed to create team")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create team"})
		return
	}

	realtime.Publish(userID, "team_created", map[string]any{"team_id": team.ID})
	c.JSON(http.StatusCreated, team)
}

// InviteMember handles POST /api/teams/:id/invitations
// Issues a single-use token the invitee redeems to join the team. Only
// existing members may invite.
func InviteMember(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	teamID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	member, err := store.IsTeamMember(teamID, userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to check membership"})
		return
	}
	if !member {
		c.JSON(http.StatusForbidden, gin.H{"error": "Only team members can invite"})
		return
	}

	var req InviteMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	invitation := models.Invitation{
		TeamID: teamID,
		Email:  req.Email,
		Token:  uuid.NewString(),
	}
	if err := store.CreateInvitation(&invitation); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create invitation"})
		return
	}

	// Mail delivery is out of scope; the token is returned to the caller.
	c.JSON(http.StatusCreated, invitation)
}

// AcceptInvitation handles POST /api/invitations/:token/accept
func AcceptInvitation(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	token := c.Param("token")
	invitation, err := store.GetInvitationByToken(token)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Invitation not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch invitation"})
		}
		return
	}
	if invitation.Accepted {
		c.JSON(http.StatusConflict, gin.H{"error": "Invitation already accepted"})
		return
	}

	if err := store.AcceptInvitation(&invitation, userID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to accept invitation"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Invitation accepted",
		"team_id": invitation.TeamID,
	})
}
