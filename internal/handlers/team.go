package handlers

import (
	"net/http"

	"github.com/SaniTheWay/TaskManagmentSystem/internal/dto"
	apierrors "github.com/SaniTheWay/TaskManagmentSystem/internal/errors"
	"github.com/SaniTheWay/TaskManagmentSystem/internal/services"
	"github.com/gin-gonic/gin"
)

// TeamHandler serves the team management endpoints.
type TeamHandler struct {
	teamService *services.TeamService
}

// NewTeamHandler creates a new TeamHandler.
func NewTeamHandler(teamService *services.TeamService) *TeamHandler {
	return &TeamHandler{
		teamService: teamService,
	}
}

// CreateTeam creates a team with its first members
func (h *TeamHandler) CreateTeam(c *gin.Context) {
	type CreateTeamRequest struct {
		Name      string   `json:"name" binding:"required"`
		MemberIDs []uint64 `json:"member_ids"`
	}

	actor, ok := currentActor(c)
	if !ok {
		return
	}

	var req CreateTeamRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	team, err := h.teamService.CreateTeam(c.Request.Context(), actor, services.CreateTeamInput{
		Name:      req.Name,
		MemberIDs: req.MemberIDs,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToTeamDTO(*team))
}

// ListTeams returns every team
func (h *TeamHandler) ListTeams(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}

	teams, err := h.teamService.ListTeams(c.Request.Context(), actor)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"teams": dto.ToTeamDTOs(teams),
	})
}

// AddMembers links more users to a team; existing members are skipped
func (h *TeamHandler) AddMembers(c *gin.Context) {
	type AddMembersRequest struct {
		UserIDs []uint64 `json:"user_ids"`
	}

	actor, ok := currentActor(c)
	if !ok {
		return
	}
	teamID, ok := paramID(c, "id", "team ID")
	if !ok {
		return
	}

	var req AddMembersRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	team, err := h.teamService.AddTeamMembers(c.Request.Context(), actor, teamID, req.UserIDs)
	if err != nil {
		respondError(c, err)
		return
	}

	members, err := h.teamService.TeamMembers(c.Request.Context(), actor, team.ID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"team":    dto.ToTeamDTO(*team),
		"members": dto.ToUserDTOs(members),
	})
}

// ListMembers returns the members of a team
func (h *TeamHandler) ListMembers(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	teamID, ok := paramID(c, "id", "team ID")
	if !ok {
		return
	}

	members, err := h.teamService.TeamMembers(c.Request.Context(), actor, teamID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"members": dto.ToUserDTOs(members),
	})
}

// ListNonMembers returns the users that can still be added to a team
func (h *TeamHandler) ListNonMembers(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	teamID, ok := paramID(c, "id", "team ID")
	if !ok {
		return
	}

	users, err := h.teamService.NonTeamMembers(c.Request.Context(), actor, teamID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"users": dto.ToUserDTOs(users),
	})
}
