package handler

import (
	"net/http"
	"strconv"

	"github.com/alphadeveloper12/Link-Up-sub000/internal/logic"
	"github.com/alphadeveloper12/Link-Up-sub000/internal/middleware"
	"github.com/alphadeveloper12/Link-Up-sub000/internal/model"
	"github.com/gin-gonic/gin"
)

type TeamHandler struct {
	teamLogic    *logic.TeamLogic
	projectLogic *logic.ProjectLogic
}

func NewTeamHandler(teamLogic *logic.TeamLogic, projectLogic *logic.ProjectLogic) *TeamHandler {
	return &TeamHandler{teamLogic: teamLogic, projectLogic: projectLogic}
}

// CreateTeam creates a team profile owned by the caller.
func (h *TeamHandler) CreateTeam(c *gin.Context) {
	var team model.TeamModel
	if err := c.ShouldBindJSON(&team); err != nil {
		ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.teamLogic.CreateTeam(middleware.UserId(c), &team); err != nil {
		LogicError(c, err)
		return
	}

	SuccessResponse(c, http.StatusCreated, "team created", gin.H{"team": ToTeamResponse(&team)})
}

// GetTeams lists active teams.
func (h *TeamHandler) GetTeams(c *gin.Context) {
	skill := c.Query("skill")
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "10"))

	teams, total, err := h.teamLogic.GetTeams(skill, page, pageSize)
	if err != nil {
		LogicError(c, err)
		return
	}

	SuccessResponse(c, http.StatusOK, "", gin.H{
		"teams":      ToTeamResponseList(teams),
		"pagination": newPagination(page, pageSize, total),
	})
}

// GetTeam returns one team with members.
func (h *TeamHandler) GetTeam(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		ErrorResponse(c, http.StatusBadRequest, "invalid team id")
		return
	}

	team, err := h.teamLogic.GetTeam(id)
	if err != nil {
		LogicError(c, err)
		return
	}

	SuccessResponse(c, http.StatusOK, "", gin.H{"team": ToTeamResponse(team)})
}

// UpdateTeam updates the editable profile fields, owner only.
func (h *TeamHandler) UpdateTeam(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		ErrorResponse(c, http.StatusBadRequest, "invalid team id")
		return
	}

	var updates map[string]interface{}
	if err := c.ShouldBindJSON(&updates); err != nil {
		ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.teamLogic.UpdateTeam(id, middleware.UserId(c), updates); err != nil {
		LogicError(c, err)
		return
	}

	SuccessResponse(c, http.StatusOK, "team updated", nil)
}

// AddMember appends a member to the team profile.
func (h *TeamHandler) AddMember(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		ErrorResponse(c, http.StatusBadRequest, "invalid team id")
		return
	}

	var member model.TeamMemberModel
	if err := c.ShouldBindJSON(&member); err != nil {
		ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.teamLogic.AddMember(id, middleware.UserId(c), &member); err != nil {
		LogicError(c, err)
		return
	}

	SuccessResponse(c, http.StatusCreated, "member added", gin.H{
		"member": ToTeamMemberResponse(&member),
	})
}

// MatchTeams ranks teams against one of the caller's projects.
func (h *TeamHandler) MatchTeams(c *gin.Context) {
	projectId, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		ErrorResponse(c, http.StatusBadRequest, "invalid project id")
		return
	}

	project, err := h.projectLogic.GetProject(projectId)
	if err != nil {
		LogicError(c, err)
		return
	}
	if project.UserId != middleware.UserId(c) {
		ErrorResponse(c, http.StatusForbidden, "not allowed")
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))
	matches, err := h.teamLogic.MatchTeams(project, limit)
	if err != nil {
		LogicError(c, err)
		return
	}

	SuccessResponse(c, http.StatusOK, "", gin.H{"matches": ToMatchResponseList(matches)})
}

// Invite sends a project invitation to a team. Double submits return the
// existing invitation.
func (h *TeamHandler) Invite(c *gin.Context) {
	var req struct {
		ProjectId int64  `json:"projectId" binding:"required"`
		TeamId    int64  `json:"teamId" binding:"required"`
		Message   string `json:"message"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	invitation, err := h.teamLogic.Invite(req.ProjectId, req.TeamId, middleware.UserId(c), req.Message)
	if err != nil {
		LogicError(c, err)
		return
	}

	SuccessResponse(c, http.StatusCreated, "invitation sent", gin.H{
		"invitation": ToInvitationResponse(invitation),
	})
}

// RespondInvitation accepts or declines an invitation, team owner only.
func (h *TeamHandler) RespondInvitation(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		ErrorResponse(c, http.StatusBadRequest, "invalid invitation id")
		return
	}

	var req struct {
		Accept bool `json:"accept"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.teamLogic.RespondInvitation(id, middleware.UserId(c), req.Accept); err != nil {
		LogicError(c, err)
		return
	}

	message := "invitation declined"
	if req.Accept {
		message = "invitation accepted"
	}
	SuccessResponse(c, http.StatusOK, message, nil)
}

// ListInvitations lists invitations addressed to the caller's teams.
func (h *TeamHandler) ListInvitations(c *gin.Context) {
	invitations, err := h.teamLogic.ListTeamInvitations(middleware.UserId(c))
	if err != nil {
		LogicError(c, err)
		return
	}

	SuccessResponse(c, http.StatusOK, "", gin.H{
		"invitations": ToInvitationResponseList(invitations),
	})
}
