package handler

import (
	"net/http"
	"strconv"

	"github.com/alphadeveloper12/Link-Up-sub000/internal/logger"
	"github.com/alphadeveloper12/Link-Up-sub000/internal/logic"
	"github.com/alphadeveloper12/Link-Up-sub000/internal/middleware"
	"github.com/gin-gonic/gin"
)

type MilestoneHandler struct {
	milestoneLogic *logic.MilestoneLogic
	projectLogic   *logic.ProjectLogic
}

func NewMilestoneHandler(milestoneLogic *logic.MilestoneLogic, projectLogic *logic.ProjectLogic) *MilestoneHandler {
	return &MilestoneHandler{
		milestoneLogic: milestoneLogic,
		projectLogic:   projectLogic,
	}
}

// GetProjectMilestones lists a project's tranches in order.
func (h *MilestoneHandler) GetProjectMilestones(c *gin.Context) {
	projectId, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		ErrorResponse(c, http.StatusBadRequest, "invalid project id")
		return
	}

	milestones, err := h.milestoneLogic.GetProjectMilestones(projectId)
	if err != nil {
		LogicError(c, err)
		return
	}

	SuccessResponse(c, http.StatusOK, "", gin.H{
		"milestones": ToMilestoneResponseList(milestones),
	})
}

// StartWork opens the work window on a funded milestone.
func (h *MilestoneHandler) StartWork(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		ErrorResponse(c, http.StatusBadRequest, "invalid milestone id")
		return
	}

	if err := h.milestoneLogic.StartWork(id, middleware.UserId(c)); err != nil {
		LogicError(c, err)
		return
	}

	SuccessResponse(c, http.StatusOK, "work started", nil)
}

// SubmitDeliverable records the team's submission for approval.
func (h *MilestoneHandler) SubmitDeliverable(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		ErrorResponse(c, http.StatusBadRequest, "invalid milestone id")
		return
	}

	if err := h.milestoneLogic.SubmitDeliverable(id, middleware.UserId(c)); err != nil {
		LogicError(c, err)
		return
	}

	SuccessResponse(c, http.StatusOK, "deliverable submitted", nil)
}

// Release approves the deliverable and pays the tranche out to the team.
func (h *MilestoneHandler) Release(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		ErrorResponse(c, http.StatusBadRequest, "invalid milestone id")
		return
	}

	record, err := h.milestoneLogic.Release(c.Request.Context(), id, middleware.UserId(c))
	if err != nil {
		LogicError(c, err)
		return
	}

	// the release already committed; a completion-marking failure must not
	// surface as a failed request
	if err := h.projectLogic.MarkCompletedIfDone(record.ProjectId); err != nil {
		logger.Error("Failed to mark project %d completed after release: %v", record.ProjectId, err)
	}

	SuccessResponse(c, http.StatusOK, "milestone released", gin.H{
		"payment": ToPaymentRecordResponse(record),
	})
}
