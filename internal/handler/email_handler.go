package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/alphadeveloper12/Link-Up-sub000/internal/logic"
	"github.com/alphadeveloper12/Link-Up-sub000/internal/middleware"
	"github.com/alphadeveloper12/Link-Up-sub000/internal/model"
	"github.com/gin-gonic/gin"
)

// EmailHandler admin email console, mounted behind AdminOnly
type EmailHandler struct {
	emailLogic *logic.EmailLogic
}

func NewEmailHandler(emailLogic *logic.EmailLogic) *EmailHandler {
	return &EmailHandler{emailLogic: emailLogic}
}

// CreateCampaign stores a draft or scheduled campaign.
func (h *EmailHandler) CreateCampaign(c *gin.Context) {
	var req struct {
		Subject     string     `json:"subject" binding:"required"`
		Body        string     `json:"body" binding:"required"`
		Audience    string     `json:"audience"`
		ScheduledAt *time.Time `json:"scheduledAt"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	campaign := &model.EmailCampaignModel{
		Subject:     req.Subject,
		Body:        req.Body,
		Audience:    req.Audience,
		ScheduledAt: req.ScheduledAt,
	}
	if err := h.emailLogic.CreateCampaign(middleware.UserId(c), campaign); err != nil {
		LogicError(c, err)
		return
	}

	SuccessResponse(c, http.StatusCreated, "campaign created", gin.H{
		"campaign": ToCampaignResponse(campaign),
	})
}

// GetCampaigns lists campaigns newest first.
func (h *EmailHandler) GetCampaigns(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))

	campaigns, total, err := h.emailLogic.GetCampaigns(page, pageSize)
	if err != nil {
		LogicError(c, err)
		return
	}

	SuccessResponse(c, http.StatusOK, "", gin.H{
		"campaigns":  ToCampaignResponseList(campaigns),
		"pagination": newPagination(page, pageSize, total),
	})
}

// Broadcast dispatches a campaign to its audience now.
func (h *EmailHandler) Broadcast(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		ErrorResponse(c, http.StatusBadRequest, "invalid campaign id")
		return
	}

	count, err := h.emailLogic.Broadcast(id)
	if err != nil {
		LogicError(c, err)
		return
	}

	SuccessResponse(c, http.StatusOK, "campaign dispatched", gin.H{"recipients": count})
}

// GetCampaignLogs lists delivery rows for a campaign.
func (h *EmailHandler) GetCampaignLogs(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		ErrorResponse(c, http.StatusBadRequest, "invalid campaign id")
		return
	}

	logs, err := h.emailLogic.GetCampaignLogs(id)
	if err != nil {
		LogicError(c, err)
		return
	}

	SuccessResponse(c, http.StatusOK, "", gin.H{"logs": logs})
}

// SendSingle enqueues one transactional email.
func (h *EmailHandler) SendSingle(c *gin.Context) {
	var req struct {
		Recipient string `json:"recipient" binding:"required,email"`
		Subject   string `json:"subject" binding:"required"`
		Body      string `json:"body" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	log, err := h.emailLogic.SendSingle(req.Recipient, req.Subject, req.Body)
	if err != nil {
		LogicError(c, err)
		return
	}

	SuccessResponse(c, http.StatusCreated, "email queued", gin.H{"log": log})
}
