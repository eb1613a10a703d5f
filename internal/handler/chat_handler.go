package handler

import (
	"net/http"
	"strconv"

	"github.com/alphadeveloper12/Link-Up-sub000/internal/logic"
	"github.com/alphadeveloper12/Link-Up-sub000/internal/middleware"
	"github.com/gin-gonic/gin"
)

type ChatHandler struct {
	chatLogic *logic.ChatLogic
}

func NewChatHandler(chatLogic *logic.ChatLogic) *ChatHandler {
	return &ChatHandler{chatLogic: chatLogic}
}

// PostMessage appends a message to the project chat.
func (h *ChatHandler) PostMessage(c *gin.Context) {
	projectId, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		ErrorResponse(c, http.StatusBadRequest, "invalid project id")
		return
	}

	var req struct {
		Body string `json:"body" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	message, err := h.chatLogic.PostMessage(projectId, middleware.UserId(c), req.Body)
	if err != nil {
		LogicError(c, err)
		return
	}

	SuccessResponse(c, http.StatusCreated, "message posted", gin.H{
		"message": ChatMessageResponse{
			ID:        message.Id,
			ProjectID: message.ProjectId,
			UserID:    message.UserId,
			Body:      message.Body,
			CreatedAt: message.CreatedAt,
		},
	})
}

// GetMessages polls messages after since_id, oldest first.
func (h *ChatHandler) GetMessages(c *gin.Context) {
	projectId, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		ErrorResponse(c, http.StatusBadRequest, "invalid project id")
		return
	}

	sinceId, _ := strconv.ParseInt(c.DefaultQuery("since_id", "0"), 10, 64)
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))

	messages, err := h.chatLogic.GetMessages(projectId, middleware.UserId(c), sinceId, limit)
	if err != nil {
		LogicError(c, err)
		return
	}

	SuccessResponse(c, http.StatusOK, "", gin.H{
		"messages": ToChatMessageResponseList(messages),
	})
}
