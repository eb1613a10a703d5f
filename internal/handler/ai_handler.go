package handler

import (
	"net/http"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/alphadeveloper12/Link-Up-sub000/internal/ai"
	"github.com/alphadeveloper12/Link-Up-sub000/internal/logger"
	"github.com/alphadeveloper12/Link-Up-sub000/internal/logic"
	"github.com/alphadeveloper12/Link-Up-sub000/internal/middleware"
	"github.com/alphadeveloper12/Link-Up-sub000/internal/storage"
	"github.com/gin-gonic/gin"
)

type AIHandler struct {
	aiLogic      *logic.AILogic
	projectLogic *logic.ProjectLogic
	store        *storage.Store
}

func NewAIHandler(aiLogic *logic.AILogic, projectLogic *logic.ProjectLogic, store *storage.Store) *AIHandler {
	return &AIHandler{aiLogic: aiLogic, projectLogic: projectLogic, store: store}
}

// GenerateBio drafts a bio for the caller's team.
func (h *AIHandler) GenerateBio(c *gin.Context) {
	teamId, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		ErrorResponse(c, http.StatusBadRequest, "invalid team id")
		return
	}

	bio, err := h.aiLogic.GenerateBio(c.Request.Context(), teamId, middleware.UserId(c))
	if err != nil {
		LogicError(c, err)
		return
	}

	SuccessResponse(c, http.StatusOK, "", gin.H{"bio": bio})
}

// ProjectInsights returns the advisor panel text for a project.
func (h *AIHandler) ProjectInsights(c *gin.Context) {
	projectId, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		ErrorResponse(c, http.StatusBadRequest, "invalid project id")
		return
	}

	insights, err := h.aiLogic.ProjectInsights(c.Request.Context(), projectId, middleware.UserId(c))
	if err != nil {
		LogicError(c, err)
		return
	}

	SuccessResponse(c, http.StatusOK, "", gin.H{"insights": insights})
}

// Chat answers one support chatbot turn.
func (h *AIHandler) Chat(c *gin.Context) {
	var req struct {
		History  []ai.Message `json:"history"`
		Question string       `json:"question" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	answer, err := h.aiLogic.ChatTurn(c.Request.Context(), req.History, req.Question)
	if err != nil {
		LogicError(c, err)
		return
	}

	SuccessResponse(c, http.StatusOK, "", gin.H{"answer": answer})
}

// isTextContent limits summarization to files we can read as text.
func isTextContent(contentType, fileName string) bool {
	if strings.HasPrefix(contentType, "text/") {
		return true
	}
	switch strings.ToLower(filepath.Ext(fileName)) {
	case ".txt", ".md", ".csv":
		return true
	}
	return false
}

// SummarizeFile returns a one-paragraph summary of an uploaded brief.
// Binary attachments get the static summary.
func (h *AIHandler) SummarizeFile(c *gin.Context) {
	fileId, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		ErrorResponse(c, http.StatusBadRequest, "invalid file id")
		return
	}

	file, err := h.projectLogic.GetFile(fileId, middleware.UserId(c))
	if err != nil {
		LogicError(c, err)
		return
	}

	var text string
	if isTextContent(file.ContentType, file.FileName) {
		text, err = h.store.ReadText(file.StoredName, 64*1024)
		if err != nil {
			logger.Warn("Failed to read file %d for summary: %v", file.Id, err)
			text = ""
		}
	}

	summary, err := h.aiLogic.SummarizeFile(c.Request.Context(), file, text)
	if err != nil {
		LogicError(c, err)
		return
	}

	SuccessResponse(c, http.StatusOK, "", gin.H{"summary": summary})
}

// OnboardingChecklist returns the caller's getting-started list.
func (h *AIHandler) OnboardingChecklist(c *gin.Context) {
	items, err := h.aiLogic.OnboardingChecklist(c.Request.Context(), middleware.UserId(c))
	if err != nil {
		LogicError(c, err)
		return
	}

	SuccessResponse(c, http.StatusOK, "", gin.H{"checklist": items})
}
