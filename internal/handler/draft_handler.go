package handler

import (
	"net/http"

	"github.com/alphadeveloper12/Link-Up-sub000/internal/logic"
	"github.com/gin-gonic/gin"
)

type DraftHandler struct {
	draftLogic *logic.DraftLogic
}

func NewDraftHandler(draftLogic *logic.DraftLogic) *DraftHandler {
	return &DraftHandler{draftLogic: draftLogic}
}

// SaveDraft stores an anonymous intake draft and returns the claim token
// the browser carries through sign-up.
func (h *DraftHandler) SaveDraft(c *gin.Context) {
	var draft logic.ProjectDraft
	if err := c.ShouldBindJSON(&draft); err != nil {
		ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	token, err := h.draftLogic.Save(c.Request.Context(), &draft)
	if err != nil {
		LogicError(c, err)
		return
	}

	SuccessResponse(c, http.StatusCreated, "draft saved", gin.H{"draftToken": token})
}

// ClaimDraft returns the saved draft once and invalidates the token.
func (h *DraftHandler) ClaimDraft(c *gin.Context) {
	var req struct {
		DraftToken string `json:"draftToken" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	draft, err := h.draftLogic.Claim(c.Request.Context(), req.DraftToken)
	if err != nil {
		LogicError(c, err)
		return
	}

	SuccessResponse(c, http.StatusOK, "", gin.H{"draft": draft})
}
