package handler

import (
	"net/http"

	"github.com/alphadeveloper12/Link-Up-sub000/internal/logic"
	"github.com/alphadeveloper12/Link-Up-sub000/internal/middleware"
	"github.com/alphadeveloper12/Link-Up-sub000/internal/model"
	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	authLogic *logic.AuthLogic
}

func NewAuthHandler(authLogic *logic.AuthLogic) *AuthHandler {
	return &AuthHandler{authLogic: authLogic}
}

// Register creates an account and returns a token so sign-up flows
// straight into a signed-in session.
func (h *AuthHandler) Register(c *gin.Context) {
	var req struct {
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required"`
		Name     string `json:"name" binding:"required"`
		Role     string `json:"role"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	user, err := h.authLogic.Register(req.Email, req.Password, req.Name, model.UserRole(req.Role))
	if err != nil {
		LogicError(c, err)
		return
	}

	token, err := h.authLogic.IssueToken(user)
	if err != nil {
		LogicError(c, err)
		return
	}

	SuccessResponse(c, http.StatusCreated, "account created", gin.H{
		"token": token,
		"user":  ToUserResponse(user),
	})
}

// Login exchanges credentials for a token.
func (h *AuthHandler) Login(c *gin.Context) {
	var req struct {
		Email    string `json:"email" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	token, user, err := h.authLogic.Login(req.Email, req.Password)
	if err != nil {
		LogicError(c, err)
		return
	}

	SuccessResponse(c, http.StatusOK, "logged in", gin.H{
		"token": token,
		"user":  ToUserResponse(user),
	})
}

// Me returns the authenticated account.
func (h *AuthHandler) Me(c *gin.Context) {
	user, err := h.authLogic.GetUser(middleware.UserId(c))
	if err != nil {
		LogicError(c, err)
		return
	}
	SuccessResponse(c, http.StatusOK, "", gin.H{"user": ToUserResponse(user)})
}
