package handler

import (
	"errors"
	"net/http"

	"github.com/alphadeveloper12/Link-Up-sub000/internal/logic"
	"github.com/gin-gonic/gin"
)

// Response the common API envelope
type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Data    interface{} `json:"data"`
}

// SuccessResponse writes a success envelope.
func SuccessResponse(c *gin.Context, statusCode int, message string, data interface{}) {
	c.JSON(statusCode, Response{
		Success: true,
		Message: message,
		Data:    data,
	})
}

// ErrorResponse writes an error envelope.
func ErrorResponse(c *gin.Context, statusCode int, message string) {
	c.JSON(statusCode, Response{
		Success: false,
		Message: message,
		Data:    nil,
	})
}

// LogicError maps logic layer sentinels to HTTP status codes.
func LogicError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, logic.ErrNotFound):
		ErrorResponse(c, http.StatusNotFound, "resource not found")
	case errors.Is(err, logic.ErrForbidden):
		ErrorResponse(c, http.StatusForbidden, "not allowed")
	case errors.Is(err, logic.ErrValidation):
		ErrorResponse(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, logic.ErrConflict):
		ErrorResponse(c, http.StatusConflict, err.Error())
	case errors.Is(err, logic.ErrInvalidTransition):
		ErrorResponse(c, http.StatusConflict, err.Error())
	case errors.Is(err, logic.ErrDraftExpired):
		ErrorResponse(c, http.StatusGone, "draft has expired, please start over")
	default:
		ErrorResponse(c, http.StatusInternalServerError, "internal server error")
	}
}
