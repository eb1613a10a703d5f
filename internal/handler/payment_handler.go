package handler

import (
	"io"
	"net/http"
	"strconv"

	"github.com/alphadeveloper12/Link-Up-sub000/internal/logic"
	"github.com/alphadeveloper12/Link-Up-sub000/internal/middleware"
	"github.com/alphadeveloper12/Link-Up-sub000/internal/payment"
	"github.com/gin-gonic/gin"
)

type PaymentHandler struct {
	paymentLogic  *logic.PaymentLogic
	webhookSecret string
}

func NewPaymentHandler(paymentLogic *logic.PaymentLogic, webhookSecret string) *PaymentHandler {
	return &PaymentHandler{
		paymentLogic:  paymentLogic,
		webhookSecret: webhookSecret,
	}
}

// CreateFundingIntent starts the funding flow for one milestone. The
// amount comes from the milestone row on the server, never the request.
func (h *PaymentHandler) CreateFundingIntent(c *gin.Context) {
	var req struct {
		MilestoneId int64 `json:"milestoneId" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	record, clientSecret, err := h.paymentLogic.CreateFundingIntent(c.Request.Context(), req.MilestoneId, middleware.UserId(c))
	if err != nil {
		LogicError(c, err)
		return
	}

	SuccessResponse(c, http.StatusCreated, "funding intent created", gin.H{
		"payment":      ToPaymentRecordResponse(record),
		"clientSecret": clientSecret,
	})
}

// ListProjectPayments lists money movements for a project.
func (h *PaymentHandler) ListProjectPayments(c *gin.Context) {
	projectId, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		ErrorResponse(c, http.StatusBadRequest, "invalid project id")
		return
	}

	records, err := h.paymentLogic.ListProjectPayments(projectId)
	if err != nil {
		LogicError(c, err)
		return
	}

	SuccessResponse(c, http.StatusOK, "", gin.H{
		"payments": ToPaymentRecordResponseList(records),
	})
}

// ValidateCard checks card details server side without storing them.
func (h *PaymentHandler) ValidateCard(c *gin.Context) {
	var details payment.CardDetails
	if err := c.ShouldBindJSON(&details); err != nil {
		ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	if err := payment.ValidateCard(&details); err != nil {
		ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}
	SuccessResponse(c, http.StatusOK, "card details are valid", nil)
}

// ValidateBank checks ACH details server side without storing them.
func (h *PaymentHandler) ValidateBank(c *gin.Context) {
	var details payment.BankDetails
	if err := c.ShouldBindJSON(&details); err != nil {
		ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	if err := payment.ValidateBank(&details); err != nil {
		ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}
	SuccessResponse(c, http.StatusOK, "bank details are valid", nil)
}

// Webhook receives provider events. The signature is checked against the
// raw body before anything is parsed; unsigned calls never reach the
// escrow state machine.
func (h *PaymentHandler) Webhook(c *gin.Context) {
	body, err := io.ReadAll(io.LimitReader(c.Request.Body, 1<<20))
	if err != nil {
		ErrorResponse(c, http.StatusBadRequest, "failed to read body")
		return
	}

	if err := payment.VerifySignature(body, c.GetHeader("Provider-Signature"), h.webhookSecret); err != nil {
		ErrorResponse(c, http.StatusUnauthorized, "invalid webhook signature")
		return
	}

	if err := h.paymentLogic.HandleWebhookEvent(body); err != nil {
		LogicError(c, err)
		return
	}

	SuccessResponse(c, http.StatusOK, "event processed", nil)
}
