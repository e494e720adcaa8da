package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	domagg "github.com/renthaus/enlistd/internal/domain/aggregates"
	"github.com/renthaus/enlistd/internal/services"
)

type PaymentHandler struct {
	service services.EnlistmentService
}

func NewPaymentHandler(service services.EnlistmentService) *PaymentHandler {
	return &PaymentHandler{service: service}
}

type firstMonthRequest struct {
	TenantEmail string `json:"tenantEmail" binding:"required,email"`
}

// ReceiveFirstMonth activates the lease. The amount is the agreed rent from
// the draft, so the request carries none.
func (h *PaymentHandler) ReceiveFirstMonth(c *gin.Context) {
	id, err := enlistmentID(c)
	if err != nil {
		RespondError(c, http.StatusBadRequest, "validation", err)
		return
	}
	var req firstMonthRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "validation", err)
		return
	}
	result, err := h.service.ReceiveFirstMonthRent(c.Request.Context(), domagg.ReceiveRentInput{
		EnlistmentID: id,
		TenantEmail:  req.TenantEmail,
	})
	if err != nil {
		RespondAggregateError(c, err)
		return
	}
	RespondCreated(c, paymentView(result))
}

type monthlyRentRequest struct {
	TenantEmail string `json:"tenantEmail" binding:"required,email"`
	Amount      int64  `json:"amount" binding:"required"`
}

func (h *PaymentHandler) ReceiveMonthly(c *gin.Context) {
	id, err := enlistmentID(c)
	if err != nil {
		RespondError(c, http.StatusBadRequest, "validation", err)
		return
	}
	var req monthlyRentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "validation", err)
		return
	}
	result, err := h.service.ReceiveMonthlyRent(c.Request.Context(), domagg.ReceiveRentInput{
		EnlistmentID: id,
		TenantEmail:  req.TenantEmail,
		Amount:       req.Amount,
	})
	if err != nil {
		RespondAggregateError(c, err)
		return
	}
	RespondCreated(c, paymentView(result))
}

func paymentView(r domagg.PaymentResult) PaymentView {
	return PaymentView{
		PaymentID:        r.PaymentID,
		EnlistmentID:     r.EnlistmentID,
		TenantEmail:      r.TenantEmail,
		Kind:             r.Kind,
		Amount:           r.Amount,
		Status:           r.Status,
		TotalRentPaid:    r.TotalRentPaid,
		NumberOfPayments: r.NumberOfPayments,
		ReceivedAt:       r.ReceivedAt,
	}
}
