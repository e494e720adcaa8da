package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	domagg "github.com/renthaus/enlistd/internal/domain/aggregates"
	"github.com/renthaus/enlistd/internal/services"
)

type OfferHandler struct {
	service services.EnlistmentService
}

func NewOfferHandler(service services.EnlistmentService) *OfferHandler {
	return &OfferHandler{service: service}
}

type submitOfferRequest struct {
	Amount      int64  `json:"amount" binding:"required"`
	TenantName  string `json:"tenantName" binding:"required"`
	TenantEmail string `json:"tenantEmail" binding:"required,email"`
}

func (h *OfferHandler) Submit(c *gin.Context) {
	id, err := enlistmentID(c)
	if err != nil {
		RespondError(c, http.StatusBadRequest, "validation", err)
		return
	}
	var req submitOfferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "validation", err)
		return
	}
	offer, err := h.service.SubmitOffer(c.Request.Context(), domagg.SubmitOfferInput{
		EnlistmentID: id,
		Amount:       req.Amount,
		TenantName:   req.TenantName,
		TenantEmail:  req.TenantEmail,
	})
	if err != nil {
		RespondAggregateError(c, err)
		return
	}
	RespondCreated(c, NewOfferView(offer))
}

// List returns all offers for an enlistment; ?tenantEmail= narrows the
// result to one tenant's record.
func (h *OfferHandler) List(c *gin.Context) {
	id, err := enlistmentID(c)
	if err != nil {
		RespondError(c, http.StatusBadRequest, "validation", err)
		return
	}
	if tenantEmail := strings.TrimSpace(c.Query("tenantEmail")); tenantEmail != "" {
		offer, err := h.service.GetOffer(c.Request.Context(), id, tenantEmail)
		if err != nil {
			RespondAggregateError(c, err)
			return
		}
		RespondOK(c, NewOfferView(offer))
		return
	}
	rows, err := h.service.ListOffers(c.Request.Context(), id)
	if err != nil {
		RespondAggregateError(c, err)
		return
	}
	RespondOK(c, NewOfferViews(rows))
}

type reviewOfferRequest struct {
	TenantEmail string `json:"tenantEmail" binding:"required,email"`
	Approved    *bool  `json:"approved" binding:"required"`
}

func (h *OfferHandler) Review(c *gin.Context) {
	id, err := enlistmentID(c)
	if err != nil {
		RespondError(c, http.StatusBadRequest, "validation", err)
		return
	}
	var req reviewOfferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "validation", err)
		return
	}
	offer, err := h.service.ReviewOffer(c.Request.Context(), domagg.ReviewOfferInput{
		EnlistmentID: id,
		TenantEmail:  req.TenantEmail,
		Approved:     *req.Approved,
	})
	if err != nil {
		RespondAggregateError(c, err)
		return
	}
	RespondOK(c, NewOfferView(offer))
}

type cancelOfferRequest struct {
	TenantEmail string `json:"tenantEmail" binding:"required,email"`
}

func (h *OfferHandler) Cancel(c *gin.Context) {
	id, err := enlistmentID(c)
	if err != nil {
		RespondError(c, http.StatusBadRequest, "validation", err)
		return
	}
	var req cancelOfferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "validation", err)
		return
	}
	offer, err := h.service.CancelOffer(c.Request.Context(), domagg.CancelOfferInput{
		EnlistmentID: id,
		TenantEmail:  req.TenantEmail,
	})
	if err != nil {
		RespondAggregateError(c, err)
		return
	}
	RespondOK(c, NewOfferView(offer))
}
