package handlers

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	domagg "github.com/renthaus/enlistd/internal/domain/aggregates"
	"github.com/renthaus/enlistd/internal/services"
)

type AgreementHandler struct {
	service services.EnlistmentService
}

func NewAgreementHandler(service services.EnlistmentService) *AgreementHandler {
	return &AgreementHandler{service: service}
}

type submitDraftRequest struct {
	TenantEmail  string `json:"tenantEmail" binding:"required,email"`
	LandlordName string `json:"landlordName" binding:"required"`
	TenantName   string `json:"tenantName" binding:"required"`
	LeaseStart   int64  `json:"leaseStart" binding:"required"`
	HandoverDate int64  `json:"handoverDate" binding:"required"`
	LeasePeriod  int64  `json:"leasePeriod" binding:"required"`
	OtherTerms   string `json:"otherTerms"`
	DraftHash    string `json:"draftHash" binding:"required"`
}

func (h *AgreementHandler) Submit(c *gin.Context) {
	id, err := enlistmentID(c)
	if err != nil {
		RespondError(c, http.StatusBadRequest, "validation", err)
		return
	}
	var req submitDraftRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "validation", err)
		return
	}
	draft, err := h.service.SubmitDraft(c.Request.Context(), domagg.SubmitDraftInput{
		EnlistmentID: id,
		TenantEmail:  req.TenantEmail,
		LandlordName: req.LandlordName,
		TenantName:   req.TenantName,
		LeaseStart:   req.LeaseStart,
		HandoverDate: req.HandoverDate,
		LeasePeriod:  req.LeasePeriod,
		OtherTerms:   req.OtherTerms,
		DraftHash:    req.DraftHash,
	})
	if err != nil {
		RespondAggregateError(c, err)
		return
	}
	RespondCreated(c, NewAgreementView(draft))
}

func (h *AgreementHandler) List(c *gin.Context) {
	id, err := enlistmentID(c)
	if err != nil {
		RespondError(c, http.StatusBadRequest, "validation", err)
		return
	}
	if tenantEmail := strings.TrimSpace(c.Query("tenantEmail")); tenantEmail != "" {
		draft, err := h.service.GetAgreement(c.Request.Context(), id, tenantEmail)
		if err != nil {
			RespondAggregateError(c, err)
			return
		}
		RespondOK(c, NewAgreementView(draft))
		return
	}
	rows, err := h.service.ListAgreements(c.Request.Context(), id)
	if err != nil {
		RespondAggregateError(c, err)
		return
	}
	RespondOK(c, NewAgreementViews(rows))
}

type reviewAgreementRequest struct {
	TenantEmail string `json:"tenantEmail" binding:"required,email"`
	Confirmed   *bool  `json:"confirmed" binding:"required"`
}

func (h *AgreementHandler) Review(c *gin.Context) {
	id, err := enlistmentID(c)
	if err != nil {
		RespondError(c, http.StatusBadRequest, "validation", err)
		return
	}
	var req reviewAgreementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "validation", err)
		return
	}
	draft, err := h.service.ReviewAgreement(c.Request.Context(), domagg.ReviewAgreementInput{
		EnlistmentID: id,
		TenantEmail:  req.TenantEmail,
		Confirmed:    *req.Confirmed,
	})
	if err != nil {
		RespondAggregateError(c, err)
		return
	}
	RespondOK(c, NewAgreementView(draft))
}

type signAgreementRequest struct {
	TenantEmail   string `json:"tenantEmail" binding:"required,email"`
	Party         string `json:"party" binding:"required"`
	SignatureHash string `json:"signatureHash" binding:"required"`
}

func (h *AgreementHandler) Sign(c *gin.Context) {
	id, err := enlistmentID(c)
	if err != nil {
		RespondError(c, http.StatusBadRequest, "validation", err)
		return
	}
	var req signAgreementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "validation", err)
		return
	}
	in := domagg.SignInput{
		EnlistmentID:  id,
		TenantEmail:   req.TenantEmail,
		SignatureHash: req.SignatureHash,
	}
	switch strings.ToLower(strings.TrimSpace(req.Party)) {
	case "landlord":
		out, err := h.service.LandlordSign(c.Request.Context(), in)
		if err != nil {
			RespondAggregateError(c, err)
			return
		}
		RespondOK(c, NewAgreementView(out))
	case "tenant":
		out, err := h.service.TenantSign(c.Request.Context(), in)
		if err != nil {
			RespondAggregateError(c, err)
			return
		}
		RespondOK(c, NewAgreementView(out))
	default:
		RespondError(c, http.StatusBadRequest, "validation", fmt.Errorf("party must be landlord or tenant"))
	}
}

type cancelAgreementRequest struct {
	TenantEmail string `json:"tenantEmail" binding:"required,email"`
}

func (h *AgreementHandler) Cancel(c *gin.Context) {
	id, err := enlistmentID(c)
	if err != nil {
		RespondError(c, http.StatusBadRequest, "validation", err)
		return
	}
	var req cancelAgreementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "validation", err)
		return
	}
	draft, err := h.service.CancelAgreement(c.Request.Context(), domagg.CancelAgreementInput{
		EnlistmentID: id,
		TenantEmail:  req.TenantEmail,
	})
	if err != nil {
		RespondAggregateError(c, err)
		return
	}
	RespondOK(c, NewAgreementView(draft))
}
