package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	domagg "github.com/renthaus/enlistd/internal/domain/aggregates"
	"github.com/renthaus/enlistd/internal/services"
)

type EnlistmentHandler struct {
	service services.EnlistmentService
}

func NewEnlistmentHandler(service services.EnlistmentService) *EnlistmentHandler {
	return &EnlistmentHandler{service: service}
}

func enlistmentID(c *gin.Context) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return uuid.Nil, fmt.Errorf("invalid enlistment id: %w", err)
	}
	return id, nil
}

type createEnlistmentRequest struct {
	LandlordName string `json:"landlordName" binding:"required"`
	StreetName   string `json:"streetName" binding:"required"`
	FloorNr      int    `json:"floorNr"`
	ApartmentNr  string `json:"apartmentNr" binding:"required"`
	HouseNr      string `json:"houseNr" binding:"required"`
	ZipCode      string `json:"zipCode" binding:"required"`
}

func (h *EnlistmentHandler) Create(c *gin.Context) {
	var req createEnlistmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "validation", err)
		return
	}
	e, err := h.service.CreateEnlistment(c.Request.Context(), domagg.CreateEnlistmentInput{
		LandlordName: req.LandlordName,
		StreetName:   req.StreetName,
		FloorNr:      req.FloorNr,
		ApartmentNr:  req.ApartmentNr,
		HouseNr:      req.HouseNr,
		ZipCode:      req.ZipCode,
	})
	if err != nil {
		RespondAggregateError(c, err)
		return
	}
	RespondCreated(c, NewEnlistmentView(e))
}

func (h *EnlistmentHandler) List(c *gin.Context) {
	rows, err := h.service.ListEnlistments(c.Request.Context())
	if err != nil {
		RespondAggregateError(c, err)
		return
	}
	RespondOK(c, NewEnlistmentViews(rows))
}

func (h *EnlistmentHandler) Get(c *gin.Context) {
	id, err := enlistmentID(c)
	if err != nil {
		RespondError(c, http.StatusBadRequest, "validation", err)
		return
	}
	e, err := h.service.GetEnlistment(c.Request.Context(), id)
	if err != nil {
		RespondAggregateError(c, err)
		return
	}
	RespondOK(c, NewEnlistmentView(e))
}

func (h *EnlistmentHandler) Approve(c *gin.Context) {
	h.review(c, true)
}

func (h *EnlistmentHandler) Reject(c *gin.Context) {
	h.review(c, false)
}

func (h *EnlistmentHandler) review(c *gin.Context, approved bool) {
	id, err := enlistmentID(c)
	if err != nil {
		RespondError(c, http.StatusBadRequest, "validation", err)
		return
	}
	e, err := h.service.ReviewListing(c.Request.Context(), domagg.ReviewListingInput{
		EnlistmentID: id,
		Approved:     approved,
	})
	if err != nil {
		RespondAggregateError(c, err)
		return
	}
	RespondOK(c, NewEnlistmentView(e))
}
