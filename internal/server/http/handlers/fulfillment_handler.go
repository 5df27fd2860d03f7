package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tinoe0404/eTuckshop-sub000/internal/artifact"
	domainErrors "github.com/tinoe0404/eTuckshop-sub000/internal/domain/errors"
	"github.com/tinoe0404/eTuckshop-sub000/internal/server/http/dto"
)

// FulfillmentHandler serves the payment provider callback and the pickup
// counter scanner.
type FulfillmentHandler struct {
	facade FulfillmentFacade
}

// NewFulfillmentHandler constructs FulfillmentHandler.
func NewFulfillmentHandler(facade FulfillmentFacade) *FulfillmentHandler {
	return &FulfillmentHandler{facade: facade}
}

// ConfirmPayment handles POST /api/payments/confirm. Providers retry this
// callback; confirming an already PAID order succeeds without side effects.
func (h *FulfillmentHandler) ConfirmPayment(c *gin.Context) {
	var req dto.ConfirmPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Order == "" {
		c.Status(http.StatusBadRequest)
		return
	}

	order, err := h.facade.ConfirmPayment(c.Request.Context(), req.Order)
	if err != nil {
		switch {
		case errors.Is(err, domainErrors.ErrNotFound):
			c.Status(http.StatusNotFound)
		case errors.Is(err, domainErrors.ErrInvalidOrderState):
			c.Status(http.StatusConflict)
		default:
			c.Status(http.StatusInternalServerError)
		}
		return
	}
	c.JSON(http.StatusOK, orderResponse(order))
}

// VerifyPickup handles POST /api/pickup/verify.
func (h *FulfillmentHandler) VerifyPickup(c *gin.Context) {
	var req dto.VerifyPickupRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Code == "" {
		c.Status(http.StatusBadRequest)
		return
	}

	order, err := h.facade.VerifyPickup(c.Request.Context(), req.Code)
	if err != nil {
		switch {
		case errors.Is(err, artifact.ErrExpired):
			c.Status(http.StatusGone)
		case errors.Is(err, artifact.ErrInvalidPayload):
			c.Status(http.StatusUnprocessableEntity)
		case errors.Is(err, domainErrors.ErrNotFound):
			c.Status(http.StatusNotFound)
		case errors.Is(err, domainErrors.ErrInvalidOrderState):
			c.Status(http.StatusConflict)
		default:
			c.Status(http.StatusInternalServerError)
		}
		return
	}
	c.JSON(http.StatusOK, dto.VerifyPickupResponse{Order: orderResponse(order)})
}
