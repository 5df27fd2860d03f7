package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/tinoe0404/eTuckshop-sub000/internal/domain/errors"
	"github.com/tinoe0404/eTuckshop-sub000/internal/domain/model"
	"github.com/tinoe0404/eTuckshop-sub000/internal/server/http/dto"
)

// ShopHandler manages cart and checkout endpoints.
type ShopHandler struct {
	facade ShopFacade
}

// NewShopHandler constructs ShopHandler.
func NewShopHandler(facade ShopFacade) *ShopHandler {
	return &ShopHandler{facade: facade}
}

// AddItem handles POST /api/user/cart.
func (h *ShopHandler) AddItem(c *gin.Context) {
	userID := CurrentUserID(c)
	var req dto.AddItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	err := h.facade.AddToCart(c.Request.Context(), userID, req.ProductID, req.Quantity)
	if err != nil {
		var stockErr domainErrors.InsufficientStockError
		switch {
		case errors.Is(err, domainErrors.ErrInvalidQuantity):
			c.Status(http.StatusUnprocessableEntity)
		case errors.Is(err, domainErrors.ErrNotFound):
			c.Status(http.StatusNotFound)
		case errors.As(err, &stockErr):
			c.JSON(http.StatusConflict, gin.H{"error": stockErr.Error()})
		default:
			c.Status(http.StatusInternalServerError)
		}
		return
	}
	c.Status(http.StatusOK)
}

// Cart handles GET /api/user/cart.
func (h *ShopHandler) Cart(c *gin.Context) {
	userID := CurrentUserID(c)
	contents, err := h.facade.CartContents(c.Request.Context(), userID)
	if err != nil {
		c.Status(http.StatusInternalServerError)
		return
	}

	resp := dto.CartResponse{Total: contents.Total().StringFixed(2)}
	for _, line := range contents.Lines {
		resp.Lines = append(resp.Lines, dto.CartLineResponse{
			ProductID: line.ProductID,
			Name:      line.Name,
			UnitPrice: line.UnitPrice.StringFixed(2),
			Quantity:  line.Quantity,
			Subtotal:  line.Subtotal().Round(2).StringFixed(2),
		})
	}
	c.JSON(http.StatusOK, resp)
}

// Checkout handles POST /api/user/checkout.
func (h *ShopHandler) Checkout(c *gin.Context) {
	userID := CurrentUserID(c)
	var req dto.CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	paymentType := model.PaymentType(req.PaymentType)
	if paymentType != model.PaymentTypeCash && paymentType != model.PaymentTypePrepaid {
		c.Status(http.StatusUnprocessableEntity)
		return
	}

	result, err := h.facade.Checkout(c.Request.Context(), userID, paymentType)
	if err != nil {
		var stockErr domainErrors.InsufficientStockError
		switch {
		case errors.Is(err, domainErrors.ErrEmptyCart):
			c.Status(http.StatusUnprocessableEntity)
		case errors.As(err, &stockErr):
			c.JSON(http.StatusConflict, gin.H{"error": stockErr.Error()})
		default:
			c.Status(http.StatusInternalServerError)
		}
		return
	}

	resp := dto.CheckoutResponse{
		Order:      orderResponse(result.Order),
		PaymentURL: result.PaymentURL,
	}
	if result.Artifact != nil && result.Artifact.Status == model.ArtifactStatusActive {
		resp.PickupCode = result.Artifact.Payload
		resp.ExpiresAt = result.Artifact.ExpiresAt
	}
	if result.ArtifactErr != nil {
		resp.Warning = "order placed, but fulfillment preparation failed; contact support with your order number"
	}
	c.JSON(http.StatusOK, resp)
}

// Orders handles GET /api/user/orders.
func (h *ShopHandler) Orders(c *gin.Context) {
	userID := CurrentUserID(c)
	orders, err := h.facade.OrdersByUser(c.Request.Context(), userID)
	if err != nil {
		c.Status(http.StatusInternalServerError)
		return
	}
	if len(orders) == 0 {
		c.Status(http.StatusNoContent)
		return
	}

	resp := make([]dto.OrderResponse, 0, len(orders))
	for i := range orders {
		resp = append(resp, orderResponse(&orders[i]))
	}
	c.JSON(http.StatusOK, resp)
}
