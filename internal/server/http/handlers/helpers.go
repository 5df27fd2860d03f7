package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/tinoe0404/eTuckshop-sub000/internal/domain/model"
	"github.com/tinoe0404/eTuckshop-sub000/internal/server/http/dto"
	"github.com/tinoe0404/eTuckshop-sub000/internal/server/http/middleware"
)

// CurrentUserID extracts authenticated user identifier from context.
func CurrentUserID(c *gin.Context) int64 {
	val, ok := c.Get(middleware.UserIDContextKey)
	if !ok {
		return 0
	}
	id, _ := val.(int64)
	return id
}

func orderResponse(o *model.Order) dto.OrderResponse {
	resp := dto.OrderResponse{
		Number:      o.Number,
		Status:      string(o.Status),
		PaymentType: string(o.PaymentType),
		Total:       o.Total.StringFixed(2),
		CreatedAt:   o.CreatedAt,
		PaidAt:      o.PaidAt,
		CompletedAt: o.CompletedAt,
	}
	for _, item := range o.Items {
		resp.Items = append(resp.Items, dto.OrderItemResponse{
			ProductID: item.ProductID,
			Name:      item.Name,
			UnitPrice: item.UnitPrice.StringFixed(2),
			Quantity:  item.Quantity,
			Subtotal:  item.Subtotal.StringFixed(2),
		})
	}
	return resp
}
