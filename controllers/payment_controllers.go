package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/menuport/portal-app/cache"
	"github.com/menuport/portal-app/live"
	"github.com/menuport/portal-app/models"
	"github.com/menuport/portal-app/utils"
)

type PaymentController struct {
	DB    *gorm.DB
	Views *cache.Views
}

func NewPaymentController(db *gorm.DB, views *cache.Views) *PaymentController {
	return &PaymentController{DB: db, Views: views}
}

// PayOrder records a payment against an order. The order is re-read,
// the total recomputed with the tip, and the order confirmed. Paying a
// cancelled, completed or already-paid order is rejected.
func (pc *PaymentController) PayOrder(c *gin.Context) {
	var order models.Order
	if err := pc.DB.Preload("OrderItems").First(&order, c.Param("order_id")).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	type request struct {
		PaymentMethod string  `json:"payment_method" binding:"required,oneof=cash card"`
		Tip           float64 `json:"tip" binding:"omitempty,gte=0"`
	}
	var req request
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	if !order.Payable() {
		utils.RespondError(c, http.StatusConflict,
			fmt.Errorf("order %s is not payable (status=%s, payment_status=%s)",
				order.ReferenceID, order.Status, order.PaymentStatus))
		return
	}

	tip := utils.RoundCents(req.Tip)
	total := utils.RoundCents(order.Subtotal + order.Tax + order.DeliveryFee + tip)

	status := order.Status
	if models.CanTransition(order.Status, models.OrderStatusConfirmed) {
		status = models.OrderStatusConfirmed
	}

	fields := map[string]interface{}{
		"payment_method": req.PaymentMethod,
		"payment_status": models.PaymentStatusPaid,
		"status":         status,
		"tip":            tip,
		"total":          total,
		"updated_at":     time.Now(),
	}

	if err := casUpdate(pc.DB, &order, fields); err != nil {
		if errors.Is(err, ErrOrderConflict) {
			utils.RespondError(c, http.StatusConflict, err)
		} else {
			utils.RespondError(c, http.StatusInternalServerError, err)
		}
		return
	}
	order.PaymentMethod = req.PaymentMethod
	order.PaymentStatus = models.PaymentStatusPaid
	order.Status = status
	order.Tip = tip
	order.Total = total

	pc.Views.Invalidate(c.Request.Context(), order.PortalID)
	live.BroadcastPaymentUpdate(order)

	utils.InfoLogger.Printf("Order %s paid via %s (total=%.2f, tip=%.2f)",
		order.ReferenceID, order.PaymentMethod, order.Total, order.Tip)
	utils.RespondJSON(c, http.StatusOK, "Payment recorded", order)
}
