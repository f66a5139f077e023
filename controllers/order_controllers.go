package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/menuport/portal-app/cache"
	"github.com/menuport/portal-app/live"
	"github.com/menuport/portal-app/models"
	"github.com/menuport/portal-app/utils"
)

// estimatedPrepTime is the fixed offset added to new orders.
const estimatedPrepTime = 25 * time.Minute

// ErrOrderConflict is returned when a concurrent writer won the
// compare-and-set on an order's version.
var ErrOrderConflict = errors.New("order was modified concurrently, reload and retry")

type OrderController struct {
	DB    *gorm.DB
	Views *cache.Views
}

func NewOrderController(db *gorm.DB, views *cache.Views) *OrderController {
	return &OrderController{DB: db, Views: views}
}

// OrderLineRequest is one cart line submitted at checkout.
type OrderLineRequest struct {
	MenuItemID uint   `json:"menu_item_id" binding:"required"`
	Quantity   int    `json:"quantity" binding:"required,gt=0"`
	Notes      string `json:"notes"`
}

// CustomerRequest is the customer block of an order submission.
type CustomerRequest struct {
	Name  string `json:"name" binding:"required"`
	Email string `json:"email"`
	Phone string `json:"phone"`
	Table string `json:"table"`
}

// BuildOrder snapshots the requested menu items, computes the totals and
// persists the order. Shared by the checkout endpoint and the cart
// checkout path.
//
// subtotal = sum(price x qty); tax = subtotal x portal rate; delivery
// fee is waived once subtotal reaches the portal's free-delivery
// threshold. Every derived field is rounded to cents so that
// total == subtotal + tax + fee holds on the stored values.
func BuildOrder(db *gorm.DB, portal models.Portal, lines []OrderLineRequest, customer CustomerRequest, paymentMethod string) (*models.Order, error) {
	portal.ApplySettingDefaults()

	var items []models.OrderItem
	subtotal := 0.0
	for _, line := range lines {
		var menuItem models.MenuItem
		if err := db.Where("portal_id = ?", portal.ID).First(&menuItem, line.MenuItemID).Error; err != nil {
			return nil, fmt.Errorf("menu item %d not found", line.MenuItemID)
		}
		if !menuItem.Available {
			return nil, fmt.Errorf("menu item %q is not available", menuItem.Name)
		}
		subtotal += menuItem.Price * float64(line.Quantity)
		items = append(items, models.OrderItem{
			MenuItemID: menuItem.ID,
			Name:       menuItem.Name,
			Price:      menuItem.Price,
			Quantity:   line.Quantity,
			Notes:      line.Notes,
		})
	}
	if len(items) == 0 {
		return nil, errors.New("order has no items")
	}

	subtotal = utils.RoundCents(subtotal)
	tax := utils.RoundCents(subtotal * *portal.TaxRate)
	fee := *portal.DeliveryFee
	if portal.FreeDeliveryMin > 0 && subtotal >= portal.FreeDeliveryMin {
		fee = 0
	}
	total := utils.RoundCents(subtotal + tax + fee)

	eta := time.Now().Add(estimatedPrepTime)
	order := models.Order{
		PortalID:         portal.ID,
		CustomerName:     customer.Name,
		CustomerEmail:    customer.Email,
		CustomerPhone:    customer.Phone,
		TableNumber:      customer.Table,
		Status:           models.OrderStatusPending,
		PaymentMethod:    paymentMethod,
		PaymentStatus:    models.PaymentStatusPending,
		Subtotal:         subtotal,
		Tax:              tax,
		DeliveryFee:      fee,
		Total:            total,
		EstimatedReadyAt: &eta,
	}
	order.ReferenceID = order.GenerateReference(uuid.New().String())

	tx := db.Begin()
	if err := tx.Create(&order).Error; err != nil {
		tx.Rollback()
		return nil, err
	}
	for i := range items {
		items[i].OrderID = order.ID
		if err := tx.Create(&items[i]).Error; err != nil {
			tx.Rollback()
			return nil, err
		}
	}
	if err := tx.Commit().Error; err != nil {
		return nil, err
	}

	order.OrderItems = items
	return &order, nil
}

// CreateOrder submits a cart as an order. Public; customers check out
// without logging in.
func (oc *OrderController) CreateOrder(c *gin.Context) {
	var portal models.Portal
	if err := oc.DB.First(&portal, c.Param("portal_id")).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}
	if portal.Status != models.PortalStatusActive {
		utils.RespondError(c, http.StatusForbidden, errors.New("portal is not accepting orders"))
		return
	}

	type request struct {
		Items         []OrderLineRequest `json:"items" binding:"required,min=1,dive"`
		Customer      CustomerRequest    `json:"customer" binding:"required"`
		PaymentMethod string             `json:"payment_method" binding:"omitempty,oneof=cash card"`
	}
	var req request
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	order, err := BuildOrder(oc.DB, portal, req.Items, req.Customer, req.PaymentMethod)
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	oc.Views.Invalidate(c.Request.Context(), portal.ID)
	live.BroadcastOrderCreated(*order)

	utils.InfoLogger.Printf("Order %s created on portal %d (total=%.2f)", order.ReferenceID, portal.ID, order.Total)
	utils.RespondJSON(c, http.StatusCreated, "Order created", order)
}

// GetOrderByID returns one order with its line items. Public so
// customers can poll their order's progress.
func (oc *OrderController) GetOrderByID(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("order_id"))

	var order models.Order
	if err := oc.DB.Preload("OrderItems").First(&order, id).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Order detail", order)
}

// GetPortalOrders lists a portal's orders for staff, newest first.
// Optional filter: ?status=...
func (oc *OrderController) GetPortalOrders(c *gin.Context) {
	portalID, _ := strconv.Atoi(c.Param("portal_id"))

	query := oc.DB.Preload("OrderItems").Where("portal_id = ?", portalID)
	if status := c.Query("status"); status != "" {
		if !models.ValidOrderStatus(status) {
			utils.RespondError(c, http.StatusBadRequest, fmt.Errorf("unknown order status %q", status))
			return
		}
		query = query.Where("status = ?", status)
	}

	var orders []models.Order
	if err := query.Order("created_at desc").Find(&orders).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of orders", orders)
}

// UpdateOrderStatus moves an order through the fulfillment state
// machine: pending -> confirmed -> preparing -> ready -> completed,
// with cancellation allowed from any non-terminal state.
func (oc *OrderController) UpdateOrderStatus(c *gin.Context) {
	var order models.Order
	if err := oc.DB.Preload("OrderItems").First(&order, c.Param("order_id")).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	type request struct {
		Status string `json:"status" binding:"required"`
	}
	var req request
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	if !models.ValidOrderStatus(req.Status) {
		utils.RespondError(c, http.StatusBadRequest, fmt.Errorf("unknown order status %q", req.Status))
		return
	}
	if !models.CanTransition(order.Status, req.Status) {
		utils.RespondError(c, http.StatusBadRequest,
			fmt.Errorf("cannot transition order from %s to %s", order.Status, req.Status))
		return
	}

	fields := map[string]interface{}{
		"status":     req.Status,
		"updated_at": time.Now(),
	}
	if req.Status == models.OrderStatusCompleted {
		fields["completed_at"] = time.Now()
	}

	if err := casUpdate(oc.DB, &order, fields); err != nil {
		if errors.Is(err, ErrOrderConflict) {
			utils.RespondError(c, http.StatusConflict, err)
		} else {
			utils.RespondError(c, http.StatusInternalServerError, err)
		}
		return
	}
	order.Status = req.Status
	if req.Status == models.OrderStatusCompleted {
		now := time.Now()
		order.CompletedAt = &now
	}

	oc.Views.Invalidate(c.Request.Context(), order.PortalID)
	live.BroadcastOrderUpdate(order)
	role, _ := c.Get("role")
	live.BroadcastStaffNotification(order.PortalID,
		fmt.Sprintf("Order %s is now %s (by %v)", order.ReferenceID, order.Status, role))

	utils.RespondJSON(c, http.StatusOK, "Order status updated", order)
}

// casUpdate writes fields through a compare-and-set on the order's
// version column. Shared by every order writer so the conflict contract
// cannot drift. A lost race returns ErrOrderConflict.
func casUpdate(db *gorm.DB, order *models.Order, fields map[string]interface{}) error {
	fields["version"] = order.Version + 1
	res := db.Model(&models.Order{}).
		Where("id = ? AND version = ?", order.ID, order.Version).
		Updates(fields)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrOrderConflict
	}
	order.Version++
	return nil
}

// GetCashierView shows pending and confirmed orders, newest first.
// Snapshots are cached per portal and invalidated on any order change.
func (oc *OrderController) GetCashierView(c *gin.Context) {
	portalID, _ := strconv.Atoi(c.Param("portal_id"))

	if orders, ok := oc.Views.GetOrders(c.Request.Context(), uint(portalID), cache.ViewCashier); ok {
		utils.RespondJSON(c, http.StatusOK, "Cashier orders", orders)
		return
	}

	var orders []models.Order
	if err := oc.DB.Preload("OrderItems").
		Where("portal_id = ? AND status IN ?", portalID,
			[]string{models.OrderStatusPending, models.OrderStatusConfirmed}).
		Order("created_at desc").
		Find(&orders).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	oc.Views.SetOrders(c.Request.Context(), uint(portalID), cache.ViewCashier, orders)
	utils.RespondJSON(c, http.StatusOK, "Cashier orders", orders)
}

// GetKitchenView shows confirmed and preparing orders, oldest first, so
// the kitchen works the queue in arrival order.
func (oc *OrderController) GetKitchenView(c *gin.Context) {
	portalID, _ := strconv.Atoi(c.Param("portal_id"))

	if orders, ok := oc.Views.GetOrders(c.Request.Context(), uint(portalID), cache.ViewKitchen); ok {
		utils.RespondJSON(c, http.StatusOK, "Kitchen orders", orders)
		return
	}

	var orders []models.Order
	if err := oc.DB.Preload("OrderItems").
		Where("portal_id = ? AND status IN ?", portalID,
			[]string{models.OrderStatusConfirmed, models.OrderStatusPreparing}).
		Order("created_at asc").
		Find(&orders).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	oc.Views.SetOrders(c.Request.Context(), uint(portalID), cache.ViewKitchen, orders)
	utils.RespondJSON(c, http.StatusOK, "Kitchen orders", orders)
}
