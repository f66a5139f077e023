package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/menuport/portal-app/cache"
	"github.com/menuport/portal-app/cart"
	"github.com/menuport/portal-app/live"
	"github.com/menuport/portal-app/models"
	"github.com/menuport/portal-app/utils"
)

// sessionHeader carries the customer's cart session id. The first
// response returns a generated id; clients echo it on later requests.
const sessionHeader = "X-Cart-Session"

type CartController struct {
	DB    *gorm.DB
	Store cart.Store
	Views *cache.Views
}

func NewCartController(db *gorm.DB, store cart.Store, views *cache.Views) *CartController {
	return &CartController{DB: db, Store: store, Views: views}
}

func (cc *CartController) session(c *gin.Context) string {
	if sid := c.GetHeader(sessionHeader); sid != "" {
		return sid
	}
	return uuid.New().String()
}

// load rehydrates the caller's cart for the route's portal.
func (cc *CartController) load(c *gin.Context) (*cart.Cart, bool) {
	portalID, _ := strconv.Atoi(c.Param("portal_id"))
	ct, err := cc.Store.Get(c.Request.Context(), cc.session(c), uint(portalID))
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return nil, false
	}
	return ct, true
}

// save persists the cart and responds with it.
func (cc *CartController) save(c *gin.Context, ct *cart.Cart, message string) {
	if err := cc.Store.Save(c.Request.Context(), ct); err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, message, ct)
}

// GetCart returns the caller's cart, creating an empty one on first use.
func (cc *CartController) GetCart(c *gin.Context) {
	ct, ok := cc.load(c)
	if !ok {
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Cart", ct)
}

// AddItem puts a menu item in the cart, or increments it when already
// present.
func (cc *CartController) AddItem(c *gin.Context) {
	type request struct {
		MenuItemID uint `json:"menu_item_id" binding:"required"`
		Quantity   int  `json:"quantity"`
	}
	var req request
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	ct, ok := cc.load(c)
	if !ok {
		return
	}

	var menuItem models.MenuItem
	if err := cc.DB.Where("portal_id = ?", ct.PortalID).First(&menuItem, req.MenuItemID).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}
	if !menuItem.Available {
		utils.RespondError(c, http.StatusBadRequest, errors.New("menu item is not available"))
		return
	}

	ct.Add(menuItem.ID, menuItem.Name, menuItem.Price, req.Quantity)
	cc.save(c, ct, "Item added to cart")
}

// UpdateItem changes a line's quantity and/or instructions. Quantity
// zero or below removes the line.
func (cc *CartController) UpdateItem(c *gin.Context) {
	itemID, _ := strconv.Atoi(c.Param("item_id"))

	type request struct {
		Quantity     *int    `json:"quantity"`
		Instructions *string `json:"instructions"`
	}
	var req request
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	ct, ok := cc.load(c)
	if !ok {
		return
	}

	if req.Instructions != nil {
		ct.UpdateInstructions(uint(itemID), *req.Instructions)
	}
	if req.Quantity != nil {
		ct.UpdateQuantity(uint(itemID), *req.Quantity)
	}
	cc.save(c, ct, "Cart updated")
}

// RemoveItem drops a line from the cart.
func (cc *CartController) RemoveItem(c *gin.Context) {
	itemID, _ := strconv.Atoi(c.Param("item_id"))

	ct, ok := cc.load(c)
	if !ok {
		return
	}
	ct.Remove(uint(itemID))
	cc.save(c, ct, "Item removed from cart")
}

// ClearCart empties the cart.
func (cc *CartController) ClearCart(c *gin.Context) {
	ct, ok := cc.load(c)
	if !ok {
		return
	}
	ct.Clear()
	cc.save(c, ct, "Cart cleared")
}

// Checkout converts the cart into an order and clears it. Prices are
// re-read from the live menu; the cart's copies are display-only.
func (cc *CartController) Checkout(c *gin.Context) {
	type request struct {
		Customer      CustomerRequest `json:"customer" binding:"required"`
		PaymentMethod string          `json:"payment_method" binding:"omitempty,oneof=cash card"`
	}
	var req request
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	ct, ok := cc.load(c)
	if !ok {
		return
	}
	if len(ct.Lines) == 0 {
		utils.RespondError(c, http.StatusBadRequest, errors.New("cart is empty"))
		return
	}

	var portal models.Portal
	if err := cc.DB.First(&portal, ct.PortalID).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}
	if portal.Status != models.PortalStatusActive {
		utils.RespondError(c, http.StatusForbidden, errors.New("portal is not accepting orders"))
		return
	}

	lines := make([]OrderLineRequest, 0, len(ct.Lines))
	for _, line := range ct.Lines {
		lines = append(lines, OrderLineRequest{
			MenuItemID: line.MenuItemID,
			Quantity:   line.Quantity,
			Notes:      line.Instructions,
		})
	}

	order, err := BuildOrder(cc.DB, portal, lines, req.Customer, req.PaymentMethod)
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	if err := cc.Store.Delete(c.Request.Context(), ct.SessionID, ct.PortalID); err != nil {
		utils.ErrorLogger.Printf("Error clearing cart %s after checkout: %v", ct.SessionID, err)
	}

	cc.Views.Invalidate(c.Request.Context(), portal.ID)
	live.BroadcastOrderCreated(*order)

	utils.RespondJSON(c, http.StatusCreated, "Order created", order)
}
