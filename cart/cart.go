package cart

import (
	"time"
)

// Line is one selected menu item in a cart. Name and price are copied
// from the menu at add time so the cart stays renderable even while
// the menu is being edited; the order pipeline re-reads live prices at
// checkout.
type Line struct {
	MenuItemID   uint    `json:"menu_item_id"`
	Name         string  `json:"name"`
	Price        float64 `json:"price"`
	Quantity     int     `json:"quantity"`
	Instructions string  `json:"instructions,omitempty"`
}

// Cart is a per-session, per-portal list of selected items. Mutations
// recompute the derived ItemCount and Subtotal; callers persist the
// whole cart after every change.
type Cart struct {
	SessionID string    `json:"session_id"`
	PortalID  uint      `json:"portal_id"`
	Lines     []Line    `json:"lines"`
	ItemCount int       `json:"item_count"`
	Subtotal  float64   `json:"subtotal"`
	UpdatedAt time.Time `json:"updated_at"`
}

func New(sessionID string, portalID uint) *Cart {
	return &Cart{
		SessionID: sessionID,
		PortalID:  portalID,
		Lines:     []Line{},
	}
}

// Add appends a line or, if the item is already in the cart, increments
// its quantity.
func (c *Cart) Add(menuItemID uint, name string, price float64, quantity int) {
	if quantity <= 0 {
		quantity = 1
	}
	for i := range c.Lines {
		if c.Lines[i].MenuItemID == menuItemID {
			c.Lines[i].Quantity += quantity
			c.recompute()
			return
		}
	}
	c.Lines = append(c.Lines, Line{
		MenuItemID: menuItemID,
		Name:       name,
		Price:      price,
		Quantity:   quantity,
	})
	c.recompute()
}

// UpdateQuantity sets a line's quantity. Zero or negative removes the
// line entirely.
func (c *Cart) UpdateQuantity(menuItemID uint, quantity int) {
	if quantity <= 0 {
		c.Remove(menuItemID)
		return
	}
	for i := range c.Lines {
		if c.Lines[i].MenuItemID == menuItemID {
			c.Lines[i].Quantity = quantity
			break
		}
	}
	c.recompute()
}

// UpdateInstructions sets the free-text preparation note on a line.
func (c *Cart) UpdateInstructions(menuItemID uint, instructions string) {
	for i := range c.Lines {
		if c.Lines[i].MenuItemID == menuItemID {
			c.Lines[i].Instructions = instructions
			break
		}
	}
}

// Remove drops a line from the cart.
func (c *Cart) Remove(menuItemID uint) {
	for i := range c.Lines {
		if c.Lines[i].MenuItemID == menuItemID {
			c.Lines = append(c.Lines[:i], c.Lines[i+1:]...)
			break
		}
	}
	c.recompute()
}

// Clear empties the cart.
func (c *Cart) Clear() {
	c.Lines = []Line{}
	c.recompute()
}

func (c *Cart) recompute() {
	count := 0
	subtotal := 0.0
	for _, line := range c.Lines {
		count += line.Quantity
		subtotal += line.Price * float64(line.Quantity)
	}
	c.ItemCount = count
	c.Subtotal = subtotal
	c.UpdatedAt = time.Now()
}
