package models

import (
	"time"
)

// OrderItem snapshots a menu item at order time. Name and price are
// denormalized so later menu edits never change historical orders.
type OrderItem struct {
	ID      uint `gorm:"primaryKey" json:"id"`
	OrderID uint `gorm:"not null;index" json:"order_id"`
	// Omitting Order field from JSON to avoid recursive nesting
	Order      Order   `gorm:"foreignKey:OrderID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
	MenuItemID uint    `gorm:"not null" json:"menu_item_id"`
	Name       string  `gorm:"type:varchar(255);not null" json:"name"`
	Price      float64 `gorm:"type:decimal(10,2);not null" json:"price"`
	Quantity   int     `gorm:"not null" json:"quantity"`
	Notes      string  `gorm:"type:text" json:"notes"`

	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}

// LineTotal is the snapshotted price times quantity.
func (oi *OrderItem) LineTotal() float64 {
	return oi.Price * float64(oi.Quantity)
}
