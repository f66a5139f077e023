package models

import (
	"fmt"
	"time"
)

// Order status values. Orders move pending -> confirmed -> preparing ->
// ready -> completed, with cancellation allowed from any non-terminal state.
const (
	OrderStatusPending   = "pending"
	OrderStatusConfirmed = "confirmed"
	OrderStatusPreparing = "preparing"
	OrderStatusReady     = "ready"
	OrderStatusCompleted = "completed"
	OrderStatusCancelled = "cancelled"
)

// Payment status values.
const (
	PaymentStatusPending = "pending"
	PaymentStatusPaid    = "paid"
	PaymentStatusFailed  = "failed"
)

// Payment methods accepted at checkout.
const (
	PaymentMethodCash = "cash"
	PaymentMethodCard = "card"
)

var orderTransitions = map[string][]string{
	OrderStatusPending:   {OrderStatusConfirmed, OrderStatusCancelled},
	OrderStatusConfirmed: {OrderStatusPreparing, OrderStatusCancelled},
	OrderStatusPreparing: {OrderStatusReady, OrderStatusCancelled},
	OrderStatusReady:     {OrderStatusCompleted, OrderStatusCancelled},
}

// ValidOrderStatus reports whether s is a known order status.
func ValidOrderStatus(s string) bool {
	switch s {
	case OrderStatusPending, OrderStatusConfirmed, OrderStatusPreparing,
		OrderStatusReady, OrderStatusCompleted, OrderStatusCancelled:
		return true
	}
	return false
}

// CanTransition reports whether an order may move from status `from` to `to`.
func CanTransition(from, to string) bool {
	for _, next := range orderTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

type Order struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	PortalID    uint   `gorm:"not null;index" json:"portal_id"`
	Portal      Portal `gorm:"foreignKey:PortalID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
	ReferenceID string `gorm:"type:varchar(64);uniqueIndex" json:"reference_id"`

	CustomerName  string `gorm:"type:varchar(255);not null" json:"customer_name"`
	CustomerEmail string `gorm:"type:varchar(255)" json:"customer_email,omitempty"`
	CustomerPhone string `gorm:"type:varchar(50)" json:"customer_phone,omitempty"`
	TableNumber   string `gorm:"type:varchar(50)" json:"table_number,omitempty"`

	Status        string `gorm:"type:varchar(20);not null;default:'pending';index" json:"status"`
	PaymentMethod string `gorm:"type:varchar(20)" json:"payment_method"`
	PaymentStatus string `gorm:"type:varchar(20);not null;default:'pending'" json:"payment_status"`

	Subtotal    float64 `gorm:"type:decimal(10,2);not null;default:0.00" json:"subtotal"`
	Tax         float64 `gorm:"type:decimal(10,2);not null;default:0.00" json:"tax"`
	DeliveryFee float64 `gorm:"type:decimal(10,2);not null;default:0.00" json:"delivery_fee"`
	Tip         float64 `gorm:"type:decimal(10,2);not null;default:0.00" json:"tip"`
	Total       float64 `gorm:"type:decimal(10,2);not null;default:0.00" json:"total"`

	// Version guards concurrent staff updates: writes go through
	// a compare-and-set on this column.
	Version uint `gorm:"not null;default:0" json:"version"`

	EstimatedReadyAt *time.Time `json:"estimated_ready_at,omitempty"`
	CompletedAt      *time.Time `json:"completed_at,omitempty"`
	CreatedAt        time.Time  `gorm:"not null" json:"created_at"`
	UpdatedAt        time.Time  `gorm:"not null" json:"updated_at"`

	OrderItems []OrderItem `gorm:"foreignKey:OrderID" json:"order_items"`
}

// GenerateReference builds the external reference shown to customers.
// Format: ORD-<portal_id>-<suffix>.
func (o *Order) GenerateReference(suffix string) string {
	return fmt.Sprintf("ORD-%d-%s", o.PortalID, suffix)
}

// Terminal reports whether the order can no longer change status.
func (o *Order) Terminal() bool {
	return o.Status == OrderStatusCompleted || o.Status == OrderStatusCancelled
}

// Payable reports whether a payment may still be recorded for the order.
func (o *Order) Payable() bool {
	return !o.Terminal() && o.PaymentStatus != PaymentStatusPaid
}
