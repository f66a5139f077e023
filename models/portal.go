package models

import "time"

// Portal status values.
const (
	PortalStatusActive   = "active"
	PortalStatusInactive = "inactive"
	PortalStatusDraft    = "draft"
)

// Portal is a restaurant's digital storefront: branding, colors and
// per-portal ordering settings.
type Portal struct {
	ID             uint   `gorm:"primaryKey" json:"id"`
	OwnerID        uint   `gorm:"not null;index" json:"owner_id"`
	Owner          User   `gorm:"foreignKey:OwnerID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
	Name           string `gorm:"type:varchar(255);not null" json:"name"`
	Description    string `gorm:"type:text" json:"description"`
	Status         string `gorm:"type:varchar(20);not null;default:'draft'" json:"status"`
	PrimaryColor   string `gorm:"type:varchar(20)" json:"primary_color"`
	SecondaryColor string `gorm:"type:varchar(20)" json:"secondary_color"`
	AccentColor    string `gorm:"type:varchar(20)" json:"accent_color"`

	// Ordering settings. Tax rate and delivery fee are pointers so an
	// explicit zero (free delivery, untaxed jurisdiction) is distinct
	// from unset; nil falls back to the platform defaults.
	Currency        string   `gorm:"type:varchar(10)" json:"currency"`
	TaxRate         *float64 `gorm:"type:decimal(5,4)" json:"tax_rate"`
	DeliveryFee     *float64 `gorm:"type:decimal(10,2)" json:"delivery_fee"`
	FreeDeliveryMin float64  `gorm:"type:decimal(10,2)" json:"free_delivery_min"`

	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}

// Platform defaults used when a portal does not override them.
const (
	DefaultCurrency    = "USD"
	DefaultTaxRate     = 0.10
	DefaultDeliveryFee = 3.99
)

// ApplySettingDefaults fills unset ordering settings with the platform
// defaults. An explicit zero rate or fee is kept as configured.
// FreeDeliveryMin stays 0, meaning "never waive the fee".
func (p *Portal) ApplySettingDefaults() {
	if p.Currency == "" {
		p.Currency = DefaultCurrency
	}
	if p.TaxRate == nil {
		rate := DefaultTaxRate
		p.TaxRate = &rate
	}
	if p.DeliveryFee == nil {
		fee := DefaultDeliveryFee
		p.DeliveryFee = &fee
	}
}
