package models

import "time"

type MenuItem struct {
	ID          uint     `gorm:"primaryKey" json:"id"`
	PortalID    uint     `gorm:"not null;index" json:"portal_id"`
	Portal      Portal   `gorm:"foreignKey:PortalID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
	Name        string   `gorm:"type:varchar(255);not null" json:"name"`
	Description string   `gorm:"type:text" json:"description"`
	Price       float64  `gorm:"type:decimal(10,2);not null" json:"price"`
	ImageURL    string   `gorm:"type:varchar(255)" json:"image_url"`
	Category    string   `gorm:"type:varchar(100);index" json:"category"`
	Tags        []string `gorm:"serializer:json;type:text" json:"tags"`
	Available   bool     `gorm:"not null;default:true" json:"available"`

	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}
