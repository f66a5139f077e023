package models

import (
	"time"
)

// Chat roles. Mirrors the wire format of the assistant API.
const (
	ChatRoleUser      = "user"
	ChatRoleAssistant = "assistant"
)

// ChatMessage is one turn of an assistant conversation on a portal,
// kept so staff can review what the assistant told customers.
type ChatMessage struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	PortalID  uint      `gorm:"not null;index" json:"portal_id"`
	Portal    Portal    `gorm:"foreignKey:PortalID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
	SessionID string    `gorm:"type:varchar(64);index" json:"session_id"`
	Role      string    `gorm:"type:varchar(20);not null" json:"role"`
	Content   string    `gorm:"type:text;not null" json:"content"`
	CreatedAt time.Time `gorm:"not null" json:"created_at"`
}
