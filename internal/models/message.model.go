package models

import (
	"github.com/google/uuid"
)

// Message is one entry in a request's conversation. Rows are append-only and
// ordered by created_at; there is no sequence number, so concurrent inserts
// within the same timestamp are not strictly orderable.
type Message struct {
	BaseUUIDModel
	RequestID  uuid.UUID  `gorm:"type:uuid;not null;index" json:"requestId"`
	SenderID   uuid.UUID  `gorm:"type:uuid;not null;index" json:"senderId"`
	Sender     User       `gorm:"foreignKey:SenderID"      json:"sender"`
	ReceiverID *uuid.UUID `gorm:"type:uuid"                json:"receiverId,omitempty"`
	Content    string     `gorm:"type:text;not null"       json:"content"`
}
