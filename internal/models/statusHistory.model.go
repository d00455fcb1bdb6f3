package models

import (
	"github.com/google/uuid"
)

// StatusHistory is the append-only audit trail for a request. The request's
// own status column remains the source of truth; history rows are advisory.
type StatusHistory struct {
	BaseUUIDModel
	RequestID uuid.UUID     `gorm:"type:uuid;not null;index" json:"requestId"`
	Status    RequestStatus `gorm:"type:text;not null"       json:"status"`
	Notes     string        `gorm:"type:text"                json:"notes"`
}
