package models

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

// CleaningRequest is a customer's batch cleaning order. Items are written once
// at submission and never edited; the request row itself is mutated only
// through status updates. Requests are never deleted.
type CleaningRequest struct {
	BaseUUIDModel
	UserID          uuid.UUID       `gorm:"type:uuid;not null;index"                    json:"userId"`
	User            User            `gorm:"foreignKey:UserID"                           json:"user"`
	AddressID       uuid.UUID       `gorm:"type:uuid;not null"                          json:"addressId"`
	Address         Address         `gorm:"foreignKey:AddressID"                        json:"address"`
	Status          RequestStatus   `gorm:"type:text;not null;default:'pending';index"  json:"status"`
	TotalCost       decimal.Decimal `gorm:"type:numeric(12,2);not null"                 json:"totalCost"`
	TotalItems      int             `gorm:"type:int;not null"                           json:"totalItems"`
	ScheduledPickup datatypes.Date  `gorm:"not null"                                    json:"scheduledPickup"`
	Notes           string          `gorm:"type:text"                                   json:"notes"`

	ClothingItems []ClothingItem  `gorm:"foreignKey:RequestID" json:"clothingItems,omitempty"`
	StatusHistory []StatusHistory `gorm:"foreignKey:RequestID" json:"statusHistory,omitempty"`
}
