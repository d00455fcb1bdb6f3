package models

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type ClothingItem struct {
	BaseUUIDModel
	RequestID           uuid.UUID       `gorm:"type:uuid;not null;index"    json:"requestId"`
	ItemType            string          `gorm:"type:text;not null"          json:"itemType"`
	Quantity            int             `gorm:"type:int;not null"           json:"quantity"`
	EstimatedCost       decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"estimatedCost"`
	SpecialInstructions string          `gorm:"type:text"                   json:"specialInstructions"`
}
