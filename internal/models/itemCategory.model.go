package models

import (
	"github.com/shopspring/decimal"
)

// ItemCategory is a priced garment type offered on the new-request form.
type ItemCategory struct {
	BaseUUIDModel
	Name      string          `gorm:"type:text;not null;uniqueIndex" json:"name"`
	BasePrice decimal.Decimal `gorm:"type:numeric(12,2);not null"    json:"basePrice"`
}
