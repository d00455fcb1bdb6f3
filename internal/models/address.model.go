package models

import (
	"github.com/google/uuid"
)

type Address struct {
	BaseUUIDModel
	UserID        uuid.UUID `gorm:"type:uuid;not null;index" json:"userId"`
	StreetAddress string    `gorm:"type:text;not null"       json:"streetAddress"`
	City          string    `gorm:"type:text"                json:"city"`
	State         string    `gorm:"type:text"                json:"state"`
	PostalCode    string    `gorm:"type:text"                json:"postalCode"`
	Latitude      float64   `gorm:"type:float"               json:"latitude"`
	Longitude     float64   `gorm:"type:float"               json:"longitude"`
	IsDefault     bool      `gorm:"type:bool;default:false"  json:"isDefault"`
}
