package initialize

import (
	"freshfold/config"
	. "freshfold/internal/models"

	logger "github.com/Bparsons0904/goLogger"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

func InitializeTables(db *gorm.DB, config config.Config, log logger.Logger) error {
	log = log.Function("InitializeTables")
	log.Info("Initializing essential production data")

	if err := initializeItemCategories(db, log); err != nil {
		return log.Err("failed to initialize item categories", err)
	}

	log.Info("Table initialization complete")
	return nil
}

func initializeItemCategories(db *gorm.DB, log logger.Logger) error {
	log.Info("Initializing item category reference data")

	categories := getItemCategoryData()

	for _, category := range categories {
		var existingCategory ItemCategory
		if err := db.First(&existingCategory, "name = ?", category.Name).Error; err == nil {
			log.Debug("Item category already exists", "name", category.Name)
			continue
		}
		log.Info("Initializing item category", "name", category.Name)
		if err := db.Create(&category).Error; err != nil {
			return log.Err(
				"failed to create item category",
				err,
				"name",
				category.Name,
			)
		}
	}

	log.Info("Item category reference data initialized", "count", len(categories))
	return nil
}

func getItemCategoryData() []ItemCategory {
	return []ItemCategory{
		{Name: "Shirt", BasePrice: decimal.NewFromFloat(3.50)},
		{Name: "Blouse", BasePrice: decimal.NewFromFloat(4.00)},
		{Name: "Pants", BasePrice: decimal.NewFromFloat(5.00)},
		{Name: "Skirt", BasePrice: decimal.NewFromFloat(5.50)},
		{Name: "Dress", BasePrice: decimal.NewFromFloat(9.00)},
		{Name: "Suit", BasePrice: decimal.NewFromFloat(12.00)},
		{Name: "Sweater", BasePrice: decimal.NewFromFloat(6.00)},
		{Name: "Coat", BasePrice: decimal.NewFromFloat(14.00)},
		{Name: "Jacket", BasePrice: decimal.NewFromFloat(10.00)},
		{Name: "Tie", BasePrice: decimal.NewFromFloat(3.00)},
		{Name: "Comforter", BasePrice: decimal.NewFromFloat(25.00)},
		{Name: "Curtains", BasePrice: decimal.NewFromFloat(18.00)},
	}
}
