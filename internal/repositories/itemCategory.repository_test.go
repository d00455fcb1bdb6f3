package repositories_test

import (
	"freshfold/internal/models"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestItemCategoryRepository_NameMapping(t *testing.T) {
	// Test the logic for mapping category names to rows
	t.Run("name map creation", func(t *testing.T) {
		categories := []models.ItemCategory{
			{Name: "Shirt", BasePrice: decimal.NewFromFloat(3.50)},
			{Name: "Suit", BasePrice: decimal.NewFromFloat(12.00)},
		}

		// Create the map as the repository would
		byName := make(map[string]models.ItemCategory, len(categories))
		for _, category := range categories {
			byName[category.Name] = category
		}

		assert.Equal(t, 2, len(byName))
		assert.True(t, byName["Shirt"].BasePrice.Equal(decimal.NewFromFloat(3.50)))
		assert.True(t, byName["Suit"].BasePrice.Equal(decimal.NewFromFloat(12.00)))
	})

	t.Run("empty names array", func(t *testing.T) {
		names := []string{}

		// Should handle empty array without a query
		if len(names) == 0 {
			result := make(map[string]models.ItemCategory)
			assert.Equal(t, 0, len(result))
		}
	})
}

func TestRequestRepository_TotalsComputation(t *testing.T) {
	// Totals are derived from items at submission, never stored ahead of them
	items := []models.ClothingItem{
		{ItemType: "Shirt", Quantity: 3, EstimatedCost: decimal.NewFromFloat(3.50)},
		{ItemType: "Suit", Quantity: 1, EstimatedCost: decimal.NewFromFloat(12.00)},
	}

	totalCost := decimal.Zero
	totalItems := 0
	for _, item := range items {
		totalCost = totalCost.Add(item.EstimatedCost.Mul(decimal.NewFromInt(int64(item.Quantity))))
		totalItems += item.Quantity
	}

	assert.Equal(t, 4, totalItems)
	assert.True(t, totalCost.Equal(decimal.NewFromFloat(22.50)))
}
