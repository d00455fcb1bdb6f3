package requestController

import (
	"context"
	"freshfold/internal/models"
	"testing"

	logger "github.com/Bparsons0904/goLogger"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeCategoryRepo struct {
	categories map[string]models.ItemCategory
}

func (f *fakeCategoryRepo) GetAll(ctx context.Context) ([]models.ItemCategory, error) {
	all := make([]models.ItemCategory, 0, len(f.categories))
	for _, category := range f.categories {
		all = append(all, category)
	}
	return all, nil
}

func (f *fakeCategoryRepo) GetByNames(
	ctx context.Context,
	names []string,
) (map[string]models.ItemCategory, error) {
	result := make(map[string]models.ItemCategory)
	for _, name := range names {
		if category, ok := f.categories[name]; ok {
			result[name] = category
		}
	}
	return result, nil
}

func newTestController() *RequestController {
	return &RequestController{
		categoryRepo: &fakeCategoryRepo{categories: map[string]models.ItemCategory{}},
		log:          logger.New("requestControllerTest"),
	}
}

func TestParsePickupDate(t *testing.T) {
	tests := []struct {
		name        string
		dateStr     string
		expectError bool
		errorMsg    string
	}{
		{
			name:        "Valid date",
			dateStr:     "2025-03-14",
			expectError: false,
		},
		{
			name:        "Empty string",
			dateStr:     "",
			expectError: true,
			errorMsg:    "pickup date is required",
		},
		{
			name:        "RFC3339 not accepted",
			dateStr:     "2025-03-14T10:00:00Z",
			expectError: true,
			errorMsg:    "invalid pickup date format, expected YYYY-MM-DD",
		},
		{
			name:        "Garbage",
			dateStr:     "next tuesday",
			expectError: true,
			errorMsg:    "invalid pickup date format, expected YYYY-MM-DD",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := parsePickupDate(tt.dateStr)

			if tt.expectError {
				assert.Error(t, err)
				assert.Equal(t, tt.errorMsg, err.Error())
				assert.True(t, result.IsZero())
			} else {
				assert.NoError(t, err)
				assert.False(t, result.IsZero())
			}
		})
	}
}

func TestBuildItemsComputesTotals(t *testing.T) {
	c := newTestController()

	items, totalCost, totalItems, err := c.buildItems(context.Background(), []ItemInput{
		{Type: "shirt", Quantity: 3, CostPerUnit: decimal.NewFromInt(500)},
		{Type: "suit", Quantity: 1, CostPerUnit: decimal.NewFromInt(5000)},
	})

	require.NoError(t, err)
	assert.Len(t, items, 2)
	assert.Equal(t, 4, totalItems)
	assert.True(t, totalCost.Equal(decimal.NewFromInt(6500)),
		"expected 6500, got %s", totalCost)
}

func TestBuildItemsCategoryPriceFallback(t *testing.T) {
	c := newTestController()
	c.categoryRepo = &fakeCategoryRepo{categories: map[string]models.ItemCategory{
		"Shirt": {Name: "Shirt", BasePrice: decimal.NewFromFloat(3.50)},
	}}

	items, totalCost, totalItems, err := c.buildItems(context.Background(), []ItemInput{
		{Type: "Shirt", Quantity: 2},
	})

	require.NoError(t, err)
	assert.Len(t, items, 1)
	assert.Equal(t, 2, totalItems)
	assert.True(t, items[0].EstimatedCost.Equal(decimal.NewFromFloat(3.50)))
	assert.True(t, totalCost.Equal(decimal.NewFromFloat(7.00)))
}

func TestBuildItemsValidation(t *testing.T) {
	c := newTestController()

	tests := []struct {
		name  string
		input ItemInput
	}{
		{name: "blank type", input: ItemInput{Type: "   ", Quantity: 1}},
		{name: "zero quantity", input: ItemInput{Type: "shirt", Quantity: 0}},
		{
			name:  "negative cost",
			input: ItemInput{Type: "shirt", Quantity: 1, CostPerUnit: decimal.NewFromInt(-1)},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, _, err := c.buildItems(context.Background(), []ItemInput{tt.input})
			assert.ErrorIs(t, err, ErrValidation)
		})
	}
}

func TestCreateValidation(t *testing.T) {
	c := newTestController()
	user := &models.User{Role: models.RoleCustomer}

	tests := []struct {
		name    string
		request CreateRequestRequest
	}{
		{
			name: "blank address",
			request: CreateRequestRequest{
				Address:         AddressInput{StreetAddress: "  "},
				ScheduledPickup: "2025-03-14",
				Items:           []ItemInput{{Type: "shirt", Quantity: 1}},
			},
		},
		{
			name: "missing pickup date",
			request: CreateRequestRequest{
				Address: AddressInput{StreetAddress: "12 Main St"},
				Items:   []ItemInput{{Type: "shirt", Quantity: 1}},
			},
		},
		{
			name: "no items",
			request: CreateRequestRequest{
				Address:         AddressInput{StreetAddress: "12 Main St"},
				ScheduledPickup: "2025-03-14",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := c.Create(context.Background(), user, &tt.request)
			assert.ErrorIs(t, err, ErrValidation)
		})
	}
}
