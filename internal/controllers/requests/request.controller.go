package requestController

import (
	"context"
	"errors"
	"freshfold/config"
	"freshfold/internal/database"
	"freshfold/internal/events"
	. "freshfold/internal/models"
	"freshfold/internal/repositories"
	"freshfold/internal/services"
	"freshfold/internal/utils"
	"strings"
	"time"

	logger "github.com/Bparsons0904/goLogger"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	MaxNotesLength = 1000
	PickupDateForm = "2006-01-02"
)

var (
	ErrValidation = errors.New("validation error")
	ErrNotFound   = errors.New("not found")
)

type RequestController struct {
	requestRepo        repositories.RequestRepository
	addressRepo        repositories.AddressRepository
	categoryRepo       repositories.ItemCategoryRepository
	transactionService *services.TransactionService
	eventBus           *events.EventBus
	db                 database.DB
	Config             config.Config
	log                logger.Logger
}

type AddressInput struct {
	StreetAddress string `json:"streetAddress"`
	City          string `json:"city,omitempty"`
	State         string `json:"state,omitempty"`
	PostalCode    string `json:"postalCode,omitempty"`
}

type ItemInput struct {
	Type         string          `json:"type"`
	Quantity     int             `json:"quantity"`
	CostPerUnit  decimal.Decimal `json:"costPerUnit"`
	Instructions string          `json:"instructions,omitempty"`
}

type CreateRequestRequest struct {
	Address         AddressInput `json:"address"`
	ScheduledPickup string       `json:"scheduledPickup"`
	Notes           string       `json:"notes,omitempty"`
	Items           []ItemInput  `json:"items"`
}

type RequestControllerInterface interface {
	Create(ctx context.Context, user *User, request *CreateRequestRequest) (*CleaningRequest, error)
	List(ctx context.Context, user *User) ([]CleaningRequest, error)
	Get(ctx context.Context, user *User, id uuid.UUID) (*CleaningRequest, error)
	GetCategories(ctx context.Context) ([]ItemCategory, error)
}

func New(
	repos repositories.Repository,
	services services.Service,
	eventBus *events.EventBus,
	config config.Config,
	db database.DB,
) RequestControllerInterface {
	return &RequestController{
		requestRepo:        repos.Request,
		addressRepo:        repos.Address,
		categoryRepo:       repos.ItemCategory,
		transactionService: services.Transaction,
		eventBus:           eventBus,
		db:                 db,
		Config:             config,
		log:                logger.New("requestController"),
	}
}

// Create validates and persists a new cleaning request. The address row, the
// request row, and the item batch commit together; totals are computed here
// from the items, never taken from the client.
func (c *RequestController) Create(
	ctx context.Context,
	user *User,
	request *CreateRequestRequest,
) (*CleaningRequest, error) {
	log := c.log.Function("Create")

	if strings.TrimSpace(request.Address.StreetAddress) == "" {
		return nil, log.ErrorWithType(ErrValidation, "address is required")
	}

	pickup, err := parsePickupDate(request.ScheduledPickup)
	if err != nil {
		return nil, log.ErrorWithType(ErrValidation, "invalid scheduledPickup", "error", err)
	}

	if len(request.Items) == 0 {
		return nil, log.ErrorWithType(ErrValidation, "at least one item is required")
	}
	notes, _ := utils.CleanUTF8(request.Notes)
	if len(notes) > MaxNotesLength {
		return nil, log.ErrorWithType(ErrValidation, "notes exceed maximum length")
	}

	items, totalCost, totalItems, err := c.buildItems(ctx, request.Items)
	if err != nil {
		return nil, err
	}

	var created *CleaningRequest
	err = c.transactionService.Execute(ctx, func(txCtx context.Context, _ *gorm.DB) error {
		address := &Address{
			UserID:        user.ID,
			StreetAddress: strings.TrimSpace(request.Address.StreetAddress),
			City:          strings.TrimSpace(request.Address.City),
			State:         strings.TrimSpace(request.Address.State),
			PostalCode:    strings.TrimSpace(request.Address.PostalCode),
		}
		if _, err := c.addressRepo.Create(txCtx, address); err != nil {
			return err
		}

		cleaningRequest := &CleaningRequest{
			UserID:          user.ID,
			AddressID:       address.ID,
			Status:          StatusPending,
			TotalCost:       totalCost,
			TotalItems:      totalItems,
			ScheduledPickup: datatypes.Date(pickup),
			Notes:           notes,
			ClothingItems:   items,
		}
		if _, err := c.requestRepo.Create(txCtx, cleaningRequest); err != nil {
			return err
		}

		created = cleaningRequest
		return nil
	})
	if err != nil {
		return nil, err
	}

	if err := c.eventBus.PublishOrderEvent(
		events.ORDER_CREATED,
		created.ID,
		user.ID,
		map[string]any{"status": string(created.Status)},
	); err != nil {
		log.Warn("failed to publish order created event", "requestID", created.ID, "error", err)
	}

	log.Info(
		"Cleaning request created",
		"requestID", created.ID,
		"userID", user.ID,
		"totalItems", totalItems,
	)

	return created, nil
}

// buildItems validates item inputs and computes totals. A missing unit cost
// falls back to the category base price when the item type matches a seeded
// category.
func (c *RequestController) buildItems(
	ctx context.Context,
	inputs []ItemInput,
) ([]ClothingItem, decimal.Decimal, int, error) {
	log := c.log.Function("buildItems")

	names := make([]string, 0, len(inputs))
	for _, input := range inputs {
		names = append(names, strings.TrimSpace(input.Type))
	}
	categories, err := c.categoryRepo.GetByNames(ctx, names)
	if err != nil {
		log.Warn("failed to load item categories for pricing", "error", err)
		categories = map[string]ItemCategory{}
	}

	items := make([]ClothingItem, 0, len(inputs))
	totalCost := decimal.Zero
	totalItems := 0

	for _, input := range inputs {
		itemType := strings.TrimSpace(input.Type)
		if itemType == "" {
			return nil, decimal.Zero, 0, log.ErrorWithType(ErrValidation, "item type is required")
		}
		if input.Quantity < 1 {
			return nil, decimal.Zero, 0, log.ErrorWithType(
				ErrValidation,
				"item quantity must be at least 1",
				"type", itemType,
			)
		}
		if input.CostPerUnit.IsNegative() {
			return nil, decimal.Zero, 0, log.ErrorWithType(
				ErrValidation,
				"item cost cannot be negative",
				"type", itemType,
			)
		}

		unitCost := input.CostPerUnit
		if unitCost.IsZero() {
			if category, ok := categories[itemType]; ok {
				unitCost = category.BasePrice
			}
		}

		items = append(items, ClothingItem{
			ItemType:            itemType,
			Quantity:            input.Quantity,
			EstimatedCost:       unitCost,
			SpecialInstructions: input.Instructions,
		})

		totalCost = totalCost.Add(unitCost.Mul(decimal.NewFromInt(int64(input.Quantity))))
		totalItems += input.Quantity
	}

	return items, totalCost, totalItems, nil
}

func (c *RequestController) List(ctx context.Context, user *User) ([]CleaningRequest, error) {
	return c.requestRepo.ListByUser(ctx, user.ID)
}

// Get hides other customers' requests behind not-found so the response does
// not reveal which ids exist. Staff may fetch any request.
func (c *RequestController) Get(
	ctx context.Context,
	user *User,
	id uuid.UUID,
) (*CleaningRequest, error) {
	log := c.log.Function("Get")

	request, err := c.requestRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, log.ErrorWithType(ErrNotFound, "request not found", "id", id)
		}
		return nil, err
	}

	if request.UserID != user.ID && !user.Role.IsStaff() {
		return nil, log.ErrorWithType(ErrNotFound, "request not owned by user", "id", id)
	}

	return request, nil
}

func (c *RequestController) GetCategories(ctx context.Context) ([]ItemCategory, error) {
	return c.categoryRepo.GetAll(ctx)
}

func parsePickupDate(dateStr string) (time.Time, error) {
	if dateStr == "" {
		return time.Time{}, errors.New("pickup date is required")
	}

	t, err := time.Parse(PickupDateForm, dateStr)
	if err != nil {
		return time.Time{}, errors.New("invalid pickup date format, expected YYYY-MM-DD")
	}

	return t, nil
}
