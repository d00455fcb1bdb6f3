package orderController

import (
	"context"
	"errors"
	"freshfold/config"
	"freshfold/internal/database"
	"freshfold/internal/events"
	. "freshfold/internal/models"
	"freshfold/internal/repositories"
	"freshfold/internal/services"
	"strings"

	logger "github.com/Bparsons0904/goLogger"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	MaxNotesLength = 1000
)

var (
	ErrValidation = errors.New("validation error")
	ErrNotFound   = errors.New("not found")
	ErrConflict   = errors.New("transition not allowed")
)

type OrderController struct {
	requestRepo        repositories.RequestRepository
	transactionService *services.TransactionService
	eventBus           *events.EventBus
	db                 database.DB
	Config             config.Config
	log                logger.Logger
}

type UpdateStatusRequest struct {
	Status string `json:"status"`
	Notes  string `json:"notes,omitempty"`
}

type OrderControllerInterface interface {
	ListAll(ctx context.Context, statusFilter string) ([]CleaningRequest, error)
	Get(ctx context.Context, id uuid.UUID) (*CleaningRequest, error)
	UpdateStatus(ctx context.Context, actor *User, id uuid.UUID, request *UpdateStatusRequest) error
}

func New(
	repos repositories.Repository,
	services services.Service,
	eventBus *events.EventBus,
	config config.Config,
	db database.DB,
) OrderControllerInterface {
	return &OrderController{
		requestRepo:        repos.Request,
		transactionService: services.Transaction,
		eventBus:           eventBus,
		db:                 db,
		Config:             config,
		log:                logger.New("orderController"),
	}
}

func (c *OrderController) ListAll(
	ctx context.Context,
	statusFilter string,
) ([]CleaningRequest, error) {
	log := c.log.Function("ListAll")

	status := RequestStatus(statusFilter)
	if statusFilter != "" && !status.IsValid() {
		return nil, log.ErrorWithType(ErrValidation, "unknown status filter", "status", statusFilter)
	}

	return c.requestRepo.ListAll(ctx, status)
}

func (c *OrderController) Get(ctx context.Context, id uuid.UUID) (*CleaningRequest, error) {
	log := c.log.Function("Get")

	request, err := c.requestRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, log.ErrorWithType(ErrNotFound, "order not found", "id", id)
		}
		return nil, err
	}

	return request, nil
}

// UpdateStatus moves an order to a new status and appends the matching history
// row in one transaction, so the denormalized column and the trail cannot
// drift. With STRICT_STATUS_FLOW on, the transition table is enforced and a
// rejected move surfaces as a conflict.
func (c *OrderController) UpdateStatus(
	ctx context.Context,
	actor *User,
	id uuid.UUID,
	request *UpdateStatusRequest,
) error {
	log := c.log.Function("UpdateStatus")

	status := RequestStatus(strings.TrimSpace(request.Status))
	if !status.IsValid() {
		return log.ErrorWithType(ErrValidation, "unknown status", "status", request.Status)
	}
	if len(request.Notes) > MaxNotesLength {
		return log.ErrorWithType(ErrValidation, "notes exceed maximum length")
	}

	order, err := c.requestRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return log.ErrorWithType(ErrNotFound, "order not found", "id", id)
		}
		return err
	}

	if c.Config.StrictStatusFlow && !order.Status.CanTransition(status) {
		return log.ErrorWithType(
			ErrConflict,
			"status transition rejected",
			"from", order.Status,
			"to", status,
		)
	}

	err = c.transactionService.Execute(ctx, func(txCtx context.Context, _ *gorm.DB) error {
		if err := c.requestRepo.UpdateStatus(txCtx, id, status); err != nil {
			return err
		}

		return c.requestRepo.AppendHistory(txCtx, &StatusHistory{
			RequestID: id,
			Status:    status,
			Notes:     request.Notes,
		})
	})
	if err != nil {
		return err
	}

	eventData := map[string]any{
		"status":   string(status),
		"previous": string(order.Status),
		"notes":    request.Notes,
	}
	if err := c.eventBus.PublishOrderEvent(events.ORDER_UPDATED, id, order.UserID, eventData); err != nil {
		log.Warn("failed to publish order updated event", "requestID", id, "error", err)
	}
	if err := c.eventBus.PublishOrderEvent(events.HISTORY_CREATED, id, order.UserID, eventData); err != nil {
		log.Warn("failed to publish history created event", "requestID", id, "error", err)
	}

	log.Info(
		"Order status updated",
		"requestID", id,
		"from", order.Status,
		"to", status,
		"actorID", actor.ID,
	)

	return nil
}
