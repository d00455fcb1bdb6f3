package repositories

import (
	"context"
	"errors"
	"freshfold/internal/database"
	. "freshfold/internal/models"

	contextutil "freshfold/internal/context"

	logger "github.com/Bparsons0904/goLogger"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type RequestRepository interface {
	Create(ctx context.Context, request *CleaningRequest) (*CleaningRequest, error)
	GetByID(ctx context.Context, id uuid.UUID) (*CleaningRequest, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]CleaningRequest, error)
	ListAll(ctx context.Context, status RequestStatus) ([]CleaningRequest, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status RequestStatus) error
	AppendHistory(ctx context.Context, entry *StatusHistory) error
	CountAll(ctx context.Context) (int64, error)
	CountByStatus(ctx context.Context, status RequestStatus) (int64, error)
}

type requestRepository struct {
	db  database.DB
	log logger.Logger
}

func NewRequestRepository(db database.DB) RequestRepository {
	return &requestRepository{
		db:  db,
		log: logger.New("requestRepository"),
	}
}

func (r *requestRepository) getDB(ctx context.Context) *gorm.DB {
	if tx, ok := contextutil.GetTransaction(ctx); ok {
		return tx
	}
	return r.db.SQLWithContext(ctx)
}

// Create persists the request row together with its clothing items via the
// has-many association. No history row is written at submission; the trail
// starts with the first status change.
func (r *requestRepository) Create(
	ctx context.Context,
	request *CleaningRequest,
) (*CleaningRequest, error) {
	log := r.log.Function("Create")

	if err := r.getDB(ctx).Create(request).Error; err != nil {
		return nil, log.Err("failed to create cleaning request", err, "userID", request.UserID)
	}

	return request, nil
}

func (r *requestRepository) GetByID(ctx context.Context, id uuid.UUID) (*CleaningRequest, error) {
	log := r.log.Function("GetByID")

	var request CleaningRequest
	err := r.getDB(ctx).
		Preload("User").
		Preload("Address").
		Preload("ClothingItems").
		Preload("StatusHistory", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at ASC")
		}).
		First(&request, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		return nil, log.Err("failed to get request by ID", err, "id", id)
	}

	return &request, nil
}

func (r *requestRepository) ListByUser(
	ctx context.Context,
	userID uuid.UUID,
) ([]CleaningRequest, error) {
	log := r.log.Function("ListByUser")

	var requests []CleaningRequest
	err := r.getDB(ctx).
		Preload("ClothingItems").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&requests).Error
	if err != nil {
		return nil, log.Err("failed to list requests for user", err, "userID", userID)
	}

	return requests, nil
}

// ListAll returns every request, optionally narrowed to one status. The
// filter lives in the query so the admin list never loads rows it discards.
func (r *requestRepository) ListAll(
	ctx context.Context,
	status RequestStatus,
) ([]CleaningRequest, error) {
	log := r.log.Function("ListAll")

	query := r.getDB(ctx).
		Preload("User").
		Preload("ClothingItems").
		Order("created_at DESC")
	if status != "" {
		query = query.Where("status = ?", status)
	}

	var requests []CleaningRequest
	if err := query.Find(&requests).Error; err != nil {
		return nil, log.Err("failed to list all requests", err, "status", status)
	}

	return requests, nil
}

// UpdateStatus writes only the status column. Callers run it inside a
// transaction alongside AppendHistory so the trail never drifts from the row.
func (r *requestRepository) UpdateStatus(
	ctx context.Context,
	id uuid.UUID,
	status RequestStatus,
) error {
	log := r.log.Function("UpdateStatus")

	result := r.getDB(ctx).
		Model(&CleaningRequest{}).
		Where("id = ?", id).
		Update("status", status)
	if result.Error != nil {
		return log.Err("failed to update request status", result.Error, "id", id, "status", status)
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	return nil
}

func (r *requestRepository) AppendHistory(ctx context.Context, entry *StatusHistory) error {
	log := r.log.Function("AppendHistory")

	if err := r.getDB(ctx).Create(entry).Error; err != nil {
		return log.Err(
			"failed to append status history",
			err,
			"requestID", entry.RequestID,
			"status", entry.Status,
		)
	}

	return nil
}

func (r *requestRepository) CountAll(ctx context.Context) (int64, error) {
	log := r.log.Function("CountAll")

	var count int64
	if err := r.getDB(ctx).Model(&CleaningRequest{}).Count(&count).Error; err != nil {
		return 0, log.Err("failed to count requests", err)
	}

	return count, nil
}

func (r *requestRepository) CountByStatus(
	ctx context.Context,
	status RequestStatus,
) (int64, error) {
	log := r.log.Function("CountByStatus")

	var count int64
	err := r.getDB(ctx).
		Model(&CleaningRequest{}).
		Where("status = ?", status).
		Count(&count).Error
	if err != nil {
		return 0, log.Err("failed to count requests by status", err, "status", status)
	}

	return count, nil
}
