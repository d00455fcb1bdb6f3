package repositories

import (
	"context"
	"freshfold/internal/database"
	. "freshfold/internal/models"

	contextutil "freshfold/internal/context"

	logger "github.com/Bparsons0904/goLogger"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AddressRepository interface {
	Create(ctx context.Context, address *Address) (*Address, error)
	GetByUser(ctx context.Context, userID uuid.UUID) ([]Address, error)
}

type addressRepository struct {
	db  database.DB
	log logger.Logger
}

func NewAddressRepository(db database.DB) AddressRepository {
	return &addressRepository{
		db:  db,
		log: logger.New("addressRepository"),
	}
}

func (r *addressRepository) getDB(ctx context.Context) *gorm.DB {
	if tx, ok := contextutil.GetTransaction(ctx); ok {
		return tx
	}
	return r.db.SQLWithContext(ctx)
}

func (r *addressRepository) Create(ctx context.Context, address *Address) (*Address, error) {
	log := r.log.Function("Create")

	if err := r.getDB(ctx).Create(address).Error; err != nil {
		return nil, log.Err("failed to create address", err, "userID", address.UserID)
	}

	return address, nil
}

func (r *addressRepository) GetByUser(ctx context.Context, userID uuid.UUID) ([]Address, error) {
	log := r.log.Function("GetByUser")

	var addresses []Address
	if err := r.getDB(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&addresses).Error; err != nil {
		return nil, log.Err("failed to list addresses", err, "userID", userID)
	}

	return addresses, nil
}
