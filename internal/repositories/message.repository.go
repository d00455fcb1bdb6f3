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

type MessageRepository interface {
	Create(ctx context.Context, message *Message) (*Message, error)
	ListByRequest(ctx context.Context, requestID uuid.UUID) ([]Message, error)
	LatestPerRequest(ctx context.Context) ([]Message, error)
}

type messageRepository struct {
	db  database.DB
	log logger.Logger
}

func NewMessageRepository(db database.DB) MessageRepository {
	return &messageRepository{
		db:  db,
		log: logger.New("messageRepository"),
	}
}

func (r *messageRepository) getDB(ctx context.Context) *gorm.DB {
	if tx, ok := contextutil.GetTransaction(ctx); ok {
		return tx
	}
	return r.db.SQLWithContext(ctx)
}

func (r *messageRepository) Create(ctx context.Context, message *Message) (*Message, error) {
	log := r.log.Function("Create")

	if err := r.getDB(ctx).Create(message).Error; err != nil {
		return nil, log.Err(
			"failed to create message",
			err,
			"requestID", message.RequestID,
			"senderID", message.SenderID,
		)
	}

	if err := r.getDB(ctx).Preload("Sender").First(message, "id = ?", message.ID).Error; err != nil {
		log.Warn("failed to reload message with sender", "messageID", message.ID, "error", err)
	}

	return message, nil
}

func (r *messageRepository) ListByRequest(
	ctx context.Context,
	requestID uuid.UUID,
) ([]Message, error) {
	log := r.log.Function("ListByRequest")

	var messages []Message
	err := r.getDB(ctx).
		Preload("Sender").
		Where("request_id = ?", requestID).
		Order("created_at ASC").
		Find(&messages).Error
	if err != nil {
		return nil, log.Err("failed to list messages for request", err, "requestID", requestID)
	}

	return messages, nil
}

// LatestPerRequest returns the newest message of every conversation in one
// grouped query, newest conversation first. This backs the admin inbox and
// replaces per-request lookups.
func (r *messageRepository) LatestPerRequest(ctx context.Context) ([]Message, error) {
	log := r.log.Function("LatestPerRequest")

	latest := r.getDB(ctx).
		Model(&Message{}).
		Select("DISTINCT ON (request_id) id").
		Order("request_id, created_at DESC")

	var messages []Message
	err := r.getDB(ctx).
		Preload("Sender").
		Where("id IN (?)", latest).
		Order("created_at DESC").
		Find(&messages).Error
	if err != nil {
		return nil, log.Err("failed to load latest message per request", err)
	}

	return messages, nil
}
