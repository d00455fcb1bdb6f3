package messageController

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

	logger "github.com/Bparsons0904/goLogger"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	MaxContentLength = 4000
)

var (
	ErrValidation = errors.New("validation error")
	ErrNotFound   = errors.New("not found")
	ErrForbidden  = errors.New("forbidden")
)

type MessageController struct {
	messageRepo repositories.MessageRepository
	requestRepo repositories.RequestRepository
	eventBus    *events.EventBus
	db          database.DB
	Config      config.Config
	log         logger.Logger
}

type SendMessageRequest struct {
	Content    string     `json:"content"`
	ReceiverID *uuid.UUID `json:"receiverId,omitempty"`
}

type AdminSendMessageRequest struct {
	Content    string    `json:"content"`
	ReceiverID uuid.UUID `json:"receiver_id"`
	RequestID  uuid.UUID `json:"request_id"`
}

type MessageControllerInterface interface {
	Send(ctx context.Context, sender *User, requestID uuid.UUID, request *SendMessageRequest) (*Message, error)
	AdminSend(ctx context.Context, sender *User, request *AdminSendMessageRequest) (*Message, error)
	List(ctx context.Context, user *User, requestID uuid.UUID) ([]Message, error)
	Inbox(ctx context.Context) ([]Message, error)
}

func New(
	repos repositories.Repository,
	services services.Service,
	eventBus *events.EventBus,
	config config.Config,
	db database.DB,
) MessageControllerInterface {
	return &MessageController{
		messageRepo: repos.Message,
		requestRepo: repos.Request,
		eventBus:    eventBus,
		db:          db,
		Config:      config,
		log:         logger.New("messageController"),
	}
}

// Send appends a message to a request's conversation. Whitespace-only content
// is rejected before any row or event is produced.
func (c *MessageController) Send(
	ctx context.Context,
	sender *User,
	requestID uuid.UUID,
	request *SendMessageRequest,
) (*Message, error) {
	log := c.log.Function("Send")

	content, cleaned := utils.CleanUTF8(strings.TrimSpace(request.Content))
	if cleaned {
		log.Warn("message content contained invalid UTF8", "requestID", requestID)
	}
	if content == "" {
		return nil, log.ErrorWithType(ErrValidation, "message content is required")
	}
	if len(content) > MaxContentLength {
		return nil, log.ErrorWithType(ErrValidation, "message content too long")
	}

	if err := c.checkConversationAccess(ctx, sender, requestID); err != nil {
		return nil, err
	}

	message := &Message{
		RequestID:  requestID,
		SenderID:   sender.ID,
		ReceiverID: request.ReceiverID,
		Content:    content,
	}

	if _, err := c.messageRepo.Create(ctx, message); err != nil {
		return nil, err
	}

	if err := c.eventBus.PublishMessageCreated(requestID, sender.ID, map[string]any{
		"messageId": message.ID.String(),
		"senderId":  sender.ID.String(),
		"content":   content,
	}); err != nil {
		log.Warn("failed to publish message created event", "messageID", message.ID, "error", err)
	}

	log.Info("Message sent", "messageID", message.ID, "requestID", requestID, "senderID", sender.ID)

	return message, nil
}

// AdminSend is the staff reply path; unlike Send it requires an explicit
// receiver and request, matching the admin messaging form.
func (c *MessageController) AdminSend(
	ctx context.Context,
	sender *User,
	request *AdminSendMessageRequest,
) (*Message, error) {
	log := c.log.Function("AdminSend")

	if strings.TrimSpace(request.Content) == "" {
		return nil, log.ErrorWithType(ErrValidation, "content is required")
	}
	if request.ReceiverID == uuid.Nil {
		return nil, log.ErrorWithType(ErrValidation, "receiver_id is required")
	}
	if request.RequestID == uuid.Nil {
		return nil, log.ErrorWithType(ErrValidation, "request_id is required")
	}

	return c.Send(ctx, sender, request.RequestID, &SendMessageRequest{
		Content:    request.Content,
		ReceiverID: &request.ReceiverID,
	})
}

func (c *MessageController) List(
	ctx context.Context,
	user *User,
	requestID uuid.UUID,
) ([]Message, error) {
	if err := c.checkConversationAccess(ctx, user, requestID); err != nil {
		return nil, err
	}

	return c.messageRepo.ListByRequest(ctx, requestID)
}

func (c *MessageController) Inbox(ctx context.Context) ([]Message, error) {
	return c.messageRepo.LatestPerRequest(ctx)
}

// checkConversationAccess allows the request owner and staff; other customers
// see not-found rather than forbidden so request ids are not probeable.
func (c *MessageController) checkConversationAccess(
	ctx context.Context,
	user *User,
	requestID uuid.UUID,
) error {
	log := c.log.Function("checkConversationAccess")

	request, err := c.requestRepo.GetByID(ctx, requestID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return log.ErrorWithType(ErrNotFound, "request not found", "requestID", requestID)
		}
		return err
	}

	if request.UserID != user.ID && !user.Role.IsStaff() {
		return log.ErrorWithType(ErrNotFound, "request not owned by user", "requestID", requestID)
	}

	return nil
}
