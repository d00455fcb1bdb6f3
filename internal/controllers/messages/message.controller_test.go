package messageController

import (
	"context"
	"freshfold/internal/models"
	"testing"

	logger "github.com/Bparsons0904/goLogger"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func newTestController() *MessageController {
	return &MessageController{
		log: logger.New("messageControllerTest"),
	}
}

func TestSendRejectsWhitespaceContent(t *testing.T) {
	c := newTestController()
	sender := &models.User{Role: models.RoleCustomer}

	tests := []struct {
		name    string
		content string
	}{
		{name: "empty", content: ""},
		{name: "spaces", content: "   "},
		{name: "tabs and newlines", content: "\t\n  \n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Rejection happens before any repository call, so no row and no
			// event can be produced
			_, err := c.Send(context.Background(), sender, uuid.New(), &SendMessageRequest{
				Content: tt.content,
			})
			assert.ErrorIs(t, err, ErrValidation)
		})
	}
}

func TestAdminSendRequiresAllFields(t *testing.T) {
	c := newTestController()
	sender := &models.User{Role: models.RoleAdmin}

	tests := []struct {
		name    string
		request AdminSendMessageRequest
	}{
		{
			name: "missing content",
			request: AdminSendMessageRequest{
				ReceiverID: uuid.New(),
				RequestID:  uuid.New(),
			},
		},
		{
			name: "missing receiver",
			request: AdminSendMessageRequest{
				Content:   "your order is ready",
				RequestID: uuid.New(),
			},
		},
		{
			name: "missing request",
			request: AdminSendMessageRequest{
				Content:    "your order is ready",
				ReceiverID: uuid.New(),
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := c.AdminSend(context.Background(), sender, &tt.request)
			assert.ErrorIs(t, err, ErrValidation)
		})
	}
}
