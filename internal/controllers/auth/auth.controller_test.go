package authController

import (
	"context"
	"freshfold/internal/models"
	"testing"

	logger "github.com/Bparsons0904/goLogger"

	"github.com/stretchr/testify/assert"
)

func newTestController() *AuthController {
	return &AuthController{
		log: logger.New("authControllerTest"),
	}
}

func TestRegisterValidation(t *testing.T) {
	c := newTestController()

	tests := []struct {
		name    string
		request RegisterRequest
	}{
		{
			name:    "missing email",
			request: RegisterRequest{Password: "long-enough-pw", FullName: "Sam Doe"},
		},
		{
			name:    "email without at sign",
			request: RegisterRequest{Email: "sam.example.com", Password: "long-enough-pw", FullName: "Sam Doe"},
		},
		{
			name:    "short password",
			request: RegisterRequest{Email: "sam@example.com", Password: "short", FullName: "Sam Doe"},
		},
		{
			name:    "blank full name",
			request: RegisterRequest{Email: "sam@example.com", Password: "long-enough-pw", FullName: "   "},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := c.Register(context.Background(), &tt.request, models.RoleCustomer)
			assert.ErrorIs(t, err, ErrValidation)
		})
	}
}

func TestLoginRequiresCredentials(t *testing.T) {
	c := newTestController()

	_, err := c.Login(context.Background(), &LoginRequest{Email: "sam@example.com"})
	assert.ErrorIs(t, err, ErrValidation)

	_, err = c.Login(context.Background(), &LoginRequest{Password: "long-enough-pw"})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestMinPasswordLength(t *testing.T) {
	assert.Equal(t, 8, MinPasswordLength)
}
