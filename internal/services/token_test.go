package services

import (
	"context"
	"freshfold/internal/models"
	"testing"
	"time"

	logger "github.com/Bparsons0904/goLogger"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestTokenService() *TokenService {
	return &TokenService{
		secret: []byte("test-secret"),
		expiry: time.Hour,
		log:    logger.New("TokenService"),
	}
}

func TestTokenService_PasswordRoundTrip(t *testing.T) {
	ts := newTestTokenService()

	hash, err := ts.HashPassword("hunter22")
	require.NoError(t, err)
	assert.NotEqual(t, "hunter22", hash)

	assert.True(t, ts.CheckPassword("hunter22", hash))
	assert.False(t, ts.CheckPassword("wrong", hash))
}

func TestTokenService_GenerateAndValidate(t *testing.T) {
	ts := newTestTokenService()

	user := &models.User{Role: models.RoleStaff}
	user.ID = uuid.New()

	token, err := ts.GenerateToken(user)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := ts.ValidateToken(context.Background(), token)
	require.NoError(t, err)
	assert.Equal(t, user.ID.String(), claims.Subject)
	assert.Equal(t, models.RoleStaff, claims.Role)
	assert.NotEmpty(t, claims.ID)
}

func TestTokenService_RejectsTamperedToken(t *testing.T) {
	ts := newTestTokenService()

	user := &models.User{Role: models.RoleCustomer}
	user.ID = uuid.New()

	token, err := ts.GenerateToken(user)
	require.NoError(t, err)

	_, err = ts.ValidateToken(context.Background(), token+"x")
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = ts.ValidateToken(context.Background(), "not-a-token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenService_RejectsWrongSecret(t *testing.T) {
	ts := newTestTokenService()

	user := &models.User{Role: models.RoleCustomer}
	user.ID = uuid.New()

	token, err := ts.GenerateToken(user)
	require.NoError(t, err)

	other := &TokenService{
		secret: []byte("different-secret"),
		expiry: time.Hour,
		log:    logger.New("TokenService"),
	}

	_, err = other.ValidateToken(context.Background(), token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenService_RejectsExpiredToken(t *testing.T) {
	ts := &TokenService{
		secret: []byte("test-secret"),
		expiry: -time.Minute,
		log:    logger.New("TokenService"),
	}

	user := &models.User{Role: models.RoleCustomer}
	user.ID = uuid.New()

	token, err := ts.GenerateToken(user)
	require.NoError(t, err)

	_, err = ts.ValidateToken(context.Background(), token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}
