package services

import (
	"context"
	"errors"
	"freshfold/config"
	"freshfold/internal/database"
	"freshfold/internal/models"
	"time"

	logger "github.com/Bparsons0904/goLogger"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

const REVOKED_TOKEN_PREFIX = "revoked:"

var (
	ErrInvalidToken = errors.New("invalid token")
	ErrTokenRevoked = errors.New("token revoked")
)

// TokenService issues and validates the signed session tokens carried on the
// Authorization header, and owns password hashing.
type TokenService struct {
	secret       []byte
	expiry       time.Duration
	sessionCache database.CacheClient
	log          logger.Logger
}

type TokenClaims struct {
	Role models.Role `json:"role"`
	jwt.RegisteredClaims
}

func NewTokenService(config config.Config, db database.DB) *TokenService {
	return &TokenService{
		secret:       []byte(config.JWTSecret),
		expiry:       time.Duration(config.JWTExpiryHours) * time.Hour,
		sessionCache: db.Cache.Session,
		log:          logger.New("TokenService"),
	}
}

func (ts *TokenService) HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", ts.log.Function("HashPassword").Err("failed to hash password", err)
	}
	return string(bytes), nil
}

func (ts *TokenService) CheckPassword(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

// GenerateToken signs a session token for the user. The token id (jti) allows
// revocation on logout without a server-side session row.
func (ts *TokenService) GenerateToken(user *models.User) (string, error) {
	log := ts.log.Function("GenerateToken")

	now := time.Now()
	claims := TokenClaims{
		Role: user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.New().String(),
			Subject:   user.ID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ts.expiry)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(ts.secret)
	if err != nil {
		return "", log.Err("failed to sign token", err, "userID", user.ID)
	}

	return signed, nil
}

// ValidateToken parses and verifies a session token and rejects revoked ones.
func (ts *TokenService) ValidateToken(ctx context.Context, tokenString string) (*TokenClaims, error) {
	log := ts.log.Function("ValidateToken")

	token, err := jwt.ParseWithClaims(
		tokenString,
		&TokenClaims{},
		func(token *jwt.Token) (any, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, ErrInvalidToken
			}
			return ts.secret, nil
		},
	)
	if err != nil {
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*TokenClaims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}

	revoked, err := ts.isRevoked(ctx, claims.ID)
	if err != nil {
		log.Warn("failed to check token revocation", "jti", claims.ID, "error", err)
	}
	if revoked {
		return nil, ErrTokenRevoked
	}

	return claims, nil
}

// RevokeToken marks a token id revoked until its natural expiry.
func (ts *TokenService) RevokeToken(ctx context.Context, claims *TokenClaims) error {
	log := ts.log.Function("RevokeToken")

	ttl := ts.expiry
	if claims.ExpiresAt != nil {
		ttl = time.Until(claims.ExpiresAt.Time)
	}
	if ttl <= 0 {
		return nil
	}

	if err := database.NewCacheBuilder(ts.sessionCache, REVOKED_TOKEN_PREFIX+claims.ID).
		WithStruct(true).
		WithTTL(ttl).
		WithContext(ctx).
		Set(); err != nil {
		return log.Err("failed to revoke token", err, "jti", claims.ID)
	}

	return nil
}

func (ts *TokenService) isRevoked(ctx context.Context, jti string) (bool, error) {
	if ts.sessionCache == nil {
		return false, nil
	}

	var marker bool
	found, err := database.NewCacheBuilder(ts.sessionCache, REVOKED_TOKEN_PREFIX+jti).
		WithContext(ctx).
		Get(&marker)
	if err != nil {
		return false, err
	}
	return found, nil
}
