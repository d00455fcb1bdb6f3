package repositories

import (
	"context"
	"errors"
	"freshfold/internal/database"
	. "freshfold/internal/models"
	"time"

	contextutil "freshfold/internal/context"

	logger "github.com/Bparsons0904/goLogger"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	USER_CACHE_EXPIRY  = 7 * 24 * time.Hour // 7 days
	USER_CACHE_PREFIX  = "user:"
	EMAIL_CACHE_PREFIX = "email:"
)

type UserRepository interface {
	GetByID(ctx context.Context, id string) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	Create(ctx context.Context, user *User) (*User, error)
	Update(ctx context.Context, user *User) error
	GetAll(ctx context.Context) ([]User, error)
	CountByRole(ctx context.Context, role Role) (int64, error)
}

type userRepository struct {
	db  database.DB
	log logger.Logger
}

func NewUserRepository(db database.DB) UserRepository {
	return &userRepository{
		db:  db,
		log: logger.New("userRepository"),
	}
}

func (r *userRepository) getDB(ctx context.Context) *gorm.DB {
	if tx, ok := contextutil.GetTransaction(ctx); ok {
		return tx
	}
	return r.db.SQLWithContext(ctx)
}

func (r *userRepository) GetByID(ctx context.Context, id string) (*User, error) {
	log := r.log.Function("GetByID")

	var user User
	if err := r.getCacheByID(ctx, id, &user); err == nil {
		return &user, nil
	}

	userID, err := uuid.Parse(id)
	if err != nil {
		return nil, log.Err("failed to parse user ID", err, "id", id)
	}

	if err := r.getDB(ctx).First(&user, "id = ?", userID).Error; err != nil {
		return nil, log.Err("failed to get user by id", err, "id", id)
	}

	if err := r.addUserToCache(ctx, &user); err != nil {
		log.Warn("failed to add user to cache", "userID", id, "error", err)
	}

	return &user, nil
}

// GetByEmail is the login lookup. The email to id mapping is cached so repeat
// logins skip the table scan; the row itself rides the primary user cache.
func (r *userRepository) GetByEmail(ctx context.Context, email string) (*User, error) {
	log := r.log.Function("GetByEmail")

	emailCacheKey := EMAIL_CACHE_PREFIX + email
	var userID string
	found, err := database.NewCacheBuilder(r.db.Cache.User, emailCacheKey).
		WithContext(ctx).
		Get(&userID)
	if err == nil && found {
		var cachedUser User
		if err := r.getCacheByID(ctx, userID, &cachedUser); err == nil {
			return &cachedUser, nil
		}
	}

	var user User
	if err := r.getDB(ctx).First(&user, "email = ?", email).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		return nil, log.Err("failed to get user by email", err, "email", email)
	}

	if err := r.addUserToCache(ctx, &user); err != nil {
		log.Warn("failed to add user to cache", "userID", user.ID, "error", err)
	}

	if err := database.NewCacheBuilder(r.db.Cache.User, emailCacheKey).
		WithStruct(user.ID.String()).
		WithTTL(USER_CACHE_EXPIRY).
		WithContext(ctx).
		Set(); err != nil {
		log.Warn("failed to cache email mapping", "email", email, "error", err)
	}

	return &user, nil
}

func (r *userRepository) Create(ctx context.Context, user *User) (*User, error) {
	log := r.log.Function("Create")

	if err := r.getDB(ctx).Create(user).Error; err != nil {
		return nil, log.Err("failed to create user", err, "email", user.Email)
	}

	if err := r.addUserToCache(ctx, user); err != nil {
		log.Warn("failed to add user to cache", "userID", user.ID, "error", err)
	}

	return user, nil
}

func (r *userRepository) Update(ctx context.Context, user *User) error {
	log := r.log.Function("Update")

	if err := r.getDB(ctx).Save(user).Error; err != nil {
		return log.Err("failed to update user", err, "userID", user.ID)
	}

	// Clear user cache after successful update
	if err := r.clearUserCache(ctx, user); err != nil {
		log.Warn("failed to clear user cache after update", "userID", user.ID, "error", err)
	}

	return nil
}

func (r *userRepository) GetAll(ctx context.Context) ([]User, error) {
	log := r.log.Function("GetAll")

	var users []User
	if err := r.getDB(ctx).Order("created_at DESC").Find(&users).Error; err != nil {
		return nil, log.Err("failed to list users", err)
	}

	return users, nil
}

func (r *userRepository) CountByRole(ctx context.Context, role Role) (int64, error) {
	log := r.log.Function("CountByRole")

	var count int64
	if err := r.getDB(ctx).Model(&User{}).Where("role = ?", role).Count(&count).Error; err != nil {
		return 0, log.Err("failed to count users by role", err, "role", role)
	}

	return count, nil
}

func (r *userRepository) getCacheByID(ctx context.Context, userID string, user *User) error {
	cacheKey := USER_CACHE_PREFIX + userID
	found, err := database.NewCacheBuilder(r.db.Cache.User, cacheKey).WithContext(ctx).Get(user)
	if err != nil {
		return r.log.Function("getCacheByID").
			Err("failed to get user from cache", err, "userID", userID)
	}

	if !found {
		return r.log.Function("getCacheByID").
			Error("user not found in cache", "userID", userID)
	}

	return nil
}

func (r *userRepository) addUserToCache(ctx context.Context, user *User) error {
	cacheKey := USER_CACHE_PREFIX + user.ID.String()
	if err := database.NewCacheBuilder(r.db.Cache.User, cacheKey).
		WithStruct(user).
		WithTTL(USER_CACHE_EXPIRY).
		WithContext(ctx).
		Set(); err != nil {
		return r.log.Function("addUserToCache").
			Err("failed to add user to cache", err, "userID", user.ID)
	}
	return nil
}

func (r *userRepository) clearUserCache(ctx context.Context, user *User) error {
	log := r.log.Function("clearUserCache")

	userCacheKey := USER_CACHE_PREFIX + user.ID.String()
	if err := database.NewCacheBuilder(r.db.Cache.User, userCacheKey).WithContext(ctx).Delete(); err != nil {
		log.Warn("failed to clear user cache", "userID", user.ID, "error", err)
	}

	emailCacheKey := EMAIL_CACHE_PREFIX + user.Email
	if err := database.NewCacheBuilder(r.db.Cache.User, emailCacheKey).WithContext(ctx).Delete(); err != nil {
		log.Warn("failed to clear email mapping cache", "email", user.Email, "error", err)
	}

	return nil
}
