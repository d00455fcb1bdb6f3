package userController

import (
	"context"
	"errors"
	"freshfold/config"
	"freshfold/internal/database"
	. "freshfold/internal/models"
	"freshfold/internal/repositories"

	logger "github.com/Bparsons0904/goLogger"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrNotFound = errors.New("not found")
)

type UserController struct {
	userRepo repositories.UserRepository
	db       database.DB
	Config   config.Config
	log      logger.Logger
}

type UserControllerInterface interface {
	List(ctx context.Context) ([]UserProfile, error)
	CycleRole(ctx context.Context, id uuid.UUID) (*UserProfile, error)
}

func New(
	repos repositories.Repository,
	config config.Config,
	db database.DB,
) UserControllerInterface {
	return &UserController{
		userRepo: repos.User,
		db:       db,
		Config:   config,
		log:      logger.New("userController"),
	}
}

func (c *UserController) List(ctx context.Context) ([]UserProfile, error) {
	users, err := c.userRepo.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	profiles := make([]UserProfile, 0, len(users))
	for i := range users {
		profiles = append(profiles, users[i].ToProfile())
	}

	return profiles, nil
}

// CycleRole advances a user's role customer -> staff -> admin -> customer,
// matching the admin users-table toggle.
func (c *UserController) CycleRole(ctx context.Context, id uuid.UUID) (*UserProfile, error) {
	log := c.log.Function("CycleRole")

	user, err := c.userRepo.GetByID(ctx, id.String())
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, log.ErrorWithType(ErrNotFound, "user not found", "id", id)
		}
		return nil, err
	}

	previous := user.Role
	user.Role = user.Role.Next()

	if err := c.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}

	log.Info("User role cycled", "userID", user.ID, "from", previous, "to", user.Role)

	profile := user.ToProfile()
	return &profile, nil
}
