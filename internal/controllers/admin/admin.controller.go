package adminController

import (
	"context"
	"freshfold/config"
	"freshfold/internal/database"
	. "freshfold/internal/models"
	"freshfold/internal/repositories"

	logger "github.com/Bparsons0904/goLogger"
)

type AdminController struct {
	requestRepo repositories.RequestRepository
	userRepo    repositories.UserRepository
	db          database.DB
	Config      config.Config
	log         logger.Logger
}

type Stats struct {
	TotalOrders     int64 `json:"totalOrders"`
	TotalCustomers  int64 `json:"totalCustomers"`
	PendingOrders   int64 `json:"pendingOrders"`
	CompletedOrders int64 `json:"completedOrders"`
}

type AdminControllerInterface interface {
	GetStats(ctx context.Context) (*Stats, error)
}

func New(
	repos repositories.Repository,
	config config.Config,
	db database.DB,
) AdminControllerInterface {
	return &AdminController{
		requestRepo: repos.Request,
		userRepo:    repos.User,
		db:          db,
		Config:      config,
		log:         logger.New("adminController"),
	}
}

func (c *AdminController) GetStats(ctx context.Context) (*Stats, error) {
	totalOrders, err := c.requestRepo.CountAll(ctx)
	if err != nil {
		return nil, err
	}

	totalCustomers, err := c.userRepo.CountByRole(ctx, RoleCustomer)
	if err != nil {
		return nil, err
	}

	pendingOrders, err := c.requestRepo.CountByStatus(ctx, StatusPending)
	if err != nil {
		return nil, err
	}

	completedOrders, err := c.requestRepo.CountByStatus(ctx, StatusCompleted)
	if err != nil {
		return nil, err
	}

	return &Stats{
		TotalOrders:     totalOrders,
		TotalCustomers:  totalCustomers,
		PendingOrders:   pendingOrders,
		CompletedOrders: completedOrders,
	}, nil
}
