package controllers

import (
	"freshfold/config"
	"freshfold/internal/database"
	"freshfold/internal/events"
	"freshfold/internal/repositories"
	"freshfold/internal/services"

	adminController "freshfold/internal/controllers/admin"
	authController "freshfold/internal/controllers/auth"
	messageController "freshfold/internal/controllers/messages"
	orderController "freshfold/internal/controllers/orders"
	requestController "freshfold/internal/controllers/requests"
	userController "freshfold/internal/controllers/users"
)

type Controllers struct {
	Auth    authController.AuthControllerInterface
	Request requestController.RequestControllerInterface
	Order   orderController.OrderControllerInterface
	Message messageController.MessageControllerInterface
	User    userController.UserControllerInterface
	Admin   adminController.AdminControllerInterface
}

func New(
	services services.Service,
	repos repositories.Repository,
	eventBus *events.EventBus,
	config config.Config,
	db database.DB,
) Controllers {
	return Controllers{
		Auth:    authController.New(services, repos, config, db),
		Request: requestController.New(repos, services, eventBus, config, db),
		Order:   orderController.New(repos, services, eventBus, config, db),
		Message: messageController.New(repos, services, eventBus, config, db),
		User:    userController.New(repos, config, db),
		Admin:   adminController.New(repos, config, db),
	}
}
