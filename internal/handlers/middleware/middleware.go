package middleware

import (
	"freshfold/config"
	"freshfold/internal/database"
	"freshfold/internal/events"
	"freshfold/internal/repositories"
	"freshfold/internal/services"

	logger "github.com/Bparsons0904/goLogger"
)

type Middleware struct {
	DB           database.DB
	userRepo     repositories.UserRepository
	tokenService *services.TokenService
	Config       config.Config
	log          logger.Logger
	eventBus     *events.EventBus
}

func New(
	db database.DB,
	eventBus *events.EventBus,
	config config.Config,
	repos repositories.Repository,
	services services.Service,
) Middleware {
	log := logger.New("middleware")

	return Middleware{
		DB:           db,
		userRepo:     repos.User,
		tokenService: services.Token,
		Config:       config,
		log:          log,
		eventBus:     eventBus,
	}
}
