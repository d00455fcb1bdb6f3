package app

import (
	"context"
	"freshfold/config"
	"freshfold/internal/controllers"
	"freshfold/internal/database"
	"freshfold/internal/events"
	"freshfold/internal/handlers/middleware"
	"freshfold/internal/jobs"
	"freshfold/internal/repositories"
	"freshfold/internal/services"
	"freshfold/internal/websockets"

	logger "github.com/Bparsons0904/goLogger"
)

type App struct {
	Database     database.DB
	Middleware   middleware.Middleware
	Websocket    *websockets.Manager
	EventBus     *events.EventBus
	Config       config.Config
	Services     services.Service
	Repositories repositories.Repository
	Controllers  controllers.Controllers
}

func New() (*App, error) {
	log := logger.New("app").Function("New")

	config, err := config.New()
	if err != nil {
		return &App{}, log.Err("failed to initialize config", err)
	}

	db, err := database.New(config)
	if err != nil {
		return &App{}, log.Err("failed to create database", err)
	}

	eventBus := events.New(db.Cache.Events, config)

	appServices, err := services.New(db, config)
	if err != nil {
		return &App{}, log.Err("failed to create services", err)
	}

	repos := repositories.New(db)

	websocket, err := websockets.New(db, eventBus, appServices.Token, config)
	if err != nil {
		return &App{}, log.Err("failed to create websocket manager", err)
	}

	appMiddleware := middleware.New(db, eventBus, config, repos, appServices)
	appControllers := controllers.New(appServices, repos, eventBus, config, db)

	// Register jobs with scheduler if enabled
	if config.SchedulerEnabled {
		statusAuditJob := jobs.NewStatusAuditJob(db, services.Daily)
		if err := appServices.Scheduler.AddJob(statusAuditJob); err != nil {
			return &App{}, log.Err("failed to register status audit job", err)
		}
		if err := appServices.Scheduler.Start(context.Background()); err != nil {
			return &App{}, log.Err("failed to start scheduler", err)
		}
		log.Info("Registered status audit job with scheduler")
	}

	app := &App{
		Database:     db,
		Config:       config,
		Middleware:   appMiddleware,
		Services:     appServices,
		Repositories: repos,
		Controllers:  appControllers,
		Websocket:    websocket,
		EventBus:     eventBus,
	}

	if err := app.validate(); err != nil {
		return &App{}, log.Err("failed to validate app", err)
	}

	return app, nil
}

func (a *App) validate() error {
	log := logger.New("app").Function("validate")
	if a.Database.SQL == nil {
		return log.ErrMsg("database is nil")
	}

	if a.Config == (config.Config{}) {
		return log.ErrMsg("config is nil")
	}

	nilChecks := []any{
		a.Websocket,
		a.EventBus,
		a.Services.Transaction,
		a.Services.Token,
		a.Services.Scheduler,
		a.Controllers.Auth,
		a.Controllers.Request,
		a.Controllers.Order,
		a.Controllers.Message,
		a.Controllers.User,
		a.Controllers.Admin,
		a.Repositories.User,
		a.Repositories.Request,
		a.Repositories.Message,
	}

	for _, check := range nilChecks {
		if check == nil {
			return log.ErrMsg("nil check failed")
		}
	}

	return nil
}

func (a *App) Close() (err error) {
	if a.EventBus != nil {
		if closeErr := a.EventBus.Close(); closeErr != nil {
			err = closeErr
		}
	}

	if a.Services.Scheduler != nil {
		if closeErr := a.Services.Scheduler.Stop(context.Background()); closeErr != nil {
			err = closeErr
		}
	}

	if dbErr := a.Database.Close(); dbErr != nil {
		err = dbErr
	}

	return err
}
