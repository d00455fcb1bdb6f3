package services

import (
	"freshfold/config"
	"freshfold/internal/database"
)

type Service struct {
	Transaction *TransactionService
	Token       *TokenService
	Scheduler   *SchedulerService
}

func New(db database.DB, config config.Config) (Service, error) {
	transactionService := NewTransactionService(db)
	tokenService := NewTokenService(config, db)
	schedulerService := NewSchedulerService()

	return Service{
		Transaction: transactionService,
		Token:       tokenService,
		Scheduler:   schedulerService,
	}, nil
}
