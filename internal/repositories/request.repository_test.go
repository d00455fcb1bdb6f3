package repositories_test

import (
	"context"
	"freshfold/internal/database"
	"freshfold/internal/models"
	"freshfold/internal/repositories"
	"freshfold/internal/services"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func setupMockDB(t *testing.T) (database.DB, sqlmock.Sqlmock) {
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)

	gormDB, err := gorm.Open(postgres.New(postgres.Config{
		Conn: sqlDB,
	}), &gorm.Config{SkipDefaultTransaction: true})
	require.NoError(t, err)

	return database.DB{SQL: gormDB}, mock
}

// A status change and its history row commit together or not at all.
func TestRequestRepository_StatusUpdateWithHistory(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := repositories.NewRequestRepository(db)
	txService := services.NewTransactionService(db)

	requestID := uuid.New()

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "cleaning_requests" SET`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(`INSERT INTO "status_histories"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(uuid.New().String()))
	mock.ExpectCommit()

	err := txService.Execute(context.Background(), func(txCtx context.Context, _ *gorm.DB) error {
		if err := repo.UpdateStatus(txCtx, requestID, models.StatusInProgress); err != nil {
			return err
		}
		return repo.AppendHistory(txCtx, &models.StatusHistory{
			RequestID: requestID,
			Status:    models.StatusInProgress,
			Notes:     "items received at facility",
		})
	})

	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// The admin list's status filter is part of the SQL, not applied in memory.
func TestRequestRepository_ListAllFiltersInQuery(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := repositories.NewRequestRepository(db)

	mock.ExpectQuery(`SELECT (.+) FROM "cleaning_requests" WHERE status = (.+) ORDER BY created_at DESC`).
		WithArgs("pending").
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "status"}))

	requests, err := repo.ListAll(context.Background(), models.StatusPending)

	require.NoError(t, err)
	assert.Empty(t, requests)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRequestRepository_NoHistoryWhenUpdateMisses(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := repositories.NewRequestRepository(db)
	txService := services.NewTransactionService(db)

	requestID := uuid.New()

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "cleaning_requests" SET`).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	err := txService.Execute(context.Background(), func(txCtx context.Context, _ *gorm.DB) error {
		if err := repo.UpdateStatus(txCtx, requestID, models.StatusCompleted); err != nil {
			return err
		}
		return repo.AppendHistory(txCtx, &models.StatusHistory{
			RequestID: requestID,
			Status:    models.StatusCompleted,
		})
	})

	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}
