package repositories_test

import (
	"context"
	"freshfold/internal/repositories"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Conversations render oldest-first; the ordering lives in the query, not in
// the callers.
func TestMessageRepository_ListByRequestOrdersAscending(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := repositories.NewMessageRepository(db)

	requestID := uuid.New()

	mock.ExpectQuery(`SELECT (.+) FROM "messages" WHERE request_id = (.+) ORDER BY created_at ASC`).
		WithArgs(requestID).
		WillReturnRows(sqlmock.NewRows([]string{"id", "request_id", "sender_id", "content"}))

	messages, err := repo.ListByRequest(context.Background(), requestID)

	require.NoError(t, err)
	assert.Empty(t, messages)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMessageRepository_LatestPerRequestGroupsInOneQuery(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := repositories.NewMessageRepository(db)

	mock.ExpectQuery(`SELECT (.+) FROM "messages" WHERE id IN \(SELECT DISTINCT ON \(request_id\) id FROM "messages"(.+)ORDER BY request_id, created_at DESC\)`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "request_id", "sender_id", "content"}))

	messages, err := repo.LatestPerRequest(context.Background())

	require.NoError(t, err)
	assert.Empty(t, messages)
	assert.NoError(t, mock.ExpectationsWereMet())
}
