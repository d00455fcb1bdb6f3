package orderController

import (
	"context"
	"freshfold/config"
	"freshfold/internal/models"
	"testing"

	logger "github.com/Bparsons0904/goLogger"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

type fakeRequestRepo struct {
	orders    map[uuid.UUID]*models.CleaningRequest
	listCalls int
}

func (f *fakeRequestRepo) Create(
	ctx context.Context,
	request *models.CleaningRequest,
) (*models.CleaningRequest, error) {
	f.orders[request.ID] = request
	return request, nil
}

func (f *fakeRequestRepo) GetByID(
	ctx context.Context,
	id uuid.UUID,
) (*models.CleaningRequest, error) {
	order, ok := f.orders[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return order, nil
}

func (f *fakeRequestRepo) ListByUser(
	ctx context.Context,
	userID uuid.UUID,
) ([]models.CleaningRequest, error) {
	return nil, nil
}

func (f *fakeRequestRepo) ListAll(
	ctx context.Context,
	status models.RequestStatus,
) ([]models.CleaningRequest, error) {
	f.listCalls++
	all := make([]models.CleaningRequest, 0, len(f.orders))
	for _, order := range f.orders {
		if status != "" && order.Status != status {
			continue
		}
		all = append(all, *order)
	}
	return all, nil
}

func (f *fakeRequestRepo) UpdateStatus(
	ctx context.Context,
	id uuid.UUID,
	status models.RequestStatus,
) error {
	order, ok := f.orders[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	order.Status = status
	return nil
}

func (f *fakeRequestRepo) AppendHistory(ctx context.Context, entry *models.StatusHistory) error {
	return nil
}

func (f *fakeRequestRepo) CountAll(ctx context.Context) (int64, error) {
	return int64(len(f.orders)), nil
}

func (f *fakeRequestRepo) CountByStatus(
	ctx context.Context,
	status models.RequestStatus,
) (int64, error) {
	var count int64
	for _, order := range f.orders {
		if order.Status == status {
			count++
		}
	}
	return count, nil
}

func newTestController(strict bool) (*OrderController, *fakeRequestRepo) {
	repo := &fakeRequestRepo{orders: map[uuid.UUID]*models.CleaningRequest{}}
	return &OrderController{
		requestRepo: repo,
		Config:      config.Config{StrictStatusFlow: strict},
		log:         logger.New("orderControllerTest"),
	}, repo
}

func seedOrder(repo *fakeRequestRepo, status models.RequestStatus) uuid.UUID {
	id := uuid.New()
	order := &models.CleaningRequest{Status: status}
	order.ID = id
	repo.orders[id] = order
	return id
}

func TestUpdateStatusUnknownStatus(t *testing.T) {
	c, repo := newTestController(false)
	id := seedOrder(repo, models.StatusPending)
	actor := &models.User{Role: models.RoleAdmin}

	err := c.UpdateStatus(context.Background(), actor, id, &UpdateStatusRequest{
		Status: "teleported",
	})

	assert.ErrorIs(t, err, ErrValidation)
	assert.Equal(t, models.StatusPending, repo.orders[id].Status)
}

func TestUpdateStatusNotFound(t *testing.T) {
	c, _ := newTestController(false)
	actor := &models.User{Role: models.RoleAdmin}

	err := c.UpdateStatus(context.Background(), actor, uuid.New(), &UpdateStatusRequest{
		Status: string(models.StatusInProgress),
	})

	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUpdateStatusStrictFlowRejectsSkip(t *testing.T) {
	c, repo := newTestController(true)
	id := seedOrder(repo, models.StatusPending)
	actor := &models.User{Role: models.RoleStaff}

	err := c.UpdateStatus(context.Background(), actor, id, &UpdateStatusRequest{
		Status: string(models.StatusCompleted),
	})

	assert.ErrorIs(t, err, ErrConflict)
	assert.Equal(t, models.StatusPending, repo.orders[id].Status,
		"rejected transition must not touch the row")
}

func TestUpdateStatusStrictFlowAllowsCancel(t *testing.T) {
	// cancelled is reachable from any non-terminal state even under strict flow
	for _, from := range []models.RequestStatus{
		models.StatusPending,
		models.StatusInProgress,
		models.StatusReadyForPickup,
		models.StatusPickedUp,
	} {
		assert.True(t, from.CanTransition(models.StatusCancelled), "from %s", from)
	}
}

func TestListAllStatusFilter(t *testing.T) {
	c, repo := newTestController(false)
	seedOrder(repo, models.StatusPending)
	seedOrder(repo, models.StatusPending)
	seedOrder(repo, models.StatusCompleted)

	pending, err := c.ListAll(context.Background(), "pending")
	assert.NoError(t, err)
	assert.Len(t, pending, 2)

	all, err := c.ListAll(context.Background(), "")
	assert.NoError(t, err)
	assert.Len(t, all, 3)

	// An unknown filter is rejected before the repository is asked anything
	queriesBefore := repo.listCalls
	_, err = c.ListAll(context.Background(), "bogus")
	assert.ErrorIs(t, err, ErrValidation)
	assert.Equal(t, queriesBefore, repo.listCalls)
}
