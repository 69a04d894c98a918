package cancel

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/tavakkoli/shop_events_system/internal/domain/models"
	internalErrors "github.com/tavakkoli/shop_events_system/internal/lib/errors"
	"github.com/tavakkoli/shop_events_system/pkg/logger"
)

type fakeCache struct {
	orders map[uuid.UUID]*models.Order
}

func (f *fakeCache) Get(key uuid.UUID) (*models.Order, bool) {
	order, ok := f.orders[key]
	return order, ok
}

func (f *fakeCache) Add(key uuid.UUID, value *models.Order) bool {
	f.orders[key] = value
	return false
}

type fakeRepo struct {
	order     *models.Order
	cancelErr error
	cancelled []uuid.UUID
}

func (f *fakeRepo) Order(context.Context, uuid.UUID) (*models.Order, error) {
	if f.order == nil {
		return nil, internalErrors.ErrOrderNotFound
	}
	return f.order, nil
}

func (f *fakeRepo) Cancel(_ context.Context, orderUUID uuid.UUID) error {
	if f.cancelErr != nil {
		return f.cancelErr
	}
	f.cancelled = append(f.cancelled, orderUUID)
	return nil
}

func newService(cache *fakeCache, repo *fakeRepo) *OrderCancellationService {
	return New(logger.SetupLogger("local"), cache, repo, repo)
}

func TestCancel(t *testing.T) {
	tCases := []struct {
		name   string
		status models.OrderStatus
	}{
		{name: "created", status: models.OrderStatusCreated},
		{name: "paid", status: models.OrderStatusPaid},
	}

	for _, tCase := range tCases {
		t.Run(tCase.name, func(t *testing.T) {
			orderUUID := uuid.New()
			cache := &fakeCache{orders: map[uuid.UUID]*models.Order{
				orderUUID: {OrderUUID: orderUUID, Status: tCase.status},
			}}
			repo := &fakeRepo{}

			err := newService(cache, repo).Cancel(context.Background(), orderUUID)

			require.NoError(t, err)
			require.Equal(t, []uuid.UUID{orderUUID}, repo.cancelled)
			require.Equal(t, models.OrderStatusCanceled, cache.orders[orderUUID].Status)
		})
	}
}

func TestCancelError(t *testing.T) {
	tCases := []struct {
		name   string
		status models.OrderStatus
		expErr error
	}{
		{
			name:   "already_canceled",
			status: models.OrderStatusCanceled,
			expErr: internalErrors.ErrOrderAlreadyCanceled,
		},
		{
			name:   "already_delivered",
			status: models.OrderStatusDelivered,
			expErr: internalErrors.ErrOrderAlreadyDelivered,
		},
		{
			name:   "undefined_status",
			status: models.UndefinedStatus,
			expErr: internalErrors.ErrCancelOrderByStatus,
		},
	}

	for _, tCase := range tCases {
		t.Run(tCase.name, func(t *testing.T) {
			orderUUID := uuid.New()
			cache := &fakeCache{orders: map[uuid.UUID]*models.Order{
				orderUUID: {OrderUUID: orderUUID, Status: tCase.status},
			}}
			repo := &fakeRepo{}

			err := newService(cache, repo).Cancel(context.Background(), orderUUID)

			require.ErrorIs(t, err, tCase.expErr)
			require.Empty(t, repo.cancelled)
		})
	}
}

func TestCancel_CacheMissFallsBackToRepository(t *testing.T) {
	orderUUID := uuid.New()
	cache := &fakeCache{orders: map[uuid.UUID]*models.Order{}}
	repo := &fakeRepo{order: &models.Order{OrderUUID: orderUUID, Status: models.OrderStatusCreated}}

	err := newService(cache, repo).Cancel(context.Background(), orderUUID)

	require.NoError(t, err)
	require.Equal(t, []uuid.UUID{orderUUID}, repo.cancelled)
}

func TestCancel_NotFound(t *testing.T) {
	cache := &fakeCache{orders: map[uuid.UUID]*models.Order{}}
	repo := &fakeRepo{}

	err := newService(cache, repo).Cancel(context.Background(), uuid.New())

	require.ErrorIs(t, err, internalErrors.ErrOrderNotFound)
}
