package commands_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/core/ports"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockOrderRepository struct{ mock.Mock }

func (m *MockOrderRepository) Add(ctx context.Context, o *order.Order) (*order.Order, error) {
	args := m.Called(ctx, o)
	if stored := args.Get(0); stored != nil {
		return stored.(*order.Order), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockOrderRepository) Get(ctx context.Context, id int64) (*order.Order, error) {
	args := m.Called(ctx, id)
	if found := args.Get(0); found != nil {
		return found.(*order.Order), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockOrderRepository) UpdateStatus(
	ctx context.Context, id int64, expected order.Status, next order.Status,
) (int64, error) {
	args := m.Called(ctx, id, expected, next)
	return args.Get(0).(int64), args.Error(1)
}

type MockOrderUoW struct{ mock.Mock }

func (m *MockOrderUoW) Begin(ctx context.Context, level ports.IsolationLevel) error {
	args := m.Called(ctx, level)
	return args.Error(0)
}

func (m *MockOrderUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockOrderUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockOrderUoW) OrderRepository() ports.OrderRepository {
	args := m.Called()
	return args.Get(0).(ports.OrderRepository)
}

type MockOrderUoWFactory struct{ mock.Mock }

func (m *MockOrderUoWFactory) Create() commands.OrderUoW {
	args := m.Called()
	return args.Get(0).(commands.OrderUoW)
}

type MockDistanceResolver struct{ mock.Mock }

func (m *MockDistanceResolver) ResolveDistance(
	ctx context.Context, origin kernel.GeoPoint, destination kernel.GeoPoint,
) (float64, error) {
	args := m.Called(ctx, origin, destination)
	return args.Get(0).(float64), args.Error(1)
}

func placeCommand(t *testing.T) commands.PlaceOrderCommand {
	t.Helper()
	cmd, err := commands.NewPlaceOrderCommand(
		[]string{"11.01", "111.01"},
		[]string{"11.11", "111.11"},
	)
	require.NoError(t, err)
	return cmd
}

func storedOrder(t *testing.T, id int64, distance int) *order.Order {
	t.Helper()
	origin, err := kernel.NewGeoPointFromPair([]string{"11.01", "111.01"})
	require.NoError(t, err)
	destination, err := kernel.NewGeoPointFromPair([]string{"11.11", "111.11"})
	require.NoError(t, err)
	stored, err := order.RestoreOrder(id, origin, destination, distance, order.Unassigned, time.Now())
	require.NoError(t, err)
	return stored
}

func TestPlaceOrderCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	cmd := placeCommand(t)

	resolver := new(MockDistanceResolver)
	resolver.On("ResolveDistance", ctx, cmd.Origin(), cmd.Destination()).Return(772.0, nil).Once()

	repo := new(MockOrderRepository)
	uow := new(MockOrderUoW)
	mock.InOrder(
		uow.On("Begin", ctx, ports.IsolationDefault).Return(nil).Once(),
		uow.On("OrderRepository").Return(repo).Once(),
		repo.On("Add", mock.Anything, mock.MatchedBy(func(o *order.Order) bool {
			return o.DistanceMeters() == 772 && o.Status() == order.Unassigned
		})).Return(storedOrder(t, 1, 772), nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewPlaceOrderCommandHandler(factory, resolver)
	placed, err := h.Handle(ctx, cmd)
	require.NoError(t, err)
	require.Equal(t, int64(1), placed.ID())
	require.Equal(t, 772, placed.DistanceMeters())
	require.Equal(t, order.Unassigned, placed.Status())
	resolver.AssertExpectations(t)
	repo.AssertExpectations(t)
	uow.AssertExpectations(t)
	factory.AssertExpectations(t)
}

func TestPlaceOrderCommandHandler_Handle_RoundsDistanceToNearestMeter(t *testing.T) {
	testCases := []struct {
		name     string
		meters   float64
		expected int
	}{
		{name: "exact", meters: 772.0, expected: 772},
		{name: "round_down", meters: 771.4, expected: 771},
		{name: "round_up", meters: 771.6, expected: 772},
		{name: "half_rounds_away_from_zero", meters: 771.5, expected: 772},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctx := t.Context()
			cmd := placeCommand(t)

			resolver := new(MockDistanceResolver)
			resolver.On("ResolveDistance", ctx, cmd.Origin(), cmd.Destination()).Return(tc.meters, nil).Once()

			repo := new(MockOrderRepository)
			repo.On("Add", mock.Anything, mock.MatchedBy(func(o *order.Order) bool {
				return o.DistanceMeters() == tc.expected
			})).Return(storedOrder(t, 1, tc.expected), nil).Once()

			uow := new(MockOrderUoW)
			uow.On("Begin", ctx, ports.IsolationDefault).Return(nil).Once()
			uow.On("OrderRepository").Return(repo).Once()
			uow.On("Commit", ctx).Return(nil).Once()
			uow.On("Rollback", ctx).Return(nil).Once()

			factory := new(MockOrderUoWFactory)
			factory.On("Create").Return(uow).Once()

			h := commands.NewPlaceOrderCommandHandler(factory, resolver)
			placed, err := h.Handle(ctx, cmd)
			require.NoError(t, err)
			require.Equal(t, tc.expected, placed.DistanceMeters())
			repo.AssertExpectations(t)
		})
	}
}

func TestPlaceOrderCommandHandler_Handle_ValidationError(t *testing.T) {
	ctx := t.Context()
	cmd := commands.PlaceOrderCommand{} // not constructed properly

	resolver := new(MockDistanceResolver)
	factory := new(MockOrderUoWFactory)

	h := commands.NewPlaceOrderCommandHandler(factory, resolver)
	_, err := h.Handle(ctx, cmd)
	require.Error(t, err)
	resolver.AssertNotCalled(t, "ResolveDistance", mock.Anything, mock.Anything, mock.Anything)
	factory.AssertNotCalled(t, "Create")
}

func TestPlaceOrderCommandHandler_Handle_ResolverError_NoOrderPersisted(t *testing.T) {
	ctx := t.Context()
	cmd := placeCommand(t)

	resolver := new(MockDistanceResolver)
	resolver.On("ResolveDistance", ctx, cmd.Origin(), cmd.Destination()).
		Return(0.0, errors.New("routing provider unavailable")).Once()

	factory := new(MockOrderUoWFactory)

	h := commands.NewPlaceOrderCommandHandler(factory, resolver)
	_, err := h.Handle(ctx, cmd)
	require.Error(t, err)
	factory.AssertNotCalled(t, "Create")
}

func TestPlaceOrderCommandHandler_Handle_AddError(t *testing.T) {
	ctx := t.Context()
	cmd := placeCommand(t)

	resolver := new(MockDistanceResolver)
	resolver.On("ResolveDistance", ctx, cmd.Origin(), cmd.Destination()).Return(772.0, nil).Once()

	repo := new(MockOrderRepository)
	uow := new(MockOrderUoW)
	mock.InOrder(
		uow.On("Begin", ctx, ports.IsolationDefault).Return(nil).Once(),
		uow.On("OrderRepository").Return(repo).Once(),
		repo.On("Add", mock.Anything, mock.AnythingOfType("*order.Order")).
			Return(nil, errors.New("insert failed")).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewPlaceOrderCommandHandler(factory, resolver)
	_, err := h.Handle(ctx, cmd)
	require.Error(t, err)
	uow.AssertNotCalled(t, "Commit", mock.Anything)
	repo.AssertExpectations(t)
	uow.AssertExpectations(t)
}

func TestPlaceOrderCommandHandler_Handle_CommitError(t *testing.T) {
	ctx := t.Context()
	cmd := placeCommand(t)

	resolver := new(MockDistanceResolver)
	resolver.On("ResolveDistance", ctx, cmd.Origin(), cmd.Destination()).Return(772.0, nil).Once()

	repo := new(MockOrderRepository)
	uow := new(MockOrderUoW)
	mock.InOrder(
		uow.On("Begin", ctx, ports.IsolationDefault).Return(nil).Once(),
		uow.On("OrderRepository").Return(repo).Once(),
		repo.On("Add", mock.Anything, mock.AnythingOfType("*order.Order")).
			Return(storedOrder(t, 1, 772), nil).Once(),
		uow.On("Commit", ctx).Return(errors.New("commit error")).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewPlaceOrderCommandHandler(factory, resolver)
	_, err := h.Handle(ctx, cmd)
	require.Error(t, err)
	uow.AssertExpectations(t)
}
