package commands_test

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/core/ports"
	"dispatch/internal/pkg/errs"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func persistedOrder(t *testing.T, id int64, status order.Status) *order.Order {
	t.Helper()
	origin, err := kernel.NewGeoPointFromPair([]string{"11.01", "111.01"})
	require.NoError(t, err)
	destination, err := kernel.NewGeoPointFromPair([]string{"11.11", "111.11"})
	require.NoError(t, err)
	persisted, err := order.RestoreOrder(id, origin, destination, 772, status, time.Now())
	require.NoError(t, err)
	return persisted
}

func takeCommand(t *testing.T) commands.TakeOrderCommand {
	t.Helper()
	cmd, err := commands.NewTakeOrderCommand("42", "TAKEN")
	require.NoError(t, err)
	return cmd
}

func TestTakeOrderCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	cmd := takeCommand(t)

	repo := new(MockOrderRepository)
	uow := new(MockOrderUoW)
	mock.InOrder(
		uow.On("Begin", ctx, ports.IsolationSerializable).Return(nil).Once(),
		uow.On("OrderRepository").Return(repo).Once(),
		repo.On("Get", mock.Anything, int64(42)).
			Return(persistedOrder(t, 42, order.Unassigned), nil).Once(),
		repo.On("UpdateStatus", mock.Anything, int64(42), order.Unassigned, order.Taken).
			Return(int64(1), nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewTakeOrderCommandHandler(factory)
	err := h.Handle(ctx, cmd)
	require.NoError(t, err)
	repo.AssertExpectations(t)
	uow.AssertExpectations(t)
	factory.AssertExpectations(t)
}

func TestTakeOrderCommandHandler_Handle_ValidationError(t *testing.T) {
	ctx := t.Context()
	cmd := commands.TakeOrderCommand{} // not constructed properly

	factory := new(MockOrderUoWFactory)
	h := commands.NewTakeOrderCommandHandler(factory)
	err := h.Handle(ctx, cmd)
	require.Error(t, err)
	factory.AssertNotCalled(t, "Create")
}

func TestTakeOrderCommandHandler_Handle_OrderNotFound(t *testing.T) {
	ctx := t.Context()
	cmd := takeCommand(t)

	repo := new(MockOrderRepository)
	uow := new(MockOrderUoW)
	mock.InOrder(
		uow.On("Begin", ctx, ports.IsolationSerializable).Return(nil).Once(),
		uow.On("OrderRepository").Return(repo).Once(),
		repo.On("Get", mock.Anything, int64(42)).
			Return(nil, errs.NewObjectNotFoundError("order", int64(42))).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewTakeOrderCommandHandler(factory)
	err := h.Handle(ctx, cmd)
	require.ErrorIs(t, err, commands.ErrOrderNotFound)
	repo.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	uow.AssertNotCalled(t, "Commit", mock.Anything)
}

func TestTakeOrderCommandHandler_Handle_AlreadyTaken(t *testing.T) {
	ctx := t.Context()
	cmd := takeCommand(t)

	repo := new(MockOrderRepository)
	uow := new(MockOrderUoW)
	mock.InOrder(
		uow.On("Begin", ctx, ports.IsolationSerializable).Return(nil).Once(),
		uow.On("OrderRepository").Return(repo).Once(),
		repo.On("Get", mock.Anything, int64(42)).
			Return(persistedOrder(t, 42, order.Taken), nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewTakeOrderCommandHandler(factory)
	err := h.Handle(ctx, cmd)
	require.ErrorIs(t, err, commands.ErrInvalidOrderStatus)
	repo.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestTakeOrderCommandHandler_Handle_LostRace_ZeroRowsAffected(t *testing.T) {
	ctx := t.Context()
	cmd := takeCommand(t)

	repo := new(MockOrderRepository)
	uow := new(MockOrderUoW)
	mock.InOrder(
		uow.On("Begin", ctx, ports.IsolationSerializable).Return(nil).Once(),
		uow.On("OrderRepository").Return(repo).Once(),
		repo.On("Get", mock.Anything, int64(42)).
			Return(persistedOrder(t, 42, order.Unassigned), nil).Once(),
		repo.On("UpdateStatus", mock.Anything, int64(42), order.Unassigned, order.Taken).
			Return(int64(0), nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewTakeOrderCommandHandler(factory)
	err := h.Handle(ctx, cmd)
	require.ErrorIs(t, err, commands.ErrOrderNotFound)
	uow.AssertNotCalled(t, "Commit", mock.Anything)
}

func TestTakeOrderCommandHandler_Handle_LostRace_SerializationConflictOnUpdate(t *testing.T) {
	ctx := t.Context()
	cmd := takeCommand(t)

	repo := new(MockOrderRepository)
	uow := new(MockOrderUoW)
	mock.InOrder(
		uow.On("Begin", ctx, ports.IsolationSerializable).Return(nil).Once(),
		uow.On("OrderRepository").Return(repo).Once(),
		repo.On("Get", mock.Anything, int64(42)).
			Return(persistedOrder(t, 42, order.Unassigned), nil).Once(),
		repo.On("UpdateStatus", mock.Anything, int64(42), order.Unassigned, order.Taken).
			Return(int64(0), fmt.Errorf("%w: SQLSTATE 40001", ports.ErrConcurrencyConflict)).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewTakeOrderCommandHandler(factory)
	err := h.Handle(ctx, cmd)
	require.ErrorIs(t, err, commands.ErrInvalidOrderStatus)
}

func TestTakeOrderCommandHandler_Handle_LostRace_SerializationConflictOnCommit(t *testing.T) {
	ctx := t.Context()
	cmd := takeCommand(t)

	repo := new(MockOrderRepository)
	uow := new(MockOrderUoW)
	mock.InOrder(
		uow.On("Begin", ctx, ports.IsolationSerializable).Return(nil).Once(),
		uow.On("OrderRepository").Return(repo).Once(),
		repo.On("Get", mock.Anything, int64(42)).
			Return(persistedOrder(t, 42, order.Unassigned), nil).Once(),
		repo.On("UpdateStatus", mock.Anything, int64(42), order.Unassigned, order.Taken).
			Return(int64(1), nil).Once(),
		uow.On("Commit", ctx).
			Return(fmt.Errorf("%w: SQLSTATE 40001", ports.ErrConcurrencyConflict)).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewTakeOrderCommandHandler(factory)
	err := h.Handle(ctx, cmd)
	require.ErrorIs(t, err, commands.ErrInvalidOrderStatus)
}

func TestTakeOrderCommandHandler_Handle_StoreError(t *testing.T) {
	ctx := t.Context()
	cmd := takeCommand(t)

	storeErr := errors.New("connection reset")

	repo := new(MockOrderRepository)
	uow := new(MockOrderUoW)
	mock.InOrder(
		uow.On("Begin", ctx, ports.IsolationSerializable).Return(nil).Once(),
		uow.On("OrderRepository").Return(repo).Once(),
		repo.On("Get", mock.Anything, int64(42)).Return(nil, storeErr).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewTakeOrderCommandHandler(factory)
	err := h.Handle(ctx, cmd)
	require.ErrorIs(t, err, storeErr)
	require.NotErrorIs(t, err, commands.ErrOrderNotFound)
	require.NotErrorIs(t, err, commands.ErrInvalidOrderStatus)
}
