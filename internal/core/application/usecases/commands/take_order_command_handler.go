package commands

import (
	"context"
	"errors"

	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/core/ports"
	"dispatch/internal/pkg/errs"
)

// TakeOrderCommandHandler implements the race-free claim protocol.
//
// The claim runs inside a Serializable transaction: read the order, apply the
// claim transition on the aggregate, then conditionally update the status
// with the expected value re-asserted in the predicate. The store's isolation
// guarantee is the only concurrency control; the handler holds no locks of
// its own, so the protocol stays correct across multiple process instances
// sharing one store.
//
// For any order, across any number of concurrent claim attempts, at most one
// attempt commits; every other attempt observes ErrOrderNotFound or
// ErrInvalidOrderStatus. Those are expected outcomes of the race, not
// failures, and callers must not retry or log them as errors.
type TakeOrderCommandHandler struct {
	uowFactory OrderUoWFactory
}

// NewTakeOrderCommandHandler creates a handler for claim operations.
// Requires an OrderUoWFactory for transactional persistence.
func NewTakeOrderCommandHandler(uowFactory OrderUoWFactory) TakeOrderCommandHandler {
	return TakeOrderCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the claim command.
//
// Outcomes:
//   - nil: this attempt won; the order is now TAKEN
//   - ErrOrderNotFound: no order with this id, or the row vanished before
//     the conditional update applied
//   - ErrInvalidOrderStatus: the order was already TAKEN, or a concurrent
//     claim won the race (including a store-detected serialization conflict,
//     which is surfaced as this lost-race outcome rather than retried)
//   - anything else: store failure; the transaction is rolled back
func (h TakeOrderCommandHandler) Handle(ctx context.Context, cmd TakeOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx, ports.IsolationSerializable); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.OrderRepository()

	claimed, err := repo.Get(ctx, cmd.OrderID())
	if errors.Is(err, errs.ErrObjectNotFound) {
		return ErrOrderNotFound
	}
	if err != nil {
		return err
	}

	if err = claimed.Take(); err != nil {
		return ErrInvalidOrderStatus
	}

	// Re-assert UNASSIGNED in the update predicate: even if the store's
	// isolation were ever downgraded, a lost update could not slip through.
	rows, err := repo.UpdateStatus(ctx, cmd.OrderID(), order.Unassigned, claimed.Status())
	if errors.Is(err, ports.ErrConcurrencyConflict) {
		return ErrInvalidOrderStatus
	}
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrOrderNotFound
	}

	if err = uow.Commit(ctx); err != nil {
		if errors.Is(err, ports.ErrConcurrencyConflict) {
			return ErrInvalidOrderStatus
		}
		return err
	}

	return nil
}
