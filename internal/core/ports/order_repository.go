package ports

import (
	"context"

	"dispatch/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates.
// Implementations are bound to the transaction of the UnitOfWork that
// produced them.
type OrderRepository interface {
	// Add persists a new order and returns the stored aggregate with its
	// store-assigned identifier and creation timestamp. The input aggregate
	// is not mutated.
	Add(ctx context.Context, aggregate *order.Order) (*order.Order, error)

	// Get retrieves an order by its identifier.
	// Returns an errs.ObjectNotFoundError when no such order exists.
	Get(ctx context.Context, id int64) (*order.Order, error)

	// UpdateStatus performs a conditional status update: the order's status
	// is set to next only where its current status still equals expected.
	// Returns the number of rows affected; zero means another transaction
	// changed the order first (a lost claim race), not a system error.
	UpdateStatus(ctx context.Context, id int64, expected order.Status, next order.Status) (int64, error)
}
