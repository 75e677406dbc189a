package commands

import (
	"context"
	"math"

	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/core/ports"
)

// PlaceOrderCommandHandler handles the business logic for order placement.
// Resolves the travel distance through the external routing provider and
// persists a new order in UNASSIGNED status.
//
// Example:
//
//	handler := NewPlaceOrderCommandHandler(uowFactory, resolver)
//	cmd, _ := NewPlaceOrderCommand([]string{"11.01", "111.01"}, []string{"11.11", "111.11"})
//
//	placed, err := handler.Handle(ctx, cmd)
//	if err != nil {
//	    return fmt.Errorf("order placement failed: %w", err)
//	}
//	// placed carries the store-assigned id and the rounded distance
type PlaceOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	resolver   ports.DistanceResolver
}

// NewPlaceOrderCommandHandler creates a handler for order placement.
// Requires an OrderUoWFactory for transactional persistence and a
// DistanceResolver for the routing provider call.
func NewPlaceOrderCommandHandler(
	uowFactory OrderUoWFactory,
	resolver ports.DistanceResolver,
) PlaceOrderCommandHandler {
	return PlaceOrderCommandHandler{
		uowFactory: uowFactory,
		resolver:   resolver,
	}
}

// Handle processes the order placement command and returns the persisted
// order. The provider's distance is rounded to the nearest whole meter with
// halves rounding away from zero (math.Round). If the provider call or the
// store fails, no order is persisted and the error is surfaced as-is for the
// transport layer to map to an internal error.
func (h PlaceOrderCommandHandler) Handle(ctx context.Context, cmd PlaceOrderCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	meters, err := h.resolver.ResolveDistance(ctx, cmd.Origin(), cmd.Destination())
	if err != nil {
		return nil, err
	}

	newOrder, err := order.NewOrder(cmd.Origin(), cmd.Destination(), int(math.Round(meters)))
	if err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx, ports.IsolationDefault); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	placed, err := uow.OrderRepository().Add(ctx, newOrder)
	if err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return placed, nil
}
