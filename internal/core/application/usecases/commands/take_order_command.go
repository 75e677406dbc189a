package commands

import (
	"errors"
	"fmt"
	"strconv"

	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/pkg/guard"
)

var (
	ErrTakeOrderCommandIsNotConstructed = errors.New(
		"TakeOrderCommand must be created via NewTakeOrderCommand constructor",
	)
	// ErrInvalidOrderID marks an order id that is not a parseable integer.
	ErrInvalidOrderID = errors.New("invalid order id")
	// ErrInvalidOrderStatus covers both a bad requested status value and the
	// losing side of a claim race: the order exists but is no longer
	// UNASSIGNED by the time this request reaches it.
	ErrInvalidOrderStatus = errors.New("invalid order status")
	// ErrOrderNotFound marks a claim against a nonexistent order id.
	ErrOrderNotFound = errors.New("order not found")
)

// TakeOrderCommand represents a courier's request to claim an order.
// The protocol only exposes the forward claim: the requested status must be
// exactly TAKEN. Requesting UNASSIGNED, or any other value, is rejected
// before the store is touched.
//
// Example:
//
//	cmd, err := NewTakeOrderCommand("42", "TAKEN")
//	if err != nil {
//	    return err // ErrInvalidOrderID or ErrInvalidOrderStatus
//	}
//
//	err = handler.Handle(ctx, cmd)
//	switch {
//	case errors.Is(err, ErrOrderNotFound):
//	    // no such order
//	case errors.Is(err, ErrInvalidOrderStatus):
//	    // someone already took it
//	case err != nil:
//	    // store failure
//	}
type TakeOrderCommand struct { //nolint:recvcheck //using for validation
	orderID      int64
	targetStatus order.Status

	guard guard.ConstructorGuard
}

// NewTakeOrderCommand creates a claim command from the raw path and body
// values. The id must parse as an integer and the requested status must be
// exactly "TAKEN"; violations fail with ErrInvalidOrderID or
// ErrInvalidOrderStatus respectively, before any store access.
func NewTakeOrderCommand(rawID string, rawStatus string) (TakeOrderCommand, error) {
	takeCommand := TakeOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := takeCommand.setOrderID(rawID); err != nil {
		return TakeOrderCommand{}, err
	}
	if err := takeCommand.setTargetStatus(rawStatus); err != nil {
		return TakeOrderCommand{}, err
	}

	return takeCommand, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrTakeOrderCommandIsNotConstructed if validation fails.
func (c TakeOrderCommand) Validate() error {
	return c.guard.Validate(ErrTakeOrderCommandIsNotConstructed)
}

// OrderID returns the parsed order identifier.
func (c TakeOrderCommand) OrderID() int64 {
	return c.orderID
}

// TargetStatus returns the requested status, always order.Taken for a
// constructed command.
func (c TakeOrderCommand) TargetStatus() order.Status {
	return c.targetStatus
}

func (c *TakeOrderCommand) setOrderID(rawID string) error {
	id, err := strconv.ParseInt(rawID, 10, 64)
	if err != nil {
		return fmt.Errorf("%w: %q", ErrInvalidOrderID, rawID)
	}

	c.orderID = id
	return nil
}

func (c *TakeOrderCommand) setTargetStatus(rawStatus string) error {
	status, err := order.ParseStatus(rawStatus)
	if err != nil || status != order.Taken {
		return fmt.Errorf("%w: %q", ErrInvalidOrderStatus, rawStatus)
	}

	c.targetStatus = status
	return nil
}
