package commands

import (
	"errors"
	"fmt"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/guard"
)

var (
	ErrPlaceOrderCommandIsNotConstructed = errors.New(
		"PlaceOrderCommand must be created via NewPlaceOrderCommand constructor",
	)
	// ErrInvalidOrigin marks a malformed origin coordinate pair.
	ErrInvalidOrigin = errors.New("invalid origin")
	// ErrInvalidDestination marks a malformed destination coordinate pair.
	ErrInvalidDestination = errors.New("invalid destination")
)

// PlaceOrderCommand represents a request to place a new delivery order.
// It carries the validated origin and destination coordinates; distance
// resolution and persistence happen in the handler.
//
// Example:
//
//	cmd, err := NewPlaceOrderCommand([]string{"11.01", "111.01"}, []string{"11.11", "111.11"})
//	if err != nil {
//	    return fmt.Errorf("invalid order data: %w", err)
//	}
//
//	placed, err := handler.Handle(ctx, cmd)
//	if err != nil {
//	    return fmt.Errorf("failed to place order: %w", err)
//	}
//	fmt.Printf("Order %d placed, %d meters", placed.ID(), placed.DistanceMeters())
type PlaceOrderCommand struct { //nolint:recvcheck //using for validation
	origin      kernel.GeoPoint
	destination kernel.GeoPoint

	guard guard.ConstructorGuard
}

// NewPlaceOrderCommand creates a command to place a new delivery order from
// raw coordinate pairs. Each pair must contain exactly two textual decimal
// numbers, latitude then longitude. Origin failures are reported as
// ErrInvalidOrigin and destination failures as ErrInvalidDestination, so the
// transport layer can name the offending field.
func NewPlaceOrderCommand(originPair []string, destinationPair []string) (PlaceOrderCommand, error) {
	placeCommand := PlaceOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		placeCommand.setOrigin(originPair),
		placeCommand.setDestination(destinationPair),
	); err != nil {
		return PlaceOrderCommand{}, err
	}

	return placeCommand, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrPlaceOrderCommandIsNotConstructed if validation fails.
func (c PlaceOrderCommand) Validate() error {
	return c.guard.Validate(ErrPlaceOrderCommandIsNotConstructed)
}

// Origin returns the validated pickup coordinates.
func (c PlaceOrderCommand) Origin() kernel.GeoPoint {
	return c.origin
}

// Destination returns the validated delivery coordinates.
func (c PlaceOrderCommand) Destination() kernel.GeoPoint {
	return c.destination
}

func (c *PlaceOrderCommand) setOrigin(pair []string) error {
	point, err := kernel.NewGeoPointFromPair(pair)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidOrigin, err)
	}

	c.origin = point
	return nil
}

func (c *PlaceOrderCommand) setDestination(pair []string) error {
	point, err := kernel.NewGeoPointFromPair(pair)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidDestination, err)
	}

	c.destination = point
	return nil
}
