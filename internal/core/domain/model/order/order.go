package order

import (
	"errors"
	"fmt"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not created
	// through the NewOrder or RestoreOrder factory methods.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder or RestoreOrder constructor")
)

// Order represents a delivery order: an origin and destination coordinate
// pair, the travel distance between them, and an assignment status.
//
// Order follows these invariants:
//   - Origin and destination are valid GeoPoints, immutable after creation
//   - Distance is a non-negative integer number of meters, set once at creation
//   - A newly created order is always Unassigned
//   - The only permitted mutation is the one-shot Unassigned -> Taken transition
//   - Can only be created through NewOrder or RestoreOrder
//
// The identifier and creation timestamp are assigned by the store on first
// persistence; an order loaded back from the store carries both.
type Order struct {
	// id is the store-assigned monotonically increasing identifier.
	// Zero until the order has been persisted.
	id int64

	// origin is the pickup position
	origin kernel.GeoPoint

	// destination is the delivery position
	destination kernel.GeoPoint

	// distanceMeters is the resolved travel distance, rounded to whole meters
	distanceMeters int

	// status represents the current state in the order lifecycle
	status Status

	// createdAt is the store-assigned creation timestamp, the listing sort key
	createdAt time.Time

	// isConstructed ensures the order was created via a constructor
	isConstructed bool
}

// NewOrder creates a new unpersisted Order with validation. The order starts
// in Unassigned status with no identifier; the store assigns id and createdAt
// when the order is added.
//
// Parameters:
//   - origin: pickup coordinates (must be a constructed GeoPoint)
//   - destination: delivery coordinates (must be a constructed GeoPoint)
//   - distanceMeters: resolved travel distance (must be >= 0)
//
// Example:
//
//	origin, _ := kernel.NewGeoPointFromPair([]string{"11.01", "111.01"})
//	destination, _ := kernel.NewGeoPointFromPair([]string{"11.11", "111.11"})
//	order, err := NewOrder(origin, destination, 772)
//	if err != nil {
//	    // Handle validation error
//	}
func NewOrder(origin kernel.GeoPoint, destination kernel.GeoPoint, distanceMeters int) (*Order, error) {
	order := &Order{
		status:        Unassigned,
		isConstructed: true,
	}

	if err := errors.Join(
		order.setOrigin(origin),
		order.setDestination(destination),
		order.setDistanceMeters(distanceMeters),
	); err != nil {
		return nil, err
	}

	return order, nil
}

// RestoreOrder reconstructs an Order from persistence. Unlike NewOrder it
// requires a positive identifier and an explicit status, both of which came
// from the store. It is intended for repository implementations only.
func RestoreOrder(
	id int64,
	origin kernel.GeoPoint,
	destination kernel.GeoPoint,
	distanceMeters int,
	status Status,
	createdAt time.Time,
) (*Order, error) {
	order := &Order{
		isConstructed: true,
		createdAt:     createdAt,
	}

	if err := errors.Join(
		order.setID(id),
		order.setOrigin(origin),
		order.setDestination(destination),
		order.setDistanceMeters(distanceMeters),
		order.setStatus(status),
	); err != nil {
		return nil, err
	}

	return order, nil
}

// Validate ensures the Order instance was properly constructed through a
// factory method. This prevents bypassing validation by directly
// instantiating the struct, and should be called when reconstructing orders
// from persistence.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

// IsEqual compares two persisted orders by their identifiers.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id != 0 && o.id == other.id
}

// ID returns the store-assigned identifier, or zero for an unpersisted order.
func (o *Order) ID() int64 {
	return o.id
}

// Origin returns the pickup coordinates.
func (o *Order) Origin() kernel.GeoPoint {
	return o.origin
}

// Destination returns the delivery coordinates.
func (o *Order) Destination() kernel.GeoPoint {
	return o.destination
}

// DistanceMeters returns the resolved travel distance in whole meters.
func (o *Order) DistanceMeters() int {
	return o.distanceMeters
}

// Status returns the current status of the order.
func (o *Order) Status() Status {
	return o.status
}

// CreatedAt returns the store-assigned creation timestamp.
func (o *Order) CreatedAt() time.Time {
	return o.createdAt
}

// Take claims the order, transitioning it from Unassigned to Taken.
//
// This is the only mutation an Order permits after creation. It succeeds at
// most once: a second call, or a call on an order loaded in Taken status,
// returns an error.
//
// Example:
//
//	if err := order.Take(); err != nil {
//	    // order was already taken
//	}
func (o *Order) Take() error {
	newStatus, err := o.status.Take()
	if err != nil {
		return err
	}

	o.status = newStatus
	return nil
}

// setID validates and sets the store-assigned identifier.
func (o *Order) setID(id int64) error {
	if id <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("order id", fmt.Errorf("%d is not a positive identifier", id))
	}
	o.id = id
	return nil
}

// setOrigin validates and sets the pickup coordinates.
func (o *Order) setOrigin(origin kernel.GeoPoint) error {
	if err := origin.Validate(); err != nil {
		return err
	}
	o.origin = origin
	return nil
}

// setDestination validates and sets the delivery coordinates.
func (o *Order) setDestination(destination kernel.GeoPoint) error {
	if err := destination.Validate(); err != nil {
		return err
	}
	o.destination = destination
	return nil
}

// setDistanceMeters validates and sets the travel distance.
// Distance must be non-negative.
func (o *Order) setDistanceMeters(distanceMeters int) error {
	if distanceMeters < 0 {
		return errs.NewValueIsInvalidErrorWithCause(
			"distance", fmt.Errorf("%d is not a non-negative distance", distanceMeters))
	}
	o.distanceMeters = distanceMeters
	return nil
}

// setStatus validates and sets the status during restoration.
func (o *Order) setStatus(status Status) error {
	if err := status.Validate(); err != nil {
		return err
	}
	o.status = status
	return nil
}
