package ports

import (
	"context"

	"dispatch/internal/core/domain/model/kernel"
)

// DistanceResolver computes the travel distance between two coordinates
// using an external routing provider. It is consulted once, at order
// placement; the returned distance is in meters and may be fractional.
// Implementations fail on transport errors and non-2xx provider responses.
type DistanceResolver interface {
	ResolveDistance(ctx context.Context, origin kernel.GeoPoint, destination kernel.GeoPoint) (float64, error)
}
