package kernel

import (
	"fmt"

	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"

	"github.com/govalues/decimal"
)

// GeoPointPairSize is the required element count of a raw coordinate pair:
// latitude followed by longitude.
const GeoPointPairSize = 2

// ErrGeoPointIsNotConstructed is returned when attempting to use an improperly
// initialized GeoPoint. GeoPoints must be created via NewGeoPoint or
// NewGeoPointFromPair to ensure their coordinates are valid decimals.
var ErrGeoPointIsNotConstructed = errs.NewValueIsRequiredError(
	"geo point must be created via NewGeoPoint or NewGeoPointFromPair constructors")

// GeoPoint represents a geographic position with fixed-precision decimal
// latitude and longitude. It is an immutable value object; the zero value is
// invalid and fails validation.
//
// Example:
//
//	point, err := kernel.NewGeoPointFromPair([]string{"11.01", "111.01"})
//	if err != nil {
//	    // the pair was not two parseable decimal numbers
//	}
//	fmt.Println(point) // Output: GeoPoint(11.01,111.01)
type GeoPoint struct { //nolint:recvcheck //using for validation
	latitude  decimal.Decimal
	longitude decimal.Decimal
	guard     guard.ConstructorGuard
}

// NewGeoPoint creates a GeoPoint from already-parsed decimal coordinates.
func NewGeoPoint(latitude, longitude decimal.Decimal) (GeoPoint, error) {
	point := GeoPoint{
		guard: guard.NewConstructorGuard(),
	}
	point.latitude = latitude
	point.longitude = longitude
	return point, nil
}

// NewGeoPointFromPair creates a GeoPoint from a raw textual coordinate pair.
// The pair must contain exactly two elements, latitude then longitude, each
// a textual representation of a decimal number. Any other shape or content
// fails with a ValueIsInvalid error naming the offending part.
//
// Example:
//
//	point, err := kernel.NewGeoPointFromPair([]string{"11.11", "111.11"})
//	if err != nil {
//	    return err
//	}
func NewGeoPointFromPair(pair []string) (GeoPoint, error) {
	if len(pair) != GeoPointPairSize {
		return GeoPoint{}, errs.NewValueIsInvalidErrorWithCause(
			"coordinate pair",
			fmt.Errorf("expected %d elements, got %d", GeoPointPairSize, len(pair)),
		)
	}

	latitude, err := decimal.Parse(pair[0])
	if err != nil {
		return GeoPoint{}, errs.NewValueIsInvalidErrorWithCause("latitude", err)
	}

	longitude, err := decimal.Parse(pair[1])
	if err != nil {
		return GeoPoint{}, errs.NewValueIsInvalidErrorWithCause("longitude", err)
	}

	return NewGeoPoint(latitude, longitude)
}

// Validate checks that the GeoPoint was created through a constructor.
// The zero value fails with ErrGeoPointIsNotConstructed.
func (p GeoPoint) Validate() error {
	return p.guard.Validate(ErrGeoPointIsNotConstructed)
}

// Latitude returns the latitude coordinate.
func (p GeoPoint) Latitude() decimal.Decimal {
	return p.latitude
}

// Longitude returns the longitude coordinate.
func (p GeoPoint) Longitude() decimal.Decimal {
	return p.longitude
}

// IsEqual reports whether two geo points have identical coordinates.
func (p GeoPoint) IsEqual(other GeoPoint) bool {
	return p.latitude.Cmp(other.latitude) == 0 && p.longitude.Cmp(other.longitude) == 0
}

// String implements fmt.Stringer.
func (p GeoPoint) String() string {
	return fmt.Sprintf("GeoPoint(%s,%s)", p.latitude, p.longitude)
}
