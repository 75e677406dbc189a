// Package kernel contains shared value objects used across the domain model.
//
// The central type is GeoPoint, an immutable pair of fixed-precision
// geographic coordinates. GeoPoint instances are always constructed through
// validating constructors, so any GeoPoint held by a domain object is known
// to carry parseable decimal latitude and longitude values.
package kernel
