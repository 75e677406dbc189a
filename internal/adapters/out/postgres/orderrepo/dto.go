// Package orderrepo provides data transfer objects and mapping functions for order persistence.
// This package implements the repository pattern for the order domain aggregate, handling
// the conversion between domain entities and database representations.
package orderrepo

import (
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"

	"github.com/govalues/decimal"
)

// OrderDTO represents the database structure for persisting order aggregates.
// The id is store-assigned from the table's sequence; the listing index on
// created_at matches the listing query's sort order.
type OrderDTO struct {
	ID             int64       `gorm:"primaryKey;autoIncrement"`
	Origin         GeoPointDTO `gorm:"embedded;embeddedPrefix:origin_"`
	Destination    GeoPointDTO `gorm:"embedded;embeddedPrefix:destination_"`
	DistanceMeters int
	Status         string    `gorm:"type:varchar(16);index"`
	CreatedAt      time.Time `gorm:"index:idx_orders_created_at,sort:desc"`
}

// TableName specifies the database table name for order entities.
// Overrides GORM's default naming convention to use "orders".
func (OrderDTO) TableName() string {
	return "orders"
}

// GeoPointDTO represents an embedded coordinate pair within the order table.
// numeric(10,6) preserves the exact decimal digits the client submitted,
// which float columns would not.
type GeoPointDTO struct {
	Latitude  decimal.Decimal `gorm:"type:numeric(10,6)"`
	Longitude decimal.Decimal `gorm:"type:numeric(10,6)"`
}

// fromDomain converts an order domain aggregate to its database representation.
// A zero ID lets the store assign one on insert.
func fromDomain(aggregate *order.Order) OrderDTO {
	return OrderDTO{
		ID: aggregate.ID(),
		Origin: GeoPointDTO{
			Latitude:  aggregate.Origin().Latitude(),
			Longitude: aggregate.Origin().Longitude(),
		},
		Destination: GeoPointDTO{
			Latitude:  aggregate.Destination().Latitude(),
			Longitude: aggregate.Destination().Longitude(),
		},
		DistanceMeters: aggregate.DistanceMeters(),
		Status:         aggregate.Status().String(),
		CreatedAt:      aggregate.CreatedAt(),
	}
}

// toDomain converts a database DTO to an order domain aggregate.
// Reconstructs the complete aggregate including status using RestoreOrder.
func toDomain(dto OrderDTO) (*order.Order, error) {
	origin, err := kernel.NewGeoPoint(dto.Origin.Latitude, dto.Origin.Longitude)
	if err != nil {
		return nil, err
	}

	destination, err := kernel.NewGeoPoint(dto.Destination.Latitude, dto.Destination.Longitude)
	if err != nil {
		return nil, err
	}

	status, err := order.ParseStatus(dto.Status)
	if err != nil {
		return nil, err
	}

	return order.RestoreOrder(dto.ID, origin, destination, dto.DistanceMeters, status, dto.CreatedAt)
}
