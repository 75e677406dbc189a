package queries

import (
	"context"

	"gorm.io/gorm"
)

// ListOrdersQueryHandler retrieves pages of the order listing from the
// database. The listing reads the persisted rows directly, bypassing the
// domain model: the dashboard needs identifiers and statuses, not
// aggregates.
//
// Example:
//
//	handler := NewListOrdersQueryHandler(db)
//	query, _ := NewListOrdersQuery("1", "20")
//
//	orders, err := handler.Handle(ctx, query)
//	if err != nil {
//	    return err
//	}
//	for _, o := range orders {
//	    fmt.Printf("order %d: %dm, %s\n", o.ID, o.DistanceMeters, o.Status)
//	}
type ListOrdersQueryHandler struct {
	db *gorm.DB
}

// NewListOrdersQueryHandler creates a handler for listing queries.
// Requires a GORM database connection for query execution.
func NewListOrdersQueryHandler(db *gorm.DB) ListOrdersQueryHandler {
	return ListOrdersQueryHandler{db: db}
}

// Handle executes the listing query.
//
// Orders are returned newest first. Ties on creation time break by
// descending id, so the ordering is total and pages never overlap or
// skip rows between requests.
func (h ListOrdersQueryHandler) Handle(
	ctx context.Context,
	query ListOrdersQuery,
) ([]ListOrdersQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	sql := `
		SELECT
			id,
			distance_meters,
			status
		FROM orders
		ORDER BY created_at DESC, id DESC
	`

	args := make([]any, 0, 2)
	if query.Limit() > 0 {
		sql += " LIMIT ? OFFSET ?"
		args = append(args, query.Limit(), query.Offset())
	}

	rows, err := h.db.WithContext(ctx).Raw(sql, args...).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	orders := make([]ListOrdersQueryResponse, 0)

	for rows.Next() {
		var orderResp ListOrdersQueryResponse

		err = rows.Scan(
			&orderResp.ID,
			&orderResp.DistanceMeters,
			&orderResp.Status,
		)
		if err != nil {
			return nil, err
		}

		orders = append(orders, orderResp)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return orders, nil
}
