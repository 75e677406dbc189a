package queries

import (
	"context"

	"dispatch/internal/core/domain/model/order"

	"gorm.io/gorm"
)

// GetBacklogStatsQueryHandler counts orders grouped by status.
type GetBacklogStatsQueryHandler struct {
	db *gorm.DB
}

// NewGetBacklogStatsQueryHandler creates a handler for backlog statistics.
// Requires a GORM database connection for query execution.
func NewGetBacklogStatsQueryHandler(db *gorm.DB) GetBacklogStatsQueryHandler {
	return GetBacklogStatsQueryHandler{db: db}
}

// Handle executes the statistics query. Statuses with no orders simply
// report zero.
func (h GetBacklogStatsQueryHandler) Handle(
	ctx context.Context,
	query GetBacklogStatsQuery,
) (GetBacklogStatsQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetBacklogStatsQueryResponse{}, err
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			status,
			COUNT(*)
		FROM orders
		GROUP BY status
	`).Rows()
	if err != nil {
		return GetBacklogStatsQueryResponse{}, err
	}
	defer rows.Close()

	var stats GetBacklogStatsQueryResponse

	for rows.Next() {
		var status string
		var count int64

		if err = rows.Scan(&status, &count); err != nil {
			return GetBacklogStatsQueryResponse{}, err
		}

		switch status {
		case order.Unassigned.String():
			stats.Unassigned = count
		case order.Taken.String():
			stats.Taken = count
		}
	}

	if err = rows.Err(); err != nil {
		return GetBacklogStatsQueryResponse{}, err
	}

	return stats, nil
}
