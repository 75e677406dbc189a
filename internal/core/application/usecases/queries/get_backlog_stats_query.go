package queries

import (
	"errors"

	"dispatch/internal/pkg/guard"
)

var (
	ErrGetBacklogStatsQueryIsNotConstructed = errors.New(
		"GetBacklogStatsQuery must be created via NewGetBacklogStatsQuery constructor",
	)
)

// GetBacklogStatsQuery counts orders per status. The backlog monitor job
// uses it to report how many orders still await a courier.
type GetBacklogStatsQuery struct {
	guard guard.ConstructorGuard
}

// NewGetBacklogStatsQuery creates a query for backlog statistics.
// This is a parameterless query counting every order by status.
func NewGetBacklogStatsQuery() GetBacklogStatsQuery {
	return GetBacklogStatsQuery{guard: guard.NewConstructorGuard()}
}

// Validate ensures the query was created through the constructor.
// Returns ErrGetBacklogStatsQueryIsNotConstructed if validation fails.
func (q GetBacklogStatsQuery) Validate() error {
	return q.guard.Validate(ErrGetBacklogStatsQueryIsNotConstructed)
}

// GetBacklogStatsQueryResponse holds the per-status order counts.
type GetBacklogStatsQueryResponse struct {
	Unassigned int64
	Taken      int64
}
