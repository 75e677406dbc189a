package queries

import (
	"errors"
	"strconv"

	"dispatch/internal/pkg/guard"
)

var (
	ErrListOrdersQueryIsNotConstructed = errors.New(
		"ListOrdersQuery must be created via NewListOrdersQuery constructor",
	)

	// ErrInvalidPage indicates the page parameter is missing, not an
	// integer, or less than 1.
	ErrInvalidPage = errors.New("invalid page")

	// ErrInvalidLimit indicates the limit parameter is present but not a
	// non-negative integer.
	ErrInvalidLimit = errors.New("invalid limit")
)

// ListOrdersQuery retrieves a page of orders for the dashboard listing.
//
// Pagination is page-based: page 1 is the newest slice of the listing,
// and limit caps the page size. A limit of zero means "no cap" and
// returns every order in a single page.
//
// Example:
//
//	query, err := NewListOrdersQuery("2", "10")
//	if err != nil {
//	    return err // ErrInvalidPage or ErrInvalidLimit
//	}
//
//	orders, err := handler.Handle(ctx, query)
type ListOrdersQuery struct {
	page  int
	limit int
	guard guard.ConstructorGuard
}

// NewListOrdersQuery creates a listing query from raw request parameters.
//
// page is required and must be an integer >= 1. limit is optional: an
// empty string means unlimited, otherwise it must be an integer >= 0
// (zero also means unlimited).
func NewListOrdersQuery(rawPage string, rawLimit string) (ListOrdersQuery, error) {
	page, err := strconv.Atoi(rawPage)
	if err != nil || page < 1 {
		return ListOrdersQuery{}, ErrInvalidPage
	}

	limit := 0
	if rawLimit != "" {
		limit, err = strconv.Atoi(rawLimit)
		if err != nil || limit < 0 {
			return ListOrdersQuery{}, ErrInvalidLimit
		}
	}

	return ListOrdersQuery{
		page:  page,
		limit: limit,
		guard: guard.NewConstructorGuard(),
	}, nil
}

// Page returns the 1-based page number.
func (q ListOrdersQuery) Page() int {
	return q.page
}

// Limit returns the page size cap; zero means no cap.
func (q ListOrdersQuery) Limit() int {
	return q.limit
}

// Offset returns the number of rows to skip for the requested page.
// With an unlimited page size the offset is always zero, so every page
// is the full listing.
func (q ListOrdersQuery) Offset() int {
	return (q.page - 1) * q.limit
}

// Validate ensures the query was created through the constructor.
// Returns ErrListOrdersQueryIsNotConstructed if validation fails.
func (q ListOrdersQuery) Validate() error {
	return q.guard.Validate(ErrListOrdersQueryIsNotConstructed)
}

// ListOrdersQueryResponse is one row of the order listing.
type ListOrdersQueryResponse struct {
	ID             int64
	DistanceMeters int
	Status         string
}
