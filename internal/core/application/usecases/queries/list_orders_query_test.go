package queries_test

import (
	"testing"

	"dispatch/internal/core/application/usecases/queries"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewListOrdersQuery_Valid(t *testing.T) {
	query, err := queries.NewListOrdersQuery("2", "10")
	require.NoError(t, err)
	require.NoError(t, query.Validate())
	assert.Equal(t, 2, query.Page())
	assert.Equal(t, 10, query.Limit())
	assert.Equal(t, 10, query.Offset())
}

func TestNewListOrdersQuery_OmittedLimitMeansUnlimited(t *testing.T) {
	query, err := queries.NewListOrdersQuery("3", "")
	require.NoError(t, err)
	assert.Equal(t, 0, query.Limit())
	assert.Equal(t, 0, query.Offset())
}

func TestNewListOrdersQuery_ZeroLimitMeansUnlimited(t *testing.T) {
	query, err := queries.NewListOrdersQuery("1", "0")
	require.NoError(t, err)
	assert.Equal(t, 0, query.Limit())
}

func TestNewListOrdersQuery_InvalidPage(t *testing.T) {
	for _, rawPage := range []string{"", "0", "-1", "abc", "1.5"} {
		t.Run(rawPage, func(t *testing.T) {
			_, err := queries.NewListOrdersQuery(rawPage, "10")
			require.ErrorIs(t, err, queries.ErrInvalidPage)
		})
	}
}

func TestNewListOrdersQuery_InvalidLimit(t *testing.T) {
	for _, rawLimit := range []string{"-1", "abc", "2.5"} {
		t.Run(rawLimit, func(t *testing.T) {
			_, err := queries.NewListOrdersQuery("1", rawLimit)
			require.ErrorIs(t, err, queries.ErrInvalidLimit)
		})
	}
}

func TestListOrdersQuery_NotConstructedViaConstructor(t *testing.T) {
	query := queries.ListOrdersQuery{}
	err := query.Validate()
	require.Error(t, err)
	assert.ErrorIs(t, err, queries.ErrListOrdersQueryIsNotConstructed)
}

func TestNewGetBacklogStatsQuery_Valid(t *testing.T) {
	query := queries.NewGetBacklogStatsQuery()
	require.NoError(t, query.Validate())
}

func TestGetBacklogStatsQuery_NotConstructedViaConstructor(t *testing.T) {
	query := queries.GetBacklogStatsQuery{}
	err := query.Validate()
	require.Error(t, err)
	assert.ErrorIs(t, err, queries.ErrGetBacklogStatsQueryIsNotConstructed)
}
