package main

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/danieljmnewton/bank-app-final/internal/history"
	"github.com/danieljmnewton/bank-app-final/internal/model"
)

func TestBuildHistoryQuery_Defaults(t *testing.T) {
	query, err := buildHistoryQuery(historyFlags{page: 1}, 25)
	require.NoError(t, err)

	assert.Equal(t, history.SortTimestamp, query.SortBy)
	assert.True(t, query.SortDesc)
	assert.Equal(t, 25, query.PageSize)
	assert.Nil(t, query.From)
	assert.Nil(t, query.Kind)
}

func TestBuildHistoryQuery_AscWithoutSortKey(t *testing.T) {
	// --asc alone flips the default timestamp order.
	query, err := buildHistoryQuery(historyFlags{asc: true, page: 1}, 10)
	require.NoError(t, err)

	assert.Equal(t, history.SortTimestamp, query.SortBy)
	assert.False(t, query.SortDesc)
}

func TestBuildHistoryQuery_SortAndDirection(t *testing.T) {
	query, err := buildHistoryQuery(historyFlags{sortBy: "amount", page: 1}, 10)
	require.NoError(t, err)
	assert.Equal(t, history.SortAmount, query.SortBy)
	assert.True(t, query.SortDesc)

	query, err = buildHistoryQuery(historyFlags{sortBy: "amount", asc: true, page: 1}, 10)
	require.NoError(t, err)
	assert.False(t, query.SortDesc)
}

func TestBuildHistoryQuery_FiltersAndPaging(t *testing.T) {
	query, err := buildHistoryQuery(historyFlags{
		from:     "2024-03-01",
		to:       "2024-03-31",
		typeName: "withdrawal",
		category: "food",
		search:   "rent share",
		page:     2,
		pageSize: 5,
	}, 10)
	require.NoError(t, err)

	require.NotNil(t, query.From)
	assert.Equal(t, time.Date(2024, 3, 1, 0, 0, 0, 0, time.Local), *query.From)
	require.NotNil(t, query.To)
	require.NotNil(t, query.Kind)
	assert.Equal(t, model.TransactionWithdrawal, *query.Kind)
	require.NotNil(t, query.Category)
	assert.Equal(t, model.CategoryFood, *query.Category)
	assert.Equal(t, "rent share", query.Search)
	assert.Equal(t, 2, query.Page)
	assert.Equal(t, 5, query.PageSize)
}

func TestBuildHistoryQuery_RejectsBadInput(t *testing.T) {
	_, err := buildHistoryQuery(historyFlags{from: "not-a-date", page: 1}, 10)
	require.Error(t, err)

	_, err = buildHistoryQuery(historyFlags{typeName: "loan", page: 1}, 10)
	require.Error(t, err)

	_, err = buildHistoryQuery(historyFlags{category: "candy", page: 1}, 10)
	require.Error(t, err)
}
