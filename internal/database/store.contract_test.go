package database

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/malekyahyaouii/Orange/internal/common"
)

// runStoreContract kiểm tra ngữ nghĩa Filter/Update/Delete chung cho mọi Backend
func runStoreContract(t *testing.T, backend Backend) {
	t.Helper()
	ctx := context.Background()
	coll := backend.Open("contract")

	n, err := coll.InsertMany(ctx, []Document{
		{FieldCountry: "TN", FieldOperator: "Orange", FieldZone: "Zone A", FieldMonth: "202401", FieldMargin: 1, FieldDuration: "1,5"},
		{FieldCountry: "TN", FieldOperatorAlt: "Orange", FieldZone: "zone a", FieldMonth: 202402, FieldMargin: "1"},
		{FieldCountry: "FR", FieldOperator: "SFR", FieldZone: "Zone (B)", FieldMonth: "202403", FieldMargin: 0},
	})
	require.NoError(t, err)
	require.Equal(t, 3, n)

	count := func(f Filter) int64 {
		c, err := coll.Count(ctx, f)
		require.NoError(t, err)
		return c
	}

	assert.Equal(t, int64(3), count(Filter{}))
	assert.Equal(t, int64(2), count(Filter{Operator: "Orange"}), "operator synonyms")
	assert.Equal(t, int64(2), count(Filter{ZoneFold: "ZONE A"}), "case-insensitive zone")
	assert.Equal(t, int64(1), count(Filter{ZoneFold: "Zone (B)"}), "zone pattern is quoted")
	assert.Equal(t, int64(0), count(Filter{ZoneFold: "Zone"}), "zone match is anchored")
	assert.Equal(t, int64(1), count(Filter{Zone: "Zone A"}))
	assert.Equal(t, int64(2), count(Filter{Margin: IntPtr(1)}), "margin stored as int or string")
	assert.Equal(t, int64(1), count(Filter{Margin: IntPtr(0)}))
	assert.Equal(t, int64(2), count(Filter{MonthFrom: "202401", MonthTo: "202402"}), "month stored as string or number")
	assert.Equal(t, int64(2), count(Filter{MonthFrom: "202402", MonthTo: "202403"}))
	assert.Equal(t, int64(1), count(Filter{Country: "TN", Margin: IntPtr(1), MonthTo: "202401"}))

	docs, err := coll.Find(ctx, Filter{Country: "TN"}, FindOptions{Fields: []string{FieldZone}})
	require.NoError(t, err)
	require.Len(t, docs, 2)
	for _, d := range docs {
		id, ok := d[FieldID].(string)
		assert.True(t, ok && id != "", "_id is a hex string")
		assert.Contains(t, d, FieldZone)
		assert.NotContains(t, d, FieldCountry)
	}

	limited, err := coll.Find(ctx, Filter{}, FindOptions{Limit: 1})
	require.NoError(t, err)
	assert.Len(t, limited, 1)

	_, err = coll.FindOne(ctx, Filter{Country: "IT"}, FindOptions{})
	assert.True(t, errors.Is(err, common.ErrNotFound))

	zones, err := DistinctStrings(ctx, coll, []string{FieldZone}, Filter{})
	require.NoError(t, err)
	assert.Equal(t, []string{"Zone (B)", "Zone A", "zone a"}, zones)

	operators, err := DistinctStrings(ctx, coll, []string{FieldOperator, FieldOperatorAlt}, Filter{Country: "TN"})
	require.NoError(t, err)
	assert.Equal(t, []string{"Orange"}, operators)

	res, err := coll.UpdateMany(ctx, Filter{Country: "TN"}, Document{FieldZone: "Z"})
	require.NoError(t, err)
	assert.Equal(t, UpdateResult{Matched: 2, Modified: 2}, res)
	res, err = coll.UpdateMany(ctx, Filter{Country: "TN"}, Document{FieldZone: "Z"})
	require.NoError(t, err)
	assert.Equal(t, UpdateResult{Matched: 2, Modified: 0}, res)

	deleted, err := coll.DeleteMany(ctx, Filter{Country: "FR"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), deleted)
	assert.Equal(t, int64(2), count(Filter{}))

	names, err := backend.ListNames(ctx)
	require.NoError(t, err)
	assert.Contains(t, names, "contract")
	require.NoError(t, backend.Ping(ctx))
}
