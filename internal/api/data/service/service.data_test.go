package datasvc

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/malekyahyaouii/Orange/internal/common"
	"github.com/malekyahyaouii/Orange/internal/database"
)

func newTestService(t *testing.T) (*DataService, *database.CollectionRegistry) {
	t.Helper()
	reg := database.NewCollectionRegistry(database.NewMemoryBackend())
	svc, err := NewDataService(reg, ';')
	require.NoError(t, err)
	return svc, reg
}

func statusOf(err error) int {
	var appErr *common.Error
	if errors.As(err, &appErr) {
		return appErr.StatusCode
	}
	return 0
}

func TestCollectionNameFromFile(t *testing.T) {
	assert.Equal(t, "trafic_2024", CollectionNameFromFile("trafic_2024.csv"))
	assert.Equal(t, "trafic_2024", CollectionNameFromFile("C:\\uploads\\trafic_2024.csv"))
	assert.Equal(t, "data.v2", CollectionNameFromFile("/tmp/data.v2.csv"))
}

func TestImportCSV(t *testing.T) {
	svc, reg := newTestService(t)
	ctx := context.Background()

	input := "Pays;Opérateur;Zone;Mois;durée Minute;Difference;marge\n" +
		"TN;Orange TN;A;202401;10,5;-1,5;1\n" +
		"FR;SFR;B;202402;3;2;abc\n"
	res, err := svc.ImportCSV(ctx, "trafic_2024.csv", strings.NewReader(input))
	require.NoError(t, err)
	assert.Equal(t, &ImportResult{Collection: "trafic_2024", Inserted: 2}, res)

	names, err := svc.Collections(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"trafic_2024"}, names)

	coll, err := reg.Collection("trafic_2024")
	require.NoError(t, err)
	loss, err := coll.Count(ctx, database.Filter{Margin: database.IntPtr(1)})
	require.NoError(t, err)
	assert.Equal(t, int64(1), loss)
	profit, err := coll.Count(ctx, database.Filter{Margin: database.IntPtr(0)})
	require.NoError(t, err)
	assert.Equal(t, int64(1), profit)

	docs, err := svc.All(ctx, "trafic_2024")
	require.NoError(t, err)
	require.Len(t, docs, 2)
	assert.Equal(t, "10,5", docs[0][database.FieldDuration])
}

func TestImportCSV_MissingMarginDefaultsToZero(t *testing.T) {
	svc, reg := newTestService(t)
	ctx := context.Background()

	_, err := svc.ImportCSV(ctx, "t.csv", strings.NewReader("Pays;Zone\nTN;A\n"))
	require.NoError(t, err)

	coll, err := reg.Collection("t")
	require.NoError(t, err)
	n, err := coll.Count(ctx, database.Filter{Margin: database.IntPtr(0)})
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
}

func TestImportCSV_Rejects(t *testing.T) {
	svc, reg := newTestService(t)
	ctx := context.Background()

	_, err := svc.ImportCSV(ctx, "empty.csv", strings.NewReader(""))
	assert.Equal(t, common.StatusBadRequest, statusOf(err))

	_, err = svc.ImportCSV(ctx, "header_only.csv", strings.NewReader("Pays;Zone\n"))
	assert.Equal(t, common.StatusBadRequest, statusOf(err))

	_, err = svc.ImportCSV(ctx, "system.users.csv", strings.NewReader("Pays\nTN\n"))
	assert.Equal(t, common.StatusBadRequest, statusOf(err))

	// File bị từ chối không để lại handle collection nào
	assert.Empty(t, reg.Known())
	names, err := svc.Collections(ctx)
	require.NoError(t, err)
	assert.Empty(t, names)
}

func TestDeleteByMonthRange(t *testing.T) {
	svc, reg := newTestService(t)
	ctx := context.Background()

	coll, err := reg.Collection("trafic")
	require.NoError(t, err)
	var docs []database.Document
	for _, m := range []string{"202312", "202401", "202402", "202403", "202404"} {
		docs = append(docs, database.Document{database.FieldMonth: m, database.FieldCountry: "TN"})
	}
	_, err = coll.InsertMany(ctx, docs)
	require.NoError(t, err)

	deleted, err := svc.DeleteByMonthRange(ctx, "trafic", "202401", "202403")
	require.NoError(t, err)
	assert.Equal(t, int64(3), deleted)

	remaining, err := svc.All(ctx, "trafic")
	require.NoError(t, err)
	require.Len(t, remaining, 2)
	assert.Equal(t, "202312", remaining[0][database.FieldMonth])
	assert.Equal(t, "202404", remaining[1][database.FieldMonth])

	_, err = svc.DeleteByMonthRange(ctx, "trafic", "202401", "202403")
	assert.True(t, errors.Is(err, common.ErrNotFound))

	_, err = svc.DeleteByMonthRange(ctx, "trafic", "2024-1", "202403")
	assert.Equal(t, common.StatusBadRequest, statusOf(err))
	_, err = svc.DeleteByMonthRange(ctx, "trafic", "202404", "202312")
	assert.True(t, errors.Is(err, common.ErrNotFound))
}
