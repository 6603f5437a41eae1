package database

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryBackend_Contract(t *testing.T) {
	runStoreContract(t, NewMemoryBackend())
}

func TestMemoryBackend_ListNamesOnlyWrittenCollections(t *testing.T) {
	ctx := context.Background()
	b := NewMemoryBackend()
	b.Open("empty")
	_, err := b.Open("filled").InsertMany(ctx, []Document{{FieldCountry: "TN"}})
	require.NoError(t, err)

	names, err := b.ListNames(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"filled"}, names)
}

func TestMemoryBackend_OpenSharesData(t *testing.T) {
	ctx := context.Background()
	b := NewMemoryBackend()
	_, err := b.Open("shared").InsertMany(ctx, []Document{{FieldCountry: "TN"}})
	require.NoError(t, err)

	n, err := b.Open("shared").Count(ctx, Filter{})
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
}

func TestMemoryCollection_FindReturnsCopies(t *testing.T) {
	ctx := context.Background()
	coll := NewMemoryBackend().Open("copies")
	_, err := coll.InsertMany(ctx, []Document{{FieldCountry: "TN"}})
	require.NoError(t, err)

	docs, err := coll.Find(ctx, Filter{}, FindOptions{})
	require.NoError(t, err)
	docs[0][FieldCountry] = "FR"

	n, err := coll.Count(ctx, Filter{Country: "TN"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
}

func TestMemoryCollection_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := NewMemoryBackend().Open("c").Find(ctx, Filter{}, FindOptions{})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestStringValue(t *testing.T) {
	assert.Equal(t, "", StringValue(nil))
	assert.Equal(t, "TN", StringValue(" TN "))
	assert.Equal(t, "202401", StringValue(int32(202401)))
	assert.Equal(t, "202401", StringValue(202401.0))
	assert.Equal(t, "1.5", StringValue(1.5))
}
