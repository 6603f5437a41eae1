package database

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"unsafe"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/malekyahyaouii/Orange/internal/common"
)

func TestValidateCollectionName(t *testing.T) {
	valid := []string{"trafic_2024", "Mapping-Zones", "data.v2"}
	for _, name := range valid {
		assert.NoError(t, ValidateCollectionName(name), name)
	}

	invalid := []string{"", "   ", "a$b", "a\x00b", "system.users", strings.Repeat("x", maxCollectionNameLen+1)}
	for _, name := range invalid {
		err := ValidateCollectionName(name)
		var appErr *common.Error
		require.True(t, errors.As(err, &appErr), name)
		assert.Equal(t, common.StatusBadRequest, appErr.StatusCode)
	}
}

func TestCollectionRegistry_ConcurrentFirstAccessReturnsSameHandle(t *testing.T) {
	reg := NewCollectionRegistry(NewMemoryBackend())

	const workers = 32
	handles := make([]Collection, workers)
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			c, err := reg.Collection("trafic")
			assert.NoError(t, err)
			handles[i] = c
		}(i)
	}
	wg.Wait()

	for _, h := range handles[1:] {
		assert.Same(t, handles[0], h)
	}
	assert.Equal(t, []string{"trafic"}, reg.Known())
}

func TestCollectionRegistry_RejectsInvalidName(t *testing.T) {
	reg := NewCollectionRegistry(NewMemoryBackend())
	_, err := reg.Collection("$bad")
	require.Error(t, err)
	assert.Empty(t, reg.Known())
}

func TestCollectionRegistry_NamesAndIndexes(t *testing.T) {
	ctx := context.Background()
	reg := NewCollectionRegistry(NewMemoryBackend())

	c, err := reg.Collection("b")
	require.NoError(t, err)
	_, err = c.InsertMany(ctx, []Document{{FieldCountry: "TN"}})
	require.NoError(t, err)
	a, err := reg.Collection("a")
	require.NoError(t, err)
	_, err = a.InsertMany(ctx, []Document{{FieldCountry: "FR"}})
	require.NoError(t, err)

	names, err := reg.Names(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, names)

	assert.NoError(t, reg.EnsureIndexes(ctx, "a"))
	assert.NoError(t, reg.Ping(ctx))
}

func TestCollection_NameSurvivesBufferReuse(t *testing.T) {
	reg := NewCollectionRegistry(NewMemoryBackend())
	ctx := context.Background()

	// Tên trỏ vào buffer dùng lại giữa các request, giống string từ c.Params khi không immutable
	buf := []byte("trafic_a")
	name := unsafe.String(&buf[0], len(buf))
	coll, err := reg.Collection(name)
	require.NoError(t, err)
	_, err = coll.InsertMany(ctx, []Document{{FieldCountry: "TN"}})
	require.NoError(t, err)

	copy(buf, "zzzzzzzz")

	assert.Equal(t, []string{"trafic_a"}, reg.Known())
	assert.Equal(t, "trafic_a", coll.Name())
	names, err := reg.Names(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"trafic_a"}, names)

	again, err := reg.Collection("trafic_a")
	require.NoError(t, err)
	assert.Same(t, coll, again)
}
