package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileStoreRoundTrip(t *testing.T) {
	s, err := NewFileStore(t.TempDir())
	require.NoError(t, err)
	ctx := context.Background()

	_, err = s.Get(ctx, KeyCart)
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, s.Set(ctx, KeyCart, []byte(`{"items":[]}`)))
	got, err := s.Get(ctx, KeyCart)
	require.NoError(t, err)
	assert.Equal(t, []byte(`{"items":[]}`), got)

	// Overwrite replaces the whole value.
	require.NoError(t, s.Set(ctx, KeyCart, []byte(`{}`)))
	got, err = s.Get(ctx, KeyCart)
	require.NoError(t, err)
	assert.Equal(t, []byte(`{}`), got)
}

func TestFileStoreDelete(t *testing.T) {
	s, err := NewFileStore(t.TempDir())
	require.NoError(t, err)
	ctx := context.Background()

	require.NoError(t, s.Set(ctx, KeyTokenPair, []byte(`{"access":"a","refresh":"r"}`)))
	require.NoError(t, s.Delete(ctx, KeyTokenPair))
	_, err = s.Get(ctx, KeyTokenPair)
	assert.ErrorIs(t, err, ErrNotFound)

	// Deleting an absent key is not an error.
	require.NoError(t, s.Delete(ctx, KeyTokenPair))
}

func TestMemStoreIsolation(t *testing.T) {
	s := NewMemStore()
	ctx := context.Background()

	val := []byte(`{"a":1}`)
	require.NoError(t, s.Set(ctx, "k", val))
	val[1] = 'x'

	got, err := s.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, []byte(`{"a":1}`), got)
}
