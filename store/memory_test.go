package store_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/latinrect/latinrect/rectangle"
	"github.com/latinrect/latinrect/store"
)

func TestMemoryLookupMiss(t *testing.T) {
	m := store.NewMemory()
	_, ok, err := m.Lookup(3, 5)
	require.NoError(t, err)
	require.False(t, ok)
}

func TestMemoryStoreThenLookup(t *testing.T) {
	m := store.NewMemory()
	want := rectangle.NewCountResult(3, 5, rectangle.Uint128{Lo: 384}, rectangle.Uint128{Lo: 960}, time.Second)
	require.NoError(t, m.Store(3, 5, want))

	got, ok, err := m.Lookup(3, 5)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, want.Positive, got.Positive)
	require.Equal(t, want.Negative, got.Negative)
}
