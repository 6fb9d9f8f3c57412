package store_test

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/latinrect/latinrect/rectangle"
	"github.com/latinrect/latinrect/store"
)

func TestYAMLFileRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "results.yaml")
	y := store.NewYAMLFile(path)

	_, ok, err := y.Lookup(4, 8)
	require.NoError(t, err)
	require.False(t, ok)

	want := rectangle.NewCountResult(4, 8, rectangle.Uint128{Lo: 44196405120}, rectangle.Uint128{Lo: 44194590720}, 3*time.Second)
	require.NoError(t, y.Store(4, 8, want))

	got, ok, err := y.Lookup(4, 8)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, want.Positive.String(), got.Positive.String())
	require.Equal(t, want.Negative.String(), got.Negative.String())
	require.Equal(t, want.Difference.String(), got.Difference.String())
	require.Equal(t, want.ComputationTime, got.ComputationTime)
}

func TestYAMLFilePersistsAcrossInstances(t *testing.T) {
	path := filepath.Join(t.TempDir(), "results.yaml")

	first := store.NewYAMLFile(path)
	require.NoError(t, first.Store(2, 4, rectangle.NewCountResult(2, 4, rectangle.Uint128{Lo: 3}, rectangle.Uint128{Lo: 6}, 0)))

	second := store.NewYAMLFile(path)
	got, ok, err := second.Lookup(2, 4)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "3", got.Positive.String())
	require.Equal(t, "6", got.Negative.String())
}
