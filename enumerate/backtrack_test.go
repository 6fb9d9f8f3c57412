package enumerate_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/latinrect/latinrect/derangement"
	"github.com/latinrect/latinrect/enumerate"
	"github.com/latinrect/latinrect/rectangle"
)

func TestBacktrackKnownScenarios(t *testing.T) {
	// E3: (3, 4) -> positive 12, negative 12.
	h4, err := derangement.Build(4)
	require.NoError(t, err)

	res, err := enumerate.Backtrack(context.Background(), h4, 3, nil, nil)
	require.NoError(t, err)
	require.False(t, res.Cancelled)
	require.Equal(t, rectangle.Uint128{Lo: 12}, res.Positive)
	require.Equal(t, rectangle.Uint128{Lo: 12}, res.Negative)

	// E4: (4, 4) -> positive 24, negative 0.
	res, err = enumerate.Backtrack(context.Background(), h4, 4, nil, nil)
	require.NoError(t, err)
	require.Equal(t, rectangle.Uint128{Lo: 24}, res.Positive)
	require.Equal(t, rectangle.Uint128{Lo: 0}, res.Negative)
}

func TestBacktrackMatchesFastPathAtRTwo(t *testing.T) {
	for n := 2; n <= 6; n++ {
		h, err := derangement.Build(n)
		require.NoError(t, err)

		btRes, err := enumerate.Backtrack(context.Background(), h, 2, nil, nil)
		require.NoError(t, err)

		fpPos, fpNeg, err := enumerate.FastPath(n)
		require.NoError(t, err)

		require.Equal(t, fpPos, btRes.Positive, "n=%d", n)
		require.Equal(t, fpNeg, btRes.Negative, "n=%d", n)
	}
}

func TestBacktrackRejectsBadR(t *testing.T) {
	h, err := derangement.Build(4)
	require.NoError(t, err)

	_, err = enumerate.Backtrack(context.Background(), h, 1, nil, nil)
	require.ErrorIs(t, err, enumerate.ErrInvalidInput)

	_, err = enumerate.Backtrack(context.Background(), h, 5, nil, nil)
	require.ErrorIs(t, err, enumerate.ErrInvalidInput)
}

func TestBacktrackHonorsCancellation(t *testing.T) {
	h, err := derangement.Build(6)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	res, err := enumerate.Backtrack(ctx, h, 4, nil, nil)
	require.NoError(t, err)
	require.True(t, res.Cancelled)
	require.Equal(t, 0, res.RectanglesScanned)
}

func TestBacktrackProgressCallback(t *testing.T) {
	h, err := derangement.Build(4)
	require.NoError(t, err)

	var calls int
	res, err := enumerate.Backtrack(context.Background(), h, 3, nil, func(scanned int, pos, neg rectangle.Uint128) {
		calls++
	})
	require.NoError(t, err)
	require.Equal(t, res.RectanglesScanned, calls)
	require.Greater(t, calls, 0)
}

func TestBacktrackWithFirstColumnMatchesRestriction(t *testing.T) {
	h, err := derangement.Build(4)
	require.NoError(t, err)

	res, err := enumerate.Backtrack(context.Background(), h, 3, enumerate.FirstColumn{3, 4}, nil)
	require.NoError(t, err)
	// Sanity: the constrained count must not exceed the unconstrained one.
	full, err := enumerate.Backtrack(context.Background(), h, 3, nil, nil)
	require.NoError(t, err)
	require.LessOrEqual(t, res.Positive.Lo+res.Negative.Lo, full.Positive.Lo+full.Negative.Lo)
}
