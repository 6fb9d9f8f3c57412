package parallel_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/latinrect/latinrect/derangement"
	"github.com/latinrect/latinrect/enumerate"
	"github.com/latinrect/latinrect/parallel"
)

func TestRunMatchesSingleThreadedReduce(t *testing.T) {
	h, err := derangement.Build(5)
	require.NoError(t, err)

	reduced, err := enumerate.Reduce(context.Background(), h, 4, nil)
	require.NoError(t, err)

	for _, workers := range []int{1, 2, 4, 8} {
		res, err := parallel.Run(context.Background(), h, 4, parallel.Options{Workers: workers})
		require.NoError(t, err)
		require.False(t, res.Cancelled)
		require.Equal(t, reduced.Positive, res.Positive, "workers=%d", workers)
		require.Equal(t, reduced.Negative, res.Negative, "workers=%d", workers)
	}
}

func TestRunRejectsRTwo(t *testing.T) {
	h, err := derangement.Build(4)
	require.NoError(t, err)

	_, err = parallel.Run(context.Background(), h, 2, parallel.Options{Workers: 2})
	require.ErrorIs(t, err, enumerate.ErrInvalidInput)
}

func TestRunHonorsCancellation(t *testing.T) {
	h, err := derangement.Build(6)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	res, err := parallel.Run(ctx, h, 4, parallel.Options{Workers: 4})
	require.NoError(t, err)
	require.True(t, res.Cancelled)
	require.Equal(t, res.UnitsTotal, len(enumerate.Combinations(4, 6)))
}
