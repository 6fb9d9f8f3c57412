package permutation_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/latinrect/latinrect/permutation"
)

func TestDerangementCount(t *testing.T) {
	want := []uint64{1, 0, 1, 2, 9, 44, 265, 1854, 14833, 133496, 1334961, 14684570, 176214841}
	for n, w := range want {
		require.Equal(t, w, permutation.DerangementCount(n), "n=%d", n)
	}
}
