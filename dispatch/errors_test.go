package dispatch_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/latinrect/latinrect/dispatch"
)

func TestFailureErrorIncludesKindAndMessage(t *testing.T) {
	err := &dispatch.Failure{Kind: dispatch.TooLarge, Message: "n=16 exceeds cap"}
	require.Contains(t, err.Error(), "TooLarge")
	require.Contains(t, err.Error(), "n=16 exceeds cap")
}

func TestFailureKindString(t *testing.T) {
	cases := map[dispatch.FailureKind]string{
		dispatch.InvalidInput: "InvalidInput",
		dispatch.CacheCorrupt: "CacheCorrupt",
		dispatch.CacheIO:      "CacheIO",
		dispatch.TooLarge:     "TooLarge",
		dispatch.Cancelled:    "Cancelled",
		dispatch.Internal:     "Internal",
	}
	for kind, want := range cases {
		require.Equal(t, want, kind.String())
	}
}
