package parallel_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/latinrect/latinrect/enumerate"
	"github.com/latinrect/latinrect/parallel"
)

func TestPlanDistributesRoundRobin(t *testing.T) {
	units := enumerate.Combinations(4, 8) // C(7,3) = 35 choices
	plan := parallel.NewPlan(units, 4)
	require.Equal(t, 4, plan.Workers())

	total := 0
	for _, size := range plan.Sizes() {
		total += size
	}
	require.Equal(t, len(units), total)
	require.True(t, plan.Balanced())
}

func TestPlanClampsWorkersToUnitCount(t *testing.T) {
	units := enumerate.Combinations(3, 4) // C(3,2) = 3 choices
	plan := parallel.NewPlan(units, 16)
	require.Equal(t, 3, plan.Workers())
}

func TestPlanHandlesSingleWorker(t *testing.T) {
	units := enumerate.Combinations(3, 4)
	plan := parallel.NewPlan(units, 1)
	require.Equal(t, 1, plan.Workers())
	require.Equal(t, len(units), plan.Sizes()[0])
}
