package parallel

import "github.com/latinrect/latinrect/enumerate"

// Plan assigns a list of first-column work units to a fixed number of
// workers by static round-robin over the index-sorted list (spec.md
// §4.9: "static, round-robin on the index-sorted list of work units").
type Plan struct {
	buckets [][]enumerate.FirstColumnChoice
}

// NewPlan builds a Plan distributing units across workers workers.
// workers is clamped to [1, len(units)] so a bucket is never empty
// when there is at least one unit.
func NewPlan(units []enumerate.FirstColumnChoice, workers int) *Plan {
	if workers < 1 {
		workers = 1
	}
	if workers > len(units) && len(units) > 0 {
		workers = len(units)
	}

	p := &Plan{buckets: make([][]enumerate.FirstColumnChoice, workers)}
	for i, u := range units {
		b := i % workers
		p.buckets[b] = append(p.buckets[b], u)
	}
	return p
}

// Workers returns the number of buckets in the plan.
func (p *Plan) Workers() int { return len(p.buckets) }

// Bucket returns the work units assigned to worker w.
func (p *Plan) Bucket(w int) []enumerate.FirstColumnChoice { return p.buckets[w] }

// Sizes returns the number of work units assigned to each worker, in
// worker order — the "get_distribution_stats" style report this
// module's original work distributor exposed, supplemented here since
// it is cheap and useful for the progress sink / CLI to surface.
func (p *Plan) Sizes() []int {
	sizes := make([]int, len(p.buckets))
	for i, b := range p.buckets {
		sizes[i] = len(b)
	}
	return sizes
}

// Balanced reports whether every worker's bucket size differs from
// every other's by at most one unit — the best a round-robin
// distribution of unequal-cost-but-comparable-size units can promise,
// per spec.md §4.9 ("work units for a given r are of comparable size
// in practice").
func (p *Plan) Balanced() bool {
	min, max := -1, -1
	for _, size := range p.Sizes() {
		if min == -1 || size < min {
			min = size
		}
		if size > max {
			max = size
		}
	}
	return max-min <= 1
}
