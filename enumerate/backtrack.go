package enumerate

import (
	"context"

	"github.com/latinrect/latinrect/constraint"
	"github.com/latinrect/latinrect/derangement"
	"github.com/latinrect/latinrect/rectangle"
)

// FirstColumn fixes the column-0 value used for rows 1..r-1 of the
// rectangle being counted: FirstColumn[k-1] is the required value for
// row k. A nil FirstColumn leaves rows unconstrained beyond what the
// derangement cache already guarantees (no fixed point against the
// identity row 0).
type FirstColumn []uint8

// ProgressFunc is invoked after every rectangle a worker finishes
// scoring, with the running per-worker tally. Implementations must not
// block; the caller treats a nil ProgressFunc as "no reporting".
type ProgressFunc func(rectanglesScanned int, positive, negative rectangle.Uint128)

// Result is the outcome of one Backtrack call.
type Result struct {
	Positive, Negative rectangle.Uint128
	RectanglesScanned  int
	Cancelled          bool
}

// Backtrack counts normalized (r, n) Latin rectangles by sign via
// row-by-row backtracking over derangement indices (spec.md §4.6): at
// each row it intersects the running compatibility mask with the
// conflict masks of the row just placed, and walks the surviving
// derangement indices in ascending (lexicographic) order.
//
// h must have been built for exactly this n. fc, if non-nil, must have
// length r-1 and fixes the first-column value of every row it
// enumerates (used by the first-column reducer, C8); Backtrack applies
// it once via the cache's single-prefix index for row 1 and via
// per-row conflict masks for every row after that, rather than
// filtering candidates in the hot loop.
//
// Cancellation is checked once per top-level (row-1) candidate, per
// spec.md §5's "checked between row-1 choices" contract; on
// cancellation Result.Cancelled is true and the counts are the raw,
// unscaled partial totals accumulated so far.
func Backtrack(ctx context.Context, h *derangement.CacheHandle, r int, fc FirstColumn, progress ProgressFunc) (Result, error) {
	n := h.N()
	if r < 2 || r > n {
		return Result{}, ErrInvalidInput
	}
	if fc != nil && len(fc) != r-1 {
		return Result{}, ErrInvalidInput
	}

	depth := r - 1
	count := h.Count()

	s := &state{
		ctx:      ctx,
		h:        h,
		n:        n,
		depth:    depth,
		fc:       fc,
		progress: progress,
		masks:    make([]*constraint.Bitset, depth+1),
		union:    make([]*constraint.Bitset, depth),
		idx:      make([]int, depth+1),
		sign:     make([]int8, depth+1),
	}
	for i := range s.masks {
		s.masks[i] = constraint.NewBitset(count)
	}
	for i := range s.union {
		s.union[i] = constraint.NewBitset(count)
	}
	s.sign[0] = 1

	if fc != nil {
		prefixIdx, ok := h.CompatibleWith(fc[:1])
		if !ok {
			return Result{Positive: s.pos, Negative: s.neg}, nil
		}
		for _, i := range prefixIdx {
			s.masks[0].Set(int(i))
		}
	} else {
		s.masks[0] = constraint.NewBitsetAllOnes(count)
	}

	s.rec(1)

	return Result{
		Positive:          s.pos,
		Negative:          s.neg,
		RectanglesScanned: s.scanned,
		Cancelled:         s.cancelled,
	}, nil
}

type state struct {
	ctx      context.Context
	h        *derangement.CacheHandle
	n, depth int
	fc       FirstColumn
	progress ProgressFunc

	masks []*constraint.Bitset // masks[k-1] is valid_k, the set to choose row k from
	union []*constraint.Bitset // union[k-1] is the combined conflict mask of rows 1..k
	idx   []int                // idx[1..depth]: chosen derangement index per row
	sign  []int8               // sign[0..depth]: running sign product, sign[0] = 1

	pos, neg  rectangle.Uint128
	scanned   int
	cancelled bool
}

// rec places row k (1-indexed, 1..depth) by walking masks[k-1] in
// ascending order.
func (s *state) rec(k int) {
	if s.cancelled {
		return
	}

	avail := s.masks[k-1]
	avail.Each(func(i int) bool {
		if k == 1 {
			select {
			case <-s.ctx.Done():
				s.cancelled = true
				return false
			default:
			}
		}

		row, rowSign := s.h.Derangement(i)
		s.idx[k] = i
		s.sign[k] = s.sign[k-1] * rowSign

		if k == s.depth {
			s.scanned++
			if s.sign[k] > 0 {
				s.pos = s.pos.AddOne()
			} else {
				s.neg = s.neg.AddOne()
			}
			if s.progress != nil {
				s.progress(s.scanned, s.pos, s.neg)
			}
			return true
		}

		next := s.masks[k]
		next.CopyFrom(avail)

		union := s.union[k-1]
		union.Zero()
		if k > 1 {
			union.OrInPlace(s.union[k-2])
		}
		for c, v := range row {
			union.OrInPlace(s.h.ConflictMask(c, int(v)))
		}
		// avail is narrowed to row k's first-column value, so a fixed
		// first column draws row k+1 from its own column-0 mask instead.
		if s.fc != nil && k < len(s.fc) {
			next.CopyFrom(s.h.ConflictMask(0, int(s.fc[k])))
		}
		next.AndNotInPlace(union)

		s.rec(k + 1)
		return !s.cancelled
	})
}
