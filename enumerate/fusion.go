package enumerate

import (
	"context"

	"github.com/latinrect/latinrect/constraint"
	"github.com/latinrect/latinrect/derangement"
	"github.com/latinrect/latinrect/rectangle"
)

// FusionResult pairs the (r, n) and (r+1, n) results produced by a
// single completion-fusion pass (spec.md §4.7).
type FusionResult struct {
	Base       Result // (r, n)
	Completion Result // (r+1, n)
}

// BacktrackWithCompletion counts (r, n) and (r+1, n) rectangles in one
// pass, valid only when r = n-1: every normalized (n-1, n) rectangle
// extends to exactly one normalized (n, n) rectangle, since each
// column's missing value is forced. Rather than re-enumerating (n, n)
// from scratch, every time the base enumeration places its last row it
// also reads off the single derangement index whose compatibility bit
// survives — the forced completion row — and folds its sign into the
// completion tally.
func BacktrackWithCompletion(ctx context.Context, h *derangement.CacheHandle, r int, fc FirstColumn, progress ProgressFunc) (FusionResult, error) {
	n := h.N()
	if r != n-1 {
		return FusionResult{}, ErrInvalidInput
	}
	if fc != nil && len(fc) != r-1 {
		return FusionResult{}, ErrInvalidInput
	}

	depth := r - 1
	count := h.Count()

	s := &fusionState{
		ctx:      ctx,
		h:        h,
		n:        n,
		depth:    depth,
		fc:       fc,
		progress: progress,
		// masks needs depth+1 slots for the base walk (masks[0..depth-1])
		// plus one more (masks[depth]) to hold the forced completion mask.
		masks: make([]*constraint.Bitset, depth+1),
		union: make([]*constraint.Bitset, depth+1),
		idx:   make([]int, depth+1),
		sign:  make([]int8, depth+1),
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
			return FusionResult{}, nil
		}
		for _, i := range prefixIdx {
			s.masks[0].Set(int(i))
		}
	} else {
		s.masks[0] = constraint.NewBitsetAllOnes(count)
	}

	if err := s.rec(1); err != nil {
		return FusionResult{}, err
	}

	return FusionResult{
		Base: Result{
			Positive:          s.pos,
			Negative:          s.neg,
			RectanglesScanned: s.scanned,
			Cancelled:         s.cancelled,
		},
		Completion: Result{
			Positive:          s.posCompletion,
			Negative:          s.negCompletion,
			RectanglesScanned: s.scanned,
			Cancelled:         s.cancelled,
		},
	}, nil
}

type fusionState struct {
	ctx      context.Context
	h        *derangement.CacheHandle
	n, depth int
	fc       FirstColumn
	progress ProgressFunc

	masks []*constraint.Bitset
	union []*constraint.Bitset
	idx   []int
	sign  []int8

	pos, neg                   rectangle.Uint128
	posCompletion, negCompletion rectangle.Uint128
	scanned                    int
	cancelled                  bool
}

func (s *fusionState) rec(k int) error {
	if s.cancelled {
		return nil
	}

	avail := s.masks[k-1]
	var recErr error
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
		if s.fc != nil {
			// Row k+1's column-0 value: fc[k], or for the completion row
			// the one value of 2..n that fc leaves out.
			first := s.n*(s.n+1)/2 - 1
			for _, v := range s.fc {
				first -= int(v)
			}
			if k < len(s.fc) {
				first = int(s.fc[k])
			}
			next.CopyFrom(s.h.ConflictMask(0, first))
		}
		next.AndNotInPlace(union)

		if k < s.depth {
			if err := s.rec(k + 1); err != nil {
				recErr = err
				return false
			}
			return !s.cancelled
		}

		// k == s.depth: the base (r, n) rectangle is complete; `next`
		// (masks[depth]) is the forced completion row's candidate set,
		// which the Latin-rectangle completion theorem guarantees has
		// exactly one surviving bit.
		s.scanned++
		if s.sign[k] > 0 {
			s.pos = s.pos.AddOne()
		} else {
			s.neg = s.neg.AddOne()
		}

		completionIdx, ok := next.NextSet(0)
		if !ok {
			recErr = ErrInternal
			return false
		}
		if second, ok := next.NextSet(completionIdx + 1); ok {
			_ = second
			recErr = ErrInternal
			return false
		}
		_, completionSign := s.h.Derangement(completionIdx)
		finalSign := s.sign[k] * completionSign
		if finalSign > 0 {
			s.posCompletion = s.posCompletion.AddOne()
		} else {
			s.negCompletion = s.negCompletion.AddOne()
		}

		if s.progress != nil {
			s.progress(s.scanned, s.pos, s.neg)
		}
		return true
	})
	return recErr
}
