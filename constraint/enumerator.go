package constraint

// Enumerator walks every permutation of {1,...,n} compatible with a
// Columns constraint state in strictly ascending lexicographic order,
// as a restartable stateful iterator (spec.md §9: "restartable
// stateful iterators with explicit internal state" in place of a
// generator/coroutine). Call Next repeatedly until it returns
// (nil, false).
//
// Implementation: iterative backtracking. At each position the
// enumerator tries candidate values in ascending order, skipping
// forbidden or already-used ones; when a full permutation is found it
// is returned and the search state is left ready to resume from the
// next candidate at the last position, so the walk never revisits or
// skips a permutation and never allocates during the search itself
// (only the returned copy allocates).
type Enumerator struct {
	n         int
	cols      *Columns
	perm      []uint8
	usedMask  []uint64 // usedMask[i] = bitmask of values used in perm[0:i]
	cursor    []uint8  // next candidate value to try at position i
	pos       int
	exhausted bool
}

// NewEnumerator returns an Enumerator over permutations of
// {1,...,cols.N()} consistent with cols. cols is read, never mutated;
// the caller retains ownership and may safely mutate it after the
// Enumerator is constructed only if a fresh Enumerator is then built
// (an in-flight Enumerator assumes cols is stable for its lifetime).
func NewEnumerator(cols *Columns) *Enumerator {
	n := cols.N()
	e := &Enumerator{
		n:        n,
		cols:     cols,
		perm:     make([]uint8, n),
		usedMask: make([]uint64, n+1),
		cursor:   make([]uint8, n+1),
	}
	for i := range e.cursor {
		e.cursor[i] = 1
	}
	return e
}

// Next returns the next permutation in lexicographic order, or
// (nil, false) once the walk is exhausted. The returned slice is a
// fresh copy safe for the caller to retain.
func (e *Enumerator) Next() ([]uint8, bool) {
	if e.exhausted {
		return nil, false
	}

	for {
		if e.pos == e.n {
			result := append([]uint8(nil), e.perm...)
			e.pos--
			e.cursor[e.pos] = e.perm[e.pos] + 1
			return result, true
		}

		forbidden := e.cols.ForbiddenMask(e.pos)
		used := e.usedMask[e.pos]
		placed := false
		for v := int(e.cursor[e.pos]); v <= e.n; v++ {
			bit := uint64(1) << uint(v-1)
			if forbidden&bit == 0 && used&bit == 0 {
				e.perm[e.pos] = uint8(v)
				e.usedMask[e.pos+1] = used | bit
				e.cursor[e.pos] = uint8(v)
				e.pos++
				e.cursor[e.pos] = 1
				placed = true
				break
			}
		}
		if !placed {
			if e.pos == 0 {
				e.exhausted = true
				return nil, false
			}
			e.pos--
			e.cursor[e.pos] = e.perm[e.pos] + 1
		}
	}
}

// Reset rewinds the Enumerator to the beginning of its walk, as if
// freshly constructed, without reallocating its internal buffers.
func (e *Enumerator) Reset() {
	e.pos = 0
	e.exhausted = false
	for i := range e.cursor {
		e.cursor[i] = 1
	}
	for i := range e.usedMask {
		e.usedMask[i] = 0
	}
}
