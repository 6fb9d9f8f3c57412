package derangement

import (
	"github.com/latinrect/latinrect/constraint"
	"github.com/latinrect/latinrect/permutation"
)

// Entry is one derangement together with its permutation sign relative
// to the identity — the two facts spec.md §4.2 requires the generator
// to attach to every row it yields.
type Entry struct {
	Row  []uint8 // len n, values 1..n, Row[i] != i+1 for every i
	Sign int8    // +1 or -1
}

// Generate returns every derangement of {1,...,n} in strictly ascending
// lexicographic order, each annotated with its sign. It is built
// directly on constraint.Enumerator seeded with the single constraint
// "forbidden[i] = {i+1}" — a derangement is exactly a permutation whose
// value at position i is never i+1 — so no separate backtracking
// implementation is needed here.
//
// n == 0 yields the single empty derangement (by convention D(0) = 1).
// Callers wanting the cached, sign/index-annotated form for repeated
// lookup should use Build/Load/GetShared instead; Generate exists for
// callers (and tests) that just want the sequence once.
func Generate(n int) []Entry {
	if n == 0 {
		return []Entry{{Row: []uint8{}, Sign: 1}}
	}

	cols := constraint.NewColumns(n)
	cols.AddRow(identityRow(n))

	enum := constraint.NewEnumerator(cols)
	out := make([]Entry, 0, permutation.DerangementCount(n))
	for {
		row, ok := enum.Next()
		if !ok {
			break
		}
		out = append(out, Entry{Row: row, Sign: signOf(row)})
	}
	return out
}

// identityRow returns [1, 2, ..., n].
func identityRow(n int) []uint8 {
	row := make([]uint8, n)
	for i := range row {
		row[i] = uint8(i + 1)
	}
	return row
}

// signOf computes the permutation sign of row (a derangement row is
// itself a full permutation of 1..n, so its sign relative to the
// identity is just permutation.Sign of its int form).
func signOf(row []uint8) int8 {
	p := make([]int, len(row))
	for i, v := range row {
		p[i] = int(v)
	}
	if permutation.Sign(p) < 0 {
		return -1
	}
	return 1
}
