package rectangle

import "github.com/latinrect/latinrect/permutation"

// Rectangle is a normalized r x n Latin rectangle: Rows[0] is the
// identity [1,...,N], and each subsequent row is a permutation of
// {1,...,N} sharing no column-wise value with any earlier row
// (spec.md §3).
type Rectangle struct {
	Rows [][]uint8
	N    int
}

// New builds a Rectangle from rows, taking ownership of the slice
// (callers should not mutate rows afterward). It does not validate;
// call Validate explicitly at boundaries that accept external input.
func New(n int, rows [][]uint8) *Rectangle {
	return &Rectangle{Rows: rows, N: n}
}

// R returns the number of rows.
func (rect *Rectangle) R() int { return len(rect.Rows) }

// Sign returns the product of the signs of all rows, per spec.md
// §3's "Sign of rectangle" definition. Row 0 (the identity) always
// contributes +1.
func (rect *Rectangle) Sign() int {
	sign := 1
	for _, row := range rect.Rows {
		sign *= permutation.Sign(rowToInts(row))
	}
	return sign
}

// Validate checks every invariant in spec.md §3: row count in
// [2, N], row 0 is the identity, every row is a permutation of
// 1..N, and no two rows share a value in the same column.
func (rect *Rectangle) Validate() error {
	r := rect.R()
	if r < 2 || r > rect.N {
		return ErrInvalidRectangle
	}
	for _, row := range rect.Rows {
		if len(row) != rect.N {
			return ErrInvalidRectangle
		}
		if err := permutation.Validate(rowToInts(row)); err != nil {
			return ErrInvalidRectangle
		}
	}
	for c := 0; c < rect.N; c++ {
		if int(rect.Rows[0][c]) != c+1 {
			return ErrNotNormalized
		}
	}

	seen := make([]uint8, rect.N)
	for col := 0; col < rect.N; col++ {
		for i := range seen {
			seen[i] = 0
		}
		for _, row := range rect.Rows {
			v := row[col]
			if seen[v-1] != 0 {
				return ErrInvalidRectangle
			}
			seen[v-1] = 1
		}
	}
	return nil
}

func rowToInts(row []uint8) []int {
	out := make([]int, len(row))
	for i, v := range row {
		out[i] = int(v)
	}
	return out
}
