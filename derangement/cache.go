package derangement

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"sync"

	"github.com/latinrect/latinrect/constraint"
	"github.com/latinrect/latinrect/permutation"
	"go.uber.org/zap"
)

// maxN is the module's hard ceiling on derangement generation: the
// n > 15 "too large" cap (spec.md §7), which dispatch surfaces through
// Build's ErrTooLarge. The cache format's count field is a u32, and
// D(n) already exceeds uint32 range at n=14 (D(14) = 32,071,101,049;
// D(15) = 481,066,515,734), so Build also refuses every n whose D(n)
// does not fit: callers asking for such a cache get ErrTooLarge rather
// than silent truncation.
const maxN = 15

// CacheHandle is an immutable, shared view over a fully
// built derangement cache for one n. Multiple concurrent workers
// enumerating the same n share a single CacheHandle instance (see
// GetShared) instead of each rebuilding or independently mmap-ing the
// same data; every accessor method is safe for concurrent use because
// nothing about a CacheHandle changes after Build/Load populates it.
type CacheHandle struct {
	n     int
	count int

	rows  []uint8 // flattened, rows[i*n:(i+1)*n]
	signs []int8

	// conflictMask[p][v-1] is the set of derangement indices whose
	// value at position p is v — spec.md §4.3's conflict_mask(p, v):
	// candidates in this set are incompatible with any partial
	// rectangle that has already forbidden v in column p.
	conflictMask [][]*constraint.Bitset

	singlePrefix map[uint8][]uint32
	pairPrefix   map[[2]uint8][]uint32
}

// Stats summarizes a built cache: how many derangements have each
// sign, and how many distinct leading values populate the single- and
// pair-prefix indices. Grounded on the original cache's
// get_statistics helper; useful for a CLI "cache inspect" subcommand
// and for the property test that checks r=2's positive/negative split
// against the cache's own sign tally.
type Stats struct {
	N, Count               int
	PositiveCount          int
	NegativeCount          int
	SinglePrefixBuckets    int
	PairPrefixBuckets      int
}

// Stats computes a Stats snapshot for h.
func (h *CacheHandle) Stats() Stats {
	s := Stats{N: h.n, Count: h.count, SinglePrefixBuckets: len(h.singlePrefix), PairPrefixBuckets: len(h.pairPrefix)}
	for _, sign := range h.signs {
		if sign > 0 {
			s.PositiveCount++
		} else {
			s.NegativeCount++
		}
	}
	return s
}

// N returns the derangement width this handle was built for.
func (h *CacheHandle) N() int { return h.n }

// Count returns D(n), the number of derangements in this handle.
func (h *CacheHandle) Count() int { return h.count }

// Derangement returns the row and sign for derangement index i, in the
// lexicographic order Generate produces. O(1).
func (h *CacheHandle) Derangement(i int) ([]uint8, int8) {
	return h.rows[i*h.n : (i+1)*h.n], h.signs[i]
}

// ConflictMask returns the set of derangement indices whose value at
// position p (0-indexed) is v (1-indexed) — spec.md §4.3's
// conflict_mask(p, v). The returned Bitset is shared and must not be
// mutated; callers that need to AND-NOT it into a working mask should
// use Bitset.AndNotInPlace against their own mutable copy.
func (h *CacheHandle) ConflictMask(p, v int) *constraint.Bitset {
	return h.conflictMask[p][v-1]
}

// CompatibleWith returns the indices of the derangements whose first
// k values equal prefix (prefix[c] is the value at column c, for
// c < k), for k in {1, 2}; ok is false when no derangement starts with
// prefix or k is any other length. It is
// the single/pairwise prefix index fast path spec.md §4.3 calls for:
// most rectangle rows are ruled out after the first one or two
// columns are fixed, so this avoids scanning the full conflict mask
// chain for the common case.
func (h *CacheHandle) CompatibleWith(prefix []uint8) ([]uint32, bool) {
	switch len(prefix) {
	case 1:
		idx, ok := h.singlePrefix[prefix[0]]
		return idx, ok
	case 2:
		idx, ok := h.pairPrefix[[2]uint8{prefix[0], prefix[1]}]
		return idx, ok
	default:
		return nil, false
	}
}

// Build constructs a CacheHandle for n entirely in memory, without
// touching disk. Used by Load's cache-miss path and directly by
// callers that only need an ephemeral handle (e.g. tests).
func Build(n int) (*CacheHandle, error) {
	if n < 0 || n > maxN || permutation.DerangementCount(n) > math.MaxUint32 {
		return nil, ErrTooLarge
	}

	entries := Generate(n)
	count := len(entries)

	h := &CacheHandle{
		n:            n,
		count:        count,
		rows:         make([]uint8, count*n),
		signs:        make([]int8, count),
		singlePrefix: make(map[uint8][]uint32),
		pairPrefix:   make(map[[2]uint8][]uint32),
	}

	for i, e := range entries {
		copy(h.rows[i*n:(i+1)*n], e.Row)
		h.signs[i] = e.Sign
		if n >= 1 {
			h.singlePrefix[e.Row[0]] = append(h.singlePrefix[e.Row[0]], uint32(i))
		}
		if n >= 2 {
			key := [2]uint8{e.Row[0], e.Row[1]}
			h.pairPrefix[key] = append(h.pairPrefix[key], uint32(i))
		}
	}

	h.conflictMask = make([][]*constraint.Bitset, n)
	for p := 0; p < n; p++ {
		h.conflictMask[p] = make([]*constraint.Bitset, n)
		for v := 1; v <= n; v++ {
			h.conflictMask[p][v-1] = constraint.NewBitset(count)
		}
	}
	for i := 0; i < count; i++ {
		row := h.rows[i*n : (i+1)*n]
		for p, v := range row {
			h.conflictMask[p][v-1].Set(i)
		}
	}

	return h, nil
}

// FileName returns the on-disk cache file name for n, per spec.md
// §6.2: "smart_derangements_n{n}.bin".
func FileName(n int) string {
	return fmt.Sprintf("smart_derangements_n%d.bin", n)
}

// Save atomically writes h to dir/FileName(n): the payload is written
// to a temp file in the same directory and then renamed into place, so
// a reader never observes a partially written cache — the same
// crash-safety idiom baton-sdk's dotc1z store uses for its own file
// swaps.
func (h *CacheHandle) Save(dir string) (err error) {
	path := filepath.Join(dir, FileName(h.n))

	payload := h.encodePayload()
	hdr := encodeHeader(header{
		version:            formatVersion,
		n:                  uint32(h.n),
		count:              uint32(h.count),
		offsetDerangements: headerSize,
		offsetSigns:        uint32(headerSize + h.count*h.n),
		offsetPVIndex:      uint32(headerSize + h.count*h.n + h.count),
		crc32:              checksum(payload),
	})

	tmp, err := os.CreateTemp(dir, ".tmp-"+FileName(h.n)+"-*")
	if err != nil {
		return fmt.Errorf("%w: %v", ErrCacheIO, err)
	}
	tmpPath := tmp.Name()
	defer func() {
		if err != nil {
			os.Remove(tmpPath)
		}
	}()

	if _, err = tmp.Write(hdr); err != nil {
		tmp.Close()
		return fmt.Errorf("%w: %v", ErrCacheIO, err)
	}
	if _, err = tmp.Write(payload); err != nil {
		tmp.Close()
		return fmt.Errorf("%w: %v", ErrCacheIO, err)
	}
	if err = tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("%w: %v", ErrCacheIO, err)
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("%w: %v", ErrCacheIO, err)
	}
	if err = os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("%w: %v", ErrCacheIO, err)
	}
	return nil
}

// encodePayload serializes everything after the header: derangement
// rows, signs, the position-value index, then this module's prefix
// index extension. Order and sizes are fully determined by n and
// count, so Load never needs offsets beyond what the header already
// carries.
func (h *CacheHandle) encodePayload() []byte {
	n, count := h.n, h.count
	pvWidth := pvBytesPerMask(count)

	size := count*n + count + n*n*pvWidth
	out := make([]byte, 0, size+1024)
	out = append(out, h.rows...)
	for _, s := range h.signs {
		out = append(out, byte(s))
	}
	for p := 0; p < n; p++ {
		for v := 1; v <= n; v++ {
			mask := h.conflictMask[p][v-1]
			buf := make([]byte, pvWidth)
			mask.Each(func(i int) bool {
				buf[i/8] |= 1 << uint(i%8)
				return true
			})
			out = append(out, buf...)
		}
	}
	out = append(out, encodePrefixIndex(h.singlePrefix, h.pairPrefix, n)...)
	return out
}

// encodePrefixIndex serializes the single- and pairwise-prefix index
// maps as length-prefixed uint32 lists: first n lists, singlePrefix[v1]
// for v1 in 1..n, then a fixed n x n grid of lists, pairPrefix[(v1,v2)]
// for v1 in 1..n and, within each v1, v2 in 1..n. n <= 15 keeps the
// grid itself small (<=225 slots); slots no derangement can fill
// (v1 == 1, v2 == 2, or v1 == v2) are written as empty lists (length
// 0), and the format tolerates that.
func encodePrefixIndex(single map[uint8][]uint32, pair map[[2]uint8][]uint32, n int) []byte {
	var out []byte
	putList := func(list []uint32) {
		var lenBuf [4]byte
		lePutUint32(lenBuf[:], uint32(len(list)))
		out = append(out, lenBuf[:]...)
		for _, idx := range list {
			var b [4]byte
			lePutUint32(b[:], idx)
			out = append(out, b[:]...)
		}
	}
	for v1 := 1; v1 <= n; v1++ {
		putList(single[uint8(v1)])
	}
	for v1 := 1; v1 <= n; v1++ {
		for v2 := 1; v2 <= n; v2++ {
			putList(pair[[2]uint8{uint8(v1), uint8(v2)}])
		}
	}
	return out
}

func lePutUint32(b []byte, v uint32) {
	b[0] = byte(v)
	b[1] = byte(v >> 8)
	b[2] = byte(v >> 16)
	b[3] = byte(v >> 24)
}

func leUint32(b []byte) uint32 {
	return uint32(b[0]) | uint32(b[1])<<8 | uint32(b[2])<<16 | uint32(b[3])<<24
}

// Load reads and validates a cache file previously written by Save.
// Any magic/version mismatch or CRC32 failure returns ErrCacheCorrupt;
// callers are expected to fall back to Build on that error, per
// spec.md §7's "corrupt cache -> rebuild" recovery path.
func Load(dir string, n int) (*CacheHandle, error) {
	path := filepath.Join(dir, FileName(n))
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCacheIO, err)
	}
	if len(data) < headerSize {
		return nil, ErrCacheCorrupt
	}
	hdr, err := decodeHeader(data[:headerSize])
	if err != nil {
		return nil, err
	}
	if int(hdr.n) != n {
		return nil, ErrCacheCorrupt
	}
	payload := data[headerSize:]
	if checksum(payload) != hdr.crc32 {
		return nil, ErrCacheCorrupt
	}

	count := int(hdr.count)
	h := &CacheHandle{
		n:            n,
		count:        count,
		rows:         make([]uint8, count*n),
		signs:        make([]int8, count),
		singlePrefix: make(map[uint8][]uint32),
		pairPrefix:   make(map[[2]uint8][]uint32),
	}

	off := 0
	copy(h.rows, payload[off:off+count*n])
	off += count * n

	for i := 0; i < count; i++ {
		h.signs[i] = int8(payload[off+i])
	}
	off += count

	pvWidth := pvBytesPerMask(count)
	h.conflictMask = make([][]*constraint.Bitset, n)
	for p := 0; p < n; p++ {
		h.conflictMask[p] = make([]*constraint.Bitset, n)
		for v := 1; v <= n; v++ {
			mask := constraint.NewBitset(count)
			raw := payload[off : off+pvWidth]
			off += pvWidth
			for i := 0; i < count; i++ {
				if testBit(raw, i) {
					mask.Set(i)
				}
			}
			h.conflictMask[p][v-1] = mask
		}
	}

	rest := payload[off:]
	single, pair, err := decodePrefixIndex(rest, n)
	if err != nil {
		return nil, err
	}
	h.singlePrefix = single
	h.pairPrefix = pair

	return h, nil
}

func decodePrefixIndex(data []byte, n int) (map[uint8][]uint32, map[[2]uint8][]uint32, error) {
	single := make(map[uint8][]uint32)
	pair := make(map[[2]uint8][]uint32)
	pos := 0
	readList := func() ([]uint32, error) {
		if pos+4 > len(data) {
			return nil, ErrCacheCorrupt
		}
		l := int(leUint32(data[pos : pos+4]))
		pos += 4
		if l == 0 {
			return nil, nil
		}
		if pos+4*l > len(data) {
			return nil, ErrCacheCorrupt
		}
		out := make([]uint32, l)
		for i := 0; i < l; i++ {
			out[i] = leUint32(data[pos : pos+4])
			pos += 4
		}
		return out, nil
	}
	for v1 := 1; v1 <= n; v1++ {
		list, err := readList()
		if err != nil {
			return nil, nil, err
		}
		if list != nil {
			single[uint8(v1)] = list
		}
	}
	for v1 := 1; v1 <= n; v1++ {
		for v2 := 1; v2 <= n; v2++ {
			list, err := readList()
			if err != nil {
				return nil, nil, err
			}
			if list != nil {
				pair[[2]uint8{uint8(v1), uint8(v2)}] = list
			}
		}
	}
	return single, pair, nil
}

// LoadOrBuild loads dir's cache for n, building a fresh one on a
// missing file or ErrCacheCorrupt (rebuild-on-corruption, per spec.md
// §7) and persisting it back to dir. A genuine write failure on that
// save — an unwritable or missing cache directory — is surfaced to the
// caller as ErrCacheIO rather than silently degrading to an
// unpersisted in-memory handle, per spec.md §7's "surface to caller;
// refuse to proceed" for CacheIO.
func LoadOrBuild(dir string, n int, logger *zap.Logger) (*CacheHandle, error) {
	h, err := Load(dir, n)
	if err == nil {
		return h, nil
	}
	if logger != nil {
		logger.Debug("derangement cache miss, rebuilding", zap.Int("n", n), zap.Error(err))
	}

	h, buildErr := Build(n)
	if buildErr != nil {
		return nil, buildErr
	}
	if err := h.Save(dir); err != nil {
		if logger != nil {
			logger.Error("derangement cache save failed", zap.Int("n", n), zap.Error(err))
		}
		return nil, err
	}
	return h, nil
}

var (
	sharedMu    sync.Mutex
	sharedTable = make(map[int]*CacheHandle)
)

// GetShared returns the process-wide CacheHandle for n, building or
// loading it on first use and reusing the same instance for every
// subsequent caller — spec.md §4.3's "multiple concurrent workers for
// the same n share a single immutable in-memory instance". Safe for
// concurrent use from multiple goroutines.
func GetShared(dir string, n int, logger *zap.Logger) (*CacheHandle, error) {
	sharedMu.Lock()
	defer sharedMu.Unlock()

	if h, ok := sharedTable[n]; ok {
		return h, nil
	}
	h, err := LoadOrBuild(dir, n, logger)
	if err != nil {
		return nil, err
	}
	sharedTable[n] = h
	return h, nil
}

// ResetShared clears the process-wide handle table. Exposed for tests
// that need a clean slate between cases exercising different cache
// directories for the same n.
func ResetShared() {
	sharedMu.Lock()
	defer sharedMu.Unlock()
	sharedTable = make(map[int]*CacheHandle)
}
