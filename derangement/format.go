package derangement

import (
	"encoding/binary"
	"hash/crc32"
)

// Binary cache file layout, spec.md §6.2, file "smart_derangements_n{n}.bin":
//
//	offset  size  field
//	0       4     magic = "LRCC"
//	4       4     version (u32, currently 1)
//	8       4     n (u32)
//	12      4     count = D(n) (u32)
//	16      4     offset_derangements (u32)
//	20      4     offset_signs (u32)
//	24      4     offset_pv_index (u32)
//	28      4     crc32 of payload (u32)
//	32      32    reserved (zero)
//	64      ...   derangements: count*n bytes (u8, values 1..n)
//	              signs: count bytes (i8, +-1)
//	              position_value_index: n*n bitmasks of ceil(count/8)
//	                bytes each, row-major (p, v) order, v = 1..n
//	              single-value and pairwise prefix indices (this
//	              module's own trailing extension, undefined by format
//	              version 1's fixed header but read/written
//	              deterministically from n and count alone — see
//	              encodePrefixIndex)
const (
	magic         = "LRCC"
	formatVersion = uint32(1)
	headerSize    = 64
)

type header struct {
	version            uint32
	n                  uint32
	count              uint32
	offsetDerangements uint32
	offsetSigns        uint32
	offsetPVIndex      uint32
	crc32              uint32
}

func encodeHeader(h header) []byte {
	buf := make([]byte, headerSize)
	copy(buf[0:4], magic)
	binary.LittleEndian.PutUint32(buf[4:8], h.version)
	binary.LittleEndian.PutUint32(buf[8:12], h.n)
	binary.LittleEndian.PutUint32(buf[12:16], h.count)
	binary.LittleEndian.PutUint32(buf[16:20], h.offsetDerangements)
	binary.LittleEndian.PutUint32(buf[20:24], h.offsetSigns)
	binary.LittleEndian.PutUint32(buf[24:28], h.offsetPVIndex)
	binary.LittleEndian.PutUint32(buf[28:32], h.crc32)
	// buf[32:64] stays zero: reserved.
	return buf
}

func decodeHeader(buf []byte) (header, error) {
	if len(buf) < headerSize {
		return header{}, ErrCacheCorrupt
	}
	if string(buf[0:4]) != magic {
		return header{}, ErrCacheCorrupt
	}
	h := header{
		version:            binary.LittleEndian.Uint32(buf[4:8]),
		n:                  binary.LittleEndian.Uint32(buf[8:12]),
		count:              binary.LittleEndian.Uint32(buf[12:16]),
		offsetDerangements: binary.LittleEndian.Uint32(buf[16:20]),
		offsetSigns:        binary.LittleEndian.Uint32(buf[20:24]),
		offsetPVIndex:      binary.LittleEndian.Uint32(buf[24:28]),
		crc32:              binary.LittleEndian.Uint32(buf[28:32]),
	}
	if h.version != formatVersion {
		return header{}, ErrCacheCorrupt
	}
	return h, nil
}

// pvBytesPerMask returns ceil(count/8), the byte width of one
// position-value bitmask.
func pvBytesPerMask(count int) int {
	return (count + 7) / 8
}

// checksum computes the crc32 spec.md §6.2 requires over the payload
// (everything after the 64-byte header).
func checksum(payload []byte) uint32 {
	return crc32.ChecksumIEEE(payload)
}

// testBit reports whether bit i is set in a packed position-value
// bitmask.
func testBit(mask []byte, i int) bool {
	return mask[i/8]&(1<<uint(i%8)) != 0
}
