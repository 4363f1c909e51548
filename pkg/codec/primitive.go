package codec

import (
	"encoding/binary"
	"math"
)

// Widths of the fixed-size primitives, in bytes.
const (
	U8Size  = 1
	U16Size = 2
	U32Size = 4
	U64Size = 8
)

// span checks that [off, off+n) lies inside a buffer of length size.
func span(size, off, n int) error {
	if off < 0 || n < 0 || off > size || size-off < n {
		return Errorf(KindBufferTooShort, "", off, "need %d bytes, have %d", n, max(size-off, 0))
	}
	return nil
}

func checkRange(v, limit uint64, bits int) error {
	if v > limit {
		return Errorf(KindValueOutOfRange, "", -1, "%d does not fit in %d bits", v, bits)
	}
	return nil
}

// WriteU8 stores v at buf[off] and returns the next offset.
func WriteU8(buf []byte, off int, v uint64) (int, error) {
	if err := checkRange(v, math.MaxUint8, 8); err != nil {
		return off, err
	}
	if err := span(len(buf), off, U8Size); err != nil {
		return off, err
	}
	buf[off] = uint8(v)
	return off + U8Size, nil
}

// WriteU16 stores v little-endian at buf[off:] and returns the next offset.
func WriteU16(buf []byte, off int, v uint64) (int, error) {
	if err := checkRange(v, math.MaxUint16, 16); err != nil {
		return off, err
	}
	if err := span(len(buf), off, U16Size); err != nil {
		return off, err
	}
	binary.LittleEndian.PutUint16(buf[off:], uint16(v))
	return off + U16Size, nil
}

// WriteU32 stores v little-endian at buf[off:] and returns the next offset.
func WriteU32(buf []byte, off int, v uint64) (int, error) {
	if err := checkRange(v, math.MaxUint32, 32); err != nil {
		return off, err
	}
	if err := span(len(buf), off, U32Size); err != nil {
		return off, err
	}
	binary.LittleEndian.PutUint32(buf[off:], uint32(v))
	return off + U32Size, nil
}

// WriteU64 stores v little-endian at buf[off:] and returns the next offset.
func WriteU64(buf []byte, off int, v uint64) (int, error) {
	if err := span(len(buf), off, U64Size); err != nil {
		return off, err
	}
	binary.LittleEndian.PutUint64(buf[off:], v)
	return off + U64Size, nil
}

// WriteBytes copies b into a fixed-width slot of width bytes.
// len(b) must equal width.
func WriteBytes(buf []byte, off int, b []byte, width int) (int, error) {
	if len(b) != width {
		return off, Errorf(KindValueOutOfRange, "", -1, "byte array of length %d, want %d", len(b), width)
	}
	if err := span(len(buf), off, width); err != nil {
		return off, err
	}
	copy(buf[off:off+width], b)
	return off + width, nil
}

// ReadU8 returns buf[off] and the next offset.
func ReadU8(buf []byte, off int) (uint8, int, error) {
	if err := span(len(buf), off, U8Size); err != nil {
		return 0, off, err
	}
	return buf[off], off + U8Size, nil
}

// ReadU16 decodes a little-endian uint16 at buf[off:].
func ReadU16(buf []byte, off int) (uint16, int, error) {
	if err := span(len(buf), off, U16Size); err != nil {
		return 0, off, err
	}
	return binary.LittleEndian.Uint16(buf[off:]), off + U16Size, nil
}

// ReadU32 decodes a little-endian uint32 at buf[off:].
func ReadU32(buf []byte, off int) (uint32, int, error) {
	if err := span(len(buf), off, U32Size); err != nil {
		return 0, off, err
	}
	return binary.LittleEndian.Uint32(buf[off:]), off + U32Size, nil
}

// ReadU64 decodes a little-endian uint64 at buf[off:].
func ReadU64(buf []byte, off int) (uint64, int, error) {
	if err := span(len(buf), off, U64Size); err != nil {
		return 0, off, err
	}
	return binary.LittleEndian.Uint64(buf[off:]), off + U64Size, nil
}

// ReadBytes returns a copy of the width bytes at buf[off:].
func ReadBytes(buf []byte, off, width int) ([]byte, int, error) {
	if err := span(len(buf), off, width); err != nil {
		return nil, off, err
	}
	out := make([]byte, width)
	copy(out, buf[off:off+width])
	return out, off + width, nil
}
