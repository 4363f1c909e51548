//go:build fuzz
// +build fuzz

package codec

import (
	"errors"
	"testing"
)

// FuzzPrimitives_U64RoundTrip tests that any u64 survives a write/read at any offset
func FuzzPrimitives_U64RoundTrip(f *testing.F) {
	f.Add(uint64(0), uint(0))
	f.Add(uint64(10), uint(1))
	f.Add(^uint64(0), uint(9))

	f.Fuzz(func(t *testing.T, v uint64, off uint) {
		if off > 1024 {
			t.Skip("Offset too large for fuzz test")
		}

		buf := make([]byte, int(off)+U64Size)
		if _, err := WriteU64(buf, int(off), v); err != nil {
			t.Fatalf("WriteU64 failed: %v", err)
		}

		got, next, err := ReadU64(buf, int(off))
		if err != nil {
			t.Fatalf("ReadU64 failed: %v", err)
		}
		if got != v {
			t.Errorf("Value mismatch: got %d, want %d", got, v)
		}
		if next != len(buf) {
			t.Errorf("Offset mismatch: got %d, want %d", next, len(buf))
		}
	})
}

// FuzzPrimitives_U8Range tests that u8 writes either fit or fail with ErrValueOutOfRange
func FuzzPrimitives_U8Range(f *testing.F) {
	f.Add(uint64(0))
	f.Add(uint64(255))
	f.Add(uint64(256))

	f.Fuzz(func(t *testing.T, v uint64) {
		buf := make([]byte, 1)
		_, err := WriteU8(buf, 0, v)
		if v > 255 {
			if !errors.Is(err, ErrValueOutOfRange) {
				t.Fatalf("expected ErrValueOutOfRange for %d, got %v", v, err)
			}
			if buf[0] != 0 {
				t.Errorf("failed write modified buffer: %x", buf)
			}
			return
		}
		if err != nil {
			t.Fatalf("WriteU8(%d) failed: %v", v, err)
		}
		if uint64(buf[0]) != v {
			t.Errorf("Value mismatch: got %d, want %d", buf[0], v)
		}
	})
}

// FuzzPrimitives_ReadBounds tests that reads never panic on arbitrary buffers and offsets
func FuzzPrimitives_ReadBounds(f *testing.F) {
	f.Add([]byte{}, 0)
	f.Add([]byte{0x01}, 0)
	f.Add(make([]byte, 7), 0)
	f.Add(make([]byte, 17), 9)
	f.Add(make([]byte, 4), -3)

	f.Fuzz(func(t *testing.T, data []byte, off int) {
		if _, _, err := ReadU64(data, off); err != nil && !errors.Is(err, ErrBufferTooShort) {
			t.Errorf("unexpected error kind: %v", err)
		}
		if _, _, err := ReadU8(data, off); err != nil && !errors.Is(err, ErrBufferTooShort) {
			t.Errorf("unexpected error kind: %v", err)
		}
		if _, _, err := ReadBytes(data, off, 32); err != nil && !errors.Is(err, ErrBufferTooShort) {
			t.Errorf("unexpected error kind: %v", err)
		}
	})
}
