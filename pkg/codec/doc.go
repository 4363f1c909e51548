// Package codec provides the primitive binary codec and the error taxonomy
// shared by the tokenuses packages.
//
// The primitives follow the Borsh wire rules: fixed-width unsigned integers
// stored little-endian, fixed-width byte arrays copied verbatim, no padding
// and no length prefixes.
//
// # Primitives
//
//	Kind   Width  Encoding
//	u8     1      raw byte
//	u16    2      little-endian
//	u32    4      little-endian
//	u64    8      little-endian
//	bytes  n      raw bytes, exactly n
//
// Write functions take the value as a uint64 and reject anything that does
// not fit the primitive's bit width with ErrValueOutOfRange. Values are never
// truncated. Read and write functions return the offset just past the field
// so callers can chain them:
//
//	buf := make([]byte, 9)
//	off, err := codec.WriteU8(buf, 0, 1)
//	if err != nil {
//	    return err
//	}
//	if _, err := codec.WriteU64(buf, off, 10); err != nil {
//	    return err
//	}
//
// # Error Handling
//
// Every failure is an *Error carrying a Kind, the field name when known and
// the buffer offset. Errors match their sentinel with errors.Is:
//
//	if errors.Is(err, codec.ErrBufferTooShort) {
//	    // input truncated
//	}
//
// KindOf recovers the Kind through any amount of fmt.Errorf wrapping and is
// what the metrics and CLI layers use for labelling.
//
// # Thread Safety
//
// All functions are pure apart from writing into the caller's buffer and are
// safe for concurrent use on distinct buffers.
package codec
