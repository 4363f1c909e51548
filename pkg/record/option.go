package record

import (
	"github.com/ssargent/tokenuses/pkg/codec"
)

// Borsh Option<T> framing: a one byte presence tag followed by the payload
// when present.
const (
	optionNone = 0
	optionSome = 1
)

// EncodeOption serializes an optional value. A nil v encodes as a single
// zero byte.
func EncodeOption[T any](c *Codec[T], v *T) ([]byte, error) {
	if v == nil {
		return []byte{optionNone}, nil
	}

	payload, err := c.Encode(*v)
	if err != nil {
		return nil, err
	}

	buf := make([]byte, 1+len(payload))
	buf[0] = optionSome
	copy(buf[1:], payload)
	return buf, nil
}

// DecodeOption reads an optional value from the front of data and reports
// how many bytes it consumed.
func DecodeOption[T any](c *Codec[T], data []byte) (*T, int, error) {
	tag, off, err := codec.ReadU8(data, 0)
	if err != nil {
		return nil, 0, attribute(err, "option")
	}

	switch tag {
	case optionNone:
		return nil, off, nil
	case optionSome:
		v, err := c.Decode(data[off:])
		if err != nil {
			// Offsets are reported against data, not the payload slice.
			if ce, ok := err.(*codec.Error); ok {
				return nil, 0, ce.Shift(off)
			}
			return nil, 0, err
		}
		return &v, off + c.Size(), nil
	default:
		return nil, 0, codec.Errorf(codec.KindInvalidEnumTag, "option", 0, "presence tag %d, want 0 or 1", tag)
	}
}
