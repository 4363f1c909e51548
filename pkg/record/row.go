package record

import (
	"errors"
	"fmt"

	"github.com/ssargent/tokenuses/pkg/codec"
	"github.com/ssargent/tokenuses/pkg/schema"
)

// ErrSchemaMismatch is returned when a Row does not match its Descriptor.
var ErrSchemaMismatch = errors.New("record: row does not match schema")

// Row holds one value per schema field, in declaration order.
// Integer and enum fields carry uint64, byte fields carry []byte.
type Row []any

// EncodeRow serializes row into a buffer of exactly d.TotalSize() bytes.
func EncodeRow(d *schema.Descriptor, row Row) ([]byte, error) {
	if len(row) != d.Len() {
		return nil, fmt.Errorf("%w: %s has %d fields, row has %d", ErrSchemaMismatch, d.Name(), d.Len(), len(row))
	}

	buf := make([]byte, d.TotalSize())
	for i, v := range row {
		f, off := d.At(i)
		if err := encodeField(buf, off, f, v); err != nil {
			return nil, err
		}
	}
	return buf, nil
}

func encodeField(buf []byte, off int, f schema.Field, v any) error {
	var err error
	if f.Kind == schema.Bytes {
		b, ok := v.([]byte)
		if !ok {
			return fmt.Errorf("%w: field %q wants []byte, got %T", ErrSchemaMismatch, f.Name, v)
		}
		_, err = codec.WriteBytes(buf, off, b, f.Width)
		return attribute(err, f.Name)
	}

	x, err := asUint64(v)
	if err != nil {
		return attribute(err, f.Name)
	}

	switch f.Kind {
	case schema.U8:
		_, err = codec.WriteU8(buf, off, x)
	case schema.U16:
		_, err = codec.WriteU16(buf, off, x)
	case schema.U32:
		_, err = codec.WriteU32(buf, off, x)
	case schema.U64:
		_, err = codec.WriteU64(buf, off, x)
	case schema.Enum:
		if x >= uint64(f.Variants) {
			return codec.Errorf(codec.KindValueOutOfRange, f.Name, off, "tag %d, want < %d", x, f.Variants)
		}
		_, err = codec.WriteU8(buf, off, x)
	default:
		return fmt.Errorf("%w: field %q has unsupported kind %s", ErrSchemaMismatch, f.Name, f.Kind)
	}
	return attribute(err, f.Name)
}

// DecodeRow reads one record from the front of buf. Bytes past
// d.TotalSize() are ignored. Either every field decodes or an error is
// returned with no row.
func DecodeRow(d *schema.Descriptor, buf []byte) (Row, error) {
	if len(buf) < d.TotalSize() {
		return nil, codec.Errorf(codec.KindBufferTooShort, "", len(buf), "%s needs %d bytes, have %d", d.Name(), d.TotalSize(), len(buf))
	}

	row := make(Row, d.Len())
	for i := range row {
		f, off := d.At(i)
		v, err := decodeField(buf, off, f)
		if err != nil {
			return nil, err
		}
		row[i] = v
	}
	return row, nil
}

func decodeField(buf []byte, off int, f schema.Field) (any, error) {
	switch f.Kind {
	case schema.U8:
		v, _, err := codec.ReadU8(buf, off)
		return uint64(v), attribute(err, f.Name)
	case schema.U16:
		v, _, err := codec.ReadU16(buf, off)
		return uint64(v), attribute(err, f.Name)
	case schema.U32:
		v, _, err := codec.ReadU32(buf, off)
		return uint64(v), attribute(err, f.Name)
	case schema.U64:
		v, _, err := codec.ReadU64(buf, off)
		return v, attribute(err, f.Name)
	case schema.Enum:
		v, _, err := codec.ReadU8(buf, off)
		if err != nil {
			return nil, attribute(err, f.Name)
		}
		if int(v) >= f.Variants {
			return nil, codec.Errorf(codec.KindInvalidEnumTag, f.Name, off, "tag %d, want < %d", v, f.Variants)
		}
		return uint64(v), nil
	case schema.Bytes:
		b, _, err := codec.ReadBytes(buf, off, f.Width)
		return b, attribute(err, f.Name)
	default:
		return nil, fmt.Errorf("%w: field %q has unsupported kind %s", ErrSchemaMismatch, f.Name, f.Kind)
	}
}

// attribute tags a primitive codec error with the field it occurred in.
func attribute(err error, field string) error {
	if err == nil {
		return nil
	}
	var ce *codec.Error
	if errors.As(err, &ce) {
		return ce.WithField(field)
	}
	return fmt.Errorf("field %q: %w", field, err)
}

func asUint64(v any) (uint64, error) {
	switch x := v.(type) {
	case uint64:
		return x, nil
	case uint32:
		return uint64(x), nil
	case uint16:
		return uint64(x), nil
	case uint8:
		return uint64(x), nil
	case uint:
		return uint64(x), nil
	case int:
		if x < 0 {
			return 0, codec.Errorf(codec.KindValueOutOfRange, "", -1, "negative value %d", x)
		}
		return uint64(x), nil
	case int64:
		if x < 0 {
			return 0, codec.Errorf(codec.KindValueOutOfRange, "", -1, "negative value %d", x)
		}
		return uint64(x), nil
	default:
		return 0, fmt.Errorf("%w: want unsigned integer, got %T", ErrSchemaMismatch, v)
	}
}
