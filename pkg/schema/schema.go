// Package schema describes the fixed byte layout of a record.
//
// A Descriptor is an ordered list of named fields. Field order defines the
// wire layout: fields are packed back to back with no padding, so the encoded
// size of a record is the sum of its field widths and each field's offset is
// the prefix sum of the widths before it. Descriptors are immutable once
// built and may be shared freely between goroutines.
package schema

import (
	"fmt"

	"github.com/ssargent/tokenuses/pkg/codec"
)

// Kind is the primitive type of a field.
type Kind uint8

const (
	U8 Kind = iota
	U16
	U32
	U64
	Enum  // u8 tag of a closed enumeration
	Bytes // fixed-width byte array
)

func (k Kind) String() string {
	switch k {
	case U8:
		return "u8"
	case U16:
		return "u16"
	case U32:
		return "u32"
	case U64:
		return "u64"
	case Enum:
		return "enum"
	case Bytes:
		return "bytes"
	default:
		return fmt.Sprintf("kind(%d)", uint8(k))
	}
}

// Field is a single named slot in a record layout.
type Field struct {
	Name string
	Kind Kind
	// Variants is the number of valid tags of an Enum field; tags are 0..Variants-1.
	Variants int
	// Width is the size of a Bytes field.
	Width int
}

// Size returns the encoded width of the field in bytes.
func (f Field) Size() int {
	switch f.Kind {
	case U8, Enum:
		return codec.U8Size
	case U16:
		return codec.U16Size
	case U32:
		return codec.U32Size
	case U64:
		return codec.U64Size
	case Bytes:
		return f.Width
	default:
		return 0
	}
}

func (f Field) String() string {
	switch f.Kind {
	case Enum:
		return fmt.Sprintf("%s: enum(%d)", f.Name, f.Variants)
	case Bytes:
		return fmt.Sprintf("%s: [u8; %d]", f.Name, f.Width)
	default:
		return fmt.Sprintf("%s: %s", f.Name, f.Kind)
	}
}

// Field constructors.

func U8Field(name string) Field  { return Field{Name: name, Kind: U8} }
func U16Field(name string) Field { return Field{Name: name, Kind: U16} }
func U32Field(name string) Field { return Field{Name: name, Kind: U32} }
func U64Field(name string) Field { return Field{Name: name, Kind: U64} }

func EnumField(name string, variants int) Field {
	return Field{Name: name, Kind: Enum, Variants: variants}
}

func BytesField(name string, width int) Field {
	return Field{Name: name, Kind: Bytes, Width: width}
}

// Descriptor is the immutable layout of one record type.
type Descriptor struct {
	name    string
	fields  []Field
	offsets []int
	index   map[string]int
	size    int
}

// New builds a Descriptor from fields in declaration order.
func New(name string, fields ...Field) (*Descriptor, error) {
	d := &Descriptor{
		name:    name,
		fields:  make([]Field, len(fields)),
		offsets: make([]int, len(fields)),
		index:   make(map[string]int, len(fields)),
	}
	copy(d.fields, fields)

	off := 0
	for i, f := range d.fields {
		if f.Name == "" {
			return nil, codec.Errorf(codec.KindValueOutOfRange, "", -1, "field %d of %s has no name", i, name)
		}
		if _, dup := d.index[f.Name]; dup {
			return nil, codec.Errorf(codec.KindDuplicateFieldName, f.Name, -1, "declared twice in %s", name)
		}
		if err := checkField(f); err != nil {
			return nil, err
		}
		d.index[f.Name] = i
		d.offsets[i] = off
		off += f.Size()
	}
	d.size = off

	return d, nil
}

// MustNew is like New but panics on error. Use it for package-level layouts.
func MustNew(name string, fields ...Field) *Descriptor {
	d, err := New(name, fields...)
	if err != nil {
		panic(fmt.Sprintf("schema %s: %v", name, err))
	}
	return d
}

func checkField(f Field) error {
	switch f.Kind {
	case U8, U16, U32, U64:
		return nil
	case Enum:
		if f.Variants < 1 || f.Variants > 256 {
			return codec.Errorf(codec.KindValueOutOfRange, f.Name, -1, "enum needs 1..256 variants, got %d", f.Variants)
		}
	case Bytes:
		if f.Width < 1 {
			return codec.Errorf(codec.KindValueOutOfRange, f.Name, -1, "byte array width must be positive, got %d", f.Width)
		}
	default:
		return codec.Errorf(codec.KindValueOutOfRange, f.Name, -1, "unknown kind %s", f.Kind)
	}
	return nil
}

// Name returns the record name the layout was declared with.
func (d *Descriptor) Name() string { return d.name }

// Len returns the number of fields.
func (d *Descriptor) Len() int { return len(d.fields) }

// TotalSize returns the encoded size of a record in bytes.
func (d *Descriptor) TotalSize() int { return d.size }

// Fields returns a copy of the fields in declaration order.
func (d *Descriptor) Fields() []Field {
	out := make([]Field, len(d.fields))
	copy(out, d.fields)
	return out
}

// FieldOffsets returns a copy of the byte offset of each field.
func (d *Descriptor) FieldOffsets() []int {
	out := make([]int, len(d.offsets))
	copy(out, d.offsets)
	return out
}

// At returns the i-th field and its offset without copying the layout.
func (d *Descriptor) At(i int) (Field, int) {
	return d.fields[i], d.offsets[i]
}

// Field looks up a field by name and returns it with its offset.
func (d *Descriptor) Field(name string) (Field, int, bool) {
	i, ok := d.index[name]
	if !ok {
		return Field{}, 0, false
	}
	return d.fields[i], d.offsets[i], true
}

func (d *Descriptor) String() string {
	return fmt.Sprintf("%s(%d fields, %d bytes)", d.name, len(d.fields), d.size)
}
