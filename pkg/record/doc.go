// Package record encodes and decodes fixed-layout records described by a
// schema.Descriptor.
//
// EncodeRow and DecodeRow work on untyped rows. Codec[T] binds a Go type to a
// layout through an explicit pair of conversion functions, so record types
// stay plain structs:
//
//	var pointCodec = record.New(pointSchema,
//	    func(p Point) record.Row { return record.Row{p.X, p.Y} },
//	    func(r record.Row) (Point, error) { return Point{X: r[0].(uint64), Y: r[1].(uint64)}, nil },
//	)
//
// Decoding is strict and all-or-nothing. Input shorter than the layout fails
// with codec.ErrBufferTooShort, an enum tag outside its declared range fails
// with codec.ErrInvalidEnumTag, and bytes past the layout are ignored so that
// records embedded in larger buffers decode in place. For every valid value v,
// Decode(Encode(v)) == v, and for every buffer b that decodes,
// Encode(Decode(b)) reproduces b[:Size()].
//
// Codecs never check where a buffer came from. Callers holding untrusted data
// run an owner.Validator first.
package record
