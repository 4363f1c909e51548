package record

import (
	"github.com/ssargent/tokenuses/pkg/schema"
)

// Op names a codec operation for observers.
type Op string

const (
	OpEncode Op = "encode"
	OpDecode Op = "decode"
)

// Observer is told about every encode and decode a Codec performs.
// Implementations must be safe for concurrent use.
type Observer interface {
	ObserveCodec(record string, op Op, size int, err error)
}

type nopObserver struct{}

func (nopObserver) ObserveCodec(string, Op, int, error) {}

// Option configures a Codec.
type Option func(*options)

type options struct {
	observer Observer
}

// WithObserver reports codec outcomes to obs.
func WithObserver(obs Observer) Option {
	return func(o *options) {
		if obs != nil {
			o.observer = obs
		}
	}
}

// Codec serializes values of T through a Descriptor. T supplies the
// conversion to and from a Row; the layout and all byte handling stay here.
type Codec[T any] struct {
	desc     *schema.Descriptor
	toRow    func(T) Row
	fromRow  func(Row) (T, error)
	observer Observer
}

// New creates a Codec for T. toRow must return values in declaration order;
// fromRow receives a Row that has already passed structural validation.
func New[T any](desc *schema.Descriptor, toRow func(T) Row, fromRow func(Row) (T, error), opts ...Option) *Codec[T] {
	o := options{observer: nopObserver{}}
	for _, opt := range opts {
		opt(&o)
	}
	return &Codec[T]{
		desc:     desc,
		toRow:    toRow,
		fromRow:  fromRow,
		observer: o.observer,
	}
}

// With returns a copy of c with additional options applied.
func (c *Codec[T]) With(opts ...Option) *Codec[T] {
	o := options{observer: c.observer}
	for _, opt := range opts {
		opt(&o)
	}
	cp := *c
	cp.observer = o.observer
	return &cp
}

// Schema returns the layout the codec encodes with.
func (c *Codec[T]) Schema() *schema.Descriptor {
	return c.desc
}

// Size returns the encoded size of one value.
func (c *Codec[T]) Size() int {
	return c.desc.TotalSize()
}

// Encode serializes v into exactly Size() bytes.
func (c *Codec[T]) Encode(v T) ([]byte, error) {
	buf, err := EncodeRow(c.desc, c.toRow(v))
	c.observer.ObserveCodec(c.desc.Name(), OpEncode, len(buf), err)
	return buf, err
}

// Decode reads a value from the front of data. Trailing bytes are ignored.
func (c *Codec[T]) Decode(data []byte) (T, error) {
	var zero T

	row, err := DecodeRow(c.desc, data)
	if err != nil {
		c.observer.ObserveCodec(c.desc.Name(), OpDecode, 0, err)
		return zero, err
	}

	v, err := c.fromRow(row)
	if err != nil {
		c.observer.ObserveCodec(c.desc.Name(), OpDecode, 0, err)
		return zero, err
	}

	c.observer.ObserveCodec(c.desc.Name(), OpDecode, c.desc.TotalSize(), nil)
	return v, nil
}
