package record

import (
	"bytes"
	"errors"
	"math"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ssargent/tokenuses/pkg/codec"
	"github.com/ssargent/tokenuses/pkg/schema"
)

// ticket is a test record covering every field kind.
type ticket struct {
	Flags  uint8
	Port   uint16
	Seq    uint32
	Amount uint64
	Color  uint8
	Holder [4]byte
}

var ticketSchema = schema.MustNew("Ticket",
	schema.U8Field("flags"),
	schema.U16Field("port"),
	schema.U32Field("seq"),
	schema.U64Field("amount"),
	schema.EnumField("color", 3),
	schema.BytesField("holder", 4),
)

func ticketToRow(t ticket) Row {
	return Row{uint64(t.Flags), uint64(t.Port), uint64(t.Seq), t.Amount, uint64(t.Color), t.Holder[:]}
}

func ticketFromRow(r Row) (ticket, error) {
	var t ticket
	t.Flags = uint8(r[0].(uint64))
	t.Port = uint16(r[1].(uint64))
	t.Seq = uint32(r[2].(uint64))
	t.Amount = r[3].(uint64)
	t.Color = uint8(r[4].(uint64))
	copy(t.Holder[:], r[5].([]byte))
	return t, nil
}

func newTicketCodec(opts ...Option) *Codec[ticket] {
	return New(ticketSchema, ticketToRow, ticketFromRow, opts...)
}

type observation struct {
	record string
	op     Op
	size   int
	kind   codec.Kind
	failed bool
}

type recorder struct {
	mu  sync.Mutex
	obs []observation
}

func (r *recorder) ObserveCodec(record string, op Op, size int, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.obs = append(r.obs, observation{record, op, size, codec.KindOf(err), err != nil})
}

func TestEncodeDecodeRow_RoundTrip(t *testing.T) {
	row := Row{uint64(7), uint64(8080), uint64(1 << 30), uint64(math.MaxUint64), uint64(2), []byte{1, 2, 3, 4}}

	buf, err := EncodeRow(ticketSchema, row)
	require.NoError(t, err)
	require.Len(t, buf, ticketSchema.TotalSize())

	got, err := DecodeRow(ticketSchema, buf)
	require.NoError(t, err)
	assert.Equal(t, row, got)
}

func TestEncodeRow_AcceptsUnsignedTypes(t *testing.T) {
	row := Row{uint8(7), uint16(8080), uint32(5), 9, uint(2), []byte{0, 0, 0, 0}}

	buf, err := EncodeRow(ticketSchema, row)
	require.NoError(t, err)

	got, err := DecodeRow(ticketSchema, buf)
	require.NoError(t, err)
	assert.Equal(t, Row{uint64(7), uint64(8080), uint64(5), uint64(9), uint64(2), []byte{0, 0, 0, 0}}, got)
}

func TestEncodeRow_Errors(t *testing.T) {
	valid := func() Row {
		return Row{uint64(0), uint64(0), uint64(0), uint64(0), uint64(0), []byte{0, 0, 0, 0}}
	}

	testCases := []struct {
		name     string
		mutate   func(Row) Row
		sentinel error
		field    string
	}{
		{
			name:     "wrong arity",
			mutate:   func(r Row) Row { return r[:3] },
			sentinel: ErrSchemaMismatch,
		},
		{
			name:     "u8 overflow",
			mutate:   func(r Row) Row { r[0] = uint64(256); return r },
			sentinel: codec.ErrValueOutOfRange,
			field:    "flags",
		},
		{
			name:     "u16 overflow",
			mutate:   func(r Row) Row { r[1] = uint64(70000); return r },
			sentinel: codec.ErrValueOutOfRange,
			field:    "port",
		},
		{
			name:     "negative int",
			mutate:   func(r Row) Row { r[3] = -1; return r },
			sentinel: codec.ErrValueOutOfRange,
			field:    "amount",
		},
		{
			name:     "enum tag outside range",
			mutate:   func(r Row) Row { r[4] = uint64(3); return r },
			sentinel: codec.ErrValueOutOfRange,
			field:    "color",
		},
		{
			name:     "short byte array",
			mutate:   func(r Row) Row { r[5] = []byte{1}; return r },
			sentinel: codec.ErrValueOutOfRange,
			field:    "holder",
		},
		{
			name:     "string instead of integer",
			mutate:   func(r Row) Row { r[2] = "five"; return r },
			sentinel: ErrSchemaMismatch,
		},
		{
			name:     "integer instead of bytes",
			mutate:   func(r Row) Row { r[5] = uint64(1); return r },
			sentinel: ErrSchemaMismatch,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			buf, err := EncodeRow(ticketSchema, tc.mutate(valid()))
			require.Error(t, err)
			assert.Nil(t, buf)
			assert.ErrorIs(t, err, tc.sentinel)

			if tc.field != "" {
				var ce *codec.Error
				require.True(t, errors.As(err, &ce))
				assert.Equal(t, tc.field, ce.Field)
			}
		})
	}
}

func TestDecodeRow_BufferBoundaries(t *testing.T) {
	size := ticketSchema.TotalSize()
	buf, err := EncodeRow(ticketSchema, ticketToRow(ticket{Amount: 42, Color: 1}))
	require.NoError(t, err)

	t.Run("one byte short", func(t *testing.T) {
		_, err := DecodeRow(ticketSchema, buf[:size-1])
		assert.ErrorIs(t, err, codec.ErrBufferTooShort)
	})

	t.Run("empty", func(t *testing.T) {
		_, err := DecodeRow(ticketSchema, nil)
		assert.ErrorIs(t, err, codec.ErrBufferTooShort)
	})

	t.Run("exact", func(t *testing.T) {
		_, err := DecodeRow(ticketSchema, buf)
		assert.NoError(t, err)
	})

	t.Run("trailing bytes ignored", func(t *testing.T) {
		long := append(append([]byte{}, buf...), bytes.Repeat([]byte{0xEE}, 50)...)
		row, err := DecodeRow(ticketSchema, long)
		require.NoError(t, err)
		assert.Equal(t, uint64(42), row[3])

		again, err := EncodeRow(ticketSchema, row)
		require.NoError(t, err)
		assert.Equal(t, long[:size], again)
	})
}

func TestDecodeRow_InvalidEnumTag(t *testing.T) {
	buf, err := EncodeRow(ticketSchema, ticketToRow(ticket{}))
	require.NoError(t, err)

	_, colorOff, ok := ticketSchema.Field("color")
	require.True(t, ok)
	buf[colorOff] = 200

	row, err := DecodeRow(ticketSchema, buf)
	assert.Nil(t, row)
	require.ErrorIs(t, err, codec.ErrInvalidEnumTag)

	var ce *codec.Error
	require.True(t, errors.As(err, &ce))
	assert.Equal(t, "color", ce.Field)
	assert.Equal(t, colorOff, ce.Offset)
}

func TestDecodeRow_BytesAreCopied(t *testing.T) {
	buf, err := EncodeRow(ticketSchema, ticketToRow(ticket{Holder: [4]byte{9, 9, 9, 9}}))
	require.NoError(t, err)

	row, err := DecodeRow(ticketSchema, buf)
	require.NoError(t, err)

	for i := range buf {
		buf[i] = 0
	}
	assert.Equal(t, []byte{9, 9, 9, 9}, row[5])
}

func TestCodec_RoundTrip(t *testing.T) {
	c := newTicketCodec()

	testCases := []ticket{
		{},
		{Flags: 1, Port: 443, Seq: 99, Amount: 10, Color: 2, Holder: [4]byte{0xDE, 0xAD, 0xBE, 0xEF}},
		{Flags: math.MaxUint8, Port: math.MaxUint16, Seq: math.MaxUint32, Amount: math.MaxUint64, Color: 1},
	}

	for _, tc := range testCases {
		encoded, err := c.Encode(tc)
		require.NoError(t, err)
		assert.Len(t, encoded, c.Size())

		decoded, err := c.Decode(encoded)
		require.NoError(t, err)
		assert.Equal(t, tc, decoded)

		again, err := c.Encode(tc)
		require.NoError(t, err)
		assert.Equal(t, encoded, again, "encoding must be deterministic")
	}
}

func TestCodec_FromRowError(t *testing.T) {
	boom := errors.New("rejected")
	c := New(ticketSchema, ticketToRow, func(Row) (ticket, error) { return ticket{}, boom })

	buf, err := c.Encode(ticket{})
	require.NoError(t, err)

	_, err = c.Decode(buf)
	assert.ErrorIs(t, err, boom)
}

func TestCodec_Observer(t *testing.T) {
	rec := &recorder{}
	c := newTicketCodec(WithObserver(rec))

	buf, err := c.Encode(ticket{Amount: 5})
	require.NoError(t, err)
	_, err = c.Decode(buf)
	require.NoError(t, err)
	_, err = c.Decode(buf[:3])
	require.Error(t, err)

	require.Len(t, rec.obs, 3)
	assert.Equal(t, observation{"Ticket", OpEncode, c.Size(), codec.KindUnknown, false}, rec.obs[0])
	assert.Equal(t, observation{"Ticket", OpDecode, c.Size(), codec.KindUnknown, false}, rec.obs[1])
	assert.Equal(t, observation{"Ticket", OpDecode, 0, codec.KindBufferTooShort, true}, rec.obs[2])
}

func TestCodec_With(t *testing.T) {
	base := newTicketCodec()
	rec := &recorder{}
	observed := base.With(WithObserver(rec))

	_, err := base.Encode(ticket{})
	require.NoError(t, err)
	assert.Empty(t, rec.obs, "With must not modify the original codec")

	_, err = observed.Encode(ticket{})
	require.NoError(t, err)
	assert.Len(t, rec.obs, 1)
	assert.Same(t, base.Schema(), observed.Schema())
}

func TestCodec_ConcurrentUse(t *testing.T) {
	rec := &recorder{}
	c := newTicketCodec(WithObserver(rec))

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			in := ticket{Seq: uint32(n), Amount: uint64(n) * 1000, Color: uint8(n % 3)}
			buf, err := c.Encode(in)
			assert.NoError(t, err)
			out, err := c.Decode(buf)
			assert.NoError(t, err)
			assert.Equal(t, in, out)
		}(i)
	}
	wg.Wait()

	assert.Len(t, rec.obs, 32)
}

func TestOption(t *testing.T) {
	c := newTicketCodec()

	t.Run("none", func(t *testing.T) {
		buf, err := EncodeOption[ticket](c, nil)
		require.NoError(t, err)
		assert.Equal(t, []byte{0x00}, buf)

		v, n, err := DecodeOption(c, append(buf, 0xFF, 0xFF))
		require.NoError(t, err)
		assert.Nil(t, v)
		assert.Equal(t, 1, n)
	})

	t.Run("some", func(t *testing.T) {
		in := ticket{Amount: 77, Color: 1}
		buf, err := EncodeOption(c, &in)
		require.NoError(t, err)
		require.Len(t, buf, 1+c.Size())
		assert.Equal(t, byte(0x01), buf[0])

		v, n, err := DecodeOption(c, buf)
		require.NoError(t, err)
		require.NotNil(t, v)
		assert.Equal(t, in, *v)
		assert.Equal(t, len(buf), n)
	})

	t.Run("bad presence tag", func(t *testing.T) {
		_, _, err := DecodeOption(c, []byte{0x02})
		assert.ErrorIs(t, err, codec.ErrInvalidEnumTag)
	})

	t.Run("empty", func(t *testing.T) {
		_, _, err := DecodeOption(c, nil)
		assert.ErrorIs(t, err, codec.ErrBufferTooShort)
	})

	t.Run("truncated payload", func(t *testing.T) {
		_, _, err := DecodeOption(c, []byte{0x01, 0x00})
		assert.ErrorIs(t, err, codec.ErrBufferTooShort)

		var ce *codec.Error
		require.ErrorAs(t, err, &ce)
		assert.Equal(t, 2, ce.Offset)
	})

	t.Run("payload error offset is relative to input", func(t *testing.T) {
		buf, err := EncodeOption(c, &ticket{Color: 1})
		require.NoError(t, err)
		buf[1+15] = 0x03

		_, _, err = DecodeOption(c, buf)
		assert.ErrorIs(t, err, codec.ErrInvalidEnumTag)

		var ce *codec.Error
		require.ErrorAs(t, err, &ce)
		assert.Equal(t, "color", ce.Field)
		assert.Equal(t, 16, ce.Offset)
	})
}
