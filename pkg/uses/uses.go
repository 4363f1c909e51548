// Package uses implements the token "Uses" record: a consumable-usage
// counter attached to a token.
//
// # Layout
//
// Uses is 17 bytes, little-endian, no padding:
//
//	Offset  Size  Field      Type
//	0       1     useMethod  enum tag (0=burn 1=multiple 2=single)
//	1       8     total      u64
//	9       8     remaining  u64
//
// Token metadata embeds it as Option<Uses>, a presence byte followed by the
// record when present; see EncodeOption and DecodeOption.
//
// The codec only enforces structure. The domain rule remaining <= total is
// reported by CheckRemaining and is never applied during decode.
package uses

import (
	"errors"
	"fmt"

	"github.com/ssargent/tokenuses/pkg/owner"
	"github.com/ssargent/tokenuses/pkg/record"
	"github.com/ssargent/tokenuses/pkg/schema"
)

// Size is the encoded size of a Uses record.
const Size = 17

// ErrRemainingExceedsTotal is returned by CheckRemaining.
var ErrRemainingExceedsTotal = errors.New("uses: remaining exceeds total")

// Schema is the wire layout of Uses.
var Schema = schema.MustNew("Uses",
	schema.EnumField("useMethod", numUseMethods),
	schema.U64Field("total"),
	schema.U64Field("remaining"),
)

// Uses counts how often a token may still be used.
type Uses struct {
	UseMethod UseMethod `json:"use_method" yaml:"use_method"`
	// Total points at a master edition by value; it is kept as an opaque number.
	Total     uint64 `json:"total" yaml:"total"`
	Remaining uint64 `json:"remaining" yaml:"remaining"`
}

// Codec is the shared, stateless codec for Uses.
var Codec = NewCodec()

// NewCodec builds a Uses codec, e.g. one reporting to an observer.
func NewCodec(opts ...record.Option) *record.Codec[Uses] {
	return record.New(Schema, toRow, fromRow, opts...)
}

func toRow(u Uses) record.Row {
	return record.Row{uint64(u.UseMethod), u.Total, u.Remaining}
}

func fromRow(r record.Row) (Uses, error) {
	return Uses{
		UseMethod: UseMethod(r[0].(uint64)),
		Total:     r[1].(uint64),
		Remaining: r[2].(uint64),
	}, nil
}

// Encode serializes u into 17 bytes.
func Encode(u Uses) ([]byte, error) {
	return Codec.Encode(u)
}

// Decode reads a Uses record from the front of data.
func Decode(data []byte) (Uses, error) {
	return Codec.Decode(data)
}

// EncodeOption serializes an optional Uses as embedded in token metadata.
func EncodeOption(u *Uses) ([]byte, error) {
	return record.EncodeOption(Codec, u)
}

// DecodeOption reads an optional Uses and the number of bytes it occupied.
func DecodeOption(data []byte) (*Uses, int, error) {
	return record.DecodeOption(Codec, data)
}

// Load decodes a Uses account after checking that expected owns it.
// A nil validator means owner.Strict.
func Load(acct owner.Account, expected owner.Tag, v owner.Validator) (Uses, error) {
	return owner.Load[Uses](acct, expected, v, Codec)
}

// CheckRemaining reports whether u satisfies remaining <= total.
func (u Uses) CheckRemaining() error {
	if u.Remaining > u.Total {
		return fmt.Errorf("%w: %d > %d", ErrRemainingExceedsTotal, u.Remaining, u.Total)
	}
	return nil
}

func (u Uses) String() string {
	return fmt.Sprintf("Uses{%s %d/%d}", u.UseMethod, u.Remaining, u.Total)
}
