// Package owner decides whether an account buffer may be trusted before it
// is decoded.
//
// Record codecs are owner-agnostic: they will happily decode any bytes with
// the right shape. Data read from a shared ledger must first be checked
// against the program that is expected to own it, otherwise a foreign
// account with a lookalike layout would be accepted. Load runs that check
// and only then hands the data to a decoder.
package owner

import (
	"bytes"
	"fmt"

	"github.com/mr-tron/base58"

	"github.com/ssargent/tokenuses/pkg/codec"
)

// TagSize is the length of an owner key in bytes.
const TagSize = 32

// Tag identifies the program that owns an account.
type Tag [TagSize]byte

// ParseTag decodes a base58 owner key.
func ParseTag(s string) (Tag, error) {
	var t Tag
	if s == "" {
		return t, codec.Errorf(codec.KindInvalidAccountData, "owner", -1, "owner tag is empty")
	}

	raw, err := base58.Decode(s)
	if err != nil {
		return t, codec.Errorf(codec.KindInvalidAccountData, "owner", -1, "owner tag %q is not base58: %v", s, err)
	}
	if len(raw) != TagSize {
		return t, codec.Errorf(codec.KindInvalidAccountData, "owner", -1, "owner tag decodes to %d bytes, want %d", len(raw), TagSize)
	}

	copy(t[:], raw)
	return t, nil
}

// MustParseTag is like ParseTag but panics on error.
func MustParseTag(s string) Tag {
	t, err := ParseTag(s)
	if err != nil {
		panic(err)
	}
	return t
}

// TagFromBytes converts a raw 32 byte key.
func TagFromBytes(b []byte) (Tag, error) {
	var t Tag
	if len(b) != TagSize {
		return t, codec.Errorf(codec.KindInvalidAccountData, "owner", -1, "owner tag is %d bytes, want %d", len(b), TagSize)
	}
	copy(t[:], b)
	return t, nil
}

// String returns the base58 form.
func (t Tag) String() string {
	return base58.Encode(t[:])
}

// IsZero reports whether t is the all-zero key.
func (t Tag) IsZero() bool {
	return t == Tag{}
}

// MarshalText implements encoding.TextMarshaler.
func (t Tag) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (t *Tag) UnmarshalText(text []byte) error {
	parsed, err := ParseTag(string(text))
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// Validator checks the owner declared for a buffer against the owner the
// caller expects.
type Validator interface {
	ValidateOwner(declared []byte, expected Tag) error
}

// ValidatorFunc adapts a function to Validator.
type ValidatorFunc func(declared []byte, expected Tag) error

func (f ValidatorFunc) ValidateOwner(declared []byte, expected Tag) error {
	return f(declared, expected)
}

// Strict rejects absent or malformed owner tags with ErrInvalidAccountData
// and mismatching ones with ErrInvalidOwner.
type Strict struct{}

func (Strict) ValidateOwner(declared []byte, expected Tag) error {
	if len(declared) == 0 {
		return codec.Errorf(codec.KindInvalidAccountData, "owner", -1, "account has no owner")
	}
	if len(declared) != TagSize {
		return codec.Errorf(codec.KindInvalidAccountData, "owner", -1, "owner tag is %d bytes, want %d", len(declared), TagSize)
	}
	if !bytes.Equal(declared, expected[:]) {
		return codec.Errorf(codec.KindInvalidOwner, "owner", -1, "owned by %s, want %s", base58.Encode(declared), expected)
	}
	return nil
}

// Account is a raw account as handed over by whatever fetched it.
type Account struct {
	Key   Tag
	Owner []byte
	Data  []byte
}

// Decoder turns trusted account data into a value.
type Decoder[T any] interface {
	Decode(data []byte) (T, error)
}

// Load validates acct's owner and, only if that passes, decodes its data.
// A nil validator means Strict.
func Load[T any](acct Account, expected Tag, v Validator, d Decoder[T]) (T, error) {
	var zero T
	if v == nil {
		v = Strict{}
	}

	if err := v.ValidateOwner(acct.Owner, expected); err != nil {
		return zero, fmt.Errorf("account %s: %w", acct.Key, err)
	}

	out, err := d.Decode(acct.Data)
	if err != nil {
		return zero, fmt.Errorf("account %s: %w", acct.Key, err)
	}
	return out, nil
}
