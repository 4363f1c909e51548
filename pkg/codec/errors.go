package codec

import (
	"errors"
	"fmt"
)

// Kind classifies codec and validation failures.
type Kind uint8

const (
	KindUnknown Kind = iota
	KindBufferTooShort
	KindValueOutOfRange
	KindInvalidEnumTag
	KindDuplicateFieldName
	KindInvalidOwner
	KindInvalidAccountData
)

// Sentinel errors, one per Kind. Every *Error matches its sentinel with errors.Is.
var (
	ErrBufferTooShort     = errors.New("buffer too short")
	ErrValueOutOfRange    = errors.New("value out of range")
	ErrInvalidEnumTag     = errors.New("invalid enum tag")
	ErrDuplicateFieldName = errors.New("duplicate field name")
	ErrInvalidOwner       = errors.New("invalid owner")
	ErrInvalidAccountData = errors.New("invalid account data")
)

var sentinels = map[Kind]error{
	KindBufferTooShort:     ErrBufferTooShort,
	KindValueOutOfRange:    ErrValueOutOfRange,
	KindInvalidEnumTag:     ErrInvalidEnumTag,
	KindDuplicateFieldName: ErrDuplicateFieldName,
	KindInvalidOwner:       ErrInvalidOwner,
	KindInvalidAccountData: ErrInvalidAccountData,
}

// String returns the snake_case name used in logs and metric labels.
func (k Kind) String() string {
	switch k {
	case KindBufferTooShort:
		return "buffer_too_short"
	case KindValueOutOfRange:
		return "value_out_of_range"
	case KindInvalidEnumTag:
		return "invalid_enum_tag"
	case KindDuplicateFieldName:
		return "duplicate_field_name"
	case KindInvalidOwner:
		return "invalid_owner"
	case KindInvalidAccountData:
		return "invalid_account_data"
	default:
		return "unknown"
	}
}

// Error is a failure with enough context to locate the bad input.
// Offset is -1 when the failure is not tied to a buffer position.
type Error struct {
	Kind   Kind
	Field  string
	Offset int
	Detail string
}

// Errorf builds an *Error of the given kind.
func Errorf(kind Kind, field string, offset int, format string, args ...any) *Error {
	return &Error{
		Kind:   kind,
		Field:  field,
		Offset: offset,
		Detail: fmt.Sprintf(format, args...),
	}
}

func (e *Error) Error() string {
	msg := e.Kind.String()
	if s, ok := sentinels[e.Kind]; ok {
		msg = s.Error()
	}
	if e.Field != "" {
		msg += fmt.Sprintf(" (field %q", e.Field)
		if e.Offset >= 0 {
			msg += fmt.Sprintf(" at offset %d", e.Offset)
		}
		msg += ")"
	} else if e.Offset >= 0 {
		msg += fmt.Sprintf(" (offset %d)", e.Offset)
	}
	if e.Detail != "" {
		msg += ": " + e.Detail
	}
	return msg
}

// Is reports whether target is the sentinel for e.Kind.
func (e *Error) Is(target error) bool {
	s, ok := sentinels[e.Kind]
	return ok && s == target
}

// WithField returns a copy of e attributed to field, keeping an existing attribution.
func (e *Error) WithField(field string) *Error {
	if e.Field != "" {
		return e
	}
	c := *e
	c.Field = field
	return &c
}

// Shift returns a copy of e with its offset moved by delta. Errors without an
// offset are returned unchanged.
func (e *Error) Shift(delta int) *Error {
	if e.Offset < 0 || delta == 0 {
		return e
	}
	c := *e
	c.Offset += delta
	return &c
}

// KindOf extracts the Kind of err, looking through wrapping.
func KindOf(err error) Kind {
	if err == nil {
		return KindUnknown
	}
	var ce *Error
	if errors.As(err, &ce) {
		return ce.Kind
	}
	for k, s := range sentinels {
		if errors.Is(err, s) {
			return k
		}
	}
	return KindUnknown
}
