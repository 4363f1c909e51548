package uses

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/ssargent/tokenuses/pkg/codec"
)

// UseMethod says how a token's uses are consumed.
type UseMethod uint8

const (
	Burn UseMethod = iota
	Multiple
	Single

	numUseMethods = 3
)

var useMethodNames = [numUseMethods]string{"burn", "multiple", "single"}

// Valid reports whether m is a declared variant.
func (m UseMethod) Valid() bool {
	return m < numUseMethods
}

func (m UseMethod) String() string {
	if !m.Valid() {
		return fmt.Sprintf("UseMethod(%d)", uint8(m))
	}
	return useMethodNames[m]
}

// ParseUseMethod accepts a variant name in any case or its numeric tag.
func ParseUseMethod(s string) (UseMethod, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for i, n := range useMethodNames {
		if name == n {
			return UseMethod(i), nil
		}
	}

	if tag, err := strconv.ParseUint(name, 10, 8); err == nil {
		if m := UseMethod(tag); m.Valid() {
			return m, nil
		}
	}

	return 0, codec.Errorf(codec.KindInvalidEnumTag, "useMethod", -1, "unknown use method %q", s)
}

// MarshalText implements encoding.TextMarshaler.
func (m UseMethod) MarshalText() ([]byte, error) {
	if !m.Valid() {
		return nil, codec.Errorf(codec.KindInvalidEnumTag, "useMethod", -1, "tag %d, want < %d", uint8(m), numUseMethods)
	}
	return []byte(m.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (m *UseMethod) UnmarshalText(text []byte) error {
	parsed, err := ParseUseMethod(string(text))
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}
