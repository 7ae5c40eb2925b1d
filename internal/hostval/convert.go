package hostval

import (
	"fmt"
	"strconv"
	"strings"

	"bracefmt/internal/token"
)

// Convert applies a !s, !r or !a conversion.
func Convert(v any, conv token.Conversion) (string, error) {
	switch conv {
	case token.ConvStr:
		return Str(v), nil
	case token.ConvRepr:
		return Repr(v), nil
	case token.ConvASCII:
		return ASCII(Repr(v)), nil
	}
	return "", fmt.Errorf("%w: %q", ErrConversion, conv.String())
}

// Str is the plain textual form of v.
func Str(v any) string {
	switch x := v.(type) {
	case nil:
		return "<nil>"
	case string:
		return x
	case fmt.Stringer:
		return x.String()
	case error:
		return x.Error()
	}
	return fmt.Sprint(v)
}

// Repr is an unambiguous form of v: strings are quoted, other values use
// their Go syntax representation.
func Repr(v any) string {
	switch x := v.(type) {
	case nil:
		return "nil"
	case string:
		return strconv.Quote(x)
	case []byte:
		return strconv.Quote(string(x))
	case error:
		return strconv.Quote(x.Error())
	case fmt.Stringer:
		return strconv.Quote(x.String())
	}
	return fmt.Sprintf("%#v", v)
}

// ASCII escapes every non-ASCII rune of s.
func ASCII(s string) string {
	var sb strings.Builder
	sb.Grow(len(s))
	for _, r := range s {
		switch {
		case r < 0x80:
			sb.WriteRune(r)
		case r < 0x100:
			fmt.Fprintf(&sb, "\\x%02x", r)
		case r <= 0xFFFF:
			fmt.Fprintf(&sb, "\\u%04x", r)
		default:
			fmt.Fprintf(&sb, "\\U%08x", r)
		}
	}
	return sb.String()
}
