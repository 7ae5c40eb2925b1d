package hostval

import (
	"fmt"
	"strconv"
	"unicode/utf8"
)

// Spec is a parsed format specifier. The zero Spec is not valid, use
// ParseSpec("") for the empty one.
type Spec struct {
	Fill      rune
	Align     byte // 0, '<', '>', '=', '^'
	Sign      byte // 0, '+', '-', ' '
	Alternate bool
	ZeroPad   bool
	Width     int
	Grouping  byte // 0, ',', '_'
	Precision int  // -1 when absent
	Type      byte // 0 when absent
}

// MaxWidth is the largest accepted width or precision.
const MaxWidth = 1 << 16

func isAlign(b byte) bool {
	return b == '<' || b == '>' || b == '=' || b == '^'
}

func isDigit(b byte) bool { return b >= '0' && b <= '9' }

// ParseSpec parses the text after ':' in a replacement field.
func ParseSpec(spec string) (Spec, error) {
	fs := Spec{Fill: ' ', Precision: -1}
	if spec == "" {
		return fs, nil
	}

	i := 0
	fillSet := false
	if r, size := utf8.DecodeRuneInString(spec); size < len(spec) && isAlign(spec[size]) {
		fs.Fill, fs.Align = r, spec[size]
		fillSet = true
		i = size + 1
	} else if isAlign(spec[0]) {
		fs.Align = spec[0]
		i = 1
	}

	if i < len(spec) && (spec[i] == '+' || spec[i] == '-' || spec[i] == ' ') {
		fs.Sign = spec[i]
		i++
	}
	if i < len(spec) && spec[i] == '#' {
		fs.Alternate = true
		i++
	}
	if i < len(spec) && spec[i] == '0' {
		fs.ZeroPad = true
		if !fillSet {
			fs.Fill = '0'
		}
		i++
	}

	start := i
	for i < len(spec) && isDigit(spec[i]) {
		i++
	}
	if i > start {
		n, err := strconv.Atoi(spec[start:i])
		if err != nil {
			return fs, fmt.Errorf("%w: too many decimal digits in format string", ErrFormatSpec)
		}
		if n > MaxWidth {
			return fs, fmt.Errorf("%w: width %d exceeds %d", ErrFormatSpec, n, MaxWidth)
		}
		fs.Width = n
	}

	if i < len(spec) && (spec[i] == ',' || spec[i] == '_') {
		fs.Grouping = spec[i]
		i++
	}

	if i < len(spec) && spec[i] == '.' {
		i++
		start = i
		for i < len(spec) && isDigit(spec[i]) {
			i++
		}
		if i == start {
			return fs, fmt.Errorf("%w: format specifier missing precision", ErrFormatSpec)
		}
		n, err := strconv.Atoi(spec[start:i])
		if err != nil {
			return fs, fmt.Errorf("%w: too many decimal digits in format string", ErrFormatSpec)
		}
		if n > MaxWidth {
			return fs, fmt.Errorf("%w: precision %d exceeds %d", ErrFormatSpec, n, MaxWidth)
		}
		fs.Precision = n
	}

	switch len(spec) - i {
	case 0:
	case 1:
		fs.Type = spec[i]
	default:
		return fs, fmt.Errorf("%w: %q", ErrFormatSpec, spec)
	}
	return fs, nil
}

func (fs Spec) typeName() string {
	if fs.Type == 0 {
		return "''"
	}
	return "'" + string(fs.Type) + "'"
}
