package hostval

import (
	"fmt"
	"math"
	"reflect"
	"strconv"
	"strings"
	"unicode/utf8"
)

// FormatValue formats v according to fs.
func FormatValue(v any, fs Spec) (string, error) {
	if v == nil {
		return formatString("<nil>", fs)
	}
	if fs.Type == 0 || fs.Type == 's' {
		switch x := v.(type) {
		case string:
			return formatString(x, fs)
		case fmt.Stringer:
			return formatString(x.String(), fs)
		case error:
			return formatString(x.Error(), fs)
		}
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.String:
		return formatString(rv.String(), fs)
	case reflect.Bool:
		if fs.Type == 0 || fs.Type == 's' {
			return formatString(strconv.FormatBool(rv.Bool()), fs)
		}
		var n uint64
		if rv.Bool() {
			n = 1
		}
		return formatInteger(false, n, fs)
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		n := rv.Int()
		if n < 0 {
			return formatInteger(true, uint64(-(n+1))+1, fs)
		}
		return formatInteger(false, uint64(n), fs)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return formatInteger(false, rv.Uint(), fs)
	case reflect.Float32:
		return formatFloat(rv.Float(), 32, fs)
	case reflect.Float64:
		return formatFloat(rv.Float(), 64, fs)
	}

	if fs.Type == 0 || fs.Type == 's' {
		return formatString(fmt.Sprint(v), fs)
	}
	return "", fmt.Errorf("%w: unknown format code %s for object of type %T", ErrFormatSpec, fs.typeName(), v)
}

func formatString(s string, fs Spec) (string, error) {
	switch {
	case fs.Type != 0 && fs.Type != 's':
		return "", fmt.Errorf("%w: unknown format code %s for object of type string", ErrFormatSpec, fs.typeName())
	case fs.Sign != 0:
		return "", fmt.Errorf("%w: sign not allowed in string format specifier", ErrFormatSpec)
	case fs.Alternate:
		return "", fmt.Errorf("%w: alternate form (#) not allowed in string format specifier", ErrFormatSpec)
	case fs.Align == '=':
		return "", fmt.Errorf("%w: '=' alignment not allowed in string format specifier", ErrFormatSpec)
	case fs.Grouping != 0:
		return "", fmt.Errorf("%w: cannot specify '%c' with 's'", ErrFormatSpec, fs.Grouping)
	}
	if fs.Precision >= 0 && utf8.RuneCountInString(s) > fs.Precision {
		s = string([]rune(s)[:fs.Precision])
	}
	align := fs.Align
	if align == 0 {
		align = '<'
	}
	return pad(s, fs.Width, fs.Fill, align), nil
}

func sign(neg bool, mode byte) string {
	switch {
	case neg:
		return "-"
	case mode == '+':
		return "+"
	case mode == ' ':
		return " "
	}
	return ""
}

func formatInteger(neg bool, mag uint64, fs Spec) (string, error) {
	var (
		base   = 10
		prefix string
		upper  bool
	)
	switch fs.Type {
	case 0, 'd', 'n':
	case 'b':
		base, prefix = 2, "0b"
	case 'o':
		base, prefix = 8, "0o"
	case 'x':
		base, prefix = 16, "0x"
	case 'X':
		base, prefix, upper = 16, "0X", true
	case 'c':
		if neg || mag > utf8.MaxRune {
			return "", fmt.Errorf("%w: 'c' arg not in range(0x110000)", ErrFormatSpec)
		}
		if fs.Sign != 0 {
			return "", fmt.Errorf("%w: sign not allowed with integer format specifier 'c'", ErrFormatSpec)
		}
		return pad(string(rune(mag)), fs.Width, fs.Fill, alignOr(fs.Align, '<')), nil
	case 'e', 'E', 'f', 'F', 'g', 'G', '%':
		f := float64(mag)
		if neg {
			f = -f
		}
		return formatFloat(f, 64, fs)
	default:
		return "", fmt.Errorf("%w: unknown format code %s for object of type int", ErrFormatSpec, fs.typeName())
	}
	if fs.Precision >= 0 {
		return "", fmt.Errorf("%w: precision not allowed in integer format specifier", ErrFormatSpec)
	}

	body := strconv.FormatUint(mag, base)
	if upper {
		body = strings.ToUpper(body)
	}
	if !fs.Alternate {
		prefix = ""
	}
	switch {
	case fs.Grouping == ',' && base != 10:
		return "", fmt.Errorf("%w: cannot specify ',' with %s", ErrFormatSpec, fs.typeName())
	case fs.Grouping != 0 && base == 10:
		body = group(body, fs.Grouping, 3)
	case fs.Grouping != 0:
		body = group(body, fs.Grouping, 4)
	}
	return padNumber(sign(neg, fs.Sign), prefix, body, fs), nil
}

func formatFloat(f float64, bitSize int, fs Spec) (string, error) {
	neg := math.Signbit(f) && !math.IsNaN(f)
	abs := math.Abs(f)
	prec := fs.Precision
	suffix := ""

	var body string
	switch fs.Type {
	case 0, 'n':
		switch {
		case math.IsInf(abs, 0):
			body = "inf"
		case math.IsNaN(abs):
			body = "nan"
		case prec < 0:
			body = strconv.FormatFloat(abs, 'g', -1, bitSize)
		default:
			body = strconv.FormatFloat(abs, 'g', max(prec, 1), bitSize)
		}
	case 'e', 'E', 'f', 'F', 'g', 'G', '%':
		if prec < 0 {
			prec = 6
		}
		verb := fs.Type | 0x20 // нижний регистр
		if fs.Type == '%' {
			abs *= 100
			verb = 'f'
			suffix = "%"
		}
		switch {
		case math.IsInf(abs, 0):
			body = "inf"
		case math.IsNaN(abs):
			body = "nan"
		default:
			body = strconv.FormatFloat(abs, verb, prec, bitSize)
		}
		if fs.Type == 'E' || fs.Type == 'F' || fs.Type == 'G' {
			body = strings.ToUpper(body)
		}
	default:
		return "", fmt.Errorf("%w: unknown format code %s for object of type float", ErrFormatSpec, fs.typeName())
	}

	if fs.Grouping != 0 {
		body = group(body, fs.Grouping, 3)
	}
	return padNumber(sign(neg, fs.Sign), "", body+suffix, fs), nil
}

func alignOr(a, def byte) byte {
	if a == 0 {
		return def
	}
	return a
}
