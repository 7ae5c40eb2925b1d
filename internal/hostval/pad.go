package hostval

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

// pad aligns s inside width terminal cells.
func pad(s string, width int, fill rune, align byte) string {
	w := runewidth.StringWidth(s)
	if w >= width {
		return s
	}
	fw := runewidth.RuneWidth(fill)
	if fw < 1 {
		fw = 1
	}
	n := (width - w) / fw
	switch align {
	case '>':
		return strings.Repeat(string(fill), n) + s
	case '^':
		left := n / 2
		return strings.Repeat(string(fill), left) + s + strings.Repeat(string(fill), n-left)
	default:
		return s + strings.Repeat(string(fill), n)
	}
}

// padNumber pads sign+prefix+body; '=' puts the padding after the sign and
// the base prefix.
func padNumber(sign, prefix, body string, fs Spec) string {
	align := fs.Align
	if align == 0 {
		align = '>'
		if fs.ZeroPad {
			align = '='
		}
	}
	if align != '=' {
		return pad(sign+prefix+body, fs.Width, fs.Fill, align)
	}
	head := sign + prefix
	w := runewidth.StringWidth(head + body)
	if w >= fs.Width {
		return head + body
	}
	return head + strings.Repeat(string(fs.Fill), fs.Width-w) + body
}

// group inserts sep every n digits counting from the right of the leading
// digit run of s. n is 3 for decimal and 4 for binary, octal and hex bodies,
// which consist of digits only.
func group(s string, sep byte, n int) string {
	digit := isDigit
	if n == 4 {
		digit = isHexDigit
	}
	end := 0
	for end < len(s) && digit(s[end]) {
		end++
	}
	digits, rest := s[:end], s[end:]
	if len(digits) <= n {
		return s
	}
	var sb strings.Builder
	first := len(digits) % n
	if first > 0 {
		sb.WriteString(digits[:first])
	}
	for i := first; i < len(digits); i += n {
		if sb.Len() > 0 {
			sb.WriteByte(sep)
		}
		sb.WriteString(digits[i : i+n])
	}
	sb.WriteString(rest)
	return sb.String()
}

func isHexDigit(b byte) bool {
	return isDigit(b) || (b >= 'a' && b <= 'f') || (b >= 'A' && b <= 'F')
}
