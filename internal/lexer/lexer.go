package lexer

import (
	"strings"

	"bracefmt/internal/diag"
	"bracefmt/internal/token"
)

// Lexer splits a format string into tokens. It is single-pass: create a new
// Lexer to scan the same string again.
type Lexer struct {
	cursor Cursor
	err    error // первая ошибка; после неё Next всегда возвращает её же
	done   bool
}

func New(src string) *Lexer {
	return &Lexer{cursor: NewCursor(src)}
}

// Next возвращает следующий токен. ok=false означает конец строки.
// Ошибка фатальна: токен, на котором она возникла, не выдаётся.
func (lx *Lexer) Next() (tok token.Token, ok bool, err error) {
	if lx.err != nil {
		return token.Token{}, false, lx.err
	}
	if lx.done {
		return token.Token{}, false, nil
	}

	var lit strings.Builder
	litStart := lx.cursor.Mark()

	for !lx.cursor.EOF() {
		switch lx.cursor.Peek() {
		case '{':
			if b0, b1, ok2 := lx.cursor.Peek2(); ok2 && b0 == '{' && b1 == '{' {
				lx.cursor.Bump()
				lx.cursor.Bump()
				lit.WriteByte('{')
				continue
			}
			litSpan := lx.cursor.SpanFrom(litStart)
			field, ferr := lx.scanField()
			if ferr != nil {
				return lx.fail(ferr)
			}
			return token.Token{Literal: lit.String(), LiteralSpan: litSpan, Field: field}, true, nil

		case '}':
			if b0, b1, ok2 := lx.cursor.Peek2(); ok2 && b0 == '}' && b1 == '}' {
				lx.cursor.Bump()
				lx.cursor.Bump()
				lit.WriteByte('}')
				continue
			}
			m := lx.cursor.Mark()
			lx.cursor.Bump()
			return lx.fail(diag.Errorf(diag.BrcSingleClose, lx.cursor.SpanFrom(m),
				"Single '}' encountered in format string"))

		default:
			m := lx.cursor.Mark()
			lx.cursor.SkipTo("{}")
			lit.WriteString(lx.cursor.TextFrom(m))
		}
	}

	lx.done = true
	if lit.Len() == 0 {
		return token.Token{}, false, nil
	}
	return token.Token{Literal: lit.String(), LiteralSpan: lx.cursor.SpanFrom(litStart)}, true, nil
}

func (lx *Lexer) fail(err error) (token.Token, bool, error) {
	lx.err = err
	return token.Token{}, false, err
}

// Offset reports how far the lexer has scanned.
func (lx *Lexer) Offset() int {
	return lx.cursor.Off
}
