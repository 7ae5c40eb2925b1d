package lexer

import (
	"unicode/utf8"

	"bracefmt/internal/diag"
	"bracefmt/internal/source"
	"bracefmt/internal/token"
)

// scanField разбирает поле, начиная с '{' под курсором.
// Грамматика: '{' name ['!' conv] [':' spec] '}'.
func (lx *Lexer) scanField() (*token.FieldSpec, error) {
	start := lx.cursor.Mark()
	lx.cursor.Bump() // '{'
	if lx.cursor.EOF() {
		return nil, diag.Errorf(diag.BrcSingleOpen, lx.cursor.SpanFrom(start),
			"Single '{' encountered in format string")
	}

	nameStart := lx.cursor.Mark()
	if err := lx.scanFieldName(start); err != nil {
		return nil, err
	}
	field := &token.FieldSpec{
		Name:     lx.cursor.TextFrom(nameStart),
		NameSpan: lx.cursor.SpanFrom(nameStart),
	}

	if lx.cursor.Eat('!') {
		conv, err := lx.scanConversion(start)
		if err != nil {
			return nil, err
		}
		field.Conversion = conv
	}

	if lx.cursor.Eat(':') {
		specStart := lx.cursor.Mark()
		if err := lx.scanSpec(start); err != nil {
			return nil, err
		}
		field.Spec = lx.cursor.TextFrom(specStart)
		field.SpecSpan = lx.cursor.SpanFrom(specStart)
	}

	// под курсором '}', это гарантируют сканеры выше
	lx.cursor.Bump()
	field.Span = lx.cursor.SpanFrom(start)
	return field, nil
}

// scanFieldName останавливается на первом '}', '!' или ':' вне квадратных скобок.
// Содержимое [...] не интерпретируется.
func (lx *Lexer) scanFieldName(fieldStart Mark) error {
	for {
		if lx.cursor.EOF() {
			return lx.unterminated(fieldStart)
		}
		switch lx.cursor.Peek() {
		case '}', '!', ':':
			return nil
		case '[':
			lx.cursor.Bump()
			if !lx.cursor.SkipTo("]") {
				return lx.unterminated(fieldStart)
			}
			lx.cursor.Bump()
		case '{':
			m := lx.cursor.Mark()
			lx.cursor.Bump()
			return diag.Errorf(diag.BrcOpenInFieldName, lx.cursor.SpanFrom(m),
				"unexpected '{' in field name")
		default:
			lx.cursor.Bump()
		}
	}
}

// scanConversion читает один символ конверсии после '!'.
func (lx *Lexer) scanConversion(fieldStart Mark) (token.Conversion, error) {
	// "{0!}": поле закончилось раньше, чем появился символ конверсии
	if lx.cursor.EOF() || lx.cursor.Peek() == '}' {
		return token.NoConversion, diag.Errorf(diag.BrcConversionEOF, lx.cursor.SpanFrom(fieldStart),
			"end of string while looking for conversion specifier")
	}

	convStart := lx.cursor.Mark()
	r, size := utf8.DecodeRuneInString(lx.cursor.Src[lx.cursor.Off:])
	lx.cursor.Off += size
	convSpan := lx.cursor.SpanFrom(convStart)

	if lx.cursor.EOF() {
		return token.NoConversion, lx.unterminated(fieldStart)
	}
	if next := lx.cursor.Peek(); next != ':' && next != '}' {
		return token.NoConversion, diag.Errorf(diag.BrcExpectColonAfterConv,
			source.SpanOf(lx.cursor.Off, lx.cursor.Off+1),
			"expected ':' after conversion specifier")
	}

	conv, ok := token.ParseConversion(r)
	if !ok {
		if r > 32 && r < 127 {
			return token.NoConversion, diag.Errorf(diag.BrcUnknownConversion, convSpan,
				"Unknown conversion specifier %c", r)
		}
		return token.NoConversion, diag.Errorf(diag.BrcUnknownConversion, convSpan,
			"Unknown conversion specifier \\x%x", r)
	}
	return conv, nil
}

// scanSpec читает format spec с учётом вложенности фигурных скобок.
// Останавливается перед закрывающей '}' поля.
func (lx *Lexer) scanSpec(fieldStart Mark) error {
	depth := 1
	for {
		if lx.cursor.EOF() {
			return lx.unterminated(fieldStart)
		}
		switch lx.cursor.Peek() {
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return nil
			}
		}
		lx.cursor.Bump()
	}
}

func (lx *Lexer) unterminated(fieldStart Mark) error {
	return diag.Errorf(diag.BrcUnterminatedField, lx.cursor.SpanFrom(fieldStart),
		"expected '}' before end of string")
}
