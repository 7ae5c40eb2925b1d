package token

import (
	"strings"

	"bracefmt/internal/source"
)

// Token is a literal fragment optionally followed by a replacement field.
type Token struct {
	Literal     string
	LiteralSpan source.Span
	Field       *FieldSpec
}

// HasField reports whether the token carries a replacement field.
func (t Token) HasField() bool { return t.Field != nil }

// Span covers the literal and the field, if any.
func (t Token) Span() source.Span {
	if t.Field == nil {
		return t.LiteralSpan
	}
	return t.LiteralSpan.Cover(t.Field.Span)
}

// FieldSpec describes one "{name!conv:spec}" replacement field.
type FieldSpec struct {
	Name       string
	Conversion Conversion
	Spec       string

	Span     source.Span // whole field, braces included
	NameSpan source.Span
	SpecSpan source.Span // empty when there was no ':'
}

// String reassembles the field in canonical form.
func (f *FieldSpec) String() string {
	var sb strings.Builder
	sb.WriteByte('{')
	sb.WriteString(f.Name)
	if f.Conversion != NoConversion {
		sb.WriteByte('!')
		sb.WriteByte(byte(f.Conversion))
	}
	if f.Spec != "" {
		sb.WriteByte(':')
		sb.WriteString(f.Spec)
	}
	sb.WriteByte('}')
	return sb.String()
}
