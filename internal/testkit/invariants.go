// Package testkit holds checks shared by unit tests and fuzzers.
package testkit

import (
	"fmt"
	"strings"

	"fortio.org/safecast"

	"bracefmt/internal/source"
	"bracefmt/internal/token"
)

// CheckTokenInvariants verifies a token stream produced for src:
// 1) spans are in bounds, ordered and tile src without gaps
// 2) each literal equals the unescaped text under its span
// 3) each field span starts with '{', ends with '}' and contains its name
// and spec spans, whose text matches Name and Spec
func CheckTokenInvariants(src string, toks []token.Token) error {
	size, err := safecast.Conv[uint32](len(src))
	if err != nil {
		return fmt.Errorf("len src overflow: %w", err)
	}
	text := func(sp source.Span) string { return src[sp.Start:sp.End] }

	var pos uint32
	for i, tok := range toks {
		ls := tok.LiteralSpan
		if ls.Start != pos || ls.End < ls.Start || ls.End > size {
			return fmt.Errorf("token %d: literal span %v does not continue at %d", i, ls, pos)
		}
		if got := unescape(text(ls)); got != tok.Literal {
			return fmt.Errorf("token %d: literal %q, source text unescapes to %q", i, tok.Literal, got)
		}
		pos = ls.End

		f := tok.Field
		if f == nil {
			if i != len(toks)-1 {
				return fmt.Errorf("token %d: literal-only token before the end", i)
			}
			if tok.Literal == "" {
				return fmt.Errorf("token %d: empty trailing literal", i)
			}
			continue
		}
		if f.Span.Start != pos || f.Span.End > size || f.Span.Len() < 2 {
			return fmt.Errorf("token %d: field span %v does not continue at %d", i, f.Span, pos)
		}
		raw := text(f.Span)
		if raw[0] != '{' || raw[len(raw)-1] != '}' {
			return fmt.Errorf("token %d: field text %q is not braced", i, raw)
		}
		if !f.Span.Contains(f.NameSpan) || text(f.NameSpan) != f.Name {
			return fmt.Errorf("token %d: name span %v does not hold %q", i, f.NameSpan, f.Name)
		}
		if f.Spec != "" && (!f.Span.Contains(f.SpecSpan) || text(f.SpecSpan) != f.Spec) {
			return fmt.Errorf("token %d: spec span %v does not hold %q", i, f.SpecSpan, f.Spec)
		}
		pos = f.Span.End
	}
	if pos != size {
		return fmt.Errorf("tokens end at %d, source has %d bytes", pos, size)
	}
	return nil
}

func unescape(s string) string {
	return strings.NewReplacer("{{", "{", "}}", "}").Replace(s)
}

// Reassemble builds a format string equivalent to the token stream: literals
// re-escaped and fields in canonical form. Tokenizing the result yields the
// same literals and fields.
func Reassemble(toks []token.Token) string {
	esc := strings.NewReplacer("{", "{{", "}", "}}")
	var sb strings.Builder
	for _, tok := range toks {
		sb.WriteString(esc.Replace(tok.Literal))
		if tok.Field != nil {
			sb.WriteString(tok.Field.String())
		}
	}
	return sb.String()
}
