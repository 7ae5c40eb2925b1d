// Package token defines the tokens produced by scanning a format string.
// Invariants:
//   - Tokens come out strictly left to right and never overlap.
//   - Token.Literal is the unescaped text ("{{" already turned into "{").
//   - LiteralSpan covers the raw source bytes of the literal, escapes included.
//   - A FieldSpec's Span covers the whole replacement field, braces included;
//     NameSpan and SpecSpan lie inside it.
//   - FieldSpec.Spec is the raw format spec; nested "{...}" inside it are not
//     resolved by the scanner.
package token
