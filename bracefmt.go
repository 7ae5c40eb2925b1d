// Package bracefmt renders brace format strings:
//
//	bracefmt.Format("{0} has {n:>3} points", []any{"Ann"}, map[string]any{"n": 7})
//	// "Ann has   7 points"
//
// A template is literal text with replacement fields "{name!conv:spec}".
// "{{" and "}}" stand for literal braces. Field names select a positional
// argument by index ("0"), the next one automatically ("") or a keyword
// argument ("name"), optionally followed by subscripts ("0[key][2]").
//
// Errors are *Error values; use errors.Is with the Err* kinds to branch on
// them and errors.As to get the code and the byte span in the template.
package bracefmt

import (
	"iter"

	"bracefmt/internal/diag"
	"bracefmt/internal/fieldpath"
	"bracefmt/internal/lexer"
	"bracefmt/internal/render"
	"bracefmt/internal/token"
)

type (
	// Token is a literal fragment optionally followed by a field.
	Token = token.Token
	// FieldSpec is one parsed "{name!conv:spec}" field.
	FieldSpec = token.FieldSpec
	// Conversion is the "!s", "!r" or "!a" marker of a field.
	Conversion = token.Conversion
	// Head is the argument a field name selects.
	Head = fieldpath.Head
	// Trailer is one subscript applied after the head.
	Trailer = fieldpath.Trailer
	// Key is the content of a subscript: an index or a name.
	Key = fieldpath.Key
	// Host formats values and performs subscripts for a Renderer.
	Host = render.Host
	// Options configure a Renderer.
	Options = render.Options
	// Renderer formats templates; it is stateless and safe for concurrent use.
	Renderer = render.Renderer
	// Error carries the code, message and template span of a failure.
	Error = diag.Error
)

// Error kinds for errors.Is.
var (
	ErrMalformedBrace     = diag.ErrMalformedBrace
	ErrMalformedFieldPath = diag.ErrMalformedFieldPath
	ErrNumberingConflict  = diag.ErrNumberingConflict
	ErrArgumentMissing    = diag.ErrArgumentMissing
	ErrLookupFailure      = diag.ErrLookupFailure
	ErrUnsupportedSyntax  = diag.ErrUnsupportedSyntax
	ErrRenderFailure      = diag.ErrRenderFailure
)

var defaultRenderer = render.New(render.Options{})

// Format renders s with the default host. On error the result is "".
func Format(s string, positional []any, keyword map[string]any) (string, error) {
	return defaultRenderer.Render(s, positional, keyword)
}

// New returns a Renderer with a custom host or tracer.
func New(opts Options) *Renderer {
	return render.New(opts)
}

// Tokenize lazily yields the tokens of s. After an error nothing more is
// yielded.
func Tokenize(s string) iter.Seq2[Token, error] {
	return lexer.Tokenize(s)
}

// SplitFieldName parses a field name into its head and all of its trailers.
func SplitFieldName(name string) (Head, []Trailer, error) {
	path, err := fieldpath.Split(name)
	if err != nil {
		return Head{}, nil, err
	}
	trailers, err := path.Trailers.Collect()
	if err != nil {
		return Head{}, nil, err
	}
	return path.Head, trailers, nil
}
