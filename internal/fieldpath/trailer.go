package fieldpath

import (
	"fmt"
	"strconv"
	"strings"

	"bracefmt/internal/diag"
	"bracefmt/internal/source"
)

// KeyKind distinguishes integer subscripts from string subscripts.
type KeyKind uint8

const (
	KeyIndex KeyKind = iota + 1
	KeyName
)

// Key is the content of a "[...]" subscript.
type Key struct {
	Kind  KeyKind
	Index int
	Name  string
}

func IndexKey(n int) Key      { return Key{Kind: KeyIndex, Index: n} }
func NameKey(name string) Key { return Key{Kind: KeyName, Name: name} }

func (k Key) String() string {
	if k.Kind == KeyIndex {
		return strconv.Itoa(k.Index)
	}
	return k.Name
}

// TrailerKind is the kind of a step applied after the head.
type TrailerKind uint8

const (
	TrailerSubscript TrailerKind = iota + 1
	// TrailerAttribute is reserved for ".name" steps; the parser never
	// produces it and fails with diag.ErrUnsupportedSyntax instead.
	TrailerAttribute
)

// Trailer is one lookup step.
type Trailer struct {
	Kind TrailerKind
	Key  Key    // TrailerSubscript
	Attr string // TrailerAttribute
	Span source.Span
}

func (t Trailer) String() string {
	if t.Kind == TrailerAttribute {
		return "." + t.Attr
	}
	return "[" + t.Key.String() + "]"
}

// Trailers is a forward-only cursor over the subscript part of a field
// name. Once it has reported the end or an error it keeps reporting it.
type Trailers struct {
	src  string
	off  int
	done bool
	err  error
}

func newTrailers(name string, off int) *Trailers {
	return &Trailers{src: name, off: off}
}

func emptyTrailers() *Trailers {
	return &Trailers{done: true}
}

// Next returns the next trailer; ok=false when the name is exhausted.
func (t *Trailers) Next() (tr Trailer, ok bool, err error) {
	if t == nil || t.done {
		return Trailer{}, false, nil
	}
	if t.err != nil {
		return Trailer{}, false, t.err
	}
	if t.off >= len(t.src) {
		t.done = true
		return Trailer{}, false, nil
	}

	start := t.off
	switch t.src[start] {
	case '[':
	case '.':
		end := len(t.src)
		if i := strings.IndexAny(t.src[start+1:], ".["); i >= 0 {
			end = start + 1 + i
		}
		return t.fail(unsupportedAttr(t.src[start+1:end], source.SpanOf(start, end)))
	default:
		return t.fail(diag.Errorf(diag.PthBadTrailer, source.SpanOf(start, start+1),
			"Only '.' or '[' may follow ']' in format field specifier"))
	}

	closeRel := strings.IndexByte(t.src[start+1:], ']')
	if closeRel < 0 {
		return t.fail(diag.Errorf(diag.PthMissingBracket, source.SpanOf(start, len(t.src)),
			"Missing ']' in format string"))
	}
	end := start + 1 + closeRel + 1 // после ']'
	content := t.src[start+1 : end-1]
	sp := source.SpanOf(start, end)
	if content == "" {
		return t.fail(diag.Errorf(diag.PthEmptySubscript, sp, "Empty attribute in format string"))
	}

	key := NameKey(content)
	if isDigits(content) {
		n, perr := parseIndex(content, source.SpanOf(start+1, end-1))
		if perr != nil {
			return t.fail(perr)
		}
		key = IndexKey(n)
	}
	t.off = end
	return Trailer{Kind: TrailerSubscript, Key: key, Span: sp}, true, nil
}

func (t *Trailers) fail(err error) (Trailer, bool, error) {
	t.err = err
	return Trailer{}, false, err
}

// Collect drains the cursor.
func (t *Trailers) Collect() ([]Trailer, error) {
	var out []Trailer
	for {
		tr, ok, err := t.Next()
		if err != nil {
			return nil, err
		}
		if !ok {
			return out, nil
		}
		out = append(out, tr)
	}
}

// String renders the whole path for debugging output.
func (p Path) String() string {
	return fmt.Sprintf("%s%s", p.Head, p.rest())
}

func (p Path) rest() string {
	if p.Trailers == nil || p.Trailers.off >= len(p.Trailers.src) {
		return ""
	}
	return p.Trailers.src[p.Trailers.off:]
}
