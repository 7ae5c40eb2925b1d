package fieldpath

import (
	"fmt"
	"strconv"
	"strings"

	"bracefmt/internal/diag"
	"bracefmt/internal/source"
)

// HeadKind tells how the first component of a field name selects an argument.
type HeadKind uint8

const (
	HeadPositional HeadKind = iota + 1
	HeadAuto
	HeadKeyword
)

// Head is the first component of a field name.
type Head struct {
	Kind  HeadKind
	Index int    // HeadPositional
	Name  string // HeadKeyword
}

func Positional(n int) Head    { return Head{Kind: HeadPositional, Index: n} }
func AutoPositional() Head     { return Head{Kind: HeadAuto} }
func Keyword(name string) Head { return Head{Kind: HeadKeyword, Name: name} }

func (h Head) String() string {
	switch h.Kind {
	case HeadPositional:
		return fmt.Sprintf("Positional(%d)", h.Index)
	case HeadAuto:
		return "AutoPositional"
	case HeadKeyword:
		return fmt.Sprintf("Keyword(%q)", h.Name)
	}
	return "InvalidHead"
}

// Path is a parsed field name.
type Path struct {
	Head     Head
	HeadSpan source.Span
	Trailers *Trailers
}

// Split parses a field name. It only validates the head; trailers are
// validated as Path.Trailers is advanced.
func Split(name string) (Path, error) {
	dot := strings.IndexByte(name, '.')
	br := strings.IndexByte(name, '[')

	if dot >= 0 && (br < 0 || dot < br) {
		end := len(name)
		if br > dot {
			end = br
		}
		return Path{}, unsupportedAttr(name[dot+1:end], source.SpanOf(dot, end))
	}

	if br < 0 {
		head, err := parseHead(name, AutoPositional())
		if err != nil {
			return Path{}, err
		}
		return Path{Head: head, HeadSpan: source.SpanOf(0, len(name)), Trailers: emptyTrailers()}, nil
	}

	// "[0]" без головы означает индекс 0, а не автонумерацию
	head, err := parseHead(name[:br], Positional(0))
	if err != nil {
		return Path{}, err
	}
	return Path{
		Head:     head,
		HeadSpan: source.SpanOf(0, br),
		Trailers: newTrailers(name, br),
	}, nil
}

// parseHead applies the digits/empty/keyword rule; empty maps to ifEmpty.
func parseHead(s string, ifEmpty Head) (Head, error) {
	if s == "" {
		return ifEmpty, nil
	}
	if !isDigits(s) {
		return Keyword(s), nil
	}
	n, err := parseIndex(s, source.SpanOf(0, len(s)))
	if err != nil {
		return Head{}, err
	}
	return Positional(n), nil
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

func parseIndex(s string, sp source.Span) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, diag.Errorf(diag.PthTooManyDigits, sp, "Too many decimal digits in format string")
	}
	return n, nil
}

func unsupportedAttr(attr string, sp source.Span) error {
	return diag.Errorf(diag.FutAttributeAccess, sp,
		"attribute access '.%s' in format field is not supported", attr)
}
