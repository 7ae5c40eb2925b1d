package source

import (
	"crypto/sha256"
	"os"

	"golang.org/x/text/unicode/norm"
)

// LoadOptions control how template text is normalized on load.
type LoadOptions struct {
	// NFC normalizes the text to Unicode NFC so that visually equal
	// literals and keyword names compare equal.
	NFC bool
}

// NewTemplate stores text that did not come from disk.
func NewTemplate(name, text string, opts LoadOptions) *Template {
	flags := TemplateVirtual
	if opts.NFC && !norm.NFC.IsNormalString(text) {
		text = norm.NFC.String(text)
		flags |= TemplateNormalizedNFC
	}
	return newTemplate(name, text, flags)
}

// Load reads a template from disk, strips a UTF-8 BOM and normalizes CRLF.
func Load(path string, opts LoadOptions) (*Template, error) {
	// #nosec G304 -- path is provided by the caller
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var flags TemplateFlags
	raw, hadBOM := removeBOM(raw)
	if hadBOM {
		flags |= TemplateHadBOM
	}
	if opts.NFC && !norm.NFC.IsNormal(raw) {
		raw = norm.NFC.Bytes(raw)
		flags |= TemplateNormalizedNFC
	}
	text, hadCRLF := normalizeCRLF(string(raw))
	if hadCRLF {
		flags |= TemplateNormalizedCRLF
	}
	return newTemplate(path, text, flags), nil
}

func newTemplate(path, text string, flags TemplateFlags) *Template {
	return &Template{
		Path:    normalizePath(path),
		Text:    text,
		LineIdx: buildLineIndex(text),
		Hash:    sha256.Sum256([]byte(text)),
		Flags:   flags,
	}
}

// Resolve converts a span into line and column positions.
func (t *Template) Resolve(span Span) (start, end LineCol) {
	return toLineCol(t.LineIdx, span.Start), toLineCol(t.LineIdx, span.End)
}

// GetLine возвращает строку с заданным номером (1-based).
// Если строки нет, возвращает пустую строку.
func (t *Template) GetLine(lineNum uint32) string {
	if lineNum == 0 {
		return ""
	}
	lenText := Offset(len(t.Text))
	lenIdx := Offset(len(t.LineIdx))

	var start, end uint32
	switch {
	case lineNum == 1:
		start = 0
	case lineNum-2 < lenIdx:
		start = t.LineIdx[lineNum-2] + 1
	default:
		return ""
	}
	if lineNum-1 < lenIdx {
		end = t.LineIdx[lineNum-1]
	} else {
		end = lenText
	}
	if start > lenText {
		return ""
	}
	return t.Text[start:end]
}
