package source

type (
	// TemplateFlags encodes metadata about a loaded template.
	TemplateFlags uint8 // метаданные
)

const (
	// TemplateVirtual indicates the template was added from memory (test, stdin, flag).
	TemplateVirtual TemplateFlags = 1 << iota // добавлен не с диска
	TemplateHadBOM
	TemplateNormalizedCRLF
	TemplateNormalizedNFC
)

// Template captures a format string together with the metadata needed to
// point diagnostics at it.
type Template struct {
	Path    string
	Text    string
	LineIdx []uint32
	Hash    [32]byte
	Flags   TemplateFlags
}

// LineCol represents a human-readable position in a template.
type LineCol struct {
	Line uint32 // 1-based
	Col  uint32 // 1-based, in bytes
}
