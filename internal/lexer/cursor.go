package lexer

import (
	"fmt"

	"fortio.org/safecast"

	"bracefmt/internal/source"
)

// Cursor is a byte position inside a format string.
type Cursor struct {
	Src string
	Off int
}

// NewCursor creates a cursor at the start of src.
func NewCursor(src string) Cursor {
	if _, err := safecast.Conv[uint32](len(src)); err != nil {
		panic(fmt.Errorf("format string length overflow: %w", err))
	}
	return Cursor{Src: src}
}

// EOF проверяет, достигнут ли конец строки
func (c *Cursor) EOF() bool {
	return c.Off >= len(c.Src)
}

// Peek читает текущий байт, если есть, иначе возвращает 0
func (c *Cursor) Peek() byte {
	if c.EOF() {
		return 0
	}
	return c.Src[c.Off]
}

// Peek2 читает текущий и следующий байт, если есть, иначе возвращает 0, 0, false
func (c *Cursor) Peek2() (b0, b1 byte, ok bool) {
	if c.Off+1 >= len(c.Src) {
		return 0, 0, false
	}
	return c.Src[c.Off], c.Src[c.Off+1], true
}

// Bump перемещает курсор на один байт вперед и возвращает прочитанный байт
func (c *Cursor) Bump() byte {
	if c.EOF() {
		return 0
	}
	b := c.Src[c.Off]
	c.Off++
	return b
}

// Mark это метка, чтобы быстро получать Span читаемого фрагмента
type Mark int

// Mark сохраняет текущую позицию курсора
func (c *Cursor) Mark() Mark {
	return Mark(c.Off)
}

// SpanFrom получает Span для фрагмента, начиная с метки
func (c *Cursor) SpanFrom(m Mark) source.Span {
	return source.SpanOf(int(m), c.Off)
}

// TextFrom returns the raw text between the mark and the cursor.
func (c *Cursor) TextFrom(m Mark) string {
	return c.Src[int(m):c.Off]
}

// Reset возвращает курсор назад к метке
func (c *Cursor) Reset(m Mark) {
	c.Off = int(m)
}

// Eat consumes the next byte if it matches the provided byte.
func (c *Cursor) Eat(b byte) bool {
	if !c.EOF() && c.Src[c.Off] == b {
		c.Off++
		return true
	}
	return false
}

// SkipTo advances to the first occurrence of any byte in set, or to the end.
// Returns true if such a byte was found.
func (c *Cursor) SkipTo(set string) bool {
	for !c.EOF() {
		b := c.Src[c.Off]
		for i := 0; i < len(set); i++ {
			if b == set[i] {
				return true
			}
		}
		c.Off++
	}
	return false
}
