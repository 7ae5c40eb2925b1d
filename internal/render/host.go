package render

import (
	"bracefmt/internal/fieldpath"
	"bracefmt/internal/token"
)

// Host supplies the value-level primitives the renderer does not own:
// turning a resolved value into text and subscripting into a container.
// Implementations must be safe for concurrent use if one Renderer is shared
// between goroutines.
type Host interface {
	// RenderValue formats v according to spec after applying conv.
	RenderValue(v any, spec string, conv token.Conversion) (string, error)
	// IndexInto returns container[key]. A missing key or a container that
	// cannot be indexed by this kind of key is an error.
	IndexInto(container any, key fieldpath.Key) (any, error)
}
