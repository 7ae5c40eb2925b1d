package hostval

import (
	"bracefmt/internal/fieldpath"
	"bracefmt/internal/token"
)

// Default implements the renderer's host primitives with the functions of
// this package. The zero value is ready to use.
type Default struct{}

func (Default) RenderValue(v any, spec string, conv token.Conversion) (string, error) {
	fs, err := ParseSpec(spec)
	if err != nil {
		return "", err
	}
	if conv != token.NoConversion {
		s, err := Convert(v, conv)
		if err != nil {
			return "", err
		}
		return formatString(s, fs)
	}
	return FormatValue(v, fs)
}

func (Default) IndexInto(container any, key fieldpath.Key) (any, error) {
	return IndexInto(container, key)
}
