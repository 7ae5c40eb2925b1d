package token

// Conversion selects an alternate string representation applied before
// the format spec.
type Conversion byte

const (
	NoConversion Conversion = 0
	ConvStr      Conversion = 's'
	ConvRepr     Conversion = 'r'
	ConvASCII    Conversion = 'a'
)

// ParseConversion maps a conversion character to its Conversion.
func ParseConversion(r rune) (Conversion, bool) {
	if r > 0x7f {
		return NoConversion, false
	}
	switch Conversion(r) {
	case ConvStr, ConvRepr, ConvASCII:
		return Conversion(r), true
	}
	return NoConversion, false
}

func (c Conversion) String() string {
	switch c {
	case NoConversion:
		return "none"
	case ConvStr:
		return "s"
	case ConvRepr:
		return "r"
	case ConvASCII:
		return "a"
	}
	return "unknown"
}
