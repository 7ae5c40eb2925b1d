package diag

import "errors"

// Kind is the coarse error category callers branch on.
type Kind uint8

const (
	KindUnknown Kind = iota
	KindMalformedBrace
	KindMalformedFieldPath
	KindNumberingConflict
	KindArgumentMissing
	KindLookupFailure
	KindUnsupportedSyntax
	KindRenderFailure
)

// Sentinels for errors.Is; *Error matches the sentinel of its kind.
var (
	ErrMalformedBrace     = errors.New("malformed brace")
	ErrMalformedFieldPath = errors.New("malformed field path")
	ErrNumberingConflict  = errors.New("numbering conflict")
	ErrArgumentMissing    = errors.New("argument missing")
	ErrLookupFailure      = errors.New("lookup failure")
	ErrUnsupportedSyntax  = errors.New("unsupported syntax")
	ErrRenderFailure      = errors.New("render failure")
)

// Sentinel returns the errors.Is target for the kind, nil for KindUnknown.
func (k Kind) Sentinel() error {
	switch k {
	case KindMalformedBrace:
		return ErrMalformedBrace
	case KindMalformedFieldPath:
		return ErrMalformedFieldPath
	case KindNumberingConflict:
		return ErrNumberingConflict
	case KindArgumentMissing:
		return ErrArgumentMissing
	case KindLookupFailure:
		return ErrLookupFailure
	case KindUnsupportedSyntax:
		return ErrUnsupportedSyntax
	case KindRenderFailure:
		return ErrRenderFailure
	}
	return nil
}

func (k Kind) String() string {
	switch k {
	case KindMalformedBrace:
		return "MalformedBrace"
	case KindMalformedFieldPath:
		return "MalformedFieldPath"
	case KindNumberingConflict:
		return "NumberingConflict"
	case KindArgumentMissing:
		return "ArgumentMissing"
	case KindLookupFailure:
		return "LookupFailure"
	case KindUnsupportedSyntax:
		return "UnsupportedSyntax"
	case KindRenderFailure:
		return "RenderFailure"
	}
	return "Unknown"
}
