package diag

import (
	"fmt"
)

type Code uint16

const (
	// Неизвестная ошибка
	UnknownCode Code = 0

	// Скобки и разметка полей (MalformedBrace)
	BrcInfo                 Code = 1000
	BrcSingleClose          Code = 1001
	BrcSingleOpen           Code = 1002
	BrcUnterminatedField    Code = 1003
	BrcConversionEOF        Code = 1004
	BrcExpectColonAfterConv Code = 1005
	BrcUnknownConversion    Code = 1006
	BrcOpenInFieldName      Code = 1007

	// Путь поля (MalformedFieldPath)
	PthInfo           Code = 2000
	PthMissingBracket Code = 2001
	PthEmptySubscript Code = 2002
	PthBadTrailer     Code = 2003
	PthTooManyDigits  Code = 2004

	// Нумерация полей
	NumInfo            Code = 3000
	NumAutoAfterManual Code = 3001

	// Аргументы
	ArgInfo            Code = 4000
	ArgIndexOutOfRange Code = 4001
	ArgMissingKeyword  Code = 4002

	// Подписки [key]
	LkpInfo   Code = 5000
	LkpFailed Code = 5001

	// Ошибки хоста (render primitive)
	HstInfo         Code = 6000
	HstRenderFailed Code = 6001

	// Зарезервированный синтаксис
	FutInfo            Code = 7000
	FutAttributeAccess Code = 7001
)

var (
	codeDescription = map[Code]string{
		UnknownCode:             "Unknown error",
		BrcInfo:                 "Brace information",
		BrcSingleClose:          "Single closing brace",
		BrcSingleOpen:           "Single opening brace",
		BrcUnterminatedField:    "Unterminated replacement field",
		BrcConversionEOF:        "Missing conversion character",
		BrcExpectColonAfterConv: "Expected ':' or '}' after conversion",
		BrcUnknownConversion:    "Unknown conversion",
		BrcOpenInFieldName:      "Opening brace in field name",
		PthInfo:                 "Field path information",
		PthMissingBracket:       "Missing closing bracket",
		PthEmptySubscript:       "Empty subscript",
		PthBadTrailer:           "Invalid character after subscript",
		PthTooManyDigits:        "Index too large",
		NumInfo:                 "Numbering information",
		NumAutoAfterManual:      "Automatic field after manual field",
		ArgInfo:                 "Argument information",
		ArgIndexOutOfRange:      "Positional index out of range",
		ArgMissingKeyword:       "Missing keyword argument",
		LkpInfo:                 "Lookup information",
		LkpFailed:               "Subscript lookup failed",
		HstInfo:                 "Host information",
		HstRenderFailed:         "Value rendering failed",
		FutInfo:                 "Reserved syntax information",
		FutAttributeAccess:      "Attribute access is not supported",
	}
)

func (c Code) ID() string {
	switch ic := int(c); {
	case ic >= 1000 && ic < 2000:
		return fmt.Sprintf("BRC%04d", ic)
	case ic >= 2000 && ic < 3000:
		return fmt.Sprintf("PTH%04d", ic)
	case ic >= 3000 && ic < 4000:
		return fmt.Sprintf("NUM%04d", ic)
	case ic >= 4000 && ic < 5000:
		return fmt.Sprintf("ARG%04d", ic)
	case ic >= 5000 && ic < 6000:
		return fmt.Sprintf("LKP%04d", ic)
	case ic >= 6000 && ic < 7000:
		return fmt.Sprintf("HST%04d", ic)
	case ic >= 7000 && ic < 8000:
		return fmt.Sprintf("FUT%04d", ic)
	}
	return "E0000"
}

// Kind maps the code onto the error taxonomy by numeric range.
func (c Code) Kind() Kind {
	switch ic := int(c); {
	case ic >= 1000 && ic < 2000:
		return KindMalformedBrace
	case ic >= 2000 && ic < 3000:
		return KindMalformedFieldPath
	case ic >= 3000 && ic < 4000:
		return KindNumberingConflict
	case ic >= 4000 && ic < 5000:
		return KindArgumentMissing
	case ic >= 5000 && ic < 6000:
		return KindLookupFailure
	case ic >= 6000 && ic < 7000:
		return KindRenderFailure
	case ic >= 7000 && ic < 8000:
		return KindUnsupportedSyntax
	}
	return KindUnknown
}

func (c Code) Title() string {
	desc, ok := codeDescription[c]
	if !ok {
		return codeDescription[Code(0)]
	}
	return desc
}

func (c Code) String() string {
	return fmt.Sprintf("[%s]: %s", c.ID(), c.Title())
}
