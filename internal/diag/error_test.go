package diag

import (
	"errors"
	"fmt"
	"testing"

	"bracefmt/internal/source"
)

func TestCodeKindByRange(t *testing.T) {
	tests := []struct {
		code Code
		kind Kind
		id   string
	}{
		{BrcSingleClose, KindMalformedBrace, "BRC1001"},
		{PthMissingBracket, KindMalformedFieldPath, "PTH2001"},
		{NumAutoAfterManual, KindNumberingConflict, "NUM3001"},
		{ArgMissingKeyword, KindArgumentMissing, "ARG4002"},
		{LkpFailed, KindLookupFailure, "LKP5001"},
		{HstRenderFailed, KindRenderFailure, "HST6001"},
		{FutAttributeAccess, KindUnsupportedSyntax, "FUT7001"},
		{UnknownCode, KindUnknown, "E0000"},
	}
	for _, tt := range tests {
		if got := tt.code.Kind(); got != tt.kind {
			t.Errorf("%v.Kind() = %v, want %v", tt.code, got, tt.kind)
		}
		if got := tt.code.ID(); got != tt.id {
			t.Errorf("ID() = %q, want %q", got, tt.id)
		}
	}
}

func TestErrorMatchesKindSentinel(t *testing.T) {
	err := Errorf(BrcSingleClose, source.SpanOf(3, 4), "Single '}' encountered in format string")
	if err.Error() != "Single '}' encountered in format string" {
		t.Fatalf("Error() = %q", err.Error())
	}
	if !errors.Is(err, ErrMalformedBrace) {
		t.Error("expected ErrMalformedBrace")
	}
	if errors.Is(err, ErrMalformedFieldPath) {
		t.Error("must not match another kind")
	}

	wrapped := fmt.Errorf("template greet: %w", err)
	de, ok := AsError(wrapped)
	if !ok || de.Code != BrcSingleClose || de.Primary != source.SpanOf(3, 4) {
		t.Errorf("AsError() = %+v, %v", de, ok)
	}
}

func TestWrapKeepsCause(t *testing.T) {
	cause := errors.New("key 'x' not found")
	err := Wrap(LkpFailed, source.SpanOf(0, 3), cause, "lookup of [x] failed")
	if !errors.Is(err, cause) {
		t.Error("cause must be reachable through Unwrap")
	}
	if !errors.Is(err, ErrLookupFailure) {
		t.Error("expected ErrLookupFailure")
	}
	if err.Error() != "lookup of [x] failed: key 'x' not found" {
		t.Errorf("Error() = %q", err.Error())
	}
}

func TestErrorShift(t *testing.T) {
	err := Errorf(PthEmptySubscript, source.SpanOf(1, 3), "Empty attribute in format string")
	err.Notes = []Note{{Span: source.SpanOf(0, 1), Msg: "here"}}
	err.Shift(5)
	if err.Primary != source.SpanOf(6, 8) || err.Notes[0].Span != source.SpanOf(5, 6) {
		t.Errorf("Shift() = %v %v", err.Primary, err.Notes[0].Span)
	}
}
