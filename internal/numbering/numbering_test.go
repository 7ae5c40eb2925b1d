package numbering

import (
	"errors"
	"testing"

	"bracefmt/internal/diag"
	"bracefmt/internal/fieldpath"
	"bracefmt/internal/source"
)

func TestAutomaticSequence(t *testing.T) {
	var s State
	for want := 0; want < 4; want++ {
		got, ok, err := s.Next(fieldpath.AutoPositional(), source.Span{})
		if err != nil || !ok || got != want {
			t.Fatalf("Next() = %d %v %v, want %d", got, ok, err, want)
		}
	}
	if s.Mode != ModeAutomatic || s.NextAuto != 4 {
		t.Errorf("state = %+v", s)
	}
}

func TestAutomaticAfterManualConflicts(t *testing.T) {
	var s State
	if _, _, err := s.Next(fieldpath.Positional(0), source.Span{}); err != nil {
		t.Fatal(err)
	}
	_, ok, err := s.Next(fieldpath.AutoPositional(), source.SpanOf(3, 5))
	if ok || !errors.Is(err, diag.ErrNumberingConflict) {
		t.Fatalf("Next() = %v %v", ok, err)
	}
	if err.Error() != "cannot switch from automatic field numbering to manual field specification" {
		t.Errorf("message = %q", err.Error())
	}
	if de, _ := diag.AsError(err); de.Primary != source.SpanOf(3, 5) {
		t.Errorf("span = %v", de.Primary)
	}
	if s.NextAuto != 0 {
		t.Error("failed automatic field must not consume an index")
	}
}

func TestManualAfterAutomaticAccepted(t *testing.T) {
	var s State
	s.Next(fieldpath.AutoPositional(), source.Span{})
	s.Next(fieldpath.AutoPositional(), source.Span{})

	got, ok, err := s.Next(fieldpath.Positional(0), source.Span{})
	if err != nil || !ok || got != 0 {
		t.Fatalf("Next(Positional(0)) = %d %v %v", got, ok, err)
	}
	if s.Mode != ModeAutomatic {
		t.Errorf("mode changed to %v", s.Mode)
	}
	// счётчик продолжает с того же места
	if got, _, _ := s.Next(fieldpath.AutoPositional(), source.Span{}); got != 2 {
		t.Errorf("next automatic index = %d, want 2", got)
	}
}

func TestKeywordDoesNotTouchNumbering(t *testing.T) {
	var s State
	_, ok, err := s.Next(fieldpath.Keyword("x"), source.Span{})
	if ok || err != nil {
		t.Fatalf("Next(Keyword) = %v %v", ok, err)
	}
	if s.Mode != ModeUnset {
		t.Errorf("mode = %v", s.Mode)
	}
	s.Next(fieldpath.Positional(3), source.Span{})
	s.Next(fieldpath.Keyword("y"), source.Span{})
	if s.Mode != ModeManual {
		t.Errorf("mode = %v", s.Mode)
	}
}
