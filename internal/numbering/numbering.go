// Package numbering reconciles automatic ("{}") and manual ("{0}") field
// indices within one formatting operation.
package numbering

import (
	"bracefmt/internal/diag"
	"bracefmt/internal/fieldpath"
	"bracefmt/internal/source"
)

// Mode is the numbering style observed so far.
type Mode uint8

const (
	ModeUnset Mode = iota
	ModeAutomatic
	ModeManual
)

func (m Mode) String() string {
	switch m {
	case ModeUnset:
		return "unset"
	case ModeAutomatic:
		return "automatic"
	case ModeManual:
		return "manual"
	}
	return "unknown"
}

// State belongs to a single render call and must not be shared.
// The zero value is ready to use.
type State struct {
	Mode     Mode
	NextAuto int
}

// Next resolves the positional index for head. ok is false for keyword heads,
// which do not take part in numbering.
//
// An automatic field after a manual one is a conflict; a manual field after
// automatic ones is accepted and does not change the mode.
func (s *State) Next(head fieldpath.Head, sp source.Span) (index int, ok bool, err error) {
	switch head.Kind {
	case fieldpath.HeadAuto:
		if s.Mode == ModeManual {
			return 0, false, diag.Errorf(diag.NumAutoAfterManual, sp,
				"cannot switch from automatic field numbering to manual field specification")
		}
		s.Mode = ModeAutomatic
		index = s.NextAuto
		s.NextAuto++
		return index, true, nil
	case fieldpath.HeadPositional:
		if s.Mode == ModeUnset {
			s.Mode = ModeManual
		}
		return head.Index, true, nil
	}
	return 0, false, nil
}
