package diag

import (
	"errors"
	"testing"

	"bracefmt/internal/source"
)

func TestBagLimitAndSort(t *testing.T) {
	bag := NewBag(3)
	bag.Add(NewError(ArgMissingKeyword, source.SpanOf(5, 9), "b"))
	bag.Add(NewError(BrcSingleClose, source.SpanOf(1, 2), "a"))
	bag.Add(New(SevWarning, BrcInfo, source.SpanOf(1, 2), "w"))
	if bag.Add(NewError(UnknownCode, source.Span{}, "overflow")) {
		t.Fatal("bag must respect its limit")
	}

	bag.Sort()
	items := bag.Items()
	if items[0].Severity != SevError || items[0].Code != BrcSingleClose {
		t.Errorf("first = %+v", items[0])
	}
	if items[1].Severity != SevWarning {
		t.Errorf("second = %+v", items[1])
	}
	if items[2].Code != ArgMissingKeyword {
		t.Errorf("third = %+v", items[2])
	}
	if !bag.HasErrors() || !bag.HasWarnings() {
		t.Error("HasErrors/HasWarnings")
	}
}

func TestBagAddErrorAndDedup(t *testing.T) {
	bag := NewBag(10)
	err := Errorf(NumAutoAfterManual, source.SpanOf(3, 5), "x")
	bag.AddError("a.tmpl", err)
	bag.AddError("a.tmpl", err)
	bag.AddError("b.tmpl", errors.New("io"))
	bag.AddError("c.tmpl", nil)

	if bag.Len() != 3 {
		t.Fatalf("Len() = %d", bag.Len())
	}
	bag.Dedup()
	if bag.Len() != 2 {
		t.Fatalf("after Dedup Len() = %d", bag.Len())
	}
	if bag.Items()[1].Code != UnknownCode || bag.Items()[1].Template != "b.tmpl" {
		t.Errorf("plain error recorded as %+v", bag.Items()[1])
	}
	if err.Template != "" {
		t.Error("AddError must not mutate the original error")
	}
}
