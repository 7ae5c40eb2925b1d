package version

import (
	"testing"

	"github.com/fatih/color"
)

func withVersion(t *testing.T, v string) {
	t.Helper()
	orig := Version
	Version = v
	t.Cleanup(func() { Version = orig })
}

func TestStringFallsBackToDev(t *testing.T) {
	withVersion(t, "  ")
	if got := String(); got != "dev" {
		t.Errorf("String() = %q, want dev", got)
	}
}

func TestColoredWithoutColor(t *testing.T) {
	orig := color.NoColor
	color.NoColor = true
	t.Cleanup(func() { color.NoColor = orig })

	tests := []struct{ in, want string }{
		{"1.2.3", "1.2.3"},
		{"0.1.0-dev", "0.1.0-dev"},
		{"1.0.0+build.7", "1.0.0+build.7"},
		{"nightly", "nightly"},
	}
	for _, tt := range tests {
		withVersion(t, tt.in)
		if got := Colored(); got != tt.want {
			t.Errorf("Colored(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestColoredAddsEscapes(t *testing.T) {
	orig := color.NoColor
	color.NoColor = false
	t.Cleanup(func() { color.NoColor = orig })

	withVersion(t, "1.2.3-rc1")
	got := Colored()
	if got == "1.2.3-rc1" {
		t.Fatalf("Colored() did not colorize %q", got)
	}
	if want := "-rc1"; got[len(got)-len(want):] != want {
		t.Errorf("suffix lost: %q", got)
	}
}
