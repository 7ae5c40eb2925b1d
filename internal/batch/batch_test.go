package batch

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"bracefmt/internal/cache"
	"bracefmt/internal/diag"
	"bracefmt/internal/observ"
	"bracefmt/internal/trace"
)

func writeTemplates(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, text := range files {
		p := filepath.Join(dir, name)
		if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(p, []byte(text), 0o600); err != nil {
			t.Fatal(err)
		}
	}
	return dir
}

func TestRenderDir(t *testing.T) {
	dir := writeTemplates(t, map[string]string{
		"a.tmpl":     "hello {0}",
		"b.tmpl":     "{name}: {0:>3}",
		"sub/c.tmpl": "{{literal}}",
		"bad.tmpl":   "oops {",
		"notes.txt":  "{ignored",
	})

	results, err := RenderDir(context.Background(), dir, []any{7}, map[string]any{"name": "n"}, Options{Jobs: 2})
	if err != nil {
		t.Fatal(err)
	}

	want := []struct {
		rel    string
		output string
		kind   error
	}{
		{"a.tmpl", "hello 7", nil},
		{"b.tmpl", "n:   7", nil},
		{"bad.tmpl", "", diag.ErrMalformedBrace},
		{filepath.Join("sub", "c.tmpl"), "{literal}", nil},
	}
	if len(results) != len(want) {
		t.Fatalf("got %d results, want %d", len(results), len(want))
	}
	for i, w := range want {
		res := results[i]
		if res.Path != filepath.Join(dir, w.rel) {
			t.Errorf("results[%d].Path = %q, want %q", i, res.Path, w.rel)
		}
		if res.Output != w.output {
			t.Errorf("%s: output %q, want %q", w.rel, res.Output, w.output)
		}
		if w.kind == nil && res.Err != nil {
			t.Errorf("%s: unexpected error %v", w.rel, res.Err)
		}
		if w.kind != nil && !errors.Is(res.Err, w.kind) {
			t.Errorf("%s: error %v, want %v", w.rel, res.Err, w.kind)
		}
	}

	if !Failed(results) {
		t.Fatal("Failed = false with a broken template")
	}
	bag := Diagnostics(results, 0)
	if bag.Len() != 1 || bag.Items()[0].Template != filepath.Join(dir, "bad.tmpl") {
		t.Fatalf("diagnostics = %+v", bag.Items())
	}
}

func TestRenderDirWithCache(t *testing.T) {
	dir := writeTemplates(t, map[string]string{
		"a.tmpl": "{0}-{0}",
		"b.tmpl": "{}+{}",
	})
	c, err := cache.Open(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	timer := observ.NewTimer()
	opts := Options{Cache: c, Timer: timer}

	for run := range 2 {
		results, err := RenderDir(context.Background(), dir, []any{"x", "y"}, nil, opts)
		if err != nil {
			t.Fatal(err)
		}
		if results[0].Output != "x-x" || results[1].Output != "x+y" {
			t.Fatalf("run %d outputs %q, %q", run, results[0].Output, results[1].Output)
		}
		for _, res := range results {
			if res.Cached != (run == 1) {
				t.Fatalf("run %d: %s cached=%v", run, res.Path, res.Cached)
			}
		}
	}

	names := map[string]bool{}
	for _, p := range timer.Report().Phases {
		names[p.Name] = true
	}
	for _, n := range []string{"load", "tokenize", "render"} {
		if !names[n] {
			t.Errorf("timer has no %q phase", n)
		}
	}
}

func TestRenderFilesMissingFile(t *testing.T) {
	results, err := RenderFiles(context.Background(), []string{filepath.Join(t.TempDir(), "nope.tmpl")}, nil, nil, Options{})
	if err != nil {
		t.Fatal(err)
	}
	if !errors.Is(results[0].Err, os.ErrNotExist) {
		t.Fatalf("want ErrNotExist, got %v", results[0].Err)
	}
}

func TestRenderFilesCanceled(t *testing.T) {
	dir := writeTemplates(t, map[string]string{"a.tmpl": "{0}"})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := RenderDir(ctx, dir, []any{1}, nil, Options{}); !errors.Is(err, context.Canceled) {
		t.Fatalf("want context.Canceled, got %v", err)
	}
}

func TestRenderFilesTracing(t *testing.T) {
	dir := writeTemplates(t, map[string]string{"a.tmpl": "{0}", "b.tmpl": "{0}"})
	ring := trace.NewRingTracer(64, trace.LevelDetail)
	ctx := trace.WithTracer(context.Background(), ring)
	if _, err := RenderDir(ctx, dir, []any{1}, nil, Options{}); err != nil {
		t.Fatal(err)
	}

	var batchID uint64
	templates := 0
	for _, ev := range ring.Snapshot() {
		if ev.Scope == trace.ScopeCommand && ev.Kind == trace.KindSpanBegin {
			batchID = ev.SpanID
		}
	}
	for _, ev := range ring.Snapshot() {
		if ev.Scope == trace.ScopeTemplate && ev.Kind == trace.KindSpanBegin {
			templates++
			if ev.ParentID != batchID {
				t.Errorf("template span parent = %d, want %d", ev.ParentID, batchID)
			}
		}
	}
	if templates != 2 {
		t.Fatalf("template spans = %d, want 2", templates)
	}
}

type recordingSink struct {
	mu     sync.Mutex
	byFile map[string][]Status
}

func (s *recordingSink) OnEvent(ev Event) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.byFile == nil {
		s.byFile = make(map[string][]Status)
	}
	s.byFile[ev.File] = append(s.byFile[ev.File], ev.Status)
}

func TestRenderFilesProgress(t *testing.T) {
	dir := writeTemplates(t, map[string]string{"ok.tmpl": "{0}", "bad.tmpl": "{"})
	sink := &recordingSink{}
	if _, err := RenderDir(context.Background(), dir, []any{1}, nil, Options{Progress: sink}); err != nil {
		t.Fatal(err)
	}
	want := map[string]Status{"ok.tmpl": StatusDone, "bad.tmpl": StatusError}
	for name, last := range want {
		got := sink.byFile[filepath.Join(dir, name)]
		if len(got) < 3 {
			t.Fatalf("%s: events %v", name, got)
		}
		if got[0] != StatusQueued || got[len(got)-1] != last {
			t.Errorf("%s: events %v, want queued ... %s", name, got, last)
		}
	}
}
