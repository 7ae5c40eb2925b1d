package render_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/google/go-cmp/cmp"

	"bracefmt/internal/diag"
	"bracefmt/internal/fieldpath"
	"bracefmt/internal/hostval"
	"bracefmt/internal/lexer"
	"bracefmt/internal/render"
	"bracefmt/internal/source"
	"bracefmt/internal/token"
	"bracefmt/internal/trace"
)

// recordingHost renders values with %v and records what it was asked.
type recordingHost struct {
	specs []string
	convs []token.Conversion
}

func (h *recordingHost) RenderValue(v any, spec string, conv token.Conversion) (string, error) {
	h.specs = append(h.specs, spec)
	h.convs = append(h.convs, conv)
	return fmt.Sprint(v), nil
}

func (h *recordingHost) IndexInto(container any, key fieldpath.Key) (any, error) {
	return hostval.IndexInto(container, key)
}

func mustRender(t *testing.T, r *render.Renderer, s string, pos []any, kw map[string]any) string {
	t.Helper()
	out, err := r.Render(s, pos, kw)
	if err != nil {
		t.Fatalf("Render(%q) unexpected error: %v", s, err)
	}
	return out
}

func TestRender(t *testing.T) {
	r := render.New(render.Options{})
	cases := []struct {
		name string
		in   string
		pos  []any
		kw   map[string]any
		want string
	}{
		{"plain", "hello world", nil, nil, "hello world"},
		{"escapes", "{{}}", nil, nil, "{}"},
		{"positional", "a{0}b", []any{"X"}, nil, "aXb"},
		{"keyword", "hi {name}!", nil, map[string]any{"name": "Ann"}, "hi Ann!"},
		{"automatic", "{} and {}", []any{1, 2}, nil, "1 and 2"},
		{"manual after automatic", "{}{0}", []any{"a"}, nil, "aa"},
		{"manual reuse", "{1}{0}{1}", []any{"a", "b"}, nil, "bab"},
		{"subscripts", "{0[key][2]}", []any{map[string]any{"key": []any{10, 20, 30}}}, nil, "30"},
		{"bracketed head", "{[1]}", []any{[]string{"x", "y"}}, nil, "y"},
		{"keyword subscript", "{m[a]}", nil, map[string]any{"m": map[string]int{"a": 5}}, "5"},
		{"braces in value", "<{0}>", []any{"{x}}"}, nil, "<{x}}>"},
		{"spec", "[{0:>4}]", []any{7}, nil, "[   7]"},
		{"conversion", "{0!r}", []any{"q"}, nil, `"q"`},
		{"trailing literal", "{0}tail", []any{1}, nil, "1tail"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := mustRender(t, r, tc.in, tc.pos, tc.kw); got != tc.want {
				t.Fatalf("Render(%q) = %q, want %q", tc.in, got, tc.want)
			}
		})
	}
}

func TestRenderErrors(t *testing.T) {
	r := render.New(render.Options{})
	cases := []struct {
		name string
		in   string
		pos  []any
		kw   map[string]any
		kind error
		msg  string
	}{
		{"single open", "{", nil, nil, diag.ErrMalformedBrace, "Single '{' encountered in format string"},
		{"single close", "}", nil, nil, diag.ErrMalformedBrace, "Single '}' encountered in format string"},
		{"unterminated", "{0", []any{1}, nil, diag.ErrMalformedBrace, "expected '}' before end of string"},
		{"conversion eof", "{0!", []any{1}, nil, diag.ErrMalformedBrace, "end of string while looking for conversion specifier"},
		{"open bracket", "{0[}", []any{1}, nil, diag.ErrMalformedBrace, "expected '}' before end of string"},
		{"numbering", "{0}{}", []any{1, 2}, nil, diag.ErrNumberingConflict,
			"cannot switch from automatic field numbering to manual field specification"},
		{"attribute", "{foo.bar}", nil, map[string]any{"foo": 1}, diag.ErrUnsupportedSyntax,
			"attribute access '.bar' in format field is not supported"},
		{"subscript without head then auto", "{[0]}{}", []any{[]int{1}, 2}, nil, diag.ErrNumberingConflict,
			"cannot switch from automatic field numbering to manual field specification"},
		{"index range", "{3}", []any{1}, nil, diag.ErrArgumentMissing,
			"Replacement index 3 out of range for positional args tuple"},
		{"auto range", "{}{}", []any{1}, nil, diag.ErrArgumentMissing,
			"Replacement index 1 out of range for positional args tuple"},
		{"keyword", "{nope}", nil, nil, diag.ErrArgumentMissing, "missing keyword argument 'nope'"},
		{"bad trailer", "{0[a]b}", []any{map[string]int{"a": 1}}, nil, diag.ErrMalformedFieldPath,
			"Only '.' or '[' may follow ']' in format field specifier"},
		{"empty subscript", "{0[]}", []any{[]int{1}}, nil, diag.ErrMalformedFieldPath, "Empty attribute in format string"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			out, err := r.Render(tc.in, tc.pos, tc.kw)
			if err == nil {
				t.Fatalf("Render(%q) = %q, want error", tc.in, out)
			}
			if out != "" {
				t.Fatalf("Render(%q) produced partial output %q", tc.in, out)
			}
			if !errors.Is(err, tc.kind) {
				t.Fatalf("Render(%q) error %v is not %v", tc.in, err, tc.kind)
			}
			if err.Error() != tc.msg {
				t.Fatalf("Render(%q) message = %q, want %q", tc.in, err.Error(), tc.msg)
			}
		})
	}
}

func TestRenderHostFailures(t *testing.T) {
	r := render.New(render.Options{})

	_, err := r.Render("{0[9]}", []any{[]int{1}}, nil)
	if !errors.Is(err, diag.ErrLookupFailure) {
		t.Fatalf("want LookupFailure, got %v", err)
	}
	if !errors.Is(err, hostval.ErrIndexOutOfRange) {
		t.Fatalf("host cause lost: %v", err)
	}

	_, err = r.Render("{0:d}", []any{"x"}, nil)
	if !errors.Is(err, diag.ErrRenderFailure) {
		t.Fatalf("want RenderFailure, got %v", err)
	}
	if !errors.Is(err, hostval.ErrFormatSpec) {
		t.Fatalf("host cause lost: %v", err)
	}
}

func TestErrorSpansPointIntoFormatString(t *testing.T) {
	r := render.New(render.Options{})
	cases := []struct {
		in   string
		pos  []any
		want source.Span
	}{
		{"ab{0.x}", []any{1}, source.Span{Start: 4, End: 6}},
		{"ab{0[k]x}", []any{map[string]int{"k": 1}}, source.Span{Start: 7, End: 8}},
		{"ab{0[z]}", []any{map[string]int{"k": 1}}, source.Span{Start: 4, End: 7}},
		{"xy{7}", []any{1}, source.Span{Start: 3, End: 4}},
	}
	for _, tc := range cases {
		_, err := r.Render(tc.in, tc.pos, nil)
		de, ok := diag.AsError(err)
		if !ok {
			t.Fatalf("Render(%q): want *diag.Error, got %v", tc.in, err)
		}
		if de.Primary != tc.want {
			t.Errorf("Render(%q) span = %s, want %s", tc.in, de.Primary, tc.want)
		}
	}
}

func TestHostReceivesSpecAndConversion(t *testing.T) {
	h := &recordingHost{}
	r := render.New(render.Options{Host: h})
	got := mustRender(t, r, "{0!r:>10}{1}{2:x}", []any{"a", "b", 3}, nil)
	if got != "ab3" {
		t.Fatalf("Render = %q", got)
	}
	if diff := cmp.Diff([]string{">10", "", "x"}, h.specs); diff != "" {
		t.Errorf("specs mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]token.Conversion{token.ConvRepr, token.NoConversion, token.NoConversion}, h.convs); diff != "" {
		t.Errorf("conversions mismatch (-want +got):\n%s", diff)
	}
}

func TestNestedSpecIsForwardedVerbatim(t *testing.T) {
	h := &recordingHost{}
	r := render.New(render.Options{Host: h})
	mustRender(t, r, "{0:{1}>{2}}", []any{"ab", "*", 4}, nil)
	if diff := cmp.Diff([]string{"{1}>{2}"}, h.specs); diff != "" {
		t.Errorf("specs mismatch (-want +got):\n%s", diff)
	}
}

func TestRenderIsStatelessBetweenCalls(t *testing.T) {
	r := render.New(render.Options{})
	if _, err := r.Render("{0}", []any{1}, nil); err != nil {
		t.Fatal(err)
	}
	// новый вызов начинает нумерацию заново
	if got := mustRender(t, r, "{}", []any{"fresh"}, nil); got != "fresh" {
		t.Fatalf("Render = %q", got)
	}
}

func TestRenderTokens(t *testing.T) {
	toks, err := lexer.All("a{}b{name}")
	if err != nil {
		t.Fatal(err)
	}
	r := render.New(render.Options{})
	got, err := r.RenderTokens(context.Background(), toks, []any{1}, map[string]any{"name": "n"})
	if err != nil {
		t.Fatal(err)
	}
	if got != "a1bn" {
		t.Fatalf("RenderTokens = %q", got)
	}
}

func TestRenderCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	r := render.New(render.Options{})
	if _, err := r.RenderContext(ctx, "{0}", []any{1}, nil); !errors.Is(err, context.Canceled) {
		t.Fatalf("want context.Canceled, got %v", err)
	}
	// без полей отменённый контекст не мешает
	if got, err := r.RenderContext(ctx, "plain", nil, nil); err != nil || got != "plain" {
		t.Fatalf("RenderContext = %q, %v", got, err)
	}
}

func TestRenderTracing(t *testing.T) {
	ring := trace.NewRingTracer(64, trace.LevelDebug)
	r := render.New(render.Options{Tracer: ring})
	mustRender(t, r, "a{0}{1}", []any{1, 2}, nil)

	type ev struct {
		Kind  trace.Kind
		Scope trace.Scope
		Name  string
	}
	var got []ev
	for _, e := range ring.Snapshot() {
		got = append(got, ev{e.Kind, e.Scope, e.Name})
	}
	want := []ev{
		{trace.KindSpanBegin, trace.ScopeTemplate, "render"},
		{trace.KindSpanBegin, trace.ScopeField, "field:0"},
		{trace.KindSpanEnd, trace.ScopeField, "field:0"},
		{trace.KindSpanBegin, trace.ScopeField, "field:1"},
		{trace.KindSpanEnd, trace.ScopeField, "field:1"},
		{trace.KindSpanEnd, trace.ScopeTemplate, "render"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("trace events mismatch (-want +got):\n%s", diff)
	}

	last := ring.Snapshot()[len(want)-1]
	if last.Extra["fields"] != "2" {
		t.Errorf("fields extra = %q, want 2", last.Extra["fields"])
	}
}

func TestRenderTracingDetailSkipsFields(t *testing.T) {
	ring := trace.NewRingTracer(64, trace.LevelDetail)
	ctx := trace.WithTracer(context.Background(), ring)
	r := render.New(render.Options{})
	if _, err := r.RenderContext(ctx, "{0}{1}", []any{1, 2}, nil); err != nil {
		t.Fatal(err)
	}
	if n := len(ring.Snapshot()); n != 2 {
		t.Fatalf("got %d events at detail level, want 2", n)
	}
}
