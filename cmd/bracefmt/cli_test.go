package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"bracefmt/internal/config"
	"bracefmt/internal/diagfmt"
)

// resetFlags возвращает флаги всех команд к значениям по умолчанию:
// cobra хранит их в глобальных командах между вызовами Execute.
func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		if sv, ok := f.Value.(pflag.SliceValue); ok {
			_ = sv.Replace(nil)
		} else {
			_ = f.Value.Set(f.DefValue)
		}
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, sub := range cmd.Commands() {
		resetFlags(sub)
	}
}

// execute runs the CLI with an empty config file so the result does not
// depend on a bracefmt.toml above the working directory.
func execute(t *testing.T, stdin string, args ...string) (stdout, stderr string, err error) {
	t.Helper()
	t.Cleanup(func() { resetFlags(rootCmd) })

	cfgPath := filepath.Join(t.TempDir(), "bracefmt.toml")
	if err := os.WriteFile(cfgPath, nil, 0o600); err != nil {
		t.Fatal(err)
	}

	var out, errOut bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errOut)
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetArgs(append([]string{"--config", cfgPath, "--color", "off"}, args...))
	err = rootCmd.ExecuteContext(context.Background())
	finishCommand(&errOut, err)
	return out.String(), errOut.String(), err
}

func TestRenderInline(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"positional", []string{"-e", "a{0}b", "-p", "X"}, "aXb\n"},
		{"escapes", []string{"-e", "{{}}"}, "{}\n"},
		{"keyword", []string{"-e", "hi {name}!", "-k", "name=Ann"}, "hi Ann!\n"},
		{"toml values", []string{"-e", "{0:>4}|{1[1]}", "-p", "42", "-p", "[1, 2]"}, "  42|2\n"},
		{"no newline", []string{"-e", "{}", "-p", "x", "--no-newline"}, "x"},
		{"value braces kept", []string{"-e", "{0}", "-p", "{x}"}, "{x}\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, stderr, err := execute(t, "", append([]string{"render"}, tt.args...)...)
			if err != nil {
				t.Fatalf("render: %v\n%s", err, stderr)
			}
			if out != tt.want {
				t.Errorf("output = %q, want %q", out, tt.want)
			}
		})
	}
}

func TestRenderStdinAndArgsFile(t *testing.T) {
	argsPath := filepath.Join(t.TempDir(), "args.toml")
	data := "positional = [\"Ann\"]\n[keyword]\ncity = \"Oslo\"\n"
	if err := os.WriteFile(argsPath, []byte(data), 0o600); err != nil {
		t.Fatal(err)
	}
	out, stderr, err := execute(t, "{0} from {city}", "render", "-", "--args", argsPath, "-k", "city=Bergen")
	if err != nil {
		t.Fatalf("render: %v\n%s", err, stderr)
	}
	if out != "Ann from Bergen\n" {
		t.Fatalf("output = %q", out)
	}
}

func TestRenderReportsFormatError(t *testing.T) {
	out, stderr, err := execute(t, "", "render", "-e", "{0}{}", "-p", "a", "-p", "b")
	if !errors.Is(err, errReported) {
		t.Fatalf("err = %v, want errReported", err)
	}
	if out != "" {
		t.Errorf("partial output %q", out)
	}
	if !strings.Contains(stderr, "cannot switch from automatic field numbering to manual field specification") {
		t.Errorf("stderr lacks message:\n%s", stderr)
	}
	if !strings.Contains(stderr, "{0}{}") || !strings.Contains(stderr, "^") {
		t.Errorf("stderr lacks caret snippet:\n%s", stderr)
	}
}

func TestRenderJSONDiagnostics(t *testing.T) {
	out, _, err := execute(t, "", "render", "-e", "x {missing}", "--diag-format", "json")
	if !errors.Is(err, errReported) {
		t.Fatalf("err = %v, want errReported", err)
	}
	var got diagfmt.DiagnosticsOutput
	if err := json.Unmarshal([]byte(out), &got); err != nil {
		t.Fatalf("bad json %q: %v", out, err)
	}
	if got.Count != 1 || got.Diagnostics[0].Message != "missing keyword argument 'missing'" {
		t.Fatalf("diagnostics = %+v", got)
	}
}

func TestRenderNeedsTemplate(t *testing.T) {
	_, _, err := execute(t, "", "render")
	if err == nil || errors.Is(err, errReported) {
		t.Fatalf("err = %v", err)
	}
	_, _, err = execute(t, "", "render", "-e", "x", "file.tmpl")
	if err == nil || !strings.Contains(err.Error(), "cannot be used together") {
		t.Fatalf("err = %v", err)
	}
}

func TestTokenizeJSON(t *testing.T) {
	out, stderr, err := execute(t, "", "tokenize", "--format", "json", "-e", "a{b!s:>10}c")
	if err != nil {
		t.Fatalf("tokenize: %v\n%s", err, stderr)
	}
	var toks []diagfmt.TokenOutput
	if err := json.Unmarshal([]byte(out), &toks); err != nil {
		t.Fatalf("bad json %q: %v", out, err)
	}
	if len(toks) != 2 {
		t.Fatalf("got %d tokens: %+v", len(toks), toks)
	}
	if toks[0].Literal != "a" || toks[0].Field == nil || toks[0].Field.Name != "b" || toks[0].Field.Spec != ">10" {
		t.Errorf("first token = %+v", toks[0])
	}
	if toks[1].Literal != "c" || toks[1].Field != nil {
		t.Errorf("second token = %+v", toks[1])
	}
}

func TestTokenizeMalformed(t *testing.T) {
	for _, src := range []string{"{", "}", "{0", "{0!", "{0[}"} {
		out, stderr, err := execute(t, "", "tokenize", "-e", src)
		if !errors.Is(err, errReported) {
			t.Errorf("%q: err = %v", src, err)
			continue
		}
		if out != "" {
			t.Errorf("%q: tokens printed despite error: %q", src, out)
		}
		if !strings.Contains(stderr, "ERROR") {
			t.Errorf("%q: no diagnostic:\n%s", src, stderr)
		}
	}
}

func TestFields(t *testing.T) {
	out, _, err := execute(t, "", "fields", "--format", "json", "0[key][2]", "foo.bar")
	if !errors.Is(err, errReported) {
		t.Fatalf("err = %v, want errReported for foo.bar", err)
	}
	var got []diagfmt.FieldPathOutput
	if err := json.Unmarshal([]byte(out), &got); err != nil {
		t.Fatalf("bad json %q: %v", out, err)
	}
	if len(got) != 2 {
		t.Fatalf("got %+v", got)
	}
	want := diagfmt.FieldPathOutput{Name: "0[key][2]", Head: "Positional(0)", Trailers: []string{"[key]", "[2]"}}
	if diff := cmp.Diff(want, got[0]); diff != "" {
		t.Errorf("0[key][2] mismatch (-want +got):\n%s", diff)
	}
	if got[1].Error == "" {
		t.Errorf("foo.bar accepted: %+v", got[1])
	}
}

func TestBatch(t *testing.T) {
	dir := t.TempDir()
	files := map[string]string{
		"a.tmpl":     "hello {name}",
		"b.tmpl":     "{0} and {}",
		"notes.txt":  "{ignored",
		"sub/c.tmpl": "{name:*^7}",
	}
	for name, text := range files {
		path := filepath.Join(dir, name)
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte(text), 0o600); err != nil {
			t.Fatal(err)
		}
	}

	out, stderr, err := execute(t, "", "batch", dir, "--ui", "off", "--jobs", "2", "-k", "name=Ann")
	if !errors.Is(err, errReported) {
		t.Fatalf("err = %v, want errReported\n%s", err, stderr)
	}
	if !strings.Contains(out, "a.tmpl: hello Ann\n") || !strings.Contains(out, "c.tmpl: **Ann**\n") {
		t.Errorf("stdout:\n%s", out)
	}
	if strings.Contains(out, "b.tmpl") || strings.Contains(out, "notes.txt") {
		t.Errorf("unexpected output:\n%s", out)
	}
	if !strings.Contains(stderr, "b.tmpl") || !strings.Contains(stderr, "Replacement index 0 out of range for positional args tuple") {
		t.Errorf("stderr:\n%s", stderr)
	}
}

func TestVersionJSON(t *testing.T) {
	out, _, err := execute(t, "", "version", "--format", "json", "--full")
	if err != nil {
		t.Fatal(err)
	}
	var got versionPayload
	if err := json.Unmarshal([]byte(out), &got); err != nil {
		t.Fatalf("bad json %q: %v", out, err)
	}
	if got.Tool != "bracefmt" || got.Version == "" || got.GitCommit == "" || got.BuildDate == "" {
		t.Fatalf("payload = %+v", got)
	}
}

func TestFlagsOverrideConfig(t *testing.T) {
	cfgPath := filepath.Join(t.TempDir(), "bracefmt.toml")
	data := "[output]\ncolor = \"on\"\nmax_diagnostics = 7\n[trace]\nlevel = \"detail\"\n"
	if err := os.WriteFile(cfgPath, []byte(data), 0o600); err != nil {
		t.Fatal(err)
	}

	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	addGlobalFlags(fs)
	if err := fs.Parse([]string{"--config", cfgPath, "--max-diagnostics", "3", "--trace", "out.ndjson"}); err != nil {
		t.Fatal(err)
	}
	cfg, err := loadConfig(fs)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Output.Color != "on" {
		t.Errorf("color from file lost: %q", cfg.Output.Color)
	}
	if cfg.Output.MaxDiagnostics != 3 {
		t.Errorf("max_diagnostics = %d, want flag value 3", cfg.Output.MaxDiagnostics)
	}
	if cfg.Trace.Level != "detail" || cfg.Trace.Output != "out.ndjson" {
		t.Errorf("trace = %+v", cfg.Trace)
	}

	fs = pflag.NewFlagSet("test", pflag.ContinueOnError)
	addGlobalFlags(fs)
	if err := fs.Parse([]string{"--config", cfgPath, "--color", "sometimes"}); err != nil {
		t.Fatal(err)
	}
	if _, err := loadConfig(fs); err == nil {
		t.Error("invalid --color accepted")
	}
}

func TestTraceFlagEnablesPhaseLevel(t *testing.T) {
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	addGlobalFlags(fs)
	if err := fs.Parse([]string{"--trace", "-"}); err != nil {
		t.Fatal(err)
	}
	c := config.Default()
	if err := applyFlagOverrides(fs, &c); err != nil {
		t.Fatal(err)
	}
	if c.Trace.Level != "phase" {
		t.Errorf("level = %q, want phase", c.Trace.Level)
	}
}

func TestReadUIMode(t *testing.T) {
	for in, want := range map[string]uiMode{"": uiModeAuto, "AUTO": uiModeAuto, " on ": uiModeOn, "off": uiModeOff} {
		got, err := readUIMode(in)
		if err != nil || got != want {
			t.Errorf("readUIMode(%q) = %q, %v", in, got, err)
		}
	}
	if _, err := readUIMode("maybe"); err == nil {
		t.Error("readUIMode accepted maybe")
	}
	if shouldUseTUI(uiModeOff, false) || !shouldUseTUI(uiModeOn, true) {
		t.Error("explicit modes ignored")
	}
}

func TestBatchTestdata(t *testing.T) {
	dir := filepath.Join("..", "..", "testdata")
	out, stderr, err := execute(t, "", "batch", dir, "--ui", "off", "--args", filepath.Join(dir, "args.toml"))
	if !errors.Is(err, errReported) {
		t.Fatalf("err = %v, want errReported (conflict.tmpl must fail)", err)
	}
	for _, want := range []string{
		"greeting.tmpl: Hello, Åsa!\n",
		`lookup.tmpl: "ann" scored +7 on day mon` + "\n",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("stdout lacks %q:\n%s", want, out)
		}
	}
	for _, failing := range []string{"conflict.tmpl", "nested_spec.tmpl"} {
		if strings.Contains(out, failing) || !strings.Contains(stderr, failing) {
			t.Errorf("%s should fail:\nstdout:\n%s\nstderr:\n%s", failing, out, stderr)
		}
	}
}
