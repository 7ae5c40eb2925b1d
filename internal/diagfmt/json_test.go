package diagfmt

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/google/go-cmp/cmp"

	"bracefmt/internal/lexer"
)

func TestJSONDiagnostics(t *testing.T) {
	templates, bag := templateWithError(t, "a.tmpl", "x\n{0")

	var buf bytes.Buffer
	if err := JSON(&buf, bag, templates, JSONOpts{IncludePositions: true}); err != nil {
		t.Fatal(err)
	}
	var got DiagnosticsOutput
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("invalid JSON: %v\n%s", err, buf.String())
	}
	want := DiagnosticsOutput{
		Count: 1,
		Diagnostics: []DiagnosticJSON{{
			Severity: "ERROR",
			Code:     "BRC1003",
			Kind:     "MalformedBrace",
			Message:  "expected '}' before end of string",
			Location: LocationJSON{
				Template: "a.tmpl", StartByte: 2, EndByte: 4,
				StartLine: 2, StartCol: 1, EndLine: 2, EndCol: 3,
			},
		}},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("JSON mismatch (-want +got):\n%s", diff)
	}
}

func TestTokensJSON(t *testing.T) {
	toks, err := lexer.All("a{b!s:>10}c")
	if err != nil {
		t.Fatal(err)
	}
	var buf bytes.Buffer
	if err := FormatTokensJSON(&buf, toks); err != nil {
		t.Fatal(err)
	}
	var got []TokenOutput
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatal(err)
	}
	if len(got) != 2 || got[0].Field == nil || got[0].Field.Name != "b" ||
		got[0].Field.Conversion != "s" || got[0].Field.Spec != ">10" || got[1].Literal != "c" {
		t.Fatalf("unexpected tokens %+v", got)
	}
}

func TestTokensPretty(t *testing.T) {
	toks, err := lexer.All("a{0}")
	if err != nil {
		t.Fatal(err)
	}
	var buf bytes.Buffer
	if err := FormatTokensPretty(&buf, toks, nil); err != nil {
		t.Fatal(err)
	}
	if !bytes.Contains(buf.Bytes(), []byte(`literal "a" field {0}`)) {
		t.Fatalf("output = %q", buf.String())
	}
}

func TestFieldPaths(t *testing.T) {
	var buf bytes.Buffer
	failed, err := FormatFieldPathsJSON(&buf, []string{"0[key][2]", "foo.bar"})
	if err != nil {
		t.Fatal(err)
	}
	if !failed {
		t.Fatal("foo.bar should fail")
	}
	var got []FieldPathOutput
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatal(err)
	}
	want := []FieldPathOutput{
		{Name: "0[key][2]", Head: "Positional(0)", Trailers: []string{"[key]", "[2]"}},
		{Name: "foo.bar", Error: "attribute access '.bar' in format field is not supported", Code: "FUT7001"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("mismatch (-want +got):\n%s", diff)
	}
}
