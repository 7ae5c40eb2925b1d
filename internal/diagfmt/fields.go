package diagfmt

import (
	"encoding/json"
	"fmt"
	"io"

	"bracefmt/internal/diag"
	"bracefmt/internal/fieldpath"
)

// FieldPathOutput is the decomposition of one field name.
type FieldPathOutput struct {
	Name     string   `json:"name"`
	Head     string   `json:"head,omitempty"`
	Trailers []string `json:"trailers,omitempty"`
	Error    string   `json:"error,omitempty"`
	Code     string   `json:"code,omitempty"`
}

// DescribeFieldPath splits name and drains its trailers.
func DescribeFieldPath(name string) FieldPathOutput {
	out := FieldPathOutput{Name: name}
	path, err := fieldpath.Split(name)
	if err == nil {
		out.Head = path.Head.String()
		var trailers []fieldpath.Trailer
		trailers, err = path.Trailers.Collect()
		for _, tr := range trailers {
			out.Trailers = append(out.Trailers, tr.String())
		}
	}
	if err != nil {
		out.Error = err.Error()
		if de, ok := diag.AsError(err); ok {
			out.Code = de.Code.ID()
		}
	}
	return out
}

// FormatFieldPathsPretty prints one block per name. It reports whether any
// name failed to parse.
func FormatFieldPathsPretty(w io.Writer, names []string, opts PrettyOpts) bool {
	pal := newPalette(opts.Color)
	failed := false
	for _, name := range names {
		d := DescribeFieldPath(name)
		fmt.Fprintf(w, "%s\n", pal.path.Sprintf("%q", name))
		if d.Error != "" {
			failed = true
			fmt.Fprintf(w, "  %s %s: %s\n", pal.err.Sprint("ERROR"), pal.code.Sprint(d.Code), d.Error)
			continue
		}
		fmt.Fprintf(w, "  head     %s\n", d.Head)
		for _, tr := range d.Trailers {
			fmt.Fprintf(w, "  trailer  %s\n", tr)
		}
	}
	return failed
}

// FormatFieldPathsJSON prints the decompositions as a JSON array.
func FormatFieldPathsJSON(w io.Writer, names []string) (bool, error) {
	out := make([]FieldPathOutput, 0, len(names))
	failed := false
	for _, name := range names {
		d := DescribeFieldPath(name)
		failed = failed || d.Error != ""
		out = append(out, d)
	}
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return failed, encoder.Encode(out)
}
