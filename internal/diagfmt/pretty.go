package diagfmt

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"bracefmt/internal/diag"
	"bracefmt/internal/source"
)

type palette struct {
	path, err, warn, info, code, caret, note, gutter *color.Color
}

func newPalette(enabled bool) palette {
	p := palette{
		path:   color.New(color.Bold),
		err:    color.New(color.FgRed, color.Bold),
		warn:   color.New(color.FgYellow, color.Bold),
		info:   color.New(color.FgCyan, color.Bold),
		code:   color.New(color.FgYellow),
		caret:  color.New(color.FgRed, color.Bold),
		note:   color.New(color.FgCyan),
		gutter: color.New(color.FgBlue),
	}
	for _, c := range []*color.Color{p.path, p.err, p.warn, p.info, p.code, p.caret, p.note, p.gutter} {
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return p
}

func (p palette) severity(s diag.Severity) *color.Color {
	switch s {
	case diag.SevError:
		return p.err
	case diag.SevWarning:
		return p.warn
	}
	return p.info
}

// Pretty форматирует диагностики в человекочитаемый вид.
// Идёт по bag.Items() (ожидается bag.Sort() заранее).
// Для каждого diag печатает:
// <path>:<line>:<col>: <SEV> <CODE>: <Message>
// затем строку шаблона с подчёркиванием ^~~~ по Span, затем Notes.
func Pretty(w io.Writer, bag *diag.Bag, templates Templates, opts PrettyOpts) {
	pal := newPalette(opts.Color)
	for _, d := range bag.Items() {
		tmpl := templates.get(d.Template)
		path := formatPath(d.Template, opts.PathMode, opts.BaseDir)

		fmt.Fprintf(w, "%s: %s %s: %s\n",
			pal.path.Sprint(location(path, tmpl, d.Primary)),
			pal.severity(d.Severity).Sprint(d.Severity.String()),
			pal.code.Sprint(d.Code.ID()),
			d.Message)
		if tmpl != nil {
			snippet(w, tmpl, d.Primary, pal)
		}
		if !opts.ShowNotes {
			continue
		}
		for _, n := range d.Notes {
			fmt.Fprintf(w, "  %s %s: %s\n", pal.note.Sprint("note:"), location(path, tmpl, n.Span), n.Msg)
		}
	}
}

// Error prints a single error against one template. Errors that carry no
// diagnostic are printed as plain text.
func Error(w io.Writer, err error, tmpl *source.Template, opts PrettyOpts) {
	name := ""
	ts := Templates{}
	if tmpl != nil {
		name = tmpl.Path
		ts[name] = tmpl
	}
	bag := diag.NewBag(1)
	bag.AddError(name, err)
	Pretty(w, bag, ts, opts)
}

func location(path string, tmpl *source.Template, sp source.Span) string {
	if tmpl == nil {
		return path + ":" + sp.String()
	}
	start, _ := tmpl.Resolve(sp)
	return path + ":" + strconv.FormatUint(uint64(start.Line), 10) + ":" + strconv.FormatUint(uint64(start.Col), 10)
}

// snippet prints the line holding sp.Start and a caret run under the span.
// Columns are measured in terminal cells so wide runes stay aligned.
func snippet(w io.Writer, tmpl *source.Template, sp source.Span, pal palette) {
	start, end := tmpl.Resolve(sp)
	line := tmpl.GetLine(start.Line)
	lineNo := strconv.FormatUint(uint64(start.Line), 10)
	gutter := strings.Repeat(" ", len(lineNo))

	fmt.Fprintf(w, " %s %s %s\n", pal.gutter.Sprint(lineNo), pal.gutter.Sprint("|"), line)

	from := clampCol(start.Col, line)
	to := len(line)
	if end.Line == start.Line {
		to = clampCol(end.Col, line)
	}
	pad := runewidth.StringWidth(line[:from])
	width := 1
	if to > from {
		width = max(runewidth.StringWidth(line[from:to]), 1)
	}
	marker := "^" + strings.Repeat("~", width-1)
	fmt.Fprintf(w, " %s %s %s%s\n", gutter, pal.gutter.Sprint("|"), strings.Repeat(" ", pad), pal.caret.Sprint(marker))
}

// clampCol turns a 1-based byte column into a byte offset inside line.
func clampCol(col uint32, line string) int {
	off := int(col) - 1
	if off < 0 {
		return 0
	}
	return min(off, len(line))
}
