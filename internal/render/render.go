// Package render substitutes replacement fields of a format string with
// values taken from positional and keyword arguments.
package render

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"bracefmt/internal/diag"
	"bracefmt/internal/fieldpath"
	"bracefmt/internal/hostval"
	"bracefmt/internal/lexer"
	"bracefmt/internal/numbering"
	"bracefmt/internal/token"
	"bracefmt/internal/trace"
)

// Options configures a Renderer.
type Options struct {
	// Host formats values and performs subscripts; hostval.Default when nil.
	Host Host
	// Tracer receives a template span per call and, at debug level, a field
	// span per replacement field. When nil the tracer from the context is used.
	Tracer trace.Tracer
}

// Renderer is stateless between calls and may be shared.
type Renderer struct {
	host   Host
	tracer trace.Tracer
}

func New(opts Options) *Renderer {
	r := &Renderer{host: opts.Host, tracer: opts.Tracer}
	if r.host == nil {
		r.host = hostval.Default{}
	}
	return r
}

// Render formats s. On failure it returns "" and the first error; no partial
// output is ever produced.
func (r *Renderer) Render(s string, positional []any, keyword map[string]any) (string, error) {
	return r.RenderContext(context.Background(), s, positional, keyword)
}

// RenderContext is Render with tracing and cancellation taken from ctx.
func (r *Renderer) RenderContext(ctx context.Context, s string, positional []any, keyword map[string]any) (string, error) {
	run := r.begin(ctx, "render", len(s))
	lx := lexer.New(s)
	for {
		tok, ok, err := lx.Next()
		if err != nil {
			return run.fail(err)
		}
		if !ok {
			break
		}
		if err := run.token(ctx, tok, positional, keyword); err != nil {
			return run.fail(err)
		}
	}
	return run.done()
}

// RenderTokens renders an already tokenized template, e.g. one loaded from
// the template cache. Semantics are the same as Render.
func (r *Renderer) RenderTokens(ctx context.Context, tokens []token.Token, positional []any, keyword map[string]any) (string, error) {
	run := r.begin(ctx, "render-tokens", 0)
	for _, tok := range tokens {
		if err := run.token(ctx, tok, positional, keyword); err != nil {
			return run.fail(err)
		}
	}
	return run.done()
}

// call holds the per-call state: output buffer, numbering and trace span.
type call struct {
	r      *Renderer
	tracer trace.Tracer
	span   *trace.Span
	out    strings.Builder
	num    numbering.State
	fields int
}

func (r *Renderer) begin(ctx context.Context, name string, size int) *call {
	t := r.tracer
	if t == nil {
		t = trace.FromContext(ctx)
	}
	c := &call{r: r, tracer: t}
	c.span = trace.Begin(t, trace.ScopeTemplate, name, trace.CurrentSpan(ctx))
	if size > 0 {
		c.out.Grow(size)
	}
	return c
}

func (c *call) fail(err error) (string, error) {
	c.span.WithExtra("fields", strconv.Itoa(c.fields)).End("error: " + err.Error())
	return "", err
}

func (c *call) done() (string, error) {
	c.span.WithExtra("fields", strconv.Itoa(c.fields)).End("")
	return c.out.String(), nil
}

func (c *call) token(ctx context.Context, tok token.Token, positional []any, keyword map[string]any) error {
	c.out.WriteString(tok.Literal)
	if tok.Field == nil {
		return nil
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	c.fields++

	fspan := trace.Begin(c.tracer, trace.ScopeField, "field:"+tok.Field.Name, c.span.ID())
	text, err := c.field(tok.Field, positional, keyword)
	if err != nil {
		fspan.End("error")
		return err
	}
	fspan.End("")
	// значение вставляется как есть, без повторного экранирования скобок
	c.out.WriteString(text)
	return nil
}

func (c *call) field(f *token.FieldSpec, positional []any, keyword map[string]any) (string, error) {
	shift := f.NameSpan.Start

	path, err := fieldpath.Split(f.Name)
	if err != nil {
		return "", relocate(err, shift)
	}

	value, err := c.argument(path, positional, keyword)
	if err != nil {
		return "", relocate(err, shift)
	}

	for {
		tr, ok, err := path.Trailers.Next()
		if err != nil {
			return "", relocate(err, shift)
		}
		if !ok {
			break
		}
		next, err := c.r.host.IndexInto(value, tr.Key)
		if err != nil {
			return "", diag.Wrap(diag.LkpFailed, tr.Span.ShiftRight(shift), err,
				fmt.Sprintf("lookup of %s failed", tr))
		}
		value = next
	}

	text, err := c.r.host.RenderValue(value, f.Spec, f.Conversion)
	if err != nil {
		return "", diag.Wrap(diag.HstRenderFailed, f.Span, err,
			fmt.Sprintf("cannot render field %s", f))
	}
	return text, nil
}

// argument selects the positional or keyword argument named by the path head.
func (c *call) argument(path fieldpath.Path, positional []any, keyword map[string]any) (any, error) {
	index, isPositional, err := c.num.Next(path.Head, path.HeadSpan)
	if err != nil {
		return nil, err
	}
	if isPositional {
		if index < 0 || index >= len(positional) {
			return nil, diag.Errorf(diag.ArgIndexOutOfRange, path.HeadSpan,
				"Replacement index %d out of range for positional args tuple", index)
		}
		return positional[index], nil
	}
	v, ok := keyword[path.Head.Name]
	if !ok {
		return nil, diag.Errorf(diag.ArgMissingKeyword, path.HeadSpan,
			"missing keyword argument '%s'", path.Head.Name)
	}
	return v, nil
}

// relocate moves spans computed against the field name into format string
// coordinates.
func relocate(err error, shift uint32) error {
	if de, ok := diag.AsError(err); ok {
		return de.Shift(shift)
	}
	return err
}
