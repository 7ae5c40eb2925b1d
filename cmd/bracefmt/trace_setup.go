package main

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/pflag"

	"bracefmt/internal/config"
	"bracefmt/internal/trace"
)

// tracing владеет трейсером команды и её корневым спаном.
type tracing struct {
	tracer trace.Tracer
	ring   *trace.RingTracer // только для --trace-mode ring
	format trace.Format
	span   *trace.Span
}

// setupTracing builds the tracer from [trace] settings and the --trace-mode
// flags, attaches it to ctx and opens a command span.
func setupTracing(ctx context.Context, flags *pflag.FlagSet, cfg config.TraceConfig, command string) (*tracing, context.Context, error) {
	level, err := trace.ParseLevel(cfg.Level)
	if err != nil {
		return nil, ctx, fmt.Errorf("invalid trace level: %w", err)
	}
	if level == trace.LevelOff {
		return &tracing{tracer: trace.Nop}, trace.WithTracer(ctx, trace.Nop), nil
	}

	modeStr, err := flags.GetString("trace-mode")
	if err != nil {
		return nil, ctx, fmt.Errorf("failed to get trace-mode flag: %w", err)
	}
	mode, err := trace.ParseMode(modeStr)
	if err != nil {
		return nil, ctx, fmt.Errorf("invalid trace mode: %w", err)
	}
	ringSize, err := flags.GetInt("trace-ring-size")
	if err != nil {
		return nil, ctx, fmt.Errorf("failed to get trace-ring-size flag: %w", err)
	}
	format, err := trace.ParseFormat(cfg.Format)
	if err != nil {
		return nil, ctx, fmt.Errorf("invalid trace format: %w", err)
	}

	tracer, err := trace.New(trace.Config{
		Level:      level,
		Mode:       mode,
		Format:     format,
		OutputPath: cfg.Output,
		RingSize:   ringSize,
	})
	if err != nil {
		return nil, ctx, fmt.Errorf("failed to create tracer: %w", err)
	}

	t := &tracing{tracer: tracer, format: format}
	if ring, ok := tracer.(*trace.RingTracer); ok {
		t.ring = ring
	}
	ctx = trace.WithTracer(ctx, tracer)
	t.span = trace.Begin(tracer, trace.ScopeCommand, command, 0)
	ctx = trace.WithSpan(ctx, t.span)
	return t, ctx, nil
}

// finish closes the command span and the tracer. In ring mode the buffered
// events are dumped to stderr only when the command failed.
func (t *tracing) finish(stderr io.Writer, cmdErr error) {
	if t == nil || t.tracer == trace.Nop {
		return
	}
	detail := ""
	if cmdErr != nil {
		detail = "error"
	}
	t.span.End(detail)

	if t.ring != nil && cmdErr != nil {
		format := t.format
		if format == trace.FormatAuto {
			format = trace.FormatText
		}
		fmt.Fprintln(stderr, "trace: last events before failure:")
		if err := t.ring.Dump(stderr, format); err != nil {
			fmt.Fprintf(stderr, "trace: dump error: %v\n", err)
		}
	}
	if err := t.tracer.Flush(); err != nil {
		fmt.Fprintf(stderr, "trace: flush error: %v\n", err)
	}
	if err := t.tracer.Close(); err != nil {
		fmt.Fprintf(stderr, "trace: close error: %v\n", err)
	}
}
