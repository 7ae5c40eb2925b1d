package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"bracefmt/internal/config"
	"bracefmt/internal/observ"
)

// session собирает всё, что общие флаги и bracefmt.toml дают подкоманде.
type session struct {
	cfg            config.Config
	quiet          bool
	timings        bool
	colorStdout    bool
	colorStderr    bool
	maxDiagnostics int
	timer          *observ.Timer
	tracing        *tracing
}

type sessionKey struct{}

// current is the session of the running command; finishCommand closes it.
var current *session

func sessionFrom(ctx context.Context) *session {
	if s, ok := ctx.Value(sessionKey{}).(*session); ok {
		return s
	}
	return &session{cfg: config.Default(), maxDiagnostics: 100}
}

// prepareCommand loads the configuration, applies flag overrides and
// installs the tracer. Runs before every subcommand.
func prepareCommand(cmd *cobra.Command, _ []string) error {
	flags := cmd.Root().PersistentFlags()

	timings, err := flags.GetBool("timings")
	if err != nil {
		return fmt.Errorf("failed to get timings flag: %w", err)
	}
	var timer *observ.Timer
	if timings {
		timer = observ.NewTimer()
	}

	stop := timer.Track("config")
	cfg, err := loadConfig(flags)
	stop(cfg.Path)
	if err != nil {
		return err
	}

	quiet, err := flags.GetBool("quiet")
	if err != nil {
		return fmt.Errorf("failed to get quiet flag: %w", err)
	}

	s := &session{
		cfg:            cfg,
		quiet:          quiet,
		timings:        timings,
		colorStdout:    useColor(cfg.Output.Color, os.Stdout),
		colorStderr:    useColor(cfg.Output.Color, os.Stderr),
		maxDiagnostics: cfg.Output.MaxDiagnostics,
		timer:          timer,
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	s.tracing, ctx, err = setupTracing(ctx, flags, cfg.Trace, cmd.CommandPath())
	if err != nil {
		return err
	}
	current = s
	cmd.SetContext(context.WithValue(ctx, sessionKey{}, s))
	return nil
}

// finishCommand closes the tracer and prints timings. It runs after Execute
// whether the command failed or not.
func finishCommand(stderr io.Writer, err error) {
	s := current
	current = nil
	if s == nil {
		return
	}
	s.tracing.finish(stderr, err)
	if s.timings && !s.quiet {
		printTimings(stderr, s.timer)
	}
}

// loadConfig читает --config или ищет bracefmt.toml; явные флаги важнее файла.
func loadConfig(flags *pflag.FlagSet) (config.Config, error) {
	path, err := flags.GetString("config")
	if err != nil {
		return config.Config{}, fmt.Errorf("failed to get config flag: %w", err)
	}

	var cfg config.Config
	if path != "" {
		cfg, err = config.Load(path)
	} else {
		var wd string
		wd, err = os.Getwd()
		if err != nil {
			return config.Config{}, fmt.Errorf("failed to get working directory: %w", err)
		}
		cfg, err = config.Discover(wd)
	}
	if err != nil {
		return config.Config{}, err
	}

	if err := applyFlagOverrides(flags, &cfg); err != nil {
		return config.Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return config.Config{}, fmt.Errorf("invalid flags: %w", err)
	}
	return cfg, nil
}

func applyFlagOverrides(flags *pflag.FlagSet, cfg *config.Config) error {
	overrides := []struct {
		flag string
		dst  *string
	}{
		{"color", &cfg.Output.Color},
		{"trace", &cfg.Trace.Output},
		{"trace-level", &cfg.Trace.Level},
		{"trace-format", &cfg.Trace.Format},
	}
	for _, o := range overrides {
		if !flags.Changed(o.flag) {
			continue
		}
		v, err := flags.GetString(o.flag)
		if err != nil {
			return fmt.Errorf("failed to get %s flag: %w", o.flag, err)
		}
		*o.dst = v
	}
	if flags.Changed("max-diagnostics") {
		v, err := flags.GetInt("max-diagnostics")
		if err != nil {
			return fmt.Errorf("failed to get max-diagnostics flag: %w", err)
		}
		cfg.Output.MaxDiagnostics = v
	}
	// --trace без --trace-level включает уровень phase
	if flags.Changed("trace") && !flags.Changed("trace-level") && cfg.Trace.Level == "off" {
		cfg.Trace.Level = "phase"
	}
	return nil
}

func useColor(mode string, f *os.File) bool {
	switch mode {
	case "on":
		return true
	case "off":
		return false
	default:
		return isTerminal(f)
	}
}
