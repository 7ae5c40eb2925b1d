package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"bracefmt/internal/render"
)

var renderCmd = &cobra.Command{
	Use:   "render [flags] [template|-]",
	Short: "Render a format string with arguments",
	Long: `Render substitutes positional and keyword arguments into a format string.
Arguments come from a TOML file (--args) and from -p/-k flags; values are parsed
as TOML when possible, so -p 42 is an integer and -p hello a string.`,
	Example: `  bracefmt render -e 'Hello {name!r:>10}' -k name=Ann
  bracefmt render greeting.tmpl --args args.toml -p 3`,
	Args: cobra.MaximumNArgs(1),
	RunE: runRender,
}

func init() {
	renderCmd.Flags().String("diag-format", "pretty", "diagnostics format (pretty|json)")
	renderCmd.Flags().Bool("no-newline", false, "do not print a trailing newline")
	addTemplateFlags(renderCmd)
	addArgumentFlags(renderCmd)
}

func runRender(cmd *cobra.Command, args []string) error {
	s := sessionFrom(cmd.Context())

	format, err := readDiagFormat(cmd, "diag-format")
	if err != nil {
		return err
	}
	noNewline, err := cmd.Flags().GetBool("no-newline")
	if err != nil {
		return fmt.Errorf("failed to get no-newline flag: %w", err)
	}

	stop := s.timer.Track("load")
	tmpl, err := readTemplate(cmd, args)
	if err != nil {
		stop("")
		return err
	}
	values, err := readArguments(cmd)
	stop("")
	if err != nil {
		return err
	}

	r := render.New(render.Options{})
	stop = s.timer.Track("render")
	out, err := r.RenderContext(cmd.Context(), tmpl.Text, values.Positional, values.Keyword)
	stop("")
	if err != nil {
		return reportTemplateError(cmd, s, err, tmpl, format)
	}

	if noNewline {
		_, err = fmt.Fprint(cmd.OutOrStdout(), out)
	} else {
		_, err = fmt.Fprintln(cmd.OutOrStdout(), out)
	}
	return err
}
