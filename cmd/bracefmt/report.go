package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"bracefmt/internal/diag"
	"bracefmt/internal/diagfmt"
	"bracefmt/internal/source"
)

func readDiagFormat(cmd *cobra.Command, flag string) (string, error) {
	format, err := cmd.Flags().GetString(flag)
	if err != nil {
		return "", fmt.Errorf("failed to get %s flag: %w", flag, err)
	}
	switch format {
	case "pretty", "json":
		return format, nil
	default:
		return "", fmt.Errorf("unknown format: %s", format)
	}
}

// reportTemplateError печатает ошибку формата с указанием места в шаблоне.
// Ошибки без диагностики (I/O и т.п.) возвращаются как есть.
func reportTemplateError(cmd *cobra.Command, s *session, err error, tmpl *source.Template, format string) error {
	if _, ok := diag.AsError(err); !ok {
		return err
	}
	bag := diag.NewBag(1)
	bag.AddError(tmpl.Path, err)
	return reportBag(cmd, s, bag, diagfmt.Templates{tmpl.Path: tmpl}, format)
}

func reportBag(cmd *cobra.Command, s *session, bag *diag.Bag, templates diagfmt.Templates, format string) error {
	if format == "json" {
		opts := diagfmt.JSONOpts{
			IncludePositions: true,
			IncludeNotes:     true,
			Max:              s.maxDiagnostics,
		}
		if err := diagfmt.JSON(cmd.OutOrStdout(), bag, templates, opts); err != nil {
			return fmt.Errorf("failed to write diagnostics: %w", err)
		}
		return errReported
	}
	diagfmt.Pretty(cmd.ErrOrStderr(), bag, templates, diagfmt.PrettyOpts{
		Color:     s.colorStderr,
		PathMode:  diagfmt.PathModeAuto,
		ShowNotes: true,
	})
	return errReported
}
