package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"bracefmt/internal/diagfmt"
	"bracefmt/internal/lexer"
	"bracefmt/internal/trace"
)

var tokenizeCmd = &cobra.Command{
	Use:   "tokenize [flags] [template|-]",
	Short: "Print the tokens of a format string",
	Long: `Tokenize splits a format string into tokens: the literal text before each
replacement field and the field itself (name, conversion, format spec).`,
	Args: cobra.MaximumNArgs(1),
	RunE: runTokenize,
}

func init() {
	tokenizeCmd.Flags().String("format", "pretty", "output format (pretty|json)")
	addTemplateFlags(tokenizeCmd)
}

func runTokenize(cmd *cobra.Command, args []string) error {
	s := sessionFrom(cmd.Context())

	// Получаем флаги
	format, err := readDiagFormat(cmd, "format")
	if err != nil {
		return err
	}

	stop := s.timer.Track("load")
	tmpl, err := readTemplate(cmd, args)
	stop("")
	if err != nil {
		return err
	}

	span := trace.Begin(trace.FromContext(cmd.Context()), trace.ScopeTemplate, "tokenize", trace.CurrentSpan(cmd.Context()))
	stop = s.timer.Track("tokenize")
	tokens, err := lexer.All(tmpl.Text)
	stop("")
	span.WithExtra("tokens", strconv.Itoa(len(tokens))).End("")
	if err != nil {
		return reportTemplateError(cmd, s, err, tmpl, format)
	}

	// Выводим токены в выбранном формате
	switch format {
	case "json":
		return diagfmt.FormatTokensJSON(cmd.OutOrStdout(), tokens)
	default:
		if err := diagfmt.FormatTokensPretty(cmd.OutOrStdout(), tokens, tmpl); err != nil {
			return fmt.Errorf("failed to print tokens: %w", err)
		}
		return nil
	}
}
