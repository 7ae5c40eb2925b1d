package diagfmt

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"

	"bracefmt/internal/source"
	"bracefmt/internal/token"
)

type FieldOutput struct {
	Name       string      `json:"name"`
	Conversion string      `json:"conversion,omitempty"`
	Spec       string      `json:"spec,omitempty"`
	Span       source.Span `json:"span"`
}

type TokenOutput struct {
	Literal string       `json:"literal"`
	Span    source.Span  `json:"span"`
	Field   *FieldOutput `json:"field,omitempty"`
}

var (
	literalStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	fieldStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("6")).Bold(true)
	dimStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

// FormatTokensPretty выводит токены в человекочитаемом формате.
// Literal и поле печатаются отдельными столбцами; стили отключаются сами,
// если вывод не терминал.
func FormatTokensPretty(w io.Writer, tokens []token.Token, tmpl *source.Template) error {
	for i, tok := range tokens {
		pos := tok.Span().String()
		if tmpl != nil {
			s, e := tmpl.Resolve(tok.Span())
			pos = fmt.Sprintf("%d:%d-%d:%d", s.Line, s.Col, e.Line, e.Col)
		}
		if _, err := fmt.Fprintf(w, "%3d: %s ", i+1, dimStyle.Render(pos)); err != nil {
			return err
		}

		lit := literalStyle.Render(fmt.Sprintf("%q", tok.Literal))
		if tok.Field == nil {
			if _, err := fmt.Fprintf(w, "literal %s\n", lit); err != nil {
				return err
			}
			continue
		}
		f := tok.Field
		if _, err := fmt.Fprintf(w, "literal %s field %s", lit, fieldStyle.Render(f.String())); err != nil {
			return err
		}
		if f.Conversion != token.NoConversion {
			fmt.Fprintf(w, " conv=%s", f.Conversion)
		}
		if f.Spec != "" {
			fmt.Fprintf(w, " spec=%q", f.Spec)
		}
		fmt.Fprintln(w)
	}
	return nil
}

// FormatTokensJSON выводит токены в JSON формате
func FormatTokensJSON(w io.Writer, tokens []token.Token) error {
	output := make([]TokenOutput, 0, len(tokens))
	for _, tok := range tokens {
		out := TokenOutput{Literal: tok.Literal, Span: tok.Span()}
		if f := tok.Field; f != nil {
			out.Field = &FieldOutput{Name: f.Name, Spec: f.Spec, Span: f.Span}
			if f.Conversion != token.NoConversion {
				out.Field.Conversion = f.Conversion.String()
			}
		}
		output = append(output, out)
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(output)
}
