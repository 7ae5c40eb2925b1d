package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"bracefmt/internal/config"
	"bracefmt/internal/source"
)

const stdinName = "<stdin>"

// addTemplateFlags registers the flags shared by commands that read one template.
func addTemplateFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("expr", "e", "", "template text given inline instead of a file")
	cmd.Flags().Bool("nfc", false, "normalize template text to Unicode NFC")
}

// readTemplate берёт шаблон из --expr, из файла или из stdin ("-").
func readTemplate(cmd *cobra.Command, args []string) (*source.Template, error) {
	expr, err := cmd.Flags().GetString("expr")
	if err != nil {
		return nil, fmt.Errorf("failed to get expr flag: %w", err)
	}
	nfc, err := cmd.Flags().GetBool("nfc")
	if err != nil {
		return nil, fmt.Errorf("failed to get nfc flag: %w", err)
	}
	opts := source.LoadOptions{NFC: nfc}

	switch {
	case cmd.Flags().Changed("expr") && len(args) > 0:
		return nil, fmt.Errorf("--expr and a template file cannot be used together")
	case cmd.Flags().Changed("expr"):
		return source.NewTemplate("", expr, opts), nil
	case len(args) == 0:
		return nil, fmt.Errorf("missing template: pass a file, - for stdin, or --expr")
	case args[0] == "-":
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return nil, fmt.Errorf("failed to read stdin: %w", err)
		}
		return source.NewTemplate(stdinName, string(data), opts), nil
	default:
		tmpl, err := source.Load(args[0], opts)
		if err != nil {
			return nil, fmt.Errorf("failed to read template: %w", err)
		}
		return tmpl, nil
	}
}

// addArgumentFlags registers --args, -p and -k.
func addArgumentFlags(cmd *cobra.Command) {
	cmd.Flags().String("args", "", "TOML file with positional = [...] and a [keyword] table")
	cmd.Flags().StringArrayP("pos", "p", nil, "positional argument (TOML value or bare string), repeatable")
	cmd.Flags().StringArrayP("kw", "k", nil, "keyword argument name=value, repeatable")
}

// readArguments loads --args and appends -p/-k values in command-line order.
func readArguments(cmd *cobra.Command) (config.Args, error) {
	var args config.Args
	path, err := cmd.Flags().GetString("args")
	if err != nil {
		return args, fmt.Errorf("failed to get args flag: %w", err)
	}
	if path != "" {
		if args, err = config.LoadArgs(path); err != nil {
			return args, err
		}
	}

	positional, err := cmd.Flags().GetStringArray("pos")
	if err != nil {
		return args, fmt.Errorf("failed to get pos flag: %w", err)
	}
	for _, p := range positional {
		args.AddPositional(p)
	}
	keyword, err := cmd.Flags().GetStringArray("kw")
	if err != nil {
		return args, fmt.Errorf("failed to get kw flag: %w", err)
	}
	for _, kv := range keyword {
		if err := args.AddKeyword(kv); err != nil {
			return args, err
		}
	}
	return args, nil
}
