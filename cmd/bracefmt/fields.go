package main

import (
	"github.com/spf13/cobra"

	"bracefmt/internal/diagfmt"
)

var fieldsCmd = &cobra.Command{
	Use:   "fields [flags] name...",
	Short: "Show how field names split into head and trailers",
	Long: `Fields decomposes replacement-field names such as "0[key][2]" into the
argument they select and the subscripts applied to it.`,
	Example: `  bracefmt fields 0 name 'users[0][email]' ''`,
	Args:    cobra.MinimumNArgs(1),
	RunE:    runFields,
}

func init() {
	fieldsCmd.Flags().String("format", "pretty", "output format (pretty|json)")
}

func runFields(cmd *cobra.Command, args []string) error {
	s := sessionFrom(cmd.Context())
	format, err := readDiagFormat(cmd, "format")
	if err != nil {
		return err
	}

	var failed bool
	if format == "json" {
		failed, err = diagfmt.FormatFieldPathsJSON(cmd.OutOrStdout(), args)
		if err != nil {
			return err
		}
	} else {
		failed = diagfmt.FormatFieldPathsPretty(cmd.OutOrStdout(), args, diagfmt.PrettyOpts{Color: s.colorStdout})
	}
	if failed {
		return errReported
	}
	return nil
}
