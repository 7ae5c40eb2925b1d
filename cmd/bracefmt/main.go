package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"golang.org/x/term"

	"bracefmt/internal/version"
)

var rootCmd = &cobra.Command{
	Use:   "bracefmt",
	Short: "Brace format-string engine",
	Long: `bracefmt tokenizes and renders brace format strings such as "Hello {name!r:>10}".
Templates are read from files, from stdin ("-") or inline with --expr.`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: prepareCommand,
}

// errReported означает, что ошибки уже напечатаны и повторять их не нужно.
var errReported = errors.New("errors reported")

func init() {
	rootCmd.Version = version.String()

	// Добавляем команды
	rootCmd.AddCommand(tokenizeCmd)
	rootCmd.AddCommand(fieldsCmd)
	rootCmd.AddCommand(renderCmd)
	rootCmd.AddCommand(batchCmd)
	rootCmd.AddCommand(versionCmd)

	addGlobalFlags(rootCmd.PersistentFlags())
}

func addGlobalFlags(fs *pflag.FlagSet) {
	// Глобальные флаги
	fs.String("config", "", "config file (default: bracefmt.toml discovered upwards from the working directory)")
	fs.String("color", "auto", "colorize output (auto|on|off)")
	fs.Bool("quiet", false, "suppress non-essential output")
	fs.Bool("timings", false, "show timing information")
	fs.Int("max-diagnostics", 100, "maximum number of diagnostics to show")

	// Трассировка
	fs.String("trace", "", "trace output file (- for stderr)")
	fs.String("trace-level", "off", "trace level (off|error|phase|detail|debug)")
	fs.String("trace-format", "auto", "trace format (auto|text|ndjson)")
	fs.String("trace-mode", "stream", "trace storage mode (stream|ring|both)")
	fs.Int("trace-ring-size", 4096, "ring buffer size for --trace-mode ring|both")
}

// main executes the root command. Any error exits with status code 1.
func main() {
	err := rootCmd.Execute()
	finishCommand(rootCmd.ErrOrStderr(), err)
	if err != nil {
		if !errors.Is(err, errReported) {
			fmt.Fprintln(rootCmd.ErrOrStderr(), "Error:", err)
		}
		os.Exit(1)
	}
}

// isTerminal проверяет, является ли файл терминалом
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}
