package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"bracefmt/internal/batch"
	"bracefmt/internal/cache"
	"bracefmt/internal/diagfmt"
	"bracefmt/internal/render"
	"bracefmt/internal/source"
)

var batchCmd = &cobra.Command{
	Use:   "batch [flags] dir",
	Short: "Render every template in a directory concurrently",
	Long: `Batch renders all templates under dir (recursively, by extension) with the
same arguments. Each output is printed as "path: output"; failing templates are
reported after the run and make the command exit with status 1.`,
	Args: cobra.ExactArgs(1),
	RunE: runBatch,
}

func init() {
	batchCmd.Flags().Int("jobs", 0, "number of templates rendered in parallel (0 = [batch].jobs or GOMAXPROCS)")
	batchCmd.Flags().String("ext", batch.DefaultExt, "template file extension")
	batchCmd.Flags().Bool("cache", false, "cache tokenized templates on disk (default: [cache].enabled)")
	batchCmd.Flags().Bool("clear-cache", false, "drop the template cache before the run")
	batchCmd.Flags().String("ui", "auto", "live progress view (auto|on|off)")
	batchCmd.Flags().Bool("nfc", false, "normalize template text to Unicode NFC")
	batchCmd.Flags().String("diag-format", "pretty", "diagnostics format (pretty|json)")
	addArgumentFlags(batchCmd)
}

func runBatch(cmd *cobra.Command, args []string) error {
	s := sessionFrom(cmd.Context())
	dir := args[0]

	// Получаем флаги
	format, err := readDiagFormat(cmd, "diag-format")
	if err != nil {
		return err
	}
	jobs, err := cmd.Flags().GetInt("jobs")
	if err != nil {
		return fmt.Errorf("failed to get jobs flag: %w", err)
	}
	if !cmd.Flags().Changed("jobs") {
		jobs = s.cfg.Batch.Jobs
	}
	if jobs < 0 {
		return fmt.Errorf("--jobs must not be negative")
	}
	ext, err := cmd.Flags().GetString("ext")
	if err != nil {
		return fmt.Errorf("failed to get ext flag: %w", err)
	}
	if ext != "" && !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	nfc, err := cmd.Flags().GetBool("nfc")
	if err != nil {
		return fmt.Errorf("failed to get nfc flag: %w", err)
	}
	uiValue, err := cmd.Flags().GetString("ui")
	if err != nil {
		return fmt.Errorf("failed to get ui flag: %w", err)
	}
	mode, err := readUIMode(uiValue)
	if err != nil {
		return err
	}

	values, err := readArguments(cmd)
	if err != nil {
		return err
	}

	disk, err := openCache(cmd, s)
	if err != nil {
		return err
	}

	files, err := batch.ListTemplates(dir, ext)
	if err != nil {
		return fmt.Errorf("failed to list templates: %w", err)
	}
	if len(files) == 0 {
		if !s.quiet {
			fmt.Fprintf(cmd.ErrOrStderr(), "no %s templates in %s\n", ext, dir)
		}
		return nil
	}

	opts := batch.Options{
		Jobs:     jobs,
		Ext:      ext,
		Renderer: render.New(render.Options{}),
		Cache:    disk,
		Timer:    s.timer,
		Load:     source.LoadOptions{NFC: nfc},
	}

	var results []batch.Result
	if shouldUseTUI(mode, s.quiet) {
		results, err = runBatchWithUI(cmd.Context(), "batch "+dir, files, values.Positional, values.Keyword, opts)
	} else {
		results, err = batch.RenderFiles(cmd.Context(), files, values.Positional, values.Keyword, opts)
	}
	if err != nil {
		return fmt.Errorf("batch interrupted: %w", err)
	}

	out := cmd.OutOrStdout()
	for _, res := range results {
		if res.Err == nil {
			fmt.Fprintf(out, "%s: %s\n", res.Path, res.Output)
		}
	}
	if disk != nil && !s.quiet {
		hits, misses := disk.Stats()
		fmt.Fprintf(cmd.ErrOrStderr(), "cache: %d hits, %d misses (%s)\n", hits, misses, disk.Dir())
	}

	if !batch.Failed(results) {
		return nil
	}
	templates := make(diagfmt.Templates, len(results))
	for _, res := range results {
		if res.Template != nil {
			templates[res.Path] = res.Template
		}
	}
	return reportBag(cmd, s, batch.Diagnostics(results, s.maxDiagnostics), templates, format)
}

// openCache открывает дисковый кэш, если он включён флагом или [cache].enabled.
func openCache(cmd *cobra.Command, s *session) (*cache.Disk, error) {
	enabled, err := cmd.Flags().GetBool("cache")
	if err != nil {
		return nil, fmt.Errorf("failed to get cache flag: %w", err)
	}
	if !cmd.Flags().Changed("cache") {
		enabled = s.cfg.Cache.Enabled
	}
	drop, err := cmd.Flags().GetBool("clear-cache")
	if err != nil {
		return nil, fmt.Errorf("failed to get clear-cache flag: %w", err)
	}
	if !enabled && !drop {
		return nil, nil
	}

	dir, err := s.cfg.CacheDir()
	if err != nil {
		return nil, err
	}
	disk, err := cache.Open(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to open template cache: %w", err)
	}
	if drop {
		if err := disk.DropAll(); err != nil {
			return nil, fmt.Errorf("failed to clear template cache: %w", err)
		}
	}
	if !enabled {
		return nil, nil
	}
	return disk, nil
}
