// Package batch renders every template of a directory concurrently.
package batch

import (
	"context"
	"io/fs"
	"path/filepath"
	"runtime"
	"sort"
	"strconv"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"bracefmt/internal/cache"
	"bracefmt/internal/diag"
	"bracefmt/internal/observ"
	"bracefmt/internal/render"
	"bracefmt/internal/source"
	"bracefmt/internal/trace"
)

// DefaultExt is the extension of template files picked up by ListTemplates.
const DefaultExt = ".tmpl"

// Options configures a batch run.
type Options struct {
	Jobs     int              // 0 = GOMAXPROCS
	Ext      string           // DefaultExt when empty
	Renderer *render.Renderer // render.New(render.Options{}) when nil
	Cache    *cache.Disk      // optional
	Timer    *observ.Timer    // optional
	Progress ProgressSink     // optional
	Load     source.LoadOptions
}

// Result is the outcome for one template. Err holds load and format errors;
// one failing template does not stop the others.
type Result struct {
	Path     string
	Template *source.Template
	Output   string
	Cached   bool
	Err      error
}

// ListTemplates возвращает отсортированный список шаблонов в директории.
func ListTemplates(dir, ext string) ([]string, error) {
	if ext == "" {
		ext = DefaultExt
	}
	var files []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.HasSuffix(path, ext) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	// Сортируем для детерминированного порядка
	sort.Strings(files)
	return files, nil
}

// RenderDir renders every template under dir with the same arguments.
func RenderDir(ctx context.Context, dir string, positional []any, keyword map[string]any, opts Options) ([]Result, error) {
	files, err := ListTemplates(dir, opts.Ext)
	if err != nil {
		return nil, err
	}
	return RenderFiles(ctx, files, positional, keyword, opts)
}

// RenderFiles renders files concurrently; results keep the order of files.
// The returned error is non-nil only when ctx is canceled.
func RenderFiles(ctx context.Context, files []string, positional []any, keyword map[string]any, opts Options) ([]Result, error) {
	if len(files) == 0 {
		return nil, nil
	}
	r := opts.Renderer
	if r == nil {
		r = render.New(render.Options{})
	}
	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	tracer := trace.FromContext(ctx)
	span := trace.Begin(tracer, trace.ScopeCommand, "batch", trace.CurrentSpan(ctx))
	span.WithExtra("files", strconv.Itoa(len(files))).WithExtra("jobs", strconv.Itoa(jobs))
	ctx = trace.WithSpan(ctx, span)

	// Результаты (индексы уникальны для каждой горутины, мьютекс не нужен)
	results := make([]Result, len(files))

	for _, path := range files {
		emit(opts.Progress, Event{File: path, Stage: StageLoad, Status: StatusQueued})
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, len(files)))

	for i, path := range files {
		g.Go(func() error {
			// Проверка отмены
			if err := gctx.Err(); err != nil {
				return err
			}
			start := time.Now()
			res := renderOne(gctx, r, path, positional, keyword, opts)
			results[i] = res
			status := StatusDone
			if res.Err != nil {
				status = StatusError
			}
			emit(opts.Progress, Event{File: path, Stage: StageRender, Status: status, Err: res.Err, Elapsed: time.Since(start)})
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		span.End("canceled")
		return results, err
	}
	span.End("")
	return results, nil
}

func renderOne(ctx context.Context, r *render.Renderer, path string, positional []any, keyword map[string]any, opts Options) Result {
	res := Result{Path: path}

	emit(opts.Progress, Event{File: path, Stage: StageLoad, Status: StatusWorking})
	stop := opts.Timer.Track("load")
	tmpl, err := source.Load(path, opts.Load)
	stop("")
	if err != nil {
		res.Err = err
		return res
	}
	res.Template = tmpl

	if opts.Cache != nil {
		emit(opts.Progress, Event{File: path, Stage: StageTokenize, Status: StatusWorking})
		stop = opts.Timer.Track("tokenize")
		toks, hit, err := opts.Cache.Tokenize(tmpl.Text)
		stop("")
		if err != nil {
			res.Err = err
			return res
		}
		res.Cached = hit
		emit(opts.Progress, Event{File: path, Stage: StageRender, Status: StatusWorking})
		stop = opts.Timer.Track("render")
		res.Output, res.Err = r.RenderTokens(ctx, toks, positional, keyword)
		stop("")
		return res
	}

	emit(opts.Progress, Event{File: path, Stage: StageRender, Status: StatusWorking})
	stop = opts.Timer.Track("render")
	res.Output, res.Err = r.RenderContext(ctx, tmpl.Text, positional, keyword)
	stop("")
	return res
}

// Diagnostics collects the errors of results into a sorted bag.
func Diagnostics(results []Result, maxDiagnostics int) *diag.Bag {
	if maxDiagnostics <= 0 {
		maxDiagnostics = len(results)
	}
	bag := diag.NewBag(maxDiagnostics)
	for _, res := range results {
		if res.Err != nil {
			bag.AddError(res.Path, res.Err)
		}
	}
	bag.Sort()
	return bag
}

// Failed reports whether any template failed.
func Failed(results []Result) bool {
	for _, res := range results {
		if res.Err != nil {
			return true
		}
	}
	return false
}
