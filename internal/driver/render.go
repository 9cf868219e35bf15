// Package driver orchestrates batch rendering of document files into
// comment blocks: file discovery, the disk render cache and the parallel
// per-file pipeline.
package driver

import (
	"context"
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"docblock/internal/docblock"
)

// Options controls one batch render.
type Options struct {
	// Format is the layout configuration applied to every file.
	Format docblock.Options
	// Jobs caps render parallelism; <=0 means GOMAXPROCS.
	Jobs int
	// NoCache bypasses the disk cache entirely.
	NoCache bool
	// Write emits a sibling output file per input (see OutDir).
	Write bool
	// OutDir redirects written outputs; empty writes next to the input.
	OutDir string
	// Progress receives per-file stage events; may be nil.
	Progress ProgressSink
}

// Result is the outcome for one input file.
type Result struct {
	Path      string
	OutPath   string
	Output    string
	FromCache bool
	Err       error
}

// OutputPath returns where the rendered text for input path lands.
func OutputPath(path, outDir string) string {
	base := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path)) + ".txt"
	if outDir == "" {
		return filepath.Join(filepath.Dir(path), base)
	}
	return filepath.Join(outDir, base)
}

// ListDocFiles expands the given paths: directories are walked for *.json
// files, plain files are taken as-is. The result is sorted for a
// deterministic batch order.
func ListDocFiles(paths []string) ([]string, error) {
	var files []string
	seen := make(map[string]struct{})
	add := func(path string) {
		if _, ok := seen[path]; ok {
			return
		}
		seen[path] = struct{}{}
		files = append(files, path)
	}

	for _, path := range paths {
		st, err := os.Stat(path)
		if err != nil {
			return nil, err
		}
		if !st.IsDir() {
			add(path)
			continue
		}
		err = filepath.WalkDir(path, func(p string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if !d.IsDir() && strings.HasSuffix(p, ".json") {
				add(p)
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
	}

	// Сортируем для детерминированного порядка
	sort.Strings(files)
	return files, nil
}

// RenderPaths renders every input file in parallel. Per-file failures land in
// the corresponding Result; the returned error reports batch-level failures
// (cancellation, unreadable roots).
func RenderPaths(ctx context.Context, paths []string, opts Options) ([]Result, error) {
	files, err := ListDocFiles(paths)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, nil
	}

	if opts.Write && opts.OutDir != "" {
		if err := os.MkdirAll(opts.OutDir, 0o755); err != nil {
			return nil, err
		}
	}

	var cache *RenderCache
	if !opts.NoCache {
		cache, err = OpenRenderCache("docblock")
		if err != nil {
			// Кэш — только ускорение; работаем без него.
			cache = nil
		}
	}

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	for _, file := range files {
		emit(opts.Progress, file, StageLoad, StatusQueued, nil, 0)
	}

	// Результаты (индексы уникальны для каждой горутины, мьютекс не нужен)
	results := make([]Result, len(files))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, len(files)))

	for i, path := range files {
		i, path := i, path
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}
			results[i] = renderOne(path, cache, opts)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return results, err
	}
	return results, nil
}

// renderOne runs the load → render → write pipeline for a single file.
// Terminal events carry the elapsed wall time for the whole file.
func renderOne(path string, cache *RenderCache, opts Options) Result {
	res := Result{Path: path}
	start := time.Now()

	emit(opts.Progress, path, StageLoad, StatusWorking, nil, 0)
	content, err := os.ReadFile(path)
	if err != nil {
		res.Err = fmt.Errorf("failed to load file: %w", err)
		emit(opts.Progress, path, StageLoad, StatusError, res.Err, time.Since(start))
		return res
	}

	key := CacheKey(content, opts.Format)
	if cached, ok, err := cache.Get(key, len(content)); err == nil && ok {
		res.Output = cached
		res.FromCache = true
	} else {
		emit(opts.Progress, path, StageRender, StatusWorking, nil, 0)
		var doc any
		if err := json.Unmarshal(content, &doc); err != nil {
			res.Err = fmt.Errorf("%s: invalid JSON document: %w", path, err)
			emit(opts.Progress, path, StageRender, StatusError, res.Err, time.Since(start))
			return res
		}
		output, err := docblock.NewWithOptions(opts.Format).FromArray(doc)
		if err != nil {
			res.Err = fmt.Errorf("%s: %w", path, err)
			emit(opts.Progress, path, StageRender, StatusError, res.Err, time.Since(start))
			return res
		}
		res.Output = output
		// Сбой кэша не считается ошибкой рендера.
		_ = cache.Put(key, output, len(content))
	}

	doneStage := StageRender
	if opts.Write {
		emit(opts.Progress, path, StageWrite, StatusWorking, nil, 0)
		res.OutPath = OutputPath(path, opts.OutDir)
		if err := os.WriteFile(res.OutPath, []byte(res.Output+"\n"), 0o644); err != nil {
			res.Err = fmt.Errorf("failed to write %s: %w", res.OutPath, err)
			emit(opts.Progress, path, StageWrite, StatusError, res.Err, time.Since(start))
			return res
		}
		doneStage = StageWrite
	}

	emit(opts.Progress, path, doneStage, StatusDone, nil, time.Since(start))
	return res
}
