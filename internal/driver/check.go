package driver

import (
	"context"
	"fmt"
	"io/fs"
	"path/filepath"
	"slices"
	"strings"

	"golang.org/x/sync/errgroup"

	"lev/internal/diag"
	"lev/internal/observ"
	"lev/internal/source"
	"lev/internal/trace"
)

// SourceExt is the extension of lev source files.
const SourceExt = ".lev"

// CheckOptions configures CheckDir.
type CheckOptions struct {
	Phase          Phase
	Jobs           int // <= 0 — один поток на файл, но не больше числа файлов
	MaxDiagnostics int
	Cache          *DiskCache // nil — без кеша
	EnableTimings  bool
	Progress       func(ProgressEvent) // вызывается из рабочих горутин
}

// FileStatus is the state of one file in a CheckDir run.
type FileStatus uint8

const (
	FileQueued FileStatus = iota
	FileWorking
	FileOK
	FileFailed
	FileCached
)

func (s FileStatus) String() string {
	switch s {
	case FileQueued:
		return "queued"
	case FileWorking:
		return "working"
	case FileOK:
		return "ok"
	case FileFailed:
		return "failed"
	case FileCached:
		return "cached"
	default:
		return "unknown"
	}
}

// ProgressEvent reports a status change of one file.
type ProgressEvent struct {
	Index  int
	Path   string
	Status FileStatus
}

// FileResult holds the outcome of one checked file.
type FileResult struct {
	Path        string // относительно каталога проверки
	FileID      source.FileID
	Diagnostics []diag.Diagnostic
	Cached      bool
}

// Failed reports whether the file has at least one error.
func (r *FileResult) Failed() bool {
	for i := range r.Diagnostics {
		if r.Diagnostics[i].Severity.IsError() {
			return true
		}
	}
	return false
}

// CheckReport is the outcome of CheckDir, files in path order.
type CheckReport struct {
	FileSet *source.FileSet
	Files   []FileResult
	Timings *observ.Report
}

// Bag merges all file diagnostics, sorted and deduplicated.
func (r *CheckReport) Bag() *diag.Bag {
	bag := diag.NewBag(0)
	dedup := diag.NewDedupReporter(diag.BagReporter{Bag: bag})
	for i := range r.Files {
		for _, d := range r.Files[i].Diagnostics {
			dedup.Report(d)
		}
	}
	bag.Sort()
	return bag
}

// FailedFiles counts files with errors.
func (r *CheckReport) FailedFiles() int {
	n := 0
	for i := range r.Files {
		if r.Files[i].Failed() {
			n++
		}
	}
	return n
}

// ListSourceFiles returns every *.lev file under dir, sorted. Hidden directories are skipped.
func ListSourceFiles(dir string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if path != dir && strings.HasPrefix(d.Name(), ".") {
				return filepath.SkipDir
			}
			return nil
		}
		if strings.HasSuffix(path, SourceExt) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	slices.Sort(files)
	return files, nil
}

// CheckDir compiles every source file under dir up to opts.Phase in parallel.
// Load failures abort the run; compilation errors are reported per file.
func CheckDir(ctx context.Context, dir string, opts CheckOptions) (*CheckReport, error) {
	if opts.Phase == 0 {
		opts.Phase = PhaseLower
	}
	var timer *observ.Timer
	if opts.EnableTimings {
		timer = observ.NewTimer()
	}
	tracer := trace.FromContext(ctx)
	root := trace.Begin(tracer, trace.ScopeDriver, "check", trace.CurrentSpan(ctx))
	defer root.End("")

	fileSet := source.NewFileSetWithBase(dir)
	report := &CheckReport{FileSet: fileSet}

	var paths []string
	err := timer.Measure("load", func() error {
		var err error
		paths, err = ListSourceFiles(dir)
		if err != nil {
			return err
		}
		// FileSet заполняется до старта горутин: дальше его только читают
		report.Files = make([]FileResult, len(paths))
		for i, path := range paths {
			id, err := fileSet.Load(path)
			if err != nil {
				return err
			}
			rel, relErr := filepath.Rel(dir, path)
			if relErr != nil {
				rel = path
			}
			report.Files[i] = FileResult{Path: filepath.ToSlash(rel), FileID: id}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	if len(paths) == 0 {
		return report, nil
	}

	notify := func(i int, st FileStatus) {
		if opts.Progress != nil {
			opts.Progress(ProgressEvent{Index: i, Path: report.Files[i].Path, Status: st})
		}
	}
	for i := range report.Files {
		notify(i, FileQueued)
	}

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = len(paths)
	}
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, len(paths)))

	// индексы уникальны для каждой горутины, мьютекс не нужен
	for i := range report.Files {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			res := &report.Files[i]
			notify(i, FileWorking)
			idx := timer.Begin("file:" + res.Path)
			err := checkFile(gctx, fileSet, res, opts, root.ID())
			timer.End(idx, "")
			if err != nil {
				return fmt.Errorf("%s: %w", res.Path, err)
			}
			switch {
			case res.Cached:
				notify(i, FileCached)
			case res.Failed():
				notify(i, FileFailed)
			default:
				notify(i, FileOK)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	if timer != nil {
		r := timer.Report()
		report.Timings = &r
	}
	root.WithExtra("files", fmt.Sprint(len(paths))).WithExtra("failed", fmt.Sprint(report.FailedFiles()))
	return report, nil
}

func checkFile(ctx context.Context, fileSet *source.FileSet, res *FileResult, opts CheckOptions, parent uint64) error {
	file := fileSet.Get(res.FileID)
	span := trace.Begin(trace.FromContext(ctx), trace.ScopeFile, "file:"+res.Path, parent)

	key := CacheKey(file, opts.Phase)
	var cached CachePayload
	hit, err := opts.Cache.Get(key, &cached)
	if err != nil {
		// битая запись кеша не должна ломать проверку
		trace.Point(trace.FromContext(ctx), trace.ScopeFile, "cache", err.Error(), span.ID())
	}
	if hit && cached.Path == res.Path && cached.Phase == opts.Phase {
		res.Diagnostics = rebind(cached.Diagnostics, res.FileID)
		res.Cached = true
		span.End("cached")
		return nil
	}

	ctx = trace.WithSpan(ctx, span)
	out := CompileLoaded(ctx, fileSet, file, Options{
		Phase:          opts.Phase,
		MaxDiagnostics: opts.MaxDiagnostics,
	})
	if err := ctx.Err(); err != nil {
		span.End("canceled")
		return err
	}
	res.Diagnostics = slices.Clone(out.Bag.Items())
	span.End(fmt.Sprintf("%d diagnostics", len(res.Diagnostics)))

	err = opts.Cache.Put(key, &CachePayload{
		Path:        res.Path,
		Phase:       opts.Phase,
		Diagnostics: res.Diagnostics,
	})
	if err != nil {
		trace.Point(trace.FromContext(ctx), trace.ScopeFile, "cache", err.Error(), span.ID())
	}
	return nil
}
