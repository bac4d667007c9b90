package engine

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sort"

	"github.com/gobwas/glob"
	"golang.org/x/sync/errgroup"

	"github.com/jeduden/lexlint/internal/config"
	"github.com/jeduden/lexlint/internal/lint"
	"github.com/jeduden/lexlint/internal/log"
	"github.com/jeduden/lexlint/internal/rule"
)

// Runner drives the linting pipeline: for each file it reads the content,
// tokenizes it once, determines the effective rule configuration, runs
// enabled rules, and collects diagnostics. Files are checked concurrently;
// each file is an independent, read-only unit of work.
type Runner struct {
	Config *config.Config
	Rules  []rule.Rule
	// Jobs bounds the number of files checked at once. Zero or less means
	// GOMAXPROCS.
	Jobs   int
	Logger *log.Logger
}

// Result holds the output of a lint run.
type Result struct {
	Diagnostics []lint.Diagnostic
	Errors      []error
}

// fileResult is the output for a single file. Each goroutine owns one.
type fileResult struct {
	diags []lint.Diagnostic
	errs  []error
}

// Run lints the files at the given paths and returns a Result containing
// all diagnostics (sorted by file, then offset) and any errors
// encountered. Cancelling ctx stops files that have not been started;
// a file already being checked runs to completion.
func (r *Runner) Run(ctx context.Context, paths []string) *Result {
	results := make([]fileResult, len(paths))

	jobs := r.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(jobs)

	for i, path := range paths {
		i, path := i, path
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				results[i].errs = []error{fmt.Errorf("checking %q: %w", path, err)}
				return nil
			}
			results[i] = r.runFile(path)
			return nil
		})
	}
	_ = g.Wait()

	return r.merge(results)
}

// RunSource lints in-memory source (for example stdin) as if it were
// the file at path.
func (r *Runner) RunSource(path string, source []byte) *Result {
	return r.merge([]fileResult{r.checkSource(path, source)})
}

func (r *Runner) runFile(path string) fileResult {
	if r.isIgnored(path) {
		r.Logger.Printf("skip: %s (ignored)", path)
		return fileResult{}
	}

	source, err := os.ReadFile(path)
	if err != nil {
		return fileResult{errs: []error{fmt.Errorf("reading %q: %w", path, err)}}
	}
	return r.checkSource(path, source)
}

func (r *Runner) checkSource(path string, source []byte) fileResult {
	r.Logger.Printf("file: %s", path)

	f, err := lint.NewFile(path, source)
	if err != nil {
		return fileResult{errs: []error{fmt.Errorf("tokenizing %q: %w", path, err)}}
	}

	cfg := r.config()
	c := checker{
		minSeverity: lint.Severity(cfg.MinSeverity),
		onSkip:      r.onSkip,
	}

	effective := config.Effective(cfg, path)
	diags, errs := c.check(f, r.Rules, effective)
	return fileResult{diags: diags, errs: errs}
}

func (r *Runner) onSkip(rl rule.Rule, path string, start, length int) {
	r.Logger.Printf("rule: %s %s skipped span [%d,+%d) in %s", rl.ID(), rl.Name(), start, length, path)
}

func (r *Runner) merge(results []fileResult) *Result {
	res := &Result{}
	for _, fr := range results {
		res.Diagnostics = append(res.Diagnostics, fr.diags...)
		res.Errors = append(res.Errors, fr.errs...)
	}

	sort.SliceStable(res.Diagnostics, func(i, j int) bool {
		di, dj := res.Diagnostics[i], res.Diagnostics[j]
		if di.File != dj.File {
			return di.File < dj.File
		}
		if di.Offset != dj.Offset {
			return di.Offset < dj.Offset
		}
		return di.RuleID < dj.RuleID
	})

	return res
}

func (r *Runner) config() *config.Config {
	if r.Config == nil {
		return &config.Config{}
	}
	return r.Config
}

// isIgnored returns true if the file path matches any of the configured
// ignore patterns.
func (r *Runner) isIgnored(path string) bool {
	cleanPath := filepath.Clean(path)

	for _, pattern := range r.config().Ignore {
		g, err := glob.Compile(pattern)
		if err != nil {
			continue
		}
		if g.Match(path) || g.Match(cleanPath) || g.Match(filepath.Base(path)) {
			return true
		}
	}
	return false
}
