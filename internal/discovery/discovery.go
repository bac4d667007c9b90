// Package discovery finds source files by expanding command-line arguments
// and the configured doublestar patterns.
package discovery

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// Options controls how file discovery behaves.
type Options struct {
	// Patterns is the list of glob patterns files found by walking a
	// directory must match (relative to that directory). An empty or nil
	// list means no files are discovered by walking.
	Patterns []string

	// BaseDir is the directory to walk from. Defaults to "." if empty.
	BaseDir string

	// UseGitignore enables filtering by .gitignore rules.
	UseGitignore bool
}

// Discover walks BaseDir and returns files matching any of the configured
// glob patterns. Results are deduplicated and sorted.
func Discover(opts Options) ([]string, error) {
	w, err := newWalker(opts)
	if err != nil || w == nil {
		return nil, err
	}
	if err := w.walk(); err != nil {
		return nil, err
	}
	sort.Strings(w.result)
	return w.result, nil
}

// Resolve expands positional arguments into a sorted, deduplicated list of
// files. Explicit file paths are always kept, whatever their extension.
// Directories are walked with opts.Patterns, and arguments containing
// glob characters are expanded with doublestar. A nonexistent path that is
// not a glob is an error.
func Resolve(args []string, opts Options) ([]string, error) {
	seen := make(map[string]bool)
	var result []string
	add := func(path string) {
		abs, err := filepath.Abs(path)
		if err != nil {
			abs = path
		}
		if !seen[abs] {
			seen[abs] = true
			result = append(result, path)
		}
	}

	for _, arg := range args {
		if err := resolveArg(arg, opts, add); err != nil {
			return nil, err
		}
	}

	sort.Strings(result)
	return result, nil
}

func resolveArg(arg string, opts Options, add func(string)) error {
	if strings.ContainsAny(arg, "*?[{") {
		matches, err := doublestar.FilepathGlob(arg)
		if err != nil {
			return fmt.Errorf("invalid glob pattern %q: %w", arg, err)
		}
		for _, m := range matches {
			if err := resolvePath(m, opts, add); err != nil {
				return err
			}
		}
		return nil
	}

	if _, err := os.Stat(arg); err != nil {
		return fmt.Errorf("cannot access %q: %w", arg, err)
	}
	return resolvePath(arg, opts, add)
}

func resolvePath(path string, opts Options, add func(string)) error {
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("cannot access %q: %w", path, err)
	}
	if !info.IsDir() {
		add(path)
		return nil
	}
	dirOpts := opts
	dirOpts.BaseDir = path
	files, err := Discover(dirOpts)
	if err != nil {
		return fmt.Errorf("walking directory %q: %w", path, err)
	}
	for _, f := range files {
		add(f)
	}
	return nil
}

// validatePatterns returns patterns that are syntactically valid.
func validatePatterns(patterns []string) []string {
	valid := make([]string, 0, len(patterns))
	for _, p := range patterns {
		if doublestar.ValidatePattern(p) {
			valid = append(valid, p)
		}
	}
	return valid
}

// walker holds state for the directory walk.
type walker struct {
	base     string
	absBase  string
	patterns []string
	git      *GitignoreMatcher
	seen     map[string]bool
	result   []string
}

// newWalker returns nil when there is nothing to walk for.
func newWalker(opts Options) (*walker, error) {
	if len(opts.Patterns) == 0 {
		return nil, nil
	}

	base := opts.BaseDir
	if base == "" {
		base = "."
	}
	absBase, err := filepath.Abs(base)
	if err != nil {
		return nil, err
	}

	patterns := validatePatterns(opts.Patterns)
	if len(patterns) == 0 {
		return nil, nil
	}

	w := &walker{
		base:     base,
		absBase:  absBase,
		patterns: patterns,
		seen:     make(map[string]bool),
	}
	if opts.UseGitignore {
		w.git = NewGitignoreMatcher(absBase)
	}
	return w, nil
}

func (w *walker) walk() error {
	return filepath.Walk(w.base, w.visit)
}

// visit is the filepath.WalkFunc callback.
func (w *walker) visit(path string, info os.FileInfo, walkErr error) error {
	if walkErr != nil {
		return walkErr
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil
	}
	rel, err := filepath.Rel(w.absBase, absPath)
	if err != nil || rel == "." {
		return nil
	}
	rel = filepath.ToSlash(rel)

	if info.IsDir() && info.Name() == ".git" {
		return filepath.SkipDir
	}
	if w.git != nil && w.git.IsIgnored(absPath, info.IsDir()) {
		if info.IsDir() {
			return filepath.SkipDir
		}
		return nil
	}
	if info.IsDir() {
		return nil
	}

	if w.matchesAny(rel) && !w.seen[absPath] {
		w.seen[absPath] = true
		w.result = append(w.result, path)
	}
	return nil
}

// matchesAny returns true if rel matches any of the configured patterns.
func (w *walker) matchesAny(rel string) bool {
	for _, p := range w.patterns {
		matched, err := doublestar.Match(p, rel)
		if err == nil && matched {
			return true
		}
	}
	return false
}
