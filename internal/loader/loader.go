// Package loader finds ESQL source files on disk and reads them into
// compilation units for the analyzer.
package loader

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/leapstack-labs/esqllint/pkg/lint"
)

// DefaultInclude matches every ESQL source below a root.
var DefaultInclude = []string{"**/*.esql"}

// Options controls which files are picked up below a directory root.
// Patterns use doublestar syntax and are matched against slash-separated
// paths relative to the root being walked.
type Options struct {
	Include []string
	Exclude []string
	// Logger is optional, uses discard if nil.
	Logger *slog.Logger
}

// Loader discovers and reads source files.
type Loader struct {
	include []string
	exclude []string
	logger  *slog.Logger
}

// New validates the patterns in opts and returns a Loader.
func New(opts Options) (*Loader, error) {
	include := opts.Include
	if len(include) == 0 {
		include = DefaultInclude
	}
	for _, p := range slices.Concat(include, opts.Exclude) {
		if !doublestar.ValidatePattern(p) {
			return nil, fmt.Errorf("invalid glob pattern %q", p)
		}
	}

	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Loader{
		include: slices.Clone(include),
		exclude: slices.Clone(opts.Exclude),
		logger:  logger,
	}, nil
}

// Matches reports whether rel, a path relative to a walked root, is
// selected by the include patterns and not removed by the exclude patterns.
func (l *Loader) Matches(rel string) bool {
	rel = filepath.ToSlash(rel)
	return matchAny(l.include, rel) && !matchAny(l.exclude, rel)
}

func (l *Loader) excluded(rel string) bool {
	return matchAny(l.exclude, filepath.ToSlash(rel))
}

func matchAny(patterns []string, rel string) bool {
	for _, p := range patterns {
		// Patterns were validated in New, so Match cannot fail here.
		if ok, _ := doublestar.Match(p, rel); ok {
			return true
		}
	}
	return false
}

// Discover expands paths into a sorted, de-duplicated list of source files.
// Files named explicitly are always kept unless excluded; directories are
// walked and filtered through the include patterns. Hidden directories are
// skipped.
func (l *Loader) Discover(paths ...string) ([]string, error) {
	if len(paths) == 0 {
		paths = []string{"."}
	}

	seen := make(map[string]bool)
	var files []string
	add := func(path string) {
		path = filepath.Clean(path)
		if !seen[path] {
			seen[path] = true
			files = append(files, path)
		}
	}

	for _, root := range paths {
		info, err := os.Stat(root)
		if err != nil {
			return nil, fmt.Errorf("failed to stat %s: %w", root, err)
		}
		if !info.IsDir() {
			if !l.excluded(root) && !l.excluded(filepath.Base(root)) {
				add(root)
			}
			continue
		}

		err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			rel, err := filepath.Rel(root, path)
			if err != nil {
				return err
			}
			if d.IsDir() {
				if path != root && isHidden(d.Name()) {
					return filepath.SkipDir
				}
				if rel != "." && l.excluded(rel) {
					return filepath.SkipDir
				}
				return nil
			}
			if l.Matches(rel) {
				add(path)
			}
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("failed to walk %s: %w", root, err)
		}
	}

	slices.Sort(files)
	l.logger.Debug("discovered source files", "roots", paths, "count", len(files))
	return files, nil
}

// Read loads each file into a compilation unit, in the given order.
func (l *Loader) Read(paths []string) ([]lint.File, error) {
	files := make([]lint.File, 0, len(paths))
	var errs []error
	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			errs = append(errs, fmt.Errorf("failed to read %s: %w", path, err))
			continue
		}
		files = append(files, lint.File{Path: path, Source: string(data)})
	}
	return files, errors.Join(errs...)
}

// Load discovers and reads the files below paths.
func (l *Loader) Load(paths ...string) ([]lint.File, error) {
	found, err := l.Discover(paths...)
	if err != nil {
		return nil, err
	}
	return l.Read(found)
}

func isHidden(name string) bool {
	return len(name) > 1 && strings.HasPrefix(name, ".")
}
