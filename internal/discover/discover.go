// Package discover resolves the command-line path into the files to check.
package discover

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	ignore "github.com/sabhiram/go-gitignore"

	"github.com/phobologic/pystyle/internal/lang"
)

// FixtureName is the file name reserved for the checker's own test fixtures.
// It is skipped when a directory is scanned, never when named explicitly.
const FixtureName = "tests.py"

// PathNotFoundError reports a target path that does not exist.
type PathNotFoundError struct {
	Path string
}

func (e *PathNotFoundError) Error() string {
	return fmt.Sprintf("path %s does not exist", e.Path)
}

// Options narrows directory enumeration. Neither field applies to a path
// that names a file directly.
type Options struct {
	// Exclude holds gitignore-style patterns matched against paths relative
	// to the scanned directory.
	Exclude []string
	// RespectGitignore also applies the directory's own .gitignore.
	RespectGitignore bool
}

// Files returns the files to check for target. A file target yields itself
// when it has a checked suffix. A directory target yields every checked file
// below it, in the order of a lexical tree walk. Returned paths keep target
// as their prefix.
func Files(target string, opts Options) ([]string, error) {
	info, err := os.Stat(target)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, &PathNotFoundError{Path: target}
	}
	if err != nil {
		return nil, fmt.Errorf("target path: %w", err)
	}

	if !info.IsDir() {
		if !checked(target) {
			return nil, nil
		}
		return []string{target}, nil
	}

	var matchers []*ignore.GitIgnore
	if len(opts.Exclude) > 0 {
		matchers = append(matchers, ignore.CompileIgnoreLines(opts.Exclude...))
	}
	if opts.RespectGitignore {
		if gi := loadGitignore(target); gi != nil {
			matchers = append(matchers, gi)
		}
	}

	var results []string

	err = filepath.WalkDir(target, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil // skip errors
		}
		if path == target {
			return nil
		}

		rel, err := filepath.Rel(target, path)
		if err != nil {
			return nil
		}
		if ignored(matchers, rel, d.IsDir()) {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		if d.IsDir() || d.Name() == FixtureName || !checked(d.Name()) {
			return nil
		}
		results = append(results, path)
		return nil
	})
	if err != nil {
		return nil, err
	}

	slices.SortFunc(results, comparePaths)
	return results, nil
}

func checked(name string) bool {
	return lang.ForExtension(filepath.Ext(name)) != ""
}

func ignored(matchers []*ignore.GitIgnore, rel string, dir bool) bool {
	rel = filepath.ToSlash(rel)
	if dir {
		rel += "/"
	}
	for _, m := range matchers {
		if m.MatchesPath(rel) {
			return true
		}
	}
	return false
}

// comparePaths orders paths element by element, so "a/b.py" sorts before
// "a.py" the way a directory walk visits them.
func comparePaths(a, b string) int {
	return slices.Compare(
		strings.Split(filepath.ToSlash(a), "/"),
		strings.Split(filepath.ToSlash(b), "/"),
	)
}

func loadGitignore(root string) *ignore.GitIgnore {
	path := filepath.Join(root, ".gitignore")
	gi, err := ignore.CompileIgnoreFile(path)
	if err != nil {
		return nil
	}
	return gi
}
