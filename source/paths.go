package source

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// ResolveFiles expands glob patterns to concrete token files. Supports
// single-level (*) and recursive (**) wildcards; literal paths are
// checked for existence. Results are deduplicated and sorted.
func ResolveFiles(patterns []string) ([]string, error) {
	seen := make(map[string]bool)
	var files []string

	for _, pattern := range patterns {
		matches, err := resolvePattern(pattern)
		if err != nil {
			return nil, fmt.Errorf("resolve pattern %q: %w", pattern, err)
		}
		for _, m := range matches {
			if !seen[m] {
				seen[m] = true
				files = append(files, m)
			}
		}
	}

	sort.Strings(files)
	return files, nil
}

func resolvePattern(pattern string) ([]string, error) {
	if !containsGlob(pattern) {
		info, err := os.Stat(pattern)
		if err != nil {
			return nil, err
		}
		if info.IsDir() {
			return nil, fmt.Errorf("path is a directory, not a token file: %s", pattern)
		}
		return []string{pattern}, nil
	}

	base, rest := doublestar.SplitPattern(filepath.ToSlash(pattern))
	matches, err := doublestar.Glob(os.DirFS(base), rest)
	if err != nil {
		return nil, err
	}

	var files []string
	for _, m := range matches {
		full := filepath.Join(base, filepath.FromSlash(m))
		info, err := os.Stat(full)
		if err != nil || info.IsDir() {
			continue
		}
		files = append(files, full)
	}
	return files, nil
}

func containsGlob(path string) bool {
	return strings.ContainsAny(path, "*?[{")
}
