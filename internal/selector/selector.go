// © 2026 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

// Package selector turns command-line arguments into a list of files.
package selector

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// ErrBadExtension is returned for an extension that cannot name files.
var ErrBadExtension = errors.New("bad extension")

// Files returns args with duplicates removed, keeping the first occurrence.
// Paths that are equal once cleaned, such as a.py and ./a.py, are
// duplicates.
func Files(args []string) []string {
	seen := make(map[string]bool, len(args))
	files := make([]string, 0, len(args))
	for _, arg := range args {
		key := filepath.Clean(arg)
		if seen[key] {
			continue
		}
		seen[key] = true
		files = append(files, arg)
	}
	return files
}

// Dir returns the regular files in dir whose names end with one of exts, in
// lexical order. An extension may be given as "py", ".py" or "*.py". Only
// files directly in dir are considered unless recursive is true.
func Dir(dir string, recursive bool, exts []string) ([]string, error) {
	fsys := os.DirFS(dir)
	var files []string
	for _, ext := range exts {
		pattern, err := Pattern(ext, recursive)
		if err != nil {
			return nil, err
		}
		matches, err := doublestar.Glob(fsys, pattern, doublestar.WithFilesOnly())
		if err != nil {
			return nil, fmt.Errorf("cannot list %s: %w", dir, err)
		}
		for _, m := range matches {
			files = append(files, filepath.Join(dir, filepath.FromSlash(m)))
		}
	}
	slices.Sort(files)
	return slices.Compact(files), nil
}

// Pattern returns the glob pattern matching files with extension ext.
func Pattern(ext string, recursive bool) (string, error) {
	ext = strings.TrimPrefix(strings.TrimPrefix(ext, "*"), ".")
	if ext == "" || strings.ContainsAny(ext, `/\`) {
		return "", fmt.Errorf("%w: %q", ErrBadExtension, ext)
	}
	pattern := "*." + ext
	if recursive {
		pattern = "**/" + pattern
	}
	return pattern, nil
}
