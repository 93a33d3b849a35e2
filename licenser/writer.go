// © 2026 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

package licenser

import (
	"bytes"
	"errors"
	"io/fs"
	"os"
	"slices"
	"strings"

	"github.com/natefinch/atomic"
	"github.com/sergi/go-diff/diffmatchpatch"

	"go.astrophena.name/cato/syncx"
)

// Writer persists the content of a file.
type Writer interface {
	WriteFile(name string, data []byte) error
}

// AtomicWriter writes files by staging the content in a temporary file in
// the same directory and renaming it over the target. If the write fails,
// the target is left as it was. The mode of an existing target is kept; new
// files get mode 0666 less the umask, like [os.WriteFile].
type AtomicWriter struct{}

// WriteFile implements [Writer].
func (AtomicWriter) WriteFile(name string, data []byte) error {
	created, err := touch(name)
	if err != nil {
		return err
	}
	if err := atomic.WriteFile(name, bytes.NewReader(data)); err != nil {
		if created {
			os.Remove(name)
		}
		return err
	}
	return nil
}

// touch creates an empty file at name unless one exists, so that the staged
// file inherits its mode.
func touch(name string) (created bool, err error) {
	f, err := os.OpenFile(name, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o666)
	if errors.Is(err, fs.ErrExist) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, f.Close()
}

// DiffWriter is a [Writer] that never touches the disk. It records, for every
// file it is asked to write, a line diff between the content on disk and the
// new content.
//
// It is safe for concurrent use.
type DiffWriter struct {
	dmp   *diffmatchpatch.DiffMatchPatch
	diffs syncx.Map[string, []diffmatchpatch.Diff]
}

// NewDiffWriter returns a new [DiffWriter].
func NewDiffWriter() *DiffWriter {
	return &DiffWriter{dmp: diffmatchpatch.New()}
}

// FileDiff is a line diff of a single file.
type FileDiff struct {
	Path  string
	Diffs []diffmatchpatch.Diff
}

// WriteFile implements [Writer]. A missing file is compared against empty
// content.
func (w *DiffWriter) WriteFile(name string, data []byte) error {
	old, err := os.ReadFile(name)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	if bytes.Equal(old, data) {
		return nil
	}

	a, b, lines := w.dmp.DiffLinesToChars(string(old), string(data))
	diffs := w.dmp.DiffCharsToLines(w.dmp.DiffMain(a, b, false), lines)
	w.diffs.Store(name, diffs)
	return nil
}

// Diffs returns the recorded diffs sorted by path.
func (w *DiffWriter) Diffs() []FileDiff {
	var fds []FileDiff
	w.diffs.Range(func(path string, diffs []diffmatchpatch.Diff) bool {
		fds = append(fds, FileDiff{Path: path, Diffs: diffs})
		return true
	})
	slices.SortFunc(fds, func(a, b FileDiff) int { return strings.Compare(a.Path, b.Path) })
	return fds
}

// String renders the recorded diffs, showing only added and removed lines.
func (w *DiffWriter) String() string {
	var sb strings.Builder
	for _, fd := range w.Diffs() {
		sb.WriteString("--- " + fd.Path + "\n")
		for _, d := range fd.Diffs {
			var mark string
			switch d.Type {
			case diffmatchpatch.DiffInsert:
				mark = "+"
			case diffmatchpatch.DiffDelete:
				mark = "-"
			default:
				continue
			}
			for line := range strings.Lines(d.Text) {
				sb.WriteString(mark + strings.TrimRight(line, "\r\n") + "\n")
			}
		}
	}
	return sb.String()
}
