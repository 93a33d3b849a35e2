// © 2026 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

package licenser

import (
	"bufio"
	"bytes"
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"go.astrophena.name/cato/logger"

	"golang.org/x/sync/errgroup"
)

// PatchResult is the outcome of patching a single file.
type PatchResult struct {
	Path string
	// Embedded reports whether the license was inserted. It is false when
	// the file has no blank line.
	Embedded bool
}

// PatchFile inserts embedded into the file at path, as comment lines
// following the first blank line. The comment prefix is chosen by the file
// extension.
//
// A file without blank lines is left untouched. Otherwise the new content is
// handed to the Licenser's Writer as a whole, so the original file is never
// partially rewritten.
func (l *Licenser) PatchFile(path string, embedded []string) (PatchResult, error) {
	res := PatchResult{Path: path}

	f, err := os.Open(path)
	if err != nil {
		return res, &FileAccessError{Op: "open", Path: path, Err: err}
	}
	defer f.Close()

	var buf bytes.Buffer
	ok, err := Embed(&buf, f, embedded, l.CommentSyntax.Prefix(path))
	if err != nil {
		return res, &FileAccessError{Op: "read", Path: path, Err: err}
	}
	if !ok {
		return res, nil
	}
	if err := f.Close(); err != nil {
		return res, &FileAccessError{Op: "close", Path: path, Err: err}
	}

	if err := l.writer().WriteFile(path, buf.Bytes()); err != nil {
		return res, &FileAccessError{Op: "write", Path: path, Err: err}
	}
	res.Embedded = true
	return res, nil
}

// PatchDir writes extended to a file named [LicenseFile] in dir, replacing
// any existing one.
func (l *Licenser) PatchDir(dir, extended string) error {
	path := filepath.Join(dir, LicenseFile)
	if err := l.writer().WriteFile(path, []byte(extended)); err != nil {
		return &FileAccessError{Op: "write", Path: path, Err: err}
	}
	return nil
}

// PatchFiles calls [Licenser.PatchFile] for every path, running at most jobs
// of them at once.
//
// A failure does not stop the batch. Results are returned in the order of
// paths; if any file failed, the error is a [*BatchError] listing each
// failure. Files not yet started when ctx is canceled fail with the context
// error.
func (l *Licenser) PatchFiles(ctx context.Context, paths []string, embedded []string, jobs int) ([]PatchResult, error) {
	results := make([]PatchResult, len(paths))
	errs := make([]error, len(paths))

	var g errgroup.Group
	g.SetLimit(max(jobs, 1))
	for i, path := range paths {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				results[i], errs[i] = PatchResult{Path: path}, &FileAccessError{Op: "patch", Path: path, Err: err}
				return nil
			}
			logger.Info(ctx, "applying license to file", slog.String("path", path))
			results[i], errs[i] = l.PatchFile(path, embedded)
			return nil
		})
	}
	g.Wait()

	var failed []error
	for _, err := range errs {
		if err != nil {
			failed = append(failed, err)
		}
	}
	if len(failed) > 0 {
		return results, &BatchError{Total: len(paths), Errs: failed}
	}
	return results, nil
}

// Embed copies r to w, inserting embedded after the first line of r that is
// blank once surrounding whitespace is trimmed. Every inserted line is
// prefixed with prefix and terminated with the line ending of the first
// terminated line of r, or "\n" if there is none. All lines of r are copied
// byte for byte.
//
// It reports whether the insertion happened.
func Embed(w io.Writer, r io.Reader, embedded []string, prefix string) (bool, error) {
	br := bufio.NewReader(r)
	bw := bufio.NewWriter(w)

	var (
		done bool
		eol  string
	)
	for {
		line, err := br.ReadString('\n')
		if err != nil && err != io.EOF {
			return false, err
		}
		if line == "" {
			break
		}

		terminated := strings.HasSuffix(line, "\n")
		if eol == "" && terminated {
			eol = lineEnding(line)
		}
		bw.WriteString(line)

		if !done && strings.TrimSpace(line) == "" {
			done = true
			if eol == "" {
				eol = "\n"
			}
			if !terminated {
				bw.WriteString(eol)
			}
			for _, el := range embedded {
				bw.WriteString(prefix)
				bw.WriteString(el)
				bw.WriteString(eol)
			}
		}

		if err == io.EOF {
			break
		}
	}
	return done, bw.Flush()
}

func lineEnding(line string) string {
	if strings.HasSuffix(line, "\r\n") {
		return "\r\n"
	}
	return "\n"
}
