// © 2026 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

package selector

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"go.astrophena.name/cato/testutil"
)

func TestFiles(t *testing.T) {
	t.Parallel()

	cases := map[string]struct {
		args []string
		want []string
	}{
		"exact duplicate": {[]string{"b.c", "a.c", "b.c"}, []string{"b.c", "a.c"}},
		"dot prefix":      {[]string{"a.py", "./a.py"}, []string{"a.py"}},
		"parent hops":     {[]string{"src/a.py", "src/../src/a.py", "src//a.py"}, []string{"src/a.py"}},
		"distinct":        {[]string{"a.py", "b/a.py"}, []string{"a.py", "b/a.py"}},
		"empty":           {nil, []string{}},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			testutil.AssertEqual(t, Files(tc.args), tc.want)
		})
	}
}

func TestPattern(t *testing.T) {
	t.Parallel()

	cases := map[string]struct {
		ext       string
		recursive bool
		want      string
		wantErr   bool
	}{
		"bare":        {ext: "py", want: "*.py"},
		"dot":         {ext: ".py", want: "*.py"},
		"glob":        {ext: "*.py", want: "*.py"},
		"recursive":   {ext: "c", recursive: true, want: "**/*.c"},
		"double ext":  {ext: "tar.gz", want: "*.tar.gz"},
		"empty":       {ext: "", wantErr: true},
		"only dot":    {ext: ".", wantErr: true},
		"with slash":  {ext: "a/b", wantErr: true},
		"with bslash": {ext: `a\b`, wantErr: true},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			got, err := Pattern(tc.ext, tc.recursive)
			if tc.wantErr {
				if !errors.Is(err, ErrBadExtension) {
					t.Fatalf("want ErrBadExtension, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatal(err)
			}
			testutil.AssertEqual(t, got, tc.want)
		})
	}
}

func TestDir(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	for _, name := range []string{
		"main.c",
		"util.h",
		"tool.py",
		"README",
		"sub/deep.c",
		"sub/more/deeper.py",
	} {
		testutil.WriteFile(t, dir, name, "x\n")
	}
	if err := os.Mkdir(filepath.Join(dir, "dir.c"), 0o755); err != nil {
		t.Fatal(err)
	}

	join := func(names ...string) []string {
		var paths []string
		for _, name := range names {
			paths = append(paths, filepath.Join(dir, filepath.FromSlash(name)))
		}
		return paths
	}

	cases := map[string]struct {
		recursive bool
		exts      []string
		want      []string
	}{
		"flat":            {exts: []string{"c"}, want: join("main.c")},
		"flat many":       {exts: []string{"py", "c", "h"}, want: join("main.c", "tool.py", "util.h")},
		"recursive":       {recursive: true, exts: []string{"c"}, want: join("main.c", "sub/deep.c")},
		"recursive many":  {recursive: true, exts: []string{"py", "c"}, want: join("main.c", "sub/deep.c", "sub/more/deeper.py", "tool.py")},
		"duplicates":      {exts: []string{"c", ".c", "*.c"}, want: join("main.c")},
		"nothing matches": {exts: []string{"rs"}, want: nil},
		"no extensions":   {exts: nil, want: nil},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			got, err := Dir(dir, tc.recursive, tc.exts)
			if err != nil {
				t.Fatal(err)
			}
			testutil.AssertEqual(t, got, tc.want)
		})
	}

	t.Run("bad extension", func(t *testing.T) {
		_, err := Dir(dir, false, []string{"c", ""})
		if !errors.Is(err, ErrBadExtension) {
			t.Fatalf("want ErrBadExtension, got %v", err)
		}
	})
}
