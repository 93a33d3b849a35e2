// © 2026 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

package licenser

import (
	"errors"
	"flag"
	"os"
	"path/filepath"
	"slices"
	"testing"
	"testing/fstest"

	"go.astrophena.name/cato/testutil"
)

var update = flag.Bool("update", false, "update golden files")

var testIdentity = Identity{Year: 2012, User: "jdoe"}

func TestParseLicense(t *testing.T) {
	t.Parallel()

	cases := map[string]struct {
		text      string
		tags      Tags
		endPhrase string
		want      *License
	}{
		"end phrase once": {
			text:      "full text\nEND\nnote1\nnote2",
			endPhrase: "END",
			want: &License{
				Extended: "full text\n",
				Embedded: []string{"", "note1", "note2"},
			},
		},
		"no end phrase": {
			text:      "a\nb\n",
			endPhrase: "END",
			want: &License{
				Extended: "a\nb\n",
				Embedded: []string{"a", "b", ""},
			},
		},
		"end phrase repeated": {
			text:      "x END y END z",
			endPhrase: "END",
			want: &License{
				Extended: "x ",
				Embedded: []string{" y END z"},
			},
		},
		"empty end phrase": {
			text:      "a END b",
			endPhrase: "",
			want: &License{
				Extended: "a END b",
				Embedded: []string{"a END b"},
			},
		},
		"default end phrase": {
			text:      "terms\nEND OF TERMS AND CONDITIONS\nshort",
			endPhrase: DefaultEndPhrase,
			want: &License{
				Extended: "terms\n",
				Embedded: []string{"", "short"},
			},
		},
		"tags": {
			text:      "(c) <year> <owner> <<email>>",
			tags:      DefaultTags(testIdentity),
			endPhrase: DefaultEndPhrase,
			want: &License{
				Extended: "(c) 2012 jdoe <jdoe@example.com>",
				Embedded: []string{"(c) 2012 jdoe <jdoe@example.com>"},
			},
		},
		"tag substituted before split": {
			text:      "terms <marker> notice",
			tags:      Tags{"<marker>": "END"},
			endPhrase: "END",
			want: &License{
				Extended: "terms ",
				Embedded: []string{" notice"},
			},
		},
		"no double substitution": {
			text:      "<owner> <year>",
			tags:      Tags{OwnerTag: YearTag, YearTag: "2012"},
			endPhrase: DefaultEndPhrase,
			want: &License{
				Extended: "<year> 2012",
				Embedded: []string{"<year> 2012"},
			},
		},
		"longest token wins": {
			text:      "<a>b <a>",
			tags:      Tags{"<a>": "1", "<a>b": "2"},
			endPhrase: DefaultEndPhrase,
			want: &License{
				Extended: "2 1",
				Embedded: []string{"2 1"},
			},
		},
		"empty token ignored": {
			text:      "abc",
			tags:      Tags{"": "x"},
			endPhrase: DefaultEndPhrase,
			want: &License{
				Extended: "abc",
				Embedded: []string{"abc"},
			},
		},
		"crlf": {
			text:      "a\r\nEND\r\nb\r\n",
			endPhrase: "END",
			want: &License{
				Extended: "a\r\n",
				Embedded: []string{"", "b", ""},
			},
		},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			got := ParseLicense(tc.text, tc.tags, tc.endPhrase)
			testutil.AssertEqual(t, got, tc.want)
		})
	}
}

func TestDefaultTags(t *testing.T) {
	t.Parallel()
	testutil.AssertEqual(t, DefaultTags(testIdentity), Tags{
		"<year>":  "2012",
		"<owner>": "jdoe",
		"<email>": "jdoe@example.com",
	})
}

func TestCommentSyntaxPrefix(t *testing.T) {
	t.Parallel()

	cs := DefaultCommentSyntax()
	cases := map[string]struct {
		syntax CommentSyntax
		path   string
		want   string
	}{
		"c":                   {cs, "main.c", "//"},
		"python":              {cs, "dir/tool.py", "#"},
		"fortran":             {cs, "solver.f", "!"},
		"unknown extension":   {cs, "notes.txt", "*"},
		"no extension":        {cs, "README", "*"},
		"last extension":      {cs, "archive.tar.gz", "*"},
		"dot in directory":    {cs, filepath.Join("pkg.py", "Makefile"), "*"},
		"case sensitive":      {cs, "SCRIPT.PY", "*"},
		"hidden file":         {cs, ".profile", "*"},
		"override":            {CommentSyntax{"txt": ";", DefaultCommentKey: "-"}, "notes.txt", ";"},
		"no default entry":    {CommentSyntax{"py": "#"}, "main.go", ""},
		"only default":        {CommentSyntax{DefaultCommentKey: "%"}, "main.c", "%"},
		"empty default entry": {CommentSyntax{DefaultCommentKey: ""}, "main.c", ""},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			testutil.AssertEqual(t, tc.syntax.Prefix(tc.path), tc.want)
		})
	}
}

func TestResolve(t *testing.T) {
	t.Parallel()

	fsys := fstest.MapFS{
		"mit.txt":     {Data: []byte("Copyright <year> <owner>\n\nShort and sweet.\n")},
		"gpl-3.0.txt": {Data: []byte("Long terms.\nEND OF TERMS AND CONDITIONS\n<owner> <<email>>\n")},
	}
	l := New(NewCatalog(fsys, "test catalog"), testIdentity)

	ids, err := l.Catalog.List()
	if err != nil {
		t.Fatal(err)
	}
	testutil.AssertEqual(t, ids, []string{"gpl-3.0", "mit"})

	t.Run("without end phrase", func(t *testing.T) {
		lic, err := l.Resolve("mit")
		if err != nil {
			t.Fatal(err)
		}
		testutil.AssertEqual(t, lic.Extended, "Copyright 2012 jdoe\n\nShort and sweet.\n")
		testutil.AssertEqual(t, lic.Embedded, []string{"Copyright 2012 jdoe", "", "Short and sweet.", ""})
	})

	t.Run("with end phrase", func(t *testing.T) {
		lic, err := l.Resolve("gpl-3.0")
		if err != nil {
			t.Fatal(err)
		}
		testutil.AssertEqual(t, lic.Extended, "Long terms.\n")
		testutil.AssertEqual(t, lic.Embedded, []string{"", "jdoe <jdoe@example.com>", ""})
	})

	t.Run("idempotent", func(t *testing.T) {
		a, err := l.Resolve("gpl-3.0")
		if err != nil {
			t.Fatal(err)
		}
		b, err := l.Resolve("gpl-3.0")
		if err != nil {
			t.Fatal(err)
		}
		testutil.AssertEqual(t, a, b)
	})

	t.Run("not found", func(t *testing.T) {
		_, err := l.Resolve("bsd")
		var nf *LicenseNotFoundError
		if !errors.As(err, &nf) {
			t.Fatalf("want *LicenseNotFoundError, got %T: %v", err, err)
		}
		testutil.AssertEqual(t, nf.ID, "bsd")
		testutil.AssertEqual(t, nf.Available, []string{"gpl-3.0", "mit"})
		testutil.AssertEqual(t, err.Error(), `license "bsd" not found in test catalog`)
	})

	t.Run("custom end phrase", func(t *testing.T) {
		l := New(NewCatalog(fsys, "test catalog"), testIdentity)
		l.EndPhrase = "Long"
		lic, err := l.Resolve("gpl-3.0")
		if err != nil {
			t.Fatal(err)
		}
		testutil.AssertEqual(t, lic.Extended, "")
		testutil.AssertEqual(t, lic.Embedded[0], " terms.")
	})
}

func TestCatalog(t *testing.T) {
	t.Parallel()

	t.Run("identifiers", func(t *testing.T) {
		c := NewCatalog(fstest.MapFS{
			"mit.txt":         {Data: []byte("mit")},
			"apache-2.0.txt":  {Data: []byte("apache")},
			"README":          {Data: []byte("readme")},
			".hidden":         {Data: []byte("hidden")},
			"nested/bsd.txt":  {Data: []byte("bsd")},
			"lgpl-2.1.md.txt": {Data: []byte("lgpl")},
		}, "test")
		ids, err := c.List()
		if err != nil {
			t.Fatal(err)
		}
		testutil.AssertEqual(t, ids, []string{"README", "apache-2.0", "lgpl-2.1.md", "mit"})

		b, err := c.Read("lgpl-2.1.md")
		if err != nil {
			t.Fatal(err)
		}
		testutil.AssertEqual(t, string(b), "lgpl")
	})

	t.Run("ambiguous", func(t *testing.T) {
		c := NewCatalog(fstest.MapFS{
			"mit.txt": {Data: []byte("a")},
			"mit.md":  {Data: []byte("b")},
		}, "test")
		_, err := c.Read("mit")
		if !errors.Is(err, ErrAmbiguousLicense) {
			t.Fatalf("want ErrAmbiguousLicense, got %v", err)
		}
		var ce *CatalogAccessError
		if !errors.As(err, &ce) {
			t.Fatalf("want *CatalogAccessError, got %T", err)
		}
	})

	t.Run("missing directory", func(t *testing.T) {
		dir := filepath.Join(t.TempDir(), "nope")
		c := OpenCatalog(dir)
		_, err := c.List()
		var ce *CatalogAccessError
		if !errors.As(err, &ce) {
			t.Fatalf("want *CatalogAccessError, got %T: %v", err, err)
		}
		testutil.AssertEqual(t, ce.Catalog, dir)
		if !errors.Is(err, os.ErrNotExist) {
			t.Fatalf("want error wrapping os.ErrNotExist, got %v", err)
		}

		_, err = c.Read("mit")
		if !errors.As(err, &ce) {
			t.Fatalf("want *CatalogAccessError from Read, got %T: %v", err, err)
		}
	})

	t.Run("directory on disk", func(t *testing.T) {
		dir := t.TempDir()
		testutil.WriteFile(t, dir, "mit.txt", "Copyright <year>\n")
		l := New(OpenCatalog(dir), testIdentity)
		lic, err := l.Resolve("mit")
		if err != nil {
			t.Fatal(err)
		}
		testutil.AssertEqual(t, lic.Extended, "Copyright 2012\n")
	})

	t.Run("embedded", func(t *testing.T) {
		c := EmbeddedCatalog()
		ids, err := c.List()
		if err != nil {
			t.Fatal(err)
		}
		for _, want := range []string{"apache-2.0", "bsd-3-clause", "isc", "mit"} {
			if !slices.Contains(ids, want) {
				t.Errorf("built-in catalog misses %q: %v", want, ids)
			}
		}

		l := New(c, testIdentity)
		lic, err := l.Resolve("apache-2.0")
		if err != nil {
			t.Fatal(err)
		}
		if !slices.Contains(lic.Embedded, "   Copyright 2012 jdoe <jdoe@example.com>") {
			t.Errorf("embedded notice does not carry the copyright line: %q", lic.Embedded)
		}
	})
}
