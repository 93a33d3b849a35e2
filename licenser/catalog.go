// © 2026 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

package licenser

import (
	"embed"
	"fmt"
	"io/fs"
	"maps"
	"os"
	"slices"
	"strings"

	"go.astrophena.name/cato/syncx"
)

//go:embed licenses
var builtin embed.FS

// Catalog is a read-only directory of license templates. Each file is one
// license; its identifier is the file name without the text after the last
// dot.
type Catalog struct {
	fsys fs.FS
	name string
	idx  syncx.Lazy[map[string][]string]
}

// OpenCatalog returns a Catalog backed by the directory dir.
// The directory is not read until the catalog is first used.
func OpenCatalog(dir string) *Catalog {
	return NewCatalog(os.DirFS(dir), dir)
}

// NewCatalog returns a Catalog backed by fsys. The name is used in error
// messages.
func NewCatalog(fsys fs.FS, name string) *Catalog {
	return &Catalog{fsys: fsys, name: name}
}

// EmbeddedCatalog returns the catalog of licenses built into the binary.
func EmbeddedCatalog() *Catalog {
	sub, err := fs.Sub(builtin, "licenses")
	if err != nil {
		panic(err)
	}
	return NewCatalog(sub, "built-in catalog")
}

// Name returns the name used for the catalog in messages.
func (c *Catalog) Name() string { return c.name }

// FS returns the file system backing the catalog.
func (c *Catalog) FS() fs.FS { return c.fsys }

// List returns the sorted identifiers of all licenses in the catalog.
func (c *Catalog) List() ([]string, error) {
	idx, err := c.index()
	if err != nil {
		return nil, err
	}
	return slices.Sorted(maps.Keys(idx)), nil
}

// Read returns the raw template of the license with the given identifier.
func (c *Catalog) Read(id string) ([]byte, error) {
	idx, err := c.index()
	if err != nil {
		return nil, err
	}

	names, ok := idx[id]
	if !ok {
		return nil, &LicenseNotFoundError{
			ID:        id,
			Catalog:   c.name,
			Available: slices.Sorted(maps.Keys(idx)),
		}
	}
	if len(names) > 1 {
		return nil, &CatalogAccessError{
			Catalog: c.name,
			Name:    id,
			Err:     fmt.Errorf("%w: %s", ErrAmbiguousLicense, strings.Join(names, ", ")),
		}
	}

	b, err := fs.ReadFile(c.fsys, names[0])
	if err != nil {
		return nil, &CatalogAccessError{Catalog: c.name, Name: names[0], Err: err}
	}
	return b, nil
}

func (c *Catalog) index() (map[string][]string, error) {
	return c.idx.GetErr(func() (map[string][]string, error) {
		entries, err := fs.ReadDir(c.fsys, ".")
		if err != nil {
			return nil, &CatalogAccessError{Catalog: c.name, Err: err}
		}
		idx := make(map[string][]string)
		for _, e := range entries {
			if e.IsDir() {
				continue
			}
			id := identifier(e.Name())
			if id == "" {
				continue
			}
			idx[id] = append(idx[id], e.Name())
		}
		return idx, nil
	})
}

// identifier strips the extension from a catalog file name.
func identifier(name string) string {
	if i := strings.LastIndexByte(name, '.'); i >= 0 {
		return name[:i]
	}
	return name
}
