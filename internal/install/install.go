// © 2026 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

// Package install seeds the cato home with the built-in license catalog and
// a sample configuration.
package install

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"go.astrophena.name/cato/internal/config"
	"go.astrophena.name/cato/licenser"
)

//go:embed cato.toml
var sampleConfig []byte

// Result lists the files considered by [Run].
type Result struct {
	Written []string
	Skipped []string
}

// Run copies the built-in catalog into the licenses directory of home and
// writes a sample configuration file. Existing files are kept unless force
// is true.
func Run(home string, force bool) (*Result, error) {
	return install(home, force, licenser.AtomicWriter{})
}

func install(home string, force bool, w licenser.Writer) (*Result, error) {
	dir := filepath.Join(home, config.LicensesDir)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("cannot create %s: %w", dir, err)
	}

	res := new(Result)
	put := func(path string, data []byte) error {
		if !force {
			_, err := os.Lstat(path)
			if err == nil {
				res.Skipped = append(res.Skipped, path)
				return nil
			}
			if !errors.Is(err, fs.ErrNotExist) {
				return err
			}
		}
		if err := w.WriteFile(path, data); err != nil {
			return fmt.Errorf("cannot write %s: %w", path, err)
		}
		res.Written = append(res.Written, path)
		return nil
	}

	catalog := licenser.EmbeddedCatalog().FS()
	entries, err := fs.ReadDir(catalog, ".")
	if err != nil {
		return nil, err
	}
	for _, e := range entries {
		data, err := fs.ReadFile(catalog, e.Name())
		if err != nil {
			return nil, err
		}
		if err := put(filepath.Join(dir, e.Name()), data); err != nil {
			return res, err
		}
	}

	if err := put(config.Path(home), sampleConfig); err != nil {
		return res, err
	}
	return res, nil
}
