// © 2026 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

package licenser

import (
	"errors"
	"fmt"
	"strings"
)

// ErrAmbiguousLicense is wrapped by a [CatalogAccessError] when more than one
// catalog file maps to the requested identifier.
var ErrAmbiguousLicense = errors.New("license identifier matches more than one file")

// LicenseNotFoundError is returned when a license identifier is not present in
// a catalog.
type LicenseNotFoundError struct {
	// ID is the requested identifier.
	ID string
	// Catalog names the catalog that was searched.
	Catalog string
	// Available lists the identifiers the catalog does have, sorted.
	Available []string
}

func (e *LicenseNotFoundError) Error() string {
	return fmt.Sprintf("license %q not found in %s", e.ID, e.Catalog)
}

// CatalogAccessError is returned when a catalog or one of its license files
// cannot be read.
type CatalogAccessError struct {
	// Catalog names the catalog.
	Catalog string
	// Name is the license file or identifier involved, if any.
	Name string
	Err  error
}

func (e *CatalogAccessError) Error() string {
	if e.Name == "" {
		return fmt.Sprintf("cannot read catalog %s: %v", e.Catalog, e.Err)
	}
	return fmt.Sprintf("cannot read license %s in %s: %v", e.Name, e.Catalog, e.Err)
}

func (e *CatalogAccessError) Unwrap() error { return e.Err }

// FileAccessError is returned when a target file or directory cannot be read,
// written or replaced.
type FileAccessError struct {
	Op   string
	Path string
	Err  error
}

func (e *FileAccessError) Error() string { return e.Op + " " + e.Path + ": " + e.Err.Error() }

func (e *FileAccessError) Unwrap() error { return e.Err }

// BatchError collects the per-file failures of [Licenser.PatchFiles].
type BatchError struct {
	// Total is the number of files in the batch.
	Total int
	// Errs holds one error per failed file, in input order.
	Errs []error
}

func (e *BatchError) Error() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%d of %d files could not be patched:", len(e.Errs), e.Total)
	for _, err := range e.Errs {
		sb.WriteString("\n\t")
		sb.WriteString(err.Error())
	}
	return sb.String()
}

func (e *BatchError) Unwrap() []error { return e.Errs }
