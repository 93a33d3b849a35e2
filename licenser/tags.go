// © 2026 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

package licenser

import (
	"cmp"
	"maps"
	"path/filepath"
	"slices"
	"strconv"
	"strings"
)

// Placeholder tokens understood in license templates.
const (
	YearTag  = "<year>"
	OwnerTag = "<owner>"
	EmailTag = "<email>"
)

// Identity describes the environment-derived defaults for [Tags].
// It is supplied by the caller; this package never reads the clock or the
// user database.
type Identity struct {
	Year int
	User string
}

// Tags maps placeholder tokens to their replacement values.
type Tags map[string]string

// DefaultTags returns the default tag table for id.
func DefaultTags(id Identity) Tags {
	return Tags{
		YearTag:  strconv.Itoa(id.Year),
		OwnerTag: id.User,
		EmailTag: id.User + "@example.com",
	}
}

// Replace substitutes every token of t in text in a single literal pass.
//
// Longer tokens are tried first, so a token that contains another one always
// wins, and replacement values are never scanned again.
func (t Tags) Replace(text string) string {
	tokens := make([]string, 0, len(t))
	for tok := range maps.Keys(t) {
		if tok != "" {
			tokens = append(tokens, tok)
		}
	}
	if len(tokens) == 0 {
		return text
	}
	slices.SortFunc(tokens, func(a, b string) int {
		if c := cmp.Compare(len(b), len(a)); c != 0 {
			return c
		}
		return strings.Compare(a, b)
	})

	oldnew := make([]string, 0, 2*len(tokens))
	for _, tok := range tokens {
		oldnew = append(oldnew, tok, t[tok])
	}
	return strings.NewReplacer(oldnew...).Replace(text)
}

// DefaultCommentKey is the [CommentSyntax] entry used for unknown extensions.
const DefaultCommentKey = "default"

// CommentSyntax maps file extensions, without the leading dot, to the prefix
// of a line comment. The entry under [DefaultCommentKey] is used for
// extensions missing from the table.
type CommentSyntax map[string]string

// DefaultCommentSyntax returns the built-in comment syntax table.
func DefaultCommentSyntax() CommentSyntax {
	return CommentSyntax{
		"c":    "//",
		"cpp":  "//",
		"cc":   "//",
		"h":    "//",
		"hpp":  "//",
		"py":   "#",
		"java": "//",
		"f":    "!",
		"rb":   "#",

		DefaultCommentKey: "*",
	}
}

// Prefix returns the comment prefix for the file at path.
func (c CommentSyntax) Prefix(path string) string {
	if p, ok := c[extension(path)]; ok {
		return p
	}
	return c[DefaultCommentKey]
}

// extension returns the text after the last dot of the base name of path, or
// an empty string if there is none.
func extension(path string) string {
	base := filepath.Base(path)
	i := strings.LastIndexByte(base, '.')
	if i < 0 {
		return ""
	}
	return base[i+1:]
}
