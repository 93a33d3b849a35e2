// © 2026 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

// Package licenser embeds license notices into source files.
//
// A [Licenser] resolves a license template from a [Catalog], substitutes its
// [Tags] and splits it into an extended form, written to a LICENSE file, and
// an embedded form, inserted as comment lines into each source file at its
// first blank line.
package licenser

import "strings"

// DefaultEndPhrase separates the full legal text of a license from the short
// notice that follows it.
const DefaultEndPhrase = "END OF TERMS AND CONDITIONS"

// LicenseFile is the name of the file written by [Licenser.PatchDir].
const LicenseFile = "LICENSE"

// License is a resolved license.
type License struct {
	// Extended is the full text, meant for a standalone LICENSE file.
	Extended string
	// Embedded is the short notice, one element per line, meant to be
	// inserted into source files.
	Embedded []string
}

// Licenser resolves licenses and applies them to files and directories.
//
// Its fields may be changed before use, but must not be changed while a
// patch operation is in progress.
type Licenser struct {
	Catalog       *Catalog
	Tags          Tags
	CommentSyntax CommentSyntax
	// EndPhrase marks the end of the extended license. An empty EndPhrase
	// treats every license as a short notice.
	EndPhrase string
	// Writer persists patched files. If nil, an AtomicWriter is used.
	Writer Writer
}

// New returns a Licenser that reads licenses from c, with default tags
// derived from id, the default comment syntax and end phrase.
func New(c *Catalog, id Identity) *Licenser {
	return &Licenser{
		Catalog:       c,
		Tags:          DefaultTags(id),
		CommentSyntax: DefaultCommentSyntax(),
		EndPhrase:     DefaultEndPhrase,
	}
}

// Resolve loads the license with the given identifier from the catalog and
// parses it with the Licenser's tags and end phrase.
func (l *Licenser) Resolve(id string) (*License, error) {
	text, err := l.Catalog.Read(id)
	if err != nil {
		return nil, err
	}
	return ParseLicense(string(text), l.Tags, l.EndPhrase), nil
}

// ParseLicense substitutes tags in text and splits it on the first occurrence
// of endPhrase.
//
// The extended license is the text before endPhrase and the embedded license
// is the text after it. When endPhrase does not occur, both are the whole
// text.
func ParseLicense(text string, tags Tags, endPhrase string) *License {
	text = tags.Replace(text)

	extended, notice := text, text
	if endPhrase != "" {
		if before, after, found := strings.Cut(text, endPhrase); found {
			extended, notice = before, after
		}
	}

	embedded := strings.Split(notice, "\n")
	for i, line := range embedded {
		embedded[i] = strings.TrimSuffix(line, "\r")
	}
	return &License{Extended: extended, Embedded: embedded}
}

func (l *Licenser) writer() Writer {
	if l.Writer == nil {
		return AtomicWriter{}
	}
	return l.Writer
}
