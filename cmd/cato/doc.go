// © 2026 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

/*
Cato applies a license to source code files.

Usage:

	cato [flags] file...
	cato [flags] -d dir [-r] ext...

A license is picked from a catalog of text files, one license per file,
named after the license identifier (for example mit.txt). The catalog lives
in $CATO_HOME/licenses, ~/.cato/licenses by default; when that directory does
not exist, the licenses built into cato are used. Run cato -install to copy
them there along with a sample configuration file.

License files may contain the <year>, <owner> and <email> tags, which are
replaced with the current year, the user name and an address derived from
it, or with the values given in the configuration file or on the command
line.

The text of a license up to the end phrase (END OF TERMS AND CONDITIONS by
default) is the full license, written to a LICENSE file when -d is given.
The text after it is the notice embedded in every source file. A license
without the end phrase is used whole for both.

The notice is inserted as comment lines after the first empty line of each
file. The comment prefix depends on the file extension and can be changed in
the configuration file or replaced for all files with -c. Files without an
empty line are left untouched.

Without -d, the arguments are the files to patch. With -d, cato writes a
LICENSE file to the directory and the arguments are file extensions: files
directly in the directory matching one of them are patched, or the whole
tree with -r.

The configuration file is $CATO_HOME/cato.toml:

	[cato]
	owner = "Jane Doe"
	email = "jane@example.org"
	end_phrase = "END OF TERMS AND CONDITIONS"
	license = "mit"

	[comments]
	go = "//"

Use -config to read another file in TOML, YAML or JSON format.

Examples:

	$ cato -l mit -o "Jane Doe" -e jane@example.org *.py
	$ cato -d src -r -l apache-2.0 c h
	$ cato -dry -d . go
*/
package main

import (
	_ "embed"

	"go.astrophena.name/cato/cli"
)

//go:embed doc.go
var doc []byte

func init() { cli.SetDocComment(doc) }
