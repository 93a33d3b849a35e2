// © 2024 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

// Package version provides build information of the running program.
package version

import (
	"fmt"
	"os"
	"path"
	"path/filepath"
	"runtime/debug"
	"strings"
)

// Info describes a build of the program.
type Info struct {
	// Name is the command name.
	Name string
	// Module is the main module version, "(devel)" for local builds.
	Module string
	// Commit is the VCS revision the program was built from, if known.
	Commit string
	// Modified reports whether the working tree had uncommitted changes.
	Modified bool
	// Go is the Go version used to build the program.
	Go string
}

// String returns a human-readable representation of i, terminated by a
// newline.
func (i Info) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s %s", i.Name, i.Module)
	if i.Commit != "" {
		commit := i.Commit
		if len(commit) > 12 {
			commit = commit[:12]
		}
		fmt.Fprintf(&sb, " (%s", commit)
		if i.Modified {
			sb.WriteString(", dirty")
		}
		sb.WriteString(")")
	}
	if i.Go != "" {
		fmt.Fprintf(&sb, " built with %s", i.Go)
	}
	sb.WriteString("\n")
	return sb.String()
}

// Version returns the build information of the running program.
func Version() Info {
	info := Info{Name: CmdName(), Module: "(devel)"}
	bi, ok := debug.ReadBuildInfo()
	if !ok {
		return info
	}
	return fromBuildInfo(info, bi)
}

func fromBuildInfo(info Info, bi *debug.BuildInfo) Info {
	if v := bi.Main.Version; v != "" {
		info.Module = v
	}
	info.Go = bi.GoVersion
	for _, s := range bi.Settings {
		switch s.Key {
		case "vcs.revision":
			info.Commit = s.Value
		case "vcs.modified":
			info.Modified = s.Value == "true"
		}
	}
	return info
}

// CmdName returns the name of the running command, derived from the main
// package path or, failing that, from the executable name.
func CmdName() string {
	if bi, ok := debug.ReadBuildInfo(); ok && bi.Path != "" && !strings.HasSuffix(bi.Path, ".test") {
		return path.Base(bi.Path)
	}
	return strings.TrimSuffix(filepath.Base(os.Args[0]), ".exe")
}
