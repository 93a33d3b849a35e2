// © 2026 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

// Package config loads the user configuration of cato.
package config

import (
	"bytes"
	"fmt"
	"io/fs"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/cockroachdb/errors"
	"sigs.k8s.io/yaml"

	"go.astrophena.name/cato/licenser"
)

const (
	// HomeEnv is the environment variable that overrides the cato home.
	HomeEnv = "CATO_HOME"
	// FileName is the name of the configuration file inside the cato home.
	FileName = "cato.toml"
	// LicensesDir is the name of the catalog directory inside the cato home.
	LicensesDir = "licenses"
)

// Config is the user configuration.
type Config struct {
	Cato Settings `toml:"cato" json:"cato"`
	// Comments maps a file extension without the dot to a comment prefix.
	// Entries override the built-in comment syntax.
	Comments map[string]string `toml:"comments" json:"comments"`
}

// Settings holds the [cato] section.
type Settings struct {
	Owner string `toml:"owner" json:"owner"`
	Email string `toml:"email" json:"email"`
	// EndPhrase is nil when not configured. An empty end phrase disables
	// splitting.
	EndPhrase *string `toml:"end_phrase" json:"end_phrase"`
	License   string  `toml:"license" json:"license"`
	Licenses  string  `toml:"licenses" json:"licenses"`
}

// Home returns the cato home directory: $CATO_HOME if set, ~/.cato otherwise.
func Home(getenv func(string) string) (string, error) {
	if dir := getenv(HomeEnv); dir != "" {
		return expandPath(dir)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot find home directory: %w", err)
	}
	return filepath.Join(home, ".cato"), nil
}

func expandPath(path string) (string, error) {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot expand %q: %w", path, err)
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~")), nil
}

// Load reads the configuration file at path. The format is chosen by the
// file extension: .toml, .yaml, .yml or .json.
//
// If path does not exist and required is false, Load returns an empty
// configuration.
func Load(path string, required bool) (*Config, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) && !required {
		return new(Config), nil
	}
	if err != nil {
		return nil, fmt.Errorf("cannot read config: %w", err)
	}

	c, err := Parse(filepath.Ext(path), data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return c, nil
}

// Parse decodes and validates a configuration in the format named by ext.
func Parse(ext string, data []byte) (*Config, error) {
	c := new(Config)
	switch strings.ToLower(ext) {
	case ".toml":
		md, err := toml.NewDecoder(bytes.NewReader(data)).Decode(c)
		if err != nil {
			return nil, err
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			var errs []error
			for _, key := range undecoded {
				errs = append(errs, errors.Newf("unknown key %q", key.String()))
			}
			return nil, errors.Join(errs...)
		}
	case ".yaml", ".yml", ".json":
		if err := yaml.UnmarshalStrict(data, c); err != nil {
			return nil, err
		}
	default:
		return nil, errors.Newf("unsupported config format %q", ext)
	}

	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// Validate reports every problem with c at once.
func (c *Config) Validate() error {
	var errs []error
	for _, ext := range slices.Sorted(maps.Keys(c.Comments)) {
		switch {
		case ext == "":
			errs = append(errs, errors.New("comment extension must not be empty"))
		case strings.HasPrefix(ext, "."):
			errs = append(errs, errors.Newf("comment extension %q must not start with a dot", ext))
		}
		if c.Comments[ext] == "" {
			errs = append(errs, errors.Newf("comment prefix for %q must not be empty", ext))
		}
	}
	if strings.ContainsAny(c.Cato.License, `/\`) {
		errs = append(errs, errors.Newf("invalid license identifier %q", c.Cato.License))
	}
	return errors.Join(errs...)
}

// Path returns the default configuration file inside home.
func Path(home string) string { return filepath.Join(home, FileName) }

// CatalogDir returns the configured catalog directory, or the licenses
// directory inside home.
func (c *Config) CatalogDir(home string) (string, error) {
	if c.Cato.Licenses != "" {
		return expandPath(c.Cato.Licenses)
	}
	return filepath.Join(home, LicensesDir), nil
}

// Tags returns the default tags for ident with the configured owner and
// email applied.
func (c *Config) Tags(ident licenser.Identity) licenser.Tags {
	tags := licenser.DefaultTags(ident)
	if c.Cato.Owner != "" {
		tags[licenser.OwnerTag] = c.Cato.Owner
	}
	if c.Cato.Email != "" {
		tags[licenser.EmailTag] = c.Cato.Email
	}
	return tags
}

// CommentSyntax returns the built-in comment syntax with the configured
// entries applied.
func (c *Config) CommentSyntax() licenser.CommentSyntax {
	cs := licenser.DefaultCommentSyntax()
	maps.Copy(cs, c.Comments)
	return cs
}

// EndPhrase returns the configured end phrase or the default one.
func (c *Config) EndPhrase() string {
	if c.Cato.EndPhrase != nil {
		return *c.Cato.EndPhrase
	}
	return licenser.DefaultEndPhrase
}
