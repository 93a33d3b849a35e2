// © 2026 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"os/user"
	"time"

	"go.astrophena.name/cato/cli"
	"go.astrophena.name/cato/internal/config"
	"go.astrophena.name/cato/internal/install"
	"go.astrophena.name/cato/internal/selector"
	"go.astrophena.name/cato/licenser"
	"go.astrophena.name/cato/logger"
)

func main() { cli.Main(&app{now: time.Now}) }

type app struct {
	// flags
	list       bool
	license    string
	owner      string
	email      string
	year       string
	dir        string
	recursive  bool
	comment    string
	catalog    string
	configFile string
	endPhrase  *string
	dry        bool
	jobs       int
	install    bool
	force      bool

	now func() time.Time
}

func (a *app) Flags(f *flag.FlagSet) {
	f.BoolVar(&a.list, "list", false, "List available licenses and exit.")
	f.StringVar(&a.license, "l", "", "License `id`. Use -list to see the available ones.")
	f.StringVar(&a.owner, "o", "", "Copyright `owner`.")
	f.StringVar(&a.email, "e", "", "Contact `email` of the copyright owner.")
	f.StringVar(&a.year, "y", "", "Copyright `year`. Defaults to the current year.")
	f.StringVar(&a.dir, "d", "", "Target `directory`. A LICENSE file is written there and the arguments are file extensions.")
	f.BoolVar(&a.recursive, "r", false, "With -d, walk the whole directory tree.")
	f.StringVar(&a.comment, "c", "", "Comment `prefix` used for all files.")
	f.StringVar(&a.catalog, "catalog", "", "Read licenses from `dir`.")
	f.StringVar(&a.configFile, "config", "", "Read configuration from `file`.")
	f.Func("end", "End `phrase` separating the full license from the embedded notice.", func(s string) error {
		a.endPhrase = &s
		return nil
	})
	f.BoolVar(&a.dry, "dry", false, "Print the changes instead of writing them.")
	f.IntVar(&a.jobs, "j", 1, "Patch up to `n` files in parallel.")
	f.BoolVar(&a.install, "install", false, "Install the built-in licenses and a sample configuration into the cato home.")
	f.BoolVar(&a.force, "force", false, "With -install, overwrite existing files.")
}

func (a *app) Run(ctx context.Context) error {
	env := cli.GetEnv(ctx)

	home, err := config.Home(env.Getenv)
	if err != nil {
		return err
	}

	if a.install {
		return a.doInstall(ctx, home)
	}

	cfg, err := a.loadConfig(home)
	if err != nil {
		return err
	}
	catalog, err := a.openCatalog(ctx, cfg, home)
	if err != nil {
		return err
	}

	if a.list {
		ids, err := catalog.List()
		if err != nil {
			return err
		}
		for _, id := range ids {
			fmt.Fprintln(env.Stdout, id)
		}
		return nil
	}

	if err := a.checkArgs(env.Args); err != nil {
		return err
	}

	l, err := a.licenser(env, cfg, catalog)
	if err != nil {
		return err
	}
	var dw *licenser.DiffWriter
	if a.dry {
		dw = licenser.NewDiffWriter()
		l.Writer = dw
	}

	id, err := a.licenseID(cfg, catalog)
	if err != nil {
		return err
	}
	logger.Debug(ctx, "resolving license", slog.String("license", id), slog.String("catalog", catalog.Name()))
	lic, err := l.Resolve(id)
	if err != nil {
		return err
	}

	var files []string
	if a.dir != "" {
		if err := l.PatchDir(a.dir, lic.Extended); err != nil {
			return err
		}
		files, err = selector.Dir(a.dir, a.recursive, env.Args)
		if err != nil {
			return fmt.Errorf("%w: %v", cli.ErrInvalidArgs, err)
		}
		if len(files) == 0 {
			logger.Warn(ctx, "no files matched", slog.String("dir", a.dir), slog.Any("extensions", env.Args))
		}
	} else {
		files = selector.Files(env.Args)
	}

	results, err := l.PatchFiles(ctx, files, lic.Embedded, a.jobs)
	failed := failures(err)
	for _, res := range results {
		if fe, ok := failed[res.Path]; ok {
			logger.Error(ctx, "cannot patch file", slog.String("path", fe.Path), logger.Err(fe.Err))
			continue
		}
		if !res.Embedded {
			logger.Warn(ctx, "no blank line found, license not embedded", slog.String("path", res.Path))
		}
	}

	if dw != nil {
		fmt.Fprint(env.Stdout, dw.String())
	}
	return err
}

func (a *app) checkArgs(args []string) error {
	switch {
	case a.jobs < 1:
		return fmt.Errorf("%w: -j must be at least 1", cli.ErrInvalidArgs)
	case a.recursive && a.dir == "":
		return fmt.Errorf("%w: -r requires -d", cli.ErrInvalidArgs)
	case len(args) == 0 && a.dir != "":
		return fmt.Errorf("%w: no file extensions given", cli.ErrInvalidArgs)
	case len(args) == 0:
		return fmt.Errorf("%w: no files given", cli.ErrInvalidArgs)
	}
	if a.dir != "" {
		fi, err := os.Stat(a.dir)
		if err != nil {
			return fmt.Errorf("%w: %v", cli.ErrInvalidArgs, err)
		}
		if !fi.IsDir() {
			return fmt.Errorf("%w: %s is not a directory", cli.ErrInvalidArgs, a.dir)
		}
	}
	return nil
}

func (a *app) doInstall(ctx context.Context, home string) error {
	res, err := install.Run(home, a.force)
	if res != nil {
		for _, path := range res.Written {
			logger.Info(ctx, "installed", slog.String("path", path))
		}
		for _, path := range res.Skipped {
			logger.Debug(ctx, "file exists, skipping", slog.String("path", path))
		}
	}
	return err
}

func (a *app) loadConfig(home string) (*config.Config, error) {
	if a.configFile != "" {
		return config.Load(a.configFile, true)
	}
	return config.Load(config.Path(home), false)
}

func (a *app) openCatalog(ctx context.Context, cfg *config.Config, home string) (*licenser.Catalog, error) {
	if a.catalog != "" {
		return licenser.OpenCatalog(a.catalog), nil
	}
	dir, err := cfg.CatalogDir(home)
	if err != nil {
		return nil, err
	}
	if cfg.Cato.Licenses == "" {
		if _, err := os.Stat(dir); errors.Is(err, fs.ErrNotExist) {
			logger.Debug(ctx, "no catalog installed, using the built-in one", slog.String("dir", dir))
			return licenser.EmbeddedCatalog(), nil
		}
	}
	return licenser.OpenCatalog(dir), nil
}

func (a *app) licenser(env *cli.Env, cfg *config.Config, catalog *licenser.Catalog) (*licenser.Licenser, error) {
	name, err := userName(env)
	if err != nil {
		return nil, err
	}
	now := a.now
	if now == nil {
		now = time.Now
	}
	ident := licenser.Identity{Year: now().Year(), User: name}

	l := licenser.New(catalog, ident)
	l.Tags = cfg.Tags(ident)
	l.CommentSyntax = cfg.CommentSyntax()
	l.EndPhrase = cfg.EndPhrase()

	if a.owner != "" {
		l.Tags[licenser.OwnerTag] = a.owner
	}
	if a.email != "" {
		l.Tags[licenser.EmailTag] = a.email
	}
	if a.year != "" {
		l.Tags[licenser.YearTag] = a.year
	}
	if a.comment != "" {
		l.CommentSyntax = licenser.CommentSyntax{licenser.DefaultCommentKey: a.comment}
	}
	if a.endPhrase != nil {
		l.EndPhrase = *a.endPhrase
	}
	return l, nil
}

func (a *app) licenseID(cfg *config.Config, catalog *licenser.Catalog) (string, error) {
	if a.license != "" {
		return a.license, nil
	}
	if cfg.Cato.License != "" {
		return cfg.Cato.License, nil
	}
	ids, err := catalog.List()
	if err != nil {
		return "", err
	}
	if len(ids) == 0 {
		return "", fmt.Errorf("no licenses in %s", catalog.Name())
	}
	return ids[0], nil
}

func userName(env *cli.Env) (string, error) {
	for _, key := range []string{"USER", "USERNAME"} {
		if name := env.Getenv(key); name != "" {
			return name, nil
		}
	}
	u, err := user.Current()
	if err != nil {
		return "", fmt.Errorf("cannot determine user name: %w", err)
	}
	return u.Username, nil
}

// failures returns the per-file errors of a batch error by path.
func failures(err error) map[string]*licenser.FileAccessError {
	failed := make(map[string]*licenser.FileAccessError)
	var be *licenser.BatchError
	if !errors.As(err, &be) {
		return failed
	}
	for _, e := range be.Errs {
		var fe *licenser.FileAccessError
		if errors.As(e, &fe) {
			failed[fe.Path] = fe
		}
	}
	return failed
}
