package main

import (
	"context"
	"os"
	"time"

	"nikand.dev/go/cli"
	"tlog.app/go/errors"
	"tlog.app/go/tlog"

	"github.com/movingco/move-to-ts/internal/compiler"
	"github.com/movingco/move-to-ts/internal/config"
	"github.com/movingco/move-to-ts/internal/report"
)

func main() {
	buildCmd := &cli.Command{
		Name:        "build",
		Description: "translate IR modules and write the TypeScript tree",
		Action:      buildAct,
		Args:        cli.Args{},
		Flags:       translateFlags(),
	}

	checkCmd := &cli.Command{
		Name:        "check",
		Description: "translate IR modules and report diagnostics without writing",
		Action:      checkAct,
		Args:        cli.Args{},
		Flags:       translateFlags(),
	}

	depsCmd := &cli.Command{
		Name:        "deps",
		Description: "print modules in dependency order",
		Action:      depsAct,
		Args:        cli.Args{},
		Flags: []*cli.Flag{
			cli.NewFlag("config", config.FileName, "config file"),
		},
	}

	initCmd := &cli.Command{
		Name:        "init",
		Description: "write the default config file",
		Action:      initAct,
		Flags: []*cli.Flag{
			cli.NewFlag("config", config.FileName, "config file"),
			cli.NewFlag("force", false, "overwrite an existing file"),
		},
	}

	app := &cli.Command{
		Name:        "movetots",
		Description: "movetots translates Move IR modules into TypeScript",
		Commands: []*cli.Command{
			buildCmd,
			checkCmd,
			depsCmd,
			initCmd,
		},
	}

	cli.RunAndExit(app, os.Args, os.Environ())
}

func translateFlags() []*cli.Flag {
	return []*cli.Flag{
		cli.NewFlag("config", config.FileName, "config file"),
		cli.NewFlag("out", "", "output directory, overrides config"),
		cli.NewFlag("test", false, "emit test function markers"),
		cli.NewFlag("jobs", 0, "parallel module translations, overrides config"),
	}
}

func buildAct(c *cli.Command) error {
	return translate(c, true)
}

func checkAct(c *cli.Command) error {
	return translate(c, false)
}

func translate(c *cli.Command, write bool) (err error) {
	ctx := context.Background()
	ctx = tlog.ContextWithSpan(ctx, tlog.Root())

	start := time.Now()
	r := report.New(os.Stdout)

	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}

	reg, err := loadModules(c)
	if err != nil {
		return err
	}

	res, err := compiler.New(cfg).Translate(ctx, reg)
	if err != nil {
		return errors.Wrap(err, "translate")
	}

	r.Diagnostics(res.Diagnostics)

	for _, ierr := range res.Internal {
		r.Error("internal", ierr)
	}

	files := 0

	if write && !res.Failed() {
		err = compiler.WriteFiles(ctx, cfg.Output, res.Files)
		if err != nil {
			return errors.Wrap(err, "write output")
		}

		files = len(res.Files)
		r.Info("wrote", cfg.Output)
	}

	r.Summary(reg.Len(), files, res.Diagnostics, time.Since(start))

	if res.Failed() {
		return errors.New("translation failed")
	}

	return nil
}

func depsAct(c *cli.Command) error {
	reg, err := loadModules(c)
	if err != nil {
		return err
	}

	order, err := reg.TopologicalSort()
	if err != nil {
		return err
	}

	r := report.New(os.Stdout)

	r.Order(order)
	r.Diagnostics(reg.MissingDeps())

	return nil
}

func initAct(c *cli.Command) error {
	path := c.String("config")

	if _, err := os.Stat(path); err == nil && !c.Bool("force") {
		return errors.New("%v already exists", path)
	}

	data, err := config.Default().Encode()
	if err != nil {
		return errors.Wrap(err, "encode config")
	}

	err = os.WriteFile(path, data, 0644)
	if err != nil {
		return errors.Wrap(err, "write config")
	}

	report.New(os.Stdout).Info("created", path)

	return nil
}

// loadConfig reads the config file and applies flag overrides.
func loadConfig(c *cli.Command) (*config.Config, error) {
	cfg, err := config.Load(c.String("config"))
	if err != nil {
		return nil, errors.Wrap(err, "load config")
	}

	if out := c.String("out"); out != "" {
		cfg.Output = out
	}

	if c.Bool("test") {
		cfg.Test = true
	}

	if jobs := c.Int("jobs"); jobs > 0 {
		cfg.Jobs = jobs
	}

	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "config")
	}

	return cfg, nil
}

func loadModules(c *cli.Command) (*compiler.ModuleRegistry, error) {
	if len(c.Args) == 0 {
		return nil, errors.New("no IR files or directories given")
	}

	reg := compiler.NewModuleRegistry()

	if err := reg.LoadPaths(c.Args); err != nil {
		return nil, errors.Wrap(err, "load modules")
	}

	return reg, nil
}
