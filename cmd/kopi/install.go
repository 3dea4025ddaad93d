package main

import (
	"context"
	"path/filepath"
	"time"

	"github.com/kopi-vm/kopi-sub003/internal/install"
	"github.com/kopi-vm/kopi-sub003/internal/kopierr"
	"github.com/kopi-vm/kopi-sub003/internal/metadata"
	"github.com/kopi-vm/kopi-sub003/internal/metadata/source"
	"github.com/kopi-vm/kopi-sub003/internal/progress"
	"github.com/kopi-vm/kopi-sub003/internal/search"
	"github.com/kopi-vm/kopi-sub003/internal/ui"
	"github.com/kopi-vm/kopi-sub003/internal/version"
	"github.com/spf13/cobra"
)

func newInstallCmd() *cobra.Command {
	var force, dryRun, noProgress bool
	var timeout time.Duration
	cmd := &cobra.Command{
		Use:     "install <version-expression>",
		Aliases: []string{"i", "add"},
		Short:   "Download and install a JDK matching a version expression",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInstall(args[0], installFlags{force: force, dryRun: dryRun, noProgress: noProgress, timeout: timeout})
		},
	}
	cmd.Flags().BoolVar(&force, "force", false, "reinstall even if already present")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "resolve and report what would be installed, without downloading")
	cmd.Flags().BoolVar(&noProgress, "no-progress", false, "disable the download progress bar")
	cmd.Flags().DurationVar(&timeout, "timeout", 0, "override the install lock timeout (0 keeps the configured default)")
	return cmd
}

type installFlags struct {
	force      bool
	dryRun     bool
	noProgress bool
	timeout    time.Duration
}

func runInstall(expr string, flags installFlags) error {
	app, err := newAppContext()
	if err != nil {
		return err
	}

	q, err := search.Parse(expr)
	if err != nil {
		return err
	}

	ctx := context.Background()
	ui.Fetch("resolving %s against remote metadata", expr)
	packages, err := app.sources.FetchDistribution(ctx, q.Distribution, source.Query{Distribution: q.Distribution}, app.token)
	if err != nil {
		return err
	}

	results := search.Run(packages, q)
	pkg, err := search.AutoSelect(results, expr)
	if err != nil {
		return err
	}

	if flags.dryRun {
		ui.Info("would install %s %s (%s, %d bytes) at %s", pkg.Distribution, pkg.Version, pkg.ArchiveKind, pkg.Size, app.paths.InstallationDir(metadata.InstallDirName(pkg.Distribution, pkg.Version, pkg.JavaFX)))
		return nil
	}

	var reporter progress.Reporter = progress.Noop{}
	if !flags.noProgress && pkg.Size > 0 {
		bar := progress.NewBar(pkg.Size)
		bar.Start(pkg.Size)
		reporter = bar
	}

	lockTimeout := app.lockTimeout()
	if flags.timeout > 0 {
		lockTimeout = flags.timeout
	}

	dir, err := app.orch.Install(ctx, pkg, app.token, reporter, install.Options{
		Force:       flags.force,
		LockTimeout: lockTimeout,
	})
	if err != nil {
		if kopierr.Transient(err) {
			ui.Warn("install failed with a transient error, it may succeed on retry: %v", err)
		}
		return err
	}

	ui.Success("installed %s %s at %s", pkg.Distribution, pkg.Version, dir)
	return nil
}

func newUninstallCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "uninstall <version-expression>",
		Aliases: []string{"remove", "rm"},
		Short:   "Remove an installed JDK",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runUninstall(args[0])
		},
	}
}

func runUninstall(expr string) error {
	app, err := newAppContext()
	if err != nil {
		return err
	}

	installs, err := scanInstallations(app)
	if err != nil {
		return err
	}

	v, err := parseSelector(expr)
	if err != nil {
		return err
	}

	matches := filterInstallations(installs, v)
	if len(matches) == 0 {
		return &kopierr.NoMatchingVersion{Expression: expr}
	}
	if len(matches) > 1 {
		var names []string
		for _, m := range matches {
			names = append(names, m.Distribution+"@"+m.Version.String())
		}
		return &kopierr.AmbiguousVersion{Expression: expr, Candidates: names}
	}

	match := matches[0]
	dirName := filepath.Base(match.Dir)
	coord := metadata.Coordinate{
		Distribution: match.Distribution,
		Major:        majorComponent(match.Version),
		Kind:         metadata.KindJDK,
		JavaFX:       match.JavaFX,
	}

	if err := app.orch.Uninstall(coord, dirName, app.token); err != nil {
		return err
	}

	ui.Success("uninstalled %s %s", match.Distribution, match.Version.String())
	return nil
}

func majorComponent(v version.Version) uint64 {
	if len(v.Components) == 0 {
		return 0
	}
	return v.Components[0]
}
