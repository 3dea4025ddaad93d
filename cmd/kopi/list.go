package main

import (
	"context"

	"github.com/kopi-vm/kopi-sub003/internal/metadata/source"
	"github.com/kopi-vm/kopi-sub003/internal/search"
	"github.com/kopi-vm/kopi-sub003/internal/ui"
	"github.com/spf13/cobra"
)

func newListCmd() *cobra.Command {
	var remote bool
	cmd := &cobra.Command{
		Use:     "list [distribution]",
		Aliases: []string{"ls"},
		Short:   "List installed JDKs, or available ones with --remote",
		Args:    cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			distribution := ""
			if len(args) == 1 {
				distribution = args[0]
			}
			if remote {
				return runListRemote(search.Query{Distribution: distribution})
			}
			return runListInstalled()
		},
	}
	cmd.Flags().BoolVar(&remote, "remote", false, "list packages available from remote metadata instead of local installs")
	return cmd
}

func runListInstalled() error {
	app, err := newAppContext()
	if err != nil {
		return err
	}
	installs, err := scanInstallations(app)
	if err != nil {
		return err
	}
	if len(installs) == 0 {
		ui.Info("no JDKs installed yet; try `kopi install temurin@21`")
		return nil
	}

	rows := make([][]string, 0, len(installs))
	for _, inst := range installs {
		fx := ""
		if inst.JavaFX {
			fx = "yes"
		}
		rows = append(rows, []string{inst.Distribution, inst.Version.String(), fx, inst.Dir})
	}
	return ui.Table([]string{"Distribution", "Version", "JavaFX", "Path"}, rows)
}

func runListRemote(q search.Query) error {
	app, err := newAppContext()
	if err != nil {
		return err
	}
	packages, err := app.sources.FetchDistribution(context.Background(), q.Distribution, source.Query{Distribution: q.Distribution}, app.token)
	if err != nil {
		return err
	}
	results := search.Run(packages, q)

	rows := make([][]string, 0, len(results))
	for _, r := range results {
		p := r.Package
		rows = append(rows, []string{p.Distribution, p.Version, string(p.TermOfSupport), string(p.ReleaseStatus), p.Architecture, p.OS})
	}
	return ui.Table([]string{"Distribution", "Version", "Support", "Status", "Arch", "OS"}, rows)
}
