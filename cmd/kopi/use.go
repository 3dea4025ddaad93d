package main

import (
	"fmt"
	"os"

	"github.com/kopi-vm/kopi-sub003/internal/selector"
	"github.com/kopi-vm/kopi-sub003/internal/ui"
	"github.com/spf13/cobra"
)

func newUseCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "use <version-expression>",
		Short: "Resolve and report the installation that would run for an expression",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newAppContext()
			if err != nil {
				return err
			}
			installs, err := scanInstallations(app)
			if err != nil {
				return err
			}
			v, err := parseSelector(args[0])
			if err != nil {
				return err
			}
			matches := filterInstallations(installs, v)
			inst, err := pickOne(args[0], matches, v)
			if err != nil {
				return err
			}
			ui.Success("%s %s is available at %s", inst.Distribution, inst.Version.String(), inst.Dir)
			return nil
		},
	}
}

func newLocalCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "local <version-expression>",
		Short: "Pin the current directory to a version via .kopi-version",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return writeVersionFile(selector.ProjectFileNames[0], args[0])
		},
	}
}

func newGlobalCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "global <version-expression>",
		Aliases: []string{"default"},
		Short:   "Set the global default version",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newAppContext()
			if err != nil {
				return err
			}
			if err := os.WriteFile(app.paths.GlobalVersionFile(), []byte(args[0]+"\n"), 0o644); err != nil {
				return err
			}
			ui.Success("global version set to %s", args[0])
			return nil
		},
	}
}

func writeVersionFile(name, expr string) error {
	if err := os.WriteFile(name, []byte(expr+"\n"), 0o644); err != nil {
		return err
	}
	ui.Success("wrote %s", name)
	return nil
}

func newCurrentCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "current",
		Short: "Show the JDK that would be used in the current directory",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newAppContext()
			if err != nil {
				return err
			}
			installs, err := scanInstallations(app)
			if err != nil {
				return err
			}
			cwd, err := os.Getwd()
			if err != nil {
				return err
			}
			inst, res, err := selector.Resolve(app.paths, cwd, installs)
			if err != nil {
				return err
			}
			ui.Info("%s %s (from %s)", inst.Distribution, inst.Version.String(), describeSource(res))
			return nil
		},
	}
}

func newWhichCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "which <tool>",
		Short: "Print the resolved path to a tool binary (java, javac, ...)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newAppContext()
			if err != nil {
				return err
			}
			installs, err := scanInstallations(app)
			if err != nil {
				return err
			}
			cwd, err := os.Getwd()
			if err != nil {
				return err
			}
			inst, _, err := selector.Resolve(app.paths, cwd, installs)
			if err != nil {
				return err
			}
			fmt.Println(toolBinaryPath(app, inst, args[0]))
			return nil
		},
	}
}

func newEnvCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "env",
		Short: "Print JAVA_HOME for the resolved JDK, for shell eval",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newAppContext()
			if err != nil {
				return err
			}
			installs, err := scanInstallations(app)
			if err != nil {
				return err
			}
			cwd, err := os.Getwd()
			if err != nil {
				return err
			}
			inst, _, err := selector.Resolve(app.paths, cwd, installs)
			if err != nil {
				return err
			}
			fmt.Printf("export JAVA_HOME=%q\n", inst.Dir)
			return nil
		},
	}
}

func describeSource(res selector.Resolution) string {
	switch res.Source {
	case selector.SourceEnv:
		return "KOPI_VERSION"
	case selector.SourceProjectFile:
		return res.Path
	case selector.SourceGlobalFile:
		return "global default"
	default:
		return "none"
	}
}
