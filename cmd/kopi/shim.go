package main

import (
	"os"
	"path/filepath"

	"github.com/kopi-vm/kopi-sub003/internal/platform"
	"github.com/kopi-vm/kopi-sub003/internal/ui"
	"github.com/spf13/cobra"
)

// standardTools is the set of per-tool shim replicas kopi provisions by
// default; anything else is still dispatchable by name via `kopi-shim`
// once a matching shim entry exists.
var standardTools = []string{
	"java", "javac", "javap", "javadoc", "jar", "jshell",
	"jlink", "jdeps", "jcmd", "jps", "jstack", "keytool",
}

func newShimCmd() *cobra.Command {
	shim := &cobra.Command{
		Use:   "shim",
		Short: "Manage the per-tool shim binaries on PATH",
	}
	shim.AddCommand(newShimListCmd(), newShimAddCmd())
	return shim
}

func newShimListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List provisioned shims",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newAppContext()
			if err != nil {
				return err
			}
			entries, err := os.ReadDir(app.paths.ShimsRoot())
			if err != nil {
				if os.IsNotExist(err) {
					ui.Info("no shims provisioned yet; run `kopi shim add`")
					return nil
				}
				return err
			}
			rows := make([][]string, 0, len(entries))
			for _, e := range entries {
				rows = append(rows, []string{e.Name(), filepath.Join(app.paths.ShimsRoot(), e.Name())})
			}
			return ui.Table([]string{"Tool", "Path"}, rows)
		},
	}
}

func newShimAddCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "add",
		Short: "Provision shim replicas for the standard JDK tool set",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newAppContext()
			if err != nil {
				return err
			}
			if err := os.MkdirAll(app.paths.ShimsRoot(), 0o755); err != nil {
				return err
			}
			launcher := app.paths.ShimLauncherPath()
			if _, err := os.Stat(launcher); err != nil {
				return err
			}

			for _, tool := range standardTools {
				shimPath := app.paths.ShimPath(tool)
				if _, err := os.Lstat(shimPath); err == nil {
					continue
				}
				if err := provisionShim(launcher, shimPath); err != nil {
					return err
				}
			}
			ui.Success("provisioned %d shim(s) in %s", len(standardTools), app.paths.ShimsRoot())
			return nil
		},
	}
}

// provisionShim links (or copies, on platforms without usable shim
// symlinks) shimPath to the kopi-shim launcher binary.
func provisionShim(launcher, shimPath string) error {
	if platform.UsesSymlinksForShims() {
		return platform.CreateSymlink(launcher, shimPath)
	}
	data, err := os.ReadFile(launcher)
	if err != nil {
		return err
	}
	if err := os.WriteFile(shimPath, data, 0o755); err != nil {
		return err
	}
	return platform.SetExecutable(shimPath)
}
