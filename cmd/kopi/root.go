package main

import (
	"github.com/kopi-vm/kopi-sub003/internal/ui"
	"github.com/spf13/cobra"
)

// newRootCmd builds the cobra command tree. Each subcommand lazily builds
// its own appContext in RunE rather than in a shared PersistentPreRunE, so
// `kopi completion` and `kopi --help` never touch KOPI_HOME.
func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "kopi",
		Short:         "Manage and switch between JDK installations",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			ui.Banner()
			return cmd.Help()
		},
	}

	root.AddCommand(
		newInstallCmd(),
		newUninstallCmd(),
		newListCmd(),
		newUseCmd(),
		newLocalCmd(),
		newGlobalCmd(),
		newCurrentCmd(),
		newWhichCmd(),
		newEnvCmd(),
		newCacheCmd(),
		newDoctorCmd(),
		newShimCmd(),
	)
	return root
}
