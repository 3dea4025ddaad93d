// Command kopi-shim is the binary every per-tool shim replica in
// $KOPI_HOME/shims points at (directly on Windows, via symlink elsewhere).
// It resolves the active JDK for the current directory and replaces itself
// with the matching tool binary (spec.md §4.M). Kept deliberately minimal:
// no flag parsing, no logging setup, no network access on the hot path.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/kopi-vm/kopi-sub003/internal/kopierr"
	"github.com/kopi-vm/kopi-sub003/internal/kopipath"
	"github.com/kopi-vm/kopi-sub003/internal/shim"
)

func main() {
	home, err := kopipath.Resolve()
	if err != nil {
		fmt.Fprintln(os.Stderr, "kopi-shim:", err)
		os.Exit(1)
	}
	paths := kopipath.New(home)

	cwd, err := os.Getwd()
	if err != nil {
		fmt.Fprintln(os.Stderr, "kopi-shim:", err)
		os.Exit(1)
	}

	if err := shim.Dispatch(paths, cwd, os.Args, os.Environ()); err != nil {
		fmt.Fprintln(os.Stderr, "kopi-shim:", err)
		if errors.Is(err, kopierr.ErrNotInstalled) {
			os.Exit(127)
		}
		os.Exit(1)
	}
}
