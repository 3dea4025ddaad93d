// Command kopi is the JDK version manager's CLI: install, select, and
// launch JDKs by distribution and version (spec.md §6).
package main

import "os"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
