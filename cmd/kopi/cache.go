package main

import (
	"context"
	"os"
	"time"

	"github.com/kopi-vm/kopi-sub003/internal/metadata"
	"github.com/kopi-vm/kopi-sub003/internal/metadata/source"
	"github.com/kopi-vm/kopi-sub003/internal/search"
	"github.com/kopi-vm/kopi-sub003/internal/ui"
	"github.com/spf13/cobra"
)

func newCacheCmd() *cobra.Command {
	cache := &cobra.Command{
		Use:   "cache",
		Short: "Inspect and manage the local metadata cache",
	}
	cache.AddCommand(newCacheListCmd(), newCacheClearCmd(), newCacheRefreshCmd(), newCacheSearchCmd())
	return cache
}

func newCacheRefreshCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "refresh",
		Short: "Re-fetch remote metadata for every known distribution",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newAppContext()
			if err != nil {
				return err
			}
			ctx := context.Background()
			for _, d := range metadata.KnownDistributions() {
				ui.Fetch("refreshing %s", d.ID)
				if _, err := app.sources.FetchDistribution(ctx, d.ID, source.Query{Distribution: d.ID}, app.token); err != nil {
					ui.Warn("refreshing %s failed: %v", d.ID, err)
				}
			}
			ui.Success("cache refreshed")
			return nil
		},
	}
}

func newCacheSearchCmd() *cobra.Command {
	var ltsOnly bool
	cmd := &cobra.Command{
		Use:   "search <expression>",
		Short: "Search remote metadata (fetched from the sources on every call; the cache is not read first)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			q, err := search.Parse(args[0])
			if err != nil {
				return err
			}
			q.LTSOnly = ltsOnly
			return runListRemote(q)
		},
	}
	cmd.Flags().BoolVar(&ltsOnly, "lts-only", false, "restrict results to long-term-support releases")
	return cmd
}

func newCacheListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list-distributions",
		Short: "List the closed set of known JDK distributions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rows := make([][]string, 0, len(metadata.KnownDistributions()))
			for _, d := range metadata.KnownDistributions() {
				rows = append(rows, []string{d.ID, d.DisplayName})
			}
			return ui.Table([]string{"ID", "Display name"}, rows)
		},
	}
}

func newCacheClearCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Delete the local metadata cache file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newAppContext()
			if err != nil {
				return err
			}
			if err := os.Remove(app.paths.CacheFile()); err != nil && !os.IsNotExist(err) {
				return err
			}
			ui.Success("cache cleared")
			return nil
		},
	}
}

// cacheStale reports whether a distribution's cached entry is older than
// the configured metadata TTL, for doctor diagnostics.
func cacheStale(entry metadata.DistributionEntry, ttl time.Duration) bool {
	return entry.Stale(time.Now(), ttl)
}
