package main

import (
	"context"
	"net/http"
	"time"

	"github.com/kopi-vm/kopi-sub003/internal/locking"
	"github.com/kopi-vm/kopi-sub003/internal/metadata"
	"github.com/kopi-vm/kopi-sub003/internal/platform"
	"github.com/kopi-vm/kopi-sub003/internal/ui"
	"github.com/kopi-vm/kopi-sub003/internal/useragent"
	"github.com/spf13/cobra"
)

func newDoctorCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "Diagnose the local kopi installation: platform, paths, locks, network",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDoctor()
		},
	}
}

func runDoctor() error {
	app, err := newAppContext()
	if err != nil {
		return err
	}

	triple, err := platform.Detect()
	if err != nil {
		ui.Error("platform detection failed: %v", err)
	} else {
		ui.Info("platform: %s/%s libc=%q", triple.Architecture, triple.OS, triple.Libc)
	}
	ui.Info("home: %s", app.paths.Home())

	report, err := locking.RunHygiene(app.paths, locking.HygieneThreshold)
	if err != nil {
		ui.Warn("lock hygiene scan failed: %v", err)
	} else {
		ui.Info("lock hygiene: removed %d marker file(s), %d empty lock file(s)", report.MarkersRemoved, report.LockFilesRemoved)
	}

	ctx, cancelFn := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelFn()
	req, _ := http.NewRequestWithContext(ctx, http.MethodHead, "https://api.foojay.io/disco/v3.0/distributions", nil)
	req.Header.Set("User-Agent", useragent.Doctor())
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		ui.Warn("remote metadata endpoint unreachable: %v", err)
	} else {
		resp.Body.Close()
		ui.Success("remote metadata endpoint reachable (status %d)", resp.StatusCode)
	}

	installs, err := scanInstallations(app)
	if err != nil {
		ui.Warn("failed to scan installations: %v", err)
	} else {
		ui.Info("%d JDK installation(s) found", len(installs))
	}

	for _, d := range metadata.KnownDistributions() {
		entry, ok, err := app.cache.Get(d.ID)
		if err != nil || !ok {
			continue
		}
		if cacheStale(entry, app.cfg.MetadataTTL) {
			ui.Warn("cached metadata for %s is stale (fetched %s)", d.ID, entry.FetchedAt.Format(time.RFC3339))
		}
	}

	return nil
}
