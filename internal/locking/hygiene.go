package locking

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/kopi-vm/kopi-sub003/internal/kopipath"
)

// HygieneThreshold is how old a marker or empty fallback lock file must be
// before startup hygiene considers it abandoned. Generous enough to cover
// the longest plausible install (installation scope timeout is 600s).
const HygieneThreshold = 15 * time.Minute

// HygieneReport summarizes what a hygiene pass removed.
type HygieneReport struct {
	MarkersRemoved   int
	LockFilesRemoved int
}

// RunHygiene walks the locks subtree and removes marker files and empty
// fallback lock files older than threshold. An empty lock file counts as a
// fallback one only while its sibling ".marker" file exists; lock files
// without a marker belong to the advisory backend and are left in place.
func RunHygiene(paths *kopipath.Registry, threshold time.Duration) (HygieneReport, error) {
	var report HygieneReport
	root := paths.LocksRoot()

	cutoff := time.Now().Add(-threshold)
	err := filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			if os.IsNotExist(err) {
				return nil
			}
			return err
		}
		if info.IsDir() {
			return nil
		}
		if info.ModTime().After(cutoff) {
			return nil
		}
		switch {
		case strings.HasSuffix(path, ".marker"):
			if rmErr := os.Remove(path); rmErr == nil {
				report.MarkersRemoved++
			}
		case strings.HasSuffix(path, ".lock") && info.Size() == 0:
			// Walk visits "x.lock" before "x.lock.marker", so the marker
			// is still present here for a fallback lock.
			if _, mErr := os.Stat(path + ".marker"); mErr != nil {
				return nil
			}
			if rmErr := os.Remove(path); rmErr == nil {
				report.LockFilesRemoved++
			}
		}
		return nil
	})
	if os.IsNotExist(err) {
		return report, nil
	}
	return report, err
}
