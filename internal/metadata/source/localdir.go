package source

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/kopi-vm/kopi-sub003/internal/metadata"
)

// LocalDirectory reads an index and per-distribution JSON files from a
// given directory, for air-gapped installations.
type LocalDirectory struct {
	Dir string
}

func (l *LocalDirectory) Name() string { return "local-directory" }

func (l *LocalDirectory) IsAvailable(ctx context.Context) bool {
	info, err := os.Stat(l.Dir)
	return err == nil && info.IsDir()
}

func (l *LocalDirectory) indexPath() string {
	return filepath.Join(l.Dir, "index.json")
}

func (l *LocalDirectory) FetchAll(ctx context.Context, q Query) ([]metadata.JDK, error) {
	entries, err := os.ReadDir(l.Dir)
	if err != nil {
		return nil, fmt.Errorf("reading local metadata directory: %w", err)
	}
	var all []metadata.JDK
	for _, e := range entries {
		if e.IsDir() || e.Name() == "index.json" || filepath.Ext(e.Name()) != ".json" {
			continue
		}
		distribution := e.Name()[:len(e.Name())-len(".json")]
		if q.Distribution != "" && distribution != q.Distribution {
			continue
		}
		pkgs, err := l.readDistributionFile(filepath.Join(l.Dir, e.Name()))
		if err != nil {
			return nil, err
		}
		all = append(all, pkgs...)
	}
	return all, nil
}

func (l *LocalDirectory) readDistributionFile(path string) ([]metadata.JDK, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	var wr wireResponse
	if err := json.Unmarshal(data, &wr); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	out := make([]metadata.JDK, 0, len(wr.Result))
	for _, p := range wr.Result {
		out = append(out, mapPackage(p, nil))
	}
	return out, nil
}

func (l *LocalDirectory) FetchDistribution(ctx context.Context, distribution string, q Query) ([]metadata.JDK, error) {
	return l.readDistributionFile(filepath.Join(l.Dir, distribution+".json"))
}

func (l *LocalDirectory) LastUpdated(ctx context.Context) (time.Time, bool) {
	info, err := os.Stat(l.indexPath())
	if err != nil {
		return time.Time{}, false
	}
	return info.ModTime(), true
}
