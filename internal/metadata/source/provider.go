package source

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/kopi-vm/kopi-sub003/internal/cancel"
	"github.com/kopi-vm/kopi-sub003/internal/locking"
	"github.com/kopi-vm/kopi-sub003/internal/logging"
	"github.com/kopi-vm/kopi-sub003/internal/metadata"
	"go.uber.org/zap"
)

// Provider tries sources in order; the first non-empty success wins. If all
// sources fail, the aggregated error lists each source's failure. A
// successful remote fetch is written back to the cache.
type Provider struct {
	Sources []Source
	Cache   *metadata.Cache
	Locks   *locking.Controller
	Logger  *zap.SugaredLogger
}

func (p *Provider) logger() *zap.SugaredLogger {
	if p.Logger != nil {
		return p.Logger
	}
	return logging.Nop()
}

// FetchDistribution tries each source in order for distribution, writing a
// successful fetch back to the cache under the CacheWriter lock scope.
func (p *Provider) FetchDistribution(ctx context.Context, distribution string, q Query, token cancel.Token) ([]metadata.JDK, error) {
	var failures []string
	for _, s := range p.Sources {
		if !s.IsAvailable(ctx) {
			failures = append(failures, fmt.Sprintf("%s: unavailable", s.Name()))
			continue
		}
		pkgs, err := s.FetchDistribution(ctx, distribution, q)
		if err != nil {
			failures = append(failures, fmt.Sprintf("%s: %v", s.Name(), err))
			continue
		}
		if len(pkgs) == 0 {
			continue
		}
		p.writeBack(distribution, pkgs, token)
		return pkgs, nil
	}
	return nil, fmt.Errorf("all metadata sources failed: %s", strings.Join(failures, "; "))
}

func (p *Provider) writeBack(distribution string, pkgs []metadata.JDK, token cancel.Token) {
	if p.Cache == nil {
		return
	}
	if p.Locks != nil {
		h, err := p.Locks.Acquire(locking.CacheWriterScope{}, token, locking.Options{})
		if err != nil {
			p.logger().Warnw("could not acquire cache writer lock, skipping write-back", "err", err)
			return
		}
		defer h.Release()
	}
	if err := p.Cache.Put(distribution, pkgs, time.Now()); err != nil {
		p.logger().Warnw("failed to write metadata cache", "err", err)
	}
}
