package source

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/kopi-vm/kopi-sub003/internal/kopierr"
	"github.com/kopi-vm/kopi-sub003/internal/metadata"
	"github.com/kopi-vm/kopi-sub003/internal/platform"
	"github.com/kopi-vm/kopi-sub003/internal/useragent"
)

// indexDocument is the root index a static HTTP mirror serves: one shard
// path per (distribution, architecture, OS, libc) combination it carries.
type indexDocument struct {
	GeneratedAt time.Time    `json:"generated_at"`
	Shards      []indexShard `json:"shards"`
}

type indexShard struct {
	Distribution string `json:"distribution"`
	Architecture string `json:"architecture"`
	OS           string `json:"os"`
	Libc         string `json:"libc,omitempty"`
	Path         string `json:"path"`
}

// HTTPIndex fetches a root index describing per-distribution shards and
// downloads only the shards matching the current platform.
type HTTPIndex struct {
	BaseURL    string
	HTTPClient *http.Client

	lastFetch time.Time
	hasFetch  bool
}

func (h *HTTPIndex) Name() string { return "http-index" }

func (h *HTTPIndex) httpClient() *http.Client {
	if h.HTTPClient != nil {
		return h.HTTPClient
	}
	return http.DefaultClient
}

func (h *HTTPIndex) IsAvailable(ctx context.Context) bool {
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, h.BaseURL+"/index.json", nil)
	if err != nil {
		return false
	}
	resp, err := h.httpClient().Do(req)
	if err != nil {
		return false
	}
	defer resp.Body.Close()
	return resp.StatusCode < 400
}

func (h *HTTPIndex) fetchIndex(ctx context.Context) (*indexDocument, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, h.BaseURL+"/index.json", nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", useragent.Metadata())

	resp, err := h.httpClient().Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", kopierr.ErrNetworkUnavailable, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 400 {
		return nil, &kopierr.HTTPStatus{Code: resp.StatusCode, URL: h.BaseURL + "/index.json"}
	}

	var doc indexDocument
	if err := json.NewDecoder(resp.Body).Decode(&doc); err != nil {
		return nil, fmt.Errorf("decoding index: %w", err)
	}
	return &doc, nil
}

func (h *HTTPIndex) fetchShard(ctx context.Context, shard indexShard) ([]metadata.JDK, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, shardURL(h.BaseURL, shard.Path), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", useragent.Metadata())

	resp, err := h.httpClient().Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", kopierr.ErrNetworkUnavailable, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 400 {
		return nil, &kopierr.HTTPStatus{Code: resp.StatusCode, URL: shard.Path}
	}

	var wr wireResponse
	if err := json.NewDecoder(resp.Body).Decode(&wr); err != nil {
		return nil, fmt.Errorf("decoding shard %s: %w", shard.Path, err)
	}
	out := make([]metadata.JDK, 0, len(wr.Result))
	for _, p := range wr.Result {
		out = append(out, mapPackage(p, nil))
	}
	return out, nil
}

func (h *HTTPIndex) FetchAll(ctx context.Context, q Query) ([]metadata.JDK, error) {
	doc, err := h.fetchIndex(ctx)
	if err != nil {
		return nil, err
	}
	var all []metadata.JDK
	for _, shard := range doc.Shards {
		if q.Distribution != "" && shard.Distribution != q.Distribution {
			continue
		}
		if !h.matchesHost(shard) {
			continue
		}
		pkgs, err := h.fetchShard(ctx, shard)
		if err != nil {
			return nil, err
		}
		all = append(all, pkgs...)
	}
	h.lastFetch = doc.GeneratedAt
	h.hasFetch = true
	return all, nil
}

func (h *HTTPIndex) FetchDistribution(ctx context.Context, distribution string, q Query) ([]metadata.JDK, error) {
	q.Distribution = distribution
	return h.FetchAll(ctx, q)
}

func (h *HTTPIndex) LastUpdated(ctx context.Context) (time.Time, bool) {
	return h.lastFetch, h.hasFetch
}

func (h *HTTPIndex) matchesHost(shard indexShard) bool {
	triple, err := platform.Detect()
	if err != nil {
		return false
	}
	if shard.Architecture != "" && shard.Architecture != triple.Architecture {
		return false
	}
	if shard.OS != "" && shard.OS != triple.OS {
		return false
	}
	if shard.Libc != "" && shard.Libc != triple.Libc {
		return false
	}
	return true
}

func shardURL(base, path string) string {
	if strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") {
		return path
	}
	return strings.TrimRight(base, "/") + "/" + strings.TrimLeft(path, "/")
}
