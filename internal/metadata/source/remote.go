package source

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/kopi-vm/kopi-sub003/internal/kopierr"
	"github.com/kopi-vm/kopi-sub003/internal/logging"
	"github.com/kopi-vm/kopi-sub003/internal/metadata"
	"github.com/kopi-vm/kopi-sub003/internal/useragent"
	"go.uber.org/zap"
)

// RemoteAPI queries a foojay.io-style HTTP endpoint, converting a typed
// Query into URL parameters and the untyped wire model into complete JDK
// metadata records.
type RemoteAPI struct {
	BaseURL    string
	HTTPClient *http.Client
	Token      *BearerToken
	Logger     *zap.SugaredLogger

	lastFetch time.Time
	hasFetch  bool
}

func (r *RemoteAPI) Name() string { return "remote-api" }

func (r *RemoteAPI) httpClient() *http.Client {
	if r.HTTPClient != nil {
		return r.HTTPClient
	}
	return http.DefaultClient
}

func (r *RemoteAPI) logger() *zap.SugaredLogger {
	if r.Logger != nil {
		return r.Logger
	}
	return logging.Nop()
}

func (r *RemoteAPI) IsAvailable(ctx context.Context) bool {
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, r.BaseURL, nil)
	if err != nil {
		return false
	}
	resp, err := r.httpClient().Do(req)
	if err != nil {
		return false
	}
	defer resp.Body.Close()
	return resp.StatusCode < 500
}

func (r *RemoteAPI) buildURL(q Query) string {
	values := url.Values{}
	if q.Distribution != "" {
		values.Set("distribution", q.Distribution)
	}
	if q.Version != "" {
		values.Set("version", q.Version)
	}
	if q.Architecture != "" {
		values.Set("architecture", q.Architecture)
	}
	if q.PackageKind != "" {
		values.Set("package_type", string(q.PackageKind))
	}
	if q.OS != "" {
		values.Set("operating_system", q.OS)
	}
	if q.Libc != "" {
		values.Set("lib_c_type", q.Libc)
	}
	for _, k := range q.ArchiveKinds {
		values.Add("archive_type", string(k))
	}
	if q.Latest {
		values.Set("latest", "available")
	}
	if q.DirectlyDownloadable {
		values.Set("directly_downloadable", strconv.FormatBool(true))
	}
	if q.JavaFXBundled {
		values.Set("javafx_bundled", strconv.FormatBool(true))
	}
	return r.BaseURL + "/packages?" + values.Encode()
}

func (r *RemoteAPI) do(ctx context.Context, reqURL string) (*wireResponse, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", useragent.API())
	if r.Token != nil {
		if soon, err := r.Token.ExpiresSoon(30 * time.Second); err == nil && soon {
			r.logger().Warnw("bearer token expires soon or has expired", "url", reqURL)
		}
		req.Header.Set("Authorization", "Bearer "+r.Token.Raw)
	}

	resp, err := r.httpClient().Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", kopierr.ErrNetworkUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return nil, &kopierr.HTTPStatus{Code: resp.StatusCode, URL: reqURL}
	}

	var wr wireResponse
	if err := json.NewDecoder(resp.Body).Decode(&wr); err != nil {
		return nil, fmt.Errorf("decoding metadata response: %w", err)
	}
	return &wr, nil
}

// fetchPackageInfo issues the per-package info request that turns a package
// summary into a complete record (adds DownloadURL + Checksum).
func (r *RemoteAPI) fetchPackageInfo(ctx context.Context, infoURL string) (*wirePackageInfo, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, infoURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", useragent.API())
	if r.Token != nil {
		req.Header.Set("Authorization", "Bearer "+r.Token.Raw)
	}

	resp, err := r.httpClient().Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", kopierr.ErrNetworkUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return nil, &kopierr.HTTPStatus{Code: resp.StatusCode, URL: infoURL}
	}

	var wr wirePackageInfoResponse
	if err := json.NewDecoder(resp.Body).Decode(&wr); err != nil {
		return nil, fmt.Errorf("decoding package info response: %w", err)
	}
	if len(wr.Result) == 0 {
		return nil, fmt.Errorf("empty package info response from %s", infoURL)
	}
	return &wr.Result[0], nil
}

func (r *RemoteAPI) FetchAll(ctx context.Context, q Query) ([]metadata.JDK, error) {
	wr, err := r.do(ctx, r.buildURL(q))
	if err != nil {
		return nil, err
	}
	out := make([]metadata.JDK, 0, len(wr.Result))
	for _, p := range wr.Result {
		var info *wirePackageInfo
		if p.Links.PkgInfoURI != "" {
			info, err = r.fetchPackageInfo(ctx, p.Links.PkgInfoURI)
			if err != nil {
				return nil, fmt.Errorf("fetching package info for %s: %w", p.ID, err)
			}
		}
		out = append(out, mapPackage(p, info))
	}
	r.lastFetch = time.Now()
	r.hasFetch = true
	return out, nil
}

func (r *RemoteAPI) FetchDistribution(ctx context.Context, distribution string, q Query) ([]metadata.JDK, error) {
	q.Distribution = distribution
	return r.FetchAll(ctx, q)
}

func (r *RemoteAPI) LastUpdated(ctx context.Context) (time.Time, bool) {
	return r.lastFetch, r.hasFetch
}
