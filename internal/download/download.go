// Package download implements resumable, checksum-verified fetches of a
// complete JDK metadata record's archive (spec.md §4.H).
package download

import (
	"context"
	"crypto/sha256"
	"errors"
	"fmt"
	"hash"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/kopi-vm/kopi-sub003/internal/kopierr"
	"github.com/kopi-vm/kopi-sub003/internal/logging"
	"github.com/kopi-vm/kopi-sub003/internal/metadata"
	"github.com/kopi-vm/kopi-sub003/internal/useragent"
	"go.uber.org/zap"
)

// Options configures a single download attempt, per spec.md §5's defaults.
type Options struct {
	Timeout       time.Duration // default 300s
	Resume        bool
	MaxSize       int64 // default 1 GiB
	MaxRetries    int   // default 3
	ExpectedHash  string
}

const (
	DefaultTimeout    = 300 * time.Second
	DefaultMaxSize    = 1 << 30 // 1 GiB
	DefaultMaxRetries = 3
)

func (o Options) withDefaults() Options {
	if o.Timeout <= 0 {
		o.Timeout = DefaultTimeout
	}
	if o.MaxSize <= 0 {
		o.MaxSize = DefaultMaxSize
	}
	if o.MaxRetries <= 0 {
		o.MaxRetries = DefaultMaxRetries
	}
	return o
}

// Result describes a completed, verified download.
type Result struct {
	Path   string
	Size   int64
	SHA256 string
}

// Client performs HTTP downloads with the package's retry and verification
// policy. A zero Client is usable; HTTPClient defaults to http.DefaultClient.
type Client struct {
	HTTPClient *http.Client
	Logger     *zap.SugaredLogger
}

func (c *Client) httpClient() *http.Client {
	if c.HTTPClient != nil {
		return c.HTTPClient
	}
	return http.DefaultClient
}

func (c *Client) logger() *zap.SugaredLogger {
	if c.Logger != nil {
		return c.Logger
	}
	return logging.Nop()
}

// Fetch downloads pkg.DownloadURL to destPath, verifying size cap and
// checksum. Retries transient failures (5xx, connection resets) with
// exponential backoff; 4xx errors are fatal.
func (c *Client) Fetch(ctx context.Context, pkg metadata.JDK, destPath string, opts Options) (Result, error) {
	if !pkg.Complete() {
		return Result{}, fmt.Errorf("%w: metadata record has no download URL or checksum", kopierr.ErrNotInstalled)
	}
	opts = opts.withDefaults()
	if opts.ExpectedHash == "" {
		opts.ExpectedHash = pkg.Checksum
	}

	var result Result
	attempt := 0
	operation := func() error {
		attempt++
		r, err := c.attempt(ctx, pkg, destPath, opts)
		if err != nil {
			if kopierr.Transient(err) {
				c.logger().Debugw("transient download failure, retrying", "attempt", attempt, "err", err)
				return err
			}
			return backoff.Permanent(err)
		}
		result = r
		return nil
	}

	bo := backoff.WithMaxRetries(backoff.NewExponentialBackOff(), uint64(opts.MaxRetries))
	if err := backoff.Retry(operation, backoff.WithContext(bo, ctx)); err != nil {
		return Result{}, err
	}
	return result, nil
}

func (c *Client) attempt(ctx context.Context, pkg metadata.JDK, destPath string, opts Options) (Result, error) {
	ctx, cancel := context.WithTimeout(ctx, opts.Timeout)
	defer cancel()

	var startAt int64
	flags := os.O_CREATE | os.O_WRONLY
	if opts.Resume {
		if info, err := os.Stat(destPath); err == nil {
			startAt = info.Size()
			flags |= os.O_APPEND
		}
	} else {
		flags |= os.O_TRUNC
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pkg.DownloadURL, nil)
	if err != nil {
		return Result{}, err
	}
	req.Header.Set("User-Agent", useragent.Download())
	if startAt > 0 {
		req.Header.Set("Range", fmt.Sprintf("bytes=%d-", startAt))
	}

	resp, err := c.httpClient().Do(req)
	if err != nil {
		return Result{}, fmt.Errorf("%w: %v", kopierr.ErrNetworkUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return Result{}, &kopierr.HTTPStatus{Code: resp.StatusCode, URL: pkg.DownloadURL}
	}
	if resp.ContentLength > 0 && startAt+resp.ContentLength > opts.MaxSize {
		return Result{}, kopierr.ErrDownloadTooLarge
	}

	out, err := os.OpenFile(destPath, flags, 0o644)
	if err != nil {
		return Result{}, err
	}
	defer out.Close()

	var hasher hash.Hash = sha256.New()
	if startAt > 0 {
		// Resume: rehash the already-written prefix so the final digest
		// covers the whole file, not just this attempt's bytes.
		existing, err := os.Open(destPath)
		if err != nil {
			return Result{}, err
		}
		if _, err := io.CopyN(hasher, existing, startAt); err != nil {
			existing.Close()
			return Result{}, err
		}
		existing.Close()
	}

	written := startAt
	buf := make([]byte, 32*1024)
	for {
		n, readErr := resp.Body.Read(buf)
		if n > 0 {
			written += int64(n)
			if written > opts.MaxSize {
				return Result{}, kopierr.ErrDownloadTooLarge
			}
			if _, werr := out.Write(buf[:n]); werr != nil {
				return Result{}, werr
			}
			hasher.Write(buf[:n])
		}
		if readErr != nil {
			if errors.Is(readErr, io.EOF) {
				break
			}
			return Result{}, fmt.Errorf("%w: %v", kopierr.ErrNetworkUnavailable, readErr)
		}
	}

	sum := fmt.Sprintf("%x", hasher.Sum(nil))
	if opts.ExpectedHash != "" && sum != opts.ExpectedHash {
		return Result{}, kopierr.ErrChecksumMismatch
	}

	return Result{Path: destPath, Size: written, SHA256: sum}, nil
}
