package download

import (
	"context"
	"crypto/sha256"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/kopi-vm/kopi-sub003/internal/kopierr"
	"github.com/kopi-vm/kopi-sub003/internal/metadata"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFetchVerifiesChecksum(t *testing.T) {
	body := []byte("fake jdk archive contents")
	sum := fmt.Sprintf("%x", sha256.Sum256(body))

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write(body)
	}))
	defer srv.Close()

	pkg := metadata.JDK{DownloadURL: srv.URL, Checksum: sum}
	dest := filepath.Join(t.TempDir(), "archive.tar.gz")

	c := &Client{}
	result, err := c.Fetch(context.Background(), pkg, dest, Options{})
	require.NoError(t, err)
	assert.Equal(t, sum, result.SHA256)
	assert.Equal(t, int64(len(body)), result.Size)
}

func TestFetchChecksumMismatch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("unexpected bytes"))
	}))
	defer srv.Close()

	pkg := metadata.JDK{DownloadURL: srv.URL, Checksum: "0000"}
	dest := filepath.Join(t.TempDir(), "archive.tar.gz")

	c := &Client{}
	_, err := c.Fetch(context.Background(), pkg, dest, Options{})
	require.Error(t, err)
	assert.ErrorIs(t, err, kopierr.ErrChecksumMismatch)
}

func TestFetch404IsFatal(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	pkg := metadata.JDK{DownloadURL: srv.URL, Checksum: "irrelevant"}
	dest := filepath.Join(t.TempDir(), "archive.tar.gz")

	c := &Client{}
	_, err := c.Fetch(context.Background(), pkg, dest, Options{})
	require.Error(t, err)
	var status *kopierr.HTTPStatus
	require.ErrorAs(t, err, &status)
	assert.Equal(t, http.StatusNotFound, status.Code)
}

func TestFetchRejectsIncompleteRecord(t *testing.T) {
	c := &Client{}
	_, err := c.Fetch(context.Background(), metadata.JDK{}, filepath.Join(t.TempDir(), "x"), Options{})
	require.Error(t, err)
}
