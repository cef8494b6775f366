package httpclient

import (
	"bytes"
	"compress/gzip"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/andybalholm/brotli"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tingeapp/tinge/internal/models"
)

func TestValidateURL(t *testing.T) {
	tests := []struct {
		name    string
		url     string
		wantErr bool
	}{
		{name: "http allowed", url: "http://example.com/theme.mactheme"},
		{name: "https allowed", url: "https://example.com/theme.mactheme"},
		{name: "file rejected", url: "file:///etc/passwd", wantErr: true},
		{name: "ftp rejected", url: "ftp://example.com/theme", wantErr: true},
		{name: "relative rejected", url: "/theme.mactheme", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateURL(tt.url)
			if tt.wantErr {
				assert.ErrorIs(t, err, models.ErrUnsupportedScheme)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestDownload_Plain(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte("payload"))
	}))
	defer srv.Close()

	var buf bytes.Buffer
	n, err := New(Config{}).Download(context.Background(), srv.URL, &buf)
	require.NoError(t, err)
	assert.Equal(t, int64(7), n)
	assert.Equal(t, "payload", buf.String())
}

func TestDownload_GzipEncoded(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Contains(t, r.Header.Get("Accept-Encoding"), "br")
		w.Header().Set("Content-Encoding", "gzip")
		gz := gzip.NewWriter(w)
		gz.Write([]byte("compressed payload"))
		gz.Close()
	}))
	defer srv.Close()

	var buf bytes.Buffer
	_, err := New(Config{}).Download(context.Background(), srv.URL, &buf)
	require.NoError(t, err)
	assert.Equal(t, "compressed payload", buf.String())
}

func TestDownload_BrotliEncoded(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Encoding", "br")
		br := brotli.NewWriter(w)
		br.Write([]byte("brotli payload"))
		br.Close()
	}))
	defer srv.Close()

	var buf bytes.Buffer
	_, err := New(Config{}).Download(context.Background(), srv.URL, &buf)
	require.NoError(t, err)
	assert.Equal(t, "brotli payload", buf.String())
}

func TestDownload_FollowsRedirects(t *testing.T) {
	var target *httptest.Server
	target = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/hop" {
			http.Redirect(w, r, "/final", http.StatusFound)
			return
		}
		w.Write([]byte("landed"))
	}))
	defer target.Close()

	var buf bytes.Buffer
	_, err := New(Config{}).Download(context.Background(), target.URL+"/hop", &buf)
	require.NoError(t, err)
	assert.Equal(t, "landed", buf.String())
}

func TestDownload_ErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "gone", http.StatusNotFound)
	}))
	defer srv.Close()

	var buf bytes.Buffer
	_, err := New(Config{}).Download(context.Background(), srv.URL, &buf)
	assert.Error(t, err)
}

func TestDownload_SizeCap(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write(bytes.Repeat([]byte("x"), 2048))
	}))
	defer srv.Close()

	var buf bytes.Buffer
	_, err := New(Config{MaxBodySize: 1024}).Download(context.Background(), srv.URL, &buf)
	assert.ErrorContains(t, err, "limit")
}

func TestDownload_ContextCancelled(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var buf bytes.Buffer
	_, err := New(Config{}).Download(ctx, srv.URL, &buf)
	assert.Error(t, err)
}
