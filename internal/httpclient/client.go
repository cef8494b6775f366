// Package httpclient provides the downloading HTTP client used for theme
// imports:
//
//   - http/https scheme enforcement
//   - redirect following with a hard cap
//   - transparent response decompression (gzip, deflate, brotli)
//   - response size limiting and context cancellation
package httpclient

import (
	"compress/flate"
	"compress/gzip"
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/andybalholm/brotli"

	"github.com/tingeapp/tinge/internal/models"
	"github.com/tingeapp/tinge/internal/version"
)

// Defaults for client construction.
const (
	DefaultTimeout      = 60 * time.Second
	DefaultMaxRedirects = 10
	DefaultMaxBodySize  = 64 * 1024 * 1024 // 64MB

	acceptEncodingHeader = "gzip, deflate, br"

	encodingGzip    = "gzip"
	encodingDeflate = "deflate"
	encodingBrotli  = "br"
)

// Config holds client configuration.
type Config struct {
	// Timeout bounds the whole request, connect through body read.
	Timeout time.Duration

	// MaxRedirects caps redirect following.
	MaxRedirects int

	// MaxBodySize caps the decoded response size in bytes.
	MaxBodySize int64
}

// DefaultConfig returns the default client configuration.
func DefaultConfig() Config {
	return Config{
		Timeout:      DefaultTimeout,
		MaxRedirects: DefaultMaxRedirects,
		MaxBodySize:  DefaultMaxBodySize,
	}
}

// Client performs downloads.
type Client struct {
	http   *http.Client
	cfg    Config
	logger *slog.Logger
}

// New creates a client from config, filling zero values with defaults.
func New(cfg Config) *Client {
	def := DefaultConfig()
	if cfg.Timeout <= 0 {
		cfg.Timeout = def.Timeout
	}
	if cfg.MaxRedirects <= 0 {
		cfg.MaxRedirects = def.MaxRedirects
	}
	if cfg.MaxBodySize <= 0 {
		cfg.MaxBodySize = def.MaxBodySize
	}

	maxRedirects := cfg.MaxRedirects
	return &Client{
		cfg: cfg,
		http: &http.Client{
			Timeout: cfg.Timeout,
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				if len(via) >= maxRedirects {
					return fmt.Errorf("stopped after %d redirects", maxRedirects)
				}
				return nil
			},
			Transport: &http.Transport{
				// We negotiate and decode compression ourselves.
				DisableCompression: true,
			},
		},
		logger: slog.Default(),
	}
}

// WithLogger sets a custom logger.
func (c *Client) WithLogger(logger *slog.Logger) *Client {
	c.logger = logger
	return c
}

// ValidateURL checks that rawURL is an absolute http or https URL.
func ValidateURL(rawURL string) error {
	u, err := url.Parse(rawURL)
	if err != nil {
		return fmt.Errorf("%w: %q", models.ErrUnsupportedScheme, rawURL)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("%w: %q", models.ErrUnsupportedScheme, u.Scheme)
	}
	return nil
}

// Download fetches rawURL into w and returns the number of decoded bytes
// written. The response body is decompressed according to Content-Encoding.
func (c *Client) Download(ctx context.Context, rawURL string, w io.Writer) (int64, error) {
	if err := ValidateURL(rawURL); err != nil {
		return 0, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return 0, fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("Accept-Encoding", acceptEncodingHeader)
	req.Header.Set("User-Agent", "tinge/"+version.Short())

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		return 0, fmt.Errorf("fetching %s: %w", rawURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("fetching %s: unexpected status %s", rawURL, resp.Status)
	}

	body, err := c.decodeBody(resp)
	if err != nil {
		return 0, err
	}
	defer body.Close()

	limited := io.LimitReader(body, c.cfg.MaxBodySize+1)
	n, err := io.Copy(w, limited)
	if err != nil {
		return n, fmt.Errorf("reading response body: %w", err)
	}
	if n > c.cfg.MaxBodySize {
		return n, fmt.Errorf("response exceeds %d byte limit", c.cfg.MaxBodySize)
	}

	c.logger.Debug("download complete",
		slog.String("url", rawURL),
		slog.Int64("bytes", n),
		slog.Duration("duration", time.Since(start)))
	return n, nil
}

// decodeBody wraps the response body according to its Content-Encoding.
func (c *Client) decodeBody(resp *http.Response) (io.ReadCloser, error) {
	encoding := strings.ToLower(strings.TrimSpace(resp.Header.Get("Content-Encoding")))
	switch encoding {
	case "", "identity":
		return resp.Body, nil
	case encodingGzip:
		reader, err := gzip.NewReader(resp.Body)
		if err != nil {
			return nil, fmt.Errorf("creating gzip reader: %w", err)
		}
		return reader, nil
	case encodingDeflate:
		return flate.NewReader(resp.Body), nil
	case encodingBrotli:
		return io.NopCloser(brotli.NewReader(resp.Body)), nil
	default:
		c.logger.Warn("unknown content encoding, returning raw body",
			slog.String("encoding", encoding))
		return resp.Body, nil
	}
}
