// Package httpclient wraps net/http with the defaults every archive query
// in this tool shares: a hard timeout, a redirect cap, a rotating
// User-Agent, and an optional custom transport.
package httpclient

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/FranksOps/trove/pkg/useragent"
)

const acceptHeader = "application/json, text/plain;q=0.9, */*;q=0.8"

// Config defines the setup for the HTTP Client.
type Config struct {
	Timeout time.Duration
	// MaxRedirects caps redirect chains. Zero means the default of 10;
	// a negative value disables following redirects entirely.
	MaxRedirects int
	// Transport overrides the underlying RoundTripper, e.g. for proxies
	// or TLS fingerprinting.
	Transport http.RoundTripper
	// UserAgents supplies the rotating User-Agent header. Defaults to
	// useragent.Defaults when nil.
	UserAgents *useragent.Pool
}

// Client issues GET requests against archive endpoints. A single Client is
// shared across all concurrent source fetches; it holds no per-request state.
type Client struct {
	http *http.Client
	uas  *useragent.Pool
}

// New creates a Client from the configuration.
func New(cfg Config) *Client {
	if cfg.Timeout == 0 {
		cfg.Timeout = 30 * time.Second
	}
	if cfg.UserAgents == nil {
		cfg.UserAgents = useragent.New()
	}

	maxRedirects := cfg.MaxRedirects
	if maxRedirects == 0 {
		maxRedirects = 10
	}

	c := &http.Client{
		Timeout: cfg.Timeout,
	}
	if maxRedirects < 0 {
		c.CheckRedirect = func(req *http.Request, via []*http.Request) error {
			return http.ErrUseLastResponse
		}
	} else {
		c.CheckRedirect = func(req *http.Request, via []*http.Request) error {
			if len(via) >= maxRedirects {
				return fmt.Errorf("httpclient: stopped after %d redirects", maxRedirects)
			}
			return nil
		}
	}
	if cfg.Transport != nil {
		c.Transport = cfg.Transport
	}

	return &Client{http: c, uas: cfg.UserAgents}
}

// Get issues a GET request for rawURL. The caller owns the response body.
func (c *Client) Get(ctx context.Context, rawURL string) (*http.Response, error) {
	if ctx == nil {
		return nil, errors.New("httpclient: nil context")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("httpclient: %w", err)
	}
	req.Header.Set("User-Agent", c.uas.Next())
	req.Header.Set("Accept", acceptHeader)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("httpclient: %w", err)
	}
	return resp, nil
}
