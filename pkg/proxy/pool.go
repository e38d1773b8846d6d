// Package proxy manages an optional list of outbound HTTP proxies,
// rotated per request through http.Transport's Proxy hook.
package proxy

import (
	"bufio"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"strings"
	"sync"
)

// Pool rotates proxies round-robin. An empty pool defers to the
// environment (HTTP_PROXY and friends).
type Pool struct {
	mu      sync.Mutex
	proxies []*url.URL
	next    int
}

// New returns an empty pool.
func New() *Pool {
	return &Pool{}
}

// Add parses raw proxy URLs and appends them to the pool. Entries without
// a scheme default to http.
func (p *Pool) Add(rawURLs ...string) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	for _, raw := range rawURLs {
		if !strings.Contains(raw, "://") {
			raw = "http://" + raw
		}
		u, err := url.Parse(raw)
		if err != nil {
			return fmt.Errorf("proxy: parse %q: %w", raw, err)
		}
		p.proxies = append(p.proxies, u)
	}
	return nil
}

// LoadFile reads proxies from a file, one URL per line. Blank lines and
// lines starting with '#' are skipped.
func (p *Pool) LoadFile(path string) error {
	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("proxy: %w", err)
	}
	defer file.Close()

	var urls []string
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		urls = append(urls, line)
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("proxy: %w", err)
	}
	return p.Add(urls...)
}

// Len reports the number of proxies in the pool.
func (p *Pool) Len() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.proxies)
}

// Next returns the next proxy in round-robin order, or nil when the pool
// is empty.
func (p *Pool) Next() *url.URL {
	p.mu.Lock()
	defer p.mu.Unlock()

	if len(p.proxies) == 0 {
		return nil
	}
	u := p.proxies[p.next]
	p.next = (p.next + 1) % len(p.proxies)
	return u
}

// ProxyFunc adapts the pool to http.Transport.Proxy. When the pool is
// empty it falls back to the process environment.
func (p *Pool) ProxyFunc() func(*http.Request) (*url.URL, error) {
	return func(req *http.Request) (*url.URL, error) {
		if u := p.Next(); u != nil {
			return u, nil
		}
		return http.ProxyFromEnvironment(req)
	}
}
