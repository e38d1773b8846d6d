// Package source defines the uniform fetch contract over the third-party
// URL archives trove queries: the web archive CDX index, a crawl-index
// service, and a threat-intelligence feed. Each source speaks its own wire
// format and reconciles it into plain Records.
package source

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/FranksOps/trove/pkg/httpclient"
)

// Record is one (first-seen date, URL) observation from a source. Date is
// kept in the source's native encoding; an empty date means unknown.
// Normalization happens at emission time, not here.
type Record struct {
	Date string
	URL  string
}

// Source is one archive or intelligence endpoint. Implementations are
// stateless apart from optional credentials and are shared read-only
// across concurrent fetches.
//
// An empty record list with a nil error is a valid outcome (no matches,
// or a credential-gated source without its credential). Errors cover
// transport failures and response envelopes that cannot be decoded at
// all; a single bad record inside a decodable response is dropped, not
// fatal.
type Source interface {
	Name() string
	Fetch(ctx context.Context, domain string, includeSubdomains bool) ([]Record, error)
}

// urlPattern builds the index query filter for a domain. With subdomains
// the wildcard must precede the domain (*.domain/*); without, the exact
// domain's paths only (domain/*).
func urlPattern(domain string, includeSubdomains bool) string {
	if includeSubdomains {
		return "*." + domain + "/*"
	}
	return domain + "/*"
}

// fetchBody performs a GET and returns the whole response body, treating
// any non-200 status as a source failure.
func fetchBody(ctx context.Context, client *httpclient.Client, rawURL string) ([]byte, error) {
	resp, err := client.Get(ctx, rawURL)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %s", resp.Status)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}
	return body, nil
}
