package source

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"

	"github.com/FranksOps/trove/pkg/httpclient"
)

// DefaultWaybackURL is the public CDX search endpoint of the web archive.
const DefaultWaybackURL = "http://web.archive.org/cdx/search/cdx"

// Wayback queries the web archive's CDX index. The response is a single
// JSON array of rows; the first row is a header naming the columns and
// subsequent rows are positional: [urlkey, timestamp, original, ...].
type Wayback struct {
	BaseURL string
	Client  *httpclient.Client
}

// NewWayback returns a Wayback source against the public endpoint.
func NewWayback(client *httpclient.Client) *Wayback {
	return &Wayback{BaseURL: DefaultWaybackURL, Client: client}
}

// Name implements Source.
func (s *Wayback) Name() string { return "wayback" }

// Fetch implements Source.
func (s *Wayback) Fetch(ctx context.Context, domain string, includeSubdomains bool) ([]Record, error) {
	q := url.Values{}
	q.Set("url", urlPattern(domain, includeSubdomains))
	q.Set("output", "json")
	q.Set("collapse", "urlkey")

	body, err := fetchBody(ctx, s.Client, s.BaseURL+"?"+q.Encode())
	if err != nil {
		return nil, fmt.Errorf("wayback: %w", err)
	}

	var rows [][]string
	if err := json.Unmarshal(body, &rows); err != nil {
		return nil, fmt.Errorf("wayback: decode: %w", err)
	}

	out := make([]Record, 0, len(rows))
	for i, row := range rows {
		if i == 0 {
			// header row, always present
			continue
		}
		if len(row) < 3 {
			continue
		}
		out = append(out, Record{Date: row[1], URL: row[2]})
	}
	return out, nil
}
