package source

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/FranksOps/trove/pkg/httpclient"
)

// DefaultCrawlIndexURL is the crawl-index collection queried for URL
// discovery.
const DefaultCrawlIndexURL = "http://index.commoncrawl.org/CC-MAIN-2018-22-index"

// CrawlIndex queries a common-crawl style index. The response is
// newline-delimited JSON, one record object per line.
type CrawlIndex struct {
	BaseURL string
	Client  *httpclient.Client
}

// NewCrawlIndex returns a CrawlIndex source against the public endpoint.
func NewCrawlIndex(client *httpclient.Client) *CrawlIndex {
	return &CrawlIndex{BaseURL: DefaultCrawlIndexURL, Client: client}
}

// Name implements Source.
func (s *CrawlIndex) Name() string { return "crawlindex" }

// Fetch implements Source. Lines that fail to decode, or that lack the
// timestamp and url string fields, are dropped without failing the call.
func (s *CrawlIndex) Fetch(ctx context.Context, domain string, includeSubdomains bool) ([]Record, error) {
	q := url.Values{}
	q.Set("url", urlPattern(domain, includeSubdomains))
	q.Set("output", "json")

	resp, err := s.Client.Get(ctx, s.BaseURL+"?"+q.Encode())
	if err != nil {
		return nil, fmt.Errorf("crawlindex: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("crawlindex: unexpected status %s", resp.Status)
	}

	var out []Record
	sc := bufio.NewScanner(resp.Body)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for sc.Scan() {
		var row struct {
			Timestamp *string `json:"timestamp"`
			URL       *string `json:"url"`
		}
		if err := json.Unmarshal(sc.Bytes(), &row); err != nil {
			continue
		}
		if row.Timestamp == nil || row.URL == nil {
			continue
		}
		out = append(out, Record{Date: *row.Timestamp, URL: *row.URL})
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("crawlindex: read: %w", err)
	}
	return out, nil
}
