// Package aggregate fans a single domain out to every registered source,
// joins all of them, and merges whatever came back into one deduplicated
// result set.
package aggregate

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/FranksOps/trove/internal/metrics"
	"github.com/FranksOps/trove/internal/source"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// ResultSet maps each discovered URL to its first-seen date in the
// source's native encoding. It is a deduplicating index, not a sequence;
// an empty date means no source knew one.
type ResultSet map[string]string

// URLs returns the distinct discovered URLs in map order.
func (rs ResultSet) URLs() []string {
	urls := make([]string, 0, len(rs))
	for u := range rs {
		urls = append(urls, u)
	}
	return urls
}

// Aggregator runs a fixed set of sources. Instances are safe to reuse
// across domains; all per-domain state lives in the ResultSet.
type Aggregator struct {
	sources []source.Source
	logger  *slog.Logger
}

// New creates an Aggregator over the given sources.
func New(sources []source.Source, logger *slog.Logger) *Aggregator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Aggregator{sources: sources, logger: logger}
}

// Aggregate queries every source for the domain concurrently and merges
// the results by URL. All sources are waited for; a failing source only
// shrinks the set, so Aggregate itself never fails. When several sources
// report the same URL, whichever insert lands last keeps its date — no
// precedence among sources is defined.
func (a *Aggregator) Aggregate(ctx context.Context, domain string, includeSubdomains bool) ResultSet {
	results := make(ResultSet)
	var mu sync.Mutex

	lg := a.logger.With(
		slog.String("domain", domain),
		slog.String("run_id", uuid.New().String()),
	)

	var g errgroup.Group
	for _, src := range a.sources {
		src := src
		g.Go(func() error {
			start := time.Now()
			recs, err := src.Fetch(ctx, domain, includeSubdomains)
			metrics.RecordFetch(src.Name(), len(recs), time.Since(start), err)
			if err != nil {
				lg.Warn("source fetch failed",
					slog.String("source", src.Name()),
					slog.String("err", err.Error()),
				)
				return nil // the remaining sources keep going
			}

			mu.Lock()
			for _, r := range recs {
				if r.URL == "" {
					continue
				}
				results[r.URL] = r.Date
			}
			mu.Unlock()

			lg.Debug("source fetch done",
				slog.String("source", src.Name()),
				slog.Int("records", len(recs)),
				slog.Duration("elapsed", time.Since(start)),
			)
			return nil
		})
	}
	_ = g.Wait() // tasks never return errors; Wait is purely a join

	return results
}
