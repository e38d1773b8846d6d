// Package metrics instruments source fetches and date normalization with
// Prometheus collectors, plus an opt-in /metrics server.
package metrics

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	SourceFetchesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "trove_source_fetches_total",
			Help: "Total number of source fetches, by source and outcome",
		},
		[]string{"source", "outcome"},
	)

	SourceRecordsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "trove_source_records_total",
			Help: "Total number of records returned by each source",
		},
		[]string{"source"},
	)

	SourceFetchDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "trove_source_fetch_duration_seconds",
			Help:    "Duration of source fetches in seconds",
			Buckets: []float64{0.1, 0.5, 1, 2, 5, 10, 30},
		},
		[]string{"source"},
	)

	DateParseFailures = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "trove_date_parse_failures_total",
			Help: "Records whose first-seen date could not be normalized",
		},
	)
)

// RecordFetch updates the fetch collectors for one source call.
func RecordFetch(src string, records int, dur time.Duration, err error) {
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	SourceFetchesTotal.WithLabelValues(src, outcome).Inc()
	SourceRecordsTotal.WithLabelValues(src).Add(float64(records))
	SourceFetchDuration.WithLabelValues(src).Observe(dur.Seconds())
}

// Server encapsulates an HTTP server for Prometheus metrics.
type Server struct {
	srv *http.Server
}

// Start begins listening on addr and exposes /metrics.
func Start(addr string) *Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())

	srv := &http.Server{
		Addr:    addr,
		Handler: mux,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			fmt.Printf("metrics server failed: %v\n", err)
		}
	}()

	return &Server{srv: srv}
}

// Stop gracefully shuts down the metrics server.
func (s *Server) Stop(ctx context.Context) error {
	if s.srv == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	return s.srv.Shutdown(ctx)
}
