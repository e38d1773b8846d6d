// Package emit turns a merged result set into output lines, normalizing
// archive timestamps on the way out.
package emit

import (
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/FranksOps/trove/internal/aggregate"
	"github.com/FranksOps/trove/internal/metrics"
)

// Mode selects the output shape.
type Mode int

const (
	// URLs emits each discovered URL on its own line.
	URLs Mode = iota
	// Dated prefixes each URL with its normalized first-seen timestamp.
	// URLs whose date fails to parse are reported and skipped.
	Dated
)

const (
	// archiveTimeLayout is the 14-digit fixed-width stamp the archive
	// indexes use; it carries no zone and is defined to be UTC.
	archiveTimeLayout = "20060102150405"
	// outputTimeLayout renders RFC 3339 with an explicit +00:00 offset.
	// The value is always UTC, so the literal suffix is exact; "Z" would
	// change the output format downstream consumers already parse.
	outputTimeLayout = "2006-01-02T15:04:05+00:00"
)

// Emitter writes result sets to Out. Date-parse failures go to Logger,
// never to Out, and never abort the run.
type Emitter struct {
	Out    io.Writer
	Logger *slog.Logger
}

// New creates an Emitter.
func New(out io.Writer, logger *slog.Logger) *Emitter {
	if logger == nil {
		logger = slog.Default()
	}
	return &Emitter{Out: out, Logger: logger}
}

// Emit writes one line per distinct URL in results. Ordering follows map
// iteration and is unspecified. The returned error covers only writer
// failures.
func (e *Emitter) Emit(results aggregate.ResultSet, mode Mode) error {
	for u, date := range results {
		if mode == Dated {
			ts, err := time.ParseInLocation(archiveTimeLayout, date, time.UTC)
			if err != nil {
				metrics.DateParseFailures.Inc()
				e.Logger.Warn("failed to parse date",
					slog.String("date", date),
					slog.String("url", u),
				)
				continue
			}
			if _, err := fmt.Fprintf(e.Out, "%s %s\n", ts.Format(outputTimeLayout), u); err != nil {
				return fmt.Errorf("emit: %w", err)
			}
			continue
		}
		if _, err := fmt.Fprintln(e.Out, u); err != nil {
			return fmt.Errorf("emit: %w", err)
		}
	}
	return nil
}
