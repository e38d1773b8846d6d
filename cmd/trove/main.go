// Command trove discovers historical URLs for one or more domains by
// querying independent third-party archives and merging their answers.
//
// Domains come from positional arguments or, when none are given, from
// newline-delimited standard input. One line per discovered URL goes to
// standard output; diagnostics go to standard error.
package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/FranksOps/trove/internal/aggregate"
	"github.com/FranksOps/trove/internal/config"
	"github.com/FranksOps/trove/internal/emit"
	"github.com/FranksOps/trove/internal/fingerprint"
	"github.com/FranksOps/trove/internal/metrics"
	"github.com/FranksOps/trove/internal/source"
	"github.com/FranksOps/trove/internal/versions"
	"github.com/FranksOps/trove/pkg/httpclient"
	"github.com/FranksOps/trove/pkg/proxy"
	"github.com/FranksOps/trove/pkg/useragent"
)

func main() {
	dates := flag.Bool("dates", false, "prefix each URL with its first-seen timestamp")
	noSubs := flag.Bool("no-subs", false, "query the exact domain only, without subdomains")
	getVersions := flag.Bool("get-versions", false, "list archived versions of the input URLs")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	if err := run(context.Background(), logger, *dates, *noSubs, *getVersions); err != nil {
		logger.Error("trove failed", slog.String("err", err.Error()))
		os.Exit(1)
	}
}

func run(ctx context.Context, logger *slog.Logger, dates, noSubs, getVersions bool) error {
	domains, err := readDomains(flag.Args(), os.Stdin)
	if err != nil {
		return err
	}

	if getVersions {
		for _, d := range domains {
			vs, err := versions.List(ctx, d)
			if err != nil {
				logger.Warn("get-versions failed", slog.String("target", d), slog.String("err", err.Error()))
				continue
			}
			for _, v := range vs {
				fmt.Println(v)
			}
		}
		return nil
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	if cfg.MetricsAddr != "" {
		srv := metrics.Start(cfg.MetricsAddr)
		defer srv.Stop(ctx)
	}

	client, err := newClient(cfg)
	if err != nil {
		return err
	}

	sources := []source.Source{
		source.NewWayback(client),
		source.NewCrawlIndex(client),
		source.NewThreatIntel(client, cfg.VTAPIKey),
	}

	agg := aggregate.New(sources, logger)
	emitter := emit.New(os.Stdout, logger)

	mode := emit.URLs
	if dates {
		mode = emit.Dated
	}

	// Domains run one after another: each one's fan-out completes and is
	// emitted before the next begins.
	for _, domain := range domains {
		results := agg.Aggregate(ctx, domain, !noSubs)
		if err := emitter.Emit(results, mode); err != nil {
			return err
		}
	}
	return nil
}

// newClient assembles the shared HTTP client from configuration: TLS
// fingerprint, optional proxy rotation, UA rotation, timeout.
func newClient(cfg *config.Config) (*httpclient.Client, error) {
	pool := proxy.New()
	if cfg.ProxyFile != "" {
		if err := pool.LoadFile(cfg.ProxyFile); err != nil {
			return nil, err
		}
	}
	if len(cfg.Proxies) > 0 {
		if err := pool.Add(cfg.Proxies...); err != nil {
			return nil, err
		}
	}

	transport, err := fingerprint.Profile(cfg.TLSProfile).Transport(pool.ProxyFunc())
	if err != nil {
		return nil, err
	}

	return httpclient.New(httpclient.Config{
		Timeout:      cfg.HTTPTimeout,
		MaxRedirects: cfg.MaxRedirects,
		Transport:    transport,
		UserAgents:   useragent.New(cfg.UserAgents...),
	}), nil
}

// readDomains returns the positional arguments, or the newline-delimited
// domains from in when no arguments were given. Blank lines are skipped.
func readDomains(args []string, in io.Reader) ([]string, error) {
	if len(args) > 0 {
		return args, nil
	}

	var domains []string
	sc := bufio.NewScanner(in)
	for sc.Scan() {
		d := strings.TrimSpace(sc.Text())
		if d == "" {
			continue
		}
		domains = append(domains, d)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read domains: %w", err)
	}
	return domains, nil
}
