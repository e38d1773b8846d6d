package aggregate

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/FranksOps/trove/internal/source"
)

type fakeSource struct {
	name string
	recs []source.Record
	err  error
}

func (f *fakeSource) Name() string { return f.name }

func (f *fakeSource) Fetch(ctx context.Context, domain string, includeSubdomains bool) ([]source.Record, error) {
	return f.recs, f.err
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestAggregate_AllSourcesUnreachable(t *testing.T) {
	sources := []source.Source{
		&fakeSource{name: "a", err: errors.New("connection refused")},
		&fakeSource{name: "b", err: errors.New("tls handshake failed")},
		&fakeSource{name: "c", err: errors.New("decode: invalid character")},
	}

	rs := New(sources, discardLogger()).Aggregate(context.Background(), "example.com", true)
	if len(rs) != 0 {
		t.Errorf("expected empty result set, got %d entries", len(rs))
	}
}

func TestAggregate_MixedSuccess(t *testing.T) {
	sources := []source.Source{
		&fakeSource{name: "a", recs: []source.Record{{Date: "20200101000000", URL: "http://x/1"}}},
		&fakeSource{name: "b", err: errors.New("source unavailable")},
		&fakeSource{name: "c", recs: []source.Record{{Date: "", URL: "http://x/2"}}},
	}

	rs := New(sources, discardLogger()).Aggregate(context.Background(), "x", true)

	if len(rs) != 2 {
		t.Fatalf("expected exactly 2 entries, got %d", len(rs))
	}
	if date, ok := rs["http://x/1"]; !ok || date != "20200101000000" {
		t.Errorf("expected http://x/1 -> 20200101000000, got %q (present=%v)", date, ok)
	}
	if date, ok := rs["http://x/2"]; !ok || date != "" {
		t.Errorf("expected http://x/2 with empty date, got %q (present=%v)", date, ok)
	}
}

func TestAggregate_Idempotent(t *testing.T) {
	recs := []source.Record{
		{Date: "20200101000000", URL: "http://x/1"},
		{Date: "20200101000000", URL: "http://x/2"},
	}
	once := New([]source.Source{
		&fakeSource{name: "a", recs: recs},
	}, discardLogger()).Aggregate(context.Background(), "x", true)

	twice := New([]source.Source{
		&fakeSource{name: "a", recs: recs},
		&fakeSource{name: "a-retry", recs: recs},
	}, discardLogger()).Aggregate(context.Background(), "x", true)

	if len(once) != len(twice) {
		t.Fatalf("expected identical key sets, got %d vs %d", len(once), len(twice))
	}
	for u := range once {
		if _, ok := twice[u]; !ok {
			t.Errorf("URL %s missing from doubled merge", u)
		}
	}
}

func TestAggregate_ConflictingDates(t *testing.T) {
	sources := []source.Source{
		&fakeSource{name: "a", recs: []source.Record{{Date: "20180101000000", URL: "http://x/same"}}},
		&fakeSource{name: "b", recs: []source.Record{{Date: "20190101000000", URL: "http://x/same"}}},
	}

	rs := New(sources, discardLogger()).Aggregate(context.Background(), "x", true)

	// No precedence among sources: assert membership, not a winner.
	date, ok := rs["http://x/same"]
	if !ok {
		t.Fatal("expected http://x/same in result set")
	}
	if date != "20180101000000" && date != "20190101000000" {
		t.Errorf("expected one of the reported dates, got %q", date)
	}
}

func TestAggregate_EmptyURLRejected(t *testing.T) {
	sources := []source.Source{
		&fakeSource{name: "a", recs: []source.Record{
			{Date: "20200101000000", URL: ""},
			{Date: "20200101000000", URL: "http://x/ok"},
		}},
	}

	rs := New(sources, discardLogger()).Aggregate(context.Background(), "x", true)

	if len(rs) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(rs))
	}
	if _, ok := rs["http://x/ok"]; !ok {
		t.Error("expected http://x/ok in result set")
	}
}

func TestResultSet_URLs(t *testing.T) {
	rs := ResultSet{"http://x/1": "", "http://x/2": "20200101000000"}
	urls := rs.URLs()
	if len(urls) != 2 {
		t.Fatalf("expected 2 URLs, got %d", len(urls))
	}
}
