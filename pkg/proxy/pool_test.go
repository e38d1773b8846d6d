package proxy

import (
	"net/http"
	"os"
	"path/filepath"
	"testing"
)

func TestPool_AddAndRotate(t *testing.T) {
	p := New()
	if err := p.Add("http://one:8080", "two:9090"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if p.Len() != 2 {
		t.Fatalf("expected 2 proxies, got %d", p.Len())
	}

	first := p.Next()
	if first == nil || first.Host != "one:8080" {
		t.Errorf("expected one:8080, got %v", first)
	}

	second := p.Next()
	if second == nil || second.Host != "two:9090" {
		t.Errorf("expected two:9090, got %v", second)
	}
	if second.Scheme != "http" {
		t.Errorf("expected default http scheme, got %s", second.Scheme)
	}

	// Wraps around
	third := p.Next()
	if third == nil || third.Host != "one:8080" {
		t.Errorf("expected rotation back to one:8080, got %v", third)
	}
}

func TestPool_EmptyNext(t *testing.T) {
	p := New()
	if u := p.Next(); u != nil {
		t.Errorf("expected nil from empty pool, got %v", u)
	}
}

func TestPool_LoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "proxies.txt")
	content := "# comment\nhttp://a:3128\n\nb:3128\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write file: %v", err)
	}

	p := New()
	if err := p.LoadFile(path); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.Len() != 2 {
		t.Errorf("expected 2 proxies, got %d", p.Len())
	}
}

func TestPool_ProxyFunc(t *testing.T) {
	p := New()
	if err := p.Add("http://rotated:8080"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	req, _ := http.NewRequest(http.MethodGet, "http://web.archive.org/", nil)
	u, err := p.ProxyFunc()(req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if u == nil || u.Host != "rotated:8080" {
		t.Errorf("expected rotated:8080, got %v", u)
	}
}
