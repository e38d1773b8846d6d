package fingerprint

import (
	"crypto/tls"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
)

func TestProfile_GoTransport(t *testing.T) {
	ts := httptest.NewTLSServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer ts.Close()

	rt, err := ProfileGo.Transport(nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	tr, ok := rt.(*http.Transport)
	if !ok {
		t.Fatalf("expected *http.Transport, got %T", rt)
	}

	// httptest uses a self-signed cert
	tr.TLSClientConfig = &tls.Config{InsecureSkipVerify: true}

	resp, err := (&http.Client{Transport: tr}).Get(ts.URL)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Errorf("expected 200 OK, got %d", resp.StatusCode)
	}
}

func TestProfile_ProxyFuncInstalled(t *testing.T) {
	want, _ := url.Parse("http://proxy.local:3128")
	proxyFunc := func(*http.Request) (*url.URL, error) { return want, nil }

	for _, p := range []Profile{ProfileGo, ProfileChrome, ProfileFirefox, ProfileRandom} {
		rt, err := p.Transport(proxyFunc)
		if err != nil {
			t.Fatalf("%s: unexpected error: %v", p, err)
		}
		tr, ok := rt.(*http.Transport)
		if !ok {
			t.Fatalf("%s: expected *http.Transport, got %T", p, rt)
		}
		req, _ := http.NewRequest(http.MethodGet, "http://web.archive.org/", nil)
		got, err := tr.Proxy(req)
		if err != nil {
			t.Fatalf("%s: proxy func failed: %v", p, err)
		}
		if got != want {
			t.Errorf("%s: expected configured proxy, got %v", p, got)
		}
	}
}

func TestProfile_Unknown(t *testing.T) {
	_, err := Profile("netscape").Transport(nil)
	if err == nil {
		t.Fatal("expected error for unknown profile, got nil")
	}
}
