package archive

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func TestFetcher_Fetch(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if ua := r.Header.Get("User-Agent"); ua != "archivectl-test" {
			t.Errorf("user-agent = %q", ua)
		}
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte("<html><body>evidence</body></html>"))
	}))
	defer server.Close()

	fetcher := NewFetcher(5*time.Second, "archivectl-test", 1_000_000)
	result, err := fetcher.Fetch(context.Background(), server.URL)
	if err != nil {
		t.Fatalf("Fetch failed: %v", err)
	}

	if !strings.Contains(string(result.Body), "evidence") {
		t.Errorf("body = %q", result.Body)
	}
	if result.ContentType != "text/html" {
		t.Errorf("content type = %q", result.ContentType)
	}
}

func TestFetcher_SizeCap(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(strings.Repeat("x", 1000)))
	}))
	defer server.Close()

	fetcher := NewFetcher(5*time.Second, "archivectl-test", 100)
	result, err := fetcher.Fetch(context.Background(), server.URL)
	if err != nil {
		t.Fatalf("Fetch failed: %v", err)
	}
	if len(result.Body) != 100 {
		t.Errorf("body length = %d, want capped at 100", len(result.Body))
	}
}

func TestFetcher_BadStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	fetcher := NewFetcher(5*time.Second, "archivectl-test", 1000)
	if _, err := fetcher.Fetch(context.Background(), server.URL); err == nil {
		t.Errorf("expected error for 404")
	}
}
