package archive

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"
)

func mirrorServer(t *testing.T) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.URL.Path == "/robots.txt":
			_, _ = w.Write([]byte("User-agent: *\nDisallow: /private/\n"))
		case strings.HasPrefix(r.URL.Path, "/private/"):
			t.Errorf("disallowed path fetched: %s", r.URL.Path)
			w.WriteHeader(http.StatusForbidden)
		default:
			_, _ = w.Write([]byte("attachment bytes for " + r.URL.Path))
		}
	}))
	t.Cleanup(server.Close)
	return server
}

func newTestMirrorer(t *testing.T, respectRobots bool) *Mirrorer {
	t.Helper()
	dir := t.TempDir()
	return DefaultMirrorer(dir, "archivectl-test", 5*time.Second, 1_000_000, 100, 10, respectRobots)
}

func TestMirrorer_WritesFile(t *testing.T) {
	server := mirrorServer(t)
	m := newTestMirrorer(t, true)

	outcome := m.Mirror(context.Background(), server.URL+"/media/attachment-1.jpg")
	if outcome.Err != nil {
		t.Fatalf("Mirror failed: %v", outcome.Err)
	}
	if outcome.Skipped {
		t.Fatalf("allowed URL skipped")
	}

	data, err := os.ReadFile(outcome.Path)
	if err != nil {
		t.Fatalf("read mirrored file: %v", err)
	}
	if !strings.Contains(string(data), "attachment-1.jpg") {
		t.Errorf("mirrored content = %q", data)
	}
	if !strings.Contains(outcome.Path, "attachment-1.jpg") {
		t.Errorf("local name lost original base name: %s", outcome.Path)
	}
}

func TestMirrorer_RobotsDisallowSkips(t *testing.T) {
	server := mirrorServer(t)
	m := newTestMirrorer(t, true)

	outcome := m.Mirror(context.Background(), server.URL+"/private/doc.pdf")
	if outcome.Err != nil {
		t.Fatalf("Mirror errored: %v", outcome.Err)
	}
	if !outcome.Skipped {
		t.Errorf("disallowed URL not skipped")
	}
	if outcome.Path != "" {
		t.Errorf("skipped URL produced a file: %s", outcome.Path)
	}
}

func TestMirrorer_MirrorAll(t *testing.T) {
	server := mirrorServer(t)
	m := newTestMirrorer(t, true)

	urls := []string{
		server.URL + "/media/a.jpg",
		server.URL + "/media/b.jpg",
		server.URL + "/private/c.pdf",
	}
	outcomes := m.MirrorAll(context.Background(), urls, 2)

	if len(outcomes) != 3 {
		t.Fatalf("got %d outcomes, want 3", len(outcomes))
	}

	var mirrored, skipped int
	for _, o := range outcomes {
		if o.Err != nil {
			t.Errorf("outcome error for %s: %v", o.URL, o.Err)
		}
		if o.Skipped {
			skipped++
		} else {
			mirrored++
		}
	}
	if mirrored != 2 || skipped != 1 {
		t.Errorf("mirrored=%d skipped=%d, want 2/1", mirrored, skipped)
	}
}

func TestLocalName(t *testing.T) {
	name := localName("https://example.org/media/report final.pdf")
	if strings.Contains(name, " ") {
		t.Errorf("name contains spaces: %q", name)
	}
	if !strings.HasSuffix(name, "-report-final.pdf") {
		t.Errorf("name = %q", name)
	}

	// Same URL is stable, different URLs differ
	if localName("https://a/x") != localName("https://a/x") {
		t.Errorf("localName not stable")
	}
	if localName("https://a/x") == localName("https://a/y") {
		t.Errorf("distinct URLs collide")
	}
}
