package archive

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/syrianarchive/archivectl/internal/worker"
)

// Mirrorer downloads external URLs referenced by posts into a local
// directory, honoring robots.txt and per-domain rate limits.
type Mirrorer struct {
	fetcher *Fetcher
	robots  *RobotsGate // nil disables the robots check
	limiter *worker.Limiter
	dir     string
}

// NewMirrorer creates a mirrorer writing into dir.
func NewMirrorer(fetcher *Fetcher, robots *RobotsGate, limiter *worker.Limiter, dir string) *Mirrorer {
	return &Mirrorer{
		fetcher: fetcher,
		robots:  robots,
		limiter: limiter,
		dir:     dir,
	}
}

// Outcome reports what happened to one mirrored URL.
type Outcome struct {
	URL     string
	Path    string // local file path when mirrored
	Skipped bool   // true when robots.txt disallowed the fetch
	Err     error
}

// GetError implements worker.Result.
func (o Outcome) GetError() error { return o.Err }

// Mirror fetches one URL and writes it to the mirror directory.
func (m *Mirrorer) Mirror(ctx context.Context, rawURL string) Outcome {
	if m.robots != nil {
		allowed, crawlDelay, err := m.robots.Allowed(ctx, rawURL)
		if err != nil {
			return Outcome{URL: rawURL, Err: fmt.Errorf("robots check: %w", err)}
		}
		if !allowed {
			return Outcome{URL: rawURL, Skipped: true}
		}
		if crawlDelay > 0 {
			if err := m.limiter.WaitWithDelay(ctx, rawURL, crawlDelay); err != nil {
				return Outcome{URL: rawURL, Err: err}
			}
		} else if err := m.limiter.Wait(ctx, rawURL); err != nil {
			return Outcome{URL: rawURL, Err: err}
		}
	} else if err := m.limiter.Wait(ctx, rawURL); err != nil {
		return Outcome{URL: rawURL, Err: err}
	}

	result, err := m.fetcher.Fetch(ctx, rawURL)
	if err != nil {
		return Outcome{URL: rawURL, Err: err}
	}

	if err := os.MkdirAll(m.dir, 0755); err != nil {
		return Outcome{URL: rawURL, Err: fmt.Errorf("create mirror dir: %w", err)}
	}

	path := filepath.Join(m.dir, localName(rawURL))
	if err := os.WriteFile(path, result.Body, 0644); err != nil {
		return Outcome{URL: rawURL, Err: fmt.Errorf("write mirror file: %w", err)}
	}

	return Outcome{URL: rawURL, Path: path}
}

// mirrorJob adapts one URL to the worker pool.
type mirrorJob struct {
	url string
	m   *Mirrorer
	ctx context.Context
}

// Execute implements worker.Job.
func (j *mirrorJob) Execute(_ context.Context) worker.Result {
	return j.m.Mirror(j.ctx, j.url)
}

// MirrorAll mirrors the given URLs concurrently.
func (m *Mirrorer) MirrorAll(ctx context.Context, urls []string, workers int) []Outcome {
	pool := worker.NewPool(workers)
	pool.Start()

	for _, u := range urls {
		pool.Submit(&mirrorJob{url: u, m: m, ctx: ctx})
	}

	results := pool.Wait()
	outcomes := make([]Outcome, 0, len(results))
	for _, r := range results {
		if o, ok := r.(Outcome); ok {
			outcomes = append(outcomes, o)
		}
	}
	return outcomes
}

// localName builds a collision-safe file name from a URL: the last path
// segment, sanitized, plus a short content-independent hash.
func localName(rawURL string) string {
	hash := sha256.Sum256([]byte(rawURL))
	suffix := hex.EncodeToString(hash[:])[:12]

	parsed, err := url.Parse(rawURL)
	if err != nil {
		return suffix
	}

	base := filepath.Base(strings.TrimRight(parsed.Path, "/"))
	if base == "." || base == "/" || base == "" {
		base = parsed.Host
	}

	base = strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			return r
		case r == '.' || r == '-' || r == '_':
			return r
		default:
			return '-'
		}
	}, base)

	if len(base) > 80 {
		base = base[:80]
	}
	return suffix + "-" + base
}

// DefaultMirrorer wires a mirrorer from plain settings.
func DefaultMirrorer(dir, userAgent string, timeout time.Duration, maxBytes int64, rps float64, burst int, respectRobots bool) *Mirrorer {
	var robots *RobotsGate
	if respectRobots {
		robots = NewRobotsGate(userAgent, timeout)
	}
	return NewMirrorer(
		NewFetcher(timeout, userAgent, maxBytes),
		robots,
		worker.NewLimiter(rps, burst),
		dir,
	)
}
