package model

import "time"

// Config is the full client configuration, assembled from flags, environment
// variables and the config file by the CLI layer.
type Config struct {
	API       APIConfig       `yaml:"api"`
	HTTP      HTTPConfig      `yaml:"http"`
	Cache     CacheConfig     `yaml:"cache"`
	RateLimit RateLimitConfig `yaml:"rate_limit"`
	Mirror    MirrorConfig    `yaml:"mirror"`
	LLM       LLMConfig       `yaml:"llm"`
	Output    OutputConfig    `yaml:"output"`
}

// APIConfig locates the archive API.
type APIConfig struct {
	BaseURL        string `yaml:"base_url"`         // e.g. https://archive.example.org/api
	PaymentBaseURL string `yaml:"payment_base_url"` // separate sub-API base path
	SessionPath    string `yaml:"session_path"`     // where tokens are persisted
}

// HTTPConfig tunes the underlying transport.
type HTTPConfig struct {
	Timeout     time.Duration `yaml:"timeout"`
	UserAgent   string        `yaml:"user_agent"`
	MaxBodyBytes int64        `yaml:"max_body_bytes"`
	InsecureTLS bool          `yaml:"insecure_tls"`
	HTTPProxy   string        `yaml:"http_proxy"`
	HTTPSProxy  string        `yaml:"https_proxy"`
}

// CacheConfig controls the layered GET response cache.
type CacheConfig struct {
	Enabled   bool          `yaml:"enabled"`
	Dir       string        `yaml:"dir"`
	MemoryTTL time.Duration `yaml:"memory_ttl"`
	DiskTTL   time.Duration `yaml:"disk_ttl"`
}

// RateLimitConfig controls the per-endpoint outgoing limiter. Calls issued
// before MinInterval has elapsed for the same endpoint are rejected locally,
// not queued.
type RateLimitConfig struct {
	Enabled     bool          `yaml:"enabled"`
	MinInterval time.Duration `yaml:"min_interval"`
	Burst       int           `yaml:"burst"`
}

// MirrorConfig controls attachment/source mirroring during export.
type MirrorConfig struct {
	Enabled           bool          `yaml:"enabled"`
	Workers           int           `yaml:"workers"`
	RequestsPerSecond float64       `yaml:"requests_per_second"`
	Burst             int           `yaml:"burst"`
	FetchTimeout      time.Duration `yaml:"fetch_timeout"`
	MaxBytes          int64         `yaml:"max_bytes"`
	RespectRobots     bool          `yaml:"respect_robots"`
}

// LLMConfig configures the optional draft summarizer.
type LLMConfig struct {
	Enabled   bool   `yaml:"enabled"`
	Model     string `yaml:"model"`
	APIKey    string `yaml:"-"` // env only, never written to the config file
	BaseURL   string `yaml:"base_url"`
	Timeout   int    `yaml:"timeout"` // seconds
	MaxTokens int    `yaml:"max_tokens"`
}

// OutputConfig controls CLI output behavior.
type OutputConfig struct {
	Verbose bool   `yaml:"verbose"`
	Format  string `yaml:"format"` // "table" or "json"
}

// DefaultConfig returns the built-in defaults.
func DefaultConfig() Config {
	return Config{
		API: APIConfig{
			BaseURL:        "http://localhost:8000/api",
			PaymentBaseURL: "http://localhost:8000/auth-payments/api",
		},
		HTTP: HTTPConfig{
			Timeout:      30 * time.Second,
			UserAgent:    "archivectl/0.1 (+https://github.com/syrianarchive/archivectl)",
			MaxBodyBytes: 5_000_000,
		},
		Cache: CacheConfig{
			Enabled:   true,
			MemoryTTL: 2 * time.Minute,
			DiskTTL:   15 * time.Minute,
		},
		RateLimit: RateLimitConfig{
			Enabled:     true,
			MinInterval: 500 * time.Millisecond,
			Burst:       1,
		},
		Mirror: MirrorConfig{
			Enabled:           false,
			Workers:           4,
			RequestsPerSecond: 1,
			Burst:             2,
			FetchTimeout:      30 * time.Second,
			MaxBytes:          10_000_000,
			RespectRobots:     true,
		},
		LLM: LLMConfig{
			Model:     "gpt-4o-mini",
			Timeout:   30,
			MaxTokens: 600,
		},
		Output: OutputConfig{
			Format: "table",
		},
	}
}
