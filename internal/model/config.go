package model

import "time"

// Config holds every tunable of the reconciliation tool
type Config struct {
	Cluster     ClusterConfig     `yaml:"cluster" mapstructure:"cluster"`
	Concurrency ConcurrencyConfig `yaml:"concurrency" mapstructure:"concurrency"`
	Cache       CacheConfig       `yaml:"cache" mapstructure:"cache"`
	HTTP        HTTPConfig        `yaml:"http" mapstructure:"http"`
	Output      OutputConfig      `yaml:"output" mapstructure:"output"`
	LLM         LLMConfig         `yaml:"llm" mapstructure:"llm"`
}

// ClusterConfig tunes evidence clustering
type ClusterConfig struct {
	SimilarityThreshold float64 `yaml:"similarity_threshold" mapstructure:"similarity_threshold"` // 0-100
	ToleranceSeconds    float64 `yaml:"tolerance_seconds" mapstructure:"tolerance_seconds"`
}

// ConcurrencyConfig tunes batch processing
type ConcurrencyConfig struct {
	Workers int `yaml:"workers" mapstructure:"workers"`
}

// CacheConfig tunes the batch result cache
type CacheConfig struct {
	Enabled         bool          `yaml:"enabled" mapstructure:"enabled"`
	TTL             time.Duration `yaml:"ttl" mapstructure:"ttl"`
	CleanupInterval time.Duration `yaml:"cleanup_interval" mapstructure:"cleanup_interval"`
}

// HTTPConfig tunes the backend report client
type HTTPConfig struct {
	BaseURL           string        `yaml:"base_url" mapstructure:"base_url"`
	Timeout           time.Duration `yaml:"timeout" mapstructure:"timeout"`
	UserAgent         string        `yaml:"user_agent" mapstructure:"user_agent"`
	MaxBodyBytes      int64         `yaml:"max_body_bytes" mapstructure:"max_body_bytes"`
	RequestsPerSecond float64       `yaml:"requests_per_second" mapstructure:"requests_per_second"`
	Burst             int           `yaml:"burst" mapstructure:"burst"`
}

// OutputConfig tunes result rendering
type OutputConfig struct {
	Pretty        bool `yaml:"pretty" mapstructure:"pretty"`
	IncludeFooter bool `yaml:"include_footer" mapstructure:"include_footer"`
}

// LLMConfig configures the optional result summarizer. Empty provider
// means disabled; the summary never affects grades or categories.
type LLMConfig struct {
	Provider string `yaml:"provider" mapstructure:"provider"` // "" or "openai"
	Model    string `yaml:"model" mapstructure:"model"`
	BaseURL  string `yaml:"base_url" mapstructure:"base_url"`
	APIKey   string `yaml:"api_key,omitempty" mapstructure:"api_key"`
}

// DefaultConfig returns the built-in defaults
func DefaultConfig() *Config {
	return &Config{
		Cluster: ClusterConfig{
			SimilarityThreshold: 70,
			ToleranceSeconds:    2,
		},
		Concurrency: ConcurrencyConfig{
			Workers: 4,
		},
		Cache: CacheConfig{
			Enabled:         true,
			TTL:             30 * time.Minute,
			CleanupInterval: 10 * time.Minute,
		},
		HTTP: HTTPConfig{
			Timeout:           30 * time.Second,
			UserAgent:         "riskfuse/0.1 (+https://github.com/ykomori/riskfuse)",
			MaxBodyBytes:      8_000_000,
			RequestsPerSecond: 4,
			Burst:             4,
		},
		Output: OutputConfig{
			Pretty:        true,
			IncludeFooter: true,
		},
		LLM: LLMConfig{
			Model: "gpt-4o-mini",
		},
	}
}
