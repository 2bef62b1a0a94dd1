package cavist

import "go.uber.org/zap"

// Option configures the Client.
type Option func(*clientConfig)

type clientConfig struct {
	catalogDir string
	packDir    string

	driver   string // "valkey" or "redis"
	addrs    []string
	password string

	llmAPIKey   string
	llmBaseURL  string
	llmModel    string
	llmProvider string

	keyPrefix string
	logger    *zap.Logger
}

// WithCatalogDir sets the directory of catalog YAML files. Default: "catalogs".
func WithCatalogDir(dir string) Option {
	return func(c *clientConfig) {
		c.catalogDir = dir
	}
}

// WithPackDir sets the directory of domain pack YAML files. Default: "packs".
func WithPackDir(dir string) Option {
	return func(c *clientConfig) {
		c.packDir = dir
	}
}

// WithValkey connects the client to a Valkey instance for catalog caching
// and analytics counters. Optional; without a store the client is file-only.
func WithValkey(addr, password string) Option {
	return func(c *clientConfig) {
		c.driver = "valkey"
		c.addrs = []string{addr}
		c.password = password
	}
}

// WithRedis connects the client to a Redis instance for catalog caching
// and analytics counters. Optional; without a store the client is file-only.
func WithRedis(addr, password string) Option {
	return func(c *clientConfig) {
		c.driver = "redis"
		c.addrs = []string{addr}
		c.password = password
	}
}

// WithOpenAI enables the chat-backed features (intent fallback, summaries)
// through an OpenAI-compatible API. baseURL may be empty for the default.
func WithOpenAI(apiKey, baseURL, model string) Option {
	return func(c *clientConfig) {
		c.llmAPIKey = apiKey
		c.llmBaseURL = baseURL
		c.llmModel = model
		c.llmProvider = "openai"
	}
}

// WithKeyPrefix sets the store key prefix. Default: "cavist:".
func WithKeyPrefix(prefix string) Option {
	return func(c *clientConfig) {
		c.keyPrefix = prefix
	}
}

// WithLogger enables structured logging for client operations.
// Pass nil to disable (default).
func WithLogger(l *zap.Logger) Option {
	return func(c *clientConfig) {
		c.logger = l
	}
}
