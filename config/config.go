// Package config loads service configuration from the environment and flags.
package config

import (
	"flag"
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

const (
	ArchiveMemory = "memory"
	ArchiveSQLite = "sqlite"
)

// Config holds the service configuration.
type Config struct {
	HTTPAddr        string        `env:"MORTGAGE_AGENT_HTTP_ADDR"         envDefault:":8080"`
	RedisAddr       string        `env:"MORTGAGE_AGENT_REDIS_ADDR"`
	CacheTTL        time.Duration `env:"MORTGAGE_AGENT_CACHE_TTL"         envDefault:"1h"`
	Archive         string        `env:"MORTGAGE_AGENT_ARCHIVE"           envDefault:"memory"`
	SQLiteDSN       string        `env:"MORTGAGE_AGENT_SQLITE_DSN"        envDefault:":memory:"`
	ProcessingFee   float64       `env:"MORTGAGE_AGENT_PROCESSING_FEE"    envDefault:"500"`
	DividendTaxRate float64       `env:"MORTGAGE_AGENT_DIVIDEND_TAX_RATE" envDefault:"0.22"`
	RateLimit       int           `env:"MORTGAGE_AGENT_RATE_LIMIT"        envDefault:"5"`
	RateWindow      time.Duration `env:"MORTGAGE_AGENT_RATE_WINDOW"       envDefault:"1m"`
	ShutdownTimeout time.Duration `env:"MORTGAGE_AGENT_SHUTDOWN_TIMEOUT"  envDefault:"10s"`
	OTelEndpoint    string        `env:"MORTGAGE_AGENT_OTEL_ENDPOINT"`
	OpenAIKey       string        `env:"OPENAI_API_KEY"`
}

// ParseConfig reads the environment, then lets flags override it.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}

	fs.StringVar(&cfg.HTTPAddr, "addr", cfg.HTTPAddr, "http listen address")
	fs.StringVar(&cfg.RedisAddr, "redis", cfg.RedisAddr, "redis address for the projection cache (empty: in-process)")
	fs.StringVar(&cfg.Archive, "archive", cfg.Archive, "session archive backend: memory or sqlite")
	fs.Float64Var(&cfg.ProcessingFee, "processing-fee", cfg.ProcessingFee, "fee subtracted once when deriving the loan principal")
	fs.Float64Var(&cfg.DividendTaxRate, "dividend-tax", cfg.DividendTaxRate, "dividend withholding tax rate as a fraction")
	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	if c.Archive != ArchiveMemory && c.Archive != ArchiveSQLite {
		return fmt.Errorf("unknown archive backend %q", c.Archive)
	}
	if c.ProcessingFee < 0 {
		return fmt.Errorf("processing fee must not be negative")
	}
	if c.DividendTaxRate < 0 || c.DividendTaxRate > 1 {
		return fmt.Errorf("dividend tax rate must be between 0 and 1")
	}
	if c.RateLimit <= 0 {
		return fmt.Errorf("rate limit must be positive")
	}
	if c.RateWindow <= 0 {
		return fmt.Errorf("rate window must be positive")
	}
	return nil
}
