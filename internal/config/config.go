// Package config loads application configuration from file and environment.
package config

import (
	"strings"
	"time"

	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config holds the full application configuration.
type Config struct {
	Cache   CacheConfig   `yaml:"cache" mapstructure:"cache"`
	Fetch   FetchConfig   `yaml:"fetch" mapstructure:"fetch"`
	Batch   BatchConfig   `yaml:"batch" mapstructure:"batch"`
	Sources SourcesConfig `yaml:"sources" mapstructure:"sources"`
	Score   ScoreConfig   `yaml:"score" mapstructure:"score"`
	Server  ServerConfig  `yaml:"server" mapstructure:"server"`
	Log     LogConfig     `yaml:"log" mapstructure:"log"`
}

// CacheConfig configures the result cache backend and TTL tiers.
type CacheConfig struct {
	// Driver selects the backend: memory, sqlite, or postgres.
	Driver      string `yaml:"driver" mapstructure:"driver"`
	DatabaseURL string `yaml:"database_url" mapstructure:"database_url"`
	// CompetitorTTL covers competitor-discovery results (slow-changing);
	// MetricsTTL covers metric snapshots (faster-changing).
	CompetitorTTL time.Duration `yaml:"competitor_ttl" mapstructure:"competitor_ttl"`
	MetricsTTL    time.Duration `yaml:"metrics_ttl" mapstructure:"metrics_ttl"`
}

// FetchConfig bounds per-source calls made by the orchestrator.
type FetchConfig struct {
	SourceTimeout time.Duration `yaml:"source_timeout" mapstructure:"source_timeout"`
	MaxRetries    int           `yaml:"max_retries" mapstructure:"max_retries"`
}

// BatchConfig bounds the multi-domain metrics fan-out.
type BatchConfig struct {
	Concurrency int `yaml:"concurrency" mapstructure:"concurrency"`
}

// SourcesConfig holds per-provider endpoint settings, keyed by source name.
type SourcesConfig struct {
	Endpoints map[string]SourceEndpoint `yaml:"endpoints" mapstructure:"endpoints"`
}

// SourceEndpoint configures one HTTP-backed intelligence source.
type SourceEndpoint struct {
	BaseURL       string  `yaml:"base_url" mapstructure:"base_url"`
	APIKey        string  `yaml:"api_key" mapstructure:"api_key"`
	RatePerSecond float64 `yaml:"rate_per_second" mapstructure:"rate_per_second"`
	Burst         int     `yaml:"burst" mapstructure:"burst"`
	// Capabilities lists what this endpoint provides: "competitors",
	// "metrics", or both. Empty means both.
	Capabilities []string `yaml:"capabilities" mapstructure:"capabilities"`
	Disabled     bool     `yaml:"disabled" mapstructure:"disabled"`
}

// Provides reports whether the endpoint serves the named capability.
func (e SourceEndpoint) Provides(capability string) bool {
	if len(e.Capabilities) == 0 {
		return true
	}
	for _, c := range e.Capabilities {
		if c == capability {
			return true
		}
	}
	return false
}

// ScoreConfig points at the optional weight-override file.
type ScoreConfig struct {
	WeightsFile string `yaml:"weights_file" mapstructure:"weights_file"`
}

// ServerConfig configures the HTTP facade.
type ServerConfig struct {
	Port           int      `yaml:"port" mapstructure:"port"`
	AllowedOrigins []string `yaml:"allowed_origins" mapstructure:"allowed_origins"`
}

// LogConfig configures the global zap logger.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// Load reads intel.yaml (current directory or $HOME/.intel-cli) plus
// INTEL_-prefixed environment overrides.
func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigName("intel")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("$HOME/.intel-cli")

	v.SetEnvPrefix("INTEL")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	// Config file is optional; defaults plus env carry the load.
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, eris.Wrap(err, "config: read file")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, eris.Wrap(err, "config: unmarshal")
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("cache.driver", "memory")
	v.SetDefault("cache.competitor_ttl", 24*time.Hour)
	v.SetDefault("cache.metrics_ttl", 12*time.Hour)
	v.SetDefault("fetch.source_timeout", 20*time.Second)
	v.SetDefault("fetch.max_retries", 3)
	v.SetDefault("batch.concurrency", 4)
	v.SetDefault("server.port", 8080)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
}

// InitLogger initializes the global zap logger.
func InitLogger(cfg LogConfig) error {
	var zapCfg zap.Config
	if cfg.Format == "console" {
		zapCfg = zap.NewDevelopmentConfig()
	} else {
		zapCfg = zap.NewProductionConfig()
	}

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return eris.Wrap(err, "config: parse log level")
	}
	zapCfg.Level.SetLevel(level)

	logger, err := zapCfg.Build()
	if err != nil {
		return eris.Wrap(err, "config: build logger")
	}
	zap.ReplaceGlobals(logger)

	return nil
}
