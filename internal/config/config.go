package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"

	"github.com/reelcache/reelcache/internal/domain"
)

// Load loads configuration from multiple sources:
// 1. Config file (config.yaml, optional)
// 2. Environment variables (REELCACHE_*)
// 3. Bound CLI flags
func Load() (*domain.Config, error) {
	cfg := &domain.Config{}

	cfg.TmdbApiKey = viper.GetString("tmdb_api_key")
	cfg.DataDir = viper.GetString("data_dir")
	cfg.Region = viper.GetString("region")
	cfg.LogLevel = viper.GetString("log_level")

	if cfg.DataDir == "" {
		cfg.DataDir = "."
	}

	cfg.CacheTTL = viper.GetDuration("cache_ttl")
	if cfg.CacheTTL < 0 {
		return nil, fmt.Errorf("cache_ttl must not be negative, got %s", cfg.CacheTTL)
	}
	if cfg.CacheTTL == 0 {
		cfg.CacheTTL = domain.DefaultCacheTTL
	}
	if cfg.CacheTTL < time.Minute {
		return nil, fmt.Errorf("cache_ttl must be at least one minute, got %s", cfg.CacheTTL)
	}

	if cfg.TmdbApiKey == "" {
		return nil, fmt.Errorf("tmdb_api_key is required (set via config.yaml or REELCACHE_TMDB_API_KEY environment variable)")
	}

	return cfg, nil
}
