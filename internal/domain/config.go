package domain

import "time"

// DefaultCacheTTL is the staleness window for cached detail records. A record
// older than this is eligible for a refresh attempt even if already served.
const DefaultCacheTTL = 30 * time.Minute

type Config struct {
	TmdbApiKey string        `toml:"tmdb_api_key" mapstructure:"tmdb_api_key"`
	DataDir    string        `toml:"data_dir" mapstructure:"data_dir"`
	Region     string        `toml:"region" mapstructure:"region"`
	CacheTTL   time.Duration `toml:"cache_ttl" mapstructure:"cache_ttl"`
	LogLevel   string        `toml:"log_level" mapstructure:"log_level"`
}
